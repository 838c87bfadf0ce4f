// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"strings"
)

// A Table is a [Block] representing a pipe table: a header row, a
// delimiter row fixing the column count and alignments, and any
// number of data rows. Rows are truncated or padded with empty cells
// to the column count of the header.
type Table struct {
	Position
	Header []*Text
	Align  []string // "left", "center", "right", or "" per column
	Rows   [][]*Text
}

func (*Table) Block() {}

// Table rows may use \t \v \f as well as spaces around cells.
func isTableSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f'
}

func tableTrimSpace(s string) string {
	i := 0
	for i < len(s) && isTableSpace(s[i]) {
		i++
	}
	j := len(s)
	for j > i && isTableSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

// tableTrimOuter trims surrounding space and the optional leading
// and trailing pipes from a row.
func tableTrimOuter(row string) string {
	row = tableTrimSpace(row)
	if len(row) > 0 && row[0] == '|' {
		row = row[1:]
	}
	if len(row) > 0 && row[len(row)-1] == '|' {
		row = row[:len(row)-1]
	}
	return row
}

// isTableStart reports whether delim is a table delimiter row whose
// column count matches the header row hdr. It runs on every
// paragraph line when tables are enabled, so it must stay cheap.
func isTableStart(hdr, delim string) bool {
	col := 0
	delim = tableTrimOuter(delim)
	i := 0
	for ; ; col++ {
		for i < len(delim) && isTableSpace(delim[i]) {
			i++
		}
		if i >= len(delim) {
			break
		}
		if i < len(delim) && delim[i] == ':' {
			i++
		}
		if i >= len(delim) || delim[i] != '-' {
			return false
		}
		i++
		for i < len(delim) && delim[i] == '-' {
			i++
		}
		if i < len(delim) && delim[i] == ':' {
			i++
		}
		for i < len(delim) && isTableSpace(delim[i]) {
			i++
		}
		if i < len(delim) && delim[i] == '|' {
			i++
		}
	}
	return col == tableCount(hdr)
}

// tableCount counts the columns of a trimmed row: one more than its
// unescaped pipes. Any pipe preceded by a backslash counts as escaped,
// even after "\\"; that matches GitHub, not the usual escaping rules.
func tableCount(row string) int {
	row = tableTrimOuter(row)
	col := 1
	prev := byte(0)
	for i := 0; i < len(row); i++ {
		c := row[i]
		if c == '|' && prev != '\\' {
			col++
		}
		prev = c
	}
	return col
}

// A tableBuilder accumulates the source rows of a [Table].
// It has no stack entry of its own: the enclosing paraBuilder feeds
// it lines and delegates done to it.
type tableBuilder struct {
	hdr   string
	delim string
	rows  []string
}

func (b *tableBuilder) start(hdr, delim string) {
	b.hdr = tableTrimOuter(hdr)
	b.delim = tableTrimOuter(delim)
}

func (b *tableBuilder) addRow(row string) {
	b.rows = append(b.rows, tableTrimOuter(row))
}

func (b *tableBuilder) done(p *parseState) Block {
	pos := p.pos()
	pos.StartLine-- // the header row preceded the builder
	pos.EndLine = pos.StartLine + 1 + len(b.rows)
	t := &Table{
		Position: pos,
	}
	width := tableCount(b.hdr)
	t.Header = b.parseRow(p, b.hdr, pos.StartLine, width)
	t.Align = b.parseAlign(b.delim, width)
	t.Rows = make([][]*Text, len(b.rows))
	for i, row := range b.rows {
		t.Rows[i] = b.parseRow(p, row, pos.StartLine+2+i, width)
	}
	return t
}

// parseRow splits a trimmed source row into width cell Texts,
// discarding extra cells and adding empty ones as needed.
func (b *tableBuilder) parseRow(p *parseState, row string, lineno int, width int) []*Text {
	out := make([]*Text, 0, width)
	pos := Position{StartLine: lineno, EndLine: lineno}
	start := 0
	unesc := nop
	prev := byte(0)
	for i := 0; i < len(row); i++ {
		c := row[i]
		if c == '|' {
			if prev == '\\' {
				// The cell needs its escaped pipes rewritten.
				unesc = tableUnescape
			} else {
				out = append(out, p.newText(pos, unesc(tableTrimSpace(row[start:i]))))
				if len(out) == width {
					return out
				}
				start = i + 1
				unesc = nop
			}
		}
		prev = c
	}
	out = append(out, p.newText(pos, unesc(tableTrimSpace(row[start:]))))
	for len(out) < width {
		out = append(out, p.newText(pos, ""))
	}
	return out
}

func nop(text string) string {
	return text
}

func tableUnescape(text string) string {
	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\\' && i+1 < len(text) && text[i+1] == '|' {
			i++
			c = '|'
		}
		out = append(out, c)
	}
	return string(out)
}

// parseAlign reads the column alignments off the delimiter row.
func (b *tableBuilder) parseAlign(delim string, n int) []string {
	align := make([]string, 0, tableCount(delim))
	start := 0
	for i := 0; i < len(delim); i++ {
		if delim[i] == '|' {
			align = append(align, tableAlign(delim[start:i]))
			start = i + 1
		}
	}
	align = append(align, tableAlign(delim[start:]))
	return align
}

func tableAlign(cell string) string {
	cell = tableTrimSpace(cell)
	l := cell[0] == ':'
	r := cell[len(cell)-1] == ':'
	switch {
	case l && r:
		return "center"
	case l:
		return "left"
	case r:
		return "right"
	}
	return ""
}

func (t *Table) printHTML(p *printer) {
	p.html("<table>\n")
	p.html("<thead>\n")
	p.html("<tr>\n")
	for i, hdr := range t.Header {
		p.html("<th")
		if t.Align[i] != "" {
			p.html(` align="`, t.Align[i], `"`)
		}
		p.html(">")
		hdr.printHTML(p)
		p.html("</th>\n")
	}
	p.html("</tr>\n")
	p.html("</thead>\n")
	if len(t.Rows) > 0 {
		p.html("<tbody>\n")
		for _, row := range t.Rows {
			p.html("<tr>\n")
			for i, cell := range row {
				p.html("<td")
				if i < len(t.Align) && t.Align[i] != "" {
					p.html(` align="`, t.Align[i], `"`)
				}
				p.html(">")
				cell.printHTML(p)
				p.html("</td>\n")
			}
			p.html("</tr>\n")
		}
		p.html("</tbody>\n")
	}
	p.html("</table>\n")
}

func (t *Table) printMarkdown(p *printer) {
	p.maybeNL()
	printTableRowMarkdown(p, t.Header)
	p.nl()
	for i := range t.Header {
		sep := "---"
		switch t.Align[i] {
		case "left":
			sep = ":---"
		case "center":
			sep = ":---:"
		case "right":
			sep = "---:"
		}
		p.md("| ", sep, " ")
	}
	p.md("|")
	for _, row := range t.Rows {
		p.nl()
		printTableRowMarkdown(p, row)
	}
}

// printTableRowMarkdown prints one table row. Each cell renders
// through its own printer so that any literal pipes in the result
// can be escaped before they reach the table syntax.
func printTableRowMarkdown(p *printer, row []*Text) {
	for _, cell := range row {
		var cp printer
		cell.printMarkdown(&cp)
		p.md("| ", strings.ReplaceAll(cp.buf.String(), "|", `\|`), " ")
	}
	p.md("|")
}
