// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import "bytes"

// ToHTML renders the block and its children as HTML.
func ToHTML(b Block) string {
	var p printer
	p.writeMode = writeHTML
	b.printHTML(&p)
	printFootnoteHTML(&p)
	return p.buf.String()
}

// Format renders the block and its children as normalized Markdown
// text. Parsing the result produces an equivalent document.
func Format(b Block) string {
	var p printer
	b.printMarkdown(&p)
	printFootnoteMarkdown(&p)
	return p.buf.String()
}

const (
	writeMarkdown = iota
	writeHTML
	writeText
)

// A printer accumulates rendered output.
// In Markdown mode, the block printers never write raw newlines:
// every line break goes through nl so that the continuation prefix
// of the enclosing containers (quote markers, list indentation) is
// reproduced at the start of each line.
type printer struct {
	writeMode   int
	buf         bytes.Buffer
	prefix      []byte // continuation prefix for new lines
	prefixOld   []byte
	prefixOlder []byte
	trimLimit   int // buf[:trimLimit] is immune to trailing-space trimming
	listOut
	footnotes    map[*Footnote]*printedNote
	footnotelist []*printedNote
}

// listOut is the list-rendering state of a printer:
// how many enclosing loose and tight lists are being printed.
type listOut struct {
	loose int
	tight int
}

func cutLastNL(text []byte) (prefix, last []byte) {
	i := bytes.LastIndexByte(text, '\n')
	if i < 0 {
		return nil, text
	}
	return text[:i], text[i+1:]
}

// noTrim marks the output written so far as significant, protecting
// its trailing spaces (inside code blocks) from nl's trimming.
func (p *printer) noTrim() {
	p.trimLimit = len(p.buf.Bytes())
}

// nl ends the current output line and starts a new one with the
// continuation prefix.
func (p *printer) nl() {
	text := p.buf.Bytes()
	for len(text) > p.trimLimit && text[len(text)-1] == ' ' {
		text = text[:len(text)-1]
	}
	p.buf.Truncate(len(text))

	p.buf.WriteByte('\n')
	p.buf.Write(p.prefix)
	p.prefixOlder, p.prefixOld = p.prefixOld, p.prefix
}

// maybeNL inserts a blank line before a new block if the block would
// otherwise read as paragraph continuation text: the current line
// holds exactly the continuation prefix and the previous line starts
// with it too.
func (p *printer) maybeNL() {
	before, cur := cutLastNL(p.buf.Bytes())
	_, prev := cutLastNL(before)
	if p.buf.Len() > 0 && bytes.Equal(cur, p.prefix) && bytes.HasPrefix(prev, p.prefix) {
		p.nl()
	}
}

// maybeQuoteNL inserts a blank line before a new quote block when the
// previous line belongs to a preceding quote, so that the two quotes
// do not merge.
func (p *printer) maybeQuoteNL(quote byte) {
	before, cur := cutLastNL(p.buf.Bytes())
	_, prev := cutLastNL(before)
	if len(prev) >= len(cur)+1 && bytes.HasPrefix(prev, cur) && prev[len(cur)] == quote {
		p.nl()
	}
}

var closeP = []byte("</p>\n")

// eraseCloseP removes a trailing </p> tag, reporting whether it did.
// Footnote rendering reopens the final paragraph to append backlinks.
func (p *printer) eraseCloseP() bool {
	if bytes.HasSuffix(p.buf.Bytes(), closeP) {
		p.buf.Truncate(p.buf.Len() - len(closeP))
		return true
	}
	return false
}

func (p *printer) WriteByte(c byte) error {
	if c == '\n' {
		panic("mdtree: newline bypassing nl")
	}
	return p.buf.WriteByte(c)
}

func (p *printer) Write(text []byte) (int, error) {
	if p.writeMode == writeMarkdown && bytes.IndexByte(text, '\n') >= 0 {
		panic("mdtree: newline bypassing nl")
	}
	return p.buf.Write(text)
}

func (p *printer) WriteString(s string) (int, error) {
	if p.writeMode == writeMarkdown {
		for i := 0; i < len(s); i++ {
			if s[i] == '\n' {
				panic("mdtree: newline bypassing nl")
			}
		}
	}
	return p.buf.WriteString(s)
}

// html writes raw HTML output.
func (p *printer) html(list ...string) {
	if p.writeMode != writeHTML {
		panic("mdtree: raw HTML in non-HTML output")
	}
	for _, s := range list {
		p.buf.WriteString(s)
	}
}

// text writes literal text, escaped as needed for the output mode.
func (p *printer) text(list ...string) {
	if p.writeMode == writeHTML {
		for _, s := range list {
			htmlEscaper.WriteString(&p.buf, s)
		}
		return
	}
	for _, s := range list {
		p.buf.WriteString(s)
	}
}

// md writes raw Markdown output.
func (p *printer) md(list ...string) {
	if p.writeMode != writeMarkdown {
		panic("mdtree: markdown in non-markdown output")
	}
	for _, s := range list {
		p.buf.WriteString(s)
	}
}

// push extends the continuation prefix for a nested container,
// returning the value to pass to pop when the container ends.
func (p *printer) push(s string) int {
	n := len(p.prefix)
	p.prefix = append(p.prefix, s...)
	return n
}

func (p *printer) pop(n int) {
	p.prefix = p.prefix[:n]
}
