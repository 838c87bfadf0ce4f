// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"fmt"
	"strings"
)

// A Heading is a [Block] representing an ATX heading ("# Heading")
// or a setext heading (text underlined with = or -),
// displayed with the <h1> through <h6> tags.
type Heading struct {
	Position

	// Level is the heading level, 1 through 6.
	// Other values are clamped to the valid range.
	Level int

	// Text is the heading text.
	Text *Text

	// Setext records that the heading was written in underlined
	// form. Only levels 1 and 2 can be setext headings.
	Setext bool

	// ID is the HTML id attribute.
	// The parser populates it if [Parser.HeadingID] is set and the
	// heading ends with text like "{#id}".
	ID string
}

func (*Heading) Block() {}

func (b *Heading) level() int {
	return max(1, min(6, b.Level))
}

func (b *Heading) printHTML(p *printer) {
	fmt.Fprintf(p, "<h%d", b.level())
	if b.ID != "" {
		fmt.Fprintf(p, ` id="%s"`, htmlEscaper.Replace(b.ID))
	}
	p.WriteByte('>')
	b.Text.printHTML(p)
	fmt.Fprintf(p, "</h%d>\n", b.level())
}

func (b *Heading) printMarkdown(p *printer) {
	p.maybeNL()
	if b.Setext && b.level() <= 2 {
		b.Text.printMarkdown(p)
		if b.ID != "" {
			fmt.Fprintf(p, " {#%s}", b.ID)
		}
		p.nl()
		if b.level() == 1 {
			p.md("===")
		} else {
			p.md("---")
		}
		return
	}
	for i := b.level(); i > 0; i-- {
		p.WriteByte('#')
	}
	p.WriteByte(' ')
	b.Text.printMarkdown(p)
	if b.ID != "" {
		fmt.Fprintf(p, " {#%s}", b.ID)
	}
}

// tryATXHeading is an [opener] for an ATX [Heading] like "## Heading".
func tryATXHeading(p *parseState, s line) (line, bool) {
	n, ok := trimATX(&s)
	if !ok {
		return s, false
	}
	text := trimRightSpaceTab(s.string())

	// Drop a closing run of #s if preceded by a space or tab.
	if inner := strings.TrimRight(text, "#"); inner != trimRightSpaceTab(inner) || inner == "" {
		text = inner
	}

	var id string
	if p.HeadingID {
		// The {#id} must come before any closing #s, mirroring the
		// rule that the closing sequence may be followed only by
		// spaces. (Goldmark also allows it after; that difference is
		// a known corner.)
		text, id = trimHeadingID(p, text)
	}

	pos := Position{p.lineno, p.lineno}
	p.doneBlock(&Heading{Position: pos, Level: n, Text: p.newText(pos, text), ID: id})
	return line{}, true
}

// trimHeadingID trims an {#id} suffix from s if present, returning
// the text before it and the id. Trailing spaces after the closing }
// are discarded. With no suffix present it returns s, "".
func trimHeadingID(p *parseState, s string) (text, id string) {
	text = s
	i := strings.LastIndexByte(s, '{')
	if i < 0 {
		return
	}
	j := i + strings.IndexByte(s[i:], '}')
	if j < i || trimRightSpaceTab(s[j+1:]) != "" {
		return
	}
	if j == i+1 || j == i+2 && s[i+1] == '#' {
		p.corner = true // goldmark accepts {} and {#}
		return
	}
	if s[i+1] != '#' {
		return
	}
	text, id = s[:i], strings.TrimSpace(s[i+2:j])

	// Goldmark is strict about the id syntax.
	for i := 0; i < len(id); i++ {
		if c := id[i]; c >= 0x80 || !isLetterDigit(byte(c)) {
			p.corner = true
		}
	}

	return
}

// trySetextHeading is an [opener] for a setext [Heading]: a
// paragraph of text already on the stack, underlined by the current
// line. The underline only forces the paragraph closed tentatively —
// a paragraph that dissolves into reference definitions leaves
// nothing to underline, and then the line is handed back for the
// other rules (a "---" underline is also a valid thematic break).
func trySetextHeading(p *parseState, s line) (line, bool) {
	// The first unmatched block must be an open paragraph.
	if p.nextB() == nil || p.nextB() != builder(p.para()) {
		return s, false
	}

	t := s
	level, ok := trimSetext(&t)
	if !ok {
		return s, false
	}

	p.closeBlock()
	para, ok := p.last().(*Paragraph)
	if !ok {
		// The "paragraph" was reference definitions (or a table)
		// after all. Leave the underline for something else.
		return s, false
	}

	p.deleteLast()
	var id string
	if p.HeadingID {
		para.Text.raw, id = trimHeadingID(p, para.Text.raw)
	}
	p.doneBlock(&Heading{Position: Position{para.StartLine, p.lineno}, Level: level, Text: para.Text, Setext: true, ID: id})
	return line{}, true
}

// trimATX trims an ATX heading prefix (up to 3 spaces of indentation,
// then 1-6 #s followed by a space or end of line) from s, reporting
// the heading level. On failure s is unmodified.
func trimATX(s *line) (level int, ok bool) {
	t := *s
	t.trimIndent(0, 3, false)
	if !t.trimByte('#') {
		return
	}
	n := 1
	for n < 6 && t.trimByte('#') {
		n++
	}
	if !t.trimIndent(1, 1, true) {
		return
	}
	*s = t
	return n, true
}

// trimSetext trims a setext underline (up to 3 spaces of indentation,
// a run of only -s or only =s, then optional trailing spaces) from s,
// reporting the heading level. On failure s is unmodified.
func trimSetext(s *line) (level int, ok bool) {
	t := *s
	t.trimIndent(0, 3, false)
	c := t.peek()
	if c != '-' && c != '=' {
		return
	}
	for t.trimByte(c) {
	}
	t.skipSpace()
	if !t.eof() {
		return
	}
	level = 1
	if c == '-' {
		level = 2
	}
	*s = line{}
	return level, true
}
