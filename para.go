// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"strings"
)

// A Text holds inline content: the contents of a paragraph or
// heading, or the bare content of a tight list item.
// As a Block it renders without <p> tags.
type Text struct {
	Position
	Inline Inlines

	raw string // unparsed source, until deferred inline parsing runs
}

func (*Text) Block() {}

func (b *Text) printHTML(p *printer) {
	for _, x := range b.Inline {
		x.printHTML(p)
	}
}

func (b *Text) printMarkdown(p *printer) {
	for _, x := range b.Inline {
		x.printMarkdown(p)
	}
}

// A Paragraph is a [Block] representing a paragraph,
// rendered in <p> tags.
type Paragraph struct {
	Position
	Text *Text
}

func (*Paragraph) Block() {}

func (b *Paragraph) printHTML(p *printer) {
	p.html("<p>")
	b.Text.printHTML(p)
	p.html("</p>\n")
}

func (b *Paragraph) printMarkdown(p *printer) {
	p.maybeNL()
	b.Text.printMarkdown(p)
}

// A paraBuilder accumulates a paragraph, one line of text at a time.
// It doubles as the accumulator for a table: a paragraph whose next
// line turns out to be a table delimiter hands its last line to a
// tableBuilder as the header row.
type paraBuilder struct {
	text  []string
	table *tableBuilder
}

// tryParagraph is the opener of last resort: it consumes every line
// offered to it, either as continuation text of an open paragraph
// (including lazy continuation, when enclosing blocks went unmatched)
// or by opening a new paragraph.
func tryParagraph(p *parseState, s line) (line, bool) {
	b := p.para()
	// Fully matched lines extend the paragraph directly; anything
	// short of that is lazy continuation text and cannot extend a
	// table or start one.
	matched := p.lineDepth == len(p.stack)-2
	text := s.restString()

	if b != nil && b.table != nil {
		if matched && text != "" && text != "|" {
			b.table.addRow(text)
			return line{}, true
		}
		// A blank, lazy, or lone-pipe line ends the table.
		// (cmark-gfm rejects a lone | as a table row; play along.)
		b = nil
	}

	if p.Table && b != nil && matched && len(b.text) > 0 && isTableStart(b.text[len(b.text)-1], text) {
		// The previous paragraph line is the table header and the
		// current line is the delimiter row. Pull the header out of
		// the open paragraph and start a fresh one holding only the
		// table. Stripping the header may leave the old paragraph
		// empty; paraBuilder.done copes.
		hdr := b.text[len(b.text)-1]
		b.text = b.text[:len(b.text)-1]
		tb := new(paraBuilder)
		p.addBlock(tb)
		tb.table = new(tableBuilder)
		tb.table.start(hdr, text)
		return line{}, true
	}

	if b != nil {
		// Continuation text keeps every enclosing block alive,
		// matched or not.
		for i := p.lineDepth; i < len(p.stack); i++ {
			p.stack[i].pos.EndLine = p.lineno
		}
	} else {
		b = new(paraBuilder)
		p.addBlock(b)
	}
	b.text = append(b.text, text)
	return line{}, true
}

// extend rejects the line so that it reaches tryParagraph, which
// must see it anyway to rule on lazy continuation.
func (b *paraBuilder) extend(p *parseState, s line) (line, bool) {
	return s, false
}

func (b *paraBuilder) done(p *parseState) Block {
	if b.table != nil {
		return b.table.done(p)
	}

	s := strings.Join(b.text, "\n")

	// Peel reference definitions off the front of the paragraph.
	var labels []string
	for s != "" {
		label, end, ok := parseLinkRefDef(p, s)
		if !ok {
			break
		}
		labels = append(labels, label)
		s = s[skipSpace(s, end):]
	}

	if s == "" {
		// Nothing left to render. The line span is still needed for
		// loose/tight list decisions.
		if len(labels) > 0 {
			return &RefDefs{p.pos(), labels}
		}
		return &Empty{p.pos()}
	}

	// Recompute EndLine: the last line may have moved into a table.
	pos := p.pos()
	pos.EndLine = pos.StartLine + len(b.text) - 1
	return &Paragraph{
		pos,
		p.newText(pos, s),
	}
}
