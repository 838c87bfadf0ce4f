// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"strconv"
	"strings"
)

// A Footnote is the definition of one footnote: the blocks of
// [^label]: content. Footnotes live outside the block tree; the
// [FootnoteLink] references in inline text point at them, and the
// printers emit the referenced ones at the end of the document.
type Footnote struct {
	Position
	Label  string
	Blocks []Block
}

// A FootnoteLink is an [Inline] holding a [^label] reference to a
// footnote.
type FootnoteLink struct {
	Label    string
	Footnote *Footnote
}

func (*FootnoteLink) Inline() {}

// A printedNote tracks one footnote's number and back-reference ids
// during a single print.
type printedNote struct {
	num  string
	note *Footnote
	refs []string
}

// printed returns the print record for x, numbering the footnote in
// order of first reference and assigning this reference its id.
func (x *Footnote) printed(p *printer) *printedNote {
	if p.footnotes == nil {
		p.footnotes = make(map[*Footnote]*printedNote)
	}
	pr, ok := p.footnotes[x]
	if !ok {
		pr = &printedNote{
			num:  strconv.Itoa(len(p.footnotes) + 1),
			note: x,
		}
		p.footnotes[x] = pr
		p.footnotelist = append(p.footnotelist, pr)
	}
	ref := pr.num
	if len(pr.refs) > 0 {
		ref += "-" + strconv.Itoa(len(pr.refs)+1)
	}
	pr.refs = append(pr.refs, ref)
	return pr
}

func (x *FootnoteLink) printHTML(p *printer) {
	note := x.Footnote
	if note == nil {
		return
	}
	pr := note.printed(p)
	ref := pr.refs[len(pr.refs)-1]
	p.html(`<sup class="fn"><a id="fnref-` + ref + `" href="#fn-` + pr.num + `">` + pr.num + `</a></sup>`)
}

func (x *FootnoteLink) printMarkdown(p *printer) {
	note := x.Footnote
	if note == nil {
		return
	}
	note.printed(p) // queue for printFootnoteMarkdown
	p.text(`[^` + x.Label + `]`)
}

func (x *FootnoteLink) printText(p *printer) {
	p.text(`[^` + x.Label + `]`)
}

// printFootnoteHTML prints the referenced footnotes as an ordered
// list with back-links, in order of first reference.
func printFootnoteHTML(p *printer) {
	if len(p.footnotelist) == 0 {
		return
	}

	p.html(`<div class="footnotes">Footnotes</div>` + "\n")
	p.html("<ol>\n")
	for num, note := range p.footnotelist {
		num++
		str := strconv.Itoa(num)
		p.html(`<li id="fn-` + str + `">` + "\n")
		for _, b := range note.note.Blocks {
			b.printHTML(p)
		}
		// The back-links go inside the note's final paragraph
		// when there is one.
		if !p.eraseCloseP() {
			p.html("<p>\n")
		}
		for _, ref := range note.refs {
			p.html("\n" + `<a class="fnref" href="#fnref-` + ref + `">↩</a>`)
		}
		p.html("</p>\n")
		p.html("</li>\n")
	}
	p.html("</ol>\n")
}

func (x *Footnote) printMarkdown(p *printer) {
	p.md(`[^` + x.Label + `]: `)
	defer p.pop(p.push("  "))
	printMarkdownBlocks(x.Blocks, p)
}

// printFootnoteMarkdown prints the referenced footnotes'
// definitions, in order of first reference.
func printFootnoteMarkdown(p *printer) {
	if len(p.footnotelist) == 0 {
		return
	}

	p.maybeNL()
	for _, note := range p.footnotelist {
		p.nl()
		note.note.printMarkdown(p)
	}
}

// parseFootnoteRef is an [inlineParser] for a [^label] footnote
// reference. A reference to an undefined label is plain text.
// The caller has checked that s[start] == '['.
func parseFootnoteRef(p *parseState, s string, start int) (x Inline, end int, ok bool) {
	if !p.Footnote || start+1 >= len(s) || s[start+1] != '^' {
		return
	}
	end = strings.Index(s[start:], "]")
	if end < 0 {
		return
	}
	end += start + 1
	label := s[start+2 : end-1]
	note, ok := p.footnotes[normalizeLabel(label)]
	if !ok {
		return
	}
	return &FootnoteLink{label, note}, end, true
}

// tryFootnoteDef is an [opener] for a [^label]: footnote definition.
func tryFootnoteDef(p *parseState, s line) (line, bool) {
	if !p.Footnote {
		return s, false
	}
	t := s
	t.trimIndent(0, 3, false)
	if !t.trimByte('[') || !t.trimByte('^') {
		return s, false
	}
	label := t.string()
	i := strings.Index(label, "]")
	if i < 0 || i+1 >= len(label) || label[i+1] != ':' {
		return s, false
	}
	label = label[:i]
	for j := 0; j < i; j++ {
		c := label[j]
		if c == ' ' || c == '\r' || c == '\n' || c == 0x00 || c == '\t' {
			return s, false
		}
	}
	t.skip(i + 2)

	if _, ok := p.footnotes[normalizeLabel(label)]; ok {
		// A duplicate label. cmark-gfm drops every later
		// definition and its references from the document
		// entirely; leaving the text alone is more helpful.
		p.corner = true
		return s, false
	}

	fb := &footnoteBuilder{label}
	p.addBlock(fb)
	return t, true
}

// A footnoteBuilder is the [builder] for a [Footnote] definition.
// Continuation lines are indented four columns.
type footnoteBuilder struct {
	label string
}

func (b *footnoteBuilder) extend(p *parseState, s line) (line, bool) {
	if !s.trimIndent(4, 4, true) {
		return s, false
	}
	return s, true
}

func (b *footnoteBuilder) done(p *parseState) Block {
	if p.footnotes == nil {
		p.footnotes = make(map[string]*Footnote)
	}
	p.footnotes[normalizeLabel(b.label)] = &Footnote{p.pos(), b.label, p.blocks()}
	return &Empty{p.pos()}
}
