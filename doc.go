// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

// A Document is the root [Block] of a parsed file.
type Document struct {
	Position
	Blocks []Block

	// Links is the reference definition table: normalized link label
	// to destination and title. The first definition of a label wins.
	Links map[string]*Link
}

func (*Document) Block() {}

func (b *Document) printHTML(p *printer) {
	for _, c := range b.Blocks {
		c.printHTML(p)
	}
}

func (b *Document) printMarkdown(p *printer) {
	printMarkdownBlocks(b.Blocks, p)

	// Terminate with a single newline.
	text := p.buf.Bytes()
	w := len(text)
	for w > 0 && text[w-1] == '\n' {
		w--
	}
	p.buf.Truncate(w)
	if w > 0 {
		p.nl()
	}

	if len(b.Links) > 0 {
		if p.buf.Len() > 0 {
			p.nl()
		}
		printLinks(p, b.Links)
	}
}

func printMarkdownBlocks(bs []Block, p *printer) {
	for bn, b := range bs {
		if bn > 0 {
			p.nl() // end block
			if p.loose > 0 {
				p.nl()
			}
		}
		b.printMarkdown(p)
	}
}

// An Empty is a [Block] representing no block at all.
// It appears where source text occupied lines but produced no
// output, such as a paragraph consumed entirely by reference
// definitions; the line span is preserved because blank separation
// decides whether lists are loose.
type Empty struct {
	Position
}

func (*Empty) Block() {}

func (b *Empty) printHTML(p *printer) {}

func (b *Empty) printMarkdown(p *printer) {}

// A BlankLine is a [Block] representing a blank line.
// The parser does not produce BlankLines, recording blank separation
// in block positions instead, but synthesized trees can use them to
// force separation when printed as Markdown.
type BlankLine struct {
	Position
}

func (*BlankLine) Block() {}

func (b *BlankLine) printHTML(p *printer) {}

func (b *BlankLine) printMarkdown(p *printer) {
	p.nl()
}
