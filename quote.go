// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

// A BlockQuote is a [Block] representing a quoted region:
// lines prefixed with >, rendered in <blockquote> tags.
type BlockQuote struct {
	Position
	Blocks []Block
}

func (*BlockQuote) Block() {}

func (b *BlockQuote) printHTML(p *printer) {
	p.html("<blockquote>\n")
	for _, c := range b.Blocks {
		c.printHTML(p)
	}
	p.html("</blockquote>\n")
}

func (b *BlockQuote) printMarkdown(p *printer) {
	p.maybeQuoteNL('>')
	p.WriteString("> ")
	defer p.pop(p.push("> "))
	printMarkdownBlocks(b.Blocks, p)
}

// A quoteBuilder is the [builder] for a [BlockQuote].
// The quote marker claims the > and at most one following space;
// further indentation belongs to the blocks inside.
type quoteBuilder struct{}

// tryBlockQuote is an [opener] for a [BlockQuote].
func tryBlockQuote(p *parseState, s line) (line, bool) {
	t, ok := trimQuote(s)
	if !ok {
		return s, false
	}
	p.addBlock(new(quoteBuilder))
	return t, true
}

func trimQuote(s line) (line, bool) {
	t := s
	t.trimIndent(0, 3, false)
	if !t.trimByte('>') {
		return s, false
	}
	t.trimIndent(0, 1, true)
	return t, true
}

func (b *quoteBuilder) extend(p *parseState, s line) (line, bool) {
	return trimQuote(s)
}

func (b *quoteBuilder) done(p *parseState) Block {
	return &BlockQuote{p.pos(), p.blocks()}
}
