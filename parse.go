// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package mdtree implements parsing, rendering, and formatting of Markdown
text, following the CommonMark specification with the common GitHub
extensions (tables, strikethrough, autolinks, footnotes) available as
options.

[Parser.Parse] converts Markdown text into a [Document] tree of [Block]
values with [Inline] leaves. [ToHTML] renders a parsed document as HTML,
and [Format] converts it back to normalized Markdown text.
*/
package mdtree

import (
	"strings"
)

// A Parser is a Markdown parser.
// The exported fields select extensions beyond CommonMark;
// the zero value parses pure CommonMark.
// A Parser is safe for concurrent use: all parse state is
// local to a single Parse call.
type Parser struct {
	// HeadingID enables the extension that parses trailing
	// text like "{#id}" in a heading as the heading's HTML id.
	HeadingID bool

	// Strikethrough enables the extension that parses
	// ~text~ and ~~text~~ as struck-through text.
	Strikethrough bool

	// Table enables the table extension.
	Table bool

	// Footnote enables the footnote extension:
	// [^label]: definitions and [^label] references.
	Footnote bool

	// AutoLinkText enables the extension that
	// turns web addresses in ordinary text into links.
	AutoLinkText bool

	// AutoLinkAssumeHTTP assumes that a link in plain text
	// with no scheme, like www.example.com, is an HTTP link.
	AutoLinkAssumeHTTP bool

	// SmartDot enables the replacement of three dots with a
	// horizontal ellipsis.
	SmartDot bool

	// SmartDash enables the replacement of -- with an en dash
	// and --- with an em dash.
	SmartDash bool

	// SmartQuote enables the replacement of ' and " with
	// curly quotes.
	SmartQuote bool
}

// A Position describes the source extent of a block:
// the first and last line it occupies, both 1-based and inclusive.
type Position struct {
	StartLine int
	EndLine   int
}

func (p Position) Pos() Position {
	return p
}

// A Block is a top-level structural element of a document:
// a paragraph, heading, list, and so on.
// Blocks are immutable once the parser has built them.
type Block interface {
	Pos() Position
	printHTML(*printer)
	printMarkdown(*printer)
	Block()
}

// Parse parses the Markdown text and returns the document tree.
// Malformed Markdown does not produce errors; text that fails to
// parse as a construct is taken literally.
func (p *Parser) Parse(text string) *Document {
	d, _ := p.parse(text)
	return d
}

// parse is Parse but additionally reports whether the input landed on
// a known corner case where other implementations disagree, so that
// cross-checking tests know to skip the comparison.
func (p *Parser) parse(text string) (d *Document, corner bool) {
	var ps parseState
	ps.Parser = p
	if strings.Contains(text, "\x00") {
		text = strings.ReplaceAll(text, "\x00", "�")
		ps.corner = true // goldmark rejects NUL
	}

	ps.lineDepth = -1
	ps.addBlock(&rootBuilder{})
	ps.lineDepth = 0
	for text != "" {
		var ln string
		var nl byte
		if i := strings.IndexAny(text, "\r\n"); i >= 0 {
			ln, nl = text[:i], text[i]
			text = text[i+1:]
			if nl == '\r' && text != "" && text[0] == '\n' {
				text = text[1:]
			}
		} else {
			ln, nl, text = text, 0, ""
		}
		ps.lineno++
		ps.addLine(makeLine(ln, nl))
	}
	ps.stack[0].pos.EndLine = ps.lineno
	ps.trimStack(0)

	// Block structure is final, and with it the reference definition
	// table, so the deferred inline text can now be resolved.
	for _, t := range ps.texts {
		t.Inline = ps.inline(t.raw)
		t.raw = ""
	}

	return ps.root, ps.corner
}

// parseState is the state of a single Parse call.
type parseState struct {
	*Parser

	root   *Document
	links  map[string]*Link
	lineno int

	// Open-block stack. stack[0] is the document; the block at the
	// top is the innermost still-open block. Each line is matched
	// against the stack outermost first.
	stack     []openBlock
	lineDepth int // how many stack entries the current line has matched

	corner bool // known cross-implementation disagreement seen

	// Inline scanner state (see inline.go).
	s       string
	emitted int // s[:emitted] is already flushed into out
	out     []Inline

	ticks tickScanner

	// Failed terminator searches memoized by the raw-HTML scanner,
	// valid for the current inline text.
	noCommentEnd  bool
	noProcInstEnd bool
	noCDATAEnd    bool
	noDeclEnd     bool

	footnotes map[string]*Footnote

	// Text nodes awaiting deferred inline parsing.
	texts []*Text
}

// An openBlock is one entry of the open-block stack:
// a builder accumulating input plus the closed children so far.
type openBlock struct {
	builder builder
	inner   []Block
	pos     Position
}

// A builder accumulates the content of one open block.
//
// extend offers the builder the current line. It returns the
// remainder for inner blocks and true, or the line unconsumed and
// false if the builder cannot contain it (which closes the block).
// Returning an empty line and true means the builder consumed the
// whole line.
//
// done converts the accumulated content into the finished immutable
// Block. It is called while the block is still on the stack, so it
// can use p.pos and p.blocks.
type builder interface {
	extend(p *parseState, s line) (line, bool)
	done(p *parseState) Block
}

// An opener tries to start a new block at the current line,
// returning the unclaimed remainder of the line and whether it
// succeeded. On failure the line must be returned unmodified.
type opener func(p *parseState, s line) (line, bool)

// openers lists the block start rules in precedence order.
// The shapes are disjoint, so for any given line at most one rule
// fires; the order settles the deliberate ambiguities:
// a setext underline is tried before a thematic break so that "---"
// directly under a paragraph underlines it, and both are tried
// before list items so that "- - -" with internal spacing breaks
// rather than starting a list.
var openers = []opener{
	tryIndentedCode,
	tryFencedCode,
	tryBlockQuote,
	tryATXHeading,
	trySetextHeading,
	tryThematicBreak,
	tryListItem,
	tryFootnoteDef,
	tryHTMLBlock,
	tryParagraph,
}

// addLine advances the parse by one line.
//
// The line is first matched against the open blocks, outermost first.
// Matching stops at the first open block whose continuation marker is
// missing. What remains of the line is then offered to the openers,
// each success deepening the match by the newly opened block, until
// the line is consumed. Unmatched open blocks are not closed
// immediately: a paragraph may claim the line as lazy continuation
// text, keeping every block above it alive; any other outcome trims
// the unmatched blocks off the stack.
func (p *parseState) addLine(s line) {
	p.lineDepth = 0
	for ; p.lineDepth+1 < len(p.stack); p.lineDepth++ {
		old := s
		var ok bool
		s, ok = p.stack[p.lineDepth+1].builder.extend(p, s)
		if !old.isBlank() && (ok || s != old) {
			p.stack[p.lineDepth+1].pos.EndLine = p.lineno
		}
		if !ok {
			break
		}
	}

	if s.isBlank() {
		p.trimStack(p.lineDepth + 1)
		return
	}

Retry:
	for _, try := range openers {
		if t, ok := try(p, s); ok {
			s = t
			if s.isBlank() {
				return
			}
			p.lineDepth++
			goto Retry
		}
	}

	// tryParagraph consumes every line offered to it.
	panic("mdtree: line not consumed")
}

// trimStack closes open blocks until only depth of them remain.
func (p *parseState) trimStack(depth int) {
	if len(p.stack) < depth {
		panic("mdtree: trimStack underflow")
	}
	for len(p.stack) > depth {
		p.closeBlock()
	}
}

// closeBlock closes the innermost open block, appending the finished
// block to its parent. Closing the document root records it in p.root.
func (p *parseState) closeBlock() Block {
	b := &p.stack[len(p.stack)-1]
	blk := b.builder.done(p)
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) > 0 {
		ob := &p.stack[len(p.stack)-1]
		ob.inner = append(ob.inner, blk)
	} else {
		p.root = blk.(*Document)
	}
	return blk
}

// addBlock pushes a new open block at the current line depth,
// closing any open blocks below it.
func (p *parseState) addBlock(c builder) {
	if p.lineDepth >= 0 {
		p.trimStack(p.lineDepth + 1)
	}
	p.stack = append(p.stack, openBlock{
		builder: c,
		pos:     Position{p.lineno, p.lineno},
	})
}

// doneBlock adds a completed block at the current line depth,
// closing any open blocks below it.
func (p *parseState) doneBlock(b Block) {
	p.trimStack(p.lineDepth + 1)
	ob := &p.stack[len(p.stack)-1]
	ob.inner = append(ob.inner, b)
}

// para returns the innermost open block's builder if it is a
// paragraph, or nil. A non-nil result means the current line may be
// paragraph continuation text.
func (p *parseState) para() *paraBuilder {
	if b, ok := p.stack[len(p.stack)-1].builder.(*paraBuilder); ok {
		return b
	}
	return nil
}

// curB returns the builder of the deepest open block the current
// line has matched.
func (p *parseState) curB() builder {
	if p.lineDepth < len(p.stack) {
		return p.stack[p.lineDepth].builder
	}
	return nil
}

// nextB returns the builder of the first open block the current line
// has not matched.
func (p *parseState) nextB() builder {
	if p.lineDepth+1 < len(p.stack) {
		return p.stack[p.lineDepth+1].builder
	}
	return nil
}

// blocks returns the closed children of the innermost open block.
func (p *parseState) blocks() []Block {
	return p.stack[len(p.stack)-1].inner
}

// pos returns the position of the innermost open block.
func (p *parseState) pos() Position {
	return p.stack[len(p.stack)-1].pos
}

// last returns the most recently closed child of the innermost open
// block.
func (p *parseState) last() Block {
	ob := &p.stack[len(p.stack)-1]
	return ob.inner[len(ob.inner)-1]
}

// deleteLast removes the most recently closed child of the innermost
// open block.
func (p *parseState) deleteLast() {
	ob := &p.stack[len(p.stack)-1]
	ob.inner = ob.inner[:len(ob.inner)-1]
}

// newText allocates a Text whose inline content will be parsed once
// the whole document's block structure is known.
func (p *parseState) newText(pos Position, text string) *Text {
	b := &Text{Position: pos, raw: text}
	p.texts = append(p.texts, b)
	return b
}

// link looks up a reference definition by normalized label.
func (p *parseState) link(label string) *Link {
	return p.links[label]
}

// defineLink records a reference definition.
// The first definition of a label wins; later ones are ignored.
func (p *parseState) defineLink(label string, link *Link) {
	if p.links == nil {
		p.links = make(map[string]*Link)
	}
	if _, ok := p.links[label]; !ok {
		p.links[label] = link
	}
}

// A rootBuilder is the builder for the document itself,
// the permanent bottom entry of the open-block stack.
type rootBuilder struct{}

func (b *rootBuilder) extend(p *parseState, s line) (line, bool) {
	panic("mdtree: extend on document root")
}

func (b *rootBuilder) done(p *parseState) Block {
	return &Document{p.pos(), p.blocks(), p.links}
}
