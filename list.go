// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"fmt"
	"strings"
)

// A List is a [Block] representing a bullet or ordered list.
// All its Items use the same marker; a change of marker character,
// or between bullet and ordered form, starts a new List.
type List struct {
	Position

	// Bullet is the marker character:
	// '-', '*', or '+' for a bullet list,
	// '.' or ')' for an ordered list (the byte after the number).
	Bullet rune

	// Start is the number of the first item of an ordered list.
	Start int

	// Loose reports whether any items are separated by blank lines,
	// in which case every item's text renders in <p> tags.
	Loose bool

	Items []Block // always *Item
}

func (*List) Block() {}

// An Item is a [Block] holding one item of a [List].
type Item struct {
	Position
	Blocks []Block
}

func (*Item) Block() {}

func (b *List) ordered() bool {
	return b.Bullet == '.' || b.Bullet == ')'
}

func (b *List) printHTML(p *printer) {
	if b.ordered() {
		p.html("<ol")
		if b.Start != 1 {
			fmt.Fprintf(p, ` start="%d"`, b.Start)
		}
		p.html(">\n")
	} else {
		p.html("<ul>\n")
	}
	for _, c := range b.Items {
		c.printHTML(p)
	}
	if b.ordered() {
		p.html("</ol>\n")
	} else {
		p.html("</ul>\n")
	}
}

func (b *Item) printHTML(p *printer) {
	p.html("<li>")
	if len(b.Blocks) > 0 {
		if _, ok := b.Blocks[0].(*Text); !ok {
			p.html("\n")
		}
	}
	for i, c := range b.Blocks {
		c.printHTML(p)
		if i+1 < len(b.Blocks) {
			if _, ok := c.(*Text); ok {
				p.html("\n")
			}
		}
	}
	p.html("</li>\n")
}

func (b *List) printMarkdown(p *printer) {
	if p.tight == 0 {
		p.maybeNL()
	}
	num := b.Start
	for i, item := range b.Items {
		if i > 0 {
			p.nl()
			if b.Loose {
				p.nl()
			}
		}
		var marker string
		if b.ordered() {
			marker = fmt.Sprintf("%d%c ", num, b.Bullet)
			num++
		} else {
			marker = fmt.Sprintf("%c ", b.Bullet)
		}
		p.md(marker)
		b.printItem(p, item.(*Item), strings.Repeat(" ", len(marker)))
	}
}

func (b *List) printItem(p *printer, item *Item, indent string) {
	defer p.pop(p.push(indent))
	out := p.listOut
	if b.Loose {
		p.loose++
	} else {
		// A tight list suppresses the blank-line separation that any
		// enclosing loose list would otherwise impose.
		p.loose = 0
		p.tight++
	}
	printMarkdownBlocks(item.Blocks, p)
	p.listOut = out
}

func (b *Item) printMarkdown(p *printer) {
	// Items print through their List, which owns the marker.
	printMarkdownBlocks(b.Blocks, p)
}

// A listBuilder is the [builder] for a [List].
// Items are its child blocks; the builder tracks the currently open
// item to know the continuation indentation.
type listBuilder struct {
	bullet rune
	num    int
	loose  bool
	ended  bool // two consecutive blank lines ended the list
	item   *itemBuilder

	// todo defers pushing a parsed item marker onto the stack.
	// tryListItem runs twice per marker: once to claim the line for
	// the list and once more, a level deeper, to open the item.
	todo func() line
}

// An itemBuilder is the [builder] for an [Item].
type itemBuilder struct {
	list        *listBuilder
	width       int // columns of indentation that continue the item
	haveContent bool
	blanks      int // consecutive blank lines seen
}

func (b *listBuilder) extend(p *parseState, s line) (line, bool) {
	if b.ended {
		return s, false
	}
	d := b.item
	if d != nil && s.trimIndent(d.width, d.width, true) || d == nil && s.isBlank() {
		return s, true
	}
	return s, false
}

func (b *itemBuilder) extend(p *parseState, s line) (line, bool) {
	if s.isBlank() {
		if !b.haveContent {
			// An item cannot begin with a blank line after its
			// marker line.
			return s, false
		}
		b.blanks++
		if b.blanks >= 2 {
			// Two consecutive blank lines end the item and the
			// whole list; a later marker starts a sibling list.
			b.list.ended = true
			return s, false
		}
		return line{}, true
	}
	b.haveContent = true
	b.blanks = 0
	return s, true
}

func (b *listBuilder) done(p *parseState) Block {
	blocks := p.blocks()
	pos := p.pos()

	// The setext close/reopen dance can leave a stale EndLine.
	pos.EndLine = blocks[len(blocks)-1].Pos().EndLine
Loose:
	for i, c := range blocks {
		c := c.(*Item)
		if i+1 < len(blocks) {
			if blocks[i+1].Pos().StartLine-c.EndLine > 1 {
				b.loose = true
				break Loose
			}
		}
		for j, d := range c.Blocks {
			endLine := d.Pos().EndLine
			if j+1 < len(c.Blocks) {
				if c.Blocks[j+1].Pos().StartLine-endLine > 1 {
					b.loose = true
					break Loose
				}
			}
		}
	}

	if !b.loose {
		// Tight list: item paragraphs render bare.
		for _, c := range blocks {
			c := c.(*Item)
			for i, d := range c.Blocks {
				if para, ok := d.(*Paragraph); ok {
					c.Blocks[i] = para.Text
				}
			}
		}
	}

	return &List{
		Position: pos,
		Bullet:   b.bullet,
		Start:    b.num,
		Loose:    b.loose,
		Items:    blocks,
	}
}

func (b *itemBuilder) done(p *parseState) Block {
	b.list.item = nil
	return &Item{p.pos(), p.blocks()}
}

// tryListItem is an [opener] for a list [Item], opening a new [List]
// as needed.
func tryListItem(p *parseState, s line) (line, bool) {
	if list, ok := p.curB().(*listBuilder); ok && list.todo != nil {
		s = list.todo()
		list.todo = nil
		return s, true
	}
	if p.startListItem(&s) {
		return s, true
	}
	return s, false
}

func (p *parseState) startListItem(s *line) bool {
	t := *s
	n := 0
	for i := 0; i < 3; i++ {
		if !t.trimIndent(1, 1, false) {
			break
		}
		n++
	}
	bullet := t.peek()
	var num int
Switch:
	switch bullet {
	default:
		return false
	case '-', '*', '+':
		t.trimByte(bullet)
		n++
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		for j := t.i; ; j++ {
			if j >= len(t.text) {
				return false
			}
			c := t.text[j]
			if c == '.' || c == ')' {
				bullet = c
				j++
				n += j - t.i
				t.i = j
				break Switch
			}
			if c < '0' || '9' < c {
				return false
			}
			if j-t.i >= 9 {
				return false
			}
			num = num*10 + int(c) - '0'
		}
	}

	// The marker must be followed by a space (or end of line).
	if !t.trimIndent(1, 1, true) {
		return false
	}
	n++

	// Up to 3 more leading spaces belong to the marker width;
	// 4 or more leave an indented code block inside the item.
	tt := t
	m := 0
	for i := 0; i < 3 && tt.trimIndent(1, 1, false); i++ {
		m++
	}
	if !tt.trimIndent(1, 1, true) {
		n += m
		t = tt
	}

	// Point of no return.

	var list *listBuilder
	if c, ok := p.nextB().(*listBuilder); ok && !c.ended {
		list = c
	}
	if list == nil || list.bullet != rune(bullet) {
		// A list item interrupting a paragraph must not begin with
		// a blank line, and an ordered one must start at 1.
		if list == nil && p.para() != nil && (t.isBlank() || num > 1) {
			return false
		}
		list = &listBuilder{bullet: rune(bullet), num: num}
		p.addBlock(list)
	}
	b := &itemBuilder{list: list, width: n, haveContent: !t.isBlank()}
	list.todo = func() line {
		p.addBlock(b)
		list.item = b
		return t
	}
	return true
}
