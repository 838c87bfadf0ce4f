// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"strings"
)

// A CodeBlock is a [Block] representing an indented or fenced code
// block, rendered in <pre><code> tags. An indented block has
// Fence == "".
//
// When printing a CodeBlock as Markdown, Fence is used as a starting
// hint but is lengthened as needed if the fence text appears in Text.
type CodeBlock struct {
	Position
	Fence string   // opening fence, or "" for an indented block
	Info  string   // info string following the open fence
	Text  []string // lines of the code block
}

func (*CodeBlock) Block() {}

func (b *CodeBlock) printHTML(p *printer) {
	p.html("<pre><code")
	if b.Info != "" {
		// The first space-separated word of the info string names
		// the language.
		lang := b.Info
		for i, c := range lang {
			if isUnicodeSpace(c) {
				lang = lang[:i]
				break
			}
		}
		p.html(` class="language-`)
		p.text(lang)
		p.html(`"`)
	}
	p.WriteString(">")
	for _, s := range b.Text {
		p.text(s, "\n")
	}
	p.html("</code></pre>\n")
}

func (b *CodeBlock) printMarkdown(p *printer) {
	if b.Fence == "" {
		p.maybeNL()
		for i, line := range b.Text {
			if i > 0 {
				p.nl()
			}
			p.md("    ")
			p.md(line)
			p.noTrim()
		}
		return
	}

	fence := b.Fence
	if fence == "" {
		fence = "```"
	}
	// Lengthen the fence until it cannot close early.
	for lineHasRun(b.Text, fence) {
		fence += fence[:1]
	}
	if p.tight == 0 {
		p.maybeNL()
	}
	p.md(fence)
	p.md(b.Info)
	for _, line := range b.Text {
		p.nl()
		p.md(line)
		p.noTrim()
	}
	p.nl()
	p.md(fence)
}

// lineHasRun reports whether any line of text consists of fence's
// character repeated at least len(fence) times, after indentation.
func lineHasRun(text []string, fence string) bool {
	for _, s := range text {
		t := trimLeftSpaceTab(s)
		if strings.HasPrefix(t, fence) && strings.Trim(t, fence[:1]) == "" {
			return true
		}
	}
	return false
}

// tryIndentedCode is an [opener] for an indented [CodeBlock].
// Indented code cannot interrupt a paragraph: an over-indented line
// under an open paragraph is continuation text.
func tryIndentedCode(p *parseState, s line) (line, bool) {
	peek := s
	if p.para() != nil || !peek.trimIndent(4, 4, false) || peek.isBlank() {
		return s, false
	}

	b := &indentBuilder{}
	p.addBlock(b)
	if peek.nl != '\n' {
		p.corner = true // goldmark does not normalize to \n
	}
	b.text = append(b.text, peek.string())
	return line{}, true
}

// tryFencedCode is an [opener] for a fenced [CodeBlock].
func tryFencedCode(p *parseState, s line) (line, bool) {
	indent, fence, info, ok := trimFence(&s)
	if !ok {
		return s, false
	}

	// Note cross-implementation disagreements, for testing.
	if fence[0] == '~' && info != "" {
		// goldmark drops info after ~~~
		p.corner = true
	} else if info != "" && !isLetter(info[0]) {
		// goldmark does not allow numbered info and does not treat
		// a tab as starting a new word
		p.corner = true
	}
	for _, c := range info {
		if isUnicodeSpace(c) {
			if c != ' ' {
				// goldmark only breaks on space
				p.corner = true
			}
			break
		}
	}

	p.addBlock(&fenceBuilder{indent: indent, fence: fence, info: info})
	return line{}, true
}

// trimFence trims leading indentation (up to 3 spaces), a code fence
// of at least 3 backticks or tildes, and an info string from s,
// leaving s empty on success. On failure s is unmodified.
func trimFence(s *line) (indent int, fence, info string, ok bool) {
	t := *s
	for indent < 3 && t.trimIndent(1, 1, false) {
		indent++
	}
	c := t.peek()
	if c != '`' && c != '~' {
		return
	}

	f := t.string()
	n := 0
	for t.trimByte(c) {
		n++
	}
	if n < 3 {
		return
	}

	txt := mdUnescaper.Replace(t.trimmedString())
	if c == '`' && strings.Contains(txt, "`") {
		return
	}
	info = trimSpaceTab(txt)
	fence = f[:n]
	ok = true
	*s = line{}
	return
}

// An indentBuilder is the [builder] for an indented [CodeBlock].
type indentBuilder struct {
	text []string
}

func (b *indentBuilder) extend(p *parseState, s line) (line, bool) {
	// Continuation lines start with 4 columns of indentation or are
	// blank.
	if !s.trimIndent(4, 4, true) {
		return s, false
	}
	b.text = append(b.text, s.string())
	if s.nl != '\n' {
		p.corner = true // goldmark does not normalize to \n
	}
	return line{}, true
}

func (b *indentBuilder) done(p *parseState) Block {
	// Trailing blank lines separate the block from what follows;
	// they are not content.
	for len(b.text) > 0 && b.text[len(b.text)-1] == "" {
		b.text = b.text[:len(b.text)-1]
	}
	return &CodeBlock{p.pos(), "", "", b.text}
}

// A fenceBuilder is the [builder] for a fenced [CodeBlock].
type fenceBuilder struct {
	indent int
	fence  string
	info   string
	text   []string
}

func (b *fenceBuilder) extend(p *parseState, s line) (line, bool) {
	// A closing fence must be at least as long as the opening one,
	// with no info string. It may be indented less than the opening
	// fence. Consuming it closes the block: report the line taken
	// but the block unable to continue.
	peek := s
	if _, fence, info, ok := trimFence(&peek); ok && strings.HasPrefix(fence, b.fence) && info == "" {
		return line{}, false
	}

	// Content lines give back at most the opening fence's indentation.
	if !s.trimIndent(b.indent, b.indent, false) {
		p.corner = true // goldmark mishandles blank lines with less indentation
		s.trimIndent(0, b.indent, false)
	}

	b.text = append(b.text, s.string())
	p.corner = p.corner || s.nl != '\n' // goldmark does not normalize to \n
	return line{}, true
}

func (b *fenceBuilder) done(p *parseState) Block {
	return &CodeBlock{p.pos(), b.fence, b.info, b.text}
}
