// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

// A ThematicBreak is a [Block] representing a thematic break,
// rendered as a horizontal rule (<hr> tag).
type ThematicBreak struct {
	Position
}

func (*ThematicBreak) Block() {}

func (b *ThematicBreak) printHTML(p *printer) {
	p.html("<hr />\n")
}

func (b *ThematicBreak) printMarkdown(p *printer) {
	p.maybeNL()
	// Asterisks cannot be mistaken for a setext underline or a list
	// marker followed by content.
	p.md("***")
}

// tryThematicBreak is an [opener] for a [ThematicBreak].
func tryThematicBreak(p *parseState, s line) (line, bool) {
	if !trimThematicBreak(&s) {
		return s, false
	}
	p.doneBlock(&ThematicBreak{Position{p.lineno, p.lineno}})
	return line{}, true
}

// trimThematicBreak trims a thematic break from s, reporting whether
// it was present: three or more of the same -, _, or * character,
// with any spacing between, and nothing else. On failure s is
// unmodified.
func trimThematicBreak(s *line) bool {
	t := *s
	t.trimIndent(0, 3, false)
	c := t.peek()
	if c != '-' && c != '_' && c != '*' {
		return false
	}
	for i := 0; ; i++ {
		if !t.trimByte(c) {
			if i < 3 {
				return false
			}
			break
		}
		t.skipSpace()
	}
	if !t.eof() {
		return false
	}
	*s = line{}
	return true
}

// A HardBreak is an [Inline] representing a hard line break
// (<br> tag).
type HardBreak struct{}

func (*HardBreak) Inline() {}

func (x *HardBreak) printHTML(p *printer) {
	p.html("<br />\n")
}

func (x *HardBreak) printMarkdown(p *printer) {
	p.md(`\`)
	p.nl()
}

func (x *HardBreak) printText(p *printer) {
	p.text("\n")
}

// A SoftBreak is an [Inline] representing a soft line break,
// rendered as a newline.
type SoftBreak struct{}

func (*SoftBreak) Inline() {}

func (x *SoftBreak) printHTML(p *printer) {
	p.html("\n")
}

func (x *SoftBreak) printMarkdown(p *printer) {
	p.nl()
}

func (x *SoftBreak) printText(p *printer) {
	p.text("\n")
}

// parseBreak is an [inlineParser] for a [SoftBreak] or [HardBreak].
// The caller has checked that s[start] is a newline.
func parseBreak(p *parseState, s string, start int) (x Inline, end int, ok bool) {
	// Trailing spaces and tabs before the newline are not content.
	i := start
	for i > 0 && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}
	if i < start {
		// The caller flushes up to start; flush up to i ourselves
		// and skip the trailing spaces.
		p.flushText(i)
		p.skipText(start)
	}

	end = start + 1
	if start >= 2 && s[start-1] == ' ' && s[start-2] == ' ' {
		return &HardBreak{}, end, true
	}
	return &SoftBreak{}, end, true
}
