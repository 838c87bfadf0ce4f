// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

// A line is a cursor over one physical input line.
// The line ending has been split off into nl; text never contains a
// newline.
//
// Indentation is measured in columns with tab stops every four
// columns, and container markers may claim part of a tab's width.
// The spaces field holds credit from a partially consumed tab: a tab
// that expands to four columns of which only one was needed leaves
// spaces == 3.
type line struct {
	spaces   int    // pending space credit from a partly consumed tab
	i        int    // byte offset into text
	tab      int    // offset just past the last consumed tab, for tab stop math
	text     string // line content without the line ending
	nl       byte   // line ending: '\n', '\r' (bare or start of \r\n), or 0 at EOF
	nonblank int    // offset of first non-space, non-tab byte; len(text) if none
}

func makeLine(text string, nl byte) line {
	s := line{text: text, nl: nl}
	s.setNonblank()
	return s
}

func (s *line) setNonblank() {
	i := s.i
	for i < len(s.text) && (s.text[i] == ' ' || s.text[i] == '\t') {
		i++
	}
	s.nonblank = i
}

// peek returns the next byte without consuming it.
// Pending space credit reads as a space; end of line reads as 0.
func (s *line) peek() byte {
	if s.spaces > 0 {
		return ' '
	}
	if s.i >= len(s.text) {
		return 0
	}
	return s.text[s.i]
}

// skipSpace discards leading spaces and tabs along with any pending
// space credit.
func (s *line) skipSpace() {
	s.spaces = 0
	if s.nonblank < s.i {
		panic("mdtree: nonblank behind cursor")
	}
	s.i = s.nonblank
}

// trimIndent consumes between min and max columns of indentation,
// reporting whether at least min columns were available.
// A partly used tab leaves credit in s.spaces. If eolOK is set, the
// end of the line counts as an unlimited run of spaces, so blank
// lines satisfy any indent. On failure s is unmodified.
func (s *line) trimIndent(min, max int, eolOK bool) bool {
	t := *s
	for n := 0; n < max; n++ {
		if t.spaces > 0 {
			t.spaces--
			continue
		}
		if t.i >= len(t.text) && eolOK {
			continue
		}
		if t.i < len(t.text) {
			switch t.text[t.i] {
			case '\t':
				t.spaces = 4 - (t.i-t.tab)&3 - 1
				t.i++
				t.tab = t.i
				continue
			case ' ':
				t.i++
				continue
			}
		}
		if n >= min {
			break
		}
		return false
	}
	if t.nonblank < t.i {
		t.setNonblank()
	}
	*s = t
	return true
}

// trimByte consumes c if it is the next byte, reporting success.
func (s *line) trimByte(c byte) bool {
	if s.spaces > 0 {
		if c == ' ' {
			s.spaces--
			return true
		}
		return false
	}
	if s.i < len(s.text) && s.text[s.i] == c {
		s.i++
		if s.nonblank < s.i {
			s.setNonblank()
		}
		return true
	}
	return false
}

// skip advances the cursor n bytes without interpretation.
func (s *line) skip(n int) {
	s.i += n
	if s.nonblank < s.i {
		s.setNonblank()
	}
}

// string returns the unconsumed remainder of the line,
// materializing any pending space credit.
func (s *line) string() string {
	switch s.spaces {
	case 0:
		return s.text[s.i:]
	case 1:
		return " " + s.text[s.i:]
	case 2:
		return "  " + s.text[s.i:]
	case 3:
		return "   " + s.text[s.i:]
	}
	panic("mdtree: bad space credit")
}

func (s *line) isBlank() bool {
	return s.nonblank == len(s.text)
}

func (s *line) eof() bool {
	return s.i >= len(s.text)
}

// restString returns the remainder of the line past any leading
// spaces and tabs.
func (s *line) restString() string {
	return s.text[s.nonblank:]
}

// trimmedString returns the remainder with surrounding spaces and
// tabs removed.
func (s *line) trimmedString() string {
	if s.nonblank < s.i {
		panic("mdtree: nonblank behind cursor")
	}
	return trimSpaceTab(s.text[s.nonblank:])
}

func trimLeftSpaceTab(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

func trimRightSpaceTab(s string) string {
	j := len(s)
	for j > 0 && (s[j-1] == ' ' || s[j-1] == '\t') {
		j--
	}
	return s[:j]
}

func trimSpaceTab(s string) string {
	return trimRightSpaceTab(trimLeftSpaceTab(s))
}

func trimSpaceTabNewline(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i++
	}
	s = s[i:]
	j := len(s)
	for j > 0 && (s[j-1] == ' ' || s[j-1] == '\t' || s[j-1] == '\n') {
		j--
	}
	return s[:j]
}
