// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"strings"
	"unicode/utf8"
)

// An Inline is an inline Markdown element, one of
// [Literal], [Escaped], [CodeSpan], [Emphasis], [Strong], [Strike],
// [Link], [Image], [AutoLink], [RawHTML],
// [SoftBreak], [HardBreak], and [FootnoteLink].
type Inline interface {
	Inline()

	printHTML(*printer)
	printText(*printer)
	printMarkdown(*printer)
}

// An Inlines is an [Inline] holding a concatenation of Inlines.
type Inlines []Inline

func (Inlines) Inline() {}

func (x Inlines) printText(p *printer) {
	for _, inl := range x {
		inl.printText(p)
	}
}

func (x Inlines) printHTML(p *printer) {
	for _, inl := range x {
		inl.printHTML(p)
	}
}

func (x Inlines) printMarkdown(p *printer) {
	for _, inl := range x {
		inl.printMarkdown(p)
	}
}

// A Literal is an [Inline] holding plain textual content.
// Entity and numeric character references have already been replaced
// by their text.
type Literal struct {
	Text string
}

func (*Literal) Inline() {}

func (x *Literal) printText(p *printer) { p.text(x.Text) }
func (x *Literal) printHTML(p *printer) { p.text(x.Text) }

func (x *Literal) printMarkdown(p *printer) {
	for i, line := range strings.Split(x.Text, "\n") {
		if i > 0 {
			p.nl()
		}
		p.WriteString(line)
		p.noTrim()
	}
}

// An Escaped is an [Inline] holding a backslash-escaped punctuation
// character (without the backslash).
type Escaped struct {
	Literal
}

func (x *Escaped) printMarkdown(p *printer) {
	p.md(`\`)
	p.md(x.Text)
}

// A CodeSpan is an [Inline] holding a backtick-delimited code span.
type CodeSpan struct {
	Text string
}

func (*CodeSpan) Inline() {}

func (x *CodeSpan) printText(p *printer) { p.text(x.Text) }

func (x *CodeSpan) printHTML(p *printer) {
	p.html(`<code>`)
	p.text(x.Text)
	p.html(`</code>`)
}

var backtickRun = strings.Repeat("`", 64)

func (x *CodeSpan) printMarkdown(p *printer) {
	// Use the shortest delimiter that cannot close early,
	// padding with spaces if the content starts or ends with `.
	n := maxRun(x.Text, '`') + 1
	printBackticks(p, n)

	// Empty code is not expressible; print ` ` rather than nothing.
	space := len(x.Text) == 0 || x.Text[0] == '`' || x.Text[len(x.Text)-1] == '`'
	if space {
		p.WriteByte(' ')
	}
	p.WriteString(x.Text)
	if space {
		p.WriteByte(' ')
	}

	printBackticks(p, n)
}

// maxRun returns the length of the longest run of b bytes in s.
func maxRun(s string, b byte) int {
	m := 0
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			n++
			m = max(m, n)
		} else {
			n = 0
		}
	}
	return m
}

func printBackticks(p *printer, n int) {
	for n > len(backtickRun) {
		p.md(backtickRun)
		n -= len(backtickRun)
	}
	p.md(backtickRun[:n])
}

// A Strong is an [Inline] representing strong emphasis (bold text).
type Strong struct {
	Marker string
	Inner  Inlines
}

func (*Strong) Inline() {}

func (x *Strong) printText(p *printer) { x.Inner.printText(p) }

func (x *Strong) printHTML(p *printer) {
	p.html("<strong>")
	x.Inner.printHTML(p)
	p.html("</strong>")
}

func (x *Strong) printMarkdown(p *printer) {
	p.md(x.Marker)
	x.Inner.printMarkdown(p)
	p.md(x.Marker)
}

// An Emphasis is an [Inline] representing emphasized (italic) text.
type Emphasis struct {
	Marker string
	Inner  Inlines
}

func (*Emphasis) Inline() {}

func (x *Emphasis) printText(p *printer) { x.Inner.printText(p) }

func (x *Emphasis) printHTML(p *printer) {
	p.html("<em>")
	x.Inner.printHTML(p)
	p.html("</em>")
}

func (x *Emphasis) printMarkdown(p *printer) {
	p.md(x.Marker)
	x.Inner.printMarkdown(p)
	p.md(x.Marker)
}

// A Strike is an [Inline] representing struck-through text,
// from the strikethrough extension.
type Strike struct {
	Marker string
	Inner  Inlines
}

func (*Strike) Inline() {}

func (x *Strike) printText(p *printer) { x.Inner.printText(p) }

func (x *Strike) printHTML(p *printer) {
	p.html("<del>")
	x.Inner.printHTML(p)
	p.html("</del>")
}

func (x *Strike) printMarkdown(p *printer) {
	p.WriteString(x.Marker)
	x.Inner.printMarkdown(p)
	p.WriteString(x.Marker)
}

// Parsing inlines.
//
// The scanner walks the text once, pushing finished leaf inlines
// (escapes, entities, code spans, raw HTML, breaks) and unresolved
// opening markers onto a flat stack as it goes; plain text between
// them is pushed as Literal. A closing ] tries to match the most
// recent unmatched [ or ![, turning the stack content in between into
// a Link or Image; emphasis markers are resolved afterward, because
// brackets bind tighter than emphasis: in "*nice [link*](/x)" the *
// outside the brackets cannot match the one inside.
//
// Link text can contain images but not other links, even transitively
// through an image's alt content. An unmatched opening marker of any
// kind degrades to its literal text.
//
// Care is taken throughout to stay linear: backtick runs and failed
// raw-HTML terminator searches are memoized, and emphasis openers are
// kept on per-class stacks so closers never walk far to find a
// candidate.

// An inlineParser parses s[start:] into an Inline, returning the
// Inline and the index where it ends. If it cannot parse s[start:],
// it reports ok=false. The caller has usually checked that s[start]
// is plausible for this parser.
type inlineParser func(p *parseState, s string, start int) (x Inline, end int, ok bool)

// flushText pushes p.s[p.emitted:i] as literal text, advancing the
// flushed mark to i.
func (p *parseState) flushText(i int) {
	if p.emitted < i {
		p.out = append(p.out, &Literal{p.s[p.emitted:i]})
		p.emitted = i
	}
}

// skipText advances the flushed mark to i without emitting anything.
func (p *parseState) skipText(i int) {
	p.emitted = i
}

// An openMark is an [Inline] holding an opening [ or ![ not yet
// matched to a closing marker. It exists only on the scan stack,
// never in a finished tree; an unmatched openMark degrades to its
// literal text.
type openMark struct {
	Literal
	i int // input position just past the bracket
}

// A delimMark is an [Inline] holding a run of emphasis delimiters
// (* _ ~ and, with smart punctuation, ' ") not yet matched.
// It exists only on the scan stack; an unmatched delimMark degrades
// to its literal text.
type delimMark struct {
	Literal
	canOpen  bool
	canClose bool
	i        int // position in the output list
	n        int // length of the original delimiter run
}

// inline parses s into an Inlines.
// It scans the string into the stack and resolves links and images;
// emphasis resolution is delegated to [parseState.emph].
func (p *parseState) inline(s string) Inlines {
	p.noCommentEnd = false
	p.noProcInstEnd = false
	p.noCDATAEnd = false
	p.noDeclEnd = false
	s = trimSpaceTab(s)

	p.s = s
	p.out = nil
	p.emitted = 0

	var opens []int          // indexes of unmatched openMarks in p.out
	var ignoreLinkBefore int // no link may open before this input offset: no links inside links
	ticksReset := false      // lazy reset of the backtick memo

	for off := 0; off < len(s); {
		var parser inlineParser
		switch s[off] {
		case '\\':
			parser = parseEscape
		case '`':
			if !ticksReset {
				p.ticks.reset()
				ticksReset = true
			}
			parser = p.ticks.parseCodeSpan
		case '<':
			parser = parseAutoLinkOrHTML
		case '[':
			parser = parseLinkOpen
		case '!':
			parser = parseImageOpen
		case '_', '*':
			parser = parseDelim
		case '.':
			if p.SmartDot {
				parser = parseDot
			}
		case '-':
			if p.SmartDash {
				parser = parseDash
			}
		case '"', '\'':
			if p.SmartQuote {
				parser = parseDelim
			}
		case '~':
			if p.Strikethrough {
				parser = parseDelim
			}
		case '\n':
			parser = parseBreak
		case '&':
			parser = parseHTMLEntity
		}

		if parser != nil {
			if x, end, ok := parser(p, s, off); ok {
				p.flushText(off)

				if _, ok := x.(*openMark); ok {
					opens = append(opens, len(p.out))
				}
				p.out = append(p.out, x)

				p.skipText(end)
				off = end
				continue
			}
		}

		// A closing bracket matches the most recent open bracket.
		if s[off] == ']' && len(opens) > 0 {
			oi := opens[len(opens)-1]
			opens = opens[:len(opens)-1]

			// An image may appear anywhere; a link may not open
			// before ignoreLinkBefore, so links never nest.
			open := p.out[oi].(*openMark)
			if open.i >= ignoreLinkBefore || open.Text[0] == '!' {
				if x, end, ok := parseLinkClose(p, s, off, open); ok {
					p.flushText(off)
					x.Inner = p.emph(nil, p.out[oi+1:])
					if open.Text[0] == '!' {
						// Link and Image share a struct layout, so
						// parseLinkClose's *Link converts directly.
						p.out[oi] = (*Image)(x)
					} else {
						p.out[oi] = x
					}
					p.out = p.out[:oi+1]
					p.skipText(end)
					off = end
					if open.Text[0] == '[' {
						ignoreLinkBefore = open.i
					}

					// Goldmark and the Dingus re-escape stray
					// percents as %25; CommonMark does not require it.
					url := x.URL
					for i := 0; i < len(url); i++ {
						if url[i] == '%' && (i+2 >= len(url) || !isHexDigit(url[i+1]) || !isHexDigit(url[i+2])) {
							p.corner = true
							break
						}
					}
					continue
				}
			}
		}

		off++
	}

	p.flushText(len(s))

	p.out = p.emph(p.out[:0], p.out)
	p.out = p.mergeLiteral(p.out)
	p.out = autoLinkText(p, p.out)

	return p.out
}

// emph resolves emphasis in a run of inlines whose links and images
// are already built (their inner content has already been through
// emph; only the markers in src itself remain). The result is
// appended to dst. dst and src may share an underlying array when
// &dst[0] == &src[0]: conversion never grows the element count, so
// appending cannot overtake the read position. emph may edit the
// values in src.
func (ps *parseState) emph(dst, src []Inline) []Inline {
	// Potential openers are kept on per-class stacks so a closer
	// can find its candidate without a linear walk. The * and _
	// classes need six stacks each: the rule-of-3 admissibility of
	// an opener depends on its run length mod 3 and on whether it
	// could also close, so closers must be able to pick the latest
	// admissible opener across those six.
	const (
		stackStrike      = 0 // also 1, indexed by run length - 1
		stackSingleQuote = 2
		stackDoubleQuote = 3
		stackStar        = 4  // through 9
		stackUnder       = 10 // through 15
		stackTotal       = 16
	)
	var stack [stackTotal][]*delimMark

Src:
	for i := 0; i < len(src); i++ {
		inl := src[i]
		d, ok := inl.(*delimMark)
		if !ok {
			if open, ok := inl.(*openMark); ok {
				// Unmatched bracket: literal text.
				inl = &open.Literal
			}
			dst = append(dst, inl)
			continue
		}

		if d.canClose {
			// A closing ** might consume an earlier ** whole, or
			// two separate *s one after the other, or a single *
			// leaving one literal *. When a run closes fewer
			// delimiters than it has, the leftover prefix goes
			// around again.
		DText:
			// Smart quotes pair one-to-one and carry no content.
			switch d.Text[0] {
			case '"':
				stk := stack[stackDoubleQuote]
				if len(stk) == 0 {
					goto EmitLiteral
				}
				stk, start := stk[:len(stk)-1], stk[len(stk)-1]
				stack[stackDoubleQuote] = stk

				dst[start.i].(*delimMark).Text = "“"
				d.Text = "”"
				dst = append(dst, &d.Literal)
				continue Src

			case '\'':
				stk := stack[stackSingleQuote]
				if len(stk) == 0 {
					goto EmitLiteral
				}
				stk, start := stk[:len(stk)-1], stk[len(stk)-1]
				stack[stackSingleQuote] = stk

				dst[start.i].(*delimMark).Text = "‘"
				d.Text = "’"
				dst = append(dst, &d.Literal)
				continue Src
			}

			var start *delimMark
			switch d.Text[0] {
			case '~':
				si := stackStrike + len(d.Text) - 1
				stk := stack[si]
				if len(stk) == 0 {
					goto EmitLiteral
				}
				start = stk[len(stk)-1]

			case '*', '_':
				// Rule of three: if one of the delimiters can both
				// open and close, the sum of the run lengths must
				// not be a multiple of 3, unless both lengths are.
				allow := func(d, start *delimMark) bool {
					return (!d.canOpen && !start.canClose) ||
						(d.n+start.n)%3 != 0 ||
						d.n%3 == 0 // both multiples of 3
				}

				// Take the admissible opener that appears latest
				// in dst, looking only at the six stack tops.
				si := stackStar
				if d.Text[0] == '_' {
					si = stackUnder
				}
				for i := si; i < si+6; i++ {
					if len(stack[i]) == 0 {
						continue
					}
					maybe := stack[i][len(stack[i])-1]
					if allow(d, maybe) && (start == nil || maybe.i > start.i) {
						start = maybe
					}
				}
				if start == nil {
					goto EmitLiteral
				}
			}

			// Two or more delimiters on both sides make strong
			// emphasis, consuming two from each; otherwise one.
			var n int
			if len(d.Text) >= 2 && len(start.Text) >= 2 {
				n = 2
			} else {
				n = 1
			}
			del := d.Text[0] == '~'

			x := &Emphasis{Marker: d.Text[:n], Inner: append([]Inline(nil), ps.mergeLiteral(dst[start.i+1:])...)}

			// Remove the used delimiters from start; an emptied
			// start disappears from dst entirely.
			start.Text = start.Text[:len(start.Text)-n]
			if start.Text == "" {
				dst = dst[:start.i]
			} else {
				dst = dst[:start.i+1]
			}

			// The inner content left dst, so evict it from the
			// opener stacks too.
			for i := range stack {
				if len(stack[i]) > 0 {
					stk := stack[i]
					for len(stk) > 0 && stk[len(stk)-1].i >= len(dst) {
						stk = stk[:len(stk)-1]
					}
					stack[i] = stk
				}
			}

			// Strike, Strong, and Emphasis share a struct layout,
			// so the Emphasis built above converts directly.
			if del {
				dst = append(dst, (*Strike)(x))
			} else if n == 2 {
				dst = append(dst, (*Strong)(x))
			} else {
				dst = append(dst, x)
			}

			d.Text = d.Text[n:]
			if d.Text == "" {
				continue Src
			}
			goto DText
		}

	EmitLiteral:
		if d.canOpen {
			d.i = len(dst)
			dst = append(dst, d)
			si := -1
			switch d.Text[0] {
			case '~':
				si = stackStrike + len(d.Text) - 1
			case '\'':
				si = stackSingleQuote
			case '"':
				si = stackDoubleQuote
			case '*', '_':
				si = stackStar
				if d.Text[0] == '_' {
					si = stackUnder
				}
				if d.canClose {
					si += 3
				}
				si += d.n % 3
			}
			stk := &stack[si]
			*stk = append(*stk, d)
		} else {
			dst = append(dst, &d.Literal)
		}

		// Unmatched smart quotes render as right quotes
		// (apostrophes), except an opening-only " which renders as
		// a left quote. This runs after the canOpen switch, which
		// must see the ASCII forms.
		if d.Text == "'" {
			d.Text = "’"
		}
		if d.Text == "\"" {
			if d.canClose {
				d.Text = "”"
			} else {
				d.Text = "“"
			}
		}
	}

	return ps.mergeLiteral(dst)
}

// parseEscape is an [inlineParser] for an [Escaped] punctuation
// character or a backslash [HardBreak].
func parseEscape(p *parseState, s string, start int) (x Inline, end int, ok bool) {
	if start+1 < len(s) {
		c := s[start+1]
		end = start + 2
		if isPunct(c) {
			return &Escaped{Literal{s[start+1 : end]}}, end, true
		}
		if c == '\n' {
			if start > 0 && s[start-1] == '\\' {
				p.corner = true // goldmark mishandles \\\ newline
			}
			return &HardBreak{}, end, true
		}
	}
	return nil, 0, false
}

// parseAutoLinkOrHTML is an [inlineParser] for a <scheme:...> or
// <addr@host> autolink, or failing that a raw HTML tag.
// The caller has checked that s[start] == '<'.
func parseAutoLinkOrHTML(p *parseState, s string, start int) (x Inline, end int, ok bool) {
	if x, end, ok = parseAutoLinkURI(s, start); ok {
		return
	}
	if x, end, ok = parseAutoLinkEmail(s, start); ok {
		return
	}
	if x, end, ok = parseHTMLTag(p, s, start); ok {
		return
	}
	return
}

// parseDot is an [inlineParser] rewriting "..." to an ellipsis when
// SmartDot is enabled.
func parseDot(p *parseState, s string, i int) (x Inline, end int, ok bool) {
	if i+2 < len(s) && s[i+1] == '.' && s[i+2] == '.' {
		return &Literal{"…"}, i + 3, true
	}
	return
}

// parseDash is an [inlineParser] rewriting runs of hyphens to en and
// em dashes when SmartDash is enabled: -- is an en dash and --- an
// em dash; longer runs follow cmark-gfm's division rules.
func parseDash(p *parseState, s string, i int) (x Inline, end int, ok bool) {
	if i+1 >= len(s) || s[i+1] != '-' {
		return
	}
	n := 2
	for i+n < len(s) && s[i+n] == '-' {
		n++
	}

	em, en := 0, 0
	switch {
	case n%3 == 0:
		em = n / 3
	case n%2 == 0:
		en = n / 2
	case n%3 == 2:
		em = (n - 2) / 3
		en = 1
	case n%3 == 1:
		em = (n - 4) / 3
		en = 2
	}
	return &Literal{strings.Repeat("—", em) + strings.Repeat("–", en)}, i + n, true
}

// maxTicks caps the delimiter length of a code span.
// Avoiding super-linear scanning requires remembering, for every
// possible run length, where a run of exactly that length was last
// seen, which means bounding the length. cmark-gfm uses 80.
const maxTicks = 80

// A tickScanner memoizes backtick runs for parseCodeSpan.
type tickScanner struct {
	last    [maxTicks]int // last[n-1] = start of the latest seen run of exactly n ticks
	scanned bool          // whole string has been scanned once
}

func (t *tickScanner) reset() {
	*t = tickScanner{}
}

// parseCodeSpan is an [inlineParser] for a [CodeSpan]: text between
// two equal-length backtick runs.
//
// A naive scan is O(n√n) on inputs like
//
//	` `` ``` ```` ````` ``````
//
// because each of the O(√n) distinct run lengths re-scans the
// remaining text. The first failed scan records the final position
// of every run length; later scans consult the memo and fail
// immediately when no matching terminator lies ahead. Successful
// scans need no memo: they consume everything they scanned.
func (t *tickScanner) parseCodeSpan(p *parseState, s string, start int) (x Inline, end int, ok bool) {
	// Count opening backticks; the same number must close.
	n := 1
	for start+n < len(s) && s[start+n] == '`' {
		n++
	}

	if n > len(t.last) || t.scanned && t.last[n-1] < start+n {
		goto NoMatch
	}

	for end = start + n; end < len(s); {
		if s[end] != '`' {
			end++
			continue
		}
		estart := end
		for end < len(s) && s[end] == '`' {
			end++
		}
		m := end - estart
		if !t.scanned && m < len(t.last) {
			t.last[m-1] = estart
		}
		if m == n {
			// Line endings become single spaces.
			text := s[start+n : estart]
			text = strings.ReplaceAll(text, "\n", " ")

			// Content both starting and ending with a space (and
			// not all spaces) loses one space from each end, so
			// that `` ` `` can quote a lone backtick.
			if len(text) >= 2 && text[0] == ' ' && text[len(text)-1] == ' ' && trimSpaceTab(text) != "" {
				text = text[1 : len(text)-1]
			}

			return &CodeSpan{text}, end, true
		}
	}
	t.scanned = true

NoMatch:
	// No terminator: none of the opening backticks count.
	// Consume the whole run so ``x` does not retry at the second
	// backtick.
	end = start + n
	return &Literal{s[start:end]}, end, true
}

// parseDelim is an [inlineParser] for an emphasis delimiter run
// (* _ ~, or ' " with smart punctuation), classified by the flanking
// rules and pushed as a [delimMark].
func parseDelim(p *parseState, s string, start int) (x Inline, end int, ok bool) {
	c := s[start]
	end = start + 1
	if c == '*' || c == '~' || c == '_' {
		for end < len(s) && s[end] == c {
			end++
		}
	}
	if c == '~' && end-start != 2 {
		// Only ~~ opens strikethrough. goldmark rejects ~text~ but
		// wrongly accepts ~~~text~~~.
		p.corner = true
	}
	if c == '~' && end-start > 2 {
		// Consume the whole run so its tail cannot be seen as a
		// marker later (and to keep scanning linear).
		return &Literal{s[start:end]}, end, true
	}

	before, after := ' ', ' '
	if start > 0 {
		before, _ = utf8.DecodeLastRuneInString(s[:start])
	}
	if end < len(s) {
		after, _ = utf8.DecodeRuneInString(s[end:])
	}

	// A left-flanking run is not followed by whitespace, and either
	// not followed by punctuation or both followed by punctuation
	// and preceded by whitespace or punctuation. Right-flanking is
	// the mirror image. Start and end of text count as whitespace.
	leftFlank := !isUnicodeSpace(after) &&
		(!isUnicodePunct(after) || isUnicodeSpace(before) || isUnicodePunct(before))
	rightFlank := !isUnicodeSpace(before) &&
		(!isUnicodePunct(before) || isUnicodeSpace(after) || isUnicodePunct(after))

	var canOpen, canClose bool

	switch c {
	case '\'', '"':
		canOpen = leftFlank && !rightFlank && before != ']' && before != ')'
		canClose = rightFlank
	case '*', '~':
		canOpen = leftFlank
		canClose = rightFlank
	case '_':
		// Underscores must not open or close inside a word:
		// a run that flanks both ways only counts next to
		// punctuation.
		canOpen = leftFlank && (!rightFlank || isUnicodePunct(before))
		canClose = rightFlank && (!leftFlank || isUnicodePunct(after))
	}

	x = &delimMark{
		Literal:  Literal{s[start:end]},
		canOpen:  canOpen,
		canClose: canClose,
		n:        end - start,
	}
	return x, end, true
}

// mergeLiteral converts leftover delimMarks to Literals (openMarks
// are converted by emph) and then merges each run of adjacent
// Literals into one, so that abc*def is a single Literal rather
// than three.
func (p *parseState) mergeLiteral(list []Inline) []Inline {
	out := list[:0]
	start := 0
	for i := 0; ; i++ {
		if i < len(list) {
			switch x := list[i].(type) {
			case *Literal:
				continue
			case *delimMark:
				list[i] = &x.Literal
				continue
			}
		}
		// Non-Literal or end of list.
		if start < i {
			out = append(out, mergeLiteralRun(list[start:i]))
		}
		if i >= len(list) {
			break
		}
		out = append(out, list[i])
		start = i + 1
	}
	return out
}

func mergeLiteralRun(list []Inline) *Literal {
	if len(list) == 1 {
		return list[0].(*Literal)
	}
	var all []string
	for _, x := range list {
		all = append(all, x.(*Literal).Text)
	}
	return &Literal{Text: strings.Join(all, "")}
}
