// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"strconv"
	"strings"
	"unicode"
)

// An HTMLBlock is a [Block] of raw HTML lines,
// passed through unmodified when rendering HTML.
type HTMLBlock struct {
	Position
	Text []string // lines, without trailing newlines
}

func (*HTMLBlock) Block() {}

func (b *HTMLBlock) printHTML(p *printer) {
	for _, s := range b.Text {
		p.html(s)
		p.html("\n")
	}
}

func (b *HTMLBlock) printMarkdown(p *printer) {
	p.maybeNL()
	for i, line := range b.Text {
		if i > 0 {
			p.nl()
		}
		p.WriteString(line)
		p.noTrim()
	}
}

// An htmlBuilder is the [builder] for an [HTMLBlock].
// If endBlank is set, the block ends just before the first blank
// line. If endFunc is non-nil, the block ends just after the first
// line for which endFunc reports true.
type htmlBuilder struct {
	endBlank bool
	endFunc  func(string) bool
	text     []string
}

func (b *htmlBuilder) extend(p *parseState, s line) (line, bool) {
	if b.endBlank && s.isBlank() {
		return s, false
	}
	t := s.string()
	b.text = append(b.text, t)
	if b.endFunc != nil && b.endFunc(t) {
		return line{}, false
	}
	return line{}, true
}

func (b *htmlBuilder) done(p *parseState) Block {
	return &HTMLBlock{
		p.pos(),
		b.text,
	}
}

// A RawHTML is an [Inline] holding a raw HTML tag,
// passed through unmodified when rendering HTML.
type RawHTML struct {
	Text string
}

func (*RawHTML) Inline() {}

func (x *RawHTML) printHTML(p *printer) {
	p.html(x.Text)
}

func (x *RawHTML) printMarkdown(p *printer) {
	for i, line := range strings.Split(x.Text, "\n") {
		if i > 0 {
			p.nl()
		}
		p.WriteString(line)
		p.noTrim()
	}
}

func (x *RawHTML) printText(p *printer) {}

// tryHTMLBlock is an [opener] for an [HTMLBlock].
// An HTML block is classified by seven start conditions, each with
// its own end condition. Conditions 1 through 5 end on a closing
// token, possibly on the start line itself; 6 and 7 end at the next
// blank line.
func tryHTMLBlock(p *parseState, s line) (line, bool) {
	tt := s
	tt.trimIndent(0, 3, false)
	if tt.peek() != '<' {
		return s, false
	}
	t := tt.string()

	if tryHTMLBlock1(p, s, t) ||
		tryHTMLBlock2345(p, s, t) ||
		tryHTMLBlock6(p, s, t) ||
		tryHTMLBlock7(p, s, t) {
		return line{}, true
	}

	return s, false
}

const forceLower = 0x20 // ASCII letter | forceLower == ASCII lower case

// tryHTMLBlock1 handles start condition 1: a line starting with
// <pre, <script, <style, or <textarea, running through a closing
// </pre>, </script>, </style>, or </textarea> (which need not match
// the opener).
//
// s is the entire line, for saving if a block starts.
// t is the line as a string, leading spaces removed; it starts with <.
func tryHTMLBlock1(p *parseState, s line, t string) bool {
	if len(t) < 2 {
		return false
	}
	if c := t[1] | forceLower; c != 'p' && c != 's' && c != 't' {
		return false
	}
	i := 2
	for i < len(t) && (t[i] != ' ' && t[i] != '\t' && t[i] != '>') {
		i++
	}
	if !isVerbatimTag(t[1:i]) {
		return false
	}
	b := &htmlBuilder{endFunc: hasVerbatimClose}
	p.addBlock(b)
	b.text = append(b.text, s.string())
	if hasVerbatimClose(t) {
		p.closeBlock()
	}
	return true
}

// hasVerbatimClose reports whether s contains </pre>, </script>,
// </style>, or </textarea>, matching ASCII case-insensitively.
func hasVerbatimClose(s string) bool {
	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '<' && i+1 < len(s) && s[i+1] == '/' {
			start = i + 2
		}
		if s[i] == '>' && start >= 0 {
			if isVerbatimTag(s[start:i]) {
				return true
			}
			start = -1
		}
	}
	return false
}

// isVerbatimTag reports whether tag opens or closes an HTML block of
// start condition 1.
func isVerbatimTag(tag string) bool {
	return lowerEq(tag, "pre") || lowerEq(tag, "script") || lowerEq(tag, "style") || lowerEq(tag, "textarea")
}

// lowerEq reports whether strings.ToLower(s) == lower,
// assuming lower is entirely ASCII lower-case letters.
func lowerEq(s, lower string) bool {
	if len(s) != len(lower) {
		return false
	}
	lower = lower[:len(s)]
	for i := 0; i < len(s); i++ {
		if s[i]|forceLower != lower[i] {
			return false
		}
	}
	return true
}

// tryHTMLBlock2345 handles start conditions 2 through 5, the ones
// delimited by fixed opening and closing strings:
// comments, processing instructions, declarations, and CDATA.
func tryHTMLBlock2345(p *parseState, s line, t string) bool {
	var end string
	switch {
	default:
		return false

	// Condition 2: <!-- ... -->.
	// The simplistic token scan also accepts <!--> and <!--->.
	case strings.HasPrefix(t, "<!--"):
		end = "-->"

	// Condition 3: <? ... ?>, and <?> by the same token.
	case strings.HasPrefix(t, "<?"):
		end = "?>"

	// Condition 4: <!TEXT ... >.
	// The letter must be upper case: the CommonMark spec asks only for an
	// ASCII letter, but cmark-gfm, goldmark, and the Dingus all
	// require upper case, matching the XML declarations that
	// actually occur, so <!X> is an HTMLBlock while <!x> is inline.
	case strings.HasPrefix(t, "<!") && len(t) >= 3 && 'A' <= t[2] && t[2] <= 'Z':
		end = ">"

	// Condition 5: <![CDATA[ ... ]]>.
	case strings.HasPrefix(t, "<![CDATA["):
		end = "]]>"
	}

	b := &htmlBuilder{endFunc: func(s string) bool { return strings.Contains(s, end) }}
	p.addBlock(b)
	b.text = append(b.text, s.string())
	if b.endFunc(t) {
		// Terminator on the start line; block is complete.
		p.closeBlock()
	}
	return true
}

// tryHTMLBlock6 handles start condition 6: the start of a tag with
// one of the recognized block-level names, ending at a blank line.
func tryHTMLBlock6(p *parseState, s line, t string) bool {
	start := 1
	if len(t) > 1 && t[1] == '/' {
		start = 2
	}

	// An ASCII alphanumeric tag name, followed by a space, tab, >,
	// />, or end of line.
	end := start
	for end < len(t) && end < 16 && isLetterDigit(t[end]) {
		end++
	}
	if end < len(t) {
		switch t[end] {
		default:
			return false
		case ' ', '\t', '>':
			// ok
		case '/':
			if end+1 >= len(t) || t[end+1] != '>' {
				return false
			}
		}
	}

	tag := t[start:end]
	if tag == "" {
		return false
	}
	c := tag[0] | forceLower
	for _, name := range htmlBlockNames {
		if name[0] == c && len(name) == len(tag) && lowerEq(tag, name) {
			if end < len(t) && t[end] == '\t' {
				p.corner = true // goldmark recognizes space but not tab
			}
			b := &htmlBuilder{endBlank: true}
			p.addBlock(b)
			b.text = append(b.text, s.string())
			return true
		}
	}
	return false
}

// tryHTMLBlock7 handles start condition 7: a complete open or
// closing tag, of any name, alone on its line, ending at a blank
// line. Unlike the other conditions it cannot interrupt a paragraph,
// so rewrapping a paragraph containing inline tags cannot turn part
// of it into an HTML block.
func tryHTMLBlock7(p *parseState, s line, t string) bool {
	if p.para() != nil {
		return false
	}

	if _, end, ok := parseHTMLOpenTag(p, t, 0); ok && skipSpace(t, end) == len(t) {
		if end != len(t) {
			p.corner = true // goldmark disallows trailing space
		}
		b := &htmlBuilder{endBlank: true}
		p.addBlock(b)
		b.text = append(b.text, s.string())
		return true
	}
	if _, end, ok := parseHTMLClosingTag(p, t, 0); ok && skipSpace(t, end) == len(t) {
		b := &htmlBuilder{endBlank: true}
		p.addBlock(b)
		b.text = append(b.text, s.string())
		return true
	}
	return false
}

// htmlBlockNames lists the tag names that open an HTML block under
// start condition 6.
var htmlBlockNames = []string{
	"address", "article", "aside", "base", "basefont", "blockquote",
	"body", "caption", "center", "col", "colgroup", "dd", "details",
	"dialog", "dir", "div", "dl", "dt", "fieldset", "figcaption",
	"figure", "footer", "form", "frame", "frameset",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"head", "header", "hr", "html", "iframe", "legend", "li", "link",
	"main", "menu", "menuitem", "nav", "noframes", "ol", "optgroup",
	"option", "p", "param", "section", "source", "summary", "table",
	"tbody", "td", "tfoot", "th", "thead", "title", "tr", "track", "ul",
}

// parseHTMLTag is an [inlineParser] for a [RawHTML] tag:
// an open tag, a closing tag, a comment, a processing instruction,
// a declaration, or a CDATA section.
// The caller has checked that s[start] is '<'.
func parseHTMLTag(p *parseState, s string, start int) (x Inline, end int, ok bool) {
	if len(s)-start < 3 || s[start] != '<' {
		return
	}
	switch s[start+1] {
	default:
		return parseHTMLOpenTag(p, s, start)
	case '/':
		return parseHTMLClosingTag(p, s, start)
	case '!':
		switch s[start+2] {
		case '-':
			return parseHTMLComment(p, s, start)
		case '[':
			return parseHTMLCDATA(p, s, start)
		default:
			return parseHTMLDecl(p, s, start)
		}
	case '?':
		return parseHTMLProcInst(p, s, start)
	}
}

// parseHTMLOpenTag parses an HTML open tag at s[i:]:
// a <, a tag name, attributes, optional spaces with up to one line
// ending, an optional /, and a >.
func parseHTMLOpenTag(p *parseState, s string, i int) (x Inline, end int, ok bool) {
	if i >= len(s) || s[i] != '<' {
		return
	}

	name, j, ok1 := parseTagName(s, i+1)
	if !ok1 {
		return
	}
	switch name {
	case "pre", "script", "style", "textarea":
		// goldmark starts a new HTMLBlock here, ending the paragraph
		p.corner = true
	}

	for {
		if j >= len(s) || s[j] != ' ' && s[j] != '\t' && s[j] != '\n' && s[j] != '/' && s[j] != '>' {
			return
		}
		_, k, ok := parseAttr(p, s, skipSpace(s, j))
		if !ok {
			break
		}
		j = k
	}

	k := skipSpace(s, j)
	if k != j {
		p.corner = true // goldmark mishandles spaces before >
	}
	j = k

	if j < len(s) && s[j] == '/' {
		j++
	}

	if j >= len(s) || s[j] != '>' {
		return
	}

	return &RawHTML{s[i : j+1]}, j + 1, true
}

// parseHTMLClosingTag parses an HTML closing tag at s[i:]:
// the string </, a tag name, optional spaces, and a >.
func parseHTMLClosingTag(p *parseState, s string, i int) (x Inline, end int, ok bool) {
	if i+2 >= len(s) || s[i] != '<' || s[i+1] != '/' {
		return
	}
	if skipSpace(s, i+2) != i+2 {
		p.corner = true // goldmark allows spaces here; CommonMark does not
	}

	if _, j, ok := parseTagName(s, i+2); ok {
		j = skipSpace(s, j)
		if j < len(s) && s[j] == '>' {
			return &RawHTML{s[i : j+1]}, j + 1, true
		}
	}
	return
}

// parseTagName parses a tag name at s[start:]: an ASCII letter
// followed by ASCII letters, digits, or hyphens.
func parseTagName(s string, start int) (tag string, end int, ok bool) {
	if start >= len(s) || !isLetter(s[start]) {
		return
	}
	end = start + 1
	for end < len(s) && isLDH(s[end]) {
		end++
	}
	return s[start:end], end, true
}

// parseAttr parses an attribute (possibly with =value) at s[start:],
// returning the text consumed and the end location.
func parseAttr(p *parseState, s string, start int) (attr string, end int, ok bool) {
	_, end, ok = parseAttrName(s, start)
	if !ok {
		return
	}
	if endVal, ok := parseAttrValueSpec(p, s, end); ok {
		end = endVal
	}
	return s[start:end], end, true
}

// parseAttrName parses an attribute name at s[start:]: an ASCII
// letter, _, or :, followed by ASCII letters, digits, _, ., :, or -.
func parseAttrName(s string, start int) (name string, end int, ok bool) {
	if start+1 >= len(s) || (!isLetter(s[start]) && s[start] != '_' && s[start] != ':') {
		return
	}
	end = start + 1
	for end < len(s) && (isLDH(s[end]) || s[end] == '_' || s[end] == '.' || s[end] == ':') {
		end++
	}
	return s[start:end], end, true
}

// parseAttrValueSpec parses an attribute value specification at
// s[start:]: optional spaces, =, optional spaces, and a quoted or
// unquoted value.
func parseAttrValueSpec(p *parseState, s string, start int) (end int, ok bool) {
	end = skipSpace(s, start)
	if end >= len(s) || s[end] != '=' {
		return
	}
	end = skipSpace(s, end+1)

	if end < len(s) && (s[end] == '\'' || s[end] == '"') {
		// Quoted value: everything up to the matching quote,
		// with no escaping.
		i := strings.IndexByte(s[end+1:], s[end])
		if i < 0 {
			return
		}
		return end + 1 + i + 1, true
	}

	// Unquoted value: nonempty, free of spaces, quotes, =, <, >, `.
	isAttrVal := func(c byte) bool {
		return c != ' ' && c != '\t' && c != '\n' &&
			c != '"' && c != '\'' &&
			c != '=' && c != '<' && c != '>' && c != '`'
	}
	i := end
	for i < len(s) && isAttrVal(s[i]) {
		i++
	}
	if i == end {
		return
	}
	return i, true
}

// parseHTMLComment parses an HTML comment at s[start:]:
// <!-- + text + -->, where text does not start with > or ->,
// does not end with -, and does not contain --.
// The caller has checked for the "<!-" prefix.
func parseHTMLComment(p *parseState, s string, start int) (x Inline, end int, ok bool) {
	if strings.HasPrefix(s[start:], "<!-->") {
		end = start + len("<!-->")
		return &RawHTML{s[start:end]}, end, true
	}
	if strings.HasPrefix(s[start:], "<!--->") {
		end = start + len("<!--->")
		return &RawHTML{s[start:end]}, end, true
	}
	if x, end, ok := parseHTMLMarker(p, s, start, "<!--", "-->"); ok {
		return x, end, ok
	}
	return
}

// parseHTMLCDATA parses a CDATA section at s[i:]:
// <![CDATA[, characters not containing ]]>, and ]]>.
func parseHTMLCDATA(p *parseState, s string, i int) (x Inline, end int, ok bool) {
	return parseHTMLMarker(p, s, i, "<![CDATA[", "]]>")
}

// parseHTMLDecl parses a declaration at s[i:]:
// <!, an ASCII letter, characters not containing >, and >.
func parseHTMLDecl(p *parseState, s string, i int) (x Inline, end int, ok bool) {
	if i+2 < len(s) && isLetter(s[i+2]) {
		if 'a' <= s[i+2] && s[i+2] <= 'z' {
			p.corner = true // goldmark requires upper case
		}
		return parseHTMLMarker(p, s, i, "<!", ">")
	}
	return
}

// parseHTMLProcInst parses a processing instruction at s[i:]:
// <?, characters not containing ?>, and ?>.
func parseHTMLProcInst(p *parseState, s string, i int) (x Inline, end int, ok bool) {
	return parseHTMLMarker(p, s, i, "<?", "?>")
}

// parseHTMLMarker matches the prefix/suffix-delimited HTML forms.
// A failed search for a terminator is remembered for the rest of the
// line, so scanning <!-- <!-- <!-- ... stays linear.
func parseHTMLMarker(p *parseState, s string, start int, prefix, suffix string) (x Inline, end int, ok bool) {
	if strings.HasPrefix(s[start:], prefix) {
		switch suffix[0] {
		case ']':
			if p.noCDATAEnd {
				return
			}
		case '>':
			if p.noDeclEnd {
				return
			}
		case '-':
			if p.noCommentEnd {
				return
			}
		case '?':
			if p.noProcInstEnd {
				return
			}
		}

		if i := strings.Index(s[start+len(prefix):], suffix); i >= 0 {
			end = start + len(prefix) + i + len(suffix)
			return &RawHTML{s[start:end]}, end, true
		}

		switch suffix[0] {
		case ']':
			p.noCDATAEnd = true // no ]]> on line
		case '>':
			p.noDeclEnd = true // no > on line
		case '-':
			p.noCommentEnd = true // no --> on line
		case '?':
			p.noProcInstEnd = true // no ?> on line
		}
	}
	return
}

// parseHTMLEntity is an [inlineParser] for an entity or numeric
// character reference, such as &quot;, &#123;, or &#x12AB;.
// The replacement text becomes an ordinary [Literal].
func parseHTMLEntity(_ *parseState, s string, start int) (x Inline, end int, ok bool) {
	i := start
	if i+1 < len(s) && s[i+1] == '#' {
		i += 2
		var r int
		if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
			// Hexadecimal.
			i++
			j := i
			for j < len(s) && isHexDigit(s[j]) {
				j++
			}
			if j-i < 1 || j-i > 6 || j >= len(s) || s[j] != ';' {
				return
			}
			r64, _ := strconv.ParseInt(s[i:j], 16, 0)
			r = int(r64)
			end = j + 1
		} else {
			// Decimal.
			j := i
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j-i < 1 || j-i > 7 || j >= len(s) || s[j] != ';' {
				return
			}
			r, _ = strconv.Atoi(s[i:j])
			end = j + 1
		}
		if r > unicode.MaxRune || r == 0 {
			// Invalid code points and U+0000 become U+FFFD.
			r = unicode.ReplacementChar
		}
		return &Literal{string(rune(r))}, end, true
	}

	// The longest name in the table is well under 64 bytes.
	for j := i + 1; j < len(s) && j-i < 64; j++ {
		if s[j] == '&' { // stop quadratic search on &&&&&&&
			break
		}
		if s[j] == ';' {
			if r, ok := namedEntity[s[i:j+1]]; ok {
				return &Literal{r}, j + 1, true
			}
			break
		}
	}

	return
}
