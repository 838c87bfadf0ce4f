// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Link and Image share an underlying struct so that code can convert
// between *Link and *Image.

// A Link is an [Inline] representing a hyperlink.
type Link struct {
	Inner     Inlines
	URL       string
	Title     string
	TitleChar byte // ', ", or ) — the title delimiter as written
}

// An Image is an [Inline] representing an inline image.
type Image struct {
	Inner     Inlines // alt text
	URL       string
	Title     string
	TitleChar byte
}

func (*Link) Inline() {}

func (x *Link) printHTML(p *printer) {
	p.html(`<a href="`)
	p.html(htmlLinkEscaper.Replace(x.URL))
	p.html(`"`)
	if x.Title != "" {
		p.html(` title="`)
		p.html(htmlEscaper.Replace(x.Title))
		p.html(`"`)
	}
	p.html(">")
	x.Inner.printHTML(p)
	p.html("</a>")
}

func (x *Link) printMarkdown(p *printer) {
	p.WriteByte('[')
	x.Inner.printMarkdown(p)
	p.WriteString("](")
	u := mdLinkEscaper.Replace(x.URL)
	if u == "" || strings.ContainsAny(u, " ") {
		u = "<" + u + ">"
	}
	p.WriteString(u)
	printLinkTitleMarkdown(p, x.Title, x.TitleChar)
	p.WriteByte(')')
}

func (x *Link) printText(p *printer) {
	x.Inner.printText(p)
}

// printLinkTitleMarkdown prints a link title with its original
// delimiter, defaulting to single quotes.
func printLinkTitleMarkdown(p *printer, title string, titleChar byte) {
	if title == "" {
		return
	}
	if titleChar == 0 {
		titleChar = '\''
	}
	openChar, closeChar := titleChar, titleChar
	if openChar == ')' {
		openChar = '('
	}
	p.WriteString(" ")
	p.WriteByte(openChar)
	for i, line := range strings.Split(mdEscaper.Replace(title), "\n") {
		if i > 0 {
			p.nl()
		}
		p.WriteString(line)
		p.noTrim()
	}
	p.WriteByte(closeChar)
}

func (*Image) Inline() {}

func (x *Image) printHTML(p *printer) {
	p.html(`<img src="`)
	p.html(htmlLinkEscaper.Replace(x.URL))
	p.html(`" alt="`)
	i := p.buf.Len()
	x.printText(p)
	// The alt text comes from inline content that may span lines.
	// GitHub and goldmark rewrite the newlines to spaces; the
	// Dingus does not. Do what GitHub does.
	out := p.buf.Bytes()
	for ; i < len(out); i++ {
		if out[i] == '\n' {
			out[i] = ' '
		}
	}
	p.html(`"`)
	if x.Title != "" {
		p.html(` title="`)
		p.text(x.Title)
		p.html(`"`)
	}
	p.html(` />`)
}

func (x *Image) printMarkdown(p *printer) {
	p.WriteString("!")
	(*Link)(x).printMarkdown(p)
}

func (x *Image) printText(p *printer) {
	x.Inner.printText(p)
}

// parseLinkOpen is an [inlineParser] for a link open [.
// It always succeeds, pushing an [openMark] for a later ] to match;
// with footnotes enabled, [^label] parses as a footnote reference
// instead. The caller has checked that s[start] == '['.
func parseLinkOpen(p *parseState, s string, start int) (x Inline, end int, ok bool) {
	if p.Footnote {
		if x, end, ok := parseFootnoteRef(p, s, start); ok {
			return x, end, ok
		}
	}
	return &openMark{Literal{s[start : start+1]}, start + 1}, start + 1, true
}

// parseImageOpen is an [inlineParser] for an image open ![.
// The caller has checked that s[start] == '!'.
func parseImageOpen(_ *parseState, s string, start int) (x Inline, end int, ok bool) {
	if start+1 < len(s) && s[start+1] == '[' {
		return &openMark{Literal{s[start : start+2]}, start + 2}, start + 2, true
	}
	return
}

// parseLinkClose parses the close of a link or image whose open
// bracket is open: an inline ](dest "title"), a full reference
// ][label], or a collapsed or shortcut reference ][] or plain ].
// The caller fills in the returned Link's Inner.
func parseLinkClose(p *parseState, s string, start int, open *openMark) (*Link, int, bool) {
	i := start
	if i+1 < len(s) {
		switch s[i+1] {
		case '(':
			// Inline form: [Text](Dest Title), where Title or both
			// Dest and Title may be omitted.
			i := skipSpace(s, i+2)
			var dest, title string
			var titleChar byte
			if i < len(s) && s[i] != ')' {
				var ok bool
				dest, i, ok = parseLinkDest(s, i)
				if !ok {
					break
				}
				i = skipSpace(s, i)
				if i < len(s) && s[i] != ')' {
					title, titleChar, i, ok = parseLinkTitle(s, i)
					if title == "" {
						p.corner = true // goldmark drops an empty title
					}
					if !ok {
						break
					}
					i = skipSpace(s, i)
				}
			}
			if i < len(s) && s[i] == ')' {
				return &Link{URL: dest, Title: title, TitleChar: titleChar}, i + 1, true
			}

		case '[':
			// Full reference: [Text][Label].
			label, i, ok := parseLinkLabel(p, s, i+1)
			if !ok {
				break
			}
			if link := p.link(normalizeLabel(label)); link != nil {
				return &Link{URL: link.URL, Title: link.Title}, i, true
			}
			// The Dingus does not fall back to treating [Text] as
			// a shortcut reference when Label is unknown, so
			// neither do we.
			return nil, 0, false
		}
	}

	// Collapsed or shortcut reference: [Text][] or [Text].
	end := i + 1
	if strings.HasPrefix(s[end:], "[]") {
		end += 2
	}
	if link := p.link(normalizeLabel(s[open.i:i])); link != nil {
		return &Link{URL: link.URL, Title: link.Title}, end, true
	}
	return nil, 0, false
}

// A RefDefs is a [Block] marking where a run of link reference
// definitions appeared in the source. The definitions themselves
// live in the [Document] Links map; Labels records the normalized
// labels defined here, in source order. It renders as nothing: HTML
// has no counterpart, and formatted Markdown re-emits every
// definition at the end of the document.
type RefDefs struct {
	Position
	Labels []string
}

func (*RefDefs) Block() {}

func (b *RefDefs) printHTML(p *printer) {}

func (b *RefDefs) printMarkdown(p *printer) {}

// printLinks prints a link reference definition for every entry in
// the map, sorted by label for deterministic output.
func printLinks(p *printer, links map[string]*Link) {
	var labels []string
	for k := range links {
		if k != "" {
			labels = append(labels, k)
		}
	}
	slices.Sort(labels)
	for _, k := range labels {
		l := links[k]
		u := l.URL
		if u == "" || strings.ContainsAny(u, " ") {
			u = "<" + u + ">"
		}
		fmt.Fprintf(p, "[%s]: %s", k, u)
		printLinkTitleMarkdown(p, l.Title, l.TitleChar)
		p.nl()
	}
}

// parseLinkRefDef parses a link reference definition at the start of
// s, if any, and records it in p. It returns the normalized label,
// the length of the definition including its line ending, and
// whether a definition was found.
//
// A definition is a link label, after up to three spaces of indent,
// followed by a colon, the link destination, and an optional link
// title; spaces, tabs, and up to one line ending may separate the
// parts, and nothing else may follow on the title's line.
func parseLinkRefDef(p *parseState, s string) (string, int, bool) {
	i := skipSpace(s, 0)
	label, i, ok := parseLinkLabel(p, s, i)
	if !ok || i >= len(s) || s[i] != ':' {
		return "", 0, false
	}
	i = skipSpace(s, i+1)
	suf := s[i:]
	dest, i, ok := parseLinkDest(s, i)
	if !ok {
		if suf != "" && suf[0] == '<' {
			p.corner = true // goldmark treats <<> as a definition
		}
		return "", 0, false
	}
	moved := false
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		moved = true
		i++
	}

	// Take the title if present, but only if keeping it does not
	// break the parse: a title candidate that leaves trailing junk
	// on its line is ordinary paragraph text instead.
	j := i
	if j >= len(s) || s[j] == '\n' {
		moved = true
		if j < len(s) {
			j++
		}
	}

	var title string
	var titleChar byte
	if moved {
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if t, c, j, ok := parseLinkTitle(s, j); ok {
			for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
				j++
			}
			if j >= len(s) || s[j] == '\n' {
				i = j
				if t == "" {
					// goldmark emits title="" here; the Dingus
					// and we do not.
					p.corner = true
				}
				title = t
				titleChar = c
			}
		}
	}

	// Nothing else may follow on the line.
	if i < len(s) && s[i] != '\n' {
		return "", 0, false
	}
	if i < len(s) {
		i++
	}

	label = normalizeLabel(label)
	p.defineLink(label, &Link{URL: dest, Title: title, TitleChar: titleChar})
	return label, i, true
}

// parseLinkTitle parses a link title at s[i:], returning the title
// text, the delimiter character (one of " ' or )), the index just
// past the title, and whether a title was found.
func parseLinkTitle(s string, i int) (title string, char byte, end int, found bool) {
	if i < len(s) && (s[i] == '"' || s[i] == '\'' || s[i] == '(') {
		want := s[i]
		if want == '(' {
			want = ')'
		}
		for j := i + 1; j < len(s); j++ {
			if s[j] == want {
				return mdUnescaper.Replace(s[i+1 : j]), want, j + 1, true
			}
			if s[j] == '(' && want == ')' {
				break
			}
			if s[j] == '\\' && j+1 < len(s) {
				j++
			}
		}
	}
	return "", 0, 0, false
}

// parseLinkLabel parses a link label at s[i:], returning the label
// text, the index just past the closing bracket, and whether a label
// was found. A label runs from [ to the first ] that is not
// backslash-escaped; it must contain a non-space character, no
// unescaped brackets, and at most 999 characters.
func parseLinkLabel(p *parseState, s string, i int) (string, int, bool) {
	if i >= len(s) || s[i] != '[' {
		return "", 0, false
	}
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case ']':
			if j-(i+1) > 999 {
				p.corner = true // goldmark has no length limit
				return "", 0, false
			}
			if label := trimSpaceTabNewline(s[i+1 : j]); label != "" {
				return label, j + 1, true
			}
			return "", 0, false
		case '[':
			return "", 0, false
		case '\\':
			if j+1 < len(s) {
				j++
			}
		}
	}
	return "", 0, false
}

// normalizeLabel maps a link label to the key identifying it:
// case-folded, with leading and trailing whitespace removed and
// internal whitespace runs collapsed to single spaces.
func normalizeLabel(s string) string {
	if strings.ContainsAny(s, "[]") {
		// Labels cannot contain brackets, so skip the translation
		// work. This matters for pathological inputs like
		// [[[[[[[[a]]]]]]]] that would otherwise allocate
		// quadratically.
		return ""
	}

	s = trimSpaceTabNewline(s)
	var b strings.Builder
	space := false
	hi := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ' ', '\t', '\n':
			space = true
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c >= 0x80 {
				hi = true
			}
			b.WriteByte(c)
		}
	}
	s = b.String()
	if hi {
		// The ASCII loop above already folded the common case;
		// only labels with non-ASCII bytes pay for full Unicode
		// case folding.
		s = cases.Fold().String(s)
	}
	return s
}

// parseLinkDest parses a link destination at s[i:], returning the
// destination, the index just past it, and whether one was found.
// A destination is either a < >-bracketed string with no line
// endings or unescaped angle brackets, or a nonempty run of
// characters without spaces or controls in which parentheses are
// escaped or balanced.
func parseLinkDest(s string, i int) (string, int, bool) {
	if i >= len(s) {
		return "", 0, false
	}

	if s[i] == '<' {
		for j := i + 1; ; j++ {
			if j >= len(s) || s[j] == '\n' || s[j] == '<' {
				return "", 0, false
			}
			if s[j] == '>' {
				return mdUnescape(s[i+1 : j]), j + 1, true
			}
			if s[j] == '\\' {
				j++
			}
		}
	}

	depth := 0
	j := i
Loop:
	for ; j < len(s); j++ {
		switch s[j] {
		case '(':
			depth++
			if depth > 32 {
				// cmark-gfm's nesting cap; it keeps pathological
				// paren runs from going quadratic.
				return "", 0, false
			}
		case ')':
			if depth == 0 {
				break Loop
			}
			depth--
		case '\\':
			if j+1 < len(s) {
				if s[j+1] == ' ' || s[j+1] == '\t' {
					return "", 0, false
				}
				j++
			}
		case ' ', '\t', '\n':
			break Loop
		}
	}
	return mdUnescape(s[i:j]), j, true
}

// An AutoLink is an [Inline] representing a bracketed autolink:
// an absolute URL or email address inside < >.
type AutoLink struct {
	Text string
	URL  string
}

func (*AutoLink) Inline() {}

func (x *AutoLink) printHTML(p *printer) {
	p.html(`<a href="`)
	p.html(htmlLinkEscaper.Replace(x.URL))
	p.html(`">`)
	p.text(x.Text)
	p.html(`</a>`)
}

func (x *AutoLink) printMarkdown(p *printer) {
	fmt.Fprintf(p, "<%s>", x.Text)
}

func (x *AutoLink) printText(p *printer) {
	p.text(x.Text)
}

// parseAutoLinkURI is an [inlineParser] for a URI [AutoLink]:
// a 2-32 character scheme starting with a letter, a colon, and any
// run of non-space non-bracket characters, all inside < >.
// The caller has checked that s[i] == '<'.
func parseAutoLinkURI(s string, i int) (x Inline, end int, ok bool) {
	j := i
	if j+1 >= len(s) || s[j] != '<' || !isLetter(s[j+1]) {
		return
	}
	j++
	for j < len(s) && isScheme(s[j]) && j-(i+1) <= 32 {
		j++
	}
	if j-(i+1) < 2 || j-(i+1) > 32 || j >= len(s) || s[j] != ':' {
		return
	}
	j++
	for j < len(s) && isURL(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != '>' {
		return
	}
	link := s[i+1 : j]
	return &AutoLink{link, link}, j + 1, true
}

// parseAutoLinkEmail is an [inlineParser] for an email [AutoLink],
// matching the HTML5 email address pattern inside < >.
// The caller has checked that s[i] == '<'.
func parseAutoLinkEmail(s string, i int) (x Inline, end int, ok bool) {
	j := i
	if j+1 >= len(s) || s[j] != '<' || !isUser(s[j+1]) {
		return
	}
	j++
	for j < len(s) && isUser(s[j]) {
		j++
	}
	if j >= len(s) || s[j] != '@' {
		return
	}
	for {
		j++
		n, ok1 := skipDomainElem(s[j:])
		if !ok1 {
			return
		}
		j += n
		if j >= len(s) || s[j] != '.' && s[j] != '>' {
			return
		}
		if s[j] == '>' {
			break
		}
	}
	email := s[i+1 : j]
	return &AutoLink{email, "mailto:" + email}, j + 1, true
}

// skipDomainElem reports the length of a leading domain label in s
// and whether there is one: up to 63 LDH bytes with a letter or
// digit at each end.
func skipDomainElem(s string) (int, bool) {
	if len(s) < 1 || !isLetterDigit(s[0]) {
		return 0, false
	}
	i := 1
	for i < len(s) && isLDH(s[i]) && i <= 63 {
		i++
	}
	if i > 63 || !isLetterDigit(s[i-1]) {
		return 0, false
	}
	return i, true
}

// isUser reports whether c may appear in the local part of an email
// autolink.
func isUser(c byte) bool {
	// A-Za-z0-9 plus ".!#$%&'*+/=?^_`{|}~-"
	return c == '!' ||
		'#' <= c && c <= '\'' ||
		'*' <= c && c <= '+' ||
		'-' <= c && c <= '9' ||
		c == '=' ||
		c == '?' ||
		'A' <= c && c <= 'Z' ||
		'^' <= c && c <= '`' ||
		'a' <= c && c <= 'z' ||
		'{' <= c && c <= '~'
}

func isScheme(c byte) bool {
	return isLetterDigit(c) || c == '+' || c == '.' || c == '-'
}

func isURL(c byte) bool {
	return c > ' ' && c != '<' && c != '>'
}

// The autolinks extension: bare web addresses and email addresses in
// ordinary text become links, no brackets required.
//
// GitHub's published grammar says an autolink can only follow the
// start of a line, whitespace, or one of * _ ~ (. The site itself is
// looser: "$abc@def.ghi" links the address after the $. The rule the
// site actually applies is that an autolink cannot follow an ASCII
// letter, and matching the site is the whole point of the extension,
// so that is the rule implemented here.

// autoLinkText rewrites extended autolinks found in list, which
// holds finished emphasis nodes and Literals but no Links, returning
// the rewritten list.
func autoLinkText(p *parseState, list []Inline) []Inline {
	if !p.AutoLinkText {
		return list
	}

	var out []Inline // allocated only if something changes
	for i, x := range list {
		switch x := x.(type) {
		case *Literal:
			if rewrite := autoLinkLiteral(p, x.Text); rewrite != nil {
				if out == nil {
					out = append(out, list[:i]...)
				}
				out = append(out, rewrite...)
				continue
			}
		case *Strong:
			x.Inner = autoLinkText(p, x.Inner)
		case *Strike:
			x.Inner = autoLinkText(p, x.Inner)
		case *Emphasis:
			x.Inner = autoLinkText(p, x.Inner)
		}
		if out != nil {
			out = append(out, x)
		}
	}
	if out == nil {
		return list
	}
	return out
}

// autoLinkLiteral scans the plain text s for autolinks, returning a
// replacement Inlines, or nil if s contains none.
func autoLinkLiteral(p *parseState, s string) Inlines {
	ds := &domainScanner{s: s}
	var out []Inline
Restart:
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '@' {
			if before, link, after, ok := parseAutoEmail(p, s, i); ok {
				if before != "" {
					out = append(out, &Literal{Text: before})
				}
				out = append(out, link)
				ds.advance(len(s) - len(after))
				s = after
				goto Restart
			}
		}

		// The candidate prefixes: http:// https:// mailto: xmpp: www.
		if (c == 'h' || c == 'm' || c == 'x' || c == 'w') && (i == 0 || !isLetter(s[i-1])) {
			if link, after, ok := parseAutoURL(p, s, i, ds); ok {
				if i > 0 {
					out = append(out, &Literal{Text: s[:i]})
				}
				out = append(out, link)
				ds.advance(len(s) - len(after))
				s = after
				goto Restart
			}
		}
	}
	if out == nil {
		return nil
	}
	out = append(out, &Literal{Text: s})
	return out
}

// parseAutoURL parses an extended URL, www, or protocol autolink
// from s[i:] if one exists, returning the link, the text following
// it, and whether one was found.
func parseAutoURL(p *parseState, s string, i int, ds *domainScanner) (link *Link, after string, found bool) {
	if s == "" {
		return
	}
	switch s[i] {
	case 'h':
		var n int
		if strings.HasPrefix(s[i:], "https://") {
			n = len("https://")
		} else if strings.HasPrefix(s[i:], "http://") {
			n = len("http://")
		} else {
			return
		}
		return parseAutoHTTP(p, s[i:i+n], s, i, i+n, i+n+1, ds)
	case 'w':
		if !strings.HasPrefix(s[i:], "www.") {
			return
		}
		// GitHub's grammar says bare www. links get http://, but
		// https is the better default now; AutoLinkAssumeHTTP
		// restores the old behavior.
		scheme := "https://"
		if p.AutoLinkAssumeHTTP {
			scheme = "http://"
		}
		return parseAutoHTTP(p, scheme, s, i, i, i+4, ds)
	case 'm':
		if !strings.HasPrefix(s[i:], "mailto:") {
			return
		}
		return parseAutoMailto(p, s, i)
	case 'x':
		if !strings.HasPrefix(s[i:], "xmpp:") {
			return
		}
		return parseAutoXmpp(p, s, i)
	}
	return
}

// parseAutoHTTP parses a URL autolink whose text starts at
// s[textstart:] and whose URL starts at s[start:]; the link must
// reach at least s[min:] to count. ds is the domain scanner for s.
func parseAutoHTTP(p *parseState, scheme, s string, textstart, start, min int, ds *domainScanner) (link *Link, after string, found bool) {
	n, ok := ds.validDomain(start)
	if !ok {
		return
	}
	i := start + n
	domEnd := i

	// After the domain, any run of non-space non-< characters.
	paren := 0
	for i < len(s) {
		r, n := utf8.DecodeRuneInString(s[i:])
		if isUnicodeSpace(r) || r == '<' {
			break
		}
		if r == '(' {
			paren++
		}
		if r == ')' {
			paren--
		}
		i += n
	}

	// Path validation trims trailing punctuation, close parens
	// beyond the count of open ones, and anything shaped like an
	// entity reference.
Trim:
	for i > 0 {
		switch s[i-1] {
		case '?', '!', '.', ',', ':', '@', '_', '~':
			i--
			continue Trim

		case ')':
			if paren < 0 {
				for s[i-1] == ')' && paren < 0 {
					paren++
					i--
				}
				continue Trim
			}

		case ';':
			// An entity here only needs to look like one: an
			// ampersand, letters or digits, and the semicolon.
			// Either the candidate is cut off the string or the
			// trim stops for good, so the scan cannot repeat and
			// go quadratic.
			for j := i - 2; j > start; j-- {
				if j < i-2 && s[j] == '&' {
					i = j
					continue Trim
				}
				if !isLetterDigit(s[j]) {
					i--
					break Trim
				}
			}
		}
		break Trim
	}

	// GitHub itself accepts www.example.com$foo as a link, which
	// makes the domain character restrictions nearly meaningless.
	// Insist that anything after the domain starts with a slash;
	// writers who want www.example.com:1234 linked can spell out
	// the scheme.
	if textstart == start && i > domEnd && s[domEnd] != '/' {
		i = domEnd
	}

	if i < min {
		return
	}

	link = &Link{
		Inner: Inlines{&Literal{Text: s[textstart:i]}},
		URL:   scheme + s[start:i],
	}
	return link, s[i:], true
}

// parseAutoEmail parses an extended email autolink whose @ is at
// s[i], returning the text before the link, the link, the text
// after it, and whether one was found.
func parseAutoEmail(p *parseState, s string, i int) (before string, link *Link, after string, ok bool) {
	if s[i] != '@' {
		return
	}

	// Local part: alphanumerics plus . - _ +.
	j := i
	for j > 0 && (isLDH(s[j-1]) || s[j-1] == '_' || s[j-1] == '+' || s[j-1] == '.') {
		j--
	}
	if i-j < 1 {
		return
	}

	// Domain: alphanumeric, - and _ segments separated by periods,
	// at least one period, and the last character not - or _.
	dots := 0
	k := i + 1
	for k < len(s) && (isLDH(s[k]) || s[k] == '_' || s[k] == '.') {
		if s[k] == '.' {
			if s[k-1] == '.' {
				// Empirically .. stops the scan, while foo@.bar
				// is accepted.
				break
			}
			dots++
		}
		k++
	}

	// A trailing period is not part of the address.
	if s[k-1] == '.' {
		dots--
		k--
	}
	if s[k-1] == '-' || s[k-1] == '_' {
		return
	}
	if k-(i+1)-dots < 2 || dots < 1 {
		return
	}

	link = &Link{
		Inner: Inlines{&Literal{Text: s[j:k]}},
		URL:   "mailto:" + s[j:k],
	}
	return s[:j], link, s[k:], true
}

// parseAutoMailto parses a mailto: protocol autolink from s[i:].
// The caller has checked that s[i:] begins with "mailto:".
func parseAutoMailto(p *parseState, s string, i int) (link *Link, after string, ok bool) {
	j := i + len("mailto:")
	for j < len(s) && (isLDH(s[j]) || s[j] == '_' || s[j] == '+' || s[j] == '.') {
		j++
	}
	if j >= len(s) || s[j] != '@' {
		return
	}
	before, link, after, ok := parseAutoEmail(p, s[i:], j-i)
	if before != "mailto:" || !ok {
		return nil, "", false
	}
	link.Inner[0] = &Literal{Text: s[i : len(s)-len(after)]}
	return link, after, true
}

// parseAutoXmpp parses an xmpp: protocol autolink from s[i:], which
// unlike mailto: may carry a /resource suffix.
// The caller has checked that s[i:] begins with "xmpp:".
func parseAutoXmpp(p *parseState, s string, i int) (link *Link, after string, ok bool) {
	j := i + len("xmpp:")
	for j < len(s) && (isLDH(s[j]) || s[j] == '_' || s[j] == '+' || s[j] == '.') {
		j++
	}
	if j >= len(s) || s[j] != '@' {
		return
	}
	before, link, after, ok := parseAutoEmail(p, s[i:], j-i)
	if before != "xmpp:" || !ok {
		return nil, "", false
	}
	if after != "" && after[0] == '/' {
		k := 1
		for k < len(after) && (isLetterDigit(after[k]) || after[k] == '@' || after[k] == '.') {
			k++
		}
		after = after[k:]
	}
	url := s[i : len(s)-len(after)]
	link.Inner[0] = &Literal{Text: url}
	link.URL = url
	return link, after, true
}

// A domainScanner checks for a valid autolink domain at a given
// offset of its string, amortizing the analysis across calls so that
// checking every offset stays linear.
type domainScanner struct {
	s   string
	cut int // no valid domain starts before this index
}

// advance drops the first n bytes of the scanner's string, so that
// future calls apply to s[n:].
func (v *domainScanner) advance(n int) {
	v.s = v.s[n:]
	v.cut -= n
}

// validDomain reports the length of a valid domain at s[start:], if
// there is one: segments of alphanumerics, underscores, and hyphens
// separated by periods, with at least one period and no underscore
// in the last two segments. On failure the scanned prefix is
// remembered so no future call re-scans it.
func (v *domainScanner) validDomain(start int) (n int, found bool) {
	if start < v.cut {
		return 0, false
	}
	i := start
	dots := 0
	for ; i < len(v.s); i++ {
		c := v.s[i]
		if c == '_' {
			dots = -2
			continue
		}
		if c == '.' {
			dots++
			continue
		}
		if !isLDH(c) {
			break
		}
	}
	if dots >= 0 && i > start {
		return i - start, true
	}
	v.cut = i
	return 0, false
}
