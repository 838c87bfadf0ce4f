// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var normalizeLabelTests = []struct {
	in   string
	want string
}{
	{"Foo", "foo"},
	{"  Foo  ", "foo"},
	{"foo\n bar", "foo bar"},
	{"a\tb  c", "a b c"},
	{"ΑΓΩ", "αγω"},
	{"Straße", "strasse"},
	{"a[b]", ""},
	{"a]b", ""},
}

func TestNormalizeLabel(t *testing.T) {
	for _, tt := range normalizeLabelTests {
		if got := normalizeLabel(tt.in); got != tt.want {
			t.Errorf("normalizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

var linkDestTests = []struct {
	in   string
	dest string
	end  int
	ok   bool
}{
	{"</url>", "/url", 6, true},
	{"<a b>", "a b", 5, true},
	{"<a\nb>", "", 0, false},
	{"<a<b>", "", 0, false},
	{`<a\>b>`, "a>b", 6, true},
	{"/url rest", "/url", 4, true},
	{"a(b)c", "a(b)c", 5, true},
	{"a)b", "a", 1, true},
	{`a\)b`, "a)b", 4, true},
	{strings.Repeat("(", 33) + strings.Repeat(")", 33), "", 0, false},
}

func TestParseLinkDest(t *testing.T) {
	for _, tt := range linkDestTests {
		dest, end, ok := parseLinkDest(tt.in, 0)
		if dest != tt.dest || end != tt.end || ok != tt.ok {
			t.Errorf("parseLinkDest(%q) = %q, %d, %v, want %q, %d, %v", tt.in, dest, end, ok, tt.dest, tt.end, tt.ok)
		}
	}
}

var linkTitleTests = []struct {
	in    string
	title string
	char  byte
	end   int
	ok    bool
}{
	{`"hello"`, "hello", '"', 7, true},
	{`'a b'`, "a b", '\'', 5, true},
	{"(t)", "t", ')', 3, true},
	{`"a\"b"`, `a"b`, '"', 6, true},
	{`"unclosed`, "", 0, 0, false},
	{"(a(b))", "", 0, 0, false},
	{"plain", "", 0, 0, false},
}

func TestParseLinkTitle(t *testing.T) {
	for _, tt := range linkTitleTests {
		title, char, end, ok := parseLinkTitle(tt.in, 0)
		if title != tt.title || char != tt.char || end != tt.end || ok != tt.ok {
			t.Errorf("parseLinkTitle(%q) = %q, %q, %d, %v, want %q, %q, %d, %v",
				tt.in, title, char, end, ok, tt.title, tt.char, tt.end, tt.ok)
		}
	}
}

func TestParseLinkLabel(t *testing.T) {
	ps := &parseState{Parser: &Parser{}}

	label, end, ok := parseLinkLabel(ps, "[foo] rest", 0)
	require.True(t, ok)
	assert.Equal(t, "foo", label)
	assert.Equal(t, 5, end)

	_, _, ok = parseLinkLabel(ps, "[ ]", 0)
	assert.False(t, ok, "blank label")

	_, _, ok = parseLinkLabel(ps, "[a[b]]", 0)
	assert.False(t, ok, "nested bracket")

	label, end, ok = parseLinkLabel(ps, `[a\]b]`, 0)
	require.True(t, ok, "escaped bracket stays in the label")
	assert.Equal(t, `a\]b`, label)
	assert.Equal(t, 6, end)

	_, _, ok = parseLinkLabel(ps, "["+strings.Repeat("x", 1000)+"]", 0)
	assert.False(t, ok, "over the 999-character cap")
	assert.True(t, ps.corner)
}

func TestParseAutoLinkURI(t *testing.T) {
	x, end, ok := parseAutoLinkURI("<https://x> t", 0)
	require.True(t, ok)
	assert.Equal(t, 11, end)
	al := x.(*AutoLink)
	assert.Equal(t, "https://x", al.Text)
	assert.Equal(t, "https://x", al.URL)

	_, _, ok = parseAutoLinkURI("<a:b>", 0)
	assert.False(t, ok, "scheme too short")

	_, _, ok = parseAutoLinkURI("<ab:c d>", 0)
	assert.False(t, ok, "space in URL")

	x, _, ok = parseAutoLinkURI("<mailto:x@y>", 0)
	require.True(t, ok)
	assert.Equal(t, "mailto:x@y", x.(*AutoLink).URL)
}

func TestParseAutoLinkEmail(t *testing.T) {
	x, end, ok := parseAutoLinkEmail("<a@b.c>", 0)
	require.True(t, ok)
	assert.Equal(t, 7, end)
	al := x.(*AutoLink)
	assert.Equal(t, "a@b.c", al.Text)
	assert.Equal(t, "mailto:a@b.c", al.URL)

	_, _, ok = parseAutoLinkEmail("<a@b.>", 0)
	assert.False(t, ok, "trailing dot")

	_, _, ok = parseAutoLinkEmail("<@b>", 0)
	assert.False(t, ok, "empty local part")

	_, _, ok = parseAutoLinkEmail("<a@b_c>", 0)
	assert.False(t, ok, "underscore in domain")
}

func TestSkipDomainElem(t *testing.T) {
	n, ok := skipDomainElem("example.com")
	require.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = skipDomainElem("-bad")
	assert.False(t, ok)

	n, ok = skipDomainElem("a-b.c")
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = skipDomainElem(strings.Repeat("x", 64))
	assert.False(t, ok, "label longer than 63 bytes")
}
