// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// inlineHTML parses s as inline text with parser p and renders it
// inside a paragraph, for testing the inline scanner in isolation
// from block structure.
func inlineHTML(p Parser, s string) string {
	var ps parseState
	ps.Parser = &p
	return ToHTML(&Paragraph{Text: &Text{Inline: ps.inline(s)}})
}

var inlineTests = []struct {
	name string
	in   string
	want string // inner HTML, without the <p> wrapper
}{
	{"emph", "a *b* c", "a <em>b</em> c"},
	{"strong", "a **b** c", "a <strong>b</strong> c"},
	{"emph strong", "***a***", "<em><strong>a</strong></em>"},
	{"rule of three", "*a**b**c*", "<em>a<strong>b</strong>c</em>"},
	{"star intraword", "a*b*", "a<em>b</em>"},
	{"underscore intraword", "a_b_", "a_b_"},
	{"unmatched star", "a*b", "a*b"},
	{"code span", "`a` b", "<code>a</code> b"},
	{"code span inner tick", "``a`b``", "<code>a`b</code>"},
	{"code span space strip", "` a `", "<code>a</code>"},
	{"code span lone tick", "`` ` ``", "<code>`</code>"},
	{"code span unclosed", "`ab", "`ab"},
	{"code beats emph", "*a `b* c`", "*a <code>b* c</code>"},
	{"escape", `\*x\*`, "*x*"},
	{"escape nonpunct", `\x`, `\x`},
	{"named entity", "&copy;", "©"},
	{"numeric entity", "&#65;&#x42;", "AB"},
	{"bare amp", "a & b", "a &amp; b"},
	{"soft break", "a\nb", "a\nb"},
	{"hard break", "a  \nb", "a<br />\nb"},
	{"backslash break", "a\\\nb", "a<br />\nb"},
}

func TestInline(t *testing.T) {
	for _, tt := range inlineTests {
		t.Run(tt.name, func(t *testing.T) {
			var p Parser
			assert.Equal(t, "<p>"+tt.want+"</p>\n", inlineHTML(p, tt.in))
		})
	}
}

var smartTests = []struct {
	name string
	in   string
	want string
}{
	{"double quotes", `"x"`, "“x”"},
	{"single quotes", "'x'", "‘x’"},
	{"apostrophe", "it's", "it’s"},
	{"leading apostrophe", "'tis", "’tis"},
	{"en dash", "a--b", "a–b"},
	{"em dash", "a---b", "a—b"},
	{"ellipsis", "so...", "so…"},
	{"two dots", "so..", "so.."},
}

func TestInlineSmart(t *testing.T) {
	for _, tt := range smartTests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parser{SmartQuote: true, SmartDash: true, SmartDot: true}
			assert.Equal(t, "<p>"+tt.want+"</p>\n", inlineHTML(p, tt.in))
		})
	}
}

var strikeTests = []struct {
	name string
	in   string
	want string
}{
	{"double tilde", "~~x~~", "<del>x</del>"},
	{"single tilde", "~x~", "<del>x</del>"},
	{"unmatched", "a~~b", "a~~b"},
	{"long run literal", "a ~~~x~~~ b", "a ~~~x~~~ b"},
}

func TestInlineStrike(t *testing.T) {
	for _, tt := range strikeTests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parser{Strikethrough: true}
			assert.Equal(t, "<p>"+tt.want+"</p>\n", inlineHTML(p, tt.in))
		})
	}
}

func TestMaxRun(t *testing.T) {
	assert.Equal(t, 2, maxRun("a``b`", '`'))
	assert.Equal(t, 0, maxRun("abc", '`'))
	assert.Equal(t, 3, maxRun("```", '`'))
}
