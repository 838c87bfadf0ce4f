// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBlockPositions(t *testing.T) {
	var p Parser
	doc := p.Parse("# h\n\npara\nmore\n")
	require.Len(t, doc.Blocks, 2)

	h, ok := doc.Blocks[0].(*Heading)
	require.True(t, ok, "want *Heading, got %T", doc.Blocks[0])
	if diff := cmp.Diff(Position{1, 1}, h.Position); diff != "" {
		t.Errorf("heading position (-want +have):\n%s", diff)
	}

	para, ok := doc.Blocks[1].(*Paragraph)
	require.True(t, ok, "want *Paragraph, got %T", doc.Blocks[1])
	if diff := cmp.Diff(Position{3, 4}, para.Position); diff != "" {
		t.Errorf("paragraph position (-want +have):\n%s", diff)
	}
}

func TestLazyContinuation(t *testing.T) {
	var p Parser
	doc := p.Parse("> a\nb\n")
	require.Len(t, doc.Blocks, 1)

	bq, ok := doc.Blocks[0].(*BlockQuote)
	require.True(t, ok, "want *BlockQuote, got %T", doc.Blocks[0])
	require.Equal(t, Position{1, 2}, bq.Position)
	require.Len(t, bq.Blocks, 1)

	para, ok := bq.Blocks[0].(*Paragraph)
	require.True(t, ok, "want *Paragraph, got %T", bq.Blocks[0])
	require.Equal(t, Position{1, 2}, para.Position)

	require.Equal(t, "<blockquote>\n<p>a\nb</p>\n</blockquote>\n", ToHTML(doc))
}

func TestListTightLoose(t *testing.T) {
	var p Parser

	doc := p.Parse("- a\n- b\n")
	require.Len(t, doc.Blocks, 1)
	list := doc.Blocks[0].(*List)
	require.False(t, list.Loose, "adjacent items should be tight")
	require.Equal(t, '-', list.Bullet)
	require.Len(t, list.Items, 2)

	doc = p.Parse("- a\n\n- b\n")
	require.Len(t, doc.Blocks, 1)
	list = doc.Blocks[0].(*List)
	require.True(t, list.Loose, "blank-separated items should be loose")
}

func TestListOrderedStart(t *testing.T) {
	var p Parser
	doc := p.Parse("3. a\n4. b\n")
	require.Len(t, doc.Blocks, 1)
	list := doc.Blocks[0].(*List)
	require.Equal(t, '.', list.Bullet)
	require.Equal(t, 3, list.Start)
	require.Len(t, list.Items, 2)
}

// Two consecutive blank lines end the list entirely: a later marker
// starts a sibling list rather than another (loose) item.
func TestListTwoBlankTermination(t *testing.T) {
	var p Parser
	doc := p.Parse("- a\n\n\n- b\n")
	require.Len(t, doc.Blocks, 2)

	first, ok := doc.Blocks[0].(*List)
	require.True(t, ok, "want *List, got %T", doc.Blocks[0])
	require.Len(t, first.Items, 1)
	require.False(t, first.Loose)

	second, ok := doc.Blocks[1].(*List)
	require.True(t, ok, "want *List, got %T", doc.Blocks[1])
	require.Len(t, second.Items, 1)
	require.Equal(t, 4, second.StartLine)
}

func TestListInterruptsParagraph(t *testing.T) {
	var p Parser

	// An ordered list can interrupt a paragraph only when it starts at 1.
	doc := p.Parse("a\n2. b\n")
	require.Len(t, doc.Blocks, 1)
	require.IsType(t, &Paragraph{}, doc.Blocks[0])

	doc = p.Parse("a\n1. b\n")
	require.Len(t, doc.Blocks, 2)
	require.IsType(t, &Paragraph{}, doc.Blocks[0])
	require.IsType(t, &List{}, doc.Blocks[1])

	// A bullet item must be nonblank to interrupt.
	doc = p.Parse("a\n*\n")
	require.Len(t, doc.Blocks, 1)
	require.IsType(t, &Paragraph{}, doc.Blocks[0])
}

func TestSetextAfterRefDefs(t *testing.T) {
	var p Parser

	// A paragraph consumed entirely by reference definitions leaves
	// nothing to underline: the --- becomes a thematic break.
	doc := p.Parse("[a]: /u\n---\n")
	require.Contains(t, doc.Links, "a")
	require.Equal(t, "/u", doc.Links["a"].URL)
	for _, b := range doc.Blocks {
		if _, ok := b.(*Heading); ok {
			t.Fatalf("unexpected heading in %s", dump(doc))
		}
	}
	require.Equal(t, "<hr />\n", ToHTML(doc))
}

func TestRefDefFirstWins(t *testing.T) {
	var p Parser
	doc := p.Parse("[a]: /one\n\n[a]: /two\n\n[a]\n")
	require.Equal(t, "/one", doc.Links["a"].URL)
	require.Equal(t, "<p><a href=\"/one\">a</a></p>\n", ToHTML(doc))
}

func TestIndentedCodeCannotInterrupt(t *testing.T) {
	var p Parser
	doc := p.Parse("a\n    b\n")
	require.Len(t, doc.Blocks, 1)
	require.IsType(t, &Paragraph{}, doc.Blocks[0])
	require.Equal(t, "<p>a\nb</p>\n", ToHTML(doc))
}

func TestCarriageReturns(t *testing.T) {
	var p Parser
	if diff := cmp.Diff(ToHTML(p.Parse("a\nb\n")), ToHTML(p.Parse("a\r\nb\r\n"))); diff != "" {
		t.Errorf("CRLF and LF parses differ (-LF +CRLF):\n%s", diff)
	}
}

func TestNULReplacement(t *testing.T) {
	var p Parser
	require.Equal(t, "<p>a�b</p>\n", ToHTML(p.Parse("a\x00b\n")))
}
