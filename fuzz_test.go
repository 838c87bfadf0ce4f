// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"golang.org/x/tools/txtar"
)

// FuzzRoundTrip checks that formatting a parsed document and parsing
// the result renders the same HTML. Format need not reproduce the
// input text, but it must preserve the meaning.
func FuzzRoundTrip(f *testing.F) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		f.Fatal(err)
	}
	for _, file := range files {
		a, err := txtar.ParseFile(file)
		if err != nil {
			f.Fatal(err)
		}
		for i := 0; i+2 <= len(a.Files); i += 2 {
			if strings.HasSuffix(a.Files[i].Name, ".md") {
				f.Add(decode(string(a.Files[i].Data)))
			}
		}
	}
	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) || strings.ContainsAny(s, "\x00\r") {
			return
		}
		p := Parser{
			HeadingID:     true,
			Strikethrough: true,
			Table:         true,
			Footnote:      true,
			AutoLinkText:  true,
			SmartDot:      true,
			SmartDash:     true,
			SmartQuote:    true,
		}
		doc := p.Parse(s)
		html1 := ToHTML(doc)
		md := Format(doc)
		html2 := ToHTML(p.Parse(md))
		if html1 != html2 {
			t.Fatalf("not stable:\nin: %q\nhtml: %q\nformatted: %q\nreparsed html: %q", s, html1, md, html2)
		}
	})
}
