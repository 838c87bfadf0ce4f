// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// TestRoundTrip checks, for every corpus input, that formatting the
// parsed document and reparsing it renders the same HTML.
func TestRoundTrip(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txt"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			var p Parser
			if err := setParserOptions(&p, a.Comment); err != nil {
				t.Fatal(err)
			}
			for i := 0; i+2 <= len(a.Files); i += 2 {
				md := a.Files[i]
				name := strings.TrimSuffix(md.Name, ".md")
				t.Run(name, func(t *testing.T) {
					in := decode(string(md.Data))
					doc := p.Parse(in)
					want := ToHTML(doc)
					formatted := Format(doc)
					doc2 := p.Parse(formatted)
					if have := ToHTML(doc2); have != want {
						t.Fatalf("meaning changed:\ninput %q\nformatted %q\nbefore %q\nafter %q\nreparse:\n%s", in, formatted, want, have, dump(doc2))
					}
				})
			}
		})
	}
}
