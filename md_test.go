// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import (
	"bytes"
	"flag"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	gparser "github.com/yuin/goldmark/parser"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/tools/txtar"
)

var goldmarkFlag = flag.Bool("goldmark", false, "cross-check against goldmark")

// Test runs the golden corpus: each testdata/*.txt is a txtar whose
// comment sets Parser options and whose files alternate between
// name.md inputs and name.html expected output.
func Test(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no testdata")
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

			var ncase, npass int
			for i := 0; i+2 <= len(a.Files); i += 2 {
				ncase++
				md := a.Files[i]
				html := a.Files[i+1]
				name := strings.TrimSuffix(md.Name, ".md")
				if name != strings.TrimSuffix(html.Name, ".html") {
					t.Fatalf("mismatched file pair: %s and %s", md.Name, html.Name)
				}

				t.Run(name, func(t *testing.T) {
					doc := p.Parse(decode(string(md.Data)))
					h := encode(ToHTML(doc))
					if h != string(html.Data) {
						t.Fatalf("input %q\nparse:\n%s\nhave %q\nwant %q\ndingus: (https://spec.commonmark.org/dingus/?text=%s)", md.Data, dump(doc), h, html.Data, strings.ReplaceAll(url.QueryEscape(decode(string(md.Data))), "+", "%20"))
					}
					npass++
				})

				if !*goldmarkFlag || !goldmarkComparable(&p) {
					continue
				}
				t.Run("goldmark/"+name, func(t *testing.T) {
					in := decode(string(md.Data))
					_, corner := p.parse(in)
					if corner {
						t.Skip("known cross-implementation divergence")
					}
					opts := []goldmark.Option{goldmark.WithRendererOptions(ghtml.WithUnsafe())}
					if p.HeadingID {
						opts = append(opts, goldmark.WithParserOptions(gparser.WithHeadingAttribute()))
					}
					gm := goldmark.New(opts...)
					var buf bytes.Buffer
					if err := gm.Convert([]byte(in), &buf); err != nil {
						t.Fatal(err)
					}
					if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
						buf.WriteByte('\n')
					}
					want := strings.ReplaceAll(string(html.Data), " />", ">")
					out := strings.ReplaceAll(encode(buf.String()), " />", ">")
					if out != want {
						t.Fatalf("\n    - input: ``%q``\n    - output: ``%q``\n    - golden: ``%q``\n    - [dingus](https://spec.commonmark.org/dingus/?text=%s)", md.Data, out, want, strings.ReplaceAll(url.QueryEscape(in), "+", "%20"))
					}
					npass++
				})
			}
			t.Logf("%d/%d pass", npass, ncase)
		})
	}
}

// goldmarkComparable reports whether the parser's configuration maps
// onto a stock goldmark instance.
func goldmarkComparable(p *Parser) bool {
	return !p.Strikethrough && !p.Table && !p.Footnote &&
		!p.AutoLinkText && !p.SmartDot && !p.SmartDash && !p.SmartQuote
}

// decode rewrites the control-character markers used to keep the
// txtar files printable: ^M for CR, ^@ for NUL, ^J to protect a
// trailing space, ^D to suppress the final newline.
func decode(s string) string {
	s = strings.ReplaceAll(s, "^J\n", "\n")
	s = strings.ReplaceAll(s, "^M", "\r")
	s = strings.ReplaceAll(s, "^D\n", "")
	s = strings.ReplaceAll(s, "^@", "\x00")
	return s
}

func encode(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "^M\n")
	s = strings.ReplaceAll(s, "\r", "^M^D\n")
	s = strings.ReplaceAll(s, " \n", " ^J\n")
	s = strings.ReplaceAll(s, "\t\n", "\t^J\n")
	s = strings.ReplaceAll(s, "\x00", "^@")
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "^D\n"
	}
	return s
}

// setParserOptions applies lines of the form
//
//	Option: value
//
// from data to the Parser.
func setParserOptions(p *Parser, data []byte) error {
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "//") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		switch key {
		case "HeadingID":
			p.HeadingID = b
		case "Strikethrough":
			p.Strikethrough = b
		case "Table":
			p.Table = b
		case "Footnote":
			p.Footnote = b
		case "AutoLinkText":
			p.AutoLinkText = b
		case "AutoLinkAssumeHTTP":
			p.AutoLinkAssumeHTTP = b
		case "SmartDot":
			p.SmartDot = b
		case "SmartDash":
			p.SmartDash = b
		case "SmartQuote":
			p.SmartQuote = b
		default:
			return fmt.Errorf("unknown option: %q", key)
		}
	}
	return nil
}

// dump formats a block tree for failure messages.
func dump(b Block) string {
	var sb strings.Builder
	dumpBlock(&sb, b, "")
	return sb.String()
}

func dumpBlock(sb *strings.Builder, b Block, indent string) {
	pos := b.Pos()
	fmt.Fprintf(sb, "%s%T %d-%d", indent, b, pos.StartLine, pos.EndLine)
	switch b := b.(type) {
	case *Document:
		sb.WriteString("\n")
		for _, c := range b.Blocks {
			dumpBlock(sb, c, indent+"\t")
		}
	case *BlockQuote:
		sb.WriteString("\n")
		for _, c := range b.Blocks {
			dumpBlock(sb, c, indent+"\t")
		}
	case *List:
		fmt.Fprintf(sb, " bullet=%q loose=%v\n", b.Bullet, b.Loose)
		for _, c := range b.Items {
			dumpBlock(sb, c, indent+"\t")
		}
	case *Item:
		sb.WriteString("\n")
		for _, c := range b.Blocks {
			dumpBlock(sb, c, indent+"\t")
		}
	case *Heading:
		fmt.Fprintf(sb, " level=%d %q\n", b.Level, inlineText(b.Text))
	case *Paragraph:
		fmt.Fprintf(sb, " %q\n", inlineText(b.Text))
	case *Text:
		fmt.Fprintf(sb, " %q\n", inlineText(b))
	case *CodeBlock:
		fmt.Fprintf(sb, " fence=%q info=%q %q\n", b.Fence, b.Info, strings.Join(b.Text, "\n"))
	case *HTMLBlock:
		fmt.Fprintf(sb, " %q\n", strings.Join(b.Text, "\n"))
	case *Table:
		fmt.Fprintf(sb, " %d cols × %d rows\n", len(b.Header), len(b.Rows))
	default:
		sb.WriteString("\n")
	}
}

// inlineText renders a Text's inline content as plain text.
func inlineText(t *Text) string {
	var p printer
	p.writeMode = writeText
	t.Inline.printText(&p)
	return p.buf.String()
}
