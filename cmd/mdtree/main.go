// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mdtree renders, reformats, and inspects Markdown documents.
//
// Usage:
//
//	mdtree html [file...]
//	mdtree fmt [-w] [file...]
//	mdtree dump [file...]
//
// Each command reads the named files, or else standard input.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/inkmd/mdtree"
)

type cli struct {
	Verbose bool             `short:"v" help:"Enable verbose logging."`
	Version kong.VersionFlag `name:"version" help:"Show version and exit."`

	HTML htmlCmd `cmd:"" name:"html" help:"Render Markdown as HTML."`
	Fmt  fmtCmd  `cmd:"" help:"Reformat Markdown source."`
	Dump dumpCmd `cmd:"" help:"Print the parsed block structure."`
}

// AfterApply runs after flag parsing; set up logging once.
func (c *cli) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// parserOpts selects the extensions beyond plain CommonMark.
type parserOpts struct {
	HeadingID bool `help:"Parse {#id} heading attributes."`
	Strike    bool `help:"Parse ~~strikethrough~~."`
	Table     bool `help:"Parse GitHub tables."`
	Footnote  bool `help:"Parse [^1] footnotes."`
	Autolink  bool `help:"Linkify bare URLs and addresses."`
	Smart     bool `help:"Smart quotes, dashes, and ellipses."`
}

func (o parserOpts) parser() mdtree.Parser {
	return mdtree.Parser{
		HeadingID:     o.HeadingID,
		Strikethrough: o.Strike,
		Table:         o.Table,
		Footnote:      o.Footnote,
		AutoLinkText:  o.Autolink,
		SmartDot:      o.Smart,
		SmartDash:     o.Smart,
		SmartQuote:    o.Smart,
	}
}

// eachInput reads the named files, or standard input when none are
// named, and calls do once per document.
func eachInput(files []string, do func(name, text string) error) error {
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		return do("stdin", string(data))
	}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		slog.Debug("read input", "file", file, "bytes", len(data))
		if err := do(file, string(data)); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

type htmlCmd struct {
	parserOpts
	Files []string `arg:"" optional:"" type:"existingfile" help:"Input files (default stdin)."`
}

func (c *htmlCmd) Run() error {
	p := c.parser()
	return eachInput(c.Files, func(name, text string) error {
		_, err := os.Stdout.WriteString(mdtree.ToHTML(p.Parse(text)))
		return err
	})
}

type fmtCmd struct {
	parserOpts
	Write bool     `short:"w" help:"Rewrite files in place instead of printing."`
	Files []string `arg:"" optional:"" type:"existingfile" help:"Input files (default stdin)."`
}

func (c *fmtCmd) Run() error {
	if c.Write && len(c.Files) == 0 {
		return fmt.Errorf("-w requires input files")
	}
	p := c.parser()
	return eachInput(c.Files, func(name, text string) error {
		out := mdtree.Format(p.Parse(text))
		if c.Write {
			return os.WriteFile(name, []byte(out), 0o666)
		}
		_, err := os.Stdout.WriteString(out)
		return err
	})
}

type dumpCmd struct {
	parserOpts
	Files []string `arg:"" optional:"" type:"existingfile" help:"Input files (default stdin)."`
}

func (c *dumpCmd) Run() error {
	p := c.parser()
	return eachInput(c.Files, func(name, text string) error {
		doc := p.Parse(text)
		var sb strings.Builder
		dumpBlock(&sb, doc, "")
		_, err := os.Stdout.WriteString(sb.String())
		return err
	})
}

func dumpBlock(sb *strings.Builder, b mdtree.Block, indent string) {
	pos := b.Pos()
	fmt.Fprintf(sb, "%s%T %d-%d", indent, b, pos.StartLine, pos.EndLine)
	sb.WriteByte('\n')
	for _, c := range blockChildren(b) {
		dumpBlock(sb, c, indent+"\t")
	}
}

func blockChildren(b mdtree.Block) []mdtree.Block {
	switch b := b.(type) {
	case *mdtree.Document:
		return b.Blocks
	case *mdtree.BlockQuote:
		return b.Blocks
	case *mdtree.List:
		return b.Items
	case *mdtree.Item:
		return b.Blocks
	}
	return nil
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("mdtree"),
		kong.Description("Markdown rendering, formatting, and inspection."),
		kong.Vars{"version": "mdtree dev"},
	)
	ctx.FatalIfErrorf(ctx.Run())
}
