// Copyright 2025 The Mdtree Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mdtree

import "testing"

var tableCountTests = []struct {
	row string
	n   int
}{
	{"|", 1},
	{"|x|", 1},
	{"||", 1},
	{"| |", 1},
	{"| | |", 2},
	{"| | Foo | Bar |", 3},
	{"|          | Foo      | Bar      |", 3},
	{"", 1},
	{"|a|b", 2},
	{"|a| ", 1},
	{" |b", 1},
	{"a|b", 2},
	{`x\|y`, 1},
	{`x\\|y`, 1},
	{`x\\\|y`, 1},
	{`x\\\\|y`, 1},
	{`x\\\\\|y`, 1},
	{`| 0\|1\\|2\\\|3\\\\|4\\\\\|5\\\\\\|6\\\\\\\|7\\\\\\\\|8  |`, 1},
}

func TestTableCount(t *testing.T) {
	for _, tt := range tableCountTests {
		n := tableCount(tt.row)
		if n != tt.n {
			t.Errorf("tableCount(%#q) = %d, want %d", tt.row, n, tt.n)
		}
	}
}

var tableStartTests = []struct {
	hdr, delim string
	ok         bool
}{
	{"| a | b |", "| --- | --- |", true},
	{"| a | b |", "|:--- |---:|", true},
	{"a | b", "--- | :---:", true},
	{"| a |", "| - |", true},
	{"| a | b |", "| --- |", false},
	{"| a |", "| --- | --- |", false},
	{"| a |", "| -x- |", false},
	{"| a |", "| === |", false},
	{"| a |", "|     |", false},
	{"| a |", "| ::- |", false},
}

func TestIsTableStart(t *testing.T) {
	for _, tt := range tableStartTests {
		if ok := isTableStart(tt.hdr, tt.delim); ok != tt.ok {
			t.Errorf("isTableStart(%#q, %#q) = %v, want %v", tt.hdr, tt.delim, ok, tt.ok)
		}
	}
}

var tableAlignTests = []struct {
	cell string
	want string
}{
	{"---", ""},
	{":--", "left"},
	{"--:", "right"},
	{":-:", "center"},
	{"  :---  ", "left"},
	{":", "center"},
}

func TestTableAlign(t *testing.T) {
	for _, tt := range tableAlignTests {
		if got := tableAlign(tt.cell); got != tt.want {
			t.Errorf("tableAlign(%#q) = %q, want %q", tt.cell, got, tt.want)
		}
	}
}
