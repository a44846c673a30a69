// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package deck assembles solver input decks from mesh exports and a template
package deck

import (
	"strings"
)

// Kind classifies a section of a mesh export
type Kind int

// kinds of blocks
const (
	KindPreamble   Kind = iota // lines before the first section marker
	KindNode                   // *NODE
	KindElement                // *ELEMENT
	KindNodeSet                // *NSET
	KindElementSet             // *ELSET
	KindComment                // ** comment
	KindOther                  // any other keyword
)

// Marker starts a section line
const Marker = "*"

var kindNames = []string{"preamble", "node", "element", "nset", "elset", "comment", "other"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Block holds one section of a mesh export. Lines keep their terminators, so joining
// Header and Lines reproduces the input exactly
type Block struct {
	Kind    Kind     // kind of section
	Keyword string   // keyword as written; e.g. "*NSET"
	Header  string   // first line (empty for preamble)
	Lines   []string // data lines following header
}

// Text returns the block as written in the input
func (o *Block) Text() string {
	return o.Header + strings.Join(o.Lines, "")
}

// split returns the keyword and the remainder of the header, including its terminator
func (o *Block) split() (keyword, rest string) {
	h := o.Header
	if i := strings.IndexByte(h, ','); i >= 0 {
		return h[:i], h[i:]
	}
	body := strings.TrimRight(h, "\r\n")
	return body, h[len(body):]
}

// SplitLines splits text into lines keeping line terminators
func SplitLines(text string) (lines []string) {
	if text == "" {
		return
	}
	lines = strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return
}

// Parse splits mesh-export lines into blocks. A block starts at a line beginning with the
// section marker and runs until the next such line or the end of input
func Parse(lines []string) (blocks []*Block) {
	var cur *Block
	for _, line := range lines {
		if strings.HasPrefix(line, Marker) {
			cur = &Block{Header: line}
			cur.Keyword, _ = cur.split()
			cur.Kind = classify(line)
			blocks = append(blocks, cur)
			continue
		}
		if cur == nil {
			cur = &Block{Kind: KindPreamble}
			blocks = append(blocks, cur)
		}
		cur.Lines = append(cur.Lines, line)
	}
	return
}

// classify returns the kind of a section line; keywords are case-insensitive
func classify(line string) Kind {
	if strings.HasPrefix(line, "**") {
		return KindComment
	}
	key := strings.ToUpper(strings.TrimSpace(line))
	if i := strings.IndexByte(key, ','); i >= 0 {
		key = strings.TrimSpace(key[:i])
	}
	switch key {
	case "*NODE":
		return KindNode
	case "*ELEMENT":
		return KindElement
	case "*NSET":
		return KindNodeSet
	case "*ELSET":
		return KindElementSet
	}
	return KindOther
}

// Join joins the text of all blocks
func Join(blocks []*Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(b.Text())
	}
	return sb.String()
}

// AssemblySets returns the node-set blocks with headers bound to a part instance; e.g.
//  *NSET,NSET=RIGHT  =>  *NSET, instance=Beam-1,NSET=RIGHT
// Each block is followed by a blank line. The result is empty if there are no node sets
func AssemblySets(blocks []*Block, instance string) string {
	var sb strings.Builder
	for _, b := range blocks {
		if b.Kind != KindNodeSet {
			continue
		}
		keyword, rest := b.split()
		sb.WriteString(keyword + ", instance=" + instance + rest)
		for _, l := range b.Lines {
			sb.WriteString(l)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
