// Copyright 2026 The Cayley Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package syntax defines the annotated SPARQL 1.1 syntax tree produced by a
// parser and consumed by the sparql compiler.
package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a location in the source text. Line and Column start at 1;
// the zero Position means the location is unknown.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// IsValid reports whether the position refers to an actual location.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Node is a single syntax tree node. Token nodes keep their raw source text
// in Value; other nodes are described by their Kind and Children.
type Node struct {
	Kind     Kind     `json:"kind"`
	Value    string   `json:"value,omitempty"`
	Pos      Position `json:"pos"`
	Children []*Node  `json:"children,omitempty"`
}

// New creates an interior node.
func New(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// Token creates a leaf node.
func Token(kind Kind, value string) *Node {
	return &Node{Kind: kind, Value: value}
}

// At sets the source position of the node and returns it.
func (n *Node) At(line, column int) *Node {
	n.Pos = Position{Line: line, Column: column}
	return n
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Child returns the i-th child, or nil if there is none.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Is reports whether the node has one of the given kinds.
func (n *Node) Is(kinds ...Kind) bool {
	if n == nil {
		return false
	}
	for _, k := range kinds {
		if n.Kind == k {
			return true
		}
	}
	return false
}

// Find returns the first direct child of the given kind.
func (n *Node) Find(kind Kind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Is(kind) {
			return c
		}
	}
	return nil
}

// FindAll returns all direct children of the given kinds in order.
func (n *Node) FindAll(kinds ...Kind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Is(kinds...) {
			out = append(out, c)
		}
	}
	return out
}

// String renders the node as an s-expression.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("nil")
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Kind.String())
	if n.Value != "" {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(n.Value))
	}
	for _, c := range n.Children {
		sb.WriteByte(' ')
		c.write(sb)
	}
	sb.WriteByte(')')
}

// Tree is a parsed compilation unit together with its source text.
type Tree struct {
	Text string `json:"text,omitempty"`
	Root *Node  `json:"root"`
}

// Context returns the source line at pos and a pointer line marking the
// column. Both are empty when the position is unknown or out of range.
func (t *Tree) Context(pos Position) (line, pointer string) {
	if t == nil || !pos.IsValid() {
		return "", ""
	}
	lines := strings.Split(t.Text, "\n")
	if pos.Line > len(lines) {
		return "", ""
	}
	line = strings.TrimSuffix(lines[pos.Line-1], "\r")
	var sb strings.Builder
	col := 1
	for _, r := range line {
		if col >= pos.Column {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
		col++
	}
	sb.WriteByte('^')
	return line, sb.String()
}

// Error is a syntax error reported by a parser.
type Error struct {
	Msg string   `json:"message"`
	Pos Position `json:"pos"`
}

func (e Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("syntax error at %v: %s", e.Pos, e.Msg)
	}
	return "syntax error: " + e.Msg
}

// ErrorList is a list of syntax errors, in source order.
type ErrorList []Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no syntax errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
}
