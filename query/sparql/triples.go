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

package sparql

import (
	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/sparql/query/sparql/algebra"
	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

// triples accumulates the quads of triples blocks written to one graph.
type triples struct {
	s         *session
	graph     quad.Value
	positives []quad.Quad
	negatives [][]quad.Quad
}

func (t *triples) block(n *syntax.Node) error {
	if !n.Is(syntax.KindTriplesBlock) {
		return errorf(ErrInvalid, n, "expected a triples block")
	}
	for _, c := range n.Children {
		if c == nil {
			return errorf(ErrInvalid, n, "missing triples in block")
		}
		switch c.Kind {
		case syntax.KindTriplesSameSubject:
			if err := t.sameSubject(c, &t.positives); err != nil {
				return err
			}
		case syntax.KindTriplesNegative:
			var neg []quad.Quad
			for _, sub := range c.Children {
				if err := t.sameSubject(sub, &neg); err != nil {
					return err
				}
			}
			t.negatives = append(t.negatives, neg)
		default:
			return errorf(ErrInvalid, c, "unexpected %v in triples block", c.Kind)
		}
	}
	return nil
}

func (t *triples) sameSubject(n *syntax.Node, out *[]quad.Quad) error {
	if !n.Is(syntax.KindTriplesSameSubject) {
		return errorf(ErrInvalid, n, "expected triples")
	}
	subj, err := t.node(n.Child(0), out)
	if err != nil {
		return err
	}
	return t.properties(subj, n.Child(1), out)
}

// properties emits one quad per verb and object. Quads of nested collections
// and blank node property lists precede the quad referencing them.
func (t *triples) properties(subj quad.Value, n *syntax.Node, out *[]quad.Quad) error {
	if n == nil {
		return nil
	}
	if n.Len()%2 != 0 {
		return errorf(ErrInvalid, n, "property list has a verb without objects")
	}
	for i := 0; i < n.Len(); i += 2 {
		verb, err := t.verb(n.Child(i))
		if err != nil {
			return err
		}
		objs := n.Child(i + 1)
		if !objs.Is(syntax.KindObjectList) {
			return errorf(ErrInvalid, objs, "expected an object list")
		}
		for _, o := range objs.Children {
			obj, err := t.node(o, out)
			if err != nil {
				return err
			}
			*out = append(*out, quad.Quad{Subject: subj, Predicate: verb, Object: obj, Label: t.graph})
		}
	}
	return nil
}

func (t *triples) verb(n *syntax.Node) (quad.Value, error) {
	switch {
	case n.Is(syntax.KindVar):
		return variable(n)
	case n.Is(syntax.KindPath):
		return nil, errorf(ErrInvalid, n, "property paths are not supported")
	case n.Is(syntax.KindA) || (n != nil && n.Kind.IsIRI()):
		return t.s.iri(n)
	}
	return nil, errorf(ErrInvalid, n, "expected a verb")
}

func (t *triples) node(n *syntax.Node, out *[]quad.Quad) (quad.Value, error) {
	switch {
	case n.Is(syntax.KindCollection):
		return t.collection(n, out)
	case n.Is(syntax.KindBlankNodePropertyList):
		b := t.s.store.BlankNode()
		if err := t.properties(b, n, out); err != nil {
			return nil, err
		}
		return b, nil
	}
	return t.s.term(n)
}

// collection emits the rdf:first and rdf:rest spine of a list and returns
// its head.
func (t *triples) collection(n *syntax.Node, out *[]quad.Quad) (quad.Value, error) {
	if n.Len() == 0 {
		return t.s.rdfNil, nil
	}
	elems := make([]quad.Value, 0, n.Len())
	for _, c := range n.Children {
		v, err := t.node(c, out)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	cells := make([]quad.Value, len(elems))
	for i, v := range elems {
		cells[i] = t.s.store.BlankNode()
		*out = append(*out, quad.Quad{Subject: cells[i], Predicate: t.s.rdfFirst, Object: v, Label: t.graph})
	}
	for i, cell := range cells {
		var next quad.Value = t.s.rdfNil
		if i+1 < len(cells) {
			next = cells[i+1]
		}
		*out = append(*out, quad.Quad{Subject: cell, Predicate: t.s.rdfRest, Object: next, Label: t.graph})
	}
	return cells[0], nil
}

// bgp compiles a triples block. Without an active graph the block is
// compiled once per dataset graph and the copies are united.
func (c *scope) bgp(n *syntax.Node) (algebra.Pattern, error) {
	c.s.resetLabels()
	if c.graph != nil {
		return c.quads(n, c.graph)
	}
	targets := c.dataset.Graphs()
	switch len(targets) {
	case 0:
		return c.quads(n, c.s.defaultGraph)
	case 1:
		return c.quads(n, targets[0])
	}
	u := &algebra.Union{Patterns: make([]algebra.Pattern, 0, len(targets))}
	for _, g := range targets {
		q, err := c.quads(n, g)
		if err != nil {
			return nil, err
		}
		u.Patterns = append(u.Patterns, q)
	}
	return u, nil
}

func (c *scope) quads(n *syntax.Node, g quad.Value) (*algebra.Quads, error) {
	t := triples{s: c.s, graph: g}
	if err := t.block(n); err != nil {
		return nil, err
	}
	return &algebra.Quads{Positives: t.positives, Negatives: t.negatives}, nil
}

// target returns the single graph a template is written to.
func (c *scope) target(n *syntax.Node) (quad.Value, error) {
	if c.graph != nil {
		return c.graph, nil
	}
	targets := c.dataset.Graphs()
	switch len(targets) {
	case 0:
		return c.s.defaultGraph, nil
	case 1:
		return targets[0], nil
	}
	return nil, errorf(ErrAmbiguousTarget, n, "template would be written to %d graphs", len(targets))
}

// template compiles the quads of an update block or a CONSTRUCT template.
// Both plain triples blocks and GRAPH blocks are accepted.
func (c *scope) template(n *syntax.Node) ([]quad.Quad, error) {
	c.s.resetLabels()
	if n == nil || n.Len() == 0 {
		return nil, nil
	}
	t := triples{s: c.s}
	blocks := n.Children
	if n.Is(syntax.KindTriplesBlock) {
		blocks = []*syntax.Node{n}
	}
	var err error
	for _, b := range blocks {
		if b == nil {
			return nil, errorf(ErrInvalid, n, "missing block in quad block")
		}
		switch b.Kind {
		case syntax.KindTriplesBlock:
			t.graph, err = c.target(b)
			if err == nil {
				err = t.block(b)
			}
		case syntax.KindGraphQuads:
			t.graph, err = c.s.varOrIRI(b.Child(0))
			if err == nil && b.Len() > 1 {
				err = t.block(b.Child(1))
			}
		default:
			err = errorf(ErrInvalid, b, "unexpected %v in quad block", b.Kind)
		}
		if err != nil {
			return nil, err
		}
	}
	if len(t.negatives) != 0 {
		return nil, errorf(ErrInvalid, n, "negative triples are not allowed in templates")
	}
	return t.positives, nil
}
