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
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/sparql/nodes"
	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

// session holds the state of a single compilation unit.
type session struct {
	store    nodes.Store
	protocol Dataset
	vocab    bool

	base       iriParts
	namespaces map[string]string

	// Blank node labels are scoped to one basic graph pattern or quad block.
	labels map[string]quad.BNode

	rdfType, rdfFirst, rdfRest, rdfNil quad.IRI
	defaultGraph                       quad.IRI
	trueLit, falseLit                  quad.Value
}

func (c *Compiler) newSession() (*session, error) {
	st := c.store
	s := &session{
		store:        st,
		protocol:     c.opts.Dataset,
		vocab:        c.opts.VocabularyPrefixes,
		namespaces:   make(map[string]string),
		labels:       make(map[string]quad.BNode),
		rdfType:      st.IRI(string(nodes.RDFType)),
		rdfFirst:     st.IRI(string(nodes.RDFFirst)),
		rdfRest:      st.IRI(string(nodes.RDFRest)),
		rdfNil:       st.IRI(string(nodes.RDFNil)),
		defaultGraph: st.IRI(string(nodes.DefaultGraph)),
		trueLit:      st.Literal("true", nodes.XSDBoolean, ""),
		falseLit:     st.Literal("false", nodes.XSDBoolean, ""),
	}
	if c.opts.Base != "" {
		b, err := parseIRI(c.opts.Base)
		if err != nil || !b.hasScheme {
			return nil, &Error{Err: ErrResolution, Msg: "invalid base IRI " + c.opts.Base}
		}
		s.base = b
	}
	return s, nil
}

// prologue applies BASE and PREFIX declarations in order. Declarations stay
// in effect for the rest of the compilation unit.
func (s *session) prologue(n *syntax.Node) error {
	if n == nil {
		return nil
	}
	if !n.Is(syntax.KindPrologue) {
		return errorf(ErrInvalid, n, "expected a prologue, got %v", n.Kind)
	}
	for _, d := range n.Children {
		switch {
		case d == nil:
			return errorf(ErrInvalid, n, "missing declaration in prologue")
		case d.Is(syntax.KindBaseDecl):
			ref := d.Child(0)
			if !ref.Is(syntax.KindIRIRef) {
				return errorf(ErrInvalid, d, "BASE expects an IRI reference")
			}
			iri, err := s.resolveRef(ref)
			if err != nil {
				return err
			}
			b, err := parseIRI(iri)
			if err != nil || !b.hasScheme {
				return errorf(ErrResolution, ref, "base %q is not an absolute IRI", iri)
			}
			s.base = b
		case d.Is(syntax.KindPrefixDecl):
			name, ref := d.Child(0), d.Child(1)
			if !name.Is(syntax.KindPNameNS) || !ref.Is(syntax.KindIRIRef) {
				return errorf(ErrInvalid, d, "PREFIX expects a prefix name and an IRI reference")
			}
			iri, err := s.resolveRef(ref)
			if err != nil {
				return err
			}
			s.namespaces[strings.TrimSuffix(name.Value, ":")] = iri
		default:
			return errorf(ErrInvalid, d, "unexpected %v in prologue", d.Kind)
		}
	}
	return nil
}

// resetLabels starts a new blank node label scope.
func (s *session) resetLabels() {
	if len(s.labels) != 0 {
		s.labels = make(map[string]quad.BNode)
	}
}

// scope is the compilation context of a group graph pattern.
type scope struct {
	s       *session
	dataset Dataset
	// graph is the active graph term, nil if the pattern is not bound to one.
	graph quad.Value
}

func (s *session) root(ds Dataset) *scope {
	return &scope{s: s, dataset: ds}
}

func (c *scope) child() *scope {
	return &scope{s: c.s, dataset: c.dataset, graph: c.graph}
}

func (c *scope) withGraph(g quad.Value) *scope {
	sc := c.child()
	sc.graph = g
	return sc
}
