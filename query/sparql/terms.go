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
	"github.com/cayleygraph/quad/voc"

	"github.com/cayleygraph/sparql/nodes"
	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

// iri resolves an IRI reference, a prefixed name or the keyword 'a'.
func (s *session) iri(n *syntax.Node) (quad.IRI, error) {
	switch {
	case n.Is(syntax.KindIRIRef):
		ref, err := s.resolveRef(n)
		if err != nil {
			return "", err
		}
		return s.store.IRI(ref), nil
	case n.Is(syntax.KindPNameLN, syntax.KindPNameNS):
		full, err := s.expand(n)
		if err != nil {
			return "", err
		}
		return s.store.IRI(full), nil
	case n.Is(syntax.KindA):
		return s.rdfType, nil
	case n == nil:
		return "", errorf(ErrInvalid, nil, "missing IRI")
	}
	return "", errorf(ErrInvalid, n, "expected an IRI, got %v", n.Kind)
}

// resolveRef decodes an <IRIREF> token and resolves it against the base.
func (s *session) resolveRef(n *syntax.Node) (string, error) {
	v := n.Value
	if len(v) < 2 || v[0] != '<' || v[len(v)-1] != '>' {
		return "", errorf(ErrResolution, n, "malformed IRI reference %s", v)
	}
	ref, err := unescape(v[1:len(v)-1], false)
	if err != nil {
		return "", errorf(ErrResolution, n, "%v in IRI reference %s", err, v)
	}
	return s.resolve(n, ref)
}

// resolve resolves ref against the current base per RFC 3986.
// Relative references are kept as is when there is no base.
func (s *session) resolve(n *syntax.Node, ref string) (string, error) {
	r, err := parseIRI(ref)
	if err != nil {
		return "", errorf(ErrResolution, n, "invalid IRI %q: %v", ref, err)
	}
	if r.hasScheme || !s.base.hasScheme {
		return ref, nil
	}
	return s.base.resolve(r).String(), nil
}

// expand expands a prefixed name with the declared namespaces.
func (s *session) expand(n *syntax.Node) (string, error) {
	i := strings.IndexByte(n.Value, ':')
	if i < 0 {
		return "", errorf(ErrResolution, n, "malformed prefixed name %q", n.Value)
	}
	prefix, local := n.Value[:i], n.Value[i+1:]
	ns, ok := s.namespaces[prefix]
	if !ok && s.vocab {
		ns, ok = vocabulary(prefix)
	}
	if !ok {
		return "", errorf(ErrResolution, n, "undefined prefix %q", prefix)
	}
	if strings.HasSuffix(local, ".") && !strings.HasSuffix(local, `\.`) {
		return "", errorf(ErrResolution, n, "malformed local name %q", local)
	}
	local, err := unescapeLocal(local)
	if err != nil {
		return "", errorf(ErrResolution, n, "malformed local name %q", n.Value[i+1:])
	}
	return ns + local, nil
}

// vocabulary looks up a namespace registered in quad/voc by its prefix.
func vocabulary(prefix string) (string, bool) {
	for _, ns := range voc.List() {
		if ns.Prefix == prefix+":" {
			return ns.Full, true
		}
	}
	return "", false
}

// literal compiles a literal token into a term.
func (s *session) literal(n *syntax.Node) (quad.Value, error) {
	switch n.Kind {
	case syntax.KindTrue:
		return s.trueLit, nil
	case syntax.KindFalse:
		return s.falseLit, nil
	case syntax.KindInteger:
		return s.store.Literal(n.Value, nodes.XSDInteger, ""), nil
	case syntax.KindDecimal:
		return s.store.Literal(n.Value, nodes.XSDDecimal, ""), nil
	case syntax.KindDouble:
		return s.store.Literal(n.Value, nodes.XSDDouble, ""), nil
	case syntax.KindString:
		lex, err := s.lexical(n)
		if err != nil {
			return nil, err
		}
		return s.store.Literal(lex, nodes.XSDString, ""), nil
	case syntax.KindLiteral:
		lex, err := s.lexical(n.Child(0))
		if err != nil {
			return nil, err
		}
		suffix := n.Child(1)
		switch {
		case suffix == nil:
			return s.store.Literal(lex, nodes.XSDString, ""), nil
		case suffix.Is(syntax.KindLangTag):
			lang := strings.TrimPrefix(suffix.Value, "@")
			if lang == "" {
				return nil, errorf(ErrInvalid, suffix, "empty language tag")
			}
			return s.store.Literal(lex, nodes.RDFLangString, lang), nil
		}
		dt, err := s.iri(suffix)
		if err != nil {
			return nil, err
		}
		return s.store.Literal(lex, string(dt), ""), nil
	}
	return nil, errorf(ErrInvalid, n, "expected a literal, got %v", n.Kind)
}

func (s *session) lexical(n *syntax.Node) (string, error) {
	if !n.Is(syntax.KindString) {
		return "", errorf(ErrInvalid, n, "expected a string")
	}
	lex, err := unquote(n.Value)
	if err != nil {
		return "", errorf(ErrInvalid, n, "%v", err)
	}
	return lex, nil
}

func isLiteral(n *syntax.Node) bool {
	return n.Is(syntax.KindTrue, syntax.KindFalse, syntax.KindInteger, syntax.KindDecimal,
		syntax.KindDouble, syntax.KindString, syntax.KindLiteral)
}

// variable returns the variable named by a ?x or $x token.
func variable(n *syntax.Node) (nodes.Variable, error) {
	if !n.Is(syntax.KindVar) {
		return "", errorf(ErrInvalid, n, "expected a variable")
	}
	name := strings.TrimLeft(n.Value, "?$")
	if name == "" || len(n.Value)-len(name) != 1 {
		return "", errorf(ErrInvalid, n, "malformed variable %q", n.Value)
	}
	return nodes.Variable(name), nil
}

// blankNode maps a labeled blank node to its handle in the current label scope.
func (s *session) blankNode(n *syntax.Node) (quad.BNode, error) {
	label := strings.TrimPrefix(n.Value, "_:")
	if label == "" {
		return "", errorf(ErrInvalid, n, "malformed blank node label %q", n.Value)
	}
	if b, ok := s.labels[label]; ok {
		return b, nil
	}
	b := s.store.BlankNode()
	s.labels[label] = b
	return b, nil
}

// term compiles a variable or an RDF term.
func (s *session) term(n *syntax.Node) (quad.Value, error) {
	switch {
	case n.Is(syntax.KindVar):
		return variable(n)
	case n == nil:
		return nil, errorf(ErrInvalid, nil, "missing term")
	case n.Kind.IsIRI() || n.Is(syntax.KindA):
		return s.iri(n)
	case n.Is(syntax.KindNil):
		return s.rdfNil, nil
	case isLiteral(n):
		return s.literal(n)
	case n.Is(syntax.KindBlankNodeLabel):
		return s.blankNode(n)
	case n.Is(syntax.KindAnon):
		return s.store.BlankNode(), nil
	}
	return nil, errorf(ErrInvalid, n, "unexpected %v", n.Kind)
}

// varOrIRI compiles a graph or service reference.
func (s *session) varOrIRI(n *syntax.Node) (quad.Value, error) {
	if n.Is(syntax.KindVar) {
		return variable(n)
	}
	if n == nil || !n.Kind.IsIRI() {
		return nil, errorf(ErrInvalid, n, "expected a variable or an IRI")
	}
	return s.iri(n)
}
