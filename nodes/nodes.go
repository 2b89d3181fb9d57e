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

// Package nodes defines the RDF terms used by compiled SPARQL commands and
// the store interface the compiler obtains them from.
package nodes

import (
	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/xsd"
)

// DefaultGraph stands for the default graph of the dataset when no explicit
// graph IRI was supplied. The execution engine maps it to its own default graph.
const DefaultGraph = quad.IRI("http://cayley.io/sparql#defaultGraph")

// Datatype IRIs of literals produced by the compiler.
const (
	XSDString  = xsd.NS + "string"
	XSDBoolean = xsd.NS + "boolean"
	XSDInteger = xsd.NS + "integer"
	XSDDecimal = xsd.NS + "decimal"
	XSDDouble  = xsd.NS + "double"

	RDFLangString = rdf.NS + "langString"
)

// Well-known RDF vocabulary IRIs.
const (
	RDFType  = quad.IRI(rdf.NS + "type")
	RDFFirst = quad.IRI(rdf.NS + "first")
	RDFRest  = quad.IRI(rdf.NS + "rest")
	RDFNil   = quad.IRI(rdf.NS + "nil")
)

// Variable is a query variable term. Variables are canonical by name.
type Variable string

// String returns the variable in SPARQL notation.
func (v Variable) String() string { return "?" + string(v) }

func (v Variable) Native() interface{} { return v }

// Name returns the bare variable name.
func (v Variable) Name() string { return string(v) }

var _ quad.Value = Variable("")

// IsVariable reports whether the term is a variable.
func IsVariable(v quad.Value) bool {
	_, ok := v.(Variable)
	return ok
}

// IsGround reports whether none of the quad terms is a variable.
func IsGround(q quad.Quad) bool {
	return !IsVariable(q.Subject) && !IsVariable(q.Predicate) &&
		!IsVariable(q.Object) && !IsVariable(q.Label)
}

// Store hands out term handles to the compiler.
// Implementations must be safe for concurrent use.
type Store interface {
	// IRI returns the handle of an absolute IRI.
	IRI(iri string) quad.IRI
	// BlankNode returns a new blank node distinct from all others.
	BlankNode() quad.BNode
	// Literal returns the handle of a literal with the given lexical form,
	// datatype IRI and optional language tag.
	Literal(lexical, datatype, lang string) quad.Value
}
