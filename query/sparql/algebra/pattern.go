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

// Package algebra defines the SPARQL graph pattern algebra produced by the
// compiler and evaluated by an execution engine.
//
// All values are immutable once built and may be shared between goroutines.
package algebra

import (
	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/sparql/nodes"
)

// Description is a plain tree of maps, slices and strings describing an
// algebra node. It is suitable for JSON or YAML encoding.
type Description map[string]interface{}

// Pattern is a node of the graph pattern algebra.
type Pattern interface {
	// Describe returns a structural description of the pattern.
	Describe() Description
	isPattern()
}

// Quads is a basic graph pattern. Every quad in Positives must match.
// Each entry of Negatives is a conjunction that must fail to match as a whole.
type Quads struct {
	Positives []quad.Quad
	Negatives [][]quad.Quad
}

// IsEmpty reports whether the pattern contains no quads.
func (p *Quads) IsEmpty() bool {
	return len(p.Positives) == 0 && len(p.Negatives) == 0
}

// Join matches both sides and combines compatible solutions.
type Join struct {
	Left, Right Pattern
}

// LeftJoin keeps every solution of Left, extended by compatible solutions of
// Right that satisfy Expr.
type LeftJoin struct {
	Left, Right Pattern
	Expr        Expression
}

// Minus removes solutions of Left that are compatible with a solution of Right.
type Minus struct {
	Left, Right Pattern
}

// Union concatenates the solutions of its patterns in order.
type Union struct {
	Patterns []Pattern
}

// GraphScope evaluates Inner against the graph named by Graph, which is
// either an IRI or a variable ranging over the named graphs.
type GraphScope struct {
	Inner Pattern
	Graph quad.Value
}

// Service joins Left with Inner evaluated at a remote endpoint.
type Service struct {
	Left     Pattern
	Inner    Pattern
	Endpoint quad.Value
	Silent   bool
}

// Filter keeps solutions of Inner for which Expr is true.
type Filter struct {
	Inner Pattern
	Expr  Expression
}

// Bind extends solutions of Inner with Var bound to Expr.
type Bind struct {
	Inner Pattern
	Var   nodes.Variable
	Expr  Expression
}

// Projection is a projected variable, optionally computed by Expr.
type Projection struct {
	Var  nodes.Variable
	Expr Expression
}

// Select applies a solution modifier, inline data and a projection to Inner.
// An empty Projection means all in-scope variables.
type Select struct {
	Distinct   bool
	Reduced    bool
	Inner      Pattern
	Modifier   *Modifier
	InlineData *InlineData
	Projection []Projection
}

// Binding binds a variable to a term within one solution.
type Binding struct {
	Var   nodes.Variable
	Value quad.Value
}

// Solution is one row of inline data. Variables left UNDEF are absent.
type Solution []Binding

// Get returns the value bound to v, if any.
func (s Solution) Get(v nodes.Variable) (quad.Value, bool) {
	for _, b := range s {
		if b.Var == v {
			return b.Value, true
		}
	}
	return nil, false
}

// InlineData is a literal table of solutions over Vars.
type InlineData struct {
	Vars      []nodes.Variable
	Solutions []Solution
}

// Unmatchable never produces a solution.
type Unmatchable struct{}

func (*Quads) isPattern()      {}
func (*Join) isPattern()       {}
func (*LeftJoin) isPattern()   {}
func (*Minus) isPattern()      {}
func (*Union) isPattern()      {}
func (*GraphScope) isPattern() {}
func (*Service) isPattern()    {}
func (*Filter) isPattern()     {}
func (*Bind) isPattern()       {}
func (*Select) isPattern()     {}
func (*InlineData) isPattern() {}
func (Unmatchable) isPattern() {}

// WalkFunc is used to visit patterns in the tree.
// If false is returned, the branch is not traversed further.
type WalkFunc func(Pattern) bool

// Walk calls fnc for p and every pattern nested in it, including patterns
// of EXISTS expressions.
func Walk(p Pattern, fnc WalkFunc) {
	if p == nil || !fnc(p) {
		return
	}
	switch p := p.(type) {
	case *Join:
		Walk(p.Left, fnc)
		Walk(p.Right, fnc)
	case *LeftJoin:
		Walk(p.Left, fnc)
		Walk(p.Right, fnc)
		walkExpr(p.Expr, fnc)
	case *Minus:
		Walk(p.Left, fnc)
		Walk(p.Right, fnc)
	case *Union:
		for _, sub := range p.Patterns {
			Walk(sub, fnc)
		}
	case *GraphScope:
		Walk(p.Inner, fnc)
	case *Service:
		Walk(p.Left, fnc)
		Walk(p.Inner, fnc)
	case *Filter:
		Walk(p.Inner, fnc)
		walkExpr(p.Expr, fnc)
	case *Bind:
		Walk(p.Inner, fnc)
		walkExpr(p.Expr, fnc)
	case *Select:
		Walk(p.Inner, fnc)
		if p.InlineData != nil {
			Walk(p.InlineData, fnc)
		}
		for _, pr := range p.Projection {
			walkExpr(pr.Expr, fnc)
		}
	}
}

func walkExpr(e Expression, fnc WalkFunc) {
	switch e := e.(type) {
	case *Exists:
		Walk(e.Pattern, fnc)
	case *Unary:
		walkExpr(e.Operand, fnc)
	case *Binary:
		walkExpr(e.Left, fnc)
		walkExpr(e.Right, fnc)
	case *FunctionCall:
		for _, a := range e.Args {
			walkExpr(a, fnc)
		}
	case *In:
		walkExpr(e.Expr, fnc)
		for _, r := range e.Range {
			walkExpr(r, fnc)
		}
	}
}

// Count returns the number of pattern nodes in the tree.
func Count(p Pattern) int {
	n := 0
	Walk(p, func(Pattern) bool {
		n++
		return true
	})
	return n
}
