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

package algebra

import (
	"fmt"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/sparql/nodes"
)

// Expression is a scalar expression evaluated against a solution.
type Expression interface {
	// Describe returns a structural description of the expression.
	Describe() Description
	isExpression()
}

// Op is an operator of a unary or binary expression.
type Op int

const (
	OpInvalid Op = iota
	OpOr
	OpAnd
	OpEq
	OpNeq
	OpLess
	OpGreater
	OpLeq
	OpGeq
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpNot
	OpPlus   // unary +
	OpNegate // unary -
)

var opNames = [...]string{
	OpInvalid: "invalid",
	OpOr:      "||",
	OpAnd:     "&&",
	OpEq:      "=",
	OpNeq:     "!=",
	OpLess:    "<",
	OpGreater: ">",
	OpLeq:     "<=",
	OpGeq:     ">=",
	OpAdd:     "+",
	OpSub:     "-",
	OpMul:     "*",
	OpDiv:     "/",
	OpNot:     "!",
	OpPlus:    "+",
	OpNegate:  "-",
}

func (op Op) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// IsUnary reports whether the operator takes a single operand.
func (op Op) IsUnary() bool {
	return op == OpNot || op == OpPlus || op == OpNegate
}

// Const is a constant term.
type Const struct {
	Value quad.Value
}

// VarRef is the value bound to a variable.
type VarRef struct {
	Var nodes.Variable
}

// Unary applies a unary operator.
type Unary struct {
	Op      Op
	Operand Expression
}

// Binary applies a binary operator.
type Binary struct {
	Op          Op
	Left, Right Expression
}

// FunctionCall calls a function. Builtin functions and aggregates are named
// by their canonical SPARQL keyword; other functions by their full IRI.
type FunctionCall struct {
	Name      string
	Builtin   bool
	Args      []Expression
	Distinct  bool
	Separator *string
}

// In tests whether Expr equals any expression of Range.
type In struct {
	Expr  Expression
	Range []Expression
}

// Exists tests whether Pattern has at least one solution.
type Exists struct {
	Pattern Pattern
}

// Not negates an expression.
func Not(e Expression) Expression {
	return &Unary{Op: OpNot, Operand: e}
}

func (*Const) isExpression()        {}
func (*VarRef) isExpression()       {}
func (*Unary) isExpression()        {}
func (*Binary) isExpression()       {}
func (*FunctionCall) isExpression() {}
func (*In) isExpression()           {}
func (*Exists) isExpression()       {}
