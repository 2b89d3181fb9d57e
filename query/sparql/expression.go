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
	"github.com/cayleygraph/sparql/query/sparql/algebra"
	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

var binaryOps = map[syntax.Kind]algebra.Op{
	syntax.KindOpOr:      algebra.OpOr,
	syntax.KindOpAnd:     algebra.OpAnd,
	syntax.KindOpEq:      algebra.OpEq,
	syntax.KindOpNeq:     algebra.OpNeq,
	syntax.KindOpLess:    algebra.OpLess,
	syntax.KindOpGreater: algebra.OpGreater,
	syntax.KindOpLeq:     algebra.OpLeq,
	syntax.KindOpGeq:     algebra.OpGeq,
	syntax.KindOpPlus:    algebra.OpAdd,
	syntax.KindOpMinus:   algebra.OpSub,
	syntax.KindOpMult:    algebra.OpMul,
	syntax.KindOpDiv:     algebra.OpDiv,
}

// expr compiles a scalar expression. EXISTS patterns are compiled in the
// scope of the expression, so they see its active graph.
func (c *scope) expr(n *syntax.Node) (algebra.Expression, error) {
	if n == nil {
		return nil, errorf(ErrInvalid, nil, "missing expression")
	}
	switch {
	case n.Is(syntax.KindVar):
		v, err := variable(n)
		if err != nil {
			return nil, err
		}
		return &algebra.VarRef{Var: v}, nil
	case isLiteral(n):
		v, err := c.s.literal(n)
		if err != nil {
			return nil, err
		}
		return &algebra.Const{Value: v}, nil
	case n.Kind.IsIRI():
		iri, err := c.s.iri(n)
		if err != nil {
			return nil, err
		}
		return &algebra.Const{Value: iri}, nil
	case n.Is(syntax.KindIRIOrFunction):
		if n.Len() == 1 {
			return c.expr(n.Child(0))
		}
		return c.call(n)
	case n.Is(syntax.KindFunctionCall):
		return c.call(n)
	case n.Is(syntax.KindBuiltinCall):
		return c.builtin(n)
	case n.Is(syntax.KindOpNot) || (n.Is(syntax.KindOpPlus, syntax.KindOpMinus) && n.Len() == 1):
		operand, err := c.expr(n.Child(0))
		if err != nil {
			return nil, err
		}
		op := algebra.OpNot
		switch n.Kind {
		case syntax.KindOpPlus:
			op = algebra.OpPlus
		case syntax.KindOpMinus:
			op = algebra.OpNegate
		}
		return &algebra.Unary{Op: op, Operand: operand}, nil
	case n.Is(syntax.KindIn, syntax.KindNotIn):
		return c.in(n)
	case n.Is(syntax.KindExists, syntax.KindNotExists):
		p, err := c.inner(n.Child(0))
		if err != nil {
			return nil, err
		}
		var e algebra.Expression = &algebra.Exists{Pattern: p}
		if n.Is(syntax.KindNotExists) {
			e = algebra.Not(e)
		}
		return e, nil
	}
	op, ok := binaryOps[n.Kind]
	if !ok {
		return nil, errorf(ErrInvalid, n, "unexpected %v in expression", n.Kind)
	}
	if n.Len() != 2 {
		return nil, errorf(ErrInvalid, n, "operator %v expects two operands", op)
	}
	left, err := c.expr(n.Child(0))
	if err != nil {
		return nil, err
	}
	right, err := c.expr(n.Child(1))
	if err != nil {
		return nil, err
	}
	return &algebra.Binary{Op: op, Left: left, Right: right}, nil
}

func (c *scope) in(n *syntax.Node) (algebra.Expression, error) {
	e, err := c.expr(n.Child(0))
	if err != nil {
		return nil, err
	}
	list := n.Child(1)
	if !list.Is(syntax.KindExprList) {
		return nil, errorf(ErrInvalid, n, "IN expects an expression list")
	}
	in := &algebra.In{Expr: e}
	if in.Range, err = c.exprs(list.Children); err != nil {
		return nil, err
	}
	if n.Is(syntax.KindNotIn) {
		return algebra.Not(in), nil
	}
	return in, nil
}

func (c *scope) exprs(ns []*syntax.Node) ([]algebra.Expression, error) {
	if len(ns) == 0 {
		return nil, nil
	}
	out := make([]algebra.Expression, 0, len(ns))
	for _, n := range ns {
		e, err := c.expr(n)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// call compiles a call of a function named by an IRI.
func (c *scope) call(n *syntax.Node) (algebra.Expression, error) {
	name, err := c.s.iri(n.Child(0))
	if err != nil {
		return nil, err
	}
	args := n.Child(1)
	if !args.Is(syntax.KindArgList) {
		return nil, errorf(ErrInvalid, n, "function call expects an argument list")
	}
	fc := &algebra.FunctionCall{Name: string(name)}
	rest := args.Children
	if len(rest) != 0 && rest[0].Is(syntax.KindDistinct) {
		fc.Distinct = true
		rest = rest[1:]
	}
	for _, a := range rest {
		if a.Is(syntax.KindStar) {
			return nil, errorf(ErrInvalid, a, "* is only allowed in COUNT")
		}
	}
	if fc.Args, err = c.exprs(rest); err != nil {
		return nil, err
	}
	return fc, nil
}
