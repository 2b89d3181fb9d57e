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
	"strconv"

	"github.com/cayleygraph/sparql/query/sparql/algebra"
	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

// modifier compiles the solution modifier. It returns nil when no clause
// is present.
func (c *scope) modifier(n *syntax.Node) (*algebra.Modifier, error) {
	if n.Len() == 0 {
		return nil, nil
	}
	if !n.Is(syntax.KindModifier) {
		return nil, errorf(ErrInvalid, n, "expected a solution modifier, got %v", n.Kind)
	}
	m := &algebra.Modifier{}
	for _, clause := range n.Children {
		if clause == nil {
			return nil, errorf(ErrInvalid, n, "missing solution modifier clause")
		}
		var err error
		switch clause.Kind {
		case syntax.KindGroupBy:
			err = c.groupBy(m, clause)
		case syntax.KindHaving:
			m.Having, err = c.exprs(clause.Children)
		case syntax.KindOrderBy:
			err = c.orderBy(m, clause)
		case syntax.KindLimit:
			m.Limit, err = bound(clause)
		case syntax.KindOffset:
			m.Offset, err = bound(clause)
		default:
			err = errorf(ErrInvalid, clause, "unexpected %v in solution modifier", clause.Kind)
		}
		if err != nil {
			return nil, err
		}
	}
	if m.IsEmpty() {
		return nil, nil
	}
	return m, nil
}

func (c *scope) groupBy(m *algebra.Modifier, n *syntax.Node) error {
	for _, k := range n.Children {
		key := algebra.GroupKey{}
		e := k
		if k.Is(syntax.KindAs) {
			v, err := variable(k.Child(1))
			if err != nil {
				return err
			}
			key.Var = &v
			e = k.Child(0)
		}
		expr, err := c.expr(e)
		if err != nil {
			return err
		}
		key.Expr = expr
		m.Group = append(m.Group, key)
	}
	return nil
}

func (c *scope) orderBy(m *algebra.Modifier, n *syntax.Node) error {
	for _, k := range n.Children {
		key := algebra.OrderKey{}
		e := k
		if k.Is(syntax.KindAsc, syntax.KindDesc) {
			key.Descending = k.Is(syntax.KindDesc)
			e = k.Child(0)
		}
		expr, err := c.expr(e)
		if err != nil {
			return err
		}
		key.Expr = expr
		m.Order = append(m.Order, key)
	}
	return nil
}

// bound reads the value of LIMIT or OFFSET.
func bound(n *syntax.Node) (*int64, error) {
	lit := n.Value
	if lit == "" && n.Child(0).Is(syntax.KindInteger) {
		lit = n.Child(0).Value
	}
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil || v < 0 {
		return nil, errorf(ErrInvalid, n, "%v expects a non-negative integer, got %q", n.Kind, lit)
	}
	return &v, nil
}
