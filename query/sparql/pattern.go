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

	"github.com/cayleygraph/sparql/nodes"
	"github.com/cayleygraph/sparql/query/sparql/algebra"
	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

// fold accumulates the elements of a group graph pattern: plain quads merge
// into base while no combinator was introduced, everything else builds on
// the current tree.
type fold struct {
	base    *algebra.Quads
	current algebra.Pattern
}

// tree returns the pattern built so far.
func (f *fold) tree() algebra.Pattern {
	if f.current != nil {
		return f.current
	}
	return f.base
}

// add folds a triples block, a GRAPH pattern or a nested group.
func (f *fold) add(p algebra.Pattern) {
	if q, ok := p.(*algebra.Quads); ok && f.current == nil {
		f.base.Positives = append(f.base.Positives, q.Positives...)
		f.base.Negatives = append(f.base.Negatives, q.Negatives...)
		return
	}
	f.join(p)
}

// join joins p with the pattern built so far.
func (f *fold) join(p algebra.Pattern) {
	if f.current == nil && f.base.IsEmpty() {
		f.current = p
		return
	}
	f.current = &algebra.Join{Left: f.tree(), Right: p}
}

// group compiles a group graph pattern.
func (c *scope) group(n *syntax.Node) (algebra.Pattern, error) {
	if !n.Is(syntax.KindGroup) {
		return nil, errorf(ErrInvalid, n, "expected a group graph pattern")
	}
	c = c.child()
	f := &fold{base: &algebra.Quads{}}
	for _, el := range n.Children {
		if el == nil {
			return nil, errorf(ErrInvalid, n, "missing element in group graph pattern")
		}
		if err := c.element(f, el); err != nil {
			return nil, err
		}
	}
	return f.tree(), nil
}

func (c *scope) element(f *fold, el *syntax.Node) error {
	switch el.Kind {
	case syntax.KindTriplesBlock:
		p, err := c.bgp(el)
		if err != nil {
			return err
		}
		f.add(p)
	case syntax.KindGroup:
		p, err := c.group(el)
		if err != nil {
			return err
		}
		f.add(p)
	case syntax.KindGraph:
		p, err := c.graphPattern(el)
		if err != nil {
			return err
		}
		f.add(p)
	case syntax.KindSubSelect:
		p, err := c.subSelect(el)
		if err != nil {
			return err
		}
		f.join(p)
	case syntax.KindUnion:
		p, err := c.union(el)
		if err != nil {
			return err
		}
		f.join(p)
	case syntax.KindOptional:
		p, err := c.inner(el.Child(0))
		if err != nil {
			return err
		}
		var expr algebra.Expression = &algebra.Const{Value: c.s.trueLit}
		if flt, ok := p.(*algebra.Filter); ok {
			p, expr = flt.Inner, flt.Expr
		}
		f.current = &algebra.LeftJoin{Left: f.tree(), Right: p, Expr: expr}
	case syntax.KindMinus:
		p, err := c.inner(el.Child(0))
		if err != nil {
			return err
		}
		f.current = &algebra.Minus{Left: f.tree(), Right: p}
	case syntax.KindService:
		return c.service(f, el)
	case syntax.KindFilter:
		expr, err := c.expr(el.Child(0))
		if err != nil {
			return err
		}
		f.current = &algebra.Filter{Inner: f.tree(), Expr: expr}
	case syntax.KindBind:
		expr, err := c.expr(el.Child(0))
		if err != nil {
			return err
		}
		v, err := variable(el.Child(1))
		if err != nil {
			return err
		}
		f.current = &algebra.Bind{Inner: f.tree(), Var: v, Expr: expr}
	case syntax.KindValues:
		data, err := c.s.inlineData(el)
		if err != nil || data == nil {
			return err
		}
		f.current = &algebra.Union{Patterns: []algebra.Pattern{f.tree(), data}}
	default:
		return errorf(ErrInvalid, el, "unexpected %v in group graph pattern", el.Kind)
	}
	return nil
}

// inner compiles the body of OPTIONAL, MINUS, GRAPH, SERVICE, UNION
// and EXISTS.
func (c *scope) inner(n *syntax.Node) (algebra.Pattern, error) {
	switch {
	case n.Is(syntax.KindGroup):
		return c.group(n)
	case n.Is(syntax.KindSubSelect):
		return c.subSelect(n)
	}
	return nil, errorf(ErrInvalid, n, "expected a group graph pattern or a sub-select")
}

func (c *scope) service(f *fold, el *syntax.Node) error {
	args := el.Children
	silent := len(args) != 0 && args[0].Is(syntax.KindSilent)
	if silent {
		args = args[1:]
	}
	if len(args) != 2 {
		return errorf(ErrInvalid, el, "SERVICE expects an endpoint and a pattern")
	}
	ep, err := c.s.varOrIRI(args[0])
	if err != nil {
		return err
	}
	p, err := c.inner(args[1])
	if err != nil {
		return err
	}
	f.current = &algebra.Service{Left: f.tree(), Inner: p, Endpoint: ep, Silent: silent}
	return nil
}

// union compiles a chain of UNION alternatives in source order.
func (c *scope) union(n *syntax.Node) (algebra.Pattern, error) {
	var alts []*syntax.Node
	for n.Is(syntax.KindUnion) {
		if n.Len() != 2 {
			return nil, errorf(ErrInvalid, n, "UNION expects two alternatives")
		}
		alts = append(alts, n.Child(1))
		n = n.Child(0)
	}
	alts = append(alts, n)
	u := &algebra.Union{Patterns: make([]algebra.Pattern, 0, len(alts))}
	for i := len(alts) - 1; i >= 0; i-- {
		p, err := c.inner(alts[i])
		if err != nil {
			return nil, err
		}
		u.Patterns = append(u.Patterns, p)
	}
	return u, nil
}

// graphPattern compiles GRAPH g { ... }.
func (c *scope) graphPattern(el *syntax.Node) (algebra.Pattern, error) {
	ref, body := el.Child(0), el.Child(1)
	if ref.Is(syntax.KindVar) {
		v, err := variable(ref)
		if err != nil {
			return nil, err
		}
		targets := c.dataset.Graphs()
		switch len(targets) {
		case 0:
			p, err := c.withGraph(v).inner(body)
			if err != nil {
				return nil, err
			}
			if _, ok := p.(*algebra.Quads); !ok {
				p = &algebra.GraphScope{Inner: p, Graph: v}
			}
			return p, nil
		case 1:
			return c.withGraph(targets[0]).inner(body)
		}
		u := &algebra.Union{Patterns: make([]algebra.Pattern, 0, len(targets))}
		for _, g := range targets {
			p, err := c.withGraph(g).inner(body)
			if err != nil {
				return nil, err
			}
			u.Patterns = append(u.Patterns, p)
		}
		return u, nil
	}
	if ref == nil || !ref.Kind.IsIRI() {
		return nil, errorf(ErrInvalid, el, "GRAPH expects a variable or an IRI")
	}
	g, err := c.s.iri(ref)
	if err != nil {
		return nil, err
	}
	if !c.dataset.IsEmpty() && !c.dataset.Contains(g) {
		return algebra.Unmatchable{}, nil
	}
	return c.withGraph(g).inner(body)
}

// where compiles a WHERE clause; a missing clause matches the empty pattern.
func (c *scope) where(n *syntax.Node) (algebra.Pattern, error) {
	if n == nil {
		return &algebra.Quads{}, nil
	}
	if !n.Is(syntax.KindWhere) {
		return nil, errorf(ErrInvalid, n, "expected a WHERE clause, got %v", n.Kind)
	}
	return c.inner(n.Child(0))
}

// subSelect compiles a nested SELECT. It shares the variables and the active
// graph of the enclosing pattern.
func (c *scope) subSelect(n *syntax.Node) (*algebra.Select, error) {
	if n.Len() < 3 {
		return nil, errorf(ErrInvalid, n, "malformed sub-select")
	}
	return c.selectPattern(n.Child(0), n.Child(1), n.Child(2), n.Child(3))
}

// selectPattern compiles the parts shared by all query forms. A nil clause
// projects every variable.
func (c *scope) selectPattern(clause, where, mod, values *syntax.Node) (*algebra.Select, error) {
	inner, err := c.where(where)
	if err != nil {
		return nil, err
	}
	sel := &algebra.Select{Inner: inner}
	if sel.Modifier, err = c.modifier(mod); err != nil {
		return nil, err
	}
	if values != nil {
		if sel.InlineData, err = c.s.inlineData(values); err != nil {
			return nil, err
		}
	}
	if clause == nil {
		return sel, nil
	}
	if !clause.Is(syntax.KindSelectClause) {
		return nil, errorf(ErrInvalid, clause, "expected a select clause")
	}
	star := false
	var proj []algebra.Projection
	for _, item := range clause.Children {
		if item == nil {
			return nil, errorf(ErrInvalid, clause, "missing select clause item")
		}
		switch item.Kind {
		case syntax.KindDistinct:
			sel.Distinct = true
		case syntax.KindReduced:
			sel.Reduced = true
		case syntax.KindStar:
			star = true
		case syntax.KindVar:
			v, err := variable(item)
			if err != nil {
				return nil, err
			}
			proj = append(proj, algebra.Projection{Var: v})
		case syntax.KindAs:
			expr, err := c.expr(item.Child(0))
			if err != nil {
				return nil, err
			}
			v, err := variable(item.Child(1))
			if err != nil {
				return nil, err
			}
			proj = append(proj, algebra.Projection{Var: v, Expr: expr})
		default:
			return nil, errorf(ErrInvalid, item, "unexpected %v in select clause", item.Kind)
		}
	}
	switch {
	case sel.Distinct && sel.Reduced:
		return nil, errorf(ErrInvalid, clause, "DISTINCT and REDUCED are exclusive")
	case star && len(proj) != 0:
		return nil, errorf(ErrInvalid, clause, "SELECT * cannot be combined with projections")
	case star:
		for _, v := range algebra.Variables(sel) {
			proj = append(proj, algebra.Projection{Var: v})
		}
	case len(proj) == 0:
		return nil, errorf(ErrInvalid, clause, "empty select clause")
	}
	sel.Projection = proj
	return sel, nil
}

// inlineData compiles a VALUES block. UNDEF leaves a variable unbound in
// its row. An empty VALUES node stands for no inline data and yields nil.
func (s *session) inlineData(n *syntax.Node) (*algebra.InlineData, error) {
	block := n
	if n.Is(syntax.KindValues) {
		if n.Len() == 0 {
			return nil, nil
		}
		block = n.Child(0)
	}
	data := &algebra.InlineData{}
	switch {
	case block.Is(syntax.KindDataOne):
		v, err := variable(block.Child(0))
		if err != nil {
			return nil, err
		}
		data.Vars = []nodes.Variable{v}
		for _, val := range block.Children[1:] {
			row, err := s.dataRow(data.Vars, []*syntax.Node{val})
			if err != nil {
				return nil, err
			}
			data.Solutions = append(data.Solutions, row)
		}
	case block.Is(syntax.KindDataFull):
		list := block.Child(0)
		if !list.Is(syntax.KindVarList) {
			return nil, errorf(ErrInvalid, block, "expected a variable list")
		}
		for _, vn := range list.Children {
			v, err := variable(vn)
			if err != nil {
				return nil, err
			}
			data.Vars = append(data.Vars, v)
		}
		for _, r := range block.Children[1:] {
			if !r.Is(syntax.KindDataRow) {
				return nil, errorf(ErrInvalid, r, "expected a data row")
			}
			if r.Len() != len(data.Vars) {
				return nil, errorf(ErrInvalid, r, "data row has %d values for %d variables", r.Len(), len(data.Vars))
			}
			row, err := s.dataRow(data.Vars, r.Children)
			if err != nil {
				return nil, err
			}
			data.Solutions = append(data.Solutions, row)
		}
	default:
		return nil, errorf(ErrInvalid, block, "expected inline data")
	}
	return data, nil
}

func (s *session) dataRow(vars []nodes.Variable, vals []*syntax.Node) (algebra.Solution, error) {
	row := make(algebra.Solution, 0, len(vals))
	for i, val := range vals {
		var (
			t   quad.Value
			err error
		)
		switch {
		case val.Is(syntax.KindUndef):
			continue
		case val == nil:
			err = errorf(ErrInvalid, nil, "missing inline data value")
		case val.Kind.IsIRI():
			t, err = s.iri(val)
		case isLiteral(val):
			t, err = s.literal(val)
		default:
			err = errorf(ErrInvalid, val, "unexpected %v in inline data", val.Kind)
		}
		if err != nil {
			return nil, err
		}
		row = append(row, algebra.Binding{Var: vars[i], Value: t})
	}
	return row, nil
}
