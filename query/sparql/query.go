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

func (s *session) query(n *syntax.Node) (Command, error) {
	if err := s.prologue(n.Child(0)); err != nil {
		return nil, err
	}
	form, values := n.Child(1), n.Child(2)
	if form == nil {
		return nil, errorf(ErrInvalid, n, "missing query form")
	}
	if values != nil && !values.Is(syntax.KindValues) {
		return nil, errorf(ErrInvalid, values, "unexpected %v after query", values.Kind)
	}
	ds, err := s.queryDataset(form)
	if err != nil {
		return nil, err
	}
	c := s.root(ds)
	where, mod := form.Find(syntax.KindWhere), form.Find(syntax.KindModifier)
	switch form.Kind {
	case syntax.KindSelect:
		sel, err := c.selectPattern(form.Child(0), where, mod, values)
		if err != nil {
			return nil, err
		}
		return &Select{Select: sel}, nil
	case syntax.KindConstruct:
		return c.construct(form, where, mod, values)
	case syntax.KindConstructWhere:
		return c.constructWhere(form, mod, values)
	case syntax.KindDescribe:
		return c.describe(form, where, mod, values)
	case syntax.KindAsk:
		sel, err := c.selectPattern(nil, where, mod, values)
		if err != nil {
			return nil, err
		}
		return &Ask{Select: sel}, nil
	}
	return nil, errorf(ErrInvalid, form, "unexpected query form %v", form.Kind)
}

// queryDataset returns the dataset of FROM and FROM NAMED clauses, or the
// protocol dataset when there are none.
func (s *session) queryDataset(form *syntax.Node) (Dataset, error) {
	var ds Dataset
	for _, c := range form.FindAll(syntax.KindFrom, syntax.KindFromNamed) {
		iri, err := s.iri(c.Child(0))
		if err != nil {
			return Dataset{}, err
		}
		if c.Is(syntax.KindFrom) {
			ds.Default = append(ds.Default, iri)
		} else {
			ds.Named = append(ds.Named, iri)
		}
	}
	if ds.IsEmpty() {
		return s.protocol, nil
	}
	return ds, nil
}

func (c *scope) construct(form, where, mod, values *syntax.Node) (Command, error) {
	tmpl := form.Child(0)
	if !tmpl.Is(syntax.KindConstructTemplate) {
		return nil, errorf(ErrInvalid, form, "expected a construct template")
	}
	sel, err := c.selectPattern(nil, where, mod, values)
	if err != nil {
		return nil, err
	}
	var quads []quad.Quad
	if block := tmpl.Child(0); block != nil {
		if quads, err = c.template(block); err != nil {
			return nil, err
		}
	}
	return &Construct{Select: sel, Template: quads}, nil
}

// constructWhere compiles CONSTRUCT WHERE { ... }, whose pattern is also
// its template.
func (c *scope) constructWhere(form, mod, values *syntax.Node) (Command, error) {
	sel := &algebra.Select{}
	var err error
	if sel.Modifier, err = c.modifier(mod); err != nil {
		return nil, err
	}
	if values != nil {
		if sel.InlineData, err = c.s.inlineData(values); err != nil {
			return nil, err
		}
	}
	block := form.Find(syntax.KindTriplesBlock)
	if block == nil {
		sel.Inner = &algebra.Quads{}
		return &Construct{Select: sel}, nil
	}
	p, err := c.bgp(block)
	if err != nil {
		return nil, err
	}
	q, ok := p.(*algebra.Quads)
	if !ok {
		return nil, errorf(ErrAmbiguousTarget, block, "template would be written to %d graphs", len(c.dataset.Graphs()))
	}
	if len(q.Negatives) != 0 {
		return nil, errorf(ErrInvalid, block, "negative triples are not allowed in templates")
	}
	sel.Inner = q
	return &Construct{Select: sel, Template: q.Positives}, nil
}

func (c *scope) describe(form, where, mod, values *syntax.Node) (Command, error) {
	targets := form.Child(0)
	if !targets.Is(syntax.KindDescribeTargets) {
		return nil, errorf(ErrInvalid, form, "expected describe targets")
	}
	sel, err := c.selectPattern(nil, where, mod, values)
	if err != nil {
		return nil, err
	}
	cmd := &Describe{Select: sel}
	for _, t := range targets.Children {
		var v quad.Value
		switch {
		case t.Is(syntax.KindStar):
			for _, in := range algebra.Variables(sel) {
				cmd.Targets = append(cmd.Targets, in)
			}
			continue
		case t.Is(syntax.KindVar):
			v, err = variable(t)
		default:
			v, err = c.s.iri(t)
		}
		if err != nil {
			return nil, err
		}
		cmd.Targets = append(cmd.Targets, v)
	}
	return cmd, nil
}
