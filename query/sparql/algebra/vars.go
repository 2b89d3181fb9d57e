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
	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/sparql/nodes"
)

// Variables returns the variables a pattern may bind, in order of first
// appearance. Variables used only in expressions, in the right side of
// MINUS or in negative quads are not in scope.
func Variables(p Pattern) []nodes.Variable {
	var vs varSet
	vs.pattern(p)
	return vs.list
}

type varSet struct {
	seen map[nodes.Variable]struct{}
	list []nodes.Variable
}

func (s *varSet) add(v nodes.Variable) {
	if _, ok := s.seen[v]; ok {
		return
	}
	if s.seen == nil {
		s.seen = make(map[nodes.Variable]struct{})
	}
	s.seen[v] = struct{}{}
	s.list = append(s.list, v)
}

func (s *varSet) term(v quad.Value) {
	if v, ok := v.(nodes.Variable); ok {
		s.add(v)
	}
}

func (s *varSet) pattern(p Pattern) {
	switch p := p.(type) {
	case *Quads:
		for _, q := range p.Positives {
			s.term(q.Label)
			s.term(q.Subject)
			s.term(q.Predicate)
			s.term(q.Object)
		}
	case *Join:
		s.pattern(p.Left)
		s.pattern(p.Right)
	case *LeftJoin:
		s.pattern(p.Left)
		s.pattern(p.Right)
	case *Minus:
		s.pattern(p.Left)
	case *Union:
		for _, sub := range p.Patterns {
			s.pattern(sub)
		}
	case *GraphScope:
		s.term(p.Graph)
		s.pattern(p.Inner)
	case *Service:
		s.pattern(p.Left)
		s.term(p.Endpoint)
		s.pattern(p.Inner)
	case *Filter:
		s.pattern(p.Inner)
	case *Bind:
		s.pattern(p.Inner)
		s.add(p.Var)
	case *Select:
		if len(p.Projection) == 0 {
			s.pattern(p.Inner)
			if p.InlineData != nil {
				s.pattern(p.InlineData)
			}
			for _, k := range p.Modifier.groupVars() {
				s.add(k)
			}
			return
		}
		for _, pr := range p.Projection {
			s.add(pr.Var)
		}
	case *InlineData:
		for _, v := range p.Vars {
			s.add(v)
		}
	}
}

func (m *Modifier) groupVars() []nodes.Variable {
	if m == nil {
		return nil
	}
	var out []nodes.Variable
	for _, k := range m.Group {
		if k.Var != nil {
			out = append(out, *k.Var)
		}
	}
	return out
}
