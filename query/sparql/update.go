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

	"github.com/cayleygraph/sparql/clog"
	"github.com/cayleygraph/sparql/nodes"
	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

// update compiles a chain of update statements. A failing statement fails
// the whole chain.
func (s *session) update(n *syntax.Node) (Command, error) {
	var cmds []Command
	for _, st := range n.Children {
		if st == nil {
			return nil, errorf(ErrInvalid, n, "missing update statement")
		}
		if !st.Is(syntax.KindStatement) {
			return nil, errorf(ErrInvalid, st, "expected an update statement, got %v", st.Kind)
		}
		if err := s.prologue(st.Child(0)); err != nil {
			return nil, err
		}
		op := st.Child(1)
		if op == nil {
			continue
		}
		cmd, err := s.operation(op)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	switch len(cmds) {
	case 0:
		return nil, errorf(ErrInvalid, n, "update has no operation")
	case 1:
		return cmds[0], nil
	}
	return &Composed{Commands: cmds}, nil
}

// silent splits the optional SILENT keyword from the operation arguments.
func silent(n *syntax.Node) (bool, []*syntax.Node) {
	args := n.Children
	if len(args) != 0 && args[0].Is(syntax.KindSilent) {
		return true, args[1:]
	}
	return false, args
}

func (s *session) operation(op *syntax.Node) (Command, error) {
	c := s.root(s.protocol)
	switch op.Kind {
	case syntax.KindLoad:
		return c.load(op)
	case syntax.KindClear, syntax.KindDrop:
		quiet, args := silent(op)
		if len(args) != 1 {
			return nil, errorf(ErrInvalid, op, "%v expects one graph reference", op.Kind)
		}
		kind, targets, err := c.graphRef(args[0])
		if err != nil {
			return nil, err
		}
		if op.Is(syntax.KindClear) {
			return &Clear{RefType: kind, Targets: targets, Silent: quiet}, nil
		}
		return &Drop{RefType: kind, Targets: targets, Silent: quiet}, nil
	case syntax.KindCreate:
		quiet, args := silent(op)
		if len(args) != 1 {
			return nil, errorf(ErrInvalid, op, "CREATE expects one graph IRI")
		}
		g, err := s.iri(args[0])
		if err != nil {
			return nil, err
		}
		return &Create{Graph: g, Silent: quiet}, nil
	case syntax.KindAdd, syntax.KindMove, syntax.KindCopy:
		return c.transfer(op)
	case syntax.KindInsertData:
		quads, err := c.data(op, false)
		if err != nil {
			return nil, err
		}
		return &InsertData{Quads: quads}, nil
	case syntax.KindDeleteData:
		quads, err := c.data(op, true)
		if err != nil {
			return nil, err
		}
		return &DeleteData{Quads: quads}, nil
	case syntax.KindDeleteWhere:
		quads, err := c.quadBlock(op)
		if err != nil {
			return nil, err
		}
		return &DeleteWhere{Quads: quads}, nil
	case syntax.KindModify:
		return s.modify(op)
	}
	return nil, errorf(ErrInvalid, op, "unexpected update operation %v", op.Kind)
}

func (c *scope) load(op *syntax.Node) (Command, error) {
	quiet, args := silent(op)
	if len(args) < 1 || len(args) > 2 {
		return nil, errorf(ErrInvalid, op, "LOAD expects a source and an optional target")
	}
	src, err := c.s.iri(args[0])
	if err != nil {
		return nil, err
	}
	cmd := &Load{Source: src, Silent: quiet}
	if len(args) == 2 {
		if cmd.Target, err = c.s.iri(args[1]); err != nil {
			return nil, err
		}
	}
	return cmd, nil
}

func (c *scope) transfer(op *syntax.Node) (Command, error) {
	quiet, args := silent(op)
	if len(args) != 2 {
		return nil, errorf(ErrInvalid, op, "%v expects an origin and a target", op.Kind)
	}
	origins, err := c.singleGraph(args[0])
	if err != nil {
		return nil, err
	}
	targets, err := c.singleGraph(args[1])
	if err != nil {
		return nil, err
	}
	switch op.Kind {
	case syntax.KindAdd:
		return &Add{Origins: origins, Targets: targets, Silent: quiet}, nil
	case syntax.KindMove:
		return &Move{Origins: origins, Targets: targets, Silent: quiet}, nil
	}
	return &Copy{Origins: origins, Targets: targets, Silent: quiet}, nil
}

func (c *scope) quadBlock(op *syntax.Node) ([]quad.Quad, error) {
	block := op.Child(0)
	if !block.Is(syntax.KindQuads) {
		return nil, errorf(ErrInvalid, op, "%v expects a quad block", op.Kind)
	}
	return c.template(block)
}

// data compiles the ground quads of INSERT DATA and DELETE DATA.
func (c *scope) data(op *syntax.Node, noBlanks bool) ([]quad.Quad, error) {
	quads, err := c.quadBlock(op)
	if err != nil {
		return nil, err
	}
	for _, q := range quads {
		if !nodes.IsGround(q) {
			return nil, errorf(ErrInvalid, op, "variables are not allowed in %v", op.Kind)
		}
		if noBlanks && hasBlank(q) {
			return nil, errorf(ErrInvalid, op, "blank nodes are not allowed in %v", op.Kind)
		}
	}
	return quads, nil
}

func hasBlank(q quad.Quad) bool {
	for _, d := range quad.Directions {
		if _, ok := q.Get(d).(quad.BNode); ok {
			return true
		}
	}
	return false
}

// modify compiles DELETE/INSERT ... WHERE. Templates are written to the WITH
// graph, or the default graph.
func (s *session) modify(op *syntax.Node) (Command, error) {
	args := op.Children
	var with quad.Value
	if len(args) != 0 && args[0].Is(syntax.KindWith) {
		g, err := s.iri(args[0].Child(0))
		if err != nil {
			return nil, err
		}
		with = g
		args = args[1:]
	}
	tmpl := s.root(Dataset{})
	if with != nil {
		tmpl = tmpl.withGraph(with)
	}
	cmd := &Modify{}
	var err error
	if len(args) != 0 && args[0].Is(syntax.KindDeleteClause) {
		if cmd.Delete, err = tmpl.quadBlock(args[0]); err != nil {
			return nil, err
		}
		args = args[1:]
	}
	if len(args) != 0 && args[0].Is(syntax.KindInsertClause) {
		if cmd.Insert, err = tmpl.quadBlock(args[0]); err != nil {
			return nil, err
		}
		args = args[1:]
	}
	fixed := with != nil || !s.protocol.IsEmpty()
	var using Dataset
	for len(args) != 0 && args[0].Is(syntax.KindUsing, syntax.KindUsingNamed) {
		u := args[0]
		args = args[1:]
		g, err := s.iri(u.Child(0))
		if err != nil {
			return nil, err
		}
		switch {
		case fixed:
			clog.Warningf("sparql: ignoring USING %v at %v: dataset is already fixed", g, u.Pos)
		case u.Is(syntax.KindUsing):
			using.Default = append(using.Default, g)
		default:
			using.Named = append(using.Named, g)
		}
	}
	if len(args) != 1 || !args[0].Is(syntax.KindWhere) {
		return nil, errorf(ErrInvalid, op, "malformed DELETE/INSERT operation")
	}
	ds := s.protocol
	if !fixed && !using.IsEmpty() {
		ds = using
	}
	where := s.root(ds)
	if with != nil {
		where = where.withGraph(with)
	}
	if cmd.Where, err = where.where(args[0]); err != nil {
		return nil, err
	}
	return cmd, nil
}
