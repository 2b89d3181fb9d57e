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
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/sparql/nodes"
	"github.com/cayleygraph/sparql/query/sparql/algebra"
	sx "github.com/cayleygraph/sparql/query/sparql/syntax"
)

func int64p(v int64) *int64 { return &v }

func TestQueryDataset(t *testing.T) {
	from := func(k sx.Kind, local string) *sx.Node { return nd(k, exRef(local)) }
	form := nd(sx.KindSelect, star(),
		from(sx.KindFrom, "g1"), from(sx.KindFromNamed, "g2"),
		where(bgpGroup(vn("s"), exRef("p"), vn("o"))), mod())
	protocol := Options{Dataset: Dataset{Default: []quad.IRI{exIRI("g9")}}}

	// FROM replaces the protocol dataset
	sel := selectOf(t, mustCompile(t, protocol, queryTree(form))).Select
	require.Equal(t, &algebra.Union{Patterns: []algebra.Pattern{
		quads(q(v("s"), exIRI("p"), v("o"), exIRI("g1"))),
		quads(q(v("s"), exIRI("p"), v("o"), exIRI("g2"))),
	}}, sel.Inner)

	// otherwise the protocol dataset applies
	sel = selectOf(t, mustCompile(t, protocol, selectAll(bgpGroup(vn("s"), exRef("p"), vn("o"))))).Select
	require.Equal(t, quads(q(v("s"), exIRI("p"), v("o"), exIRI("g9"))), sel.Inner)

	_, err := newTestCompiler(t, Options{}).Compile(queryTree(nd(sx.KindSelect, star(),
		nd(sx.KindFrom, pname("nope:g")), where(group()), mod())))
	require.ErrorIs(t, err, ErrResolution)
}

func TestConstruct(t *testing.T) {
	tmpl := nd(sx.KindConstructTemplate, block(
		triple(vn("s"), exRef("name"), vn("o")),
		triple(bn("x"), exRef("of"), vn("s")),
	))
	form := nd(sx.KindConstruct, tmpl, where(bgpGroup(vn("s"), exRef("label"), vn("o"))), mod())
	cmd := mustCompile(t, Options{}, queryTree(form)).(*Construct)
	require.Equal(t, quads(q(v("s"), exIRI("label"), v("o"), nodes.DefaultGraph)), cmd.Select.Inner)
	require.Empty(t, cmd.Select.Projection)
	require.Len(t, cmd.Template, 2)
	require.Equal(t, q(v("s"), exIRI("name"), v("o"), nodes.DefaultGraph), cmd.Template[0])
	require.IsType(t, quad.BNode(""), cmd.Template[1].Subject)

	// an empty template
	form = nd(sx.KindConstruct, nd(sx.KindConstructTemplate), where(group()), mod())
	cmd = mustCompile(t, Options{}, queryTree(form)).(*Construct)
	require.Empty(t, cmd.Template)

	_, err := newTestCompiler(t, Options{}).Compile(queryTree(nd(sx.KindConstruct, where(group()))))
	require.ErrorIs(t, err, ErrInvalid)
}

func TestConstructWhere(t *testing.T) {
	form := nd(sx.KindConstructWhere, block(triple(vn("s"), exRef("p"), vn("o"))), mod(
		nd(sx.KindLimit, integer("5")),
	))
	cmd := mustCompile(t, Options{}, queryTree(form)).(*Construct)
	expect := []quad.Quad{q(v("s"), exIRI("p"), v("o"), nodes.DefaultGraph)}
	require.Equal(t, expect, cmd.Template)
	require.Equal(t, quads(expect...), cmd.Select.Inner)
	require.Equal(t, &algebra.Modifier{Limit: int64p(5)}, cmd.Select.Modifier)

	cmd = mustCompile(t, Options{}, queryTree(nd(sx.KindConstructWhere, mod()))).(*Construct)
	require.Equal(t, &algebra.Quads{}, cmd.Select.Inner)
	require.Empty(t, cmd.Template)

	two := Options{Dataset: Dataset{Named: []quad.IRI{g1, g2}}}
	_, err := newTestCompiler(t, two).Compile(queryTree(form))
	require.ErrorIs(t, err, ErrAmbiguousTarget)
}

func TestDescribe(t *testing.T) {
	body := where(bgpGroup(vn("s"), exRef("p"), vn("o")))
	targets := func(ts ...*sx.Node) *sx.Tree {
		return queryTree(nd(sx.KindDescribe, nd(sx.KindDescribeTargets, ts...), body, mod()))
	}

	cmd := mustCompile(t, Options{}, targets(tk(sx.KindStar, "*"))).(*Describe)
	require.Equal(t, []quad.Value{v("s"), v("o")}, cmd.Targets)

	cmd = mustCompile(t, Options{}, targets(vn("s"), exRef("thing"))).(*Describe)
	require.Equal(t, []quad.Value{v("s"), exIRI("thing")}, cmd.Targets)
	require.Empty(t, cmd.Select.Projection)

	// DESCRIBE without WHERE
	tree := queryTree(nd(sx.KindDescribe, nd(sx.KindDescribeTargets, exRef("thing")), mod()))
	cmd = mustCompile(t, Options{}, tree).(*Describe)
	require.Equal(t, &algebra.Quads{}, cmd.Select.Inner)

	_, err := newTestCompiler(t, Options{}).Compile(targets(str("x")))
	require.ErrorIs(t, err, ErrInvalid)
}

func TestAsk(t *testing.T) {
	tree := queryTree(nd(sx.KindAsk, where(bgpGroup(exRef("a"), exRef("p"), vn("o"))), mod()))
	cmd := mustCompile(t, Options{}, tree).(*Ask)
	require.Equal(t, quads(q(exIRI("a"), exIRI("p"), v("o"), nodes.DefaultGraph)), cmd.Select.Inner)
	require.Equal(t, "ask", Form(cmd))
}

func TestTrailingValues(t *testing.T) {
	values := nd(sx.KindValues, nd(sx.KindDataOne, vn("s"), exRef("a")))
	tree := &sx.Tree{Root: nd(sx.KindQuery, nd(sx.KindPrologue),
		nd(sx.KindSelect, star(), where(bgpGroup(vn("s"), exRef("p"), vn("o"))), mod()),
		values,
	)}
	sel := selectOf(t, mustCompile(t, Options{}, tree)).Select
	require.Equal(t, &algebra.InlineData{
		Vars:      []nodes.Variable{"s"},
		Solutions: []algebra.Solution{{{Var: "s", Value: exIRI("a")}}},
	}, sel.InlineData)

	// an empty VALUES node is no inline data at all
	tree.Root.Children[2] = nd(sx.KindValues)
	sel = selectOf(t, mustCompile(t, Options{}, tree)).Select
	require.Nil(t, sel.InlineData)

	tree.Root.Children[2] = group()
	_, err := newTestCompiler(t, Options{}).Compile(tree)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestModifier(t *testing.T) {
	compile := func(clauses ...*sx.Node) (*algebra.Modifier, error) {
		tree := queryTree(nd(sx.KindSelect, nd(sx.KindSelectClause, vn("s")),
			where(bgpGroup(vn("s"), exRef("p"), vn("o"))), mod(clauses...)))
		cmd, err := newTestCompiler(t, Options{}).Compile(tree)
		if err != nil {
			return nil, err
		}
		return selectOf(t, cmd).Select.Modifier, nil
	}

	m, err := compile()
	require.NoError(t, err)
	require.Nil(t, m)

	m, err = compile(
		nd(sx.KindGroupBy, vn("s"), nd(sx.KindAs, call("STR", vn("o")), vn("label"))),
		nd(sx.KindHaving, nd(sx.KindOpGreater, call("COUNT", tk(sx.KindStar, "*")), integer("1"))),
		nd(sx.KindOrderBy, nd(sx.KindDesc, vn("label")), vn("s"), nd(sx.KindAsc, vn("o"))),
		tk(sx.KindLimit, "10"),
		nd(sx.KindOffset, integer("20")),
	)
	require.NoError(t, err)
	label := v("label")
	require.Equal(t, &algebra.Modifier{
		Group: []algebra.GroupKey{
			{Expr: varRef("s")},
			{Expr: builtinCall("STR", varRef("o")), Var: &label},
		},
		Having: []algebra.Expression{&algebra.Binary{
			Op:    algebra.OpGreater,
			Left:  builtinCall("COUNT"),
			Right: &algebra.Const{Value: lit("1", nodes.XSDInteger)},
		}},
		Order: []algebra.OrderKey{
			{Expr: varRef("label"), Descending: true},
			{Expr: varRef("s")},
			{Expr: varRef("o")},
		},
		Limit:  int64p(10),
		Offset: int64p(20),
	}, m)

	m, err = compile(tk(sx.KindOffset, "0"))
	require.NoError(t, err)
	require.Equal(t, &algebra.Modifier{Offset: int64p(0)}, m)

	for _, bad := range []*sx.Node{
		tk(sx.KindLimit, "-1"),
		tk(sx.KindLimit, "ten"),
		nd(sx.KindLimit),
		nd(sx.KindOffset, str("1")),
		nd(sx.KindGroupBy, nd(sx.KindAs, vn("o"), str("x"))),
		nd(sx.KindOrderBy, nd(sx.KindDesc)),
		nd(sx.KindWhere),
	} {
		_, err := compile(bad)
		require.ErrorIs(t, err, ErrInvalid, "%v", bad)
	}
}
