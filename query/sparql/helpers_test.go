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
	sx "github.com/cayleygraph/sparql/query/sparql/syntax"
)

const ex = "http://example.org/"

func exIRI(local string) quad.IRI { return quad.IRI(ex + local) }

func v(name string) nodes.Variable { return nodes.Variable(name) }

func q(s, p, o, g quad.Value) quad.Quad {
	return quad.Quad{Subject: s, Predicate: p, Object: o, Label: g}
}

// Syntax tree builders.

func tk(k sx.Kind, val string) *sx.Node           { return sx.Token(k, val) }
func nd(k sx.Kind, children ...*sx.Node) *sx.Node { return sx.New(k, children...) }
func ref(iri string) *sx.Node                     { return tk(sx.KindIRIRef, "<"+iri+">") }
func exRef(local string) *sx.Node                 { return ref(ex + local) }
func pname(name string) *sx.Node                  { return tk(sx.KindPNameLN, name) }
func vn(name string) *sx.Node                     { return tk(sx.KindVar, "?"+name) }
func bn(label string) *sx.Node                    { return tk(sx.KindBlankNodeLabel, "_:"+label) }
func str(s string) *sx.Node                       { return tk(sx.KindString, `"`+s+`"`) }
func integer(s string) *sx.Node                   { return tk(sx.KindInteger, s) }
func group(els ...*sx.Node) *sx.Node              { return nd(sx.KindGroup, els...) }
func where(p *sx.Node) *sx.Node                   { return nd(sx.KindWhere, p) }
func block(ts ...*sx.Node) *sx.Node               { return nd(sx.KindTriplesBlock, ts...) }
func star() *sx.Node                              { return nd(sx.KindSelectClause, tk(sx.KindStar, "*")) }
func mod(clauses ...*sx.Node) *sx.Node            { return nd(sx.KindModifier, clauses...) }

func triple(s, p *sx.Node, objs ...*sx.Node) *sx.Node {
	return nd(sx.KindTriplesSameSubject, s, nd(sx.KindPropertyList, p, nd(sx.KindObjectList, objs...)))
}

// bgpGroup is { s p o }.
func bgpGroup(s, p, o *sx.Node) *sx.Node {
	return group(block(triple(s, p, o)))
}

func queryTree(form *sx.Node, decls ...*sx.Node) *sx.Tree {
	return &sx.Tree{Root: nd(sx.KindQuery, nd(sx.KindPrologue, decls...), form)}
}

// selectAll is SELECT * WHERE body.
func selectAll(body *sx.Node, decls ...*sx.Node) *sx.Tree {
	return queryTree(nd(sx.KindSelect, star(), where(body), mod()), decls...)
}

func updateTree(ops ...*sx.Node) *sx.Tree {
	root := nd(sx.KindUpdate)
	for _, op := range ops {
		root.Children = append(root.Children, nd(sx.KindStatement, nd(sx.KindPrologue), op))
	}
	return &sx.Tree{Root: root}
}

func prefix(name, iri string) *sx.Node {
	return nd(sx.KindPrefixDecl, tk(sx.KindPNameNS, name+":"), ref(iri))
}

// Compilation helpers.

type sinkRecorder struct {
	diags []Diagnostic
}

func (r *sinkRecorder) Report(d Diagnostic) { r.diags = append(r.diags, d) }

func newTestCompiler(t testing.TB, opts Options) *Compiler {
	t.Helper()
	st, err := nodes.NewMemory(nodes.Options{})
	require.NoError(t, err)
	if opts.Sink == nil {
		opts.Sink = &sinkRecorder{}
	}
	return NewCompiler(st, opts)
}

func mustCompile(t testing.TB, opts Options, tree *sx.Tree) Command {
	t.Helper()
	cmd, err := newTestCompiler(t, opts).Compile(tree)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	return cmd
}

// selectOf asserts that cmd is a SELECT query.
func selectOf(t testing.TB, cmd Command) *Select {
	t.Helper()
	sel, ok := cmd.(*Select)
	require.True(t, ok, "expected a select, got %T", cmd)
	return sel
}

func newTestSession(t testing.TB, opts Options, decls ...*sx.Node) *session {
	t.Helper()
	s, err := newTestCompiler(t, opts).newSession()
	require.NoError(t, err)
	require.NoError(t, s.prologue(nd(sx.KindPrologue, decls...)))
	return s
}
