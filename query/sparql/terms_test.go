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
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/sparql/nodes"
	sx "github.com/cayleygraph/sparql/query/sparql/syntax"
)

func lit(lex string, dt quad.IRI) quad.Value {
	return quad.TypedString{Value: quad.String(lex), Type: dt}
}

var termCases = []struct {
	name   string
	node   *sx.Node
	expect quad.Value
	err    error
}{
	{name: "absolute iri", node: ref("http://x.org/abs"), expect: quad.IRI("http://x.org/abs")},
	{name: "relative iri", node: ref("c"), expect: quad.IRI("http://base.org/a/c")},
	{name: "parent iri", node: ref("../d"), expect: quad.IRI("http://base.org/d")},
	{name: "fragment", node: ref("#frag"), expect: quad.IRI("http://base.org/a/b#frag")},
	{name: "empty fragment", node: ref("#"), expect: quad.IRI("http://base.org/a/b#")},
	{name: "empty query", node: ref("?"), expect: quad.IRI("http://base.org/a/b?")},
	{name: "same document", node: ref(""), expect: quad.IRI("http://base.org/a/b")},
	{name: "query and fragment", node: ref("?q#f"), expect: quad.IRI("http://base.org/a/b?q#f")},
	{name: "non-ascii relative iri", node: ref("café"), expect: quad.IRI("http://base.org/a/café")},
	{name: "percent in absolute iri", node: ref("http://x.org/%zz"), expect: quad.IRI("http://x.org/%zz")},
	{name: "percent in relative iri", node: ref("a%20b"), expect: quad.IRI("http://base.org/a/a%20b")},
	{name: "network path", node: ref("//other.org/p/./q"), expect: quad.IRI("http://other.org/p/q")},
	{name: "above root", node: ref("../../../x"), expect: quad.IRI("http://base.org/x")},
	{name: "space in iri", node: ref("a b"), err: ErrResolution},
	{name: "brace in iri", node: ref("http://x.org/{a}"), err: ErrResolution},
	{name: "iri escape", node: ref(`http://x.org/\u0041`), expect: quad.IRI("http://x.org/A")},
	{name: "bad iri escape", node: ref(`http://x.org/\n`), err: ErrResolution},
	{name: "malformed iri", node: tk(sx.KindIRIRef, "http://x.org/"), err: ErrResolution},
	{name: "prefixed name", node: pname("ex:foo"), expect: exIRI("foo")},
	{name: "namespace only", node: tk(sx.KindPNameNS, "ex:"), expect: exIRI("")},
	{name: "local escape", node: pname(`ex:a\.b\~c`), expect: exIRI("a.b~c")},
	{name: "trailing escaped dot", node: pname(`ex:a\.`), expect: exIRI("a.")},
	{name: "trailing dot", node: pname("ex:a."), err: ErrResolution},
	{name: "bad local escape", node: pname(`ex:a\q`), err: ErrResolution},
	{name: "undefined prefix", node: pname("nope:x"), err: ErrResolution},
	{name: "rdf type", node: tk(sx.KindA, "a"), expect: nodes.RDFType},
	{name: "nil", node: tk(sx.KindNil, "()"), expect: nodes.RDFNil},
	{name: "variable", node: vn("x"), expect: v("x")},
	{name: "dollar variable", node: tk(sx.KindVar, "$y"), expect: v("y")},
	{name: "bad variable", node: tk(sx.KindVar, "??"), err: ErrInvalid},
	{name: "true", node: tk(sx.KindTrue, "true"), expect: lit("true", nodes.XSDBoolean)},
	{name: "false", node: tk(sx.KindFalse, "false"), expect: lit("false", nodes.XSDBoolean)},
	{name: "integer", node: integer("-007"), expect: lit("-007", nodes.XSDInteger)},
	{name: "decimal", node: tk(sx.KindDecimal, "4.20"), expect: lit("4.20", nodes.XSDDecimal)},
	{name: "double", node: tk(sx.KindDouble, "1e10"), expect: lit("1e10", nodes.XSDDouble)},
	{name: "string", node: str("hello"), expect: quad.String("hello")},
	{name: "single quoted", node: tk(sx.KindString, `'it\'s'`), expect: quad.String("it's")},
	{name: "long string", node: tk(sx.KindString, `"""a "quoted"
line"""`), expect: quad.String("a \"quoted\"\nline")},
	{name: "string escapes", node: str(`tab\t\u00e9`), expect: quad.String("tab\té")},
	{name: "bad string", node: tk(sx.KindString, `"open`), err: ErrInvalid},
	{
		name:   "language tag",
		node:   nd(sx.KindLiteral, str("chat"), tk(sx.KindLangTag, "@fr")),
		expect: quad.LangString{Value: "chat", Lang: "fr"},
	},
	{
		name:   "typed by iri",
		node:   nd(sx.KindLiteral, str("5"), ref("http://www.w3.org/2001/XMLSchema#int")),
		expect: lit("5", "http://www.w3.org/2001/XMLSchema#int"),
	},
	{
		name:   "typed by prefixed name",
		node:   nd(sx.KindLiteral, str("x"), pname("ex:dt")),
		expect: lit("x", exIRI("dt")),
	},
	{
		name:   "explicit xsd string",
		node:   nd(sx.KindLiteral, str("x"), ref(nodes.XSDString)),
		expect: quad.String("x"),
	},
	{name: "plain literal node", node: nd(sx.KindLiteral, str("x")), expect: quad.String("x")},
	{name: "unexpected kind", node: nd(sx.KindGroup), err: ErrInvalid},
}

func TestTerms(t *testing.T) {
	for _, c := range termCases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestSession(t, Options{Base: "http://base.org/a/b"}, prefix("ex", ex))
			got, err := s.term(c.node)
			if c.err != nil {
				require.ErrorIs(t, err, c.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.expect, got)
		})
	}
}

func TestPrologue(t *testing.T) {
	s := newTestSession(t, Options{},
		nd(sx.KindBaseDecl, ref("http://base.org/dir/")),
		nd(sx.KindPrefixDecl, tk(sx.KindPNameNS, ":"), ref("rel#")),
		nd(sx.KindBaseDecl, ref("other/")),
	)
	got, err := s.term(pname(":x"))
	require.NoError(t, err)
	require.Equal(t, quad.IRI("http://base.org/dir/rel#x"), got)

	got, err = s.term(ref("y"))
	require.NoError(t, err)
	require.Equal(t, quad.IRI("http://base.org/dir/other/y"), got)

	err = s.prologue(nd(sx.KindPrologue, nd(sx.KindBaseDecl, ref("no-scheme"))))
	require.NoError(t, err, "relative base resolves against the current one")

	s = newTestSession(t, Options{})
	err = s.prologue(nd(sx.KindPrologue, nd(sx.KindBaseDecl, ref("no-scheme"))))
	require.ErrorIs(t, err, ErrResolution)
	err = s.prologue(nd(sx.KindPrologue, nd(sx.KindPrefixDecl, ref("x:"), ref(ex))))
	require.ErrorIs(t, err, ErrInvalid)
	err = s.prologue(nd(sx.KindSelect))
	require.ErrorIs(t, err, ErrInvalid)
}

func TestRelativePrefix(t *testing.T) {
	s := newTestSession(t, Options{Base: "http://ex.org/doc"},
		nd(sx.KindPrefixDecl, tk(sx.KindPNameNS, ":"), ref("#")),
		nd(sx.KindPrefixDecl, tk(sx.KindPNameNS, "q:"), ref("?id=")),
	)
	got, err := s.term(pname(":alice"))
	require.NoError(t, err)
	require.Equal(t, quad.IRI("http://ex.org/doc#alice"), got)

	got, err = s.term(pname("q:7"))
	require.NoError(t, err)
	require.Equal(t, quad.IRI("http://ex.org/doc?id=7"), got)

	// without a base relative references stay unresolved
	s = newTestSession(t, Options{}, nd(sx.KindPrefixDecl, tk(sx.KindPNameNS, ":"), ref("#")))
	got, err = s.term(pname(":alice"))
	require.NoError(t, err)
	require.Equal(t, quad.IRI("#alice"), got)
}

func TestVocabularyPrefixes(t *testing.T) {
	node := pname("rdf:type")
	_, err := newTestSession(t, Options{}).term(node)
	require.ErrorIs(t, err, ErrResolution)

	got, err := newTestSession(t, Options{VocabularyPrefixes: true}).term(node)
	require.NoError(t, err)
	require.Equal(t, quad.IRI(rdf.NS+"type"), got)

	s := newTestSession(t, Options{VocabularyPrefixes: true}, prefix("rdf", ex))
	got, err = s.term(node)
	require.NoError(t, err)
	require.Equal(t, exIRI("type"), got, "prologue declarations win")
}

func TestBlankNodes(t *testing.T) {
	s := newTestSession(t, Options{})
	a1, err := s.term(bn("a"))
	require.NoError(t, err)
	a2, err := s.term(bn("a"))
	require.NoError(t, err)
	require.Equal(t, a1, a2)
	b, err := s.term(bn("b"))
	require.NoError(t, err)
	require.NotEqual(t, a1, b)

	s.resetLabels()
	a3, err := s.term(bn("a"))
	require.NoError(t, err)
	require.NotEqual(t, a1, a3)

	anon1, err := s.term(tk(sx.KindAnon, "[]"))
	require.NoError(t, err)
	anon2, err := s.term(tk(sx.KindAnon, "[]"))
	require.NoError(t, err)
	require.NotEqual(t, anon1, anon2)

	_, err = s.term(tk(sx.KindBlankNodeLabel, "_:"))
	require.ErrorIs(t, err, ErrInvalid)
}

func TestCollections(t *testing.T) {
	s := newTestSession(t, Options{})
	tr := triples{s: s, graph: nodes.DefaultGraph}
	var out []quad.Quad
	head, err := tr.node(nd(sx.KindCollection), &out)
	require.NoError(t, err)
	require.Equal(t, nodes.RDFNil, head)
	require.Empty(t, out)

	head, err = tr.node(nd(sx.KindCollection, exRef("a"), nd(sx.KindCollection, exRef("b"))), &out)
	require.NoError(t, err)
	// inner list: 2 quads, outer list: 4 quads
	require.Len(t, out, 6)
	inner := out[0].Subject
	require.Equal(t, q(inner, nodes.RDFFirst, exIRI("b"), nodes.DefaultGraph), out[0])
	require.Equal(t, q(inner, nodes.RDFRest, nodes.RDFNil, nodes.DefaultGraph), out[1])
	require.Equal(t, q(head, nodes.RDFFirst, exIRI("a"), nodes.DefaultGraph), out[2])
	second := out[3].Subject
	require.Equal(t, q(second, nodes.RDFFirst, inner, nodes.DefaultGraph), out[3])
	require.Equal(t, q(head, nodes.RDFRest, second, nodes.DefaultGraph), out[4])
	require.Equal(t, q(second, nodes.RDFRest, nodes.RDFNil, nodes.DefaultGraph), out[5])
}

func TestPropertyListErrors(t *testing.T) {
	s := newTestSession(t, Options{})
	tr := triples{s: s, graph: nodes.DefaultGraph}
	for _, n := range []*sx.Node{
		nd(sx.KindTriplesBlock, triple(vn("s"), nd(sx.KindPath), vn("o"))),
		nd(sx.KindTriplesBlock, nd(sx.KindTriplesSameSubject, vn("s"), nd(sx.KindPropertyList, vn("p")))),
		nd(sx.KindTriplesBlock, triple(vn("s"), str("p"), vn("o"))),
		nd(sx.KindTriplesBlock, nd(sx.KindGroup)),
		nd(sx.KindGroup),
	} {
		require.ErrorIs(t, tr.block(n), ErrInvalid, "%v", n)
	}
}

func TestUnescape(t *testing.T) {
	for _, c := range []struct {
		in, out string
		echar   bool
		fail    bool
	}{
		{in: "plain", out: "plain"},
		{in: `é\U0001F600`, out: "é😀"},
		{in: `a\tb`, out: "a\tb", echar: true},
		{in: `a\tb`, fail: true},
		{in: `\u12`, fail: true},
		{in: `\uZZZZ`, fail: true},
		{in: `\UFFFFFFFF`, fail: true},
		{in: `trailing\`, fail: true, echar: true},
		{in: `\x`, fail: true, echar: true},
	} {
		got, err := unescape(c.in, c.echar)
		if c.fail {
			require.Error(t, err, c.in)
			continue
		}
		require.NoError(t, err, c.in)
		require.Equal(t, c.out, got)
	}
}
