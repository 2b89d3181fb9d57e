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
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/sparql/clog"
	sx "github.com/cayleygraph/sparql/query/sparql/syntax"
)

type errRecorder struct {
	warnRecorder
	errors []string
}

func (r *errRecorder) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestReport(t *testing.T) {
	tree := &sx.Tree{Text: "SELECT *\nWHERE { ?s nope:p ?o }"}
	var got []Diagnostic
	sink := SinkFunc(func(d Diagnostic) { got = append(got, d) })

	report(sink, tree, errorf(ErrResolution, pname("nope:p").At(2, 12), "undefined prefix %q", "nope"))
	require.Equal(t, []Diagnostic{{
		Message: `sparql: cannot resolve term at 2:12: undefined prefix "nope"`,
		Pos:     sx.Position{Line: 2, Column: 12},
		Context: "WHERE { ?s nope:p ?o }",
		Pointer: "           ^",
	}}, got)

	got = nil
	report(sink, tree, sx.ErrorList{
		{Msg: "a", Pos: sx.Position{Line: 1, Column: 1}},
		{Msg: "b", Pos: sx.Position{Line: 9, Column: 1}},
	})
	require.Len(t, got, 2)
	require.Equal(t, "^", got[0].Pointer)
	require.Equal(t, "SELECT *", got[0].Context)
	require.Empty(t, got[1].Context, "out of range")

	got = nil
	report(sink, nil, errors.New("plain"))
	require.Equal(t, []Diagnostic{{Message: "plain"}}, got)

	report(nil, tree, errors.New("dropped"))
	require.Len(t, got, 1)
}

func TestLogSink(t *testing.T) {
	r := &errRecorder{}
	clog.SetLogger(r)
	defer clog.SetLogger(nil)

	LogSink{}.Report(Diagnostic{Message: "m", Pos: sx.Position{Line: 1, Column: 2}, Context: "ab", Pointer: " ^"})
	LogSink{}.Report(Diagnostic{Message: "n"})
	require.Len(t, r.errors, 2)
	require.Contains(t, r.errors[0], "m @1:2\n\tab\n\t ^")
	require.Contains(t, r.errors[1], "n @")
}

func TestCompileReportsToSink(t *testing.T) {
	rec := &sinkRecorder{}
	c := newTestCompiler(t, Options{Sink: rec})
	tree := selectAll(bgpGroup(vn("s"), pname("nope:p").At(1, 20), vn("o")))
	tree.Text = "SELECT * WHERE { ?s nope:p ?o }"

	cmd, err := c.Compile(tree)
	require.Nil(t, cmd)
	require.ErrorIs(t, err, ErrResolution)
	var cerr *Error
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, sx.Position{Line: 1, Column: 20}, cerr.Pos)

	require.Len(t, rec.diags, 1)
	require.Equal(t, tree.Text, rec.diags[0].Context)
	require.Equal(t, "                   ^", rec.diags[0].Pointer)
}
