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

	"github.com/cayleygraph/sparql/clog"
	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

// Diagnostic describes one compilation error for a human reader.
type Diagnostic struct {
	Message string
	Pos     syntax.Position
	// Context is the source line at Pos and Pointer marks the column within it.
	Context string
	Pointer string
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// LogSink writes diagnostics to clog.
type LogSink struct{}

func (LogSink) Report(d Diagnostic) {
	if d.Context == "" {
		clog.Errorf("%s @%v", d.Message, d.Pos)
		return
	}
	clog.Errorf("%s @%v\n\t%s\n\t%s", d.Message, d.Pos, d.Context, d.Pointer)
}

// report renders err against the tree source and hands it to the sink.
func report(sink Sink, tree *syntax.Tree, err error) {
	if sink == nil {
		return
	}
	var list syntax.ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			sink.Report(diagnostic(tree, e.Error(), e.Pos))
		}
		return
	}
	var pos syntax.Position
	if e := (*Error)(nil); errors.As(err, &e) {
		pos = e.Pos
	}
	sink.Report(diagnostic(tree, err.Error(), pos))
}

func diagnostic(tree *syntax.Tree, msg string, pos syntax.Position) Diagnostic {
	d := Diagnostic{Message: msg, Pos: pos}
	d.Context, d.Pointer = tree.Context(pos)
	return d
}
