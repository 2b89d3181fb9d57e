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

	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

var (
	// ErrSyntax is reported when the parser rejects the source text.
	ErrSyntax = errors.New("sparql: syntax error")
	// ErrResolution is reported for undefined prefixes, malformed local
	// names and invalid IRIs.
	ErrResolution = errors.New("sparql: cannot resolve term")
	// ErrAmbiguousTarget is reported when a template or an update data block
	// would have to be written to more than one dataset graph.
	ErrAmbiguousTarget = errors.New("sparql: ambiguous target graph")
	// ErrDataset is reported when MOVE, ADD or COPY refer to DEFAULT while the
	// protocol declares more than one default graph.
	ErrDataset = errors.New("sparql: ambiguous default graph")
	// ErrInvalid is reported for constructs the compiler does not accept.
	ErrInvalid = errors.New("sparql: invalid construct")
)

// Error is a compilation error located in the source.
// Use errors.Is with one of the Err* values to test its kind.
type Error struct {
	Err error
	Msg string
	Pos syntax.Position
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%v at %v: %s", e.Err, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func errorf(kind error, n *syntax.Node, format string, args ...interface{}) *Error {
	e := &Error{Err: kind, Msg: fmt.Sprintf(format, args...)}
	if n != nil {
		e.Pos = n.Pos
	}
	return e
}

// errorKind names the kind of err for metrics.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrSyntax):
		return "syntax"
	case errors.Is(err, ErrResolution):
		return "resolution"
	case errors.Is(err, ErrAmbiguousTarget):
		return "ambiguous_target"
	case errors.Is(err, ErrDataset):
		return "dataset"
	case errors.Is(err, ErrInvalid):
		return "invalid"
	}
	return "other"
}
