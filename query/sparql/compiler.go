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

// Package sparql compiles SPARQL 1.1 query and update syntax trees into
// graph pattern algebra and update commands.
package sparql

import (
	"context"
	"errors"
	"time"

	"github.com/cayleygraph/quad"

	"github.com/cayleygraph/sparql/clog"
	"github.com/cayleygraph/sparql/nodes"
	"github.com/cayleygraph/sparql/query/sparql/algebra"
	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

// Dataset is a set of default and named graphs.
type Dataset struct {
	Default []quad.IRI
	Named   []quad.IRI
}

// IsEmpty reports whether the dataset declares no graph.
func (d Dataset) IsEmpty() bool {
	return len(d.Default) == 0 && len(d.Named) == 0
}

// Graphs returns the default graphs followed by the named graphs.
func (d Dataset) Graphs() []quad.IRI {
	if d.IsEmpty() {
		return nil
	}
	out := make([]quad.IRI, 0, len(d.Default)+len(d.Named))
	out = append(out, d.Default...)
	return append(out, d.Named...)
}

// Contains reports whether the dataset declares the graph.
func (d Dataset) Contains(g quad.IRI) bool {
	for _, iri := range d.Graphs() {
		if iri == g {
			return true
		}
	}
	return false
}

// Parser turns SPARQL source text into a syntax tree. Syntax errors should be
// returned as a syntax.ErrorList.
type Parser interface {
	Parse(text string) (*syntax.Tree, error)
}

// Options configure a Compiler.
type Options struct {
	// Dataset is the dataset supplied by the protocol. Queries without FROM
	// clauses and update operations use it.
	Dataset Dataset
	// Base is the initial base IRI for relative IRI references.
	Base string
	// VocabularyPrefixes resolves prefixes missing from the prologue with the
	// namespaces registered in the quad/voc package.
	VocabularyPrefixes bool
	// Sink receives diagnostics of failed compilations.
	// If nil, diagnostics are written to clog.
	Sink Sink
}

// Compiler compiles syntax trees into commands. A Compiler holds no state
// between calls and may be used concurrently if its store allows it.
type Compiler struct {
	store nodes.Store
	opts  Options
}

// NewCompiler creates a compiler obtaining terms from the given store.
func NewCompiler(store nodes.Store, opts Options) *Compiler {
	if opts.Sink == nil {
		opts.Sink = LogSink{}
	}
	return &Compiler{store: store, opts: opts}
}

// Compile compiles a syntax tree. On failure the diagnostic is reported to
// the sink and no command is returned.
func (c *Compiler) Compile(tree *syntax.Tree) (Command, error) {
	start := time.Now()
	cmd, err := c.compile(tree)
	mCompileSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		mCompileErrors.WithLabelValues(errorKind(err)).Inc()
		report(c.opts.Sink, tree, err)
		return nil, err
	}
	mCompiled.WithLabelValues(cmd.form()).Inc()
	observePatterns(cmd)
	if clog.V(2) {
		clog.Infof("sparql: compiled %s: %v", cmd.form(), cmd.Describe())
	}
	return cmd, nil
}

func (c *Compiler) compile(tree *syntax.Tree) (Command, error) {
	if tree == nil || tree.Root == nil {
		return nil, errorf(ErrInvalid, nil, "empty syntax tree")
	}
	s, err := c.newSession()
	if err != nil {
		return nil, err
	}
	root := tree.Root
	switch root.Kind {
	case syntax.KindQuery:
		return s.query(root)
	case syntax.KindUpdate:
		return s.update(root)
	}
	return nil, errorf(ErrInvalid, root, "expected a query or an update, got %v", root.Kind)
}

// CompileText parses and compiles source text. The context is only checked
// before each stage; compilation itself is not interruptible.
func (c *Compiler) CompileText(ctx context.Context, p Parser, text string) (Command, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tree, err := p.Parse(text)
	if err != nil {
		mCompileErrors.WithLabelValues(errorKind(ErrSyntax)).Inc()
		report(c.opts.Sink, &syntax.Tree{Text: text}, err)
		return nil, syntaxError(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tree != nil && tree.Text == "" {
		tree = &syntax.Tree{Text: text, Root: tree.Root}
	}
	return c.Compile(tree)
}

func syntaxError(err error) *Error {
	var list syntax.ErrorList
	if errors.As(err, &list) && len(list) != 0 {
		return &Error{Err: ErrSyntax, Msg: list[0].Msg, Pos: list[0].Pos}
	}
	var one syntax.Error
	if errors.As(err, &one) {
		return &Error{Err: ErrSyntax, Msg: one.Msg, Pos: one.Pos}
	}
	return &Error{Err: ErrSyntax, Msg: err.Error()}
}

// pattern returns the graph pattern evaluated by a command, if any.
func pattern(cmd Command) algebra.Pattern {
	switch cmd := cmd.(type) {
	case *Select:
		return cmd.Select
	case *Construct:
		return cmd.Select
	case *Describe:
		return cmd.Select
	case *Ask:
		return cmd.Select
	case *Modify:
		return cmd.Where
	}
	return nil
}
