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

	"github.com/cayleygraph/sparql/query/sparql/syntax"
)

// graphRef resolves DEFAULT, NAMED, ALL or a graph IRI against the dataset.
// Keywords resolve to the declared graphs when there are any.
func (c *scope) graphRef(n *syntax.Node) (GraphRefKind, []quad.IRI, error) {
	ds := c.dataset
	switch {
	case n.Is(syntax.KindDefault):
		if len(ds.Default) != 0 {
			return RefSingle, clone(ds.Default), nil
		}
		return RefDefault, nil, nil
	case n.Is(syntax.KindNamed):
		if len(ds.Named) != 0 {
			return RefSingle, clone(ds.Named), nil
		}
		return RefNamed, nil, nil
	case n.Is(syntax.KindAll):
		if !ds.IsEmpty() {
			return RefSingle, ds.Graphs(), nil
		}
		return RefAll, nil, nil
	case n != nil && n.Kind.IsIRI():
		g, err := c.s.iri(n)
		if err != nil {
			return 0, nil, err
		}
		return RefSingle, []quad.IRI{g}, nil
	}
	return 0, nil, errorf(ErrInvalid, n, "expected a graph reference")
}

// singleGraph resolves the origin or target of ADD, MOVE and COPY.
// DEFAULT must denote at most one protocol default graph.
func (c *scope) singleGraph(n *syntax.Node) ([]quad.IRI, error) {
	if n.Is(syntax.KindNamed, syntax.KindAll) {
		return nil, errorf(ErrInvalid, n, "expected DEFAULT or a graph IRI")
	}
	kind, graphs, err := c.graphRef(n)
	if err != nil {
		return nil, err
	}
	if kind == RefDefault {
		return []quad.IRI{c.s.defaultGraph}, nil
	}
	if n.Is(syntax.KindDefault) && len(graphs) > 1 {
		return nil, errorf(ErrDataset, n, "DEFAULT denotes %d protocol default graphs", len(graphs))
	}
	return graphs, nil
}

func clone(list []quad.IRI) []quad.IRI {
	return append([]quad.IRI(nil), list...)
}
