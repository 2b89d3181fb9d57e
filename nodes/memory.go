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

package nodes

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/cayleygraph/quad"
	"github.com/google/uuid"

	"github.com/cayleygraph/sparql/internal/lru"
)

// BlankNodeLabels selects how Memory labels new blank nodes.
type BlankNodeLabels string

const (
	// SequentialLabels numbers blank nodes b1, b2, ... per store.
	SequentialLabels BlankNodeLabels = "sequential"
	// UUIDLabels labels blank nodes with random UUIDs, unique across stores.
	UUIDLabels BlankNodeLabels = "uuid"
)

// DefaultCacheSize is the number of literals Memory keeps interned by default.
const DefaultCacheSize = 4096

// Options configure a Memory store.
type Options struct {
	CacheSize  int
	BlankNodes BlankNodeLabels
}

// Memory is an in-memory Store. It interns literals in a bounded cache so
// repeated constants share one value, and labels blank nodes itself.
type Memory struct {
	labels   BlankNodeLabels
	next     uint64
	literals *lru.Cache[quad.Value]
}

var _ Store = (*Memory)(nil)

// NewMemory creates a store. Zero options select sequential labels and the
// default cache size.
func NewMemory(opts Options) (*Memory, error) {
	switch opts.BlankNodes {
	case "":
		opts.BlankNodes = SequentialLabels
	case SequentialLabels, UUIDLabels:
	default:
		return nil, fmt.Errorf("nodes: unknown blank node labeling %q", opts.BlankNodes)
	}
	if opts.CacheSize == 0 {
		opts.CacheSize = DefaultCacheSize
	}
	return &Memory{
		labels:   opts.BlankNodes,
		literals: lru.New[quad.Value](opts.CacheSize),
	}, nil
}

func (m *Memory) IRI(iri string) quad.IRI {
	return quad.IRI(iri)
}

func (m *Memory) BlankNode() quad.BNode {
	if m.labels == UUIDLabels {
		return quad.BNode(uuid.NewString())
	}
	n := atomic.AddUint64(&m.next, 1)
	return quad.BNode("b" + strconv.FormatUint(n, 10))
}

func (m *Memory) Literal(lexical, datatype, lang string) quad.Value {
	key := lexical + "\x00" + datatype + "\x00" + lang
	v, _ := m.literals.GetOrPut(key, func() quad.Value {
		return newLiteral(lexical, datatype, lang)
	})
	return v
}

// Interned returns the number of literals currently cached.
func (m *Memory) Interned() int {
	return m.literals.Len()
}

func newLiteral(lexical, datatype, lang string) quad.Value {
	switch {
	case lang != "":
		return quad.LangString{Value: quad.String(lexical), Lang: lang}
	case datatype == "" || datatype == XSDString:
		return quad.String(lexical)
	default:
		return quad.TypedString{Value: quad.String(lexical), Type: quad.IRI(datatype)}
	}
}
