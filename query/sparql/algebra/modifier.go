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

package algebra

import "github.com/cayleygraph/sparql/nodes"

// GroupKey is a GROUP BY key. Var is set when the key is bound with AS.
type GroupKey struct {
	Expr Expression
	Var  *nodes.Variable
}

// OrderKey is an ORDER BY key.
type OrderKey struct {
	Expr       Expression
	Descending bool
}

// Modifier transforms the solutions of a pattern. A nil *Modifier means no
// grouping, no ordering and no bounds; nil Limit or Offset means unbounded.
type Modifier struct {
	Group  []GroupKey
	Having []Expression
	Order  []OrderKey
	Limit  *int64
	Offset *int64
}

// IsEmpty reports whether the modifier has no effect.
func (m *Modifier) IsEmpty() bool {
	return m == nil || (len(m.Group) == 0 && len(m.Having) == 0 &&
		len(m.Order) == 0 && m.Limit == nil && m.Offset == nil)
}
