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

package lru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEviction(t *testing.T) {
	c := New[int](2)
	c.GetOrPut("a", func() int { return 1 })
	c.GetOrPut("b", func() int { return 2 })
	_, cached := c.GetOrPut("a", func() int { return -1 }) // a becomes most recent
	require.True(t, cached)
	c.GetOrPut("c", func() int { return 3 })
	assert.Equal(t, 2, c.Len())

	v, cached := c.GetOrPut("a", func() int { return -1 })
	require.True(t, cached)
	assert.Equal(t, 1, v)
	v, cached = c.GetOrPut("b", func() int { return 4 })
	assert.False(t, cached, "least recently used entry should be evicted")
	assert.Equal(t, 4, v)
	assert.Equal(t, 2, c.Len())
}

func TestGetOrPut(t *testing.T) {
	c := New[string](0)
	calls := 0
	mk := func() string { calls++; return "v" }
	v, cached := c.GetOrPut("k", mk)
	assert.Equal(t, "v", v)
	assert.False(t, cached)
	v, cached = c.GetOrPut("k", mk)
	assert.Equal(t, "v", v)
	assert.True(t, cached)
	assert.Equal(t, 1, calls)

	for i := 0; i < 100; i++ {
		c.GetOrPut("x"+string(rune('a'+i)), mk)
	}
	assert.Equal(t, 101, c.Len(), "non-positive size is unbounded")
}
