// Copyright 2014 The Cayley Authors. All rights reserved.
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

// Package lru implements a bounded least-recently-used cache.
package lru

import (
	"container/list"
	"sync"
)

// Cache is an LRU cache safe for concurrent use.
// A Cache with a non-positive size is unbounded.
type Cache[V any] struct {
	mu       sync.Mutex
	cache    map[string]*list.Element
	priority *list.List
	maxSize  int
}

type entry[V any] struct {
	key   string
	value V
}

func New[V any](size int) *Cache[V] {
	return &Cache[V]{
		maxSize:  size,
		priority: list.New(),
		cache:    make(map[string]*list.Element),
	}
}

// GetOrPut returns the cached value for key, or stores and returns the
// value created by fn. The second result reports whether the value was cached.
func (c *Cache[V]) GetOrPut(key string, fn func() V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.cache[key]; ok {
		c.priority.MoveToFront(e)
		return e.Value.(entry[V]).value, true
	}
	v := fn()
	c.put(key, v)
	return v, false
}

func (c *Cache[V]) put(key string, value V) {
	if c.maxSize > 0 && len(c.cache) >= c.maxSize {
		last := c.priority.Remove(c.priority.Back())
		delete(c.cache, last.(entry[V]).key)
	}
	c.cache[key] = c.priority.PushFront(entry[V]{key: key, value: value})
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}
