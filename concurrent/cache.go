// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package concurrent provides small concurrency primitives shared by the
// request pipeline: a memoizing cache and a bounded offload pool.
package concurrent

import (
	"iter"
	"sync"
)

// Cache memoizes values by key. It is safe for concurrent use and is meant
// for read-mostly data computed once per key, e.g. per-type metadata.
type Cache[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
}

// NewCache returns an empty [Cache].
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		data: make(map[K]V),
	}
}

// Get returns the value stored for k, if any.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.data[k]
	return v, ok
}

// GetOr returns the value stored for k or computes, stores and returns it.
// Failed computations are not stored, so a later call retries f.
func (c *Cache[K, V]) GetOr(k K, f func() (V, error)) (V, error) {
	v, ok := c.Get(k)
	if ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok = c.data[k]
	if ok {
		return v, nil
	}

	v, err := f()
	if err != nil {
		return v, err
	}

	c.data[k] = v
	return v, nil
}

// All iterates over a snapshot of the cached entries.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	c.mu.RLock()
	snapshot := make(map[K]V, len(c.data))
	for k, v := range c.data {
		snapshot[k] = v
	}
	c.mu.RUnlock()

	return func(yield func(K, V) bool) {
		for k, v := range snapshot {
			if !yield(k, v) {
				return
			}
		}
	}
}
