// Package xsync holds typed wrappers over sync primitives.
package xsync

import "sync"

// Pool is a strongly typed free list over sync.Pool.
type Pool[T any] struct {
	impl sync.Pool
}

// Get returns a cached *T, or a freshly zeroed one if the pool is empty.
func (p *Pool[T]) Get() *T {
	if v, ok := p.impl.Get().(*T); ok {
		return v
	}

	return new(T)
}

// Put hands v back to the pool. The caller must not touch v afterwards.
func (p *Pool[T]) Put(v *T) {
	p.impl.Put(v)
}
