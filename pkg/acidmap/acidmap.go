// Package acidmap provides an ordered map that is safe for concurrent use
// and whose iterators survive erasure of the element they point at.
//
// The map is an AVL tree guarded by a single reader/writer lock. Erasing a
// key unlinks its node but only marks it deleted; iterators positioned on the
// node keep it alive through reference counting and still see its key and
// value. Advancing such an iterator re-enters the live tree at the nearest
// surviving key in map order.
//
// Iterators are resources: every iterator handed out by the map pins its node
// until Close is called.
package acidmap

import (
	"cmp"
	"errors"
	"sync"

	"github.com/ignatyevm/acid-map/pkg/acidmap/node"
	"github.com/ignatyevm/acid-map/pkg/acidmap/tree"
)

// ErrKeyNotFound is returned by At for keys not in the map.
var ErrKeyNotFound = errors.New("acidmap: key not found")

// Map is a concurrent ordered map from K to V.
//
// All operations that touch the tree, including iterator movement and value
// access, synchronize on one reader/writer lock: lookups and iterator reads
// run in parallel, structural mutation is exclusive. Keys never change after
// insertion, so Iterator.Key reads them without the lock.
type Map[K, V any] struct {
	mu   sync.RWMutex
	tree *tree.Tree[K, V]
}

// Option configures a Map.
type Option[K, V any] func(*options[K, V])

type options[K, V any] struct {
	alloc node.Allocator[K, V]
}

// WithAllocator makes the map allocate its nodes from alloc instead of the
// Go heap. See [node.Recycled] for a pooling allocator.
func WithAllocator[K, V any](alloc node.Allocator[K, V]) Option[K, V] {
	return func(o *options[K, V]) {
		o.alloc = alloc
	}
}

// New returns an empty map over a naturally ordered key type.
func New[K cmp.Ordered, V any](opts ...Option[K, V]) *Map[K, V] {
	return NewFunc[K, V](cmp.Less[K], opts...)
}

// NewFunc returns an empty map ordered by less, which must be a strict weak
// ordering. Key equality is derived from it: two keys are equal when neither
// is less than the other.
func NewFunc[K, V any](less func(K, K) bool, opts ...Option[K, V]) *Map[K, V] {
	o := options[K, V]{alloc: node.Heap[K, V]{}}
	for _, opt := range opts {
		opt(&o)
	}

	return &Map[K, V]{tree: tree.New(less, o.alloc)}
}

// Verify checks the structural invariants of the live tree under the read
// lock. With strict set it additionally requires exact reference-count
// accounting, which only holds when no iterators or tombstones are
// outstanding. Testing and debugging aid.
func (m *Map[K, V]) Verify(strict bool) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if strict {
		return tree.VerifyRefs(m.tree)
	}

	return tree.Verify(m.tree)
}
