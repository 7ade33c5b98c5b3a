package acidmap

import "github.com/ignatyevm/acid-map/pkg/acidmap/node"

// Iterator is a position in the map: either the end sentinel or a handle on a
// node, possibly one that has been erased since the iterator last moved.
//
// An erased referent is still dereferenceable; its key and value outlive the
// tree membership for as long as the iterator holds them. Advancing off an
// erased referent re-enters the live tree at the nearest surviving key.
//
// An Iterator pins its node until Close is called. A single Iterator must not
// be used from multiple goroutines at once; use Clone to give each goroutine
// its own position.
type Iterator[K, V any] struct {
	m    *Map[K, V]
	node *node.Node[K, V]
}

// newIter wraps n in a fresh iterator handle. Callers hold the map lock in
// either mode.
func (m *Map[K, V]) newIter(n *node.Node[K, V]) *Iterator[K, V] {
	node.Retain(n)

	return &Iterator[K, V]{m: m, node: n}
}

// Valid reports whether the iterator points at an element. The end iterator
// is not valid.
func (it *Iterator[K, V]) Valid() bool {
	return it.node != nil
}

// Key returns the referent's key. Panics on the end iterator.
func (it *Iterator[K, V]) Key() K {
	if it.node == nil {
		panic("acidmap: Key called on the end iterator")
	}

	return it.node.Key
}

// Value returns the referent's value. Panics on the end iterator.
func (it *Iterator[K, V]) Value() V {
	if it.node == nil {
		panic("acidmap: Value called on the end iterator")
	}

	it.m.mu.RLock()
	defer it.m.mu.RUnlock()

	return it.node.Value
}

// SetValue replaces the referent's value. Panics on the end iterator.
func (it *Iterator[K, V]) SetValue(v V) {
	if it.node == nil {
		panic("acidmap: SetValue called on the end iterator")
	}

	it.m.mu.Lock()
	defer it.m.mu.Unlock()

	it.node.Value = v
}

// Deleted reports whether the referent has been erased from the map since
// the iterator last moved. False for the end iterator.
func (it *Iterator[K, V]) Deleted() bool {
	if it.node == nil {
		return false
	}

	it.m.mu.RLock()
	defer it.m.mu.RUnlock()

	return it.node.Deleted
}

// Next advances to the next surviving key in map order and reports whether
// the iterator is still valid. From a live referent that is the in-order
// successor; from an erased one it is the smallest live key strictly greater
// than the referent's, located from the current root. Advancing the end
// iterator is a no-op returning false.
func (it *Iterator[K, V]) Next() bool {
	it.m.mu.RLock()
	defer it.m.mu.RUnlock()

	if it.node == nil {
		return false
	}

	if it.node.Deleted {
		it.move(it.m.tree.RightBound(it.node.Key))
	} else {
		it.move(node.Successor(it.node))
	}

	return it.node != nil
}

// Prev moves to the previous surviving key in map order, symmetrically to
// Next. Moving the end iterator is a no-op returning false.
func (it *Iterator[K, V]) Prev() bool {
	it.m.mu.RLock()
	defer it.m.mu.RUnlock()

	if it.node == nil {
		return false
	}

	if it.node.Deleted {
		it.move(it.m.tree.LeftBound(it.node.Key))
	} else {
		it.move(node.Predecessor(it.node))
	}

	return it.node != nil
}

// move swaps the handle from the current node to n. Callers hold the map
// lock; handle counts themselves are atomic, so the read side suffices.
func (it *Iterator[K, V]) move(n *node.Node[K, V]) {
	node.Retain(n)
	node.Release(it.node, it.m.tree.Alloc())
	it.node = n
}

// Clone returns an independent iterator at the same position.
func (it *Iterator[K, V]) Clone() *Iterator[K, V] {
	it.m.mu.RLock()
	defer it.m.mu.RUnlock()

	return it.m.newIter(it.node)
}

// Close releases the iterator's handle on its node. Idempotent. Closing the
// last handle on an erased node returns it to the allocator.
func (it *Iterator[K, V]) Close() {
	it.m.mu.RLock()
	defer it.m.mu.RUnlock()

	if it.node != nil {
		node.Release(it.node, it.m.tree.Alloc())
		it.node = nil
	}
}
