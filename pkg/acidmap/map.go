package acidmap

import "github.com/ignatyevm/acid-map/pkg/acidmap/node"

// Find returns an iterator positioned on key, or the end iterator if the key
// is absent.
func (m *Map[K, V]) Find(key K) *Iterator[K, V] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.newIter(m.tree.Get(key))
}

// Load returns the value stored under key.
func (m *Map[K, V]) Load(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n := m.tree.Get(key); n != nil {
		return n.Value, true
	}

	var zero V

	return zero, false
}

// Contains reports whether key is in the map.
func (m *Map[K, V]) Contains(key K) bool {
	return m.Count(key) == 1
}

// Count returns the number of elements stored under key: 0 or 1.
func (m *Map[K, V]) Count(key K) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.tree.Get(key) != nil {
		return 1
	}

	return 0
}

// At returns the value stored under key, or ErrKeyNotFound.
func (m *Map[K, V]) At(key K) (V, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n := m.tree.Get(key); n != nil {
		return n.Value, nil
	}

	var zero V

	return zero, ErrKeyNotFound
}

// Index returns a pointer to the value slot for key, inserting a zero value
// first if the key is absent. The pointer stays meaningful until the element
// is erased; writes through it race with other accessors unless the caller
// serializes them.
func (m *Map[K, V]) Index(key K) *V {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, _ := m.tree.TryEmplace(key, func() (zero V) { return })

	return &n.Value
}

// Insert adds key with value and returns an iterator to the element. If the
// key is already present the map is unchanged and the iterator points at the
// existing element, with false.
func (m *Map[K, V]) Insert(key K, value V) (*Iterator[K, V], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, inserted := m.tree.Insert(key, value)

	return m.newIter(n), inserted
}

// Emplace is Insert with eager node construction: the node is built before
// the lookup and handed back to the allocator on a duplicate.
func (m *Map[K, V]) Emplace(key K, value V) (*Iterator[K, V], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, inserted := m.tree.Emplace(key, value)

	return m.newIter(n), inserted
}

// TryEmplace adds key with a value produced by make, which is only called
// when the key is absent. make must not reenter the map.
func (m *Map[K, V]) TryEmplace(key K, make func() V) (*Iterator[K, V], bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, inserted := m.tree.TryEmplace(key, make)

	return m.newIter(n), inserted
}

// Store sets the value under key, inserting the key if needed.
func (m *Map[K, V]) Store(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n := m.tree.Get(key); n != nil {
		n.Value = value
		return
	}

	m.tree.Insert(key, value)
}

// Delete erases key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.tree.Get(key)
	if n == nil {
		return false
	}

	m.tree.Erase(n)

	return true
}

// Erase removes the element it points at and returns an iterator positioned
// at its in-order successor. If the referent was already erased, Erase is a
// no-op returning the end iterator.
//
// The first tombstone check runs under the read lock; the lock is then
// retaken exclusively, the tombstone is checked again in case another erase
// slipped in between, and the successor is computed and the node removed
// under that exclusive lock.
func (m *Map[K, V]) Erase(it *Iterator[K, V]) *Iterator[K, V] {
	m.mu.RLock()
	n := it.node
	dead := n == nil || n.Deleted
	m.mu.RUnlock()

	if dead {
		return m.End()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if n.Deleted {
		return m.End()
	}

	next := node.Successor(n)
	m.tree.Erase(n)

	return m.newIter(next)
}

// Begin returns an iterator on the smallest key, or the end iterator for an
// empty map.
func (m *Map[K, V]) Begin() *Iterator[K, V] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.newIter(m.tree.Min())
}

// End returns the end iterator.
func (m *Map[K, V]) End() *Iterator[K, V] {
	return &Iterator[K, V]{m: m}
}

// Len returns the number of live elements.
func (m *Map[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.tree.Len()
}

// Empty reports whether the map has no elements.
func (m *Map[K, V]) Empty() bool {
	return m.Len() == 0
}

// Clear erases every element through the regular erase path. Iterators held
// across Clear observe tombstones and become end iterators on their next
// advance in either direction.
func (m *Map[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tree.Clear()
}
