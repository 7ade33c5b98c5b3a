//go:build go1.23

package acidmap

import "iter"

// All returns an iterator over the map's elements in key order. The sequence
// takes the read lock per step, not for the whole traversal, so elements
// inserted or erased mid-range may or may not be observed; each yielded
// element was live when visited.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := m.Begin()
		defer it.Close()

		for it.Valid() {
			if !yield(it.Key(), it.Value()) {
				return
			}

			it.Next()
		}
	}
}

// Keys returns an iterator over the keys in increasing order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the values in key order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		it := m.Begin()
		defer it.Close()

		for it.Valid() {
			if !yield(it.Value()) {
				return
			}

			it.Next()
		}
	}
}
