package tree

import "github.com/ignatyevm/acid-map/pkg/acidmap/node"

// Locate descends from the root looking for key. It returns the matching node
// and its parent, or a nil node and the would-be insertion parent when the key
// is absent.
func (t *Tree[K, V]) Locate(key K) (parent, found *node.Node[K, V]) {
	n := t.root

	for n != nil {
		if t.equal(n.Key, key) {
			return parent, n
		}

		parent = n
		if t.less(key, n.Key) {
			n = n.Left
		} else {
			n = n.Right
		}
	}

	return parent, nil
}

// Get returns the live node holding key, or nil.
func (t *Tree[K, V]) Get(key K) *node.Node[K, V] {
	_, found := t.Locate(key)
	return found
}

// RightBound returns the live node with the smallest key strictly greater
// than key, or nil if no such key exists. It consults the current root, so it
// is meaningful even for keys that are no longer in the tree.
func (t *Tree[K, V]) RightBound(key K) *node.Node[K, V] {
	var best *node.Node[K, V]

	for n := t.root; n != nil; {
		if t.less(key, n.Key) {
			best = n
			n = n.Left
		} else {
			n = n.Right
		}
	}

	return best
}

// LeftBound returns the live node with the largest key strictly less than
// key, or nil if no such key exists.
func (t *Tree[K, V]) LeftBound(key K) *node.Node[K, V] {
	var best *node.Node[K, V]

	for n := t.root; n != nil; {
		if t.less(n.Key, key) {
			best = n
			n = n.Right
		} else {
			n = n.Left
		}
	}

	return best
}
