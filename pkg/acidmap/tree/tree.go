// Package tree implements the single-threaded AVL engine underneath the map.
//
// The engine owns the root handle and the live-node count. All structural
// mutation flows through the counted link setters of the node package, which
// keeps every node's handle count in step with the links that reference it.
// Synchronization is the caller's concern; the map facade serializes calls
// into this package under its lock.
package tree

import "github.com/ignatyevm/acid-map/pkg/acidmap/node"

// Tree is an AVL tree over caller-ordered keys.
type Tree[K, V any] struct {
	root  *node.Node[K, V]
	size  int
	less  func(K, K) bool
	alloc node.Allocator[K, V]
}

// New returns an empty tree ordered by less, allocating nodes from alloc.
func New[K, V any](less func(K, K) bool, alloc node.Allocator[K, V]) *Tree[K, V] {
	return &Tree[K, V]{less: less, alloc: alloc}
}

// Len returns the number of live nodes.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Alloc returns the tree's node allocator.
func (t *Tree[K, V]) Alloc() node.Allocator[K, V] {
	return t.alloc
}

// Min returns the leftmost live node, or nil if the tree is empty.
func (t *Tree[K, V]) Min() *node.Node[K, V] {
	if t.root == nil {
		return nil
	}

	return node.Min(t.root)
}

// Max returns the rightmost live node, or nil if the tree is empty.
func (t *Tree[K, V]) Max() *node.Node[K, V] {
	if t.root == nil {
		return nil
	}

	return node.Max(t.root)
}

func (t *Tree[K, V]) equal(a, b K) bool {
	return !t.less(a, b) && !t.less(b, a)
}

// setRoot moves the root handle to n. No-op if n already is the root.
func (t *Tree[K, V]) setRoot(n *node.Node[K, V]) {
	if t.root == n {
		return
	}

	node.Unref(t.root)
	t.root = n
	node.Retain(n)
}
