package tree

import (
	"github.com/ignatyevm/acid-map/internal/debug"
	"github.com/ignatyevm/acid-map/pkg/acidmap/node"
)

// Insert adds key with value. If the key is already present the existing node
// is returned unchanged with false.
func (t *Tree[K, V]) Insert(key K, value V) (*node.Node[K, V], bool) {
	parent, found := t.Locate(key)
	if found != nil {
		return found, false
	}

	n := t.alloc.New(key, value)
	t.attach(parent, n)

	return n, true
}

// Emplace constructs the node before looking the key up, and frees it again
// on a duplicate.
func (t *Tree[K, V]) Emplace(key K, value V) (*node.Node[K, V], bool) {
	n := t.alloc.New(key, value)

	parent, found := t.Locate(key)
	if found != nil {
		t.alloc.Free(n)
		return found, false
	}

	t.attach(parent, n)

	return n, true
}

// TryEmplace adds key with a value produced by make. make is only called when
// the key is absent.
func (t *Tree[K, V]) TryEmplace(key K, make func() V) (*node.Node[K, V], bool) {
	parent, found := t.Locate(key)
	if found != nil {
		return found, false
	}

	n := t.alloc.New(key, make())
	t.attach(parent, n)

	return n, true
}

// attach installs the freshly constructed node n below parent (nil parent
// means the tree is empty and n becomes the root), then restores the AVL
// invariant along the path to the root.
func (t *Tree[K, V]) attach(parent, n *node.Node[K, V]) {
	t.size++

	if debug.Enabled {
		debug.Log("insert", "key=%v size=%d", n.Key, t.size)
	}

	if parent == nil {
		t.setRoot(n)
		return
	}

	node.SetParent(n, parent)
	if t.less(n.Key, parent.Key) {
		node.SetLeft(parent, n)
	} else {
		node.SetRight(parent, n)
	}

	updateHeight(parent)
	t.rebalancePath(parent)
}
