package tree

import (
	"github.com/ignatyevm/acid-map/internal/debug"
	"github.com/ignatyevm/acid-map/pkg/acidmap/node"
)

// Erase unlinks n from the tree, marks it deleted, and rebalances. The node's
// own outgoing links are left in place: iterators still positioned on n keep
// it alive and use the retained parent link to re-enter the live tree. When
// the last handle drops, the node goes back to the allocator.
//
// The caller must pass a live node.
func (t *Tree[K, V]) Erase(n *node.Node[K, V]) {
	debug.Assert(!n.Deleted, "erase of an already deleted node")

	if debug.Enabled {
		debug.Log("erase", "key=%v refs=%d", n.Key, n.Refs.Load())
	}

	parent := n.Parent

	var replacement, pivot *node.Node[K, V]

	if n.Left == nil || n.Right == nil {
		// At most one child: splice the child (possibly nil) into n's place.
		if n.Left != nil {
			replacement = n.Left
		} else {
			replacement = n.Right
		}

		if replacement != nil {
			node.SetParent(replacement, parent)
		}

		t.replaceChild(parent, n, replacement)
		pivot = parent
	} else {
		// Two children: splice the in-order successor into n's place. The
		// successor is the minimum of the right subtree and has no left child.
		replacement = node.Min(n.Right)
		rparent := replacement.Parent

		node.SetLeft(replacement, n.Left)
		node.SetParent(n.Left, replacement)
		t.replaceChild(parent, n, replacement)
		pivot = replacement

		if n.Right != replacement {
			// The successor sat deeper in the right subtree as a left
			// descendant: hand its right subtree to its old parent, then take
			// over n's right subtree.
			if replacement.Right != nil {
				node.SetParent(replacement.Right, rparent)
			}

			node.SetLeft(rparent, replacement.Right)
			node.SetRight(replacement, n.Right)
			node.SetParent(n.Right, replacement)
			pivot = rparent
		}

		node.SetParent(replacement, parent)
	}

	n.Deleted = true

	if n == t.root {
		t.setRoot(replacement)
	}

	t.size--
	updateHeight(pivot)
	t.rebalancePath(pivot)

	node.Reclaim(n, t.alloc)
}

// Clear erases every element through the regular erase path, so iterators
// parked on any of them observe a tombstone and transition to the end
// position on their next advance.
func (t *Tree[K, V]) Clear() {
	for t.root != nil {
		t.Erase(t.root)
	}
}

// replaceChild swaps newChild for oldChild under parent. A nil parent means
// oldChild was the root, which setRoot handles separately.
func (t *Tree[K, V]) replaceChild(parent, oldChild, newChild *node.Node[K, V]) {
	if parent == nil {
		return
	}

	if oldChild.IsLeftChild() {
		node.SetLeft(parent, newChild)
	} else {
		node.SetRight(parent, newChild)
	}
}
