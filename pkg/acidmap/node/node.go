// Package node implements the reference-counted tree node shared by the AVL
// engine and the map's iterators.
//
// A node stays alive for as long as anything holds a handle on it: the tree
// links (parent, left, right) each count as one handle, and every iterator
// positioned on the node counts as one more. Erasing a key only unlinks the
// node and marks it deleted; the record itself is reclaimed when the last
// handle drops. A deleted node keeps its outgoing parent link, which is how an
// iterator parked on it can still find its way back into the live tree.
package node

import "sync/atomic"

// Node is a single element of the tree.
//
// Key is immutable after construction. Value and the link fields are guarded
// by the owning map's lock. Refs is atomic because concurrent readers may
// acquire and drop handles in parallel under the read lock.
type Node[K, V any] struct {
	Key   K
	Value V

	Left   *Node[K, V]
	Right  *Node[K, V]
	Parent *Node[K, V]

	Height  int8
	Refs    atomic.Int32
	Deleted bool
}

// IsLeftChild reports whether n is the left child of its parent.
func (n *Node[K, V]) IsLeftChild() bool {
	return n.Parent != nil && n.Parent.Left == n
}

// IsRightChild reports whether n is the right child of its parent.
func (n *Node[K, V]) IsRightChild() bool {
	return n.Parent != nil && n.Parent.Right == n
}

func addRef[K, V any](n *Node[K, V], delta int32) {
	if n != nil {
		n.Refs.Add(delta)
	}
}

// Retain records one more handle on n. Safe to call with nil.
func Retain[K, V any](n *Node[K, V]) {
	addRef(n, 1)
}

// Unref drops one handle on n without attempting reclamation. Callers use it
// where the target is known to be either still live or visited by a later
// Reclaim. Safe to call with nil.
func Unref[K, V any](n *Node[K, V]) {
	addRef(n, -1)
}

// Release drops one handle on n, reclaiming it if that was the last one.
// Safe to call with nil.
//
// Handles are dropped by concurrent readers, so the zero check must be the
// decrement itself: only the caller whose decrement crosses zero may free.
func Release[K, V any](n *Node[K, V], alloc Allocator[K, V]) {
	if n == nil {
		return
	}

	if n.Refs.Add(-1) != 0 || !n.Deleted {
		return
	}

	free(n, alloc)
}

// Reclaim frees n if it is deleted and no handles remain. The erase path
// calls it under the write lock for nodes with no outstanding iterators, so
// the load cannot race other handle traffic.
func Reclaim[K, V any](n *Node[K, V], alloc Allocator[K, V]) {
	if n == nil || !n.Deleted || n.Refs.Load() != 0 {
		return
	}

	free(n, alloc)
}

// free destroys n, whose caller established sole ownership by observing its
// count reach zero. Destruction releases the node's own three links; a link
// target is followed further only by the decrement that crosses zero, so each
// node in the cascade is freed exactly once. The cascade is driven by an
// explicit worklist rather than recursion.
func free[K, V any](n *Node[K, V], alloc Allocator[K, V]) {
	work := []*Node[K, V]{n}

	for len(work) > 0 {
		n := work[len(work)-1]
		work = work[:len(work)-1]

		for _, link := range []*Node[K, V]{n.Parent, n.Left, n.Right} {
			if link != nil && link.Refs.Add(-1) == 0 && link.Deleted {
				work = append(work, link)
			}
		}

		alloc.Free(n)
	}
}

// SetParent rewires n's parent link to p, moving the handle count from the old
// target to the new one.
func SetParent[K, V any](n, p *Node[K, V]) {
	addRef(n.Parent, -1)
	n.Parent = p
	addRef(p, 1)
}

// SetLeft rewires p's left child link to c.
func SetLeft[K, V any](p, c *Node[K, V]) {
	addRef(p.Left, -1)
	p.Left = c
	addRef(c, 1)
}

// SetRight rewires p's right child link to c.
func SetRight[K, V any](p, c *Node[K, V]) {
	addRef(p.Right, -1)
	p.Right = c
	addRef(c, 1)
}
