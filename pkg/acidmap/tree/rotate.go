package tree

import "github.com/ignatyevm/acid-map/pkg/acidmap/node"

func height[K, V any](n *node.Node[K, V]) int8 {
	if n == nil {
		return 0
	}

	return n.Height
}

func updateHeight[K, V any](n *node.Node[K, V]) {
	if n != nil {
		n.Height = max(height(n.Left), height(n.Right)) + 1
	}
}

func balanceFactor[K, V any](n *node.Node[K, V]) int {
	if n == nil {
		return 0
	}

	return int(height(n.Left)) - int(height(n.Right))
}

// rotateLeft rotates the subtree rooted at n to the left and returns the new
// subtree root. Parent links of all three involved nodes are fixed up; the
// caller re-links the returned node into n's old parent.
func (t *Tree[K, V]) rotateLeft(n *node.Node[K, V]) *node.Node[K, V] {
	r := n.Right

	node.SetRight(n, r.Left)
	if r.Left != nil {
		node.SetParent(r.Left, n)
	}

	node.SetLeft(r, n)
	node.SetParent(r, n.Parent)
	node.SetParent(n, r)

	updateHeight(n)
	updateHeight(r)

	return r
}

// rotateRight is the mirror image of rotateLeft.
func (t *Tree[K, V]) rotateRight(n *node.Node[K, V]) *node.Node[K, V] {
	l := n.Left

	node.SetLeft(n, l.Right)
	if l.Right != nil {
		node.SetParent(l.Right, n)
	}

	node.SetRight(l, n)
	node.SetParent(l, n.Parent)
	node.SetParent(n, l)

	updateHeight(n)
	updateHeight(l)

	return l
}

// rebalance restores the AVL invariant at n and returns the (possibly new)
// subtree root.
func (t *Tree[K, V]) rebalance(n *node.Node[K, V]) *node.Node[K, V] {
	switch balanceFactor(n) {
	case 2:
		if balanceFactor(n.Left) == -1 {
			node.SetLeft(n, t.rotateLeft(n.Left))
		}

		n = t.rotateRight(n)
	case -2:
		if balanceFactor(n.Right) == 1 {
			node.SetRight(n, t.rotateRight(n.Right))
		}

		n = t.rotateLeft(n)
	}

	updateHeight(n)

	return n
}

// rebalancePath walks from n up to the root, rebalancing at every step and
// re-linking each (possibly new) subtree root into its parent on the side n
// occupied before the rotation. The root itself is rebalanced last.
func (t *Tree[K, V]) rebalancePath(n *node.Node[K, V]) {
	if n == nil {
		return
	}

	for n != t.root {
		leftSide := !n.IsRightChild()

		n = t.rebalance(n)

		if leftSide {
			node.SetLeft(n.Parent, n)
		} else {
			node.SetRight(n.Parent, n)
		}

		n = n.Parent
	}

	t.setRoot(t.rebalance(t.root))
}
