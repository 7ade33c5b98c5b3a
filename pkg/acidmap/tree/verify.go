package tree

import (
	"fmt"

	"github.com/ignatyevm/acid-map/pkg/acidmap/node"
)

// Verify checks the structural invariants of the live tree and returns the
// first violation found:
//
//   - in-order traversal yields strictly increasing keys
//   - parent/child links are mutually consistent and the root has no parent
//   - stored heights match recomputed subtree heights
//   - every balance factor is within [-1, 1]
//   - no reachable node carries a tombstone
//   - the live count matches the number of reachable nodes
//   - every reachable node holds at least the handles its links account for
//
// It is meant for tests and debugging; it walks the whole tree.
func Verify[K, V any](t *Tree[K, V]) error {
	if t.root != nil && t.root.Parent != nil {
		return fmt.Errorf("root %v has a parent", t.root.Key)
	}

	count := 0

	var (
		prev    *node.Node[K, V]
		inorder func(n *node.Node[K, V]) error
	)

	inorder = func(n *node.Node[K, V]) error {
		if n == nil {
			return nil
		}

		if err := inorder(n.Left); err != nil {
			return err
		}

		if prev != nil && !t.less(prev.Key, n.Key) {
			return fmt.Errorf("keys out of order: %v before %v", prev.Key, n.Key)
		}
		prev = n
		count++

		return inorder(n.Right)
	}

	if err := inorder(t.root); err != nil {
		return err
	}

	if count != t.size {
		return fmt.Errorf("size is %d, found %d reachable nodes", t.size, count)
	}

	return verifyNode(t.root)
}

func verifyNode[K, V any](n *node.Node[K, V]) error {
	if n == nil {
		return nil
	}

	if n.Deleted {
		return fmt.Errorf("deleted node %v is reachable", n.Key)
	}

	if n.Left != nil && n.Left.Parent != n {
		return fmt.Errorf("left child %v of %v points back at %v", n.Left.Key, n.Key, n.Left.Parent.Key)
	}

	if n.Right != nil && n.Right.Parent != n {
		return fmt.Errorf("right child %v of %v points back at %v", n.Right.Key, n.Key, n.Right.Parent.Key)
	}

	lh, rh := deepHeight(n.Left), deepHeight(n.Right)

	if got, want := n.Height, max(lh, rh)+1; got != want {
		return fmt.Errorf("node %v stores height %d, subtree height is %d", n.Key, got, want)
	}

	if bf := lh - rh; bf < -1 || bf > 1 {
		return fmt.Errorf("node %v has balance factor %d", n.Key, bf)
	}

	if got, want := n.Refs.Load(), linkedRefs(n); got < want {
		return fmt.Errorf("node %v holds %d refs, links alone account for %d", n.Key, got, want)
	}

	if err := verifyNode(n.Left); err != nil {
		return err
	}

	return verifyNode(n.Right)
}

// VerifyRefs requires exact handle accounting on top of Verify: every
// reachable node's count must equal what the links of its neighbours
// contribute. That only holds at quiescence, when no iterators are
// outstanding and every tombstone has been reclaimed.
func VerifyRefs[K, V any](t *Tree[K, V]) error {
	if err := Verify(t); err != nil {
		return err
	}

	return verifyRefsNode(t.root)
}

func verifyRefsNode[K, V any](n *node.Node[K, V]) error {
	if n == nil {
		return nil
	}

	if got, want := n.Refs.Load(), linkedRefs(n); got != want {
		return fmt.Errorf("node %v holds %d refs, links account for %d", n.Key, got, want)
	}

	if err := verifyRefsNode(n.Left); err != nil {
		return err
	}

	return verifyRefsNode(n.Right)
}

func deepHeight[K, V any](n *node.Node[K, V]) int8 {
	if n == nil {
		return 0
	}

	return max(deepHeight(n.Left), deepHeight(n.Right)) + 1
}

// linkedRefs counts the handles held on n by the links of its neighbours: one
// for being somebody's child (or the root), one per child whose parent link
// points back.
func linkedRefs[K, V any](n *node.Node[K, V]) int32 {
	refs := int32(1)

	if n.Left != nil && n.Left.Parent == n {
		refs++
	}

	if n.Right != nil && n.Right.Parent == n {
		refs++
	}

	return refs
}
