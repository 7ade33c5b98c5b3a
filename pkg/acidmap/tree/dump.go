package tree

import (
	"fmt"
	"io"

	"github.com/ignatyevm/acid-map/pkg/acidmap/node"
)

// Dump writes an indented rendering of the tree to w, one node per line with
// its height and handle count. Debugging aid only.
func Dump[K, V any](w io.Writer, t *Tree[K, V]) {
	fmt.Fprintf(w, "tree len=%d\n", t.size)
	dumpNode(w, t.root, 0)
}

func dumpNode[K, V any](w io.Writer, n *node.Node[K, V], depth int) {
	if n == nil {
		return
	}

	dumpNode(w, n.Right, depth+1)

	for i := 0; i < depth; i++ {
		io.WriteString(w, "    ")
	}
	fmt.Fprintf(w, "%v h=%d refs=%d\n", n.Key, n.Height, n.Refs.Load())

	dumpNode(w, n.Left, depth+1)
}
