package node

import "github.com/ignatyevm/acid-map/internal/xsync"

// Allocator creates and destroys nodes.
//
// New allocates a node and constructs it with the given key and value; Free
// destroys a node whose handle count has reached zero. Both are only called
// while the owning map's lock serializes structural mutation, so an Allocator
// does not need to be safe for unsynchronized use beyond what sync.Pool
// already provides.
type Allocator[K, V any] interface {
	New(key K, value V) *Node[K, V]
	Free(*Node[K, V])
}

// Heap allocates nodes from the Go heap and leaves reclamation to the garbage
// collector. The zero value is ready to use.
type Heap[K, V any] struct{}

func (Heap[K, V]) New(key K, value V) *Node[K, V] {
	return &Node[K, V]{Key: key, Value: value, Height: 1}
}

func (Heap[K, V]) Free(*Node[K, V]) {}

// Recycled keeps freed nodes on a typed free list for reuse. The zero value
// is ready to use.
type Recycled[K, V any] struct {
	pool xsync.Pool[Node[K, V]]
}

func (r *Recycled[K, V]) New(key K, value V) *Node[K, V] {
	n := r.pool.Get()
	n.Key = key
	n.Value = value
	n.Height = 1

	return n
}

// Free scrubs n before pooling it so a cached node does not pin the erased
// key, value, or its former neighbours.
func (r *Recycled[K, V]) Free(n *Node[K, V]) {
	var (
		zeroK K
		zeroV V
	)

	n.Key = zeroK
	n.Value = zeroV
	n.Left = nil
	n.Right = nil
	n.Parent = nil
	n.Height = 0
	n.Deleted = false
	n.Refs.Store(0)

	r.pool.Put(n)
}
