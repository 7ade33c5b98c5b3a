package acidmap_test

import (
	"errors"
	"testing"

	"github.com/dolthub/maphash"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ignatyevm/acid-map/pkg/acidmap"
)

var (
	errReadTornValue  = errors.New("read a value that does not match its key")
	errReadOutOfOrder = errors.New("traversal yielded keys out of order")
	errEraseMissed    = errors.New("eraser found its key already gone")
)

func TestParallelDisjointInserts(t *testing.T) {
	t.Parallel()

	const (
		workers = 4
		total   = 10000
	)

	m := acidmap.New[int, int]()

	var g errgroup.Group

	for w := 0; w < workers; w++ {
		lo := w * total / workers
		hi := (w + 1) * total / workers

		g.Go(func() error {
			for k := lo; k < hi; k++ {
				m.Store(k, k)
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
	require.Equal(t, total, m.Len())
	require.NoError(t, m.Verify(true))

	keys := collect(m)
	require.Len(t, keys, total)

	for i, k := range keys {
		require.Equal(t, i, k)
	}
}

// Writers racing on the same keys: each key is claimed by exactly one Insert.
func TestParallelContendedInserts(t *testing.T) {
	t.Parallel()

	const (
		workers = 8
		total   = 2000
	)

	m := acidmap.New[int, int]()
	claimed := make([][]int, workers)

	var g errgroup.Group

	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for k := 0; k < total; k++ {
				it, inserted := m.Insert(k, w)
				it.Close()

				if inserted {
					claimed[w] = append(claimed[w], k)
				}
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
	require.Equal(t, total, m.Len())
	require.NoError(t, m.Verify(true))

	wins := 0
	for _, c := range claimed {
		wins += len(c)
	}

	require.Equal(t, total, wins, "every key inserted exactly once")
}

// Inserters, erasers, and readers running together: upon join the invariants
// hold and the surviving key set is exactly what the serialization implies,
// because the ranges are disjoint.
func TestMixedWorkload(t *testing.T) {
	t.Parallel()

	m := acidmap.New[int, int]()

	for k := 0; k < 10000; k++ {
		m.Store(k, k)
	}

	var g errgroup.Group

	for w := 0; w < 2; w++ {
		w := w

		g.Go(func() error {
			for k := 11000 + w; k < 20000; k += 2 {
				m.Store(k, k)
			}

			return nil
		})

		g.Go(func() error {
			for k := w; k < 10000; k += 2 {
				if !m.Delete(k) {
					return errEraseMissed
				}
			}

			return nil
		})

		g.Go(func() error {
			for k := 0; k < 20000; k++ {
				if v, ok := m.Load(k); ok && v != k {
					return errReadTornValue
				}
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
	require.NoError(t, m.Verify(true))
	require.Equal(t, 9000, m.Len())

	keys := collect(m)
	for i, k := range keys {
		require.Equal(t, 11000+i, k)
	}
}

// Readers traverse through live iterators while writers erase underneath
// them: each traversal must observe strictly increasing keys and terminate.
func TestTraversalUnderErase(t *testing.T) {
	t.Parallel()

	m := acidmap.New[int, int]()

	const n = 5000

	for k := 0; k < n; k++ {
		m.Store(k, k)
	}

	var g errgroup.Group

	for w := 0; w < 2; w++ {
		g.Go(func() error {
			prev := -1

			it := m.Begin()
			defer it.Close()

			for it.Valid() {
				k := it.Key()
				if k <= prev {
					return errReadOutOfOrder
				}

				prev = k
				it.Next()
			}

			return nil
		})
	}

	g.Go(func() error {
		for k := n - 1; k >= 0; k-- {
			m.Delete(k)
		}

		return nil
	})

	require.NoError(t, g.Wait())
	require.Zero(t, m.Len())
	require.NoError(t, m.Verify(false))
}

// The workload driver partitions the key space across writers by hash, so
// writers never contend on a key yet every key has exactly one owner.
func TestHashPartitionedWorkload(t *testing.T) {
	t.Parallel()

	const (
		writers = 4
		total   = 8000
	)

	m := acidmap.New[uint64, int]()
	hasher := maphash.NewHasher[uint64]()

	var g errgroup.Group

	for w := 0; w < writers; w++ {
		w := w
		g.Go(func() error {
			for k := uint64(0); k < total; k++ {
				if hasher.Hash(k)%writers != uint64(w) {
					continue
				}

				m.Store(k, w)

				if k%3 == 0 {
					m.Delete(k)
				}
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
	require.NoError(t, m.Verify(true))

	want := 0
	for k := uint64(0); k < total; k++ {
		if k%3 != 0 {
			want++
		}
	}

	require.Equal(t, want, m.Len())
}
