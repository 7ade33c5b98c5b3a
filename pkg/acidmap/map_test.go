package acidmap_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ignatyevm/acid-map/pkg/acidmap"
	"github.com/ignatyevm/acid-map/pkg/acidmap/node"
)

func TestMap(t *testing.T) {
	Convey("Given an empty map", t, func() {
		m := acidmap.New[int, string]()

		So(m.Empty(), ShouldBeTrue)
		So(m.Len(), ShouldEqual, 0)

		Convey("Begin equals end", func() {
			it := m.Begin()
			defer it.Close()

			So(it.Valid(), ShouldBeFalse)
			So(m.End().Valid(), ShouldBeFalse)
		})

		Convey("When inserting elements", func() {
			it, inserted := m.Insert(2, "two")
			it.Close()
			So(inserted, ShouldBeTrue)

			it, inserted = m.Insert(1, "one")
			it.Close()
			So(inserted, ShouldBeTrue)

			So(m.Len(), ShouldEqual, 2)
			So(m.Verify(true), ShouldBeNil)

			Convey("Lookups see them", func() {
				v, ok := m.Load(1)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, "one")

				So(m.Contains(2), ShouldBeTrue)
				So(m.Count(2), ShouldEqual, 1)
				So(m.Contains(3), ShouldBeFalse)
				So(m.Count(3), ShouldEqual, 0)
			})

			Convey("Find returns a positioned iterator", func() {
				it := m.Find(2)
				defer it.Close()

				So(it.Valid(), ShouldBeTrue)
				So(it.Key(), ShouldEqual, 2)
				So(it.Value(), ShouldEqual, "two")

				missing := m.Find(3)
				defer missing.Close()

				So(missing.Valid(), ShouldBeFalse)
			})

			Convey("A duplicate insert is a no-op", func() {
				it, inserted := m.Insert(1, "uno")
				defer it.Close()

				So(inserted, ShouldBeFalse)
				So(it.Value(), ShouldEqual, "one")
				So(m.Len(), ShouldEqual, 2)
			})

			Convey("Store overwrites present keys and inserts new ones", func() {
				m.Store(1, "uno")

				v, _ := m.Load(1)
				So(v, ShouldEqual, "uno")

				m.Store(3, "three")
				So(m.Len(), ShouldEqual, 3)
			})

			Convey("Delete removes and reports presence", func() {
				So(m.Delete(1), ShouldBeTrue)
				So(m.Delete(1), ShouldBeFalse)
				So(m.Delete(42), ShouldBeFalse)
				So(m.Len(), ShouldEqual, 1)
				So(m.Verify(true), ShouldBeNil)
			})

			Convey("Clear empties the map", func() {
				m.Clear()

				So(m.Empty(), ShouldBeTrue)
				So(m.Verify(true), ShouldBeNil)

				it := m.Begin()
				defer it.Close()
				So(it.Valid(), ShouldBeFalse)
			})
		})

		Convey("At distinguishes missing keys by error", func() {
			m.Store(1, "one")

			v, err := m.At(1)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "one")

			_, err = m.At(2)
			So(errors.Is(err, acidmap.ErrKeyNotFound), ShouldBeTrue)
		})

		Convey("Index inserts a zero value on the fly", func() {
			p := m.Index(7)
			So(*p, ShouldEqual, "")
			So(m.Len(), ShouldEqual, 1)

			*p = "seven"
			v, _ := m.Load(7)
			So(v, ShouldEqual, "seven")

			// Hitting the same key returns the same slot.
			So(m.Index(7) == p, ShouldBeTrue)
			So(m.Len(), ShouldEqual, 1)
		})

		Convey("TryEmplace builds the value only on a miss", func() {
			calls := 0
			make := func() string { calls++; return "built" }

			it, inserted := m.TryEmplace(1, make)
			it.Close()
			So(inserted, ShouldBeTrue)
			So(calls, ShouldEqual, 1)

			it, inserted = m.TryEmplace(1, make)
			it.Close()
			So(inserted, ShouldBeFalse)
			So(calls, ShouldEqual, 1)
		})

		Convey("Emplace leaves an existing element untouched", func() {
			it, inserted := m.Emplace(1, "one")
			it.Close()
			So(inserted, ShouldBeTrue)

			it, inserted = m.Emplace(1, "uno")
			it.Close()
			So(inserted, ShouldBeFalse)

			v, _ := m.Load(1)
			So(v, ShouldEqual, "one")
		})
	})

	Convey("Given a map with a custom ordering", t, func() {
		reverse := func(a, b int) bool { return b < a }
		m := acidmap.NewFunc[int, int](reverse)

		for _, k := range []int{3, 1, 2} {
			m.Store(k, k)
		}

		Convey("Traversal follows that ordering", func() {
			var keys []int

			it := m.Begin()
			defer it.Close()

			for it.Valid() {
				keys = append(keys, it.Key())
				it.Next()
			}

			So(keys, ShouldResemble, []int{3, 2, 1})
		})
	})

	Convey("Given a map on a recycling allocator", t, func() {
		m := acidmap.New[int, int](acidmap.WithAllocator[int, int](&node.Recycled[int, int]{}))

		for k := 0; k < 100; k++ {
			m.Store(k, k)
		}
		for k := 0; k < 100; k += 2 {
			So(m.Delete(k), ShouldBeTrue)
		}

		So(m.Len(), ShouldEqual, 50)
		So(m.Verify(true), ShouldBeNil)

		for k := 0; k < 100; k += 2 {
			m.Store(k, k)
		}

		So(m.Len(), ShouldEqual, 100)
		So(m.Verify(true), ShouldBeNil)
	})
}
