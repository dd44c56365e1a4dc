package quadtree

import (
	"math/rand"
	"sort"
	"testing"

	"go.viam.com/test"

	"quadmap/internal/geom"
)

func mustTree(t *testing.T, boundary geom.Rect, capacity uint) *QuadTree {
	t.Helper()
	tr, err := NewQuadTree(boundary, capacity)
	test.That(t, err, test.ShouldBeNil)
	return tr
}

func TestNewQuadTreeValidation(t *testing.T) {
	boundary := geom.Rect{X: 0, Y: 0, W: 10, H: 10}

	_, err := NewQuadTree(boundary, 0)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewQuadTree(geom.Rect{X: 0, Y: 0, W: 0, H: 10}, 4)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewQuadTree(geom.Rect{X: 0, Y: 0, W: 10, H: -1}, 4)
	test.That(t, err, test.ShouldNotBeNil)

	tr, err := NewQuadTree(boundary, 4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tr.Boundary(), test.ShouldResemble, boundary)
	test.That(t, tr.Capacity(), test.ShouldEqual, uint(4))
	test.That(t, tr.Divided(), test.ShouldBeFalse)
}

func TestCapacityTrigger(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 4)

	pts := []geom.Point{{X: 1, Y: 1}, {X: -2, Y: 3}, {X: 4, Y: -4}, {X: -5, Y: -5}}
	for _, p := range pts {
		test.That(t, tr.InsertPoint(p), test.ShouldBeTrue)
	}
	test.That(t, tr.Divided(), test.ShouldBeFalse)
	test.That(t, tr.Len(), test.ShouldEqual, 4)

	test.That(t, tr.InsertPoint(geom.Point{X: 7, Y: 7}), test.ShouldBeTrue)
	test.That(t, tr.Divided(), test.ShouldBeTrue)
	test.That(t, tr.Len(), test.ShouldEqual, 5)

	// the four children tile the parent exactly
	test.That(t, tr.Northeast().Boundary(), test.ShouldResemble, geom.Rect{X: 5, Y: 5, W: 5, H: 5})
	test.That(t, tr.Northwest().Boundary(), test.ShouldResemble, geom.Rect{X: -5, Y: 5, W: 5, H: 5})
	test.That(t, tr.Southeast().Boundary(), test.ShouldResemble, geom.Rect{X: 5, Y: -5, W: 5, H: 5})
	test.That(t, tr.Southwest().Boundary(), test.ShouldResemble, geom.Rect{X: -5, Y: -5, W: 5, H: 5})
	for _, child := range []*QuadTree{tr.Northeast(), tr.Northwest(), tr.Southeast(), tr.Southwest()} {
		test.That(t, child.Capacity(), test.ShouldEqual, tr.Capacity())
		test.That(t, child.Divided(), test.ShouldBeFalse)
	}
}

func TestInsertRouting(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 4)
	for _, p := range []geom.Point{{X: 1, Y: 1}, {X: -2, Y: 3}, {X: 4, Y: -4}, {X: -5, Y: -5}} {
		tr.InsertPoint(p)
	}
	tr.InsertPoint(geom.Point{X: 7, Y: 7, Label: "ne"})

	// the overflow point landed in the northeast quadrant only
	test.That(t, tr.Northeast().Len(), test.ShouldEqual, 1)
	test.That(t, tr.Northwest().Len(), test.ShouldEqual, 0)
	test.That(t, tr.Southeast().Len(), test.ShouldEqual, 0)
	test.That(t, tr.Southwest().Len(), test.ShouldEqual, 0)

	region := geom.Rect{X: 7, Y: 7, W: 0.5, H: 0.5}
	found := tr.QueryRegion(region)
	test.That(t, found, test.ShouldHaveLength, 1)
	test.That(t, found[0].Label, test.ShouldEqual, "ne")

	// descending into the northeast child alone finds it too
	test.That(t, tr.Northeast().QueryRegion(region), test.ShouldHaveLength, 1)
}

func TestPointsFrozenAfterSubdivision(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 2)
	first := []geom.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}
	for _, p := range first {
		tr.InsertPoint(p)
	}
	tr.InsertPoint(geom.Point{X: 3, Y: 3})

	// the pre-split points stay at the node; they are not redistributed
	test.That(t, tr.Points(), test.ShouldResemble, first)
	test.That(t, tr.Northeast().Len(), test.ShouldEqual, 1)

	// further inserts never grow the divided node's own slice
	tr.InsertPoint(geom.Point{X: -4, Y: 4})
	test.That(t, tr.Points(), test.ShouldHaveLength, 2)

	// queries still see frozen points at their node
	found := tr.QueryRegion(geom.Rect{X: 0, Y: 0, W: 10, H: 10})
	test.That(t, found, test.ShouldHaveLength, 4)
}

func TestSplitLinePointDropped(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 1)
	test.That(t, tr.InsertPoint(geom.Point{X: 1, Y: 1}), test.ShouldBeTrue)

	// (0, 5) sits exactly on the vertical split line: after subdivision the
	// strict containment test of every child rejects it
	test.That(t, tr.InsertPoint(geom.Point{X: 0, Y: 5}), test.ShouldBeFalse)
	test.That(t, tr.Divided(), test.ShouldBeTrue)
	test.That(t, tr.Len(), test.ShouldEqual, 1)
}

func TestOutOfBoundsInsertIsNoOp(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 4)
	tr.InsertPoint(geom.Point{X: 1, Y: 1})

	test.That(t, tr.InsertPoint(geom.Point{X: 100, Y: 100}), test.ShouldBeFalse)
	test.That(t, tr.InsertPoint(geom.Point{X: 10, Y: 0}), test.ShouldBeFalse) // on the boundary edge
	test.That(t, tr.Len(), test.ShouldEqual, 1)
	test.That(t, tr.Divided(), test.ShouldBeFalse)
}

func TestDuplicatePointsRetained(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 4)
	for i := 0; i < 6; i++ {
		test.That(t, tr.InsertPoint(geom.Point{X: 3, Y: 3}), test.ShouldBeTrue)
	}
	test.That(t, tr.Len(), test.ShouldEqual, 6)
	test.That(t, tr.QueryRegion(geom.Rect{X: 3, Y: 3, W: 1, H: 1}), test.ShouldHaveLength, 6)
}

func TestQueryCompletenessUndivided(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 8)
	pts := []geom.Point{{X: 1, Y: 1}, {X: -3, Y: 2}, {X: 6, Y: -6}, {X: -8, Y: -8}}
	for _, p := range pts {
		tr.InsertPoint(p)
	}
	test.That(t, tr.Divided(), test.ShouldBeFalse)

	region := geom.Rect{X: 0, Y: 0, W: 4, H: 4}
	var want []geom.Point
	for _, p := range pts {
		if region.ContainsPoint(p) {
			want = append(want, p)
		}
	}
	test.That(t, tr.QueryRegion(region), test.ShouldResemble, want)
}

func TestQueryFreshAccumulator(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 2)
	for _, p := range []geom.Point{{X: 5, Y: 5}, {X: -5, Y: 5}, {X: 5, Y: -5}, {X: -5, Y: -5}} {
		tr.InsertPoint(p)
	}

	east := tr.QueryRegion(geom.Rect{X: 5, Y: 0, W: 4, H: 10})
	west := tr.QueryRegion(geom.Rect{X: -5, Y: 0, W: 4, H: 10})
	test.That(t, east, test.ShouldHaveLength, 2)
	test.That(t, west, test.ShouldHaveLength, 2)
	for _, p := range east {
		test.That(t, p.X, test.ShouldEqual, 5.0)
	}
	for _, p := range west {
		test.That(t, p.X, test.ShouldEqual, -5.0)
	}

	// identical consecutive queries on an unmutated tree agree
	again := tr.QueryRegion(geom.Rect{X: 5, Y: 0, W: 4, H: 10})
	test.That(t, again, test.ShouldResemble, east)
}

func TestQueryEmptyAndDisjointRegions(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 4)
	test.That(t, tr.QueryRegion(geom.Rect{X: 0, Y: 0, W: 1, H: 1}), test.ShouldHaveLength, 0)

	tr.InsertPoint(geom.Point{X: 1, Y: 1})
	test.That(t, tr.QueryRegion(geom.Rect{X: 50, Y: 50, W: 1, H: 1}), test.ShouldHaveLength, 0)
}

func TestQueryTraversalOrder(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 1)
	// root holds "root"; the rest overflow into their quadrants
	tr.InsertPoint(geom.Point{X: 1, Y: 1, Label: "root"})
	tr.InsertPoint(geom.Point{X: 5, Y: 5, Label: "ne"})
	tr.InsertPoint(geom.Point{X: -5, Y: 5, Label: "nw"})
	tr.InsertPoint(geom.Point{X: 5, Y: -5, Label: "se"})
	tr.InsertPoint(geom.Point{X: -5, Y: -5, Label: "sw"})

	found := tr.QueryRegion(geom.Rect{X: 0, Y: 0, W: 10, H: 10})
	labels := make([]string, 0, len(found))
	for _, p := range found {
		labels = append(labels, p.Label)
	}
	// shallow before deep, then NE, NW, SE, SW
	test.That(t, labels, test.ShouldResemble, []string{"root", "ne", "nw", "se", "sw"})
}

func TestWalkAndCounters(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 1)
	test.That(t, tr.Nodes(), test.ShouldEqual, 1)
	test.That(t, tr.Height(), test.ShouldEqual, 1)

	tr.InsertPoint(geom.Point{X: 1, Y: 1})
	tr.InsertPoint(geom.Point{X: 7, Y: 7})
	test.That(t, tr.Nodes(), test.ShouldEqual, 5)
	test.That(t, tr.Height(), test.ShouldEqual, 2)

	visited := 0
	tr.Walk(func(n *QuadTree) bool {
		visited++
		return true
	})
	test.That(t, visited, test.ShouldEqual, 5)

	// early stop
	visited = 0
	tr.Walk(func(n *QuadTree) bool {
		visited++
		return false
	})
	test.That(t, visited, test.ShouldEqual, 1)
}

func TestLeaf(t *testing.T) {
	tr := mustTree(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, 1)
	tr.InsertPoint(geom.Point{X: 1, Y: 1})
	tr.InsertPoint(geom.Point{X: 7, Y: 7})

	test.That(t, tr.Leaf(geom.Point{X: 100, Y: 100}), test.ShouldBeNil)

	n := tr.Leaf(geom.Point{X: 7, Y: 7})
	test.That(t, n, test.ShouldNotBeNil)
	test.That(t, n.Boundary(), test.ShouldResemble, geom.Rect{X: 5, Y: 5, W: 5, H: 5})
}

func TestRandomQueriesMatchLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	boundary := geom.Rect{X: 0, Y: 0, W: 100, H: 100}
	tr := mustTree(t, boundary, 4)

	var inserted []geom.Point
	for i := 0; i < 2000; i++ {
		p := geom.Point{
			X: rng.Float64()*200 - 100,
			Y: rng.Float64()*200 - 100,
		}
		if tr.InsertPoint(p) {
			inserted = append(inserted, p)
		}
	}
	test.That(t, tr.Len(), test.ShouldEqual, len(inserted))

	sortPoints := func(pts []geom.Point) {
		sort.Slice(pts, func(i, j int) bool {
			if pts[i].X != pts[j].X {
				return pts[i].X < pts[j].X
			}
			return pts[i].Y < pts[j].Y
		})
	}

	for i := 0; i < 50; i++ {
		region := geom.Rect{
			X: rng.Float64()*200 - 100,
			Y: rng.Float64()*200 - 100,
			W: rng.Float64()*50 + 1,
			H: rng.Float64()*50 + 1,
		}
		got := tr.QueryRegion(region)
		want := make([]geom.Point, 0)
		for _, p := range inserted {
			if region.ContainsPoint(p) {
				want = append(want, p)
			}
		}
		sortPoints(got)
		sortPoints(want)
		test.That(t, got, test.ShouldResemble, want)
	}
}
