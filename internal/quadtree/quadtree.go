// Package quadtree implements a point-region quadtree over labeled 2D
// points: a recursive spatial index that splits a bounded region into four
// quadrants whenever a node exceeds a fixed point capacity, and answers
// rectangular range queries by descending only into overlapping subtrees.
//
// The structure is single-threaded by design. Callers that share a tree
// across goroutines must serialize insertions externally; queries never
// mutate the tree and may run concurrently with each other.
package quadtree

import (
	"github.com/pkg/errors"

	"quadmap/internal/geom"
)

// QuadTree is one node of the index. The root is built with NewQuadTree;
// children are created lazily, exactly once, the first time an insert would
// push a node past its capacity.
//
// A node that has subdivided keeps the points it already held: they are
// never redistributed into the children, so a node's own slice is frozen
// from the moment it splits. Queries still see them, because every node
// reports its directly held points before recursing.
type QuadTree struct {
	boundary geom.Rect
	capacity uint
	points   []geom.Point
	divided  bool

	northeast *QuadTree
	northwest *QuadTree
	southeast *QuadTree
	southwest *QuadTree
}

// NewQuadTree creates a root node over boundary. capacity is the number of
// points a node holds directly before it subdivides; it is inherited by
// every descendant.
func NewQuadTree(boundary geom.Rect, capacity uint) (*QuadTree, error) {
	if capacity < 1 {
		return nil, errors.New("quadtree: capacity must be at least 1")
	}
	if boundary.W <= 0 || boundary.H <= 0 {
		return nil, errors.Errorf("quadtree: invalid boundary half-extents (%g, %g)", boundary.W, boundary.H)
	}
	return &QuadTree{
		boundary: boundary,
		capacity: capacity,
		points:   make([]geom.Point, 0, capacity),
	}, nil
}

// InsertPoint adds p to the subtree rooted at t and reports whether any
// node stored it. A point outside the boundary is silently dropped, not an
// error. Duplicates are retained.
//
// A point lying exactly on an internal split line fails the strict
// containment test of all four children and is dropped once this node has
// subdivided; InsertPoint returns false in that case.
func (t *QuadTree) InsertPoint(p geom.Point) bool {
	if !t.boundary.ContainsPoint(p) {
		return false
	}
	if len(t.points) < int(t.capacity) && !t.divided {
		t.points = append(t.points, p)
		return true
	}
	if !t.divided {
		t.subdivide()
	}
	// Forward to all four children; strict containment means at most one
	// accepts.
	ne := t.northeast.InsertPoint(p)
	nw := t.northwest.InsertPoint(p)
	se := t.southeast.InsertPoint(p)
	sw := t.southwest.InsertPoint(p)
	return ne || nw || se || sw
}

// subdivide creates the four children tiling the boundary. Runs at most
// once per node; the divided flag guards re-entry.
func (t *QuadTree) subdivide() {
	x := t.boundary.X
	y := t.boundary.Y
	w := t.boundary.W / 2
	h := t.boundary.H / 2

	t.northeast = t.child(geom.Rect{X: x + w, Y: y + h, W: w, H: h})
	t.northwest = t.child(geom.Rect{X: x - w, Y: y + h, W: w, H: h})
	t.southeast = t.child(geom.Rect{X: x + w, Y: y - h, W: w, H: h})
	t.southwest = t.child(geom.Rect{X: x - w, Y: y - h, W: w, H: h})
	t.divided = true
}

func (t *QuadTree) child(boundary geom.Rect) *QuadTree {
	return &QuadTree{
		boundary: boundary,
		capacity: t.capacity,
		points:   make([]geom.Point, 0, t.capacity),
	}
}

// QueryRegion returns every stored point strictly contained in region. Each
// call allocates and returns a fresh slice; the tree is never mutated.
//
// Order is the depth-first traversal order: a node's own points first, then
// the northeast, northwest, southeast, southwest subtrees. Stable, but not
// semantically meaningful.
func (t *QuadTree) QueryRegion(region geom.Rect) []geom.Point {
	found := make([]geom.Point, 0)
	return t.queryRegion(region, found)
}

func (t *QuadTree) queryRegion(region geom.Rect, found []geom.Point) []geom.Point {
	if !t.boundary.IntersectsRegion(region) {
		return found
	}
	for _, p := range t.points {
		if region.ContainsPoint(p) {
			found = append(found, p)
		}
	}
	if t.divided {
		found = t.northeast.queryRegion(region, found)
		found = t.northwest.queryRegion(region, found)
		found = t.southeast.queryRegion(region, found)
		found = t.southwest.queryRegion(region, found)
	}
	return found
}

// Boundary returns the region this node is responsible for.
func (t *QuadTree) Boundary() geom.Rect { return t.boundary }

// Capacity returns the per-node point capacity.
func (t *QuadTree) Capacity() uint { return t.capacity }

// Divided reports whether this node has subdivided.
func (t *QuadTree) Divided() bool { return t.divided }

// Points returns a copy of the points held directly by this node, not the
// subtree's contents.
func (t *QuadTree) Points() []geom.Point {
	out := make([]geom.Point, len(t.points))
	copy(out, t.points)
	return out
}

// Northeast returns the northeast child, or nil before subdivision. The
// other three accessors behave the same way.
func (t *QuadTree) Northeast() *QuadTree { return t.northeast }
func (t *QuadTree) Northwest() *QuadTree { return t.northwest }
func (t *QuadTree) Southeast() *QuadTree { return t.southeast }
func (t *QuadTree) Southwest() *QuadTree { return t.southwest }

// Len returns the total number of points stored in the subtree.
func (t *QuadTree) Len() int {
	n := len(t.points)
	if t.divided {
		n += t.northeast.Len()
		n += t.northwest.Len()
		n += t.southeast.Len()
		n += t.southwest.Len()
	}
	return n
}

// Nodes returns the number of nodes in the subtree, this one included.
func (t *QuadTree) Nodes() int {
	n := 1
	if t.divided {
		n += t.northeast.Nodes()
		n += t.northwest.Nodes()
		n += t.southeast.Nodes()
		n += t.southwest.Nodes()
	}
	return n
}

// Height returns the depth of the subtree; a leaf has height 1.
func (t *QuadTree) Height() int {
	if !t.divided {
		return 1
	}
	h := t.northeast.Height()
	if v := t.northwest.Height(); v > h {
		h = v
	}
	if v := t.southeast.Height(); v > h {
		h = v
	}
	if v := t.southwest.Height(); v > h {
		h = v
	}
	return h + 1
}

// Walk visits every node pre-order (this node, then NE, NW, SE, SW).
// Returning false from fn stops the walk.
func (t *QuadTree) Walk(fn func(*QuadTree) bool) bool {
	if !fn(t) {
		return false
	}
	if t.divided {
		if !t.northeast.Walk(fn) {
			return false
		}
		if !t.northwest.Walk(fn) {
			return false
		}
		if !t.southeast.Walk(fn) {
			return false
		}
		if !t.southwest.Walk(fn) {
			return false
		}
	}
	return true
}

// Leaf returns the deepest node whose boundary strictly contains p, walking
// from t. Used by the inspector; returns nil if p is outside t entirely.
func (t *QuadTree) Leaf(p geom.Point) *QuadTree {
	if !t.boundary.ContainsPoint(p) {
		return nil
	}
	node := t
	for node.divided {
		next := node.northeast.Leaf(p)
		if next == nil {
			next = node.northwest.Leaf(p)
		}
		if next == nil {
			next = node.southeast.Leaf(p)
		}
		if next == nil {
			next = node.southwest.Leaf(p)
		}
		if next == nil {
			// p sits exactly on a split line; stop at the parent.
			break
		}
		node = next
	}
	return node
}
