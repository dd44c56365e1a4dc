package geom

import (
	"github.com/pkg/errors"
)

// Point is a 2D coordinate with an optional label. Value type, freely
// copyable; a zero Label just means the point is anonymous.
type Point struct {
	X     float64
	Y     float64
	Label string
}

// Rect is an axis-aligned box given by its center (X, Y) and half-extents
// (W, H). The region it covers is [X-W, X+W) x [Y-H, Y+H) for containment;
// intersection treats the edges as part of the box.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// NewRect builds a Rect and rejects degenerate half-extents. The geometry
// predicates assume W > 0 and H > 0.
func NewRect(x, y, w, h float64) (Rect, error) {
	if w <= 0 || h <= 0 {
		return Rect{}, errors.Errorf("geom: invalid half-extents (%g, %g), must be positive", w, h)
	}
	return Rect{X: x, Y: y, W: w, H: h}, nil
}

// ContainsPoint reports whether p lies strictly inside r. Points exactly on
// an edge are not contained; this is what routes a point straddling a
// quadrant split line, so the strictness must not be loosened.
func (r Rect) ContainsPoint(p Point) bool {
	return r.X-r.W < p.X && p.X < r.X+r.W &&
		r.Y-r.H < p.Y && p.Y < r.Y+r.H
}

// IntersectsRegion reports whether r and o overlap. Separating-axis test,
// inclusive at shared edges: two boxes that merely touch still intersect.
// Deliberately looser than ContainsPoint.
func (r Rect) IntersectsRegion(o Rect) bool {
	return !(o.X-o.W > r.X+r.W ||
		o.X+o.W < r.X-r.W ||
		o.Y-o.H > r.Y+r.H ||
		o.Y+o.H < r.Y-r.H)
}

func (r Rect) MinX() float64 { return r.X - r.W }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MinY() float64 { return r.Y - r.H }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Bounds returns a Rect covering every point in pts, padded outward so that
// points on the hull still pass the strict ContainsPoint test.
func Bounds(pts []Point) (Rect, error) {
	if len(pts) == 0 {
		return Rect{}, errors.New("geom: no points to bound")
	}
	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	w := (maxX - minX) / 2
	h := (maxY - minY) / 2
	padX := w * 0.05
	if padX == 0 {
		padX = 1
	}
	padY := h * 0.05
	if padY == 0 {
		padY = 1
	}
	return Rect{
		X: minX + w,
		Y: minY + h,
		W: w + padX,
		H: h + padY,
	}, nil
}
