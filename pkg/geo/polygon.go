package geo

import (
	"math"
	"slices"
)

// Polygon is a closed site outline. The last vertex connects back to the
// first.
type Polygon struct {
	Vertices []Point2D `json:"vertices"`
}

func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// IsEmpty reports whether the polygon has fewer than three vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// shoelace is twice the signed area: positive for counterclockwise
// outlines.
func (p Polygon) shoelace() float64 {
	if p.IsEmpty() {
		return 0
	}
	sum := 0.0
	prev := p.Vertices[len(p.Vertices)-1]
	for _, v := range p.Vertices {
		sum += prev.Cross(v)
		prev = v
	}
	return sum
}

func (p Polygon) Area() float64 {
	return math.Abs(p.shoelace()) / 2
}

// EnsureCCW returns p with counterclockwise winding, copying only when the
// order has to flip.
func (p Polygon) EnsureCCW() Polygon {
	if p.shoelace() >= 0 {
		return p
	}
	rev := slices.Clone(p.Vertices)
	slices.Reverse(rev)
	return Polygon{Vertices: rev}
}

// Bounds is the axis-aligned bounding box. An outline with no vertices has
// zero bounds.
func (p Polygon) Bounds() Rect {
	if len(p.Vertices) == 0 {
		return Rect{}
	}
	lo, hi := p.Vertices[0], p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		lo.X, lo.Y = math.Min(lo.X, v.X), math.Min(lo.Y, v.Y)
		hi.X, hi.Y = math.Max(hi.X, v.X), math.Max(hi.Y, v.Y)
	}
	return Rect{X: lo.X, Y: lo.Y, W: hi.X - lo.X, H: hi.Y - lo.Y}
}

// Contains is a ray-casting point test. Points on an edge can fall either
// way; the reserve grid only samples cell centres, where that is harmless.
func (p Polygon) Contains(pt Point2D) bool {
	if p.IsEmpty() {
		return false
	}
	inside := false
	prev := p.Vertices[len(p.Vertices)-1]
	for _, v := range p.Vertices {
		if (v.Y > pt.Y) != (prev.Y > pt.Y) &&
			pt.X < (prev.X-v.X)*(pt.Y-v.Y)/(prev.Y-v.Y)+v.X {
			inside = !inside
		}
		prev = v
	}
	return inside
}

// containsTolerance is the relative area slack for ContainsRect.
const containsTolerance = 1e-9

// ContainsRect reports whether r lies inside the polygon, boundary
// included. The polygon is clipped to r; r is contained exactly when the
// clipped area equals r's own area.
func (p Polygon) ContainsRect(r Rect) bool {
	if p.IsEmpty() || r.W <= 0 || r.H <= 0 {
		return false
	}
	if !r.Within(p.Bounds(), 0) {
		return false
	}
	overlap := ClipToRect(p, r)
	if overlap.IsEmpty() {
		return false
	}
	want := r.Area()
	return math.Abs(overlap.Area()-want) <= containsTolerance*math.Max(1, want)
}

// IsSimple reports whether the outline has no zero-length edge and no two
// non-adjacent edges touch.
func (p Polygon) IsSimple() bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	edge := func(i int) (Point2D, Point2D) {
		return p.Vertices[i], p.Vertices[(i+1)%n]
	}
	for i := 0; i < n; i++ {
		a1, a2 := edge(i)
		if a1 == a2 {
			return false
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			b1, b2 := edge(j)
			if segmentsTouch(a1, a2, b1, b2) {
				return false
			}
		}
	}
	return true
}

// segmentsTouch reports whether closed segments a1a2 and b1b2 share a point.
func segmentsTouch(a1, a2, b1, b2 Point2D) bool {
	d1 := turn(b1, b2, a1)
	d2 := turn(b1, b2, a2)
	d3 := turn(a1, a2, b1)
	d4 := turn(a1, a2, b2)
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return (d1 == 0 && inBox(b1, b2, a1)) ||
		(d2 == 0 && inBox(b1, b2, a2)) ||
		(d3 == 0 && inBox(a1, a2, b1)) ||
		(d4 == 0 && inBox(a1, a2, b2))
}

// turn is positive when a→b→c turns left.
func turn(a, b, c Point2D) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// inBox reports whether c lies in the bounding box of ab; with c collinear
// that means c is on the segment.
func inBox(a, b, c Point2D) bool {
	return math.Min(a.X, b.X) <= c.X && c.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= c.Y && c.Y <= math.Max(a.Y, b.Y)
}
