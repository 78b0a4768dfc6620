package geo

// ClipToRect returns the part of subject that lies inside r. The subject is
// cut against each side of r in turn (Sutherland-Hodgman). A concave
// subject can come back with zero-width slivers along the sides of r, but
// its area is still the area of the overlap.
func ClipToRect(subject Polygon, r Rect) Polygon {
	pts := subject.Vertices
	for _, h := range []halfPlane{
		{onY: false, bound: r.Left(), keepAbove: true},
		{onY: false, bound: r.Right()},
		{onY: true, bound: r.Bottom(), keepAbove: true},
		{onY: true, bound: r.Top()},
	} {
		if len(pts) == 0 {
			break
		}
		pts = h.clip(pts)
	}
	if len(pts) < 3 {
		return Polygon{}
	}
	return Polygon{Vertices: pts}
}

// halfPlane is one side of an axis-aligned rectangle.
type halfPlane struct {
	onY       bool
	bound     float64
	keepAbove bool
}

func (h halfPlane) coord(p Point2D) float64 {
	if h.onY {
		return p.Y
	}
	return p.X
}

func (h halfPlane) inside(p Point2D) bool {
	if h.keepAbove {
		return h.coord(p) >= h.bound
	}
	return h.coord(p) <= h.bound
}

// crossing is where segment a→b meets the boundary line. Callers only ask
// when a and b sit on opposite sides, so the segment is never parallel.
func (h halfPlane) crossing(a, b Point2D) Point2D {
	t := (h.bound - h.coord(a)) / (h.coord(b) - h.coord(a))
	if h.onY {
		return Pt(a.X+t*(b.X-a.X), h.bound)
	}
	return Pt(h.bound, a.Y+t*(b.Y-a.Y))
}

func (h halfPlane) clip(in []Point2D) []Point2D {
	out := make([]Point2D, 0, len(in)+4)
	prev := in[len(in)-1]
	prevIn := h.inside(prev)
	for _, cur := range in {
		curIn := h.inside(cur)
		if curIn != prevIn {
			out = append(out, h.crossing(prev, cur))
		}
		if curIn {
			out = append(out, cur)
		}
		prev, prevIn = cur, curIn
	}
	return out
}
