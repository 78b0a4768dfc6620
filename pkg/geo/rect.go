package geo

// Rect is an axis-aligned rectangle anchored at its lower-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// R is a shorthand constructor for Rect.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Left returns the minimum X.
func (r Rect) Left() float64 { return r.X }

// Right returns the maximum X.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the minimum Y.
func (r Rect) Bottom() float64 { return r.Y }

// Top returns the maximum Y.
func (r Rect) Top() float64 { return r.Y + r.H }

// Area returns the rectangle area.
func (r Rect) Area() float64 { return r.W * r.H }

// Min returns the lower-left corner.
func (r Rect) Min() Point2D { return Point2D{r.X, r.Y} }

// Center returns the rectangle center.
func (r Rect) Center() Point2D {
	return Point2D{r.X + r.W/2, r.Y + r.H/2}
}

// Expand returns r grown by d on all four sides.
func (r Rect) Expand(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// Tolerance absorbs floating-point error in boundary comparisons.
const Tolerance = 1e-9

// Separated reports whether a and b are at least d apart along at least one
// axis. A single passing axis is sufficient, so two rectangles whose corners
// are diagonally closer than d still count as separated.
func Separated(a, b Rect, d float64) bool {
	return a.Right()+d <= b.Left()+Tolerance ||
		b.Right()+d <= a.Left()+Tolerance ||
		a.Top()+d <= b.Bottom()+Tolerance ||
		b.Top()+d <= a.Bottom()+Tolerance
}

// Within reports whether r lies inside bounds shrunk by margin on every side.
func (r Rect) Within(bounds Rect, margin float64) bool {
	return r.Left()+Tolerance >= bounds.Left()+margin &&
		r.Bottom()+Tolerance >= bounds.Bottom()+margin &&
		r.Right() <= bounds.Right()-margin+Tolerance &&
		r.Top() <= bounds.Top()-margin+Tolerance
}
