package geo

import "math"

// Point2D is a point on the site plan in metres. X grows to the right and
// Y grows up, so the bottom edge of a site is its Y minimum.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt builds a Point2D.
func Pt(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

func (p Point2D) Add(q Point2D) Point2D {
	return Point2D{p.X + q.X, p.Y + q.Y}
}

func (p Point2D) Sub(q Point2D) Point2D {
	return Point2D{p.X - q.X, p.Y - q.Y}
}

func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Y * s}
}

// Cross is the z component of the 3D cross product of p and q.
func (p Point2D) Cross(q Point2D) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Distance is the straight-line distance from p to q.
func (p Point2D) Distance(q Point2D) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Manhattan is the L1 distance from p to q. Access-point distances and
// anchor placement measure with it.
func (p Point2D) Manhattan(q Point2D) float64 {
	return math.Abs(p.X-q.X) + math.Abs(p.Y-q.Y)
}
