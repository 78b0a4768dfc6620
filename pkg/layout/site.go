package layout

import (
	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// Site is the placement boundary. Bounds is the rectangle itself or the
// bounding box of Polygon; every boundary setback is measured against it.
type Site struct {
	Bounds  geo.Rect     `json:"bounds"`
	Polygon *geo.Polygon `json:"polygon,omitempty"`
}

// RectSite returns a width × height site with its corner at the origin.
func RectSite(w, h float64) Site {
	return Site{Bounds: geo.R(0, 0, w, h)}
}

// PolygonSite returns a site bounded by a simple polygon.
func PolygonSite(p geo.Polygon) Site {
	ccw := p.EnsureCCW()
	return Site{Bounds: ccw.Bounds(), Polygon: &ccw}
}

// SiteFromSpec builds the site model from a project's site block.
func SiteFromSpec(s spec.SiteDef) Site {
	if s.IsPolygon() {
		return PolygonSite(validation.SitePolygon(s))
	}
	return RectSite(s.Width, s.Height)
}

// Width returns the bounding width.
func (s Site) Width() float64 { return s.Bounds.W }

// Height returns the bounding height.
func (s Site) Height() float64 { return s.Bounds.H }

// IsPolygon reports whether per-facility polygon containment applies.
func (s Site) IsPolygon() bool { return s.Polygon != nil }

// Inset reports whether r stays at least setback inside the bounds.
func (s Site) Inset(r geo.Rect, setback float64) bool {
	return r.Within(s.Bounds, setback)
}

// Contains reports whether r lies fully inside the polygon. Rectangular
// sites contain everything; use Inset for the bounds.
func (s Site) Contains(r geo.Rect) bool {
	if s.Polygon == nil {
		return true
	}
	return s.Polygon.ContainsRect(r)
}

// FreeEdges returns the bounding edges that carry no access point, in the
// order top, bottom, left, right. Each access point marks only the first
// edge (in that order) it lies within tolerance of.
func (s Site) FreeEdges(points []geo.Point2D, tolerance float64) []Side {
	b := s.Bounds
	taken := make(map[Side]bool, 4)
	for _, p := range points {
		switch {
		case abs(p.Y-b.Top()) <= tolerance:
			taken[SideTop] = true
		case abs(p.Y-b.Bottom()) <= tolerance:
			taken[SideBottom] = true
		case abs(p.X-b.Left()) <= tolerance:
			taken[SideLeft] = true
		case abs(p.X-b.Right()) <= tolerance:
			taken[SideRight] = true
		}
	}

	var free []Side
	for _, side := range []Side{SideTop, SideBottom, SideLeft, SideRight} {
		if !taken[side] {
			free = append(free, side)
		}
	}
	return free
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
