package layout

import (
	"fmt"
	"math"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

// PlaceAccessGroup positions the two parking lots in front of the primary
// access point. The lots share one X, clamped so the wider lot stays inside
// the site. The first lot goes setback above the access point and the
// second setback below it. If either breaks the boundary setback, both move
// together; if fixing the top breaks the bottom again, the lots are
// stacked from the bottom setback instead.
func PlaceAccessGroup(site Site, primary geo.Point2D, first, second Facility, setback float64) [2]geo.Rect {
	b := site.Bounds
	maxW := math.Max(first.Width, second.Width)
	x := math.Max(b.Left()+setback, math.Min(primary.X+setback, b.Right()-setback-maxW))

	y1 := primary.Y + setback
	y2 := primary.Y - setback - second.Height

	lowest := func() float64 { return math.Min(y1, y2) }
	highest := func() float64 { return math.Max(y1+first.Height, y2+second.Height) }

	if lo := lowest(); lo < b.Bottom()+setback {
		shift := b.Bottom() + setback - lo
		y1 += shift
		y2 += shift
	}
	if hi := highest(); hi > b.Top()-setback {
		shift := hi - (b.Top() - setback)
		y1 -= shift
		y2 -= shift
		if lowest() < b.Bottom()+setback {
			y1 = b.Bottom() + setback
			y2 = y1 + first.Height + setback
		}
	}

	return [2]geo.Rect{
		first.At(geo.Pt(x, y1)),
		second.At(geo.Pt(x, y2)),
	}
}

// accessFacility returns the facility placed next to access point i. The
// primary facility is reoriented to run along the edge it sits on: taller
// on the left bounding edge, wider on the bottom edge. Other facilities are
// numbered from 2 in access-point order.
func (p *Planner) accessFacility(i int) Facility {
	if i != p.primary {
		f := p.in.OtherAccess
		n := i + 2
		if i > p.primary {
			n = i + 1
		}
		f.Name = fmt.Sprintf("%s %d", f.Name, n)
		return f
	}
	f := p.in.PrimaryAccess
	pt := p.in.AccessPoints[i]
	b := p.site.Bounds
	switch {
	case pt.X == b.Left() && f.Width > f.Height:
		f = f.Rotated()
	case pt.Y == b.Bottom() && f.Width < f.Height:
		f = f.Rotated()
	}
	return f
}

// probe is the outcome of a local search: found with a footprint, or
// exhausted.
type probe struct {
	rect  geo.Rect
	found bool
}

// searchAccessFacility scans a square window around an access point, X
// outer and Y inner, and returns the first footprint that passes every
// check. Each rejected sample is counted in the branch tally.
func (b *branch) searchAccessFacility(f Facility, at geo.Point2D) probe {
	w := b.cfg.AccessWindow
	offsets := steps(-w, w, b.cfg.AccessStep)
	for _, dx := range offsets {
		for _, dy := range offsets {
			r := f.At(at.Add(geo.Pt(dx, dy)))
			if b.admit(r, true) {
				return probe{rect: r, found: true}
			}
		}
	}
	return probe{}
}
