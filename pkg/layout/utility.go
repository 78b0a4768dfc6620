package layout

import (
	"math"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

// groupCentroid averages the centers of the secondary group. An empty group
// falls back to the main facility center.
func (b *branch) groupCentroid() geo.Point2D {
	if len(b.secondary) == 0 {
		return b.main.Rect.Center()
	}
	var sum geo.Point2D
	for _, p := range b.secondary {
		sum = sum.Add(p.Rect.Center())
	}
	return sum.Scale(1 / float64(len(b.secondary)))
}

// searchUtility finds at most one utility position per free site edge. On
// each edge the facility is pinned at the boundary setback and centered on
// the group centroid, then moved outward in UtilityStep increments, +offset
// before -offset, until a position passes every check.
func (b *branch) searchUtility(f Facility, free []Side) []UtilityPlacement {
	bounds := b.site.Bounds
	s := b.cfg.Setback
	c := b.groupCentroid()

	var out []UtilityPlacement
	for _, edge := range free {
		var pinned, optimal, lo, hi, span float64
		horizontal := edge == SideTop || edge == SideBottom
		if horizontal {
			optimal = c.X - f.Width/2
			lo, hi = bounds.Left()+s, bounds.Right()-s-f.Width
			span = bounds.W
			pinned = bounds.Bottom() + s
			if edge == SideTop {
				pinned = bounds.Top() - f.Height - s
			}
		} else {
			optimal = c.Y - f.Height/2
			lo, hi = bounds.Bottom()+s, bounds.Top()-s-f.Height
			span = bounds.H
			pinned = bounds.Left() + s
			if edge == SideRight {
				pinned = bounds.Right() - f.Width - s
			}
		}

		limit := math.Trunc(span - 2*s)
	search:
		for k := 0; float64(k)*b.cfg.UtilityStep < limit; k++ {
			off := float64(k) * b.cfg.UtilityStep
			for _, v := range [2]float64{optimal + off, optimal - off} {
				if v < lo || v > hi {
					continue
				}
				at := geo.Pt(v, pinned)
				if !horizontal {
					at = geo.Pt(pinned, v)
				}
				r := f.At(at)
				if b.admit(r, false) {
					out = append(out, UtilityPlacement{Placement: place(f, RoleUtility, r), Edge: edge})
					break search
				}
			}
		}
	}
	return out
}
