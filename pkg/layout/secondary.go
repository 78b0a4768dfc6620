package layout

import "github.com/ChicagoDave/siteplanner/pkg/geo"

// ArrangerConfig fixes how a secondary group is ordered. Order lists the
// packing order of non-anchor facilities; facilities missing from it follow
// in input order. NearAnchor goes to whichever group end is closer to the
// primary access point and FarAnchor to the other end. Empty anchor names
// disable the anchor.
type ArrangerConfig struct {
	Order      []string `json:"order"`
	NearAnchor string   `json:"near_anchor,omitempty"`
	FarAnchor  string   `json:"far_anchor,omitempty"`
}

// GroupLayout is a secondary group in group-local coordinates.
type GroupLayout struct {
	// Offsets maps facility name to its lower-left corner relative to the
	// group origin.
	Offsets map[string]geo.Point2D `json:"offsets"`
	// Sequence lists facility names from the group start to its end.
	Sequence []string `json:"sequence"`
	ExtentX  float64  `json:"extent_x"`
	ExtentY  float64  `json:"extent_y"`
}

// Arranger packs a secondary group edge to edge along an axis.
type Arranger struct {
	cfg     ArrangerConfig
	spacing float64
	setback float64
}

// NewArranger returns an arranger using the spacing and setback of c.
func NewArranger(ac ArrangerConfig, c Config) *Arranger {
	return &Arranger{cfg: ac, spacing: c.FacilitySpacing, setback: c.Setback}
}

// Arrange lays out group for attachment on side of the main facility. It
// is deterministic: identical inputs give identical offsets.
func (a *Arranger) Arrange(group []Facility, side Side, main geo.Rect, axis Axis, primary geo.Point2D) GroupLayout {
	out := GroupLayout{Offsets: make(map[string]geo.Point2D, len(group))}
	if len(group) == 0 {
		return out
	}

	along := func(f Facility) float64 {
		if axis == AxisHorizontal {
			return f.Width
		}
		return f.Height
	}
	across := func(f Facility) float64 {
		if axis == AxisHorizontal {
			return f.Height
		}
		return f.Width
	}

	byName := make(map[string]Facility, len(group))
	length, depth := a.spacing*float64(len(group)-1), 0.0
	for _, f := range group {
		byName[f.Name] = f
		length += along(f)
		if d := across(f); d > depth {
			depth = d
		}
	}
	if axis == AxisHorizontal {
		out.ExtentX, out.ExtentY = length, depth
	} else {
		out.ExtentX, out.ExtentY = depth, length
	}

	seq := a.packingOrder(group, byName)

	// Anchors go to the group ends. The near anchor takes the end closer
	// to the primary access point; a tie goes to the start.
	nearAtStart := false
	if f, ok := byName[a.cfg.NearAnchor]; ok && a.cfg.NearAnchor != "" {
		origin := groupOrigin(side, main, out.ExtentX, out.ExtentY, a.setback)
		end := origin.Add(geo.Pt(length, 0))
		if axis == AxisVertical {
			end = origin.Add(geo.Pt(0, length))
		}
		if origin.Manhattan(primary) <= end.Manhattan(primary) {
			seq = append([]Facility{f}, seq...)
			nearAtStart = true
		} else {
			seq = append(seq, f)
		}
	}
	if f, ok := byName[a.cfg.FarAnchor]; ok && a.cfg.FarAnchor != "" && a.cfg.FarAnchor != a.cfg.NearAnchor {
		if nearAtStart {
			seq = append(seq, f)
		} else if _, near := byName[a.cfg.NearAnchor]; near {
			seq = append([]Facility{f}, seq...)
		} else {
			seq = append(seq, f)
		}
	}

	cursor := 0.0
	for _, f := range seq {
		if axis == AxisHorizontal {
			out.Offsets[f.Name] = geo.Pt(cursor, 0)
		} else {
			out.Offsets[f.Name] = geo.Pt(0, cursor)
		}
		out.Sequence = append(out.Sequence, f.Name)
		cursor += along(f) + a.spacing
	}
	return out
}

// packingOrder returns the non-anchor facilities: first those named in
// Order, then the rest in input order.
func (a *Arranger) packingOrder(group []Facility, byName map[string]Facility) []Facility {
	isAnchor := func(name string) bool {
		return name != "" && (name == a.cfg.NearAnchor || name == a.cfg.FarAnchor)
	}
	used := make(map[string]bool, len(group))
	seq := make([]Facility, 0, len(group))
	for _, name := range a.cfg.Order {
		f, ok := byName[name]
		if !ok || used[name] || isAnchor(name) {
			continue
		}
		used[name] = true
		seq = append(seq, f)
	}
	for _, f := range group {
		if used[f.Name] || isAnchor(f.Name) {
			continue
		}
		used[f.Name] = true
		seq = append(seq, f)
	}
	return seq
}

// groupOrigin returns the lower-left corner of a group with the given
// extents attached to side of main at distance setback. Left and right
// groups are centered on main vertically, top and bottom groups
// horizontally.
func groupOrigin(side Side, main geo.Rect, extX, extY, setback float64) geo.Point2D {
	switch side {
	case SideLeft:
		return geo.Pt(main.X-extX-setback, main.Y+main.H/2-extY/2)
	case SideRight:
		return geo.Pt(main.Right()+setback, main.Y+main.H/2-extY/2)
	case SideTop:
		return geo.Pt(main.X+main.W/2-extX/2, main.Top()+setback)
	default:
		return geo.Pt(main.X+main.W/2-extX/2, main.Y-extY-setback)
	}
}
