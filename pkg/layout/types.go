package layout

import (
	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

// Side names one side of a rectangle (the main facility or the site).
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Axis is the direction a secondary group is packed along.
type Axis string

const (
	// AxisHorizontal packs the group side by side along X.
	AxisHorizontal Axis = "horizontal"
	// AxisVertical packs the group along Y.
	AxisVertical Axis = "vertical"
)

// Role tags what part of an arrangement a placement belongs to.
type Role string

const (
	RoleMain      Role = "main"
	RoleSecondary Role = "secondary"
	RoleAccess    Role = "access"
	RoleParking   Role = "parking"
	RoleUtility   Role = "utility"
)

// Facility is an unplaced rectangular footprint. It is a value type:
// reorienting it returns a new value.
type Facility struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// Rotated returns the facility with width and height swapped.
func (f Facility) Rotated() Facility {
	f.Width, f.Height = f.Height, f.Width
	return f
}

// At returns the footprint with its lower-left corner at p.
func (f Facility) At(p geo.Point2D) geo.Rect {
	return geo.R(p.X, p.Y, f.Width, f.Height)
}

// Placement is a facility with its final footprint.
type Placement struct {
	Name     string   `json:"name"`
	Category string   `json:"category,omitempty"`
	Role     Role     `json:"role"`
	Rect     geo.Rect `json:"rect"`
}

func place(f Facility, role Role, r geo.Rect) Placement {
	return Placement{Name: f.Name, Category: f.Category, Role: role, Rect: r}
}

// MainPlacement is the main facility in one of its two orientations.
type MainPlacement struct {
	Placement
	Rotated bool `json:"rotated"`
	Axis    Axis `json:"orientation"`
}

// GroupPlacement is the secondary group attached to one side of the main
// facility. Facilities are listed in input order.
type GroupPlacement struct {
	Side       Side        `json:"side"`
	Facilities []Placement `json:"facilities"`
}

// UtilityPlacement is the utility facility and the site edge it sits on.
type UtilityPlacement struct {
	Placement
	Edge Side `json:"edge"`
}

// AccessDistance is the Manhattan distance from one access point to the
// nearest short-edge midpoint of the main facility.
type AccessDistance struct {
	Index    int         `json:"index"`
	Point    geo.Point2D `json:"point"`
	Nearest  geo.Point2D `json:"nearest_edge_mid"`
	Distance float64     `json:"distance"`
}

// Arrangement is one complete, validated assignment of positions to every
// facility. It is not modified after being added to a Result.
type Arrangement struct {
	ID              int              `json:"id"`
	Main            MainPlacement    `json:"main"`
	Secondary       GroupPlacement   `json:"secondary"`
	Utility         UtilityPlacement `json:"utility"`
	Access          []Placement      `json:"access_facilities"`
	Parking         []Placement      `json:"parking"`
	AccessPoints    []geo.Point2D    `json:"access_points"`
	AccessDistances []AccessDistance `json:"access_distances"`
}

// Placements returns every placed facility: main, secondary group, access
// facilities, parking, then utility.
func (a *Arrangement) Placements() []Placement {
	out := make([]Placement, 0, 2+len(a.Secondary.Facilities)+len(a.Access)+len(a.Parking))
	out = append(out, a.Main.Placement)
	out = append(out, a.Secondary.Facilities...)
	out = append(out, a.Access...)
	out = append(out, a.Parking...)
	out = append(out, a.Utility.Placement)
	return out
}

// Rects returns the footprints of Placements in the same order.
func (a *Arrangement) Rects() []geo.Rect {
	ps := a.Placements()
	out := make([]geo.Rect, len(ps))
	for i, p := range ps {
		out[i] = p.Rect
	}
	return out
}

// Section is one process area of the main facility.
type Section struct {
	Name   string      `json:"name"`
	Center geo.Point2D `json:"center"`
}

// SectionNames are the main-facility process areas in flow order.
var SectionNames = []string{"electrode", "assembly", "formation"}

// MainSections splits the main facility into equal thirds along its
// orientation axis and returns each third's center.
func (a *Arrangement) MainSections() []Section {
	r := a.Main.Rect
	n := float64(2 * len(SectionNames))
	out := make([]Section, len(SectionNames))
	for i, name := range SectionNames {
		k := float64(2*i + 1)
		c := geo.Pt(r.X+r.W/2, r.Y+r.H*k/n)
		if a.Main.Axis == AxisHorizontal {
			c = geo.Pt(r.X+r.W*k/n, r.Y+r.H/2)
		}
		out[i] = Section{Name: name, Center: c}
	}
	return out
}

// Result is the output of one enumeration run.
type Result struct {
	Arrangements []Arrangement `json:"arrangements"`
	Tally        Tally         `json:"failures"`
	// Truncated is set when MaxArrangements cut the scan short.
	Truncated bool `json:"truncated,omitempty"`
}
