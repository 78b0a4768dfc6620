package scene

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

const (
	sectionColor = "#2C3E50"
	reserveColor = "#D5F5E3"
	accessColor  = "#000000"
)

// Assemble converts one arrangement into a scene graph. reserve may be nil
// when the reserve square was not computed.
func Assemble(p *spec.Project, site layout.Site, a *layout.Arrangement, reserve *layout.Reserve) *Graph {
	g := NewGraph()

	for _, pl := range a.Placements() {
		assemblePlacement(pl, g)
	}
	assembleSections(a, g)
	assembleAccessPoints(a, g)
	if reserve != nil && reserve.Found {
		r := reserve.Rect()
		addEntity(g, Entity{
			ID:         "reserve",
			Type:       EntityReserve,
			Name:       "Reserve",
			Position:   center(r),
			Dimensions: Vec2{X: r.W, Y: r.H},
			Color:      reserveColor,
			Metadata:   map[string]any{"side": reserve.Side},
		})
	}

	g.Metadata = Metadata{
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		ArrangementID: a.ID,
		SiteBounds:    bounds(site.Bounds),
		SiteOutline:   outline(site),
		Extent:        computeBounds(g.Entities),
		Orientation:   a.Main.Axis,
		GroupSide:     a.Secondary.Side,
		UtilityEdge:   a.Utility.Edge,
	}
	if p != nil {
		g.Metadata.SpecVersion = p.SpecVersion
		g.Metadata.Project = p.Name
	}

	return g
}

func assemblePlacement(pl layout.Placement, g *Graph) {
	et := EntityFacility
	switch pl.Role {
	case layout.RoleAccess:
		et = EntityGuide
	case layout.RoleParking:
		et = EntityParking
	case layout.RoleUtility:
		et = EntityUtility
	}

	addEntity(g, Entity{
		ID:         EntityID(pl.Role, pl.Name),
		Type:       et,
		Name:       pl.Name,
		Role:       pl.Role,
		Category:   pl.Category,
		Position:   center(pl.Rect),
		Dimensions: Vec2{X: pl.Rect.W, Y: pl.Rect.H},
		Color:      ColorFor(pl.Name, pl.Category),
		Metadata: map[string]any{
			"x":    pl.Rect.X,
			"y":    pl.Rect.Y,
			"area": pl.Rect.Area(),
		},
	})
}

// assembleSections adds one marker per process section of the main facility.
func assembleSections(a *layout.Arrangement, g *Graph) {
	r := a.Main.Rect
	n := float64(len(layout.SectionNames))
	dims := Vec2{X: r.W, Y: r.H / n}
	if a.Main.Axis == layout.AxisHorizontal {
		dims = Vec2{X: r.W / n, Y: r.H}
	}
	for i, s := range a.MainSections() {
		addEntity(g, Entity{
			ID:         "section_" + s.Name,
			Type:       EntitySection,
			Name:       s.Name,
			Role:       layout.RoleMain,
			Position:   Vec2{X: s.Center.X, Y: s.Center.Y},
			Dimensions: dims,
			Color:      sectionColor,
			Metadata:   map[string]any{"sequence": i + 1},
		})
	}
}

func assembleAccessPoints(a *layout.Arrangement, g *Graph) {
	for i, pt := range a.AccessPoints {
		meta := map[string]any{}
		for _, d := range a.AccessDistances {
			if d.Index == i {
				meta["distance_to_main"] = d.Distance
			}
		}
		addEntity(g, Entity{
			ID:       fmt.Sprintf("access_point_%d", i+1),
			Type:     EntityAccess,
			Name:     fmt.Sprintf("Access %d", i+1),
			Position: Vec2{X: pt.X, Y: pt.Y},
			Color:    accessColor,
			Metadata: meta,
		})
	}
}

// EntityID derives a stable entity ID from a placement's role and name.
func EntityID(role layout.Role, name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, strings.TrimSpace(name))
	return string(role) + "_" + slug
}

// addEntity appends an entity and updates all group indices.
func addEntity(g *Graph, e Entity) {
	g.Entities = append(g.Entities, e)
	if e.Role != "" {
		g.Groups.Roles[e.Role] = append(g.Groups.Roles[e.Role], e.ID)
	}
	g.Groups.EntityTypes[e.Type] = append(g.Groups.EntityTypes[e.Type], e.ID)
}

func center(r geo.Rect) Vec2 {
	c := r.Center()
	return Vec2{X: c.X, Y: c.Y}
}

func bounds(r geo.Rect) BoundingBox {
	return BoundingBox{Min: Vec2{X: r.Left(), Y: r.Bottom()}, Max: Vec2{X: r.Right(), Y: r.Top()}}
}

// outline returns the site polygon, or the bounds corners counter-clockwise.
func outline(site layout.Site) []Vec2 {
	if site.Polygon != nil {
		out := make([]Vec2, len(site.Polygon.Vertices))
		for i, v := range site.Polygon.Vertices {
			out[i] = Vec2{X: v.X, Y: v.Y}
		}
		return out
	}
	b := site.Bounds
	return []Vec2{
		{X: b.Left(), Y: b.Bottom()},
		{X: b.Right(), Y: b.Bottom()},
		{X: b.Right(), Y: b.Top()},
		{X: b.Left(), Y: b.Top()},
	}
}

// computeBounds calculates the AABB of all entities.
func computeBounds(entities []Entity) BoundingBox {
	if len(entities) == 0 {
		return BoundingBox{}
	}
	minV := Vec2{X: math.MaxFloat64, Y: math.MaxFloat64}
	maxV := Vec2{X: -math.MaxFloat64, Y: -math.MaxFloat64}
	for _, e := range entities {
		hx, hy := e.Dimensions.X/2, e.Dimensions.Y/2
		minV.X = math.Min(minV.X, e.Position.X-hx)
		minV.Y = math.Min(minV.Y, e.Position.Y-hy)
		maxV.X = math.Max(maxV.X, e.Position.X+hx)
		maxV.Y = math.Max(maxV.Y, e.Position.Y+hy)
	}
	return BoundingBox{Min: minV, Max: maxV}
}
