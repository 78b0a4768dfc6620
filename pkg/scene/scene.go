package scene

import "github.com/ChicagoDave/siteplanner/pkg/layout"

// EntityType identifies the kind of entity.
type EntityType string

const (
	EntityFacility EntityType = "facility"
	EntityGuide    EntityType = "guide"
	EntityParking  EntityType = "parking"
	EntityUtility  EntityType = "utility"
	EntitySection  EntityType = "section"
	EntityReserve  EntityType = "reserve"
	EntityAccess   EntityType = "access_point"
)

// Vec2 is a point or extent on the site plane.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BoundingBox defines an axis-aligned bounding box.
type BoundingBox struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// Entity is a single element in the scene graph. Position is the center of
// the footprint; point-like entities have zero dimensions.
type Entity struct {
	ID         string         `json:"id"`
	Type       EntityType     `json:"type"`
	Name       string         `json:"name"`
	Role       layout.Role    `json:"role,omitempty"`
	Category   string         `json:"category,omitempty"`
	Position   Vec2           `json:"position"`
	Dimensions Vec2           `json:"dimensions"`
	Color      string         `json:"color"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Graph is the render-ready view of one arrangement.
type Graph struct {
	Metadata Metadata `json:"metadata"`
	Entities []Entity `json:"entities"`
	Groups   Groups   `json:"groups"`
}

// Metadata holds scene-level information.
type Metadata struct {
	SpecVersion   string      `json:"spec_version"`
	Project       string      `json:"project"`
	GeneratedAt   string      `json:"generated_at"`
	ArrangementID int         `json:"arrangement_id"`
	SiteBounds    BoundingBox `json:"site_bounds"`
	SiteOutline   []Vec2      `json:"site_outline"`
	Extent        BoundingBox `json:"extent"`
	Orientation   layout.Axis `json:"orientation"`
	GroupSide     layout.Side `json:"group_side"`
	UtilityEdge   layout.Side `json:"utility_edge"`
}

// Groups organizes entity IDs for fast filtering.
type Groups struct {
	Roles       map[layout.Role][]string `json:"roles"`
	EntityTypes map[EntityType][]string  `json:"entity_types"`
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		Entities: []Entity{},
		Groups: Groups{
			Roles:       make(map[layout.Role][]string),
			EntityTypes: make(map[EntityType][]string),
		},
	}
}
