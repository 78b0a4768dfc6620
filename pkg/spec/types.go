package spec

// Project describes one site layout study.
type Project struct {
	SpecVersion      string           `yaml:"spec_version" toml:"spec_version" json:"spec_version"`
	Name             string           `yaml:"name" toml:"name" json:"name"`
	Site             SiteDef          `yaml:"site" toml:"site" json:"site"`
	Main             FacilityDef      `yaml:"main_facility" toml:"main_facility" json:"main_facility"`
	Secondary        SecondaryDef     `yaml:"secondary" toml:"secondary" json:"secondary"`
	AccessPoints     []PointDef       `yaml:"access_points" toml:"access_points" json:"access_points" validate:"required,min=1"`
	AccessFacilities AccessFacilities `yaml:"access_facilities" toml:"access_facilities" json:"access_facilities"`
	Utility          FacilityDef      `yaml:"utility_facility" toml:"utility_facility" json:"utility_facility"`
	Parking          ParkingDef       `yaml:"parking" toml:"parking" json:"parking"`
	Search           SearchDef        `yaml:"search" toml:"search" json:"search"`
}

// Site shapes.
const (
	ShapeRectangle = "rectangle"
	ShapePolygon   = "polygon"
)

// SiteDef describes the site boundary. Rectangles use Width/Height with the
// lower-left corner at the origin; polygons use Vertices.
type SiteDef struct {
	Shape    string     `yaml:"shape" toml:"shape" json:"shape" validate:"required,oneof=rectangle polygon"`
	Width    float64    `yaml:"width" toml:"width" json:"width,omitempty" validate:"gte=0"`
	Height   float64    `yaml:"height" toml:"height" json:"height,omitempty" validate:"gte=0"`
	Vertices []PointDef `yaml:"vertices" toml:"vertices" json:"vertices,omitempty"`
}

// IsPolygon reports whether the site boundary is an arbitrary polygon.
func (s SiteDef) IsPolygon() bool {
	return s.Shape == ShapePolygon
}

// PointDef is a coordinate on the site plan.
type PointDef struct {
	X float64 `yaml:"x" toml:"x" json:"x"`
	Y float64 `yaml:"y" toml:"y" json:"y"`
}

// FacilityDef is one rectangular facility footprint.
type FacilityDef struct {
	Name     string  `yaml:"name" toml:"name" json:"name" validate:"required"`
	Category string  `yaml:"category" toml:"category" json:"category,omitempty"`
	Width    float64 `yaml:"width" toml:"width" json:"width" validate:"gt=0"`
	Height   float64 `yaml:"height" toml:"height" json:"height" validate:"gt=0"`
}

// SecondaryDef lists the group arranged along one side of the main facility.
// Order fixes the packing order; the two anchors are placed at the group
// ends, NearAnchor at whichever end is closer to the primary access point.
type SecondaryDef struct {
	Facilities []FacilityDef `yaml:"facilities" toml:"facilities" json:"facilities" validate:"dive"`
	Order      []string      `yaml:"order" toml:"order" json:"order"`
	NearAnchor string        `yaml:"near_access_anchor" toml:"near_access_anchor" json:"near_access_anchor,omitempty"`
	FarAnchor  string        `yaml:"far_anchor" toml:"far_anchor" json:"far_anchor,omitempty"`
}

// Size is a width × height pair.
type Size struct {
	Width  float64 `yaml:"width" toml:"width" json:"width" validate:"gt=0"`
	Height float64 `yaml:"height" toml:"height" json:"height" validate:"gt=0"`
}

// AccessFacilities sizes the facilities placed next to each access point.
// Primary goes to the primary access point, Other to every remaining one.
type AccessFacilities struct {
	Primary Size `yaml:"primary" toml:"primary" json:"primary"`
	Other   Size `yaml:"other" toml:"other" json:"other"`
}

// ParkingDef drives the size of the two parking lots at the primary access
// point. A zero count omits the lots.
type ParkingDef struct {
	VehicleCount int `yaml:"vehicle_count" toml:"vehicle_count" json:"vehicle_count" validate:"gte=0"`
}

// SearchDef tunes the placement search. Zero values fall back to defaults.
type SearchDef struct {
	Setback         float64 `yaml:"setback" toml:"setback" json:"setback,omitempty" validate:"gte=0"`
	GridStep        float64 `yaml:"grid_step" toml:"grid_step" json:"grid_step,omitempty" validate:"gte=0"`
	FacilitySpacing float64 `yaml:"facility_spacing" toml:"facility_spacing" json:"facility_spacing,omitempty" validate:"gte=0"`
	AccessWindow    float64 `yaml:"access_window" toml:"access_window" json:"access_window,omitempty" validate:"gte=0"`
	AccessStep      float64 `yaml:"access_step" toml:"access_step" json:"access_step,omitempty" validate:"gte=0"`
	EdgeTolerance   float64 `yaml:"edge_tolerance" toml:"edge_tolerance" json:"edge_tolerance,omitempty" validate:"gte=0"`
	UtilityStep     float64 `yaml:"utility_step" toml:"utility_step" json:"utility_step,omitempty" validate:"gte=0"`
	ReserveStep     float64 `yaml:"reserve_step" toml:"reserve_step" json:"reserve_step,omitempty" validate:"gte=0"`
	Workers         int     `yaml:"workers" toml:"workers" json:"workers,omitempty" validate:"gte=0"`
	MaxArrangements int     `yaml:"max_arrangements" toml:"max_arrangements" json:"max_arrangements,omitempty" validate:"gte=0"`
}
