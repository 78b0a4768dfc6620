package analytics

import "github.com/ChicagoDave/siteplanner/pkg/geo"

// ParkingBreakdown splits the vehicle count into stall categories.
type ParkingBreakdown struct {
	General  int `json:"general"`
	Extended int `json:"extended"`
	Disabled int `json:"disabled"`
	Eco      int `json:"eco"`
}

// Total returns the number of stalls across all categories.
func (b ParkingBreakdown) Total() int {
	return b.General + b.Extended + b.Disabled + b.Eco
}

// ParkingPlan holds the derived parking areas and the size of each of the
// two equal parking lots.
type ParkingPlan struct {
	Vehicles      int              `json:"vehicles"`
	Breakdown     ParkingBreakdown `json:"breakdown"`
	VehicleAreaM2 float64          `json:"vehicle_area_m2"`
	LandscapeM2   float64          `json:"landscape_area_m2"`
	TotalAreaM2   float64          `json:"total_area_m2"`
	LotWidth      float64          `json:"lot_width_m"`
	LotHeight     float64          `json:"lot_height_m"`
}

// HasLots reports whether any parking lot needs to be placed.
func (p ParkingPlan) HasLots() bool {
	return p.Vehicles > 0
}

// ResolvedParameters holds the values derived from a project before the
// placement search runs.
type ResolvedParameters struct {
	SiteAreaM2      float64     `json:"site_area_m2"`
	FootprintAreaM2 float64     `json:"footprint_area_m2"`
	Coverage        float64     `json:"coverage"`
	PrimaryAccess   int         `json:"primary_access_index"`
	PrimaryPoint    geo.Point2D `json:"primary_access_point"`
	FacilityCount   int         `json:"facility_count"`
	Parking         ParkingPlan `json:"parking"`
}
