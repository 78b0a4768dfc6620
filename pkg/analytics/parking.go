package analytics

// Stall shares per category. Each share is floored; the remainder goes to
// general stalls.
const (
	shareGeneral  = 0.61
	shareExtended = 0.30
	shareDisabled = 0.04
	shareEco      = 0.05
)

// Unit area per stall in m², including its share of the drive aisle.
const (
	areaGeneral  = 20.0
	areaExtended = 20.8
	areaDisabled = 26.4
	areaEco      = 20.0
)

const (
	landscapeRatio = 0.10
	// LotShortSide is the fixed depth of each parking lot (two stall rows
	// plus aisle).
	LotShortSide = 35.2
)

// ComputeParking derives the parking breakdown and the two lot sizes for a
// vehicle count. Non-positive counts yield an empty plan.
func ComputeParking(vehicles int) ParkingPlan {
	if vehicles <= 0 {
		return ParkingPlan{}
	}

	n := float64(vehicles)
	b := ParkingBreakdown{
		General:  int(n * shareGeneral),
		Extended: int(n * shareExtended),
		Disabled: int(n * shareDisabled),
		Eco:      int(n * shareEco),
	}
	b.General += vehicles - b.Total()

	vehicleArea := float64(b.General)*areaGeneral +
		float64(b.Extended)*areaExtended +
		float64(b.Disabled)*areaDisabled +
		float64(b.Eco)*areaEco
	landscape := vehicleArea * landscapeRatio
	total := vehicleArea + landscape

	return ParkingPlan{
		Vehicles:      vehicles,
		Breakdown:     b,
		VehicleAreaM2: vehicleArea,
		LandscapeM2:   landscape,
		TotalAreaM2:   total,
		LotWidth:      LotShortSide,
		LotHeight:     total / 2 / LotShortSide,
	}
}
