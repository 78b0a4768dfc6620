package spec

// Default returns the reference factory project: an 800×600 site with a
// 300×150 production hall, eight support buildings, two gates, a
// substation, and parking for 150 vehicles.
func Default() *Project {
	return &Project{
		SpecVersion: "0.1.0",
		Name:        "default-site",
		Site:        SiteDef{Shape: ShapeRectangle, Width: 800, Height: 600},
		Main:        FacilityDef{Name: "Production", Category: "production", Width: 300, Height: 150},
		Secondary: SecondaryDef{
			Facilities: []FacilityDef{
				{Name: "Admin", Category: "admin", Width: 50, Height: 50},
				{Name: "UT", Category: "utility_building", Width: 40, Height: 40},
				{Name: "Waste Storage", Category: "waste", Width: 20, Height: 20},
				{Name: "Reliability Lab", Category: "lab", Width: 30, Height: 30},
				{Name: "Hazmat Storage", Category: "hazmat", Width: 10, Height: 10},
				{Name: "Wastewater Treatment", Category: "wastewater", Width: 20, Height: 20},
				{Name: "CESS Control", Category: "control", Width: 10, Height: 10},
				{Name: "SRP Control", Category: "control", Width: 5, Height: 5},
			},
			Order:      []string{"SRP Control", "Hazmat Storage", "CESS Control", "UT", "Reliability Lab", "Waste Storage"},
			NearAnchor: "Admin",
			FarAnchor:  "Wastewater Treatment",
		},
		AccessPoints: []PointDef{{X: 200, Y: 600}, {X: 0, Y: 200}},
		AccessFacilities: AccessFacilities{
			Primary: Size{Width: 37, Height: 22},
			Other:   Size{Width: 10, Height: 10},
		},
		Utility: FacilityDef{Name: "Substation", Category: "substation", Width: 50, Height: 50},
		Parking: ParkingDef{VehicleCount: 150},
		Search: SearchDef{
			Setback:         20,
			GridStep:        100,
			FacilitySpacing: 10,
		},
	}
}
