package analytics

import (
	"fmt"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// Resolve derives the parking plan, primary access point, and site coverage
// for a project. It assumes the project passed schema validation.
func Resolve(p *spec.Project) (*ResolvedParameters, *validation.Report) {
	report := validation.NewReport()

	parking := ComputeParking(p.Parking.VehicleCount)
	primary, point := PrimaryAccess(p.AccessPoints)
	siteArea := SiteArea(p.Site)

	footprint := p.Main.Width * p.Main.Height
	footprint += p.Utility.Width * p.Utility.Height
	count := 2 + len(p.Secondary.Facilities)
	for _, f := range p.Secondary.Facilities {
		footprint += f.Width * f.Height
	}
	for i := range p.AccessPoints {
		size := p.AccessFacilities.Other
		if i == primary {
			size = p.AccessFacilities.Primary
		}
		footprint += size.Width * size.Height
		count++
	}
	if parking.HasLots() {
		footprint += parking.TotalAreaM2
		count += 2
	}

	res := &ResolvedParameters{
		SiteAreaM2:      siteArea,
		FootprintAreaM2: footprint,
		PrimaryAccess:   primary,
		PrimaryPoint:    point,
		FacilityCount:   count,
		Parking:         parking,
	}
	if siteArea > 0 {
		res.Coverage = footprint / siteArea
	}

	if res.Coverage > 1 {
		report.AddWarning(Result(
			fmt.Sprintf("facility footprints cover %.0f%% of the site area", res.Coverage*100),
			"site",
			res.Coverage,
		))
	}
	if parking.HasLots() {
		report.AddInfo(Result(
			fmt.Sprintf("parking: %d stalls in two %.1fx%.1f lots", parking.Breakdown.Total(), parking.LotWidth, parking.LotHeight),
			"parking.vehicle_count",
			parking.Vehicles,
		))
	}

	return res, report
}

// Result builds a derived-level validation finding.
func Result(msg, path string, actual any) validation.Result {
	return validation.Result{
		Level:       validation.LevelDerived,
		Message:     msg,
		SpecPath:    path,
		ActualValue: actual,
	}
}

// PrimaryAccess returns the index and location of the access point with the
// smallest Y. Ties go to the earliest point. An empty list yields index -1.
func PrimaryAccess(points []spec.PointDef) (int, geo.Point2D) {
	best := -1
	for i, a := range points {
		if best < 0 || a.Y < points[best].Y {
			best = i
		}
	}
	if best < 0 {
		return -1, geo.Point2D{}
	}
	return best, geo.Pt(points[best].X, points[best].Y)
}

// SiteArea returns the usable site area in m².
func SiteArea(s spec.SiteDef) float64 {
	if s.IsPolygon() {
		return validation.SitePolygon(s).Area()
	}
	return s.Width * s.Height
}
