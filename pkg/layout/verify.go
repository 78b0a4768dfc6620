package layout

import (
	"fmt"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// Verify re-checks the placement invariants of one arrangement: every pair
// of facilities keeps the setback (secondary-group neighbours keep the
// facility spacing), every facility keeps the boundary setback, and on
// polygon sites every facility lies inside the polygon.
func Verify(site Site, cfg Config, a *Arrangement) *validation.Report {
	report := validation.NewReport()
	ps := a.Placements()

	for i, p := range ps {
		if !site.Inset(p.Rect, cfg.Setback) {
			report.AddError(validation.Result{
				Level:       validation.LevelPlacement,
				Message:     fmt.Sprintf("%s is within %.1f of the site boundary", p.Name, cfg.Setback),
				SpecPath:    "placement.boundary",
				Facility:    p.Name,
				ActualValue: p.Rect,
			})
		}
		if !site.Contains(p.Rect) {
			report.AddError(validation.Result{
				Level:       validation.LevelPlacement,
				Message:     fmt.Sprintf("%s extends outside the site polygon", p.Name),
				SpecPath:    "placement.polygon",
				Facility:    p.Name,
				ActualValue: p.Rect,
			})
		}

		for _, q := range ps[i+1:] {
			d := cfg.Setback
			if p.Role == RoleSecondary && q.Role == RoleSecondary {
				d = cfg.FacilitySpacing
			}
			if !geo.Separated(p.Rect, q.Rect, d) {
				report.AddError(validation.Result{
					Level:        validation.LevelPlacement,
					Message:      fmt.Sprintf("%s and %s are closer than %.1f", p.Name, q.Name, d),
					SpecPath:     "placement.separation",
					Facility:     p.Name,
					ConflictWith: q.Name,
				})
			}
		}
	}

	return report
}
