package layout

import "github.com/ChicagoDave/siteplanner/pkg/spec"

// Config holds the search distances and steps threaded through every
// placement step. All values are in site units (meters).
type Config struct {
	Setback         float64 `json:"setback"`
	GridStep        float64 `json:"grid_step"`
	FacilitySpacing float64 `json:"facility_spacing"`
	AccessWindow    float64 `json:"access_window"`
	AccessStep      float64 `json:"access_step"`
	EdgeTolerance   float64 `json:"edge_tolerance"`
	UtilityStep     float64 `json:"utility_step"`
	ReserveStep     float64 `json:"reserve_step"`
}

// DefaultConfig returns the standard search configuration.
func DefaultConfig() Config {
	return Config{
		Setback:         20,
		GridStep:        100,
		FacilitySpacing: 10,
		AccessWindow:    80,
		AccessStep:      10,
		EdgeTolerance:   50,
		UtilityStep:     10,
		ReserveStep:     1,
	}
}

// ConfigFromSearch overlays the non-zero values of a project's search block
// on DefaultConfig.
func ConfigFromSearch(s spec.SearchDef) Config {
	c := DefaultConfig()
	if s.Setback > 0 {
		c.Setback = s.Setback
	}
	if s.GridStep > 0 {
		c.GridStep = s.GridStep
	}
	if s.FacilitySpacing > 0 {
		c.FacilitySpacing = s.FacilitySpacing
	}
	if s.AccessWindow > 0 {
		c.AccessWindow = s.AccessWindow
	}
	if s.AccessStep > 0 {
		c.AccessStep = s.AccessStep
	}
	if s.EdgeTolerance > 0 {
		c.EdgeTolerance = s.EdgeTolerance
	}
	if s.UtilityStep > 0 {
		c.UtilityStep = s.UtilityStep
	}
	if s.ReserveStep > 0 {
		c.ReserveStep = s.ReserveStep
	}
	return c
}

// steps returns n+1 evenly spaced samples lo, lo+step, ... that do not
// exceed hi. Samples are computed by index so they carry no accumulated
// rounding.
func steps(lo, hi, step float64) []float64 {
	if step <= 0 || hi < lo {
		return nil
	}
	n := int((hi-lo)/step + 1e-9)
	out := make([]float64, 0, n+1)
	for k := 0; k <= n; k++ {
		out = append(out, lo+float64(k)*step)
	}
	return out
}
