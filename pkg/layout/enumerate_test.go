package layout

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/siteplanner/pkg/analytics"
	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// scenarioInput is the 800x600 site with an empty secondary group and no
// parking.
func scenarioInput() Input {
	return Input{
		Site:          RectSite(800, 600),
		Main:          Facility{Name: "Production", Category: "production", Width: 300, Height: 150},
		AccessPoints:  []geo.Point2D{geo.Pt(200, 600), geo.Pt(0, 200)},
		PrimaryAccess: Facility{Name: "Guide 1", Category: "guide", Width: 37, Height: 22},
		OtherAccess:   Facility{Name: "Guide", Category: "guide", Width: 10, Height: 10},
		Utility:       Facility{Name: "Substation", Category: "substation", Width: 50, Height: 50},
	}
}

func defaultInput(t *testing.T) Input {
	t.Helper()
	p := spec.Default()
	params, report := analytics.Resolve(p)
	require.True(t, report.Valid)
	return InputFromProject(p, params)
}

func enumerate(t *testing.T, in Input, cfg Config, opts Options) *Result {
	t.Helper()
	p, err := NewPlannerFromInput(in, cfg, opts)
	require.NoError(t, err)
	res, err := p.Enumerate(context.Background())
	require.NoError(t, err)
	return res
}

func TestEnumerateScenario(t *testing.T) {
	cfg := DefaultConfig()
	in := scenarioInput()
	res := enumerate(t, in, cfg, Options{})

	require.NotEmpty(t, res.Arrangements)
	for i, a := range res.Arrangements {
		assert.Equal(t, i, a.ID)

		m := a.Main.Rect
		assert.GreaterOrEqual(t, m.X, cfg.Setback)
		assert.GreaterOrEqual(t, m.Y, cfg.Setback)
		assert.Zero(t, math.Mod(m.X-cfg.Setback, cfg.GridStep), "main X on the grid")
		assert.Zero(t, math.Mod(m.Y-cfg.Setback, cfg.GridStep), "main Y on the grid")

		assert.Contains(t, []Side{SideBottom, SideRight}, a.Utility.Edge)
		assert.Len(t, a.Access, 2)
		assert.Len(t, a.AccessDistances, 2)
		assert.Empty(t, a.Parking)

		report := Verify(in.Site, cfg, &a)
		assert.True(t, report.Valid, "arrangement %d: %v", a.ID, report.Err())
	}
}

func TestEnumerateScenarioKnownArrangement(t *testing.T) {
	res := enumerate(t, scenarioInput(), DefaultConfig(), Options{})

	// Main at (420, 20): the utility slides left along the bottom edge until
	// it clears the main facility, and up the right edge likewise.
	var found []UtilityPlacement
	for _, a := range res.Arrangements {
		if a.Main.Axis == AxisHorizontal && a.Main.Rect.Min() == geo.Pt(420, 20) && a.Secondary.Side == SideTop {
			found = append(found, a.Utility)
		}
	}
	require.Len(t, found, 2)
	assert.Equal(t, SideBottom, found[0].Edge)
	assert.Equal(t, geo.R(345, 20, 50, 50), found[0].Rect)
	assert.Equal(t, SideRight, found[1].Edge)
	assert.Equal(t, geo.R(730, 190, 50, 50), found[1].Rect)
}

func TestEnumerateDefaultProject(t *testing.T) {
	cfg := DefaultConfig()
	in := defaultInput(t)
	res := enumerate(t, in, cfg, Options{})

	require.NotEmpty(t, res.Arrangements)
	for _, a := range res.Arrangements {
		assert.Len(t, a.Secondary.Facilities, 8)
		assert.Len(t, a.Parking, 2)
		report := Verify(in.Site, cfg, &a)
		require.True(t, report.Valid, "arrangement %d: %v", a.ID, report.Err())
	}
}

func TestEnumerateDeterministic(t *testing.T) {
	in := defaultInput(t)
	first := enumerate(t, in, DefaultConfig(), Options{})
	second := enumerate(t, in, DefaultConfig(), Options{})
	assert.Equal(t, first, second)
}

func TestEnumerateWorkerIndependent(t *testing.T) {
	in := defaultInput(t)
	cfg := DefaultConfig()
	cfg.GridStep = 50

	serial := enumerate(t, in, cfg, Options{Workers: 1})
	parallel := enumerate(t, in, cfg, Options{Workers: 8})
	assert.Equal(t, serial, parallel)
}

func TestEnumerateTruncates(t *testing.T) {
	in := defaultInput(t)
	cfg := DefaultConfig()
	full := enumerate(t, in, cfg, Options{})
	require.Greater(t, len(full.Arrangements), 2)

	res := enumerate(t, in, cfg, Options{MaxArrangements: 2, Workers: 3})
	assert.True(t, res.Truncated)
	require.Len(t, res.Arrangements, 2)
	assert.Equal(t, full.Arrangements[:2], res.Arrangements)
	assert.False(t, full.Truncated)
}

func TestEnumerateInsufficientSpace(t *testing.T) {
	in := scenarioInput()
	in.Site = RectSite(200, 200)
	res := enumerate(t, in, DefaultConfig(), Options{})

	assert.Empty(t, res.Arrangements)
	assert.Equal(t, 2, res.Tally[FailInsufficientSpace])
	f, ok := res.Tally.Dominant()
	assert.True(t, ok)
	assert.Equal(t, FailInsufficientSpace, f)
}

func TestEnumerateNoFreeEdge(t *testing.T) {
	in := scenarioInput()
	in.AccessPoints = append(in.AccessPoints, geo.Pt(400, 0), geo.Pt(800, 300))
	res := enumerate(t, in, DefaultConfig(), Options{})

	assert.Empty(t, res.Arrangements)
	assert.Positive(t, res.Tally[FailNoUtilityPosition])
}

func TestEnumeratePolygon(t *testing.T) {
	p, err := spec.LoadProject("../../examples/hexagon-site")
	require.NoError(t, err)

	pl, report, err := NewPlanner(p, Options{})
	require.NoError(t, err)
	require.True(t, report.Valid)

	res, err := pl.Enumerate(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, res.Arrangements)
	require.True(t, pl.Site().IsPolygon())

	for _, a := range res.Arrangements {
		for _, r := range a.Rects() {
			assert.True(t, pl.Site().Polygon.ContainsRect(r))
		}
		assert.True(t, Verify(pl.Site(), pl.Config(), &a).Valid)
	}
	assert.Positive(t, res.Tally[FailOutsidePolygon])
}

func TestEnumerateCancelled(t *testing.T) {
	p, err := NewPlannerFromInput(defaultInput(t), DefaultConfig(), Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Enumerate(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewPlannerRejectsInvalid(t *testing.T) {
	p := spec.Default()
	p.AccessPoints = nil
	_, report, err := NewPlanner(p, Options{})
	assert.ErrorIs(t, err, ErrInvalidProject)
	assert.False(t, report.Valid)
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, report.Errors, verr.Findings)

	_, err = NewPlannerFromInput(scenarioInput(), Config{}, Options{})
	assert.ErrorIs(t, err, ErrInvalidProject)
}

func TestAccessDistances(t *testing.T) {
	main := geo.R(100, 100, 300, 150)
	d := accessDistances([]geo.Point2D{geo.Pt(0, 200), geo.Pt(500, 0)}, main)

	require.Len(t, d, 2)
	assert.Equal(t, geo.Pt(100, 175), d[0].Nearest)
	assert.Equal(t, 125.0, d[0].Distance)
	assert.Equal(t, geo.Pt(400, 175), d[1].Nearest)
	assert.Equal(t, 275.0, d[1].Distance)

	// Upright main: short edges are bottom and top.
	d = accessDistances([]geo.Point2D{geo.Pt(0, 0)}, geo.R(100, 100, 150, 300))
	assert.Equal(t, geo.Pt(175, 100), d[0].Nearest)
}

func TestMainSections(t *testing.T) {
	a := Arrangement{Main: MainPlacement{Placement: Placement{Rect: geo.R(0, 0, 300, 150)}, Axis: AxisHorizontal}}
	s := a.MainSections()
	require.Len(t, s, 3)
	assert.Equal(t, "electrode", s[0].Name)
	assert.Equal(t, geo.Pt(50, 75), s[0].Center)
	assert.Equal(t, geo.Pt(150, 75), s[1].Center)
	assert.Equal(t, geo.Pt(250, 75), s[2].Center)

	a.Main = MainPlacement{Placement: Placement{Rect: geo.R(0, 0, 150, 300)}, Axis: AxisVertical, Rotated: true}
	s = a.MainSections()
	assert.Equal(t, geo.Pt(75, 250), s[2].Center)
}

func TestTallyDominant(t *testing.T) {
	tally := NewTally()
	_, ok := tally.Dominant()
	assert.False(t, ok)

	tally[FailCollision] = 4
	tally[FailOutsidePolygon] = 4
	f, ok := tally.Dominant()
	assert.True(t, ok)
	assert.Equal(t, FailCollision, f, "ties go to the earlier category")

	other := NewTally()
	other[FailOutsidePolygon] = 1
	tally.Merge(other)
	f, _ = tally.Dominant()
	assert.Equal(t, FailOutsidePolygon, f)
	assert.Equal(t, 9, tally.Total())
}

func TestEnumerateSoundness(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based search in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("every arrangement keeps every setback", prop.ForAll(
		func(w, h, mw, mh, vehicles int) bool {
			cfg := DefaultConfig()
			in := scenarioInput()
			in.Site = RectSite(float64(w), float64(h))
			in.Main = Facility{Name: "Production", Width: float64(mw), Height: float64(mh)}
			in.AccessPoints = []geo.Point2D{geo.Pt(float64(w)/4, float64(h)), geo.Pt(0, float64(h)/3)}
			in.Secondary = []Facility{
				{Name: "Admin", Width: 30, Height: 30},
				{Name: "Lab", Width: 20, Height: 40},
				{Name: "Store", Width: 10, Height: 10},
			}
			in.Arranger = ArrangerConfig{Order: []string{"Lab"}, NearAnchor: "Admin", FarAnchor: "Store"}
			plan := analytics.ComputeParking(vehicles)
			if plan.HasLots() {
				lot := Facility{Name: "Parking", Width: plan.LotWidth, Height: plan.LotHeight}
				in.Parking = []Facility{lot, lot}
			}

			p, err := NewPlannerFromInput(in, cfg, Options{Workers: 2})
			if err != nil {
				return false
			}
			res, err := p.Enumerate(context.Background())
			if err != nil {
				return false
			}
			for _, a := range res.Arrangements {
				if !Verify(in.Site, cfg, &a).Valid {
					return false
				}
			}
			return true
		},
		gen.IntRange(300, 900),
		gen.IntRange(300, 700),
		gen.IntRange(50, 300),
		gen.IntRange(50, 200),
		gen.IntRange(0, 120),
	))

	properties.TestingRun(t)
}
