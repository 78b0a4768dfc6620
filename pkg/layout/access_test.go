package layout

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

func lot(h float64) Facility {
	return Facility{Name: "lot", Category: "parking", Width: 35.2, Height: h}
}

func TestPlaceAccessGroupDefault(t *testing.T) {
	h := 48.0375
	r := PlaceAccessGroup(RectSite(800, 600), geo.Pt(0, 200), lot(h), lot(h), 20)

	assert.Equal(t, 20.0, r[0].X)
	assert.Equal(t, 20.0, r[1].X)
	assert.Equal(t, 220.0, r[0].Y)
	assert.InDelta(t, 200-20-h, r[1].Y, 1e-9)
}

func TestPlaceAccessGroupShiftUp(t *testing.T) {
	h := 48.0375
	r := PlaceAccessGroup(RectSite(800, 600), geo.Pt(400, 0), lot(h), lot(h), 20)

	assert.Equal(t, 420.0, r[0].X)
	assert.InDelta(t, 20.0, r[1].Y, 1e-9)
	assert.InDelta(t, 60+h, r[0].Y, 1e-9)
}

func TestPlaceAccessGroupShiftDown(t *testing.T) {
	h := 48.0375
	r := PlaceAccessGroup(RectSite(800, 600), geo.Pt(400, 600), lot(h), lot(h), 20)

	assert.InDelta(t, 580-h, r[0].Y, 1e-9)
	assert.InDelta(t, 540-2*h, r[1].Y, 1e-9)
}

func TestPlaceAccessGroupStacks(t *testing.T) {
	h := 48.0375
	r := PlaceAccessGroup(RectSite(800, 160), geo.Pt(50, 0), lot(h), lot(h), 20)

	assert.Equal(t, 20.0, r[0].Y)
	assert.InDelta(t, 20+h+20, r[1].Y, 1e-9)
	assert.True(t, geo.Separated(r[0], r[1], 20))
}

func TestPlaceAccessGroupClampsX(t *testing.T) {
	r := PlaceAccessGroup(RectSite(800, 600), geo.Pt(790, 300), lot(40), lot(40), 20)
	assert.InDelta(t, 800-20-35.2, r[0].X, 1e-9)
}

func TestPlaceAccessGroupProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	const s = 20.0
	properties.Property("two distinct lots inside the boundary setback", prop.ForAll(
		func(ax, ay, h, extra float64) bool {
			w := 35.2
			site := RectSite(2*s+w+extra, 2*s+2*h+s+extra)
			b := site.Bounds
			r := PlaceAccessGroup(site, geo.Pt(ax*b.W, ay*b.H), lot(h), lot(h), s)
			if r[0] == r[1] {
				return false
			}
			return site.Inset(r[0], s) && site.Inset(r[1], s) && geo.Separated(r[0], r[1], s)
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0, 1),
		gen.Float64Range(5, 80),
		gen.Float64Range(0, 400),
	))

	properties.TestingRun(t)
}

func TestAccessFacilityOrientation(t *testing.T) {
	in := scenarioInput()
	p, err := NewPlannerFromInput(in, DefaultConfig(), Options{})
	require.NoError(t, err)
	require.Equal(t, 1, p.Primary())

	// Primary sits on the left edge: 37x22 turns upright.
	f := p.accessFacility(1)
	assert.Equal(t, 22.0, f.Width)
	assert.Equal(t, 37.0, f.Height)
	assert.Equal(t, "Guide 1", f.Name)

	other := p.accessFacility(0)
	assert.Equal(t, 10.0, other.Width)
	assert.Equal(t, "Guide 2", other.Name)

	// On the bottom edge the primary stays wide.
	in.AccessPoints = []geo.Point2D{geo.Pt(400, 0)}
	in.PrimaryAccess = Facility{Name: "Guide 1", Width: 22, Height: 37}
	p, err = NewPlannerFromInput(in, DefaultConfig(), Options{})
	require.NoError(t, err)
	f = p.accessFacility(0)
	assert.Equal(t, 37.0, f.Width)
	assert.Equal(t, 22.0, f.Height)
}

func TestSearchAccessFacility(t *testing.T) {
	b := &branch{
		site:  RectSite(800, 600),
		cfg:   DefaultConfig(),
		tally: NewTally(),
		main:  place(Facility{Name: "main", Width: 300, Height: 150}, RoleMain, geo.R(420, 20, 300, 150)),
	}
	f := Facility{Name: "Guide 2", Width: 10, Height: 10}

	pr := b.searchAccessFacility(f, geo.Pt(200, 600))
	require.True(t, pr.found)
	// First sample in scan order: X outer from -80, Y inner from -80.
	assert.Equal(t, geo.R(120, 520, 10, 10), pr.rect)
	assert.Zero(t, b.tally.Total())

	pr = b.searchAccessFacility(f, geo.Pt(0, 200))
	require.True(t, pr.found)
	assert.Equal(t, geo.R(20, 120, 10, 10), pr.rect)
	// dx -80..10 are all outside the boundary setback: 10 columns of 17.
	assert.Equal(t, 170, b.tally[FailInsufficientSpace])
}

func TestSearchAccessFacilityExhausted(t *testing.T) {
	b := &branch{
		site:  RectSite(800, 600),
		cfg:   DefaultConfig(),
		tally: NewTally(),
		main:  place(Facility{Name: "main", Width: 700, Height: 500}, RoleMain, geo.R(50, 50, 700, 500)),
	}
	pr := b.searchAccessFacility(Facility{Name: "g", Width: 10, Height: 10}, geo.Pt(400, 300))
	assert.False(t, pr.found)
	assert.Equal(t, 17*17, b.tally.Total())
}
