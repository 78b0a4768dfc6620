package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

func smallGroup() []Facility {
	return []Facility{
		{Name: "A", Width: 10, Height: 10},
		{Name: "B", Width: 10, Height: 10},
		{Name: "C", Width: 10, Height: 10},
	}
}

func anchoredArranger() *Arranger {
	return NewArranger(ArrangerConfig{Order: []string{"C"}, NearAnchor: "A", FarAnchor: "B"}, DefaultConfig())
}

func TestArrangeTieGoesToStart(t *testing.T) {
	main := geo.R(100, 100, 100, 50)
	// Group origin is (125, 170) and its end (175, 170); (150, 0) is
	// equidistant from both.
	g := anchoredArranger().Arrange(smallGroup(), SideTop, main, AxisHorizontal, geo.Pt(150, 0))

	assert.Equal(t, []string{"A", "C", "B"}, g.Sequence)
	assert.Equal(t, geo.Pt(0, 0), g.Offsets["A"])
	assert.Equal(t, geo.Pt(20, 0), g.Offsets["C"])
	assert.Equal(t, geo.Pt(40, 0), g.Offsets["B"])
	assert.Equal(t, 50.0, g.ExtentX)
	assert.Equal(t, 10.0, g.ExtentY)
}

func TestArrangeNearAnchorAtEnd(t *testing.T) {
	main := geo.R(100, 100, 100, 50)
	g := anchoredArranger().Arrange(smallGroup(), SideTop, main, AxisHorizontal, geo.Pt(300, 0))

	assert.Equal(t, []string{"B", "C", "A"}, g.Sequence)
	assert.Equal(t, geo.Pt(0, 0), g.Offsets["B"])
	assert.Equal(t, geo.Pt(40, 0), g.Offsets["A"])
}

func TestArrangeVertical(t *testing.T) {
	main := geo.R(100, 100, 50, 100)
	group := []Facility{
		{Name: "A", Width: 10, Height: 20},
		{Name: "B", Width: 30, Height: 10},
		{Name: "C", Width: 5, Height: 5},
	}
	g := anchoredArranger().Arrange(group, SideLeft, main, AxisVertical, geo.Pt(0, 0))

	assert.Equal(t, 30.0, g.ExtentX, "depth is the widest facility")
	assert.Equal(t, 55.0, g.ExtentY, "length is heights plus two gaps")
	assert.Equal(t, []string{"A", "C", "B"}, g.Sequence)
	assert.Equal(t, geo.Pt(0, 0), g.Offsets["A"])
	assert.Equal(t, geo.Pt(0, 30), g.Offsets["C"])
	assert.Equal(t, geo.Pt(0, 45), g.Offsets["B"])
}

func TestArrangeUnorderedFollowInputOrder(t *testing.T) {
	group := []Facility{
		{Name: "D", Width: 10, Height: 10},
		{Name: "E", Width: 10, Height: 10},
		{Name: "C", Width: 10, Height: 10},
	}
	a := NewArranger(ArrangerConfig{Order: []string{"C", "missing"}}, DefaultConfig())
	g := a.Arrange(group, SideBottom, geo.R(0, 200, 100, 50), AxisHorizontal, geo.Pt(0, 0))

	assert.Equal(t, []string{"C", "D", "E"}, g.Sequence)
}

func TestArrangeFarAnchorWithoutNear(t *testing.T) {
	a := NewArranger(ArrangerConfig{NearAnchor: "missing", FarAnchor: "A"}, DefaultConfig())
	g := a.Arrange(smallGroup(), SideTop, geo.R(0, 0, 100, 50), AxisHorizontal, geo.Pt(0, 0))

	assert.Equal(t, []string{"B", "C", "A"}, g.Sequence)
}

func TestArrangeEmpty(t *testing.T) {
	g := anchoredArranger().Arrange(nil, SideTop, geo.R(0, 0, 100, 50), AxisHorizontal, geo.Pt(0, 0))
	assert.Empty(t, g.Offsets)
	assert.Zero(t, g.ExtentX)
	assert.Zero(t, g.ExtentY)
}

func TestArrangeDeterministic(t *testing.T) {
	in := defaultInput(t)
	a := NewArranger(in.Arranger, DefaultConfig())
	main := geo.R(120, 120, 300, 150)
	primary := in.AccessPoints[1]

	first := a.Arrange(in.Secondary, SideTop, main, AxisHorizontal, primary)
	for i := 0; i < 5; i++ {
		again := a.Arrange(in.Secondary, SideTop, main, AxisHorizontal, primary)
		require.Equal(t, first, again)
	}

	// Anchors occupy the two ends.
	require.Len(t, first.Sequence, 8)
	ends := []string{first.Sequence[0], first.Sequence[7]}
	assert.ElementsMatch(t, []string{"Admin", "Wastewater Treatment"}, ends)
	// The packed group never overlaps itself.
	for i := 1; i < len(first.Sequence); i++ {
		prev := first.Offsets[first.Sequence[i-1]]
		cur := first.Offsets[first.Sequence[i]]
		assert.Greater(t, cur.X, prev.X)
	}
}

func TestGroupOrigin(t *testing.T) {
	main := geo.R(100, 100, 200, 100)
	s := 20.0
	assert.Equal(t, geo.Pt(30, 125), groupOrigin(SideLeft, main, 50, 50, s))
	assert.Equal(t, geo.Pt(320, 125), groupOrigin(SideRight, main, 50, 50, s))
	assert.Equal(t, geo.Pt(175, 220), groupOrigin(SideTop, main, 50, 50, s))
	assert.Equal(t, geo.Pt(175, 30), groupOrigin(SideBottom, main, 50, 50, s))
}
