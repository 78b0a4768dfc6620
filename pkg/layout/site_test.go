package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

func TestFreeEdges(t *testing.T) {
	site := RectSite(800, 600)
	points := []geo.Point2D{geo.Pt(200, 600), geo.Pt(0, 200)}
	assert.Equal(t, []Side{SideBottom, SideRight}, site.FreeEdges(points, 50))
}

func TestFreeEdgesFirstMatchOnly(t *testing.T) {
	site := RectSite(800, 600)
	// A corner point marks only the top edge.
	points := []geo.Point2D{geo.Pt(10, 590)}
	assert.Equal(t, []Side{SideBottom, SideLeft, SideRight}, site.FreeEdges(points, 50))
}

func TestFreeEdgesNone(t *testing.T) {
	site := RectSite(800, 600)
	points := []geo.Point2D{geo.Pt(400, 600), geo.Pt(400, 0), geo.Pt(0, 300), geo.Pt(800, 300)}
	assert.Empty(t, site.FreeEdges(points, 50))
}

func TestFreeEdgesInteriorPoint(t *testing.T) {
	site := RectSite(800, 600)
	points := []geo.Point2D{geo.Pt(400, 300)}
	assert.Len(t, site.FreeEdges(points, 50), 4)
}

func TestPolygonSite(t *testing.T) {
	// Clockwise input is normalized.
	poly := geo.NewPolygon(geo.Pt(0, 0), geo.Pt(0, 100), geo.Pt(200, 100), geo.Pt(200, 0))
	site := PolygonSite(poly)

	assert.True(t, site.IsPolygon())
	assert.Equal(t, geo.R(0, 0, 200, 100), site.Bounds)
	assert.True(t, site.Contains(geo.R(10, 10, 50, 50)))
	assert.False(t, site.Contains(geo.R(180, 10, 50, 50)))
}

func TestSiteInset(t *testing.T) {
	site := RectSite(100, 100)
	assert.True(t, site.Inset(geo.R(20, 20, 60, 60), 20))
	assert.False(t, site.Inset(geo.R(19, 20, 60, 60), 20))
	assert.True(t, site.Contains(geo.R(-50, -50, 10, 10)), "rectangular sites skip polygon containment")
}

func TestSteps(t *testing.T) {
	assert.Equal(t, []float64{20, 120, 220, 320, 420}, steps(20, 480, 100))
	assert.Equal(t, []float64{20}, steps(20, 20, 100))
	assert.Nil(t, steps(20, 19, 100))
	assert.Len(t, steps(-80, 80, 10), 17)
}
