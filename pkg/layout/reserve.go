package layout

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
)

// Reserve is the largest unobstructed square left on a site.
type Reserve struct {
	Origin geo.Point2D `json:"origin"`
	Side   float64     `json:"side"`
	Found  bool        `json:"found"`
}

// Rect returns the reserve square.
func (r Reserve) Rect() geo.Rect {
	return geo.R(r.Origin.X, r.Origin.Y, r.Side, r.Side)
}

// occupancy is a column-major grid of step-sized cells over the site
// bounds. Cell (i, j) covers [i·step, (i+1)·step) on each axis, measured
// from the bounds corner.
type occupancy struct {
	cols, rows int
	step       float64
	origin     geo.Point2D
	blocked    []bool
}

func newOccupancy(site Site, step float64) *occupancy {
	b := site.Bounds
	g := &occupancy{
		cols:   int(math.Floor(b.W / step)),
		rows:   int(math.Floor(b.H / step)),
		step:   step,
		origin: b.Min(),
	}
	if g.cols < 0 {
		g.cols = 0
	}
	if g.rows < 0 {
		g.rows = 0
	}
	g.blocked = make([]bool, g.cols*g.rows)
	return g
}

func (g *occupancy) block(i0, i1, j0, j1 int) {
	i0, j0 = max(i0, 0), max(j0, 0)
	i1, j1 = min(i1, g.cols), min(j1, g.rows)
	for i := i0; i < i1; i++ {
		for j := j0; j < j1; j++ {
			g.blocked[i*g.rows+j] = true
		}
	}
}

// blockBand marks every cell within setback of the bounds.
func (g *occupancy) blockBand(site Site, setback float64) {
	if setback <= 0 {
		return
	}
	b := site.Bounds
	lo := int(math.Ceil(setback / g.step))
	hiI := int(math.Floor((b.W - setback) / g.step))
	hiJ := int(math.Floor((b.H - setback) / g.step))
	g.block(0, lo, 0, g.rows)
	g.block(hiI, g.cols, 0, g.rows)
	g.block(0, g.cols, 0, lo)
	g.block(0, g.cols, hiJ, g.rows)
}

// blockRect marks every cell that overlaps the interior of r.
func (g *occupancy) blockRect(r geo.Rect) {
	x0 := (r.Left() - g.origin.X) / g.step
	x1 := (r.Right() - g.origin.X) / g.step
	y0 := (r.Bottom() - g.origin.Y) / g.step
	y1 := (r.Top() - g.origin.Y) / g.step
	g.block(int(math.Floor(x0)), int(math.Ceil(x1)), int(math.Floor(y0)), int(math.Ceil(y1)))
}

// blockOutside marks every cell whose center falls outside the polygon.
func (g *occupancy) blockOutside(poly *geo.Polygon) {
	for i := 0; i < g.cols; i++ {
		for j := 0; j < g.rows; j++ {
			c := geo.Pt(g.origin.X+(float64(i)+0.5)*g.step, g.origin.Y+(float64(j)+0.5)*g.step)
			if !poly.Contains(c) {
				g.blocked[i*g.rows+j] = true
			}
		}
	}
}

// largestSquare runs the largest-square dynamic program. The first strict
// maximum in column-major scan order wins.
func (g *occupancy) largestSquare() (oi, oj, side int) {
	prev := make([]int, g.rows)
	cur := make([]int, g.rows)
	for i := 0; i < g.cols; i++ {
		for j := 0; j < g.rows; j++ {
			switch {
			case g.blocked[i*g.rows+j]:
				cur[j] = 0
			case i == 0 || j == 0:
				cur[j] = 1
			default:
				cur[j] = 1 + min(prev[j], cur[j-1], prev[j-1])
			}
			if cur[j] > side {
				side = cur[j]
				oi, oj = i-side+1, j-side+1
			}
		}
		prev, cur = cur, prev
	}
	return oi, oj, side
}

// FindReserve returns the largest square that keeps setback from the site
// bounds and from every footprint and, on polygon sites, has every cell
// center inside the polygon. The site is sampled at step.
func FindReserve(site Site, footprints []geo.Rect, setback, step float64) Reserve {
	if step <= 0 {
		return Reserve{}
	}
	g := newOccupancy(site, step)
	g.blockBand(site, setback)
	for _, r := range footprints {
		g.blockRect(r.Expand(setback))
	}
	if site.Polygon != nil {
		g.blockOutside(site.Polygon)
	}

	oi, oj, side := g.largestSquare()
	if side == 0 {
		return Reserve{}
	}
	return Reserve{
		Origin: geo.Pt(g.origin.X+float64(oi)*step, g.origin.Y+float64(oj)*step),
		Side:   float64(side) * step,
		Found:  true,
	}
}

// FindReserves computes the reserve of each arrangement concurrently.
// Results line up with the input slice.
func FindReserves(ctx context.Context, site Site, cfg Config, arrangements []Arrangement, workers int) ([]Reserve, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]Reserve, len(arrangements))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range arrangements {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = FindReserve(site, arrangements[i].Rects(), cfg.Setback, cfg.ReserveStep)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
