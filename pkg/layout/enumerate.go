package layout

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/ChicagoDave/siteplanner/pkg/analytics"
	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// ErrInvalidProject is returned when a project fails schema validation.
var ErrInvalidProject = errors.New("invalid project")

// batchSize is the number of grid cells evaluated between budget checks.
// It is fixed so truncated runs stay identical for any worker count.
const batchSize = 64

// Input is everything the search places, already resolved from a project.
type Input struct {
	Site          Site           `json:"site"`
	Main          Facility       `json:"main"`
	Secondary     []Facility     `json:"secondary"`
	Arranger      ArrangerConfig `json:"arranger"`
	AccessPoints  []geo.Point2D  `json:"access_points"`
	PrimaryAccess Facility       `json:"primary_access"`
	OtherAccess   Facility       `json:"other_access"`
	Utility       Facility       `json:"utility"`
	// Parking holds zero or two lots.
	Parking []Facility `json:"parking,omitempty"`
}

// InputFromProject converts a validated project into search input.
func InputFromProject(p *spec.Project, params *analytics.ResolvedParameters) Input {
	in := Input{
		Site: SiteFromSpec(p.Site),
		Main: Facility{Name: p.Main.Name, Category: p.Main.Category, Width: p.Main.Width, Height: p.Main.Height},
		Arranger: ArrangerConfig{
			Order:      append([]string(nil), p.Secondary.Order...),
			NearAnchor: p.Secondary.NearAnchor,
			FarAnchor:  p.Secondary.FarAnchor,
		},
		PrimaryAccess: Facility{Name: "Guide 1", Category: "guide", Width: p.AccessFacilities.Primary.Width, Height: p.AccessFacilities.Primary.Height},
		OtherAccess:   Facility{Name: "Guide", Category: "guide", Width: p.AccessFacilities.Other.Width, Height: p.AccessFacilities.Other.Height},
		Utility:       Facility{Name: p.Utility.Name, Category: p.Utility.Category, Width: p.Utility.Width, Height: p.Utility.Height},
	}
	for _, f := range p.Secondary.Facilities {
		in.Secondary = append(in.Secondary, Facility{Name: f.Name, Category: f.Category, Width: f.Width, Height: f.Height})
	}
	for _, a := range p.AccessPoints {
		in.AccessPoints = append(in.AccessPoints, geo.Pt(a.X, a.Y))
	}
	if params != nil && params.Parking.HasLots() {
		lot := Facility{Category: "parking", Width: params.Parking.LotWidth, Height: params.Parking.LotHeight}
		p1, p2 := lot, lot
		p1.Name, p2.Name = "Parking 1", "Parking 2"
		in.Parking = []Facility{p1, p2}
	}
	return in
}

// Options tunes how a Planner runs. Zero values are valid.
type Options struct {
	// Workers bounds concurrent grid-cell evaluation; 0 uses GOMAXPROCS.
	Workers int
	// MaxArrangements stops the scan once this many arrangements exist;
	// 0 means unlimited.
	MaxArrangements int
	// Logger receives debug traces; nil disables them.
	Logger *log.Logger
}

// Planner enumerates every valid arrangement of one input.
type Planner struct {
	in       Input
	cfg      Config
	opts     Options
	site     Site
	arranger *Arranger
	primary  int
}

// NewPlanner validates a project and prepares a planner for it. Zero
// options fall back to the project's search block. Schema errors are
// wrapped in ErrInvalidProject; the report is always returned.
func NewPlanner(p *spec.Project, opts Options) (*Planner, *validation.Report, error) {
	report := validation.ValidateSchema(p)
	if !report.Valid {
		return nil, report, fmt.Errorf("%w: %w", ErrInvalidProject, report.Err())
	}
	params, derived := analytics.Resolve(p)
	report.Merge(derived)

	if opts.Workers == 0 {
		opts.Workers = p.Search.Workers
	}
	if opts.MaxArrangements == 0 {
		opts.MaxArrangements = p.Search.MaxArrangements
	}

	pl, err := NewPlannerFromInput(InputFromProject(p, params), ConfigFromSearch(p.Search), opts)
	if err != nil {
		return nil, report, err
	}
	return pl, report, nil
}

// NewPlannerFromInput prepares a planner from already-resolved input.
func NewPlannerFromInput(in Input, cfg Config, opts Options) (*Planner, error) {
	if len(in.AccessPoints) == 0 {
		return nil, fmt.Errorf("%w: no access points", ErrInvalidProject)
	}
	if cfg.GridStep <= 0 || cfg.AccessStep <= 0 || cfg.UtilityStep <= 0 || cfg.ReserveStep <= 0 {
		return nil, fmt.Errorf("%w: search steps must be positive", ErrInvalidProject)
	}
	if len(in.Parking) != 0 && len(in.Parking) != 2 {
		return nil, fmt.Errorf("%w: parking needs 0 or 2 lots, got %d", ErrInvalidProject, len(in.Parking))
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}

	primary := 0
	for i, a := range in.AccessPoints {
		if a.Y < in.AccessPoints[primary].Y {
			primary = i
		}
	}

	return &Planner{
		in:       in,
		cfg:      cfg,
		opts:     opts,
		site:     in.Site,
		arranger: NewArranger(in.Arranger, cfg),
		primary:  primary,
	}, nil
}

// Site returns the site being planned.
func (p *Planner) Site() Site { return p.site }

// Config returns the search configuration.
func (p *Planner) Config() Config { return p.cfg }

// Primary returns the index of the primary access point.
func (p *Planner) Primary() int { return p.primary }

// orientation is one way of laying down the main facility.
type orientation struct {
	main    Facility
	rotated bool
	axis    Axis
	sides   [2]Side
}

func (p *Planner) orientations() []orientation {
	return []orientation{
		{main: p.in.Main, axis: AxisHorizontal, sides: [2]Side{SideTop, SideBottom}},
		{main: p.in.Main.Rotated(), rotated: true, axis: AxisVertical, sides: [2]Side{SideLeft, SideRight}},
	}
}

// cell is one main-facility grid position.
type cell struct {
	o   orientation
	pos geo.Point2D
}

type cellResult struct {
	arrangements []Arrangement
	tally        Tally
}

// Enumerate runs the full search. Arrangements come back in scan order:
// orientation, then main X, then main Y, then attachment side, then
// utility edge. The result is the same for any worker count.
func (p *Planner) Enumerate(ctx context.Context) (*Result, error) {
	res := &Result{Tally: NewTally()}
	logger := p.opts.Logger

	parking, ok := p.placeParking(res.Tally)
	if !ok {
		return res, nil
	}

	var cells []cell
	for _, o := range p.orientations() {
		b := p.site.Bounds
		s := p.cfg.Setback
		xs := steps(b.Left()+s, b.Right()-o.main.Width-s, p.cfg.GridStep)
		ys := steps(b.Bottom()+s, b.Top()-o.main.Height-s, p.cfg.GridStep)
		if len(xs) == 0 || len(ys) == 0 {
			res.Tally[FailInsufficientSpace]++
			if logger != nil {
				logger.Debug("main facility does not fit", "axis", o.axis, "width", o.main.Width, "height", o.main.Height)
			}
			continue
		}
		for _, x := range xs {
			for _, y := range ys {
				cells = append(cells, cell{o: o, pos: geo.Pt(x, y)})
			}
		}
	}
	if logger != nil {
		logger.Debug("scanning main positions", "cells", len(cells), "workers", p.opts.Workers)
	}

	for start := 0; start < len(cells); start += batchSize {
		end := min(start+batchSize, len(cells))
		results := make([]cellResult, end-start)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.opts.Workers)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i-start] = p.evaluateCell(cells[i], parking)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for _, r := range results {
			res.Tally.Merge(r.tally)
			for _, a := range r.arrangements {
				if p.opts.MaxArrangements > 0 && len(res.Arrangements) >= p.opts.MaxArrangements {
					res.Truncated = true
					break
				}
				a.ID = len(res.Arrangements)
				res.Arrangements = append(res.Arrangements, a)
			}
		}
		if res.Truncated {
			if logger != nil {
				logger.Debug("arrangement budget reached", "max", p.opts.MaxArrangements, "cells_scanned", end)
			}
			break
		}
	}

	if logger != nil {
		logger.Debug("search complete", "arrangements", len(res.Arrangements), "failures", res.Tally.Total())
	}
	return res, nil
}

// placeParking fixes the two lots for the whole run. Lots that break the
// boundary setback or leave the polygon end the search with no results.
func (p *Planner) placeParking(t Tally) ([]Placement, bool) {
	if len(p.in.Parking) == 0 {
		return nil, true
	}
	rects := PlaceAccessGroup(p.site, p.in.AccessPoints[p.primary], p.in.Parking[0], p.in.Parking[1], p.cfg.Setback)
	out := make([]Placement, 2)
	for i, r := range rects {
		if !p.site.Inset(r, p.cfg.Setback) {
			t[FailInsufficientSpace]++
			return nil, false
		}
		if !p.site.Contains(r) {
			t[FailOutsidePolygon]++
			return nil, false
		}
		out[i] = place(p.in.Parking[i], RoleParking, r)
	}
	return out, true
}

// evaluateCell runs every side and utility candidate for one main position.
func (p *Planner) evaluateCell(c cell, parking []Placement) cellResult {
	tally := NewTally()
	s := p.cfg.Setback
	mainRect := c.o.main.At(c.pos)

	if !isClear(mainRect, parking, s) {
		tally[FailCollision]++
		return cellResult{tally: tally}
	}
	if !p.site.Contains(mainRect) {
		tally[FailOutsidePolygon]++
		return cellResult{tally: tally}
	}

	var out []Arrangement
	for _, side := range c.o.sides {
		b := &branch{
			site:    p.site,
			cfg:     p.cfg,
			tally:   tally,
			main:    place(c.o.main, RoleMain, mainRect),
			parking: parking,
		}
		if !p.attachGroup(b, side, c.o.axis) {
			continue
		}
		if !p.placeAccess(b) {
			continue
		}

		utilities := b.searchUtility(p.in.Utility, p.site.FreeEdges(p.in.AccessPoints, p.cfg.EdgeTolerance))
		if len(utilities) == 0 {
			tally[FailNoUtilityPosition]++
			continue
		}
		for _, u := range utilities {
			out = append(out, Arrangement{
				Main:            MainPlacement{Placement: b.main, Rotated: c.o.rotated, Axis: c.o.axis},
				Secondary:       GroupPlacement{Side: side, Facilities: b.secondary},
				Utility:         u,
				Access:          b.access,
				Parking:         parking,
				AccessPoints:    p.in.AccessPoints,
				AccessDistances: accessDistances(p.in.AccessPoints, mainRect),
			})
		}
	}
	return cellResult{arrangements: out, tally: tally}
}

// attachGroup arranges the secondary group on side, converts it to site
// coordinates, and checks it against the bounds, polygon, and parking.
func (p *Planner) attachGroup(b *branch, side Side, axis Axis) bool {
	s := p.cfg.Setback
	g := p.arranger.Arrange(p.in.Secondary, side, b.main.Rect, axis, p.in.AccessPoints[p.primary])
	if len(p.in.Secondary) == 0 {
		return true
	}

	origin := groupOrigin(side, b.main.Rect, g.ExtentX, g.ExtentY, s)
	if !p.site.Inset(geo.R(origin.X, origin.Y, g.ExtentX, g.ExtentY), s) {
		b.tally[FailInsufficientSpace]++
		return false
	}

	placed := make([]Placement, 0, len(p.in.Secondary))
	for _, f := range p.in.Secondary {
		r := f.At(origin.Add(g.Offsets[f.Name]))
		if !geo.Separated(r, b.main.Rect, s) {
			b.tally[FailCollision]++
			return false
		}
		if !p.site.Contains(r) {
			b.tally[FailOutsidePolygon]++
			return false
		}
		if !isClear(r, b.parking, s) {
			b.tally[FailCollision]++
			return false
		}
		placed = append(placed, place(f, RoleSecondary, r))
	}
	b.secondary = placed
	return true
}

// placeAccess places one facility per access point in input order. Any
// exhausted search abandons the branch.
func (p *Planner) placeAccess(b *branch) bool {
	for i, pt := range p.in.AccessPoints {
		f := p.accessFacility(i)
		pr := b.searchAccessFacility(f, pt)
		if !pr.found {
			return false
		}
		b.access = append(b.access, place(f, RoleAccess, pr.rect))
	}
	return true
}

// accessDistances measures each access point against the two short-edge
// midpoints of the main facility.
func accessDistances(points []geo.Point2D, main geo.Rect) []AccessDistance {
	mids := [2]geo.Point2D{geo.Pt(main.X+main.W/2, main.Y), geo.Pt(main.X+main.W/2, main.Top())}
	if main.W > main.H {
		mids = [2]geo.Point2D{geo.Pt(main.X, main.Y+main.H/2), geo.Pt(main.Right(), main.Y+main.H/2)}
	}
	out := make([]AccessDistance, len(points))
	for i, pt := range points {
		d := AccessDistance{Index: i, Point: pt, Nearest: mids[0], Distance: pt.Manhattan(mids[0])}
		if alt := pt.Manhattan(mids[1]); alt < d.Distance {
			d.Nearest, d.Distance = mids[1], alt
		}
		out[i] = d
	}
	return out
}
