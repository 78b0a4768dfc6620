package layout

import "github.com/ChicagoDave/siteplanner/pkg/geo"

// isClear reports whether candidate keeps at least setback from every
// committed placement. A single failing pair rejects the candidate.
func isClear(candidate geo.Rect, placed []Placement, setback float64) bool {
	for _, p := range placed {
		if !geo.Separated(candidate, p.Rect, setback) {
			return false
		}
	}
	return true
}

// branch is the working set of one (orientation, main position, side)
// combination. Each branch owns its slices and tally, so branches can be
// evaluated concurrently.
type branch struct {
	site  Site
	cfg   Config
	tally Tally

	main      Placement
	secondary []Placement
	parking   []Placement
	access    []Placement
}

// committed returns everything placed so far, main facility first.
func (b *branch) committed() []Placement {
	out := make([]Placement, 0, 1+len(b.secondary)+len(b.parking)+len(b.access))
	out = append(out, b.main)
	out = append(out, b.secondary...)
	out = append(out, b.parking...)
	out = append(out, b.access...)
	return out
}

// admit runs the per-candidate checks shared by the access and utility
// searches. It counts a failure when count is set.
func (b *branch) admit(r geo.Rect, count bool) bool {
	fail := func(f Failure) bool {
		if count {
			b.tally[f]++
		}
		return false
	}
	s := b.cfg.Setback
	switch {
	case !b.site.Inset(r, s):
		return fail(FailInsufficientSpace)
	case !b.site.Contains(r):
		return fail(FailOutsidePolygon)
	case !geo.Separated(r, b.main.Rect, s):
		return fail(FailCollision)
	case !isClear(r, b.secondary, s):
		return fail(FailCollision)
	case !isClear(r, b.parking, s):
		return fail(FailCollision)
	case !isClear(r, b.access, s):
		return fail(FailCollision)
	}
	return true
}
