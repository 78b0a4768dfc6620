package layout

// Failure is a soft failure category. Failures abandon one search branch
// and are counted; they are never returned as errors.
type Failure string

const (
	FailInsufficientSpace Failure = "insufficient_space"
	FailCollision         Failure = "collision"
	FailOutsidePolygon    Failure = "outside_polygon"
	FailNoUtilityPosition Failure = "no_substation_position"
)

// Failures lists the categories in reporting order.
var Failures = []Failure{
	FailInsufficientSpace,
	FailCollision,
	FailOutsidePolygon,
	FailNoUtilityPosition,
}

// Tally counts failures by category.
type Tally map[Failure]int

// NewTally returns a tally with every category present at zero.
func NewTally() Tally {
	t := make(Tally, len(Failures))
	for _, f := range Failures {
		t[f] = 0
	}
	return t
}

// Merge adds the counts of other into t.
func (t Tally) Merge(other Tally) {
	for f, n := range other {
		t[f] += n
	}
}

// Total returns the sum of all counts.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Dominant returns the category with the highest count. Ties go to the
// earlier category in Failures. ok is false when nothing was counted.
func (t Tally) Dominant() (f Failure, ok bool) {
	best := 0
	for _, c := range Failures {
		if t[c] > best {
			best = t[c]
			f = c
		}
	}
	return f, best > 0
}

// Hint is a short suggestion for resolving a dominant failure.
func (f Failure) Hint() string {
	switch f {
	case FailInsufficientSpace:
		return "site is too small; shrink facilities or reduce the setback"
	case FailCollision:
		return "facilities violate the setback; adjust positions or sizes"
	case FailOutsidePolygon:
		return "facilities fall outside the site polygon; check the vertices"
	case FailNoUtilityPosition:
		return "no free edge fits the utility facility; move an access point or other facilities"
	}
	return "check the input values"
}
