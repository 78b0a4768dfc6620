package validation

import (
	"fmt"
	"slices"
	"strings"
)

// Level is the stage that produced a finding: project schema checks,
// derived-parameter checks, or checks on a placed arrangement.
type Level string

const (
	LevelSchema    Level = "schema"
	LevelDerived   Level = "derived"
	LevelPlacement Level = "placement"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is one finding. SpecPath points into the project file for schema
// findings and names the broken invariant (placement.separation, ...) for
// placement findings. Facility and ConflictWith name the placed
// facilities involved.
type Result struct {
	Level        Level    `json:"level"`
	Severity     Severity `json:"severity"`
	Message      string   `json:"message"`
	SpecPath     string   `json:"spec_path,omitempty"`
	Facility     string   `json:"facility,omitempty"`
	ActualValue  any      `json:"actual_value,omitempty"`
	Expected     string   `json:"expected,omitempty"`
	ConflictWith string   `json:"conflict_with,omitempty"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

func (r Result) String() string {
	if r.SpecPath == "" {
		return r.Message
	}
	return r.SpecPath + ": " + r.Message
}

// Report collects the findings of one validation pass. A report is valid
// until its first error.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Info     []Result `json:"info"`
	Summary  string   `json:"summary"`
}

func NewReport() *Report {
	r := &Report{Valid: true, Errors: []Result{}, Warnings: []Result{}, Info: []Result{}}
	r.summarize()
	return r
}

func (r *Report) AddError(res Result)   { r.add(SeverityError, res) }
func (r *Report) AddWarning(res Result) { r.add(SeverityWarning, res) }
func (r *Report) AddInfo(res Result)    { r.add(SeverityInfo, res) }

// add files res under sev, overriding whatever severity the caller set.
func (r *Report) add(sev Severity, res Result) {
	res.Severity = sev
	switch sev {
	case SeverityError:
		r.Errors = append(r.Errors, res)
		r.Valid = false
	case SeverityWarning:
		r.Warnings = append(r.Warnings, res)
	default:
		r.Info = append(r.Info, res)
	}
	r.summarize()
}

// Merge appends other's findings. A nil report is ignored.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	r.Valid = r.Valid && other.Valid
	r.summarize()
}

// ErrorsAt returns the errors recorded against path, in insertion order.
func (r *Report) ErrorsAt(path string) []Result {
	return r.errorsWhere(func(e Result) bool { return e.SpecPath == path })
}

// ErrorsFor returns the errors that involve facility, either as the
// subject or as the conflicting party.
func (r *Report) ErrorsFor(facility string) []Result {
	return r.errorsWhere(func(e Result) bool {
		return e.Facility == facility || e.ConflictWith == facility
	})
}

func (r *Report) errorsWhere(keep func(Result) bool) []Result {
	var out []Result
	for _, e := range r.Errors {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Err returns nil for a valid report and an *Error carrying the error
// findings otherwise.
func (r *Report) Err() error {
	if r.Valid {
		return nil
	}
	return &Error{Findings: slices.Clone(r.Errors)}
}

func (r *Report) summarize() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}

// Error is an invalid report in error form. Callers recover the findings
// with errors.As.
type Error struct {
	Findings []Result
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Findings))
	for i, f := range e.Findings {
		msgs[i] = f.String()
	}
	return strings.Join(msgs, "; ")
}
