package validation

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewReportIsValid(t *testing.T) {
	r := NewReport()
	if !r.Valid || r.Err() != nil {
		t.Fatalf("new report: valid=%v err=%v", r.Valid, r.Err())
	}
	if r.Summary != "0 errors, 0 warnings, 0 info" {
		t.Errorf("Summary = %q", r.Summary)
	}
}

func TestAddSetsSeverity(t *testing.T) {
	r := NewReport()
	// Callers cannot smuggle in a different severity.
	r.AddError(Result{Level: LevelSchema, Severity: SeverityInfo, Message: "bad value", SpecPath: "site.width"})
	r.AddWarning(Result{Level: LevelDerived, Message: "heads up"})
	r.AddInfo(Result{Level: LevelDerived, Message: "fyi"})

	if r.Valid {
		t.Error("report with an error should be invalid")
	}
	checks := []struct {
		got  []Result
		want Severity
	}{
		{r.Errors, SeverityError},
		{r.Warnings, SeverityWarning},
		{r.Info, SeverityInfo},
	}
	for _, c := range checks {
		if len(c.got) != 1 || c.got[0].Severity != c.want {
			t.Errorf("%s bucket = %+v", c.want, c.got)
		}
	}
	if r.Summary != "1 errors, 1 warnings, 1 info" {
		t.Errorf("Summary = %q", r.Summary)
	}
}

func TestWarningsKeepReportValid(t *testing.T) {
	r := NewReport()
	r.AddWarning(Result{Level: LevelDerived, Message: "coverage is high"})
	r.AddInfo(Result{Level: LevelDerived, Message: "150 vehicles"})
	if !r.Valid {
		t.Error("warnings and info must not invalidate a report")
	}
}

func TestErrUnwrapsToFindings(t *testing.T) {
	r := NewReport()
	r.AddError(Result{Level: LevelSchema, Message: "bad value", SpecPath: "site.width"})
	r.AddError(Result{Level: LevelSchema, Message: "no access points"})

	err := fmt.Errorf("loading: %w", r.Err())
	if got := err.Error(); got != "loading: site.width: bad value; no access points" {
		t.Errorf("Error() = %q", got)
	}

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatal("errors.As should find *Error")
	}
	if len(verr.Findings) != 2 {
		t.Fatalf("Findings = %d, want 2", len(verr.Findings))
	}

	// The error is a snapshot; later findings do not leak into it.
	r.AddError(Result{Message: "late"})
	if len(verr.Findings) != 2 {
		t.Error("Err() should copy the findings")
	}
}

func TestErrorLookups(t *testing.T) {
	r := NewReport()
	r.AddError(Result{Level: LevelPlacement, Message: "too close", SpecPath: "placement.separation", Facility: "UT", ConflictWith: "Admin"})
	r.AddError(Result{Level: LevelSchema, Message: "missing", SpecPath: "site"})
	r.AddError(Result{Level: LevelPlacement, Message: "outside", SpecPath: "placement.boundary", Facility: "Admin"})

	if got := r.ErrorsAt("placement.separation"); len(got) != 1 || got[0].Facility != "UT" {
		t.Errorf("ErrorsAt(separation) = %+v", got)
	}
	if len(r.ErrorsAt("nowhere")) != 0 {
		t.Error("ErrorsAt on an unknown path should be empty")
	}

	admin := r.ErrorsFor("Admin")
	if len(admin) != 2 {
		t.Fatalf("ErrorsFor(Admin) = %d results, want 2", len(admin))
	}
	if admin[0].Message != "too close" || admin[1].Message != "outside" {
		t.Errorf("ErrorsFor order = %q, %q", admin[0].Message, admin[1].Message)
	}
	if len(r.ErrorsFor("Substation")) != 0 {
		t.Error("ErrorsFor on an uninvolved facility should be empty")
	}
}

func TestMerge(t *testing.T) {
	r1 := NewReport()
	r1.AddWarning(Result{Level: LevelSchema, Message: "warn1"})

	r2 := NewReport()
	r2.AddError(Result{Level: LevelPlacement, Message: "err1"})
	r2.AddWarning(Result{Level: LevelPlacement, Message: "warn2"})
	r2.AddInfo(Result{Level: LevelPlacement, Message: "info1"})

	r1.Merge(r2)
	if r1.Valid {
		t.Error("merging an invalid report should invalidate")
	}
	if r1.Summary != "1 errors, 2 warnings, 1 info" {
		t.Errorf("Summary = %q", r1.Summary)
	}

	r1.Merge(nil)
	if len(r1.Errors) != 1 {
		t.Error("merging nil should change nothing")
	}
}
