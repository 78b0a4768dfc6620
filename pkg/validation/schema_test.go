package validation

import (
	"strings"
	"testing"

	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

func validProject() *spec.Project {
	return spec.Default()
}

func hasError(r *Report, path string) bool {
	for _, e := range r.Errors {
		if e.SpecPath == path {
			return true
		}
	}
	return false
}

func TestValidateSchemaValid(t *testing.T) {
	r := ValidateSchema(validProject())
	if !r.Valid {
		for _, e := range r.Errors {
			t.Errorf("unexpected error: %s (%s)", e.Message, e.SpecPath)
		}
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %d", len(r.Warnings))
	}
}

func TestValidateSchemaNil(t *testing.T) {
	r := ValidateSchema(nil)
	if r.Valid {
		t.Error("nil project should be invalid")
	}
}

func TestValidateSchemaRectangleSize(t *testing.T) {
	p := validProject()
	p.Site.Width = 0
	r := ValidateSchema(p)
	if r.Valid {
		t.Fatal("zero-width site should be invalid")
	}
	if !hasError(r, "site") {
		t.Errorf("expected error at site, got %+v", r.Errors)
	}
}

func TestValidateSchemaBadShape(t *testing.T) {
	p := validProject()
	p.Site.Shape = "circle"
	r := ValidateSchema(p)
	if !hasError(r, "site.shape") {
		t.Errorf("expected error at site.shape, got %+v", r.Errors)
	}
}

func TestValidateSchemaNoAccessPoints(t *testing.T) {
	p := validProject()
	p.AccessPoints = nil
	r := ValidateSchema(p)
	if !hasError(r, "access_points") {
		t.Errorf("expected error at access_points, got %+v", r.Errors)
	}
}

func TestValidateSchemaNonPositiveFacility(t *testing.T) {
	p := validProject()
	p.Secondary.Facilities[2].Width = -5
	r := ValidateSchema(p)
	if !hasError(r, "secondary.facilities[2].width") {
		t.Errorf("expected error at secondary.facilities[2].width, got %+v", r.Errors)
	}
}

func TestValidateSchemaPolygon(t *testing.T) {
	p := validProject()
	p.Site = spec.SiteDef{
		Shape: spec.ShapePolygon,
		Vertices: []spec.PointDef{
			{X: 0, Y: 0}, {X: 800, Y: 0}, {X: 800, Y: 600}, {X: 0, Y: 600},
		},
	}
	r := ValidateSchema(p)
	if !r.Valid {
		t.Errorf("rectangular polygon should be valid: %+v", r.Errors)
	}

	// Bowtie
	p.Site.Vertices = []spec.PointDef{
		{X: 0, Y: 0}, {X: 800, Y: 600}, {X: 800, Y: 0}, {X: 0, Y: 600},
	}
	r = ValidateSchema(p)
	if !hasError(r, "site.vertices") {
		t.Errorf("bowtie polygon should be rejected, got %+v", r.Errors)
	}

	p.Site.Vertices = p.Site.Vertices[:2]
	r = ValidateSchema(p)
	if !hasError(r, "site.vertices") {
		t.Errorf("two-vertex polygon should be rejected, got %+v", r.Errors)
	}
}

func TestValidateSchemaSecondaryNames(t *testing.T) {
	p := validProject()
	p.Secondary.Facilities[1].Name = "Admin"
	r := ValidateSchema(p)
	if !hasError(r, "secondary.facilities[1].name") {
		t.Errorf("duplicate name should be rejected, got %+v", r.Errors)
	}
}

func TestValidateSchemaAnchors(t *testing.T) {
	p := validProject()
	p.Secondary.FarAnchor = "Cafeteria"
	r := ValidateSchema(p)
	if !hasError(r, "secondary.far_anchor") {
		t.Errorf("unknown anchor should be rejected, got %+v", r.Errors)
	}

	p = validProject()
	p.Secondary.FarAnchor = p.Secondary.NearAnchor
	r = ValidateSchema(p)
	if !hasError(r, "secondary.far_anchor") {
		t.Errorf("identical anchors should be rejected, got %+v", r.Errors)
	}
}

func TestValidateSchemaOrderWarning(t *testing.T) {
	p := validProject()
	p.Secondary.Order = append(p.Secondary.Order, "Cafeteria")
	r := ValidateSchema(p)
	if !r.Valid {
		t.Errorf("unknown order entry should only warn: %+v", r.Errors)
	}
	if len(r.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(r.Warnings))
	}
	if !strings.Contains(r.Warnings[0].Message, "Cafeteria") {
		t.Errorf("warning should name the entry: %s", r.Warnings[0].Message)
	}
}

func TestValidateSchemaMainTooLarge(t *testing.T) {
	p := validProject()
	p.Main.Width = 900
	p.Main.Height = 700
	r := ValidateSchema(p)
	if !r.Valid {
		t.Errorf("oversized main facility should only warn: %+v", r.Errors)
	}
	if len(r.Warnings) == 0 {
		t.Error("expected fit warning")
	}
}

func TestValidateSchemaAccessOutsideSite(t *testing.T) {
	p := validProject()
	p.AccessPoints = append(p.AccessPoints, spec.PointDef{X: 1200, Y: 50})
	r := ValidateSchema(p)
	if len(r.Warnings) != 1 || r.Warnings[0].SpecPath != "access_points[2]" {
		t.Errorf("expected warning at access_points[2], got %+v", r.Warnings)
	}
}
