package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ChicagoDave/siteplanner/pkg/geo"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
)

// validate is a singleton validator instance. Field names are reported by
// their YAML keys so SpecPath matches what the user wrote.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidateSchema performs Level 1 (schema) validation on a parsed Project.
// It checks structural correctness before any placement search runs.
func ValidateSchema(p *spec.Project) *Report {
	r := NewReport()
	if p == nil {
		r.AddError(Result{Level: LevelSchema, Message: "project is nil", SpecPath: "."})
		return r
	}

	validateTags(p, r)
	validateSite(p, r)
	validateSecondary(p, r)
	validateAccessPoints(p, r)
	validateFit(p, r)

	return r
}

func validateTags(p *spec.Project, r *Report) {
	err := validate.Struct(p)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		r.AddError(Result{Level: LevelSchema, Message: err.Error(), SpecPath: "."})
		return
	}
	for _, fe := range verrs {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("%s failed %q rule", path, fe.Tag()),
			SpecPath:    path,
			ActualValue: fe.Value(),
			Expected:    expectation(fe),
		})
	}
}

func expectation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "a value"
	case "gt":
		return "> " + fe.Param()
	case "gte":
		return ">= " + fe.Param()
	case "min":
		return "at least " + fe.Param()
	case "oneof":
		return "one of: " + fe.Param()
	}
	return fe.Tag()
}

func validateSite(p *spec.Project, r *Report) {
	s := p.Site
	if !s.IsPolygon() {
		if s.Width <= 0 || s.Height <= 0 {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("rectangular site needs positive width and height (got %.1fx%.1f)", s.Width, s.Height),
				SpecPath:    "site",
				ActualValue: fmt.Sprintf("%.1fx%.1f", s.Width, s.Height),
				Expected:    "width > 0, height > 0",
			})
		}
		return
	}

	if len(s.Vertices) < 3 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "polygon site needs at least 3 vertices",
			SpecPath:    "site.vertices",
			ActualValue: len(s.Vertices),
			Expected:    ">= 3",
		})
		return
	}

	poly := SitePolygon(s)
	if poly.Area() <= 0 {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "polygon site has zero area",
			SpecPath: "site.vertices",
		})
		return
	}
	if !poly.IsSimple() {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "polygon site edges cross each other",
			SpecPath:    "site.vertices",
			Expected:    "a simple polygon",
			Suggestions: []string{"List vertices in boundary order without self-intersections"},
		})
	}
}

// SitePolygon converts polygon vertices from the project file.
func SitePolygon(s spec.SiteDef) geo.Polygon {
	pts := make([]geo.Point2D, len(s.Vertices))
	for i, v := range s.Vertices {
		pts[i] = geo.Pt(v.X, v.Y)
	}
	return geo.NewPolygon(pts...)
}

func validateSecondary(p *spec.Project, r *Report) {
	sec := p.Secondary
	names := make(map[string]bool, len(sec.Facilities))
	for i, f := range sec.Facilities {
		if names[f.Name] {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("duplicate secondary facility name %q", f.Name),
				SpecPath:    fmt.Sprintf("secondary.facilities[%d].name", i),
				ActualValue: f.Name,
			})
		}
		names[f.Name] = true
		if f.Name == p.Main.Name || f.Name == p.Utility.Name {
			r.AddError(Result{
				Level:        LevelSchema,
				Message:      fmt.Sprintf("secondary facility %q reuses a reserved facility name", f.Name),
				SpecPath:     fmt.Sprintf("secondary.facilities[%d].name", i),
				ConflictWith: "main_facility.name / utility_facility.name",
			})
		}
	}

	for _, anchor := range []struct{ path, name string }{
		{"secondary.near_access_anchor", sec.NearAnchor},
		{"secondary.far_anchor", sec.FarAnchor},
	} {
		if anchor.name != "" && !names[anchor.name] {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("anchor %q is not a secondary facility", anchor.name),
				SpecPath:    anchor.path,
				ActualValue: anchor.name,
			})
		}
	}
	if sec.NearAnchor != "" && sec.NearAnchor == sec.FarAnchor {
		r.AddError(Result{
			Level:        LevelSchema,
			Message:      "near and far anchors must differ",
			SpecPath:     "secondary.far_anchor",
			ConflictWith: "secondary.near_access_anchor",
		})
	}

	for i, name := range sec.Order {
		if !names[name] {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("order entry %q matches no secondary facility and is ignored", name),
				SpecPath:    fmt.Sprintf("secondary.order[%d]", i),
				ActualValue: name,
			})
		}
	}
}

func validateAccessPoints(p *spec.Project, r *Report) {
	bounds := siteBounds(p.Site)
	for i, a := range p.AccessPoints {
		if a.X < bounds.Left() || a.X > bounds.Right() || a.Y < bounds.Bottom() || a.Y > bounds.Top() {
			r.AddWarning(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("access point (%.1f, %.1f) lies outside the site bounds", a.X, a.Y),
				SpecPath:    fmt.Sprintf("access_points[%d]", i),
				ActualValue: fmt.Sprintf("(%.1f, %.1f)", a.X, a.Y),
			})
		}
	}
}

// validateFit warns when the main facility cannot fit the site in either
// orientation; the search would return no arrangements.
func validateFit(p *spec.Project, r *Report) {
	b := siteBounds(p.Site)
	setback := p.Search.Setback
	if setback == 0 {
		setback = 20
	}
	w, h := p.Main.Width, p.Main.Height
	fits := func(w, h float64) bool {
		return w+2*setback <= b.W && h+2*setback <= b.H
	}
	if w > 0 && h > 0 && b.Area() > 0 && !fits(w, h) && !fits(h, w) {
		r.AddWarning(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("main facility %.0fx%.0f does not fit the site with a %.0f setback", w, h, setback),
			SpecPath:    "main_facility",
			ActualValue: fmt.Sprintf("%.0fx%.0f", w, h),
			Suggestions: []string{"Enlarge the site or shrink the main facility"},
		})
	}
}

func siteBounds(s spec.SiteDef) geo.Rect {
	if s.IsPolygon() {
		if len(s.Vertices) == 0 {
			return geo.Rect{}
		}
		return SitePolygon(s).Bounds()
	}
	return geo.R(0, 0, s.Width, s.Height)
}
