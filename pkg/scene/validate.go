package scene

import (
	"fmt"

	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// boundsTolerance absorbs rounding in entity centers.
const boundsTolerance = 1e-6

// ValidateGraph checks that a scene graph is internally consistent before
// it is handed to a renderer. Broken IDs and group indices are errors;
// geometry that looks wrong (entities past the site bounds, empty
// footprints, overlapping footprints) is reported as warnings.
func ValidateGraph(g *Graph) *validation.Report {
	r := validation.NewReport()
	if g == nil {
		r.AddError(validation.Result{Level: validation.LevelPlacement, Message: "scene graph is nil"})
		return r
	}

	c := graphChecker{g: g, r: r, index: make(map[string]int, len(g.Entities))}
	c.indexEntities()
	c.checkGroupRefs()
	for _, e := range g.Entities {
		c.checkMembership(e)
		c.checkGeometry(e)
	}
	c.checkOverlaps()
	return r
}

type graphChecker struct {
	g     *Graph
	r     *validation.Report
	index map[string]int
}

func (c graphChecker) errorf(path string, actual any, format string, args ...any) {
	c.r.AddError(validation.Result{
		Level:       validation.LevelPlacement,
		Message:     fmt.Sprintf(format, args...),
		SpecPath:    path,
		ActualValue: actual,
	})
}

func (c graphChecker) warnf(path string, actual any, format string, args ...any) {
	c.r.AddWarning(validation.Result{
		Level:       validation.LevelPlacement,
		Message:     fmt.Sprintf(format, args...),
		SpecPath:    path,
		ActualValue: actual,
	})
}

func (c graphChecker) indexEntities() {
	for i, e := range c.g.Entities {
		path := fmt.Sprintf("entities[%d].id", i)
		if e.ID == "" {
			c.errorf(path, "", "entity at index %d has empty ID", i)
			continue
		}
		if prev, dup := c.index[e.ID]; dup {
			c.errorf(path, e.ID, "duplicate entity ID %q at indices %d and %d", e.ID, prev, i)
		}
		c.index[e.ID] = i
	}
}

// checkGroupRefs flags group entries that point at no entity.
func (c graphChecker) checkGroupRefs() {
	check := func(kind, name string, ids []string) {
		for _, id := range ids {
			if _, ok := c.index[id]; !ok {
				c.errorf("groups."+kind+"."+name, id, "group %s.%s references non-existent entity %q", kind, name, id)
			}
		}
	}
	for role, ids := range c.g.Groups.Roles {
		check("roles", string(role), ids)
	}
	for typ, ids := range c.g.Groups.EntityTypes {
		check("entity_types", string(typ), ids)
	}
}

// checkMembership flags entities missing from the groups their type and
// role put them in.
func (c graphChecker) checkMembership(e Entity) {
	if e.ID == "" {
		return
	}
	if e.Type != "" {
		c.member("entity_types", string(e.Type), e.ID, c.g.Groups.EntityTypes[e.Type])
	}
	if e.Role != "" {
		c.member("roles", string(e.Role), e.ID, c.g.Groups.Roles[e.Role])
	}
}

func (c graphChecker) member(kind, key, id string, ids []string) {
	if ids == nil {
		c.errorf("groups."+kind, key, "entity %q has %s %q but no such group exists", id, kind, key)
		return
	}
	for _, m := range ids {
		if m == id {
			return
		}
	}
	c.errorf("groups."+kind+"."+key, id, "entity %q has %s %q but is not in that group", id, kind, key)
}

func (c graphChecker) checkGeometry(e Entity) {
	lo, hi := e.footprint()
	b := c.g.Metadata.SiteBounds
	if lo.X < b.Min.X-boundsTolerance || lo.Y < b.Min.Y-boundsTolerance ||
		hi.X > b.Max.X+boundsTolerance || hi.Y > b.Max.Y+boundsTolerance {
		c.warnf("metadata.site_bounds", e.Position,
			"entity %q extent [%.1f, %.1f]-[%.1f, %.1f] outside site bounds", e.ID, lo.X, lo.Y, hi.X, hi.Y)
	}

	if e.Type != EntityAccess && (e.Dimensions.X <= 0 || e.Dimensions.Y <= 0) {
		c.warnf("entities."+e.ID+".dimensions", fmt.Sprintf("%.2f x %.2f", e.Dimensions.X, e.Dimensions.Y),
			"entity %q has zero or negative dimension (%.2f, %.2f)", e.ID, e.Dimensions.X, e.Dimensions.Y)
	}
}

// checkOverlaps warns when two placed footprints share area. Section
// markers, access points and the reserve are overlays and are skipped.
func (c graphChecker) checkOverlaps() {
	var placed []Entity
	for _, e := range c.g.Entities {
		switch e.Type {
		case EntityFacility, EntityGuide, EntityParking, EntityUtility:
			placed = append(placed, e)
		}
	}
	for i, a := range placed {
		alo, ahi := a.footprint()
		for _, b := range placed[i+1:] {
			blo, bhi := b.footprint()
			w := min(ahi.X, bhi.X) - max(alo.X, blo.X)
			h := min(ahi.Y, bhi.Y) - max(alo.Y, blo.Y)
			if w > boundsTolerance && h > boundsTolerance {
				c.warnf("entities."+a.ID, b.ID, "entities %q and %q overlap by %.2f x %.2f", a.ID, b.ID, w, h)
			}
		}
	}
}

// footprint returns the lower-left and upper-right corners of e.
func (e Entity) footprint() (Vec2, Vec2) {
	hx, hy := e.Dimensions.X/2, e.Dimensions.Y/2
	return Vec2{X: e.Position.X - hx, Y: e.Position.Y - hy}, Vec2{X: e.Position.X + hx, Y: e.Position.Y + hy}
}
