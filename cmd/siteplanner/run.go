package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChicagoDave/siteplanner/pkg/analytics"
	"github.com/ChicagoDave/siteplanner/pkg/export"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/scene"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// apply overlays the command-line search overrides on the project.
func (f searchFlags) apply(p *spec.Project) {
	if f.setback > 0 {
		p.Search.Setback = f.setback
	}
	if f.gridStep > 0 {
		p.Search.GridStep = f.gridStep
	}
	if f.spacing > 0 {
		p.Search.FacilitySpacing = f.spacing
	}
}

// solved is a completed search over one project.
type solved struct {
	project *spec.Project
	planner *layout.Planner
	result  *layout.Result
}

func loadProject(projectPath string) (*spec.Project, error) {
	p, err := spec.LoadPath(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading spec: %w", err)
	}
	return p, nil
}

// plan loads, validates and searches a project. Validation findings are
// printed to w when the project is rejected.
func plan(ctx context.Context, w io.Writer, projectPath string, sf searchFlags) (*solved, error) {
	logger := loggerFromContext(ctx)

	p, err := loadProject(projectPath)
	if err != nil {
		return nil, err
	}
	sf.apply(p)

	planner, report, err := layout.NewPlanner(p, layout.Options{
		Workers:         sf.workers,
		MaxArrangements: sf.limit,
		Logger:          logger,
	})
	if err != nil {
		if report != nil && !report.Valid {
			printValidationReport(w, report)
		}
		return nil, err
	}
	for _, warn := range report.Warnings {
		logger.Warn(warn.Message, "path", warn.SpecPath)
	}

	if sf.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sf.timeout)
		defer cancel()
	}

	logger.Debug("searching", "project", p.Name, "config", fmt.Sprintf("%+v", planner.Config()))
	prog := newProgress(logger)
	res, err := planner.Enumerate(ctx)
	if err != nil {
		return nil, fmt.Errorf("searching arrangements: %w", err)
	}
	prog.done("search complete", "arrangements", len(res.Arrangements), "abandoned", res.Tally.Total())

	return &solved{project: p, planner: planner, result: res}, nil
}

func runValidate(w io.Writer, projectPath string) error {
	p, err := loadProject(projectPath)
	if err != nil {
		return err
	}

	report := validation.ValidateSchema(p)
	if report.Valid {
		_, derived := analytics.Resolve(p)
		report.Merge(derived)
	}
	printValidationReport(w, report)

	if !report.Valid {
		return errors.New("spec has validation errors")
	}
	return nil
}

func runSolve(ctx context.Context, w io.Writer, projectPath string, sf searchFlags, asJSON bool, sceneIdx int) error {
	s, err := plan(ctx, w, projectPath, sf)
	if err != nil {
		return err
	}

	if sceneIdx >= 0 {
		a, err := s.arrangement(sceneIdx)
		if err != nil {
			return err
		}
		cfg := s.planner.Config()
		reserve := layout.FindReserve(s.planner.Site(), a.Rects(), cfg.Setback, cfg.ReserveStep)
		g := scene.Assemble(s.project, s.planner.Site(), a, &reserve)
		if r := scene.ValidateGraph(g); !r.Valid {
			printValidationReport(os.Stderr, r)
			return errors.New("scene graph failed validation")
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	if asJSON {
		d, err := export.NewDocument(s.project, s.planner.Site(), s.planner.Config(), s.result, nil)
		if err != nil {
			return err
		}
		return export.WriteJSON(w, d)
	}

	printSolveSummary(w, s.project.Name, s.result)
	return nil
}

func (s *solved) arrangement(i int) (*layout.Arrangement, error) {
	if i < 0 || i >= len(s.result.Arrangements) {
		return nil, fmt.Errorf("arrangement %d out of range (found %d)", i, len(s.result.Arrangements))
	}
	return &s.result.Arrangements[i], nil
}

func runReserve(ctx context.Context, w io.Writer, projectPath string, sf searchFlags, idx int) error {
	s, err := plan(ctx, w, projectPath, sf)
	if err != nil {
		return err
	}
	site, cfg := s.planner.Site(), s.planner.Config()

	if idx >= 0 {
		a, err := s.arrangement(idx)
		if err != nil {
			return err
		}
		r := layout.FindReserve(site, a.Rects(), cfg.Setback, cfg.ReserveStep)
		printReserves(w, []int{a.ID}, []layout.Reserve{r})
		return nil
	}

	prog := newProgress(loggerFromContext(ctx))
	reserves, err := layout.FindReserves(ctx, site, cfg, s.result.Arrangements, sf.workers)
	if err != nil {
		return fmt.Errorf("finding reserves: %w", err)
	}
	prog.done("reserves computed", "arrangements", len(reserves))

	ids := make([]int, len(s.result.Arrangements))
	for i, a := range s.result.Arrangements {
		ids[i] = a.ID
	}
	printReserves(w, ids, reserves)
	return nil
}

func runExport(ctx context.Context, w io.Writer, projectPath string, sf searchFlags, out string, withReserves bool) error {
	ext := strings.ToLower(filepath.Ext(out))
	if ext != ".xlsx" && ext != ".json" {
		return fmt.Errorf("unsupported export format %q (want .xlsx or .json)", ext)
	}

	s, err := plan(ctx, w, projectPath, sf)
	if err != nil {
		return err
	}

	var reserves []layout.Reserve
	if withReserves {
		reserves, err = layout.FindReserves(ctx, s.planner.Site(), s.planner.Config(), s.result.Arrangements, sf.workers)
		if err != nil {
			return fmt.Errorf("finding reserves: %w", err)
		}
	}
	d, err := export.NewDocument(s.project, s.planner.Site(), s.planner.Config(), s.result, reserves)
	if err != nil {
		return err
	}

	switch ext {
	case ".json":
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		if err := export.WriteJSON(f, d); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", out, err)
		}
	default:
		if err := export.SaveXLSX(out, d); err != nil {
			return err
		}
	}

	printSuccess(w, "Wrote %d arrangements to %s", len(d.Arrangements), out)
	return nil
}

func runInit(w io.Writer, dir, format string) error {
	var name string
	switch format {
	case "yaml", "yml":
		name = "site.yaml"
	case "toml":
		name = "site.toml"
	default:
		return fmt.Errorf("unknown project format %q (want yaml or toml)", format)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := spec.Save(path, spec.Default()); err != nil {
		return err
	}

	printSuccess(w, "Wrote reference project to %s", path)
	return nil
}
