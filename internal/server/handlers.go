package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ChicagoDave/siteplanner/internal/metrics"
	"github.com/ChicagoDave/siteplanner/pkg/analytics"
	"github.com/ChicagoDave/siteplanner/pkg/export"
	"github.com/ChicagoDave/siteplanner/pkg/layout"
	"github.com/ChicagoDave/siteplanner/pkg/scene"
	"github.com/ChicagoDave/siteplanner/pkg/spec"
	"github.com/ChicagoDave/siteplanner/pkg/validation"
)

// runSummary is the response for a solve run.
type runSummary struct {
	RunID        string       `json:"run_id"`
	Project      string       `json:"project"`
	StartedAt    string       `json:"started_at"`
	DurationMS   int64        `json:"duration_ms"`
	Arrangements int          `json:"arrangements"`
	Failures     layout.Tally `json:"failures"`
	Truncated    bool         `json:"truncated,omitempty"`
	Hint         string       `json:"hint,omitempty"`
}

func (rn *run) summary() runSummary {
	out := runSummary{
		RunID:        rn.ID,
		Project:      rn.Project.Name,
		StartedAt:    rn.StartedAt.UTC().Format(time.RFC3339),
		DurationMS:   rn.Duration.Milliseconds(),
		Arrangements: len(rn.Result.Arrangements),
		Failures:     rn.Result.Tally,
		Truncated:    rn.Result.Truncated,
	}
	if len(rn.Result.Arrangements) == 0 {
		if f, ok := rn.Result.Tally.Dominant(); ok {
			out.Hint = f.Hint()
		}
	}
	return out
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>SitePlanner</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>SitePlanner</h1>
<p>POST <code>/api/solve</code> to search arrangements, then fetch <code>/api/runs/{id}/arrangements/{n}/scene</code>.</p>
</div>
</body></html>`)
}

func (s *Server) handleProject(w http.ResponseWriter, _ *http.Request) {
	p, err := spec.LoadPath(s.projectPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	p, err := spec.LoadPath(s.projectPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	report := validation.ValidateSchema(p)
	if report.Valid {
		_, derived := analytics.Resolve(p)
		report.Merge(derived)
	}
	respondJSON(w, http.StatusOK, report)
}

// handleSolve runs a search over the project. The optional query
// parameters max and workers override the server defaults.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	opts := layout.Options{
		Workers:         s.opts.Workers,
		MaxArrangements: s.opts.MaxArrangements,
		Logger:          s.logger,
	}
	for name, dst := range map[string]*int{"max": &opts.MaxArrangements, "workers": &opts.Workers} {
		v := r.URL.Query().Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: %q", name, v))
			return
		}
		*dst = n
	}

	p, err := spec.LoadPath(s.projectPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	start := time.Now()
	planner, report, err := layout.NewPlanner(p, opts)
	if err != nil {
		s.metrics.RecordSearch(metrics.StatusInvalid, time.Since(start), nil)
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      http.StatusText(http.StatusUnprocessableEntity),
			"message":    err.Error(),
			"validation": report,
		})
		return
	}

	res, err := planner.Enumerate(r.Context())
	elapsed := time.Since(start)
	if err != nil {
		status := metrics.StatusError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = metrics.StatusCanceled
		}
		s.metrics.RecordSearch(status, elapsed, nil)
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.metrics.RecordSearch(metrics.StatusOK, elapsed, res)

	rn := &run{
		ID:        newRunID(),
		StartedAt: start,
		Duration:  elapsed,
		Project:   p,
		Planner:   planner,
		Result:    res,
	}
	s.storeRun(rn)
	s.logger.Info("solve complete",
		"run", rn.ID,
		"arrangements", len(res.Arrangements),
		"failures", res.Tally.Total(),
		"duration", elapsed.Round(time.Millisecond),
	)
	respondJSON(w, http.StatusCreated, rn.summary())
}

func (s *Server) runFromRequest(w http.ResponseWriter, r *http.Request) (*run, bool) {
	id := chi.URLParam(r, "runID")
	rn, ok := s.lookupRun(id)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("run %q not found", id))
	}
	return rn, ok
}

func (s *Server) arrangementFromRequest(w http.ResponseWriter, r *http.Request) (*run, int, bool) {
	rn, ok := s.runFromRequest(w, r)
	if !ok {
		return nil, 0, false
	}
	raw := chi.URLParam(r, "arrID")
	i, err := strconv.Atoi(raw)
	if err != nil || i < 0 || i >= len(rn.Result.Arrangements) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("arrangement %q not found", raw))
		return nil, 0, false
	}
	return rn, i, true
}

// reservesFor computes every reserve of a run once, on first request.
func (s *Server) reservesFor(ctx context.Context, rn *run) ([]layout.Reserve, error) {
	rn.reserveOnce.Do(func() {
		start := time.Now()
		rn.reserves, rn.reserveErr = layout.FindReserves(context.WithoutCancel(ctx), rn.Planner.Site(), rn.Planner.Config(), rn.Result.Arrangements, s.opts.Workers)
		s.metrics.RecordReserve(time.Since(start))
	})
	return rn.reserves, rn.reserveErr
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	rn, ok := s.runFromRequest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, rn.summary())
}

func (s *Server) handleArrangements(w http.ResponseWriter, r *http.Request) {
	rn, ok := s.runFromRequest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, rn.Result.Arrangements)
}

func (s *Server) handleArrangement(w http.ResponseWriter, r *http.Request) {
	rn, i, ok := s.arrangementFromRequest(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, rn.Result.Arrangements[i])
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	rn, i, ok := s.arrangementFromRequest(w, r)
	if !ok {
		return
	}
	a := &rn.Result.Arrangements[i]
	cfg := rn.Planner.Config()
	reserve := layout.FindReserve(rn.Planner.Site(), a.Rects(), cfg.Setback, cfg.ReserveStep)
	respondJSON(w, http.StatusOK, scene.Assemble(rn.Project, rn.Planner.Site(), a, &reserve))
}

func (s *Server) handleReserve(w http.ResponseWriter, r *http.Request) {
	rn, i, ok := s.arrangementFromRequest(w, r)
	if !ok {
		return
	}
	a := &rn.Result.Arrangements[i]
	cfg := rn.Planner.Config()
	respondJSON(w, http.StatusOK, layout.FindReserve(rn.Planner.Site(), a.Rects(), cfg.Setback, cfg.ReserveStep))
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	rn, i, ok := s.arrangementFromRequest(w, r)
	if !ok {
		return
	}
	report := layout.Verify(rn.Planner.Site(), rn.Planner.Config(), &rn.Result.Arrangements[i])
	if name := r.URL.Query().Get("facility"); name != "" {
		respondJSON(w, http.StatusOK, map[string]any{
			"facility": name,
			"valid":    len(report.ErrorsFor(name)) == 0,
			"errors":   report.ErrorsFor(name),
		})
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) document(w http.ResponseWriter, r *http.Request) (*export.Document, bool) {
	rn, ok := s.runFromRequest(w, r)
	if !ok {
		return nil, false
	}
	reserves, err := s.reservesFor(r.Context(), rn)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return nil, false
	}
	d, err := export.NewDocument(rn.Project, rn.Planner.Site(), rn.Planner.Config(), rn.Result, reserves)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return d, true
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := export.WriteJSON(w, d); err != nil {
		s.logger.Error("json export failed", "err", err)
	}
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	d, ok := s.document(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="arrangements.xlsx"`)
	if err := export.WriteXLSX(w, d); err != nil {
		s.logger.Error("xlsx export failed", "err", err)
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"error":   http.StatusText(status),
		"message": message,
	})
}
