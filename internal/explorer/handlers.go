package explorer

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/rolemap/internal/diagrams"
	"github.com/ziadkadry99/rolemap/internal/graph"
	"github.com/ziadkadry99/rolemap/internal/layout"
	"github.com/ziadkadry99/rolemap/internal/migration"
	"github.com/ziadkadry99/rolemap/internal/orgstructure"
	"github.com/ziadkadry99/rolemap/internal/render"
	"github.com/ziadkadry99/rolemap/internal/viewcontrol"
	"github.com/ziadkadry99/rolemap/internal/views"
)

// listResponse is the JSON response for the view listing.
type listResponse struct {
	Views   []views.Info             `json:"views"`
	Roles   []string                 `json:"roles"`
	Signals []viewcontrol.SignalType `json:"signals"`
}

// viewResponse is a laid-out view.
type viewResponse struct {
	Name   string               `json:"name"`
	Mount  string               `json:"mount"`
	Graph  *graph.Graph         `json:"graph"`
	Stages []render.Stage       `json:"stages,omitempty"`
	Radar  *render.Radar        `json:"radar,omitempty"`
	Result render.Result        `json:"result"`
	Run    *layout.RunResult    `json:"run,omitempty"`
	Legend []render.LegendEntry `json:"legend,omitempty"`
}

// analysisResponse carries an analysis and its two structure diagrams.
type analysisResponse struct {
	Analysis *migration.Analysis `json:"analysis"`
	SVG      map[string]string   `json:"svg"`
}

func (e *Explorer) handleListViews(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, listResponse{
		Views:   views.Catalog(),
		Roles:   views.RoleIDs(),
		Signals: viewcontrol.SignalTypes(),
	})
}

// fixedView builds and draws a view that needs no input. ok is false for
// unknown names and analysis views.
func (e *Explorer) fixedView(ctx context.Context, name string) (*views.Diagram, *render.Scene, viewcontrol.Outcome, bool) {
	info, ok := views.Lookup(name)
	if !ok || info.Kind == views.KindAnalysis {
		return nil, nil, viewcontrol.Outcome{}, false
	}
	start := time.Now()
	b := e.opts.NewBuilder()
	d := b.Build(name)
	scene := render.NewScene(b.Width, b.Height)
	out := e.opts.Pipeline.Draw(ctx, d, scene)
	e.opts.Metrics.RecordRender(d.Name, time.Since(start), out.Result.Skipped)
	if out.Simulation != nil {
		e.opts.Metrics.RecordSimulation(out.Run.Ticks)
	}
	return d, scene, out, true
}

func notFound(w http.ResponseWriter, what, name string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": what + " not found: " + name})
}

func (e *Explorer) handleView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	d, scene, out, ok := e.fixedView(r.Context(), name)
	if !ok {
		notFound(w, "view", name)
		return
	}
	resp := viewResponse{
		Name:   d.Name,
		Mount:  d.Mount,
		Graph:  d.Graph,
		Stages: d.Stages,
		Radar:  d.Radar,
		Result: out.Result,
		Legend: scene.Legend,
	}
	if out.Simulation != nil {
		resp.Run = &out.Run
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *Explorer) handleViewSVG(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	_, scene, _, ok := e.fixedView(r.Context(), name)
	if !ok {
		notFound(w, "view", name)
		return
	}
	writeSVG(w, scene)
}

func (e *Explorer) handleViewMermaid(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	d, _, _, ok := e.fixedView(r.Context(), name)
	if !ok {
		notFound(w, "view", name)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(diagrams.Mermaid(d.Graph, d.Render.Palette)))
}

func (e *Explorer) handleRoleSVG(w http.ResponseWriter, r *http.Request) {
	b := e.opts.NewBuilder()
	rd := b.RolePermissions(chi.URLParam(r, "role"))
	scene := render.NewScene(b.Width, b.Height)
	e.opts.Pipeline.DrawRole(rd, scene)
	writeSVG(w, scene)
}

func (e *Explorer) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"templates": orgstructure.TemplateNames()})
}

func (e *Explorer) handleTemplate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	in, err := migration.FromTemplate(name)
	if err != nil {
		notFound(w, "template", name)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (e *Explorer) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	var in migration.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	a, err := e.opts.Analyzer.Analyze(in)
	if errors.Is(err, migration.ErrIncompleteInput) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": migration.ErrIncompleteInput.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	e.opts.Metrics.RecordAnalysis(string(a.Archetype))
	e.opts.Logger.Info("analysis complete", "id", a.ID, "department", a.Department.Name,
		"roles", a.Summary.Roles, "categories", a.Summary.Categories)

	svgs, err := e.structureSVGs(r.Context(), a)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, analysisResponse{Analysis: a, SVG: svgs})
}

// StructureDiagrams builds the current and proposed structure views of a.
func StructureDiagrams(b *views.Builder, a *migration.Analysis) []*views.Diagram {
	return []*views.Diagram{
		b.CurrentStructure(a.Department.Name, a.Groups),
		b.ProposedStructure(a.Department.Name, a.Roles, a.Buckets),
	}
}

func (e *Explorer) structureSVGs(ctx context.Context, a *migration.Analysis) (map[string]string, error) {
	b := e.opts.NewBuilder()
	out := make(map[string]string, 2)
	for _, d := range StructureDiagrams(b, a) {
		start := time.Now()
		scene := render.NewScene(b.Width, b.Height)
		res := e.opts.Pipeline.Draw(ctx, d, scene)
		e.opts.Metrics.RecordRender(d.Name, time.Since(start), res.Result.Skipped)
		svg, err := render.InlineSVG(scene)
		if err != nil {
			return nil, errors.Wrapf(err, "rendering %s", d.Name)
		}
		out[d.Name] = string(svg)
	}
	return out, nil
}

func writeSVG(w http.ResponseWriter, scene *render.Scene) {
	svg, err := render.SVG(scene)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
