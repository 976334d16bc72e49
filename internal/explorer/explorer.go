// Package explorer serves the diagrams over HTTP: view listings, laid-out
// graphs, SVG and mermaid exports, migration analyses and a websocket
// session that drives a view controller with interaction signals.
package explorer

import (
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/rolemap/internal/migration"
	"github.com/ziadkadry99/rolemap/internal/telemetry"
	"github.com/ziadkadry99/rolemap/internal/viewcontrol"
	"github.com/ziadkadry99/rolemap/internal/views"
)

// Options configure an Explorer.
type Options struct {
	// NewBuilder returns the diagram builder for one request or session.
	// Builders are not shared because their samplers are not safe for
	// concurrent use. Nil uses a 960x640 canvas.
	NewBuilder func() *views.Builder
	MinScale   float64
	MaxScale   float64
	Pipeline   viewcontrol.Pipeline
	Analyzer   migration.Analyzer
	Logger     *log.Logger
	Metrics    *telemetry.Metrics
	// AllowedOrigins lists the cross-origin pages that may open the signal
	// websocket, as CORS origin patterns with at most one "*". Same-origin
	// and origin-less requests are always accepted.
	AllowedOrigins []string
}

// Explorer provides the diagram API.
type Explorer struct {
	opts     Options
	upgrader websocket.Upgrader
}

// New creates a new Explorer.
func New(opts Options) *Explorer {
	if opts.NewBuilder == nil {
		opts.NewBuilder = func() *views.Builder { return views.NewBuilder(960, 640) }
	}
	if opts.Pipeline.Driver == nil {
		opts.Pipeline = viewcontrol.DefaultPipeline()
	}
	if opts.Logger == nil {
		opts.Logger = telemetry.Discard()
	}
	e := &Explorer{opts: opts}
	e.upgrader = websocket.Upgrader{CheckOrigin: e.checkOrigin}
	return e
}

// RegisterRoutes mounts all explorer routes onto the given router.
func (e *Explorer) RegisterRoutes(r chi.Router) {
	r.Get("/api/views", e.handleListViews)
	r.Get("/api/views/{view}", e.handleView)
	r.Get("/api/views/{view}/svg", e.handleViewSVG)
	r.Get("/api/views/{view}/mermaid", e.handleViewMermaid)
	r.Get("/api/roles/{role}/svg", e.handleRoleSVG)
	r.Get("/api/templates", e.handleListTemplates)
	r.Get("/api/templates/{name}", e.handleTemplate)
	r.Post("/api/analysis", e.handleAnalysis)
	r.Get("/ws/signals", e.handleWebSocket)
}

func (e *Explorer) controller() *viewcontrol.Controller {
	return viewcontrol.New(viewcontrol.Options{
		Builder:  e.opts.NewBuilder(),
		Pipeline: e.opts.Pipeline,
		MinScale: e.opts.MinScale,
		MaxScale: e.opts.MaxScale,
		Logger:   e.opts.Logger,
		Metrics:  e.opts.Metrics,
	})
}
