// Package server wires the explainer page, the diagram API and metrics
// onto one chi router.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/rolemap/internal/config"
	"github.com/ziadkadry99/rolemap/internal/explorer"
	"github.com/ziadkadry99/rolemap/internal/layout"
	"github.com/ziadkadry99/rolemap/internal/site"
	"github.com/ziadkadry99/rolemap/internal/telemetry"
	"github.com/ziadkadry99/rolemap/internal/viewcontrol"
	"github.com/ziadkadry99/rolemap/internal/views"
)

// Server is the rolemap HTTP server.
type Server struct {
	cfg        *config.Config
	logger     *log.Logger
	metrics    *telemetry.Metrics
	explorer   *explorer.Explorer
	site       *site.Generator
	router     chi.Router
	httpServer *http.Server
}

// Pipeline builds the layout and render pipeline configured by cfg.
func Pipeline(cfg *config.Config) viewcontrol.Pipeline {
	return viewcontrol.Pipeline{
		Driver: layout.NewDriver(layout.Budget{
			MaxIterations: cfg.Layout.MaxIterations,
			Timeout:       cfg.Layout.Timeout(),
		}),
		Params:      layout.DefaultParams(),
		LabelBudget: cfg.Render.LabelBudget,
	}
}

// Builders returns a factory for diagram builders sized and capped by cfg.
func Builders(cfg *config.Config) func() *views.Builder {
	return func() *views.Builder {
		b := views.NewBuilder(cfg.Canvas.Width, cfg.Canvas.Height)
		b.MaxSampleUsers = cfg.Render.MaxSampleUsers
		return b
	}
}

// New creates a server with every route registered.
func New(cfg *config.Config, logger *log.Logger, metrics *telemetry.Metrics) *Server {
	if logger == nil {
		logger = telemetry.Discard()
	}
	pipeline := Pipeline(cfg)
	builders := Builders(cfg)

	gen := site.NewGenerator(cfg.Server.Title, cfg.Canvas.Width, cfg.Canvas.Height)
	gen.NewBuilder = builders
	gen.Pipeline = pipeline
	gen.Logger = logger
	gen.Metrics = metrics

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		explorer: explorer.New(explorer.Options{
			NewBuilder: builders,
			MinScale:   cfg.Zoom.Min,
			MaxScale:   cfg.Zoom.Max,
			Pipeline:   pipeline,
			Logger:     logger,
			Metrics:    metrics,

			AllowedOrigins: AllowedOrigins(cfg),
		}),
		site: gen,
	}
	s.router = s.buildRouter()
	return s
}

// AllowedOrigins is the cross-origin policy shared by CORS and the signal
// websocket: local development pages, or anything when AllowAllOrigins is set.
func AllowedOrigins(cfg *config.Config) []string {
	if cfg.Server.AllowAllOrigins {
		return []string{"*"}
	}
	return []string{"http://localhost:*", "http://127.0.0.1:*"}
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   AllowedOrigins(s.cfg),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	s.explorer.RegisterRoutes(r)

	page := s.site.Handler()
	r.Handle("/", page)
	r.Handle("/index.html", page)
	r.Handle("/style.css", page)
	r.Handle("/script.js", page)

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("rolemap server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// ShutdownTimeout is how long Shutdown may wait for open connections.
func (s *Server) ShutdownTimeout() time.Duration {
	return time.Duration(s.cfg.Server.ShutdownSeconds) * time.Second
}
