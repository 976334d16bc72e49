package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Zoom.Min != 0.5 || cfg.Zoom.Max != 3 {
		t.Errorf("expected zoom bounds 0.5..3, got %g..%g", cfg.Zoom.Min, cfg.Zoom.Max)
	}
	if cfg.Layout.Timeout() != 2*time.Second {
		t.Errorf("expected a 2s layout budget, got %v", cfg.Layout.Timeout())
	}
	if cfg.OutputDir != "diagrams" {
		t.Errorf("expected default output_dir %q, got %q", "diagrams", cfg.OutputDir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.rolemap.yml")

	original := DefaultConfig()
	original.Server.Port = 9090
	original.Canvas.Width = 1200
	original.Zoom.Max = 4
	original.Log.Format = "json"
	original.OutputDir = "out"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Server.Port != 9090 {
		t.Errorf("server.port: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.Canvas.Width != 1200 {
		t.Errorf("canvas.width: got %g, want 1200", loaded.Canvas.Width)
	}
	if loaded.Zoom.Max != 4 {
		t.Errorf("zoom.max: got %g, want 4", loaded.Zoom.Max)
	}
	if loaded.Log.Format != "json" {
		t.Errorf("log.format: got %q, want json", loaded.Log.Format)
	}
	if loaded.OutputDir != "out" {
		t.Errorf("output_dir: got %q, want out", loaded.OutputDir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("expected port from file, got %d", cfg.Server.Port)
	}
	if cfg.Server.Title != DefaultConfig().Server.Title {
		t.Errorf("expected default title to survive, got %q", cfg.Server.Title)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("ROLEMAP_SERVER__PORT", "9999")
	t.Setenv("ROLEMAP_RENDER__LABEL_BUDGET", "20")
	t.Setenv("ROLEMAP_OUTPUT_DIR", "svg")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 9999 {
		t.Errorf("env override failed: got %d, want 9999", loaded.Server.Port)
	}
	if loaded.Render.LabelBudget != 20 {
		t.Errorf("env override failed: got %d, want 20", loaded.Render.LabelBudget)
	}
	if loaded.OutputDir != "svg" {
		t.Errorf("env override failed: got %q, want svg", loaded.OutputDir)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"canvas", func(c *Config) { c.Canvas.Height = 0 }, "canvas"},
		{"zoom inverted", func(c *Config) { c.Zoom.Min, c.Zoom.Max = 3, 0.5 }, "zoom bounds"},
		{"zoom zero", func(c *Config) { c.Zoom.Min = 0 }, "zoom bounds"},
		{"iterations", func(c *Config) { c.Layout.MaxIterations = 0 }, "layout.max_iterations"},
		{"timeout", func(c *Config) { c.Layout.TimeoutMS = -1 }, "layout.timeout_ms"},
		{"label budget", func(c *Config) { c.Render.LabelBudget = 2 }, "render.label_budget"},
		{"sample users", func(c *Config) { c.Render.MaxSampleUsers = 0 }, "render.max_sample_users"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"output dir", func(c *Config) { c.OutputDir = "" }, "output_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = -1
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"server.port", "log.format"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidatePort(t *testing.T) {
	for _, s := range []string{"8080", "1", "65535"} {
		if err := validatePort(s); err != nil {
			t.Errorf("validatePort(%q) = %v", s, err)
		}
	}
	for _, s := range []string{"", "0", "65536", "http"} {
		if err := validatePort(s); err == nil {
			t.Errorf("validatePort(%q) should fail", s)
		}
	}
}
