package config

import "time"

// Config is the top-level rolemap configuration, corresponding to .rolemap.yml.
type Config struct {
	Server    ServerConfig `yaml:"server" koanf:"server"`
	Canvas    CanvasConfig `yaml:"canvas" koanf:"canvas"`
	Zoom      ZoomConfig   `yaml:"zoom" koanf:"zoom"`
	Layout    LayoutConfig `yaml:"layout" koanf:"layout"`
	Render    RenderConfig `yaml:"render" koanf:"render"`
	Log       LogConfig    `yaml:"log" koanf:"log"`
	OutputDir string       `yaml:"output_dir" koanf:"output_dir"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	Title           string `yaml:"title" koanf:"title"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	ShutdownSeconds int    `yaml:"shutdown_seconds" koanf:"shutdown_seconds"`
}

// CanvasConfig is the size every diagram is drawn at.
type CanvasConfig struct {
	Width  float64 `yaml:"width" koanf:"width"`
	Height float64 `yaml:"height" koanf:"height"`
}

// ZoomConfig bounds the zoom scale.
type ZoomConfig struct {
	Min float64 `yaml:"min" koanf:"min"`
	Max float64 `yaml:"max" koanf:"max"`
}

// LayoutConfig is the force simulation budget.
type LayoutConfig struct {
	MaxIterations int `yaml:"max_iterations" koanf:"max_iterations"`
	TimeoutMS     int `yaml:"timeout_ms" koanf:"timeout_ms"`
}

// Timeout returns the simulation wall-clock budget.
func (l LayoutConfig) Timeout() time.Duration {
	return time.Duration(l.TimeoutMS) * time.Millisecond
}

// RenderConfig controls labels and sampled data in drawn diagrams.
type RenderConfig struct {
	LabelBudget    int `yaml:"label_budget" koanf:"label_budget"`
	MaxSampleUsers int `yaml:"max_sample_users" koanf:"max_sample_users"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
