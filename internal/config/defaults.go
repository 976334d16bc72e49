package config

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".rolemap.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Title:           "Identity migration explained",
			ShutdownSeconds: 10,
		},
		Canvas: CanvasConfig{Width: 960, Height: 640},
		Zoom:   ZoomConfig{Min: 0.5, Max: 3},
		Layout: LayoutConfig{MaxIterations: 300, TimeoutMS: 2000},
		Render: RenderConfig{LabelBudget: 15, MaxSampleUsers: 8},
		Log:    LogConfig{Level: "info", Format: "text"},

		OutputDir: "diagrams",
	}
}

// defaultValues flattens DefaultConfig for koanf's confmap provider.
func defaultValues() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"server.port":              d.Server.Port,
		"server.title":             d.Server.Title,
		"server.allow_all_origins": d.Server.AllowAllOrigins,
		"server.shutdown_seconds":  d.Server.ShutdownSeconds,
		"canvas.width":             d.Canvas.Width,
		"canvas.height":            d.Canvas.Height,
		"zoom.min":                 d.Zoom.Min,
		"zoom.max":                 d.Zoom.Max,
		"layout.max_iterations":    d.Layout.MaxIterations,
		"layout.timeout_ms":        d.Layout.TimeoutMS,
		"render.label_budget":      d.Render.LabelBudget,
		"render.max_sample_users":  d.Render.MaxSampleUsers,
		"log.level":                d.Log.Level,
		"log.format":               d.Log.Format,
		"output_dir":               d.OutputDir,
	}
}
