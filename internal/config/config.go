// Package config loads rolemap settings from defaults, an optional YAML file
// and ROLEMAP_ environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override. Nested keys are joined
// with a double underscore: ROLEMAP_SERVER__PORT sets server.port.
const EnvPrefix = "ROLEMAP_"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, errors.Wrap(err, "loading defaults")
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "accessing config %s", path)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "loading env overrides")
	}

	cfg := DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshalling config")
	}
	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshalling config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing config to %s", path)
	}
	return nil
}

var validFormats = map[string]bool{"text": true, "json": true, "logfmt": true}

// Validate checks that the configuration contains valid values. Every
// problem found is reported in one ErrInvalidConfig.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		add("server.port %d out of range", c.Server.Port)
	}
	if c.Server.ShutdownSeconds < 0 {
		add("server.shutdown_seconds must be non-negative")
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		add("canvas must have a positive width and height")
	}
	if c.Zoom.Min <= 0 || c.Zoom.Min >= c.Zoom.Max {
		add("zoom bounds must satisfy 0 < min < max, got %g and %g", c.Zoom.Min, c.Zoom.Max)
	}
	if c.Layout.MaxIterations <= 0 {
		add("layout.max_iterations must be positive")
	}
	if c.Layout.TimeoutMS <= 0 {
		add("layout.timeout_ms must be positive")
	}
	if c.Render.LabelBudget < 3 {
		add("render.label_budget must be at least 3")
	}
	if c.Render.MaxSampleUsers <= 0 {
		add("render.max_sample_users must be positive")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		add("invalid log.level %q", c.Log.Level)
	}
	if !validFormats[c.Log.Format] {
		add("invalid log.format %q: must be one of text, json, logfmt", c.Log.Format)
	}
	if c.OutputDir == "" {
		add("output_dir is required")
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Wrap(ErrInvalidConfig, strings.Join(problems, "; "))
}
