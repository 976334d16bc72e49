package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/ziadkadry99/rolemap/internal/config"
	"github.com/ziadkadry99/rolemap/internal/render"
	"github.com/ziadkadry99/rolemap/internal/telemetry"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, errors.Wrap(err, "loading config (run `rolemap init` to create a config file)")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger configured by cfg; --verbose forces debug.
func newLogger(cfg *config.Config) (*log.Logger, error) {
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	return telemetry.NewLogger(level, cfg.Log.Format, os.Stderr)
}

// writeSVG encodes scene to path.
func writeSVG(path string, scene *render.Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	if err := render.Encode(f, scene); err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return f.Close()
}
