package config

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/manifoldco/promptui"
)

// canvasPresets are the canvas sizes offered by the wizard.
var canvasPresets = []struct {
	Label         string
	Width, Height float64
}{
	{"960 x 640  (default)", 960, 640},
	{"1200 x 800 (wide screens)", 1200, 800},
	{"720 x 480  (embedded)", 720, 480},
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to rolemap! Let's configure the explainer site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Server.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, errors.Wrap(err, "port")
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 2. Canvas size.
	labels := make([]string, len(canvasPresets))
	for i, p := range canvasPresets {
		labels[i] = p.Label
	}
	canvasPrompt := promptui.Select{
		Label: "Diagram canvas size",
		Items: labels,
	}
	canvasIdx, _, err := canvasPrompt.Run()
	if err != nil {
		return nil, errors.Wrap(err, "canvas selection")
	}
	cfg.Canvas.Width, cfg.Canvas.Height = canvasPresets[canvasIdx].Width, canvasPresets[canvasIdx].Height

	// 3. Log format.
	formatPrompt := promptui.Select{
		Label: "Log format",
		Items: []string{"text", "json", "logfmt"},
	}
	_, cfg.Log.Format, err = formatPrompt.Run()
	if err != nil {
		return nil, errors.Wrap(err, "log format")
	}

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for rendered diagrams",
		Default: cfg.OutputDir,
	}
	cfg.OutputDir, err = outputPrompt.Run()
	if err != nil {
		return nil, errors.Wrap(err, "output dir")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, errors.Wrap(err, "saving config")
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return errors.New("port must be a number between 1 and 65535")
	}
	return nil
}
