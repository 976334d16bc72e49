package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/rolemap/internal/config"
	"github.com/ziadkadry99/rolemap/internal/migration"
	"github.com/ziadkadry99/rolemap/internal/progress"
	"github.com/ziadkadry99/rolemap/internal/views"
)

func TestRenderAll(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layout.MaxIterations = 20
	dir := t.TempDir()
	var log bytes.Buffer

	n, err := renderAll(t.Context(), cfg, dir, true, &progress.CIReporter{Out: &log})
	require.NoError(t, err)

	want := len(views.Fixed()) + len(views.RoleIDs())
	assert.Equal(t, want, n)

	for _, name := range views.Fixed() {
		assert.FileExists(t, filepath.Join(dir, name+".svg"))
	}
	assert.FileExists(t, filepath.Join(dir, "overview.mmd"))
	assert.NoFileExists(t, filepath.Join(dir, "onboarding.mmd"))
	assert.NoFileExists(t, filepath.Join(dir, "license-metrics.mmd"))
	assert.FileExists(t, filepath.Join(dir, "role-trading-manager.svg"))

	data, err := os.ReadFile(filepath.Join(dir, "architecture.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, log.String(), "Rendering complete")
}

func TestPrintAnalysis(t *testing.T) {
	in, err := migration.FromTemplate("trading")
	require.NoError(t, err)
	a, err := migration.Analyze(in)
	require.NoError(t, err)

	var out bytes.Buffer
	printAnalysis(&out, a)
	text := out.String()

	assert.Contains(t, text, "Migration plan: Trading Department")
	for _, r := range a.Roles {
		assert.Contains(t, text, r.RoleName)
	}
	assert.Contains(t, text, "LICENSE-Bloomberg")
	assert.True(t, strings.Contains(text, "1. "), "plan steps are numbered")
}

func TestAnalyzeCommandIncompleteInput(t *testing.T) {
	cmd := analyzeCmd
	t.Cleanup(func() { cmd.Flags().Set("org", "") })
	dir := t.TempDir()
	org := filepath.Join(dir, "org.txt")
	require.NoError(t, os.WriteFile(org, []byte("Finance Department\n"), 0o644))
	require.NoError(t, cmd.Flags().Set("org", org))

	err := runAnalyze(cmd, nil)
	assert.ErrorIs(t, err, migration.ErrIncompleteInput)
}
