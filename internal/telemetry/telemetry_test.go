package telemetry

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("debug", FormatJSON, &buf)
	require.NoError(t, err)

	logger.Debug("view rebuilt", "view", "overview", "nodes", 23)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "view rebuilt", entry["msg"])
	assert.Equal(t, "overview", entry["view"])
	assert.EqualValues(t, 23, entry["nodes"])
}

func TestNewLoggerFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("WARN", FormatLogfmt, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())
	logger.Warn("shown", "role", "executive")
	assert.Contains(t, buf.String(), "role=executive")
}

func TestNewLoggerRejectsBadInput(t *testing.T) {
	_, err := NewLogger("loud", FormatText, io.Discard)
	assert.Error(t, err)

	_, err = NewLogger("info", "xml", io.Discard)
	assert.ErrorContains(t, err, "xml")
}

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()
	m.RecordRender("overview", 5*time.Millisecond, 0)
	m.RecordRender("overview", 5*time.Millisecond, 2)
	m.RecordSignal("diagram-zoom-in")
	m.RecordAnalysis("finance")
	m.RecordSimulation(120)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Rebuilds.WithLabelValues("overview")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SkippedEdges.WithLabelValues("overview")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Signals.WithLabelValues("diagram-zoom-in")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses.WithLabelValues("finance")))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRender("overview", time.Millisecond, 1)
		m.RecordSignal("diagram-reset-view")
		m.RecordAnalysis("it")
		m.RecordSimulation(1)
	})
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.RecordSignal("change-visualization-view")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `rolemap_signals_total{type="change-visualization-view"} 1`), body)
}
