// Package telemetry provides the structured logger and the prometheus
// metrics shared by the server, the CLI and the view controller.
package telemetry

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
)

// Log formats accepted by NewLogger.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// NewLogger builds a charmbracelet logger writing to w (stderr when nil).
func NewLogger(level, format string, w io.Writer) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}

	opts := log.Options{Level: lvl, ReportTimestamp: true, Prefix: "rolemap"}
	switch strings.ToLower(format) {
	case "", FormatText:
		opts.Formatter = log.TextFormatter
	case FormatJSON:
		opts.Formatter = log.JSONFormatter
	case FormatLogfmt:
		opts.Formatter = log.LogfmtFormatter
	default:
		return nil, errors.Newf("unknown log format %q", format)
	}
	return log.NewWithOptions(w, opts), nil
}

// Discard returns a logger that drops everything. Tests and library callers
// that pass no logger use it.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
