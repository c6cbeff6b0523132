// Package logging builds the slog logger used by the command-line tools.
// Records are rendered by github.com/charmbracelet/log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pthm-cable/terrain/config"
)

// Formatter returns the charm formatter for a config format name.
func Formatter(format string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return log.TextFormatter, fmt.Errorf("unknown log format %q", format)
}

// New returns a slog.Logger writing to w at the configured level and format.
func New(w io.Writer, cfg config.LoggingConfig, prefix string) (*slog.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	formatter, err := Formatter(cfg.Format)
	if err != nil {
		return nil, err
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return slog.New(handler), nil
}
