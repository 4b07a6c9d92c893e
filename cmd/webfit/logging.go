package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"

	"github.com/claude/webfit/internal/config"
)

// newLogger logs text to w and, when a log file is configured, JSON to that
// file as well. The returned func closes the file.
func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	handlers := []slog.Handler{slog.NewTextHandler(w, opts)}
	closeFn := func() error { return nil }

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
		closeFn = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
