// Package logx wires a rotating-file slog.Logger for cmd/coretext. The
// core packages never import it — they accept a *slog.Logger through
// model.Options and fall back to slog.Default().
package logx

import (
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls where and how verbosely cmd/coretext logs.
type Config struct {
	// Path is the log file path. Empty defaults to
	// ~/.cache/coretext/coretext.log.
	Path string
	// Level is the minimum level written to the file.
	Level slog.Level
	// JSON selects slog.JSONHandler over slog.TextHandler.
	JSON bool
}

// New builds a *slog.Logger writing to a lumberjack-rotated file, and
// returns a closer the caller should defer.
func New(cfg Config) (*slog.Logger, func() error, error) {
	path := cfg.Path
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		dir = filepath.Join(dir, "coretext")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, func() error { return nil }, err
		}
		path = filepath.Join(dir, "coretext.log")
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	return logger, w.Close, nil
}
