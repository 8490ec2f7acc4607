package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/everdragons2/deployer/internal/domain/config"
	"github.com/google/wire"
)

var LoggingSet = wire.NewSet(
	NewLogger,
)

// NewLogger creates a new logger based on runtime configuration
func NewLogger(cfg *config.RuntimeConfig) *slog.Logger {
	return newLogger(os.Stderr, cfg.Debug, os.Getenv("DEPLOYER_LOG_LEVEL"))
}

func newLogger(w io.Writer, debug bool, levelName string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(levelName),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Remove time for cleaner output
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			// Shorten source paths
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					source.File = shortPath(source.File)
				}
			}
			return a
		},
	}

	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(val string) slog.Level {
	switch strings.ToLower(val) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// shortPath returns the path relative to the module root when possible
func shortPath(file string) string {
	if idx := strings.Index(file, "deployer/"); idx != -1 {
		return file[idx+len("deployer/"):]
	}
	parts := strings.Split(file, "/")
	return parts[len(parts)-1]
}
