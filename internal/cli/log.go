package cli

import (
	"log/slog"
	"os"
)

// logConfig holds the logging flags. The logger is configured once,
// right after flag parsing, so every later message honors the requested
// level and format.
type logConfig struct {
	Level  string `default:"info" enum:"debug,info,warn,error" help:"Set log level."`
	Format string `default:"text" enum:"text,json"             help:"Set log format."`
}

func (f *logConfig) start() {
	var level slog.Level
	switch f.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if f.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))
}
