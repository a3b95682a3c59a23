package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/furisto/ask/shared/config"
)

// newLogger builds the process logger. stdout belongs to the MCP stdio
// transport, so records go to a rotated file or to stderr.
func newLogger(settings config.Settings, verbose bool, stderr io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}

	output := stderr
	if settings.LogFile != "" {
		output = &lumberjack.Logger{
			Filename:   settings.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
		}
	}

	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch settings.LogFormat {
	case "json":
		handler = slog.NewJSONHandler(output, options)
	case "pretty":
		handler = tint.NewHandler(output, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    settings.LogFile != "",
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Value.Kind() == slog.KindAny {
					if _, ok := a.Value.Any().(error); ok {
						return tint.Attr(9, a)
					}
				}
				return a
			},
		})
	default:
		handler = slog.NewTextHandler(output, options)
	}

	return slog.New(handler), nil
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unsupported log level %q", level)
}
