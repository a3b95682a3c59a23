package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/furisto/ask/backend/dialog"
	"github.com/furisto/ask/backend/event"
	"github.com/furisto/ask/frontend/cli/pkg/terminal"
	"github.com/furisto/ask/frontend/web"
	"github.com/furisto/ask/shared"
	"github.com/furisto/ask/shared/config"
)

const (
	surfaceAuto     = "auto"
	surfaceTerminal = "terminal"
	surfaceWeb      = "web"
)

// newSurface picks where questions are shown. auto prefers the terminal and
// falls back to the browser when no terminal is attached.
func newSurface(ctx context.Context, settings config.Settings, logger *slog.Logger) (dialog.Surface, error) {
	if surface := getSurface(ctx); surface != nil {
		return surface, nil
	}

	kind := settings.Surface
	if kind == surfaceAuto || kind == "" {
		kind = surfaceWeb
		if terminal.Interactive(terminal.DefaultTTY) {
			kind = surfaceTerminal
		}
	}

	switch kind {
	case surfaceTerminal:
		return terminal.NewSurface(), nil
	case surfaceWeb:
		options := []web.SurfaceOption{
			web.WithAddress(settings.WebAddress),
			web.WithLogger(logger),
		}
		if settings.WebOpenBrowser {
			options = append(options, web.WithOpener(shared.NewBrowserLauncher(getCommandRunner(ctx), getRuntimeInfo(ctx))))
		}
		return web.NewSurface(options...), nil
	}

	return nil, fmt.Errorf("unsupported surface %q", settings.Surface)
}

func newCollector(ctx context.Context, settings config.Settings, sink event.Sink, logger *slog.Logger) (*dialog.Collector, error) {
	surface, err := newSurface(ctx, settings, logger)
	if err != nil {
		return nil, err
	}

	if sink == nil {
		sink = event.NopSink{}
	}

	return dialog.NewCollector(surface,
		dialog.WithTimeout(settings.Timeout),
		dialog.WithAttachmentLoader(dialog.NewAttachmentLoader(getFileSystem(ctx), settings.MaxImageSize)),
		dialog.WithEventSink(sink),
		dialog.WithLogger(logger),
	), nil
}
