package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

type Transport string

const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

func ParseTransport(s string) (Transport, error) {
	switch Transport(s) {
	case TransportStdio, TransportHTTP:
		return Transport(s), nil
	case "":
		return TransportStdio, nil
	}
	return "", fmt.Errorf("unsupported transport %q, use %q or %q", s, TransportStdio, TransportHTTP)
}

type HandlerOptions struct {
	Server   *sdk.Server
	Gatherer prometheus.Gatherer
}

// NewHandler exposes the MCP server over streamable HTTP at /mcp together
// with /metrics and /healthz.
func NewHandler(opts HandlerOptions) http.Handler {
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	mcpHandler := sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
		return opts.Server
	}, nil)
	r.Handle("/mcp", mcpHandler)
	r.Handle("/mcp/*", mcpHandler)

	return r
}

type ServeOptions struct {
	Transport Transport
	Address   string
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger
}

// Serve runs server until ctx is done or the client disconnects.
func Serve(ctx context.Context, server *sdk.Server, opts ServeOptions) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	switch opts.Transport {
	case TransportStdio, "":
		opts.Logger.Info("serving MCP over stdio")
		err := server.Run(ctx, &sdk.StdioTransport{})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case TransportHTTP:
		listener, err := net.Listen("tcp", opts.Address)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", opts.Address, err)
		}
		return serveHTTP(ctx, listener, NewHandler(HandlerOptions{Server: server, Gatherer: opts.Gatherer}), opts.Logger)
	}

	return fmt.Errorf("unsupported transport %q", opts.Transport)
}

func serveHTTP(ctx context.Context, listener net.Listener, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving MCP over HTTP", "address", listener.Addr().String())
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
