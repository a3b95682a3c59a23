package cmd

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/furisto/ask/backend/event"
	"github.com/furisto/ask/backend/mcp"
	"github.com/furisto/ask/backend/tool/communication"
	"github.com/furisto/ask/frontend/cli/pkg/fail"
)

type serveOptions struct {
	Transport string
	Address   string
}

func NewServeCmd() *cobra.Command {
	options := serveOptions{}

	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the MCP server that lets agents ask you questions",
		Args:    cobra.NoArgs,
		GroupID: "core",
		Example: `  # Serve over stdio, as launched by an MCP client
  ask serve

  # Serve over streamable HTTP with /metrics
  ask serve --transport http --address 127.0.0.1:8765`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fail.HandleError(cmd, serve(cmd, options))
		},
	}

	cmd.Flags().StringVarP(&options.Transport, "transport", "t", "", "Transport to serve on: stdio or http (default from serve.transport)")
	cmd.Flags().StringVarP(&options.Address, "address", "a", "", "Listen address of the http transport (default from serve.address)")

	return cmd
}

func serve(cmd *cobra.Command, options serveOptions) error {
	ctx := cmd.Context()
	settings, err := getConfigStore(ctx).Settings()
	if err != nil {
		return err
	}

	if options.Transport != "" {
		settings.ServeTransport = options.Transport
	}
	if options.Address != "" {
		settings.ServeAddress = options.Address
	}

	transport, err := mcp.ParseTransport(settings.ServeTransport)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := event.NewMetricsSink(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	logger := slog.Default()
	collector, err := newCollector(ctx, settings, event.Sinks{event.LogSink{Logger: logger}, metrics}, logger)
	if err != nil {
		return err
	}

	server := mcp.NewServer(communication.NewAskUserTool(collector, logger), mcp.ServerOptions{Version: Version})
	return mcp.Serve(ctx, server, mcp.ServeOptions{
		Transport: transport,
		Address:   settings.ServeAddress,
		Gatherer:  registry,
		Logger:    logger,
	})
}
