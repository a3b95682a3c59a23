package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"log/slog"

	"github.com/common-nighthawk/go-figure"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"github.com/furisto/ask/frontend/cli/pkg/fail"
	"github.com/furisto/ask/shared/config"
)

type globalOptions struct {
	Verbose bool
}

func NewRootCmd() *cobra.Command {
	options := globalOptions{}
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask: let agents ask you questions.",
		Long:  figure.NewColorFigure("ask", "standard", "blue", true).String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setGlobalOptions(cmd.Context(), &options)

			store, err := loadConfigStore(ctx)
			if err != nil {
				return err
			}
			ctx = setConfigStore(ctx, store)
			cmd.SetContext(ctx)

			settings, err := store.Settings()
			if err != nil && requiresSettings(cmd) {
				return fail.HandleError(cmd, fmt.Errorf("invalid configuration: %w", err))
			}

			logger, err := newLogger(settings, options.Verbose, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			if settings.SentryDSN != "" {
				if err := sentry.Init(sentry.ClientOptions{Dsn: settings.SentryDSN}); err != nil {
					slog.Warn("failed to initialize sentry", "error", err)
				}
			}

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddGroup(
		&cobra.Group{
			ID:    "core",
			Title: "Core Commands",
		},
	)

	cmd.AddGroup(
		&cobra.Group{
			ID:    "system",
			Title: "System Commands",
		},
	)

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewTryCmd())
	cmd.AddCommand(NewExamplesCmd())

	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewVersionCmd())
	return cmd
}

func Execute() {
	defer func() {
		if r := recover(); r != nil {
			sentry.CurrentHub().Recover(r)
			sentry.Flush(2 * time.Second)
			fmt.Fprintf(os.Stderr, "Panic occurred: %v\n", r)
			os.Exit(1)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}

	sentry.Flush(2 * time.Second)
}

func loadConfigStore(ctx context.Context) (*config.Store, error) {
	userInfo := getUserInfo(ctx)

	store, err := config.NewStore(getFileSystem(ctx), userInfo)
	if err != nil {
		return nil, err
	}

	if cwd, err := userInfo.Cwd(); err == nil {
		if err := store.LoadDotEnv(filepath.Join(cwd, ".env")); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// requiresSettings reports whether cmd needs a valid configuration. The config
// commands must keep working so a broken value can be fixed.
func requiresSettings(cmd *cobra.Command) bool {
	skipCommands := []string{"version", "help", "examples", "config."}
	for _, skipCmd := range skipCommands {
		cmdName := cmd.Name()
		if parentCmd := cmd.Parent(); parentCmd != nil && parentCmd.HasParent() {
			cmdName = parentCmd.Name() + "." + cmdName
		}

		if strings.HasPrefix(cmdName, skipCmd) {
			return false
		}
	}

	return true
}
