package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/clearpond/kassa/internal/config"
	"github.com/clearpond/kassa/internal/httpapi"
	"github.com/clearpond/kassa/internal/receipt"
	"github.com/clearpond/kassa/internal/syncer"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the sales terminal server",
		Long: `Start the local HTTP server backing the cashier and admin UIs.

The server opens the local snapshot store (creating it if it doesn't
exist) and, when a sync endpoint is configured, starts the background
worker that drains the change queue.

Example:
  kassa serve
  kassa serve --config /etc/kassa/kassa.yaml --listen :9090`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (overrides config)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if opts.Listen != "" {
		cfg.Listen = opts.Listen
	}

	slog.Info("opening store", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)
	store, backend, err := openStore(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer func() {
		if closeErr := backend.Close(); closeErr != nil {
			slog.Error("error closing store", "error", closeErr)
		}
	}()

	if cfg.Sync.APIBase != "" {
		worker := syncer.NewWorker(store, syncer.NewClient(cfg.Sync.APIBase),
			syncer.WithInterval(cfg.Sync.Interval()),
			syncer.WithTimeout(cfg.Sync.Timeout()))
		worker.Start()
		defer worker.Stop()
		slog.Info("sync worker started", "api_base", cfg.Sync.APIBase, "interval", cfg.Sync.Interval())
	} else {
		slog.Info("sync disabled, no api base configured")
	}

	org := receipt.Org{
		Name:     cfg.Org.Name,
		Subtitle: cfg.Org.Subtitle,
		Footer:   cfg.Org.Footer,
	}
	api := httpapi.NewServer(store, org)

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: api.Engine(),
	}

	// Setup signal handling for graceful shutdown
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.Info("server starting", "listen", cfg.Listen)
	fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s. Press Ctrl-C to stop.\n", cfg.Listen)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return WrapExitError(ExitFailure, "server error", err)
		}
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return WrapExitError(ExitFailure, "shutdown error", err)
		}
	}

	slog.Info("server stopped gracefully")
	return nil
}
