package app

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

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"

	"github.com/4Lienau/directory-sync/internal/api"
	"github.com/4Lienau/directory-sync/internal/config"
	"github.com/4Lienau/directory-sync/internal/directory"
	"github.com/4Lienau/directory-sync/internal/reconciler"
	"github.com/4Lienau/directory-sync/internal/scheduler"
	"github.com/4Lienau/directory-sync/internal/store"
	"github.com/4Lienau/directory-sync/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the directory sync service",
	Long: `Start the background scheduler and the HTTP API.

The service requires a configuration file (--config) that specifies:
- Directory provider credentials (tenant, client ID, secret file)
- Database connection parameters
- Scheduler and HTTP server settings

See examples/ directory for a sample configuration.`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	serverReadTimeout      = 10 * time.Second
	serverWriteTimeout     = 60 * time.Second // Manual sync requests block until the run finishes
	serverIdleTimeout      = 60 * time.Second

	defaultMaxConns = 5
)

func init() {
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	if err := viper.BindPFlag("config", serveCmd.Flags().Lookup("config")); err != nil {
		panic(err)
	}
	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	slog.Info("Loaded configuration", "path", configPath, "tenant", cfg.Directory.TenantID)

	if cfg.Database == nil {
		return fmt.Errorf("database configuration is required")
	}

	connString, err := cfg.Database.GetConnectionString()
	if err != nil {
		return fmt.Errorf("failed to build connection string: %w", err)
	}

	maxConns := cfg.Database.MaxConns
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}

	pool, err := store.Connect(ctx, connString, maxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	st, err := store.New(pool)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	client, err := directory.NewClient(&cfg.Directory)
	if err != nil {
		return fmt.Errorf("failed to create directory client: %w", err)
	}

	metrics, err := telemetry.NewSyncMetrics(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create sync metrics: %w", err)
	}

	rec := reconciler.New(reconciler.SyncTypeAzureAD, client, st, st,
		reconciler.WithMetrics(metrics))

	sched := scheduler.New(st, map[string]scheduler.Invoker{
		reconciler.SyncTypeAzureAD: rec,
	}, scheduler.WithTickInterval(cfg.Scheduler.GetTickInterval()))

	handlers := api.NewHandlers(reconciler.SyncTypeAzureAD, rec, st)
	router := api.NewServer(handlers, api.WithMiddlewares(
		middleware.RequestID,
		middleware.Recoverer,
		api.LoggingMiddleware,
	))

	server := &http.Server{
		Addr:         cfg.GetAddress(),
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	serveCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	schedErr := make(chan error, 1)
	go func() {
		schedErr <- sched.Start(serveCtx)
	}()

	httpErr := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr <- err
			return
		}
		httpErr <- nil
	}()

	select {
	case <-serveCtx.Done():
		slog.Info("Shutdown signal received")
	case err := <-httpErr:
		if err != nil {
			stop()
			_ = sched.Stop()
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	case err := <-schedErr:
		if err != nil {
			return fmt.Errorf("scheduler failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	if err := sched.Stop(); err != nil {
		slog.Error("Scheduler shutdown failed", "error", err)
	}

	slog.Info("Service stopped")
	return nil
}
