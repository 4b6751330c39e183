package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/mcstats/internal/adapters/exporter"
	"github.com/okian/mcstats/internal/adapters/http/api"
	"github.com/okian/mcstats/internal/adapters/identity"
	"github.com/okian/mcstats/internal/adapters/rcon"
	"github.com/okian/mcstats/internal/adapters/world"
	app "github.com/okian/mcstats/internal/app"
	"github.com/okian/mcstats/internal/config"
	"github.com/okian/mcstats/pkg/logger"
	"github.com/okian/mcstats/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		loggerInstance.Error(ctx, "failed to load config", logger.Error(err))
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, loggerInstance); err != nil {
		loggerInstance.Error(ctx, "exporter failed", logger.Error(err))
		os.Exit(1)
	}
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	a, err := build(cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer a.svc.Stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("metrics_path", cfg.MetricsPath),
			logger.String("server_root", cfg.ServerRoot),
			logger.Bool("rcon", cfg.RconEnabled()))
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("%w: %w", api.ErrServe, err)
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
	return nil
}

// application holds the wired components of one process.
type application struct {
	svc  *app.Service
	srv  *http.Server
	pool *rcon.Pool
}

func (a *application) close() {
	if a.pool != nil {
		_ = a.pool.Close()
	}
}

// build wires the components described by cfg without starting anything.
func build(cfg *config.Config, log logger.Logger) (*application, error) {
	self := metrics.Configure(selfMetricsOptions(cfg)...)

	files := world.New(cfg.ServerRoot,
		world.WithLogger(log),
		world.WithWorldName(cfg.WorldName))
	roster := identity.New(cfg.ServerRoot, identity.WithLogger(log))

	opts := []app.Option{
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
	}

	a := &application{}
	if cfg.RconEnabled() {
		a.pool = rcon.NewPool(cfg.RconAddr(), cfg.RconPassword,
			rcon.WithPoolLogger(log),
			rcon.WithTimeout(cfg.RconTimeout()),
			rcon.WithRate(cfg.RconRate, cfg.RconBurst))
		live := rcon.NewClient(a.pool,
			rcon.WithLogger(log),
			rcon.WithForge(cfg.ForgeServer),
			rcon.WithTTL(cfg.OnlineTTL(), cfg.ModsTTL()))
		opts = append(opts, app.WithLive(live))
	}
	a.svc = app.New(roster, files, opts...)

	// Game families and runtime collectors live on their own registry; the
	// exporter's self-metrics stay on the metrics package registry.
	game := prometheus.NewRegistry()
	if err := game.Register(exporter.New(a.svc,
		exporter.WithLogger(log),
		exporter.WithTimeout(cfg.CollectTimeout()))); err != nil {
		return nil, fmt.Errorf("register exporter: %w", err)
	}
	if err := game.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}
	if err := game.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}

	mux := http.NewServeMux()
	api.NewServer(a.svc, prometheus.Gatherers{game, self},
		api.WithMetricsPath(cfg.MetricsPath)).Register(mux)

	a.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.CollectTimeout() + readTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return a, nil
}

// selfMetricsOptions maps configuration onto the self-metrics manager.
func selfMetricsOptions(cfg *config.Config) []metrics.Option {
	return []metrics.Option{
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithCustomLabels(cfg.MetricsLabels),
		metrics.WithMetricsEnabled(cfg.SelfMetrics),
	}
}
