package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "go.uber.org/automaxprocs"

	"fund-ledger/internal/adapter/badger"
	httpadapter "fund-ledger/internal/adapter/http"
	"fund-ledger/internal/adapter/identity"
	"fund-ledger/internal/adapter/memory"
	"fund-ledger/internal/adapter/postgres"
	"fund-ledger/internal/adapter/sink"
	"fund-ledger/internal/adapter/transfer"
	"fund-ledger/internal/adapter/usecase"
	"fund-ledger/internal/config"
	"fund-ledger/internal/config/configs"
	"fund-ledger/internal/core/domain"
	"fund-ledger/internal/core/port"
	"fund-ledger/internal/db"
	"fund-ledger/internal/scheduler"
	"fund-ledger/internal/telemetry"
)

// main is the entry point of the fund ledger. It loads configuration,
// opens the configured campaign storage, wires the ledger use case with its
// collaborators, then starts the HTTP server and the campaign watcher. On
// receiving a termination signal it gracefully shuts everything down.
func main() {
	exitCode := 1
	defer func() {
		if r := recover(); r != nil {
			panic(r)
		} else {
			os.Exit(exitCode)
		}
	}()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return
	}

	logger := slog.New(cfg.Log.Handler(os.Stdout)).With(slog.String("env", cfg.Env))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing, err := telemetry.SetupTracing(cfg.Trace)
	if err != nil {
		logger.Error("tracing setup error", slog.Any("error", err))
		return
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracing shutdown error", slog.Any("error", err))
		}
	}()

	repo, closer, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("storage error", slog.Any("error", err))
		return
	}
	defer closer.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	book := transfer.NewBook(logger, cfg.Ledger.Balances)
	svc := usecase.NewLedgerUseCase(
		repo,
		book,
		sink.Multi{sink.NewLog(logger), sink.NewMetrics(registry)},
		domain.NewSeededKeys(cfg.Ledger.KeySeed),
		logger,
	)

	if cfg.Watcher.Enabled {
		watcher, err := scheduler.NewWatcher(repo, registry, logger, cfg.Watcher.Interval)
		if err != nil {
			logger.Error("watcher setup error", slog.Any("error", err))
			return
		}
		watcher.Start()
		defer func() {
			if err := watcher.Stop(); err != nil {
				logger.Error("watcher shutdown error", slog.Any("error", err))
			}
		}()
	}

	handler := httpadapter.NewHandler(
		svc,
		identity.NewJWT(cfg.Auth.Secret, cfg.Auth.Issuer),
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		logger,
	)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           handler.Router(),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr), slog.String("storage", cfg.Storage.NormalizedDriver()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	exitCode = 0

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer stop()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	} else {
		logger.Info("server gracefully stopped")
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openRepository opens the campaign storage selected by configuration.
func openRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (port.CampaignRepository, io.Closer, error) {
	switch cfg.Storage.NormalizedDriver() {
	case configs.DriverPostgres:
		// apply schema before opening the pool
		if cfg.Psql.RunMigrations {
			if err := db.Migrate(cfg.Psql.Addr.String()); err != nil {
				return nil, nil, fmt.Errorf("migration: %w", err)
			}
			logger.Info("migrations applied successfully")
		}
		pool, err := db.NewPostgresPool(ctx, cfg.Psql)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection: %w", err)
		}
		return postgres.NewCampaignRepository(pool), closerFunc(func() error { pool.Close(); return nil }), nil
	case configs.DriverMemory:
		logger.Warn("memory storage selected, campaigns are lost on restart")
		return memory.NewCampaignRepository(), closerFunc(func() error { return nil }), nil
	default:
		repo, err := badger.Open(cfg.Storage.BadgerDir, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("badger: %w", err)
		}
		return repo, repo, nil
	}
}
