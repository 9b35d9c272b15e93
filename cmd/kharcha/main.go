package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kharcha/internal/config"
	apphttp "kharcha/internal/http"
	"kharcha/internal/ledger"
	applog "kharcha/internal/log"
	"kharcha/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Choose the persistence backend (default: memory).
	var kv storage.KV
	switch cfg.DataBackend {
	case "sqlite":
		sqliteKV, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite backend", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer sqliteKV.Close()
		kv = sqliteKV
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
	default:
		kv = storage.NewMemoryKV()
		logger.Info("Initialized memory backend")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ldg := ledger.Open(ctx, storage.NewAdapter(kv), cfg.InitialBalanceMoney())

	srv := apphttp.NewServer(":"+cfg.Port, ldg, apphttp.Options{
		TopExpensesLimit: cfg.TopExpensesLimit,
		SummaryCacheTTL:  cfg.SummaryCacheTTL,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting kharcha server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
