package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voxsql/voxsql/internal/api"
	"github.com/voxsql/voxsql/internal/archive"
	"github.com/voxsql/voxsql/internal/auth"
	"github.com/voxsql/voxsql/internal/config"
	"github.com/voxsql/voxsql/internal/nlq"
	"github.com/voxsql/voxsql/internal/observability"
	"github.com/voxsql/voxsql/internal/orders"
	"github.com/voxsql/voxsql/internal/stt"
)

func main() {
	cfg, err := config.LoadFromEnv("voxsql-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)
	ordersDB, err := orders.Open(context.Background(), orders.DBConfig{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to open orders db", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = ordersDB.Close() }()

	executor := orders.NewSQLExecutor(ordersDB)
	queries := nlq.NewService(executor, nil)

	var transcriber stt.Transcriber
	if cfg.STT.Enabled {
		transcriber, err = stt.NewDeepgramTranscriber(stt.DeepgramConfig{
			BaseURL: cfg.STT.BaseURL,
			APIKey:  cfg.STT.APIKey,
			Model:   cfg.STT.Model,
			Timeout: cfg.STT.Timeout,
		})
		if err != nil {
			logger.Error("failed to initialize transcriber", slog.Any("error", err))
			os.Exit(1)
		}
	}

	var clipStore archive.Store
	if cfg.Archive.Enabled {
		clipStore, err = archive.New(context.Background(), archive.Config{
			Endpoint:         cfg.Archive.Endpoint,
			Region:           cfg.Archive.Region,
			Bucket:           cfg.Archive.Bucket,
			AccessKeyID:      cfg.Archive.AccessKeyID,
			SecretAccessKey:  cfg.Archive.SecretAccessKey,
			UseSSL:           cfg.Archive.UseSSL,
			Prefix:           cfg.Archive.Prefix,
			AutoCreateBucket: cfg.Archive.AutoCreateBucket,
		})
		if err != nil {
			logger.Error("failed to initialize audio archive", slog.Any("error", err))
			os.Exit(1)
		}
	}

	deps := api.Dependencies{
		Logger:      logger,
		Queries:     queries,
		Transcriber: transcriber,
		Archive:     clipStore,
		Readiness: api.CombineReadinessChecks(
			executor.HealthCheck,
			api.CheckDatabaseConfig(cfg),
			api.CheckSTTConfig(cfg),
		),
		DependencyTimeout: time.Second,
	}
	if cfg.Auth.Required {
		validator, err := auth.NewStaticAPIKeyValidator(cfg.Auth.StaticKeys)
		if err != nil {
			logger.Error("failed to parse static auth keys", slog.Any("error", err))
			os.Exit(1)
		}
		deps.AuthMiddleware = auth.Middleware(logger, validator)
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}
