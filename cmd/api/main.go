package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowcanvas/application/services"
	"flowcanvas/infrastructure/config"
	"flowcanvas/infrastructure/messaging"
	"flowcanvas/infrastructure/persistence/memory"
	"flowcanvas/interfaces/http/rest"
	"flowcanvas/pkg/observability"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		zap.NewExample().Fatal("failed to load configuration", zap.Error(err))
	}

	level := zap.NewAtomicLevelAt(parseLevel(cfg.LogLevel))
	logger := buildLogger(cfg, level)
	defer logger.Sync()

	logger.Info("starting flowcanvas",
		zap.String("address", cfg.ServerAddress),
		zap.String("environment", cfg.Environment))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wire the editor core
	flows := memory.NewFlowRepository()
	contents := memory.NewContentRepository()
	bus := messaging.NewInMemoryBus(logger)

	var metrics *observability.Metrics
	if cfg.EnableMetrics {
		metrics = observability.NewMetrics(prometheus.DefaultRegisterer)
	}

	editor := services.NewEditorService(flows, contents, bus, logger, metrics)
	bridge := messaging.NewSyncBridge(bus, editor, logger)
	bridge.Attach(ctx)
	defer bridge.Detach()

	if _, err := editor.Start(ctx, cfg.FlowName); err != nil {
		logger.Fatal("failed to start editor flow", zap.Error(err))
	}

	// Live log-level reload when the config file changes
	watcher, err := config.NewWatcher(cfg.ConfigFile, func(fresh *config.Config) {
		level.SetLevel(parseLevel(fresh.LogLevel))
	}, logger)
	if err != nil {
		logger.Fatal("failed to watch config file", zap.Error(err))
	}
	go watcher.Run(ctx)

	router := rest.NewRouter(editor, logger, cfg.EnableMetrics, cfg.EnableCORS)
	server := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("address", cfg.ServerAddress))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func buildLogger(cfg *config.Config, level zap.AtomicLevel) *zap.Logger {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		os.Exit(1)
	}
	return logger
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
