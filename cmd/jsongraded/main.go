package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/jsongrade"
	"github.com/kailas-cloud/jsongrade/internal/config"
	logpkg "github.com/kailas-cloud/jsongrade/internal/logger"
	"github.com/kailas-cloud/jsongrade/internal/metrics"
	"github.com/kailas-cloud/jsongrade/internal/transport/httpapi"
	"github.com/kailas-cloud/jsongrade/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewWithFile(env, logpkg.FileConfig{
		Name:       cfg.Logging.File.Name,
		MaxSizeMB:  cfg.Logging.File.MaxSizeMB,
		MaxBackups: cfg.Logging.File.MaxBackups,
		MaxAgeDays: cfg.Logging.File.MaxAgeDays,
	}, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting jsongrade API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	// Register comparison metrics explicitly (no init())
	metrics.RegisterCompareMetrics()

	server := httpapi.NewServer(
		engineConfig(cfg.Compare),
		cfg.HTTP.BatchWorkers,
		cfg.HTTP.MaxBatchSize,
		logger,
	).WithAPIKeys(cfg.HTTP.APIKeys)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// engineConfig maps the loaded compare section onto engine settings. An
// absent float_precision disables rounding: the config file replaces the
// stock defaults wholesale.
func engineConfig(c config.CompareConfig) jsongrade.Config {
	checkLength := true
	if c.CheckLength != nil {
		checkLength = *c.CheckLength
	}
	return jsongrade.Config{
		FloatPrecision:    c.FloatPrecision,
		CheckLength:       checkLength,
		LengthDiffPenalty: c.LengthDiffPenalty,
	}
}
