package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vortex/docx-api/internal/aiservice"
	"github.com/vortex/docx-api/internal/config"
	"github.com/vortex/docx-api/internal/handler"
	"github.com/vortex/docx-api/internal/jobmanager"
	"github.com/vortex/docx-api/internal/quota"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg := config.Load()

	// No AI provider is wired at startup; /format/* requests with
	// use_ai_recognition=true still run, but every AI round trip fails
	// immediately and the compiler falls back to its deterministic path.
	ai := aiservice.Unconfigured{}

	jobs := jobmanager.New(logger, ai, jobmanager.Config{
		MaxConcurrentJobs: cfg.MaxConcurrentJobs,
		MaxFixIterations:  cfg.MaxFixIterations,
		RetentionHours:    cfg.JobRetentionHours,
		CleanupInterval:   time.Duration(cfg.CleanupIntervalHours) * time.Hour,
	})

	tracker := quota.New(cfg.UsageLimitPerCardKey)

	maxBody := cfg.MaxUploadSizeMB << 20 // convert MB to bytes
	router := handler.NewRouter(logger, jobs, tracker, ai, maxBody)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.Int("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	quitCh := make(chan os.Signal, 1)
	signal.Notify(quitCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quitCh:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := jobs.Shutdown(ctx); err != nil {
		logger.Error("job manager shutdown", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
