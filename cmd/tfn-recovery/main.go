// Package main provides the entry point for the TFN-CONNECT recovery
// service: the HTTP endpoint that restores super-administrator access.
package main

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

	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/amWRit/TFN-CONNECT-sub001/internal/api"
	"github.com/amWRit/TFN-CONNECT-sub001/internal/config"
	"github.com/amWRit/TFN-CONNECT-sub001/internal/metrics"
	"github.com/amWRit/TFN-CONNECT-sub001/internal/notify"
	"github.com/amWRit/TFN-CONNECT-sub001/internal/ratelimit"
	"github.com/amWRit/TFN-CONNECT-sub001/internal/recovery"
	"github.com/amWRit/TFN-CONNECT-sub001/internal/storage"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tfn-recovery: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := metrics.Init(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening account store: %w", err)
	}
	defer store.Close() //nolint:errcheck

	secrets := recovery.NewReferenceSecrets(
		cfg.Recovery.AllowedEmails,
		cfg.Recovery.Password1Hash,
		cfg.Recovery.Password2Hash,
		cfg.Recovery.Answer1Hash,
		cfg.Recovery.Answer2Hash,
	)
	if !secrets.Complete() {
		// Deployment error: keep serving so /health stays green, but the
		// endpoint will answer server-misconfigured until fixed.
		logger.Error("recovery reference secrets missing or malformed; endpoint degraded")
	}

	var notifier recovery.Notifier
	if cfg.SMTP.Host != "" {
		mailer, err := notify.NewMailer(cfg.SMTP)
		if err != nil {
			return fmt.Errorf("configuring mailer: %w", err)
		}
		notifier = mailer
	}

	limiter := ratelimit.New(cfg.Throttle.MaxAttempts, cfg.Throttle.Window)

	service := recovery.NewService(secrets, store, notifier, limiter, logger)
	handler := api.NewHandler(service, store, logger)

	// Metrics on a separate listener so it is never exposed with the API
	go func() {
		logger.Info("metrics listening", "addr", cfg.MetricsListenAddr)
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		if err := http.ListenAndServe(cfg.MetricsListenAddr, mux); err != nil {
			logger.Error("metrics listener failed", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler.NewRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("tfn-recovery starting", "version", version, "addr", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}

// setupLogger builds the slog logger: tinted text for humans, JSON for
// log shippers.
func setupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = tint.NewHandler(os.Stdout, &tint.Options{Level: logLevel})
	}

	return slog.New(handler)
}
