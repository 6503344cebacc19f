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

	"github.com/ipflix/ipflix/internal/adapter/controller/http/handlers"
	"github.com/ipflix/ipflix/internal/app"
	"github.com/ipflix/ipflix/internal/config"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := config.SetupLogger(cfg)
	logger.Info("Starting IPFlix API",
		"env", cfg.App.Env,
		"port", cfg.App.Port,
	)

	a := app.New(cfg, logger)
	defer a.Close()

	logger.Info("Geolocation chain", "providers", a.GeolocationChain())

	r := handlers.NewRouter(handlers.RouterConfig{
		Service:            a.Service,
		Logger:             logger,
		RateLimitPerMinute: cfg.RateLimit.PerMinute,
		Health: handlers.HealthInfo{
			Version:     version,
			Environment: cfg.App.Env,
			Geolocation: a.GeolocationChain(),
			Cache:       a.Cache,
		},
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		logger.Error("HTTP server error", "error", err)
		a.Close()
		os.Exit(1)
	}

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
}
