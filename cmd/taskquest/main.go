package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/taskquest/internal/config"
	"github.com/dukerupert/taskquest/internal/database"
	"github.com/dukerupert/taskquest/internal/email"
	"github.com/dukerupert/taskquest/internal/incentive"
	"github.com/dukerupert/taskquest/internal/logging"
	"github.com/dukerupert/taskquest/internal/server"
	ws "github.com/dukerupert/taskquest/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel)

	catalog, err := cfg.Catalog()
	if err != nil {
		slog.Error("failed to load badge catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	hub := ws.NewHub(logger.With("component", "websocket"))
	opts := []incentive.Option{
		incentive.WithBroadcaster(hub),
		incentive.WithStreakWindow(cfg.StreakWindow),
	}

	emailClient := email.NewClient(cfg.PostmarkToken, cfg.FromEmail, cfg.BaseURL)
	if emailClient.Configured() {
		opts = append(opts, incentive.WithNotifier(emailClient))
	} else {
		slog.Info("postmark not configured, assignment emails disabled")
	}

	svc := incentive.New(db, catalog, logger.With("component", "incentive"), opts...)
	srv := server.New(db, svc, hub, cfg.RedeemRateLimit, logger)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Background cleanup goroutine
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			case <-cleanupCtx.Done():
				return
			}
		}
	}()

	go func() {
		slog.Info("taskquest starting", "addr", ":"+cfg.Port, "badges", len(catalog.Definitions()))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	cleanupCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
