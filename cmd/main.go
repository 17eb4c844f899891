/*
Package main is the entry point for the Arena Session Server.

It is responsible for loading configuration, initializing the global logging system,
connecting the Redis fan-out backend when one is configured, wiring the room registry,
session controller and broadcast bus, and gracefully handling operating system
interrupt signals (SIGINT, SIGTERM) for a smooth server shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"arena/internal/app/bus"
	"arena/internal/app/game"
	"arena/internal/configs"
	"arena/internal/handler"
	"arena/internal/pkg/logx"
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Int("port", cfg.Port).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Bool("redis_fanout", cfg.RedisURL != "").
		Dur("room_reap_interval", cfg.RoomReapInterval).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect the Redis fan-out backend when configured. A failed connection
	// degrades to local-only delivery instead of refusing to start, matching
	// single-process operation.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logx.Fatal(err, "Invalid REDIS_URL")
		}

		rdb = redis.NewClient(opts)

		pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logx.Error(err, "Redis connection failed; continuing with local-only fan-out")
			rdb = nil
		}
		cancelPing()
	}

	// Wire registry, hub, bus and controller
	registry := game.NewRegistry()
	hub := game.NewHub()
	eventBus := bus.New(hub, registry, rdb)
	controller := game.NewController(registry, eventBus)

	go eventBus.Run(ctx)

	if cfg.RoomReapInterval > 0 {
		go registry.RunReaper(ctx, cfg.RoomReapInterval)
	}

	// Setup HTTP server and routes
	deps := &handler.AppDeps{
		Registry:   registry,
		Controller: controller,
		Hub:        hub,
		Config:     cfg,
	}
	router := handler.Router(deps)

	serverAddr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Arena Session Server starting on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Server forced to shutdown")
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logx.Error(err, "Failed to close Redis client")
		}
	}

	logx.Info("Server gracefully stopped.")
}
