/*
Package main is the entry point for the Pulse server.

It loads configuration, initializes the global logging system, builds the
in-memory ledger store and the event-stream hub, wires the HTTP server, and
gracefully handles operating system interrupt signals (SIGINT, SIGTERM) for a
smooth shutdown.
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

	"github.com/codydotio/pulse/internal/app/alien"
	"github.com/codydotio/pulse/internal/app/ledger"
	"github.com/codydotio/pulse/internal/app/stream"
	"github.com/codydotio/pulse/internal/configs"
	"github.com/codydotio/pulse/internal/handler"
	"github.com/codydotio/pulse/internal/pkg/logx"
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
		Bool("seed_demo_data", cfg.SeedDemoData).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the ledger store, the single authority over all state.
	store := ledger.NewStore()
	if cfg.SeedDemoData {
		store.Seed()
	}

	// Bridge ledger events to live WebSocket consumers.
	hub := stream.NewHub()
	unsubscribe := store.Subscribe(hub.Broadcast)
	defer unsubscribe()

	// The mock Alien bridge stands in for the real identity and payment providers.
	bridge := alien.NewMockBridge()

	deps := &handler.AppDeps{
		Store:    store,
		Config:   cfg,
		Hub:      hub,
		Identity: bridge,
		Payments: bridge,
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
		logx.Info(fmt.Sprintf("Pulse Server starting on http://localhost%s", serverAddr))
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

	hub.Shutdown()

	logx.Info("Server gracefully stopped.")
}
