package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "tesla-rent/internal/api/http"
	"tesla-rent/internal/config"
	"tesla-rent/internal/logger"
	"tesla-rent/internal/repository/sqlite"
	"tesla-rent/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Tesla rental server...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Database configuration", "path", cfg.Database.Path, "max_open_conns", cfg.Database.MaxOpenConns)

	// Initialize Database
	ctx := context.Background()
	db, err := sqlite.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		log.Fatalf("Failed to open database: %v", err)
	}
	store := sqlite.NewStore(db)
	defer store.Close()

	rentalSvc := service.NewRentalService(
		store.SchemaRepository,
		store.CarRepository,
		store.ClientRepository,
		store.RentalRepository,
		service.RentalOptions{PreventDoubleBooking: cfg.Rental.PreventDoubleBooking},
	)
	if err := rentalSvc.Setup(ctx); err != nil {
		logger.Error("Failed to set up schema", "error", err)
		log.Fatalf("Failed to set up schema: %v", err)
	}
	logger.Info("Database ready")

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(rentalSvc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
