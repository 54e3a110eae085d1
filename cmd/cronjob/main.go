package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tesla-rent/internal/config"
	"tesla-rent/internal/jobs"
	"tesla-rent/internal/logger"
	"tesla-rent/internal/repository/sqlite"
	"tesla-rent/internal/scheduler"
	"tesla-rent/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'report-open-rentals')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Tesla rental cronjob runner...", "log_level", cfg.Log.Level)

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

	jobRunner := jobs.NewJobRunner(rentalSvc, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if err := jobRunner.RunOnce(*runOnce); err != nil {
			log.Fatalf("Failed to run job: %v", err)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}
