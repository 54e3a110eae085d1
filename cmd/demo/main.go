package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"tesla-rent/internal/config"
	"tesla-rent/internal/logger"
	"tesla-rent/internal/repository/sqlite"
	"tesla-rent/internal/service"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (defaults are used when empty)")
	dbPath := flag.String("db", "", "Override the database file path")
	pause := flag.Duration("pause", 2*time.Second, "Wall-clock pause between starting and ending the rental")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		cfg = loaded
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()
	db, err := sqlite.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	store := sqlite.NewStore(db)
	defer store.Close()

	rentals := service.NewRentalService(
		store.SchemaRepository,
		store.CarRepository,
		store.ClientRepository,
		store.RentalRepository,
		service.RentalOptions{PreventDoubleBooking: cfg.Rental.PreventDoubleBooking},
	)

	if err := run(ctx, rentals, *pause); err != nil {
		logger.Error("Demo failed", "error", err)
		log.Fatalf("Demo failed: %v", err)
	}
}

func run(ctx context.Context, rentals service.RentalService, pause time.Duration) error {
	if err := rentals.Setup(ctx); err != nil {
		return err
	}

	carID, err := rentals.AddCar(ctx, "M3", 20, 0.5)
	if err != nil {
		return err
	}
	if _, err := rentals.AddCar(ctx, "MY", 25, 0.6); err != nil {
		return err
	}

	clientID, err := rentals.AddClient(ctx, "Renars", "renars@mail.com")
	if err != nil {
		return err
	}

	rentID, err := rentals.StartRent(ctx, clientID, carID, time.Now())
	if err != nil {
		return err
	}

	time.Sleep(pause)

	res, err := rentals.EndRent(ctx, rentID, time.Now().Add(3*time.Hour), 150)
	if err != nil {
		return err
	}
	logger.Info("Rental ended", "rent_id", rentID, "outcome", res.Outcome)

	info, err := rentals.GetInfo(ctx, rentID)
	if err != nil {
		return err
	}
	fmt.Println(info)
	return nil
}
