package service

import (
	"context"
	"time"

	"tesla-rent/internal/domain"
)

// RentalService is the rental store: schema setup, reference data and the
// rental open/close lifecycle.
type RentalService interface {
	Setup(ctx context.Context) error
	AddCar(ctx context.Context, model string, hourlyRate, distanceRate float64) (int64, error)
	AddClient(ctx context.Context, name, email string) (int64, error)
	GetCar(ctx context.Context, carID int64) (*domain.Car, error)
	GetClient(ctx context.Context, clientID int64) (*domain.Client, error)
	StartRent(ctx context.Context, clientID, carID int64, start time.Time) (int64, error)
	EndRent(ctx context.Context, rentID int64, end time.Time, distance float64) (*domain.CloseResult, error)
	// GetInfo returns domain.RentalNotFoundMessage, not an error, for an unknown rental.
	GetInfo(ctx context.Context, rentID int64) (string, error)
	GetRental(ctx context.Context, rentID int64) (*domain.RentalInfo, error)
	ListOpenRentals(ctx context.Context) ([]domain.RentalInfo, error)
}
