package repository

import (
	"context"
	"time"

	"tesla-rent/internal/domain"
)

type SchemaRepository interface {
	// EnsureSchema creates the Cars, Clients and Rents tables when missing.
	EnsureSchema(ctx context.Context) error
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	// GetCloseQuote returns domain.ErrRentalNotFound when the rental or its
	// car does not exist.
	GetCloseQuote(ctx context.Context, id int64) (*domain.CloseQuote, error)
	// Close records end, distance and cost on an open rental. It reports
	// false when no open rental with that id exists.
	Close(ctx context.Context, id int64, end time.Time, distance, cost float64) (bool, error)
	GetInfo(ctx context.Context, id int64) (*domain.RentalInfo, error)
	ListOpen(ctx context.Context) ([]domain.RentalInfo, error)
	HasOpenRentalForCar(ctx context.Context, carID int64) (bool, error)
}
