package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tesla-rent/internal/domain"
	"tesla-rent/internal/logger"
	"tesla-rent/internal/repository"
	"tesla-rent/internal/utils"
)

// RentalOptions toggles rules that are off by default.
type RentalOptions struct {
	PreventDoubleBooking bool
}

type rentalService struct {
	schemaRepo repository.SchemaRepository
	carRepo    repository.CarRepository
	clientRepo repository.ClientRepository
	rentalRepo repository.RentalRepository
	opts       RentalOptions

	// mu serialises the read-then-write sequences of StartRent and EndRent.
	mu sync.Mutex
}

func NewRentalService(
	schemaRepo repository.SchemaRepository,
	carRepo repository.CarRepository,
	clientRepo repository.ClientRepository,
	rentalRepo repository.RentalRepository,
	opts RentalOptions,
) RentalService {
	return &rentalService{
		schemaRepo: schemaRepo,
		carRepo:    carRepo,
		clientRepo: clientRepo,
		rentalRepo: rentalRepo,
		opts:       opts,
	}
}

func (s *rentalService) Setup(ctx context.Context) error {
	logger.EnterMethod("rentalService.Setup")
	if err := s.schemaRepo.EnsureSchema(ctx); err != nil {
		logger.ExitMethodWithError("rentalService.Setup", err)
		return err
	}
	logger.ExitMethod("rentalService.Setup")
	return nil
}

func (s *rentalService) AddCar(ctx context.Context, model string, hourlyRate, distanceRate float64) (int64, error) {
	car := &domain.Car{Model: model, HourlyRate: hourlyRate, DistanceRate: distanceRate}
	if err := s.carRepo.Create(ctx, car); err != nil {
		return 0, err
	}
	logger.Debug("Car added", "car_id", car.ID, "model", model)
	return car.ID, nil
}

func (s *rentalService) AddClient(ctx context.Context, name, email string) (int64, error) {
	client := &domain.Client{Name: name, Email: email}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return 0, err
	}
	logger.Debug("Client added", "client_id", client.ID)
	return client.ID, nil
}

func (s *rentalService) GetCar(ctx context.Context, carID int64) (*domain.Car, error) {
	return s.carRepo.GetByID(ctx, carID)
}

func (s *rentalService) GetClient(ctx context.Context, clientID int64) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, clientID)
}

func (s *rentalService) StartRent(ctx context.Context, clientID, carID int64, start time.Time) (int64, error) {
	logger.EnterMethod("rentalService.StartRent", "clientID", clientID, "carID", carID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.PreventDoubleBooking {
		busy, err := s.rentalRepo.HasOpenRentalForCar(ctx, carID)
		if err != nil {
			logger.ExitMethodWithError("rentalService.StartRent", err, "carID", carID)
			return 0, err
		}
		if busy {
			logger.ExitMethodWithError("rentalService.StartRent", domain.ErrCarUnavailable, "carID", carID)
			return 0, fmt.Errorf("car %d: %w", carID, domain.ErrCarUnavailable)
		}
	}

	rental := &domain.Rental{ClientID: clientID, CarID: carID, Start: start}
	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		logger.ExitMethodWithError("rentalService.StartRent", err, "carID", carID)
		return 0, err
	}

	logger.ExitMethod("rentalService.StartRent", "rentID", rental.ID)
	return rental.ID, nil
}

// EndRent closes an open rental, pricing it with the car's current rates.
// Unknown and already closed rentals are reported through the outcome and
// leave the store untouched.
func (s *rentalService) EndRent(ctx context.Context, rentID int64, end time.Time, distance float64) (*domain.CloseResult, error) {
	logger.EnterMethod("rentalService.EndRent", "rentID", rentID, "distance", distance)

	s.mu.Lock()
	defer s.mu.Unlock()

	quote, err := s.rentalRepo.GetCloseQuote(ctx, rentID)
	if errors.Is(err, domain.ErrRentalNotFound) {
		logger.ExitMethod("rentalService.EndRent", "rentID", rentID, "outcome", domain.CloseOutcomeNotFound)
		return &domain.CloseResult{Outcome: domain.CloseOutcomeNotFound}, nil
	}
	if err != nil {
		logger.ExitMethodWithError("rentalService.EndRent", err, "rentID", rentID)
		return nil, err
	}
	if quote.Closed {
		logger.ExitMethod("rentalService.EndRent", "rentID", rentID, "outcome", domain.CloseOutcomeAlreadyClosed)
		return &domain.CloseResult{Outcome: domain.CloseOutcomeAlreadyClosed}, nil
	}

	cost := utils.CalculateRentalCost(quote, end, distance)

	closed, err := s.rentalRepo.Close(ctx, rentID, end, distance, cost)
	if err != nil {
		logger.ExitMethodWithError("rentalService.EndRent", err, "rentID", rentID)
		return nil, err
	}
	if !closed {
		// Closed by another writer between the quote and the update.
		logger.ExitMethod("rentalService.EndRent", "rentID", rentID, "outcome", domain.CloseOutcomeAlreadyClosed)
		return &domain.CloseResult{Outcome: domain.CloseOutcomeAlreadyClosed}, nil
	}

	logger.ExitMethod("rentalService.EndRent", "rentID", rentID, "outcome", domain.CloseOutcomeClosed, "cost", cost)
	return &domain.CloseResult{Outcome: domain.CloseOutcomeClosed, Cost: cost}, nil
}

func (s *rentalService) GetInfo(ctx context.Context, rentID int64) (string, error) {
	info, err := s.rentalRepo.GetInfo(ctx, rentID)
	if errors.Is(err, domain.ErrRentalNotFound) {
		return domain.RentalNotFoundMessage, nil
	}
	if err != nil {
		return "", err
	}
	return info.Summary(), nil
}

func (s *rentalService) GetRental(ctx context.Context, rentID int64) (*domain.RentalInfo, error) {
	return s.rentalRepo.GetInfo(ctx, rentID)
}

func (s *rentalService) ListOpenRentals(ctx context.Context) ([]domain.RentalInfo, error) {
	return s.rentalRepo.ListOpen(ctx)
}
