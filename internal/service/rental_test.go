package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tesla-rent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	schemaRepo *MockSchemaRepo
	carRepo    *MockCarRepo
	clientRepo *MockClientRepo
	rentalRepo *MockRentalRepo
}

func newFixture(opts RentalOptions) (*fixture, RentalService) {
	f := &fixture{
		schemaRepo: new(MockSchemaRepo),
		carRepo:    new(MockCarRepo),
		clientRepo: new(MockClientRepo),
		rentalRepo: new(MockRentalRepo),
	}
	return f, NewRentalService(f.schemaRepo, f.carRepo, f.clientRepo, f.rentalRepo, opts)
}

func TestRentalService_Setup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.schemaRepo.On("EnsureSchema", ctx).Return(nil)
		assert.NoError(t, svc.Setup(ctx))
		f.schemaRepo.AssertExpectations(t)
	})

	t.Run("Storage unavailable", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.schemaRepo.On("EnsureSchema", ctx).Return(errors.New("unable to open database file"))
		err := svc.Setup(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unable to open database file")
	})
}

func TestRentalService_AddCar(t *testing.T) {
	ctx := context.Background()
	f, svc := newFixture(RentalOptions{})

	f.carRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Car) bool {
		return c.Model == "M3" && c.HourlyRate == 20 && c.DistanceRate == 0.5
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Car).ID = 1
	}).Return(nil)

	id, err := svc.AddCar(ctx, "M3", 20, 0.5)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)
	f.carRepo.AssertExpectations(t)
}

func TestRentalService_AddClient(t *testing.T) {
	ctx := context.Background()
	f, svc := newFixture(RentalOptions{})

	f.clientRepo.On("Create", ctx, mock.AnythingOfType("*domain.Client")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Client).ID = 4
		}).Return(nil)

	id, err := svc.AddClient(ctx, "Renars", "renars@mail.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(4), id)
}

func TestRentalService_StartRent(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Success without availability check", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.rentalRepo.On("Create", ctx, mock.MatchedBy(func(r *domain.Rental) bool {
			return r.ClientID == 2 && r.CarID == 1 && r.Start.Equal(start) && r.End == nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Rental).ID = 10
		}).Return(nil)

		id, err := svc.StartRent(ctx, 2, 1, start)
		assert.NoError(t, err)
		assert.Equal(t, int64(10), id)
		f.rentalRepo.AssertNotCalled(t, "HasOpenRentalForCar", mock.Anything, mock.Anything)
	})

	t.Run("Car unavailable", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{PreventDoubleBooking: true})
		f.rentalRepo.On("HasOpenRentalForCar", ctx, int64(1)).Return(true, nil)

		_, err := svc.StartRent(ctx, 2, 1, start)
		assert.ErrorIs(t, err, domain.ErrCarUnavailable)
		f.rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Car available", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{PreventDoubleBooking: true})
		f.rentalRepo.On("HasOpenRentalForCar", ctx, int64(1)).Return(false, nil)
		f.rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		_, err := svc.StartRent(ctx, 2, 1, start)
		assert.NoError(t, err)
	})
}

func TestRentalService_EndRent(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)

	t.Run("Closes open rental", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.rentalRepo.On("GetCloseQuote", ctx, int64(1)).Return(&domain.CloseQuote{
			RentalID: 1, Start: start, HourlyRate: 20, DistanceRate: 0.5,
		}, nil)
		f.rentalRepo.On("Close", ctx, int64(1), end, 150.0, mock.MatchedBy(func(cost float64) bool {
			return cost > 134.999 && cost < 135.001
		})).Return(true, nil)

		res, err := svc.EndRent(ctx, 1, end, 150)
		require.NoError(t, err)
		assert.Equal(t, domain.CloseOutcomeClosed, res.Outcome)
		assert.InDelta(t, 135.0, res.Cost, 1e-9)
		f.rentalRepo.AssertExpectations(t)
	})

	t.Run("Unknown rental", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.rentalRepo.On("GetCloseQuote", ctx, int64(99)).Return(nil, domain.ErrRentalNotFound)

		res, err := svc.EndRent(ctx, 99, end, 150)
		require.NoError(t, err)
		assert.Equal(t, domain.CloseOutcomeNotFound, res.Outcome)
		f.rentalRepo.AssertNotCalled(t, "Close", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already closed", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.rentalRepo.On("GetCloseQuote", ctx, int64(1)).Return(&domain.CloseQuote{
			RentalID: 1, Start: start, Closed: true, HourlyRate: 20, DistanceRate: 0.5,
		}, nil)

		res, err := svc.EndRent(ctx, 1, end.Add(time.Hour), 500)
		require.NoError(t, err)
		assert.Equal(t, domain.CloseOutcomeAlreadyClosed, res.Outcome)
		f.rentalRepo.AssertNotCalled(t, "Close", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Closed concurrently", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.rentalRepo.On("GetCloseQuote", ctx, int64(1)).Return(&domain.CloseQuote{
			RentalID: 1, Start: start, HourlyRate: 20, DistanceRate: 0.5,
		}, nil)
		f.rentalRepo.On("Close", ctx, int64(1), end, 150.0, mock.Anything).Return(false, nil)

		res, err := svc.EndRent(ctx, 1, end, 150)
		require.NoError(t, err)
		assert.Equal(t, domain.CloseOutcomeAlreadyClosed, res.Outcome)
	})

	t.Run("Storage error", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.rentalRepo.On("GetCloseQuote", ctx, int64(1)).Return(nil, errors.New("disk I/O error"))

		res, err := svc.EndRent(ctx, 1, end, 150)
		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestRentalService_GetInfo(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Found", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.rentalRepo.On("GetInfo", ctx, int64(1)).Return(&domain.RentalInfo{
			Rental:     domain.Rental{ID: 1, Start: start},
			ClientName: "Renars",
			CarModel:   "M3",
		}, nil)

		info, err := svc.GetInfo(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "Rent ID: 1, Client: Renars, Car: M3, Start: 2024-03-01 10:00:00, End: open, Kms: -, Cost: -", info)
	})

	t.Run("Not found", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.rentalRepo.On("GetInfo", ctx, int64(2)).Return(nil, domain.ErrRentalNotFound)

		info, err := svc.GetInfo(ctx, 2)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalNotFoundMessage, info)
	})

	t.Run("Storage error", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.rentalRepo.On("GetInfo", ctx, int64(3)).Return(nil, errors.New("database disk image is malformed"))

		_, err := svc.GetInfo(ctx, 3)
		assert.Error(t, err)
	})
}

func TestRentalService_GetCarAndClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Car", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		want := &domain.Car{ID: 2, Model: "MY", HourlyRate: 25, DistanceRate: 0.6}
		f.carRepo.On("GetByID", ctx, int64(2)).Return(want, nil)

		car, err := svc.GetCar(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, want, car)
	})

	t.Run("Unknown client", func(t *testing.T) {
		f, svc := newFixture(RentalOptions{})
		f.clientRepo.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrClientNotFound)

		client, err := svc.GetClient(ctx, 9)
		assert.Nil(t, client)
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
	})
}
