package service

import (
	"context"
	"time"

	"tesla-rent/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockSchemaRepo struct {
	mock.Mock
}

func (m *MockSchemaRepo) EnsureSchema(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCarRepo struct {
	mock.Mock
}

func (m *MockCarRepo) Create(ctx context.Context, car *domain.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockCarRepo) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, client *domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}
func (m *MockClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetCloseQuote(ctx context.Context, id int64) (*domain.CloseQuote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseQuote), args.Error(1)
}
func (m *MockRentalRepo) Close(ctx context.Context, id int64, end time.Time, distance, cost float64) (bool, error) {
	args := m.Called(ctx, id, end, distance, cost)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) GetInfo(ctx context.Context, id int64) (*domain.RentalInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalInfo), args.Error(1)
}
func (m *MockRentalRepo) ListOpen(ctx context.Context) ([]domain.RentalInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RentalInfo), args.Error(1)
}
func (m *MockRentalRepo) HasOpenRentalForCar(ctx context.Context, carID int64) (bool, error) {
	args := m.Called(ctx, carID)
	return args.Bool(0), args.Error(1)
}
