package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tesla-rent/internal/domain"
	"tesla-rent/internal/repository"
)

type carRepository struct {
	db *sql.DB
}

func NewCarRepository(db *sql.DB) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `INSERT INTO Cars (Model, HrRate, KmRate) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, car.Model, car.HourlyRate, car.DistanceRate)
	if err != nil {
		return fmt.Errorf("insert car: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert car: %w", err)
	}
	car.ID = id
	return nil
}

func (r *carRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	car := &domain.Car{}
	query := `SELECT ID, Model, HrRate, KmRate FROM Cars WHERE ID = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&car.ID, &car.Model, &car.HourlyRate, &car.DistanceRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get car %d: %w", id, err)
	}
	return car, nil
}
