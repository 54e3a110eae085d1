package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tesla-rent/internal/domain"
	"tesla-rent/internal/logger"
	"tesla-rent/internal/repository"
)

const rentalInfoColumns = `Rents.ID, Rents.CID, Rents.CarID, Clients.Name, Clients.Email, Cars.Model, Cars.HrRate, Cars.KmRate,
	Rents.Start, Rents."End", Rents.Kms, Rents.Cost`

// GetInfo only reports rentals whose client and car still exist.
const rentalInfoFrom = ` FROM Rents
	JOIN Clients ON Rents.CID = Clients.ID
	JOIN Cars ON Rents.CarID = Cars.ID`

// Listings include rentals whose client or car row is missing.
const rentalListFrom = ` FROM Rents
	LEFT JOIN Clients ON Rents.CID = Clients.ID
	LEFT JOIN Cars ON Rents.CarID = Cars.ID`

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO Rents (CID, CarID, Start) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, rt.ClientID, rt.CarID, formatTime(rt.Start))
	if err != nil {
		return fmt.Errorf("insert rental: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert rental: %w", err)
	}
	rt.ID = id
	return nil
}

func (r *rentalRepository) GetCloseQuote(ctx context.Context, id int64) (*domain.CloseQuote, error) {
	query := `SELECT Rents.Start, Rents."End" IS NOT NULL, Cars.HrRate, Cars.KmRate
	          FROM Rents
	          JOIN Cars ON Rents.CarID = Cars.ID
	          WHERE Rents.ID = ?`

	var start string
	q := &domain.CloseQuote{RentalID: id}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&start, &q.Closed, &q.HourlyRate, &q.DistanceRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get close quote for rental %d: %w", id, err)
	}
	if q.Start, err = parseTime(start); err != nil {
		return nil, fmt.Errorf("rental %d start: %w", id, err)
	}
	return q, nil
}

func (r *rentalRepository) Close(ctx context.Context, id int64, end time.Time, distance, cost float64) (bool, error) {
	query := `UPDATE Rents SET "End" = ?, Kms = ?, Cost = ? WHERE ID = ? AND "End" IS NULL`
	logger.DatabaseCall("close_rental", query, "rent_id", id)

	res, err := r.db.ExecContext(ctx, query, formatTime(end), distance, cost, id)
	if err != nil {
		logger.DatabaseResult("close_rental", 0, err, "rent_id", id)
		return false, fmt.Errorf("close rental %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("close rental %d: %w", id, err)
	}
	logger.DatabaseResult("close_rental", n, nil, "rent_id", id)
	return n == 1, nil
}

func (r *rentalRepository) GetInfo(ctx context.Context, id int64) (*domain.RentalInfo, error) {
	query := `SELECT ` + rentalInfoColumns + rentalInfoFrom + ` WHERE Rents.ID = ?`
	info, err := scanRentalInfo(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get rental %d: %w", id, err)
	}
	return info, nil
}

func (r *rentalRepository) ListOpen(ctx context.Context) ([]domain.RentalInfo, error) {
	query := `SELECT ` + rentalInfoColumns + rentalListFrom + ` WHERE Rents."End" IS NULL ORDER BY Rents.Start, Rents.ID`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list open rentals: %w", err)
	}
	defer rows.Close()

	var rentals []domain.RentalInfo
	for rows.Next() {
		info, err := scanRentalInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("list open rentals: %w", err)
		}
		rentals = append(rentals, *info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list open rentals: %w", err)
	}
	return rentals, nil
}

func (r *rentalRepository) HasOpenRentalForCar(ctx context.Context, carID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM Rents WHERE CarID = ? AND "End" IS NULL)`
	var open bool
	if err := r.db.QueryRowContext(ctx, query, carID).Scan(&open); err != nil {
		return false, fmt.Errorf("check open rentals for car %d: %w", carID, err)
	}
	return open, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRentalInfo(row rowScanner) (*domain.RentalInfo, error) {
	var (
		info           domain.RentalInfo
		name, email    sql.NullString
		model          sql.NullString
		hrRate, kmRate sql.NullFloat64
		start          string
		end            sql.NullString
		kms, cost      sql.NullFloat64
	)
	err := row.Scan(&info.ID, &info.ClientID, &info.CarID, &name, &email, &model, &hrRate, &kmRate, &start, &end, &kms, &cost)
	if err != nil {
		return nil, err
	}
	info.ClientName, info.ClientEmail = name.String, email.String
	info.CarModel = model.String
	info.CarHourlyRate, info.CarDistanceRate = hrRate.Float64, kmRate.Float64
	if info.Start, err = parseTime(start); err != nil {
		return nil, err
	}
	if info.End, err = parseNullTime(end); err != nil {
		return nil, err
	}
	info.Distance = nullFloat(kms)
	info.Cost = nullFloat(cost)
	return &info, nil
}
