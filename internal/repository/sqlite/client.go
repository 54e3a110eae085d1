package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tesla-rent/internal/domain"
	"tesla-rent/internal/repository"
)

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	query := `INSERT INTO Clients (Name, Email) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, c.Name, c.Email)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	c.ID = id
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	c := &domain.Client{}
	query := `SELECT ID, Name, Email FROM Clients WHERE ID = ?`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get client %d: %w", id, err)
	}
	return c, nil
}
