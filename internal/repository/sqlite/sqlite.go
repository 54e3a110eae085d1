package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"tesla-rent/internal/config"
	"tesla-rent/internal/repository"

	_ "modernc.org/sqlite"
)

// Store bundles the repositories over one SQLite handle.
type Store struct {
	db *sql.DB
	repository.SchemaRepository
	repository.CarRepository
	repository.ClientRepository
	repository.RentalRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:               db,
		SchemaRepository: NewSchemaRepository(db),
		CarRepository:    NewCarRepository(db),
		ClientRepository: NewClientRepository(db),
		RentalRepository: NewRentalRepository(db),
	}
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the underlying handle. Safe on a nil store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Open opens (creating if needed) the SQLite file named in cfg and verifies
// it can be read.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("database path is empty")
	}

	db, err := sql.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return db, nil
}

func dsn(cfg config.DatabaseConfig) string {
	if cfg.BusyTimeoutMs <= 0 {
		return cfg.Path
	}
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeoutMs))
	sep := "?"
	if strings.Contains(cfg.Path, "?") {
		sep = "&"
	}
	return cfg.Path + sep + q.Encode()
}
