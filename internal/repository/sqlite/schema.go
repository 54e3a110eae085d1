package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"tesla-rent/internal/logger"
	"tesla-rent/internal/repository"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS Cars (
		ID     INTEGER PRIMARY KEY AUTOINCREMENT,
		Model  TEXT,
		HrRate REAL,
		KmRate REAL
	)`,
	`CREATE TABLE IF NOT EXISTS Clients (
		ID    INTEGER PRIMARY KEY AUTOINCREMENT,
		Name  TEXT,
		Email TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS Rents (
		ID    INTEGER PRIMARY KEY AUTOINCREMENT,
		CID   INTEGER,
		CarID INTEGER,
		Start DATETIME NOT NULL,
		"End" DATETIME,
		Kms   REAL,
		Cost  REAL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rents_car_open ON Rents(CarID, "End")`,
}

type schemaRepository struct {
	db *sql.DB
}

func NewSchemaRepository(db *sql.DB) repository.SchemaRepository {
	return &schemaRepository{db: db}
}

func (r *schemaRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		logger.DatabaseCall("ensure_schema", stmt)
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			logger.DatabaseResult("ensure_schema", 0, err)
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
