package main

import (
	"context"
	"path/filepath"
	"testing"

	"tesla-rent/internal/config"
	"tesla-rent/internal/repository/sqlite"
	"tesla-rent/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "demo.db"), MaxOpenConns: 1})
	require.NoError(t, err)
	store := sqlite.NewStore(db)
	defer store.Close()

	rentals := service.NewRentalService(store.SchemaRepository, store.CarRepository, store.ClientRepository, store.RentalRepository, service.RentalOptions{})
	require.NoError(t, run(ctx, rentals, 0))

	info, err := rentals.GetInfo(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, info, "Client: Renars, Car: M3")
	assert.Contains(t, info, "Kms: 150")
	// Three hours plus a negligible wall-clock pause, so cost rounds to 135.00.
	assert.Contains(t, info, "Cost: 135.00")
}
