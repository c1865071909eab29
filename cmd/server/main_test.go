package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-property-backend/internal/config"
	"github.com/tbourn/go-property-backend/internal/filter"
	"github.com/tbourn/go-property-backend/internal/repo"
)

func TestOpenStore_Memory(t *testing.T) {
	store, closeFn, err := openStore(config.Config{StoreDriver: config.StoreMemory})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &repo.MemoryStore{}, store)
}

func TestOpenStore_SQLiteMigratesAndSeeds(t *testing.T) {
	cfg := config.Config{
		StoreDriver: config.StoreSQLite,
		DBPath:      filepath.Join(t.TempDir(), "catalog.db"),
	}
	store, closeFn, err := openStore(cfg)
	require.NoError(t, err)
	defer closeFn()

	ctx := context.Background()
	require.NoError(t, repo.Seed(ctx, store, "demo-user"))
	// seeding twice is harmless
	require.NoError(t, repo.Seed(ctx, store, "demo-user"))

	props, err := store.ListProperties(ctx, filter.Criteria{})
	require.NoError(t, err)
	assert.Len(t, props, len(repo.SeedProperties()))
}

func TestOpenStore_Errors(t *testing.T) {
	_, _, err := openStore(config.Config{StoreDriver: "mongodb"})
	assert.Error(t, err)

	_, _, err = openStore(config.Config{
		StoreDriver: config.StoreSQLite,
		DBPath:      filepath.Join(t.TempDir(), "missing", "catalog.db"),
	})
	assert.Error(t, err)
}
