//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/retailops/backoffice/internal/domains/inventory/domain"
	"github.com/retailops/backoffice/internal/domains/inventory/ports"
	"github.com/retailops/backoffice/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("backoffice_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedStock(t *testing.T, repo *Repository, productID, storeID int64, quantity int32) {
	t.Helper()
	level, err := domain.NewStockLevel(productID, storeID, quantity)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), level)
	require.NoError(t, err)
}

func TestPostgresRepository_ReserveDecrements(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedStock(t, repo, 10, 1, 5)

	require.NoError(t, repo.Reserve(ctx, 1, 10, 3))

	level, err := repo.GetByProductAndStore(ctx, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), level.Quantity)
}

func TestPostgresRepository_ReserveShortfall(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedStock(t, repo, 10, 1, 2)

	err := repo.Reserve(ctx, 1, 10, 3)

	var shortfall *ports.InsufficientStockError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, int64(10), shortfall.ProductID)
	assert.Equal(t, int32(3), shortfall.Requested)
	assert.Equal(t, int32(2), shortfall.Available)

	// Quantity must be untouched after the rejected reservation.
	level, err := repo.GetByProductAndStore(ctx, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), level.Quantity)
}

func TestPostgresRepository_ReserveMissingRow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	err := repo.Reserve(context.Background(), 1, 10, 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_ConcurrentReservationsNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedStock(t, repo, 10, 1, 10)

	const racers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	var wins int
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Reserve(ctx, 1, 10, 1); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, wins)
	level, err := repo.GetByProductAndStore(ctx, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(0), level.Quantity)
}

func TestPostgresRepository_RestockAddsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedStock(t, repo, 10, 1, 5)

	require.NoError(t, repo.Reserve(ctx, 1, 10, 5))
	require.NoError(t, repo.Restock(ctx, 1, 10, 5))

	level, err := repo.GetByProductAndStore(ctx, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(5), level.Quantity)
}

func TestPostgresRepository_CreateDuplicatePair(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	seedStock(t, repo, 10, 1, 5)

	level, err := domain.NewStockLevel(10, 1, 3)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), level)
	assert.ErrorIs(t, err, ports.ErrAlreadyExists)
}
