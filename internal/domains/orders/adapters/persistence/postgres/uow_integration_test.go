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

	catalogpostgres "github.com/retailops/backoffice/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/retailops/backoffice/internal/domains/catalog/domain"
	customerspostgres "github.com/retailops/backoffice/internal/domains/customers/adapters/persistence/postgres"
	customersports "github.com/retailops/backoffice/internal/domains/customers/ports"
	inventorypostgres "github.com/retailops/backoffice/internal/domains/inventory/adapters/persistence/postgres"
	inventorydomain "github.com/retailops/backoffice/internal/domains/inventory/domain"
	inventoryports "github.com/retailops/backoffice/internal/domains/inventory/ports"
	ordersapp "github.com/retailops/backoffice/internal/domains/orders/application"
	ordersports "github.com/retailops/backoffice/internal/domains/orders/ports"
	storespostgres "github.com/retailops/backoffice/internal/domains/stores/adapters/persistence/postgres"
	storesdomain "github.com/retailops/backoffice/internal/domains/stores/domain"
	"github.com/retailops/backoffice/internal/platform/migrations"
)

type placementHarness struct {
	db        *gorm.DB
	service   *ordersapp.Service
	customers *customerspostgres.Repository
	inventory *inventorypostgres.Repository
	orders    *Repository
}

func setupPlacementHarness(t *testing.T) (*placementHarness, func()) {
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
	require.NoError(t, migrations.Run(db))

	orderRepo := NewRepository(db)
	harness := &placementHarness{
		db:        db,
		service:   ordersapp.NewService(NewUnitOfWork(db), orderRepo),
		customers: customerspostgres.NewRepository(db),
		inventory: inventorypostgres.NewRepository(db),
		orders:    orderRepo,
	}
	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return harness, cleanup
}

func (h *placementHarness) seedStore(t *testing.T) int64 {
	t.Helper()
	store, err := storesdomain.NewStore(0, "Downtown", "1 Main St")
	require.NoError(t, err)
	saved, err := storespostgres.NewRepository(h.db).Save(context.Background(), store)
	require.NoError(t, err)
	return saved.ID
}

func (h *placementHarness) seedProduct(t *testing.T, sku string, price float64) int64 {
	t.Helper()
	product, err := catalogdomain.NewProduct(0, "Product "+sku, "general", price, sku)
	require.NoError(t, err)
	saved, err := catalogpostgres.NewRepository(h.db).Save(context.Background(), product)
	require.NoError(t, err)
	return saved.Entity.ID
}

func (h *placementHarness) seedStock(t *testing.T, productID, storeID int64, quantity int32) {
	t.Helper()
	level, err := inventorydomain.NewStockLevel(productID, storeID, quantity)
	require.NoError(t, err)
	_, err = h.inventory.Create(context.Background(), level)
	require.NoError(t, err)
}

func (h *placementHarness) stockOf(t *testing.T, productID, storeID int64) int32 {
	t.Helper()
	level, err := h.inventory.GetByProductAndStore(context.Background(), productID, storeID)
	require.NoError(t, err)
	return level.Quantity
}

func TestUnitOfWork_PlaceOrderCommits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	h, cleanup := setupPlacementHarness(t)
	defer cleanup()

	storeID := h.seedStore(t)
	productID := h.seedProduct(t, "SKU-1", 19.99)
	h.seedStock(t, productID, storeID, 5)

	confirmation, err := h.service.PlaceOrder(context.Background(), ordersports.PlaceOrderInput{
		CustomerEmail: "shopper@example.com",
		StoreID:       storeID,
		Lines:         []ordersports.LineInput{{ProductID: productID, Quantity: 2}},
	})

	require.NoError(t, err)
	assert.InDelta(t, 39.98, confirmation.Total, 0.0001)
	assert.Equal(t, int32(3), h.stockOf(t, productID, storeID))

	recorded, err := h.orders.GetByID(context.Background(), confirmation.OrderID)
	require.NoError(t, err)
	assert.Len(t, recorded.Lines, 1)
	assert.Equal(t, confirmation.CustomerID, recorded.CustomerID)
}

func TestUnitOfWork_ShortfallRollsEverythingBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	h, cleanup := setupPlacementHarness(t)
	defer cleanup()

	storeID := h.seedStore(t)
	first := h.seedProduct(t, "SKU-1", 5.00)
	second := h.seedProduct(t, "SKU-2", 5.00)
	h.seedStock(t, first, storeID, 5)
	h.seedStock(t, second, storeID, 1)

	_, err := h.service.PlaceOrder(context.Background(), ordersports.PlaceOrderInput{
		CustomerEmail: "shopper@example.com",
		StoreID:       storeID,
		Lines: []ordersports.LineInput{
			{ProductID: first, Quantity: 2},
			{ProductID: second, Quantity: 3},
		},
	})

	var shortfall *inventoryports.InsufficientStockError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, second, shortfall.ProductID)

	// The transaction rollback must undo the first line's reservation and the
	// customer created on first contact.
	assert.Equal(t, int32(5), h.stockOf(t, first, storeID))
	assert.Equal(t, int32(1), h.stockOf(t, second, storeID))
	_, err = h.customers.GetByEmail(context.Background(), "shopper@example.com")
	assert.ErrorIs(t, err, customersports.ErrNotFound)

	orders, err := h.orders.ListByStore(context.Background(), storeID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestUnitOfWork_ConcurrentLastUnitExactlyOneWinner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	h, cleanup := setupPlacementHarness(t)
	defer cleanup()

	storeID := h.seedStore(t)
	productID := h.seedProduct(t, "SKU-1", 9.99)
	h.seedStock(t, productID, storeID, 1)

	const racers = 8
	var wg sync.WaitGroup
	results := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, results[slot] = h.service.PlaceOrder(context.Background(), ordersports.PlaceOrderInput{
				CustomerEmail: "shopper@example.com",
				StoreID:       storeID,
				Lines:         []ordersports.LineInput{{ProductID: productID, Quantity: 1}},
			})
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		var shortfall *inventoryports.InsufficientStockError
		assert.ErrorAs(t, err, &shortfall)
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, int32(0), h.stockOf(t, productID, storeID))
}

func TestUnitOfWork_SameEmailResolvesOneCustomer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	h, cleanup := setupPlacementHarness(t)
	defer cleanup()

	storeID := h.seedStore(t)
	productID := h.seedProduct(t, "SKU-1", 1.00)
	h.seedStock(t, productID, storeID, 10)

	input := ordersports.PlaceOrderInput{
		CustomerEmail: "shopper@example.com",
		StoreID:       storeID,
		Lines:         []ordersports.LineInput{{ProductID: productID, Quantity: 1}},
	}
	first, err := h.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	second, err := h.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)

	var count int64
	require.NoError(t, h.db.Table("customers").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
