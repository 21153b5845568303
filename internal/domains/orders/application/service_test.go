package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/retailops/backoffice/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/retailops/backoffice/internal/domains/catalog/domain"
	customersmemory "github.com/retailops/backoffice/internal/domains/customers/adapters/memory"
	customersports "github.com/retailops/backoffice/internal/domains/customers/ports"
	inventorymemory "github.com/retailops/backoffice/internal/domains/inventory/adapters/memory"
	inventorydomain "github.com/retailops/backoffice/internal/domains/inventory/domain"
	inventoryports "github.com/retailops/backoffice/internal/domains/inventory/ports"
	ordersmemory "github.com/retailops/backoffice/internal/domains/orders/adapters/memory"
	"github.com/retailops/backoffice/internal/domains/orders/ports"
	storesmemory "github.com/retailops/backoffice/internal/domains/stores/adapters/memory"
	storesdomain "github.com/retailops/backoffice/internal/domains/stores/domain"
	storesports "github.com/retailops/backoffice/internal/domains/stores/ports"
)

type fixture struct {
	customers *customersmemory.Repository
	stores    *storesmemory.Repository
	catalog   *catalogmemory.Repository
	inventory *inventorymemory.Repository
	orders    *ordersmemory.Repository
	service   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		customers: customersmemory.NewRepository(),
		stores:    storesmemory.NewRepository(),
		catalog:   catalogmemory.NewRepository(),
		inventory: inventorymemory.NewRepository(),
		orders:    ordersmemory.NewRepository(),
	}
	uow := ordersmemory.NewUnitOfWork(f.customers, f.stores, f.catalog, f.inventory, f.orders)
	f.service = NewService(uow, f.orders)
	return f
}

func (f *fixture) seedStore(t *testing.T, name string) int64 {
	t.Helper()
	store, err := storesdomain.NewStore(0, name, "1 Main St")
	require.NoError(t, err)
	saved, err := f.stores.Save(context.Background(), store)
	require.NoError(t, err)
	return saved.ID
}

func (f *fixture) seedProduct(t *testing.T, id int64, sku string, price float64) {
	t.Helper()
	product, err := catalogdomain.NewProduct(id, "Product "+sku, "general", price, sku)
	require.NoError(t, err)
	_, err = f.catalog.Save(context.Background(), product)
	require.NoError(t, err)
}

func (f *fixture) seedStock(t *testing.T, productID, storeID int64, quantity int32) {
	t.Helper()
	level, err := inventorydomain.NewStockLevel(productID, storeID, quantity)
	require.NoError(t, err)
	_, err = f.inventory.Create(context.Background(), level)
	require.NoError(t, err)
}

func (f *fixture) stockOf(t *testing.T, productID, storeID int64) int32 {
	t.Helper()
	level, err := f.inventory.GetByProductAndStore(context.Background(), productID, storeID)
	require.NoError(t, err)
	return level.Quantity
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newFixture(t)
	storeID := f.seedStore(t, "Downtown")
	f.seedProduct(t, 10, "SKU-10", 19.99)
	f.seedProduct(t, 11, "SKU-11", 5.00)
	f.seedStock(t, 10, storeID, 5)
	f.seedStock(t, 11, storeID, 5)

	confirmation, err := f.service.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		CustomerEmail: "shopper@example.com",
		StoreID:       storeID,
		Lines: []ports.LineInput{
			{ProductID: 10, Quantity: 2},
			{ProductID: 11, Quantity: 1},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, confirmation)
	require.NotZero(t, confirmation.OrderID)
	require.InDelta(t, 44.98, confirmation.Total, 0.0001)
	require.Equal(t, int32(3), f.stockOf(t, 10, storeID))
	require.Equal(t, int32(4), f.stockOf(t, 11, storeID))

	recorded, err := f.service.GetByID(context.Background(), confirmation.OrderID)
	require.NoError(t, err)
	require.Equal(t, confirmation.CustomerID, recorded.CustomerID)
	require.Len(t, recorded.Lines, 2)
}

func TestPlaceOrder_MergesDuplicateLines(t *testing.T) {
	f := newFixture(t)
	storeID := f.seedStore(t, "Downtown")
	f.seedProduct(t, 10, "SKU-10", 2.50)
	f.seedStock(t, 10, storeID, 10)

	confirmation, err := f.service.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		CustomerEmail: "shopper@example.com",
		StoreID:       storeID,
		Lines: []ports.LineInput{
			{ProductID: 10, Quantity: 2},
			{ProductID: 10, Quantity: 3},
		},
	})

	require.NoError(t, err)
	require.Len(t, confirmation.Lines, 1)
	require.Equal(t, int32(5), confirmation.Lines[0].Quantity)
	require.Equal(t, int32(5), f.stockOf(t, 10, storeID))
}

func TestPlaceOrder_InsufficientStock_LeavesNoTrace(t *testing.T) {
	f := newFixture(t)
	storeID := f.seedStore(t, "Downtown")
	f.seedProduct(t, 10, "SKU-10", 1.00)
	f.seedProduct(t, 11, "SKU-11", 1.00)
	f.seedStock(t, 10, storeID, 5)
	f.seedStock(t, 11, storeID, 1)

	_, err := f.service.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		CustomerEmail: "shopper@example.com",
		StoreID:       storeID,
		Lines: []ports.LineInput{
			{ProductID: 10, Quantity: 2},
			{ProductID: 11, Quantity: 3},
		},
	})

	var shortfall *inventoryports.InsufficientStockError
	require.ErrorAs(t, err, &shortfall)
	require.Equal(t, int64(11), shortfall.ProductID)
	require.Equal(t, int32(3), shortfall.Requested)
	require.Equal(t, int32(1), shortfall.Available)

	// The earlier reservation of product 10 is rolled back with everything else.
	require.Equal(t, int32(5), f.stockOf(t, 10, storeID))
	require.Equal(t, int32(1), f.stockOf(t, 11, storeID))

	_, err = f.customers.GetByEmail(context.Background(), "shopper@example.com")
	require.ErrorIs(t, err, customersports.ErrNotFound)

	orders, err := f.orders.ListByStore(context.Background(), storeID)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestPlaceOrder_UnknownStore(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, 10, "SKU-10", 1.00)

	_, err := f.service.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		CustomerEmail: "shopper@example.com",
		StoreID:       999,
		Lines:         []ports.LineInput{{ProductID: 10, Quantity: 1}},
	})

	require.ErrorIs(t, err, storesports.ErrNotFound)

	// The customer resolved before the store lookup must not survive the abort.
	_, err = f.customers.GetByEmail(context.Background(), "shopper@example.com")
	require.ErrorIs(t, err, customersports.ErrNotFound)
}

func TestPlaceOrder_SameEmailResolvesOneCustomer(t *testing.T) {
	f := newFixture(t)
	storeID := f.seedStore(t, "Downtown")
	f.seedProduct(t, 10, "SKU-10", 1.00)
	f.seedStock(t, 10, storeID, 10)

	input := ports.PlaceOrderInput{
		CustomerEmail: "shopper@example.com",
		StoreID:       storeID,
		Lines:         []ports.LineInput{{ProductID: 10, Quantity: 1}},
	}
	first, err := f.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	second, err := f.service.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	require.Equal(t, first.CustomerID, second.CustomerID)

	orders, err := f.service.ListByCustomer(context.Background(), first.CustomerID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
}

func TestPlaceOrder_ConcurrentLastUnit_ExactlyOneWinner(t *testing.T) {
	f := newFixture(t)
	storeID := f.seedStore(t, "Downtown")
	f.seedProduct(t, 10, "SKU-10", 9.99)
	f.seedStock(t, 10, storeID, 1)

	const racers = 8
	var wg sync.WaitGroup
	results := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, results[slot] = f.service.PlaceOrder(context.Background(), ports.PlaceOrderInput{
				CustomerEmail: "shopper@example.com",
				StoreID:       storeID,
				Lines:         []ports.LineInput{{ProductID: 10, Quantity: 1}},
			})
		}(i)
	}
	wg.Wait()

	var wins, shortfalls int
	for _, err := range results {
		if err == nil {
			wins++
			continue
		}
		var shortfall *inventoryports.InsufficientStockError
		require.ErrorAs(t, err, &shortfall)
		shortfalls++
	}
	require.Equal(t, 1, wins)
	require.Equal(t, racers-1, shortfalls)
	require.Equal(t, int32(0), f.stockOf(t, 10, storeID))
}

func TestPlaceOrder_RejectsBadInput(t *testing.T) {
	f := newFixture(t)
	storeID := f.seedStore(t, "Downtown")
	f.seedProduct(t, 10, "SKU-10", 1.00)
	f.seedStock(t, 10, storeID, 10)

	cases := []struct {
		name  string
		input ports.PlaceOrderInput
	}{
		{"no lines", ports.PlaceOrderInput{CustomerEmail: "a@b.c", StoreID: storeID}},
		{"zero quantity", ports.PlaceOrderInput{CustomerEmail: "a@b.c", StoreID: storeID, Lines: []ports.LineInput{{ProductID: 10, Quantity: 0}}}},
		{"bad product", ports.PlaceOrderInput{CustomerEmail: "a@b.c", StoreID: storeID, Lines: []ports.LineInput{{ProductID: 0, Quantity: 1}}}},
		{"missing store", ports.PlaceOrderInput{CustomerEmail: "a@b.c", Lines: []ports.LineInput{{ProductID: 10, Quantity: 1}}}},
		{"bad email", ports.PlaceOrderInput{CustomerEmail: "not-an-email", StoreID: storeID, Lines: []ports.LineInput{{ProductID: 10, Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.PlaceOrder(context.Background(), tc.input)
			require.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

// flakyUnitOfWork fails the first N attempts with a reservation conflict before
// delegating to the real unit of work.
type flakyUnitOfWork struct {
	inner     ports.UnitOfWork
	conflicts int
}

func (f *flakyUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	if f.conflicts > 0 {
		f.conflicts--
		return &inventoryports.ReservationConflictError{ProductID: 10, Requested: 1, Available: 0}
	}
	return f.inner.Do(ctx, fn)
}

func TestPlaceOrder_RetriesConflictsThenSucceeds(t *testing.T) {
	f := newFixture(t)
	storeID := f.seedStore(t, "Downtown")
	f.seedProduct(t, 10, "SKU-10", 1.00)
	f.seedStock(t, 10, storeID, 5)

	uow := ordersmemory.NewUnitOfWork(f.customers, f.stores, f.catalog, f.inventory, f.orders)
	svc := NewService(&flakyUnitOfWork{inner: uow, conflicts: 2}, f.orders)

	confirmation, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		CustomerEmail: "shopper@example.com",
		StoreID:       storeID,
		Lines:         []ports.LineInput{{ProductID: 10, Quantity: 1}},
	})
	require.NoError(t, err)
	require.NotNil(t, confirmation)
}

func TestPlaceOrder_ConflictExhaustionSurfacesShortfall(t *testing.T) {
	f := newFixture(t)
	storeID := f.seedStore(t, "Downtown")

	uow := ordersmemory.NewUnitOfWork(f.customers, f.stores, f.catalog, f.inventory, f.orders)
	svc := NewService(&flakyUnitOfWork{inner: uow, conflicts: maxConflictRetries + 1}, f.orders)

	_, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderInput{
		CustomerEmail: "shopper@example.com",
		StoreID:       storeID,
		Lines:         []ports.LineInput{{ProductID: 10, Quantity: 1}},
	})

	var shortfall *inventoryports.InsufficientStockError
	require.ErrorAs(t, err, &shortfall)
	require.Equal(t, int64(10), shortfall.ProductID)
	require.Equal(t, int32(1), shortfall.Requested)
	require.Equal(t, int32(0), shortfall.Available)
}
