//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	pacttest "github.com/retailops/backoffice/test/pact"

	backofficeserver "github.com/retailops/backoffice/go"
	catalogmemory "github.com/retailops/backoffice/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/retailops/backoffice/internal/domains/catalog/application"
	catalogdomain "github.com/retailops/backoffice/internal/domains/catalog/domain"
	customersmemory "github.com/retailops/backoffice/internal/domains/customers/adapters/memory"
	customersapp "github.com/retailops/backoffice/internal/domains/customers/application"
	inventorymemory "github.com/retailops/backoffice/internal/domains/inventory/adapters/memory"
	inventoryapp "github.com/retailops/backoffice/internal/domains/inventory/application"
	inventorydomain "github.com/retailops/backoffice/internal/domains/inventory/domain"
	ordersmemory "github.com/retailops/backoffice/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/retailops/backoffice/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/retailops/backoffice/internal/domains/orders/application"
	reviewsmemory "github.com/retailops/backoffice/internal/domains/reviews/adapters/memory"
	reviewsapp "github.com/retailops/backoffice/internal/domains/reviews/application"
	storesmemory "github.com/retailops/backoffice/internal/domains/stores/adapters/memory"
	storesapp "github.com/retailops/backoffice/internal/domains/stores/application"
	storesdomain "github.com/retailops/backoffice/internal/domains/stores/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestBackofficeProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateStockAvailable: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t)
				app.seedStore(t)
				app.seedStock(t, 5)
			}
			return nil, nil
		},
		pacttest.StateStockDepleted: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t)
				app.seedStore(t)
				app.seedStock(t, 0)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp rebuilds the in-memory application on every state reset
// behind a stable server URL.
type contractProviderApp struct {
	mu        sync.RWMutex
	router    http.Handler
	catalog   *catalogmemory.Repository
	stores    *storesmemory.Repository
	inventory *inventorymemory.Repository
	server    *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		router := app.router
		app.mu.RUnlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()

	customersRepo := customersmemory.NewRepository()
	storesRepo := storesmemory.NewRepository()
	catalogRepo := catalogmemory.NewRepository()
	inventoryRepo := inventorymemory.NewRepository()
	ordersRepo := ordersmemory.NewRepository()
	uow := ordersmemory.NewUnitOfWork(customersRepo, storesRepo, catalogRepo, inventoryRepo, ordersRepo)
	orderService := ordersapp.NewService(uow, ordersRepo)

	handlers := backofficeserver.ApiHandleFunctions{
		OrdersAPI:    backofficeserver.NewOrdersAPI(orderService, ordersworkflows.NewInlineOrderWorkflows(orderService)),
		ProductsAPI:  backofficeserver.NewProductsAPI(catalogapp.NewService(catalogRepo, inventoryRepo)),
		StoresAPI:    backofficeserver.NewStoresAPI(storesapp.NewService(storesRepo), inventoryapp.NewService(inventoryRepo)),
		InventoryAPI: backofficeserver.NewInventoryAPI(inventoryapp.NewService(inventoryRepo)),
		CustomersAPI: backofficeserver.NewCustomersAPI(customersapp.NewService(customersRepo)),
		ReviewsAPI:   backofficeserver.NewReviewsAPI(reviewsapp.NewService(reviewsmemory.NewRepository(), customersRepo, productGuard{repo: catalogRepo})),
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router = backofficeserver.NewRouterWithGinEngine(router, handlers)

	a.mu.Lock()
	a.router = router
	a.catalog = catalogRepo
	a.stores = storesRepo
	a.inventory = inventoryRepo
	a.mu.Unlock()
}

func (a *contractProviderApp) seedProduct(t testing.TB) {
	t.Helper()
	product, err := catalogdomain.NewProduct(pacttest.ExistingProductID, "Pact Espresso Beans", "coffee", 12.50, "SKU-PACT-ESP")
	require.NoError(t, err)
	_, err = a.catalog.Save(context.Background(), product)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedStore(t testing.TB) {
	t.Helper()
	store, err := storesdomain.NewStore(pacttest.ExistingStoreID, "Pact Downtown", "1 Main St")
	require.NoError(t, err)
	_, err = a.stores.Save(context.Background(), store)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedStock(t testing.TB, quantity int32) {
	t.Helper()
	level, err := inventorydomain.NewStockLevel(pacttest.ExistingProductID, pacttest.ExistingStoreID, quantity)
	require.NoError(t, err)
	_, err = a.inventory.Create(context.Background(), level)
	require.NoError(t, err)
}

// productGuard adapts the catalog repository for the reviews service.
type productGuard struct {
	repo *catalogmemory.Repository
}

func (g productGuard) Exists(ctx context.Context, productID int64) error {
	_, err := g.repo.GetByID(ctx, productID)
	return err
}
