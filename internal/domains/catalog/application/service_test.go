package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/retailops/backoffice/internal/domains/catalog/adapters/memory"
	"github.com/retailops/backoffice/internal/domains/catalog/domain"
	"github.com/retailops/backoffice/internal/domains/catalog/ports"
	inventorymemory "github.com/retailops/backoffice/internal/domains/inventory/adapters/memory"
	inventorydomain "github.com/retailops/backoffice/internal/domains/inventory/domain"
	inventoryports "github.com/retailops/backoffice/internal/domains/inventory/ports"
)

func newCatalogFixture(t *testing.T) (*Service, *catalogmemory.Repository, *inventorymemory.Repository) {
	t.Helper()
	repo := catalogmemory.NewRepository()
	stock := inventorymemory.NewRepository()
	return NewService(repo, stock), repo, stock
}

func addProduct(t *testing.T, svc *Service, name, category string, price float64, sku string) *ports.ProductProjection {
	t.Helper()
	product, err := domain.NewProduct(0, name, category, price, sku)
	require.NoError(t, err)
	saved, err := svc.AddProduct(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func TestAddProduct_AssignsIDAndMetadata(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	saved := addProduct(t, svc, "Espresso Beans", "coffee", 12.50, "SKU-ESP")

	require.NotZero(t, saved.Entity.ID)
	require.False(t, saved.Metadata.CreatedAt.IsZero())
	require.False(t, saved.Metadata.UpdatedAt.IsZero())
}

func TestAddProduct_RejectsDuplicateSKU(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	addProduct(t, svc, "Espresso Beans", "coffee", 12.50, "SKU-ESP")

	dup, err := domain.NewProduct(0, "Other Beans", "coffee", 9.00, "SKU-ESP")
	require.NoError(t, err)
	_, err = svc.AddProduct(context.Background(), dup)
	require.ErrorIs(t, err, ports.ErrSKUConflict)
}

func TestUpdateProduct_RequiresExistingEntry(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)

	missing, err := domain.NewProduct(999, "Ghost", "misc", 1.00, "SKU-GHOST")
	require.NoError(t, err)
	_, err = svc.UpdateProduct(context.Background(), missing)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdateProduct_OverwritesFields(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	saved := addProduct(t, svc, "Espresso Beans", "coffee", 12.50, "SKU-ESP")

	updated := *saved.Entity
	require.NoError(t, updated.Reprice(14.00))
	require.NoError(t, updated.Rename("Espresso Beans Dark"))
	result, err := svc.UpdateProduct(context.Background(), &updated)
	require.NoError(t, err)
	require.Equal(t, "Espresso Beans Dark", result.Entity.Name)
	require.InDelta(t, 14.00, result.Entity.Price, 0.0001)
}

func TestSearch_FiltersByNameAndCategory(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	addProduct(t, svc, "Espresso Beans", "coffee", 12.50, "SKU-ESP")
	addProduct(t, svc, "Filter Beans", "coffee", 10.00, "SKU-FIL")
	addProduct(t, svc, "Green Tea", "tea", 6.00, "SKU-TEA")

	byName, err := svc.Search(context.Background(), ports.SearchInput{Name: "beans"})
	require.NoError(t, err)
	require.Len(t, byName, 2)

	byBoth, err := svc.Search(context.Background(), ports.SearchInput{Name: "espresso", Category: "coffee"})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
	require.Equal(t, "Espresso Beans", byBoth[0].Entity.Name)

	byCategory, err := svc.Search(context.Background(), ports.SearchInput{Category: "tea"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
}

func TestSearch_ScopesToStoreStock(t *testing.T) {
	svc, _, stock := newCatalogFixture(t)
	espresso := addProduct(t, svc, "Espresso Beans", "coffee", 12.50, "SKU-ESP")
	addProduct(t, svc, "Filter Beans", "coffee", 10.00, "SKU-FIL")

	level, err := inventorydomain.NewStockLevel(espresso.Entity.ID, 1, 5)
	require.NoError(t, err)
	_, err = stock.Create(context.Background(), level)
	require.NoError(t, err)

	stocked, err := svc.Search(context.Background(), ports.SearchInput{StoreID: 1})
	require.NoError(t, err)
	require.Len(t, stocked, 1)
	require.Equal(t, espresso.Entity.ID, stocked[0].Entity.ID)

	empty, err := svc.Search(context.Background(), ports.SearchInput{StoreID: 2})
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestDeleteProduct_RemovesStockRows(t *testing.T) {
	svc, _, stock := newCatalogFixture(t)
	espresso := addProduct(t, svc, "Espresso Beans", "coffee", 12.50, "SKU-ESP")

	level, err := inventorydomain.NewStockLevel(espresso.Entity.ID, 1, 5)
	require.NoError(t, err)
	_, err = stock.Create(context.Background(), level)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(context.Background(), espresso.Entity.ID))

	_, err = svc.GetByID(context.Background(), espresso.Entity.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
	_, err = stock.GetByProductAndStore(context.Background(), espresso.Entity.ID, 1)
	require.ErrorIs(t, err, inventoryports.ErrNotFound)
}

func TestDeleteProduct_MissingEntry(t *testing.T) {
	svc, _, _ := newCatalogFixture(t)
	require.ErrorIs(t, svc.DeleteProduct(context.Background(), 404), ports.ErrNotFound)
}
