package ports

import (
	"context"
	"errors"

	"github.com/retailops/backoffice/internal/domains/catalog/domain"
	"github.com/retailops/backoffice/internal/shared/projection"
)

var (
	ErrNotFound    = errors.New("product not found")
	ErrSKUConflict = errors.New("product sku already in use")
)

// ProductProjection is a catalog entry plus its persistence metadata.
type ProductProjection = projection.Projection[*domain.Product]

// Filter narrows catalog listings. Zero values mean "no constraint"; IDs, when
// non-nil, restricts results to that product set.
type Filter struct {
	Name     string
	Category string
	IDs      []int64
}

// Repository persists catalog entries with a uniqueness constraint on SKU.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*ProductProjection, error)
	GetByID(ctx context.Context, id int64) (*ProductProjection, error)
	List(ctx context.Context) ([]*ProductProjection, error)
	Search(ctx context.Context, filter Filter) ([]*ProductProjection, error)
	Delete(ctx context.Context, id int64) error
}

// StockIndex is the slice of the inventory context the catalog needs: scoping
// searches to a store and clearing stock rows before a product is removed.
type StockIndex interface {
	ProductIDsByStore(ctx context.Context, storeID int64) ([]int64, error)
	DeleteByProduct(ctx context.Context, productID int64) error
}
