package ports

import (
	"context"

	"github.com/retailops/backoffice/internal/domains/catalog/domain"
)

// SearchInput carries the optional catalog filters exposed over HTTP.
type SearchInput struct {
	Name     string
	Category string
	StoreID  int64
}

// Service exposes catalog use cases to adapters.
type Service interface {
	AddProduct(ctx context.Context, product *domain.Product) (*ProductProjection, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*ProductProjection, error)
	GetByID(ctx context.Context, id int64) (*ProductProjection, error)
	List(ctx context.Context) ([]*ProductProjection, error)
	Search(ctx context.Context, input SearchInput) ([]*ProductProjection, error)
	DeleteProduct(ctx context.Context, id int64) error
}
