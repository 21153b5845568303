package ports

import (
	"context"

	"github.com/retailops/backoffice/internal/domains/stores/domain"
)

// Service exposes store directory use cases to adapters.
type Service interface {
	CreateStore(ctx context.Context, store *domain.Store) (*domain.Store, error)
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
}
