package ports

import (
	"context"
	"errors"

	"github.com/retailops/backoffice/internal/domains/stores/domain"
)

var ErrNotFound = errors.New("store not found")

// Repository persists retail locations.
type Repository interface {
	Save(ctx context.Context, store *domain.Store) (*domain.Store, error)
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
}
