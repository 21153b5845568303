package ports

import (
	"context"

	"github.com/retailops/backoffice/internal/domains/customers/domain"
)

// Service exposes customer use cases to adapters.
type Service interface {
	ResolveByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}
