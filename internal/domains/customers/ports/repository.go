package ports

import (
	"context"
	"errors"

	"github.com/retailops/backoffice/internal/domains/customers/domain"
)

var (
	ErrNotFound = errors.New("customer not found")
	// ErrEmailTaken reports a create that lost the race against another writer
	// inserting the same email. Callers treat it as "re-fetch existing".
	ErrEmailTaken = errors.New("customer email already registered")
)

// Resolver is the slice of the repository the get-or-create flow needs. The
// order placement unit of work depends on this subset only.
type Resolver interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// Repository persists customers with a uniqueness constraint on email.
type Repository interface {
	Resolver
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}
