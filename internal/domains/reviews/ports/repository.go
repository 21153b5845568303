package ports

import (
	"context"
	"errors"

	customersdomain "github.com/retailops/backoffice/internal/domains/customers/domain"
	"github.com/retailops/backoffice/internal/domains/reviews/domain"
)

var ErrNotFound = errors.New("review not found")

// Repository persists product reviews.
type Repository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]*domain.Review, error)
	Delete(ctx context.Context, id int64) error
}

// CustomerDirectory is the slice of the customers context the reviews listing
// needs to label reviewers.
type CustomerDirectory interface {
	GetByID(ctx context.Context, id int64) (*customersdomain.Customer, error)
}

// ProductGuard verifies the reviewed product exists.
type ProductGuard interface {
	Exists(ctx context.Context, productID int64) error
}
