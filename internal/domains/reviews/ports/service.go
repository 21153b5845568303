package ports

import (
	"context"

	"github.com/retailops/backoffice/internal/domains/reviews/domain"
)

// CreateReviewInput carries a new review submission.
type CreateReviewInput struct {
	ProductID  int64
	CustomerID int64
	Rating     int32
	Comment    string
}

// ReviewView is a review decorated with the reviewer's display name.
type ReviewView struct {
	Review   domain.Review
	Reviewer string
}

// Service exposes the reviews use cases to adapters.
type Service interface {
	CreateReview(ctx context.Context, input CreateReviewInput) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]*ReviewView, error)
	DeleteReview(ctx context.Context, id int64) error
}
