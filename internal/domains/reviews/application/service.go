package application

import (
	"context"

	"github.com/retailops/backoffice/internal/domains/reviews/domain"
	"github.com/retailops/backoffice/internal/domains/reviews/ports"
)

// unknownReviewer labels reviews whose customer record has since been removed.
const unknownReviewer = "Unknown"

var _ ports.Service = (*Service)(nil)

// Service orchestrates the reviews bounded context use cases.
type Service struct {
	repo      ports.Repository
	customers ports.CustomerDirectory
	products  ports.ProductGuard
}

func NewService(repo ports.Repository, customers ports.CustomerDirectory, products ports.ProductGuard) *Service {
	return &Service{repo: repo, customers: customers, products: products}
}

func (s *Service) CreateReview(ctx context.Context, input ports.CreateReviewInput) (*domain.Review, error) {
	review, err := domain.NewReview(input.ProductID, input.CustomerID, input.Rating, input.Comment)
	if err != nil {
		return nil, err
	}
	if s.products != nil {
		if err := s.products.Exists(ctx, input.ProductID); err != nil {
			return nil, err
		}
	}
	if s.customers != nil {
		if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
			return nil, err
		}
	}
	return s.repo.Create(ctx, review)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByProduct returns the product's reviews labelled with reviewer names. A
// missing customer record degrades to a placeholder instead of failing the
// listing.
func (s *Service) ListByProduct(ctx context.Context, productID int64) ([]*ports.ReviewView, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	views := make([]*ports.ReviewView, 0, len(reviews))
	names := map[int64]string{}
	for _, review := range reviews {
		name, ok := names[review.CustomerID]
		if !ok {
			name = s.reviewerName(ctx, review.CustomerID)
			names[review.CustomerID] = name
		}
		views = append(views, &ports.ReviewView{Review: *review, Reviewer: name})
	}
	return views, nil
}

func (s *Service) DeleteReview(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) reviewerName(ctx context.Context, customerID int64) string {
	if s.customers == nil {
		return unknownReviewer
	}
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return unknownReviewer
	}
	return customer.DisplayName()
}
