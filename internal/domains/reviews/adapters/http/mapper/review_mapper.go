package mapper

import (
	"time"

	"github.com/retailops/backoffice/internal/domains/reviews/domain"
	"github.com/retailops/backoffice/internal/domains/reviews/ports"
)

// CreateReviewRequest captures an inbound review submission.
type CreateReviewRequest struct {
	ProductID  int64  `json:"productId"`
	CustomerID int64  `json:"customerId"`
	Rating     int32  `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

// Review is the HTTP representation of a review, optionally labelled with the
// reviewer's display name.
type Review struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"productId"`
	CustomerID int64     `json:"customerId"`
	Rating     int32     `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	Reviewer   string    `json:"reviewer,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// ToCreateReviewInput converts the transport payload into the application command.
func ToCreateReviewInput(payload CreateReviewRequest) ports.CreateReviewInput {
	return ports.CreateReviewInput{
		ProductID:  payload.ProductID,
		CustomerID: payload.CustomerID,
		Rating:     payload.Rating,
		Comment:    payload.Comment,
	}
}

// FromDomainReview maps a domain review into the transport representation.
func FromDomainReview(review *domain.Review) Review {
	return Review{
		ID:         review.ID,
		ProductID:  review.ProductID,
		CustomerID: review.CustomerID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt,
	}
}

// FromReviewView maps a labelled review into the transport representation.
func FromReviewView(view *ports.ReviewView) Review {
	mapped := FromDomainReview(&view.Review)
	mapped.Reviewer = view.Reviewer
	return mapped
}

// FromReviewViewList maps a slice of labelled reviews.
func FromReviewViewList(list []*ports.ReviewView) []Review {
	result := make([]Review, 0, len(list))
	for _, view := range list {
		result = append(result, FromReviewView(view))
	}
	return result
}
