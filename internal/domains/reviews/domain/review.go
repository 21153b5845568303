package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidProduct  = errors.New("product id must be greater than zero")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrCommentTooLong  = errors.New("comment exceeds 2000 characters")
	ErrInvalidCustomer = errors.New("customer id must be greater than zero")
)

const maxCommentLength = 2000

// Review is one customer's verdict on a product.
type Review struct {
	ID         int64
	ProductID  int64
	CustomerID int64
	Rating     int32
	Comment    string
	CreatedAt  time.Time
}

// NewReview validates and builds a review.
func NewReview(productID, customerID int64, rating int32, comment string) (*Review, error) {
	review := &Review{
		ProductID:  productID,
		CustomerID: customerID,
	}
	if err := review.Rate(rating); err != nil {
		return nil, err
	}
	if err := review.SetComment(comment); err != nil {
		return nil, err
	}
	if err := review.Validate(); err != nil {
		return nil, err
	}
	return review, nil
}

func (r *Review) Rate(rating int32) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	r.Rating = rating
	return nil
}

func (r *Review) SetComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if len(comment) > maxCommentLength {
		return ErrCommentTooLong
	}
	r.Comment = comment
	return nil
}

// Validate enforces the aggregate invariants.
func (r *Review) Validate() error {
	if r.ProductID <= 0 {
		return ErrInvalidProduct
	}
	if r.CustomerID <= 0 {
		return ErrInvalidCustomer
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if len(r.Comment) > maxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}
