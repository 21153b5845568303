package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	catalogports "github.com/retailops/backoffice/internal/domains/catalog/ports"
	customersmemory "github.com/retailops/backoffice/internal/domains/customers/adapters/memory"
	customersdomain "github.com/retailops/backoffice/internal/domains/customers/domain"
	reviewsmemory "github.com/retailops/backoffice/internal/domains/reviews/adapters/memory"
	"github.com/retailops/backoffice/internal/domains/reviews/domain"
	"github.com/retailops/backoffice/internal/domains/reviews/ports"
)

// knownProducts is a ProductGuard over a fixed id set.
type knownProducts map[int64]struct{}

func (k knownProducts) Exists(_ context.Context, productID int64) error {
	if _, ok := k[productID]; !ok {
		return catalogports.ErrNotFound
	}
	return nil
}

func newReviewFixture(t *testing.T) (*Service, *customersmemory.Repository) {
	t.Helper()
	customers := customersmemory.NewRepository()
	svc := NewService(reviewsmemory.NewRepository(), customers, knownProducts{10: {}})
	return svc, customers
}

func seedCustomer(t *testing.T, customers *customersmemory.Repository, email, name string) *customersdomain.Customer {
	t.Helper()
	customer, err := customersdomain.NewCustomer(0, email, name)
	require.NoError(t, err)
	created, err := customers.Create(context.Background(), customer)
	require.NoError(t, err)
	return created
}

func TestCreateReview_Success(t *testing.T) {
	svc, customers := newReviewFixture(t)
	reviewer := seedCustomer(t, customers, "shopper@example.com", "Sam")

	review, err := svc.CreateReview(context.Background(), ports.CreateReviewInput{
		ProductID:  10,
		CustomerID: reviewer.ID,
		Rating:     4,
		Comment:    "Solid grinder.",
	})

	require.NoError(t, err)
	require.NotZero(t, review.ID)
	require.Equal(t, int32(4), review.Rating)
	require.False(t, review.CreatedAt.IsZero())
}

func TestCreateReview_UnknownProduct(t *testing.T) {
	svc, customers := newReviewFixture(t)
	reviewer := seedCustomer(t, customers, "shopper@example.com", "Sam")

	_, err := svc.CreateReview(context.Background(), ports.CreateReviewInput{
		ProductID:  404,
		CustomerID: reviewer.ID,
		Rating:     4,
	})
	require.ErrorIs(t, err, catalogports.ErrNotFound)
}

func TestCreateReview_UnknownCustomer(t *testing.T) {
	svc, _ := newReviewFixture(t)

	_, err := svc.CreateReview(context.Background(), ports.CreateReviewInput{
		ProductID:  10,
		CustomerID: 404,
		Rating:     4,
	})
	require.Error(t, err)
}

func TestCreateReview_RatingBounds(t *testing.T) {
	svc, customers := newReviewFixture(t)
	reviewer := seedCustomer(t, customers, "shopper@example.com", "Sam")

	for _, rating := range []int32{0, 6, -1} {
		_, err := svc.CreateReview(context.Background(), ports.CreateReviewInput{
			ProductID:  10,
			CustomerID: reviewer.ID,
			Rating:     rating,
		})
		require.ErrorIs(t, err, domain.ErrInvalidRating)
	}
}

func TestListByProduct_LabelsReviewers(t *testing.T) {
	svc, customers := newReviewFixture(t)
	named := seedCustomer(t, customers, "sam@example.com", "Sam")
	anonymous := seedCustomer(t, customers, "ana@example.com", "")

	_, err := svc.CreateReview(context.Background(), ports.CreateReviewInput{ProductID: 10, CustomerID: named.ID, Rating: 5})
	require.NoError(t, err)
	_, err = svc.CreateReview(context.Background(), ports.CreateReviewInput{ProductID: 10, CustomerID: anonymous.ID, Rating: 3})
	require.NoError(t, err)

	views, err := svc.ListByProduct(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Equal(t, "Sam", views[0].Reviewer)
	// A customer without a name falls back to the email address.
	require.Equal(t, "ana@example.com", views[1].Reviewer)
}

func TestListByProduct_MissingCustomerDegradesToPlaceholder(t *testing.T) {
	svc, customers := newReviewFixture(t)
	reviewer := seedCustomer(t, customers, "gone@example.com", "Gone")

	_, err := svc.CreateReview(context.Background(), ports.CreateReviewInput{ProductID: 10, CustomerID: reviewer.ID, Rating: 2})
	require.NoError(t, err)
	require.NoError(t, customers.Delete(context.Background(), reviewer.ID))

	views, err := svc.ListByProduct(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, unknownReviewer, views[0].Reviewer)
}

func TestDeleteReview_Missing(t *testing.T) {
	svc, _ := newReviewFixture(t)
	require.ErrorIs(t, svc.DeleteReview(context.Background(), 404), ports.ErrNotFound)
}
