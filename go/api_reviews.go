package backofficeserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reviewshttpmapper "github.com/retailops/backoffice/internal/domains/reviews/adapters/http/mapper"
	reviewsports "github.com/retailops/backoffice/internal/domains/reviews/ports"
)

// ReviewsAPI wires HTTP transport with the reviews bounded context service.
type ReviewsAPI struct {
	service reviewsports.Service
}

// NewReviewsAPI creates a ReviewsAPI backed by the provided service.
func NewReviewsAPI(service reviewsports.Service) ReviewsAPI {
	return ReviewsAPI{service: service}
}

// Post /v1/reviews
// Submit a product review.
func (api *ReviewsAPI) CreateReview(c *gin.Context) {
	var payload reviewshttpmapper.CreateReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	review, err := api.service.CreateReview(c.Request.Context(), reviewshttpmapper.ToCreateReviewInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reviewshttpmapper.FromDomainReview(review))
}

// Get /v1/reviews/:reviewId
// Find review by ID.
func (api *ReviewsAPI) GetReviewById(c *gin.Context) {
	id, ok := parseIDParam(c, "reviewId")
	if !ok {
		return
	}
	review, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviewshttpmapper.FromDomainReview(review))
}

// Get /v1/products/:productId/reviews
// List a product's reviews labelled with reviewer names.
func (api *ReviewsAPI) ListProductReviews(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	views, err := api.service.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviewshttpmapper.FromReviewViewList(views))
}

// Delete /v1/reviews/:reviewId
// Remove a review.
func (api *ReviewsAPI) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "reviewId")
	if !ok {
		return
	}
	if err := api.service.DeleteReview(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
