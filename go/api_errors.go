package backofficeserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogdomain "github.com/retailops/backoffice/internal/domains/catalog/domain"
	catalogports "github.com/retailops/backoffice/internal/domains/catalog/ports"
	customersdomain "github.com/retailops/backoffice/internal/domains/customers/domain"
	customersports "github.com/retailops/backoffice/internal/domains/customers/ports"
	inventorydomain "github.com/retailops/backoffice/internal/domains/inventory/domain"
	inventoryports "github.com/retailops/backoffice/internal/domains/inventory/ports"
	ordersapp "github.com/retailops/backoffice/internal/domains/orders/application"
	ordersports "github.com/retailops/backoffice/internal/domains/orders/ports"
	reviewsdomain "github.com/retailops/backoffice/internal/domains/reviews/domain"
	reviewsports "github.com/retailops/backoffice/internal/domains/reviews/ports"
	storesdomain "github.com/retailops/backoffice/internal/domains/stores/domain"
	storesports "github.com/retailops/backoffice/internal/domains/stores/ports"
	apierrors "github.com/retailops/backoffice/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError preserves the handler call sites while returning RFC 7807 responses.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

func badRequestProblem(detail string) apierrors.ProblemDetail {
	return apierrors.ErrBadRequest.WithDetail(detail)
}

// respondServiceError translates the typed errors of the bounded contexts into
// problem responses. Unknown errors are treated as storage faults.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var shortfall *inventoryports.InsufficientStockError
	if errors.As(err, &shortfall) {
		respondProblem(c, apierrors.NewInsufficientStockProblem(shortfall.ProductID, shortfall.Requested, shortfall.Available))
		return
	}
	switch {
	case isNotFound(err):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()))
	case isConflict(err):
		respondProblem(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case isValidation(err):
		respondProblem(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		respondProblem(c, apierrors.ErrInternal.WithDetail(err.Error()))
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ordersports.ErrNotFound) ||
		errors.Is(err, ordersports.ErrReferenceNotFound) ||
		errors.Is(err, catalogports.ErrNotFound) ||
		errors.Is(err, storesports.ErrNotFound) ||
		errors.Is(err, customersports.ErrNotFound) ||
		errors.Is(err, inventoryports.ErrNotFound) ||
		errors.Is(err, reviewsports.ErrNotFound)
}

func isConflict(err error) bool {
	return errors.Is(err, catalogports.ErrSKUConflict) ||
		errors.Is(err, customersports.ErrEmailTaken) ||
		errors.Is(err, inventoryports.ErrAlreadyExists)
}

func isValidation(err error) bool {
	if errors.Is(err, ordersapp.ErrInvalidRequest) {
		return true
	}
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

var validationSentinels = []error{
	storesdomain.ErrEmptyName,
	storesdomain.ErrEmptyAddress,
	customersdomain.ErrEmptyEmail,
	customersdomain.ErrInvalidEmail,
	catalogdomain.ErrEmptyName,
	catalogdomain.ErrEmptyCategory,
	catalogdomain.ErrEmptySKU,
	catalogdomain.ErrInvalidPrice,
	inventorydomain.ErrInvalidProduct,
	inventorydomain.ErrInvalidStore,
	inventorydomain.ErrNegativeQuantity,
	reviewsdomain.ErrInvalidProduct,
	reviewsdomain.ErrInvalidCustomer,
	reviewsdomain.ErrInvalidRating,
	reviewsdomain.ErrCommentTooLong,
}
