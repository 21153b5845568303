package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	catalogports "github.com/retailops/backoffice/internal/domains/catalog/ports"
	customersports "github.com/retailops/backoffice/internal/domains/customers/ports"
	inventoryports "github.com/retailops/backoffice/internal/domains/inventory/ports"
	ordersapplication "github.com/retailops/backoffice/internal/domains/orders/application"
	ordersports "github.com/retailops/backoffice/internal/domains/orders/ports"
	storesports "github.com/retailops/backoffice/internal/domains/stores/ports"
)

const (
	// PlaceOrderActivityName runs the placement unit of work.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"

	// Application error types used to carry business rejections across the
	// workflow boundary without triggering activity retries.
	InvalidOrderErrorType      = "InvalidOrder"
	NotFoundErrorType          = "NotFound"
	InsufficientStockErrorType = "InsufficientStock"
)

// InsufficientStockDetails travels with the non-retryable application error so
// callers can reconstruct the typed rejection.
type InsufficientStockDetails struct {
	ProductID int64
	Requested int32
	Available int32
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder runs one placement and translates business rejections into
// non-retryable application errors. Retrying them durably would never change
// the outcome; only infrastructure failures are left retryable.
func (a *Activities) PlaceOrder(ctx context.Context, input ordersports.PlaceOrderInput) (*ordersports.OrderConfirmation, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order placement activity not initialized", "storeId", input.StoreID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "storeId", input.StoreID)
	confirmation, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "storeId", input.StoreID, "error", err)
		return nil, classifyError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", confirmation.OrderID)
	return confirmation, nil
}

func classifyError(err error) error {
	var shortfall *inventoryports.InsufficientStockError
	if errors.As(err, &shortfall) {
		return temporal.NewNonRetryableApplicationError(
			shortfall.Error(),
			InsufficientStockErrorType,
			err,
			InsufficientStockDetails{
				ProductID: shortfall.ProductID,
				Requested: shortfall.Requested,
				Available: shortfall.Available,
			},
		)
	}
	if errors.Is(err, ordersapplication.ErrInvalidRequest) {
		return temporal.NewNonRetryableApplicationError(err.Error(), InvalidOrderErrorType, err)
	}
	if isNotFound(err) {
		return temporal.NewNonRetryableApplicationError(err.Error(), NotFoundErrorType, err)
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, storesports.ErrNotFound) ||
		errors.Is(err, catalogports.ErrNotFound) ||
		errors.Is(err, inventoryports.ErrNotFound) ||
		errors.Is(err, customersports.ErrNotFound) ||
		errors.Is(err, ordersports.ErrNotFound)
}
