package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersports "github.com/retailops/backoffice/internal/domains/orders/ports"
	orderactivities "github.com/retailops/backoffice/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the activity that runs the placement unit
// of work. Business rejections are marked non-retryable by the activity;
// everything else (storage faults, timeouts) retries with backoff.
func RunOrderPlacementSequence(ctx workflow.Context, input ordersports.PlaceOrderInput) (*ordersports.OrderConfirmation, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "storeId", input.StoreID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var confirmation ordersports.OrderConfirmation
	err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, input).Get(ctx, &confirmation)
	if err != nil {
		logger.Error("order placement sequence failed", "storeId", input.StoreID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "orderId", confirmation.OrderID)
	return &confirmation, nil
}
