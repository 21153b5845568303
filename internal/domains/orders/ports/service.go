package ports

import (
	"context"
	"time"

	"github.com/retailops/backoffice/internal/domains/orders/domain"
)

// LineInput is one requested (product, quantity) pair.
type LineInput struct {
	ProductID int64
	Quantity  int32
}

// PlaceOrderInput carries everything needed to place an order. The customer is
// identified by email alone; the IdempotencyKey is optional and used to derive
// stable workflow identifiers when a durable orchestrator is configured.
type PlaceOrderInput struct {
	CustomerEmail  string
	StoreID        int64
	Lines          []LineInput
	IdempotencyKey string
}

// OrderConfirmation is the caller-facing result of a committed placement.
type OrderConfirmation struct {
	OrderID    int64
	CustomerID int64
	StoreID    int64
	Total      float64
	CreatedAt  time.Time
	Lines      []domain.Line
}

// Service exposes the orders use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderConfirmation, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
	ListByStore(ctx context.Context, storeID int64) ([]*domain.Order, error)
}

// WorkflowOrchestrator hands a placement request to a durable executor. The
// inline implementation falls back to running the service directly.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderConfirmation, error)
}
