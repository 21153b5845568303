package ports

import (
	"context"
	"errors"

	catalogdomain "github.com/retailops/backoffice/internal/domains/catalog/domain"
	customersports "github.com/retailops/backoffice/internal/domains/customers/ports"
	"github.com/retailops/backoffice/internal/domains/orders/domain"
	storesdomain "github.com/retailops/backoffice/internal/domains/stores/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrReferenceNotFound reports that a resource the placement depends on
	// (store, product, stock row) is missing. Produced when a rejection crosses
	// the workflow boundary and the original sentinel is no longer available.
	ErrReferenceNotFound = errors.New("referenced resource not found")
)

// CustomerResolver is the get-or-create slice of the customers context the
// placement flow runs inside its unit of work.
type CustomerResolver = customersports.Resolver

// StoreLookup verifies the target store exists.
type StoreLookup interface {
	GetByID(ctx context.Context, id int64) (*storesdomain.Store, error)
}

// ProductCatalog reads the catalog entry whose price is captured on the line.
type ProductCatalog interface {
	GetByID(ctx context.Context, id int64) (*catalogdomain.Product, error)
}

// InventoryReserver performs the atomic conditional decrement. It reports
// shortfalls as *inventory ports.InsufficientStockError and lost storage races
// as *inventory ports.ReservationConflictError.
type InventoryReserver interface {
	Reserve(ctx context.Context, storeID, productID int64, quantity int32) error
}

// OrderRecorder persists the order header together with its lines and assigns
// identifiers.
type OrderRecorder interface {
	Record(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// Repositories is the transaction-scoped view the placement flow composes.
// Every collaborator returned by one instance operates on the same unit of
// work.
type Repositories interface {
	Customers() CustomerResolver
	Stores() StoreLookup
	Catalog() ProductCatalog
	Inventory() InventoryReserver
	Orders() OrderRecorder
}

// UnitOfWork runs fn atomically: either every write performed through the
// provided repositories is kept, or none is.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Repository serves order reads outside the placement flow.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error)
	ListByStore(ctx context.Context, storeID int64) ([]*domain.Order, error)
}
