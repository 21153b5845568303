package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	catalogpostgres "github.com/retailops/backoffice/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/retailops/backoffice/internal/domains/catalog/domain"
	customerspostgres "github.com/retailops/backoffice/internal/domains/customers/adapters/persistence/postgres"
	customersdomain "github.com/retailops/backoffice/internal/domains/customers/domain"
	inventorypostgres "github.com/retailops/backoffice/internal/domains/inventory/adapters/persistence/postgres"
	"github.com/retailops/backoffice/internal/domains/orders/domain"
	"github.com/retailops/backoffice/internal/domains/orders/ports"
	storespostgres "github.com/retailops/backoffice/internal/domains/stores/adapters/persistence/postgres"
	storesdomain "github.com/retailops/backoffice/internal/domains/stores/domain"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork runs a placement attempt inside one database transaction. All
// repositories handed to the callback share the transaction handle, so a
// failed attempt rolls every write back, reservations included.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &txRepositories{tx: tx})
	})
}

// txRepositories adapts the per-context transaction helpers to the placement
// flow's contracts.
type txRepositories struct {
	tx *gorm.DB
}

func (t *txRepositories) Customers() ports.CustomerResolver  { return &txCustomers{tx: t.tx} }
func (t *txRepositories) Stores() ports.StoreLookup          { return &txStores{tx: t.tx} }
func (t *txRepositories) Catalog() ports.ProductCatalog      { return &txCatalog{tx: t.tx} }
func (t *txRepositories) Inventory() ports.InventoryReserver { return &txInventory{tx: t.tx} }
func (t *txRepositories) Orders() ports.OrderRecorder        { return &txOrders{tx: t.tx} }

type txCustomers struct {
	tx *gorm.DB
}

func (c *txCustomers) GetByEmail(ctx context.Context, email string) (*customersdomain.Customer, error) {
	return customerspostgres.GetByEmailInTx(ctx, c.tx, email)
}

func (c *txCustomers) Create(ctx context.Context, customer *customersdomain.Customer) (*customersdomain.Customer, error) {
	return customerspostgres.CreateInTx(ctx, c.tx, customer)
}

type txStores struct {
	tx *gorm.DB
}

func (s *txStores) GetByID(ctx context.Context, id int64) (*storesdomain.Store, error) {
	return storespostgres.GetByIDInTx(ctx, s.tx, id)
}

type txCatalog struct {
	tx *gorm.DB
}

func (c *txCatalog) GetByID(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	projection, err := catalogpostgres.GetByIDInTx(ctx, c.tx, id)
	if err != nil {
		return nil, err
	}
	return projection.Entity, nil
}

type txInventory struct {
	tx *gorm.DB
}

func (i *txInventory) Reserve(ctx context.Context, storeID, productID int64, quantity int32) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return inventorypostgres.ReserveInTx(ctx, i.tx, storeID, productID, quantity)
}

type txOrders struct {
	tx *gorm.DB
}

func (o *txOrders) Record(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	return recordOrder(ctx, o.tx, order)
}
