package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/retailops/backoffice/internal/domains/orders/domain"
	"github.com/retailops/backoffice/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository serves order reads from PostgreSQL. Writes go through the unit of
// work in this package.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &lineRecord{})
	}
	return repo
}

type orderRecord struct {
	ID         int64        `gorm:"primaryKey;column:id"`
	CustomerID int64        `gorm:"column:customer_id;not null;index"`
	StoreID    int64        `gorm:"column:store_id;not null;index"`
	Total      float64      `gorm:"column:total;not null"`
	CreatedAt  time.Time    `gorm:"column:created_at"`
	Lines      []lineRecord `gorm:"foreignKey:OrderID"`
}

func (orderRecord) TableName() string { return "orders" }

type lineRecord struct {
	ID        int64   `gorm:"primaryKey;column:id"`
	OrderID   int64   `gorm:"column:order_id;not null;index"`
	ProductID int64   `gorm:"column:product_id;not null"`
	Quantity  int32   `gorm:"column:quantity;not null"`
	UnitPrice float64 `gorm:"column:unit_price;not null"`
}

func (lineRecord) TableName() string { return "order_lines" }

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	err := r.db.WithContext(ctx).Preload("Lines").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ports.ErrNotFound)
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Order, error) {
	return r.list(ctx, "customer_id = ?", customerID)
}

func (r *Repository) ListByStore(ctx context.Context, storeID int64) ([]*domain.Order, error) {
	return r.list(ctx, "store_id = ?", storeID)
}

func (r *Repository) list(ctx context.Context, condition string, arg int64) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	err := r.db.WithContext(ctx).Preload("Lines").Where(condition, arg).Order("id").Find(&records).Error
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

// recordOrder persists the header and its lines on the given handle, which is
// a transaction opened by the unit of work.
func recordOrder(ctx context.Context, tx *gorm.DB, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := orderRecord{
		CustomerID: order.CustomerID,
		StoreID:    order.StoreID,
		Total:      order.Total,
		Lines:      make([]lineRecord, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		record.Lines = append(record.Lines, lineRecord{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		StoreID:    r.StoreID,
		Total:      r.Total,
		CreatedAt:  r.CreatedAt,
		Lines:      make([]domain.Line, 0, len(r.Lines)),
	}
	for _, line := range r.Lines {
		order.Lines = append(order.Lines, domain.Line{
			ID:        line.ID,
			OrderID:   line.OrderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return order
}
