package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/retailops/backoffice/internal/domains/inventory/domain"
	"github.com/retailops/backoffice/internal/domains/inventory/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists stock levels in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&stockRecord{})
	}
	return repo
}

type stockRecord struct {
	ProductID int64     `gorm:"primaryKey;column:product_id;autoIncrement:false"`
	StoreID   int64     `gorm:"primaryKey;column:store_id;autoIncrement:false"`
	Quantity  int32     `gorm:"column:quantity;not null;check:quantity >= 0"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (stockRecord) TableName() string { return "inventory" }

func (r *Repository) Create(ctx context.Context, level *domain.StockLevel) (*domain.StockLevel, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := level.Validate(); err != nil {
		return nil, err
	}
	record := stockRecord{ProductID: level.ProductID, StoreID: level.StoreID, Quantity: level.Quantity}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ports.ErrAlreadyExists
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) UpdateQuantity(ctx context.Context, productID, storeID int64, quantity int32) (*domain.StockLevel, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, domain.ErrNegativeQuantity
	}
	result := r.db.WithContext(ctx).Model(&stockRecord{}).
		Where("product_id = ? AND store_id = ?", productID, storeID).
		Update("quantity", quantity)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("product %d at store %d: %w", productID, storeID, ports.ErrNotFound)
	}
	return &domain.StockLevel{ProductID: productID, StoreID: storeID, Quantity: quantity}, nil
}

func (r *Repository) GetByProductAndStore(ctx context.Context, productID, storeID int64) (*domain.StockLevel, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record stockRecord
	err := r.db.WithContext(ctx).First(&record, "product_id = ? AND store_id = ?", productID, storeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d at store %d: %w", productID, storeID, ports.ErrNotFound)
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByStore(ctx context.Context, storeID int64) ([]*domain.StockLevel, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []stockRecord
	if err := r.db.WithContext(ctx).Find(&records, "store_id = ?", storeID).Error; err != nil {
		return nil, err
	}
	levels := make([]*domain.StockLevel, 0, len(records))
	for i := range records {
		levels = append(levels, records[i].toDomain())
	}
	return levels, nil
}

func (r *Repository) ProductIDsByStore(ctx context.Context, storeID int64) ([]int64, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var ids []int64
	err := r.db.WithContext(ctx).Model(&stockRecord{}).
		Where("store_id = ?", storeID).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) DeleteByProduct(ctx context.Context, productID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&stockRecord{}).Error
}

// Reserve issues a single conditional UPDATE so the check and the decrement are
// evaluated atomically by the database. Zero rows affected means either the row
// is missing or the remaining quantity no longer covers the request.
func (r *Repository) Reserve(ctx context.Context, storeID, productID int64, quantity int32) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if quantity <= 0 {
		return domain.ErrNegativeQuantity
	}
	return reserveStock(ctx, r.db, storeID, productID, quantity)
}

func (r *Repository) Restock(ctx context.Context, storeID, productID int64, quantity int32) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Exec("UPDATE inventory SET quantity = quantity + ?, updated_at = NOW() WHERE product_id = ? AND store_id = ?", quantity, productID, storeID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d at store %d: %w", productID, storeID, ports.ErrNotFound)
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres inventory repository not configured")
	}
	return nil
}

func (r stockRecord) toDomain() *domain.StockLevel {
	return &domain.StockLevel{ProductID: r.ProductID, StoreID: r.StoreID, Quantity: r.Quantity}
}

// reserveStock runs the conditional decrement on the given handle, which may be
// a transaction opened by the orders unit of work.
func reserveStock(ctx context.Context, db *gorm.DB, storeID, productID int64, quantity int32) error {
	result := db.WithContext(ctx).
		Exec("UPDATE inventory SET quantity = quantity - ?, updated_at = NOW() WHERE product_id = ? AND store_id = ? AND quantity >= ?",
			quantity, productID, storeID, quantity)
	if result.Error != nil {
		if isRetryableConflict(result.Error) {
			return &ports.ReservationConflictError{ProductID: productID, Requested: quantity}
		}
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var record stockRecord
	err := db.WithContext(ctx).First(&record, "product_id = ? AND store_id = ?", productID, storeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d at store %d: %w", productID, storeID, ports.ErrNotFound)
		}
		return err
	}
	return &ports.InsufficientStockError{ProductID: productID, Requested: quantity, Available: record.Quantity}
}

// ReserveInTx exposes the conditional decrement for transaction-scoped callers.
func ReserveInTx(ctx context.Context, tx *gorm.DB, storeID, productID int64, quantity int32) error {
	return reserveStock(ctx, tx, storeID, productID, quantity)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Serialization failures and deadlocks are safe to retry once the enclosing
// transaction has rolled back.
func isRetryableConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}
