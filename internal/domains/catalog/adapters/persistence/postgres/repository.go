package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailops/backoffice/internal/domains/catalog/domain"
	"github.com/retailops/backoffice/internal/domains/catalog/ports"
	"github.com/retailops/backoffice/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog entries in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

type productRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;not null"`
	Category  string    `gorm:"column:category;not null;index"`
	Price     float64   `gorm:"column:price;not null"`
	SKU       string    `gorm:"column:sku;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

func (r *Repository) Save(ctx context.Context, product *domain.Product) (*ports.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "category", "price", "sku", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ports.ErrSKUConflict
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*ports.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return getByID(ctx, r.db, id)
}

func (r *Repository) List(ctx context.Context) ([]*ports.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjections(records), nil
}

func (r *Repository) Search(ctx context.Context, filter ports.Filter) ([]*ports.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}
	var records []productRecord
	if err := query.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjections(records), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ports.ErrNotFound)
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func getByID(ctx context.Context, db *gorm.DB, id int64) (*ports.ProductProjection, error) {
	var record productRecord
	if err := db.WithContext(ctx).First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ports.ErrNotFound)
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// GetByIDInTx reads a catalog entry on an open transaction, giving the orders
// unit of work a consistent price snapshot.
func GetByIDInTx(ctx context.Context, tx *gorm.DB, id int64) (*ports.ProductProjection, error) {
	return getByID(ctx, tx, id)
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:       product.ID,
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
		SKU:      product.SKU,
	}
}

func (r productRecord) toProjection() *ports.ProductProjection {
	return &ports.ProductProjection{
		Entity: &domain.Product{
			ID:       r.ID,
			Name:     r.Name,
			Category: r.Category,
			Price:    r.Price,
			SKU:      r.SKU,
		},
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}

func toProjections(records []productRecord) []*ports.ProductProjection {
	list := make([]*ports.ProductProjection, 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
