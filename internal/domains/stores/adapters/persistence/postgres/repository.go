package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/retailops/backoffice/internal/domains/stores/domain"
	"github.com/retailops/backoffice/internal/domains/stores/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists stores in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&storeRecord{})
	}
	return repo
}

type storeRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (storeRecord) TableName() string { return "stores" }

func (r *Repository) Save(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}
	clone := *store
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := storeRecord{ID: clone.ID, Name: clone.Name, Address: clone.Address}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return getByID(ctx, r.db, id)
}

func (r *Repository) List(ctx context.Context) ([]*domain.Store, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []storeRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	stores := make([]*domain.Store, 0, len(records))
	for i := range records {
		stores = append(stores, records[i].toDomain())
	}
	return stores, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres store repository not configured")
	}
	return nil
}

func getByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Store, error) {
	var record storeRecord
	if err := db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByIDInTx runs the lookup on a transaction handle opened by the orders
// unit of work.
func GetByIDInTx(ctx context.Context, tx *gorm.DB, id int64) (*domain.Store, error) {
	return getByID(ctx, tx, id)
}

func (r storeRecord) toDomain() *domain.Store {
	return &domain.Store{ID: r.ID, Name: r.Name, Address: r.Address}
}
