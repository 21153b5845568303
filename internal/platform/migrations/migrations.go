package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&customerRecord{},
		&storeRecord{},
		&productRecord{},
		&stockRecord{},
		&orderRecord{},
		&lineRecord{},
		&reviewRecord{},
	)
}

// Customer schema mirrors the customers Postgres adapter.
type customerRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Name      string    `gorm:"column:name"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Store schema mirrors the stores Postgres adapter.
type storeRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (storeRecord) TableName() string { return "stores" }

// Product schema mirrors the catalog Postgres adapter.
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

// Stock schema mirrors the inventory Postgres adapter. The check constraint is
// the last line of defense for the non-negative quantity invariant.
type stockRecord struct {
	ProductID int64     `gorm:"primaryKey;column:product_id;autoIncrement:false"`
	StoreID   int64     `gorm:"primaryKey;column:store_id;autoIncrement:false"`
	Quantity  int32     `gorm:"column:quantity;not null;check:quantity >= 0"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (stockRecord) TableName() string { return "inventory" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	CustomerID int64     `gorm:"column:customer_id;not null;index"`
	StoreID    int64     `gorm:"column:store_id;not null;index"`
	Total      float64   `gorm:"column:total;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
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

// Review schema mirrors the reviews Postgres adapter.
type reviewRecord struct {
	ID         int64     `gorm:"primaryKey;column:id"`
	ProductID  int64     `gorm:"column:product_id;not null;index"`
	CustomerID int64     `gorm:"column:customer_id;not null;index"`
	Rating     int32     `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5"`
	Comment    string    `gorm:"column:comment;type:text"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (reviewRecord) TableName() string { return "reviews" }
