// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is the local record of a checkout payload the order-submission
// collaborator confirmed. It exists for store dashboards and receipts;
// order fulfillment lives with the collaborator.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID      *uint  `gorm:"index" json:"user_id,omitempty"` // Nullable for guest orders
	StoreID     uint   `gorm:"index" json:"store_id"`          // Zero when lines span stores

	Subtotal decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	Currency string          `gorm:"size:3;not null" json:"currency"`

	DeliveryMethod  string `gorm:"size:50;not null" json:"delivery_method"`
	DeliveryAddress string `gorm:"size:500" json:"delivery_address,omitempty"`
	PaymentMethod   string `gorm:"size:50;not null" json:"payment_method"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is one line of a recorded order, snapshotted at submit time
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ItemID    uint            `gorm:"not null;index" json:"item_id"`
	StoreID   uint            `gorm:"not null;index" json:"store_id"`
	Name      string          `gorm:"not null;size:255" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	Currency  string          `gorm:"size:3;not null" json:"currency"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// TableName overrides the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// StoreSummary aggregates a store's recorded orders for its dashboard
type StoreSummary struct {
	StoreID       uint            `json:"store_id"`
	OrderCount    int64           `json:"order_count"`
	TotalQuantity int             `json:"total_quantity"`
	Revenue       decimal.Decimal `json:"revenue"`
	Currency      string          `json:"currency,omitempty"`
}
