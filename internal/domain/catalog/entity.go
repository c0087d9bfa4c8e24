// internal/domain/catalog/entity.go
package catalog

import (
	"github.com/shopspring/decimal"
)

// ItemRef is a validated, read-only reference to a purchasable catalog
// item. Instances are produced by the parse step at the fetch boundary
// and are never mutated afterwards; the basket holds them by value next
// to its own quantity counter.
type ItemRef struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`    // Unit price, non-negative
	Currency string          `json:"currency"` // ISO 4217 code at fetch time
	StoreID  uint            `json:"store_id"`
	Category string          `json:"category,omitempty"`
	Image    string          `json:"image,omitempty"`
}
