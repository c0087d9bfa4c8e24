// internal/domain/basket/entity.go
package basket

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/your-org/marketplace-backend/internal/domain/catalog"
)

// LineItem pairs a catalog item with the quantity selected. A line never
// exists with quantity below 1; dropping to 0 removes it from the basket.
type LineItem struct {
	Item     catalog.ItemRef `json:"item"`
	Quantity int             `json:"quantity"`
	AddedAt  time.Time       `json:"added_at"`
}

// Total returns unit price times quantity for this line
func (l LineItem) Total() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Basket is an ordered sequence of line items, unique per catalog item
// id. All mutation goes through its methods so the quantity and subtotal
// invariants cannot be bypassed. The zero value is an empty basket.
type Basket struct {
	lines []LineItem
}

// Restore rebuilds a basket from previously snapshotted lines. Lines
// with a non-positive quantity or duplicate item ids are rejected so a
// corrupted snapshot cannot smuggle an invalid state past Add.
func Restore(lines []LineItem) (*Basket, error) {
	b := &Basket{}
	seen := make(map[uint]bool, len(lines))

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if seen[line.Item.ID] {
			return nil, ErrDuplicateLine
		}
		seen[line.Item.ID] = true
		b.lines = append(b.lines, line)
	}

	return b, nil
}

// Add increments the existing line for the item or appends a new one.
// qty must be a positive integer.
func (b *Basket) Add(item catalog.ItemRef, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	for i := range b.lines {
		if b.lines[i].Item.ID == item.ID {
			b.lines[i].Quantity += qty
			return nil
		}
	}

	b.lines = append(b.lines, LineItem{
		Item:     item,
		Quantity: qty,
		AddedAt:  time.Now().UTC(),
	})
	return nil
}

// Remove decrements the line for itemID by one, deleting the line when
// the quantity reaches zero. Removing an absent item is a no-op.
func (b *Basket) Remove(itemID uint) {
	for i := range b.lines {
		if b.lines[i].Item.ID != itemID {
			continue
		}

		b.lines[i].Quantity--
		if b.lines[i].Quantity < 1 {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
		}
		return
	}
}

// SetQuantity sets an existing line's quantity directly. Zero removes
// the line; negative values are rejected.
func (b *Basket) SetQuantity(itemID uint, qty int) error {
	if qty < 0 {
		return ErrInvalidQuantity
	}

	for i := range b.lines {
		if b.lines[i].Item.ID != itemID {
			continue
		}

		if qty == 0 {
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
		} else {
			b.lines[i].Quantity = qty
		}
		return nil
	}

	return ErrLineNotFound
}

// Clear empties the basket unconditionally
func (b *Basket) Clear() {
	b.lines = nil
}

// Quantity returns the current quantity for an item id, or 0 if absent
func (b *Basket) Quantity(itemID uint) int {
	for _, line := range b.lines {
		if line.Item.ID == itemID {
			return line.Quantity
		}
	}
	return 0
}

// IsEmpty reports whether the basket holds no lines
func (b *Basket) IsEmpty() bool {
	return len(b.lines) == 0
}

// Len returns the number of distinct lines
func (b *Basket) Len() int {
	return len(b.lines)
}

// TotalQuantity returns the sum of all line quantities
func (b *Basket) TotalQuantity() int {
	total := 0
	for _, line := range b.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal recomputes the basket subtotal from the current lines. It
// returns ErrMixedCurrency when the lines carry more than one currency
// code; an empty basket has a zero subtotal.
func (b *Basket) Subtotal() (decimal.Decimal, error) {
	subtotal := decimal.Zero
	currency := ""

	for _, line := range b.lines {
		if currency == "" {
			currency = line.Item.Currency
		} else if line.Item.Currency != currency {
			return decimal.Zero, ErrMixedCurrency
		}
		subtotal = subtotal.Add(line.Total())
	}

	return subtotal, nil
}

// SubtotalByCurrency returns the per-currency subtotal breakdown for
// callers that permit mixed-currency baskets.
func (b *Basket) SubtotalByCurrency() map[string]decimal.Decimal {
	breakdown := make(map[string]decimal.Decimal)
	for _, line := range b.lines {
		breakdown[line.Item.Currency] = breakdown[line.Item.Currency].Add(line.Total())
	}
	return breakdown
}

// Currency returns the single currency code shared by all lines, or ""
// for an empty or mixed-currency basket.
func (b *Basket) Currency() string {
	currency := ""
	for _, line := range b.lines {
		if currency == "" {
			currency = line.Item.Currency
		} else if line.Item.Currency != currency {
			return ""
		}
	}
	return currency
}

// StoreIDs returns the distinct store ids referenced by the lines, in
// first-seen order. Single-store policy enforcement belongs to callers.
func (b *Basket) StoreIDs() []uint {
	var ids []uint
	seen := make(map[uint]bool)
	for _, line := range b.lines {
		if !seen[line.Item.StoreID] {
			seen[line.Item.StoreID] = true
			ids = append(ids, line.Item.StoreID)
		}
	}
	return ids
}

// Lines returns a copy of the line items in insertion order. Mutating
// the returned slice does not affect the basket.
func (b *Basket) Lines() []LineItem {
	lines := make([]LineItem, len(b.lines))
	copy(lines, b.lines)
	return lines
}

// BasketItem represents a basket line stored in the database for
// authenticated customers
type BasketItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	ItemID    uint            `gorm:"not null;index" json:"item_id"`
	StoreID   uint            `gorm:"not null;index" json:"store_id"`
	Name      string          `gorm:"not null;size:255" json:"name"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"` // Price at time of adding
	Currency  string          `gorm:"size:3;not null" json:"currency"`
	Category  string          `gorm:"size:100" json:"category"`
	Image     string          `gorm:"size:500" json:"image"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (BasketItem) TableName() string {
	return "basket_items"
}

// SessionBasket represents a guest basket snapshot stored in Redis
type SessionBasket struct {
	SessionID string     `json:"session_id"`
	Lines     []LineItem `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Totals represents calculated basket totals
type Totals struct {
	LineCount     int                        `json:"line_count"`     // Number of distinct lines
	TotalQuantity int                        `json:"total_quantity"` // Sum of all quantities
	Subtotal      decimal.Decimal            `json:"subtotal"`       // Zero when currencies are mixed
	Currency      string                     `json:"currency,omitempty"`
	Mixed         bool                       `json:"mixed_currencies,omitempty"`
	PerCurrency   map[string]decimal.Decimal `json:"per_currency,omitempty"`
}
