// internal/domain/checkout/entity.go
package checkout

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryMethod distinguishes the two delivery selections
type DeliveryMethod string

const (
	DeliveryCurrentLocation DeliveryMethod = "current_location"
	DeliveryManualAddress   DeliveryMethod = "manual_address"
)

// DeliverySelection is the customer's delivery choice. A manual address
// must carry non-empty text before checkout proceeds.
type DeliverySelection struct {
	Method  DeliveryMethod `json:"method"`
	Address string         `json:"address,omitempty"`
}

// Validate checks the selection is complete enough to check out with
func (d DeliverySelection) Validate() error {
	switch d.Method {
	case DeliveryCurrentLocation:
		return nil
	case DeliveryManualAddress:
		if strings.TrimSpace(d.Address) == "" {
			return ErrIncompleteDelivery
		}
		return nil
	default:
		return ErrIncompleteDelivery
	}
}

// PaymentMethod identifies one of the fixed payment selections
type PaymentMethod string

const (
	PaymentOnDelivery     PaymentMethod = "pay_on_delivery"
	PaymentOnDeliveryCard PaymentMethod = "pay_on_delivery_card_terminal"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentPayPal         PaymentMethod = "paypal"
)

// IsValid reports whether the method is one of the supported selections
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentOnDelivery, PaymentOnDeliveryCard, PaymentBankTransfer, PaymentPayPal:
		return true
	}
	return false
}

// BankDetails is display-only metadata for bank transfer payments
type BankDetails struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban,omitempty"`
}

// PaymentOption describes a payment method for display. The metadata
// carries no behavioral branching beyond selection.
type PaymentOption struct {
	ID          PaymentMethod `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	BankDetails *BankDetails  `json:"bank_details,omitempty"`
	QRPayload   string        `json:"qr_payload,omitempty"`
}

// PayloadLine is a by-value snapshot of one basket line at submit time
type PayloadLine struct {
	ItemID    uint            `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Currency  string          `json:"currency"`
	StoreID   uint            `json:"store_id"`
}

// Payload is the order-submission artifact built at checkout time.
// Lines are copied by value so later basket mutation cannot alter a
// payload already handed off.
type Payload struct {
	Reference string            `json:"reference"`
	Lines     []PayloadLine     `json:"lines"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	Currency  string            `json:"currency"`
	Delivery  DeliverySelection `json:"delivery"`
	Payment   PaymentMethod     `json:"payment_method"`
	CreatedAt time.Time         `json:"created_at"`
}
