// internal/domain/basket/errors.go
package basket

import "errors"

var (
	// ErrInvalidQuantity rejects non-positive quantities on Add and
	// negative quantities on SetQuantity. The basket is left untouched.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrLineNotFound is returned by SetQuantity for an item id with no
	// line in the basket.
	ErrLineNotFound = errors.New("item not found in basket")

	// ErrDuplicateLine is returned by Restore when a snapshot carries two
	// lines for the same item id.
	ErrDuplicateLine = errors.New("snapshot carries duplicate lines for an item")

	// ErrMixedCurrency is returned by Subtotal when the lines carry more
	// than one currency code. Callers that support mixed carts should use
	// SubtotalByCurrency instead.
	ErrMixedCurrency = errors.New("basket items carry mixed currencies")

	// ErrMixedStore rejects adds that would mix stores in a deployment
	// configured for single-store baskets.
	ErrMixedStore = errors.New("basket is limited to a single store")

	// ErrSessionRequired is returned when a guest operation is attempted
	// without a session id.
	ErrSessionRequired = errors.New("session id required for guest basket")
)
