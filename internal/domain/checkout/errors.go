// internal/domain/checkout/errors.go
package checkout

import "errors"

var (
	// ErrEmptyBasket rejects checkout on a basket with no lines
	ErrEmptyBasket = errors.New("basket is empty")

	// ErrIncompleteDelivery rejects a manual delivery address with no text
	ErrIncompleteDelivery = errors.New("delivery address is incomplete")

	// ErrMissingPayment rejects checkout without a recognized payment method
	ErrMissingPayment = errors.New("payment method is missing or unknown")

	// ErrSubmissionFailed marks a rejected or failed order submission.
	// The basket is left intact so the customer can retry.
	ErrSubmissionFailed = errors.New("order submission failed")
)
