// internal/domain/checkout/service.go
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/basket"
)

// Recorder persists a successfully submitted payload. Implemented by
// the order domain so checkout does not depend on its storage.
type Recorder interface {
	RecordSubmission(ctx context.Context, payload *Payload, userID *uint) error
}

// BasketStore is the slice of the basket service checkout needs:
// materializing the customer's current basket and clearing it after a
// confirmed submission.
type BasketStore interface {
	Load(ctx context.Context, userID *uint, sessionID string) (*basket.Basket, error)
	Clear(ctx context.Context, userID *uint, sessionID string) error
}

// Service coordinates checkout: it validates the basket and selections,
// builds the submission payload, hands it to the order-submission
// collaborator, and clears the basket only on confirmed success.
type Service struct {
	basketService BasketStore
	config        *config.Config
	recorder      Recorder
	httpClient    *http.Client
	logger        *logrus.Logger
}

// NewService creates a new checkout service
func NewService(basketService BasketStore, cfg *config.Config, recorder Recorder, logger *logrus.Logger) *Service {
	return &Service{
		basketService: basketService,
		config:        cfg,
		recorder:      recorder,
		httpClient:    &http.Client{Timeout: cfg.Collaborators.RequestTimeout},
		logger:        logger,
	}
}

// SubmitRequest represents a checkout submission request
type SubmitRequest struct {
	Delivery DeliverySelection `json:"delivery" binding:"required"`
	Payment  PaymentMethod     `json:"payment_method" binding:"required"`
}

// Result represents a confirmed checkout
type Result struct {
	Reference   string   `json:"reference"`
	Payload     *Payload `json:"payload"`
	SubmittedAt string   `json:"submitted_at"`
}

// PaymentOptions returns the fixed set of payment methods with their
// display metadata
func (s *Service) PaymentOptions() []PaymentOption {
	return []PaymentOption{
		{
			ID:          PaymentOnDelivery,
			Name:        "Pay on Delivery",
			Description: "Pay cash when your order arrives",
		},
		{
			ID:          PaymentOnDeliveryCard,
			Name:        "Card on Delivery",
			Description: "Pay with the courier's card terminal on arrival",
		},
		{
			ID:          PaymentBankTransfer,
			Name:        "Bank Transfer",
			Description: "Transfer the total before delivery",
			BankDetails: &BankDetails{
				BankName:      "Banco de Fomento Angola",
				AccountName:   s.config.App.CompanyName,
				AccountNumber: "0001-0000-1234-5678",
				IBAN:          "AO06 0001 0000 1234 5678 1011 2",
			},
		},
		{
			ID:          PaymentPayPal,
			Name:        "PayPal",
			Description: "Pay online with your PayPal account",
			QRPayload:   "https://paypal.me/marketplace",
		},
	}
}

// BuildPayload validates the basket and selections and produces an
// immutable submission payload. Failure leaves everything untouched.
func (s *Service) BuildPayload(b *basket.Basket, delivery DeliverySelection, payment PaymentMethod) (*Payload, error) {
	if b.IsEmpty() {
		return nil, ErrEmptyBasket
	}

	if err := delivery.Validate(); err != nil {
		return nil, err
	}

	if !payment.IsValid() {
		return nil, ErrMissingPayment
	}

	subtotal, err := b.Subtotal()
	if err != nil {
		return nil, err
	}

	basketLines := b.Lines()
	lines := make([]PayloadLine, len(basketLines))
	for i, line := range basketLines {
		lines[i] = PayloadLine{
			ItemID:    line.Item.ID,
			Name:      line.Item.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Item.Price,
			Currency:  line.Item.Currency,
			StoreID:   line.Item.StoreID,
		}
	}

	return &Payload{
		Reference: uuid.New().String(),
		Lines:     lines,
		Subtotal:  subtotal,
		Currency:  b.Currency(),
		Delivery:  delivery,
		Payment:   payment,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Submit builds the payload for the customer's current basket, sends it
// to the order-submission collaborator, and on confirmed success records
// the order and clears the basket. Any failure leaves the basket intact.
func (s *Service) Submit(ctx context.Context, userID *uint, sessionID string, req *SubmitRequest) (*Result, error) {
	b, err := s.basketService.Load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	payload, err := s.BuildPayload(b, req.Delivery, req.Payment)
	if err != nil {
		return nil, err
	}

	if err := s.submitPayload(ctx, payload); err != nil {
		return nil, err
	}

	if err := s.recorder.RecordSubmission(ctx, payload, userID); err != nil {
		// The collaborator accepted the order; a failed local record
		// must not resurface as a checkout failure.
		s.logger.WithError(err).WithField("reference", payload.Reference).
			Error("Failed to record submitted order")
	}

	if err := s.OnSubmitSuccess(ctx, userID, sessionID); err != nil {
		s.logger.WithError(err).WithField("reference", payload.Reference).
			Error("Failed to clear basket after checkout")
	}

	s.logger.WithFields(logrus.Fields{
		"reference": payload.Reference,
		"lines":     len(payload.Lines),
		"subtotal":  payload.Subtotal,
		"currency":  payload.Currency,
	}).Info("Checkout submitted")

	return &Result{
		Reference:   payload.Reference,
		Payload:     payload,
		SubmittedAt: payload.CreatedAt.Format(time.RFC3339),
	}, nil
}

// OnSubmitSuccess clears the basket. Besides an explicit customer
// action this is the only path that empties it.
func (s *Service) OnSubmitSuccess(ctx context.Context, userID *uint, sessionID string) error {
	return s.basketService.Clear(ctx, userID, sessionID)
}

func (s *Service) submitPayload(ctx context.Context, payload *Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.config.Collaborators.OrderSubmitURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	defer resp.Body.Close()

	// Transport details are not inspected beyond success or failure
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: collaborator responded with status %d", ErrSubmissionFailed, resp.StatusCode)
	}

	return nil
}
