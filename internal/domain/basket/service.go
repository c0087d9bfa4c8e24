// internal/domain/basket/service.go
package basket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
)

// Service handles basket business logic. Authenticated customers get a
// database-backed basket, guests get a Redis session snapshot; both are
// materialized into the same Basket value before any mutation.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	catalog     catalog.Fetcher
	logger      *logrus.Logger
}

// NewService creates a new basket service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, fetcher catalog.Fetcher, logger *logrus.Logger) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		catalog:     fetcher,
		logger:      logger,
	}
}

// AddItemRequest represents an add to basket request
type AddItemRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity *int `json:"quantity,omitempty"` // Defaults to 1 when omitted
}

// SetQuantityRequest represents a direct quantity update. The field is a
// pointer so an omitted quantity fails binding instead of decoding to a
// zero that would delete the line.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// Response represents a basket with its lines and computed totals
type Response struct {
	SessionID string     `json:"session_id,omitempty"`
	UserID    *uint      `json:"user_id,omitempty"`
	Lines     []LineItem `json:"lines"`
	Totals    Totals     `json:"totals"`
	StoreIDs  []uint     `json:"store_ids,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Get retrieves the basket for a customer or guest session
func (s *Service) Get(ctx context.Context, userID *uint, sessionID string) (*Response, error) {
	b, err := s.Load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(userID, sessionID, b), nil
}

// AddItem validates the item against the catalog and adds it to the
// basket, incrementing the existing line if one exists.
func (s *Service) AddItem(ctx context.Context, userID *uint, sessionID string, req *AddItemRequest) (*Response, error) {
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.catalog.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate catalog item: %w", err)
	}

	b, err := s.Load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if s.config.Checkout.SingleStoreBasket && !b.IsEmpty() {
		if ids := b.StoreIDs(); len(ids) > 0 && ids[0] != item.StoreID {
			return nil, ErrMixedStore
		}
	}

	if err := b.Add(item, qty); err != nil {
		return nil, err
	}

	if err := s.save(ctx, userID, sessionID, b); err != nil {
		return nil, err
	}

	return s.buildResponse(userID, sessionID, b), nil
}

// SetQuantity sets a line's quantity directly; zero removes the line
func (s *Service) SetQuantity(ctx context.Context, userID *uint, sessionID string, itemID uint, qty int) (*Response, error) {
	b, err := s.Load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if err := b.SetQuantity(itemID, qty); err != nil {
		return nil, err
	}

	if err := s.save(ctx, userID, sessionID, b); err != nil {
		return nil, err
	}

	return s.buildResponse(userID, sessionID, b), nil
}

// RemoveItem decrements the line for itemID by one, removing the line
// when it reaches zero. Removing an absent item is not an error.
func (s *Service) RemoveItem(ctx context.Context, userID *uint, sessionID string, itemID uint) (*Response, error) {
	b, err := s.Load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	b.Remove(itemID)

	if err := s.save(ctx, userID, sessionID, b); err != nil {
		return nil, err
	}

	return s.buildResponse(userID, sessionID, b), nil
}

// Clear removes all lines from the basket
func (s *Service) Clear(ctx context.Context, userID *uint, sessionID string) error {
	if userID != nil {
		return s.db.WithContext(ctx).Where("user_id = ?", *userID).Delete(&BasketItem{}).Error
	}

	if sessionID == "" {
		return ErrSessionRequired
	}
	return s.redisClient.Del(ctx, s.sessionKey(sessionID)).Err()
}

// Count returns the total quantity across all lines
func (s *Service) Count(ctx context.Context, userID *uint, sessionID string) (int, error) {
	b, err := s.Load(ctx, userID, sessionID)
	if err != nil {
		return 0, err
	}
	return b.TotalQuantity(), nil
}

// MergeGuestBasket folds a guest session basket into the customer's
// basket at login, then discards the session snapshot.
func (s *Service) MergeGuestBasket(ctx context.Context, userID uint, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to merge
	}

	guest, err := s.loadGuest(ctx, sessionID)
	if err != nil {
		// Merge is best-effort; a broken guest snapshot must not block login
		s.logger.WithError(err).WithField("session_id", sessionID).
			Warn("Skipping guest basket merge")
		return nil
	}
	if guest.IsEmpty() {
		return nil
	}

	uid := userID
	b, err := s.Load(ctx, &uid, "")
	if err != nil {
		return err
	}

	for _, line := range guest.Lines() {
		if err := b.Add(line.Item, line.Quantity); err != nil {
			return err
		}
	}

	if err := s.save(ctx, &uid, "", b); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"lines":   guest.Len(),
	}).Debug("Merged guest basket into customer basket")

	return s.redisClient.Del(ctx, s.sessionKey(sessionID)).Err()
}

// Load materializes the stored basket for a customer or guest session.
// A basket that has never been written is empty, not an error.
func (s *Service) Load(ctx context.Context, userID *uint, sessionID string) (*Basket, error) {
	if userID != nil {
		return s.loadUser(ctx, *userID)
	}
	return s.loadGuest(ctx, sessionID)
}

// Private helper methods

func (s *Service) loadUser(ctx context.Context, userID uint) (*Basket, error) {
	var rows []BasketItem
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load customer basket: %w", err)
	}

	lines := make([]LineItem, len(rows))
	for i, row := range rows {
		lines[i] = LineItem{
			Item: catalog.ItemRef{
				ID:       row.ItemID,
				Name:     row.Name,
				Price:    row.UnitPrice,
				Currency: row.Currency,
				StoreID:  row.StoreID,
				Category: row.Category,
				Image:    row.Image,
			},
			Quantity: row.Quantity,
			AddedAt:  row.CreatedAt,
		}
	}

	b, err := Restore(lines)
	if err != nil {
		return nil, fmt.Errorf("stored basket is invalid: %w", err)
	}
	return b, nil
}

func (s *Service) loadGuest(ctx context.Context, sessionID string) (*Basket, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	data, err := s.redisClient.Get(ctx, s.sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return &Basket{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load guest basket: %w", err)
	}

	var snapshot SessionBasket
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode guest basket: %w", err)
	}

	b, err := Restore(snapshot.Lines)
	if err != nil {
		return nil, fmt.Errorf("stored basket is invalid: %w", err)
	}
	return b, nil
}

func (s *Service) save(ctx context.Context, userID *uint, sessionID string, b *Basket) error {
	if userID != nil {
		return s.saveUser(ctx, *userID, b)
	}
	return s.saveGuest(ctx, sessionID, b)
}

func (s *Service) saveUser(ctx context.Context, userID uint, b *Basket) error {
	// Replace-on-write keeps row order aligned with line order
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&BasketItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear customer basket: %w", err)
		}

		lines := b.Lines()
		if len(lines) == 0 {
			return nil
		}

		rows := make([]BasketItem, len(lines))
		for i, line := range lines {
			rows[i] = BasketItem{
				UserID:    userID,
				ItemID:    line.Item.ID,
				StoreID:   line.Item.StoreID,
				Name:      line.Item.Name,
				Quantity:  line.Quantity,
				UnitPrice: line.Item.Price,
				Currency:  line.Item.Currency,
				Category:  line.Item.Category,
				Image:     line.Item.Image,
			}
		}

		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save customer basket: %w", err)
		}
		return nil
	})
}

func (s *Service) saveGuest(ctx context.Context, sessionID string, b *Basket) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	snapshot := SessionBasket{
		SessionID: sessionID,
		Lines:     b.Lines(),
		UpdatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode guest basket: %w", err)
	}

	return s.redisClient.Set(ctx, s.sessionKey(sessionID), data, s.config.Checkout.GuestBasketTTL).Err()
}

func (s *Service) sessionKey(sessionID string) string {
	return fmt.Sprintf("basket:session:%s", sessionID)
}

func (s *Service) buildResponse(userID *uint, sessionID string, b *Basket) *Response {
	return &Response{
		SessionID: sessionID,
		UserID:    userID,
		Lines:     b.Lines(),
		Totals:    ComputeTotals(b),
		StoreIDs:  b.StoreIDs(),
		UpdatedAt: time.Now().UTC(),
	}
}

// ComputeTotals derives display totals from the current lines. A
// mixed-currency basket reports the per-currency breakdown instead of a
// single subtotal.
func ComputeTotals(b *Basket) Totals {
	totals := Totals{
		LineCount:     b.Len(),
		TotalQuantity: b.TotalQuantity(),
	}

	subtotal, err := b.Subtotal()
	if errors.Is(err, ErrMixedCurrency) {
		totals.Mixed = true
		totals.PerCurrency = b.SubtotalByCurrency()
		return totals
	}

	totals.Subtotal = subtotal
	totals.Currency = b.Currency()
	return totals
}
