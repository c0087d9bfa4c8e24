// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/marketplace-backend/internal/domain/checkout"
)

// ErrOrderNotFound is returned when no recorded order matches
var ErrOrderNotFound = errors.New("order not found")

// Service records confirmed checkouts and serves store dashboards
type Service struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// RecordSubmission persists a confirmed checkout payload. It implements
// checkout.Recorder.
func (s *Service) RecordSubmission(ctx context.Context, payload *checkout.Payload, userID *uint) error {
	record := Order{
		OrderNumber:     payload.Reference,
		UserID:          userID,
		StoreID:         singleStoreID(payload),
		Subtotal:        payload.Subtotal,
		Currency:        payload.Currency,
		DeliveryMethod:  string(payload.Delivery.Method),
		DeliveryAddress: payload.Delivery.Address,
		PaymentMethod:   string(payload.Payment),
	}

	for _, line := range payload.Lines {
		record.Items = append(record.Items, OrderItem{
			ItemID:    line.ItemID,
			StoreID:   line.StoreID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Currency:  line.Currency,
		})
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record order: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_number": record.OrderNumber,
		"store_id":     record.StoreID,
	}).Info("Recorded submitted order")

	return nil
}

// GetByNumber retrieves a recorded order with its lines
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var record Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("order_number = ?", orderNumber).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	return &record, nil
}

// ListStoreOrders returns a store's recorded orders, newest first
func (s *Service) ListStoreOrders(ctx context.Context, storeID uint, limit int) ([]Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var records []Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list store orders: %w", err)
	}

	return records, nil
}

// StoreSummary aggregates order counts and revenue for a store's
// dashboard. Revenue is summed per the store's recorded currency; a
// store that sold in several currencies reports no single currency.
func (s *Service) StoreSummary(ctx context.Context, storeID uint) (*StoreSummary, error) {
	var records []Order
	err := s.db.WithContext(ctx).Preload("Items").
		Where("store_id = ?", storeID).Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to summarize store orders: %w", err)
	}

	summary := &StoreSummary{StoreID: storeID, Revenue: decimal.Zero}
	currency := ""
	mixed := false

	for _, record := range records {
		summary.OrderCount++
		summary.Revenue = summary.Revenue.Add(record.Subtotal)
		for _, item := range record.Items {
			summary.TotalQuantity += item.Quantity
		}

		if currency == "" {
			currency = record.Currency
		} else if record.Currency != currency {
			mixed = true
		}
	}

	if !mixed {
		summary.Currency = currency
	}

	return summary, nil
}

// singleStoreID returns the common store id of the payload lines, or 0
// when the basket mixed stores.
func singleStoreID(payload *checkout.Payload) uint {
	storeID := uint(0)
	for _, line := range payload.Lines {
		if storeID == 0 {
			storeID = line.StoreID
		} else if line.StoreID != storeID {
			return 0
		}
	}
	return storeID
}
