// internal/domain/catalog/client.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/pkg/currency"
)

// Fetcher supplies validated catalog items. The basket service depends
// on this interface so tests can substitute an in-memory catalog.
type Fetcher interface {
	ListItems(ctx context.Context) ([]ItemRef, error)
	ListStoreItems(ctx context.Context, storeID uint) ([]ItemRef, error)
	GetItem(ctx context.Context, itemID uint) (ItemRef, error)
}

// Client fetches items from the catalog collaborator over HTTP
type Client struct {
	baseURL         string
	defaultCurrency string
	httpClient      *http.Client
	logger          *logrus.Logger
}

// NewClient creates a new catalog client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:         cfg.Collaborators.CatalogBaseURL,
		defaultCurrency: currency.Resolve(cfg.Checkout.DefaultRegion).Code,
		httpClient:      &http.Client{Timeout: cfg.Collaborators.RequestTimeout},
		logger:          logger,
	}
}

// listingResponse is the envelope the collaborator wraps listings in
type listingResponse struct {
	Data []json.RawMessage `json:"data"`
}

// ListItems retrieves the global item listing
func (c *Client) ListItems(ctx context.Context) ([]ItemRef, error) {
	return c.fetchListing(ctx, fmt.Sprintf("%s/items", c.baseURL))
}

// ListStoreItems retrieves the item listing for a single store
func (c *Client) ListStoreItems(ctx context.Context, storeID uint) ([]ItemRef, error) {
	return c.fetchListing(ctx, fmt.Sprintf("%s/stores/%d/items", c.baseURL, storeID))
}

// GetItem retrieves a single active item by id
func (c *Client) GetItem(ctx context.Context, itemID uint) (ItemRef, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/items/%d", c.baseURL, itemID), nil)
	if err != nil {
		return ItemRef{}, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ItemRef{}, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ItemRef{}, ErrItemNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return ItemRef{}, fmt.Errorf("catalog responded with status %d", resp.StatusCode)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return ItemRef{}, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	item, err := ParseItem(envelope.Data, c.defaultCurrency)
	if err != nil {
		return ItemRef{}, err
	}

	return item, nil
}

func (c *Client) fetchListing(ctx context.Context, url string) ([]ItemRef, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog responded with status %d", resp.StatusCode)
	}

	var listing listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("failed to decode catalog listing: %w", err)
	}

	items, dropped := ParseItems(listing.Data, c.defaultCurrency)
	if dropped > 0 {
		c.logger.WithFields(logrus.Fields{
			"url":     url,
			"dropped": dropped,
		}).Warn("Dropped invalid catalog entries")
	}

	return items, nil
}
