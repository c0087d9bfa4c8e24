// internal/domain/catalog/parser.go
package catalog

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// rawItem mirrors the loose shapes the catalog collaborator serves.
// Different deployments name the same fields differently and prices
// arrive as numbers or strings, so everything is optional here and
// normalized by ParseItem.
type rawItem struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Title        string          `json:"title"`
	Price        json.RawMessage `json:"price"`
	Currency     string          `json:"currency"`
	StoreID      uint            `json:"store_id"`
	RestaurantID uint            `json:"restaurant_id"`
	Category     string          `json:"category"`
	Image        string          `json:"image"`
	ImageURL     string          `json:"image_url"`
	Active       *bool           `json:"active"`
}

// ParseItem validates a single collaborator payload into an ItemRef.
// It returns a *ParseError naming the offending field on bad input.
func ParseItem(data []byte, defaultCurrency string) (ItemRef, error) {
	var raw rawItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return ItemRef{}, &ParseError{Field: "item", Reason: "is not a JSON object"}
	}

	if raw.ID == 0 {
		return ItemRef{}, &ParseError{Field: "id", Reason: "is missing or zero"}
	}

	name := raw.Name
	if name == "" {
		name = raw.Title
	}
	if strings.TrimSpace(name) == "" {
		return ItemRef{}, &ParseError{Field: "name", Reason: "is empty"}
	}

	price, err := parsePrice(raw.Price)
	if err != nil {
		return ItemRef{}, err
	}

	storeID := raw.StoreID
	if storeID == 0 {
		storeID = raw.RestaurantID
	}
	if storeID == 0 {
		return ItemRef{}, &ParseError{Field: "store_id", Reason: "is missing or zero"}
	}

	currency := strings.ToUpper(strings.TrimSpace(raw.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	image := raw.Image
	if image == "" {
		image = raw.ImageURL
	}

	return ItemRef{
		ID:       raw.ID,
		Name:     strings.TrimSpace(name),
		Price:    price,
		Currency: currency,
		StoreID:  storeID,
		Category: strings.TrimSpace(raw.Category),
		Image:    image,
	}, nil
}

// ParseItems parses a collaborator listing, dropping entries that fail
// validation and items explicitly marked inactive. The dropped count is
// returned so callers can log it.
func ParseItems(entries []json.RawMessage, defaultCurrency string) ([]ItemRef, int) {
	items := make([]ItemRef, 0, len(entries))
	dropped := 0

	for _, entry := range entries {
		var peek rawItem
		if err := json.Unmarshal(entry, &peek); err == nil && peek.Active != nil && !*peek.Active {
			dropped++
			continue
		}

		item, err := ParseItem(entry, defaultCurrency)
		if err != nil {
			dropped++
			continue
		}
		items = append(items, item)
	}

	return items, dropped
}

func parsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 {
		return decimal.Decimal{}, &ParseError{Field: "price", Reason: "is missing"}
	}

	// Prices arrive as JSON numbers or as quoted decimal strings.
	text := strings.Trim(string(raw), `"`)
	price, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Decimal{}, &ParseError{Field: "price", Reason: "is not a decimal number"}
	}

	if price.IsNegative() {
		return decimal.Decimal{}, &ParseError{Field: "price", Reason: "is negative"}
	}

	return price, nil
}
