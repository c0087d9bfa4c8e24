// internal/domain/catalog/parser_test.go
package catalog

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseItemNormalizesLooseShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    ItemRef
	}{
		{
			name:    "canonical fields",
			payload: `{"id": 7, "name": "Grilled Chicken", "price": 1500.5, "currency": "aoa", "store_id": 3, "category": "Meals", "image": "chicken.png"}`,
			want: ItemRef{
				ID: 7, Name: "Grilled Chicken", Price: requireDecimal(t, "1500.5"),
				Currency: "AOA", StoreID: 3, Category: "Meals", Image: "chicken.png",
			},
		},
		{
			name:    "title and restaurant_id aliases",
			payload: `{"id": 2, "title": "Espresso", "price": "3.50", "restaurant_id": 9, "image_url": "espresso.jpg"}`,
			want: ItemRef{
				ID: 2, Name: "Espresso", Price: requireDecimal(t, "3.50"),
				Currency: "AOA", StoreID: 9, Image: "espresso.jpg",
			},
		},
		{
			name:    "price as quoted string",
			payload: `{"id": 4, "name": "Pizza", "price": "500", "store_id": 1}`,
			want: ItemRef{
				ID: 4, Name: "Pizza", Price: requireDecimal(t, "500"),
				Currency: "AOA", StoreID: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseItem([]byte(tt.payload), "AOA")
			require.NoError(t, err)
			require.Equal(t, tt.want.ID, got.ID)
			require.Equal(t, tt.want.Name, got.Name)
			require.True(t, tt.want.Price.Equal(got.Price), "price %s != %s", tt.want.Price, got.Price)
			require.Equal(t, tt.want.Currency, got.Currency)
			require.Equal(t, tt.want.StoreID, got.StoreID)
			require.Equal(t, tt.want.Image, got.Image)
		})
	}
}

func TestParseItemRejectsInvalidPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		field   string
	}{
		{"missing id", `{"name": "Pizza", "price": 5, "store_id": 1}`, "id"},
		{"empty name", `{"id": 1, "name": "  ", "price": 5, "store_id": 1}`, "name"},
		{"missing price", `{"id": 1, "name": "Pizza", "store_id": 1}`, "price"},
		{"negative price", `{"id": 1, "name": "Pizza", "price": -5, "store_id": 1}`, "price"},
		{"garbage price", `{"id": 1, "name": "Pizza", "price": "cheap", "store_id": 1}`, "price"},
		{"missing store", `{"id": 1, "name": "Pizza", "price": 5}`, "store_id"},
		{"not an object", `[1,2,3]`, "item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseItem([]byte(tt.payload), "AOA")
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			require.Equal(t, tt.field, parseErr.Field)
		})
	}
}

func TestParseItemsDropsInvalidAndInactiveEntries(t *testing.T) {
	entries := []json.RawMessage{
		json.RawMessage(`{"id": 1, "name": "Pizza", "price": 500, "store_id": 1}`),
		json.RawMessage(`{"id": 2, "name": "Burger", "price": 300, "store_id": 1, "active": false}`),
		json.RawMessage(`{"id": 3, "price": 100, "store_id": 1}`),
		json.RawMessage(`{"id": 4, "name": "Salad", "price": 200, "store_id": 2, "active": true}`),
	}

	items, dropped := ParseItems(entries, "AOA")
	require.Len(t, items, 2)
	require.Equal(t, 2, dropped)
	require.Equal(t, uint(1), items[0].ID)
	require.Equal(t, uint(4), items[1].ID)
}

func requireDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
