// internal/domain/catalog/client_test.go
package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/your-org/marketplace-backend/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.Collaborators.CatalogBaseURL = server.URL
	cfg.Checkout.DefaultRegion = "AO"

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	return NewClient(cfg, logger)
}

func TestListStoreItemsParsesListing(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/stores/3/items", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [
			{"id": 1, "name": "Pizza", "price": 500, "store_id": 3},
			{"id": 2, "title": "Burger", "price": "300.25", "restaurant_id": 3},
			{"price": 100}
		]}`))
	}))

	items, err := client.ListStoreItems(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "Pizza", items[0].Name)
	require.Equal(t, "AOA", items[0].Currency)
	require.Equal(t, uint(3), items[1].StoreID)
}

func TestGetItemNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetItem(context.Background(), 42)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestListItemsSurfacesCollaboratorFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.ListItems(context.Background())
	require.Error(t, err)
}
