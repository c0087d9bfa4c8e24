// internal/domain/basket/service_test.go
package basket

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
)

type stubFetcher struct {
	items map[uint]catalog.ItemRef
}

func (f *stubFetcher) ListItems(ctx context.Context) ([]catalog.ItemRef, error) {
	out := make([]catalog.ItemRef, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *stubFetcher) ListStoreItems(ctx context.Context, storeID uint) ([]catalog.ItemRef, error) {
	var out []catalog.ItemRef
	for _, item := range f.items {
		if item.StoreID == storeID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *stubFetcher) GetItem(ctx context.Context, itemID uint) (catalog.ItemRef, error) {
	item, ok := f.items[itemID]
	if !ok {
		return catalog.ItemRef{}, catalog.ErrItemNotFound
	}
	return item, nil
}

// newGuestService builds a Service backed by an in-process redis and a
// stub catalog. Items 1 and 2 belong to store 3, item 3 to store 9.
func newGuestService(t *testing.T, singleStore bool) (*Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{}
	cfg.Checkout.SingleStoreBasket = singleStore
	cfg.Checkout.GuestBasketTTL = time.Hour

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	fetcher := &stubFetcher{items: map[uint]catalog.ItemRef{
		1: {ID: 1, Name: "Muamba de Galinha", Price: decimal.NewFromInt(500), Currency: "AOA", StoreID: 3},
		2: {ID: 2, Name: "Funge", Price: decimal.NewFromInt(250), Currency: "AOA", StoreID: 3},
		3: {ID: 3, Name: "Cachupa", Price: decimal.NewFromInt(400), Currency: "AOA", StoreID: 9},
	}}

	return NewService(nil, client, cfg, fetcher, logger), mr
}

func TestAddItemAcrossStoresAllowedByDefault(t *testing.T) {
	s, _ := newGuestService(t, false)
	ctx := context.Background()

	_, err := s.AddItem(ctx, nil, "sess-1", &AddItemRequest{ItemID: 1})
	require.NoError(t, err)

	resp, err := s.AddItem(ctx, nil, "sess-1", &AddItemRequest{ItemID: 3})
	require.NoError(t, err)
	require.Equal(t, []uint{3, 9}, resp.StoreIDs)
}

func TestAddItemSingleStorePolicy(t *testing.T) {
	s, _ := newGuestService(t, true)
	ctx := context.Background()

	_, err := s.AddItem(ctx, nil, "sess-2", &AddItemRequest{ItemID: 1})
	require.NoError(t, err)

	// A second item from the same store is fine
	resp, err := s.AddItem(ctx, nil, "sess-2", &AddItemRequest{ItemID: 2})
	require.NoError(t, err)
	require.Equal(t, []uint{3}, resp.StoreIDs)

	// An item from another store is rejected and the basket keeps its lines
	_, err = s.AddItem(ctx, nil, "sess-2", &AddItemRequest{ItemID: 3})
	require.ErrorIs(t, err, ErrMixedStore)

	count, err := s.Count(ctx, nil, "sess-2")
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestAddItemUnknownItem(t *testing.T) {
	s, _ := newGuestService(t, false)

	_, err := s.AddItem(context.Background(), nil, "sess-4", &AddItemRequest{ItemID: 99})
	require.ErrorIs(t, err, catalog.ErrItemNotFound)
}

func TestMergeGuestBasketSkipsCorruptSnapshot(t *testing.T) {
	s, mr := newGuestService(t, false)
	require.NoError(t, mr.Set("basket:session:sess-3", "{not json"))

	require.NoError(t, s.MergeGuestBasket(context.Background(), 7, "sess-3"))
}
