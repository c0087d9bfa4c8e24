// internal/domain/basket/entity_test.go
package basket

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/your-org/marketplace-backend/internal/domain/catalog"
)

func testItem(id uint, price string) catalog.ItemRef {
	return catalog.ItemRef{
		ID:       id,
		Name:     "Item",
		Price:    mustDecimal(price),
		Currency: "AOA",
		StoreID:  1,
	}
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAddIncrementsExistingLine(t *testing.T) {
	b := &Basket{}
	itemA := testItem(1, "500")

	require.NoError(t, b.Add(itemA, 1))
	require.NoError(t, b.Add(itemA, 1))

	require.Equal(t, 2, b.Quantity(1))
	require.Equal(t, 1, b.Len())

	subtotal, err := b.Subtotal()
	require.NoError(t, err)
	require.True(t, subtotal.Equal(mustDecimal("1000")), "subtotal = %s", subtotal)
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	b := &Basket{}
	item := testItem(1, "500")

	require.ErrorIs(t, b.Add(item, 0), ErrInvalidQuantity)
	require.ErrorIs(t, b.Add(item, -3), ErrInvalidQuantity)
	require.True(t, b.IsEmpty(), "failed add must not mutate the basket")
}

func TestRemoveDecrementsAndDeletesAtZero(t *testing.T) {
	b := &Basket{}
	require.NoError(t, b.Add(testItem(1, "500"), 3))

	b.Remove(1)
	b.Remove(1)
	require.Equal(t, 1, b.Quantity(1))

	b.Remove(1)
	require.Equal(t, 0, b.Quantity(1))
	require.True(t, b.IsEmpty())

	// Removing an absent item is a no-op, not an error
	b.Remove(1)
	b.Remove(999)
	require.True(t, b.IsEmpty())
}

func TestSetQuantity(t *testing.T) {
	b := &Basket{}
	require.NoError(t, b.Add(testItem(1, "500"), 2))

	require.NoError(t, b.SetQuantity(1, 5))
	require.Equal(t, 5, b.Quantity(1))

	require.ErrorIs(t, b.SetQuantity(1, -1), ErrInvalidQuantity)
	require.Equal(t, 5, b.Quantity(1), "failed set must not mutate the basket")

	require.ErrorIs(t, b.SetQuantity(42, 3), ErrLineNotFound)

	require.NoError(t, b.SetQuantity(1, 0))
	require.True(t, b.IsEmpty())
}

func TestClearEmptiesBasket(t *testing.T) {
	b := &Basket{}
	require.NoError(t, b.Add(testItem(1, "500"), 1))
	require.NoError(t, b.Add(testItem(2, "250"), 4))

	b.Clear()

	require.True(t, b.IsEmpty())
	subtotal, err := b.Subtotal()
	require.NoError(t, err)
	require.True(t, subtotal.IsZero())
	for _, id := range []uint{1, 2, 3} {
		require.Equal(t, 0, b.Quantity(id))
	}
}

func TestSubtotalDetectsMixedCurrencies(t *testing.T) {
	b := &Basket{}
	usd := testItem(1, "10")
	usd.Currency = "USD"
	aoa := testItem(2, "500")

	require.NoError(t, b.Add(usd, 1))
	require.NoError(t, b.Add(aoa, 2))

	_, err := b.Subtotal()
	require.ErrorIs(t, err, ErrMixedCurrency)
	require.Empty(t, b.Currency())

	breakdown := b.SubtotalByCurrency()
	require.Len(t, breakdown, 2)
	require.True(t, breakdown["USD"].Equal(mustDecimal("10")))
	require.True(t, breakdown["AOA"].Equal(mustDecimal("1000")))
}

func TestSubtotalAlwaysReflectsCurrentLines(t *testing.T) {
	b := &Basket{}
	item := testItem(1, "19.99")

	require.NoError(t, b.Add(item, 1))
	subtotal, err := b.Subtotal()
	require.NoError(t, err)
	require.True(t, subtotal.Equal(mustDecimal("19.99")))

	require.NoError(t, b.Add(item, 2))
	subtotal, err = b.Subtotal()
	require.NoError(t, err)
	require.True(t, subtotal.Equal(mustDecimal("59.97")))

	b.Remove(1)
	subtotal, err = b.Subtotal()
	require.NoError(t, err)
	require.True(t, subtotal.Equal(mustDecimal("39.98")))
}

func TestStoreIDsExposedForPolicyDecisions(t *testing.T) {
	b := &Basket{}
	itemA := testItem(1, "100")
	itemB := testItem(2, "100")
	itemB.StoreID = 7

	require.NoError(t, b.Add(itemA, 1))
	require.NoError(t, b.Add(itemB, 1))
	require.NoError(t, b.Add(itemA, 1))

	require.Equal(t, []uint{1, 7}, b.StoreIDs())
}

// Quantity after any add/remove sequence on one item equals adds minus
// removes clamped at zero, and the line is absent exactly at zero.
func TestRandomAddRemoveSequencesClampAtZero(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	item := testItem(1, "500")

	for trial := 0; trial < 200; trial++ {
		b := &Basket{}
		expected := 0

		for op := 0; op < 50; op++ {
			if rng.Intn(2) == 0 {
				require.NoError(t, b.Add(item, 1))
				expected++
			} else {
				b.Remove(item.ID)
				if expected > 0 {
					expected--
				}
			}

			require.Equal(t, expected, b.Quantity(item.ID))
			require.Equal(t, expected == 0, b.IsEmpty())

			subtotal, err := b.Subtotal()
			require.NoError(t, err)
			want := item.Price.Mul(decimal.NewFromInt(int64(expected)))
			require.True(t, subtotal.Equal(want), "subtotal %s != %s", subtotal, want)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	b := &Basket{}
	itemA := testItem(1, "500")
	itemA.Name = "Grilled Chicken"
	itemA.Category = "Meals"
	itemB := testItem(2, "3.50")
	itemB.Currency = "USD"
	itemB.StoreID = 9

	require.NoError(t, b.Add(itemA, 2))
	require.NoError(t, b.Add(itemB, 5))

	data, err := json.Marshal(SessionBasket{SessionID: "s-1", Lines: b.Lines()})
	require.NoError(t, err)

	var decoded SessionBasket
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored, err := Restore(decoded.Lines)
	require.NoError(t, err)

	original := b.Lines()
	got := restored.Lines()
	require.Len(t, got, len(original))
	for i := range original {
		require.Equal(t, original[i].Item.ID, got[i].Item.ID)
		require.Equal(t, original[i].Item.Name, got[i].Item.Name)
		require.Equal(t, original[i].Item.Currency, got[i].Item.Currency)
		require.Equal(t, original[i].Item.StoreID, got[i].Item.StoreID)
		require.Equal(t, original[i].Quantity, got[i].Quantity)
		require.True(t, original[i].Item.Price.Equal(got[i].Item.Price))
	}
}

func TestRestoreRejectsInvalidSnapshots(t *testing.T) {
	_, err := Restore([]LineItem{{Item: testItem(1, "500"), Quantity: 0}})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Restore([]LineItem{
		{Item: testItem(1, "500"), Quantity: 1},
		{Item: testItem(1, "500"), Quantity: 2},
	})
	require.ErrorIs(t, err, ErrDuplicateLine)
}

func TestLinesReturnsCopy(t *testing.T) {
	b := &Basket{}
	require.NoError(t, b.Add(testItem(1, "500"), 1))

	lines := b.Lines()
	lines[0].Quantity = 99

	require.Equal(t, 1, b.Quantity(1))
}
