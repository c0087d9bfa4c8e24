// internal/pkg/currency/currency_test.go
package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestResolveKnownRegions(t *testing.T) {
	tests := []struct {
		region string
		code   string
		symbol string
	}{
		{"AO", "AOA", "Kz"},
		{"NG", "NGN", "₦"},
		{"US", "USD", "$"},
		{"pt", "EUR", "€"}, // case-insensitive lookup
	}

	for _, tt := range tests {
		info := Resolve(tt.region)
		require.Equal(t, tt.code, info.Code, "region %s", tt.region)
		require.Equal(t, tt.symbol, info.Symbol, "region %s", tt.region)
	}
}

func TestResolveUnknownRegionFallsBackToDefault(t *testing.T) {
	require.Equal(t, Default, Resolve("ZZ"))
	require.Equal(t, Default, Resolve(""))
	require.Equal(t, Default, Resolve("  "))
}

func TestResolveCode(t *testing.T) {
	info := ResolveCode("ngn")
	require.Equal(t, "NGN", info.Code)
	require.Equal(t, "₦", info.Symbol)

	require.Equal(t, Default, ResolveCode("XXX"))
	require.Equal(t, Default, ResolveCode(""))
}

func TestFormatFallsBackWhenLocaleUnavailable(t *testing.T) {
	info := Info{Code: "AOA", Symbol: "Kz", Locale: "not-a-locale"}

	got := Format(decimal.NewFromFloat(1234.5), info)
	require.Equal(t, "Kz1234.50", got)
}

func TestFormatFallsBackWhenCurrencyUnknown(t *testing.T) {
	info := Info{Code: "???", Symbol: "?", Locale: "en-US"}

	got := Format(decimal.NewFromFloat(10), info)
	require.Equal(t, "?10.00", got)
}

func TestFormatNeverReturnsEmpty(t *testing.T) {
	amounts := []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(500),
		decimal.NewFromFloat(0.01),
		decimal.NewFromFloat(1234567.89),
	}

	for _, region := range []string{"AO", "US", "GB", "ZZ"} {
		info := Resolve(region)
		for _, amount := range amounts {
			require.NotEmpty(t, Format(amount, info))
		}
	}
}
