// internal/pkg/currency/currency.go
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Info describes the currency conventions of a region
type Info struct {
	Code   string `json:"code"`   // ISO 4217 code, e.g. "AOA"
	Symbol string `json:"symbol"` // Display symbol, e.g. "Kz"
	Locale string `json:"locale"` // BCP 47 tag used for formatting
}

// Default is the currency used for regions we do not recognize.
// The marketplace's home market is Angola.
var Default = Info{Code: "AOA", Symbol: "Kz", Locale: "pt-AO"}

// regions maps ISO 3166-1 alpha-2 region codes to currency conventions
var regions = map[string]Info{
	"AO": {Code: "AOA", Symbol: "Kz", Locale: "pt-AO"},
	"MZ": {Code: "MZN", Symbol: "MT", Locale: "pt-MZ"},
	"PT": {Code: "EUR", Symbol: "€", Locale: "pt-PT"},
	"BR": {Code: "BRL", Symbol: "R$", Locale: "pt-BR"},
	"NG": {Code: "NGN", Symbol: "₦", Locale: "en-NG"},
	"GH": {Code: "GHS", Symbol: "₵", Locale: "en-GH"},
	"KE": {Code: "KES", Symbol: "KSh", Locale: "en-KE"},
	"ZA": {Code: "ZAR", Symbol: "R", Locale: "en-ZA"},
	"US": {Code: "USD", Symbol: "$", Locale: "en-US"},
	"CA": {Code: "CAD", Symbol: "$", Locale: "en-CA"},
	"GB": {Code: "GBP", Symbol: "£", Locale: "en-GB"},
	"FR": {Code: "EUR", Symbol: "€", Locale: "fr-FR"},
	"DE": {Code: "EUR", Symbol: "€", Locale: "de-DE"},
	"ES": {Code: "EUR", Symbol: "€", Locale: "es-ES"},
	"IT": {Code: "EUR", Symbol: "€", Locale: "it-IT"},
	"IN": {Code: "INR", Symbol: "₹", Locale: "en-IN"},
}

// Resolve maps a region code to its currency conventions. Unknown or
// malformed region codes resolve to Default rather than failing.
func Resolve(regionCode string) Info {
	if info, ok := regions[strings.ToUpper(strings.TrimSpace(regionCode))]; ok {
		return info
	}
	return Default
}

// ResolveCode finds the display conventions for an ISO 4217 code.
// Codes outside the region table fall back to Default.
func ResolveCode(code string) Info {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, info := range regions {
		if info.Code == code {
			return info
		}
	}
	return Default
}

// Format renders an amount using the locale conventions of info. When
// locale-aware formatting is unavailable for the locale/currency pair it
// falls back to symbol + fixed two decimals. It never fails outward.
func Format(amount decimal.Decimal, info Info) string {
	formatted, err := localeFormat(amount, info)
	if err != nil {
		return info.Symbol + amount.StringFixed(2)
	}
	return formatted
}

func localeFormat(amount decimal.Decimal, info Info) (string, error) {
	tag, err := language.Parse(info.Locale)
	if err != nil {
		return "", err
	}

	unit, err := currency.ParseISO(info.Code)
	if err != nil {
		return "", err
	}

	value, _ := amount.Float64()
	printer := message.NewPrinter(tag)
	return printer.Sprint(currency.Symbol(unit.Amount(value))), nil
}
