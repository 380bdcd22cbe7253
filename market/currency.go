// Package market holds the reference value types the curve core depends on:
// currencies, standard identifiers for legal entities and curves, and FX
// rate lookup.
package market

import "strings"

// Currency is an opaque ISO-style code identifying a settlement currency.
// The zero value is invalid; use CurrencyOf or a predefined constant.
type Currency string

// Commonly used currencies.
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	KRW Currency = "KRW"
)

// CurrencyOf normalizes a code to upper case.
func CurrencyOf(code string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(code)))
}

// IsZero reports whether the currency is the invalid zero value.
func (c Currency) IsZero() bool { return c == "" }

func (c Currency) String() string { return string(c) }
