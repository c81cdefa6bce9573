package utils

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// CurrencyFraction returns the number of minor-unit digits of a currency,
// falling back to 2 for codes go-money does not know.
func CurrencyFraction(code string) int {
	if cur := money.GetCurrency(strings.ToUpper(code)); cur != nil {
		return cur.Fraction
	}
	return 2
}

// CurrencySymbol returns the display symbol of a currency, or the code itself when unknown.
func CurrencySymbol(code string) string {
	if cur := money.GetCurrency(strings.ToUpper(code)); cur != nil && cur.Grapheme != "" {
		return cur.Grapheme
	}
	return strings.ToUpper(code)
}

// FormatAmount renders an amount the way the currency is usually written.
// Example: 1234.5 USD returns "$1,234.50"; 1234.5 JPY returns "¥1,235"
func FormatAmount(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
