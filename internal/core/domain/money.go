package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// AmountPlaces is the number of fraction digits kept for ledger values.
	AmountPlaces int32 = 2
	// RatePlaces is the number of fraction digits kept for exchange rates.
	RatePlaces int32 = 4
)

// RoundAmount rounds a ledger value to AmountPlaces.
// decimal.Round rounds half away from zero, i.e. half-up for non-negative values.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}

// RoundRate rounds an exchange rate to RatePlaces.
func RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(RatePlaces)
}

// Money is an amount in a specific currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// NewMoney creates a Money value.
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// String returns the amount with two fraction digits followed by the currency code.
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(AmountPlaces), m.Currency)
}
