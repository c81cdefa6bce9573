package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RateTable is a snapshot of exchange rates relative to BaseCurrency.
// A table is never mutated after construction; a later fetch supersedes it.
type RateTable struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
	FetchedAt    time.Time                  `json:"fetchedAt"`
}

// NewRateTable builds a table from raw rates. Codes are upper-cased, the
// input map is copied and the base currency's own rate is forced to 1.
func NewRateTable(baseCurrency string, rates map[string]decimal.Decimal, fetchedAt time.Time) *RateTable {
	base := strings.ToUpper(baseCurrency)
	copied := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		copied[strings.ToUpper(code)] = rate
	}
	copied[base] = decimal.NewFromInt(1)
	return &RateTable{
		BaseCurrency: base,
		Rates:        copied,
		FetchedAt:    fetchedAt,
	}
}

// Rate returns the rate for code relative to the base currency.
func (t *RateTable) Rate(code string) (decimal.Decimal, bool) {
	rate, ok := t.Rates[strings.ToUpper(code)]
	return rate, ok
}

// IsFresh reports whether the table is younger than ttl at now.
func (t *RateTable) IsFresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(t.FetchedAt) < ttl
}

// TransactionType identifies which business record a conversion audit belongs to.
type TransactionType string

const (
	IncomeTransaction     TransactionType = "income"
	ExpenseTransaction    TransactionType = "expense"
	InvestmentTransaction TransactionType = "investment"
	GoalTransaction       TransactionType = "goal"
	TransferTransaction   TransactionType = "transfer"
)

// ConversionResult records exactly which amounts and rate were used for a conversion.
// If OriginalCurrency == ConvertedCurrency then ConvertedAmount == OriginalAmount and ExchangeRate == 1.
type ConversionResult struct {
	OriginalAmount    decimal.Decimal `json:"originalAmount"`
	OriginalCurrency  string          `json:"originalCurrency"`
	ConvertedAmount   decimal.Decimal `json:"convertedAmount"`
	ConvertedCurrency string          `json:"convertedCurrency"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	ConversionDate    time.Time       `json:"conversionDate"`
}

// IdentityConversion returns the result of converting amount into its own currency.
func IdentityConversion(amount decimal.Decimal, currency string, at time.Time) ConversionResult {
	return ConversionResult{
		OriginalAmount:    amount,
		OriginalCurrency:  currency,
		ConvertedAmount:   amount,
		ConvertedCurrency: currency,
		ExchangeRate:      decimal.NewFromInt(1),
		ConversionDate:    at,
	}
}

// IsIdentity reports whether no currency change happened.
func (c ConversionResult) IsIdentity() bool {
	return c.OriginalCurrency == c.ConvertedCurrency
}

// TransactionConversion is a persisted ConversionResult linked to exactly one
// business transaction via (TransactionID, TransactionType).
type TransactionConversion struct {
	ConversionID    string          `json:"conversionID"`
	UserID          string          `json:"userID"`
	TransactionID   string          `json:"transactionID"`
	TransactionType TransactionType `json:"transactionType"`
	ConversionResult
	CreatedAt time.Time `json:"createdAt"`
}
