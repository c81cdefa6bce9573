package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateTable is a row of exchange_rates. Rates holds the raw JSON object
// {code: rate} with rates as strings so no precision is lost.
type ExchangeRateTable struct {
	ID           int64     `db:"id"`
	BaseCurrency string    `db:"base_currency"`
	Rates        []byte    `db:"rates"`
	FetchedAt    time.Time `db:"fetched_at"`
}

// TransactionConversion is a row of transaction_conversions.
type TransactionConversion struct {
	ConversionID      string          `db:"conversion_id"`
	UserID            string          `db:"user_id"`
	TransactionID     string          `db:"transaction_id"`
	TransactionType   string          `db:"transaction_type"`
	OriginalAmount    decimal.Decimal `db:"original_amount"`
	OriginalCurrency  string          `db:"original_currency"`
	ConvertedAmount   decimal.Decimal `db:"converted_amount"`
	ConvertedCurrency string          `db:"converted_currency"`
	ExchangeRate      decimal.Decimal `db:"exchange_rate"`
	ConversionDate    time.Time       `db:"conversion_date"`
	CreatedAt         time.Time       `db:"created_at"`
}
