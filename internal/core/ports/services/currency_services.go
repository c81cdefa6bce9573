package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencySvcFacade exposes the static currency catalog.
type CurrencySvcFacade interface {
	// GetCurrencyByCode retrieves a catalog entry.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) []domain.Currency

	// IsSupported reports whether the code is in the catalog.
	IsSupported(currencyCode string) bool

	// FormatAmount renders an amount with the currency's symbol and fraction digits.
	FormatAmount(amount decimal.Decimal, currencyCode string) string
}

// RateProviderSvc supplies the cached base-currency rate table.
type RateProviderSvc interface {
	// GetRates returns the current table, refreshing it when stale or when force is set.
	// A stale table is returned when a refresh fails; apperrors.ErrRateUnavailable when there is none.
	GetRates(ctx context.Context, force bool) (*domain.RateTable, error)
}

// CurrencyConverterSvc converts amounts between currency pairs through the base currency.
type CurrencyConverterSvc interface {
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (*domain.ConversionResult, error)
	GetExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error)

	// ConvertMultipleAmounts fetches the table at most once and converts each item
	// independently; an entry is nil when it could not be converted. The error is set
	// when no table was available, in which case only same-currency entries are populated.
	ConvertMultipleAmounts(ctx context.Context, items []domain.Money, targetCurrency string) ([]*domain.ConversionResult, error)
}

// ConversionAuditSvc reads persisted conversion audit records.
type ConversionAuditSvc interface {
	GetConversionsForTransaction(ctx context.Context, userID, transactionID string, transactionType domain.TransactionType) ([]domain.TransactionConversion, error)
	ListConversions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.TransactionConversion, *string, error)
}
