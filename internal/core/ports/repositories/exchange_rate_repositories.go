package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// ExchangeRateReader defines read operations for persisted rate tables
type ExchangeRateReader interface {
	// FindLatestRateTable retrieves the most recently fetched table for a base currency.
	// Returns apperrors.ErrNotFound when nothing has been stored yet.
	FindLatestRateTable(ctx context.Context, baseCurrency string) (*domain.RateTable, error)
}

// ExchangeRateWriter defines write operations for persisted rate tables
type ExchangeRateWriter interface {
	// SaveRateTable persists a freshly fetched table.
	SaveRateTable(ctx context.Context, table domain.RateTable) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
