package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateSource fetches live exchange rates quoted against baseCurrency.
type RateSource interface {
	FetchRates(ctx context.Context, baseCurrency string) (map[string]decimal.Decimal, error)
}
