package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type currencyConverter struct {
	BaseService
	rates portssvc.RateProviderSvc
}

// NewCurrencyConverter creates a converter that pivots through the provider's base currency.
func NewCurrencyConverter(rates portssvc.RateProviderSvc, opts ...ServiceOption) portssvc.CurrencyConverterSvc {
	return &currencyConverter{
		BaseService: newBaseService(opts...),
		rates:       rates,
	}
}

var _ portssvc.CurrencyConverterSvc = (*currencyConverter)(nil)

func (c *currencyConverter) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (*domain.ConversionResult, error) {
	from, to := normalizeCode(fromCurrency), normalizeCode(toCurrency)
	if from == to {
		res := domain.IdentityConversion(amount, from, c.now())
		return &res, nil
	}

	table, err := c.rates.GetRates(ctx, false)
	if err != nil {
		return nil, err
	}
	res, err := convertWithTable(table, amount, from, to, c.now())
	if err != nil {
		c.LogDebug(ctx, "Conversion rejected", slog.String("from", from), slog.String("to", to), slog.String("error", err.Error()))
		return nil, err
	}
	return res, nil
}

func (c *currencyConverter) GetExchangeRate(ctx context.Context, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	from, to := normalizeCode(fromCurrency), normalizeCode(toCurrency)
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	table, err := c.rates.GetRates(ctx, false)
	if err != nil {
		return decimal.Zero, err
	}
	fromRate, toRate, err := pairRates(table, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.RoundRate(toRate.Div(fromRate)), nil
}

func (c *currencyConverter) ConvertMultipleAmounts(ctx context.Context, items []domain.Money, targetCurrency string) ([]*domain.ConversionResult, error) {
	target := normalizeCode(targetCurrency)
	now := c.now()
	results := make([]*domain.ConversionResult, len(items))

	var (
		table    *domain.RateTable
		tableErr error
		fetched  bool
	)
	for i, item := range items {
		from := normalizeCode(item.Currency)
		if from == target {
			res := domain.IdentityConversion(item.Amount, from, now)
			results[i] = &res
			continue
		}
		if !fetched {
			table, tableErr = c.rates.GetRates(ctx, false)
			fetched = true
		}
		if tableErr != nil {
			continue
		}
		res, err := convertWithTable(table, item.Amount, from, target, now)
		if err != nil {
			c.LogDebug(ctx, "Batch item not converted", slog.Int("index", i), slog.String("from", from), slog.String("error", err.Error()))
			continue
		}
		results[i] = res
	}
	return results, tableErr
}

// convertWithTable converts through the table's base currency. Amounts are
// rounded to 2 places and the rate to 4.
func convertWithTable(table *domain.RateTable, amount decimal.Decimal, from, to string, now time.Time) (*domain.ConversionResult, error) {
	if from == to {
		res := domain.IdentityConversion(amount, from, now)
		return &res, nil
	}
	fromRate, toRate, err := pairRates(table, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.ConversionResult{
		OriginalAmount:    amount,
		OriginalCurrency:  from,
		ConvertedAmount:   domain.RoundAmount(amount.Mul(toRate).Div(fromRate)),
		ConvertedCurrency: to,
		ExchangeRate:      domain.RoundRate(toRate.Div(fromRate)),
		ConversionDate:    now,
	}, nil
}

// pairRates looks up both rates. A missing or zero rate is an unsupported currency.
func pairRates(table *domain.RateTable, from, to string) (decimal.Decimal, decimal.Decimal, error) {
	fromRate, ok := table.Rate(from)
	if !ok || fromRate.IsZero() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, from)
	}
	toRate, ok := table.Rate(to)
	if !ok || toRate.IsZero() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedCurrency, to)
	}
	return fromRate, toRate, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
