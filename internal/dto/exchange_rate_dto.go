package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateTableResponse is the cached rate table as served to the UI.
type RateTableResponse struct {
	BaseCurrency string                     `json:"baseCurrency"`
	Rates        map[string]decimal.Decimal `json:"rates"`
	FetchedAt    time.Time                  `json:"fetchedAt"`
}

func ToRateTableResponse(t *domain.RateTable) RateTableResponse {
	return RateTableResponse{
		BaseCurrency: t.BaseCurrency,
		Rates:        t.Rates,
		FetchedAt:    t.FetchedAt,
	}
}

// ExchangeRateResponse is a single pairwise rate.
type ExchangeRateResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
}

// ConvertRequest defines a single conversion.
type ConvertRequest struct {
	Amount decimal.Decimal `json:"amount"`
	From   string          `json:"from" binding:"required,currency"`
	To     string          `json:"to" binding:"required,currency"`
}

// ConvertItem is one entry of a batch conversion.
type ConvertItem struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"required,currency"`
}

// ConvertBatchRequest converts several amounts into one target currency.
// Items with currencies missing from the rate table come back as null.
type ConvertBatchRequest struct {
	Items          []ConvertItem `json:"items" binding:"required,min=1,dive"`
	TargetCurrency string        `json:"targetCurrency" binding:"required,currency"`
}

// ToMoneyList converts the request items to domain values.
func (r ConvertBatchRequest) ToMoneyList() []domain.Money {
	items := make([]domain.Money, len(r.Items))
	for i, it := range r.Items {
		items[i] = domain.NewMoney(it.Amount, it.Currency)
	}
	return items
}

// ConversionResponse mirrors domain.ConversionResult.
type ConversionResponse struct {
	OriginalAmount    decimal.Decimal `json:"originalAmount"`
	OriginalCurrency  string          `json:"originalCurrency"`
	ConvertedAmount   decimal.Decimal `json:"convertedAmount"`
	ConvertedCurrency string          `json:"convertedCurrency"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
	ConversionDate    time.Time       `json:"conversionDate"`
}

func ToConversionResponse(c *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		OriginalAmount:    c.OriginalAmount,
		OriginalCurrency:  c.OriginalCurrency,
		ConvertedAmount:   c.ConvertedAmount,
		ConvertedCurrency: c.ConvertedCurrency,
		ExchangeRate:      c.ExchangeRate,
		ConversionDate:    c.ConversionDate,
	}
}

// ConvertBatchResponse keeps the positions of the request; failed entries are null.
type ConvertBatchResponse struct {
	Results []*ConversionResponse `json:"results"`
}

func ToConvertBatchResponse(results []*domain.ConversionResult) ConvertBatchResponse {
	out := make([]*ConversionResponse, len(results))
	for i, r := range results {
		if r == nil {
			continue
		}
		resp := ToConversionResponse(r)
		out[i] = &resp
	}
	return ConvertBatchResponse{Results: out}
}
