package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelRateTable serialises the rate map as a JSON object of decimal strings.
func ToModelRateTable(d domain.RateTable) (models.ExchangeRateTable, error) {
	raw, err := json.Marshal(d.Rates)
	if err != nil {
		return models.ExchangeRateTable{}, fmt.Errorf("marshal rates: %w", err)
	}
	return models.ExchangeRateTable{
		BaseCurrency: d.BaseCurrency,
		Rates:        raw,
		FetchedAt:    d.FetchedAt,
	}, nil
}

// ToDomainRateTable converts a stored rate table back into a domain RateTable.
func ToDomainRateTable(m models.ExchangeRateTable) (*domain.RateTable, error) {
	var rates map[string]decimal.Decimal
	if err := json.Unmarshal(m.Rates, &rates); err != nil {
		return nil, fmt.Errorf("unmarshal rates for %s: %w", m.BaseCurrency, err)
	}
	return domain.NewRateTable(m.BaseCurrency, rates, m.FetchedAt), nil
}

// ToModelConversion converts a domain TransactionConversion to a model TransactionConversion
func ToModelConversion(d domain.TransactionConversion) models.TransactionConversion {
	return models.TransactionConversion{
		ConversionID:      d.ConversionID,
		UserID:            d.UserID,
		TransactionID:     d.TransactionID,
		TransactionType:   string(d.TransactionType),
		OriginalAmount:    d.OriginalAmount,
		OriginalCurrency:  d.OriginalCurrency,
		ConvertedAmount:   d.ConvertedAmount,
		ConvertedCurrency: d.ConvertedCurrency,
		ExchangeRate:      d.ExchangeRate,
		ConversionDate:    d.ConversionDate,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainConversion converts a model TransactionConversion to a domain TransactionConversion
func ToDomainConversion(m models.TransactionConversion) domain.TransactionConversion {
	return domain.TransactionConversion{
		ConversionID:    m.ConversionID,
		UserID:          m.UserID,
		TransactionID:   m.TransactionID,
		TransactionType: domain.TransactionType(m.TransactionType),
		ConversionResult: domain.ConversionResult{
			OriginalAmount:    m.OriginalAmount,
			OriginalCurrency:  m.OriginalCurrency,
			ConvertedAmount:   m.ConvertedAmount,
			ConvertedCurrency: m.ConvertedCurrency,
			ExchangeRate:      m.ExchangeRate,
			ConversionDate:    m.ConversionDate,
		},
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainConversionSlice converts a slice of model conversions to domain conversions
func ToDomainConversionSlice(ms []models.TransactionConversion) []domain.TransactionConversion {
	ds := make([]domain.TransactionConversion, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainConversion(m)
	}
	return ds
}
