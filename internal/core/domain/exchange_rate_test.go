package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewRateTable(t *testing.T) {
	raw := map[string]decimal.Decimal{
		"eur": decimal.RequireFromString("0.85"),
		"USD": decimal.RequireFromString("0.99"),
	}
	table := NewRateTable("usd", raw, time.Now())

	assert.Equal(t, "USD", table.BaseCurrency)
	base, ok := table.Rate("USD")
	assert.True(t, ok)
	assert.True(t, base.Equal(decimal.NewFromInt(1)), "base rate is forced to 1")

	eur, ok := table.Rate("EUR")
	assert.True(t, ok)
	assert.Equal(t, "0.85", eur.String())

	raw["GBP"] = decimal.NewFromInt(1)
	_, ok = table.Rate("GBP")
	assert.False(t, ok, "table must not alias the input map")
}

func TestRateTable_IsFresh(t *testing.T) {
	fetched := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	table := NewRateTable("USD", nil, fetched)

	assert.True(t, table.IsFresh(fetched.Add(59*time.Minute), time.Hour))
	assert.False(t, table.IsFresh(fetched.Add(time.Hour), time.Hour))
}

func TestIdentityConversion(t *testing.T) {
	amount := decimal.RequireFromString("42.10")
	c := IdentityConversion(amount, "JPY", time.Now())
	assert.True(t, c.IsIdentity())
	assert.True(t, c.ConvertedAmount.Equal(amount))
	assert.True(t, c.ExchangeRate.Equal(decimal.NewFromInt(1)))
}
