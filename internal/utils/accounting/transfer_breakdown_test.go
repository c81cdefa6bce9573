package accounting

import (
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(expected).Equal(actual), "%s: expected %s, got %s", field, expected, actual)
}

func TestCalculateCompleteTransferBreakdown(t *testing.T) {
	b := CalculateCompleteTransferBreakdown(BreakdownInput{
		SourceAmount:        d("1000"),
		SourceCurrency:      "USD",
		DestinationCurrency: "INR",
		BaseRate:            d("83"),
		PercentageMarkup:    d("2"),
		FixedMarkupFee:      d("50"),
		ExtraFee:            d("10"),
		ExtraFeeCurrency:    domain.FeeInSource,
		BufferAmount:        d("20"),
	})

	require.True(t, b.IsValid)
	assert.Empty(t, b.ErrorMessage)
	assertDecimal(t, "83000", b.ConvertedAmount, "convertedAmount")
	assertDecimal(t, "1660", b.PercentageMarkupAmount, "percentageMarkupAmount")
	assertDecimal(t, "50", b.FixedMarkupFee, "fixedMarkupFee")
	assertDecimal(t, "830", b.ExtraFeeConverted, "extraFeeConverted")
	assertDecimal(t, "20", b.BufferAmount, "bufferAmount")
	assertDecimal(t, "2540", b.TotalFees, "totalFees")
	assertDecimal(t, "85560", b.TotalDestinationAmount, "totalDestinationAmount")
	assertDecimal(t, "83.05", b.EffectiveExchangeRate, "effectiveExchangeRate")
	assert.Equal(t, "USD", b.SourceCurrency)
	assert.Equal(t, "INR", b.DestinationCurrency)
}

func TestCalculateCompleteTransferBreakdown_ExtraFeeInDestinationPassesThrough(t *testing.T) {
	b := CalculateCompleteTransferBreakdown(BreakdownInput{
		SourceAmount:        d("100"),
		SourceCurrency:      "EUR",
		DestinationCurrency: "USD",
		BaseRate:            d("1.18"),
		ExtraFee:            d("5"),
		ExtraFeeCurrency:    domain.FeeInDestination,
	})

	require.True(t, b.IsValid)
	assertDecimal(t, "118", b.ConvertedAmount, "convertedAmount")
	assertDecimal(t, "5", b.ExtraFeeConverted, "extraFeeConverted")
	assertDecimal(t, "5", b.TotalFees, "totalFees")
	assertDecimal(t, "123", b.TotalDestinationAmount, "totalDestinationAmount")
	assertDecimal(t, "1.18", b.EffectiveExchangeRate, "effectiveExchangeRate")
}

func TestCalculateCompleteTransferBreakdown_RoundsComponents(t *testing.T) {
	b := CalculateCompleteTransferBreakdown(BreakdownInput{
		SourceAmount:        d("333.33"),
		SourceCurrency:      "GBP",
		DestinationCurrency: "INR",
		BaseRate:            d("104.123456"),
		PercentageMarkup:    d("1.5"),
		FixedMarkupFee:      d("10"),
	})

	require.True(t, b.IsValid)
	// 333.33 * 104.123456 = 34707.47...
	assertDecimal(t, "34707.47", b.ConvertedAmount, "convertedAmount")
	assertDecimal(t, "520.61", b.PercentageMarkupAmount, "percentageMarkupAmount")
	assertDecimal(t, "104.1235", b.BaseExchangeRate, "baseExchangeRate")
	assertDecimal(t, "104.1535", b.EffectiveExchangeRate, "effectiveExchangeRate")
	assert.True(t, b.TotalDestinationAmount.Equal(b.ConvertedAmount.Add(b.TotalFees).Add(b.BufferAmount)))
}

func TestCalculateCompleteTransferBreakdown_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input BreakdownInput
	}{
		{"zero source amount", BreakdownInput{SourceAmount: decimal.Zero, SourceCurrency: "USD", DestinationCurrency: "INR", BaseRate: d("83")}},
		{"negative source amount", BreakdownInput{SourceAmount: d("-5"), SourceCurrency: "USD", DestinationCurrency: "INR", BaseRate: d("83")}},
		{"zero rate", BreakdownInput{SourceAmount: d("10"), SourceCurrency: "USD", DestinationCurrency: "INR", BaseRate: decimal.Zero}},
		{"negative fee", BreakdownInput{SourceAmount: d("10"), SourceCurrency: "USD", DestinationCurrency: "INR", BaseRate: d("83"), FixedMarkupFee: d("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := CalculateCompleteTransferBreakdown(tt.input)
			assert.False(t, b.IsValid)
			assert.NotEmpty(t, b.ErrorMessage)
			for field, v := range map[string]decimal.Decimal{
				"sourceAmount":           b.SourceAmount,
				"baseExchangeRate":       b.BaseExchangeRate,
				"effectiveExchangeRate":  b.EffectiveExchangeRate,
				"convertedAmount":        b.ConvertedAmount,
				"percentageMarkupAmount": b.PercentageMarkupAmount,
				"fixedMarkupFee":         b.FixedMarkupFee,
				"extraFeeConverted":      b.ExtraFeeConverted,
				"bufferAmount":           b.BufferAmount,
				"totalFees":              b.TotalFees,
				"totalDestinationAmount": b.TotalDestinationAmount,
			} {
				assert.Truef(t, v.IsZero(), "%s should be zero, got %s", field, v)
			}
		})
	}
}

func TestExtraFeeInSourceCurrency(t *testing.T) {
	in := BreakdownInput{ExtraFee: d("10"), ExtraFeeCurrency: domain.FeeInSource}
	assertDecimal(t, "10", ExtraFeeInSourceCurrency(in), "source side")

	in.ExtraFeeCurrency = domain.FeeInDestination
	assert.True(t, ExtraFeeInSourceCurrency(in).IsZero())
}

func TestResolveExtraFeeCurrency(t *testing.T) {
	tests := []struct {
		code     string
		expected domain.ExtraFeeCurrency
		wantErr  bool
	}{
		{"", domain.FeeInDestination, false},
		{"source", domain.FeeInSource, false},
		{"destination", domain.FeeInDestination, false},
		{"USD", domain.FeeInSource, false},
		{"inr", domain.FeeInDestination, false},
		{"EUR", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got, err := ResolveExtraFeeCurrency(tt.code, "USD", "INR")
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCalculateInternationalTransferAmount(t *testing.T) {
	res := CalculateInternationalTransferAmount(d("100"), d("80"), d("1.5"))
	require.True(t, res.IsValid)
	assertDecimal(t, "81.5", res.EffectiveRate, "effectiveRate")
	assertDecimal(t, "8150", res.DestinationAmount, "destinationAmount")

	res = CalculateInternationalTransferAmount(d("100"), d("80"), d("80"))
	assert.True(t, res.IsValid, "a fee equal to the rate is allowed")

	res = CalculateInternationalTransferAmount(d("100"), d("80"), d("85"))
	assert.False(t, res.IsValid)
	assert.Contains(t, res.ErrorMessage, "cannot exceed")
	assert.True(t, res.DestinationAmount.IsZero())

	res = CalculateInternationalTransferAmount(decimal.Zero, d("80"), d("1"))
	assert.False(t, res.IsValid)
}

func TestCalculateInternationalTransferAmountWithMarkup(t *testing.T) {
	_, err := CalculateInternationalTransferAmountWithMarkup(d("100"), d("80"), d("85"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	amount, err := CalculateInternationalTransferAmountWithMarkup(d("100"), d("80"), d("2"))
	require.NoError(t, err)
	assertDecimal(t, "8200", amount, "destinationAmount")
}
