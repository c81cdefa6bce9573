package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newConverter(source *MockRateSource) portssvc.CurrencyConverterSvc {
	clock := newFakeClock(t0)
	provider := services.NewRateProvider(source, memory.NewStore(), "EUR",
		services.WithRateProviderBase(services.WithClock(clock.Now)))
	return services.NewCurrencyConverter(provider, services.WithClock(clock.Now))
}

func TestConvertAmount_SameCurrencyNeedsNoRates(t *testing.T) {
	source := new(MockRateSource)
	conv := newConverter(source)

	res, err := conv.ConvertAmount(context.Background(), d("12.345"), "usd", "USD")
	require.NoError(t, err)
	assert.True(t, res.IsIdentity())
	assert.Equal(t, "12.345", res.ConvertedAmount.String())
	assert.Equal(t, "1", res.ExchangeRate.String())
	source.AssertNotCalled(t, "FetchRates", mock.Anything, mock.Anything)
}

func TestConvertAmount_ThroughBaseCurrency(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchRates", mock.Anything, "EUR").Return(eurRates(), nil).Once()
	conv := newConverter(source)
	ctx := context.Background()

	res, err := conv.ConvertAmount(ctx, d("100"), "EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, "118.00", res.ConvertedAmount.StringFixed(2))
	assert.Equal(t, "1.18", res.ExchangeRate.String())
	assert.Equal(t, t0, res.ConversionDate)

	// 10 × 98.0826 / 1.18 = 831.2084...
	res, err = conv.ConvertAmount(ctx, d("10"), "USD", "INR")
	require.NoError(t, err)
	assert.Equal(t, "831.21", res.ConvertedAmount.String())
	assert.Equal(t, "83.1208", res.ExchangeRate.String())

	source.AssertNumberOfCalls(t, "FetchRates", 1)
}

func TestConvertAmount_UnsupportedCurrencies(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchRates", mock.Anything, "EUR").Return(eurRates(), nil).Once()
	conv := newConverter(source)
	ctx := context.Background()

	_, err := conv.ConvertAmount(ctx, d("5"), "USD", "ABC")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)

	_, err = conv.ConvertAmount(ctx, d("5"), "XXX", "USD")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency, "a zero rate is treated as unsupported")

	_, err = conv.GetExchangeRate(ctx, "USD", "XXX")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedCurrency)
}

func TestGetExchangeRate(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchRates", mock.Anything, "EUR").Return(eurRates(), nil).Once()
	conv := newConverter(source)
	ctx := context.Background()

	rate, err := conv.GetExchangeRate(ctx, "eur", "usd")
	require.NoError(t, err)
	assert.Equal(t, "1.18", rate.String())

	rate, err = conv.GetExchangeRate(ctx, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, "0.8475", rate.String())

	rate, err = conv.GetExchangeRate(ctx, "GBP", "GBP")
	require.NoError(t, err)
	assert.Equal(t, "1", rate.String())
}

func TestConvertMultipleAmounts(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchRates", mock.Anything, "EUR").Return(eurRates(), nil).Once()
	conv := newConverter(source)

	results, err := conv.ConvertMultipleAmounts(context.Background(), []domain.Money{
		domain.NewMoney(d("50"), "USD"),
		domain.NewMoney(d("100"), "EUR"),
		domain.NewMoney(d("7"), "ABC"),
	}, "USD")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "50", results[0].ConvertedAmount.String())
	assert.Equal(t, "118.00", results[1].ConvertedAmount.StringFixed(2))
	assert.Nil(t, results[2])
	source.AssertNumberOfCalls(t, "FetchRates", 1)
}

func TestConvertMultipleAmounts_NoRates(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchRates", mock.Anything, "EUR").Return(nil, errors.New("upstream down"))
	conv := newConverter(source)

	results, err := conv.ConvertMultipleAmounts(context.Background(), []domain.Money{
		domain.NewMoney(d("100"), "EUR"),
		domain.NewMoney(d("50"), "USD"),
		domain.NewMoney(d("25"), "GBP"),
	}, "USD")
	assert.ErrorIs(t, err, apperrors.ErrRateUnavailable)
	require.Len(t, results, 3)
	assert.Nil(t, results[0])
	assert.NotNil(t, results[1], "same-currency items convert without a table")
	assert.Nil(t, results[2])
	source.AssertNumberOfCalls(t, "FetchRates", 1)
}

func TestConvertAmount_RoundTripWithinTwoCents(t *testing.T) {
	source := new(MockRateSource)
	source.On("FetchRates", mock.Anything, "EUR").Return(eurRates(), nil).Once()
	conv := newConverter(source)
	ctx := context.Background()
	tolerance := d("0.02")

	for _, amount := range []string{"0.01", "1", "19.99", "118.37", "4567.89"} {
		for _, pair := range [][2]string{{"USD", "INR"}, {"GBP", "USD"}, {"EUR", "GBP"}} {
			there, err := conv.ConvertAmount(ctx, d(amount), pair[0], pair[1])
			require.NoError(t, err)
			back, err := conv.ConvertAmount(ctx, there.ConvertedAmount, pair[1], pair[0])
			require.NoError(t, err)
			diff := back.ConvertedAmount.Sub(d(amount)).Abs()
			assert.True(t, diff.LessThanOrEqual(tolerance), "%s %s->%s came back as %s", amount, pair[0], pair[1], back.ConvertedAmount)
		}
	}
}
