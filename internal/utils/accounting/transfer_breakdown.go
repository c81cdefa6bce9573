package accounting

import (
	"fmt"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BreakdownInput holds the fee policies of one international transfer.
// PercentageMarkup is a percentage (2 means 2%). FixedMarkupFee and BufferAmount
// are in the destination currency. ExtraFee is in the currency named by ExtraFeeCurrency.
type BreakdownInput struct {
	SourceAmount        decimal.Decimal
	SourceCurrency      string
	DestinationCurrency string
	BaseRate            decimal.Decimal
	PercentageMarkup    decimal.Decimal
	FixedMarkupFee      decimal.Decimal
	ExtraFee            decimal.Decimal
	ExtraFeeCurrency    domain.ExtraFeeCurrency
	BufferAmount        decimal.Decimal
}

func (in BreakdownInput) validate() string {
	switch {
	case !in.SourceAmount.IsPositive():
		return "Source amount must be greater than zero"
	case !in.BaseRate.IsPositive():
		return "Exchange rate must be greater than zero"
	case in.PercentageMarkup.IsNegative(), in.FixedMarkupFee.IsNegative(),
		in.ExtraFee.IsNegative(), in.BufferAmount.IsNegative():
		return "Fees and buffer amount must not be negative"
	}
	return ""
}

func invalidBreakdown(in BreakdownInput, msg string) domain.TransferBreakdown {
	return domain.TransferBreakdown{
		SourceAmount:           decimal.Zero,
		SourceCurrency:         in.SourceCurrency,
		DestinationCurrency:    in.DestinationCurrency,
		BaseExchangeRate:       decimal.Zero,
		EffectiveExchangeRate:  decimal.Zero,
		ConvertedAmount:        decimal.Zero,
		PercentageMarkupAmount: decimal.Zero,
		FixedMarkupFee:         decimal.Zero,
		ExtraFeeConverted:      decimal.Zero,
		BufferAmount:           decimal.Zero,
		TotalFees:              decimal.Zero,
		TotalDestinationAmount: decimal.Zero,
		IsValid:                false,
		ErrorMessage:           msg,
	}
}

// CalculateCompleteTransferBreakdown itemizes the destination amount of an
// international transfer. It never fails: invalid input yields a breakdown with
// IsValid false, zeroed amounts and an ErrorMessage.
//
// Each component is rounded to 2 places before the totals are summed, so the
// totals always equal the sum of the displayed components. The extra fee is only
// normalized between the transfer's own two currencies, using the base rate.
func CalculateCompleteTransferBreakdown(in BreakdownInput) domain.TransferBreakdown {
	if msg := in.validate(); msg != "" {
		return invalidBreakdown(in, msg)
	}

	converted := domain.RoundAmount(in.SourceAmount.Mul(in.BaseRate))
	percentage := domain.RoundAmount(converted.Mul(in.PercentageMarkup).Div(hundred))
	fixed := domain.RoundAmount(in.FixedMarkupFee)
	effective := domain.RoundRate(in.BaseRate.Add(in.FixedMarkupFee.Div(in.SourceAmount)))
	buffer := domain.RoundAmount(in.BufferAmount)

	extra := in.ExtraFee
	if in.ExtraFeeCurrency == domain.FeeInSource {
		extra = extra.Mul(in.BaseRate)
	}
	extra = domain.RoundAmount(extra)

	totalFees := percentage.Add(fixed).Add(extra)

	return domain.TransferBreakdown{
		SourceAmount:           domain.RoundAmount(in.SourceAmount),
		SourceCurrency:         in.SourceCurrency,
		DestinationCurrency:    in.DestinationCurrency,
		BaseExchangeRate:       domain.RoundRate(in.BaseRate),
		EffectiveExchangeRate:  effective,
		ConvertedAmount:        converted,
		PercentageMarkupAmount: percentage,
		FixedMarkupFee:         fixed,
		ExtraFeeConverted:      extra,
		BufferAmount:           buffer,
		TotalFees:              totalFees,
		TotalDestinationAmount: converted.Add(totalFees).Add(buffer),
		IsValid:                true,
	}
}

// ExtraFeeInSourceCurrency returns the part of the extra fee charged on the
// source side, which is added to the source debit.
func ExtraFeeInSourceCurrency(in BreakdownInput) decimal.Decimal {
	if in.ExtraFeeCurrency != domain.FeeInSource {
		return decimal.Zero
	}
	return domain.RoundAmount(in.ExtraFee)
}

// ResolveExtraFeeCurrency maps the UI's extra fee currency onto the side of the
// transfer it belongs to. It accepts "source", "destination" or one of the two
// currency codes; empty means destination. A third currency is rejected because
// the fee could not be normalized.
func ResolveExtraFeeCurrency(code, sourceCurrency, destinationCurrency string) (domain.ExtraFeeCurrency, error) {
	c := strings.TrimSpace(code)
	switch {
	case c == "", strings.EqualFold(c, string(domain.FeeInDestination)):
		return domain.FeeInDestination, nil
	case strings.EqualFold(c, string(domain.FeeInSource)), strings.EqualFold(c, sourceCurrency):
		return domain.FeeInSource, nil
	case strings.EqualFold(c, destinationCurrency):
		return domain.FeeInDestination, nil
	}
	return "", apperrors.NewValidationError(
		fmt.Sprintf("extra fee currency %s must be %s or %s", c, sourceCurrency, destinationCurrency))
}

// CalculateInternationalTransferAmount applies a fixed markup added directly to
// the rate: destination = source × (baseRate + fixedMarkupFee). The markup may
// not exceed the base rate itself.
func CalculateInternationalTransferAmount(sourceAmount, baseRate, fixedMarkupFee decimal.Decimal) domain.InternationalTransferAmount {
	invalid := func(msg string) domain.InternationalTransferAmount {
		return domain.InternationalTransferAmount{
			SourceAmount:      decimal.Zero,
			BaseExchangeRate:  decimal.Zero,
			FixedMarkupFee:    decimal.Zero,
			EffectiveRate:     decimal.Zero,
			DestinationAmount: decimal.Zero,
			ErrorMessage:      msg,
		}
	}

	switch {
	case !sourceAmount.IsPositive():
		return invalid("Source amount must be greater than zero")
	case !baseRate.IsPositive():
		return invalid("Exchange rate must be greater than zero")
	case fixedMarkupFee.IsNegative():
		return invalid("Markup fee must not be negative")
	case fixedMarkupFee.GreaterThan(baseRate):
		return invalid(fmt.Sprintf("Markup fee (%s) cannot exceed the exchange rate (%s)", fixedMarkupFee, baseRate))
	}

	effective := baseRate.Add(fixedMarkupFee)
	return domain.InternationalTransferAmount{
		SourceAmount:      domain.RoundAmount(sourceAmount),
		BaseExchangeRate:  domain.RoundRate(baseRate),
		FixedMarkupFee:    domain.RoundRate(fixedMarkupFee),
		EffectiveRate:     domain.RoundRate(effective),
		DestinationAmount: domain.RoundAmount(sourceAmount.Mul(effective)),
		IsValid:           true,
	}
}

// CalculateInternationalTransferAmountWithMarkup is the fail-fast form of
// CalculateInternationalTransferAmount. Invalid input returns an error wrapping
// apperrors.ErrValidation.
func CalculateInternationalTransferAmountWithMarkup(sourceAmount, baseRate, fixedMarkupFee decimal.Decimal) (decimal.Decimal, error) {
	res := CalculateInternationalTransferAmount(sourceAmount, baseRate, fixedMarkupFee)
	if !res.IsValid {
		return decimal.Zero, apperrors.NewValidationError(res.ErrorMessage)
	}
	return res.DestinationAmount, nil
}
