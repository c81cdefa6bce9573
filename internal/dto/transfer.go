package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest moves an amount between two of the user's accounts.
// Amount is stated in the configured reference currency and converted for each side.
type CreateTransferRequest struct {
	TransferType  domain.TransferType `json:"transferType" binding:"required,oneof=Self 'Debt Repayment'"`
	FromAccountID string              `json:"fromAccountID" binding:"required"`
	ToAccountID   string              `json:"toAccountID" binding:"required,nefield=FromAccountID"`
	Amount        decimal.Decimal     `json:"amount"`
	LoanID        string              `json:"loanID"`
	Date          *time.Time          `json:"date"`
	Notes         string              `json:"notes"`
}

// TransferFees are the fee policies shared by the breakdown preview and the committed transfer.
// ExtraFeeCurrency must be the source or the destination currency code.
type TransferFees struct {
	PercentageMarkup decimal.Decimal  `json:"percentageMarkup"`
	FixedMarkupFee   decimal.Decimal  `json:"fixedMarkupFee"`
	ExtraFee         decimal.Decimal  `json:"extraFee"`
	ExtraFeeCurrency string           `json:"extraFeeCurrency"`
	BufferAmount     decimal.Decimal  `json:"bufferAmount"`
	BaseRateOverride *decimal.Decimal `json:"baseRateOverride"`
}

// TransferBreakdownRequest previews an international transfer between two currencies.
type TransferBreakdownRequest struct {
	SourceAmount        decimal.Decimal `json:"sourceAmount"`
	SourceCurrency      string          `json:"sourceCurrency" binding:"required,currency"`
	DestinationCurrency string          `json:"destinationCurrency" binding:"required,currency"`
	TransferFees
}

// InternationalAmountRequest uses the fixed per-unit markup model.
// BaseRate is taken from the market when omitted.
type InternationalAmountRequest struct {
	SourceAmount        decimal.Decimal  `json:"sourceAmount"`
	SourceCurrency      string           `json:"sourceCurrency" binding:"required_without=BaseRate,omitempty,currency"`
	DestinationCurrency string           `json:"destinationCurrency" binding:"required_without=BaseRate,omitempty,currency"`
	BaseRate            *decimal.Decimal `json:"baseRate"`
	FixedMarkupFee      decimal.Decimal  `json:"fixedMarkupFee"`
}

// CreateInternationalTransferRequest commits an international transfer.
// Currencies come from the two accounts.
type CreateInternationalTransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required,nefield=FromAccountID"`
	SourceAmount  decimal.Decimal `json:"sourceAmount"`
	TransferFees
	Date  *time.Time `json:"date"`
	Notes string     `json:"notes"`
}
