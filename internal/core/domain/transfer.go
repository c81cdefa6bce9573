package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExtraFeeCurrency says which side of a transfer an extra fee is stated in.
type ExtraFeeCurrency string

const (
	FeeInSource      ExtraFeeCurrency = "source"
	FeeInDestination ExtraFeeCurrency = "destination"
)

// TransferBreakdown is the itemized economics of one international transfer.
// Monetary fields are in DestinationCurrency unless named otherwise.
type TransferBreakdown struct {
	SourceAmount           decimal.Decimal `json:"sourceAmount"`
	SourceCurrency         string          `json:"sourceCurrency"`
	DestinationCurrency    string          `json:"destinationCurrency"`
	BaseExchangeRate       decimal.Decimal `json:"baseExchangeRate"`
	EffectiveExchangeRate  decimal.Decimal `json:"effectiveExchangeRate"`
	ConvertedAmount        decimal.Decimal `json:"convertedAmount"`
	PercentageMarkupAmount decimal.Decimal `json:"percentageMarkupAmount"`
	FixedMarkupFee         decimal.Decimal `json:"fixedMarkupFee"`
	ExtraFeeConverted      decimal.Decimal `json:"extraFeeConverted"`
	BufferAmount           decimal.Decimal `json:"bufferAmount"`
	TotalFees              decimal.Decimal `json:"totalFees"`
	TotalDestinationAmount decimal.Decimal `json:"totalDestinationAmount"`
	IsValid                bool            `json:"isValid"`
	ErrorMessage           string          `json:"errorMessage,omitempty"`
}

// InternationalTransferAmount is the result of the fixed per-unit markup model.
type InternationalTransferAmount struct {
	SourceAmount      decimal.Decimal `json:"sourceAmount"`
	BaseExchangeRate  decimal.Decimal `json:"baseExchangeRate"`
	FixedMarkupFee    decimal.Decimal `json:"fixedMarkupFee"`
	EffectiveRate     decimal.Decimal `json:"effectiveRate"`
	DestinationAmount decimal.Decimal `json:"destinationAmount"`
	IsValid           bool            `json:"isValid"`
	ErrorMessage      string          `json:"errorMessage,omitempty"`
}

// TransferType distinguishes the transfer flows offered by the UI.
type TransferType string

const (
	SelfTransfer          TransferType = "Self"
	DebtRepaymentTransfer TransferType = "Debt Repayment"
	InternationalTransfer TransferType = "International"
)

// Transfer is the ledger entry explaining a pair of balance movements.
// SourceDebit is in the source account's currency and DestinationCredit in the destination's.
type Transfer struct {
	TransferID        string          `json:"transferID"`
	UserID            string          `json:"userID"`
	TransferType      TransferType    `json:"transferType"`
	FromAccountID     string          `json:"fromAccountID"`
	ToAccountID       string          `json:"toAccountID"`
	Amount            decimal.Decimal `json:"amount"`
	CurrencyCode      string          `json:"currencyCode"`
	SourceDebit       decimal.Decimal `json:"sourceDebit"`
	DestinationCredit decimal.Decimal `json:"destinationCredit"`
	TotalFees         decimal.Decimal `json:"totalFees"`
	LoanID            string          `json:"loanID,omitempty"`
	TransferDate      time.Time       `json:"transferDate"`
	Notes             string          `json:"notes"`
	AuditFields
}
