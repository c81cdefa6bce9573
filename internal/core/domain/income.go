package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementStatus tracks whether the loan behind a loan income has been repaid.
type SettlementStatus string

const (
	NotSettled SettlementStatus = "Not Settled"
	Settled    SettlementStatus = "Settled"
)

// LoanIncomeCategory is the category given to the income created by a loan disbursement.
const LoanIncomeCategory = "Loan"

// Income is money received into an optional account.
type Income struct {
	IncomeID         string           `json:"incomeID"`
	UserID           string           `json:"userID"`
	Source           string           `json:"source"`
	Amount           decimal.Decimal  `json:"amount"`
	CurrencyCode     string           `json:"currencyCode"`
	AccountID        string           `json:"accountID,omitempty"`
	Category         string           `json:"category"`
	IsLoanIncome     bool             `json:"isLoanIncome"`
	LoanID           string           `json:"loanID,omitempty"`
	SettlementStatus SettlementStatus `json:"settlementStatus,omitempty"`
	IncomeDate       time.Time        `json:"incomeDate"`
	AuditFields
}
