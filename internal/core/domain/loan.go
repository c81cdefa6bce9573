package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrLoanClosed           = errors.New("loan is already closed")
	ErrNonPositiveRepayment = errors.New("repayment amount must be positive")
)

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanActive LoanStatus = "Active"
	LoanClosed LoanStatus = "Closed"
)

// Loan is money borrowed by the user. RemainingBalance starts at PrincipalAmount,
// never increases, and Status becomes Closed exactly when it reaches zero.
type Loan struct {
	LoanID           string          `json:"loanID"`
	UserID           string          `json:"userID"`
	Lender           string          `json:"lender"`
	PrincipalAmount  decimal.Decimal `json:"principalAmount"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
	CurrencyCode     string          `json:"currencyCode"`
	Status           LoanStatus      `json:"status"`
	LinkedAccountID  string          `json:"linkedAccountID,omitempty"`
	LoanIncomeID     string          `json:"loanIncomeID,omitempty"`
	StartDate        time.Time       `json:"startDate"`
	AuditFields
}

// ApplyRepayment decrements the remaining balance, floored at zero, and closes
// the loan when it reaches zero. It reports whether this repayment closed the loan.
func (l *Loan) ApplyRepayment(amount decimal.Decimal) (bool, error) {
	if l.Status == LoanClosed {
		return false, ErrLoanClosed
	}
	if !amount.IsPositive() {
		return false, ErrNonPositiveRepayment
	}

	remaining := l.RemainingBalance.Sub(amount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	l.RemainingBalance = remaining

	if remaining.IsZero() {
		l.Status = LoanClosed
		return true, nil
	}
	return false, nil
}

// LoanRepayment is the ledger entry for a single repayment.
type LoanRepayment struct {
	RepaymentID   string          `json:"repaymentID"`
	UserID        string          `json:"userID"`
	LoanID        string          `json:"loanID"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	TransferID    string          `json:"transferID,omitempty"`
	RepaymentDate time.Time       `json:"repaymentDate"`
	AuditFields
}

// LoanRepaymentResult is everything a repayment produced.
type LoanRepaymentResult struct {
	Loan      Loan          `json:"loan"`
	Repayment LoanRepayment `json:"repayment"`
	Expense   Expense       `json:"expense"`
	Closed    bool          `json:"closed"`
}
