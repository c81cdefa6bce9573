package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIncomeRequest defines the data needed to record an income.
// Amount is in CurrencyCode, which may differ from the linked account's currency.
type CreateIncomeRequest struct {
	Source       string          `json:"source" binding:"required"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currency"`
	AccountID    string          `json:"accountID"`
	Category     string          `json:"category"`
	Date         *time.Time      `json:"date"`
}

// CreateExpenseRequest defines the data needed to record an expense.
// PaymentStatus defaults to Unpaid for credit card accounts and Paid otherwise.
type CreateExpenseRequest struct {
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode" binding:"required,currency"`
	AccountID     string          `json:"accountID"`
	Category      string          `json:"category"`
	PaymentStatus string          `json:"paymentStatus" binding:"omitempty,oneof=Paid Unpaid"`
	Date          *time.Time      `json:"date"`
}

type CreateInvestmentRequest struct {
	Name           string          `json:"name" binding:"required"`
	InvestmentType string          `json:"investmentType" binding:"required"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   string          `json:"currencyCode" binding:"required,currency"`
	AccountID      string          `json:"accountID"`
	Date           *time.Time      `json:"date"`
}

// CreateLoanRequest defines a loan disbursement.
type CreateLoanRequest struct {
	Lender          string          `json:"lender" binding:"required"`
	PrincipalAmount decimal.Decimal `json:"principalAmount"`
	CurrencyCode    string          `json:"currencyCode" binding:"required,currency"`
	LinkedAccountID string          `json:"linkedAccountID"`
	StartDate       *time.Time      `json:"startDate"`
}

// RepayLoanRequest defines a manual repayment. Amount is in the loan's currency.
type RepayLoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   *time.Time      `json:"date"`
}
