package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType is the kind of bank account a user tracks.
type AccountType string

const (
	Savings      AccountType = "Savings"
	Checking     AccountType = "Checking"
	Cash         AccountType = "Cash"
	OtherAccount AccountType = "Other"
	CreditCard   AccountType = "Credit Card"
	LoanAccount  AccountType = "Loan"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Savings, Checking, Cash, OtherAccount, CreditCard, LoanAccount:
		return true
	}
	return false
}

// IsLiability reports whether balances of this type represent debt.
// Liability balances are stored as negative numbers.
func (t AccountType) IsLiability() bool {
	return t == CreditCard || t == LoanAccount
}

// BankAccount represents a user's account. Balance is in CurrencyCode.
type BankAccount struct {
	AccountID    string          `json:"accountID"`
	UserID       string          `json:"userID"`
	Name         string          `json:"name"`
	BankName     string          `json:"bankName"`
	AccountType  AccountType     `json:"accountType"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	AuditFields
}

// OutstandingDebt returns the absolute balance of a liability account, zero otherwise.
func (a BankAccount) OutstandingDebt() decimal.Decimal {
	if !a.AccountType.IsLiability() || a.Balance.IsPositive() {
		return decimal.Zero
	}
	return a.Balance.Abs()
}
