package dto

import (
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// OpeningBalance is entered as a positive number for every account type;
// liability accounts store it negated.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	BankName       string             `json:"bankName"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=Savings Checking Cash Other 'Credit Card' Loan"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,currency"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Name          string             `json:"name"`
	BankName      string             `json:"bankName"`
	AccountType   domain.AccountType `json:"accountType"`
	CurrencyCode  string             `json:"currencyCode"`
	Balance       decimal.Decimal    `json:"balance"`
	Outstanding   decimal.Decimal    `json:"outstanding"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.BankAccount to AccountResponse DTO
func ToAccountResponse(acc *domain.BankAccount) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		BankName:      acc.BankName,
		AccountType:   acc.AccountType,
		CurrencyCode:  acc.CurrencyCode,
		Balance:       acc.Balance,
		Outstanding:   acc.OutstandingDebt(),
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.BankAccount to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.BankAccount) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
