package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account owned by userID.
	GetAccountByID(ctx context.Context, userID, accountID string) (*domain.BankAccount, error)

	// ListAccounts retrieves every account owned by userID.
	ListAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account. Liability opening balances are stored negative.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.BankAccount, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
