package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account owned by userID.
	FindAccountByID(ctx context.Context, userID, accountID string) (*domain.BankAccount, error)

	// ListAccounts retrieves all accounts owned by userID ordered by name.
	ListAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.BankAccount) error

	// AdjustBalance atomically adds delta to the account balance and returns the new balance.
	AdjustBalance(ctx context.Context, userID, accountID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
