package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

type IncomeRepositoryFacade interface {
	SaveIncome(ctx context.Context, income domain.Income) error
	FindIncomeByID(ctx context.Context, userID, incomeID string) (*domain.Income, error)
	DeleteIncome(ctx context.Context, userID, incomeID string) error
	UpdateSettlementStatus(ctx context.Context, userID, incomeID string, status domain.SettlementStatus, now time.Time) error
}

type ExpenseRepositoryFacade interface {
	SaveExpense(ctx context.Context, expense domain.Expense) error
	FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error

	// MarkUnpaidExpensesPaid flips every Unpaid expense of the account to Paid,
	// links it to transferID and returns the IDs it changed.
	MarkUnpaidExpensesPaid(ctx context.Context, userID, accountID, transferID string, now time.Time) ([]string, error)

	// RevertExpensesToUnpaid undoes MarkUnpaidExpensesPaid for the given IDs.
	RevertExpensesToUnpaid(ctx context.Context, userID string, expenseIDs []string, now time.Time) error
}

type InvestmentRepositoryFacade interface {
	SaveInvestment(ctx context.Context, investment domain.Investment) error
	FindInvestmentByID(ctx context.Context, userID, investmentID string) (*domain.Investment, error)
	DeleteInvestment(ctx context.Context, userID, investmentID string) error
}

type TransferRepositoryFacade interface {
	SaveTransfer(ctx context.Context, transfer domain.Transfer) error
	FindTransferByID(ctx context.Context, userID, transferID string) (*domain.Transfer, error)
	DeleteTransfer(ctx context.Context, userID, transferID string) error
}
