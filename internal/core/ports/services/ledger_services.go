package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
)

// IncomeSvcFacade creates and deletes incomes, keeping the linked account balance in step.
type IncomeSvcFacade interface {
	CreateIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (*domain.Income, error)
	DeleteIncome(ctx context.Context, userID, incomeID string) error
}

// ExpenseSvcFacade creates and deletes expenses, keeping the linked account balance in step.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// InvestmentSvcFacade creates and deletes investments, keeping the linked account balance in step.
type InvestmentSvcFacade interface {
	CreateInvestment(ctx context.Context, userID string, req dto.CreateInvestmentRequest) (*domain.Investment, error)
	DeleteInvestment(ctx context.Context, userID, investmentID string) error
}

type LoanSvcFacade interface {
	// CreateLoan records the loan, credits the linked account and creates the loan income.
	CreateLoan(ctx context.Context, userID string, req dto.CreateLoanRequest) (*domain.Loan, error)

	// RepayLoan applies a manual repayment and debits the linked account.
	RepayLoan(ctx context.Context, userID, loanID string, req dto.RepayLoanRequest) (*domain.LoanRepaymentResult, error)
}

type TransferSvcFacade interface {
	// CreateTransfer moves an amount stated in the reference currency between two accounts.
	CreateTransfer(ctx context.Context, userID string, req dto.CreateTransferRequest) (*domain.Transfer, error)

	// CreateInternationalTransfer debits the source and credits the destination per the fee breakdown.
	CreateInternationalTransfer(ctx context.Context, userID string, req dto.CreateInternationalTransferRequest) (*domain.Transfer, error)

	// PreviewBreakdown computes the breakdown without touching any balance.
	PreviewBreakdown(ctx context.Context, req dto.TransferBreakdownRequest) (*domain.TransferBreakdown, error)

	// CalculateInternationalAmount applies the fixed per-unit markup model.
	CalculateInternationalAmount(ctx context.Context, req dto.InternationalAmountRequest) (*domain.InternationalTransferAmount, error)
}
