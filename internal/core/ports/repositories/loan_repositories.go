package repositories

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

type LoanRepositoryFacade interface {
	SaveLoan(ctx context.Context, loan domain.Loan) error
	FindLoanByID(ctx context.Context, userID, loanID string) (*domain.Loan, error)
	// UpdateLoan overwrites remaining balance, status and the income link.
	UpdateLoan(ctx context.Context, loan domain.Loan) error
	DeleteLoan(ctx context.Context, userID, loanID string) error
}

type LoanRepaymentRepositoryFacade interface {
	SaveLoanRepayment(ctx context.Context, repayment domain.LoanRepayment) error
	DeleteLoanRepayment(ctx context.Context, userID, repaymentID string) error
}
