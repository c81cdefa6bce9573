package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

func (s *Store) SaveLoan(_ context.Context, loan domain.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.loans[loan.LoanID]; exists {
		return fmt.Errorf("%w: loan %s", apperrors.ErrDuplicate, loan.LoanID)
	}
	s.loans[loan.LoanID] = loan
	return nil
}

func (s *Store) FindLoanByID(_ context.Context, userID, loanID string) (*domain.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	loan, ok := s.loans[loanID]
	if !ok || loan.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &loan, nil
}

func (s *Store) UpdateLoan(_ context.Context, loan domain.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.loans[loan.LoanID]
	if !ok || existing.UserID != loan.UserID {
		return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loan.LoanID)
	}
	s.loans[loan.LoanID] = loan
	return nil
}

func (s *Store) DeleteLoan(_ context.Context, userID, loanID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loan, ok := s.loans[loanID]; !ok || loan.UserID != userID {
		return fmt.Errorf("%w: loan %s", apperrors.ErrNotFound, loanID)
	}
	delete(s.loans, loanID)
	return nil
}

func (s *Store) SaveLoanRepayment(_ context.Context, repayment domain.LoanRepayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.repayments[repayment.RepaymentID]; exists {
		return fmt.Errorf("%w: repayment %s", apperrors.ErrDuplicate, repayment.RepaymentID)
	}
	s.repayments[repayment.RepaymentID] = repayment
	return nil
}

func (s *Store) DeleteLoanRepayment(_ context.Context, userID, repaymentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.repayments[repaymentID]; !ok || r.UserID != userID {
		return fmt.Errorf("%w: repayment %s", apperrors.ErrNotFound, repaymentID)
	}
	delete(s.repayments, repaymentID)
	return nil
}

// Repayments returns the repayments recorded against a loan. Used by tests.
func (s *Store) Repayments(loanID string) []domain.LoanRepayment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.LoanRepayment, 0)
	for _, r := range s.repayments {
		if r.LoanID == loanID {
			out = append(out, r)
		}
	}
	return out
}
