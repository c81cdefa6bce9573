package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

func (s *Store) SaveIncome(_ context.Context, income domain.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.incomes[income.IncomeID]; exists {
		return fmt.Errorf("%w: income %s", apperrors.ErrDuplicate, income.IncomeID)
	}
	s.incomes[income.IncomeID] = income
	return nil
}

func (s *Store) FindIncomeByID(_ context.Context, userID, incomeID string) (*domain.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	income, ok := s.incomes[incomeID]
	if !ok || income.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &income, nil
}

func (s *Store) DeleteIncome(_ context.Context, userID, incomeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if income, ok := s.incomes[incomeID]; !ok || income.UserID != userID {
		return fmt.Errorf("%w: income %s", apperrors.ErrNotFound, incomeID)
	}
	delete(s.incomes, incomeID)
	return nil
}

func (s *Store) UpdateSettlementStatus(_ context.Context, userID, incomeID string, status domain.SettlementStatus, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	income, ok := s.incomes[incomeID]
	if !ok || income.UserID != userID {
		return fmt.Errorf("%w: income %s", apperrors.ErrNotFound, incomeID)
	}
	income.SettlementStatus = status
	income.LastUpdatedAt = now
	income.LastUpdatedBy = userID
	s.incomes[incomeID] = income
	return nil
}

func (s *Store) SaveExpense(_ context.Context, expense domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.expenses[expense.ExpenseID]; exists {
		return fmt.Errorf("%w: expense %s", apperrors.ErrDuplicate, expense.ExpenseID)
	}
	s.expenses[expense.ExpenseID] = expense
	return nil
}

func (s *Store) FindExpenseByID(_ context.Context, userID, expenseID string) (*domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expense, ok := s.expenses[expenseID]
	if !ok || expense.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &expense, nil
}

func (s *Store) DeleteExpense(_ context.Context, userID, expenseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expense, ok := s.expenses[expenseID]; !ok || expense.UserID != userID {
		return fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
	}
	delete(s.expenses, expenseID)
	return nil
}

// MarkUnpaidExpensesPaid settles every unpaid expense charged to the account
// and returns the IDs it changed.
func (s *Store) MarkUnpaidExpensesPaid(_ context.Context, userID, accountID, transferID string, now time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0)
	for id, e := range s.expenses {
		if e.UserID != userID || e.AccountID != accountID || e.PaymentStatus != domain.Unpaid {
			continue
		}
		e.PaymentStatus = domain.Paid
		e.TransferID = transferID
		e.LastUpdatedAt = now
		e.LastUpdatedBy = userID
		s.expenses[id] = e
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Store) RevertExpensesToUnpaid(_ context.Context, userID string, expenseIDs []string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range expenseIDs {
		e, ok := s.expenses[id]
		if !ok || e.UserID != userID {
			continue
		}
		e.PaymentStatus = domain.Unpaid
		e.TransferID = ""
		e.LastUpdatedAt = now
		e.LastUpdatedBy = userID
		s.expenses[id] = e
	}
	return nil
}

func (s *Store) SaveInvestment(_ context.Context, investment domain.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.investments[investment.InvestmentID]; exists {
		return fmt.Errorf("%w: investment %s", apperrors.ErrDuplicate, investment.InvestmentID)
	}
	s.investments[investment.InvestmentID] = investment
	return nil
}

func (s *Store) FindInvestmentByID(_ context.Context, userID, investmentID string) (*domain.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.investments[investmentID]
	if !ok || inv.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &inv, nil
}

func (s *Store) DeleteInvestment(_ context.Context, userID, investmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inv, ok := s.investments[investmentID]; !ok || inv.UserID != userID {
		return fmt.Errorf("%w: investment %s", apperrors.ErrNotFound, investmentID)
	}
	delete(s.investments, investmentID)
	return nil
}

func (s *Store) SaveTransfer(_ context.Context, transfer domain.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transfers[transfer.TransferID]; exists {
		return fmt.Errorf("%w: transfer %s", apperrors.ErrDuplicate, transfer.TransferID)
	}
	s.transfers[transfer.TransferID] = transfer
	return nil
}

func (s *Store) FindTransferByID(_ context.Context, userID, transferID string) (*domain.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transfers[transferID]
	if !ok || t.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (s *Store) DeleteTransfer(_ context.Context, userID, transferID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.transfers[transferID]; !ok || t.UserID != userID {
		return fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, transferID)
	}
	delete(s.transfers, transferID)
	return nil
}

// ExpensesForTransfer returns the expenses linked to a transfer. Used by tests.
func (s *Store) ExpensesForTransfer(transferID string) []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Expense, 0)
	for _, e := range s.expenses {
		if e.TransferID == transferID {
			out = append(out, e)
		}
	}
	return out
}
