package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) FindAccountByID(_ context.Context, userID, accountID string) (*domain.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok || acc.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (s *Store) ListAccounts(_ context.Context, userID string) ([]domain.BankAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.BankAccount, 0)
	for _, acc := range s.accounts {
		if acc.UserID == userID {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].AccountID < out[j].AccountID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) SaveAccount(_ context.Context, account domain.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	s.accounts[account.AccountID] = account
	return nil
}

// AdjustBalance adds delta to the balance atomically and returns the new balance.
func (s *Store) AdjustBalance(_ context.Context, userID, accountID string, delta decimal.Decimal, now time.Time) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok || acc.UserID != userID {
		return decimal.Zero, fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountID)
	}
	acc.Balance = domain.RoundAmount(acc.Balance.Add(delta))
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = userID
	s.accounts[accountID] = acc
	return acc.Balance, nil
}
