package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
)

type incomeService struct {
	*reconciler
	incomeRepo portsrepo.IncomeRepositoryFacade
}

func newIncomeService(r *reconciler, repo portsrepo.IncomeRepositoryFacade) *incomeService {
	return &incomeService{reconciler: r, incomeRepo: repo}
}

var _ portssvc.IncomeSvcFacade = (*incomeService)(nil)

func (s *incomeService) CreateIncome(ctx context.Context, userID string, req dto.CreateIncomeRequest) (*domain.Income, error) {
	if err := requirePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}

	now := s.now()
	income := domain.Income{
		IncomeID:     s.generateID(),
		UserID:       userID,
		Source:       req.Source,
		Amount:       domain.RoundAmount(req.Amount),
		CurrencyCode: normalizeCode(req.CurrencyCode),
		AccountID:    req.AccountID,
		Category:     req.Category,
		IncomeDate:   dateOr(req.Date, now),
		AuditFields:  domain.NewAuditFields(userID, now),
	}

	if _, err := s.createEntry(ctx, s.entry(income)); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Income created", slog.String("income_id", income.IncomeID))
	return &income, nil
}

func (s *incomeService) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	income, err := s.incomeRepo.FindIncomeByID(ctx, userID, incomeID)
	if err != nil {
		return err
	}
	// The loan owns its income; repayments settle it when the loan closes.
	if income.IsLoanIncome {
		return apperrors.NewValidationError("loan income " + incomeID + " is managed by its loan and cannot be deleted")
	}
	if err := s.deleteEntry(ctx, s.entry(*income)); err != nil {
		return err
	}
	s.LogInfo(ctx, "Income deleted", slog.String("income_id", incomeID))
	return nil
}

func (s *incomeService) entry(income domain.Income) ledgerEntry {
	return ledgerEntry{
		userID:        income.UserID,
		transactionID: income.IncomeID,
		txType:        domain.IncomeTransaction,
		accountID:     income.AccountID,
		amount:        income.Amount,
		currency:      income.CurrencyCode,
		direction:     accounting.Inflow,
		save: func(ctx context.Context) error {
			return s.incomeRepo.SaveIncome(ctx, income)
		},
		remove: func(ctx context.Context) error {
			return s.incomeRepo.DeleteIncome(ctx, income.UserID, income.IncomeID)
		},
	}
}
