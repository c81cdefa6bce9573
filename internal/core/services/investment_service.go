package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
)

type investmentService struct {
	*reconciler
	investmentRepo portsrepo.InvestmentRepositoryFacade
}

func newInvestmentService(r *reconciler, repo portsrepo.InvestmentRepositoryFacade) *investmentService {
	return &investmentService{reconciler: r, investmentRepo: repo}
}

var _ portssvc.InvestmentSvcFacade = (*investmentService)(nil)

func (s *investmentService) CreateInvestment(ctx context.Context, userID string, req dto.CreateInvestmentRequest) (*domain.Investment, error) {
	if err := requirePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}

	now := s.now()
	investment := domain.Investment{
		InvestmentID:   s.generateID(),
		UserID:         userID,
		Name:           req.Name,
		InvestmentType: req.InvestmentType,
		Amount:         domain.RoundAmount(req.Amount),
		CurrencyCode:   normalizeCode(req.CurrencyCode),
		AccountID:      req.AccountID,
		InvestmentDate: dateOr(req.Date, now),
		AuditFields:    domain.NewAuditFields(userID, now),
	}

	if _, err := s.createEntry(ctx, s.entry(investment)); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Investment created", slog.String("investment_id", investment.InvestmentID))
	return &investment, nil
}

func (s *investmentService) DeleteInvestment(ctx context.Context, userID, investmentID string) error {
	investment, err := s.investmentRepo.FindInvestmentByID(ctx, userID, investmentID)
	if err != nil {
		return err
	}
	return s.deleteEntry(ctx, s.entry(*investment))
}

func (s *investmentService) entry(investment domain.Investment) ledgerEntry {
	return ledgerEntry{
		userID:        investment.UserID,
		transactionID: investment.InvestmentID,
		txType:        domain.InvestmentTransaction,
		accountID:     investment.AccountID,
		amount:        investment.Amount,
		currency:      investment.CurrencyCode,
		direction:     accounting.Outflow,
		save: func(ctx context.Context) error {
			return s.investmentRepo.SaveInvestment(ctx, investment)
		},
		remove: func(ctx context.Context) error {
			return s.investmentRepo.DeleteInvestment(ctx, investment.UserID, investment.InvestmentID)
		},
	}
}
