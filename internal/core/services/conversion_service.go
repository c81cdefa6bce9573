package services

import (
	"context"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
)

type conversionAuditService struct {
	BaseService
	repo portsrepo.ConversionRepositoryFacade
}

func NewConversionAuditService(repo portsrepo.ConversionRepositoryFacade, opts ...ServiceOption) portssvc.ConversionAuditSvc {
	return &conversionAuditService{BaseService: newBaseService(opts...), repo: repo}
}

func (s *conversionAuditService) GetConversionsForTransaction(ctx context.Context, userID, transactionID string, transactionType domain.TransactionType) ([]domain.TransactionConversion, error) {
	return s.repo.FindConversionsByTransaction(ctx, userID, transactionID, transactionType)
}

func (s *conversionAuditService) ListConversions(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.TransactionConversion, *string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListConversions(ctx, userID, limit, nextToken)
}
