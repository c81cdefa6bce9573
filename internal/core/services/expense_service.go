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

type expenseService struct {
	*reconciler
	expenseRepo portsrepo.ExpenseRepositoryFacade
}

func newExpenseService(r *reconciler, repo portsrepo.ExpenseRepositoryFacade) *expenseService {
	return &expenseService{reconciler: r, expenseRepo: repo}
}

var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, userID string, req dto.CreateExpenseRequest) (*domain.Expense, error) {
	if err := requirePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}
	if req.Category == domain.LoanRepaymentCategory {
		return nil, apperrors.NewValidationError("category " + req.Category + " is reserved for loan repayments")
	}

	status := domain.PaymentStatus(req.PaymentStatus)
	if status == "" {
		status = domain.Paid
		// Card spending stays unpaid until a debt repayment settles the card.
		if req.AccountID != "" {
			account, err := s.loadAccount(ctx, userID, req.AccountID)
			if err != nil {
				return nil, err
			}
			if account.AccountType == domain.CreditCard {
				status = domain.Unpaid
			}
		}
	}

	now := s.now()
	expense := domain.Expense{
		ExpenseID:     s.generateID(),
		UserID:        userID,
		Description:   req.Description,
		Amount:        domain.RoundAmount(req.Amount),
		CurrencyCode:  normalizeCode(req.CurrencyCode),
		AccountID:     req.AccountID,
		Category:      req.Category,
		PaymentStatus: status,
		ExpenseDate:   dateOr(req.Date, now),
		AuditFields:   domain.NewAuditFields(userID, now),
	}

	if _, err := s.createEntry(ctx, s.entry(expense)); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Expense created", slog.String("expense_id", expense.ExpenseID))
	return &expense, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if expense.Category == domain.LoanRepaymentCategory {
		return apperrors.NewValidationError("expense " + expenseID + " records a loan repayment and cannot be deleted")
	}
	if err := s.deleteEntry(ctx, s.entry(*expense)); err != nil {
		return err
	}
	s.LogInfo(ctx, "Expense deleted", slog.String("expense_id", expenseID))
	return nil
}

func (s *expenseService) entry(expense domain.Expense) ledgerEntry {
	return ledgerEntry{
		userID:        expense.UserID,
		transactionID: expense.ExpenseID,
		txType:        domain.ExpenseTransaction,
		accountID:     expense.AccountID,
		amount:        expense.Amount,
		currency:      expense.CurrencyCode,
		direction:     accounting.Outflow,
		save: func(ctx context.Context) error {
			return s.expenseRepo.SaveExpense(ctx, expense)
		},
		remove: func(ctx context.Context) error {
			return s.expenseRepo.DeleteExpense(ctx, expense.UserID, expense.ExpenseID)
		},
	}
}
