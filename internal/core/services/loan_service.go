package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/saga"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type loanService struct {
	*reconciler
	loanRepo      portsrepo.LoanRepositoryFacade
	repaymentRepo portsrepo.LoanRepaymentRepositoryFacade
	incomeRepo    portsrepo.IncomeRepositoryFacade
	expenseRepo   portsrepo.ExpenseRepositoryFacade
}

func newLoanService(r *reconciler, repos portsrepo.RepositoryProvider) *loanService {
	return &loanService{
		reconciler:    r,
		loanRepo:      repos.LoanRepo,
		repaymentRepo: repos.LoanRepaymentRepo,
		incomeRepo:    repos.IncomeRepo,
		expenseRepo:   repos.ExpenseRepo,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// CreateLoan records the loan. With a linked account the principal is credited
// to it and a Not Settled loan income explains the credit.
func (s *loanService) CreateLoan(ctx context.Context, userID string, req dto.CreateLoanRequest) (*domain.Loan, error) {
	if err := requirePositive(req.PrincipalAmount, "principal amount"); err != nil {
		return nil, err
	}

	now := s.now()
	principal := domain.RoundAmount(req.PrincipalAmount)
	loan := domain.Loan{
		LoanID:           s.generateID(),
		UserID:           userID,
		Lender:           req.Lender,
		PrincipalAmount:  principal,
		RemainingBalance: principal,
		CurrencyCode:     normalizeCode(req.CurrencyCode),
		Status:           domain.LoanActive,
		LinkedAccountID:  req.LinkedAccountID,
		StartDate:        dateOr(req.StartDate, now),
		AuditFields:      domain.NewAuditFields(userID, now),
	}

	sg := saga.New("create_loan", s.GetLogger(ctx))

	if loan.LinkedAccountID == "" {
		sg.AddStep(recordStep("save_loan",
			func(ctx context.Context) error { return s.loanRepo.SaveLoan(ctx, loan) },
			func(ctx context.Context) error { return s.loanRepo.DeleteLoan(ctx, userID, loan.LoanID) }))
	} else {
		account, err := s.loadAccount(ctx, userID, loan.LinkedAccountID)
		if err != nil {
			return nil, err
		}
		conv, err := s.convertForAccount(ctx, principal, loan.CurrencyCode, account)
		if err != nil {
			return nil, err
		}

		income := domain.Income{
			IncomeID:         s.generateID(),
			UserID:           userID,
			Source:           "Loan from " + loan.Lender,
			Amount:           principal,
			CurrencyCode:     loan.CurrencyCode,
			AccountID:        account.AccountID,
			Category:         domain.LoanIncomeCategory,
			IsLoanIncome:     true,
			LoanID:           loan.LoanID,
			SettlementStatus: domain.NotSettled,
			IncomeDate:       loan.StartDate,
			AuditFields:      domain.NewAuditFields(userID, now),
		}
		loan.LoanIncomeID = income.IncomeID

		sg.Steps(
			recordStep("save_loan",
				func(ctx context.Context) error { return s.loanRepo.SaveLoan(ctx, loan) },
				func(ctx context.Context) error { return s.loanRepo.DeleteLoan(ctx, userID, loan.LoanID) }),
			s.adjustBalanceStep("credit_linked_account", userID, account.AccountID,
				accounting.SignedDelta(conv.ConvertedAmount, accounting.Inflow)),
			recordStep("save_loan_income",
				func(ctx context.Context) error { return s.incomeRepo.SaveIncome(ctx, income) },
				func(ctx context.Context) error { return s.incomeRepo.DeleteIncome(ctx, userID, income.IncomeID) }),
			s.saveConversionStep(userID, income.IncomeID, domain.IncomeTransaction, *conv),
		)
	}

	if err := sg.Execute(ctx); err != nil {
		s.LogError(ctx, err, "Failed to create loan", slog.String("loan_id", loan.LoanID))
		return nil, err
	}
	s.LogInfo(ctx, "Loan created", slog.String("loan_id", loan.LoanID), slog.String("principal", principal.String()))
	return &loan, nil
}

func (s *loanService) RepayLoan(ctx context.Context, userID, loanID string, req dto.RepayLoanRequest) (*domain.LoanRepaymentResult, error) {
	if err := requirePositive(req.Amount, "repayment amount"); err != nil {
		return nil, err
	}
	loan, err := s.loanRepo.FindLoanByID(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}

	steps, result, err := s.repaymentSteps(ctx, repaymentParams{
		userID:       userID,
		loan:         *loan,
		amount:       domain.RoundAmount(req.Amount),
		date:         dateOr(req.Date, s.now()),
		debitAccount: true,
	})
	if err != nil {
		return nil, err
	}

	if err := saga.New("repay_loan", s.GetLogger(ctx)).Steps(steps...).Execute(ctx); err != nil {
		s.LogError(ctx, err, "Failed to repay loan", slog.String("loan_id", loanID))
		return nil, err
	}
	s.LogInfo(ctx, "Loan repayment recorded",
		slog.String("loan_id", loanID),
		slog.String("remaining", result.Loan.RemainingBalance.String()),
		slog.Bool("closed", result.Closed))
	return result, nil
}

type repaymentParams struct {
	userID string
	loan   domain.Loan
	// amount is in the loan's currency.
	amount     decimal.Decimal
	date       time.Time
	transferID string
	// debitAccount is false when a transfer already moved the money.
	debitAccount bool
}

// repaymentSteps builds the saga steps of one repayment without running them,
// so a transfer can append them to its own saga.
func (s *loanService) repaymentSteps(ctx context.Context, p repaymentParams) ([]saga.Step, *domain.LoanRepaymentResult, error) {
	previous := p.loan
	updated := p.loan
	closed, err := updated.ApplyRepayment(p.amount)
	if err != nil {
		if errors.Is(err, domain.ErrLoanClosed) || errors.Is(err, domain.ErrNonPositiveRepayment) {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		return nil, nil, err
	}
	now := s.now()
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = p.userID

	repayment := domain.LoanRepayment{
		RepaymentID:   s.generateID(),
		UserID:        p.userID,
		LoanID:        p.loan.LoanID,
		Amount:        p.amount,
		CurrencyCode:  p.loan.CurrencyCode,
		TransferID:    p.transferID,
		RepaymentDate: p.date,
		AuditFields:   domain.NewAuditFields(p.userID, now),
	}
	expense := domain.Expense{
		ExpenseID:     s.generateID(),
		UserID:        p.userID,
		Description:   "Loan repayment to " + p.loan.Lender,
		Amount:        p.amount,
		CurrencyCode:  p.loan.CurrencyCode,
		Category:      domain.LoanRepaymentCategory,
		PaymentStatus: domain.Paid,
		TransferID:    p.transferID,
		ExpenseDate:   p.date,
		AuditFields:   domain.NewAuditFields(p.userID, now),
	}

	var debit []saga.Step
	if p.debitAccount && p.loan.LinkedAccountID != "" {
		account, err := s.loadAccount(ctx, p.userID, p.loan.LinkedAccountID)
		if err != nil {
			return nil, nil, err
		}
		conv, err := s.convertForAccount(ctx, p.amount, p.loan.CurrencyCode, account)
		if err != nil {
			return nil, nil, err
		}
		// The expense names the account that paid.
		expense.AccountID = account.AccountID
		debit = append(debit,
			s.adjustBalanceStep("debit_linked_account", p.userID, account.AccountID,
				accounting.SignedDelta(conv.ConvertedAmount, accounting.Outflow)),
			s.saveConversionStep(p.userID, expense.ExpenseID, domain.ExpenseTransaction, *conv),
		)
	}

	steps := []saga.Step{
		recordStep("update_loan",
			func(ctx context.Context) error { return s.loanRepo.UpdateLoan(ctx, updated) },
			func(ctx context.Context) error { return s.loanRepo.UpdateLoan(ctx, previous) }),
		recordStep("save_repayment",
			func(ctx context.Context) error { return s.repaymentRepo.SaveLoanRepayment(ctx, repayment) },
			func(ctx context.Context) error {
				return s.repaymentRepo.DeleteLoanRepayment(ctx, p.userID, repayment.RepaymentID)
			}),
		recordStep("save_repayment_expense",
			func(ctx context.Context) error { return s.expenseRepo.SaveExpense(ctx, expense) },
			func(ctx context.Context) error { return s.expenseRepo.DeleteExpense(ctx, p.userID, expense.ExpenseID) }),
	}
	steps = append(steps, debit...)

	if closed && p.loan.LoanIncomeID != "" {
		incomeID := p.loan.LoanIncomeID
		steps = append(steps, recordStep("settle_loan_income",
			func(ctx context.Context) error {
				return s.incomeRepo.UpdateSettlementStatus(ctx, p.userID, incomeID, domain.Settled, s.now())
			},
			func(ctx context.Context) error {
				return s.incomeRepo.UpdateSettlementStatus(ctx, p.userID, incomeID, domain.NotSettled, s.now())
			}))
	}

	return steps, &domain.LoanRepaymentResult{
		Loan:      updated,
		Repayment: repayment,
		Expense:   expense,
		Closed:    closed,
	}, nil
}
