package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/saga"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type transferService struct {
	*reconciler
	transferRepo      portsrepo.TransferRepositoryFacade
	expenseRepo       portsrepo.ExpenseRepositoryFacade
	loans             *loanService
	referenceCurrency string
}

func newTransferService(r *reconciler, repos portsrepo.RepositoryProvider, loans *loanService, referenceCurrency string) *transferService {
	return &transferService{
		reconciler:        r,
		transferRepo:      repos.TransferRepo,
		expenseRepo:       repos.ExpenseRepo,
		loans:             loans,
		referenceCurrency: normalizeCode(referenceCurrency),
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// loadPair reads both accounts concurrently.
func (s *transferService) loadPair(ctx context.Context, userID, fromID, toID string) (*domain.BankAccount, *domain.BankAccount, error) {
	if fromID == toID {
		return nil, nil, apperrors.NewValidationError("source and destination accounts must differ")
	}
	var from, to *domain.BankAccount
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		from, err = s.loadAccount(gctx, userID, fromID)
		return err
	})
	g.Go(func() error {
		var err error
		to, err = s.loadAccount(gctx, userID, toID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func (s *transferService) saveTransferStep(transfer domain.Transfer) saga.Step {
	return recordStep("save_transfer",
		func(ctx context.Context) error { return s.transferRepo.SaveTransfer(ctx, transfer) },
		func(ctx context.Context) error {
			return s.transferRepo.DeleteTransfer(ctx, transfer.UserID, transfer.TransferID)
		})
}

// CreateTransfer handles Self and Debt Repayment transfers. The amount is in the
// reference currency and is converted separately for each side, so the debit and
// credit need not be symmetric.
func (s *transferService) CreateTransfer(ctx context.Context, userID string, req dto.CreateTransferRequest) (*domain.Transfer, error) {
	if err := requirePositive(req.Amount, "amount"); err != nil {
		return nil, err
	}
	if req.LoanID != "" && req.TransferType != domain.DebtRepaymentTransfer {
		return nil, apperrors.NewValidationError("a loan can only be repaid by a Debt Repayment transfer")
	}

	from, to, err := s.loadPair(ctx, userID, req.FromAccountID, req.ToAccountID)
	if err != nil {
		return nil, err
	}

	amount := domain.RoundAmount(req.Amount)
	srcConv, err := s.convertForAccount(ctx, amount, s.referenceCurrency, from)
	if err != nil {
		return nil, err
	}
	dstConv, err := s.convertForAccount(ctx, amount, s.referenceCurrency, to)
	if err != nil {
		return nil, err
	}

	now := s.now()
	transfer := domain.Transfer{
		TransferID:        s.generateID(),
		UserID:            userID,
		TransferType:      req.TransferType,
		FromAccountID:     from.AccountID,
		ToAccountID:       to.AccountID,
		Amount:            amount,
		CurrencyCode:      s.referenceCurrency,
		SourceDebit:       srcConv.ConvertedAmount,
		DestinationCredit: dstConv.ConvertedAmount,
		TotalFees:         decimal.Zero,
		LoanID:            req.LoanID,
		TransferDate:      dateOr(req.Date, now),
		Notes:             req.Notes,
		AuditFields:       domain.NewAuditFields(userID, now),
	}

	sg := saga.New("create_transfer", s.GetLogger(ctx)).Steps(
		s.adjustBalanceStep("debit_source", userID, from.AccountID, accounting.SignedDelta(srcConv.ConvertedAmount, accounting.Outflow)),
		s.adjustBalanceStep("credit_destination", userID, to.AccountID, accounting.SignedDelta(dstConv.ConvertedAmount, accounting.Inflow)),
		s.saveTransferStep(transfer),
		s.saveConversionStep(userID, transfer.TransferID, domain.TransferTransaction, *srcConv),
		s.saveConversionStep(userID, transfer.TransferID, domain.TransferTransaction, *dstConv),
	)

	if req.TransferType == domain.DebtRepaymentTransfer && to.AccountType == domain.CreditCard {
		sg.AddStep(s.settleCardStep(userID, to.AccountID, transfer.TransferID))
	}

	if req.LoanID != "" {
		steps, err := s.loanRepaymentSteps(ctx, userID, req.LoanID, amount, transfer)
		if err != nil {
			return nil, err
		}
		sg.Steps(steps...)
	}

	if err := sg.Execute(ctx); err != nil {
		s.LogError(ctx, err, "Failed to create transfer", slog.String("transfer_id", transfer.TransferID))
		return nil, err
	}
	s.LogInfo(ctx, "Transfer created",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("type", string(transfer.TransferType)),
		slog.String("debit", transfer.SourceDebit.String()),
		slog.String("credit", transfer.DestinationCredit.String()))
	return &transfer, nil
}

// settleCardStep marks the card's unpaid expenses paid and links them to the transfer.
func (s *transferService) settleCardStep(userID, accountID, transferID string) saga.Step {
	var settled []string
	return saga.Step{
		Name: "settle_card_expenses",
		Action: func(ctx context.Context) error {
			ids, err := s.expenseRepo.MarkUnpaidExpensesPaid(ctx, userID, accountID, transferID, s.now())
			settled = ids
			return err
		},
		Compensate: func(ctx context.Context) error {
			if len(settled) == 0 {
				return nil
			}
			return s.expenseRepo.RevertExpensesToUnpaid(ctx, userID, settled, s.now())
		},
	}
}

// loanRepaymentSteps converts the transfer amount into the loan's currency and
// builds the repayment without a second debit.
func (s *transferService) loanRepaymentSteps(ctx context.Context, userID, loanID string, amount decimal.Decimal, transfer domain.Transfer) ([]saga.Step, error) {
	loan, err := s.loans.loanRepo.FindLoanByID(ctx, userID, loanID)
	if err != nil {
		return nil, err
	}
	conv, err := s.converter.ConvertAmount(ctx, amount, transfer.CurrencyCode, loan.CurrencyCode)
	if err != nil {
		return nil, err
	}
	steps, _, err := s.loans.repaymentSteps(ctx, repaymentParams{
		userID:     userID,
		loan:       *loan,
		amount:     conv.ConvertedAmount,
		date:       transfer.TransferDate,
		transferID: transfer.TransferID,
	})
	return steps, err
}

// marketOrOverride returns the override when set, otherwise the current market rate.
func (s *transferService) marketOrOverride(ctx context.Context, override *decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if override != nil {
		return *override, nil
	}
	return s.converter.GetExchangeRate(ctx, from, to)
}

func (s *transferService) breakdownInput(ctx context.Context, sourceAmount decimal.Decimal, from, to string, fees dto.TransferFees) (accounting.BreakdownInput, error) {
	from, to = normalizeCode(from), normalizeCode(to)
	baseRate, err := s.marketOrOverride(ctx, fees.BaseRateOverride, from, to)
	if err != nil {
		return accounting.BreakdownInput{}, err
	}
	feeCurrency, err := accounting.ResolveExtraFeeCurrency(fees.ExtraFeeCurrency, from, to)
	if err != nil {
		return accounting.BreakdownInput{}, err
	}
	return accounting.BreakdownInput{
		SourceAmount:        sourceAmount,
		SourceCurrency:      from,
		DestinationCurrency: to,
		BaseRate:            baseRate,
		PercentageMarkup:    fees.PercentageMarkup,
		FixedMarkupFee:      fees.FixedMarkupFee,
		ExtraFee:            fees.ExtraFee,
		ExtraFeeCurrency:    feeCurrency,
		BufferAmount:        fees.BufferAmount,
	}, nil
}

// PreviewBreakdown returns the breakdown as computed; an invalid breakdown is a result, not an error.
func (s *transferService) PreviewBreakdown(ctx context.Context, req dto.TransferBreakdownRequest) (*domain.TransferBreakdown, error) {
	in, err := s.breakdownInput(ctx, req.SourceAmount, req.SourceCurrency, req.DestinationCurrency, req.TransferFees)
	if err != nil {
		return nil, err
	}
	breakdown := accounting.CalculateCompleteTransferBreakdown(in)
	return &breakdown, nil
}

func (s *transferService) CalculateInternationalAmount(ctx context.Context, req dto.InternationalAmountRequest) (*domain.InternationalTransferAmount, error) {
	baseRate, err := s.marketOrOverride(ctx, req.BaseRate, req.SourceCurrency, req.DestinationCurrency)
	if err != nil {
		return nil, err
	}
	res := accounting.CalculateInternationalTransferAmount(req.SourceAmount, baseRate, req.FixedMarkupFee)
	return &res, nil
}

// CreateInternationalTransfer credits the breakdown's total destination amount and
// debits the source amount plus any extra fee stated in the source currency. The fees
// are also recorded as a Bank Fees expense; that expense is a ledger entry only.
func (s *transferService) CreateInternationalTransfer(ctx context.Context, userID string, req dto.CreateInternationalTransferRequest) (*domain.Transfer, error) {
	from, to, err := s.loadPair(ctx, userID, req.FromAccountID, req.ToAccountID)
	if err != nil {
		return nil, err
	}

	in, err := s.breakdownInput(ctx, req.SourceAmount, from.CurrencyCode, to.CurrencyCode, req.TransferFees)
	if err != nil {
		return nil, err
	}
	breakdown := accounting.CalculateCompleteTransferBreakdown(in)
	if !breakdown.IsValid {
		return nil, apperrors.NewValidationError(breakdown.ErrorMessage)
	}

	debit := breakdown.SourceAmount.Add(accounting.ExtraFeeInSourceCurrency(in))
	credit := breakdown.TotalDestinationAmount

	now := s.now()
	date := dateOr(req.Date, now)
	transfer := domain.Transfer{
		TransferID:        s.generateID(),
		UserID:            userID,
		TransferType:      domain.InternationalTransfer,
		FromAccountID:     from.AccountID,
		ToAccountID:       to.AccountID,
		Amount:            breakdown.SourceAmount,
		CurrencyCode:      breakdown.SourceCurrency,
		SourceDebit:       debit,
		DestinationCredit: credit,
		TotalFees:         breakdown.TotalFees,
		TransferDate:      date,
		Notes:             req.Notes,
		AuditFields:       domain.NewAuditFields(userID, now),
	}

	audit := domain.ConversionResult{
		OriginalAmount:    breakdown.SourceAmount,
		OriginalCurrency:  breakdown.SourceCurrency,
		ConvertedAmount:   breakdown.ConvertedAmount,
		ConvertedCurrency: breakdown.DestinationCurrency,
		ExchangeRate:      breakdown.BaseExchangeRate,
		ConversionDate:    now,
	}

	sg := saga.New("create_international_transfer", s.GetLogger(ctx)).Steps(
		s.adjustBalanceStep("debit_source", userID, from.AccountID, accounting.SignedDelta(debit, accounting.Outflow)),
		s.adjustBalanceStep("credit_destination", userID, to.AccountID, accounting.SignedDelta(credit, accounting.Inflow)),
		s.saveTransferStep(transfer),
		s.saveConversionStep(userID, transfer.TransferID, domain.TransferTransaction, audit),
	)

	if breakdown.TotalFees.IsPositive() {
		fees := domain.Expense{
			ExpenseID:     s.generateID(),
			UserID:        userID,
			Description:   "International transfer fees",
			Amount:        breakdown.TotalFees,
			CurrencyCode:  breakdown.DestinationCurrency,
			AccountID:     to.AccountID,
			Category:      domain.BankFeesCategory,
			PaymentStatus: domain.Paid,
			TransferID:    transfer.TransferID,
			ExpenseDate:   date,
			AuditFields:   domain.NewAuditFields(userID, now),
		}
		sg.AddStep(recordStep("save_bank_fees",
			func(ctx context.Context) error { return s.expenseRepo.SaveExpense(ctx, fees) },
			func(ctx context.Context) error { return s.expenseRepo.DeleteExpense(ctx, userID, fees.ExpenseID) }))
	}

	if err := sg.Execute(ctx); err != nil {
		s.LogError(ctx, err, "Failed to create international transfer", slog.String("transfer_id", transfer.TransferID))
		return nil, err
	}
	s.LogInfo(ctx, "International transfer created",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("debit", debit.String()),
		slog.String("credit", credit.String()),
		slog.String("fees", breakdown.TotalFees.String()))
	return &transfer, nil
}
