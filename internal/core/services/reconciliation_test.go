package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/core/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// failingConversions fails every SaveConversion, forcing the saga to roll back.
type failingConversions struct {
	portsrepo.ConversionRepositoryFacade
}

func (failingConversions) SaveConversion(context.Context, domain.TransactionConversion) error {
	return errors.New("conversion store offline")
}

// --- Test Suite ---
type ReconciliationTestSuite struct {
	suite.Suite
	ctx       context.Context
	userID    string
	source    *MockRateSource
	store     *memory.Store
	clock     *fakeClock
	nextID    int
	container *portssvc.ServiceContainer
}

func (suite *ReconciliationTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.userID = "user-1"
	suite.source = new(MockRateSource)
	suite.source.On("FetchRates", mock.Anything, "EUR").Return(eurRates(), nil).Maybe()
	suite.store = memory.NewStore()
	suite.clock = newFakeClock(t0)
	suite.nextID = 0
	suite.container = suite.build(suite.store.Provider())
}

func (suite *ReconciliationTestSuite) build(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	cfg := &config.Config{
		BaseCurrency:      "EUR",
		ReferenceCurrency: "EUR",
		RateCacheTTL:      time.Hour,
	}
	return services.NewServiceContainer(cfg, repos, suite.source,
		services.WithClock(suite.clock.Now),
		services.WithIDGenerator(func() string {
			suite.nextID++
			return fmt.Sprintf("id-%d", suite.nextID)
		}),
	)
}

func (suite *ReconciliationTestSuite) account(name string, typ domain.AccountType, currency, opening string) *domain.BankAccount {
	acc, err := suite.container.Account.CreateAccount(suite.ctx, suite.userID, dto.CreateAccountRequest{
		Name:           name,
		AccountType:    typ,
		CurrencyCode:   currency,
		OpeningBalance: d(opening),
	})
	suite.Require().NoError(err)
	return acc
}

func (suite *ReconciliationTestSuite) balance(accountID string) string {
	acc, err := suite.store.FindAccountByID(suite.ctx, suite.userID, accountID)
	suite.Require().NoError(err)
	return acc.Balance.StringFixed(2)
}

func (suite *ReconciliationTestSuite) audits(transactionID string, txType domain.TransactionType) []domain.TransactionConversion {
	out, err := suite.store.FindConversionsByTransaction(suite.ctx, suite.userID, transactionID, txType)
	suite.Require().NoError(err)
	return out
}

// --- Test Cases ---

func (suite *ReconciliationTestSuite) TestForeignExpenseDebitsConvertedAmount() {
	acc := suite.account("Checking", domain.Checking, "USD", "500")

	expense, err := suite.container.Expense.CreateExpense(suite.ctx, suite.userID, dto.CreateExpenseRequest{
		Description:  "Hotel",
		Amount:       d("100"),
		CurrencyCode: "eur",
		AccountID:    acc.AccountID,
	})
	suite.Require().NoError(err)
	suite.Equal(domain.Paid, expense.PaymentStatus)
	suite.Equal("EUR", expense.CurrencyCode)
	suite.Equal("382.00", suite.balance(acc.AccountID))

	audit := suite.audits(expense.ExpenseID, domain.ExpenseTransaction)
	suite.Require().Len(audit, 1)
	suite.Equal("1.18", audit[0].ExchangeRate.String())
	suite.Equal("USD", audit[0].ConvertedCurrency)
}

func (suite *ReconciliationTestSuite) TestDeleteReversesAtTheCurrentRate() {
	acc := suite.account("Checking", domain.Checking, "USD", "500")
	expense, err := suite.container.Expense.CreateExpense(suite.ctx, suite.userID, dto.CreateExpenseRequest{
		Description: "Hotel", Amount: d("100"), CurrencyCode: "EUR", AccountID: acc.AccountID,
	})
	suite.Require().NoError(err)

	// EUR strengthens before the expense is deleted.
	moved := eurRates()
	moved["USD"] = d("1.20")
	suite.source.ExpectedCalls = nil
	suite.source.On("FetchRates", mock.Anything, "EUR").Return(moved, nil)
	_, err = suite.container.RateProvider.GetRates(suite.ctx, true)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.container.Expense.DeleteExpense(suite.ctx, suite.userID, expense.ExpenseID))
	suite.Equal("502.00", suite.balance(acc.AccountID))
	suite.Empty(suite.audits(expense.ExpenseID, domain.ExpenseTransaction))

	_, err = suite.store.FindExpenseByID(suite.ctx, suite.userID, expense.ExpenseID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReconciliationTestSuite) TestIncomeWithoutAccountTouchesNoBalance() {
	income, err := suite.container.Income.CreateIncome(suite.ctx, suite.userID, dto.CreateIncomeRequest{
		Source: "Gift", Amount: d("20"), CurrencyCode: "GBP",
	})
	suite.Require().NoError(err)
	suite.Empty(suite.audits(income.IncomeID, domain.IncomeTransaction))
	suite.Require().NoError(suite.container.Income.DeleteIncome(suite.ctx, suite.userID, income.IncomeID))
}

func (suite *ReconciliationTestSuite) TestRejectsNonPositiveAmounts() {
	acc := suite.account("Checking", domain.Checking, "USD", "500")
	_, err := suite.container.Investment.CreateInvestment(suite.ctx, suite.userID, dto.CreateInvestmentRequest{
		Name: "Index fund", InvestmentType: "ETF", Amount: d("0"), CurrencyCode: "USD", AccountID: acc.AccountID,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("500.00", suite.balance(acc.AccountID))
}

func (suite *ReconciliationTestSuite) TestUnsupportedCurrencyLeavesBalanceAlone() {
	acc := suite.account("Checking", domain.Checking, "USD", "500")
	_, err := suite.container.Expense.CreateExpense(suite.ctx, suite.userID, dto.CreateExpenseRequest{
		Description: "Souvenir", Amount: d("10"), CurrencyCode: "ABC", AccountID: acc.AccountID,
	})
	suite.ErrorIs(err, apperrors.ErrUnsupportedCurrency)
	suite.Equal("500.00", suite.balance(acc.AccountID))
}

func (suite *ReconciliationTestSuite) TestFailedStepRollsBackBalance() {
	store := memory.NewStore()
	repos := store.Provider()
	repos.ConversionRepo = failingConversions{ConversionRepositoryFacade: repos.ConversionRepo}
	suite.store = store
	suite.container = suite.build(repos)

	acc := suite.account("Checking", domain.Checking, "USD", "500")
	before := suite.nextID

	_, err := suite.container.Expense.CreateExpense(suite.ctx, suite.userID, dto.CreateExpenseRequest{
		Description: "Hotel", Amount: d("100"), CurrencyCode: "EUR", AccountID: acc.AccountID,
	})
	suite.Require().Error(err)
	suite.Equal("500.00", suite.balance(acc.AccountID))

	expenseID := fmt.Sprintf("id-%d", before+1)
	_, err = store.FindExpenseByID(suite.ctx, suite.userID, expenseID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReconciliationTestSuite) TestCardExpenseSettledByDebtRepayment() {
	checking := suite.account("Checking", domain.Checking, "USD", "500")
	card := suite.account("Card", domain.CreditCard, "USD", "0")

	expense, err := suite.container.Expense.CreateExpense(suite.ctx, suite.userID, dto.CreateExpenseRequest{
		Description: "Groceries", Amount: d("59"), CurrencyCode: "USD", AccountID: card.AccountID,
	})
	suite.Require().NoError(err)
	suite.Equal(domain.Unpaid, expense.PaymentStatus)
	suite.Equal("-59.00", suite.balance(card.AccountID))

	transfer, err := suite.container.Transfer.CreateTransfer(suite.ctx, suite.userID, dto.CreateTransferRequest{
		TransferType:  domain.DebtRepaymentTransfer,
		FromAccountID: checking.AccountID,
		ToAccountID:   card.AccountID,
		Amount:        d("50"),
	})
	suite.Require().NoError(err)
	suite.Equal("59", transfer.SourceDebit.String())
	suite.Equal("441.00", suite.balance(checking.AccountID))
	suite.Equal("0.00", suite.balance(card.AccountID))
	suite.Len(suite.audits(transfer.TransferID, domain.TransferTransaction), 2)

	settled, err := suite.store.FindExpenseByID(suite.ctx, suite.userID, expense.ExpenseID)
	suite.Require().NoError(err)
	suite.Equal(domain.Paid, settled.PaymentStatus)
	suite.Equal(transfer.TransferID, settled.TransferID)
}

func (suite *ReconciliationTestSuite) TestSelfTransferConvertsEachSide() {
	usd := suite.account("US Checking", domain.Checking, "USD", "500")
	inr := suite.account("IN Savings", domain.Savings, "INR", "0")

	transfer, err := suite.container.Transfer.CreateTransfer(suite.ctx, suite.userID, dto.CreateTransferRequest{
		TransferType:  domain.SelfTransfer,
		FromAccountID: usd.AccountID,
		ToAccountID:   inr.AccountID,
		Amount:        d("10"),
	})
	suite.Require().NoError(err)
	suite.Equal("EUR", transfer.CurrencyCode)
	suite.Equal("488.20", suite.balance(usd.AccountID))
	suite.Equal("980.83", suite.balance(inr.AccountID))

	_, err = suite.container.Transfer.CreateTransfer(suite.ctx, suite.userID, dto.CreateTransferRequest{
		TransferType: domain.SelfTransfer, FromAccountID: usd.AccountID, ToAccountID: usd.AccountID, Amount: d("1"),
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationTestSuite) TestLoanLifecycle() {
	checking := suite.account("Checking", domain.Checking, "USD", "0")

	loan, err := suite.container.Loan.CreateLoan(suite.ctx, suite.userID, dto.CreateLoanRequest{
		Lender: "Bank", PrincipalAmount: d("1000"), CurrencyCode: "USD", LinkedAccountID: checking.AccountID,
	})
	suite.Require().NoError(err)
	suite.Equal(domain.LoanActive, loan.Status)
	suite.NotEmpty(loan.LoanIncomeID)
	suite.Equal("1000.00", suite.balance(checking.AccountID))

	income, err := suite.store.FindIncomeByID(suite.ctx, suite.userID, loan.LoanIncomeID)
	suite.Require().NoError(err)
	suite.True(income.IsLoanIncome)
	suite.Equal(domain.NotSettled, income.SettlementStatus)

	res, err := suite.container.Loan.RepayLoan(suite.ctx, suite.userID, loan.LoanID, dto.RepayLoanRequest{Amount: d("400")})
	suite.Require().NoError(err)
	suite.False(res.Closed)
	suite.Equal("600", res.Loan.RemainingBalance.String())
	suite.Equal(checking.AccountID, res.Expense.AccountID)
	suite.Equal("600.00", suite.balance(checking.AccountID))

	// Overpaying floors the remaining balance at zero and closes the loan.
	res, err = suite.container.Loan.RepayLoan(suite.ctx, suite.userID, loan.LoanID, dto.RepayLoanRequest{Amount: d("700")})
	suite.Require().NoError(err)
	suite.True(res.Closed)
	suite.True(res.Loan.RemainingBalance.IsZero())
	suite.Equal(domain.LoanClosed, res.Loan.Status)

	income, err = suite.store.FindIncomeByID(suite.ctx, suite.userID, loan.LoanIncomeID)
	suite.Require().NoError(err)
	suite.Equal(domain.Settled, income.SettlementStatus)

	_, err = suite.container.Loan.RepayLoan(suite.ctx, suite.userID, loan.LoanID, dto.RepayLoanRequest{Amount: d("1")})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Len(suite.store.Repayments(loan.LoanID), 2)
}

func (suite *ReconciliationTestSuite) TestLoanIncomeCannotBeDeleted() {
	checking := suite.account("Checking", domain.Checking, "EUR", "0")

	loan, err := suite.container.Loan.CreateLoan(suite.ctx, suite.userID, dto.CreateLoanRequest{
		Lender: "Bank", PrincipalAmount: d("100"), CurrencyCode: "EUR", LinkedAccountID: checking.AccountID,
	})
	suite.Require().NoError(err)

	err = suite.container.Income.DeleteIncome(suite.ctx, suite.userID, loan.LoanIncomeID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("100.00", suite.balance(checking.AccountID))

	res, err := suite.container.Loan.RepayLoan(suite.ctx, suite.userID, loan.LoanID, dto.RepayLoanRequest{Amount: d("100")})
	suite.Require().NoError(err)
	suite.True(res.Closed)
	suite.Equal(domain.LoanClosed, res.Loan.Status)

	income, err := suite.store.FindIncomeByID(suite.ctx, suite.userID, loan.LoanIncomeID)
	suite.Require().NoError(err)
	suite.Equal(domain.Settled, income.SettlementStatus)
}

func (suite *ReconciliationTestSuite) TestLoanRepaymentExpenseCannotBeDeleted() {
	checking := suite.account("Checking", domain.Checking, "EUR", "0")

	loan, err := suite.container.Loan.CreateLoan(suite.ctx, suite.userID, dto.CreateLoanRequest{
		Lender: "Bank", PrincipalAmount: d("100"), CurrencyCode: "EUR", LinkedAccountID: checking.AccountID,
	})
	suite.Require().NoError(err)
	res, err := suite.container.Loan.RepayLoan(suite.ctx, suite.userID, loan.LoanID, dto.RepayLoanRequest{Amount: d("100")})
	suite.Require().NoError(err)
	suite.Equal("0.00", suite.balance(checking.AccountID))

	err = suite.container.Expense.DeleteExpense(suite.ctx, suite.userID, res.Expense.ExpenseID)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("0.00", suite.balance(checking.AccountID))
	_, err = suite.store.FindExpenseByID(suite.ctx, suite.userID, res.Expense.ExpenseID)
	suite.NoError(err)
	suite.Len(suite.store.Repayments(loan.LoanID), 1)

	_, err = suite.container.Expense.CreateExpense(suite.ctx, suite.userID, dto.CreateExpenseRequest{
		Description: "fake", Amount: d("5"), CurrencyCode: "EUR", AccountID: checking.AccountID,
		Category: domain.LoanRepaymentCategory,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal("0.00", suite.balance(checking.AccountID))
}

func (suite *ReconciliationTestSuite) TestLoanRepaidThroughTransfer() {
	checking := suite.account("Checking", domain.Checking, "USD", "500")
	loanAccount := suite.account("Car loan", domain.LoanAccount, "EUR", "100")

	loan, err := suite.container.Loan.CreateLoan(suite.ctx, suite.userID, dto.CreateLoanRequest{
		Lender: "Dealer", PrincipalAmount: d("100"), CurrencyCode: "EUR",
	})
	suite.Require().NoError(err)
	suite.Empty(loan.LoanIncomeID, "no loan income without a linked account")

	transfer, err := suite.container.Transfer.CreateTransfer(suite.ctx, suite.userID, dto.CreateTransferRequest{
		TransferType:  domain.DebtRepaymentTransfer,
		FromAccountID: checking.AccountID,
		ToAccountID:   loanAccount.AccountID,
		Amount:        d("40"),
		LoanID:        loan.LoanID,
	})
	suite.Require().NoError(err)
	suite.Equal("452.80", suite.balance(checking.AccountID), "the transfer is the only debit")
	suite.Equal("-60.00", suite.balance(loanAccount.AccountID))

	updated, err := suite.store.FindLoanByID(suite.ctx, suite.userID, loan.LoanID)
	suite.Require().NoError(err)
	suite.Equal("60", updated.RemainingBalance.String())

	repayments := suite.store.Repayments(loan.LoanID)
	suite.Require().Len(repayments, 1)
	suite.Equal(transfer.TransferID, repayments[0].TransferID)

	expenses := suite.store.ExpensesForTransfer(transfer.TransferID)
	suite.Require().Len(expenses, 1)
	suite.Equal(domain.LoanRepaymentCategory, expenses[0].Category)
	suite.Empty(expenses[0].AccountID)

	_, err = suite.container.Transfer.CreateTransfer(suite.ctx, suite.userID, dto.CreateTransferRequest{
		TransferType: domain.SelfTransfer, FromAccountID: checking.AccountID, ToAccountID: loanAccount.AccountID,
		Amount: d("1"), LoanID: loan.LoanID,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationTestSuite) TestInternationalTransfer() {
	usd := suite.account("US Checking", domain.Checking, "USD", "500")
	inr := suite.account("IN Savings", domain.Savings, "INR", "0")

	transfer, err := suite.container.Transfer.CreateInternationalTransfer(suite.ctx, suite.userID, dto.CreateInternationalTransferRequest{
		FromAccountID: usd.AccountID,
		ToAccountID:   inr.AccountID,
		SourceAmount:  d("100"),
		TransferFees: dto.TransferFees{
			PercentageMarkup: d("1"),
			FixedMarkupFee:   d("10"),
			ExtraFee:         d("2"),
			ExtraFeeCurrency: "USD",
		},
	})
	suite.Require().NoError(err)

	// base rate 83.1208: converted 8312.08, fees 83.12 + 10.00 + 166.24
	suite.Equal("259.36", transfer.TotalFees.StringFixed(2))
	suite.Equal("102", transfer.SourceDebit.String())
	suite.Equal("8571.44", transfer.DestinationCredit.StringFixed(2))
	suite.Equal("398.00", suite.balance(usd.AccountID))
	suite.Equal("8571.44", suite.balance(inr.AccountID))

	fees := suite.store.ExpensesForTransfer(transfer.TransferID)
	suite.Require().Len(fees, 1)
	suite.Equal(domain.BankFeesCategory, fees[0].Category)
	suite.Equal("INR", fees[0].CurrencyCode)
	suite.Equal("259.36", fees[0].Amount.StringFixed(2))
	suite.Equal("8571.44", suite.balance(inr.AccountID), "the fee expense does not move the balance again")
}

func (suite *ReconciliationTestSuite) TestInternationalTransferRejections() {
	usd := suite.account("US Checking", domain.Checking, "USD", "500")
	inr := suite.account("IN Savings", domain.Savings, "INR", "0")
	override := decimal.NewFromInt(80)

	_, err := suite.container.Transfer.CreateInternationalTransfer(suite.ctx, suite.userID, dto.CreateInternationalTransferRequest{
		FromAccountID: usd.AccountID, ToAccountID: inr.AccountID, SourceAmount: d("0"),
		TransferFees: dto.TransferFees{BaseRateOverride: &override},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.container.Transfer.CreateInternationalTransfer(suite.ctx, suite.userID, dto.CreateInternationalTransferRequest{
		FromAccountID: usd.AccountID, ToAccountID: inr.AccountID, SourceAmount: d("10"),
		TransferFees: dto.TransferFees{ExtraFee: d("1"), ExtraFeeCurrency: "GBP", BaseRateOverride: &override},
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.Equal("500.00", suite.balance(usd.AccountID))
	suite.Equal("0.00", suite.balance(inr.AccountID))
}

func (suite *ReconciliationTestSuite) TestPreviewUsesOverrideRate() {
	override := decimal.NewFromInt(80)
	breakdown, err := suite.container.Transfer.PreviewBreakdown(suite.ctx, dto.TransferBreakdownRequest{
		SourceAmount: d("100"), SourceCurrency: "USD", DestinationCurrency: "INR",
		TransferFees: dto.TransferFees{BufferAmount: d("5"), BaseRateOverride: &override},
	})
	suite.Require().NoError(err)
	suite.True(breakdown.IsValid)
	suite.Equal("8000.00", breakdown.ConvertedAmount.StringFixed(2))
	suite.Equal("8005.00", breakdown.TotalDestinationAmount.StringFixed(2))
	suite.source.AssertNotCalled(suite.T(), "FetchRates", mock.Anything, mock.Anything)

	invalid, err := suite.container.Transfer.PreviewBreakdown(suite.ctx, dto.TransferBreakdownRequest{
		SourceAmount: d("-1"), SourceCurrency: "USD", DestinationCurrency: "INR",
		TransferFees: dto.TransferFees{BaseRateOverride: &override},
	})
	suite.Require().NoError(err, "an invalid breakdown is a result")
	suite.False(invalid.IsValid)
	suite.NotEmpty(invalid.ErrorMessage)
}

func (suite *ReconciliationTestSuite) TestConversionAuditPaging() {
	acc := suite.account("Checking", domain.Checking, "USD", "500")
	for i := 0; i < 3; i++ {
		suite.clock.Advance(time.Minute)
		_, err := suite.container.Expense.CreateExpense(suite.ctx, suite.userID, dto.CreateExpenseRequest{
			Description: "Coffee", Amount: d("1"), CurrencyCode: "EUR", AccountID: acc.AccountID,
		})
		suite.Require().NoError(err)
	}

	page, next, err := suite.container.Conversion.ListConversions(suite.ctx, suite.userID, 2, nil)
	suite.Require().NoError(err)
	suite.Len(page, 2)
	suite.Require().NotNil(next)

	rest, next, err := suite.container.Conversion.ListConversions(suite.ctx, suite.userID, 2, next)
	suite.Require().NoError(err)
	suite.Len(rest, 1)
	suite.Nil(next)
	suite.True(page[1].CreatedAt.After(rest[0].CreatedAt))
}

// --- Run Test Suite ---
func TestReconciliation(t *testing.T) {
	suite.Run(t, new(ReconciliationTestSuite))
}
