package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Optional foreign keys are pointers so NULL survives the round trip.

type Income struct {
	IncomeID         string          `db:"income_id"`
	UserID           string          `db:"user_id"`
	Source           string          `db:"source"`
	Amount           decimal.Decimal `db:"amount"`
	CurrencyCode     string          `db:"currency_code"`
	AccountID        *string         `db:"account_id"`
	Category         *string         `db:"category"`
	IsLoanIncome     bool            `db:"is_loan_income"`
	LoanID           *string         `db:"loan_id"`
	SettlementStatus *string         `db:"settlement_status"`
	IncomeDate       time.Time       `db:"income_date"`
	AuditFields
}

type Expense struct {
	ExpenseID     string          `db:"expense_id"`
	UserID        string          `db:"user_id"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	AccountID     *string         `db:"account_id"`
	Category      *string         `db:"category"`
	PaymentStatus string          `db:"payment_status"`
	TransferID    *string         `db:"transfer_id"`
	ExpenseDate   time.Time       `db:"expense_date"`
	AuditFields
}

type Investment struct {
	InvestmentID   string          `db:"investment_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	InvestmentType string          `db:"investment_type"`
	Amount         decimal.Decimal `db:"amount"`
	CurrencyCode   string          `db:"currency_code"`
	AccountID      *string         `db:"account_id"`
	InvestmentDate time.Time       `db:"investment_date"`
	AuditFields
}

type Loan struct {
	LoanID           string          `db:"loan_id"`
	UserID           string          `db:"user_id"`
	Lender           string          `db:"lender"`
	PrincipalAmount  decimal.Decimal `db:"principal_amount"`
	RemainingBalance decimal.Decimal `db:"remaining_balance"`
	CurrencyCode     string          `db:"currency_code"`
	Status           string          `db:"status"`
	LinkedAccountID  *string         `db:"linked_account_id"`
	LoanIncomeID     *string         `db:"loan_income_id"`
	StartDate        time.Time       `db:"start_date"`
	AuditFields
}

type LoanRepayment struct {
	RepaymentID   string          `db:"repayment_id"`
	UserID        string          `db:"user_id"`
	LoanID        string          `db:"loan_id"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	TransferID    *string         `db:"transfer_id"`
	RepaymentDate time.Time       `db:"repayment_date"`
	AuditFields
}

type Transfer struct {
	TransferID        string          `db:"transfer_id"`
	UserID            string          `db:"user_id"`
	TransferType      string          `db:"transfer_type"`
	FromAccountID     string          `db:"from_account_id"`
	ToAccountID       string          `db:"to_account_id"`
	Amount            decimal.Decimal `db:"amount"`
	CurrencyCode      string          `db:"currency_code"`
	SourceDebit       decimal.Decimal `db:"source_debit"`
	DestinationCredit decimal.Decimal `db:"destination_credit"`
	TotalFees         decimal.Decimal `db:"total_fees"`
	LoanID            *string         `db:"loan_id"`
	TransferDate      time.Time       `db:"transfer_date"`
	Notes             *string         `db:"notes"`
	AuditFields
}
