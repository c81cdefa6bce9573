package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	Paid   PaymentStatus = "Paid"
	Unpaid PaymentStatus = "Unpaid"
)

// Categories assigned by the reconciliation flows rather than by the user.
const (
	LoanRepaymentCategory = "Loan Repayment"
	BankFeesCategory      = "Bank Fees"
)

// Expense is money spent from an optional account. Expenses charged to a credit
// card stay Unpaid until a debt-repayment transfer settles the card.
type Expense struct {
	ExpenseID     string          `json:"expenseID"`
	UserID        string          `json:"userID"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	AccountID     string          `json:"accountID,omitempty"`
	Category      string          `json:"category"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	TransferID    string          `json:"transferID,omitempty"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	AuditFields
}
