package models

import (
	"github.com/shopspring/decimal"
)

// BankAccount is a row of bank_accounts.
type BankAccount struct {
	AccountID    string          `db:"account_id"`
	UserID       string          `db:"user_id"`
	Name         string          `db:"name"`
	BankName     *string         `db:"bank_name"` // Nullable
	AccountType  string          `db:"account_type"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	AuditFields
}
