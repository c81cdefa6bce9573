package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Investment struct {
	InvestmentID   string          `json:"investmentID"`
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	InvestmentType string          `json:"investmentType"`
	Amount         decimal.Decimal `json:"amount"`
	CurrencyCode   string          `json:"currencyCode"`
	AccountID      string          `json:"accountID,omitempty"`
	InvestmentDate time.Time       `json:"investmentDate"`
	AuditFields
}
