package accounting

import (
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Direction says whether money enters or leaves an account.
type Direction int

const (
	Inflow Direction = iota
	Outflow
)

// Reverse returns the opposite direction, used when undoing a movement.
func (d Direction) Reverse() Direction {
	if d == Inflow {
		return Outflow
	}
	return Inflow
}

// SignedDelta applies the sign of the movement to a non-negative amount.
// The sign is the same for every account type: paying into a credit card
// moves its negative balance towards zero, spending on it moves it further down.
func SignedDelta(amount decimal.Decimal, dir Direction) decimal.Decimal {
	if dir == Outflow {
		return amount.Neg()
	}
	return amount
}

// OpeningBalance converts a user-entered opening balance into the stored balance.
// Liability accounts store their outstanding debt as a negative number.
func OpeningBalance(amount decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.IsValid() {
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("opening balance must not be negative")
	}
	if accountType.IsLiability() {
		return domain.RoundAmount(amount).Neg(), nil
	}
	return domain.RoundAmount(amount), nil
}
