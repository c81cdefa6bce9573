package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoan(principal string) *Loan {
	p := decimal.RequireFromString(principal)
	return &Loan{LoanID: "loan-1", PrincipalAmount: p, RemainingBalance: p, Status: LoanActive}
}

func TestLoan_ApplyRepayment(t *testing.T) {
	loan := newTestLoan("1000")

	closed, err := loan.ApplyRepayment(decimal.NewFromInt(400))
	require.NoError(t, err)
	assert.False(t, closed)
	assert.True(t, loan.RemainingBalance.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, LoanActive, loan.Status)

	closed, err = loan.ApplyRepayment(decimal.NewFromInt(600))
	require.NoError(t, err)
	assert.True(t, closed)
	assert.True(t, loan.RemainingBalance.IsZero())
	assert.Equal(t, LoanClosed, loan.Status)
}

func TestLoan_OverpaymentFloorsAtZero(t *testing.T) {
	loan := newTestLoan("100")

	closed, err := loan.ApplyRepayment(decimal.NewFromInt(250))
	require.NoError(t, err)
	assert.True(t, closed)
	assert.True(t, loan.RemainingBalance.IsZero())
	assert.False(t, loan.RemainingBalance.IsNegative())
}

func TestLoan_ClosedLoanRejectsRepayment(t *testing.T) {
	loan := newTestLoan("100")
	_, err := loan.ApplyRepayment(decimal.NewFromInt(100))
	require.NoError(t, err)

	closed, err := loan.ApplyRepayment(decimal.NewFromInt(10))
	assert.ErrorIs(t, err, ErrLoanClosed)
	assert.False(t, closed, "a loan closes exactly once")
	assert.True(t, loan.RemainingBalance.IsZero())
}

func TestLoan_NonPositiveRepayment(t *testing.T) {
	loan := newTestLoan("100")
	_, err := loan.ApplyRepayment(decimal.Zero)
	assert.ErrorIs(t, err, ErrNonPositiveRepayment)
	_, err = loan.ApplyRepayment(decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, ErrNonPositiveRepayment)
	assert.True(t, loan.RemainingBalance.Equal(decimal.NewFromInt(100)))
}
