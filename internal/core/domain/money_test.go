package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRounding(t *testing.T) {
	assert.Equal(t, "118.01", RoundAmount(decimal.RequireFromString("118.005")).String())
	assert.Equal(t, "1.1801", RoundRate(decimal.RequireFromString("1.18005")).String())
	assert.Equal(t, "12.34 EUR", NewMoney(decimal.RequireFromString("12.3399"), "EUR").String())
}

func TestAccountType(t *testing.T) {
	assert.True(t, CreditCard.IsLiability())
	assert.True(t, LoanAccount.IsLiability())
	assert.False(t, Savings.IsLiability())
	assert.False(t, AccountType("Brokerage").IsValid())

	card := BankAccount{AccountType: CreditCard, Balance: decimal.NewFromInt(-300)}
	assert.True(t, card.OutstandingDebt().Equal(decimal.NewFromInt(300)))

	savings := BankAccount{AccountType: Savings, Balance: decimal.NewFromInt(-300)}
	assert.True(t, savings.OutstandingDebt().IsZero())
}
