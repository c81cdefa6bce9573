package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

// ToModelAccount converts a domain BankAccount to a model BankAccount
func ToModelAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		AccountID:    d.AccountID,
		UserID:       d.UserID,
		Name:         d.Name,
		BankName:     nullable(d.BankName),
		AccountType:  string(d.AccountType),
		CurrencyCode: d.CurrencyCode,
		Balance:      d.Balance,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model BankAccount to a domain BankAccount
func ToDomainAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		AccountID:    m.AccountID,
		UserID:       m.UserID,
		Name:         m.Name,
		BankName:     deref(m.BankName),
		AccountType:  domain.AccountType(m.AccountType),
		CurrencyCode: m.CurrencyCode,
		Balance:      m.Balance,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model accounts to a slice of domain accounts
func ToDomainAccountSlice(ms []models.BankAccount) []domain.BankAccount {
	ds := make([]domain.BankAccount, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
