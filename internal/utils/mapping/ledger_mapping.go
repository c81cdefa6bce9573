package mapping

import (
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/models"
)

func ToModelIncome(d domain.Income) models.Income {
	var status *string
	if d.SettlementStatus != "" {
		s := string(d.SettlementStatus)
		status = &s
	}
	return models.Income{
		IncomeID:         d.IncomeID,
		UserID:           d.UserID,
		Source:           d.Source,
		Amount:           d.Amount,
		CurrencyCode:     d.CurrencyCode,
		AccountID:        nullable(d.AccountID),
		Category:         nullable(d.Category),
		IsLoanIncome:     d.IsLoanIncome,
		LoanID:           nullable(d.LoanID),
		SettlementStatus: status,
		IncomeDate:       d.IncomeDate,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainIncome(m models.Income) domain.Income {
	return domain.Income{
		IncomeID:         m.IncomeID,
		UserID:           m.UserID,
		Source:           m.Source,
		Amount:           m.Amount,
		CurrencyCode:     m.CurrencyCode,
		AccountID:        deref(m.AccountID),
		Category:         deref(m.Category),
		IsLoanIncome:     m.IsLoanIncome,
		LoanID:           deref(m.LoanID),
		SettlementStatus: domain.SettlementStatus(deref(m.SettlementStatus)),
		IncomeDate:       m.IncomeDate,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:     d.ExpenseID,
		UserID:        d.UserID,
		Description:   d.Description,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		AccountID:     nullable(d.AccountID),
		Category:      nullable(d.Category),
		PaymentStatus: string(d.PaymentStatus),
		TransferID:    nullable(d.TransferID),
		ExpenseDate:   d.ExpenseDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:     m.ExpenseID,
		UserID:        m.UserID,
		Description:   m.Description,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		AccountID:     deref(m.AccountID),
		Category:      deref(m.Category),
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		TransferID:    deref(m.TransferID),
		ExpenseDate:   m.ExpenseDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelInvestment(d domain.Investment) models.Investment {
	return models.Investment{
		InvestmentID:   d.InvestmentID,
		UserID:         d.UserID,
		Name:           d.Name,
		InvestmentType: d.InvestmentType,
		Amount:         d.Amount,
		CurrencyCode:   d.CurrencyCode,
		AccountID:      nullable(d.AccountID),
		InvestmentDate: d.InvestmentDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainInvestment(m models.Investment) domain.Investment {
	return domain.Investment{
		InvestmentID:   m.InvestmentID,
		UserID:         m.UserID,
		Name:           m.Name,
		InvestmentType: m.InvestmentType,
		Amount:         m.Amount,
		CurrencyCode:   m.CurrencyCode,
		AccountID:      deref(m.AccountID),
		InvestmentDate: m.InvestmentDate,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:           d.LoanID,
		UserID:           d.UserID,
		Lender:           d.Lender,
		PrincipalAmount:  d.PrincipalAmount,
		RemainingBalance: d.RemainingBalance,
		CurrencyCode:     d.CurrencyCode,
		Status:           string(d.Status),
		LinkedAccountID:  nullable(d.LinkedAccountID),
		LoanIncomeID:     nullable(d.LoanIncomeID),
		StartDate:        d.StartDate,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:           m.LoanID,
		UserID:           m.UserID,
		Lender:           m.Lender,
		PrincipalAmount:  m.PrincipalAmount,
		RemainingBalance: m.RemainingBalance,
		CurrencyCode:     m.CurrencyCode,
		Status:           domain.LoanStatus(m.Status),
		LinkedAccountID:  deref(m.LinkedAccountID),
		LoanIncomeID:     deref(m.LoanIncomeID),
		StartDate:        m.StartDate,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelLoanRepayment(d domain.LoanRepayment) models.LoanRepayment {
	return models.LoanRepayment{
		RepaymentID:   d.RepaymentID,
		UserID:        d.UserID,
		LoanID:        d.LoanID,
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		TransferID:    nullable(d.TransferID),
		RepaymentDate: d.RepaymentDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainLoanRepayment(m models.LoanRepayment) domain.LoanRepayment {
	return domain.LoanRepayment{
		RepaymentID:   m.RepaymentID,
		UserID:        m.UserID,
		LoanID:        m.LoanID,
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		TransferID:    deref(m.TransferID),
		RepaymentDate: m.RepaymentDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelTransfer(d domain.Transfer) models.Transfer {
	return models.Transfer{
		TransferID:        d.TransferID,
		UserID:            d.UserID,
		TransferType:      string(d.TransferType),
		FromAccountID:     d.FromAccountID,
		ToAccountID:       d.ToAccountID,
		Amount:            d.Amount,
		CurrencyCode:      d.CurrencyCode,
		SourceDebit:       d.SourceDebit,
		DestinationCredit: d.DestinationCredit,
		TotalFees:         d.TotalFees,
		LoanID:            nullable(d.LoanID),
		TransferDate:      d.TransferDate,
		Notes:             nullable(d.Notes),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		TransferID:        m.TransferID,
		UserID:            m.UserID,
		TransferType:      domain.TransferType(m.TransferType),
		FromAccountID:     m.FromAccountID,
		ToAccountID:       m.ToAccountID,
		Amount:            m.Amount,
		CurrencyCode:      m.CurrencyCode,
		SourceDebit:       m.SourceDebit,
		DestinationCredit: m.DestinationCredit,
		TotalFees:         m.TotalFees,
		LoanID:            deref(m.LoanID),
		TransferDate:      m.TransferDate,
		Notes:             deref(m.Notes),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
