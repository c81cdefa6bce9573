// Package memory holds process-local repositories used by the in-memory storage
// driver and by service tests. Records are copied in and out so callers never
// share state with the store.
package memory

import (
	"sync"

	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// Store keeps every aggregate behind a single mutex.
type Store struct {
	mu sync.RWMutex

	accounts    map[string]domain.BankAccount
	rateTables  map[string][]domain.RateTable
	conversions []domain.TransactionConversion
	loans       map[string]domain.Loan
	repayments  map[string]domain.LoanRepayment
	incomes     map[string]domain.Income
	expenses    map[string]domain.Expense
	investments map[string]domain.Investment
	transfers   map[string]domain.Transfer
}

func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]domain.BankAccount),
		rateTables:  make(map[string][]domain.RateTable),
		loans:       make(map[string]domain.Loan),
		repayments:  make(map[string]domain.LoanRepayment),
		incomes:     make(map[string]domain.Income),
		expenses:    make(map[string]domain.Expense),
		investments: make(map[string]domain.Investment),
		transfers:   make(map[string]domain.Transfer),
	}
}

// NewRepositoryProvider exposes one Store through every repository port.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return NewStore().Provider()
}

func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:       s,
		ExchangeRateRepo:  s,
		ConversionRepo:    s,
		LoanRepo:          s,
		LoanRepaymentRepo: s,
		IncomeRepo:        s,
		ExpenseRepo:       s,
		InvestmentRepo:    s,
		TransferRepo:      s,
	}
}

// maxRateTablesPerBase bounds how many historical snapshots are kept per base.
const maxRateTablesPerBase = 24
