package pgsql

import (
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	loanRepo := newPgxLoanRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:       newPgxAccountRepository(dbPool),
		ExchangeRateRepo:  newPgxExchangeRateRepository(dbPool),
		ConversionRepo:    newPgxConversionRepository(dbPool),
		LoanRepo:          loanRepo,
		LoanRepaymentRepo: loanRepo,
		IncomeRepo:        ledgerRepo,
		ExpenseRepo:       ledgerRepo,
		InvestmentRepo:    ledgerRepo,
		TransferRepo:      newPgxTransferRepository(dbPool),
	}
}
