package services

import (
	"github.com/SscSPs/finance_tracker/internal/core/ports"
	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
)

// NewServiceContainer wires every service. The rate provider is created once here
// and shared by reference with everything that converts.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, source ports.RateSource, opts ...ServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.RateProvider = NewRateProvider(source, repos.ExchangeRateRepo, cfg.BaseCurrency,
		WithCacheTTL(cfg.RateCacheTTL),
		WithRateProviderBase(opts...),
	)
	container.Converter = NewCurrencyConverter(container.RateProvider, opts...)

	currencies := NewCurrencyService(nil)
	container.Currency = currencies
	container.Account = NewAccountService(repos.AccountRepo, currencies, opts...)
	container.Conversion = NewConversionAuditService(repos.ConversionRepo, opts...)

	rec := newReconciler(newBaseService(opts...), container.Converter, repos.AccountRepo, repos.ConversionRepo)
	loans := newLoanService(rec, repos)

	container.Income = newIncomeService(rec, repos.IncomeRepo)
	container.Expense = newExpenseService(rec, repos.ExpenseRepo)
	container.Investment = newInvestmentService(rec, repos.InvestmentRepo)
	container.Loan = loans
	container.Transfer = newTransferService(rec, repos, loans, cfg.ReferenceCurrency)

	return container
}
