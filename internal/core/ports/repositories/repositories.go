package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo       AccountRepositoryFacade
	ExchangeRateRepo  ExchangeRateRepositoryFacade
	ConversionRepo    ConversionRepositoryFacade
	LoanRepo          LoanRepositoryFacade
	LoanRepaymentRepo LoanRepaymentRepositoryFacade
	IncomeRepo        IncomeRepositoryFacade
	ExpenseRepo       ExpenseRepositoryFacade
	InvestmentRepo    InvestmentRepositoryFacade
	TransferRepo      TransferRepositoryFacade
}
