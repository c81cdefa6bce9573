package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	RateProvider RateProviderSvc
	Converter    CurrencyConverterSvc
	Currency     CurrencySvcFacade
	Account      AccountSvcFacade
	Income       IncomeSvcFacade
	Expense      ExpenseSvcFacade
	Investment   InvestmentSvcFacade
	Loan         LoanSvcFacade
	Transfer     TransferSvcFacade
	Conversion   ConversionAuditSvc
}
