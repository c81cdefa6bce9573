package domain

// Currency represents a supported currency in the catalog.
// The catalog is used for validation and display only; conversion
// succeeds only for codes present in the live rate table.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g., "USD"
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // minor-unit digits, e.g. 2 for USD, 0 for JPY
}

// SupportedCurrencies lists the codes offered in the UI, with display names.
// Symbol and Precision are filled in by the currency service.
var SupportedCurrencies = []Currency{
	{CurrencyCode: "USD", Name: "US Dollar"},
	{CurrencyCode: "EUR", Name: "Euro"},
	{CurrencyCode: "GBP", Name: "British Pound"},
	{CurrencyCode: "INR", Name: "Indian Rupee"},
	{CurrencyCode: "JPY", Name: "Japanese Yen"},
	{CurrencyCode: "CAD", Name: "Canadian Dollar"},
	{CurrencyCode: "AUD", Name: "Australian Dollar"},
	{CurrencyCode: "CHF", Name: "Swiss Franc"},
	{CurrencyCode: "CNY", Name: "Chinese Yuan"},
	{CurrencyCode: "SGD", Name: "Singapore Dollar"},
	{CurrencyCode: "AED", Name: "UAE Dirham"},
	{CurrencyCode: "NZD", Name: "New Zealand Dollar"},
	{CurrencyCode: "HKD", Name: "Hong Kong Dollar"},
	{CurrencyCode: "SEK", Name: "Swedish Krona"},
	{CurrencyCode: "ZAR", Name: "South African Rand"},
}
