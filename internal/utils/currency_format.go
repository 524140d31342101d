package utils

import (
	"github.com/rihlat/travel_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyPrecision returns the number of decimal places tracked for a currency.
// USD amounts carry cents; IQD is accounted in whole dinars.
func CurrencyPrecision(currency domain.Currency) int32 {
	if currency == domain.IQD {
		return 0
	}
	return 2
}

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 1250.7 with IQD (precision 0) returns "1251"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.Round(CurrencyPrecision(currency)).String()
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
