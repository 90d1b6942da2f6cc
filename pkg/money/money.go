package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Rates are displayed in South African rand, matching the application locale
var zaPrinter = message.NewPrinter(language.MustParse("en-ZA"))

// FormatZAR renders an amount as an en-ZA currency string (e.g. "R 250.00").
// Display-only; the stored value stays an exact decimal.
func FormatZAR(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	return zaPrinter.Sprintf("%v", currency.Symbol(currency.ZAR.Amount(f)))
}
