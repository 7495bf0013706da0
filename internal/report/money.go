// Package report renders analytics views into CSV documents, share messages
// and share links.
package report

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.German)

// FormatMoney rounds to whole units and groups thousands with dots:
// 1234567.4 -> "1.234.567".
func FormatMoney(amount decimal.Decimal) string {
	return moneyPrinter.Sprintf("%d", amount.Round(0).IntPart())
}
