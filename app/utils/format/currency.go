package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Money renders an amount with the currency symbol snapshotted on the order
// or configured on the store, e.g. "USh 25,000.00".
func Money(amount decimal.Decimal, symbol string) string {
	ac := accounting.Accounting{Symbol: symbol + " ", Precision: 2}
	return ac.FormatMoneyDecimal(amount)
}
