package calc

import "github.com/shopspring/decimal"

// All monetary math in the engines goes through this package so amounts stay
// exact decimals end to end. Binary floats never touch a money field.

func Zero() decimal.Decimal {
	return decimal.Zero
}

// LineSubtotal is unit price times an integer quantity.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Percentage returns amount% of base, e.g. Percentage(100.00, 10) = 10.00.
func Percentage(base, amount decimal.Decimal) decimal.Decimal {
	return base.Mul(amount).Div(decimal.NewFromInt(100))
}

// LineTotal applies the line-level formula: subtotal - discount + tax.
func LineTotal(subtotal, discount, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount).Add(tax)
}

// AggregateTotal is the cart/order-level formula:
// subtotal - discount + tax + shipping. Tax and shipping are zero today but
// the formula stays general so those engines plug in without rederiving it.
func AggregateTotal(subtotal, discount, tax, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount).Add(tax).Add(shipping)
}

// IsNegative flags an invariant violation; negative money is never clamped.
func IsNegative(d decimal.Decimal) bool {
	return d.Sign() < 0
}
