package cardfolio

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Placeholder is how a zero amount is displayed.
const Placeholder = "---"

// Money is an amount in the smallest whole unit of a currency, displayed
// without fraction digits.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M returns the money amount of value in currency.
func M(value int64, currency string) Money {
	return Money{value: decimal.NewFromInt(value), cur: currency}
}

func (m Money) Amount() int64 { return m.value.IntPart() }
func (m Money) IsZero() bool  { return m.value.IsZero() }

// Add returns m + n. An empty currency takes the currency of the other
// operand.
func (m Money) Add(n Money) Money {
	cur := m.cur
	if cur == "" {
		cur = n.cur
	}
	return Money{value: m.value.Add(n.value), cur: cur}
}

func (m Money) Mul(qty int) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(int64(qty))), cur: m.cur}
}

// String formats the amount with the currency symbol and no fraction digits,
// e.g. "₱1,250". Zero is rendered as Placeholder.
func (m Money) String() string {
	if m.IsZero() {
		return Placeholder
	}
	// to get a never nil currency I need to call the Money constructor
	c := money.New(0, m.cur).Currency()
	f := money.NewFormatter(0, c.Decimal, c.Thousand, c.Grapheme, c.Template)
	return f.Format(m.value.IntPart())
}
