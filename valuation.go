package cardfolio

import (
	"github.com/shopspring/decimal"
)

// DefaultRate is the conversion rate used when none is configured.
var DefaultRate = decimal.RequireFromString("0.35")

// Converter converts source-currency prices into the target currency.
//
// Conversion always rounds up: sellers round in their favor. The results
// are in the smallest whole unit of the target currency.
type Converter struct {
	rate      decimal.Decimal
	source    string
	target    string
	tensAbove int64
}

// NewConverter returns a converter applying rate and formatting amounts in
// the target currency.
func NewConverter(rate decimal.Decimal, target string) Converter {
	return Converter{rate: rate, target: target}
}

// WithRoundToTens returns a copy of c whose DisplayPrice rounds unit prices
// above threshold up to the next multiple of ten. A threshold of 0 disables
// it.
func (c Converter) WithRoundToTens(threshold int64) Converter {
	c.tensAbove = threshold
	return c
}

// WithSource returns a copy of c naming the currency of catalog prices.
func (c Converter) WithSource(currency string) Converter {
	c.source = currency
	return c
}

func (c Converter) Rate() decimal.Decimal { return c.rate }
func (c Converter) Source() string        { return c.source }
func (c Converter) Target() string        { return c.target }

// Convert returns ceil(price × rate). A zero price converts to 0.
func (c Converter) Convert(price int64) int64 {
	if price <= 0 {
		return 0
	}
	return c.ceil(decimal.NewFromInt(price))
}

// ceil converts a source amount and rounds it up.
func (c Converter) ceil(amount decimal.Decimal) int64 {
	return amount.Mul(c.rate).Ceil().IntPart()
}

// DisplayPrice is the unit price shown next to a card: Convert, then the
// optional rounding to tens. It is never used for totals.
func (c Converter) DisplayPrice(price int64) int64 {
	v := c.Convert(price)
	if c.tensAbove > 0 && v > c.tensAbove {
		v = (v + 9) / 10 * 10
	}
	return v
}

// Subtotal is the value of qty units of a card as shown in the collection:
// the unit price is rounded up first, then multiplied.
func (c Converter) Subtotal(price int64, qty int) int64 {
	return c.Money(c.Convert(price)).Mul(qty).Amount()
}

// Total is the value of the whole portfolio: prices are summed in the source
// currency and converted once, so the result can be lower than the sum of
// the subtotals. Unknown IDs are worth 0.
func (c Converter) Total(p Portfolio, catalog *Catalog) int64 {
	sum := decimal.Zero
	for id, qty := range p {
		sum = sum.Add(decimal.NewFromInt(catalog.Price(id)).Mul(decimal.NewFromInt(int64(qty))))
	}
	if sum.IsZero() {
		return 0
	}
	return c.ceil(sum)
}

// Money returns amount as Money in the target currency.
func (c Converter) Money(amount int64) Money { return M(amount, c.target) }

// Format renders amount in the target currency, Placeholder for zero.
func (c Converter) Format(amount int64) string { return c.Money(amount).String() }

// Summary is the valuation of a portfolio.
type Summary struct {
	TotalUnits int   // Every stored unit, including unresolved IDs.
	TotalValue int64 // Total in the target currency.
}

// Summarize computes the portfolio summary.
func (c Converter) Summarize(p Portfolio, catalog *Catalog) Summary {
	return Summary{TotalUnits: p.Units(), TotalValue: c.Total(p, catalog)}
}
