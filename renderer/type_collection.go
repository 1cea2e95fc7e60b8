package renderer

import (
	"github.com/etnz/cardfolio"
)

// Collection is the owned cards grouped by bucket, with their value.
type Collection struct {
	TotalUnits int                 `json:"totalUnits"`
	TotalValue string              `json:"totalValue"`
	Sections   []CollectionSection `json:"sections"`
	Unresolved []UnresolvedRow     `json:"unresolved,omitempty"`
}

// CollectionSection is the non empty list of owned cards of a bucket.
type CollectionSection struct {
	Header string          `json:"header"`
	Units  int             `json:"units"`
	Value  string          `json:"value"`
	Rows   []CollectionRow `json:"rows"`
}

// CollectionRow is an owned card.
type CollectionRow struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Variant   string `json:"variant"`
	Rarity    string `json:"rarity"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Subtotal  string `json:"subtotal"`
}

// UnresolvedRow is a saved ID that matches no card.
type UnresolvedRow struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// NewCollection creates the collection report.
//
// The total comes from the summary and is computed on the sum of the source
// prices, it may differ from the sum of the displayed subtotals. A section
// value is the sum of its displayed subtotals.
func NewCollection(groups []cardfolio.HoldingGroup, sum cardfolio.Summary, healing cardfolio.Healing, conv cardfolio.Converter) *Collection {
	c := &Collection{
		TotalUnits: sum.TotalUnits,
		TotalValue: conv.Format(sum.TotalValue),
	}
	for _, g := range groups {
		if len(g.Holdings) == 0 {
			continue
		}
		section := CollectionSection{Header: g.Bucket.Header()}
		var value cardfolio.Money
		for _, h := range g.Holdings {
			section.Units += h.Quantity
			value = value.Add(conv.Money(h.Subtotal))
			section.Rows = append(section.Rows, CollectionRow{
				ID:        cell(h.Card.ID),
				Code:      cell(h.Card.Code),
				Name:      cardName(h.Card),
				Variant:   cell(h.Card.VariantName),
				Rarity:    cell(h.Card.Rarity),
				Quantity:  h.Quantity,
				UnitPrice: conv.Format(conv.DisplayPrice(h.Card.Price)),
				Subtotal:  conv.Format(h.Subtotal),
			})
		}
		section.Value = value.String()
		c.Sections = append(c.Sections, section)
	}
	for _, r := range healing.Unresolved() {
		c.Unresolved = append(c.Unresolved, UnresolvedRow{ID: cell(r.From), Quantity: r.Quantity})
	}
	return c
}
