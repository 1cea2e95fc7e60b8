package renderer

import (
	"strconv"
	"strings"

	"github.com/etnz/cardfolio"
)

// Cards is the browsable card list, filtered and grouped by rarity bucket.
type Cards struct {
	Count    int           `json:"count"`
	Search   string        `json:"search,omitempty"`
	Set      string        `json:"set"`
	Buckets  string        `json:"buckets"`
	Sections []CardSection `json:"sections"`
}

// CardSection is the non empty list of cards of a bucket.
type CardSection struct {
	Header string    `json:"header"`
	Rows   []CardRow `json:"rows"`
}

// CardRow is a single card, every field is ready for display.
type CardRow struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Variant string `json:"variant"`
	Rarity  string `json:"rarity"`
	Set     string `json:"set"`
	Price   string `json:"price"`
	Owned   string `json:"owned,omitempty"`
}

// NewCards creates the card list from the bucket groups of a filtered view.
// Prices are shown in the converter's target currency.
func NewCards(groups []cardfolio.Group, q cardfolio.Query, owned cardfolio.Portfolio, conv cardfolio.Converter) *Cards {
	c := &Cards{
		Search:  q.Search,
		Set:     q.Set,
		Buckets: bucketList(q.Buckets),
	}
	if c.Set == "" {
		c.Set = cardfolio.AllSets
	}
	for _, g := range groups {
		if len(g.Cards) == 0 {
			continue
		}
		section := CardSection{Header: g.Bucket.Header()}
		for _, card := range g.Cards {
			row := CardRow{
				ID:      cell(card.ID),
				Code:    cell(card.Code),
				Name:    cardName(card),
				Variant: cell(card.VariantName),
				Rarity:  cell(card.Rarity),
				Set:     cell(card.Set),
				Price:   conv.Format(conv.DisplayPrice(card.Price)),
			}
			if qty := owned[card.ID]; qty > 0 {
				row.Owned = strconv.Itoa(qty)
			}
			section.Rows = append(section.Rows, row)
		}
		c.Count += len(section.Rows)
		c.Sections = append(c.Sections, section)
	}
	return c
}

func bucketList(set cardfolio.BucketSet) string {
	if set == cardfolio.AllBuckets {
		return "all"
	}
	buckets := set.Buckets()
	if len(buckets) == 0 {
		return "none"
	}
	names := make([]string, len(buckets))
	for i, b := range buckets {
		names[i] = b.String()
	}
	return strings.Join(names, ", ")
}

func cardName(card cardfolio.CardVariant) string {
	name := cell(card.Name())
	if card.HighDemand {
		name += " **HOT**"
	}
	if card.Custom {
		name += " *(custom)*"
	}
	return name
}

// cell escapes s for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
