package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cardfolio"
)

// SetsMarkdown renders the set codes by category. Empty categories are skipped.
func SetsMarkdown(categories []cardfolio.SetCategory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Sets\n\n")
	fmt.Fprintf(&b, "* %s\n", cardfolio.AllSets)
	for _, c := range categories {
		if len(c.Sets) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n", c.Name)
		for _, set := range c.Sets {
			fmt.Fprintf(&b, "* %s\n", set)
		}
	}
	return b.String()
}

// SummaryMarkdown renders the total units and value of the portfolio.
func SummaryMarkdown(s cardfolio.Summary, conv cardfolio.Converter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio Value\n\n")
	fmt.Fprintln(&b, "| Units | Value | Rate |")
	fmt.Fprintln(&b, "|---:|---:|---:|")
	rate := conv.Rate().String()
	if conv.Source() != "" {
		rate = fmt.Sprintf("1 %s = %s %s", conv.Source(), rate, conv.Target())
	}
	fmt.Fprintf(&b, "| %d | %s | %s |\n", s.TotalUnits, conv.Format(s.TotalValue), rate)
	return b.String()
}

// CustomMarkdown renders the custom cards.
func CustomMarkdown(cards []cardfolio.CardVariant, conv cardfolio.Converter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Custom Cards\n\n")
	if len(cards) == 0 {
		fmt.Fprintln(&b, "No custom card.")
		return b.String()
	}
	fmt.Fprintln(&b, "| ID | Code | Name | Variant | Rarity | Set | Finish | Price |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|:---|:---|:---|---:|")
	for _, c := range cards {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			cell(c.ID),
			cell(c.Code),
			cell(c.Name()),
			cell(c.VariantName),
			cell(c.Rarity),
			cell(c.Set),
			cell(c.Finish),
			conv.Format(conv.DisplayPrice(c.Price)),
		)
	}
	return b.String()
}

// FindMarkdown renders the result of a fuzzy search.
func FindMarkdown(text string, matches []cardfolio.Match, conv cardfolio.Converter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Search %q\n\n", text)
	if len(matches) == 0 {
		fmt.Fprintln(&b, "No card found.")
		return b.String()
	}
	fmt.Fprintln(&b, "| ID | Code | Name | Variant | Rarity | Price |")
	fmt.Fprintln(&b, "|:---|:---|:---|:---|:---|---:|")
	for _, m := range matches {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			cell(m.Card.ID),
			cell(m.Card.Code),
			cardName(m.Card),
			cell(m.Card.VariantName),
			cell(m.Card.Rarity),
			conv.Format(conv.DisplayPrice(m.Card.Price)),
		)
	}
	return b.String()
}

// CardMarkdown renders the details of a single card and the owned quantity.
func CardMarkdown(card cardfolio.CardVariant, owned int, conv cardfolio.Converter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s\n\n", card.Code, card.Name())
	fmt.Fprintln(&b, "| Field | Value |")
	fmt.Fprintln(&b, "|:---|:---|")
	row := func(k, v string) {
		if v != "" {
			fmt.Fprintf(&b, "| %s | %s |\n", k, cell(v))
		}
	}
	row("ID", card.ID)
	row("Set", card.Set)
	row("Variant", card.VariantName)
	row("Rarity", fmt.Sprintf("%s (%s)", card.Rarity, card.Bucket()))
	row("Finish", card.Finish)
	row("Price", conv.Format(conv.DisplayPrice(card.Price)))
	row("Owned", fmt.Sprint(owned))
	if owned > 0 {
		row("Subtotal", conv.Format(conv.Subtotal(card.Price, owned)))
	}
	if card.HighDemand {
		row("Demand", "high")
	}
	if card.Custom {
		row("Origin", "custom")
	}
	row("Image", card.ImageURL)
	return b.String()
}
