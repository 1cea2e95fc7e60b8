package cardfolio

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// searchItems implements fuzzy.Source over card variants.
type searchItems []CardVariant

func (items searchItems) Len() int { return len(items) }

// String returns the searchable text of the card at index i.
func (items searchItems) String(i int) string {
	c := items[i]
	return strings.ToLower(strings.Join([]string{c.Code, c.Name(), c.VariantName, c.Rarity}, " "))
}

// Match is a card found by Find.
type Match struct {
	Card  CardVariant
	Score int
}

// Find returns the cards fuzzily matching text, best match first, at most
// limit of them (0 means no limit).
//
// Unlike Filter it hides nothing: it is meant to look up the ID of a card
// whose exact code or name is unknown.
func Find(cards []CardVariant, text string, limit int) []Match {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" || len(cards) == 0 {
		return nil
	}
	matches := fuzzy.FindFrom(text, searchItems(cards))
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	result := make([]Match, len(matches))
	for i, m := range matches {
		result[i] = Match{Card: cards[m.Index], Score: m.Score}
	}
	return result
}
