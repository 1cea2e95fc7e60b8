package cardfolio

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMissingField is returned when a custom card lacks a required field.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidPrice is returned for a negative price.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrNotFound is returned when a custom card does not exist.
	ErrNotFound = errors.New("not found")
)

// Default values of custom cards.
const (
	DefaultCustomSet         = "PROMO"
	DefaultCustomRarity      = "P-SEC"
	DefaultCustomFinish      = "Foil"
	DefaultCustomVariantName = "Manual Entry"
	DefaultCustomImageURL    = "https://placehold.co/400x560/png?text=No+Image"
)

// customMarker separates the card code from the timestamp in custom IDs.
const customMarker = "-CUSTOM-"

// CustomFields are the user inputs of a custom card. Code and Name are
// required, everything else has a default.
type CustomFields struct {
	Code        string
	Name        string // Base name of the card.
	Set         string
	VariantName string
	Rarity      string
	Finish      string
	ImageURL    string
	Price       int64 // In the source currency.
}

// Registry holds the custom cards of a user, in creation order.
type Registry struct {
	cards []CardVariant
	now   func() time.Time
	last  int64 // last timestamp used in an ID, in unix milliseconds.
}

// NewRegistry returns a registry holding previously created cards.
func NewRegistry(cards ...CardVariant) *Registry {
	r := &Registry{now: time.Now}
	for _, c := range cards {
		c.Custom = true
		r.cards = append(r.cards, c)
		if ts, ok := customTimestamp(c.ID); ok && ts > r.last {
			r.last = ts
		}
	}
	return r
}

// customTimestamp parses the timestamp of a custom ID.
func customTimestamp(id string) (int64, bool) {
	i := strings.LastIndex(id, customMarker)
	if i < 0 {
		return 0, false
	}
	ts, err := strconv.ParseInt(id[i+len(customMarker):], 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}

// Create validates fields and registers a new custom card.
//
// The card ID is "<CODE>-CUSTOM-<unix ms>"; the timestamp strictly increases
// within the registry so two cards created in the same millisecond still get
// distinct IDs.
func (r *Registry) Create(f CustomFields) (CardVariant, error) {
	code := strings.ToUpper(strings.TrimSpace(f.Code))
	name := strings.TrimSpace(f.Name)
	if code == "" {
		return CardVariant{}, fmt.Errorf("card code: %w", ErrMissingField)
	}
	if name == "" {
		return CardVariant{}, fmt.Errorf("card name: %w", ErrMissingField)
	}
	if f.Price < 0 {
		return CardVariant{}, fmt.Errorf("%w: %d", ErrInvalidPrice, f.Price)
	}

	ts := r.now().UnixMilli()
	if ts <= r.last {
		ts = r.last + 1
	}
	r.last = ts

	card := CardVariant{
		ID:          code + customMarker + strconv.FormatInt(ts, 10),
		Code:        code,
		Set:         orDefault(strings.ToUpper(strings.TrimSpace(f.Set)), DefaultCustomSet),
		VariantName: orDefault(f.VariantName, DefaultCustomVariantName),
		Rarity:      orDefault(f.Rarity, DefaultCustomRarity),
		Price:       f.Price,
		Finish:      orDefault(f.Finish, DefaultCustomFinish),
		HighDemand:  true,
		ImageURL:    orDefault(f.ImageURL, DefaultCustomImageURL),
		BaseName:    name,
		Custom:      true,
	}
	r.cards = append(r.cards, card)
	return card, nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// Delete removes the custom card with the given ID.
func (r *Registry) Delete(id string) error {
	i := slices.IndexFunc(r.cards, func(c CardVariant) bool { return c.ID == id })
	if i < 0 {
		return fmt.Errorf("custom card %q: %w", id, ErrNotFound)
	}
	r.cards = slices.Delete(r.cards, i, i+1)
	return nil
}

// clone returns an independent copy of r.
func (r *Registry) clone() *Registry {
	return &Registry{cards: slices.Clone(r.cards), now: r.now, last: r.last}
}

// List returns the custom cards in creation order.
func (r *Registry) List() []CardVariant { return slices.Clone(r.cards) }

// Len returns the number of custom cards.
func (r *Registry) Len() int { return len(r.cards) }
