package cardfolio

import (
	"regexp"
	"strings"
)

// Method tells how a saved variant ID was bound to the current catalog.
type Method int

const (
	// Exact means the ID still exists in the catalog.
	Exact Method = iota
	// Structural means the ID lost its trailing "-<digits>" index and another
	// variant starting with the same base was found.
	Structural
	// Legacy means the ID follows an older "code-price-index" scheme and was
	// matched on card code and index.
	Legacy
	// Unresolved means no variant could be found, the ID is kept as is.
	Unresolved
)

func (m Method) String() string {
	switch m {
	case Exact:
		return "exact"
	case Structural:
		return "structural"
	case Legacy:
		return "legacy"
	case Unresolved:
		return "unresolved"
	}
	return "unknown"
}

// Resolution describes the fate of a single non exact portfolio entry.
type Resolution struct {
	From     string // ID as it was saved.
	To       string // ID in the healed portfolio, same as From when Unresolved.
	Quantity int
	Method   Method
}

// Healing is the result of Heal.
type Healing struct {
	Portfolio   Portfolio
	Changed     bool         // The healed portfolio must be saved.
	Resolutions []Resolution // Non exact entries, sorted by original ID.
}

// Unresolved returns the entries that could not be bound to the catalog.
func (h Healing) Unresolved() []Resolution {
	var list []Resolution
	for _, r := range h.Resolutions {
		if r.Method == Unresolved {
			list = append(list, r)
		}
	}
	return list
}

// trailingIndex matches a trailing "-<digits>" suffix.
var trailingIndex = regexp.MustCompile(`^(.*)-[0-9]+$`)

// Heal reconciles a saved portfolio with the current catalog.
//
// Variant IDs are regenerated each time the catalog is rebuilt, so a saved ID
// may no longer exist. Each entry is, in order:
//  1. kept when its ID is still in the catalog,
//  2. re-bound to the first variant starting with the ID stripped of its
//     trailing "-<digits>",
//  3. re-bound through the legacy "code-price-index" formats: the variant of
//     the same card code whose ID ends with "-<index>",
//  4. kept unchanged otherwise.
//
// Custom card IDs are only ever kept or left unresolved: a deleted custom
// card is never re-bound to another custom card of the same code.
//
// Quantities re-bound to the same variant add up; no quantity is ever lost.
// Changed is false only when every entry matched exactly.
//
// saved is not modified.
func Heal(saved Portfolio, catalog *Catalog) Healing {
	h := Healing{Portfolio: make(Portfolio, len(saved))}
	for _, id := range saved.IDs() {
		qty := saved[id]
		to, method := resolve(id, catalog)
		h.Portfolio[to] += qty
		if method == Exact {
			continue
		}
		h.Changed = true
		h.Resolutions = append(h.Resolutions, Resolution{From: id, To: to, Quantity: qty, Method: method})
	}
	return h
}

// resolve finds the live ID for a saved ID.
func resolve(id string, catalog *Catalog) (string, Method) {
	if catalog.Has(id) {
		return id, Exact
	}
	if strings.Contains(id, customMarker) {
		return id, Unresolved
	}
	if m := trailingIndex.FindStringSubmatch(id); m != nil {
		if v, ok := catalog.firstWithPrefix(m[1]); ok {
			return v.ID, Structural
		}
	}
	if code, index, ok := parseLegacyID(id); ok {
		suffix := "-" + index
		for _, v := range catalog.withCode(code) {
			if strings.HasSuffix(v.ID, suffix) {
				return v.ID, Legacy
			}
		}
	}
	return id, Unresolved
}

// parseLegacyID extracts the card code and the positional index of an ID
// following an older scheme.
//
//	DON-OP01-001-<price>-<index>  code "DON-OP01-001"
//	OP01-001-<price>-<index>      code "OP01-001"
//
// These token counts and positions are part of the saved data; do not change
// them.
func parseLegacyID(id string) (code, index string, ok bool) {
	tokens := strings.Split(id, "-")
	switch {
	case strings.HasPrefix(id, "DON") && len(tokens) == 5 && isDigits(tokens[3]):
		return strings.Join(tokens[:3], "-"), tokens[4], true
	case len(tokens) == 4 && isDigits(tokens[2]):
		return strings.Join(tokens[:2], "-"), tokens[3], true
	}
	return "", "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
