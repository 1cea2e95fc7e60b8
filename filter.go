package cardfolio

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// AllSets is the set selection that disables set filtering.
const AllSets = "All"

// Query holds the user's current browsing criteria.
type Query struct {
	Search  string    // Case-insensitive substring of code, variant name or base name.
	Set     string    // Set code, AllSets or "" for every set.
	Buckets BucketSet // Active rarity buckets, the zero value hides everything.
}

// DefaultQuery returns a query that matches every visible card.
func DefaultQuery() Query {
	return Query{Set: AllSets, Buckets: AllBuckets}
}

// Filter returns the visible, deduplicated and sorted subset of cards.
//
// cards is the merged view, custom cards first. The steps are, in order:
//   - plain commons and uncommons ("C", "UC") of the catalog are hidden,
//   - cards outside the selected set are dropped,
//   - catalog cards sharing code, price and raw rarity with an earlier one
//     are dropped; custom cards never take part in deduplication,
//   - the search term is matched,
//   - cards whose bucket is not active are dropped,
//   - the result is sorted by card code, see CompareCodes.
func Filter(cards []CardVariant, q Query) []CardVariant {
	search := strings.ToLower(q.Search)
	seen := make(map[dedupKey]bool)

	result := make([]CardVariant, 0, len(cards))
	for _, card := range cards {
		if !card.Custom && (card.Rarity == "C" || card.Rarity == "UC") {
			continue
		}
		if q.Set != "" && q.Set != AllSets && card.Set != q.Set {
			continue
		}
		if !card.Custom {
			key := card.dedupKey()
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		if !matches(card, search) {
			continue
		}
		if !q.Buckets.Has(card.Bucket()) {
			continue
		}
		result = append(result, card)
	}

	slices.SortStableFunc(result, func(a, b CardVariant) int { return CompareCodes(a.Code, b.Code) })
	return result
}

// matches reports whether the lower-cased search term is found in the code,
// the variant name or the base name of card.
func matches(card CardVariant, search string) bool {
	if search == "" {
		return true
	}
	for _, field := range []string{card.Code, card.VariantName, card.BaseName} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// splitCode splits a card code at its first dash. A code without a dash has
// an empty suffix.
func splitCode(code string) (prefix, suffix string) {
	prefix, suffix, _ = strings.Cut(code, "-")
	return prefix, suffix
}

// CompareCodes orders card codes by the part before the first dash, then by
// the numeric value of the part after it. When a suffix is not an integer the
// whole codes are compared lexically.
//
//	OP01-002 < OP01-010 < OP02-001
//
// Mixing numeric and non numeric suffixes under the same prefix is not
// transitive: P-2 < P-10 < P-1x < P-2. Sorting such codes gives an order
// that depends on the input order.
func CompareCodes(a, b string) int {
	ap, as := splitCode(a)
	bp, bs := splitCode(b)
	if c := strings.Compare(ap, bp); c != 0 {
		return c
	}
	an, aerr := strconv.Atoi(as)
	bn, berr := strconv.Atoi(bs)
	if aerr != nil || berr != nil {
		return strings.Compare(a, b)
	}
	return cmp.Compare(an, bn)
}

// Group is the list of cards of a single bucket.
type Group struct {
	Bucket Bucket
	Cards  []CardVariant
}

// GroupByBucket splits cards by rarity bucket. It returns one group per
// bucket, in bucket order, including empty ones. Cards keep their relative
// order.
func GroupByBucket(cards []CardVariant) []Group {
	groups := make([]Group, numBuckets)
	for i := range groups {
		groups[i].Bucket = Bucket(i)
	}
	for _, card := range cards {
		b := card.Bucket()
		groups[b].Cards = append(groups[b].Cards, card)
	}
	return groups
}
