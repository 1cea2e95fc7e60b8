package cardfolio

import (
	"slices"
	"strings"
)

// Catalog is a read-only, ordered view of card variants indexed by variant
// ID.
//
// The zero value is an empty catalog.
type Catalog struct {
	variants   []CardVariant
	index      map[string]int
	byCode     map[string][]int
	duplicates []string
}

// NewCatalog creates a catalog from variants, in the given order.
//
// Variant IDs are expected to be unique; when they are not, the first variant
// wins and the later IDs are reported by Duplicates.
func NewCatalog(variants ...CardVariant) *Catalog {
	c := &Catalog{
		variants: make([]CardVariant, 0, len(variants)),
		index:    make(map[string]int, len(variants)),
		byCode:   make(map[string][]int),
	}
	for _, v := range variants {
		if _, exists := c.index[v.ID]; exists {
			c.duplicates = append(c.duplicates, v.ID)
			continue
		}
		i := len(c.variants)
		c.variants = append(c.variants, v)
		c.index[v.ID] = i
		c.byCode[v.Code] = append(c.byCode[v.Code], i)
	}
	return c
}

// Merge returns a catalog made of the custom cards followed by every variant
// of base. base may be nil.
func Merge(custom []CardVariant, base *Catalog) *Catalog {
	all := make([]CardVariant, 0, len(custom)+base.Len())
	all = append(all, custom...)
	all = append(all, base.Variants()...)
	return NewCatalog(all...)
}

// Len returns the number of variants.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.variants)
}

// Variants returns a copy of all variants in catalog order.
func (c *Catalog) Variants() []CardVariant {
	if c == nil {
		return nil
	}
	return slices.Clone(c.variants)
}

// Lookup returns the variant with the given ID.
func (c *Catalog) Lookup(id string) (CardVariant, bool) {
	if c == nil {
		return CardVariant{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return CardVariant{}, false
	}
	return c.variants[i], true
}

// Has reports whether id is a variant ID of the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.Lookup(id)
	return ok
}

// Price returns the source price of a variant, 0 for unknown IDs.
func (c *Catalog) Price(id string) int64 {
	v, _ := c.Lookup(id)
	return v.Price
}

// Duplicates returns the variant IDs that were ignored by NewCatalog because
// an earlier variant had the same ID.
func (c *Catalog) Duplicates() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.duplicates)
}

// firstWithPrefix returns the first variant, in catalog order, whose ID starts
// with prefix.
func (c *Catalog) firstWithPrefix(prefix string) (CardVariant, bool) {
	if c == nil {
		return CardVariant{}, false
	}
	for _, v := range c.variants {
		if strings.HasPrefix(v.ID, prefix) {
			return v, true
		}
	}
	return CardVariant{}, false
}

// withCode returns the variants sharing a card code, in catalog order.
func (c *Catalog) withCode(code string) []CardVariant {
	if c == nil {
		return nil
	}
	list := make([]CardVariant, 0, len(c.byCode[code]))
	for _, i := range c.byCode[code] {
		list = append(list, c.variants[i])
	}
	return list
}

// Sets returns the sorted list of distinct, non empty, set codes.
func (c *Catalog) Sets() []string {
	if c == nil {
		return nil
	}
	return distinctSets(c.variants)
}

func distinctSets(variants []CardVariant) []string {
	seen := make(map[string]bool)
	var sets []string
	for _, v := range variants {
		if v.Set != "" && !seen[v.Set] {
			seen[v.Set] = true
			sets = append(sets, v.Set)
		}
	}
	slices.Sort(sets)
	return sets
}

// SetCategory is a named group of set codes.
type SetCategory struct {
	Name string
	Sets []string
}

// setCategories lists the categories and their set code prefixes, the first
// matching category wins, so "PRB" sets are Extra/Premium, not Promos.
var setCategories = []struct {
	name     string
	prefixes []string
}{
	{"Boosters", []string{"OP"}},
	{"Extra/Premium", []string{"EB", "PRB"}},
	{"Starters", []string{"ST"}},
	{"Promos", []string{"P"}},
}

// OthersCategory is the name of the category for sets matching no prefix.
const OthersCategory = "Others"

// OrganizeSets groups the distinct sets of variants into categories. Every
// category is returned, in a fixed order ending with Others, even when it is
// empty.
func OrganizeSets(variants []CardVariant) []SetCategory {
	categories := make([]SetCategory, 0, len(setCategories)+1)
	for _, sc := range setCategories {
		categories = append(categories, SetCategory{Name: sc.name})
	}
	others := SetCategory{Name: OthersCategory}

	for _, set := range distinctSets(variants) {
		placed := false
		for i, sc := range setCategories {
			if slices.ContainsFunc(sc.prefixes, func(p string) bool { return strings.HasPrefix(set, p) }) {
				categories[i].Sets = append(categories[i].Sets, set)
				placed = true
				break
			}
		}
		if !placed {
			others.Sets = append(others.Sets, set)
		}
	}
	return append(categories, others)
}
