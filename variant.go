package cardfolio

// CardVariant is one sellable printing of a card: a specific finish or
// parallel rarity of a card code, with its own price.
//
// Catalog variants are immutable once loaded. Custom variants are created and
// deleted by the Registry only.
type CardVariant struct {
	ID          string // Unique within a catalog snapshot.
	Code        string // Card code, e.g. "OP01-001".
	Set         string // Set code, e.g. "OP01".
	VariantName string
	Rarity      string // Raw rarity label as found in the snapshot.
	Price       int64  // Price in the source currency, smallest whole unit.
	Finish      string
	HighDemand  bool
	ImageURL    string
	BaseName    string // Card name shared by all variants, optional.
	Custom      bool   // Created by the user rather than loaded from the catalog.
}

// Name returns the display name of the card, the base name or the card code
// when there is none.
func (v CardVariant) Name() string {
	if v.BaseName != "" {
		return v.BaseName
	}
	return v.Code
}

// Bucket returns the rarity bucket of the variant.
func (v CardVariant) Bucket() Bucket { return Classify(v.Rarity) }

// dedupKey is the key under which identical catalog listings collapse.
type dedupKey struct {
	code   string
	price  int64
	rarity string
}

func (v CardVariant) dedupKey() dedupKey {
	return dedupKey{code: v.Code, price: v.Price, rarity: v.Rarity}
}
