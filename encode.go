package cardfolio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file contains the JSON formats: catalog snapshots, the portfolio blob
// and the custom cards blob.
//
// A catalog snapshot is an array whose items are either parents, with a
// "variants" array, or flat records, one per variant, as written by the
// data-collection scripts. Both can be mixed.
//
//	[{"card_code":"OP01-001","set":"OP01","base_name":"Zoro","variants":[{"variant_id":"OP01-001-NORMAL-0","rarity":"L","price_jpy":100}]}]
//	[{"unique_id":"OP01-001-NORMAL-0","card_code":"OP01-001","set":"OP01","rarity":"L","price_jpy":100}]

// DefaultRarity is the rarity of a catalog variant without one.
const DefaultRarity = "Common"

// jprice is a source price as found in snapshots: a number, a numeric string
// or null.
type jprice int64

func (p *jprice) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*p = 0
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid price %s: %w", data, err)
	}
	if d.IsNegative() {
		return fmt.Errorf("invalid price %s: must not be negative", data)
	}
	*p = jprice(d.IntPart())
	return nil
}

// jvariant is the union of a nested variant and a flat record.
type jvariant struct {
	UniqueID     string `json:"unique_id"`
	VariantID    string `json:"variant_id"`
	CardCode     string `json:"card_code"`
	Set          string `json:"set"`
	BaseName     string `json:"base_name"`
	Name         string `json:"name"`
	VariantName  string `json:"variant_name"`
	Rarity       string `json:"rarity"`
	Price        jprice `json:"price_jpy"`
	ImageURL     string `json:"image_url"`
	Finish       string `json:"finish"`
	HighDemand   bool   `json:"is_high_demand"`
	IsHighDemand bool   `json:"isHighDemand"`
	Custom       bool   `json:"is_custom"`
}

func (j jvariant) variant() CardVariant {
	v := CardVariant{
		ID:          j.UniqueID,
		Code:        j.CardCode,
		Set:         j.Set,
		VariantName: j.VariantName,
		Rarity:      j.Rarity,
		Price:       int64(j.Price),
		Finish:      j.Finish,
		HighDemand:  j.HighDemand || j.IsHighDemand,
		ImageURL:    j.ImageURL,
		BaseName:    j.BaseName,
		Custom:      j.Custom,
	}
	if v.ID == "" {
		v.ID = j.VariantID
	}
	if v.BaseName == "" {
		v.BaseName = j.Name
	}
	return v
}

// jparent is a catalog item, either a parent card or a flat record.
type jparent struct {
	jvariant
	Variants *[]jvariant `json:"variants"`
}

// flatten returns the variants of a catalog item. index is the position of
// the item in the snapshot, for error messages only.
func (p jparent) flatten(index int) ([]CardVariant, error) {
	if p.Variants == nil {
		v := p.variant()
		if v.ID == "" {
			return nil, fmt.Errorf("catalog item %d: flat record without unique_id", index)
		}
		if v.Rarity == "" {
			v.Rarity = DefaultRarity
		}
		return []CardVariant{v}, nil
	}

	list := make([]CardVariant, 0, len(*p.Variants))
	for i, jv := range *p.Variants {
		v := jv.variant()
		// variants inherit the identity of their parent card.
		v.Code = p.CardCode
		v.Set = p.Set
		if v.BaseName == "" {
			v.BaseName = p.BaseName
		}
		if v.ID == "" {
			v.ID = p.CardCode + "-" + strconv.Itoa(i)
		}
		if v.Rarity == "" {
			v.Rarity = DefaultRarity
		}
		list = append(list, v)
	}
	return list, nil
}

// DecodeCatalog reads a catalog snapshot.
//
// selector is an optional JSONPath expression, e.g. "$.cards", selecting the
// array of cards inside a wrapping document. "" and "$" use the whole
// document.
func DecodeCatalog(r io.Reader, selector string) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog: %w", err)
	}
	if selector != "" && selector != "$" {
		data, err = selectJSON(data, selector)
		if err != nil {
			return nil, err
		}
	}

	var items []jparent
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("format error in catalog: %w", err)
	}
	var variants []CardVariant
	for i, item := range items {
		list, err := item.flatten(i)
		if err != nil {
			return nil, fmt.Errorf("format error in catalog: %w", err)
		}
		variants = append(variants, list...)
	}
	return NewCatalog(variants...), nil
}

// selectJSON evaluates a JSONPath expression over data and returns the
// selected value encoded again.
func selectJSON(data []byte, selector string) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("format error in catalog: %w", err)
	}
	jval, err := jsonpath.Get(selector, jobj)
	if err != nil {
		return nil, fmt.Errorf("catalog selector %q: %w", selector, err)
	}
	out, err := json.Marshal(jval)
	if err != nil {
		return nil, fmt.Errorf("catalog selector %q: %w", selector, err)
	}
	return out, nil
}

// LoadCatalog reads a catalog snapshot file.
func LoadCatalog(path, selector string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open catalog: %w", err)
	}
	defer f.Close()
	c, err := DecodeCatalog(f, selector)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// MarshalJSON writes the variant as a flat record.
func (v CardVariant) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("unique_id", v.ID)
	w.Append("card_code", v.Code)
	w.Append("set", v.Set)
	w.Optional("base_name", v.BaseName)
	if v.Custom {
		w.Optional("name", v.BaseName)
	}
	w.Append("variant_name", v.VariantName)
	w.Append("rarity", v.Rarity)
	w.Append("price_jpy", v.Price)
	w.Append("image_url", v.ImageURL)
	w.Append("finish", v.Finish)
	w.Append("is_high_demand", v.HighDemand)
	w.Optional("is_custom", v.Custom)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a flat record.
func (v *CardVariant) UnmarshalJSON(data []byte) error {
	var j jvariant
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*v = j.variant()
	return nil
}

// EncodePortfolio encodes the portfolio blob, keys sorted.
func EncodePortfolio(p Portfolio) ([]byte, error) {
	if p == nil {
		p = Portfolio{}
	}
	return json.Marshal(map[string]int(p))
}

// DecodePortfolio decodes the portfolio blob. An empty blob, or "null", is
// an empty portfolio.
func DecodePortfolio(data []byte) (Portfolio, error) {
	p := make(Portfolio)
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return make(Portfolio), fmt.Errorf("format error in portfolio: %w", err)
	}
	if p == nil {
		p = make(Portfolio)
	}
	return p, nil
}

// EncodeCustomCards encodes the custom cards blob.
func EncodeCustomCards(cards []CardVariant) ([]byte, error) {
	if cards == nil {
		cards = []CardVariant{}
	}
	return json.Marshal(cards)
}

// errMissingID is returned for a custom record without an ID.
var errMissingID = errors.New("custom card without unique_id")

// DecodeCustomCards decodes the custom cards blob. Every record is marked
// custom.
func DecodeCustomCards(data []byte) ([]CardVariant, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var cards []CardVariant
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("format error in custom cards: %w", err)
	}
	for i := range cards {
		if cards[i].ID == "" {
			return nil, fmt.Errorf("format error in custom cards: item %d: %w", i, errMissingID)
		}
		cards[i].Custom = true
	}
	return cards, nil
}
