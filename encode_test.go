package cardfolio

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

const nestedSnapshot = `[
  {"card_code": "OP01-001", "set": "OP01", "base_name": "Roronoa Zoro", "variants": [
    {"variant_id": "OP01-001-L", "variant_name": "Standard", "rarity": "L", "price_jpy": 100},
    {"variant_name": "Parallel", "rarity": "P-L", "price_jpy": "2400", "isHighDemand": true},
    {"price_jpy": null}
  ]},
  {"unique_id": "ST01-001-SR", "card_code": "ST01-001", "set": "ST01", "name": "Luffy", "rarity": "SR", "price_jpy": 101.9, "is_high_demand": true}
]`

func TestDecodeCatalog(t *testing.T) {
	c, err := DecodeCatalog(strings.NewReader(nestedSnapshot), "")
	if err != nil {
		t.Fatalf("DecodeCatalog() failed: %v", err)
	}
	if got, want := ids(c.Variants()), []string{"OP01-001-L", "OP01-001-1", "OP01-001-2", "ST01-001-SR"}; !slices.Equal(got, want) {
		t.Fatalf("DecodeCatalog() IDs = %v; want %v", got, want)
	}

	testCases := []struct {
		id   string
		want CardVariant
	}{
		{"OP01-001-L", CardVariant{ID: "OP01-001-L", Code: "OP01-001", Set: "OP01", VariantName: "Standard", Rarity: "L", Price: 100, BaseName: "Roronoa Zoro"}},
		{"OP01-001-1", CardVariant{ID: "OP01-001-1", Code: "OP01-001", Set: "OP01", VariantName: "Parallel", Rarity: "P-L", Price: 2400, HighDemand: true, BaseName: "Roronoa Zoro"}},
		{"OP01-001-2", CardVariant{ID: "OP01-001-2", Code: "OP01-001", Set: "OP01", Rarity: DefaultRarity, BaseName: "Roronoa Zoro"}},
		{"ST01-001-SR", CardVariant{ID: "ST01-001-SR", Code: "ST01-001", Set: "ST01", Rarity: "SR", Price: 101, HighDemand: true, BaseName: "Luffy"}},
	}
	for _, tc := range testCases {
		got, ok := c.Lookup(tc.id)
		if !ok || got != tc.want {
			t.Errorf("Lookup(%q) = %+v, %v; want %+v", tc.id, got, ok, tc.want)
		}
	}
}

func TestDecodeCatalog_Selector(t *testing.T) {
	doc := `{"version": 3, "cards": ` + nestedSnapshot + `}`
	c, err := DecodeCatalog(strings.NewReader(doc), "$.cards")
	if err != nil {
		t.Fatalf("DecodeCatalog($.cards) failed: %v", err)
	}
	if c.Len() != 4 {
		t.Errorf("DecodeCatalog($.cards).Len() = %d; want 4", c.Len())
	}
	if got := c.Price("OP01-001-1"); got != 2400 {
		t.Errorf("Price(OP01-001-1) = %d; want 2400", got)
	}

	if _, err := DecodeCatalog(strings.NewReader(doc), "$.missing"); err == nil {
		t.Error("DecodeCatalog($.missing) succeeded; want an error")
	}
}

func TestDecodeCatalog_Errors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"not json", `[{`},
		{"not an array", `{"unique_id": "A"}`},
		{"flat without id", `[{"card_code": "OP01-001", "rarity": "SR"}]`},
		{"negative price", `[{"unique_id": "A", "price_jpy": -3}]`},
		{"bad price", `[{"unique_id": "A", "price_jpy": "cheap"}]`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeCatalog(strings.NewReader(tc.data), ""); err == nil {
				t.Errorf("DecodeCatalog(%s) succeeded; want an error", tc.data)
			}
		})
	}
}

func TestDecodeCatalog_Duplicates(t *testing.T) {
	data := `[{"unique_id": "A", "price_jpy": 1}, {"unique_id": "A", "price_jpy": 2}]`
	c, err := DecodeCatalog(strings.NewReader(data), "$")
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 || c.Price("A") != 1 {
		t.Errorf("duplicate IDs: Len() = %d, Price(A) = %d; want 1, 1", c.Len(), c.Price("A"))
	}
	if got := c.Duplicates(); !slices.Equal(got, []string{"A"}) {
		t.Errorf("Duplicates() = %v; want [A]", got)
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.json")
	if err := os.WriteFile(path, []byte(nestedSnapshot), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCatalog(path, "")
	if err != nil {
		t.Fatalf("LoadCatalog() failed: %v", err)
	}
	if c.Len() != 4 {
		t.Errorf("LoadCatalog().Len() = %d; want 4", c.Len())
	}
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"), ""); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadCatalog(missing) = %v; want a not exist error", err)
	}
}

func TestPortfolioBlob(t *testing.T) {
	p := Portfolio{"b": 2, "a": 1}
	data, err := EncodePortfolio(p)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"a":1,"b":2}`; got != want {
		t.Errorf("EncodePortfolio() = %s; want %s", got, want)
	}
	if data, _ := EncodePortfolio(nil); string(data) != "{}" {
		t.Errorf("EncodePortfolio(nil) = %s; want {}", data)
	}

	testCases := []struct {
		name    string
		data    string
		want    Portfolio
		wantErr bool
	}{
		{"object", `{"a":1,"b":2}`, Portfolio{"a": 1, "b": 2}, false},
		{"empty", ``, Portfolio{}, false},
		{"null", `null`, Portfolio{}, false},
		{"corrupt", `{"a":`, Portfolio{}, true},
		{"wrong type", `["a"]`, Portfolio{}, true},
		{"wrong quantity", `{"a":"one"}`, Portfolio{}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodePortfolio([]byte(tc.data))
			if (err != nil) != tc.wantErr {
				t.Errorf("DecodePortfolio(%q) error = %v; want error %v", tc.data, err, tc.wantErr)
			}
			if got == nil || !maps.Equal(got, tc.want) {
				t.Errorf("DecodePortfolio(%q) = %v; want %v", tc.data, got, tc.want)
			}
		})
	}
}

func TestCustomCardsBlob(t *testing.T) {
	r := fixedClock(1700000000000)
	card, err := r.Create(CustomFields{Code: "OP01-001", Name: "Zoro", Price: 5000})
	if err != nil {
		t.Fatal(err)
	}
	data, err := EncodeCustomCards(r.List())
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"unique_id":"OP01-001-CUSTOM-1700000000000","card_code":"OP01-001","set":"PROMO","base_name":"Zoro","name":"Zoro",` +
		`"variant_name":"Manual Entry","rarity":"P-SEC","price_jpy":5000,"image_url":"https://placehold.co/400x560/png?text=No+Image",` +
		`"finish":"Foil","is_high_demand":true,"is_custom":true}]`
	if string(data) != want {
		t.Errorf("EncodeCustomCards() =\n%s\nwant\n%s", data, want)
	}

	cards, err := DecodeCustomCards(data)
	if err != nil {
		t.Fatalf("DecodeCustomCards() failed: %v", err)
	}
	if len(cards) != 1 || cards[0] != card {
		t.Errorf("DecodeCustomCards() = %+v; want [%+v]", cards, card)
	}

	if data, _ := EncodeCustomCards(nil); string(data) != "[]" {
		t.Errorf("EncodeCustomCards(nil) = %s; want []", data)
	}
	if cards, err := DecodeCustomCards(nil); err != nil || len(cards) != 0 {
		t.Errorf("DecodeCustomCards(nil) = %v, %v; want empty", cards, err)
	}
	if _, err := DecodeCustomCards([]byte(`[{"card_code":"X"}]`)); err == nil {
		t.Error("DecodeCustomCards(no id) succeeded; want an error")
	}
	if _, err := DecodeCustomCards([]byte(`{`)); err == nil {
		t.Error("DecodeCustomCards(corrupt) succeeded; want an error")
	}
}

func TestDecodeCustomCards_LegacyRecord(t *testing.T) {
	// Records written without is_custom nor base_name are still custom cards.
	data := `[{"unique_id":"X-CUSTOM-1","card_code":"X","name":"Old","price_jpy":"10"}]`
	cards, err := DecodeCustomCards([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 1 || !cards[0].Custom || cards[0].BaseName != "Old" || cards[0].Price != 10 {
		t.Errorf("DecodeCustomCards() = %+v; want a custom card named Old", cards)
	}
}
