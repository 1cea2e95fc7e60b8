package cardfolio

import (
	"maps"
	"testing"
)

func healCatalog() *Catalog {
	return NewCatalog(
		CardVariant{ID: "OP01-001-FOO-7", Code: "OP01-001", Rarity: "L"},
		CardVariant{ID: "OP01-002-0", Code: "OP01-002", Rarity: "SR", Price: 250},
		CardVariant{ID: "OP01-002-1", Code: "OP01-002", Rarity: "P-SR", Price: 900},
		CardVariant{ID: "DON-OP01-001-0", Code: "DON-OP01-001", Rarity: "DON"},
		CardVariant{ID: "DON-OP01-001-1", Code: "DON-OP01-001", Rarity: "DON"},
		CardVariant{ID: "ST01-001-SR", Code: "ST01-001", Rarity: "SR"},
		CardVariant{ID: "OP01-002-CUSTOM-1700000000002", Code: "OP01-002", Rarity: "P-SEC", Custom: true},
	)
}

func TestHeal(t *testing.T) {
	testCases := []struct {
		name   string
		saved  Portfolio
		want   Portfolio
		method Method
	}{
		{
			name:   "exact",
			saved:  Portfolio{"OP01-002-0": 2},
			want:   Portfolio{"OP01-002-0": 2},
			method: Exact,
		},
		{
			name:   "structural",
			saved:  Portfolio{"OP01-001-FOO-3": 2},
			want:   Portfolio{"OP01-001-FOO-7": 2},
			method: Structural,
		},
		{
			name:   "legacy",
			saved:  Portfolio{"OP01-002-250-1": 1},
			want:   Portfolio{"OP01-002-1": 1},
			method: Legacy,
		},
		{
			name:   "legacy don",
			saved:  Portfolio{"DON-OP01-001-50-1": 3},
			want:   Portfolio{"DON-OP01-001-1": 3},
			method: Legacy,
		},
		{
			name:   "unresolved",
			saved:  Portfolio{"EB09-999-X": 4},
			want:   Portfolio{"EB09-999-X": 4},
			method: Unresolved,
		},
		{
			name:   "custom card",
			saved:  Portfolio{"OP01-002-CUSTOM-1700000000002": 1},
			want:   Portfolio{"OP01-002-CUSTOM-1700000000002": 1},
			method: Exact,
		},
		{
			// the sibling custom card shares the prefix but must not take the units.
			name:   "deleted custom card",
			saved:  Portfolio{"OP01-002-CUSTOM-1700000000001": 2},
			want:   Portfolio{"OP01-002-CUSTOM-1700000000001": 2},
			method: Unresolved,
		},
		{
			name:   "legacy index missing",
			saved:  Portfolio{"ST01-001-100-9": 1},
			want:   Portfolio{"ST01-001-100-9": 1},
			method: Unresolved,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := Heal(tc.saved, healCatalog())
			if !maps.Equal(h.Portfolio, tc.want) {
				t.Errorf("Heal(%v).Portfolio = %v; want %v", tc.saved, h.Portfolio, tc.want)
			}
			if tc.method == Exact {
				if h.Changed || len(h.Resolutions) != 0 {
					t.Errorf("Heal(%v) = changed %v, %v; want unchanged", tc.saved, h.Changed, h.Resolutions)
				}
				return
			}
			if !h.Changed {
				t.Errorf("Heal(%v).Changed = false; want true", tc.saved)
			}
			if len(h.Resolutions) != 1 || h.Resolutions[0].Method != tc.method {
				t.Errorf("Heal(%v).Resolutions = %v; want a single %v", tc.saved, h.Resolutions, tc.method)
			}
		})
	}
}

func TestHeal_Merge(t *testing.T) {
	saved := Portfolio{
		"OP01-001-FOO-3": 1,
		"OP01-001-FOO-5": 2,
		"OP01-001-FOO-7": 4,
	}
	h := Heal(saved, healCatalog())
	want := Portfolio{"OP01-001-FOO-7": 7}
	if !maps.Equal(h.Portfolio, want) {
		t.Errorf("Heal().Portfolio = %v; want %v", h.Portfolio, want)
	}
	if len(h.Resolutions) != 2 {
		t.Errorf("len(Heal().Resolutions) = %d; want 2", len(h.Resolutions))
	}
	if got := h.Resolutions[0].From; got != "OP01-001-FOO-3" {
		t.Errorf("Resolutions[0].From = %q; want the lowest saved ID", got)
	}
}

func TestHeal_Properties(t *testing.T) {
	saved := Portfolio{
		"OP01-001-FOO-3":    2,
		"OP01-002-0":        1,
		"OP01-002-250-1":    5,
		"DON-OP01-001-50-0": 3,
		"GONE-1":            6,
	}
	catalog := healCatalog()
	h := Heal(saved, catalog)

	t.Run("conservation", func(t *testing.T) {
		if got, want := h.Portfolio.Units(), saved.Units(); got != want {
			t.Errorf("healed units = %d; want %d", got, want)
		}
	})

	t.Run("saved untouched", func(t *testing.T) {
		if _, ok := saved["OP01-001-FOO-3"]; !ok {
			t.Error("Heal modified its input")
		}
	})

	t.Run("unresolved", func(t *testing.T) {
		u := h.Unresolved()
		if len(u) != 1 || u[0].From != "GONE-1" || u[0].To != "GONE-1" || u[0].Quantity != 6 {
			t.Errorf("Unresolved() = %v; want GONE-1 × 6", u)
		}
	})

	t.Run("idempotence", func(t *testing.T) {
		resolvable := h.Portfolio.Clone()
		delete(resolvable, "GONE-1")
		again := Heal(resolvable, catalog)
		if again.Changed {
			t.Errorf("healing a healed portfolio changed it: %v", again.Resolutions)
		}
		if !maps.Equal(again.Portfolio, resolvable) {
			t.Errorf("Heal(healed) = %v; want %v", again.Portfolio, resolvable)
		}
	})
}

func TestHeal_Empty(t *testing.T) {
	h := Heal(nil, nil)
	if h.Changed || len(h.Portfolio) != 0 || h.Portfolio == nil {
		t.Errorf("Heal(nil, nil) = %+v; want an empty unchanged portfolio", h)
	}
}

func TestParseLegacyID(t *testing.T) {
	testCases := []struct {
		id          string
		code, index string
		ok          bool
	}{
		{"OP01-001-250-1", "OP01-001", "1", true},
		{"DON-OP01-001-50-2", "DON-OP01-001", "2", true},
		{"OP01-001-ABC-1", "", "", false},
		{"OP01-001-1", "", "", false},
		{"DON-OP01-001-X-2", "", "", false},
		{"XYZ-OP01-001-50-2", "", "", false},
	}
	for _, tc := range testCases {
		code, index, ok := parseLegacyID(tc.id)
		if code != tc.code || index != tc.index || ok != tc.ok {
			t.Errorf("parseLegacyID(%q) = %q, %q, %v; want %q, %q, %v", tc.id, code, index, ok, tc.code, tc.index, tc.ok)
		}
	}
}
