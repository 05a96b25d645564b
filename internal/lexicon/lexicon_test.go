package lexicon

import (
	"testing"
)

func TestNormalizeTown(t *testing.T) {
	n := Default()

	tests := []struct {
		input    string
		expected string
	}{
		{"San Fernando", "San Fernando"},
		{"san fernando", "San Fernando"},
		{"SAN FERNANDO", "San Fernando"},
		{"sfc", "San Fernando"},
		{"san fer", "San Fernando"},
		{"sanfernando", "San Fernando"},
		{"naguillian", "Naguilian"},
		{"nagilian", "Naguilian"},
		{"sto tomas", "Santo Tomas"},
		{"san gab", "San Gabriel"},
		{"sn juan", "San Juan"},
		{"urbiztondo", "San Juan"},
		{"bawang", "Bauang"},
		{"balawan", "Balaoan"},
		{"elyu", Umbrella},
		{"launion", Umbrella},
		{"la union", Umbrella},
		{"La   Union", Umbrella},
		{"agoo", "Agoo"},
		{"AGOO", "Agoo"},
		// unknown towns fall back to title case
		{"baguio", "Baguio"},
		{"some where", "Some Where"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := n.NormalizeTown(tt.input); got != tt.expected {
			t.Errorf("NormalizeTown(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeTownIdempotent(t *testing.T) {
	n := Default()

	inputs := []string{"sfc", "bawang", "elyu", "agoo", "baguio", "sto tomas"}
	for _, in := range inputs {
		once := n.NormalizeTown(in)
		twice := n.NormalizeTown(once)
		if once != twice {
			t.Errorf("NormalizeTown not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalizeProduct(t *testing.T) {
	n := Default()

	tests := []struct {
		input    string
		expected string
	}{
		{"bangus", "Milkfish"},
		{"BANGUS", "Milkfish"},
		{"milkfish", "Milkfish"},
		{"tuyo", "Dried Fish"},
		{"daing", "Dried Fish"},
		{"inabel", "Inabel Fabric"},
		{"abel", "Inabel Fabric"},
		{"abel iloco", "Inabel Fabric"},
		{"basi", "Basi"},
		{"sugarcane wine", "Basi"},
		{"walis tambo", "Soft Broom"},
		{"sukang iloco", "Cane Vinegar"},
		// unknown products fall back to title case
		{"wood carving", "Wood Carving"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := n.NormalizeProduct(tt.input); got != tt.expected {
			t.Errorf("NormalizeProduct(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeProductIdempotent(t *testing.T) {
	n := Default()

	for _, in := range []string{"bangus", "tuyo", "abel iloco", "wood carving"} {
		once := n.NormalizeProduct(in)
		twice := n.NormalizeProduct(once)
		if once != twice {
			t.Errorf("NormalizeProduct not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestCanonicalTowns(t *testing.T) {
	n := Default()
	towns := n.CanonicalTowns()

	if len(towns) != 20 {
		t.Fatalf("expected 20 municipalities, got %d", len(towns))
	}
	for i := 1; i < len(towns); i++ {
		if towns[i-1] >= towns[i] {
			t.Errorf("towns not sorted at %d: %q >= %q", i, towns[i-1], towns[i])
		}
	}
	for _, town := range towns {
		if town == Umbrella {
			t.Error("umbrella pseudo-town must not appear in the canonical list")
		}
	}
}

func TestKnownProductAliasesLongestFirst(t *testing.T) {
	n := Default()
	aliases := n.KnownProductAliases()

	if len(aliases) == 0 {
		t.Fatal("expected some product aliases")
	}
	for i := 1; i < len(aliases); i++ {
		if len(aliases[i-1]) < len(aliases[i]) {
			t.Errorf("aliases not longest-first at %d: %q before %q", i, aliases[i-1], aliases[i])
		}
	}
}
