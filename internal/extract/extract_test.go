package extract

import (
	"reflect"
	"testing"

	"elyubot/internal/lexicon"
)

func TestExtractTowns(t *testing.T) {
	e := New(lexicon.Default())

	tests := []struct {
		input    string
		expected []string
	}{
		{"what can I buy in Agoo", []string{"Agoo"}},
		{"what can I buy in agoo?", []string{"Agoo"}},
		{"products in San Fernando", []string{"San Fernando"}},
		{"products in san fernando please", []string{"San Fernando"}},
		{"compare Agoo and Bauang", []string{"Agoo", "Bauang"}},
		{"anything in La Union", []string{lexicon.Umbrella}},
		{"from San Juan or Santo Tomas", []string{"San Juan", "Santo Tomas"}},
		{"no towns here", nil},
		{"", nil},
		{"   ", nil},
	}

	for _, tt := range tests {
		got := e.Extract(tt.input)
		var towns []string
		if len(got.Towns) > 0 {
			towns = got.Towns
		}
		if !reflect.DeepEqual(towns, tt.expected) {
			t.Errorf("Extract(%q).Towns = %v, want %v", tt.input, towns, tt.expected)
		}
	}
}

// Multi-word names must match before any single-word token scan; "san
// fernando" is one town, not a partial hit.
func TestExtractMultiWordBeforeSingleWord(t *testing.T) {
	e := New(lexicon.Default())

	got := e.Extract("stores in San Fernando city")
	if !reflect.DeepEqual(got.Towns, []string{"San Fernando"}) {
		t.Errorf("Towns = %v, want [San Fernando]", got.Towns)
	}

	// A multi-word town and a single-word town can coexist.
	got = e.Extract("is Santo Tomas near Agoo?")
	if !reflect.DeepEqual(got.Towns, []string{"Agoo", "Santo Tomas"}) {
		t.Errorf("Towns = %v, want [Agoo Santo Tomas]", got.Towns)
	}
}

func TestExtractTownsDeduplicated(t *testing.T) {
	e := New(lexicon.Default())

	got := e.Extract("Agoo, yes Agoo, tell me about Agoo")
	if !reflect.DeepEqual(got.Towns, []string{"Agoo"}) {
		t.Errorf("Towns = %v, want [Agoo]", got.Towns)
	}
}

func TestExtractProductHint(t *testing.T) {
	e := New(lexicon.Default())

	tests := []struct {
		input    string
		expected string
	}{
		{"where can I buy bangus", "Milkfish"},
		{"price of inabel in Bangar", "Inabel Fabric"},
		{"looking for abel iloco blankets", "Inabel Fabric"},
		{"do you have walis tambo", "Soft Broom"},
		{"tell me about basi", "Basi"},
		{"nothing to see here", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := e.Extract(tt.input).ProductHint; got != tt.expected {
			t.Errorf("Extract(%q).ProductHint = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

// Longer aliases win: "abel iloco" resolves before the shorter "abel" inside
// it gets a chance.
func TestExtractProductHintLongestAlias(t *testing.T) {
	e := New(lexicon.Default())

	got := e.Extract("price of sugarcane wine please")
	if got.ProductHint != "Basi" {
		t.Errorf("ProductHint = %q, want Basi", got.ProductHint)
	}
}

func TestExtractTownAndProductTogether(t *testing.T) {
	e := New(lexicon.Default())

	got := e.Extract("how much is bangus in Agoo")
	if !reflect.DeepEqual(got.Towns, []string{"Agoo"}) {
		t.Errorf("Towns = %v, want [Agoo]", got.Towns)
	}
	if got.ProductHint != "Milkfish" {
		t.Errorf("ProductHint = %q, want Milkfish", got.ProductHint)
	}
}
