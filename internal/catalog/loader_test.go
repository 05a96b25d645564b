package catalog

import (
	"strings"
	"testing"
)

const validSnapshotJSON = `{
  "municipalities": [
    {"name": "Agoo", "description": "Coastal town."}
  ],
  "products": [
    {"name": "Oyster Mushroom", "category": "produce", "town": "Agoo", "store_id": "s1", "price_range": "PHP 100-150"}
  ],
  "stores": [
    {"store_id": "s1", "name": "Agoo Mushroom Farm", "town": "Agoo", "operating_hours": "8am-5pm"}
  ],
  "signature_products": [
    {"town": "Agoo", "product_name": "Oyster Mushroom"}
  ]
}`

func TestParseValidSnapshot(t *testing.T) {
	c, err := Parse([]byte(validSnapshotJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	products, _ := c.Products()
	if len(products) != 1 || products[0].PriceRange != "PHP 100-150" {
		t.Errorf("products = %+v", products)
	}
	if _, ok := c.StoreByID("s1"); !ok {
		t.Error("store s1 not indexed")
	}
}

func TestParseRejectsMalformedSnapshots(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"missing top-level sections", `{"products": []}`},
		{"product without town", `{
			"municipalities": [], "stores": [],
			"products": [{"name": "Basi"}]
		}`},
		{"empty product name", `{
			"municipalities": [], "stores": [],
			"products": [{"name": "", "town": "Agoo"}]
		}`},
		{"store without id", `{
			"municipalities": [], "products": [],
			"stores": [{"name": "Some Farm", "town": "Agoo"}]
		}`},
		{"signature without product name", `{
			"municipalities": [], "products": [], "stores": [],
			"signature_products": [{"town": "Agoo"}]
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

// The signature table is optional: early exports predate it.
func TestParseSnapshotWithoutSignatures(t *testing.T) {
	raw := `{"municipalities": [], "products": [], "stores": []}`
	c, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sigs, _ := c.SignatureProducts()
	if len(sigs) != 0 {
		t.Errorf("sigs = %v", sigs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/does-not-exist.json")
	if err == nil || !strings.Contains(err.Error(), "read snapshot") {
		t.Errorf("err = %v", err)
	}
}
