package catalog

// Product is one local product as exported by the data snapshot. Town and
// store name are denormalized onto the product at export time, so lookups
// never need a join.
type Product struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Category             string `json:"category"`
	PriceRange           string `json:"price_range,omitempty"`
	Availability         string `json:"availability,omitempty"`
	PeakSeason           string `json:"peak_season,omitempty"`
	MakingProcess        string `json:"making_process,omitempty"`
	CulturalSignificance string `json:"cultural_significance,omitempty"`
	Town                 string `json:"town"`
	StoreID              string `json:"store_id,omitempty"`
	StoreName            string `json:"store_name,omitempty"`
}

// Store is a physical shop or stall selling local products.
type Store struct {
	StoreID        string  `json:"store_id"`
	Name           string  `json:"name"`
	Town           string  `json:"town"`
	Type           string  `json:"type,omitempty"`
	Rating         float64 `json:"rating,omitempty"`
	OperatingHours string  `json:"operating_hours,omitempty"`
	Phone          string  `json:"phone,omitempty"`
}

// Town is a municipality of La Union.
type Town struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SignatureProduct marks a product as the defining specialty of a town.
type SignatureProduct struct {
	Town        string `json:"town"`
	ProductName string `json:"product_name"`
}

// Snapshot is the raw shape of the exported JSON file.
type Snapshot struct {
	Municipalities    []Town             `json:"municipalities"`
	Products          []Product          `json:"products"`
	Stores            []Store            `json:"stores"`
	SignatureProducts []SignatureProduct `json:"signature_products"`
}
