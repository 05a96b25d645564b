package catalog

import (
	"sort"
	"strings"
)

// Provider is the read-only view the dialogue engine consumes. Implementations
// must be safe for unsynchronized concurrent reads.
type Provider interface {
	Products() ([]Product, error)
	Stores() ([]Store, error)
	Municipalities() ([]Town, error)
	SignatureProducts() ([]SignatureProduct, error)
}

// Catalog is an immutable, indexed snapshot. All indexes are keyed by the
// lowercased entity name, built once at construction.
type Catalog struct {
	products   []Product
	stores     []Store
	towns      []Town
	signatures []SignatureProduct

	productsByTown  map[string][]Product
	storesByID      map[string]Store
	storesByName    map[string]Store
	townsByName     map[string]Town
	signaturesByTow map[string][]SignatureProduct
}

// New builds an indexed catalog from a snapshot. The snapshot slices are
// copied; the caller may discard its copy.
func New(snap Snapshot) *Catalog {
	c := &Catalog{
		products:        append([]Product(nil), snap.Products...),
		stores:          append([]Store(nil), snap.Stores...),
		towns:           append([]Town(nil), snap.Municipalities...),
		signatures:      append([]SignatureProduct(nil), snap.SignatureProducts...),
		productsByTown:  make(map[string][]Product),
		storesByID:      make(map[string]Store),
		storesByName:    make(map[string]Store),
		townsByName:     make(map[string]Town),
		signaturesByTow: make(map[string][]SignatureProduct),
	}

	for _, p := range c.products {
		key := strings.ToLower(p.Town)
		c.productsByTown[key] = append(c.productsByTown[key], p)
	}
	for _, s := range c.stores {
		c.storesByID[s.StoreID] = s
		c.storesByName[strings.ToLower(s.Name)] = s
	}
	for _, t := range c.towns {
		c.townsByName[strings.ToLower(t.Name)] = t
	}
	for _, sp := range c.signatures {
		key := strings.ToLower(sp.Town)
		c.signaturesByTow[key] = append(c.signaturesByTow[key], sp)
	}
	return c
}

func (c *Catalog) Products() ([]Product, error)                   { return c.products, nil }
func (c *Catalog) Stores() ([]Store, error)                       { return c.stores, nil }
func (c *Catalog) Municipalities() ([]Town, error)                { return c.towns, nil }
func (c *Catalog) SignatureProducts() ([]SignatureProduct, error) { return c.signatures, nil }

// ProductsByTown returns products for the given town name, case-insensitive.
func (c *Catalog) ProductsByTown(town string) []Product {
	return c.productsByTown[strings.ToLower(town)]
}

// StoreByID looks up a store by its id.
func (c *Catalog) StoreByID(id string) (Store, bool) {
	s, ok := c.storesByID[id]
	return s, ok
}

// StoreByName looks up a store by name, case-insensitive.
func (c *Catalog) StoreByName(name string) (Store, bool) {
	s, ok := c.storesByName[strings.ToLower(name)]
	return s, ok
}

// TownByName looks up a municipality by name, case-insensitive.
func (c *Catalog) TownByName(name string) (Town, bool) {
	t, ok := c.townsByName[strings.ToLower(name)]
	return t, ok
}

// SignaturesByTown returns signature products for an exact town match,
// case-insensitive.
func (c *Catalog) SignaturesByTown(town string) []SignatureProduct {
	return c.signaturesByTow[strings.ToLower(town)]
}

// ProductTowns returns the distinct towns that have at least one product,
// sorted lexicographically. Names keep the casing they carry in the snapshot.
func (c *Catalog) ProductTowns() []string {
	seen := make(map[string]string, len(c.productsByTown))
	for _, p := range c.products {
		seen[strings.ToLower(p.Town)] = p.Town
	}
	out := make([]string, 0, len(seen))
	for _, name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
