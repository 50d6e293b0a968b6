// Package catalog holds the static SKU to display name mapping. The mapping
// is built once at process start and is read-only afterwards.
package catalog

import (
	"sort"

	"github.com/silentpro/dashboard/internal/entity"
)

// Config allows overriding the built-in product mapping.
type Config struct {
	Products map[string]string `mapstructure:"products"`
}

var defaultProducts = map[string]string{
	"VM-7EA4-DVAO": "Black Mamba Premium",
	"5Y-T9K7-1HM1": "Black Mamba Lite",
	"J9-H173-J5AF": "Old School Mini",
}

// Entry is one product picker row.
type Entry struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// Catalog resolves seller SKUs to display names.
type Catalog struct {
	names map[string]string
}

// New builds a catalog from the config, falling back to the built-in
// mapping when no products are configured.
func New(c *Config) *Catalog {
	src := defaultProducts
	if c != nil && len(c.Products) > 0 {
		src = c.Products
	}
	names := make(map[string]string, len(src))
	for sku, name := range src {
		names[sku] = name
	}
	return &Catalog{names: names}
}

// DisplayName resolves the SKU through the catalog. Unmapped SKUs pass
// through unchanged.
func (c *Catalog) DisplayName(sku string) string {
	if name, ok := c.names[sku]; ok {
		return name
	}
	return sku
}

// Entries returns the product picker list: the "all products" sentinel
// first, then every known product sorted by display name.
func (c *Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c.names)+1)
	for sku, name := range c.names {
		entries = append(entries, Entry{SKU: sku, Name: name})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return append([]Entry{{SKU: entity.FilterAll, Name: "All Products"}}, entries...)
}
