// Package catalogtest provides a catalog fixture for adapter tests.
package catalogtest

import (
	"testing"

	"github.com/wesm/browsestate/internal/catalog"
	"github.com/wesm/browsestate/internal/config"
)

// Config returns a configuration with one view, "products", at /products.
// It sorts on name and price, renders color and size selects, and has a
// numeric price range and a half-open datetime range on created.
func Config() *config.Config {
	return &config.Config{
		Defaults: config.DefaultsConfig{PageSize: 25, PageSizes: []int{10, 25, 50}},
		Views: []config.ViewConfig{{
			Name: "products",
			Path: "/products",
			Columns: []config.ColumnConfig{
				{Name: "name", Label: "Name", Sortable: true},
				{Name: "price", Label: "Price", Sortable: true},
				{Name: "notes", Label: "Notes"},
			},
			Filters: []config.FilterConfig{
				{Name: "color", Kind: catalog.KindSelect, Options: []string{"red", "blue", "green"}},
				{Name: "size", Kind: catalog.KindSelect, Options: []string{"S", "M", "L"}},
				{Name: "price", Kind: catalog.KindRange, Type: catalog.TypeNumber},
				{Name: "created", Kind: catalog.KindRange, Type: catalog.TypeDatetime, Bounds: "[)"},
			},
		}},
	}
}

// MustCatalog builds the catalog for Config, failing the test on error.
func MustCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(Config())
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

// MustView returns the products view.
func MustView(t testing.TB) *catalog.View {
	t.Helper()
	v, err := MustCatalog(t).View("products")
	if err != nil {
		t.Fatalf("View(products): %v", err)
	}
	return v
}
