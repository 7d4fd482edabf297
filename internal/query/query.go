// Package query holds the stateless search and filter functions of the
// catalog. Every function takes a product snapshot and returns a new
// slice; nothing here touches storage.
package query

import (
	"strings"

	"github.com/shopspring/decimal"

	"vendora/internal/domain"
)

// Search matches q case-insensitively as a substring of name,
// description or category. A blank or whitespace-only query yields no
// results rather than the full catalog; "no query" and "no filter" are
// different things.
func Search(products []domain.Product, q string) []domain.Product {
	q = strings.ToLower(strings.TrimSpace(q))
	out := []domain.Product{}
	if q == "" {
		return out
	}
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

func ByCategory(products []domain.Product, category string) []domain.Product {
	out := []domain.Product{}
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// ByVendor is also the vendor-scoped catalog listing.
func ByVendor(products []domain.Product, vendorID string) []domain.Product {
	out := []domain.Product{}
	for _, p := range products {
		if p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out
}

// ByPriceRange keeps products with min <= price <= max. A nil bound
// imposes no constraint.
func ByPriceRange(products []domain.Product, min, max *decimal.Decimal) []domain.Product {
	out := []domain.Product{}
	for _, p := range products {
		if min != nil && p.Price.LessThan(*min) {
			continue
		}
		if max != nil && p.Price.GreaterThan(*max) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Filter is an AND-composition of the narrowing predicates. Zero values
// impose no constraint.
type Filter struct {
	Category string
	VendorID string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func (f Filter) Apply(products []domain.Product) []domain.Product {
	out := products
	if f.Category != "" {
		out = ByCategory(out, f.Category)
	}
	if f.VendorID != "" {
		out = ByVendor(out, f.VendorID)
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		out = ByPriceRange(out, f.MinPrice, f.MaxPrice)
	}
	if out == nil {
		out = []domain.Product{}
	}
	return out
}
