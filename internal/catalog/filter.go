// Package catalog derives the browse view over an in-memory summary list:
// cascading category → subcategory filter options and the three-way
// (type, category, subcategory) filter. Everything here is a pure
// derivation — stable order, no re-sorting, no I/O.
package catalog

import (
	"github.com/shopspring/decimal"

	"vedacart/internal/dto"
)

// All is the wildcard value that disables a filter predicate.
const All = "all"

// Selection is the current three-way filter state. Zero values behave as
// wildcards so an unset query parameter filters nothing.
type Selection struct {
	Type        string
	Category    string
	Subcategory string
}

// SetCategory switches the category and resets the dependent subcategory
// selection — options derived from the old category are meaningless under
// the new one.
func (s *Selection) SetCategory(category string) {
	s.Category = category
	s.Subcategory = All
}

func matches(selected, value string) bool {
	return selected == "" || selected == All || selected == value
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(list []dto.ProductSummary) []string {
	return distinct(list, func(p dto.ProductSummary) string { return p.Category })
}

// Subcategories returns the distinct non-empty subcategories of products in
// the selected category, in first-seen order. Empty when the selection is
// the wildcard — the cascading filter offers no subcategories until a
// concrete category is chosen.
func Subcategories(list []dto.ProductSummary, category string) []string {
	if category == "" || category == All {
		return []string{}
	}
	return distinct(list, func(p dto.ProductSummary) string {
		if p.Category != category {
			return ""
		}
		return p.Subcategory
	})
}

func distinct(list []dto.ProductSummary, key func(dto.ProductSummary) string) []string {
	seen := make(map[string]struct{}, len(list))
	out := []string{}
	for _, p := range list {
		k := key(p)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Filter applies all three predicates ANDed, preserving input order.
func Filter(list []dto.ProductSummary, sel Selection) []dto.ProductSummary {
	out := []dto.ProductSummary{}
	for _, p := range list {
		if matches(sel.Type, p.ProductType) &&
			matches(sel.Category, p.Category) &&
			matches(sel.Subcategory, p.Subcategory) {
			out = append(out, p)
		}
	}
	return out
}

// DisplayPrice is the price shown on a catalog card: the first size price
// when the product has any, otherwise the scalar price. Display-only — the
// record's pricing shape is governed by its variant, not by this helper.
func DisplayPrice(p dto.ProductSummary) (decimal.Decimal, bool) {
	if len(p.SizePrices) > 0 {
		return p.SizePrices[0].Price, true
	}
	if p.Price != nil {
		return *p.Price, true
	}
	return decimal.Decimal{}, false
}
