// Package validation holds the field-presence and shape rules for catalog
// records. It is pure: no I/O, no persistence awareness — callers hand it a
// candidate payload and a mode and get back an ordered list of human-readable
// violations. An empty list means the candidate is valid.
package validation

import (
	"vedacart/internal/dto"
	"vedacart/internal/model"
)

// Mode selects how absent fields are treated.
type Mode int

const (
	// Create checks every common required field regardless of presence.
	Create Mode = iota
	// Update checks a field only when it is present in the payload. A
	// supplied empty value is always a violation; an omitted field never is.
	Update
)

// Validate checks the candidate against the rules for its variant and
// returns all violations in rule order. Variant-conditional (kit) rules
// dispatch on the payload's productType; in update mode with no productType
// supplied the caller is expected to have merged the prior record's type in
// (the reconciliation engine always validates a complete merged candidate).
func Validate(p dto.ProductPayload, mode Mode) []string {
	var violations []string

	check := func(present bool, ok bool, msg string) {
		if mode == Create {
			present = true
		}
		if present && !ok {
			violations = append(violations, msg)
		}
	}
	checkStr := func(v *string, msg string) {
		check(v != nil, v != nil && *v != "", msg)
	}

	checkStr(p.Name, "Product name is required")
	checkStr(p.ShortDescription, "Short description is required")
	checkStr(p.Category, "Category is required")
	checkStr(p.Subcategory, "Subcategory is required")

	// Variant resolution: creation defaults to a plain product, matching the
	// record's storage default.
	variant := model.TypeProduct
	known := mode == Create
	if p.ProductType != nil {
		variant = model.ProductType(*p.ProductType)
		known = true
	}

	// Pricing — exactly one shape per variant.
	if known {
		switch variant {
		case model.TypeKit:
			check(p.Price != nil, p.Price != nil && p.Price.IsPositive(),
				"Price must be a positive number")
			if len(p.SizePrices) > 0 {
				violations = append(violations, "Size prices must be empty for a kit")
			}
		default:
			check(p.SizePrices != nil, len(p.SizePrices) > 0,
				"At least one size price is required")
			for _, sp := range p.SizePrices {
				if !sp.Price.IsPositive() {
					violations = append(violations, "Price must be a positive number")
					break
				}
			}
			if p.Price != nil {
				violations = append(violations, "Price must be empty for a sized product")
			}
		}
	}

	check(p.Benefits != nil, len(p.Benefits) > 0, "At least one benefit is required")
	check(p.Features != nil, len(p.Features) > 0, "At least one feature is required")
	checkStr(p.HeroImageURL, "Hero image URL is required")

	// Kit-only informational fields.
	if known && variant == model.TypeKit {
		checkStr(p.LocalName, "Local name is required")
		check(p.AyurvedicNames != nil, len(p.AyurvedicNames) > 0,
			"At least one ayurvedic name is required")
		checkStr(p.ShortIntro, "Short intro is required")
		check(p.KeySymptoms != nil, len(p.KeySymptoms) > 0,
			"At least one key symptom is required")
	}

	return violations
}
