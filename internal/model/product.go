package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ProductType discriminates the two record variants. A plain product is a
// sellable item with per-size pricing; a kit is a bundled offering with a
// single price plus the extended Ayurvedic informational fields.
type ProductType string

const (
	TypeProduct ProductType = "product"
	TypeKit     ProductType = "kit"
)

// SizePrice is one (size label, price) pair of a product's price list.
type SizePrice struct {
	Size  string          `json:"size"`
	Price decimal.Decimal `json:"price"`
}

// FAQ is one question/answer pair. Insertion order is display order.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Product is the catalog record for both variants. List-typed fields live in
// JSONB columns — they are always read and written wholesale, never queried
// element-wise, so a join table would buy nothing.
type Product struct {
	ID               uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name             string      `gorm:"uniqueIndex;not null"`
	ShortDescription string      `gorm:"not null"`
	Category         string      `gorm:"index;not null"`
	Subcategory      string      `gorm:"not null"`
	Microcategory    *string
	ProductType      ProductType `gorm:"not null;default:'product'"`

	// Pricing — exactly one shape is populated, matching ProductType:
	// products carry SizePrices, kits carry the scalar Price.
	Price      *decimal.Decimal               `gorm:"type:decimal(10,2)"`
	SizePrices datatypes.JSONSlice[SizePrice] `gorm:"type:jsonb"`

	LongDescription *string
	Benefits        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Features        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	KeyIngredients  *string
	ShelfLife       *string
	Manufacturer    *string
	CountryOfOrigin string `gorm:"not null;default:'India'"`
	ExpiryDate      *string
	HowToUse        *string
	Certifications  *string
	FAQs            datatypes.JSONSlice[FAQ] `gorm:"type:jsonb"`

	// Kit-only informational fields (required when ProductType = kit)
	LocalName      *string
	AyurvedicNames datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	ShortIntro     *string
	KeySymptoms    datatypes.JSONSlice[string] `gorm:"type:jsonb"`

	// Optional kit fields — free-text lists, duplicates permitted
	AyurvedicCauses       datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	TreatmentPrinciples   datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	EffectiveHerbs        datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	ClassicalFormulations datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Precautions           datatypes.JSONSlice[string] `gorm:"type:jsonb"`

	// Media — hero is required for every persisted record; secondary
	// references are unique within the record (enforced at reconciliation,
	// not by storage).
	HeroImageURL     string                      `gorm:"not null"`
	ProductImageURLs datatypes.JSONSlice[string] `gorm:"type:jsonb"`

	Featured  bool `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MediaReferences returns every media reference the record owns, hero first.
// Used by delete to collect the purge set before the record is removed.
func (p *Product) MediaReferences() []string {
	refs := make([]string, 0, len(p.ProductImageURLs)+1)
	if p.HeroImageURL != "" {
		refs = append(refs, p.HeroImageURL)
	}
	refs = append(refs, p.ProductImageURLs...)
	return refs
}
