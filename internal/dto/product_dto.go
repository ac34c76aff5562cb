package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Shared wire shapes ──────────────────────────────────────────────────────

type SizePricePayload struct {
	Size  string          `json:"size"  validate:"required"`
	Price decimal.Decimal `json:"price"`
}

type FAQPayload struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"   validate:"required"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProductPayload is the wire shape for both creation and partial update.
// Pointer and slice fields distinguish "absent" (nil) from "present but
// empty" — the validation module checks a field only when it is present,
// except in create mode where every common required field is checked
// regardless. Rule-level validation (presence, variant dispatch, pricing
// exclusivity) lives in internal/validation, not in validator tags.
type ProductPayload struct {
	Name             *string `json:"productName"`
	ShortDescription *string `json:"shortDescription"`
	Category         *string `json:"category"`
	Subcategory      *string `json:"subcategory"`
	Microcategory    *string `json:"microcategory"`
	ProductType      *string `json:"productType" validate:"omitempty,oneof=product kit"`

	Price      *decimal.Decimal   `json:"price"`
	SizePrices []SizePricePayload `json:"sizePrices"`

	LongDescription *string      `json:"longDescription"`
	Benefits        []string     `json:"benefits"`
	Features        []string     `json:"features"`
	KeyIngredients  *string      `json:"keyIngredients"`
	ShelfLife       *string      `json:"shelfLife"`
	Manufacturer    *string      `json:"manufacturer"`
	CountryOfOrigin *string      `json:"countryOfOrigin"`
	ExpiryDate      *string      `json:"expiryDate"`
	HowToUse        *string      `json:"howToUse"`
	Certifications  *string      `json:"certifications"`
	FAQs            []FAQPayload `json:"faqs"`

	LocalName      *string  `json:"localName"`
	AyurvedicNames []string `json:"ayurvedicNames"`
	ShortIntro     *string  `json:"shortIntro"`
	KeySymptoms    []string `json:"keySymptoms"`

	AyurvedicCauses       []string `json:"ayurvedicCauses"`
	TreatmentPrinciples   []string `json:"treatmentPrinciples"`
	EffectiveHerbs        []string `json:"effectiveHerbs"`
	ClassicalFormulations []string `json:"classicalFormulations"`
	Precautions           []string `json:"precautions"`

	HeroImageURL     *string  `json:"heroImageUrl"`
	ProductImageURLs []string `json:"productImageUrls"`
}

// UpdateProductRequest is the JSON body of an edit save without staged files.
// ToBeDeleted carries the secondary-image references marked for removal; the
// reconciliation engine excludes them from the persisted record and purges
// them only after persistence succeeds.
type UpdateProductRequest struct {
	ProductPayload
	RemoveHero  bool     `json:"removeHero"`
	ToBeDeleted []string `json:"toBeDeleted"`
}

type ToggleFeaturedRequest struct {
	Featured bool `json:"featured"`
}

// ─── Catalog filter ──────────────────────────────────────────────────────────

// CatalogFilter is the three-way catalog filter; "all" (or empty) disables a
// predicate. All three are ANDed; input order is preserved.
type CatalogFilter struct {
	Type        string `form:"type,default=all"`
	Category    string `form:"category,default=all"`
	Subcategory string `form:"subcategory,default=all"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"productName"`
	ShortDescription string  `json:"shortDescription"`
	Category         string  `json:"category"`
	Subcategory      string  `json:"subcategory"`
	Microcategory    *string `json:"microcategory,omitempty"`
	ProductType      string  `json:"productType"`

	Price      *decimal.Decimal   `json:"price,omitempty"`
	SizePrices []SizePricePayload `json:"sizePrices,omitempty"`

	LongDescription *string      `json:"longDescription,omitempty"`
	Benefits        []string     `json:"benefits"`
	Features        []string     `json:"features"`
	KeyIngredients  *string      `json:"keyIngredients,omitempty"`
	ShelfLife       *string      `json:"shelfLife,omitempty"`
	Manufacturer    *string      `json:"manufacturer,omitempty"`
	CountryOfOrigin string       `json:"countryOfOrigin"`
	ExpiryDate      *string      `json:"expiryDate,omitempty"`
	HowToUse        *string      `json:"howToUse,omitempty"`
	Certifications  *string      `json:"certifications,omitempty"`
	FAQs            []FAQPayload `json:"faqs"`

	LocalName      *string  `json:"localName,omitempty"`
	AyurvedicNames []string `json:"ayurvedicNames,omitempty"`
	ShortIntro     *string  `json:"shortIntro,omitempty"`
	KeySymptoms    []string `json:"keySymptoms,omitempty"`

	AyurvedicCauses       []string `json:"ayurvedicCauses,omitempty"`
	TreatmentPrinciples   []string `json:"treatmentPrinciples,omitempty"`
	EffectiveHerbs        []string `json:"effectiveHerbs,omitempty"`
	ClassicalFormulations []string `json:"classicalFormulations,omitempty"`
	Precautions           []string `json:"precautions,omitempty"`

	HeroImageURL     string   `json:"heroImageUrl"`
	ProductImageURLs []string `json:"productImageUrls"`

	Featured  bool   `json:"featured"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ProductSummary is the fixed reduced projection for catalog browsing.
type ProductSummary struct {
	ID           string             `json:"id"`
	Name         string             `json:"productName"`
	ProductType  string             `json:"productType"`
	HeroImageURL string             `json:"heroImageUrl"`
	Featured     bool               `json:"featured"`
	Category     string             `json:"category"`
	Subcategory  string             `json:"subcategory"`
	Price        *decimal.Decimal   `json:"price,omitempty"`
	SizePrices   []SizePricePayload `json:"sizePrices,omitempty"`
}

type ProductListResponse struct {
	Data []ProductSummary `json:"data"`
}

// CatalogFiltersResponse feeds the cascading category → subcategory filter.
// Subcategories is empty when the selected category is "all".
type CatalogFiltersResponse struct {
	Categories    []string `json:"categories"`
	Subcategories []string `json:"subcategories"`
}

// ─── Media ───────────────────────────────────────────────────────────────────

// UploadResponse returns the durable reference for one uploaded image.
type UploadResponse struct {
	URL string `json:"url"`
}

// PurgeOutcomeResponse reports one per-reference purge result.
type PurgeOutcomeResponse struct {
	Reference string `json:"reference"`
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
}
