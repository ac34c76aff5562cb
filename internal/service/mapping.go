package service

import (
	"time"

	"gorm.io/datatypes"

	"vedacart/internal/dto"
	"vedacart/internal/model"
)

// ── model ⇄ DTO mapping ──────────────────────────────────────────────────────

func toSizePayloads(in []model.SizePrice) []dto.SizePricePayload {
	if in == nil {
		return nil
	}
	out := make([]dto.SizePricePayload, len(in))
	for i, sp := range in {
		out[i] = dto.SizePricePayload{Size: sp.Size, Price: sp.Price}
	}
	return out
}

func toModelSizePrices(in []dto.SizePricePayload) datatypes.JSONSlice[model.SizePrice] {
	if in == nil {
		return nil
	}
	out := make([]model.SizePrice, len(in))
	for i, sp := range in {
		out[i] = model.SizePrice{Size: sp.Size, Price: sp.Price}
	}
	return datatypes.JSONSlice[model.SizePrice](out)
}

func toFAQPayloads(in []model.FAQ) []dto.FAQPayload {
	if in == nil {
		return nil
	}
	out := make([]dto.FAQPayload, len(in))
	for i, f := range in {
		out[i] = dto.FAQPayload{Question: f.Question, Answer: f.Answer}
	}
	return out
}

func toModelFAQs(in []dto.FAQPayload) datatypes.JSONSlice[model.FAQ] {
	if in == nil {
		return nil
	}
	out := make([]model.FAQ, len(in))
	for i, f := range in {
		out[i] = model.FAQ{Question: f.Question, Answer: f.Answer}
	}
	return datatypes.JSONSlice[model.FAQ](out)
}

func toResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		Category:         p.Category,
		Subcategory:      p.Subcategory,
		Microcategory:    p.Microcategory,
		ProductType:      string(p.ProductType),

		Price:      p.Price,
		SizePrices: toSizePayloads(p.SizePrices),

		LongDescription: p.LongDescription,
		Benefits:        orEmpty(p.Benefits),
		Features:        orEmpty(p.Features),
		KeyIngredients:  p.KeyIngredients,
		ShelfLife:       p.ShelfLife,
		Manufacturer:    p.Manufacturer,
		CountryOfOrigin: p.CountryOfOrigin,
		ExpiryDate:      p.ExpiryDate,
		HowToUse:        p.HowToUse,
		Certifications:  p.Certifications,
		FAQs:            orEmptyFAQs(toFAQPayloads(p.FAQs)),

		LocalName:      p.LocalName,
		AyurvedicNames: p.AyurvedicNames,
		ShortIntro:     p.ShortIntro,
		KeySymptoms:    p.KeySymptoms,

		AyurvedicCauses:       p.AyurvedicCauses,
		TreatmentPrinciples:   p.TreatmentPrinciples,
		EffectiveHerbs:        p.EffectiveHerbs,
		ClassicalFormulations: p.ClassicalFormulations,
		Precautions:           p.Precautions,

		HeroImageURL:     p.HeroImageURL,
		ProductImageURLs: orEmpty(p.ProductImageURLs),

		Featured:  p.Featured,
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toSummary(p model.Product) dto.ProductSummary {
	return dto.ProductSummary{
		ID:           p.ID.String(),
		Name:         p.Name,
		ProductType:  string(p.ProductType),
		HeroImageURL: p.HeroImageURL,
		Featured:     p.Featured,
		Category:     p.Category,
		Subcategory:  p.Subcategory,
		Price:        p.Price,
		SizePrices:   toSizePayloads(p.SizePrices),
	}
}

// payloadFromRecord rebuilds the full wire payload of a record. The
// reconciliation engine validates merged candidates through this so partial
// edits are checked as complete records.
func payloadFromRecord(p *model.Product) dto.ProductPayload {
	productType := string(p.ProductType)
	return dto.ProductPayload{
		Name:             &p.Name,
		ShortDescription: &p.ShortDescription,
		Category:         &p.Category,
		Subcategory:      &p.Subcategory,
		Microcategory:    p.Microcategory,
		ProductType:      &productType,

		Price:      p.Price,
		SizePrices: toSizePayloads(p.SizePrices),

		LongDescription: p.LongDescription,
		Benefits:        p.Benefits,
		Features:        p.Features,
		KeyIngredients:  p.KeyIngredients,
		ShelfLife:       p.ShelfLife,
		Manufacturer:    p.Manufacturer,
		CountryOfOrigin: &p.CountryOfOrigin,
		ExpiryDate:      p.ExpiryDate,
		HowToUse:        p.HowToUse,
		Certifications:  p.Certifications,
		FAQs:            toFAQPayloads(p.FAQs),

		LocalName:      p.LocalName,
		AyurvedicNames: p.AyurvedicNames,
		ShortIntro:     p.ShortIntro,
		KeySymptoms:    p.KeySymptoms,

		AyurvedicCauses:       p.AyurvedicCauses,
		TreatmentPrinciples:   p.TreatmentPrinciples,
		EffectiveHerbs:        p.EffectiveHerbs,
		ClassicalFormulations: p.ClassicalFormulations,
		Precautions:           p.Precautions,

		HeroImageURL:     &p.HeroImageURL,
		ProductImageURLs: p.ProductImageURLs,
	}
}

// applyPayload copies every present payload field onto the record. Absent
// (nil) fields leave the record untouched; present slices replace wholesale.
func applyPayload(p *model.Product, in dto.ProductPayload) {
	setStr := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}

	setStr(&p.Name, in.Name)
	setStr(&p.ShortDescription, in.ShortDescription)
	setStr(&p.Category, in.Category)
	setStr(&p.Subcategory, in.Subcategory)
	if in.Microcategory != nil {
		p.Microcategory = in.Microcategory
	}
	if in.ProductType != nil {
		p.ProductType = model.ProductType(*in.ProductType)
	}

	if in.Price != nil {
		p.Price = in.Price
	}
	if in.SizePrices != nil {
		p.SizePrices = toModelSizePrices(in.SizePrices)
	}

	if in.LongDescription != nil {
		p.LongDescription = in.LongDescription
	}
	if in.Benefits != nil {
		p.Benefits = datatypes.JSONSlice[string](in.Benefits)
	}
	if in.Features != nil {
		p.Features = datatypes.JSONSlice[string](in.Features)
	}
	if in.KeyIngredients != nil {
		p.KeyIngredients = in.KeyIngredients
	}
	if in.ShelfLife != nil {
		p.ShelfLife = in.ShelfLife
	}
	if in.Manufacturer != nil {
		p.Manufacturer = in.Manufacturer
	}
	setStr(&p.CountryOfOrigin, in.CountryOfOrigin)
	if in.ExpiryDate != nil {
		p.ExpiryDate = in.ExpiryDate
	}
	if in.HowToUse != nil {
		p.HowToUse = in.HowToUse
	}
	if in.Certifications != nil {
		p.Certifications = in.Certifications
	}
	if in.FAQs != nil {
		p.FAQs = toModelFAQs(in.FAQs)
	}

	if in.LocalName != nil {
		p.LocalName = in.LocalName
	}
	if in.AyurvedicNames != nil {
		p.AyurvedicNames = datatypes.JSONSlice[string](in.AyurvedicNames)
	}
	if in.ShortIntro != nil {
		p.ShortIntro = in.ShortIntro
	}
	if in.KeySymptoms != nil {
		p.KeySymptoms = datatypes.JSONSlice[string](in.KeySymptoms)
	}

	if in.AyurvedicCauses != nil {
		p.AyurvedicCauses = datatypes.JSONSlice[string](in.AyurvedicCauses)
	}
	if in.TreatmentPrinciples != nil {
		p.TreatmentPrinciples = datatypes.JSONSlice[string](in.TreatmentPrinciples)
	}
	if in.EffectiveHerbs != nil {
		p.EffectiveHerbs = datatypes.JSONSlice[string](in.EffectiveHerbs)
	}
	if in.ClassicalFormulations != nil {
		p.ClassicalFormulations = datatypes.JSONSlice[string](in.ClassicalFormulations)
	}
	if in.Precautions != nil {
		p.Precautions = datatypes.JSONSlice[string](in.Precautions)
	}

	setStr(&p.HeroImageURL, in.HeroImageURL)
	if in.ProductImageURLs != nil {
		p.ProductImageURLs = datatypes.JSONSlice[string](in.ProductImageURLs)
	}
}

func orEmpty[T ~[]string](s T) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyFAQs(s []dto.FAQPayload) []dto.FAQPayload {
	if s == nil {
		return []dto.FAQPayload{}
	}
	return s
}

func dedupe(refs []string) []string {
	seen := make(map[string]struct{}, len(refs))
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
