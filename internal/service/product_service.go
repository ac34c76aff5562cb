package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"vedacart/internal/apierror"
	"vedacart/internal/dto"
	"vedacart/internal/media"
	"vedacart/internal/model"
	"vedacart/internal/repository"
	"vedacart/internal/validation"
)

// ProductService covers the record lifecycle outside the edit flow: creation,
// reads, the featured toggle, and deletion with media purge.
type ProductService struct {
	repo  repository.ProductRepository
	media media.Store
	cache *SummaryCache
}

func NewProductService(repo repository.ProductRepository, store media.Store, cache *SummaryCache) *ProductService {
	return &ProductService{repo: repo, media: store, cache: cache}
}

// Create validates the payload as a complete record and inserts it. Media
// references arrive already uploaded (the staging endpoint); creation never
// touches the media host.
func (s *ProductService) Create(ctx context.Context, payload dto.ProductPayload) (*dto.ProductResponse, error) {
	if violations := validation.Validate(payload, validation.Create); len(violations) > 0 {
		return nil, apierror.NewValidation(violations)
	}

	record := &model.Product{
		ProductType:     model.TypeProduct,
		CountryOfOrigin: "India",
	}
	applyPayload(record, payload)
	record.ProductImageURLs = dedupe(record.ProductImageURLs)

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	log.Info().Str("product_id", record.ID.String()).Str("name", record.Name).Msg("product created")
	resp := toResponse(record)
	return &resp, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(record)
	return &resp, nil
}

// SetFeatured flips the homepage-highlight flag without touching any other
// column.
func (s *ProductService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	if err := s.repo.UpdateFields(ctx, id, map[string]any{"featured": featured}); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// Delete removes the record first, then purges its media best-effort. A
// half-failed purge leaves orphaned images, never a half-deleted record.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) ([]media.PurgeOutcome, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	outcomes := s.media.Purge(ctx, record.MediaReferences())
	log.Info().Str("product_id", id.String()).Int("purged", len(outcomes)).Msg("product deleted")
	return outcomes, nil
}
