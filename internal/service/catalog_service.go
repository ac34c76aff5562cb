package service

import (
	"context"

	"vedacart/internal/catalog"
	"vedacart/internal/dto"
	"vedacart/internal/repository"
)

// CatalogService serves the browse surface: the summary list, the filtered
// view, and the cascading filter options. Reads go through the Redis summary
// cache; every derivation on top of the list is pure.
type CatalogService struct {
	repo  repository.ProductRepository
	cache *SummaryCache
}

func NewCatalogService(repo repository.ProductRepository, cache *SummaryCache) *CatalogService {
	return &CatalogService{repo: repo, cache: cache}
}

// List returns every product in the reduced browse projection, cache-first.
func (s *CatalogService) List(ctx context.Context) ([]dto.ProductSummary, error) {
	if cached, ok := s.cache.Get(ctx); ok {
		return cached, nil
	}

	records, err := s.repo.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]dto.ProductSummary, len(records))
	for i, r := range records {
		summaries[i] = toSummary(r)
	}

	s.cache.Set(ctx, summaries)
	return summaries, nil
}

// Filtered applies the three-way filter over the summary list, preserving
// list order.
func (s *CatalogService) Filtered(ctx context.Context, f dto.CatalogFilter) ([]dto.ProductSummary, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(list, catalog.Selection{
		Type:        f.Type,
		Category:    f.Category,
		Subcategory: f.Subcategory,
	}), nil
}

// FilterOptions derives the category list and, for a concrete category
// selection, its subcategories.
func (s *CatalogService) FilterOptions(ctx context.Context, category string) (*dto.CatalogFiltersResponse, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.CatalogFiltersResponse{
		Categories:    catalog.Categories(list),
		Subcategories: catalog.Subcategories(list, category),
	}, nil
}
