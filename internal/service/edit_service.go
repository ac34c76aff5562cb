package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"vedacart/internal/apierror"
	"vedacart/internal/dto"
	"vedacart/internal/media"
	"vedacart/internal/model"
	"vedacart/internal/repository"
	"vedacart/internal/validation"
)

// EditInput is everything one save of the edit flow carries: the sparse field
// payload, staged replacement images, and the removal marks accumulated in
// the editing session.
type EditInput struct {
	Fields      dto.ProductPayload
	NewHero     *media.File
	RemoveHero  bool
	NewImages   []media.File
	ToBeDeleted []string
}

// EditService is the reconciliation engine behind the edit flow. A save runs
// in a fixed order — upload staged files, merge onto the prior record,
// validate the merged candidate, persist, then purge retired references.
// Purging strictly last means a failed save can orphan images but can never
// dangle a reference from a persisted record.
type EditService struct {
	repo        repository.ProductRepository
	media       media.Store
	cache       *SummaryCache
	concurrency int
}

func NewEditService(repo repository.ProductRepository, store media.Store, cache *SummaryCache, concurrency int) *EditService {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &EditService{repo: repo, media: store, cache: cache, concurrency: concurrency}
}

// Save applies one edit session to the record. On validation or persistence
// failure the freshly uploaded images are purged best-effort so an aborted
// save leaves no orphans of its own making; the stored record is untouched.
func (s *EditService) Save(ctx context.Context, id uuid.UUID, in EditInput) (*dto.ProductResponse, error) {
	prior, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	heroRef, imageRefs, err := s.uploadStaged(ctx, in)
	fresh := append(imageRefs, heroRef)
	if err != nil {
		s.discard(ctx, fresh)
		return nil, err
	}

	merged := s.merge(prior, in, heroRef, imageRefs)

	if violations := validation.Validate(payloadFromRecord(merged), validation.Create); len(violations) > 0 {
		s.discard(ctx, fresh)
		return nil, apierror.NewValidation(violations)
	}

	if err := s.repo.Update(ctx, merged); err != nil {
		// Only this save's own uploads are discarded. Marked references stay
		// untouched until persistence succeeds — a failed save must never
		// purge anything the stored record still points at.
		s.discard(ctx, fresh)
		return nil, err
	}
	s.cache.Invalidate(ctx)

	// Persistence succeeded — now and only now retire the old references.
	retired := retiredReferences(prior, merged, in.ToBeDeleted)
	if len(retired) > 0 {
		s.media.Purge(ctx, retired)
	}

	log.Info().
		Str("product_id", id.String()).
		Int("uploaded", len(dedupe(fresh))).
		Int("retired", len(retired)).
		Msg("product edit saved")

	resp := toResponse(merged)
	return &resp, nil
}

// uploadStaged pushes the staged hero and secondary images to the media host
// with bounded concurrency. Any failure aborts the whole save.
func (s *EditService) uploadStaged(ctx context.Context, in EditInput) (heroRef string, imageRefs []string, err error) {
	imageRefs = make([]string, len(in.NewImages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	if in.NewHero != nil {
		g.Go(func() error {
			ref, err := s.media.Upload(gctx, *in.NewHero)
			heroRef = ref
			return err
		})
	}
	for i, f := range in.NewImages {
		i, f := i, f
		g.Go(func() error {
			ref, err := s.media.Upload(gctx, f)
			imageRefs[i] = ref
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return heroRef, imageRefs, err
	}
	return heroRef, imageRefs, nil
}

// merge builds the complete post-edit candidate: prior record plus present
// payload fields, with the media resolution applied on top.
func (s *EditService) merge(prior *model.Product, in EditInput, heroRef string, imageRefs []string) *model.Product {
	merged := *prior
	applyPayload(&merged, in.Fields)

	// A variant switch drops the pricing shape of the old variant unless the
	// payload supplies it explicitly (in which case validation flags it).
	if merged.ProductType != prior.ProductType {
		switch merged.ProductType {
		case model.TypeKit:
			if in.Fields.SizePrices == nil {
				merged.SizePrices = nil
			}
		default:
			if in.Fields.Price == nil {
				merged.Price = nil
			}
		}
	}

	// Hero: a staged file wins over a payload reference; an unreplaced
	// removal clears the hero and the validator rejects the candidate.
	if heroRef != "" {
		merged.HeroImageURL = heroRef
	} else if in.RemoveHero && in.Fields.HeroImageURL == nil {
		merged.HeroImageURL = ""
	}

	// Secondaries: drop the marked references, append the fresh uploads,
	// dedupe keeping first occurrence.
	marked := make(map[string]struct{}, len(in.ToBeDeleted))
	for _, ref := range in.ToBeDeleted {
		marked[ref] = struct{}{}
	}
	kept := make([]string, 0, len(merged.ProductImageURLs)+len(imageRefs))
	for _, ref := range merged.ProductImageURLs {
		if _, ok := marked[ref]; ok {
			continue
		}
		kept = append(kept, ref)
	}
	for _, ref := range imageRefs {
		if ref != "" {
			kept = append(kept, ref)
		}
	}
	merged.ProductImageURLs = dedupe(kept)

	return &merged
}

// retiredReferences is the post-persist purge set: marked references the
// prior record actually owned, plus a replaced or removed hero. Anything the
// final record still references is excluded.
func retiredReferences(prior, final *model.Product, toBeDeleted []string) []string {
	owned := make(map[string]struct{})
	for _, ref := range prior.MediaReferences() {
		owned[ref] = struct{}{}
	}
	kept := make(map[string]struct{})
	for _, ref := range final.MediaReferences() {
		kept[ref] = struct{}{}
	}

	var retired []string
	for _, ref := range toBeDeleted {
		if _, ok := owned[ref]; !ok {
			continue
		}
		if _, ok := kept[ref]; ok {
			continue
		}
		retired = append(retired, ref)
	}
	if prior.HeroImageURL != "" && prior.HeroImageURL != final.HeroImageURL {
		if _, ok := kept[prior.HeroImageURL]; !ok {
			retired = append(retired, prior.HeroImageURL)
		}
	}
	return dedupe(retired)
}

// discard purges the uploads of an aborted save, best-effort.
func (s *EditService) discard(ctx context.Context, refs []string) {
	refs = dedupe(refs)
	if len(refs) == 0 {
		return
	}
	log.Warn().Int("count", len(refs)).Msg("discarding uploads of aborted save")
	s.media.Purge(ctx, refs)
}
