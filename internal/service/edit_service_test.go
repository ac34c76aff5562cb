package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vedacart/internal/apierror"
	"vedacart/internal/dto"
	"vedacart/internal/media"
	"vedacart/internal/model"
)

func newEditFixture(t *testing.T) (*stubProductRepo, *fakeStore, *EditService) {
	t.Helper()
	repo := newStubProductRepo()
	store := &fakeStore{}
	return repo, store, NewEditService(repo, store, NewSummaryCache(nil), 2)
}

func sptr(s string) *string { return &s }

func TestSaveUnknownIDIsNotFound(t *testing.T) {
	_, store, edit := newEditFixture(t)

	_, err := edit.Save(context.Background(), uuid.New(), EditInput{})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
	assert.Empty(t, store.uploaded)
}

func TestSaveMergesSparsePayloadOntoRecord(t *testing.T) {
	repo, _, edit := newEditFixture(t)
	p := seedProduct(t, repo)

	resp, err := edit.Save(context.Background(), p.ID, EditInput{
		Fields: dto.ProductPayload{ShortDescription: sptr("New copy")},
	})
	require.NoError(t, err)

	assert.Equal(t, "New copy", resp.ShortDescription)
	assert.Equal(t, p.Name, resp.Name, "untouched fields survive the merge")
	assert.Equal(t, []string{imgRefA, imgRefB}, resp.ProductImageURLs)
}

func TestSaveValidationFailurePurgesFreshUploadsOnly(t *testing.T) {
	repo, store, edit := newEditFixture(t)
	p := seedProduct(t, repo)

	_, err := edit.Save(context.Background(), p.ID, EditInput{
		Fields:    dto.ProductPayload{Name: sptr("")},
		NewImages: []media.File{{Name: "extra.jpg", Content: []byte{1}}},
	})

	var verr *apierror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Violations, "Product name is required")

	// The staged image went up before validation and came back down after.
	require.Len(t, store.uploaded, 1)
	assert.Equal(t, store.uploaded, store.purged)

	// The stored record is untouched.
	got, ferr := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, ferr)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, []string(p.ProductImageURLs), []string(got.ProductImageURLs))
}

func TestSaveUploadFailureAbortsBeforePersistence(t *testing.T) {
	repo, store, edit := newEditFixture(t)
	p := seedProduct(t, repo)
	store.failUp = true

	_, err := edit.Save(context.Background(), p.ID, EditInput{
		Fields:  dto.ProductPayload{ShortDescription: sptr("never lands")},
		NewHero: &media.File{Name: "hero2.jpg", Content: []byte{1}},
	})
	assert.ErrorIs(t, err, apierror.ErrUpload)

	got, ferr := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, ferr)
	assert.Equal(t, p.ShortDescription, got.ShortDescription)
}

// failingUpdateRepo rejects every full-record save, simulating a constraint
// violation or connection loss at persist time.
type failingUpdateRepo struct {
	*stubProductRepo
}

func (r *failingUpdateRepo) Update(_ context.Context, _ *model.Product) error {
	return errors.New("connection reset during update")
}

func TestSavePersistFailurePurgesNoRetiredReferences(t *testing.T) {
	repo := newStubProductRepo()
	store := &fakeStore{}
	edit := NewEditService(&failingUpdateRepo{repo}, store, NewSummaryCache(nil), 2)
	p := seedProduct(t, repo)

	_, err := edit.Save(context.Background(), p.ID, EditInput{
		ToBeDeleted: []string{imgRefA},
		NewImages:   []media.File{{Name: "new.jpg", Content: []byte{1}}},
	})
	require.Error(t, err)

	// The stored record is exactly as it was.
	got, ferr := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, ferr)
	assert.Equal(t, heroRef, got.HeroImageURL)
	assert.Equal(t, []string{imgRefA, imgRefB}, []string(got.ProductImageURLs))

	// Only the save's own fresh upload is discarded; the marked reference
	// the record still owns is never purged.
	require.Len(t, store.uploaded, 1)
	assert.Equal(t, store.uploaded, store.purged)
	assert.NotContains(t, store.purged, imgRefA)
}

func TestSaveReplacingHeroRetiresOldOneAfterPersist(t *testing.T) {
	repo, store, edit := newEditFixture(t)
	p := seedProduct(t, repo)

	resp, err := edit.Save(context.Background(), p.ID, EditInput{
		NewHero: &media.File{Name: "hero2.jpg", Content: []byte{1}},
	})
	require.NoError(t, err)

	newHero := "https://img.test/upload/v1/hero2.jpg"
	assert.Equal(t, newHero, resp.HeroImageURL)

	got, ferr := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, ferr)
	assert.Equal(t, newHero, got.HeroImageURL)
	assert.Equal(t, []string{heroRef}, store.purged, "only the replaced hero is retired")
}

func TestSaveRemoveHeroWithoutReplacementIsRejected(t *testing.T) {
	repo, store, edit := newEditFixture(t)
	p := seedProduct(t, repo)

	_, err := edit.Save(context.Background(), p.ID, EditInput{RemoveHero: true})

	var verr *apierror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Violations, "Hero image URL is required")
	assert.Empty(t, store.purged, "the old hero survives a rejected save")

	got, ferr := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, ferr)
	assert.Equal(t, heroRef, got.HeroImageURL)
}

func TestSaveMarkedSecondariesAreDroppedAndRetired(t *testing.T) {
	repo, store, edit := newEditFixture(t)
	p := seedProduct(t, repo)

	resp, err := edit.Save(context.Background(), p.ID, EditInput{
		ToBeDeleted: []string{imgRefA},
		NewImages:   []media.File{{Name: "c.jpg", Content: []byte{1}}},
	})
	require.NoError(t, err)

	newRef := "https://img.test/upload/v1/c.jpg"
	assert.Equal(t, []string{imgRefB, newRef}, resp.ProductImageURLs)
	assert.Equal(t, []string{imgRefA}, store.purged)
}

func TestSaveIgnoresDeleteMarksTheRecordDoesNotOwn(t *testing.T) {
	repo, store, edit := newEditFixture(t)
	p := seedProduct(t, repo)

	foreign := "https://res.cloudinary.com/demo/image/upload/v1/other/record.jpg"
	resp, err := edit.Save(context.Background(), p.ID, EditInput{
		ToBeDeleted: []string{foreign},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{imgRefA, imgRefB}, resp.ProductImageURLs)
	assert.Empty(t, store.purged, "references owned by other records are never purged")
}

func TestSaveVariantSwitchClearsOldPricingShape(t *testing.T) {
	repo, _, edit := newEditFixture(t)
	p := seedProduct(t, repo)

	price := decimal.NewFromInt(1299)
	resp, err := edit.Save(context.Background(), p.ID, EditInput{
		Fields: dto.ProductPayload{
			ProductType:    sptr("kit"),
			Price:          &price,
			LocalName:      sptr("Sandhi Sudha"),
			AyurvedicNames: []string{"Sandhivata"},
			ShortIntro:     sptr("A classical regimen."),
			KeySymptoms:    []string{"Joint stiffness"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "kit", resp.ProductType)
	assert.Empty(t, resp.SizePrices, "the product-shape pricing is dropped on switch")
	require.NotNil(t, resp.Price)
	assert.True(t, resp.Price.Equal(price))
}

func TestSaveDeduplicatesSecondaryReferences(t *testing.T) {
	repo, _, edit := newEditFixture(t)
	p := seedProduct(t, repo)

	resp, err := edit.Save(context.Background(), p.ID, EditInput{
		Fields: dto.ProductPayload{
			ProductImageURLs: []string{imgRefA, imgRefA, imgRefB},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{imgRefA, imgRefB}, resp.ProductImageURLs)
}

func TestSavePayloadHeroReferenceReplacesWithoutUpload(t *testing.T) {
	repo, store, edit := newEditFixture(t)
	p := seedProduct(t, repo)

	newHero := "https://res.cloudinary.com/demo/image/upload/v1/vedacart/hero_v2.jpg"
	resp, err := edit.Save(context.Background(), p.ID, EditInput{
		Fields: dto.ProductPayload{HeroImageURL: &newHero},
	})
	require.NoError(t, err)

	assert.Equal(t, newHero, resp.HeroImageURL)
	assert.Empty(t, store.uploaded)
	assert.Equal(t, []string{heroRef}, store.purged)
}
