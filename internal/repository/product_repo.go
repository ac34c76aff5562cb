package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vedacart/internal/apierror"
	"vedacart/internal/model"
)

// ProductRepository is the persistence port for catalog records. Not-found and
// unique-name collisions surface as apierror sentinels so callers never touch
// GORM error values.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	// Update persists the full record. The reconciliation engine always saves
	// a complete merged candidate, never a sparse patch.
	Update(ctx context.Context, p *model.Product) error
	// UpdateFields applies a targeted column patch (featured toggle).
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListSummaries(ctx context.Context) ([]model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return translate(err)
	}
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	// Save with Select("*") so cleared optional columns are written back as
	// NULL rather than skipped as zero values.
	res := r.db.WithContext(ctx).Model(p).Select("*").Omit("created_at").Updates(p)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apierror.ErrNotFound
	}
	return nil
}

func (r *productRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apierror.ErrNotFound
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return apierror.ErrNotFound
	}
	return nil
}

// ListSummaries loads the browse projection: only the columns the catalog
// cards need, in insertion order so the derived filter options are stable.
func (r *productRepo) ListSummaries(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Select("id", "name", "product_type", "hero_image_url", "featured",
			"category", "subcategory", "price", "size_prices").
		Order("created_at ASC").
		Find(&products).Error
	if err != nil {
		return nil, translate(err)
	}
	return products, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apierror.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierror.ErrDuplicate
	default:
		return err
	}
}
