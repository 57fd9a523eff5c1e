package repositories

import (
	"context"

	"github.com/kasumba/go-storefront/app/models"
	"gorm.io/gorm"
)

// VariantWithProduct carries enough joined data to price and denormalize a
// cart or order line in one lookup.
type VariantWithProduct struct {
	Variant models.ProductVariant
	Product models.Product
}

type VariantRepository interface {
	GetByID(ctx context.Context, id string) (*models.ProductVariant, error)
	// FindByIDsAndStore returns every requested variant that exists under the
	// store, with its product preloaded. Callers compare the result count to
	// the request to enforce all-or-nothing batch validation.
	FindByIDsAndStore(ctx context.Context, variantIDs []string, storeID string) ([]VariantWithProduct, error)
	ListByProduct(ctx context.Context, productID string, includeArchived bool) ([]models.ProductVariant, error)
	// FirstActiveByProduct returns the oldest non-archived variant, used when
	// a cart add names no variant.
	FirstActiveByProduct(ctx context.Context, productID string) (*models.ProductVariant, error)
	Create(ctx context.Context, variant *models.ProductVariant) error
	Save(ctx context.Context, variant *models.ProductVariant) error
}

type gormVariantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &gormVariantRepository{db: db}
}

func (r *gormVariantRepository) GetByID(ctx context.Context, id string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *gormVariantRepository) FindByIDsAndStore(ctx context.Context, variantIDs []string, storeID string) ([]VariantWithProduct, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}
	var variants []models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Product").
		Joins("JOIN products ON products.id = product_variants.product_id").
		Where("product_variants.id IN ? AND products.store_id = ?", variantIDs, storeID).
		Find(&variants).Error
	if err != nil {
		return nil, err
	}
	result := make([]VariantWithProduct, 0, len(variants))
	for _, v := range variants {
		result = append(result, VariantWithProduct{Variant: v, Product: v.Product})
	}
	return result, nil
}

func (r *gormVariantRepository) ListByProduct(ctx context.Context, productID string, includeArchived bool) ([]models.ProductVariant, error) {
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}
	var variants []models.ProductVariant
	if err := query.Order("created_at ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

func (r *gormVariantRepository) FirstActiveByProduct(ctx context.Context, productID string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND is_archived = ?", productID, false).
		Order("created_at ASC").
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *gormVariantRepository) Create(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *gormVariantRepository) Save(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}
