package repositories

import (
	"context"

	"github.com/kasumba/go-storefront/app/models"
	"gorm.io/gorm"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// GetWithOptionsAndVariants preloads options in declaration order and all
	// variants, archived included.
	GetWithOptionsAndVariants(ctx context.Context, id string) (*models.Product, error)
	GetByIDAndStore(ctx context.Context, id, storeID string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	ReplaceOptions(ctx context.Context, productID string, options []models.ProductOption) error
}

type gormProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &gormProductRepository{db: db}
}

func (r *gormProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) GetWithOptionsAndVariants(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Variants").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) GetByIDAndStore(ctx context.Context, id, storeID string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		First(&product, "id = ? AND store_id = ?", id, storeID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *gormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *gormProductRepository) ReplaceOptions(ctx context.Context, productID string, options []models.ProductOption) error {
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.ProductOption{}).Error; err != nil {
		return err
	}
	if len(options) == 0 {
		return nil
	}
	for i := range options {
		options[i].ProductID = productID
		options[i].Position = i
	}
	return r.db.WithContext(ctx).Create(&options).Error
}
