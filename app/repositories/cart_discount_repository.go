package repositories

import (
	"context"

	"github.com/kasumba/go-storefront/app/models"
	"gorm.io/gorm"
)

type CartDiscountRepository interface {
	ListByCart(ctx context.Context, cartID string) ([]models.CartDiscount, error)
	Create(ctx context.Context, discount *models.CartDiscount) error
	Delete(ctx context.Context, discountID, cartID string) error
}

type gormCartDiscountRepository struct {
	db *gorm.DB
}

func NewCartDiscountRepository(db *gorm.DB) CartDiscountRepository {
	return &gormCartDiscountRepository{db: db}
}

func (r *gormCartDiscountRepository) ListByCart(ctx context.Context, cartID string) ([]models.CartDiscount, error) {
	var discounts []models.CartDiscount
	err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&discounts).Error
	if err != nil {
		return nil, err
	}
	return discounts, nil
}

func (r *gormCartDiscountRepository) Create(ctx context.Context, discount *models.CartDiscount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *gormCartDiscountRepository) Delete(ctx context.Context, discountID, cartID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", discountID, cartID).
		Delete(&models.CartDiscount{}).Error
}
