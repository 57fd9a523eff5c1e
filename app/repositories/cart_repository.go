package repositories

import (
	"context"
	"time"

	"github.com/kasumba/go-storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	GetByID(ctx context.Context, id string) (*models.Cart, error)
	GetWithItems(ctx context.Context, id string) (*models.Cart, error)
	// LockByID takes a row lock on the cart so concurrent mutations of the
	// same cart serialize inside their transactions.
	LockByID(ctx context.Context, id string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	// UpdateTotals writes the five aggregate fields, status and
	// last_activity_at in one statement.
	UpdateTotals(ctx context.Context, cart *models.Cart) error
	UpdateStatus(ctx context.Context, cartID string, status models.CartStatus) error
}

type gormCartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &gormCartRepository{db: db}
}

func (r *gormCartRepository) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).First(&cart, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) GetWithItems(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Discounts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&cart, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) LockByID(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&cart, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *gormCartRepository) UpdateTotals(ctx context.Context, cart *models.Cart) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"subtotal_amount":  cart.SubtotalAmount,
			"tax_amount":       cart.TaxAmount,
			"shipping_amount":  cart.ShippingAmount,
			"discount_amount":  cart.DiscountAmount,
			"total_amount":     cart.TotalAmount,
			"last_activity_at": cart.LastActivityAt,
			"updated_at":       time.Now(),
		}).Error
}

func (r *gormCartRepository) UpdateStatus(ctx context.Context, cartID string, status models.CartStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("status", status).Error
}
