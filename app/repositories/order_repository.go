package repositories

import (
	"context"
	"time"

	"github.com/kasumba/go-storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetWithItems(ctx context.Context, id string) (*models.Order, error)
	// LockByID serializes concurrent updates of the same order.
	LockByID(ctx context.Context, id string) (*models.Order, error)
	// CountByStore backs sequential order numbering; call it only while
	// holding the store row lock.
	CountByStore(ctx context.Context, storeID string) (int64, error)
	Create(ctx context.Context, order *models.Order) error
	Save(ctx context.Context, order *models.Order) error
	// UpdateTotals writes only the aggregate money fields.
	UpdateTotals(ctx context.Context, order *models.Order) error
	ListByStore(ctx context.Context, storeID string) ([]models.Order, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetWithItems(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Store").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) LockByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) CountByStore(ctx context.Context, storeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("store_id = ?", storeID).
		Count(&count).Error
	return count, err
}

func (r *gormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *gormOrderRepository) Save(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *gormOrderRepository) UpdateTotals(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"subtotal_amount": order.SubtotalAmount,
			"tax_amount":      order.TaxAmount,
			"shipping_amount": order.ShippingAmount,
			"discount_amount": order.DiscountAmount,
			"total_amount":    order.TotalAmount,
			"updated_at":      time.Now(),
		}).Error
}

func (r *gormOrderRepository) ListByStore(ctx context.Context, storeID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
