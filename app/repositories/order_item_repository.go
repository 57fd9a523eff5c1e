package repositories

import (
	"context"

	"github.com/kasumba/go-storefront/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	GetByIDAndOrder(ctx context.Context, itemID, orderID string) (*models.OrderItem, error)
	ListByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error)
	BulkCreate(ctx context.Context, items []models.OrderItem) error
	Update(ctx context.Context, item *models.OrderItem) error
	DeleteByIDs(ctx context.Context, orderID string, itemIDs []string) error
}

type gormOrderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &gormOrderItemRepository{db: db}
}

func (r *gormOrderItemRepository) GetByIDAndOrder(ctx context.Context, itemID, orderID string) (*models.OrderItem, error) {
	var item models.OrderItem
	err := r.db.WithContext(ctx).
		First(&item, "id = ? AND order_id = ?", itemID, orderID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *gormOrderItemRepository) ListByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormOrderItemRepository) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *gormOrderItemRepository) Update(ctx context.Context, item *models.OrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *gormOrderItemRepository) DeleteByIDs(ctx context.Context, orderID string, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("order_id = ? AND id IN ?", orderID, itemIDs).
		Delete(&models.OrderItem{}).Error
}
