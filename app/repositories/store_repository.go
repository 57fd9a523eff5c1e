package repositories

import (
	"context"

	"github.com/kasumba/go-storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StoreRepository interface {
	GetByID(ctx context.Context, id string) (*models.Store, error)
	// LockByID takes a row lock on the store. Inside a UnitOfWork this
	// serializes order-number generation per store.
	LockByID(ctx context.Context, id string) (*models.Store, error)
	Create(ctx context.Context, store *models.Store) error
}

type gormStoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &gormStoreRepository{db: db}
}

func (r *gormStoreRepository) GetByID(ctx context.Context, id string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *gormStoreRepository) LockByID(ctx context.Context, id string) (*models.Store, error) {
	var store models.Store
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&store, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *gormStoreRepository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}
