package repositories

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles every data-access interface. A UnitOfWork hands the
// engines a transaction-bound set; outside a transaction NewRepositories
// binds them to the root connection.
type Repositories struct {
	Stores        StoreRepository
	Products      ProductRepository
	Variants      VariantRepository
	Media         MediaRepository
	Carts         CartRepository
	CartItems     CartItemRepository
	CartDiscounts CartDiscountRepository
	Orders        OrderRepository
	OrderItems    OrderItemRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Stores:        NewStoreRepository(db),
		Products:      NewProductRepository(db),
		Variants:      NewVariantRepository(db),
		Media:         NewMediaRepository(db),
		Carts:         NewCartRepository(db),
		CartItems:     NewCartItemRepository(db),
		CartDiscounts: NewCartDiscountRepository(db),
		Orders:        NewOrderRepository(db),
		OrderItems:    NewOrderItemRepository(db),
	}
}

// UnitOfWork runs a sequence of repository calls atomically. Either every
// write inside fn becomes visible together or none do; any error rolls the
// whole transaction back. Engines depend on this interface and never see the
// underlying ORM handle.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r *Repositories) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) Do(ctx context.Context, fn func(r *Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
