package migrations

import (
	"github.com/kasumba/go-storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Store{},
		&models.Customer{},
		&models.Product{},
		&models.ProductOption{},
		&models.ProductVariant{},
		&models.Media{},
		&models.Cart{},
		&models.CartItem{},
		&models.CartDiscount{},
		&models.Order{},
		&models.OrderItem{},
	)
}
