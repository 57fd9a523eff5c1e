package seeders

import (
	"context"

	"github.com/kasumba/go-storefront/app/models"
	"github.com/kasumba/go-storefront/app/repositories"
	"github.com/kasumba/go-storefront/app/services"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DBSeed creates a demo store with one product whose variants are generated
// from its Size and Color options.
func DBSeed(db *gorm.DB) error {
	repos := repositories.NewRepositories(db)
	uow := repositories.NewUnitOfWork(db)
	ctx := context.Background()

	store := &models.Store{
		Name:        "Kampala Outfitters",
		Slug:        "kampala-outfitters",
		Currency:    "UGX",
		OrderPrefix: "ORD-",
	}
	if err := repos.Stores.Create(ctx, store); err != nil {
		return err
	}

	product := &models.Product{
		StoreID:     store.ID,
		Title:       "Classic Cotton Tee",
		Slug:        "classic-cotton-tee",
		Description: "A plain crew neck tee in soft cotton.",
	}
	if err := repos.Products.Create(ctx, product); err != nil {
		return err
	}

	variantSvc := services.NewVariantService(uow, repos)
	options := []services.OptionInput{
		{Name: "Size", Values: []string{"S", "M", "L"}},
		{Name: "Color", Values: []string{"Black", "White"}},
	}
	if _, err := variantSvc.SyncVariants(ctx, product.ID, options, decimal.NewFromInt(45000)); err != nil {
		return err
	}

	return nil
}
