package services

import (
	"context"
	"testing"
	"time"

	"github.com/kasumba/go-storefront/app/models"
	"github.com/kasumba/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartFixture struct {
	db      *memDB
	repos   *repositories.Repositories
	svc     *CartService
	store   *models.Store
	product *models.Product
	variant *models.ProductVariant // 100.00
	cart    *models.Cart
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	ctx := context.Background()
	db := newMemDB()
	repos := newFakeRepos(db)
	svc := NewCartService(&fakeUnitOfWork{repos: repos}, repos)

	store := &models.Store{Name: "Duka", Slug: "duka", Currency: "UGX", CurrencySymbol: "USh"}
	require.NoError(t, repos.Stores.Create(ctx, store))

	product := &models.Product{StoreID: store.ID, Title: "Kitenge Shirt", Slug: "kitenge-shirt"}
	require.NoError(t, repos.Products.Create(ctx, product))

	variant := &models.ProductVariant{
		ProductID:         product.ID,
		OptionCombination: models.StringList{"M", "Red"},
		Sku:               "KS-M-RED",
		Price:             decimal.RequireFromString("100.00"),
	}
	require.NoError(t, repos.Variants.Create(ctx, variant))

	cart, err := svc.CreateCart(ctx, CreateCartInput{StoreID: store.ID})
	require.NoError(t, err)

	return &cartFixture{db: db, repos: repos, svc: svc, store: store, product: product, variant: variant, cart: cart}
}

func TestAddItemSnapshotsVariant(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	variantID := f.variant.ID
	cart, err := f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: f.product.ID, VariantID: &variantID, Quantity: 1,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	item := cart.Items[0]
	assert.Equal(t, "Kitenge Shirt", item.Title)
	assert.Equal(t, "M / Red", item.VariantName)
	assert.Equal(t, "KS-M-RED", item.Sku)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, cart.SubtotalAmount.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, cart.TotalAmount.Equal(decimal.RequireFromString("100.00")))
}

func TestAddItemDefaultsToFirstActiveVariant(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	cart, err := f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: f.product.ID, Quantity: 2,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, f.variant.ID, cart.Items[0].VariantID)
	assert.True(t, cart.SubtotalAmount.Equal(decimal.RequireFromString("200.00")))
}

func TestAddItemPreviewImageFallsBackToProduct(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, f.repos.Media.Create(ctx, &models.Media{
		OwnerType: models.MediaOwnerProduct, OwnerID: f.product.ID,
		URL: "https://cdn.example/product.jpg", Position: 0,
	}))

	variantID := f.variant.ID
	cart, err := f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: f.product.ID, VariantID: &variantID, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/product.jpg", cart.Items[0].PreviewImageURL)

	// variant media takes precedence once present
	require.NoError(t, f.repos.Media.Create(ctx, &models.Media{
		OwnerType: models.MediaOwnerProductVariant, OwnerID: f.variant.ID,
		URL: "https://cdn.example/variant.jpg", Position: 0,
	}))
	cart, err = f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: f.product.ID, VariantID: &variantID, Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/variant.jpg", cart.Items[1].PreviewImageURL)
}

func TestAddItemRejectsVariantFromOtherStore(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	otherStore := &models.Store{Name: "Other", Slug: "other"}
	require.NoError(t, f.repos.Stores.Create(ctx, otherStore))
	otherProduct := &models.Product{StoreID: otherStore.ID, Title: "Hat", Slug: "hat"}
	require.NoError(t, f.repos.Products.Create(ctx, otherProduct))
	otherVariant := &models.ProductVariant{
		ProductID:         otherProduct.ID,
		OptionCombination: models.DefaultCombination,
		Price:             decimal.NewFromInt(1),
	}
	require.NoError(t, f.repos.Variants.Create(ctx, otherVariant))

	variantID := otherVariant.ID
	_, err := f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: otherProduct.ID, VariantID: &variantID, Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestUpdateItemQuantityRecomputesLineAndCart(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	variantID := f.variant.ID
	cart, err := f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: f.product.ID, VariantID: &variantID, Quantity: 1,
	})
	require.NoError(t, err)

	cart, err = f.svc.UpdateItemQuantity(ctx, cart.ID, cart.Items[0].ID, 3)
	require.NoError(t, err)
	assert.True(t, cart.Items[0].SubtotalAmount.Equal(decimal.RequireFromString("300.00")))
	assert.True(t, cart.SubtotalAmount.Equal(decimal.RequireFromString("300.00")))
	assert.True(t, cart.TotalAmount.Equal(decimal.RequireFromString("300.00")))

	_, err = f.svc.UpdateItemQuantity(ctx, cart.ID, cart.Items[0].ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemoveItemRecomputesCart(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	variantID := f.variant.ID
	cart, err := f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: f.product.ID, VariantID: &variantID, Quantity: 2,
	})
	require.NoError(t, err)
	cart, err = f.svc.AddItem(ctx, cart.ID, AddCartItemInput{
		ProductID: f.product.ID, VariantID: &variantID, Quantity: 1,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)

	cart, err = f.svc.RemoveItem(ctx, cart.ID, cart.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.True(t, cart.SubtotalAmount.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, cart.TotalAmount.Equal(decimal.RequireFromString("100.00")))
}

func TestApplyPercentageDiscount(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	variantID := f.variant.ID
	cart, err := f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: f.product.ID, VariantID: &variantID, Quantity: 1,
	})
	require.NoError(t, err)
	require.True(t, cart.SubtotalAmount.Equal(decimal.RequireFromString("100.00")))

	cart, err = f.svc.ApplyDiscount(ctx, cart.ID, ApplyDiscountInput{
		Code: "WELCOME10", Type: models.DiscountTypePercentage, Amount: "10",
	})
	require.NoError(t, err)
	assert.True(t, cart.DiscountAmount.Equal(decimal.RequireFromString("10.00")),
		"discount %s", cart.DiscountAmount)
	assert.True(t, cart.TotalAmount.Equal(decimal.RequireFromString("90.00")),
		"total %s", cart.TotalAmount)

	// percentage tracks the subtotal: doubling the quantity doubles the cut
	cart, err = f.svc.UpdateItemQuantity(ctx, cart.ID, cart.Items[0].ID, 2)
	require.NoError(t, err)
	assert.True(t, cart.DiscountAmount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, cart.TotalAmount.Equal(decimal.RequireFromString("180.00")))
}

func TestApplyFixedDiscount(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	variantID := f.variant.ID
	cart, err := f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: f.product.ID, VariantID: &variantID, Quantity: 1,
	})
	require.NoError(t, err)

	cart, err = f.svc.ApplyDiscount(ctx, cart.ID, ApplyDiscountInput{
		Code: "FLAT25", Type: models.DiscountTypeFixed, Amount: "25.00",
	})
	require.NoError(t, err)
	assert.True(t, cart.DiscountAmount.Equal(decimal.RequireFromString("25.00")))
	assert.True(t, cart.TotalAmount.Equal(decimal.RequireFromString("75.00")))
}

func TestApplyDiscountExceedingSubtotalFailsInvariant(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	variantID := f.variant.ID
	cart, err := f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: f.product.ID, VariantID: &variantID, Quantity: 1,
	})
	require.NoError(t, err)

	_, err = f.svc.ApplyDiscount(ctx, cart.ID, ApplyDiscountInput{
		Code: "TOOBIG", Type: models.DiscountTypeFixed, Amount: "150.00",
	})
	require.ErrorIs(t, err, ErrInvariant)

	// stored aggregates untouched, not clamped to zero
	reloaded, err := f.repos.Carts.GetWithItems(ctx, cart.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.SubtotalAmount.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, reloaded.TotalAmount.Equal(decimal.RequireFromString("100.00")))
	assert.False(t, reloaded.TotalAmount.IsNegative())
}

func TestCartTotalInvariantHoldsAfterEveryMutation(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	check := func(cart *models.Cart) {
		t.Helper()
		expected := cart.SubtotalAmount.Sub(cart.DiscountAmount).
			Add(cart.TaxAmount).Add(cart.ShippingAmount)
		assert.True(t, cart.TotalAmount.Equal(expected),
			"total %s != %s", cart.TotalAmount, expected)
	}

	variantID := f.variant.ID
	cart, err := f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: f.product.ID, VariantID: &variantID, Quantity: 2,
	})
	require.NoError(t, err)
	check(cart)

	cart, err = f.svc.ApplyDiscount(ctx, cart.ID, ApplyDiscountInput{
		Code: "TEN", Type: models.DiscountTypePercentage, Amount: "10",
	})
	require.NoError(t, err)
	check(cart)

	cart, err = f.svc.UpdateItemQuantity(ctx, cart.ID, cart.Items[0].ID, 5)
	require.NoError(t, err)
	check(cart)

	cart, err = f.svc.RemoveItem(ctx, cart.ID, cart.Items[0].ID)
	require.NoError(t, err)
	check(cart)
	assert.True(t, cart.TotalAmount.IsZero())
}

func TestMutationsStampLastActivity(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	before := f.cart.LastActivityAt
	time.Sleep(5 * time.Millisecond)

	variantID := f.variant.ID
	cart, err := f.svc.AddItem(ctx, f.cart.ID, AddCartItemInput{
		ProductID: f.product.ID, VariantID: &variantID, Quantity: 1,
	})
	require.NoError(t, err)
	assert.True(t, cart.LastActivityAt.After(before))
}

func TestApplyDiscountRejectsBadAmount(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()

	_, err := f.svc.ApplyDiscount(ctx, f.cart.ID, ApplyDiscountInput{
		Code: "BAD", Type: models.DiscountTypeFixed, Amount: "not-a-number",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.ApplyDiscount(ctx, f.cart.ID, ApplyDiscountInput{
		Code: "NEG", Type: models.DiscountTypeFixed, Amount: "-5",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCartNotFound(t *testing.T) {
	f := newCartFixture(t)
	_, err := f.svc.GetCart(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
