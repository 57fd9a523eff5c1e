package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kasumba/go-storefront/app/models"
	"github.com/kasumba/go-storefront/app/repositories"
	"github.com/kasumba/go-storefront/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartService mirrors the order line engine for pre-purchase carts. Every
// mutation ends with a full recompute of the cart aggregates; totals are
// never adjusted incrementally.
type CartService struct {
	uow   repositories.UnitOfWork
	repos *repositories.Repositories
}

func NewCartService(uow repositories.UnitOfWork, repos *repositories.Repositories) *CartService {
	return &CartService{uow: uow, repos: repos}
}

type CreateCartInput struct {
	StoreID    string  `json:"storeId" validate:"required,uuid4"`
	CustomerID *string `json:"customerId" validate:"omitempty,uuid4"`
	Email      string  `json:"email" validate:"omitempty,email"`
	Phone      string  `json:"phone"`
}

type AddCartItemInput struct {
	ProductID string  `json:"productId" validate:"required,uuid4"`
	VariantID *string `json:"variantId" validate:"omitempty,uuid4"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
}

type ApplyDiscountInput struct {
	Code   string              `json:"code" validate:"required"`
	Type   models.DiscountType `json:"type" validate:"required,oneof=PERCENTAGE FIXED"`
	Amount string              `json:"amount" validate:"required"`
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q is not a decimal", ErrInvalidInput, raw)
	}
	if calc.IsNegative(amount) {
		return decimal.Decimal{}, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}
	return amount, nil
}

func (s *CartService) CreateCart(ctx context.Context, input CreateCartInput) (*models.Cart, error) {
	var cartID string
	err := s.uow.Do(ctx, func(r *repositories.Repositories) error {
		if _, err := r.Stores.GetByID(ctx, input.StoreID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: store %s", ErrNotFound, input.StoreID)
			}
			return err
		}
		cart := &models.Cart{
			StoreID:        input.StoreID,
			CustomerID:     input.CustomerID,
			Status:         models.CartStatusActive,
			Email:          input.Email,
			Phone:          input.Phone,
			SubtotalAmount: calc.Zero(),
			TaxAmount:      calc.Zero(),
			ShippingAmount: calc.Zero(),
			DiscountAmount: calc.Zero(),
			TotalAmount:    calc.Zero(),
			LastActivityAt: time.Now(),
		}
		if err := r.Carts.Create(ctx, cart); err != nil {
			return err
		}
		cartID = cart.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, cartID)
}

func (s *CartService) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	cart, err := s.repos.Carts.GetWithItems(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart %s", ErrNotFound, cartID)
		}
		return nil, err
	}
	return cart, nil
}

// AddItem snapshots the chosen variant into the cart. When no variant is
// named the product's first active variant is used. The preview image comes
// from the variant's first-position media, falling back to the product's.
func (s *CartService) AddItem(ctx context.Context, cartID string, input AddCartItemInput) (*models.Cart, error) {
	err := s.uow.Do(ctx, func(r *repositories.Repositories) error {
		cart, err := r.Carts.LockByID(ctx, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart %s", ErrNotFound, cartID)
			}
			return err
		}

		var variantID string
		if input.VariantID != nil {
			variantID = *input.VariantID
		} else {
			variant, err := r.Variants.FirstActiveByProduct(ctx, input.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %s has no active variant", ErrInvalidReference, input.ProductID)
				}
				return err
			}
			variantID = variant.ID
		}

		found, err := r.Variants.FindByIDsAndStore(ctx, []string{variantID}, cart.StoreID)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("%w: variant %s not found in store", ErrInvalidReference, variantID)
		}
		vp := found[0]
		if vp.Variant.ProductID != input.ProductID {
			return fmt.Errorf("%w: variant %s does not belong to product %s", ErrInvalidReference, variantID, input.ProductID)
		}

		subtotal := calc.LineSubtotal(vp.Variant.Price, input.Quantity)
		item := &models.CartItem{
			CartID:          cart.ID,
			ProductID:       vp.Product.ID,
			VariantID:       vp.Variant.ID,
			Title:           vp.Product.Title,
			VariantName:     vp.Variant.DisplayName(),
			Sku:             vp.Variant.Sku,
			PreviewImageURL: s.previewImageURL(ctx, r, &vp),
			UnitPrice:       vp.Variant.Price,
			Quantity:        input.Quantity,
			SubtotalAmount:  subtotal,
			TaxAmount:       calc.Zero(),
			DiscountAmount:  calc.Zero(),
			TotalAmount:     calc.LineTotal(subtotal, calc.Zero(), calc.Zero()),
		}
		if err := r.CartItems.Create(ctx, item); err != nil {
			return err
		}
		return recomputeCartTotalsTx(ctx, r, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, cartID)
}

// previewImageURL looks up the variant's first media, then the product's. A
// missing image is fine; the lookup never fails the mutation.
func (s *CartService) previewImageURL(ctx context.Context, r *repositories.Repositories, vp *repositories.VariantWithProduct) string {
	media, err := r.Media.FirstForOwner(ctx, models.MediaOwnerProductVariant, vp.Variant.ID)
	if err == nil {
		return media.URL
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("CartService: media lookup failed for variant %s: %v", vp.Variant.ID, err)
		return ""
	}
	media, err = r.Media.FirstForOwner(ctx, models.MediaOwnerProduct, vp.Product.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("CartService: media lookup failed for product %s: %v", vp.Product.ID, err)
		}
		return ""
	}
	return media.URL
}

// UpdateItemQuantity recomputes the line's subtotal and total, keeping its
// existing discount amount, then recomputes the cart.
func (s *CartService) UpdateItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}
	err := s.uow.Do(ctx, func(r *repositories.Repositories) error {
		cart, err := r.Carts.LockByID(ctx, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart %s", ErrNotFound, cartID)
			}
			return err
		}
		item, err := r.CartItems.GetByIDAndCart(ctx, itemID, cart.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart item %s", ErrNotFound, itemID)
			}
			return err
		}
		item.Quantity = quantity
		item.SubtotalAmount = calc.LineSubtotal(item.UnitPrice, quantity)
		item.TotalAmount = calc.LineTotal(item.SubtotalAmount, item.DiscountAmount, item.TaxAmount)
		if err := r.CartItems.Update(ctx, item); err != nil {
			return err
		}
		return recomputeCartTotalsTx(ctx, r, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, cartID)
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID string) (*models.Cart, error) {
	err := s.uow.Do(ctx, func(r *repositories.Repositories) error {
		cart, err := r.Carts.LockByID(ctx, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart %s", ErrNotFound, cartID)
			}
			return err
		}
		if _, err := r.CartItems.GetByIDAndCart(ctx, itemID, cart.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart item %s", ErrNotFound, itemID)
			}
			return err
		}
		if err := r.CartItems.Delete(ctx, itemID, cart.ID); err != nil {
			return err
		}
		return recomputeCartTotalsTx(ctx, r, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, cartID)
}

// ApplyDiscount appends the code as supplied. Real-world code validation
// belongs to a discount engine that does not exist yet; the amount semantics
// (percentage of subtotal vs fixed) are honored at aggregation time.
func (s *CartService) ApplyDiscount(ctx context.Context, cartID string, input ApplyDiscountInput) (*models.Cart, error) {
	amount, err := parseAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(r *repositories.Repositories) error {
		cart, err := r.Carts.LockByID(ctx, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart %s", ErrNotFound, cartID)
			}
			return err
		}
		discount := &models.CartDiscount{
			CartID:  cart.ID,
			Code:    input.Code,
			Type:    input.Type,
			Amount:  amount,
			Applied: true,
		}
		if err := r.CartDiscounts.Create(ctx, discount); err != nil {
			return err
		}
		return recomputeCartTotalsTx(ctx, r, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(ctx, cartID)
}

// recomputeCartTotalsTx rebuilds the cart aggregates from the current item
// and discount sets and stamps lastActivityAt. Percentage discounts apply to
// the pre-discount subtotal.
func recomputeCartTotalsTx(ctx context.Context, r *repositories.Repositories, cart *models.Cart) error {
	items, err := r.CartItems.ListByCart(ctx, cart.ID)
	if err != nil {
		return err
	}
	discounts, err := r.CartDiscounts.ListByCart(ctx, cart.ID)
	if err != nil {
		return err
	}

	subtotal := calc.Zero()
	tax := calc.Zero()
	for i := range items {
		subtotal = subtotal.Add(items[i].SubtotalAmount)
		tax = tax.Add(items[i].TaxAmount)
	}

	discountTotal := calc.Zero()
	for _, d := range discounts {
		if !d.Applied {
			continue
		}
		if d.Type == models.DiscountTypePercentage {
			discountTotal = discountTotal.Add(calc.Percentage(subtotal, d.Amount))
		} else {
			discountTotal = discountTotal.Add(d.Amount)
		}
	}

	total := calc.AggregateTotal(subtotal, discountTotal, tax, cart.ShippingAmount)
	if calc.IsNegative(total) || calc.IsNegative(subtotal) {
		return fmt.Errorf("%w: negative cart total for cart %s", ErrInvariant, cart.ID)
	}

	cart.SubtotalAmount = subtotal
	cart.TaxAmount = tax
	cart.DiscountAmount = discountTotal
	cart.TotalAmount = total
	cart.LastActivityAt = time.Now()
	return r.Carts.UpdateTotals(ctx, cart)
}
