package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kasumba/go-storefront/app/models"
	"github.com/kasumba/go-storefront/app/repositories"
	"github.com/kasumba/go-storefront/app/utils/calc"
	"github.com/kasumba/go-storefront/app/utils/format"
	"gorm.io/gorm"
)

// OrderService owns draft order creation, order item mutation and the status
// machine. Every mutation runs inside one unit of work with a row lock on the
// order (or the store, for numbering) so concurrent calls serialize per
// entity.
type OrderService struct {
	uow   repositories.UnitOfWork
	repos *repositories.Repositories
}

func NewOrderService(uow repositories.UnitOfWork, repos *repositories.Repositories) *OrderService {
	return &OrderService{uow: uow, repos: repos}
}

type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	VariantID string `json:"variantId" validate:"required,uuid4"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type CreateOrderInput struct {
	CustomerID   *string          `json:"customerId" validate:"omitempty,uuid4"`
	CustomerNote string           `json:"customerNote"`
	Items        []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderItemInput struct {
	ID       string `json:"id" validate:"required,uuid4"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

type UpdateOrderInput struct {
	Status         *models.OrderStatus    `json:"status"`
	PaymentStatus  *models.PaymentStatus  `json:"paymentStatus"`
	ShipmentStatus *models.ShipmentStatus `json:"shipmentStatus"`

	CustomerNote   *string `json:"customerNote"`
	PrivateNote    *string `json:"privateNote"`
	TrackingNumber *string `json:"trackingNumber"`
	TrackingURL    *string `json:"trackingUrl"`

	AddItems      []OrderItemInput       `json:"addItems" validate:"omitempty,dive"`
	UpdateItems   []UpdateOrderItemInput `json:"updateItems" validate:"omitempty,dive"`
	RemoveItemIDs []string               `json:"removeItemIds"`
}

func (in UpdateOrderInput) mutatesItems() bool {
	return len(in.AddItems) > 0 || len(in.UpdateItems) > 0 || len(in.RemoveItemIDs) > 0
}

// priceLine computes a line from variant price and quantity. Tax and discount
// stay zero until those engines exist; the total still runs through the
// general formula.
func priceLine(variant *models.ProductVariant, product *models.Product, quantity int) models.OrderItem {
	subtotal := calc.LineSubtotal(variant.Price, quantity)
	tax := calc.Zero()
	discount := calc.Zero()
	return models.OrderItem{
		ProductID:      product.ID,
		VariantID:      variant.ID,
		Title:          product.Title,
		VariantName:    variant.DisplayName(),
		Sku:            variant.Sku,
		UnitPrice:      variant.Price,
		Quantity:       quantity,
		SubtotalAmount: subtotal,
		TaxAmount:      tax,
		DiscountAmount: discount,
		TotalAmount:    calc.LineTotal(subtotal, discount, tax),
	}
}

// buildOrderItems validates and prices a batch atomically: every requested
// variant must exist under the store and belong to the product named next to
// it, or the whole batch is rejected and nothing is created.
func buildOrderItems(ctx context.Context, r *repositories.Repositories, storeID string, inputs []OrderItemInput) ([]models.OrderItem, error) {
	variantIDs := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1 for variant %s", ErrInvalidInput, in.VariantID)
		}
		variantIDs = append(variantIDs, in.VariantID)
	}

	found, err := r.Variants.FindByIDsAndStore(ctx, variantIDs, storeID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]repositories.VariantWithProduct, len(found))
	for _, vp := range found {
		byID[vp.Variant.ID] = vp
	}

	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		vp, ok := byID[in.VariantID]
		if !ok {
			return nil, fmt.Errorf("%w: variant %s not found in store", ErrInvalidReference, in.VariantID)
		}
		if vp.Variant.ProductID != in.ProductID {
			return nil, fmt.Errorf("%w: variant %s does not belong to product %s", ErrInvalidReference, in.VariantID, in.ProductID)
		}
		items = append(items, priceLine(&vp.Variant, &vp.Product, in.Quantity))
	}
	return items, nil
}

// recomputeOrderTotals rebuilds the aggregates as a pure function of the
// current item set. Never incremental, so repeated calls are idempotent.
func recomputeOrderTotals(order *models.Order, items []models.OrderItem) error {
	subtotal := calc.Zero()
	tax := calc.Zero()
	discount := calc.Zero()
	for i := range items {
		subtotal = subtotal.Add(items[i].SubtotalAmount)
		tax = tax.Add(items[i].TaxAmount)
		discount = discount.Add(items[i].DiscountAmount)
	}
	total := calc.AggregateTotal(subtotal, discount, tax, order.ShippingAmount)
	if calc.IsNegative(total) || calc.IsNegative(subtotal) {
		return fmt.Errorf("%w: negative order total for order %s", ErrInvariant, order.ID)
	}
	order.SubtotalAmount = subtotal
	order.TaxAmount = tax
	order.DiscountAmount = discount
	order.TotalAmount = total
	return nil
}

// CreateDraftOrder creates an order in DRAFT with a store-scoped sequential
// number. The store row is locked for the duration of the transaction so
// count-then-insert cannot race for the same number.
func (s *OrderService) CreateDraftOrder(ctx context.Context, storeID string, input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: an order needs at least one item", ErrInvalidInput)
	}

	var orderID string
	err := s.uow.Do(ctx, func(r *repositories.Repositories) error {
		id, err := createDraftOrderTx(ctx, r, storeID, input)
		if err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}

// createDraftOrderTx is the transaction-scoped body shared by direct creation
// and cart conversion.
func createDraftOrderTx(ctx context.Context, r *repositories.Repositories, storeID string, input CreateOrderInput) (string, error) {
	store, err := r.Stores.LockByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: store %s", ErrNotFound, storeID)
		}
		return "", err
	}

	items, err := buildOrderItems(ctx, r, store.ID, input.Items)
	if err != nil {
		return "", err
	}

	count, err := r.Orders.CountByStore(ctx, store.ID)
	if err != nil {
		return "", err
	}

	order := &models.Order{
		StoreID:        store.ID,
		CustomerID:     input.CustomerID,
		OrderNumber:    format.OrderNumber(count + 1),
		Status:         models.OrderStatusDraft,
		PaymentStatus:  models.PaymentStatusPending,
		ShipmentStatus: models.ShipmentStatusPending,
		Currency:       store.Currency,
		CurrencySymbol: store.CurrencySymbol,
		CustomerNote:   input.CustomerNote,
	}
	if err := recomputeOrderTotals(order, items); err != nil {
		return "", err
	}
	if err := r.Orders.Create(ctx, order); err != nil {
		return "", err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := r.OrderItems.BulkCreate(ctx, items); err != nil {
		return "", err
	}
	return order.ID, nil
}

// ConvertCart creates a draft order from an active cart's items and marks the
// cart CONVERTED, all in one transaction scope.
func (s *OrderService) ConvertCart(ctx context.Context, cartID string) (*models.Order, error) {
	var orderID string
	err := s.uow.Do(ctx, func(r *repositories.Repositories) error {
		if _, err := r.Carts.LockByID(ctx, cartID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cart %s", ErrNotFound, cartID)
			}
			return err
		}
		cart, err := r.Carts.GetWithItems(ctx, cartID)
		if err != nil {
			return err
		}
		if cart.Status != models.CartStatusActive {
			return fmt.Errorf("%w: cart %s is %s", ErrInvalidInput, cartID, cart.Status)
		}
		if len(cart.Items) == 0 {
			return fmt.Errorf("%w: cart %s is empty", ErrInvalidInput, cartID)
		}

		inputs := make([]OrderItemInput, 0, len(cart.Items))
		for _, item := range cart.Items {
			inputs = append(inputs, OrderItemInput{
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
			})
		}

		id, err := createDraftOrderTx(ctx, r, cart.StoreID, CreateOrderInput{
			CustomerID: cart.CustomerID,
			Items:      inputs,
		})
		if err != nil {
			return err
		}
		orderID = id
		return r.Carts.UpdateStatus(ctx, cartID, models.CartStatusConverted)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}

// itemMutationAllowed gates the add/update/remove paths: items stay editable
// while the order is still DRAFT or PENDING.
func itemMutationAllowed(status models.OrderStatus) bool {
	return status == models.OrderStatusDraft || status == models.OrderStatusPending
}

// UpdateOrder applies status changes, note/tracking edits and any combination
// of item add/update/remove in one atomic call. After the item mutations the
// totals are recomputed from the full resulting item set.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, input UpdateOrderInput) (*models.Order, error) {
	err := s.uow.Do(ctx, func(r *repositories.Repositories) error {
		order, err := r.Orders.LockByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %s", ErrNotFound, orderID)
			}
			return err
		}

		now := time.Now()
		if err := applyStatusChange(order, input.Status, input.PaymentStatus, input.ShipmentStatus, now); err != nil {
			return err
		}

		if input.CustomerNote != nil {
			order.CustomerNote = *input.CustomerNote
		}
		if input.PrivateNote != nil {
			order.PrivateNote = *input.PrivateNote
		}
		if input.TrackingNumber != nil {
			order.TrackingNumber = *input.TrackingNumber
		}
		if input.TrackingURL != nil {
			order.TrackingURL = *input.TrackingURL
		}

		if input.mutatesItems() {
			if !itemMutationAllowed(order.Status) {
				return fmt.Errorf("%w: items cannot change once order %s is %s", ErrInvalidInput, order.ID, order.Status)
			}
			if err := s.applyItemMutations(ctx, r, order, input); err != nil {
				return err
			}
		}

		items, err := r.OrderItems.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		if err := recomputeOrderTotals(order, items); err != nil {
			return err
		}
		return r.Orders.Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}

func (s *OrderService) applyItemMutations(ctx context.Context, r *repositories.Repositories, order *models.Order, input UpdateOrderInput) error {
	for _, upd := range input.UpdateItems {
		item, err := r.OrderItems.GetByIDAndOrder(ctx, upd.ID, order.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order item %s", ErrNotFound, upd.ID)
			}
			return err
		}
		if upd.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1 for item %s", ErrInvalidInput, upd.ID)
		}
		item.Quantity = upd.Quantity
		item.SubtotalAmount = calc.LineSubtotal(item.UnitPrice, upd.Quantity)
		item.TotalAmount = calc.LineTotal(item.SubtotalAmount, item.DiscountAmount, item.TaxAmount)
		if err := r.OrderItems.Update(ctx, item); err != nil {
			return err
		}
	}

	if err := r.OrderItems.DeleteByIDs(ctx, order.ID, input.RemoveItemIDs); err != nil {
		return err
	}

	if len(input.AddItems) > 0 {
		added, err := buildOrderItems(ctx, r, order.StoreID, input.AddItems)
		if err != nil {
			return err
		}
		for i := range added {
			added[i].OrderID = order.ID
		}
		if err := r.OrderItems.BulkCreate(ctx, added); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.repos.Orders.GetWithItems(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}
		return nil, err
	}
	return order, nil
}

// DisplayOrderNumber formats the raw number with the store's prefix/suffix.
func (s *OrderService) DisplayOrderNumber(ctx context.Context, order *models.Order) (string, error) {
	store, err := s.repos.Stores.GetByID(ctx, order.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: store %s", ErrNotFound, order.StoreID)
		}
		return "", err
	}
	return format.DisplayOrderNumber(order, store), nil
}
