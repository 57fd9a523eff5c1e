package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/kasumba/go-storefront/app/models"
	"github.com/kasumba/go-storefront/app/repositories"
	"gorm.io/gorm"
)

// memDB is a shared in-memory backing store for the fake repositories.
// Slices keep insertion order where the real queries order by created_at.
type memDB struct {
	stores        map[string]models.Store
	products      map[string]models.Product
	options       []models.ProductOption
	variants      []models.ProductVariant
	media         []models.Media
	carts         map[string]models.Cart
	cartItems     []models.CartItem
	cartDiscounts []models.CartDiscount
	orders        map[string]models.Order
	orderItems    []models.OrderItem
}

func newMemDB() *memDB {
	return &memDB{
		stores:   map[string]models.Store{},
		products: map[string]models.Product{},
		carts:    map[string]models.Cart{},
		orders:   map[string]models.Order{},
	}
}

func newFakeRepos(db *memDB) *repositories.Repositories {
	return &repositories.Repositories{
		Stores:        &fakeStoreRepo{db},
		Products:      &fakeProductRepo{db},
		Variants:      &fakeVariantRepo{db},
		Media:         &fakeMediaRepo{db},
		Carts:         &fakeCartRepo{db},
		CartItems:     &fakeCartItemRepo{db},
		CartDiscounts: &fakeCartDiscountRepo{db},
		Orders:        &fakeOrderRepo{db},
		OrderItems:    &fakeOrderItemRepo{db},
	}
}

// fakeUnitOfWork hands the same fake repo set to the callback. Failed
// mutations in these tests fail before any write, so rollback is not
// simulated.
type fakeUnitOfWork struct {
	repos *repositories.Repositories
}

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(r *repositories.Repositories) error) error {
	return fn(u.repos)
}

func newID() string { return uuid.New().String() }

type fakeStoreRepo struct{ db *memDB }

func (f *fakeStoreRepo) GetByID(ctx context.Context, id string) (*models.Store, error) {
	store, ok := f.db.stores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &store, nil
}

func (f *fakeStoreRepo) LockByID(ctx context.Context, id string) (*models.Store, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeStoreRepo) Create(ctx context.Context, store *models.Store) error {
	if store.ID == "" {
		store.ID = newID()
	}
	f.db.stores[store.ID] = *store
	return nil
}

type fakeProductRepo struct{ db *memDB }

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, ok := f.db.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &product, nil
}

func (f *fakeProductRepo) GetWithOptionsAndVariants(ctx context.Context, id string) (*models.Product, error) {
	product, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, opt := range f.db.options {
		if opt.ProductID == id {
			product.Options = append(product.Options, opt)
		}
	}
	for _, v := range f.db.variants {
		if v.ProductID == id {
			product.Variants = append(product.Variants, v)
		}
	}
	return product, nil
}

func (f *fakeProductRepo) GetByIDAndStore(ctx context.Context, id, storeID string) (*models.Product, error) {
	product, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.StoreID != storeID {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = newID()
	}
	f.db.products[product.ID] = *product
	return nil
}

func (f *fakeProductRepo) ReplaceOptions(ctx context.Context, productID string, options []models.ProductOption) error {
	kept := f.db.options[:0]
	for _, opt := range f.db.options {
		if opt.ProductID != productID {
			kept = append(kept, opt)
		}
	}
	f.db.options = kept
	for i := range options {
		if options[i].ID == "" {
			options[i].ID = newID()
		}
		options[i].ProductID = productID
		options[i].Position = i
		f.db.options = append(f.db.options, options[i])
	}
	return nil
}

type fakeVariantRepo struct{ db *memDB }

func (f *fakeVariantRepo) GetByID(ctx context.Context, id string) (*models.ProductVariant, error) {
	for _, v := range f.db.variants {
		if v.ID == id {
			variant := v
			return &variant, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVariantRepo) FindByIDsAndStore(ctx context.Context, variantIDs []string, storeID string) ([]repositories.VariantWithProduct, error) {
	wanted := map[string]bool{}
	for _, id := range variantIDs {
		wanted[id] = true
	}
	var result []repositories.VariantWithProduct
	for _, v := range f.db.variants {
		if !wanted[v.ID] {
			continue
		}
		product, ok := f.db.products[v.ProductID]
		if !ok || product.StoreID != storeID {
			continue
		}
		result = append(result, repositories.VariantWithProduct{Variant: v, Product: product})
	}
	return result, nil
}

func (f *fakeVariantRepo) ListByProduct(ctx context.Context, productID string, includeArchived bool) ([]models.ProductVariant, error) {
	var result []models.ProductVariant
	for _, v := range f.db.variants {
		if v.ProductID != productID {
			continue
		}
		if !includeArchived && v.IsArchived {
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

func (f *fakeVariantRepo) FirstActiveByProduct(ctx context.Context, productID string) (*models.ProductVariant, error) {
	for _, v := range f.db.variants {
		if v.ProductID == productID && !v.IsArchived {
			variant := v
			return &variant, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVariantRepo) Create(ctx context.Context, variant *models.ProductVariant) error {
	if variant.ID == "" {
		variant.ID = newID()
	}
	f.db.variants = append(f.db.variants, *variant)
	return nil
}

func (f *fakeVariantRepo) Save(ctx context.Context, variant *models.ProductVariant) error {
	for i := range f.db.variants {
		if f.db.variants[i].ID == variant.ID {
			f.db.variants[i] = *variant
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeMediaRepo struct{ db *memDB }

func (f *fakeMediaRepo) FirstForOwner(ctx context.Context, ownerType models.MediaOwnerType, ownerID string) (*models.Media, error) {
	var best *models.Media
	for i := range f.db.media {
		m := &f.db.media[i]
		if m.OwnerType != ownerType || m.OwnerID != ownerID {
			continue
		}
		if best == nil || m.Position < best.Position {
			best = m
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	media := *best
	return &media, nil
}

func (f *fakeMediaRepo) Create(ctx context.Context, media *models.Media) error {
	if media.ID == "" {
		media.ID = newID()
	}
	f.db.media = append(f.db.media, *media)
	return nil
}

func (f *fakeMediaRepo) ResolveOwner(ctx context.Context, ownerType models.MediaOwnerType, ownerID string) error {
	return nil
}

type fakeCartRepo struct{ db *memDB }

func (f *fakeCartRepo) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	cart, ok := f.db.carts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &cart, nil
}

func (f *fakeCartRepo) GetWithItems(ctx context.Context, id string) (*models.Cart, error) {
	cart, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, item := range f.db.cartItems {
		if item.CartID == id {
			cart.Items = append(cart.Items, item)
		}
	}
	for _, d := range f.db.cartDiscounts {
		if d.CartID == id {
			cart.Discounts = append(cart.Discounts, d)
		}
	}
	return cart, nil
}

func (f *fakeCartRepo) LockByID(ctx context.Context, id string) (*models.Cart, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeCartRepo) Create(ctx context.Context, cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = newID()
	}
	f.db.carts[cart.ID] = *cart
	return nil
}

func (f *fakeCartRepo) UpdateTotals(ctx context.Context, cart *models.Cart) error {
	stored, ok := f.db.carts[cart.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.SubtotalAmount = cart.SubtotalAmount
	stored.TaxAmount = cart.TaxAmount
	stored.ShippingAmount = cart.ShippingAmount
	stored.DiscountAmount = cart.DiscountAmount
	stored.TotalAmount = cart.TotalAmount
	stored.LastActivityAt = cart.LastActivityAt
	f.db.carts[cart.ID] = stored
	return nil
}

func (f *fakeCartRepo) UpdateStatus(ctx context.Context, cartID string, status models.CartStatus) error {
	stored, ok := f.db.carts[cartID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = status
	f.db.carts[cartID] = stored
	return nil
}

type fakeCartItemRepo struct{ db *memDB }

func (f *fakeCartItemRepo) GetByIDAndCart(ctx context.Context, itemID, cartID string) (*models.CartItem, error) {
	for _, item := range f.db.cartItems {
		if item.ID == itemID && item.CartID == cartID {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCartItemRepo) ListByCart(ctx context.Context, cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	for _, item := range f.db.cartItems {
		if item.CartID == cartID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeCartItemRepo) Create(ctx context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = newID()
	}
	f.db.cartItems = append(f.db.cartItems, *item)
	return nil
}

func (f *fakeCartItemRepo) Update(ctx context.Context, item *models.CartItem) error {
	for i := range f.db.cartItems {
		if f.db.cartItems[i].ID == item.ID {
			f.db.cartItems[i] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCartItemRepo) Delete(ctx context.Context, itemID, cartID string) error {
	kept := f.db.cartItems[:0]
	for _, item := range f.db.cartItems {
		if item.ID == itemID && item.CartID == cartID {
			continue
		}
		kept = append(kept, item)
	}
	f.db.cartItems = kept
	return nil
}

type fakeCartDiscountRepo struct{ db *memDB }

func (f *fakeCartDiscountRepo) ListByCart(ctx context.Context, cartID string) ([]models.CartDiscount, error) {
	var discounts []models.CartDiscount
	for _, d := range f.db.cartDiscounts {
		if d.CartID == cartID {
			discounts = append(discounts, d)
		}
	}
	return discounts, nil
}

func (f *fakeCartDiscountRepo) Create(ctx context.Context, discount *models.CartDiscount) error {
	if discount.ID == "" {
		discount.ID = newID()
	}
	f.db.cartDiscounts = append(f.db.cartDiscounts, *discount)
	return nil
}

func (f *fakeCartDiscountRepo) Delete(ctx context.Context, discountID, cartID string) error {
	kept := f.db.cartDiscounts[:0]
	for _, d := range f.db.cartDiscounts {
		if d.ID == discountID && d.CartID == cartID {
			continue
		}
		kept = append(kept, d)
	}
	f.db.cartDiscounts = kept
	return nil
}

type fakeOrderRepo struct{ db *memDB }

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	order, ok := f.db.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &order, nil
}

func (f *fakeOrderRepo) GetWithItems(ctx context.Context, id string) (*models.Order, error) {
	order, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, item := range f.db.orderItems {
		if item.OrderID == id {
			order.Items = append(order.Items, item)
		}
	}
	if store, ok := f.db.stores[order.StoreID]; ok {
		order.Store = store
	}
	return order, nil
}

func (f *fakeOrderRepo) LockByID(ctx context.Context, id string) (*models.Order, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeOrderRepo) CountByStore(ctx context.Context, storeID string) (int64, error) {
	var count int64
	for _, order := range f.db.orders {
		if order.StoreID == storeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = newID()
	}
	f.db.orders[order.ID] = *order
	return nil
}

func (f *fakeOrderRepo) Save(ctx context.Context, order *models.Order) error {
	if _, ok := f.db.orders[order.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *order
	stored.Items = nil
	f.db.orders[order.ID] = stored
	return nil
}

func (f *fakeOrderRepo) UpdateTotals(ctx context.Context, order *models.Order) error {
	stored, ok := f.db.orders[order.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.SubtotalAmount = order.SubtotalAmount
	stored.TaxAmount = order.TaxAmount
	stored.ShippingAmount = order.ShippingAmount
	stored.DiscountAmount = order.DiscountAmount
	stored.TotalAmount = order.TotalAmount
	f.db.orders[order.ID] = stored
	return nil
}

func (f *fakeOrderRepo) ListByStore(ctx context.Context, storeID string) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range f.db.orders {
		if order.StoreID == storeID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

type fakeOrderItemRepo struct{ db *memDB }

func (f *fakeOrderItemRepo) GetByIDAndOrder(ctx context.Context, itemID, orderID string) (*models.OrderItem, error) {
	for _, item := range f.db.orderItems {
		if item.ID == itemID && item.OrderID == orderID {
			found := item
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderItemRepo) ListByOrder(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	for _, item := range f.db.orderItems {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeOrderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = newID()
		}
		f.db.orderItems = append(f.db.orderItems, items[i])
	}
	return nil
}

func (f *fakeOrderItemRepo) Update(ctx context.Context, item *models.OrderItem) error {
	for i := range f.db.orderItems {
		if f.db.orderItems[i].ID == item.ID {
			f.db.orderItems[i] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeOrderItemRepo) DeleteByIDs(ctx context.Context, orderID string, itemIDs []string) error {
	drop := map[string]bool{}
	for _, id := range itemIDs {
		drop[id] = true
	}
	kept := f.db.orderItems[:0]
	for _, item := range f.db.orderItems {
		if item.OrderID == orderID && drop[item.ID] {
			continue
		}
		kept = append(kept, item)
	}
	f.db.orderItems = kept
	return nil
}
