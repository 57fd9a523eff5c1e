package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/kasumba/go-storefront/app/services"
	"github.com/kasumba/go-storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type CartHandler struct {
	render   *render.Render
	validate *validator.Validate
	cartSvc  *services.CartService
	orderSvc *services.OrderService
}

func NewCartHandler(
	render *render.Render,
	validate *validator.Validate,
	cartSvc *services.CartService,
	orderSvc *services.OrderService,
) *CartHandler {
	return &CartHandler{
		render:   render,
		validate: validate,
		cartSvc:  cartSvc,
		orderSvc: orderSvc,
	}
}

func (h *CartHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	var input services.CreateCartInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}

	cart, err := h.cartSvc.CreateCart(r.Context(), input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	if err := sessions.BindCartID(w, r, cart.ID); err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID := mux.Vars(r)["id"]
	cart, err := h.cartSvc.GetCart(r.Context(), cartID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := mux.Vars(r)["id"]

	var input services.AddCartItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}

	cart, err := h.cartSvc.AddItem(r.Context(), cartID, input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

type updateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var input updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}

	cart, err := h.cartSvc.UpdateItemQuantity(r.Context(), vars["id"], vars["itemId"], input.Quantity)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cart, err := h.cartSvc.RemoveItem(r.Context(), vars["id"], vars["itemId"])
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	cartID := mux.Vars(r)["id"]

	var input services.ApplyDiscountInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}

	cart, err := h.cartSvc.ApplyDiscount(r.Context(), cartID, input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

// Checkout converts the cart into a draft order.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	cartID := mux.Vars(r)["id"]
	order, err := h.orderSvc.ConvertCart(r.Context(), cartID)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, order)
}
