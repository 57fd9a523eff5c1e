package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/kasumba/go-storefront/app/models"
	"github.com/kasumba/go-storefront/app/services"
	"github.com/kasumba/go-storefront/app/utils/format"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render   *render.Render
	validate *validator.Validate
	orderSvc *services.OrderService
}

func NewOrderHandler(
	render *render.Render,
	validate *validator.Validate,
	orderSvc *services.OrderService,
) *OrderHandler {
	return &OrderHandler{
		render:   render,
		validate: validate,
		orderSvc: orderSvc,
	}
}

type orderResponse struct {
	*models.Order
	DisplayOrderNumber string `json:"displayOrderNumber"`
	FormattedTotal     string `json:"formattedTotal"`
}

func (h *OrderHandler) respondOrder(w http.ResponseWriter, r *http.Request, order *models.Order, status int) {
	display, err := h.orderSvc.DisplayOrderNumber(r.Context(), order)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, status, orderResponse{
		Order:              order,
		DisplayOrderNumber: display,
		FormattedTotal:     format.Money(order.TotalAmount, order.CurrencySymbol),
	})
}

func (h *OrderHandler) CreateDraftOrder(w http.ResponseWriter, r *http.Request) {
	storeID := mux.Vars(r)["storeId"]

	var input services.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}

	order, err := h.orderSvc.CreateDraftOrder(r.Context(), storeID, input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.respondOrder(w, r, order, http.StatusCreated)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderSvc.GetOrder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.respondOrder(w, r, order, http.StatusOK)
}

func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]

	var input services.UpdateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}

	order, err := h.orderSvc.UpdateOrder(r.Context(), orderID, input)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	h.respondOrder(w, r, order, http.StatusOK)
}
