package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/kasumba/go-storefront/app/services"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	render     *render.Render
	validate   *validator.Validate
	variantSvc *services.VariantService
}

func NewProductHandler(
	render *render.Render,
	validate *validator.Validate,
	variantSvc *services.VariantService,
) *ProductHandler {
	return &ProductHandler{
		render:     render,
		validate:   validate,
		variantSvc: variantSvc,
	}
}

type previewCombinationsRequest struct {
	Options []services.OptionInput `json:"options" validate:"required,min=1,dive"`
}

// PreviewCombinations expands option declarations without persisting anything,
// so admin UIs can show the variant grid before saving.
func (h *ProductHandler) PreviewCombinations(w http.ResponseWriter, r *http.Request) {
	var input previewCombinationsRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}

	combinations := h.variantSvc.PreviewCombinations(input.Options)
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"combinations": combinations,
		"count":        len(combinations),
	})
}

type syncVariantsRequest struct {
	Options   []services.OptionInput `json:"options" validate:"omitempty,dive"`
	BasePrice string                 `json:"basePrice" validate:"required"`
}

// SyncVariants replaces the product's options and reconciles its variants,
// archiving and reviving as needed.
func (h *ProductHandler) SyncVariants(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	var input syncVariantsRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}
	if err := h.validate.Struct(&input); err != nil {
		writeValidationError(h.render, w, err)
		return
	}
	basePrice, err := decimal.NewFromString(input.BasePrice)
	if err != nil {
		writeValidationError(h.render, w, err)
		return
	}

	product, err := h.variantSvc.SyncVariants(r.Context(), productID, input.Options, basePrice)
	if err != nil {
		writeError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}
