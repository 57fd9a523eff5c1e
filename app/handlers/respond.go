package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/kasumba/go-storefront/app/services"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps the service error taxonomy onto HTTP statuses: missing
// entities become 404, bad references/transitions/input become 400, anything
// else is a 500 with the detail kept out of the response body.
func writeError(rnd *render.Render, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		_ = rnd.JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrInvalidReference),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidInput):
		_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Printf("handler: internal error: %v", err)
		_ = rnd.JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func writeValidationError(rnd *render.Render, w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0]
		_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid field " + field.Field() + ": failed " + field.Tag() + " validation",
		})
		return
	}
	_ = rnd.JSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
}
