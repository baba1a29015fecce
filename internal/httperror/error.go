// Package httperror provides the error representation used in API responses.
package httperror

import (
	"errors"
	"net/http"

	"github.com/centsible/backend/internal/models"
	"github.com/shopspring/decimal"
)

type Error struct {
	Message string `json:"error" example:"there is no debt matching your query"`

	// Set when a draw failed because the reserve does not hold enough
	Available *decimal.Decimal `json:"available,omitempty" example:"100"`
	Requested *decimal.Decimal `json:"requested,omitempty" example:"150"`
}

func New(e error) Error {
	httpError := Error{
		Message: e.Error(),
	}

	var insufficient models.InsufficientBalanceError
	if errors.As(e, &insufficient) {
		httpError.Available = &insufficient.Available
		httpError.Requested = &insufficient.Requested
	}

	return httpError
}

// Status returns the appropriate HTTP status for an error from the models
// or request parsing layers.
func Status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}
