// Package httperr maps the domain error taxonomy onto HTTP status codes.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/restopos/inventory-service/internal/model"
	"github.com/restopos/inventory-service/internal/order"
	"github.com/restopos/inventory-service/internal/unit"
)

func Status(err error) int {
	var notFound *model.ItemNotFoundError
	var stockErr *model.InsufficientStockError
	var volErr *model.InsufficientVolumeError
	var unitErr *unit.IncompatibleUnitsError
	var valErr *model.ValidationError
	var aborted *model.TransactionAbortedError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &valErr):
		return http.StatusBadRequest
	case errors.As(err, &unitErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &stockErr), errors.As(err, &volErr):
		return http.StatusConflict
	case errors.Is(err, order.ErrDuplicateOrder):
		return http.StatusConflict
	case errors.As(err, &aborted):
		// The wrapped cause decides; fall back to conflict since aborts
		// come from strict consumption failures.
		if cause := aborted.Unwrap(); cause != nil {
			if s := Status(cause); s != http.StatusInternalServerError {
				return s
			}
		}
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// JSON writes the error with its mapped status. Internal faults are not
// echoed to the client.
func JSON(c *gin.Context, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
