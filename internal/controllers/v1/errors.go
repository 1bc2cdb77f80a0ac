package v1

import (
	"errors"
	"net/http"

	"github.com/smartspend/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"an ID specified in the query string was not a valid number"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errUserIDParameter = errors.New("the userId parameter must be set")
	errInvalidID       = errors.New("an ID specified in the query string was not a valid number")
)

// Report errors
var (
	errGroupByInvalid = errors.New("the groupBy parameter must be 'category' or 'month'")
	errMonthsInvalid  = errors.New("the months parameter must be between 1 and 120")
)

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)
