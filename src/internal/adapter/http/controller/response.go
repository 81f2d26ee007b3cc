package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/api-sage/fx-transfer/src/internal/commons"
	"github.com/api-sage/fx-transfer/src/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// errorStatus maps a failed service call to an HTTP status.
func errorStatus(validationFailed bool, err error) int {
	switch {
	case validationFailed, errors.Is(err, domain.ErrInvalidPrecision):
		return http.StatusBadRequest
	case errors.Is(err, commons.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownCurrency), errors.Is(err, domain.ErrDivisionByZero):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commons.ErrStaleRecord), errors.Is(err, commons.ErrDuplicateRecord):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func methodNotAllowed[T any](w http.ResponseWriter, r *http.Request, start time.Time) {
	response := commons.ErrorResponse[T]("method not allowed")
	writeJSON(w, http.StatusMethodNotAllowed, response)
	logResponse(r, http.StatusMethodNotAllowed, response, start)
}
