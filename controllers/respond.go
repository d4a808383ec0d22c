package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-commerce-api/repository"
	"go-commerce-api/services"
)

var errInvalidProductID = errors.New("invalid product id")

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// httpStatus maps service and store errors onto the response taxonomy:
// business-rule violations are 400, missing documents 404, gateway
// failures 502, everything unexpected 500.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrOutOfStock),
		errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrIntentMismatch),
		errors.Is(err, errInvalidProductID),
		errors.Is(err, services.ErrPaymentUnresolved):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrGateway):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorBody hides internal details for unexpected failures; known
// business errors keep their message.
func errorBody(err error, status int) map[string]string {
	if status == http.StatusInternalServerError {
		return map[string]string{"error": "Internal server error"}
	}
	return map[string]string{"error": err.Error()}
}
