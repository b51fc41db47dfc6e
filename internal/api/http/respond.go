package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"retail-pos-backend/internal/logger"
	"retail-pos-backend/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondServiceError translates service-layer sentinels into HTTP statuses.
// Anything unrecognized is a 500 with a generic body; the real error only
// goes to the log.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrCouponInvalid),
		errors.Is(err, service.ErrDuplicateItem),
		errors.Is(err, service.ErrDuplicateCustomer),
		errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrDuplicateCoupon):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrCouponNotFound),
		errors.Is(err, service.ErrCustomerNotFound),
		errors.Is(err, service.ErrSaleNotFound),
		errors.Is(err, service.ErrRentalNotFound),
		errors.Is(err, service.ErrEmployeeNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmployeeInactive):
		// The credential itself was fine; the account is barred.
		respondError(w, http.StatusForbidden, err.Error())
	default:
		logger.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
