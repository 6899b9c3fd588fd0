package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/gateway"
	applog "fintrack/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, errorResponse{Error: message})
}

// validationErrs are the domain errors a client can fix by changing its input.
var validationErrs = []error{
	core.ErrInvalidAmount,
	core.ErrEmptyName,
	core.ErrInvalidDate,
	core.ErrInvalidCategory,
	core.ErrInvalidPaymentMethod,
	core.ErrInvalidAccountType,
	core.ErrInvalidDebtType,
	core.ErrInvalidClockTime,
	core.ErrInvalidTimeRange,
	core.ErrClockHoursMismatch,
	core.ErrPaidDateMismatch,
	core.ErrNegativeHours,
}

func isValidationError(err error) bool {
	for _, v := range validationErrs {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// respondServiceError maps domain and gateway errors to HTTP status codes.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isValidationError(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, gateway.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, gateway.ErrSessionExpired), errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, gateway.ErrUserExists):
		respondError(w, http.StatusConflict, "user already exists")
	default:
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
