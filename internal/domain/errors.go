package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Configuration errors
	ErrMsgCommodityNotConfigured = "commodity not configured"

	// Yield errors
	ErrMsgNoPriorPrediction     = "no prior prediction for crop"
	ErrMsgActualAlreadyRecorded = "actual yield already recorded"
	ErrMsgPredictionNotFound    = "prediction not found"

	// Price errors
	ErrMsgPriceUnavailable = "price data unavailable"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrCommodityNotConfigured is returned when a commodity has no entry in
	// the base-yield configuration table. Fatal for the request.
	ErrCommodityNotConfigured = errors.New(ErrMsgCommodityNotConfigured)

	// ErrNoPriorPrediction is returned when a harvest outcome is recorded for
	// a crop with no prediction baseline. Recoverable: request an estimate first.
	ErrNoPriorPrediction = errors.New(ErrMsgNoPriorPrediction)

	// ErrActualAlreadyRecorded is returned when a harvest outcome is recorded
	// twice against the same prediction. Re-recording is rejected, not merged.
	ErrActualAlreadyRecorded = errors.New(ErrMsgActualAlreadyRecorded)

	ErrPredictionNotFound = errors.New(ErrMsgPredictionNotFound)

	// ErrPriceUnavailable signals that neither the live price feed nor the
	// cache could supply a quote. Callers degrade rather than fail on it.
	ErrPriceUnavailable = errors.New(ErrMsgPriceUnavailable)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
