package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Yield operation error messages
	ErrMsgEstimateFailed     = "Failed to estimate yield"
	ErrMsgRecordActualFailed = "Failed to record actual yield"
	ErrMsgGetHistoryFailed   = "Failed to retrieve prediction history"
	ErrMsgMarkNotifiedFailed = "Failed to mark prediction notified"

	// Market operation error messages
	ErrMsgGetTrendFailed    = "Failed to analyze price trend"
	ErrMsgGetMspFailed      = "Failed to compare with MSP"
	ErrMsgGetAdvisoryFailed = "Failed to compute storage advisory"
)
