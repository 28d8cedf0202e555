package postgres

// Commodity keys are normalised to upper case before storage so the unique
// constraint and lookups agree regardless of caller casing.

// Error message fragments
const (
	ErrMsgFailedToMarshalFactors = "failed to marshal factors"
	ErrMsgFailedToScanPrediction = "failed to scan prediction"
)
