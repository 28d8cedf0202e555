package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNamePredictionsGenerated = "yield_predictions_generated_total"
	MetricNameActualsRecorded      = "yield_actuals_recorded_total"
	MetricNameDeviationsDetected   = "yield_deviations_detected_total"
	MetricNamePriceFetches         = "price_fetches_total"
	MetricNamePriceCacheHits       = "price_cache_hits_total"
	MetricNameStorageAdvisories    = "storage_advisories_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextPredictionsGenerated = "Total number of yield predictions generated"
	HelpTextActualsRecorded      = "Total number of actual harvest yields recorded"
	HelpTextDeviationsDetected   = "Total number of significant yield deviations detected"
	HelpTextPriceFetches         = "Total number of mandi price fetch attempts"
	HelpTextPriceCacheHits       = "Total number of price lookups served from cache"
	HelpTextStorageAdvisories    = "Total number of storage advisories issued"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod           = "method"
	LabelPath             = "path"
	LabelStatus           = "status"
	LabelType             = "type"
	LabelCommodity        = "commodity"
	LabelVarianceCategory = "variance_category"
	LabelOutcome          = "outcome"
	LabelRecommendation   = "recommendation"
)

// Outcome label values for price fetches
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgMetricsRecorded = "Metrics recorded for event"
)
