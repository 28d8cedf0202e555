package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	PredictionsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePredictionsGenerated,
			Help: HelpTextPredictionsGenerated,
		},
		[]string{LabelCommodity},
	)

	ActualsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActualsRecorded,
			Help: HelpTextActualsRecorded,
		},
		[]string{LabelCommodity, LabelVarianceCategory},
	)

	DeviationsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameDeviationsDetected,
			Help: HelpTextDeviationsDetected,
		},
		[]string{LabelCommodity},
	)

	PriceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePriceFetches,
			Help: HelpTextPriceFetches,
		},
		[]string{LabelCommodity, LabelOutcome},
	)

	PriceCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePriceCacheHits,
			Help: HelpTextPriceCacheHits,
		},
	)

	StorageAdvisories = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStorageAdvisories,
			Help: HelpTextStorageAdvisories,
		},
		[]string{LabelRecommendation},
	)
)
