package metrics

import (
	"context"

	"github.com/agrosight/agrosight/internal/event"
	"github.com/agrosight/agrosight/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.YieldPredictionCreated,
		event.YieldDeviationDetected,
		event.YieldActualRecorded,
		event.StorageAdvisoryIssued,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.PredictionCreatedPayloadV1:
		PredictionsGenerated.WithLabelValues(payload.CropName).Inc()
	case event.ActualRecordedPayloadV1:
		ActualsRecorded.WithLabelValues(payload.CropName, payload.Category).Inc()
	case event.DeviationDetectedPayloadV1:
		DeviationsDetected.WithLabelValues(payload.CropName).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
