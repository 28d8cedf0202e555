package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event types published by the analytics core. The notification dispatcher
// outside this repository subscribes to the deviation event.
const (
	YieldPredictionCreated Type = "yield.prediction.created"
	YieldDeviationDetected Type = "yield.deviation.detected"
	YieldActualRecorded    Type = "yield.actual.recorded"
	StorageAdvisoryIssued  Type = "market.storage_advisory.issued"
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// PredictionCreatedPayloadV1 is the typed payload for prediction events.
type PredictionCreatedPayloadV1 struct {
	PredictionID     string  `json:"prediction_id"`
	CropID           string  `json:"crop_id"`
	CropName         string  `json:"crop_name"`
	FarmerID         string  `json:"farmer_id"`
	ExpectedQuintals float64 `json:"expected_quintals"`
	Timestamp        int64   `json:"timestamp"`
}

// DeviationDetectedPayloadV1 is the typed payload for significant-deviation
// events. DeviationPercent is always positive; the note carries direction.
type DeviationDetectedPayloadV1 struct {
	PredictionID     string  `json:"prediction_id"`
	CropID           string  `json:"crop_id"`
	CropName         string  `json:"crop_name"`
	FarmerID         string  `json:"farmer_id"`
	DeviationPercent float64 `json:"deviation_percent"`
	Note             string  `json:"note"`
	Timestamp        int64   `json:"timestamp"`
}

// ActualRecordedPayloadV1 is the typed payload for harvest settlement events.
type ActualRecordedPayloadV1 struct {
	PredictionID    string  `json:"prediction_id"`
	CropID          string  `json:"crop_id"`
	CropName        string  `json:"crop_name"`
	VariancePercent float64 `json:"variance_percent"`
	Category        string  `json:"variance_category"`
	Timestamp       int64   `json:"timestamp"`
}

// NewPredictionCreatedEvent builds a prediction-created event.
func NewPredictionCreatedEvent(predictionID, cropID, cropName, farmerID string, expected float64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    YieldPredictionCreated,
		Payload: PredictionCreatedPayloadV1{
			PredictionID:     predictionID,
			CropID:           cropID,
			CropName:         cropName,
			FarmerID:         farmerID,
			ExpectedQuintals: expected,
			Timestamp:        time.Now().Unix(),
		},
	}
}

// NewDeviationDetectedEvent builds a significant-deviation event.
func NewDeviationDetectedEvent(predictionID, cropID, cropName, farmerID string, deviationPercent float64, note string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    YieldDeviationDetected,
		Payload: DeviationDetectedPayloadV1{
			PredictionID:     predictionID,
			CropID:           cropID,
			CropName:         cropName,
			FarmerID:         farmerID,
			DeviationPercent: deviationPercent,
			Note:             note,
			Timestamp:        time.Now().Unix(),
		},
	}
}

// NewActualRecordedEvent builds a harvest settlement event.
func NewActualRecordedEvent(predictionID, cropID, cropName string, variancePercent float64, category string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    YieldActualRecorded,
		Payload: ActualRecordedPayloadV1{
			PredictionID:    predictionID,
			CropID:          cropID,
			CropName:        cropName,
			VariancePercent: variancePercent,
			Category:        category,
			Timestamp:       time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// a failing handler does not stop the others.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
