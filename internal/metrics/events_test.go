package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosight/agrosight/internal/event"
)

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	ctx := context.Background()

	predictionsBefore := testutil.ToFloat64(PredictionsGenerated.WithLabelValues("Wheat"))
	deviationsBefore := testutil.ToFloat64(DeviationsDetected.WithLabelValues("Wheat"))
	actualsBefore := testutil.ToFloat64(ActualsRecorded.WithLabelValues("Wheat", "positive"))

	require.NoError(t, bus.Publish(ctx, event.NewPredictionCreatedEvent("pred-1", "crop-1", "Wheat", "farmer-1", 20)))
	require.NoError(t, bus.Publish(ctx, event.NewDeviationDetectedEvent("pred-1", "crop-1", "Wheat", "farmer-1", 12.5, "note")))
	require.NoError(t, bus.Publish(ctx, event.NewActualRecordedEvent("pred-1", "crop-1", "Wheat", 10, "positive")))

	assert.Equal(t, predictionsBefore+1, testutil.ToFloat64(PredictionsGenerated.WithLabelValues("Wheat")))
	assert.Equal(t, deviationsBefore+1, testutil.ToFloat64(DeviationsDetected.WithLabelValues("Wheat")))
	assert.Equal(t, actualsBefore+1, testutil.ToFloat64(ActualsRecorded.WithLabelValues("Wheat", "positive")))
}
