package yield

import (
	"context"
	"fmt"

	"github.com/agrosight/agrosight/internal/domain"
	"github.com/agrosight/agrosight/internal/event"
	"github.com/agrosight/agrosight/internal/logger"
)

// RecordActual settles the latest prediction of a crop with the harvest
// outcome. A crop with no prediction cannot be settled, and a prediction that
// already carries an actual yield is never overwritten.
func (s *service) RecordActual(ctx context.Context, rec domain.ActualYieldRecord) (*domain.VarianceResult, error) {
	log := logger.FromContext(ctx)
	log.Info("RecordActual called", "cropID", rec.CropID, "actual", rec.ActualYieldQuintals)

	prediction, err := s.repo.FindLatestByCropID(ctx, rec.CropID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest prediction: %w", err)
	}
	if prediction == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoPriorPrediction, rec.CropID)
	}
	if prediction.HasActual() {
		return nil, fmt.Errorf("%w: prediction %s", domain.ErrActualAlreadyRecorded, prediction.ID)
	}

	varianceQuintals, variancePercent, note := computeVariance(rec.ActualYieldQuintals, prediction.Total.Expected)
	category := classifyVariance(varianceQuintals)

	if err := s.repo.AttachActual(ctx, prediction.ID, rec, varianceQuintals, variancePercent); err != nil {
		return nil, fmt.Errorf("failed to record actual yield: %w", err)
	}

	avgVariance, err := s.repo.AverageVarianceForCrop(ctx, rec.CropID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute average variance: %w", err)
	}

	s.publish(ctx, event.NewActualRecordedEvent(prediction.ID, rec.CropID, prediction.CropName, variancePercent, string(category)))

	return &domain.VarianceResult{
		PredictionID:       prediction.ID,
		CropID:             rec.CropID,
		FarmerID:           prediction.FarmerID,
		PredictedExpected:  prediction.Total.Expected,
		ActualYield:        rec.ActualYieldQuintals,
		VarianceQuintals:   varianceQuintals,
		VariancePercent:    variancePercent,
		Category:           category,
		Note:               note,
		AvgVarianceForCrop: avgVariance,
		ModelVersion:       prediction.ModelVersion,
	}, nil
}

// computeVariance returns actual minus expected in quintals and as a percent
// of expected. A zero expectation has no meaningful percentage; the note
// flags it instead of dividing.
func computeVariance(actual, expected float64) (quintals, percent float64, note string) {
	quintals = actual - expected
	if expected == 0 {
		return quintals, 0, "predicted expected yield was zero; variance percent not defined"
	}
	percent = quintals / expected * 100
	return quintals, percent, ""
}

func classifyVariance(varianceQuintals float64) domain.VarianceCategory {
	switch {
	case varianceQuintals > 0:
		return domain.VariancePositive
	case varianceQuintals < 0:
		return domain.VarianceNegative
	default:
		return domain.VarianceNeutral
	}
}
