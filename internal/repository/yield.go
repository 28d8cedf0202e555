package repository

import (
	"context"

	"github.com/agrosight/agrosight/internal/domain"
)

// Yield handles yield prediction persistence. Predictions are append-only:
// Save never updates an existing row, and history is keyed by crop ordered by
// prediction date. Absence of rows is a normal empty result, not an error,
// except where a method documents otherwise.
type Yield interface {
	// Save appends a new prediction and returns its id.
	Save(ctx context.Context, prediction *domain.YieldPrediction) (string, error)

	// FindLatestByCropID returns the most recent prediction for a crop, or
	// nil when the crop has no prediction history.
	FindLatestByCropID(ctx context.Context, cropID string) (*domain.YieldPrediction, error)

	// FindByCropID returns the full prediction history for a crop, most
	// recent first.
	FindByCropID(ctx context.Context, cropID string) ([]domain.YieldPrediction, error)

	// AverageActualYield returns the mean recorded actual yield per acre for
	// a farmer+crop pair and the number of settled records behind it.
	// Returns (0, 0, nil) when no harvests are recorded.
	AverageActualYield(ctx context.Context, farmerID, cropName string) (avg float64, count int, err error)

	// AttachActual records the harvest outcome and variance figures on an
	// existing prediction. Fails with domain.ErrPredictionNotFound when the
	// prediction id is unknown.
	AttachActual(ctx context.Context, predictionID string, actual domain.ActualYieldRecord, varianceQuintals, variancePercent float64) error

	// AverageVarianceForCrop returns the running average variance across all
	// settled predictions for a crop. Returns 0 when none are settled.
	AverageVarianceForCrop(ctx context.Context, cropID string) (float64, error)

	// FindNeedingNotification returns predictions flagged with a significant
	// deviation whose notification has not been sent yet.
	FindNeedingNotification(ctx context.Context) ([]domain.YieldPrediction, error)

	// MarkNotified sets the notification-sent flag and timestamp.
	MarkNotified(ctx context.Context, predictionID string) error
}
