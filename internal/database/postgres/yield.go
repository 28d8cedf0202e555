package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrosight/agrosight/internal/domain"
	"github.com/agrosight/agrosight/internal/repository"
)

type yieldRepository struct {
	db *pgxpool.Pool
}

// NewYieldRepository creates a new PostgreSQL yield prediction repository
func NewYieldRepository(db *pgxpool.Pool) repository.Yield {
	return &yieldRepository{db: db}
}

const predictionColumns = `
	prediction_id, crop_id, farmer_id, crop_name, prediction_date, area_acres,
	per_acre_min, per_acre_expected, per_acre_max,
	total_min, total_expected, total_max,
	confidence_percent, factors_considered, model_version, previous_prediction_id,
	significant_deviation, COALESCE(deviation_note, ''),
	actual_yield_quintals, variance_quintals, variance_percent,
	notification_sent, notification_sent_at`

// Save appends a new prediction and returns its id
func (r *yieldRepository) Save(ctx context.Context, p *domain.YieldPrediction) (string, error) {
	query := `
		INSERT INTO yield_predictions (
			crop_id, farmer_id, crop_name, prediction_date, area_acres,
			per_acre_min, per_acre_expected, per_acre_max,
			total_min, total_expected, total_max,
			confidence_percent, factors_considered, model_version,
			previous_prediction_id, significant_deviation, deviation_note
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NULLIF($17, ''))
		RETURNING prediction_id
	`

	factorsJSON, err := json.Marshal(p.FactorsConsidered)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToMarshalFactors, err)
	}

	var id string
	err = r.db.QueryRow(ctx, query,
		p.CropID, p.FarmerID, p.CropName, p.PredictionDate, p.AreaAcres,
		p.PerAcre.Min, p.PerAcre.Expected, p.PerAcre.Max,
		p.Total.Min, p.Total.Expected, p.Total.Max,
		p.ConfidencePercent, factorsJSON, p.ModelVersion,
		p.PreviousPredictionID, p.SignificantDeviation, p.DeviationNote,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert prediction: %w", err)
	}
	return id, nil
}

// FindLatestByCropID returns the most recent prediction for a crop, or nil
func (r *yieldRepository) FindLatestByCropID(ctx context.Context, cropID string) (*domain.YieldPrediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM yield_predictions
		WHERE crop_id = $1
		ORDER BY prediction_date DESC
		LIMIT 1
	`

	row := r.db.QueryRow(ctx, query, cropID)
	p, err := scanPrediction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// FindByCropID returns the prediction history for a crop, most recent first
func (r *yieldRepository) FindByCropID(ctx context.Context, cropID string) ([]domain.YieldPrediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM yield_predictions
		WHERE crop_id = $1
		ORDER BY prediction_date DESC
	`

	rows, err := r.db.Query(ctx, query, cropID)
	if err != nil {
		return nil, fmt.Errorf("failed to query prediction history: %w", err)
	}
	defer rows.Close()

	var predictions []domain.YieldPrediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, *p)
	}
	return predictions, rows.Err()
}

// AverageActualYield returns the mean recorded actual yield per acre for a
// farmer+crop pair and the number of settled records behind it
func (r *yieldRepository) AverageActualYield(ctx context.Context, farmerID, cropName string) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(actual_yield_quintals / NULLIF(area_acres, 0)), 0), COUNT(*)
		FROM yield_predictions
		WHERE farmer_id = $1 AND crop_name = $2 AND actual_yield_quintals IS NOT NULL
	`

	var avg float64
	var count int
	if err := r.db.QueryRow(ctx, query, farmerID, cropName).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to query average actual yield: %w", err)
	}
	return avg, count, nil
}

// AttachActual records the harvest outcome on an existing prediction
func (r *yieldRepository) AttachActual(ctx context.Context, predictionID string, actual domain.ActualYieldRecord, varianceQuintals, variancePercent float64) error {
	query := `
		UPDATE yield_predictions
		SET actual_yield_quintals = $2,
		    variance_quintals = $3,
		    variance_percent = $4,
		    harvest_date = $5,
		    quality_grade = NULLIF($6, ''),
		    selling_price_per_quintal = $7,
		    mandi_name = NULLIF($8, '')
		WHERE prediction_id = $1
	`

	tag, err := r.db.Exec(ctx, query, predictionID,
		actual.ActualYieldQuintals, varianceQuintals, variancePercent,
		actual.HarvestDate, actual.QualityGrade, actual.SellingPricePerQtl, actual.MandiName)
	if err != nil {
		return fmt.Errorf("failed to attach actual yield: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPredictionNotFound, predictionID)
	}
	return nil
}

// AverageVarianceForCrop returns the running average variance across settled
// predictions for a crop
func (r *yieldRepository) AverageVarianceForCrop(ctx context.Context, cropID string) (float64, error) {
	query := `
		SELECT COALESCE(AVG(variance_quintals), 0)
		FROM yield_predictions
		WHERE crop_id = $1 AND variance_quintals IS NOT NULL
	`

	var avg float64
	if err := r.db.QueryRow(ctx, query, cropID).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to query average variance: %w", err)
	}
	return avg, nil
}

// FindNeedingNotification lists unnotified significant deviations
func (r *yieldRepository) FindNeedingNotification(ctx context.Context) ([]domain.YieldPrediction, error) {
	query := `
		SELECT ` + predictionColumns + `
		FROM yield_predictions
		WHERE significant_deviation AND NOT notification_sent
		ORDER BY prediction_date
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending notifications: %w", err)
	}
	defer rows.Close()

	var predictions []domain.YieldPrediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, *p)
	}
	return predictions, rows.Err()
}

// MarkNotified sets the notification-sent flag and timestamp
func (r *yieldRepository) MarkNotified(ctx context.Context, predictionID string) error {
	query := `
		UPDATE yield_predictions
		SET notification_sent = TRUE, notification_sent_at = NOW()
		WHERE prediction_id = $1
	`

	tag, err := r.db.Exec(ctx, query, predictionID)
	if err != nil {
		return fmt.Errorf("failed to mark prediction notified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPredictionNotFound, predictionID)
	}
	return nil
}

func scanPrediction(row pgx.Row) (*domain.YieldPrediction, error) {
	var p domain.YieldPrediction
	var factorsJSON []byte

	err := row.Scan(
		&p.ID, &p.CropID, &p.FarmerID, &p.CropName, &p.PredictionDate, &p.AreaAcres,
		&p.PerAcre.Min, &p.PerAcre.Expected, &p.PerAcre.Max,
		&p.Total.Min, &p.Total.Expected, &p.Total.Max,
		&p.ConfidencePercent, &factorsJSON, &p.ModelVersion, &p.PreviousPredictionID,
		&p.SignificantDeviation, &p.DeviationNote,
		&p.ActualYieldQuintals, &p.VarianceQuintals, &p.VariancePercent,
		&p.NotificationSent, &p.NotificationSentAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanPrediction, err)
	}

	if len(factorsJSON) > 0 {
		if err := json.Unmarshal(factorsJSON, &p.FactorsConsidered); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanPrediction, err)
		}
	}
	return &p, nil
}
