package yield

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/agrosight/agrosight/internal/domain"
	"github.com/agrosight/agrosight/internal/event"
	"github.com/agrosight/agrosight/internal/logger"
	"github.com/agrosight/agrosight/internal/repository"
)

// PriceSource supplies the current market quote used by financial projections.
// The market price client satisfies this; tests substitute a mock.
type PriceSource interface {
	CurrentPrice(ctx context.Context, commodity string) (*domain.CurrentPrice, error)
}

// Service defines the yield estimation business logic
type Service interface {
	// Estimate produces a new yield prediction for a crop and appends it to
	// the crop's prediction history.
	Estimate(ctx context.Context, req domain.YieldEstimateRequest) (*domain.YieldEstimateResponse, error)

	// RecordActual settles the latest prediction of a crop with the harvest
	// outcome and returns the variance analysis.
	RecordActual(ctx context.Context, rec domain.ActualYieldRecord) (*domain.VarianceResult, error)

	// GetHistory returns the prediction history for a crop, most recent first.
	GetHistory(ctx context.Context, cropID string) ([]domain.YieldPrediction, error)

	// PredictionsNeedingNotification lists predictions with a significant
	// deviation whose farmer has not been notified yet.
	PredictionsNeedingNotification(ctx context.Context) ([]domain.YieldPrediction, error)

	// MarkNotified records that the deviation notification went out.
	MarkNotified(ctx context.Context, predictionID string) error
}

type service struct {
	repo         repository.Yield
	table        *CommodityTable
	prices       PriceSource
	bus          event.Bus
	priceTimeout time.Duration
}

// NewService creates a new yield service. prices may be nil, in which case
// financial projections are skipped.
func NewService(
	repo repository.Yield,
	table *CommodityTable,
	prices PriceSource,
	bus event.Bus,
	priceTimeout time.Duration,
) Service {
	return &service{
		repo:         repo,
		table:        table,
		prices:       prices,
		bus:          bus,
		priceTimeout: priceTimeout,
	}
}

// Estimate produces a new yield prediction for a crop
func (s *service) Estimate(ctx context.Context, req domain.YieldEstimateRequest) (*domain.YieldEstimateResponse, error) {
	log := logger.FromContext(ctx)
	log.Info("Estimate called", "cropID", req.CropID, "cropName", req.CropName, "farmerID", req.FarmerID)

	// 1. Base yield for the commodity
	cfg, err := s.table.Lookup(req.CropName)
	if err != nil {
		return nil, err
	}

	// 2. Factor adjustments on the base yield
	factors := EvaluateFactors(req)
	expectedPerAcre := cfg.BaseYieldPerAcre * factors.Multiplier()

	// 3. Variance band, narrowed by the farmer's harvest history
	avgActual, historyCount, err := s.repo.AverageActualYield(ctx, req.FarmerID, req.CropName)
	if err != nil {
		return nil, fmt.Errorf("failed to load harvest history: %w", err)
	}
	variancePercent := narrowVariance(cfg.BaseVariance(), historyCount)

	// 4. Range around the expected value
	perAcre := domain.YieldRange{
		Min:      expectedPerAcre * (1 - variancePercent/100),
		Expected: expectedPerAcre,
		Max:      expectedPerAcre * (1 + variancePercent/100),
	}

	// 5. Confidence derived from the band width
	confidence := clamp(100-variancePercent, MinConfidencePercent, MaxConfidencePercent)

	// 6. Scale to the full plot
	area := req.Area()
	total := perAcre.Scale(area)

	// 7. Compare against the previous prediction for the crop
	prev, err := s.repo.FindLatestByCropID(ctx, req.CropID)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous prediction: %w", err)
	}

	var (
		prevID           *string
		deviationPercent float64
		deviationNote    string
		significant      bool
	)
	if prev != nil {
		prevID = &prev.ID
		deviationPercent, significant, deviationNote = compareWithPrevious(total.Expected, prev.Total.Expected)
	}

	// 8. Persist the new prediction
	now := time.Now()
	prediction := &domain.YieldPrediction{
		ID:                   uuid.NewString(),
		CropID:               req.CropID,
		FarmerID:             req.FarmerID,
		CropName:             req.CropName,
		PredictionDate:       now,
		AreaAcres:            area,
		PerAcre:              perAcre,
		Total:                total,
		ConfidencePercent:    confidence,
		FactorsConsidered:    factors.Factors,
		ModelVersion:         ModelVersion,
		PreviousPredictionID: prevID,
		SignificantDeviation: significant,
		DeviationNote:        deviationNote,
	}
	predictionID, err := s.repo.Save(ctx, prediction)
	if err != nil {
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}
	prediction.ID = predictionID

	s.publish(ctx, event.NewPredictionCreatedEvent(predictionID, req.CropID, req.CropName, req.FarmerID, total.Expected))
	if significant {
		log.Info("Significant deviation detected", "predictionID", predictionID, "deviationPercent", deviationPercent)
		s.publish(ctx, event.NewDeviationDetectedEvent(predictionID, req.CropID, req.CropName, req.FarmerID, math.Abs(deviationPercent), deviationNote))
	}

	resp := &domain.YieldEstimateResponse{
		PredictionID:             predictionID,
		CropID:                   req.CropID,
		FarmerID:                 req.FarmerID,
		CropName:                 req.CropName,
		CropVariety:              req.CropVariety,
		AreaAcres:                area,
		PerAcre:                  perAcre,
		Total:                    total,
		ConfidencePercent:        confidence,
		ModelVersion:             ModelVersion,
		GrowthStage:              req.GrowthStage,
		FactorsConsidered:        factors.Factors,
		FactorAdjustments:        factors.AdjustmentNotes(),
		SignificantDeviation:     significant,
		DeviationFromPrevPercent: deviationPercent,
		DeviationNote:            deviationNote,
		GeneratedAt:              now,
	}

	if req.IncludeHistoricalData && historyCount > 0 {
		attachHistoricalComparison(resp, avgActual, historyCount)
	}

	// 9. Financial projection is best-effort: price feed failures degrade to
	// a response without it.
	if req.IncludeFinancialProjection {
		resp.FinancialProjection = s.buildProjection(ctx, req.CropName, total, req.InputCostPerQuintal)
	}

	return resp, nil
}

// GetHistory returns the prediction history for a crop
func (s *service) GetHistory(ctx context.Context, cropID string) ([]domain.YieldPrediction, error) {
	history, err := s.repo.FindByCropID(ctx, cropID)
	if err != nil {
		return nil, fmt.Errorf("failed to load prediction history: %w", err)
	}
	return history, nil
}

// PredictionsNeedingNotification lists unnotified significant deviations
func (s *service) PredictionsNeedingNotification(ctx context.Context) ([]domain.YieldPrediction, error) {
	pending, err := s.repo.FindNeedingNotification(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending notifications: %w", err)
	}
	return pending, nil
}

// MarkNotified records that the deviation notification went out
func (s *service) MarkNotified(ctx context.Context, predictionID string) error {
	if err := s.repo.MarkNotified(ctx, predictionID); err != nil {
		return fmt.Errorf("failed to mark prediction notified: %w", err)
	}
	return nil
}

// publish sends an event without letting bus failures affect the request.
func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "type", evt.Type, "error", err)
	}
}

// narrowVariance shrinks the variance band as settled harvest records
// accumulate. Below the history threshold the base band is kept unchanged.
func narrowVariance(base float64, historyCount int) float64 {
	if historyCount < MinHistoryForNarrowing {
		return base
	}
	narrowed := base / (1 + math.Log(1+float64(historyCount))/VarianceNarrowingDivisor)
	return math.Max(narrowed, MinVariancePercent)
}

// compareWithPrevious measures the relative change of the new expected total
// against the previous prediction. A previous expectation of zero cannot be
// compared and is never significant.
func compareWithPrevious(newExpected, prevExpected float64) (percent float64, significant bool, note string) {
	if prevExpected == 0 {
		return 0, false, ""
	}
	percent = (newExpected - prevExpected) / prevExpected * 100
	if math.Abs(percent) <= SignificantDeviationPercent {
		return percent, false, ""
	}
	direction := "increased"
	if percent < 0 {
		direction = "decreased"
	}
	note = fmt.Sprintf("Expected yield %s by %.1f%% since the previous estimate", direction, math.Abs(percent))
	return percent, true, note
}

func attachHistoricalComparison(resp *domain.YieldEstimateResponse, avgActual float64, historyCount int) {
	resp.HistoricalAvgYieldPerAcre = &avgActual
	if avgActual > 0 {
		variance := (resp.PerAcre.Expected - avgActual) / avgActual * 100
		resp.VarianceFromHistoricalPct = &variance
		resp.HistoricalComparisonNote = fmt.Sprintf(
			"Current estimate is %.1f%% %s your average of %.1f quintals/acre over %d harvests",
			math.Abs(variance), aboveOrBelow(variance), avgActual, historyCount)
	}
}

func aboveOrBelow(v float64) string {
	if v < 0 {
		return "below"
	}
	return "above"
}

func clamp(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
