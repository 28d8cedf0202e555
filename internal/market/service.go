package market

import (
	"context"
	"time"

	"github.com/agrosight/agrosight/internal/domain"
	"github.com/agrosight/agrosight/internal/event"
	"github.com/agrosight/agrosight/internal/logger"
	"github.com/agrosight/agrosight/internal/metrics"
	"github.com/agrosight/agrosight/internal/repository"
)

// PriceFetcher is the live mandi price feed. The agmarknet client satisfies
// this; tests substitute a mock.
type PriceFetcher interface {
	HistoricalPrices(ctx context.Context, commodity string, days int) ([]domain.PricePoint, error)
}

// Service defines the market analytics business logic
type Service interface {
	// GetPriceTrend assembles the full price report for a commodity: daily
	// series, trend summary, MSP position and storage advisory. days <= 0
	// selects the configured default window.
	GetPriceTrend(ctx context.Context, commodity string, days int) (*domain.PriceTrendReport, error)

	// CompareMsp positions the commodity's current market price against its
	// minimum support price.
	CompareMsp(ctx context.Context, commodity string) (*domain.MspComparison, error)

	// GetStorageAdvisory recommends holding or selling based on the recent
	// price window.
	GetStorageAdvisory(ctx context.Context, commodity string) (*domain.StorageAdvisory, error)
}

type service struct {
	fetcher      PriceFetcher
	repo         repository.Price
	msp          *MspTable
	bus          event.Bus
	fetchTimeout time.Duration
	defaultDays  int
}

// NewService creates a new market service
func NewService(
	fetcher PriceFetcher,
	repo repository.Price,
	msp *MspTable,
	bus event.Bus,
	fetchTimeout time.Duration,
	defaultDays int,
) Service {
	return &service{
		fetcher:      fetcher,
		repo:         repo,
		msp:          msp,
		bus:          bus,
		fetchTimeout: fetchTimeout,
		defaultDays:  defaultDays,
	}
}

// GetPriceTrend assembles the full price report for a commodity
func (s *service) GetPriceTrend(ctx context.Context, commodity string, days int) (*domain.PriceTrendReport, error) {
	log := logger.FromContext(ctx)
	if days <= 0 {
		days = s.defaultDays
	}
	log.Info("GetPriceTrend called", "commodity", commodity, "days", days)

	points := s.fetchRecent(ctx, commodity, days)

	trend, daily := AnalyzeTrend(points)
	if trend.Direction == domain.TrendUnknown {
		log.Warn(LogMsgNoPriceData, "commodity", commodity)
	}

	report := &domain.PriceTrendReport{
		Commodity:       commodity,
		DailyPrices:     daily,
		Trend:           trend,
		MspComparison:   s.msp.CompareMsp(commodity, latestDayPoints(points)),
		StorageAdvisory: AdviseStorage(windowPoints(points, StorageWindowDays)),
		WindowEnd:       time.Now(),
		TotalDataPoints: len(points),
	}
	report.WindowStart = report.WindowEnd.AddDate(0, 0, -days)

	return report, nil
}

// CompareMsp positions the commodity's current market price against its MSP
func (s *service) CompareMsp(ctx context.Context, commodity string) (*domain.MspComparison, error) {
	points := s.fetchRecent(ctx, commodity, StorageWindowDays)
	cmp := s.msp.CompareMsp(commodity, latestDayPoints(points))
	return &cmp, nil
}

// GetStorageAdvisory recommends holding or selling the commodity
func (s *service) GetStorageAdvisory(ctx context.Context, commodity string) (*domain.StorageAdvisory, error) {
	log := logger.FromContext(ctx)

	points := s.fetchRecent(ctx, commodity, StorageWindowDays)
	advisory := AdviseStorage(points)
	log.Info(LogMsgAdvisoryComputed, "commodity", commodity, "recommendation", advisory.Recommendation)

	metrics.StorageAdvisories.WithLabelValues(string(advisory.Recommendation)).Inc()
	s.publishAdvisory(ctx, commodity, advisory)

	return &advisory, nil
}

// fetchRecent returns the commodity's recent price rows, preferring the live
// feed and falling back to stored rows when it fails. An empty result is a
// valid degraded state, never an error.
func (s *service) fetchRecent(ctx context.Context, commodity string, days int) []domain.PricePoint {
	log := logger.FromContext(ctx)

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	points, err := s.fetcher.HistoricalPrices(fetchCtx, commodity, days)
	if err == nil && len(points) > 0 {
		// Top up the stored copy for the next fallback; failures only cost
		// us the cache, not the request.
		if storeErr := s.repo.SavePoints(ctx, commodity, points); storeErr != nil {
			log.Warn(LogMsgStoreFailed, "commodity", commodity, "error", storeErr)
		}
		return points
	}
	if err != nil {
		log.Warn(LogMsgLiveFetchFailed, "commodity", commodity, "error", err)
	}

	since := time.Now().AddDate(0, 0, -days)
	stored, storeErr := s.repo.HistoricalPoints(ctx, commodity, since)
	if storeErr != nil {
		log.Warn("Stored price lookup failed", "commodity", commodity, "error", storeErr)
		return nil
	}
	return stored
}

func (s *service) publishAdvisory(ctx context.Context, commodity string, advisory domain.StorageAdvisory) {
	if s.bus == nil {
		return
	}
	evt := event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.StorageAdvisoryIssued,
		Payload: map[string]interface{}{
			"commodity":      commodity,
			"recommendation": string(advisory.Recommendation),
			"confidence":     advisory.Confidence,
		},
	}
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event", "type", evt.Type, "error", err)
	}
}

// latestDayPoints returns the rows of the most recent calendar day present.
func latestDayPoints(points []domain.PricePoint) []domain.PricePoint {
	var latest time.Time
	for _, p := range points {
		if p.ModalPrice == nil {
			continue
		}
		day := p.Date.Truncate(24 * time.Hour)
		if day.After(latest) {
			latest = day
		}
	}
	if latest.IsZero() {
		return nil
	}

	var out []domain.PricePoint
	for _, p := range points {
		if p.ModalPrice != nil && p.Date.Truncate(24*time.Hour).Equal(latest) {
			out = append(out, p)
		}
	}
	return out
}

// windowPoints keeps only rows newer than days ago.
func windowPoints(points []domain.PricePoint, days int) []domain.PricePoint {
	cutoff := time.Now().AddDate(0, 0, -days)
	var out []domain.PricePoint
	for _, p := range points {
		if p.Date.After(cutoff) {
			out = append(out, p)
		}
	}
	return out
}
