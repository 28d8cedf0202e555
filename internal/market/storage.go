package market

import (
	"sort"

	"github.com/agrosight/agrosight/internal/domain"
)

// AdviseStorage turns the recent price window into a hold/sell call. Fewer
// than two usable points is not enough signal: the safe default is a short
// hold with low confidence.
func AdviseStorage(recent []domain.PricePoint) domain.StorageAdvisory {
	usable := make([]domain.PricePoint, 0, len(recent))
	for _, p := range recent {
		if p.ModalPrice != nil {
			usable = append(usable, p)
		}
	}
	sort.Slice(usable, func(i, j int) bool { return usable[i].Date.Before(usable[j].Date) })

	if len(usable) < MinDailyPointsForTrend {
		return domain.StorageAdvisory{
			Recommendation:       domain.RecommendHold,
			Reasoning:            ReasonInsufficientData,
			Confidence:           ConfidenceInsufficientData,
			ExpectedPriceChange:  domain.PriceChangeUnknown,
			SuggestedHoldingDays: HoldingDaysStableMarket,
		}
	}

	oldest := *usable[0].ModalPrice
	latest := *usable[len(usable)-1].ModalPrice

	var changePercent float64
	if oldest != 0 {
		changePercent = (latest - oldest) / oldest * 100
	}

	switch {
	case changePercent > StorageChangeThresholdPercent:
		return domain.StorageAdvisory{
			Recommendation:       domain.RecommendHold,
			Reasoning:            ReasonRisingMarket,
			Confidence:           ConfidenceRisingMarket,
			ExpectedPriceChange:  domain.PriceChangeIncrease,
			SuggestedHoldingDays: HoldingDaysRising,
		}
	case changePercent < -StorageChangeThresholdPercent:
		return domain.StorageAdvisory{
			Recommendation:       domain.RecommendSell,
			Reasoning:            ReasonFallingMarket,
			Confidence:           ConfidenceFallingMarket,
			ExpectedPriceChange:  domain.PriceChangeDecrease,
			SuggestedHoldingDays: HoldingDaysFalling,
		}
	default:
		return domain.StorageAdvisory{
			Recommendation:       domain.RecommendHold,
			Reasoning:            ReasonStableMarket,
			Confidence:           ConfidenceStableMarket,
			ExpectedPriceChange:  domain.PriceChangeStable,
			SuggestedHoldingDays: HoldingDaysStableMarket,
		}
	}
}
