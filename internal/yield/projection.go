package yield

import (
	"context"

	"github.com/agrosight/agrosight/internal/domain"
	"github.com/agrosight/agrosight/internal/logger"
)

// buildProjection turns a total yield range into revenue and profit figures
// at current mandi prices. Returns nil when no price source is wired or no
// quote could be obtained; estimation must not fail on market data.
func (s *service) buildProjection(ctx context.Context, commodity string, total domain.YieldRange, costPerQuintal *float64) *domain.FinancialProjection {
	if s.prices == nil {
		return nil
	}

	priceCtx, cancel := context.WithTimeout(ctx, s.priceTimeout)
	defer cancel()

	price, err := s.prices.CurrentPrice(priceCtx, commodity)
	if err != nil {
		logger.FromContext(ctx).Warn("Skipping financial projection, price unavailable", "commodity", commodity, "error", err)
		return nil
	}

	return ProjectFinancials(commodity, total, *price, costPerQuintal)
}

// ProjectFinancials computes revenue, profit and ROI for a yield range at the
// given quote. Pessimistic revenue pairs the low yield with the low price and
// optimistic pairs the highs.
func ProjectFinancials(commodity string, total domain.YieldRange, price domain.CurrentPrice, costPerQuintal *float64) *domain.FinancialProjection {
	p := &domain.FinancialProjection{
		Commodity:              commodity,
		EstimatedYieldQuintals: total.Expected,
		CurrentPricePerQtl:     price.ModalPrice,
		MinPricePerQtl:         price.MinPrice,
		MaxPricePerQtl:         price.MaxPrice,
		PriceSource:            price.Source,
		RevenueMin:             total.Min * price.MinPrice,
		RevenueExpected:        total.Expected * price.ModalPrice,
		RevenueMax:             total.Max * price.MaxPrice,
	}

	if costPerQuintal != nil {
		p.TotalEstimatedCosts = *costPerQuintal * total.Expected
	}
	p.ProfitMin = p.RevenueMin - p.TotalEstimatedCosts
	p.ProfitExpected = p.RevenueExpected - p.TotalEstimatedCosts
	p.ProfitMax = p.RevenueMax - p.TotalEstimatedCosts

	if p.TotalEstimatedCosts > 0 {
		p.ROIPercent = p.ProfitExpected / p.TotalEstimatedCosts * 100
	}

	return p
}
