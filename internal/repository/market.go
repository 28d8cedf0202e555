package repository

import (
	"context"
	"time"

	"github.com/agrosight/agrosight/internal/domain"
)

// Price stores mandi price rows mirrored from the external feed. It is the
// secondary price source: trend analysis falls back to it when the live fetch
// fails, and the sampler layer outside this core keeps it topped up.
type Price interface {
	// SavePoints upserts raw price rows for a commodity.
	SavePoints(ctx context.Context, commodity string, points []domain.PricePoint) error

	// HistoricalPoints returns raw price rows for a commodity newer than
	// since, unaggregated, in no particular order.
	HistoricalPoints(ctx context.Context, commodity string, since time.Time) ([]domain.PricePoint, error)

	// LatestPoints returns the price rows of the most recent date known for
	// the commodity (one row per mandi). Empty when nothing is stored.
	LatestPoints(ctx context.Context, commodity string) ([]domain.PricePoint, error)
}
