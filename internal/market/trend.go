package market

import (
	"math"
	"sort"
	"time"

	"github.com/agrosight/agrosight/internal/domain"
)

// AggregateDaily collapses raw mandi price rows into one entry per calendar
// day: prices averaged over the mandis that reported, arrivals summed, and
// the day's mandi name the lexicographically smallest for reproducibility.
// Rows without a modal price are ignored. The result is sorted ascending.
func AggregateDaily(points []domain.PricePoint) []domain.DailyPrice {
	type bucket struct {
		modalSum, minSum, maxSum float64
		modalN, minN, maxN       int
		arrivals                 float64
		mandi                    string
	}

	buckets := make(map[time.Time]*bucket)
	for _, p := range points {
		if p.ModalPrice == nil {
			continue
		}
		y, m, d := p.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		b.modalSum += *p.ModalPrice
		b.modalN++
		if p.MinPrice != nil {
			b.minSum += *p.MinPrice
			b.minN++
		}
		if p.MaxPrice != nil {
			b.maxSum += *p.MaxPrice
			b.maxN++
		}
		if p.ArrivalQuintals != nil {
			b.arrivals += *p.ArrivalQuintals
		}
		if p.MandiName != "" && (b.mandi == "" || p.MandiName < b.mandi) {
			b.mandi = p.MandiName
		}
	}

	daily := make([]domain.DailyPrice, 0, len(buckets))
	for day, b := range buckets {
		modal := b.modalSum / float64(b.modalN)
		d := domain.DailyPrice{
			Date:            day,
			ModalPrice:      modal,
			MinPrice:        modal,
			MaxPrice:        modal,
			ArrivalQuintals: b.arrivals,
			MandiName:       b.mandi,
		}
		if b.minN > 0 {
			d.MinPrice = b.minSum / float64(b.minN)
		}
		if b.maxN > 0 {
			d.MaxPrice = b.maxSum / float64(b.maxN)
		}
		daily = append(daily, d)
	}

	sort.Slice(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })
	return daily
}

// AnalyzeTrend aggregates raw price rows and summarises their movement.
// Fewer than two daily points cannot support a trend and produce an all-zero
// UNKNOWN analysis rather than an error.
func AnalyzeTrend(points []domain.PricePoint) (domain.TrendAnalysis, []domain.DailyPrice) {
	daily := AggregateDaily(points)
	if len(daily) < MinDailyPointsForTrend {
		return domain.TrendAnalysis{Direction: domain.TrendUnknown}, daily
	}

	first := daily[0].ModalPrice
	last := daily[len(daily)-1].ModalPrice

	var changePercent float64
	if first != 0 {
		changePercent = (last - first) / first * 100
	}

	direction := domain.TrendStable
	switch {
	case changePercent > TrendStableBandPercent:
		direction = domain.TrendIncreasing
	case changePercent < -TrendStableBandPercent:
		direction = domain.TrendDecreasing
	}

	var sum float64
	highest := daily[0].ModalPrice
	lowest := daily[0].ModalPrice
	for _, d := range daily {
		sum += d.ModalPrice
		highest = math.Max(highest, d.ModalPrice)
		lowest = math.Min(lowest, d.ModalPrice)
	}
	mean := sum / float64(len(daily))

	var sqDiff float64
	for _, d := range daily {
		sqDiff += (d.ModalPrice - mean) * (d.ModalPrice - mean)
	}
	volatility := math.Sqrt(sqDiff / float64(len(daily)))

	return domain.TrendAnalysis{
		Direction:     direction,
		ChangePercent: changePercent,
		AveragePrice:  mean,
		HighestPrice:  highest,
		LowestPrice:   lowest,
		Volatility:    volatility,
	}, daily
}
