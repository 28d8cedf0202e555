package market

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/agrosight/agrosight/internal/domain"
)

// MockPriceFetcher is a mock implementation of PriceFetcher
type MockPriceFetcher struct {
	mock.Mock
}

func (m *MockPriceFetcher) HistoricalPrices(ctx context.Context, commodity string, days int) ([]domain.PricePoint, error) {
	args := m.Called(ctx, commodity, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricePoint), args.Error(1)
}

// MockPriceRepo is a mock implementation of repository.Price
type MockPriceRepo struct {
	mock.Mock
}

func (m *MockPriceRepo) SavePoints(ctx context.Context, commodity string, points []domain.PricePoint) error {
	args := m.Called(ctx, commodity, points)
	return args.Error(0)
}

func (m *MockPriceRepo) HistoricalPoints(ctx context.Context, commodity string, since time.Time) ([]domain.PricePoint, error) {
	args := m.Called(ctx, commodity, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricePoint), args.Error(1)
}

func (m *MockPriceRepo) LatestPoints(ctx context.Context, commodity string) ([]domain.PricePoint, error) {
	args := m.Called(ctx, commodity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricePoint), args.Error(1)
}

// pricePoints builds one point per day ending today from modal prices.
func pricePoints(modals ...float64) []domain.PricePoint {
	points := make([]domain.PricePoint, 0, len(modals))
	start := time.Now().AddDate(0, 0, -(len(modals) - 1))
	for i := range modals {
		modal := modals[i]
		points = append(points, domain.PricePoint{
			Date:       start.AddDate(0, 0, i),
			ModalPrice: &modal,
			MandiName:  "Azadpur",
		})
	}
	return points
}

func testMspTable() *MspTable {
	table, err := NewMspTable(map[string]float64{
		"Wheat": 2650,
		"Rice":  2900,
	})
	if err != nil {
		panic(err)
	}
	return table
}

const testFetchTimeout = 500 * time.Millisecond
