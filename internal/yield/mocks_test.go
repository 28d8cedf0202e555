package yield

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/agrosight/agrosight/internal/domain"
	"github.com/agrosight/agrosight/internal/event"
)

// MockYieldRepo is a mock implementation of repository.Yield
type MockYieldRepo struct {
	mock.Mock
}

func (m *MockYieldRepo) Save(ctx context.Context, prediction *domain.YieldPrediction) (string, error) {
	args := m.Called(ctx, prediction)
	return args.String(0), args.Error(1)
}

func (m *MockYieldRepo) FindLatestByCropID(ctx context.Context, cropID string) (*domain.YieldPrediction, error) {
	args := m.Called(ctx, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.YieldPrediction), args.Error(1)
}

func (m *MockYieldRepo) FindByCropID(ctx context.Context, cropID string) ([]domain.YieldPrediction, error) {
	args := m.Called(ctx, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YieldPrediction), args.Error(1)
}

func (m *MockYieldRepo) AverageActualYield(ctx context.Context, farmerID, cropName string) (float64, int, error) {
	args := m.Called(ctx, farmerID, cropName)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func (m *MockYieldRepo) AttachActual(ctx context.Context, predictionID string, actual domain.ActualYieldRecord, varianceQuintals, variancePercent float64) error {
	args := m.Called(ctx, predictionID, actual, varianceQuintals, variancePercent)
	return args.Error(0)
}

func (m *MockYieldRepo) AverageVarianceForCrop(ctx context.Context, cropID string) (float64, error) {
	args := m.Called(ctx, cropID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockYieldRepo) FindNeedingNotification(ctx context.Context) ([]domain.YieldPrediction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YieldPrediction), args.Error(1)
}

func (m *MockYieldRepo) MarkNotified(ctx context.Context, predictionID string) error {
	args := m.Called(ctx, predictionID)
	return args.Error(0)
}

// MockPriceSource is a mock implementation of PriceSource
type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) CurrentPrice(ctx context.Context, commodity string) (*domain.CurrentPrice, error) {
	args := m.Called(ctx, commodity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentPrice), args.Error(1)
}

// recordingBus captures published events for assertions
type recordingBus struct {
	events []event.Event
}

func (b *recordingBus) Publish(ctx context.Context, evt event.Event) error {
	b.events = append(b.events, evt)
	return nil
}

func (b *recordingBus) Subscribe(eventType event.Type, handler event.Handler) {}

func (b *recordingBus) byType(t event.Type) []event.Event {
	var out []event.Event
	for _, e := range b.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// testTable builds a small commodity table used across service tests.
func testTable() *CommodityTable {
	table, err := NewCommodityTable([]CommodityConfig{
		{Commodity: "Wheat", BaseYieldPerAcre: 20},
		{Commodity: "Rice", BaseYieldPerAcre: 25},
		{Commodity: "Cotton", BaseYieldPerAcre: 15},
	})
	if err != nil {
		panic(err)
	}
	return table
}

const testPriceTimeout = 500 * time.Millisecond
