package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/agrosight/agrosight/internal/domain"
)

// MockYieldService is a mock implementation of yield.Service
type MockYieldService struct {
	mock.Mock
}

func (m *MockYieldService) Estimate(ctx context.Context, req domain.YieldEstimateRequest) (*domain.YieldEstimateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.YieldEstimateResponse), args.Error(1)
}

func (m *MockYieldService) RecordActual(ctx context.Context, rec domain.ActualYieldRecord) (*domain.VarianceResult, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VarianceResult), args.Error(1)
}

func (m *MockYieldService) GetHistory(ctx context.Context, cropID string) ([]domain.YieldPrediction, error) {
	args := m.Called(ctx, cropID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YieldPrediction), args.Error(1)
}

func (m *MockYieldService) PredictionsNeedingNotification(ctx context.Context) ([]domain.YieldPrediction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.YieldPrediction), args.Error(1)
}

func (m *MockYieldService) MarkNotified(ctx context.Context, predictionID string) error {
	args := m.Called(ctx, predictionID)
	return args.Error(0)
}

// MockMarketService is a mock implementation of market.Service
type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) GetPriceTrend(ctx context.Context, commodity string, days int) (*domain.PriceTrendReport, error) {
	args := m.Called(ctx, commodity, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceTrendReport), args.Error(1)
}

func (m *MockMarketService) CompareMsp(ctx context.Context, commodity string) (*domain.MspComparison, error) {
	args := m.Called(ctx, commodity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MspComparison), args.Error(1)
}

func (m *MockMarketService) GetStorageAdvisory(ctx context.Context, commodity string) (*domain.StorageAdvisory, error) {
	args := m.Called(ctx, commodity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StorageAdvisory), args.Error(1)
}
