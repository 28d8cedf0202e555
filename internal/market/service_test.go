package market

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agrosight/agrosight/internal/domain"
)

func TestGetPriceTrend_LiveFeed(t *testing.T) {
	points := pricePoints(100, 100, 100, 105)

	fetcher := new(MockPriceFetcher)
	fetcher.On("HistoricalPrices", mock.Anything, "Wheat", 30).Return(points, nil)

	repo := new(MockPriceRepo)
	repo.On("SavePoints", mock.Anything, "Wheat", points).Return(nil)

	svc := NewService(fetcher, repo, testMspTable(), nil, testFetchTimeout, 30)

	report, err := svc.GetPriceTrend(context.Background(), "Wheat", 0)
	require.NoError(t, err)

	assert.Equal(t, "Wheat", report.Commodity)
	assert.Equal(t, domain.TrendIncreasing, report.Trend.Direction)
	assert.InDelta(t, 5.0, report.Trend.ChangePercent, 0.0001)
	assert.Len(t, report.DailyPrices, 4)
	assert.Equal(t, 4, report.TotalDataPoints)
	assert.NotZero(t, report.StorageAdvisory.Recommendation)
	fetcher.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestGetPriceTrend_FallsBackToStoredPrices(t *testing.T) {
	stored := pricePoints(100, 104, 110)

	fetcher := new(MockPriceFetcher)
	fetcher.On("HistoricalPrices", mock.Anything, "Wheat", 30).Return(nil, errors.New("feed timeout"))

	repo := new(MockPriceRepo)
	repo.On("HistoricalPoints", mock.Anything, "Wheat", mock.Anything).Return(stored, nil)

	svc := NewService(fetcher, repo, testMspTable(), nil, testFetchTimeout, 30)

	report, err := svc.GetPriceTrend(context.Background(), "Wheat", 30)
	require.NoError(t, err)

	assert.Equal(t, domain.TrendIncreasing, report.Trend.Direction)
	assert.Equal(t, 3, report.TotalDataPoints)
	repo.AssertNotCalled(t, "SavePoints", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPriceTrend_NoDataAnywhere(t *testing.T) {
	fetcher := new(MockPriceFetcher)
	fetcher.On("HistoricalPrices", mock.Anything, "Wheat", 30).Return(nil, errors.New("feed down"))

	repo := new(MockPriceRepo)
	repo.On("HistoricalPoints", mock.Anything, "Wheat", mock.Anything).Return(nil, errors.New("db down"))

	svc := NewService(fetcher, repo, testMspTable(), nil, testFetchTimeout, 30)

	report, err := svc.GetPriceTrend(context.Background(), "Wheat", 30)
	require.NoError(t, err)

	// Degraded but well-formed: UNKNOWN trend, unknown MSP position,
	// low-confidence hold
	assert.Equal(t, domain.TrendUnknown, report.Trend.Direction)
	assert.Empty(t, report.DailyPrices)
	assert.Equal(t, domain.MspUnknown, report.MspComparison.Result)
	assert.Equal(t, domain.RecommendHold, report.StorageAdvisory.Recommendation)
	assert.Equal(t, domain.PriceChangeUnknown, report.StorageAdvisory.ExpectedPriceChange)
}

func TestGetPriceTrend_StoreFailureDoesNotFailRequest(t *testing.T) {
	points := pricePoints(100, 103)

	fetcher := new(MockPriceFetcher)
	fetcher.On("HistoricalPrices", mock.Anything, "Rice", 30).Return(points, nil)

	repo := new(MockPriceRepo)
	repo.On("SavePoints", mock.Anything, "Rice", points).Return(errors.New("db down"))

	svc := NewService(fetcher, repo, testMspTable(), nil, testFetchTimeout, 30)

	report, err := svc.GetPriceTrend(context.Background(), "Rice", 30)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalDataPoints)
}

func TestCompareMsp_Service(t *testing.T) {
	fetcher := new(MockPriceFetcher)
	fetcher.On("HistoricalPrices", mock.Anything, "Wheat", StorageWindowDays).Return(pricePoints(2800), nil)

	repo := new(MockPriceRepo)
	repo.On("SavePoints", mock.Anything, "Wheat", mock.Anything).Return(nil)

	svc := NewService(fetcher, repo, testMspTable(), nil, testFetchTimeout, 30)

	cmp, err := svc.CompareMsp(context.Background(), "Wheat")
	require.NoError(t, err)
	assert.Equal(t, domain.AboveMsp, cmp.Result)
	assert.InDelta(t, 150.0, cmp.Difference, 0.0001)
}

func TestGetStorageAdvisory_Service(t *testing.T) {
	fetcher := new(MockPriceFetcher)
	fetcher.On("HistoricalPrices", mock.Anything, "Wheat", StorageWindowDays).Return(pricePoints(100, 104, 108), nil)

	repo := new(MockPriceRepo)
	repo.On("SavePoints", mock.Anything, "Wheat", mock.Anything).Return(nil)

	svc := NewService(fetcher, repo, testMspTable(), nil, testFetchTimeout, 30)

	advisory, err := svc.GetStorageAdvisory(context.Background(), "Wheat")
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendHold, advisory.Recommendation)
	assert.Equal(t, domain.PriceChangeIncrease, advisory.ExpectedPriceChange)
}
