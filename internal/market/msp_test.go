package market

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrosight/agrosight/internal/domain"
)

func TestCompareMsp_AboveMsp(t *testing.T) {
	table := testMspTable()

	cmp := table.CompareMsp("Wheat", pricePoints(2800))

	assert.Equal(t, domain.AboveMsp, cmp.Result)
	assert.InDelta(t, 2650.0, cmp.Msp, 0.0001)
	assert.InDelta(t, 2800.0, cmp.CurrentMarketPrice, 0.0001)
	assert.InDelta(t, 150.0, cmp.Difference, 0.0001)
	assert.Equal(t, RecommendationAboveMsp, cmp.Recommendation)
}

func TestCompareMsp_BelowMsp(t *testing.T) {
	cmp := testMspTable().CompareMsp("Wheat", pricePoints(2500))

	assert.Equal(t, domain.BelowMsp, cmp.Result)
	assert.Equal(t, RecommendationBelowMsp, cmp.Recommendation)
}

func TestCompareMsp_AtMsp(t *testing.T) {
	cmp := testMspTable().CompareMsp("Wheat", pricePoints(2650))

	assert.Equal(t, domain.AtMsp, cmp.Result)
}

func TestCompareMsp_AveragesLatestDay(t *testing.T) {
	// Two mandis reporting the same day average to 2700
	points := pricePoints(2600)
	extra := points[0]
	extra.ModalPrice = modalPtr(2800)
	extra.MandiName = "Khanna"
	points = append(points, extra)

	cmp := testMspTable().CompareMsp("Wheat", points)
	assert.InDelta(t, 2700.0, cmp.CurrentMarketPrice, 0.0001)
	assert.Equal(t, domain.AboveMsp, cmp.Result)
}

func TestCompareMsp_UnknownCases(t *testing.T) {
	table := testMspTable()

	// Commodity without a configured MSP
	cmp := table.CompareMsp("Saffron", pricePoints(100000))
	assert.Equal(t, domain.MspUnknown, cmp.Result)
	assert.Zero(t, cmp.Msp)
	assert.Equal(t, RecommendationUnknown, cmp.Recommendation)

	// No market data at all
	cmp = table.CompareMsp("Wheat", nil)
	assert.Equal(t, domain.MspUnknown, cmp.Result)
	assert.Zero(t, cmp.CurrentMarketPrice)
}

func TestNewMspTable_Validation(t *testing.T) {
	_, err := NewMspTable(map[string]float64{"": 100})
	assert.ErrorIs(t, err, ErrInvalidMspConfig)

	_, err = NewMspTable(map[string]float64{"Wheat": 0})
	assert.ErrorIs(t, err, ErrInvalidMspConfig)
}

func TestLoadMspTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "msp.json")
	content := `{
		"version": "2025-26",
		"msps": {"Wheat": 2650, "Paddy": 2300}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	table, err := LoadMspTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Size())
	assert.InDelta(t, 2300.0, table.Msp("paddy"), 0.0001)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"msps": {}}`), 0o644))
	_, err = LoadMspTable(empty)
	assert.ErrorIs(t, err, ErrInvalidMspConfig)
}
