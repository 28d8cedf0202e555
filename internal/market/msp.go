package market

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/agrosight/agrosight/internal/domain"
)

// ErrInvalidMspConfig marks a malformed MSP reference file.
var ErrInvalidMspConfig = errors.New("invalid MSP configuration")

// mspFile is the JSON shape of configs/msp.json. Values are Rs per quintal.
type mspFile struct {
	Version     string             `json:"version"`
	Season      string             `json:"season,omitempty"`
	Description string             `json:"description,omitempty"`
	Msps        map[string]float64 `json:"msps"`
}

// MspTable is the immutable minimum-support-price reference, loaded once at
// startup. Lookups are case-insensitive.
type MspTable struct {
	entries map[string]float64
}

// NewMspTable builds a table from explicit values.
func NewMspTable(values map[string]float64) (*MspTable, error) {
	entries := make(map[string]float64, len(values))
	for name, msp := range values {
		key := strings.ToUpper(strings.TrimSpace(name))
		if key == "" {
			return nil, fmt.Errorf("%w: empty commodity name", ErrInvalidMspConfig)
		}
		if msp <= 0 {
			return nil, fmt.Errorf("%w: %s has non-positive MSP", ErrInvalidMspConfig, name)
		}
		entries[key] = msp
	}
	return &MspTable{entries: entries}, nil
}

// LoadMspTable reads and validates the MSP reference from path.
func LoadMspTable(path string) (*MspTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read MSP table: %w", err)
	}

	var file mspFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse MSP table: %w", err)
	}
	if len(file.Msps) == 0 {
		return nil, fmt.Errorf("%w: no MSP entries defined in %s", ErrInvalidMspConfig, path)
	}

	return NewMspTable(file.Msps)
}

// Msp returns the configured MSP for a commodity, or 0 when none exists.
func (t *MspTable) Msp(commodity string) float64 {
	return t.entries[strings.ToUpper(strings.TrimSpace(commodity))]
}

// Size returns the number of configured commodities.
func (t *MspTable) Size() int {
	return len(t.entries)
}

// CompareMsp positions the current market price against the MSP reference.
// The market price is the mean of the latest day's non-nil modal prices.
// Missing MSP or missing market data degrade to UNKNOWN, never to an error.
func (t *MspTable) CompareMsp(commodity string, latest []domain.PricePoint) domain.MspComparison {
	msp := t.Msp(commodity)

	var sum float64
	var n int
	for _, p := range latest {
		if p.ModalPrice != nil {
			sum += *p.ModalPrice
			n++
		}
	}
	var market float64
	if n > 0 {
		market = sum / float64(n)
	}

	cmp := domain.MspComparison{
		Msp:                msp,
		CurrentMarketPrice: market,
		Difference:         market - msp,
	}

	if msp == 0 || market == 0 {
		cmp.Result = domain.MspUnknown
		cmp.Recommendation = RecommendationUnknown
		return cmp
	}

	switch {
	case market > msp:
		cmp.Result = domain.AboveMsp
		cmp.Recommendation = RecommendationAboveMsp
	case market < msp:
		cmp.Result = domain.BelowMsp
		cmp.Recommendation = RecommendationBelowMsp
	default:
		cmp.Result = domain.AtMsp
		cmp.Recommendation = RecommendationAtMsp
	}
	return cmp
}
