package yield

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/agrosight/agrosight/internal/domain"
)

// Sentinel errors for commodity table loading
var (
	ErrDuplicateCommodity = errors.New("duplicate commodity entry")
	ErrInvalidTableConfig = errors.New("invalid commodity configuration")
)

// CommodityConfig is one row of the base-yield reference table.
type CommodityConfig struct {
	Commodity        string  `json:"commodity"`
	BaseYieldPerAcre float64 `json:"base_yield_per_acre_quintals"`
	// VariancePercent overrides the default band half-width when set.
	VariancePercent *float64 `json:"variance_percent,omitempty"`
}

// commodityTableFile is the JSON shape of configs/commodities.json.
type commodityTableFile struct {
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Commodities []CommodityConfig `json:"commodities"`
}

// CommodityTable is the immutable base-yield lookup, loaded once at startup.
// Lookups are case-insensitive on the commodity name.
type CommodityTable struct {
	entries map[string]CommodityConfig
}

// NewCommodityTable builds a table from explicit rows. Used by tests and by
// callers that source the table from somewhere other than a config file.
func NewCommodityTable(rows []CommodityConfig) (*CommodityTable, error) {
	entries := make(map[string]CommodityConfig, len(rows))
	for _, row := range rows {
		key := strings.ToUpper(strings.TrimSpace(row.Commodity))
		if key == "" {
			return nil, fmt.Errorf("%w: empty commodity name", ErrInvalidTableConfig)
		}
		if row.BaseYieldPerAcre <= 0 {
			return nil, fmt.Errorf("%w: %s has non-positive base yield", ErrInvalidTableConfig, row.Commodity)
		}
		if row.VariancePercent != nil && (*row.VariancePercent <= 0 || *row.VariancePercent >= 100) {
			return nil, fmt.Errorf("%w: %s variance out of range", ErrInvalidTableConfig, row.Commodity)
		}
		if _, exists := entries[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCommodity, row.Commodity)
		}
		entries[key] = row
	}
	return &CommodityTable{entries: entries}, nil
}

// LoadCommodityTable reads and validates the base-yield table from path.
func LoadCommodityTable(path string) (*CommodityTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read commodity table: %w", err)
	}

	var file commodityTableFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse commodity table: %w", err)
	}
	if len(file.Commodities) == 0 {
		return nil, fmt.Errorf("%w: no commodities defined in %s", ErrInvalidTableConfig, path)
	}

	return NewCommodityTable(file.Commodities)
}

// Lookup returns the configuration for a commodity, or
// domain.ErrCommodityNotConfigured when none exists.
func (t *CommodityTable) Lookup(commodity string) (CommodityConfig, error) {
	cfg, ok := t.entries[strings.ToUpper(strings.TrimSpace(commodity))]
	if !ok {
		return CommodityConfig{}, fmt.Errorf("%w: %s", domain.ErrCommodityNotConfigured, commodity)
	}
	return cfg, nil
}

// BaseVariance returns the configured variance band for a commodity entry,
// falling back to the model default.
func (c CommodityConfig) BaseVariance() float64 {
	if c.VariancePercent != nil {
		return *c.VariancePercent
	}
	return DefaultVariancePercent
}

// Size returns the number of configured commodities.
func (t *CommodityTable) Size() int {
	return len(t.entries)
}
