package domain

import "time"

// TrendDirection classifies the movement of a commodity's price series.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "INCREASING"
	TrendDecreasing TrendDirection = "DECREASING"
	TrendStable     TrendDirection = "STABLE"
	TrendUnknown    TrendDirection = "UNKNOWN"
)

// MspResult classifies current market price against the MSP reference.
type MspResult string

const (
	AboveMsp   MspResult = "ABOVE_MSP"
	BelowMsp   MspResult = "BELOW_MSP"
	AtMsp      MspResult = "AT_MSP"
	MspUnknown MspResult = "UNKNOWN"
)

// StorageRecommendation is the hold/sell outcome of the storage advisory.
type StorageRecommendation string

const (
	RecommendHold StorageRecommendation = "HOLD"
	RecommendSell StorageRecommendation = "SELL"
)

// PriceChangeLabel describes the expected near-term price movement.
type PriceChangeLabel string

const (
	PriceChangeIncrease PriceChangeLabel = "POTENTIAL_INCREASE"
	PriceChangeDecrease PriceChangeLabel = "POTENTIAL_DECREASE"
	PriceChangeStable   PriceChangeLabel = "STABLE"
	PriceChangeUnknown  PriceChangeLabel = "UNKNOWN"
)

// PricePoint is one raw mandi price row. Multiple points may share a date when
// several mandis reported that day; modal price may be absent in partial rows.
type PricePoint struct {
	Date            time.Time `json:"date"`
	ModalPrice      *float64  `json:"modal_price"`
	MinPrice        *float64  `json:"min_price,omitempty"`
	MaxPrice        *float64  `json:"max_price,omitempty"`
	ArrivalQuintals *float64  `json:"arrival_quintals,omitempty"`
	MandiName       string    `json:"mandi_name,omitempty"`
}

// DailyPrice is the per-calendar-day aggregate of raw price points: prices are
// averaged over the mandis that reported, arrivals are summed, and the mandi
// name is the lexicographically smallest of the day for reproducibility.
type DailyPrice struct {
	Date            time.Time `json:"date"`
	ModalPrice      float64   `json:"modal_price"`
	MinPrice        float64   `json:"min_price"`
	MaxPrice        float64   `json:"max_price"`
	ArrivalQuintals float64   `json:"arrival_quintals"`
	MandiName       string    `json:"mandi_name,omitempty"`
}

// CurrentPrice is the latest modal/min/max quote for a commodity.
type CurrentPrice struct {
	Commodity  string    `json:"commodity"`
	ModalPrice float64   `json:"modal_price"`
	MinPrice   float64   `json:"min_price"`
	MaxPrice   float64   `json:"max_price"`
	Source     string    `json:"source,omitempty"`
	AsOf       time.Time `json:"as_of"`
}

// TrendAnalysis summarises a daily price series.
// Volatility is the population standard deviation of daily modal prices.
type TrendAnalysis struct {
	Direction     TrendDirection `json:"trend_direction"`
	ChangePercent float64        `json:"price_change_percent"`
	AveragePrice  float64        `json:"average_price"`
	HighestPrice  float64        `json:"highest_price"`
	LowestPrice   float64        `json:"lowest_price"`
	Volatility    float64        `json:"price_volatility"`
}

// MspComparison compares the current market price to the MSP reference.
// An Msp of 0 means no reference is configured for the commodity.
type MspComparison struct {
	Msp                float64   `json:"msp"`
	CurrentMarketPrice float64   `json:"current_market_price"`
	Difference         float64   `json:"difference"`
	Result             MspResult `json:"comparison_result"`
	Recommendation     string    `json:"recommendation"`
}

// StorageAdvisory is the hold/sell recommendation derived from the recent
// price window.
type StorageAdvisory struct {
	Recommendation       StorageRecommendation `json:"recommendation"`
	Reasoning            string                `json:"reasoning"`
	Confidence           float64               `json:"confidence_level"`
	ExpectedPriceChange  PriceChangeLabel      `json:"expected_price_change"`
	SuggestedHoldingDays int                   `json:"suggested_holding_days"`
}

// PriceTrendReport bundles everything a caller needs to reason about a
// commodity's market: the daily series, the trend summary, the MSP position
// and the storage advisory.
type PriceTrendReport struct {
	Commodity       string          `json:"commodity"`
	DailyPrices     []DailyPrice    `json:"price_history"`
	Trend           TrendAnalysis   `json:"trend_analysis"`
	MspComparison   MspComparison   `json:"msp_comparison"`
	StorageAdvisory StorageAdvisory `json:"storage_advisory"`
	WindowStart     time.Time       `json:"window_start"`
	WindowEnd       time.Time       `json:"window_end"`
	TotalDataPoints int             `json:"total_data_points"`
}
