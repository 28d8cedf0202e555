package market

const (
	// TrendStableBandPercent is the half-width of the change band treated as
	// a flat market.
	TrendStableBandPercent = 2.0

	// MinDailyPointsForTrend is the number of aggregated daily prices needed
	// before a trend can be called at all.
	MinDailyPointsForTrend = 2

	// StorageWindowDays is the recent-price window the storage advisory
	// reasons over.
	StorageWindowDays = 7

	// StorageChangeThresholdPercent separates a drifting market from one
	// worth acting on.
	StorageChangeThresholdPercent = 5.0
)

// Storage advisory confidence levels and holding horizons
const (
	ConfidenceInsufficientData = 0.50
	ConfidenceRisingMarket     = 0.70
	ConfidenceFallingMarket    = 0.75
	ConfidenceStableMarket     = 0.60

	HoldingDaysRising       = 14
	HoldingDaysFalling      = 0
	HoldingDaysStableMarket = 7
)

// Storage advisory reasoning text
const (
	ReasonInsufficientData = "Insufficient recent price data; hold and monitor the market"
	ReasonRisingMarket     = "Prices are trending upward; holding may fetch a better rate"
	ReasonFallingMarket    = "Prices are declining; selling now limits further losses"
	ReasonStableMarket     = "Prices are stable; no urgency to sell"
)

// MSP comparison recommendation text
const (
	RecommendationAboveMsp = "Market price is above MSP. Good time to sell in the open market."
	RecommendationBelowMsp = "Market price is below MSP. Consider selling at government procurement centers at MSP."
	RecommendationAtMsp    = "Market price matches MSP. Either channel yields the same rate."
	RecommendationUnknown  = "Insufficient data to compare market price with MSP."
)

// Log messages
const (
	LogMsgLiveFetchFailed  = "Live price fetch failed, falling back to stored prices"
	LogMsgStoreFailed      = "Failed to store fetched price points"
	LogMsgNoPriceData      = "No price data available for commodity"
	LogMsgAdvisoryComputed = "Storage advisory computed"
)
