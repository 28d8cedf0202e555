package agmarknet

const (
	// API paths on the mandi price feed
	currentPricePath    = "/api/v1/prices/current"
	historicalPricePath = "/api/v1/prices/history"

	// Query parameter names
	paramCommodity = "commodity"
	paramDays      = "days"

	// Source labels on returned quotes
	SourceLive  = "agmarknet"
	SourceCache = "cache"

	// arrivalDateLayout is the date format the feed uses for price rows.
	arrivalDateLayout = "2006-01-02"
)
