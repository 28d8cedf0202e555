package config

// Default values for tunable settings
const (
	DefaultPort                 = 8080
	DefaultPriceFeedTimeoutMs   = 3000
	DefaultPriceFeedRetries     = 2
	DefaultPriceCacheSize       = 256
	DefaultPriceCacheTTLMinutes = 60
	DefaultTrendDays            = 30
	DefaultDBMaxConns           = 10
	DefaultDBMaxIdleMinutes     = 5
	DefaultDBMaxLifeMinutes     = 60
)
