package yield

import "github.com/agrosight/agrosight/internal/domain"

// ModelVersion identifies the rule set used to produce a prediction. Bump it
// whenever factor coefficients change so variance tracking can segment by model.
const ModelVersion = "1.0.0"

// =============================================================================
// Variance band / confidence
// =============================================================================

const (
	// DefaultVariancePercent is the half-width of the yield range around the
	// expected value when no historical data exists for the farmer+crop.
	DefaultVariancePercent = 15.0

	// MinVariancePercent is the floor the band never narrows below, however
	// much history is available.
	MinVariancePercent = 5.0

	// MinHistoryForNarrowing is the number of settled harvest records required
	// before historical data starts narrowing the variance band.
	MinHistoryForNarrowing = 3

	// VarianceNarrowingDivisor dampens the logarithmic narrowing of the band:
	// variance = base / (1 + ln(1+n)/divisor).
	VarianceNarrowingDivisor = 4.0

	// Confidence derived from the variance band is clamped to this range.
	MinConfidencePercent = 50.0
	MaxConfidencePercent = 95.0

	// SignificantDeviationPercent is the threshold beyond which a new
	// prediction differing from the previous one triggers a notification.
	SignificantDeviationPercent = 10.0
)

// =============================================================================
// Weather factor coefficients
// =============================================================================

const (
	OptimalRainfallMm  = 500.0
	OptimalTemperature = 28.0

	RainfallPenaltyRate    = 0.10 // per unit of relative deviation
	RainfallPenaltyCeiling = 0.20
	RainfallBonusCeiling   = 0.10

	TemperaturePenaltyRate    = 0.15
	TemperaturePenaltyCeiling = 0.25

	ExtremeEventPenalty        = 0.15
	ExtremeEventPenaltyCeiling = 0.30

	WeatherMultiplierFloor = 0.50
)

// =============================================================================
// Soil factor coefficients (optimal values in kg/ha, pH band dimensionless)
// =============================================================================

const (
	OptimalNitrogen   = 280.0
	OptimalPhosphorus = 10.0
	OptimalPotassium  = 108.0

	NitrogenPenaltyRate   = 0.20
	PhosphorusPenaltyRate = 0.15
	PotassiumPenaltyRate  = 0.10

	PhBandLow        = 6.0
	PhBandHigh       = 7.5
	PhPenaltyRate    = 0.10 // per pH unit outside the band
	PhPenaltyCeiling = 0.15

	SoilMultiplierFloor = 0.60
)

// =============================================================================
// Irrigation factor coefficients
// =============================================================================

const (
	HighIrrigationFrequencyPerWeek = 3
	HighFrequencyBonusMultiplier   = 1.05
)

// irrigationMultipliers carries the base multiplier per irrigation type.
var irrigationMultipliers = map[domain.IrrigationType]float64{
	domain.IrrigationRainfed:   0.85,
	domain.IrrigationDrip:      1.15,
	domain.IrrigationSprinkler: 1.10,
	domain.IrrigationCanal:     1.05,
	domain.IrrigationBorewell:  1.08,
}

// =============================================================================
// Pest/disease factor coefficients
// =============================================================================

const (
	PestIncidentPenalty        = 0.05
	PestPenaltyCeiling         = 0.25
	DiseaseIncidentPenalty     = 0.08
	DiseasePenaltyCeiling      = 0.30
	UncontrolledPenaltyFactor  = 2.0
	AffectedAreaPenaltyRate    = 0.30
	PestDiseaseMultiplierFloor = 0.40
)

// growthStageMultipliers discounts the estimate by how much of the season is
// still ahead; uncertainty shrinks as harvest approaches.
var growthStageMultipliers = map[domain.GrowthStage]float64{
	domain.StageSowing:      0.95,
	domain.StageGermination: 0.90,
	domain.StageVegetative:  0.85,
	domain.StageFlowering:   0.80,
	domain.StageFruiting:    0.85,
	domain.StageMaturation:  0.90,
	domain.StageHarvest:     1.00,
}
