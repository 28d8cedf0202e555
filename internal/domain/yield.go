package domain

import "time"

// GrowthStage identifies how far a crop has progressed since sowing.
type GrowthStage string

const (
	StageSowing      GrowthStage = "SOWING"
	StageGermination GrowthStage = "GERMINATION"
	StageVegetative  GrowthStage = "VEGETATIVE"
	StageFlowering   GrowthStage = "FLOWERING"
	StageFruiting    GrowthStage = "FRUITING"
	StageMaturation  GrowthStage = "MATURATION"
	StageHarvest     GrowthStage = "HARVEST"
)

// IrrigationType identifies the irrigation regime on a plot.
type IrrigationType string

const (
	IrrigationRainfed   IrrigationType = "RAINFED"
	IrrigationDrip      IrrigationType = "DRIP"
	IrrigationSprinkler IrrigationType = "SPRINKLER"
	IrrigationCanal     IrrigationType = "CANAL"
	IrrigationBorewell  IrrigationType = "BOREWELL"
)

// ControlStatus describes how well a pest/disease outbreak is contained.
type ControlStatus string

const (
	ControlControlled ControlStatus = "controlled"
	ControlOngoing    ControlStatus = "ongoing"
	ControlSevere     ControlStatus = "severe"
)

// WeatherObservation carries season-to-date weather signals for a plot.
// Values are supplied pre-validated by the weather collaborator.
type WeatherObservation struct {
	TotalRainfallMm    *float64 `json:"total_rainfall_mm,omitempty"`
	AvgTemperatureC    *float64 `json:"avg_temperature_c,omitempty"`
	ExtremeEventsCount int      `json:"extreme_events_count,omitempty"`
}

// SoilObservation carries the latest soil test values for a plot (kg/ha for NPK).
type SoilObservation struct {
	NitrogenKgHa   *float64 `json:"nitrogen_kg_ha,omitempty"`
	PhosphorusKgHa *float64 `json:"phosphorus_kg_ha,omitempty"`
	PotassiumKgHa  *float64 `json:"potassium_kg_ha,omitempty"`
	Ph             *float64 `json:"ph,omitempty"`
}

// IrrigationObservation describes the irrigation setup for a plot.
type IrrigationObservation struct {
	Type             IrrigationType `json:"type"`
	FrequencyPerWeek *int           `json:"frequency_per_week,omitempty"`
}

// PestDiseaseObservation summarises pest and disease pressure on a plot.
type PestDiseaseObservation struct {
	PestIncidentCount    int           `json:"pest_incident_count,omitempty"`
	DiseaseIncidentCount int           `json:"disease_incident_count,omitempty"`
	AffectedAreaPercent  *float64      `json:"affected_area_percent,omitempty"`
	ControlStatus        ControlStatus `json:"control_status,omitempty"`
}

// YieldEstimateRequest is the immutable input for a yield estimation run.
// All observation groups are optional; absent data contributes no adjustment.
type YieldEstimateRequest struct {
	FarmerID    string      `json:"farmer_id"`
	CropID      string      `json:"crop_id"`
	CropName    string      `json:"crop_name"`
	CropVariety string      `json:"crop_variety,omitempty"`
	SowingDate  time.Time   `json:"sowing_date"`
	AreaAcres   *float64    `json:"area_acres,omitempty"` // nil defaults to 1
	GrowthStage GrowthStage `json:"growth_stage,omitempty"`

	Weather     *WeatherObservation     `json:"weather,omitempty"`
	Soil        *SoilObservation        `json:"soil,omitempty"`
	Irrigation  *IrrigationObservation  `json:"irrigation,omitempty"`
	PestDisease *PestDiseaseObservation `json:"pest_disease,omitempty"`

	InputCostPerQuintal        *float64 `json:"input_cost_per_quintal,omitempty"`
	IncludeFinancialProjection bool     `json:"include_financial_projection,omitempty"`
	IncludeHistoricalData      bool     `json:"include_historical_data,omitempty"`
}

// Area returns the plot area in acres, defaulting to 1 when unspecified.
func (r YieldEstimateRequest) Area() float64 {
	if r.AreaAcres == nil {
		return 1
	}
	return *r.AreaAcres
}

// YieldRange is a (min, expected, max) triple in quintals.
type YieldRange struct {
	Min      float64 `json:"min"`
	Expected float64 `json:"expected"`
	Max      float64 `json:"max"`
}

// Scale returns the range multiplied by a factor, for per-acre to total conversion.
func (y YieldRange) Scale(factor float64) YieldRange {
	return YieldRange{
		Min:      y.Min * factor,
		Expected: y.Expected * factor,
		Max:      y.Max * factor,
	}
}

// YieldPrediction is one appended entry in a crop's prediction history.
// Rows are never deleted; only the actual-yield linkage and the notification
// flag mutate after creation.
type YieldPrediction struct {
	ID                   string    `json:"id"`
	CropID               string    `json:"crop_id"`
	FarmerID             string    `json:"farmer_id"`
	CropName             string    `json:"crop_name"`
	PredictionDate       time.Time `json:"prediction_date"`
	AreaAcres            float64   `json:"area_acres"`
	PerAcre              YieldRange `json:"per_acre_quintals"`
	Total                YieldRange `json:"total_quintals"`
	ConfidencePercent    float64   `json:"confidence_percent"`
	FactorsConsidered    []string  `json:"factors_considered"`
	ModelVersion         string    `json:"model_version"`
	PreviousPredictionID *string   `json:"previous_prediction_id,omitempty"`

	SignificantDeviation bool   `json:"significant_deviation"`
	DeviationNote        string `json:"deviation_note,omitempty"`

	ActualYieldQuintals *float64 `json:"actual_yield_quintals,omitempty"`
	VarianceQuintals    *float64 `json:"variance_quintals,omitempty"`
	VariancePercent     *float64 `json:"variance_percent,omitempty"`

	NotificationSent   bool       `json:"notification_sent"`
	NotificationSentAt *time.Time `json:"notification_sent_at,omitempty"`
}

// HasActual reports whether a harvest outcome is already recorded on this prediction.
func (p *YieldPrediction) HasActual() bool {
	return p.ActualYieldQuintals != nil
}

// ActualYieldRecord is the harvest outcome reported by a farmer, recorded once
// per harvest against the latest prediction of the crop.
type ActualYieldRecord struct {
	CropID              string    `json:"crop_id"`
	FarmerID            string    `json:"farmer_id"`
	ActualYieldQuintals float64   `json:"actual_yield_quintals"`
	HarvestDate         time.Time `json:"harvest_date"`
	QualityGrade        string    `json:"quality_grade,omitempty"`
	SellingPricePerQtl  *float64  `json:"selling_price_per_quintal,omitempty"`
	MandiName           string    `json:"mandi_name,omitempty"`
}

// VarianceCategory classifies a prediction-vs-actual outcome.
type VarianceCategory string

const (
	VariancePositive VarianceCategory = "positive"
	VarianceNegative VarianceCategory = "negative"
	VarianceNeutral  VarianceCategory = "neutral"
)

// VarianceResult compares a harvest outcome to the prediction it settles.
type VarianceResult struct {
	PredictionID      string           `json:"prediction_id"`
	CropID            string           `json:"crop_id"`
	FarmerID          string           `json:"farmer_id"`
	PredictedExpected float64          `json:"predicted_expected_quintals"`
	ActualYield       float64          `json:"actual_yield_quintals"`
	VarianceQuintals  float64          `json:"variance_quintals"`
	VariancePercent   float64          `json:"variance_percent"`
	Category          VarianceCategory `json:"variance_category"`
	Note              string           `json:"note,omitempty"`
	// AvgVarianceForCrop is the running average variance across all settled
	// predictions for the crop, kept for future confidence-band tuning.
	AvgVarianceForCrop float64 `json:"avg_variance_for_crop"`
	ModelVersion       string  `json:"model_version"`
}

// FinancialProjection converts a yield range into revenue/profit estimates
// using current mandi prices. Present on a response only when requested and
// when price data was obtainable.
type FinancialProjection struct {
	Commodity              string  `json:"commodity"`
	EstimatedYieldQuintals float64 `json:"estimated_yield_quintals"`
	CurrentPricePerQtl     float64 `json:"current_price_per_quintal"`
	MinPricePerQtl         float64 `json:"min_price_per_quintal"`
	MaxPricePerQtl         float64 `json:"max_price_per_quintal"`
	PriceSource            string  `json:"price_source"`
	RevenueMin             float64 `json:"revenue_min"`
	RevenueExpected        float64 `json:"revenue_expected"`
	RevenueMax             float64 `json:"revenue_max"`
	TotalEstimatedCosts    float64 `json:"total_estimated_costs"`
	ProfitMin              float64 `json:"profit_min"`
	ProfitExpected         float64 `json:"profit_expected"`
	ProfitMax              float64 `json:"profit_max"`
	ROIPercent             float64 `json:"roi_percent"`
}

// YieldEstimateResponse is the full result of one estimation run.
type YieldEstimateResponse struct {
	PredictionID      string     `json:"prediction_id"`
	CropID            string     `json:"crop_id"`
	FarmerID          string     `json:"farmer_id"`
	CropName          string     `json:"crop_name"`
	CropVariety       string     `json:"crop_variety,omitempty"`
	AreaAcres         float64    `json:"area_acres"`
	PerAcre           YieldRange `json:"per_acre_quintals"`
	Total             YieldRange `json:"total_quintals"`
	ConfidencePercent float64    `json:"confidence_percent"`
	ModelVersion      string     `json:"model_version"`
	GrowthStage       GrowthStage `json:"growth_stage,omitempty"`

	FactorsConsidered []string `json:"factors_considered"`
	FactorAdjustments []string `json:"factor_adjustments"`

	SignificantDeviation     bool    `json:"significant_deviation"`
	DeviationFromPrevPercent float64 `json:"deviation_from_previous_percent"`
	DeviationNote            string  `json:"deviation_note,omitempty"`

	HistoricalAvgYieldPerAcre  *float64 `json:"historical_avg_yield_per_acre,omitempty"`
	VarianceFromHistoricalPct  *float64 `json:"variance_from_historical_percent,omitempty"`
	HistoricalComparisonNote   string   `json:"historical_comparison_note,omitempty"`

	FinancialProjection *FinancialProjection `json:"financial_projection,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}
