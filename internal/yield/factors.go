package yield

import (
	"fmt"
	"math"

	"github.com/agrosight/agrosight/internal/domain"
)

// Adjustment is one signed percentage applied to the base yield, with a
// human-readable explanation kept for traceability.
type Adjustment struct {
	Percent float64
	Note    string
}

// FactorResult is the outcome of evaluating every available observation group.
// Factors lists what was considered; Adjustments lists what actually moved the
// estimate. Factors is never empty when at least one group was present.
type FactorResult struct {
	Adjustments []Adjustment
	Factors     []string
	multiplier  float64
}

// Multiplier returns the combined multiplier to apply to the base yield.
func (r FactorResult) Multiplier() float64 {
	return r.multiplier
}

// AdjustmentNotes returns the one-line note of every applied adjustment.
func (r FactorResult) AdjustmentNotes() []string {
	notes := make([]string, 0, len(r.Adjustments))
	for _, a := range r.Adjustments {
		notes = append(notes, a.Note)
	}
	return notes
}

// EvaluateFactors turns the optional observation groups of a request into
// yield adjustments. Absent groups contribute nothing; each group's penalties
// sum within the group and the group multipliers combine multiplicatively.
func EvaluateFactors(req domain.YieldEstimateRequest) FactorResult {
	r := FactorResult{multiplier: 1.0}

	r.applyGrowthStage(req.GrowthStage)
	if req.Weather != nil {
		r.applyWeather(*req.Weather)
	}
	if req.Soil != nil {
		r.applySoil(*req.Soil)
	}
	if req.Irrigation != nil {
		r.applyIrrigation(*req.Irrigation)
	}
	if req.PestDisease != nil {
		r.applyPestDisease(*req.PestDisease)
	}

	return r
}

func (r *FactorResult) add(mult float64, factor, noteFmt string, noteArgs ...interface{}) {
	r.multiplier *= mult
	r.Factors = append(r.Factors, factor)
	r.Adjustments = append(r.Adjustments, Adjustment{
		Percent: (mult - 1) * 100,
		Note:    fmt.Sprintf(noteFmt, noteArgs...),
	})
}

func (r *FactorResult) applyGrowthStage(stage domain.GrowthStage) {
	if stage == "" {
		return
	}
	mult, ok := growthStageMultipliers[stage]
	if !ok || mult == 1.0 {
		if ok {
			r.Factors = append(r.Factors, "Growth stage: "+string(stage))
		}
		return
	}
	r.add(mult, "Growth stage: "+string(stage),
		"Growth stage adjustment (%s): %+.1f%%", stage, (mult-1)*100)
}

func (r *FactorResult) applyWeather(w domain.WeatherObservation) {
	mult := 1.0

	if w.TotalRainfallMm != nil {
		rainfall := *w.TotalRainfallMm
		deviation := math.Abs(rainfall-OptimalRainfallMm) / OptimalRainfallMm * RainfallPenaltyRate
		if rainfall < OptimalRainfallMm {
			penalty := math.Min(deviation, RainfallPenaltyCeiling)
			mult -= penalty
			r.Adjustments = append(r.Adjustments, Adjustment{
				Percent: -penalty * 100,
				Note:    fmt.Sprintf("Below optimal rainfall (%.0fmm): -%.1f%%", rainfall, penalty*100),
			})
		} else {
			bonus := math.Min(deviation, RainfallBonusCeiling)
			mult += bonus
			r.Adjustments = append(r.Adjustments, Adjustment{
				Percent: bonus * 100,
				Note:    fmt.Sprintf("Above optimal rainfall (%.0fmm): +%.1f%%", rainfall, bonus*100),
			})
		}
		r.Factors = append(r.Factors, fmt.Sprintf("Rainfall: %.0fmm", rainfall))
	}

	if w.AvgTemperatureC != nil {
		tempDiff := math.Abs(*w.AvgTemperatureC - OptimalTemperature)
		penalty := math.Min(tempDiff/OptimalTemperature*TemperaturePenaltyRate, TemperaturePenaltyCeiling)
		if penalty > 0 {
			mult -= penalty
			r.Adjustments = append(r.Adjustments, Adjustment{
				Percent: -penalty * 100,
				Note:    fmt.Sprintf("Temperature deviation (%.1f°C): -%.1f%%", tempDiff, penalty*100),
			})
		}
		r.Factors = append(r.Factors, fmt.Sprintf("Temperature: %.1f°C", *w.AvgTemperatureC))
	}

	if w.ExtremeEventsCount > 0 {
		penalty := math.Min(ExtremeEventPenalty*float64(w.ExtremeEventsCount), ExtremeEventPenaltyCeiling)
		mult -= penalty
		r.Adjustments = append(r.Adjustments, Adjustment{
			Percent: -penalty * 100,
			Note:    fmt.Sprintf("Extreme weather events (%d): -%.1f%%", w.ExtremeEventsCount, penalty*100),
		})
		r.Factors = append(r.Factors, fmt.Sprintf("Extreme weather events: %d", w.ExtremeEventsCount))
	}

	r.multiplier *= math.Max(mult, WeatherMultiplierFloor)
}

func (r *FactorResult) applySoil(s domain.SoilObservation) {
	mult := 1.0

	nutrient := func(value *float64, optimal, rate float64, label, unitNote string) {
		if value == nil {
			return
		}
		shortfall := math.Max(optimal-*value, 0)
		penalty := shortfall / optimal * rate
		if penalty > 0 {
			mult -= penalty
			r.Adjustments = append(r.Adjustments, Adjustment{
				Percent: -penalty * 100,
				Note:    fmt.Sprintf("Soil %s (%.0f kg/ha): -%.1f%%", unitNote, *value, penalty*100),
			})
		}
		r.Factors = append(r.Factors, fmt.Sprintf("Soil %s: %.0f kg/ha", label, *value))
	}

	nutrient(s.NitrogenKgHa, OptimalNitrogen, NitrogenPenaltyRate, "N", "nitrogen")
	nutrient(s.PhosphorusKgHa, OptimalPhosphorus, PhosphorusPenaltyRate, "P", "phosphorus")
	nutrient(s.PotassiumKgHa, OptimalPotassium, PotassiumPenaltyRate, "K", "potassium")

	if s.Ph != nil {
		ph := *s.Ph
		var outside float64
		switch {
		case ph < PhBandLow:
			outside = PhBandLow - ph
		case ph > PhBandHigh:
			outside = ph - PhBandHigh
		}
		if outside > 0 {
			penalty := math.Min(outside*PhPenaltyRate, PhPenaltyCeiling)
			mult -= penalty
			r.Adjustments = append(r.Adjustments, Adjustment{
				Percent: -penalty * 100,
				Note:    fmt.Sprintf("Soil pH outside %.1f-%.1f band (%.1f): -%.1f%%", PhBandLow, PhBandHigh, ph, penalty*100),
			})
		}
		r.Factors = append(r.Factors, fmt.Sprintf("Soil pH: %.1f", ph))
	}

	r.multiplier *= math.Max(mult, SoilMultiplierFloor)
}

func (r *FactorResult) applyIrrigation(irr domain.IrrigationObservation) {
	irrType := irr.Type
	if irrType == "" {
		irrType = domain.IrrigationRainfed
	}

	mult, ok := irrigationMultipliers[irrType]
	if !ok {
		mult = 1.0
	}

	if mult != 1.0 {
		r.Adjustments = append(r.Adjustments, Adjustment{
			Percent: (mult - 1) * 100,
			Note:    fmt.Sprintf("Irrigation type (%s): %+.1f%%", irrType, (mult-1)*100),
		})
	}
	r.Factors = append(r.Factors, "Irrigation: "+string(irrType))

	if irr.FrequencyPerWeek != nil &&
		*irr.FrequencyPerWeek >= HighIrrigationFrequencyPerWeek &&
		irrType != domain.IrrigationRainfed {
		mult *= HighFrequencyBonusMultiplier
		r.Adjustments = append(r.Adjustments, Adjustment{
			Percent: (HighFrequencyBonusMultiplier - 1) * 100,
			Note:    fmt.Sprintf("High irrigation frequency (%d/week): +%.0f%%", *irr.FrequencyPerWeek, (HighFrequencyBonusMultiplier-1)*100),
		})
	}

	r.multiplier *= mult
}

func (r *FactorResult) applyPestDisease(pd domain.PestDiseaseObservation) {
	mult := 1.0
	uncontrolled := pd.ControlStatus == domain.ControlOngoing || pd.ControlStatus == domain.ControlSevere

	if pd.PestIncidentCount > 0 {
		penalty := math.Min(PestIncidentPenalty*float64(pd.PestIncidentCount), PestPenaltyCeiling)
		if uncontrolled {
			penalty *= UncontrolledPenaltyFactor
		}
		mult -= penalty
		r.Adjustments = append(r.Adjustments, Adjustment{
			Percent: -penalty * 100,
			Note:    fmt.Sprintf("Pest incidents (%d): -%.1f%%", pd.PestIncidentCount, penalty*100),
		})
		r.Factors = append(r.Factors, fmt.Sprintf("Pest incidents: %d", pd.PestIncidentCount))
	}

	if pd.DiseaseIncidentCount > 0 {
		penalty := math.Min(DiseaseIncidentPenalty*float64(pd.DiseaseIncidentCount), DiseasePenaltyCeiling)
		if uncontrolled {
			penalty *= UncontrolledPenaltyFactor
		}
		mult -= penalty
		r.Adjustments = append(r.Adjustments, Adjustment{
			Percent: -penalty * 100,
			Note:    fmt.Sprintf("Disease incidents (%d): -%.1f%%", pd.DiseaseIncidentCount, penalty*100),
		})
		r.Factors = append(r.Factors, fmt.Sprintf("Disease incidents: %d", pd.DiseaseIncidentCount))
	}

	if pd.AffectedAreaPercent != nil && *pd.AffectedAreaPercent > 0 {
		penalty := *pd.AffectedAreaPercent / 100 * AffectedAreaPenaltyRate
		mult -= penalty
		r.Adjustments = append(r.Adjustments, Adjustment{
			Percent: -penalty * 100,
			Note:    fmt.Sprintf("Affected area (%.1f%%): -%.1f%%", *pd.AffectedAreaPercent, penalty*100),
		})
		r.Factors = append(r.Factors, fmt.Sprintf("Affected area: %.1f%%", *pd.AffectedAreaPercent))
	}

	if pd.ControlStatus != "" {
		r.Factors = append(r.Factors, "Control status: "+string(pd.ControlStatus))
	}

	r.multiplier *= math.Max(mult, PestDiseaseMultiplierFloor)
}
