package yield

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrosight/agrosight/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestEvaluateFactors_NoObservations(t *testing.T) {
	result := EvaluateFactors(domain.YieldEstimateRequest{})

	assert.InDelta(t, 1.0, result.Multiplier(), 0.0001)
	assert.Empty(t, result.Factors)
	assert.Empty(t, result.Adjustments)
}

func TestEvaluateFactors_GrowthStage(t *testing.T) {
	tests := []struct {
		stage domain.GrowthStage
		want  float64
	}{
		{domain.StageSowing, 0.95},
		{domain.StageGermination, 0.90},
		{domain.StageVegetative, 0.85},
		{domain.StageFlowering, 0.80},
		{domain.StageFruiting, 0.85},
		{domain.StageMaturation, 0.90},
		{domain.StageHarvest, 1.00},
		{domain.GrowthStage("UNKNOWN_STAGE"), 1.00},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			result := EvaluateFactors(domain.YieldEstimateRequest{GrowthStage: tt.stage})
			assert.InDelta(t, tt.want, result.Multiplier(), 0.0001)
		})
	}
}

func TestEvaluateFactors_Rainfall(t *testing.T) {
	tests := []struct {
		name     string
		rainfall float64
		want     float64
	}{
		{"slightly below optimal", 400, 0.98},
		{"half of optimal", 250, 0.95},
		{"zero rainfall", 0, 0.90},
		{"above optimal bonus", 600, 1.02},
		{"bonus capped", 2000, 1.10},
		{"optimal exactly", 500, 1.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateFactors(domain.YieldEstimateRequest{
				Weather: &domain.WeatherObservation{TotalRainfallMm: floatPtr(tt.rainfall)},
			})
			assert.InDelta(t, tt.want, result.Multiplier(), 0.0001)
			assert.NotEmpty(t, result.Factors)
		})
	}
}

func TestEvaluateFactors_Temperature(t *testing.T) {
	// 7 degrees off optimal: 7/28 * 15% = 3.75% penalty
	result := EvaluateFactors(domain.YieldEstimateRequest{
		Weather: &domain.WeatherObservation{AvgTemperatureC: floatPtr(35)},
	})
	assert.InDelta(t, 0.9625, result.Multiplier(), 0.0001)
}

func TestEvaluateFactors_ExtremeEvents(t *testing.T) {
	one := EvaluateFactors(domain.YieldEstimateRequest{
		Weather: &domain.WeatherObservation{ExtremeEventsCount: 1},
	})
	assert.InDelta(t, 0.85, one.Multiplier(), 0.0001)

	// Penalty capped at 30% regardless of count
	many := EvaluateFactors(domain.YieldEstimateRequest{
		Weather: &domain.WeatherObservation{ExtremeEventsCount: 5},
	})
	assert.InDelta(t, 0.70, many.Multiplier(), 0.0001)
}

func TestEvaluateFactors_WeatherFloor(t *testing.T) {
	// Accumulated penalties (10% + 15% + 30% = 55%) hit the 0.5 floor
	result := EvaluateFactors(domain.YieldEstimateRequest{
		Weather: &domain.WeatherObservation{
			TotalRainfallMm:    floatPtr(0),
			AvgTemperatureC:    floatPtr(0),
			ExtremeEventsCount: 5,
		},
	})
	assert.InDelta(t, WeatherMultiplierFloor, result.Multiplier(), 0.0001)
}

func TestEvaluateFactors_SoilNutrients(t *testing.T) {
	// Half the optimal nitrogen: 50% shortfall * 20% = 10% penalty
	result := EvaluateFactors(domain.YieldEstimateRequest{
		Soil: &domain.SoilObservation{NitrogenKgHa: floatPtr(140)},
	})
	assert.InDelta(t, 0.90, result.Multiplier(), 0.0001)

	// Optimal or better contributes nothing
	rich := EvaluateFactors(domain.YieldEstimateRequest{
		Soil: &domain.SoilObservation{
			NitrogenKgHa:   floatPtr(300),
			PhosphorusKgHa: floatPtr(12),
			PotassiumKgHa:  floatPtr(120),
		},
	})
	assert.InDelta(t, 1.0, rich.Multiplier(), 0.0001)
	assert.Len(t, rich.Factors, 3)
}

func TestEvaluateFactors_SoilPh(t *testing.T) {
	tests := []struct {
		name string
		ph   float64
		want float64
	}{
		{"within band", 6.8, 1.00},
		{"band edge low", 6.0, 1.00},
		{"one unit acidic", 5.0, 0.90},
		{"alkaline capped", 9.9, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateFactors(domain.YieldEstimateRequest{
				Soil: &domain.SoilObservation{Ph: floatPtr(tt.ph)},
			})
			assert.InDelta(t, tt.want, result.Multiplier(), 0.0001)
		})
	}
}

func TestEvaluateFactors_Irrigation(t *testing.T) {
	tests := []struct {
		name string
		irr  domain.IrrigationObservation
		want float64
	}{
		{"rainfed", domain.IrrigationObservation{Type: domain.IrrigationRainfed}, 0.85},
		{"drip", domain.IrrigationObservation{Type: domain.IrrigationDrip}, 1.15},
		{"sprinkler", domain.IrrigationObservation{Type: domain.IrrigationSprinkler}, 1.10},
		{"canal", domain.IrrigationObservation{Type: domain.IrrigationCanal}, 1.05},
		{"borewell", domain.IrrigationObservation{Type: domain.IrrigationBorewell}, 1.08},
		{"empty type treated as rainfed", domain.IrrigationObservation{}, 0.85},
		{"frequent drip gets bonus", domain.IrrigationObservation{Type: domain.IrrigationDrip, FrequencyPerWeek: intPtr(4)}, 1.15 * 1.05},
		{"frequent rainfed gets no bonus", domain.IrrigationObservation{Type: domain.IrrigationRainfed, FrequencyPerWeek: intPtr(5)}, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateFactors(domain.YieldEstimateRequest{Irrigation: &tt.irr})
			assert.InDelta(t, tt.want, result.Multiplier(), 0.0001)
		})
	}
}

func TestEvaluateFactors_PestDisease(t *testing.T) {
	controlled := EvaluateFactors(domain.YieldEstimateRequest{
		PestDisease: &domain.PestDiseaseObservation{
			PestIncidentCount: 2,
			ControlStatus:     domain.ControlControlled,
		},
	})
	assert.InDelta(t, 0.90, controlled.Multiplier(), 0.0001)

	// Uncontrolled outbreaks double the penalty
	ongoing := EvaluateFactors(domain.YieldEstimateRequest{
		PestDisease: &domain.PestDiseaseObservation{
			PestIncidentCount: 2,
			ControlStatus:     domain.ControlOngoing,
		},
	})
	assert.InDelta(t, 0.80, ongoing.Multiplier(), 0.0001)

	affected := EvaluateFactors(domain.YieldEstimateRequest{
		PestDisease: &domain.PestDiseaseObservation{
			AffectedAreaPercent: floatPtr(50),
		},
	})
	assert.InDelta(t, 0.85, affected.Multiplier(), 0.0001)
}

func TestEvaluateFactors_GroupsCombineMultiplicatively(t *testing.T) {
	result := EvaluateFactors(domain.YieldEstimateRequest{
		GrowthStage: domain.StageFlowering, // 0.80
		Weather: &domain.WeatherObservation{
			TotalRainfallMm: floatPtr(400), // 0.98
		},
		Irrigation: &domain.IrrigationObservation{
			Type: domain.IrrigationDrip, // 1.15
		},
	})

	assert.InDelta(t, 0.80*0.98*1.15, result.Multiplier(), 0.0001)
	assert.Len(t, result.AdjustmentNotes(), 3)
}
