package handler

import (
	"net/http"
	"time"

	"github.com/agrosight/agrosight/internal/domain"
	"github.com/agrosight/agrosight/internal/logger"
	"github.com/agrosight/agrosight/internal/yield"
)

// EstimateYieldRequest is the body of POST /api/v1/yield/estimate
type EstimateYieldRequest struct {
	FarmerID    string    `json:"farmer_id" validate:"required,max=100"`
	CropID      string    `json:"crop_id" validate:"required,max=100"`
	CropName    string    `json:"crop_name" validate:"required,max=100"`
	CropVariety string    `json:"crop_variety,omitempty" validate:"omitempty,max=100"`
	SowingDate  time.Time `json:"sowing_date"`
	AreaAcres   *float64  `json:"area_acres,omitempty" validate:"omitempty,gt=0"`
	GrowthStage string    `json:"growth_stage,omitempty" validate:"omitempty,growthstage"`

	Weather     *domain.WeatherObservation     `json:"weather,omitempty"`
	Soil        *domain.SoilObservation        `json:"soil,omitempty"`
	Irrigation  *domain.IrrigationObservation  `json:"irrigation,omitempty"`
	PestDisease *domain.PestDiseaseObservation `json:"pest_disease,omitempty"`

	InputCostPerQuintal        *float64 `json:"input_cost_per_quintal,omitempty" validate:"omitempty,gte=0"`
	IncludeFinancialProjection bool     `json:"include_financial_projection,omitempty"`
	IncludeHistoricalData      bool     `json:"include_historical_data,omitempty"`
}

func (r EstimateYieldRequest) toDomain() domain.YieldEstimateRequest {
	return domain.YieldEstimateRequest{
		FarmerID:                   r.FarmerID,
		CropID:                     r.CropID,
		CropName:                   r.CropName,
		CropVariety:                r.CropVariety,
		SowingDate:                 r.SowingDate,
		AreaAcres:                  r.AreaAcres,
		GrowthStage:                domain.GrowthStage(r.GrowthStage),
		Weather:                    r.Weather,
		Soil:                       r.Soil,
		Irrigation:                 r.Irrigation,
		PestDisease:                r.PestDisease,
		InputCostPerQuintal:        r.InputCostPerQuintal,
		IncludeFinancialProjection: r.IncludeFinancialProjection,
		IncludeHistoricalData:      r.IncludeHistoricalData,
	}
}

// RecordActualRequest is the body of POST /api/v1/yield/actual
type RecordActualRequest struct {
	CropID              string    `json:"crop_id" validate:"required,max=100"`
	FarmerID            string    `json:"farmer_id" validate:"required,max=100"`
	ActualYieldQuintals *float64  `json:"actual_yield_quintals" validate:"required,gte=0"`
	HarvestDate         time.Time `json:"harvest_date"`
	QualityGrade        string    `json:"quality_grade,omitempty" validate:"omitempty,max=20"`
	SellingPricePerQtl  *float64  `json:"selling_price_per_quintal,omitempty" validate:"omitempty,gte=0"`
	MandiName           string    `json:"mandi_name,omitempty" validate:"omitempty,max=100"`
}

// MarkNotifiedRequest is the body of POST /api/v1/yield/notified
type MarkNotifiedRequest struct {
	PredictionID string `json:"prediction_id" validate:"required,uuid"`
}

// HandleEstimateYield produces a new yield prediction for a crop
func HandleEstimateYield(svc yield.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EstimateYieldRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Estimate yield"); err != nil {
			return
		}

		resp, err := svc.Estimate(r.Context(), req.toDomain())
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgEstimateFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleRecordActual settles the latest prediction with the harvest outcome
func HandleRecordActual(svc yield.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RecordActualRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Record actual yield"); err != nil {
			return
		}

		harvestDate := req.HarvestDate
		if harvestDate.IsZero() {
			harvestDate = time.Now()
		}

		result, err := svc.RecordActual(r.Context(), domain.ActualYieldRecord{
			CropID:              req.CropID,
			FarmerID:            req.FarmerID,
			ActualYieldQuintals: *req.ActualYieldQuintals,
			HarvestDate:         harvestDate,
			QualityGrade:        req.QualityGrade,
			SellingPricePerQtl:  req.SellingPricePerQtl,
			MandiName:           req.MandiName,
		})
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgRecordActualFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleYieldHistory returns the prediction history for a crop
func HandleYieldHistory(svc yield.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cropID, ok := GetQueryParam(r, w, "crop_id")
		if !ok {
			return
		}

		history, err := svc.GetHistory(r.Context(), cropID)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetHistoryFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, history)
	}
}

// HandleMarkNotified records that a deviation notification went out
func HandleMarkNotified(svc yield.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MarkNotifiedRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Mark notified"); err != nil {
			return
		}

		if err := svc.MarkNotified(r.Context(), req.PredictionID); err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgMarkNotifiedFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Notification recorded"})
	}
}
