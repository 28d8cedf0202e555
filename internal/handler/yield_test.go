package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/agrosight/agrosight/internal/domain"
)

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func validEstimateBody() map[string]any {
	return map[string]any{
		"farmer_id": "farmer-1",
		"crop_id":   "crop-1",
		"crop_name": "Wheat",
	}
}

func TestHandleEstimateYield_Success(t *testing.T) {
	svc := new(MockYieldService)
	svc.On("Estimate", mock.Anything, mock.MatchedBy(func(req domain.YieldEstimateRequest) bool {
		return req.CropID == "crop-1" && req.CropName == "Wheat"
	})).Return(&domain.YieldEstimateResponse{
		PredictionID:      "pred-1",
		CropID:            "crop-1",
		FarmerID:          "farmer-1",
		CropName:          "Wheat",
		AreaAcres:         1,
		PerAcre:           domain.YieldRange{Min: 17, Expected: 20, Max: 23},
		Total:             domain.YieldRange{Min: 17, Expected: 20, Max: 23},
		ConfidencePercent: 85,
	}, nil)

	rec := postJSON(t, HandleEstimateYield(svc), "/api/v1/yield/estimate", validEstimateBody())

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.YieldEstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "pred-1", resp.PredictionID)
	assert.Equal(t, 20.0, resp.PerAcre.Expected)
	svc.AssertExpectations(t)
}

func TestHandleEstimateYield_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      map[string]any
		wantField string
	}{
		{
			name:      "missing farmer_id",
			body:      map[string]any{"crop_id": "crop-1", "crop_name": "Wheat"},
			wantField: "farmer_id",
		},
		{
			name:      "missing crop_name",
			body:      map[string]any{"farmer_id": "farmer-1", "crop_id": "crop-1"},
			wantField: "crop_name",
		},
		{
			name: "zero area",
			body: map[string]any{
				"farmer_id": "farmer-1", "crop_id": "crop-1", "crop_name": "Wheat",
				"area_acres": 0,
			},
			wantField: "area_acres",
		},
		{
			name: "unknown growth stage",
			body: map[string]any{
				"farmer_id": "farmer-1", "crop_id": "crop-1", "crop_name": "Wheat",
				"growth_stage": "BLOOMING",
			},
			wantField: "growth_stage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockYieldService)

			rec := postJSON(t, HandleEstimateYield(svc), "/api/v1/yield/estimate", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ValidationErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Contains(t, resp.Fields, tt.wantField)
			svc.AssertNotCalled(t, "Estimate")
		})
	}
}

func TestHandleEstimateYield_MalformedBody(t *testing.T) {
	svc := new(MockYieldService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/yield/estimate", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	HandleEstimateYield(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Estimate")
}

func TestHandleEstimateYield_UnknownCommodity(t *testing.T) {
	svc := new(MockYieldService)
	svc.On("Estimate", mock.Anything, mock.Anything).
		Return(nil, domain.ErrCommodityNotConfigured)

	rec := postJSON(t, HandleEstimateYield(svc), "/api/v1/yield/estimate", validEstimateBody())

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestHandleEstimateYield_WrappedServiceError(t *testing.T) {
	svc := new(MockYieldService)
	svc.On("Estimate", mock.Anything, mock.Anything).
		Return(nil, errors.New("failed to save prediction: connection refused"))

	rec := postJSON(t, HandleEstimateYield(svc), "/api/v1/yield/estimate", validEstimateBody())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleRecordActual_Success(t *testing.T) {
	svc := new(MockYieldService)
	svc.On("RecordActual", mock.Anything, mock.MatchedBy(func(rec domain.ActualYieldRecord) bool {
		return rec.CropID == "crop-1" && rec.ActualYieldQuintals == 55 && !rec.HarvestDate.IsZero()
	})).Return(&domain.VarianceResult{
		PredictionID:      "pred-1",
		CropID:            "crop-1",
		PredictedExpected: 50,
		ActualYield:       55,
		VarianceQuintals:  5,
		VariancePercent:   10,
		Category:          domain.VariancePositive,
	}, nil)

	rec := postJSON(t, HandleRecordActual(svc), "/api/v1/yield/actual", map[string]any{
		"farmer_id":             "farmer-1",
		"crop_id":               "crop-1",
		"actual_yield_quintals": 55,
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.VarianceResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 10.0, resp.VariancePercent)
	assert.Equal(t, domain.VariancePositive, resp.Category)
	svc.AssertExpectations(t)
}

func TestHandleRecordActual_MissingYield(t *testing.T) {
	svc := new(MockYieldService)

	rec := postJSON(t, HandleRecordActual(svc), "/api/v1/yield/actual", map[string]any{
		"farmer_id": "farmer-1",
		"crop_id":   "crop-1",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "actual_yield_quintals")
	svc.AssertNotCalled(t, "RecordActual")
}

func TestHandleRecordActual_ZeroYieldAllowed(t *testing.T) {
	// A failed harvest of 0 quintals is a legitimate outcome.
	svc := new(MockYieldService)
	svc.On("RecordActual", mock.Anything, mock.MatchedBy(func(rec domain.ActualYieldRecord) bool {
		return rec.ActualYieldQuintals == 0
	})).Return(&domain.VarianceResult{Category: domain.VarianceNegative, VariancePercent: -100}, nil)

	rec := postJSON(t, HandleRecordActual(svc), "/api/v1/yield/actual", map[string]any{
		"farmer_id":             "farmer-1",
		"crop_id":               "crop-1",
		"actual_yield_quintals": 0,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleRecordActual_ConflictErrors(t *testing.T) {
	tests := []struct {
		name   string
		svcErr error
	}{
		{name: "no prior prediction", svcErr: domain.ErrNoPriorPrediction},
		{name: "already recorded", svcErr: domain.ErrActualAlreadyRecorded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockYieldService)
			svc.On("RecordActual", mock.Anything, mock.Anything).Return(nil, tt.svcErr)

			rec := postJSON(t, HandleRecordActual(svc), "/api/v1/yield/actual", map[string]any{
				"farmer_id":             "farmer-1",
				"crop_id":               "crop-1",
				"actual_yield_quintals": 40,
			})

			assert.Equal(t, http.StatusConflict, rec.Code)
		})
	}
}

func TestHandleYieldHistory(t *testing.T) {
	svc := new(MockYieldService)
	svc.On("GetHistory", mock.Anything, "crop-1").Return([]domain.YieldPrediction{
		{ID: "pred-2", CropID: "crop-1"},
		{ID: "pred-1", CropID: "crop-1"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/yield/history?crop_id=crop-1", nil)
	rec := httptest.NewRecorder()
	HandleYieldHistory(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var history []domain.YieldPrediction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history, 2)
	assert.Equal(t, "pred-2", history[0].ID)
}

func TestHandleYieldHistory_MissingCropID(t *testing.T) {
	svc := new(MockYieldService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/yield/history", nil)
	rec := httptest.NewRecorder()
	HandleYieldHistory(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "GetHistory")
}

func TestHandleMarkNotified(t *testing.T) {
	predictionID := "0d2c8e34-1a7b-4b7e-9f7d-0f6f4f3a2b1c"

	svc := new(MockYieldService)
	svc.On("MarkNotified", mock.Anything, predictionID).Return(nil)

	rec := postJSON(t, HandleMarkNotified(svc), "/api/v1/yield/notified", map[string]any{
		"prediction_id": predictionID,
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandleMarkNotified_InvalidID(t *testing.T) {
	svc := new(MockYieldService)

	rec := postJSON(t, HandleMarkNotified(svc), "/api/v1/yield/notified", map[string]any{
		"prediction_id": "not-a-uuid",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "MarkNotified")
}

func TestHandleMarkNotified_NotFound(t *testing.T) {
	predictionID := "0d2c8e34-1a7b-4b7e-9f7d-0f6f4f3a2b1c"

	svc := new(MockYieldService)
	svc.On("MarkNotified", mock.Anything, predictionID).Return(domain.ErrPredictionNotFound)

	rec := postJSON(t, HandleMarkNotified(svc), "/api/v1/yield/notified", map[string]any{
		"prediction_id": predictionID,
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
