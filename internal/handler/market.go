package handler

import (
	"net/http"
	"strconv"

	"github.com/agrosight/agrosight/internal/logger"
	"github.com/agrosight/agrosight/internal/market"
)

// HandleMarketTrend returns the full price report for a commodity
func HandleMarketTrend(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commodity, ok := GetQueryParam(r, w, "commodity")
		if !ok {
			return
		}

		days, err := strconv.Atoi(GetOptionalQueryParam(r, "days", "0"))
		if err != nil || days < 0 {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
			return
		}

		report, svcErr := svc.GetPriceTrend(r.Context(), commodity, days)
		if svcErr != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetTrendFailed, "error", svcErr)
			status, msg := mapServiceErrorToUserMessage(svcErr)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, report)
	}
}

// HandleMspComparison positions the market price against the MSP reference
func HandleMspComparison(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commodity, ok := GetQueryParam(r, w, "commodity")
		if !ok {
			return
		}

		cmp, err := svc.CompareMsp(r.Context(), commodity)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetMspFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, cmp)
	}
}

// HandleStorageAdvisory recommends holding or selling a commodity
func HandleStorageAdvisory(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commodity, ok := GetQueryParam(r, w, "commodity")
		if !ok {
			return
		}

		advisory, err := svc.GetStorageAdvisory(r.Context(), commodity)
		if err != nil {
			logger.FromContext(r.Context()).Error(ErrMsgGetAdvisoryFailed, "error", err)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, advisory)
	}
}
