package handlers

import (
	"net/http"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/response"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/service"
)

// PerformanceHandler handles HTTP requests for the fund's historical
// value series and derived monthly returns.
type PerformanceHandler struct {
	performanceService *service.PerformanceService
}

// NewPerformanceHandler creates a new PerformanceHandler with the provided service dependency.
func NewPerformanceHandler(performanceService *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: performanceService,
	}
}

// Samples handles GET requests for the full performance sample series in
// chronological order.
//
// Endpoint: GET /api/performance
// Response: 200 OK with array of PerformanceSample
// Error: 500 Internal Server Error if retrieval fails
func (h *PerformanceHandler) Samples(w http.ResponseWriter, _ *http.Request) {
	samples, err := h.performanceService.GetSamples()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePerformance.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, samples)
}

// Monthly handles GET requests for the last twelve calendar months of
// portfolio returns, oldest month first.
//
// Endpoint: GET /api/performance/monthly
// Response: 200 OK with array of MonthlyReturn
// Error: 500 Internal Server Error if retrieval fails
func (h *PerformanceHandler) Monthly(w http.ResponseWriter, _ *http.Request) {
	returns, err := h.performanceService.MonthlyReturns()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePerformance.Error(), err.Error())
		return
	}

	rounded := make([]model.MonthlyReturn, 0, len(returns))
	for _, m := range returns {
		rounded = append(rounded, model.MonthlyReturn{
			Month:  m.Month,
			Return: service.Round(m.Return),
		})
	}

	response.RespondJSON(w, http.StatusOK, rounded)
}
