package handlers

import (
	"net/http"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/response"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/service"
)

// FundHandler handles HTTP requests for fund-level aggregate endpoints.
type FundHandler struct {
	valuationService *service.ValuationService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(valuationService *service.ValuationService) *FundHandler {
	return &FundHandler{
		valuationService: valuationService,
	}
}

// Summary handles GET requests for the fund-level aggregate view: assets
// under management, net inflows, overall return and the count of
// investors with a positive net position.
//
// Endpoint: GET /api/fund/summary
// Response: 200 OK with FundSummary
// Error: 500 Internal Server Error if aggregation fails
func (h *FundHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.valuationService.GetFundSummary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetFundSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, model.FundSummary{
		TotalAUM:            service.Round(summary.TotalAUM),
		NetInflows:          service.Round(summary.NetInflows),
		TotalReturn:         service.Round(summary.TotalReturn),
		CapitalAppreciation: service.Round(summary.CapitalAppreciation),
		ActiveInvestorCount: summary.ActiveInvestorCount,
	})
}

// Risk handles GET requests for the portfolio risk distribution: the
// percentage of current portfolio value held in each risk tier. Every
// tier is present in the response even when its share is zero.
//
// Endpoint: GET /api/fund/risk
// Response: 200 OK with map of tier name to percentage
func (h *FundHandler) Risk(w http.ResponseWriter, _ *http.Request) {
	distribution := h.valuationService.GetRiskDistribution()

	rounded := make(map[string]float64, len(distribution))
	for tier, pct := range distribution {
		rounded[tier] = service.Round(pct)
	}

	response.RespondJSON(w, http.StatusOK, rounded)
}
