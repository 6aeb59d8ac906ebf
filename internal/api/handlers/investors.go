package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/request"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/response"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/service"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/validation"
)

// InvestorHandler handles HTTP requests for investor endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the investor, valuation and ledger services.
type InvestorHandler struct {
	investorService  *service.InvestorService
	valuationService *service.ValuationService
	ledgerService    *service.LedgerService
}

// NewInvestorHandler creates a new InvestorHandler with the provided service dependencies.
func NewInvestorHandler(
	investorService *service.InvestorService,
	valuationService *service.ValuationService,
	ledgerService *service.LedgerService,
) *InvestorHandler {
	return &InvestorHandler{
		investorService:  investorService,
		valuationService: valuationService,
		ledgerService:    ledgerService,
	}
}

// InvestorMetricsResponse is the wire shape of a single investor summary.
// Monetary and percentage fields are rounded to two decimals here, at the
// edge, so internal computations keep full precision.
type InvestorMetricsResponse struct {
	Investor            model.Investor `json:"investor"`
	InitialInvestment   float64        `json:"initialInvestment"`
	CurrentValue        float64        `json:"currentValue"`
	SharePercentage     float64        `json:"sharePercentage"`
	CapitalAppreciation float64        `json:"capitalAppreciation"`
	TotalReturn         float64        `json:"totalReturn"`
	AnnualizedReturn    float64        `json:"annualizedReturn"`
}

func toMetricsResponse(m model.InvestorMetrics) InvestorMetricsResponse {
	return InvestorMetricsResponse{
		Investor:            m.Investor,
		InitialInvestment:   service.Round(m.InitialInvestment),
		CurrentValue:        service.Round(m.CurrentValue),
		SharePercentage:     service.Round(m.SharePercentage),
		CapitalAppreciation: service.Round(m.CapitalAppreciation),
		TotalReturn:         service.Round(m.TotalReturn),
		AnnualizedReturn:    service.Round(m.AnnualizedReturn),
	}
}

// Investors handles GET requests to retrieve all investors with their
// derived metrics against the current portfolio snapshot.
//
// Endpoint: GET /api/investors
// Response: 200 OK with array of InvestorMetricsResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) Investors(w http.ResponseWriter, _ *http.Request) {
	metrics, err := h.valuationService.GetInvestorMetrics()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	result := make([]InvestorMetricsResponse, 0, len(metrics))
	for _, m := range metrics {
		result = append(result, toMetricsResponse(m))
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// GetInvestor handles GET requests to retrieve a single investor with
// derived metrics.
//
// Endpoint: GET /api/investors/{uuid}
// Response: 200 OK with InvestorMetricsResponse
// Error: 400 Bad Request if investor ID is invalid (validated by middleware)
// Error: 404 Not Found if investor not found
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) GetInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	metrics, err := h.valuationService.GetInvestorMetricsOnID(investorID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, toMetricsResponse(metrics))
}

// GetInvestorOnCode handles GET requests to look up an investor by their
// external code. The lookup is case-insensitive.
//
// Endpoint: GET /api/investors/code/{code}
// Response: 200 OK with Investor
// Error: 404 Not Found if no investor carries the code
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) GetInvestorOnCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	investor, err := h.investorService.GetInvestorOnCode(code)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investor)
}

// CreateInvestor handles POST requests to register a new investor.
// A unique investor code is generated from the display name initials.
//
// Endpoint: POST /api/investors
// Request Body: CreateInvestorRequest (name, email, joinDate)
// Response: 201 Created with Investor
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the generated code collides with an existing one
// Error: 500 Internal Server Error if creation fails
func (h *InvestorHandler) CreateInvestor(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestor(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	joinDate := time.Now().UTC()
	if req.JoinDate != "" {
		joinDate, _ = validation.ParseTime(req.JoinDate)
	}

	investor, err := h.investorService.CreateInvestor(req.Name, req.Email, joinDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create investor", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, investor)
}

// DeleteInvestor handles DELETE requests to remove an investor. Their
// ledger transactions are removed by the database cascade.
//
// Endpoint: DELETE /api/investors/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if investor ID is invalid (validated by middleware)
// Error: 404 Not Found if investor not found
// Error: 500 Internal Server Error if deletion fails
func (h *InvestorHandler) DeleteInvestor(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	if err := h.investorService.DeleteInvestor(investorID); err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete investor", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// InvestorTransactions handles GET requests for an investor's ledger
// history in chronological order.
//
// Endpoint: GET /api/investors/{uuid}/transactions
// Response: 200 OK with array of Transaction
// Error: 400 Bad Request if investor ID is invalid (validated by middleware)
// Error: 404 Not Found if investor not found
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestorHandler) InvestorTransactions(w http.ResponseWriter, r *http.Request) {
	investorID := chi.URLParam(r, "uuid")

	if _, err := h.investorService.GetInvestorOnID(investorID); err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestors.Error(), err.Error())
		return
	}

	transactions, err := h.ledgerService.GetTransactionsOnInvestorID(investorID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}
