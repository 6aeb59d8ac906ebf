package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/request"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/response"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/service"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/validation"
)

// defaultRecentLimit bounds the recent-transactions feed when no limit
// query parameter is given.
const defaultRecentLimit = 10

// TransactionHandler handles HTTP requests for ledger transaction endpoints.
type TransactionHandler struct {
	ledgerService *service.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(ledgerService *service.LedgerService) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
	}
}

// CreateTransaction handles POST requests to append a cash-flow event to
// the ledger.
//
// Endpoint: POST /api/transactions
// Request Body: CreateTransactionRequest (investorId, type, amount, date)
// Response: 201 Created with Transaction
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the investor does not exist
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, err := validation.ParseTime(req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.ledgerService.RecordTransaction(req.InvestorID, req.Type, req.Amount, date)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvestorNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestorNotFound.Error(), nil)
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrInvalidTransactionType):
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// RecentTransactions handles GET requests for the most recent ledger
// entries across all investors, newest first, enriched with investor
// code and name.
//
// Endpoint: GET /api/transactions/recent?limit=n
// Response: 200 OK with array of TransactionResponse
// Error: 400 Bad Request if limit is not a positive integer
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) RecentTransactions(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	transactions, err := h.ledgerService.RecentTransactions(limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}
