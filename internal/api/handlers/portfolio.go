package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/request"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/response"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/service"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/snapshot"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/validation"
)

// PortfolioHandler handles HTTP requests for the priced portfolio and the
// manually managed asset list behind it.
type PortfolioHandler struct {
	snapshots      *snapshot.Store
	assetService   *service.AssetService
	refreshService *service.RefreshService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided dependencies.
func NewPortfolioHandler(
	snapshots *snapshot.Store,
	assetService *service.AssetService,
	refreshService *service.RefreshService,
) *PortfolioHandler {
	return &PortfolioHandler{
		snapshots:      snapshots,
		assetService:   assetService,
		refreshService: refreshService,
	}
}

// RefreshSummaryResponse is the condensed view of a just-built snapshot.
type RefreshSummaryResponse struct {
	TotalValue float64   `json:"totalValue"`
	AssetCount int       `json:"assetCount"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// Portfolio handles GET requests for the current priced portfolio
// snapshot, including per-asset prices, values, risk levels and the
// wallet attribution of discovered balances.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with PortfolioSnapshot
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.snapshots.Current())
}

// CreateAsset handles POST requests to add a manual portfolio holding.
//
// Endpoint: POST /api/portfolio/assets
// Request Body: AssetRequest (symbol, name, quantity, riskLevel, targetAllocation)
// Response: 201 Created with Asset
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if an asset with the same symbol already exists
// Error: 500 Internal Server Error if creation fails
func (h *PortfolioHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAsset(req, true); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.CreateAsset(req.Symbol, req.Name, req.Quantity, req.RiskLevel, req.TargetAllocation)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidQuantity) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidQuantity.Error(), nil)
			return
		}
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateEntry.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset handles PUT requests to modify a manual holding. The symbol
// is immutable; name, quantity, risk level and target allocation can change.
//
// Endpoint: PUT /api/portfolio/assets/{uuid}
// Request Body: AssetRequest
// Response: 200 OK with Asset
// Error: 400 Bad Request if validation fails or asset ID is invalid
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if update fails
func (h *PortfolioHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.AssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAsset(req, false); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.assetService.UpdateAsset(assetID, req.Name, req.Quantity, req.RiskLevel, req.TargetAllocation)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidQuantity) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidQuantity.Error(), nil)
			return
		}
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// DeleteAsset handles DELETE requests to remove a manual holding.
//
// Endpoint: DELETE /api/portfolio/assets/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if asset ID is invalid (validated by middleware)
// Error: 404 Not Found if asset not found
// Error: 500 Internal Server Error if deletion fails
func (h *PortfolioHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	if err := h.assetService.DeleteAsset(assetID); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete asset", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Refresh handles POST requests to rebuild the portfolio snapshot
// immediately instead of waiting for the next scheduled run.
//
// Endpoint: POST /api/portfolio/refresh
// Response: 200 OK with RefreshSummaryResponse
// Error: 500 Internal Server Error if the refresh fails outright
func (h *PortfolioHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	snap, err := h.refreshService.Refresh(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to refresh portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, RefreshSummaryResponse{
		TotalValue: snap.TotalValue,
		AssetCount: len(snap.Assets),
		FetchedAt:  snap.FetchedAt,
	})
}
