package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/repository"
)

// AssetService manages the manually maintained portfolio holdings.
// Quantities stored here act as the baseline; wallet discovery may
// supersede them for the same symbol during a refresh.
type AssetService struct {
	assetRepo *repository.AssetRepository
}

// NewAssetService creates a new AssetService.
func NewAssetService(assetRepo *repository.AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo}
}

// GetAssets returns all manually managed assets ordered by symbol.
func (s *AssetService) GetAssets() ([]model.Asset, error) {
	return s.assetRepo.GetAssets()
}

// CreateAsset adds a manual holding. The symbol is normalized to uppercase
// and the risk level defaults to the built-in categorization when omitted.
func (s *AssetService) CreateAsset(symbol, name string, quantity float64, riskLevel string, targetAllocation float64) (model.Asset, error) {
	if quantity < 0 {
		return model.Asset{}, apperrors.ErrInvalidQuantity
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if riskLevel == "" {
		riskLevel = CategorizeRisk(symbol)
	}

	asset := model.Asset{
		ID:               uuid.New().String(),
		Symbol:           symbol,
		Name:             name,
		Quantity:         quantity,
		RiskLevel:        riskLevel,
		TargetAllocation: targetAllocation,
	}

	if err := s.assetRepo.CreateAsset(asset); err != nil {
		return model.Asset{}, err
	}
	return asset, nil
}

// UpdateAsset replaces the mutable fields of an existing holding. The
// symbol is immutable after creation.
func (s *AssetService) UpdateAsset(assetID, name string, quantity float64, riskLevel string, targetAllocation float64) (model.Asset, error) {
	if quantity < 0 {
		return model.Asset{}, apperrors.ErrInvalidQuantity
	}

	asset, err := s.assetRepo.GetAssetOnID(assetID)
	if err != nil {
		return model.Asset{}, err
	}

	asset.Name = name
	asset.Quantity = quantity
	if riskLevel != "" {
		asset.RiskLevel = riskLevel
	}
	asset.TargetAllocation = targetAllocation

	if err := s.assetRepo.UpdateAsset(asset); err != nil {
		return model.Asset{}, err
	}
	return asset, nil
}

// DeleteAsset removes a manual holding. The asset disappears from the
// portfolio on the next refresh unless wallet discovery still finds it.
func (s *AssetService) DeleteAsset(assetID string) error {
	return s.assetRepo.DeleteAsset(assetID)
}
