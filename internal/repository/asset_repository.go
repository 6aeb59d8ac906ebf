package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// AssetRepository provides data access methods for the asset table, the
// manually managed portfolio holdings.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// GetAssets retrieves all portfolio holdings ordered by symbol.
func (r *AssetRepository) GetAssets() ([]model.Asset, error) {
	query := `
		SELECT id, symbol, name, quantity, risk_level, target_allocation
		FROM asset
		ORDER BY symbol
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}

	for rows.Next() {
		var a model.Asset

		err := rows.Scan(
			&a.ID,
			&a.Symbol,
			&a.Name,
			&a.Quantity,
			&a.RiskLevel,
			&a.TargetAllocation,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}

		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAssetOnID retrieves a single holding by ID.
func (r *AssetRepository) GetAssetOnID(assetID string) (model.Asset, error) {
	query := `
		SELECT id, symbol, name, quantity, risk_level, target_allocation
		FROM asset
		WHERE id = ?
	`

	var a model.Asset
	err := r.db.QueryRow(query, assetID).Scan(
		&a.ID,
		&a.Symbol,
		&a.Name,
		&a.Quantity,
		&a.RiskLevel,
		&a.TargetAllocation,
	)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset: %w", err)
	}

	return a, nil
}

// CreateAsset inserts a new holding. The symbol is stored uppercase and
// must be unique within the portfolio.
func (r *AssetRepository) CreateAsset(a model.Asset) error {
	query := `
		INSERT INTO asset (id, symbol, name, quantity, risk_level, target_allocation)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, a.ID, strings.ToUpper(a.Symbol), a.Name, a.Quantity, a.RiskLevel, a.TargetAllocation)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// UpdateAsset replaces a holding's mutable fields.
func (r *AssetRepository) UpdateAsset(a model.Asset) error {
	query := `
		UPDATE asset
		SET name = ?, quantity = ?, risk_level = ?, target_allocation = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, a.Name, a.Quantity, a.RiskLevel, a.TargetAllocation, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}

// DeleteAsset removes a holding.
func (r *AssetRepository) DeleteAsset(assetID string) error {
	result, err := r.db.Exec("DELETE FROM asset WHERE id = ?", assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return nil
}
