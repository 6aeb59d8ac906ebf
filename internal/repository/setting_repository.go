package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// SettingRepository provides data access methods for the system_setting
// table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting by key.
func (r *SettingRepository) GetSetting(key string) (model.Setting, error) {
	query := `
		SELECT "key", value, updated_at
		FROM system_setting
		WHERE "key" = ?
	`

	var s model.Setting
	err := r.db.QueryRow(query, key).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Setting{}, apperrors.ErrSettingNotFound
	}
	if err != nil {
		return model.Setting{}, fmt.Errorf("failed to query setting: %w", err)
	}

	return s, nil
}

// SetSetting inserts or replaces a setting value.
func (r *SettingRepository) SetSetting(key, value string) error {
	query := `
		INSERT INTO system_setting ("key", value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}

	return nil
}
