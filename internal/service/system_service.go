package service

import (
	"database/sql"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/database"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// AppVersion is the application release version.
const AppVersion = "1.0.0"

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version and the current migration
// level of the database.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	var dbVersion string
	err := s.db.QueryRow(
		"SELECT COALESCE(MAX(version_id), 0) FROM goose_db_version",
	).Scan(&dbVersion)
	if err != nil {
		return model.VersionInfo{}, err
	}

	return model.VersionInfo{
		AppVersion: AppVersion,
		DbVersion:  dbVersion,
	}, nil
}
