package model

import "time"

// Setting is one row of the system_setting table. Secret values (provider
// API keys) are stored as fernet tokens, never in the clear.
type Setting struct {
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// VersionInfo contains version information for the application.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	DbVersion  string `json:"db_version"`
}
