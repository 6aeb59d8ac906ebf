package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes). The pragma
	// rides on the DSN so it applies to the connection itself, not to
	// whichever pooled connection a plain Exec would land on.
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Every connection to :memory: is its own empty database, so the
	// fixture must never grow a second one.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Investor table
		CREATE TABLE investor (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			code VARCHAR(4) NOT NULL UNIQUE COLLATE NOCASE,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255),
			join_date DATE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Ledger table (quoted because transaction is a reserved keyword)
		CREATE TABLE "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			investor_id VARCHAR(36) NOT NULL,
			type VARCHAR(10) NOT NULL,
			amount FLOAT NOT NULL,
			date DATE NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE
		);

		CREATE INDEX idx_transaction_investor ON "transaction"(investor_id);
		CREATE INDEX idx_transaction_date ON "transaction"(date);

		-- Portfolio asset table (manual holdings)
		CREATE TABLE asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(10) NOT NULL UNIQUE,
			name VARCHAR(100) NOT NULL,
			quantity FLOAT NOT NULL,
			risk_level VARCHAR(6) NOT NULL,
			target_allocation FLOAT NOT NULL DEFAULT 0
		);

		-- Performance sample table (one row per sampling day)
		CREATE TABLE performance_sample (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			date DATE NOT NULL UNIQUE,
			portfolio_value FLOAT NOT NULL,
			cumulative_return_percent FLOAT NOT NULL
		);

		-- System setting table
		CREATE TABLE system_setting (
			"key" VARCHAR(50) NOT NULL PRIMARY KEY,
			value VARCHAR(1000) NOT NULL,
			updated_at DATETIME
		);
	`

	_, err := db.Exec(schema)
	return err
}
