package testutil

import "testing"

func TestSetupTestDB(t *testing.T) {
	t.Run("enforces foreign keys", func(t *testing.T) {
		db := SetupTestDB(t)

		_, err := db.Exec(
			`INSERT INTO "transaction" (id, investor_id, type, amount, date) VALUES (?, ?, ?, ?, ?)`,
			MakeID(), "00000000-0000-0000-0000-000000000000", "Investment", 100, "2024-01-01",
		)
		if err == nil {
			t.Error("Expected a foreign key violation for an unknown investor")
		}
	})

	t.Run("schema survives sequential statements", func(t *testing.T) {
		db := SetupTestDB(t)

		inv := NewInvestor().Build(t, db)

		// A second connection to :memory: would be a separate empty
		// database; the investor must still be visible here.
		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM investor WHERE id = ?`, inv.ID).Scan(&count); err != nil {
			t.Fatalf("Failed to count investors: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 investor, got %d", count)
		}
	})
}
