package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/snapshot"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/testutil"
)

func setupInvestorHandler(t *testing.T) (*InvestorHandler, *sql.DB, *snapshot.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	snapshots := snapshot.NewStore()

	handler := NewInvestorHandler(
		testutil.NewTestInvestorService(t, db),
		testutil.NewTestValuationService(t, db, snapshots),
		testutil.NewTestLedgerService(t, db),
	)
	return handler, db, snapshots
}

func TestInvestorHandler_Investors(t *testing.T) {
	t.Run("returns empty array when no investors exist", func(t *testing.T) {
		handler, _, _ := setupInvestorHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/investors", nil)
		w := httptest.NewRecorder()

		handler.Investors(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var metrics []InvestorMetricsResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&metrics)

		if metrics == nil {
			t.Error("Expected non-nil array, got nil")
		}
		if len(metrics) != 0 {
			t.Errorf("Expected empty array, got %d entries", len(metrics))
		}
	})

	t.Run("returns rounded metrics for each investor", func(t *testing.T) {
		handler, db, snapshots := setupInvestorHandler(t)

		alice := testutil.CreateInvestor(t, db, "Alice")
		bob := testutil.CreateInvestor(t, db, "Bob")
		testutil.CreateInvestment(t, db, alice.ID, 2000, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateInvestment(t, db, bob.ID, 1000, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		testutil.SeedSnapshot(t, snapshots, 3600)

		req := httptest.NewRequest(http.MethodGet, "/api/investors", nil)
		w := httptest.NewRecorder()

		handler.Investors(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var metrics []InvestorMetricsResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&metrics)

		if len(metrics) != 2 {
			t.Fatalf("Expected 2 investors, got %d", len(metrics))
		}

		byID := make(map[string]InvestorMetricsResponse)
		for _, m := range metrics {
			byID[m.Investor.ID] = m
		}

		// 2000/3000 rounds to 66.67 at the response edge.
		if got := byID[alice.ID].SharePercentage; got != 66.67 {
			t.Errorf("Expected Alice share 66.67, got %v", got)
		}
		if got := byID[bob.ID].SharePercentage; got != 33.33 {
			t.Errorf("Expected Bob share 33.33, got %v", got)
		}
		if got := byID[alice.ID].CurrentValue; got != 2400 {
			t.Errorf("Expected Alice current value 2400, got %v", got)
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db, _ := setupInvestorHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/investors", nil)
		w := httptest.NewRecorder()

		handler.Investors(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
	})
}

func TestInvestorHandler_CreateInvestor(t *testing.T) {
	t.Run("creates an investor with a generated code", func(t *testing.T) {
		handler, _, _ := setupInvestorHandler(t)

		body := `{"name":"John Doe","email":"john@example.com","joinDate":"2024-01-15"}`
		req := httptest.NewRequest(http.MethodPost, "/api/investors", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateInvestor(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var created model.Investor
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&created)

		if created.Code != "JD1" {
			t.Errorf("Expected code JD1, got %s", created.Code)
		}
	})

	t.Run("rejects a missing name with 400", func(t *testing.T) {
		handler, _, _ := setupInvestorHandler(t)

		body := `{"name":"","email":"x@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/api/investors", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateInvestor(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestInvestorHandler_GetInvestorOnCode(t *testing.T) {
	t.Run("finds an investor regardless of code casing", func(t *testing.T) {
		handler, db, _ := setupInvestorHandler(t)
		created := testutil.NewInvestor().WithName("Alice Brown").WithCode("AB1").Build(t, db)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/investors/code/ab1",
			map[string]string{"code": "ab1"})
		w := httptest.NewRecorder()

		handler.GetInvestorOnCode(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var found model.Investor
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&found)

		if found.ID != created.ID {
			t.Errorf("Expected investor %s, got %s", created.ID, found.ID)
		}
	})

	t.Run("returns 404 for an unknown code", func(t *testing.T) {
		handler, _, _ := setupInvestorHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/investors/code/ZZ9",
			map[string]string{"code": "ZZ9"})
		w := httptest.NewRecorder()

		handler.GetInvestorOnCode(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestInvestorHandler_DeleteInvestor(t *testing.T) {
	t.Run("deletes an investor and returns 204", func(t *testing.T) {
		handler, db, _ := setupInvestorHandler(t)
		inv := testutil.CreateInvestor(t, db, "Leaver")

		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/investors/"+inv.ID,
			map[string]string{"uuid": inv.ID})
		w := httptest.NewRecorder()

		handler.DeleteInvestor(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for an unknown investor", func(t *testing.T) {
		handler, _, _ := setupInvestorHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodDelete, "/api/investors/"+id,
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.DeleteInvestor(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestInvestorHandler_InvestorTransactions(t *testing.T) {
	t.Run("returns the investor's ledger in chronological order", func(t *testing.T) {
		handler, db, _ := setupInvestorHandler(t)
		inv := testutil.CreateInvestor(t, db, "Alice")
		testutil.CreateInvestment(t, db, inv.ID, 100, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateInvestment(t, db, inv.ID, 200, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/investors/"+inv.ID+"/transactions",
			map[string]string{"uuid": inv.ID})
		w := httptest.NewRecorder()

		handler.InvestorTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var history []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&history)

		if len(history) != 2 {
			t.Fatalf("Expected 2 entries, got %d", len(history))
		}
		if history[0].Amount != 200 {
			t.Errorf("Expected oldest entry first, got %v", history[0].Amount)
		}
	})

	t.Run("returns 404 for an unknown investor", func(t *testing.T) {
		handler, _, _ := setupInvestorHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/investors/"+id+"/transactions",
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.InvestorTransactions(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}
