package service_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/service"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/testutil"
)

func setupInvestors(t *testing.T) (*service.InvestorService, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return testutil.NewTestInvestorService(t, db), db
}

func TestInvestorService_CreateInvestor(t *testing.T) {
	joinDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("generates the code from name initials and sequence", func(t *testing.T) {
		is, _ := setupInvestors(t)

		investor, err := is.CreateInvestor("John Doe", "john@example.com", joinDate)
		if err != nil {
			t.Fatalf("CreateInvestor failed: %v", err)
		}

		if investor.Code != "JD1" {
			t.Errorf("Expected code JD1, got %s", investor.Code)
		}
		if investor.ID == "" {
			t.Error("Expected investor to get an ID")
		}
	})

	t.Run("sequence number increases with each investor", func(t *testing.T) {
		is, _ := setupInvestors(t)

		if _, err := is.CreateInvestor("John Doe", "", joinDate); err != nil {
			t.Fatalf("CreateInvestor failed: %v", err)
		}
		second, err := is.CreateInvestor("Mary Anne Smith", "", joinDate)
		if err != nil {
			t.Fatalf("CreateInvestor failed: %v", err)
		}

		// First and last word initials, middle names ignored.
		if second.Code != "MS2" {
			t.Errorf("Expected code MS2, got %s", second.Code)
		}
	})

	t.Run("single-word names repeat the initial", func(t *testing.T) {
		is, _ := setupInvestors(t)

		investor, err := is.CreateInvestor("Satoshi", "", joinDate)
		if err != nil {
			t.Fatalf("CreateInvestor failed: %v", err)
		}

		if investor.Code != "SS1" {
			t.Errorf("Expected code SS1, got %s", investor.Code)
		}
	})
}

func TestInvestorService_GetInvestorOnCode(t *testing.T) {
	t.Run("lookup is case-insensitive", func(t *testing.T) {
		is, db := setupInvestors(t)
		created := testutil.NewInvestor().WithName("Alice Brown").WithCode("AB1").Build(t, db)

		for _, code := range []string{"AB1", "ab1", "Ab1"} {
			found, err := is.GetInvestorOnCode(code)
			if err != nil {
				t.Fatalf("GetInvestorOnCode(%q) failed: %v", code, err)
			}
			if found.ID != created.ID {
				t.Errorf("Expected investor %s for code %q, got %s", created.ID, code, found.ID)
			}
		}
	})

	t.Run("unknown code yields not-found", func(t *testing.T) {
		is, _ := setupInvestors(t)

		_, err := is.GetInvestorOnCode("ZZ9")
		if !errors.Is(err, apperrors.ErrInvestorNotFound) {
			t.Errorf("Expected ErrInvestorNotFound, got %v", err)
		}
	})

	t.Run("empty code yields not-found instead of a query", func(t *testing.T) {
		is, _ := setupInvestors(t)

		_, err := is.GetInvestorOnCode("   ")
		if !errors.Is(err, apperrors.ErrInvestorNotFound) {
			t.Errorf("Expected ErrInvestorNotFound, got %v", err)
		}
	})
}

func TestInvestorService_DeleteInvestor(t *testing.T) {
	t.Run("removes an existing investor", func(t *testing.T) {
		is, db := setupInvestors(t)
		inv := testutil.CreateInvestor(t, db, "Leaver")

		if err := is.DeleteInvestor(inv.ID); err != nil {
			t.Fatalf("DeleteInvestor failed: %v", err)
		}

		_, err := is.GetInvestorOnID(inv.ID)
		if !errors.Is(err, apperrors.ErrInvestorNotFound) {
			t.Errorf("Expected ErrInvestorNotFound after delete, got %v", err)
		}
	})

	t.Run("deleting an unknown investor yields not-found", func(t *testing.T) {
		is, _ := setupInvestors(t)

		err := is.DeleteInvestor(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrInvestorNotFound) {
			t.Errorf("Expected ErrInvestorNotFound, got %v", err)
		}
	})
}
