package service_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/service"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/testutil"
)

func setupLedger(t *testing.T) (*service.LedgerService, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return testutil.NewTestLedgerService(t, db), db
}

func TestLedgerService_RecordTransaction(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("records an investment for an existing investor", func(t *testing.T) {
		ls, db := setupLedger(t)
		inv := testutil.CreateInvestor(t, db, "Alice")

		tx, err := ls.RecordTransaction(inv.ID, model.TransactionInvestment, 2500, date)
		if err != nil {
			t.Fatalf("RecordTransaction failed: %v", err)
		}

		if tx.ID == "" {
			t.Error("Expected transaction to get an ID")
		}
		if tx.Amount != 2500 {
			t.Errorf("Expected amount 2500, got %v", tx.Amount)
		}

		net, err := ls.NetInvestmentValue(inv.ID)
		if err != nil {
			t.Fatalf("NetInvestmentValue failed: %v", err)
		}
		if net != 2500 {
			t.Errorf("Expected net 2500, got %v", net)
		}
	})

	t.Run("rejects zero and negative amounts", func(t *testing.T) {
		ls, db := setupLedger(t)
		inv := testutil.CreateInvestor(t, db, "Alice")

		for _, amount := range []float64{0, -100} {
			_, err := ls.RecordTransaction(inv.ID, model.TransactionInvestment, amount, date)
			if !errors.Is(err, apperrors.ErrInvalidAmount) {
				t.Errorf("Expected ErrInvalidAmount for %v, got %v", amount, err)
			}
		}
	})

	t.Run("rejects unknown transaction types", func(t *testing.T) {
		ls, db := setupLedger(t)
		inv := testutil.CreateInvestor(t, db, "Alice")

		_, err := ls.RecordTransaction(inv.ID, "Transfer", 100, date)
		if !errors.Is(err, apperrors.ErrInvalidTransactionType) {
			t.Errorf("Expected ErrInvalidTransactionType, got %v", err)
		}
	})

	t.Run("rejects transactions for unknown investors", func(t *testing.T) {
		ls, _ := setupLedger(t)

		_, err := ls.RecordTransaction(testutil.MakeID(), model.TransactionInvestment, 100, date)
		if !errors.Is(err, apperrors.ErrInvestorNotFound) {
			t.Errorf("Expected ErrInvestorNotFound, got %v", err)
		}
	})

	t.Run("entries are never mutated by later ones", func(t *testing.T) {
		ls, db := setupLedger(t)
		inv := testutil.CreateInvestor(t, db, "Alice")

		first, err := ls.RecordTransaction(inv.ID, model.TransactionInvestment, 1000, date)
		if err != nil {
			t.Fatalf("RecordTransaction failed: %v", err)
		}
		if _, err := ls.RecordTransaction(inv.ID, model.TransactionRedemption, 400, date.AddDate(0, 1, 0)); err != nil {
			t.Fatalf("RecordTransaction failed: %v", err)
		}

		history, err := ls.GetTransactionsOnInvestorID(inv.ID)
		if err != nil {
			t.Fatalf("GetTransactionsOnInvestorID failed: %v", err)
		}

		if len(history) != 2 {
			t.Fatalf("Expected 2 entries, got %d", len(history))
		}
		if history[0].ID != first.ID || history[0].Amount != 1000 {
			t.Errorf("Expected first entry unchanged, got %+v", history[0])
		}
	})
}

func TestLedgerService_NetInvestmentValue(t *testing.T) {
	t.Run("sums investments and subtracts redemptions", func(t *testing.T) {
		ls, db := setupLedger(t)
		inv := testutil.CreateInvestor(t, db, "Alice")

		testutil.CreateInvestment(t, db, inv.ID, 3000, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateInvestment(t, db, inv.ID, 1000, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateRedemption(t, db, inv.ID, 1500, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

		net, err := ls.NetInvestmentValue(inv.ID)
		if err != nil {
			t.Fatalf("NetInvestmentValue failed: %v", err)
		}
		if net != 2500 {
			t.Errorf("Expected net 2500, got %v", net)
		}
	})

	t.Run("is zero for an investor with no transactions", func(t *testing.T) {
		ls, db := setupLedger(t)
		inv := testutil.CreateInvestor(t, db, "Quiet")

		net, err := ls.NetInvestmentValue(inv.ID)
		if err != nil {
			t.Fatalf("NetInvestmentValue failed: %v", err)
		}
		if net != 0 {
			t.Errorf("Expected net 0, got %v", net)
		}
	})

	t.Run("can go negative when redemptions exceed investments", func(t *testing.T) {
		ls, db := setupLedger(t)
		inv := testutil.CreateInvestor(t, db, "Overdrawn")

		testutil.CreateInvestment(t, db, inv.ID, 100, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateRedemption(t, db, inv.ID, 300, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

		net, err := ls.NetInvestmentValue(inv.ID)
		if err != nil {
			t.Fatalf("NetInvestmentValue failed: %v", err)
		}
		if net != -200 {
			t.Errorf("Expected net -200, got %v", net)
		}
	})
}

func TestLedgerService_RecentTransactions(t *testing.T) {
	t.Run("returns the newest entries first, enriched with investor details", func(t *testing.T) {
		ls, db := setupLedger(t)
		inv := testutil.NewInvestor().WithName("Alice Example").WithCode("AE1").Build(t, db)

		for day := 1; day <= 5; day++ {
			testutil.CreateInvestment(t, db, inv.ID, float64(day*100),
				time.Date(2024, 4, day, 0, 0, 0, 0, time.UTC))
		}

		recent, err := ls.RecentTransactions(3)
		if err != nil {
			t.Fatalf("RecentTransactions failed: %v", err)
		}

		if len(recent) != 3 {
			t.Fatalf("Expected 3 entries, got %d", len(recent))
		}
		if recent[0].Amount != 500 || recent[2].Amount != 300 {
			t.Errorf("Expected newest-first ordering, got %v, %v, %v",
				recent[0].Amount, recent[1].Amount, recent[2].Amount)
		}
		if recent[0].InvestorCode != "AE1" || recent[0].InvestorName != "Alice Example" {
			t.Errorf("Expected investor enrichment, got %+v", recent[0])
		}
	})

	t.Run("returns the whole ledger when shorter than the limit", func(t *testing.T) {
		ls, db := setupLedger(t)
		inv := testutil.CreateInvestor(t, db, "Alice")
		testutil.CreateInvestment(t, db, inv.ID, 100, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		recent, err := ls.RecentTransactions(10)
		if err != nil {
			t.Fatalf("RecentTransactions failed: %v", err)
		}
		if len(recent) != 1 {
			t.Errorf("Expected 1 entry, got %d", len(recent))
		}
	})
}

func TestLedgerService_InvestorCascade(t *testing.T) {
	t.Run("deleting an investor removes their ledger entries", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		is := testutil.NewTestInvestorService(t, db)
		ls := testutil.NewTestLedgerService(t, db)

		inv := testutil.CreateInvestor(t, db, "Leaver")
		testutil.CreateInvestment(t, db, inv.ID, 1000, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

		if err := is.DeleteInvestor(inv.ID); err != nil {
			t.Fatalf("DeleteInvestor failed: %v", err)
		}

		history, err := ls.GetTransactionsOnInvestorID(inv.ID)
		if err != nil {
			t.Fatalf("GetTransactionsOnInvestorID failed: %v", err)
		}
		if len(history) != 0 {
			t.Errorf("Expected cascade to remove entries, got %d", len(history))
		}
	})
}
