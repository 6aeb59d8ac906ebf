package testutil

import (
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/repository"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/service"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/snapshot"
)

// SilentLogger returns a logger that discards all output, keeping test
// output readable.
func SilentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func NewTestInvestorService(t *testing.T, db *sql.DB) *service.InvestorService {
	t.Helper()

	return service.NewInvestorService(repository.NewInvestorRepository(db))
}

func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	return service.NewLedgerService(
		repository.NewTransactionRepository(db),
		repository.NewInvestorRepository(db),
	)
}

func NewTestValuationService(t *testing.T, db *sql.DB, snapshots *snapshot.Store) *service.ValuationService {
	t.Helper()

	return service.NewValuationService(
		repository.NewInvestorRepository(db),
		repository.NewTransactionRepository(db),
		snapshots,
	)
}

func NewTestPerformanceService(t *testing.T, db *sql.DB) *service.PerformanceService {
	t.Helper()

	return service.NewPerformanceService(repository.NewPerformanceRepository(db))
}

func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()

	return service.NewAssetService(repository.NewAssetRepository(db))
}

// SeedSnapshot installs a snapshot with the given total value so that
// valuation tests control the portfolio value directly.
func SeedSnapshot(t *testing.T, snapshots *snapshot.Store, totalValue float64) {
	t.Helper()

	snapshots.Swap(&model.PortfolioSnapshot{
		Prices:     map[string]float64{},
		TotalValue: totalValue,
		FetchedAt:  time.Now().UTC(),
	})
}
