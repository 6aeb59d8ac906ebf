package service

import (
	"fmt"
	"math"
	"time"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/repository"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/snapshot"
)

// ValuationService binds the ledger to the priced portfolio snapshot. It
// owns every derived figure: share percentages, current values, return
// metrics, and the fund/risk aggregates. Nothing here is persisted;
// derived values are recomputed in full on every read, always for the
// complete investor set, so repeated calls without intervening mutation
// are bit-identical and the share invariant cannot drift.
type ValuationService struct {
	investorRepo    *repository.InvestorRepository
	transactionRepo *repository.TransactionRepository
	snapshots       *snapshot.Store
}

// NewValuationService creates a new ValuationService
func NewValuationService(
	investorRepo *repository.InvestorRepository,
	transactionRepo *repository.TransactionRepository,
	snapshots *snapshot.Store,
) *ValuationService {
	return &ValuationService{
		investorRepo:    investorRepo,
		transactionRepo: transactionRepo,
		snapshots:       snapshots,
	}
}

// PortfolioValue returns the total value of the current portfolio
// snapshot: Σ quantity × price over all assets, with 0 standing in for any
// symbol without a known price. It never fails; before the first refresh
// it reports 0.
func (s *ValuationService) PortfolioValue() float64 {
	return s.snapshots.Current().TotalValue
}

// GetInvestorMetrics computes the derived view for every investor against
// the current snapshot, as of now.
func (s *ValuationService) GetInvestorMetrics() ([]model.InvestorMetrics, error) {
	return s.GetInvestorMetricsAsOf(time.Now().UTC())
}

// GetInvestorMetricsAsOf computes the derived view for every investor as
// of the given date. Shares are recomputed for the full investor set in a
// single pass; partial incremental updates are deliberately not offered.
func (s *ValuationService) GetInvestorMetricsAsOf(asOf time.Time) ([]model.InvestorMetrics, error) {
	investors, err := s.investorRepo.GetInvestors()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFailedToRetrieveInvestors, err)
	}

	nets, err := s.transactionRepo.NetInvestmentValues()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	investmentDates := make(map[string]time.Time, len(investors))
	for _, inv := range investors {
		first, ok, err := s.transactionRepo.FirstTransactionDate(inv.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrFailedToRetrieveTransactions, err)
		}
		if ok {
			investmentDates[inv.ID] = first.Date
		} else {
			investmentDates[inv.ID] = inv.JoinDate
		}
	}

	return computeMetrics(investors, nets, investmentDates, s.PortfolioValue(), asOf), nil
}

// GetInvestorMetricsOnID computes the derived view for a single investor.
// The full set is still recomputed internally: an individual share only
// means anything relative to everyone else's.
func (s *ValuationService) GetInvestorMetricsOnID(investorID string, asOf time.Time) (model.InvestorMetrics, error) {
	metrics, err := s.GetInvestorMetricsAsOf(asOf)
	if err != nil {
		return model.InvestorMetrics{}, err
	}

	for _, m := range metrics {
		if m.Investor.ID == investorID {
			return m, nil
		}
	}

	return model.InvestorMetrics{}, apperrors.ErrInvestorNotFound
}

// GetFundSummary computes the fund-level aggregate view.
func (s *ValuationService) GetFundSummary() (model.FundSummary, error) {
	metrics, err := s.GetInvestorMetrics()
	if err != nil {
		return model.FundSummary{}, fmt.Errorf("%w: %s", apperrors.ErrFailedToGetFundSummary, err)
	}

	var summary model.FundSummary
	for _, m := range metrics {
		summary.TotalAUM += m.CurrentValue
		summary.NetInflows += m.InitialInvestment
		if m.InitialInvestment > 0 {
			summary.ActiveInvestorCount++
		}
	}

	summary.CapitalAppreciation = summary.TotalAUM - summary.NetInflows
	if summary.NetInflows > 0 {
		summary.TotalReturn = (summary.TotalAUM - summary.NetInflows) / summary.NetInflows * 100
	}

	return summary, nil
}

// GetRiskDistribution reports what percentage of the portfolio value sits
// in each risk tier. All tiers are present in the result, at 0 when empty.
// An empty or worthless portfolio yields all zeros.
func (s *ValuationService) GetRiskDistribution() map[string]float64 {
	snap := s.snapshots.Current()

	distribution := make(map[string]float64, len(model.RiskTiers))
	for _, tier := range model.RiskTiers {
		distribution[tier] = 0
	}

	if snap.TotalValue <= 0 {
		return distribution
	}

	for _, asset := range snap.Assets {
		tier := asset.RiskLevel
		if _, ok := distribution[tier]; !ok {
			tier = model.RiskHigh
		}
		distribution[tier] += asset.Value / snap.TotalValue * 100
	}

	return distribution
}

// computeMetrics is the single-pass share and valuation calculation.
//
// sharePercentage = 100 × net / Σ net across all investors; when the
// denominator is 0 every share is 0 by definition, not an error.
// currentValue = portfolioValue × share / 100, so current values sum to
// the portfolio value whenever shares sum to 100.
//
// The zero-denominator return sentinels (totalReturn 0 when nothing was
// invested, annualizedReturn 0 on day 0) are deliberate: the engine must
// always produce a defined result rather than NaN or a panic.
func computeMetrics(
	investors []model.Investor,
	nets map[string]float64,
	investmentDates map[string]time.Time,
	portfolioValue float64,
	asOf time.Time,
) []model.InvestorMetrics {

	var totalNet float64
	for _, inv := range investors {
		totalNet += nets[inv.ID]
	}

	metrics := make([]model.InvestorMetrics, len(investors))
	for i, inv := range investors {
		net := nets[inv.ID]

		var share float64
		if totalNet > 0 {
			share = net / totalNet * 100
		}

		currentValue := portfolioValue * share / 100

		var totalReturn float64
		if net > 0 {
			totalReturn = (currentValue - net) / net * 100
		}

		metrics[i] = model.InvestorMetrics{
			Investor:            inv,
			InitialInvestment:   net,
			CurrentValue:        currentValue,
			SharePercentage:     share,
			CapitalAppreciation: currentValue - net,
			TotalReturn:         totalReturn,
			AnnualizedReturn:    annualizedReturn(net, currentValue, investmentDates[inv.ID], asOf),
		}
	}

	return metrics
}

// annualizedReturn extrapolates the investor's compound growth rate to a
// 365-day period. Same-day investments (zero or negative elapsed days)
// degrade to 0 to avoid the exponent blowing up.
func annualizedReturn(initial, current float64, investmentDate, asOf time.Time) float64 {
	if initial <= 0 {
		return 0
	}

	days := wholeDays(investmentDate, asOf)
	if days <= 0 {
		return 0
	}

	return (math.Pow(current/initial, 365/float64(days)) - 1) * 100
}

// wholeDays counts whole days between two dates, ignoring time of day.
func wholeDays(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}
