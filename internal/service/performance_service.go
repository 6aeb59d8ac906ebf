package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/repository"
)

// monthlyReturnWindow caps the monthly return report to the most recent
// calendar months, dropping the oldest entries first.
const monthlyReturnWindow = 12

// PerformanceService maintains the fund's historical value series and the
// monthly return aggregation derived from it. The series is used for
// charting only; current-state valuation never reads it.
type PerformanceService struct {
	performanceRepo *repository.PerformanceRepository
}

// NewPerformanceService creates a new PerformanceService
func NewPerformanceService(performanceRepo *repository.PerformanceRepository) *PerformanceService {
	return &PerformanceService{
		performanceRepo: performanceRepo,
	}
}

// GetSamples returns the full sample series in chronological order.
func (s *PerformanceService) GetSamples() ([]model.PerformanceSample, error) {
	samples, err := s.performanceRepo.GetSamples()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFailedToRetrievePerformance, err)
	}
	return samples, nil
}

// RecordSample stores today's portfolio value in the series. The
// cumulative return is computed against the earliest sample on record;
// the first sample ever recorded starts the series at 0%.
func (s *PerformanceService) RecordSample(portfolioValue float64, date time.Time) error {
	var cumulative float64

	baseline, ok, err := s.performanceRepo.FirstSample()
	if err != nil {
		return err
	}
	if ok && baseline.PortfolioValue > 0 {
		cumulative = (portfolioValue - baseline.PortfolioValue) / baseline.PortfolioValue * 100
	}

	return s.performanceRepo.UpsertSample(model.PerformanceSample{
		ID:                      uuid.New().String(),
		Date:                    repository.DateOnly(date),
		PortfolioValue:          portfolioValue,
		CumulativeReturnPercent: cumulative,
	})
}

// MonthlyReturns aggregates the sample series into per-calendar-month
// returns: (last sample − first sample) / first sample × 100 within each
// month. Only the most recent twelve months are reported, oldest first.
func (s *PerformanceService) MonthlyReturns() ([]model.MonthlyReturn, error) {
	samples, err := s.GetSamples()
	if err != nil {
		return nil, err
	}

	type bounds struct {
		start float64
		end   float64
	}

	byMonth := make(map[string]*bounds)
	for _, sample := range samples {
		key := repository.MonthKey(sample.Date)
		if b, ok := byMonth[key]; ok {
			b.end = sample.PortfolioValue
		} else {
			byMonth[key] = &bounds{start: sample.PortfolioValue, end: sample.PortfolioValue}
		}
	}

	months := make([]string, 0, len(byMonth))
	for key := range byMonth {
		months = append(months, key)
	}
	// YYYY-MM keys sort chronologically as strings.
	sort.Strings(months)

	if len(months) > monthlyReturnWindow {
		months = months[len(months)-monthlyReturnWindow:]
	}

	returns := make([]model.MonthlyReturn, len(months))
	for i, key := range months {
		b := byMonth[key]

		var pct float64
		if b.start > 0 {
			pct = (b.end - b.start) / b.start * 100
		}

		returns[i] = model.MonthlyReturn{Month: key, Return: pct}
	}

	return returns, nil
}
