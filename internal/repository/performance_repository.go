package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// PerformanceRepository provides data access methods for the
// performance_sample table.
type PerformanceRepository struct {
	db *sql.DB
}

// NewPerformanceRepository creates a new PerformanceRepository with the provided database connection.
func NewPerformanceRepository(db *sql.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

// GetSamples retrieves the full sample series in chronological order.
func (r *PerformanceRepository) GetSamples() ([]model.PerformanceSample, error) {
	query := `
		SELECT id, date, portfolio_value, cumulative_return_percent
		FROM performance_sample
		ORDER BY date
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query performance_sample table: %w", err)
	}
	defer rows.Close()

	samples := []model.PerformanceSample{}

	for rows.Next() {
		var s model.PerformanceSample

		err := rows.Scan(
			&s.ID,
			&s.Date,
			&s.PortfolioValue,
			&s.CumulativeReturnPercent,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance_sample table results: %w", err)
		}

		samples = append(samples, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating performance_sample table: %w", err)
	}

	return samples, nil
}

// UpsertSample records the portfolio value for a sampling day. One row per
// date: sampling twice on the same day overwrites the earlier value.
func (r *PerformanceRepository) UpsertSample(s model.PerformanceSample) error {
	query := `
		INSERT INTO performance_sample (id, date, portfolio_value, cumulative_return_percent)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			portfolio_value = excluded.portfolio_value,
			cumulative_return_percent = excluded.cumulative_return_percent
	`

	_, err := r.db.Exec(query, s.ID, s.Date, s.PortfolioValue, s.CumulativeReturnPercent)
	if err != nil {
		return fmt.Errorf("failed to upsert performance sample: %w", err)
	}

	return nil
}

// FirstSample returns the earliest sample, used as the baseline for the
// cumulative return series. The boolean is false when no samples exist.
func (r *PerformanceRepository) FirstSample() (model.PerformanceSample, bool, error) {
	query := `
		SELECT id, date, portfolio_value, cumulative_return_percent
		FROM performance_sample
		ORDER BY date
		LIMIT 1
	`

	var s model.PerformanceSample
	err := r.db.QueryRow(query).Scan(
		&s.ID,
		&s.Date,
		&s.PortfolioValue,
		&s.CumulativeReturnPercent,
	)
	if err == sql.ErrNoRows {
		return model.PerformanceSample{}, false, nil
	}
	if err != nil {
		return model.PerformanceSample{}, false, fmt.Errorf("failed to query first sample: %w", err)
	}

	return s, true, nil
}

// DateOnly normalizes a timestamp to midnight UTC, the granularity of the
// sample series.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthKey formats a date as the YYYY-MM grouping key used by the monthly
// return aggregation.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}
