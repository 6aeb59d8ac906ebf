package model

import "time"

// PerformanceSample is one point of the fund's historical value series,
// nominally one per day. Used for charting and monthly aggregation only,
// never for valuing current state.
type PerformanceSample struct {
	ID                      string    `json:"id"`
	Date                    time.Time `json:"date"`
	PortfolioValue          float64   `json:"portfolioValue"`
	CumulativeReturnPercent float64   `json:"cumulativeReturnPercent"`
}

// MonthlyReturn is the percentage move of the portfolio over one calendar
// month, computed from the first and last sample inside that month.
type MonthlyReturn struct {
	Month  string  `json:"month"` // YYYY-MM
	Return float64 `json:"return"`
}
