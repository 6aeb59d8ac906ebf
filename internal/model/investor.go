package model

import "time"

// Investor represents a fund investor from the database.
// Code is the external-facing identifier shown on statements (investor
// initials plus a sequence number); ID is the internal primary key.
type Investor struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	JoinDate  time.Time `json:"joinDate"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// InvestorMetrics is the derived view of a single investor against the
// current portfolio snapshot. None of these fields are persisted; they are
// recomputed in full on every read so the share invariant cannot drift.
type InvestorMetrics struct {
	Investor            Investor `json:"investor"`
	InitialInvestment   float64  `json:"initialInvestment"`   // Net contributions (investments - redemptions)
	CurrentValue        float64  `json:"currentValue"`        // Portfolio value * share percentage
	SharePercentage     float64  `json:"sharePercentage"`     // 0-100 slice of the pooled fund
	CapitalAppreciation float64  `json:"capitalAppreciation"` // Current value - initial investment
	TotalReturn         float64  `json:"totalReturn"`         // Percent, 0 when initial investment is 0
	AnnualizedReturn    float64  `json:"annualizedReturn"`    // Percent, 0 on the day of first investment
}

// FundSummary represents the fund-level aggregate view.
type FundSummary struct {
	TotalAUM            float64 `json:"totalAum"`
	NetInflows          float64 `json:"netInflows"`
	TotalReturn         float64 `json:"totalReturn"`
	CapitalAppreciation float64 `json:"capitalAppreciation"`
	ActiveInvestorCount int     `json:"activeInvestorCount"`
}
