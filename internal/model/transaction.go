package model

import "time"

// Transaction types recorded in the ledger. The ledger is append-only:
// rows are never updated, and are only removed as part of an investor
// cascade delete.
const (
	TransactionInvestment = "Investment"
	TransactionRedemption = "Redemption"
)

// Transaction represents a single investor cash-flow event.
type Transaction struct {
	ID         string    `json:"id"`
	InvestorID string    `json:"investorId"`
	Type       string    `json:"type"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// TransactionResponse represents a transaction enriched with investor
// details for API responses.
type TransactionResponse struct {
	ID           string    `json:"id"`
	InvestorID   string    `json:"investorId"`
	InvestorCode string    `json:"investorCode"`
	InvestorName string    `json:"investorName"`
	Type         string    `json:"type"`
	Amount       float64   `json:"amount"`
	Date         time.Time `json:"date"`
}
