package model

import "time"

// Risk tiers for portfolio holdings. RiskTiers fixes the order the
// risk report is emitted in.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
	RiskDegen  = "Degen"
)

// RiskTiers lists all tiers in display order.
var RiskTiers = []string{RiskLow, RiskMedium, RiskHigh, RiskDegen}

// Asset represents a manually managed portfolio holding from the database.
// Quantity may be superseded during refresh when wallet discovery finds
// live balances for the same symbol.
type Asset struct {
	ID               string  `json:"id"`
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Quantity         float64 `json:"quantity"`
	RiskLevel        string  `json:"riskLevel"`
	TargetAllocation float64 `json:"targetAllocation"` // Advisory percentage, not enforced
}

// WalletHolding is one token balance discovered in one wallet. Holdings
// for the same symbol are summed across wallets before valuation; the
// per-wallet rows are kept only for display.
type WalletHolding struct {
	Chain         string  `json:"chain"`
	WalletLabel   string  `json:"walletLabel"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Quantity      float64 `json:"quantity"`
	SourceAddress string  `json:"sourceAddress"`
}

// PricedAsset is a portfolio holding bound to a price inside a snapshot.
type PricedAsset struct {
	Symbol           string          `json:"symbol"`
	Name             string          `json:"name"`
	Quantity         float64         `json:"quantity"`
	RiskLevel        string          `json:"riskLevel"`
	TargetAllocation float64         `json:"targetAllocation"`
	Price            float64         `json:"price"`
	Value            float64         `json:"value"` // quantity * price
	Wallets          []WalletHolding `json:"wallets,omitempty"`
}

// PortfolioSnapshot is an immutable view of the priced portfolio built by
// a refresh. Consumers always see a complete snapshot: either the previous
// one or the fully assembled replacement, never a partial merge.
type PortfolioSnapshot struct {
	Assets     []PricedAsset      `json:"assets"`
	Prices     map[string]float64 `json:"prices"`
	TotalValue float64            `json:"totalValue"`
	FetchedAt  time.Time          `json:"fetchedAt"`
}
