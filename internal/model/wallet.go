package model

// Supported wallet chains.
const (
	ChainSolana      = "solana"
	ChainEthereum    = "ethereum"
	ChainHyperliquid = "hyperliquid"
)

// Wallet is one fund wallet to poll during portfolio refresh. Inactive
// wallets stay in the registry but are skipped by the refresh loop.
type Wallet struct {
	Name    string `json:"name"`
	Chain   string `json:"chain"`
	Address string `json:"address"`
	Active  bool   `json:"active"`
}
