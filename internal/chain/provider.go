// Package chain discovers token balances held in the fund's wallets.
//
// Each supported chain has its own BalanceProvider; the refresh loop fans
// out over the wallet registry and aggregates whatever the providers
// return. A provider failure affects only its own wallet: the refresh
// continues with the sources that succeeded.
package chain

import (
	"context"
	"fmt"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// BalanceProvider returns the token holdings of one wallet on one chain.
type BalanceProvider interface {
	Chain() string
	Balances(ctx context.Context, wallet model.Wallet) ([]model.WalletHolding, error)
}

// Registry maps chain names to their balance providers.
type Registry struct {
	providers map[string]BalanceProvider
}

// NewRegistry creates a provider registry from the given providers.
func NewRegistry(providers ...BalanceProvider) *Registry {
	r := &Registry{providers: make(map[string]BalanceProvider, len(providers))}
	for _, p := range providers {
		r.providers[p.Chain()] = p
	}
	return r
}

// ForChain returns the provider registered for a chain, or
// apperrors.ErrUnsupportedChain when no provider covers it.
func (r *Registry) ForChain(chain string) (BalanceProvider, error) {
	p, ok := r.providers[chain]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedChain, chain)
	}
	return p, nil
}

// SumBySymbol collapses per-wallet holdings into one quantity per symbol,
// keeping the individual wallet rows as the display breakdown. The
// breakdown quantities always sum to the aggregate quantity.
func SumBySymbol(holdings []model.WalletHolding) map[string][]model.WalletHolding {
	bySymbol := make(map[string][]model.WalletHolding)
	for _, h := range holdings {
		bySymbol[h.Symbol] = append(bySymbol[h.Symbol], h)
	}
	return bySymbol
}
