// Package snapshot holds the current priced-portfolio snapshot.
//
// A refresh assembles a complete replacement snapshot off to the side and
// swaps it in with a single atomic pointer store. Readers never block on a
// refresh in progress and never observe a partially merged portfolio: the
// previous snapshot stays valid until the new one is fully built.
package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// Store holds the current portfolio snapshot.
type Store struct {
	current atomic.Pointer[model.PortfolioSnapshot]
}

// NewStore creates a snapshot store seeded with an empty portfolio so the
// valuation engine is callable before the first refresh completes.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(&model.PortfolioSnapshot{
		Assets:    []model.PricedAsset{},
		Prices:    map[string]float64{},
		FetchedAt: time.Time{},
	})
	return s
}

// Current returns the latest complete snapshot. The returned snapshot is
// immutable; callers must not modify it.
func (s *Store) Current() *model.PortfolioSnapshot {
	return s.current.Load()
}

// Swap replaces the current snapshot.
func (s *Store) Swap(snap *model.PortfolioSnapshot) {
	s.current.Store(snap)
}
