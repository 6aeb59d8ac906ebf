package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/chain"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/pricing"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/repository"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/snapshot"
)

// maxConcurrentWallets bounds the balance-discovery fan-out.
const maxConcurrentWallets = 4

// RefreshService rebuilds the priced portfolio snapshot from the asset
// table, the wallet balance providers, and the price source chain.
//
// A refresh assembles the replacement snapshot completely before swapping
// it in, so readers always see either the previous snapshot or the new
// one. Failures are isolated per source: a wallet whose provider errors
// contributes nothing, and the snapshot is built from whatever succeeded.
type RefreshService struct {
	assetRepo   *repository.AssetRepository
	providers   *chain.Registry
	prices      *pricing.Chain
	snapshots   *snapshot.Store
	performance *PerformanceService
	wallets     []model.Wallet
	callTimeout time.Duration
	log         *logrus.Logger
}

// NewRefreshService creates a new RefreshService
func NewRefreshService(
	assetRepo *repository.AssetRepository,
	providers *chain.Registry,
	prices *pricing.Chain,
	snapshots *snapshot.Store,
	performance *PerformanceService,
	wallets []model.Wallet,
	callTimeout time.Duration,
	log *logrus.Logger,
) *RefreshService {
	return &RefreshService{
		assetRepo:   assetRepo,
		providers:   providers,
		prices:      prices,
		snapshots:   snapshots,
		performance: performance,
		wallets:     wallets,
		callTimeout: callTimeout,
		log:         log,
	}
}

// Refresh builds and installs a new portfolio snapshot. It returns the
// snapshot it installed. The only hard failure is the asset table being
// unreadable; provider and pricing failures degrade to zero/empty data.
func (s *RefreshService) Refresh(ctx context.Context) (*model.PortfolioSnapshot, error) {
	started := time.Now()

	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveAssets, err)
	}

	discovered := s.discoverBalances(ctx)

	snap := s.buildSnapshot(ctx, assets, discovered)
	s.snapshots.Swap(snap)

	if err := s.performance.RecordSample(snap.TotalValue, snap.FetchedAt); err != nil {
		s.log.WithError(err).Warn("failed to record performance sample")
	}

	s.log.WithFields(logrus.Fields{
		"assets":     len(snap.Assets),
		"totalValue": round(snap.TotalValue),
		"elapsed":    time.Since(started).Round(time.Millisecond),
	}).Info("portfolio snapshot refreshed")

	return snap, nil
}

// discoverBalances fans out over the active wallets. Every provider call
// gets its own timeout so one stalled source cannot hold up the batch;
// every failure is logged and skipped.
func (s *RefreshService) discoverBalances(ctx context.Context) []model.WalletHolding {
	var mu sync.Mutex
	holdings := []model.WalletHolding{}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWallets)

	for _, wallet := range s.wallets {
		if !wallet.Active {
			continue
		}

		g.Go(func() error {
			provider, err := s.providers.ForChain(wallet.Chain)
			if err != nil {
				s.log.WithError(err).WithField("wallet", wallet.Name).
					Warn("skipping wallet on unsupported chain")
				return nil
			}

			callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
			defer cancel()

			found, err := provider.Balances(callCtx, wallet)
			if err != nil {
				// Per-source isolation: log and move on, never abort the batch.
				s.log.WithError(err).WithFields(logrus.Fields{
					"wallet": wallet.Name,
					"chain":  wallet.Chain,
				}).Warn("balance discovery failed for wallet")
				return nil
			}

			mu.Lock()
			holdings = append(holdings, found...)
			mu.Unlock()
			return nil
		})
	}

	// Goroutines swallow their own errors, so Wait only synchronizes.
	_ = g.Wait()

	return holdings
}

// buildSnapshot merges manual holdings with discovered balances and binds
// prices. Discovered quantities supersede the stored quantity for the
// same symbol (live chain data is the better truth); symbols only seen
// on-chain enter with the default risk policy. Risk level and target
// allocation always come from the asset table when a row exists.
func (s *RefreshService) buildSnapshot(ctx context.Context, assets []model.Asset, discovered []model.WalletHolding) *model.PortfolioSnapshot {
	type draft struct {
		asset model.PricedAsset
	}

	drafts := make(map[string]*draft)

	for _, a := range assets {
		symbol := strings.ToUpper(a.Symbol)
		drafts[symbol] = &draft{
			asset: model.PricedAsset{
				Symbol:           symbol,
				Name:             a.Name,
				Quantity:         a.Quantity,
				RiskLevel:        a.RiskLevel,
				TargetAllocation: a.TargetAllocation,
			},
		}
	}

	for symbol, wallets := range chain.SumBySymbol(discovered) {
		symbol = strings.ToUpper(symbol)

		var quantity float64
		for _, w := range wallets {
			quantity += w.Quantity
		}

		d, ok := drafts[symbol]
		if !ok {
			d = &draft{
				asset: model.PricedAsset{
					Symbol:    symbol,
					Name:      wallets[0].Name,
					RiskLevel: CategorizeRisk(symbol),
				},
			}
			drafts[symbol] = d
		}

		d.asset.Quantity = quantity
		d.asset.Wallets = append(d.asset.Wallets, wallets...)
	}

	symbols := make([]string, 0, len(drafts))
	for symbol := range drafts {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	prices := s.prices.Prices(ctx, symbols)

	snap := &model.PortfolioSnapshot{
		Assets:    make([]model.PricedAsset, 0, len(symbols)),
		Prices:    prices,
		FetchedAt: time.Now().UTC(),
	}

	for _, symbol := range symbols {
		asset := drafts[symbol].asset
		asset.Price = prices[symbol]
		asset.Value = asset.Quantity * asset.Price
		snap.Assets = append(snap.Assets, asset)
		snap.TotalValue += asset.Value
	}

	return snap
}
