// Package pricing resolves asset symbols to current USD prices.
//
// Prices come from a prioritized chain of sources: the live aggregator
// first, then a static fallback table, with 0 as the final default. A
// symbol no source can price is worth 0 until a price arrives; it is never
// an error that halts valuation.
package pricing

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// Source returns USD prices for a set of asset symbols. Symbols the source
// cannot price are simply absent from the result map.
type Source interface {
	Prices(ctx context.Context, symbols []string) (map[string]float64, error)
	Name() string
}

// Chain queries sources in priority order. Each source is asked only for
// the symbols still unpriced by the sources before it. A failing source is
// logged and skipped; the chain itself never returns an error.
type Chain struct {
	sources []Source
	log     *logrus.Logger
}

// NewChain creates a price source chain. Sources are tried in the order
// given.
func NewChain(log *logrus.Logger, sources ...Source) *Chain {
	return &Chain{sources: sources, log: log}
}

// Prices resolves as many of the requested symbols as possible. The result
// contains an entry for every requested symbol; symbols no source priced
// map to 0.
func (c *Chain) Prices(ctx context.Context, symbols []string) map[string]float64 {
	prices := make(map[string]float64, len(symbols))

	remaining := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		remaining = append(remaining, strings.ToUpper(symbol))
	}

	for _, source := range c.sources {
		if len(remaining) == 0 {
			break
		}

		found, err := source.Prices(ctx, remaining)
		if err != nil {
			c.log.WithError(err).WithField("source", source.Name()).
				Warn("price source failed, falling through")
			continue
		}

		next := remaining[:0]
		for _, symbol := range remaining {
			if price, ok := found[symbol]; ok {
				prices[symbol] = price
			} else {
				next = append(next, symbol)
			}
		}
		remaining = next
	}

	// Whatever is left is valueless until a price arrives.
	for _, symbol := range remaining {
		prices[symbol] = 0
	}

	return prices
}

// StaticSource prices symbols from a fixed table. It backstops the live
// aggregator for tokens it does not list.
type StaticSource struct {
	prices map[string]float64
}

// NewStaticSource creates a static price source from a symbol→price table.
func NewStaticSource(prices map[string]float64) *StaticSource {
	table := make(map[string]float64, len(prices))
	for symbol, price := range prices {
		table[strings.ToUpper(symbol)] = price
	}
	return &StaticSource{prices: table}
}

// Name implements Source.
func (s *StaticSource) Name() string { return "static" }

// Prices implements Source.
func (s *StaticSource) Prices(_ context.Context, symbols []string) (map[string]float64, error) {
	found := make(map[string]float64)
	for _, symbol := range symbols {
		if price, ok := s.prices[strings.ToUpper(symbol)]; ok {
			found[symbol] = price
		}
	}
	return found, nil
}

// DefaultFallbackPrices is the static backstop table for tokens the fund
// holds that the aggregator does not reliably list. Stablecoins pin to 1.
var DefaultFallbackPrices = map[string]float64{
	"USDC": 1.00,
	"USDT": 1.00,
}
