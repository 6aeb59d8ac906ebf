package pricing_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/pricing"
)

// stubSource is a test double that serves a fixed table or fails outright.
type stubSource struct {
	name   string
	prices map[string]float64
	err    error
	calls  int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Prices(_ context.Context, symbols []string) (map[string]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	found := make(map[string]float64)
	for _, symbol := range symbols {
		if price, ok := s.prices[symbol]; ok {
			found[symbol] = price
		}
	}
	return found, nil
}

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestChain_Prices(t *testing.T) {
	ctx := context.Background()

	t.Run("first source wins for symbols it can price", func(t *testing.T) {
		primary := &stubSource{name: "primary", prices: map[string]float64{"BTC": 50000}}
		fallback := &stubSource{name: "fallback", prices: map[string]float64{"BTC": 1, "USDC": 1}}
		chain := pricing.NewChain(silentLogger(), primary, fallback)

		prices := chain.Prices(ctx, []string{"BTC", "USDC"})

		if prices["BTC"] != 50000 {
			t.Errorf("Expected primary price 50000, got %v", prices["BTC"])
		}
		if prices["USDC"] != 1 {
			t.Errorf("Expected fallback price 1, got %v", prices["USDC"])
		}
	})

	t.Run("a failing source falls through to the next", func(t *testing.T) {
		broken := &stubSource{name: "broken", err: errors.New("rate limited")}
		fallback := &stubSource{name: "fallback", prices: map[string]float64{"ETH": 2000}}
		chain := pricing.NewChain(silentLogger(), broken, fallback)

		prices := chain.Prices(ctx, []string{"ETH"})

		if prices["ETH"] != 2000 {
			t.Errorf("Expected fallback price 2000, got %v", prices["ETH"])
		}
	})

	t.Run("symbols no source can price default to zero", func(t *testing.T) {
		chain := pricing.NewChain(silentLogger(), &stubSource{name: "empty"})

		prices := chain.Prices(ctx, []string{"OBSCURE"})

		price, ok := prices["OBSCURE"]
		if !ok {
			t.Fatal("Expected an entry for every requested symbol")
		}
		if price != 0 {
			t.Errorf("Expected default price 0, got %v", price)
		}
	})

	t.Run("later sources are skipped once everything is priced", func(t *testing.T) {
		primary := &stubSource{name: "primary", prices: map[string]float64{"BTC": 50000}}
		fallback := &stubSource{name: "fallback"}
		chain := pricing.NewChain(silentLogger(), primary, fallback)

		chain.Prices(ctx, []string{"BTC"})

		if fallback.calls != 0 {
			t.Errorf("Expected fallback untouched, got %d calls", fallback.calls)
		}
	})

	t.Run("symbols are normalized to uppercase", func(t *testing.T) {
		source := &stubSource{name: "primary", prices: map[string]float64{"BTC": 50000}}
		chain := pricing.NewChain(silentLogger(), source)

		prices := chain.Prices(ctx, []string{"btc"})

		if prices["BTC"] != 50000 {
			t.Errorf("Expected lowercase request to resolve, got %v", prices)
		}
	})
}

func TestStaticSource(t *testing.T) {
	source := pricing.NewStaticSource(map[string]float64{"usdc": 1})

	found, err := source.Prices(context.Background(), []string{"USDC", "BTC"})
	if err != nil {
		t.Fatalf("Prices failed: %v", err)
	}

	if found["USDC"] != 1 {
		t.Errorf("Expected USDC pinned to 1, got %v", found["USDC"])
	}
	if _, ok := found["BTC"]; ok {
		t.Error("Expected unlisted symbol to be absent, not zero")
	}
}
