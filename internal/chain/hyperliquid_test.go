package chain_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/chain"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestHyperliquidProvider_Balances(t *testing.T) {
	wallet := model.Wallet{Name: "hl-main", Chain: model.ChainHyperliquid, Address: "0xabc", Active: true}

	t.Run("parses spot balances and skips zero or malformed totals", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/info" {
				t.Errorf("Unexpected path %s", r.URL.Path)
			}

			var body map[string]string
			//nolint:errcheck // Test stub
			json.NewDecoder(r.Body).Decode(&body)
			if body["type"] != "spotClearinghouseState" || body["user"] != "0xabc" {
				t.Errorf("Unexpected request body %v", body)
			}

			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // Test stub
			w.Write([]byte(`{"balances":[
				{"coin":"HYPE","total":"12.5"},
				{"coin":"USDC","total":"0"},
				{"coin":"JUNK","total":"n/a"}
			]}`))
		}))
		defer server.Close()

		provider := chain.NewHyperliquidProvider(server.URL, silentLogger())

		holdings, err := provider.Balances(context.Background(), wallet)
		if err != nil {
			t.Fatalf("Balances failed: %v", err)
		}

		if len(holdings) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(holdings))
		}
		if holdings[0].Symbol != "HYPE" || holdings[0].Quantity != 12.5 {
			t.Errorf("Expected HYPE 12.5, got %+v", holdings[0])
		}
		if holdings[0].WalletLabel != "hl-main" || holdings[0].SourceAddress != "0xabc" {
			t.Errorf("Expected wallet attribution, got %+v", holdings[0])
		}
	})

	t.Run("non-200 responses surface as balance-unavailable errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		provider := chain.NewHyperliquidProvider(server.URL, silentLogger())

		_, err := provider.Balances(context.Background(), wallet)
		if err == nil {
			t.Fatal("Expected an error for a 502 response")
		}
		if !errors.Is(err, apperrors.ErrBalanceUnavailable) {
			t.Errorf("Expected ErrBalanceUnavailable, got %v", err)
		}
	})
}

func TestRegistry_ForChain(t *testing.T) {
	provider := chain.NewHyperliquidProvider("http://127.0.0.1:0", silentLogger())
	registry := chain.NewRegistry(provider)

	t.Run("resolves a registered chain", func(t *testing.T) {
		got, err := registry.ForChain(model.ChainHyperliquid)
		if err != nil {
			t.Fatalf("ForChain failed: %v", err)
		}
		if got != provider {
			t.Error("Expected the registered provider back")
		}
	})

	t.Run("unknown chains yield an error", func(t *testing.T) {
		if _, err := registry.ForChain("cosmos"); err == nil {
			t.Error("Expected an error for an unregistered chain")
		}
	})
}

func TestSumBySymbol(t *testing.T) {
	holdings := []model.WalletHolding{
		{Symbol: "SOL", WalletLabel: "a", Quantity: 1},
		{Symbol: "SOL", WalletLabel: "b", Quantity: 2},
		{Symbol: "USDC", WalletLabel: "a", Quantity: 100},
	}

	grouped := chain.SumBySymbol(holdings)

	if len(grouped) != 2 {
		t.Fatalf("Expected 2 symbols, got %d", len(grouped))
	}
	if len(grouped["SOL"]) != 2 {
		t.Errorf("Expected both SOL rows kept, got %d", len(grouped["SOL"]))
	}
	if len(grouped["USDC"]) != 1 {
		t.Errorf("Expected 1 USDC row, got %d", len(grouped["USDC"]))
	}
}
