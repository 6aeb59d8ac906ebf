package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// HyperliquidProvider discovers spot balances on Hyperliquid through its
// public info endpoint.
type HyperliquidProvider struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewHyperliquidProvider creates a Hyperliquid balance provider.
func NewHyperliquidProvider(baseURL string, log *logrus.Logger) *HyperliquidProvider {
	return &HyperliquidProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

// Chain implements BalanceProvider.
func (p *HyperliquidProvider) Chain() string { return model.ChainHyperliquid }

// spotState mirrors the spotClearinghouseState response. Quantities arrive
// as decimal strings.
type spotState struct {
	Balances []struct {
		Coin  string `json:"coin"`
		Total string `json:"total"`
	} `json:"balances"`
}

// Balances implements BalanceProvider.
func (p *HyperliquidProvider) Balances(ctx context.Context, wallet model.Wallet) ([]model.WalletHolding, error) {
	payload, err := json.Marshal(map[string]string{
		"type": "spotClearinghouseState",
		"user": wallet.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build info request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/info", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build info request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: hyperliquid request failed: %v", apperrors.ErrBalanceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: hyperliquid returned %d", apperrors.ErrBalanceUnavailable, resp.StatusCode)
	}

	var state spotState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("%w: failed to decode hyperliquid response: %v", apperrors.ErrBalanceUnavailable, err)
	}

	holdings := []model.WalletHolding{}
	for _, balance := range state.Balances {
		quantity, err := strconv.ParseFloat(balance.Total, 64)
		if err != nil {
			p.log.WithFields(logrus.Fields{
				"wallet": wallet.Name,
				"coin":   balance.Coin,
			}).Warn("skipping balance with unparseable total")
			continue
		}
		if quantity <= 0 {
			continue
		}

		holdings = append(holdings, model.WalletHolding{
			Chain:         model.ChainHyperliquid,
			WalletLabel:   wallet.Name,
			Symbol:        balance.Coin,
			Name:          balance.Coin,
			Quantity:      quantity,
			SourceAddress: wallet.Address,
		})
	}

	return holdings, nil
}
