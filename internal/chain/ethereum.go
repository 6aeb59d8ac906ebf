package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/params"
	"github.com/sirupsen/logrus"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// EthereumProvider discovers balances for EVM wallets: the native ETH
// balance through a JSON-RPC node, and ERC-20 token balances through the
// Ethplorer address API (token enumeration is not practical over plain
// RPC without an indexer).
type EthereumProvider struct {
	rpcURL       string
	ethplorerURL string
	apiKey       string
	httpClient   *http.Client
	log          *logrus.Logger
}

// NewEthereumProvider creates an Ethereum balance provider.
func NewEthereumProvider(rpcURL, ethplorerURL, apiKey string, log *logrus.Logger) *EthereumProvider {
	return &EthereumProvider{
		rpcURL:       rpcURL,
		ethplorerURL: ethplorerURL,
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		log:          log,
	}
}

// Chain implements BalanceProvider.
func (p *EthereumProvider) Chain() string { return model.ChainEthereum }

// Balances implements BalanceProvider. The native balance comes from the
// RPC node; token balances come from Ethplorer. An Ethplorer failure
// degrades to the native balance alone rather than failing the wallet.
func (p *EthereumProvider) Balances(ctx context.Context, wallet model.Wallet) ([]model.WalletHolding, error) {
	if !common.IsHexAddress(wallet.Address) {
		return nil, fmt.Errorf("invalid ethereum address %q", wallet.Address)
	}

	holdings := []model.WalletHolding{}

	eth, err := p.nativeBalance(ctx, wallet.Address)
	if err != nil {
		return nil, err
	}
	if eth > 0 {
		holdings = append(holdings, model.WalletHolding{
			Chain:         model.ChainEthereum,
			WalletLabel:   wallet.Name,
			Symbol:        "ETH",
			Name:          "Ethereum",
			Quantity:      eth,
			SourceAddress: wallet.Address,
		})
	}

	tokens, err := p.tokenBalances(ctx, wallet)
	if err != nil {
		p.log.WithError(err).WithField("wallet", wallet.Name).
			Warn("token enumeration failed, reporting native balance only")
		return holdings, nil
	}

	return append(holdings, tokens...), nil
}

// nativeBalance fetches the wallet's ETH balance at the latest block.
func (p *EthereumProvider) nativeBalance(ctx context.Context, address string) (float64, error) {
	client, err := ethclient.DialContext(ctx, p.rpcURL)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to dial ethereum rpc: %v", apperrors.ErrBalanceUnavailable, err)
	}
	defer client.Close()

	wei, err := client.BalanceAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get ETH balance: %v", apperrors.ErrBalanceUnavailable, err)
	}

	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether)).Float64()
	return eth, nil
}

// ethplorerAddressInfo mirrors the subset of the Ethplorer getAddressInfo
// response the provider reads. Decimals arrives as either a string or a
// number depending on the token.
type ethplorerAddressInfo struct {
	Tokens []struct {
		TokenInfo struct {
			Symbol   string          `json:"symbol"`
			Name     string          `json:"name"`
			Decimals json.RawMessage `json:"decimals"`
		} `json:"tokenInfo"`
		RawBalance float64 `json:"balance"`
	} `json:"tokens"`
}

// tokenBalances fetches ERC-20 balances from Ethplorer.
func (p *EthereumProvider) tokenBalances(ctx context.Context, wallet model.Wallet) ([]model.WalletHolding, error) {
	endpoint := fmt.Sprintf(
		"%s/getAddressInfo/%s?apiKey=%s",
		p.ethplorerURL,
		url.PathEscape(wallet.Address),
		url.QueryEscape(p.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build ethplorer request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ethplorer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ethplorer returned %d", resp.StatusCode)
	}

	var info ethplorerAddressInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode ethplorer response: %w", err)
	}

	holdings := []model.WalletHolding{}
	for _, token := range info.Tokens {
		if token.TokenInfo.Symbol == "" {
			continue
		}

		decimals := parseDecimals(token.TokenInfo.Decimals)
		quantity := token.RawBalance / math.Pow(10, float64(decimals))
		if quantity <= 0 {
			continue
		}

		holdings = append(holdings, model.WalletHolding{
			Chain:         model.ChainEthereum,
			WalletLabel:   wallet.Name,
			Symbol:        token.TokenInfo.Symbol,
			Name:          token.TokenInfo.Name,
			Quantity:      quantity,
			SourceAddress: wallet.Address,
		})
	}

	return holdings, nil
}

// parseDecimals handles Ethplorer's string-or-number decimals field.
// Unparseable values default to 18, the ERC-20 norm.
func parseDecimals(raw json.RawMessage) int {
	var asInt int
	if err := json.Unmarshal(raw, &asInt); err == nil {
		return asInt
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if parsed, err := strconv.Atoi(asString); err == nil {
			return parsed
		}
	}

	return 18
}
