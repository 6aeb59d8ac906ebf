package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
)

// symbolToID maps ticker symbols to CoinGecko coin ids. Symbols not in the
// table fall back to the lowercased symbol, which covers most listings.
var symbolToID = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"USDC":  "usd-coin",
	"USDT":  "tether",
	"BNB":   "binancecoin",
	"ADA":   "cardano",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
	"DOT":   "polkadot",
	"LINK":  "chainlink",
	"HYPE":  "hyperliquid",
}

// CoinGeckoClient fetches spot prices from the CoinGecko simple/price
// endpoint. Requests are throttled to stay inside the public API's rate
// limit.
type CoinGeckoClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewCoinGeckoClient creates a CoinGecko price source. The apiKey may be
// empty; the public endpoint works without one at a lower rate limit.
func NewCoinGeckoClient(baseURL, apiKey string) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Public CoinGecko allows roughly 30 calls/minute.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// SetAPIKey replaces the API key, used when the stored key changes at
// runtime.
func (c *CoinGeckoClient) SetAPIKey(key string) {
	c.apiKey = key
}

// Name implements Source.
func (c *CoinGeckoClient) Name() string { return "coingecko" }

// Prices implements Source. It resolves symbols to coin ids, performs one
// batched simple/price call, and maps the response back to the requested
// symbols. Symbols CoinGecko does not know are absent from the result.
func (c *CoinGeckoClient) Prices(ctx context.Context, symbols []string) (map[string]float64, error) {
	if len(symbols) == 0 {
		return map[string]float64{}, nil
	}

	idToSymbol := make(map[string]string, len(symbols))
	ids := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		id := coinID(symbol)
		idToSymbol[id] = strings.ToUpper(symbol)
		ids = append(ids, id)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait interrupted: %w", err)
	}

	endpoint := fmt.Sprintf(
		"%s/simple/price?ids=%s&vs_currencies=usd",
		c.baseURL,
		url.QueryEscape(strings.Join(ids, ",")),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build price request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("price request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", apperrors.ErrPriceUnavailable, resp.StatusCode, string(body))
	}

	var payload map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode price response: %w", err)
	}

	prices := make(map[string]float64, len(payload))
	for id, quote := range payload {
		if symbol, ok := idToSymbol[id]; ok {
			prices[symbol] = quote.USD
		}
	}

	return prices, nil
}

// coinID resolves a ticker symbol to a CoinGecko coin id.
func coinID(symbol string) string {
	if id, ok := symbolToID[strings.ToUpper(symbol)]; ok {
		return id
	}
	return strings.ToLower(symbol)
}
