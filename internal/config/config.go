package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Refresh   RefreshConfig
	Providers ProviderConfig
	Wallets   []model.Wallet
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// RefreshConfig controls the background portfolio refresh.
type RefreshConfig struct {
	Schedule    string        // cron spec for the background refresh
	CallTimeout time.Duration // per provider call, keeps one slow source from stalling the batch
}

// ProviderConfig holds endpoints and keys for external data sources.
// API keys here are bootstrap values; keys set at runtime are stored
// fernet-encrypted in system_setting and take precedence.
type ProviderConfig struct {
	CoinGeckoURL    string
	CoinGeckoAPIKey string
	SolanaRPCURL    string
	EthereumRPCURL  string
	EthplorerURL    string
	EthplorerAPIKey string
	HyperliquidURL  string
	FernetKey       string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/fund_manager.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Refresh: RefreshConfig{
			Schedule:    getEnv("REFRESH_SCHEDULE", "@every 5m"),
			CallTimeout: getDuration("PROVIDER_CALL_TIMEOUT", 15*time.Second),
		},
		Providers: ProviderConfig{
			CoinGeckoURL:    getEnv("COINGECKO_URL", "https://api.coingecko.com/api/v3"),
			CoinGeckoAPIKey: os.Getenv("COINGECKO_API_KEY"),
			SolanaRPCURL:    getEnv("SOLANA_RPC_URL", "https://api.mainnet-beta.solana.com"),
			EthereumRPCURL:  getEnv("ETHEREUM_RPC_URL", "https://eth.llamarpc.com"),
			EthplorerURL:    getEnv("ETHPLORER_URL", "https://api.ethplorer.io"),
			EthplorerAPIKey: getEnv("ETHPLORER_API_KEY", "freekey"),
			HyperliquidURL:  getEnv("HYPERLIQUID_URL", "https://api.hyperliquid.xyz"),
			FernetKey:       os.Getenv("FERNET_KEY"),
		},
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		config.CORS.AllowedOrigins = strings.Split(origins, ",")
	}

	wallets, err := parseWallets(os.Getenv("FUND_WALLETS"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse FUND_WALLETS: %w", err)
	}
	config.Wallets = wallets

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// parseWallets decodes the wallet registry from a JSON array, e.g.
// [{"name":"Main","chain":"solana","address":"...","active":true}].
// An empty value means no wallet discovery; manual assets still work.
func parseWallets(raw string) ([]model.Wallet, error) {
	if raw == "" {
		return nil, nil
	}

	var wallets []model.Wallet
	if err := json.Unmarshal([]byte(raw), &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getDuration gets a duration environment variable or returns a default value
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
