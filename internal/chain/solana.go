package chain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/sirupsen/logrus"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// knownMints maps SPL token mints the fund holds to their display symbol
// and name. Token accounts with unknown mints are skipped rather than
// reported under an unreadable mint address.
var knownMints = map[string]struct{ Symbol, Name string }{
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": {"USDC", "USD Coin"},
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": {"USDT", "Tether"},
	"7vfCXTUXx5WJV5JADk17DUJ4ksgau7utNKj4b963voxs": {"ETH", "Ethereum (Wormhole)"},
	"So11111111111111111111111111111111111111112":  {"SOL", "Wrapped SOL"},
}

// SolanaProvider discovers native SOL and SPL token balances through a
// Solana JSON-RPC endpoint.
type SolanaProvider struct {
	client *rpc.Client
	log    *logrus.Logger
}

// NewSolanaProvider creates a Solana balance provider against the given
// RPC endpoint.
func NewSolanaProvider(endpoint string, log *logrus.Logger) *SolanaProvider {
	return &SolanaProvider{
		client: rpc.New(endpoint),
		log:    log,
	}
}

// Chain implements BalanceProvider.
func (p *SolanaProvider) Chain() string { return model.ChainSolana }

// parsedTokenAccount mirrors the jsonParsed encoding of an SPL token
// account returned by getTokenAccountsByOwner.
type parsedTokenAccount struct {
	Parsed struct {
		Info struct {
			Mint        string `json:"mint"`
			TokenAmount struct {
				UIAmount float64 `json:"uiAmount"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

// Balances implements BalanceProvider. It fetches the native SOL balance
// and all SPL token accounts owned by the wallet, reporting only tokens
// with a positive balance.
func (p *SolanaProvider) Balances(ctx context.Context, wallet model.Wallet) ([]model.WalletHolding, error) {
	pubkey, err := solana.PublicKeyFromBase58(wallet.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid solana address %q: %w", wallet.Address, err)
	}

	holdings := []model.WalletHolding{}

	balance, err := p.client.GetBalance(ctx, pubkey, rpc.CommitmentFinalized)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get SOL balance: %v", apperrors.ErrBalanceUnavailable, err)
	}
	if balance.Value > 0 {
		holdings = append(holdings, model.WalletHolding{
			Chain:         model.ChainSolana,
			WalletLabel:   wallet.Name,
			Symbol:        "SOL",
			Name:          "Solana",
			Quantity:      float64(balance.Value) / float64(solana.LAMPORTS_PER_SOL),
			SourceAddress: wallet.Address,
		})
	}

	accounts, err := p.client.GetTokenAccountsByOwner(
		ctx,
		pubkey,
		&rpc.GetTokenAccountsConfig{ProgramId: solana.TokenProgramID.ToPointer()},
		&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingJSONParsed},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get token accounts: %v", apperrors.ErrBalanceUnavailable, err)
	}

	for _, account := range accounts.Value {
		var parsed parsedTokenAccount
		if err := json.Unmarshal(account.Account.Data.GetRawJSON(), &parsed); err != nil {
			p.log.WithError(err).WithField("wallet", wallet.Name).
				Warn("skipping unparseable token account")
			continue
		}

		info := parsed.Parsed.Info
		if info.TokenAmount.UIAmount <= 0 {
			continue
		}

		token, ok := knownMints[info.Mint]
		if !ok {
			p.log.WithFields(logrus.Fields{
				"wallet": wallet.Name,
				"mint":   info.Mint,
			}).Debug("skipping unknown mint")
			continue
		}

		holdings = append(holdings, model.WalletHolding{
			Chain:         model.ChainSolana,
			WalletLabel:   wallet.Name,
			Symbol:        token.Symbol,
			Name:          token.Name,
			Quantity:      info.TokenAmount.UIAmount,
			SourceAddress: wallet.Address,
		})
	}

	return holdings, nil
}
