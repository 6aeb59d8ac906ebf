package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
// These errors indicate that a requested resource does not exist. They are
// surfaced to callers as a defined negative result (404), never as a
// failure that aborts the caller's flow.
var (
	// ErrInvestorNotFound indicates that an investor with the given ID or code does not exist.
	ErrInvestorNotFound = errors.New("investor not found")

	// ErrAssetNotFound indicates that a portfolio asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a ledger transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrSettingNotFound indicates that a system setting key has no stored value.
	ErrSettingNotFound = errors.New("setting not found")
)

// Validation errors represent malformed input to the ledger or portfolio.
// The offending write is rejected; nothing is recorded.
var (
	// ErrInvalidAmount indicates that a transaction amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidTransactionType indicates a type outside Investment/Redemption.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidQuantity indicates that an asset quantity is negative.
	ErrInvalidQuantity = errors.New("quantity cannot be negative")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Provider errors represent failures of external price or balance sources.
// They are recovered locally: the affected data point defaults to
// zero/empty, a diagnostic is logged, and valuation proceeds with degraded
// data. A provider failure is never fatal to a refresh batch.
var (
	// ErrPriceUnavailable indicates that no price source returned a quote for a symbol.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrBalanceUnavailable indicates that a wallet's balance discovery failed.
	ErrBalanceUnavailable = errors.New("balance unavailable")

	// ErrUnsupportedChain indicates a wallet registered on a chain with no provider.
	ErrUnsupportedChain = errors.New("unsupported chain")
)

// Operation failure errors represent system-level failures when retrieving
// or processing data.
var (
	ErrFailedToRetrieveInvestors    = errors.New("failed to retrieve investors")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveAssets       = errors.New("failed to retrieve assets")
	ErrFailedToRetrievePerformance  = errors.New("failed to retrieve performance history")
	ErrFailedToGetFundSummary       = errors.New("failed to get fund summary")
)
