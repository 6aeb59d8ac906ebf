package testutil

import (
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

var codeSequence atomic.Int64

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

// MakeCode returns a unique investor code for tests.
func MakeCode() string {
	return fmt.Sprintf("T%d", codeSequence.Add(1))
}

// InvestorBuilder provides a fluent interface for creating test investors.
//
// Example usage:
//
//	// Simple creation with defaults
//	investor := testutil.NewInvestor().Build(t, db)
//
//	// Customized investor
//	investor := testutil.NewInvestor().
//	    WithName("Alice Example").
//	    WithJoinDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)).
//	    Build(t, db)
type InvestorBuilder struct {
	ID       string
	Code     string
	Name     string
	Email    string
	JoinDate time.Time
}

// NewInvestor creates an InvestorBuilder with sensible defaults.
func NewInvestor() *InvestorBuilder {
	return &InvestorBuilder{
		ID:       MakeID(),
		Code:     MakeCode(),
		Name:     "Test Investor",
		Email:    "investor@example.com",
		JoinDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithID sets a custom ID.
func (b *InvestorBuilder) WithID(id string) *InvestorBuilder {
	b.ID = id
	return b
}

// WithCode sets a custom investor code.
func (b *InvestorBuilder) WithCode(code string) *InvestorBuilder {
	b.Code = code
	return b
}

// WithName sets a custom name.
func (b *InvestorBuilder) WithName(name string) *InvestorBuilder {
	b.Name = name
	return b
}

// WithEmail sets a custom email.
func (b *InvestorBuilder) WithEmail(email string) *InvestorBuilder {
	b.Email = email
	return b
}

// WithJoinDate sets a custom join date.
func (b *InvestorBuilder) WithJoinDate(joinDate time.Time) *InvestorBuilder {
	b.JoinDate = joinDate
	return b
}

// Build creates the investor in the database and returns it.
func (b *InvestorBuilder) Build(t *testing.T, db *sql.DB) model.Investor {
	t.Helper()

	query := `
		INSERT INTO investor (id, code, name, email, join_date)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Code, b.Name, b.Email, b.JoinDate)
	if err != nil {
		t.Fatalf("Failed to create test investor: %v", err)
	}

	return model.Investor{
		ID:       b.ID,
		Code:     b.Code,
		Name:     b.Name,
		Email:    b.Email,
		JoinDate: b.JoinDate,
	}
}

// TransactionBuilder provides a fluent interface for creating test
// ledger entries.
type TransactionBuilder struct {
	ID         string
	InvestorID string
	Type       string
	Amount     float64
	Date       time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
// The investor ID must always be supplied.
func NewTransaction(investorID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:         MakeID(),
		InvestorID: investorID,
		Type:       model.TransactionInvestment,
		Amount:     1000,
		Date:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// Redemption marks the transaction as a redemption.
func (b *TransactionBuilder) Redemption() *TransactionBuilder {
	b.Type = model.TransactionRedemption
	return b
}

// WithAmount sets the transaction amount.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.Amount = amount
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, investor_id, type, amount, date)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.InvestorID, b.Type, b.Amount, b.Date)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:         b.ID,
		InvestorID: b.InvestorID,
		Type:       b.Type,
		Amount:     b.Amount,
		Date:       b.Date,
	}
}

// AssetBuilder provides a fluent interface for creating test portfolio
// assets.
type AssetBuilder struct {
	ID               string
	Symbol           string
	Name             string
	Quantity         float64
	RiskLevel        string
	TargetAllocation float64
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset(symbol string) *AssetBuilder {
	return &AssetBuilder{
		ID:        MakeID(),
		Symbol:    symbol,
		Name:      symbol,
		Quantity:  1,
		RiskLevel: model.RiskLow,
	}
}

// WithName sets a custom display name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithQuantity sets the held quantity.
func (b *AssetBuilder) WithQuantity(quantity float64) *AssetBuilder {
	b.Quantity = quantity
	return b
}

// WithRiskLevel sets the risk tier.
func (b *AssetBuilder) WithRiskLevel(riskLevel string) *AssetBuilder {
	b.RiskLevel = riskLevel
	return b
}

// WithTargetAllocation sets the advisory target allocation percentage.
func (b *AssetBuilder) WithTargetAllocation(target float64) *AssetBuilder {
	b.TargetAllocation = target
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	query := `
		INSERT INTO asset (id, symbol, name, quantity, risk_level, target_allocation)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Symbol, b.Name, b.Quantity, b.RiskLevel, b.TargetAllocation)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:               b.ID,
		Symbol:           b.Symbol,
		Name:             b.Name,
		Quantity:         b.Quantity,
		RiskLevel:        b.RiskLevel,
		TargetAllocation: b.TargetAllocation,
	}
}

// CreateSample inserts one performance sample row.
func CreateSample(t *testing.T, db *sql.DB, date time.Time, portfolioValue, cumulativeReturn float64) model.PerformanceSample {
	t.Helper()

	sample := model.PerformanceSample{
		ID:                      MakeID(),
		Date:                    date,
		PortfolioValue:          portfolioValue,
		CumulativeReturnPercent: cumulativeReturn,
	}

	query := `
		INSERT INTO performance_sample (id, date, portfolio_value, cumulative_return_percent)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, sample.ID, sample.Date, sample.PortfolioValue, sample.CumulativeReturnPercent)
	if err != nil {
		t.Fatalf("Failed to create test performance sample: %v", err)
	}

	return sample
}

// Convenience functions

// CreateInvestor creates an investor with the given name and default values.
func CreateInvestor(t *testing.T, db *sql.DB, name string) model.Investor {
	t.Helper()
	return NewInvestor().WithName(name).Build(t, db)
}

// CreateInvestment records an investment of the given amount for the investor.
func CreateInvestment(t *testing.T, db *sql.DB, investorID string, amount float64, date time.Time) model.Transaction {
	t.Helper()
	return NewTransaction(investorID).WithAmount(amount).WithDate(date).Build(t, db)
}

// CreateRedemption records a redemption of the given amount for the investor.
func CreateRedemption(t *testing.T, db *sql.DB, investorID string, amount float64, date time.Time) model.Transaction {
	t.Helper()
	return NewTransaction(investorID).Redemption().WithAmount(amount).WithDate(date).Build(t, db)
}
