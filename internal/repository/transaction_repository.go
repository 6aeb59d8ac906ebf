package repository

import (
	"database/sql"
	"fmt"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// TransactionRepository provides data access methods for the ledger table.
// The ledger is append-only: there are deliberately no update methods, and
// rows disappear only through the investor delete cascade.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateTransaction appends a ledger entry.
func (r *TransactionRepository) CreateTransaction(tx model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, investor_id, type, amount, date)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, tx.ID, tx.InvestorID, tx.Type, tx.Amount, tx.Date)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetTransactionOnID retrieves a single ledger entry by ID.
func (r *TransactionRepository) GetTransactionOnID(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, investor_id, type, amount, date, created_at
		FROM "transaction"
		WHERE id = ?
	`

	var tx model.Transaction
	err := r.db.QueryRow(query, transactionID).Scan(
		&tx.ID,
		&tx.InvestorID,
		&tx.Type,
		&tx.Amount,
		&tx.Date,
		&tx.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to query transaction: %w", err)
	}

	return tx, nil
}

// GetTransactionsOnInvestorID retrieves all ledger entries for one
// investor in chronological order. Returns an empty slice for an investor
// with no transactions (not an error).
func (r *TransactionRepository) GetTransactionsOnInvestorID(investorID string) ([]model.Transaction, error) {
	query := `
		SELECT id, investor_id, type, amount, date, created_at
		FROM "transaction"
		WHERE investor_id = ?
		ORDER BY date, created_at
	`

	return r.queryTransactions(query, investorID)
}

// GetRecentTransactions retrieves the last n ledger entries, most recent
// first. Returns fewer than n if the ledger is shorter, and an empty slice
// if the ledger is empty.
func (r *TransactionRepository) GetRecentTransactions(n int) ([]model.Transaction, error) {
	query := `
		SELECT id, investor_id, type, amount, date, created_at
		FROM "transaction"
		ORDER BY date DESC, created_at DESC
		LIMIT ?
	`

	return r.queryTransactions(query, n)
}

// NetInvestmentValue returns the investor's cumulative investments minus
// cumulative redemptions. An investor with no transactions nets to 0.
func (r *TransactionRepository) NetInvestmentValue(investorID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)
		FROM "transaction"
		WHERE investor_id = ?
	`

	var net float64
	if err := r.db.QueryRow(query, model.TransactionInvestment, investorID).Scan(&net); err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return net, nil
}

// NetInvestmentValues returns net investment per investor for the whole
// ledger in one query. Investors with no transactions are absent from the
// map; callers treat a missing key as 0.
func (r *TransactionRepository) NetInvestmentValues() (map[string]float64, error) {
	query := `
		SELECT investor_id,
		       COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)
		FROM "transaction"
		GROUP BY investor_id
	`

	rows, err := r.db.Query(query, model.TransactionInvestment)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction sums: %w", err)
	}
	defer rows.Close()

	nets := make(map[string]float64)

	for rows.Next() {
		var investorID string
		var net float64
		if err := rows.Scan(&investorID, &net); err != nil {
			return nil, fmt.Errorf("failed to scan transaction sums: %w", err)
		}
		nets[investorID] = net
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction sums: %w", err)
	}

	return nets, nil
}

// FirstTransactionDate returns the date of the investor's earliest ledger
// entry. The boolean is false when the investor has no transactions.
func (r *TransactionRepository) FirstTransactionDate(investorID string) (model.Transaction, bool, error) {
	query := `
		SELECT id, investor_id, type, amount, date, created_at
		FROM "transaction"
		WHERE investor_id = ?
		ORDER BY date, created_at
		LIMIT 1
	`

	var tx model.Transaction
	err := r.db.QueryRow(query, investorID).Scan(
		&tx.ID,
		&tx.InvestorID,
		&tx.Type,
		&tx.Amount,
		&tx.Date,
		&tx.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, false, nil
	}
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("failed to query first transaction: %w", err)
	}

	return tx, true, nil
}

func (r *TransactionRepository) queryTransactions(query string, args ...any) ([]model.Transaction, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var tx model.Transaction

		err := rows.Scan(
			&tx.ID,
			&tx.InvestorID,
			&tx.Type,
			&tx.Amount,
			&tx.Date,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		transactions = append(transactions, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}
