package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// InvestorRepository provides data access methods for the investor table.
type InvestorRepository struct {
	db *sql.DB
}

// NewInvestorRepository creates a new InvestorRepository with the provided database connection.
func NewInvestorRepository(db *sql.DB) *InvestorRepository {
	return &InvestorRepository{db: db}
}

const investorColumns = "id, code, name, COALESCE(email, ''), join_date, created_at"

func scanInvestor(row interface{ Scan(...any) error }) (model.Investor, error) {
	var inv model.Investor
	err := row.Scan(
		&inv.ID,
		&inv.Code,
		&inv.Name,
		&inv.Email,
		&inv.JoinDate,
		&inv.CreatedAt,
	)
	return inv, err
}

// GetInvestors retrieves all investors ordered by join date, oldest first.
// Returns an empty slice if the fund has no investors.
func (r *InvestorRepository) GetInvestors() ([]model.Investor, error) {
	query := `
		SELECT ` + investorColumns + `
		FROM investor
		ORDER BY join_date, created_at
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query investor table: %w", err)
	}
	defer rows.Close()

	investors := []model.Investor{}

	for rows.Next() {
		inv, err := scanInvestor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor table results: %w", err)
		}
		investors = append(investors, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investor table: %w", err)
	}

	return investors, nil
}

// GetInvestorOnID retrieves a single investor by internal ID.
func (r *InvestorRepository) GetInvestorOnID(investorID string) (model.Investor, error) {
	query := `
		SELECT ` + investorColumns + `
		FROM investor
		WHERE id = ?
	`

	inv, err := scanInvestor(r.db.QueryRow(query, investorID))
	if err == sql.ErrNoRows {
		return model.Investor{}, apperrors.ErrInvestorNotFound
	}
	if err != nil {
		return model.Investor{}, fmt.Errorf("failed to query investor: %w", err)
	}

	return inv, nil
}

// GetInvestorOnCode retrieves a single investor by external code.
// The lookup is case-insensitive; the code column is COLLATE NOCASE.
func (r *InvestorRepository) GetInvestorOnCode(code string) (model.Investor, error) {
	query := `
		SELECT ` + investorColumns + `
		FROM investor
		WHERE code = ?
	`

	inv, err := scanInvestor(r.db.QueryRow(query, strings.ToUpper(strings.TrimSpace(code))))
	if err == sql.ErrNoRows {
		return model.Investor{}, apperrors.ErrInvestorNotFound
	}
	if err != nil {
		return model.Investor{}, fmt.Errorf("failed to query investor by code: %w", err)
	}

	return inv, nil
}

// CountInvestors returns the number of investors, used for code generation.
func (r *InvestorRepository) CountInvestors() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM investor").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count investors: %w", err)
	}
	return count, nil
}

// CreateInvestor inserts a new investor row.
func (r *InvestorRepository) CreateInvestor(inv model.Investor) error {
	query := `
		INSERT INTO investor (id, code, name, email, join_date)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, inv.ID, inv.Code, inv.Name, nullable(inv.Email), inv.JoinDate)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert investor: %w", err)
	}

	return nil
}

// DeleteInvestor removes an investor and, through the ON DELETE CASCADE
// constraint, all of their ledger transactions in a single statement. The
// cascade keeps the delete atomic with respect to concurrent reads.
func (r *InvestorRepository) DeleteInvestor(investorID string) error {
	result, err := r.db.Exec("DELETE FROM investor WHERE id = ?", investorID)
	if err != nil {
		return fmt.Errorf("failed to delete investor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestorNotFound
	}

	return nil
}

// nullable converts an empty string to a SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
