package validation

import (
	"fmt"
	"strings"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/request"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// ValidTransactionType contains the allowed ledger entry types.
var ValidTransactionType = map[string]bool{
	model.TransactionInvestment: true,
	model.TransactionRedemption: true,
}

// ValidateCreateTransaction validates a ledger entry creation request.
//
// Required fields:
//   - investorId: Must be a valid UUID
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be Investment or Redemption
//   - amount: Must be positive
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.InvestorID); err != nil {
		return err
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := ParseTime(req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Amount <= 0.0 {
		errors["amount"] = "amount must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
