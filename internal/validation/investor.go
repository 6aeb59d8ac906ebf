package validation

import (
	"strings"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/request"
)

// ValidateCreateInvestor validates an investor creation request.
//
// Required fields:
//   - name: Must be non-empty
//   - joinDate: Must be in YYYY-MM-DD format if provided
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateInvestor(req request.CreateInvestorRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if req.JoinDate != "" {
		if _, err := ParseTime(req.JoinDate); err != nil {
			errors["joinDate"] = err.Error()
		}
	}

	if req.Email != "" && !strings.Contains(req.Email, "@") {
		errors["email"] = "email is not valid"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
