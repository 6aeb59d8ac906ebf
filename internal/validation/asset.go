package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/api/request"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)

// ValidRiskLevel contains the allowed risk tiers.
var ValidRiskLevel = map[string]bool{
	model.RiskLow:    true,
	model.RiskMedium: true,
	model.RiskHigh:   true,
	model.RiskDegen:  true,
}

// ValidateAsset validates an asset create/update request.
//
// Constraints:
//   - symbol: 1-10 alphanumeric characters (create only)
//   - name: Must be non-empty
//   - quantity: Must not be negative
//   - riskLevel: Must be one of Low, Medium, High, Degen if provided
//   - targetAllocation: 0-100 if provided
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateAsset(req request.AssetRequest, requireSymbol bool) error {
	errors := make(map[string]string)

	if requireSymbol && !symbolPattern.MatchString(req.Symbol) {
		errors["symbol"] = "symbol must be 1-10 alphanumeric characters"
	}

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}

	if req.RiskLevel != "" && !ValidRiskLevel[req.RiskLevel] {
		errors["riskLevel"] = fmt.Sprintf("invalid risk level: %s", req.RiskLevel)
	}

	if req.TargetAllocation < 0 || req.TargetAllocation > 100 {
		errors["targetAllocation"] = "targetAllocation must be between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
