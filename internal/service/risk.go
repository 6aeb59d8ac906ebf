package service

import (
	"strings"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
)

// riskTable is the fixed symbol→tier policy. This is a policy decision,
// not a computed property: anything not listed here is treated as
// high-risk until a manager classifies it.
var riskTable = map[string]string{
	"BTC":   model.RiskLow,
	"ETH":   model.RiskLow,
	"SOL":   model.RiskLow,
	"USDC":  model.RiskLow,
	"USDT":  model.RiskLow,
	"BNB":   model.RiskMedium,
	"ADA":   model.RiskMedium,
	"AVAX":  model.RiskMedium,
	"MATIC": model.RiskMedium,
	"DOT":   model.RiskMedium,
	"LINK":  model.RiskMedium,
}

// CategorizeRisk maps an asset symbol to its risk tier. Unknown symbols
// default to High.
func CategorizeRisk(symbol string) string {
	if tier, ok := riskTable[strings.ToUpper(symbol)]; ok {
		return tier
	}
	return model.RiskHigh
}
