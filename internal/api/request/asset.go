package request

type AssetRequest struct {
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	Quantity         float64 `json:"quantity"`
	RiskLevel        string  `json:"riskLevel"`
	TargetAllocation float64 `json:"targetAllocation"`
}
