package request

type CreateTransactionRequest struct {
	InvestorID string  `json:"investorId"`
	Type       string  `json:"type"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
}
