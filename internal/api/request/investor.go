package request

type CreateInvestorRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	JoinDate string `json:"joinDate"`
}
