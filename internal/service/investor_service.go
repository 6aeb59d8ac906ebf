package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/repository"
)

// InvestorService handles investor lifecycle operations: creation with
// code generation, lookup by id or external code, and cascade deletion.
type InvestorService struct {
	investorRepo *repository.InvestorRepository
}

// NewInvestorService creates a new InvestorService
func NewInvestorService(investorRepo *repository.InvestorRepository) *InvestorService {
	return &InvestorService{
		investorRepo: investorRepo,
	}
}

// GetAllInvestors returns all investors, oldest first.
func (s *InvestorService) GetAllInvestors() ([]model.Investor, error) {
	investors, err := s.investorRepo.GetInvestors()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFailedToRetrieveInvestors, err)
	}
	return investors, nil
}

// GetInvestorOnID returns a single investor by internal id.
func (s *InvestorService) GetInvestorOnID(investorID string) (model.Investor, error) {
	return s.investorRepo.GetInvestorOnID(investorID)
}

// GetInvestorOnCode resolves an external investor code (case-insensitive)
// to the investor record. An unknown code yields
// apperrors.ErrInvestorNotFound, a defined negative result.
func (s *InvestorService) GetInvestorOnCode(code string) (model.Investor, error) {
	if strings.TrimSpace(code) == "" {
		return model.Investor{}, apperrors.ErrInvestorNotFound
	}
	return s.investorRepo.GetInvestorOnCode(code)
}

// CreateInvestor registers a new investor and assigns their external code
// from the display name initials plus a sequence number.
func (s *InvestorService) CreateInvestor(name, email string, joinDate time.Time) (model.Investor, error) {
	count, err := s.investorRepo.CountInvestors()
	if err != nil {
		return model.Investor{}, err
	}

	investor := model.Investor{
		ID:       uuid.New().String(),
		Code:     generateCode(name, count+1),
		Name:     name,
		Email:    email,
		JoinDate: joinDate.UTC(),
	}

	if err := s.investorRepo.CreateInvestor(investor); err != nil {
		return model.Investor{}, err
	}

	return investor, nil
}

// DeleteInvestor removes an investor together with their ledger entries.
// The transaction cascade is a single database statement, so a concurrent
// read sees either the investor with all transactions or neither.
func (s *InvestorService) DeleteInvestor(investorID string) error {
	return s.investorRepo.DeleteInvestor(investorID)
}

// generateCode builds the external investor code: first and last initial
// of the display name followed by the investor's sequence number, e.g.
// "John Doe" as the third investor becomes JD3. Missing name parts fall
// back to X so the code always has two leading letters.
func generateCode(name string, sequence int) string {
	parts := strings.Fields(strings.TrimSpace(name))

	first, last := "X", "X"
	if len(parts) > 0 {
		first = initial(parts[0])
		last = initial(parts[len(parts)-1])
	}

	return fmt.Sprintf("%s%s%d", first, last, sequence)
}

func initial(word string) string {
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return strings.ToUpper(string(r))
		}
	}
	return "X"
}
