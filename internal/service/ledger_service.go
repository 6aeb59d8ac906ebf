package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/WAGMIFund01/crypto-investment-manager/internal/apperrors"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/model"
	"github.com/WAGMIFund01/crypto-investment-manager/internal/repository"
)

// LedgerService owns the append-only event log of investor cash flows.
// Entries are validated on the way in and never mutated afterwards; the
// only removal path is the investor delete cascade.
type LedgerService struct {
	transactionRepo *repository.TransactionRepository
	investorRepo    *repository.InvestorRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	transactionRepo *repository.TransactionRepository,
	investorRepo *repository.InvestorRepository,
) *LedgerService {
	return &LedgerService{
		transactionRepo: transactionRepo,
		investorRepo:    investorRepo,
	}
}

// RecordTransaction appends a cash-flow event to the ledger.
//
// Validation failures (non-positive amount, unknown type, unknown
// investor) reject the write; nothing is recorded.
func (s *LedgerService) RecordTransaction(investorID, txType string, amount float64, date time.Time) (model.Transaction, error) {
	if amount <= 0 {
		return model.Transaction{}, apperrors.ErrInvalidAmount
	}
	if txType != model.TransactionInvestment && txType != model.TransactionRedemption {
		return model.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidTransactionType, txType)
	}

	if _, err := s.investorRepo.GetInvestorOnID(investorID); err != nil {
		if errors.Is(err, apperrors.ErrInvestorNotFound) {
			return model.Transaction{}, apperrors.ErrInvestorNotFound
		}
		return model.Transaction{}, err
	}

	tx := model.Transaction{
		ID:         uuid.New().String(),
		InvestorID: investorID,
		Type:       txType,
		Amount:     amount,
		Date:       date.UTC(),
	}

	if err := s.transactionRepo.CreateTransaction(tx); err != nil {
		return model.Transaction{}, err
	}

	return tx, nil
}

// NetInvestmentValue returns cumulative investments minus cumulative
// redemptions for one investor. An investor with no transactions nets to
// 0; that is not an error.
func (s *LedgerService) NetInvestmentValue(investorID string) (float64, error) {
	return s.transactionRepo.NetInvestmentValue(investorID)
}

// GetTransactionsOnInvestorID returns one investor's ledger entries in
// chronological order.
func (s *LedgerService) GetTransactionsOnInvestorID(investorID string) ([]model.Transaction, error) {
	transactions, err := s.transactionRepo.GetTransactionsOnInvestorID(investorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFailedToRetrieveTransactions, err)
	}
	return transactions, nil
}

// RecentTransactions returns the last n ledger entries, most recent first,
// enriched with investor code and name. Returns fewer than n when the
// ledger is shorter, and an empty slice when the ledger is empty.
func (s *LedgerService) RecentTransactions(n int) ([]model.TransactionResponse, error) {
	transactions, err := s.transactionRepo.GetRecentTransactions(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFailedToRetrieveTransactions, err)
	}

	investors, err := s.investorRepo.GetInvestors()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFailedToRetrieveInvestors, err)
	}

	byID := make(map[string]model.Investor, len(investors))
	for _, inv := range investors {
		byID[inv.ID] = inv
	}

	responses := make([]model.TransactionResponse, len(transactions))
	for i, tx := range transactions {
		inv := byID[tx.InvestorID]
		responses[i] = model.TransactionResponse{
			ID:           tx.ID,
			InvestorID:   tx.InvestorID,
			InvestorCode: inv.Code,
			InvestorName: inv.Name,
			Type:         tx.Type,
			Amount:       tx.Amount,
			Date:         tx.Date,
		}
	}

	return responses, nil
}
