package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/neuraread/banking-backend/internal/bank/domain"
)

const unknownField = "N/A"

// CounterpartyDetails is the resolved receiving side of a posting: a
// same-bank account's name and number, or the external descriptor fields.
type CounterpartyDetails struct {
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	BankName      string `json:"bankName,omitempty"`
	IfscCode      string `json:"ifscCode,omitempty"`
}

// HistoryEntry is one sent posting annotated for display.
type HistoryEntry struct {
	PostingID         string               `json:"transactionId"`
	FromAccountNumber string               `json:"fromAccountNumber"`
	FromAccountName   string               `json:"fromAccountName"`
	Amount            decimal.Decimal      `json:"amount"`
	Fee               decimal.Decimal      `json:"charges"`
	Kind              domain.TransferKind  `json:"transactionType"`
	Scope             domain.TransferScope `json:"bankType"`
	Note              string               `json:"note,omitempty"`
	Status            domain.PostingStatus `json:"status"`
	PostedAt          time.Time            `json:"transactionDate"`
	ReceiverDetails   CounterpartyDetails  `json:"receiverDetails"`
}

// HistoryService projects the transaction history for an owner.
type HistoryService struct {
	accounts domain.AccountRepository
	postings domain.PostingRepository
}

func NewHistoryService(accounts domain.AccountRepository, postings domain.PostingRepository) *HistoryService {
	return &HistoryService{accounts: accounts, postings: postings}
}

// ListSent returns every posting whose source account belongs to the owner,
// newest first. Owners without an account get an empty history.
func (s *HistoryService) ListSent(ctx context.Context, userID int64) ([]HistoryEntry, error) {
	account, err := s.accounts.FindByUser(ctx, userID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return []HistoryEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	postings, err := s.postings.ListBySourceAccounts(ctx, []int64{account.ID})
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(postings))
	for _, p := range postings {
		entry := HistoryEntry{
			PostingID:         p.PostingID,
			FromAccountNumber: account.AccountNumber,
			FromAccountName:   account.AccountName,
			Amount:            p.Amount,
			Fee:               p.Fee,
			Kind:              p.Kind,
			Scope:             p.Scope,
			Note:              p.Note,
			Status:            p.Status,
			PostedAt:          p.PostedAt,
			ReceiverDetails:   counterparty(p),
		}
		if p.SourceAccount != nil {
			entry.FromAccountNumber = p.SourceAccount.AccountNumber
			entry.FromAccountName = p.SourceAccount.AccountName
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func counterparty(p domain.Posting) CounterpartyDetails {
	if p.Scope == domain.SameBank {
		details := CounterpartyDetails{
			AccountNumber: unknownField,
			AccountName:   unknownField,
		}
		if p.DestinationAccount != nil {
			details.AccountNumber = p.DestinationAccount.AccountNumber
			details.AccountName = p.DestinationAccount.AccountName
		}
		return details
	}

	details := CounterpartyDetails{
		AccountNumber: unknownField,
		AccountName:   unknownField,
		BankName:      unknownField,
		IfscCode:      unknownField,
	}
	if p.ExternalDetails != nil {
		if p.ExternalDetails.AccountNumber != "" {
			details.AccountNumber = p.ExternalDetails.AccountNumber
		}
		if p.ExternalDetails.AccountName != "" {
			details.AccountName = p.ExternalDetails.AccountName
		}
		if p.ExternalDetails.BankName != "" {
			details.BankName = p.ExternalDetails.BankName
		}
		if p.ExternalDetails.IfscCode != "" {
			details.IfscCode = p.ExternalDetails.IfscCode
		}
	}
	return details
}
