package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/neuraread/banking-backend/internal/bank/domain"
)

// TransferRequest is the input DTO for posting a transfer. Amount travels as
// a string to keep decimal precision across the API boundary.
type TransferRequest struct {
	FromAccount     string
	ToAccount       string
	Amount          string
	Kind            domain.TransferKind
	Scope           domain.TransferScope
	Note            string
	ExternalDetails *domain.ExternalBankDetails
}

// PostingResult carries the source posting and the balances after commit.
// ReceiverBalance is nil for external transfers.
type PostingResult struct {
	Posting         *domain.Posting
	SenderBalance   decimal.Decimal
	ReceiverBalance *decimal.Decimal
}

// LedgerService posts transfers: it validates funds, applies the scope fee,
// moves balances, and appends the ledger entries. All writes for one transfer
// happen in a single storage transaction.
type LedgerService struct {
	txm      domain.TxManager
	accounts domain.AccountRepository
	postings domain.PostingRepository
	now      func() time.Time
}

func NewLedgerService(txm domain.TxManager, accounts domain.AccountRepository, postings domain.PostingRepository) *LedgerService {
	return &LedgerService{
		txm:      txm,
		accounts: accounts,
		postings: postings,
		now:      time.Now,
	}
}

// Post executes one transfer.
//
// Withdraw debits amount plus the scope fee from the source; Deposit credits
// amount with no fee in the balance math (the posting still records the
// scope fee, matching the recorded charges of the legacy system). SameBank
// transfers additionally credit the destination and write a mirrored
// destination posting with the kind flipped and no fee. External transfers
// only record the destination descriptor.
func (s *LedgerService) Post(ctx context.Context, req TransferRequest) (*PostingResult, error) {
	fee := domain.FeeFor(req.Scope)

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, domain.ErrInvalidAmount
	}
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	var result *PostingResult
	err = s.txm.WithinTx(ctx, func(ctx context.Context) error {
		source, err := s.accounts.FindByNumber(ctx, req.FromAccount)
		if err != nil {
			return err
		}

		var senderDelta decimal.Decimal
		switch req.Kind {
		case domain.Withdraw:
			total := amount.Add(fee)
			if source.Balance.LessThan(total) {
				return domain.ErrInsufficientFunds
			}
			senderDelta = total.Neg()
		case domain.Deposit:
			senderDelta = amount
		default:
			return fmt.Errorf("unknown transfer kind %q", req.Kind)
		}

		var destination *domain.Account
		switch req.Scope {
		case domain.SameBank:
			destination, err = s.accounts.FindByNumber(ctx, req.ToAccount)
			if err != nil {
				return err
			}
		case domain.External:
			if req.ExternalDetails == nil || req.ExternalDetails.AccountNumber == "" {
				return domain.ErrExternalDetailsRequired
			}
		default:
			return fmt.Errorf("unknown transfer scope %q", req.Scope)
		}

		if err := s.accounts.AddToBalance(ctx, source.ID, senderDelta, source.Version); err != nil {
			return err
		}
		if destination != nil {
			if err := s.accounts.AddToBalance(ctx, destination.ID, amount, destination.Version); err != nil {
				return err
			}
		}

		postedAt := s.now().UTC()
		sourcePosting := &domain.Posting{
			PostingID:       uuid.NewString(),
			SourceAccountID: source.ID,
			Amount:          amount,
			Fee:             fee,
			Kind:            req.Kind,
			Scope:           req.Scope,
			Note:            req.Note,
			Status:          domain.PostingSuccess,
			PostedAt:        postedAt,
		}
		if destination != nil {
			sourcePosting.DestinationAccountID = &destination.ID
		} else {
			sourcePosting.ExternalDetails = req.ExternalDetails
		}
		if err := s.postings.Create(ctx, sourcePosting); err != nil {
			return err
		}

		if destination != nil {
			mirror := &domain.Posting{
				PostingID:            uuid.NewString(),
				SourceAccountID:      destination.ID,
				DestinationAccountID: &source.ID,
				Amount:               amount,
				Fee:                  decimal.Zero,
				Kind:                 domain.Deposit,
				Scope:                req.Scope,
				Note:                 req.Note,
				Status:               domain.PostingSuccess,
				PostedAt:             postedAt,
			}
			if err := s.postings.Create(ctx, mirror); err != nil {
				return err
			}
		}

		result = &PostingResult{
			Posting:       sourcePosting,
			SenderBalance: source.Balance.Add(senderDelta),
		}
		if destination != nil {
			receiverBalance := destination.Balance.Add(amount)
			result.ReceiverBalance = &receiverBalance
		}
		return nil
	})
	if err != nil {
		return nil, wrapPostingErr(err)
	}
	return result, nil
}

// wrapPostingErr keeps the domain taxonomy intact and collapses everything
// else to ErrPostingFailed.
func wrapPostingErr(err error) error {
	for _, known := range []error{
		domain.ErrInvalidAmount,
		domain.ErrAccountNotFound,
		domain.ErrInsufficientFunds,
		domain.ErrExternalDetailsRequired,
		domain.ErrBalanceConflict,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrPostingFailed, err)
}
