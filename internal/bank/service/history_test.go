package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuraread/banking-backend/internal/bank/domain"
)

func TestHistoryService_ListSent(t *testing.T) {
	source := account(1, "111111222222", 895)
	dest := account(2, "333333444444", 600)
	destID := dest.ID
	postedAt := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	postings := &fakePostingRepo{list: []domain.Posting{
		{
			PostingID:            "p-2",
			SourceAccountID:      1,
			DestinationAccountID: &destID,
			Amount:               decimal.NewFromInt(100),
			Fee:                  decimal.NewFromInt(5),
			Kind:                 domain.Withdraw,
			Scope:                domain.SameBank,
			Status:               domain.PostingSuccess,
			PostedAt:             postedAt,
			SourceAccount:        source,
			DestinationAccount:   dest,
		},
		{
			PostingID:       "p-1",
			SourceAccountID: 1,
			ExternalDetails: &domain.ExternalBankDetails{
				AccountNumber: "9988776655",
				AccountName:   "Jane Roe",
				BankName:      "Metro",
				IfscCode:      "MET00123",
			},
			Amount:        decimal.NewFromInt(40),
			Fee:           decimal.NewFromInt(25),
			Kind:          domain.Withdraw,
			Scope:         domain.External,
			Status:        domain.PostingSuccess,
			PostedAt:      postedAt.Add(-time.Hour),
			SourceAccount: source,
		},
	}}
	svc := NewHistoryService(newFakeAccountRepo(source), postings)

	entries, err := svc.ListSent(context.Background(), source.UserID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	sameBank := entries[0]
	assert.Equal(t, "p-2", sameBank.PostingID)
	assert.Equal(t, "111111222222", sameBank.FromAccountNumber)
	assert.Equal(t, "333333444444", sameBank.ReceiverDetails.AccountNumber)
	assert.Equal(t, "Account 333333444444", sameBank.ReceiverDetails.AccountName)
	assert.Empty(t, sameBank.ReceiverDetails.BankName)

	external := entries[1]
	assert.Equal(t, "9988776655", external.ReceiverDetails.AccountNumber)
	assert.Equal(t, "Jane Roe", external.ReceiverDetails.AccountName)
	assert.Equal(t, "Metro", external.ReceiverDetails.BankName)
	assert.Equal(t, "MET00123", external.ReceiverDetails.IfscCode)
}

func TestHistoryService_ListSent_UnresolvedCounterparty(t *testing.T) {
	source := account(1, "111111222222", 0)
	postings := &fakePostingRepo{list: []domain.Posting{
		{
			PostingID:       "p-1",
			SourceAccountID: 1,
			Amount:          decimal.NewFromInt(10),
			Kind:            domain.Withdraw,
			Scope:           domain.SameBank,
			Status:          domain.PostingSuccess,
		},
		{
			PostingID:       "p-2",
			SourceAccountID: 1,
			Amount:          decimal.NewFromInt(10),
			Kind:            domain.Withdraw,
			Scope:           domain.External,
			ExternalDetails: &domain.ExternalBankDetails{AccountNumber: "9988776655"},
			Status:          domain.PostingSuccess,
		},
	}}
	svc := NewHistoryService(newFakeAccountRepo(source), postings)

	entries, err := svc.ListSent(context.Background(), source.UserID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "N/A", entries[0].ReceiverDetails.AccountNumber)
	assert.Equal(t, "N/A", entries[0].ReceiverDetails.AccountName)

	assert.Equal(t, "9988776655", entries[1].ReceiverDetails.AccountNumber)
	assert.Equal(t, "N/A", entries[1].ReceiverDetails.AccountName)
	assert.Equal(t, "N/A", entries[1].ReceiverDetails.BankName)
}

func TestHistoryService_ListSent_NoAccount(t *testing.T) {
	svc := NewHistoryService(newFakeAccountRepo(), &fakePostingRepo{})

	entries, err := svc.ListSent(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistoryService_ListSent_RepoError(t *testing.T) {
	source := account(1, "111111222222", 0)
	postings := &fakePostingRepo{listErr: errors.New("connection reset")}
	svc := NewHistoryService(newFakeAccountRepo(source), postings)

	_, err := svc.ListSent(context.Background(), source.UserID)
	assert.Error(t, err)
}
