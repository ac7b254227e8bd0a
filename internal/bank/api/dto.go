package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/neuraread/banking-backend/internal/bank/domain"
)

// CreateTransactionReq is the POST /transactions body. Amount is a string so
// decimals survive the JSON boundary intact.
type CreateTransactionReq struct {
	FromAccount         string                  `json:"fromAccount" binding:"required"`
	ToAccount           string                  `json:"toAccount"`
	Amount              string                  `json:"amount" binding:"required"`
	TransactionType     string                  `json:"transactionType" binding:"required,oneof=Deposit Withdraw"`
	BankType            string                  `json:"bankType" binding:"required,oneof=SameBank External"`
	Note                string                  `json:"note"`
	ExternalBankDetails *ExternalBankDetailsReq `json:"externalBankDetails"`
}

type ExternalBankDetailsReq struct {
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	BankName      string `json:"bankName"`
	IfscCode      string `json:"ifscCode"`
}

// TransactionResp mirrors the stored source posting in the response body.
type TransactionResp struct {
	TransactionID       string                      `json:"transactionId"`
	FromAccount         int64                       `json:"fromAccount"`
	ToAccount           interface{}                 `json:"toAccount"`
	Amount              decimal.Decimal             `json:"amount"`
	TransactionType     domain.TransferKind         `json:"transactionType"`
	BankType            domain.TransferScope        `json:"bankType"`
	ExternalBankDetails *domain.ExternalBankDetails `json:"externalBankDetails,omitempty"`
	Note                string                      `json:"note,omitempty"`
	Status              domain.PostingStatus        `json:"status"`
	TransactionDate     time.Time                   `json:"transactionDate"`
	Charges             decimal.Decimal             `json:"charges"`
}

// CreateBankAccountReq is the POST /bank-accounts body. The owner is matched
// by userId when present, by email otherwise.
type CreateBankAccountReq struct {
	UserID      int64  `json:"userId"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	PhoneNo     string `json:"phoneNo"`
	Address     string `json:"address"`
}

type BankAccountResp struct {
	AccountName   string `json:"accountName"`
	BranchName    string `json:"branchName"`
	AccountNumber string `json:"accountNumber"`
	IfscCode      string `json:"ifscCode"`
}

type BankDetailsResp struct {
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	AccountName   string          `json:"accountName"`
	BranchName    string          `json:"branchName"`
	AccountNumber string          `json:"accountNumber"`
	IfscCode      string          `json:"ifscCode"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
}
