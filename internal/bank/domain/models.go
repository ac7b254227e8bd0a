package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an account owner. Profile data is managed elsewhere; this service
// reads it and flips the provisioning flag.
type User struct {
	ID                   int64  `gorm:"primaryKey;autoIncrement"`
	FirstName            string `gorm:"type:varchar(100);not null"`
	LastName             string `gorm:"type:varchar(100);not null"`
	Email                string `gorm:"uniqueIndex;type:varchar(255);not null"`
	PhoneNo              string `gorm:"type:varchar(32)"`
	Address              string `gorm:"type:text"`
	DateOfBirth          string `gorm:"type:varchar(10)"`
	IsBlocked            bool   `gorm:"not null;default:false"`
	IsBankAccountCreated bool   `gorm:"not null;default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (User) TableName() string {
	return "bank.users"
}

// Account holds one user's balance. Version backs the optimistic lock on
// balance updates; Balance is only ever mutated through
// AccountRepository.AddToBalance.
type Account struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	UserID        int64           `gorm:"uniqueIndex;not null"`
	BankName      string          `gorm:"type:varchar(64);not null"`
	BranchName    string          `gorm:"type:varchar(64);not null"`
	AccountNumber string          `gorm:"uniqueIndex;type:varchar(32);not null"`
	AccountName   string          `gorm:"type:varchar(128);not null"`
	AccountType   string          `gorm:"type:varchar(32);not null;default:'Savings'"`
	Currency      string          `gorm:"type:char(3);not null;default:'PHP'"`
	IfscCode      string          `gorm:"type:varchar(16);not null"`
	Balance       decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0"`
	Version       int64           `gorm:"not null;default:1"`
	Status        AccountStatus   `gorm:"type:varchar(16);not null;default:'active'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User *User `gorm:"foreignKey:UserID"`
}

func (Account) TableName() string {
	return "bank.accounts"
}

// ExternalBankDetails describes a destination outside this bank. It is
// recorded verbatim on the posting; nothing here is ever settled.
type ExternalBankDetails struct {
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	BankName      string `json:"bankName"`
	IfscCode      string `json:"ifscCode"`
}

// Posting is one immutable ledger entry: a single account's side of a
// transfer. SameBank transfers write two rows, one per account; the
// destination row mirrors the source with the kind flipped and no fee.
type Posting struct {
	ID                   int64                `gorm:"primaryKey;autoIncrement"`
	PostingID            string               `gorm:"uniqueIndex;type:varchar(36);not null"`
	SourceAccountID      int64                `gorm:"not null;index"`
	DestinationAccountID *int64               `gorm:"index"`
	ExternalDetails      *ExternalBankDetails `gorm:"type:jsonb;serializer:json"`
	Amount               decimal.Decimal      `gorm:"type:decimal(20,2);not null"`
	Fee                  decimal.Decimal      `gorm:"type:decimal(20,2);not null;default:0"`
	Kind                 TransferKind         `gorm:"type:varchar(16);not null"`
	Scope                TransferScope        `gorm:"type:varchar(16);not null"`
	Note                 string               `gorm:"type:text"`
	Status               PostingStatus        `gorm:"type:varchar(16);not null"`
	PostedAt             time.Time            `gorm:"not null;index"`
	CreatedAt            time.Time

	SourceAccount      *Account `gorm:"foreignKey:SourceAccountID"`
	DestinationAccount *Account `gorm:"foreignKey:DestinationAccountID"`
}

func (Posting) TableName() string {
	return "bank.postings"
}
