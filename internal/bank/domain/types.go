package domain

import "github.com/shopspring/decimal"

// TransferKind is the direction of a posting relative to its account.
type TransferKind string

const (
	Deposit  TransferKind = "Deposit"
	Withdraw TransferKind = "Withdraw"
)

// IsValid reports whether the kind is one of the two known values.
func (k TransferKind) IsValid() bool {
	return k == Deposit || k == Withdraw
}

// TransferScope says whether the destination lives in this bank or outside.
type TransferScope string

const (
	SameBank TransferScope = "SameBank"
	External TransferScope = "External"
)

func (s TransferScope) IsValid() bool {
	return s == SameBank || s == External
}

// PostingStatus of a ledger entry. Entries are written once, so every stored
// posting is Success.
type PostingStatus string

const (
	PostingSuccess PostingStatus = "Success"
)

// AccountStatus gates provisioned accounts.
type AccountStatus string

const (
	AccountActive  AccountStatus = "active"
	AccountBlocked AccountStatus = "blocked"
)

var (
	feeSameBank = decimal.NewFromInt(5)
	feeExternal = decimal.NewFromInt(25)
)

// FeeFor returns the fixed surcharge charged to the source account for a
// transfer of the given scope. Unknown scopes carry no fee.
func FeeFor(scope TransferScope) decimal.Decimal {
	switch scope {
	case SameBank:
		return feeSameBank
	case External:
		return feeExternal
	default:
		return decimal.Zero
	}
}
