package domain

import "errors"

var (
	// ErrInvalidAmount indicates the transfer amount is not a positive number.
	ErrInvalidAmount = errors.New("amount must be a valid positive number")
	// ErrAccountNotFound indicates no account exists for the given number.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInsufficientFunds indicates the source balance cannot cover amount plus fee.
	ErrInsufficientFunds = errors.New("insufficient balance")
	// ErrExternalDetailsRequired indicates an external transfer without a destination descriptor.
	ErrExternalDetailsRequired = errors.New("external bank details are required")
	// ErrOwnerNotFound indicates the account owner does not exist.
	ErrOwnerNotFound = errors.New("user not found")
	// ErrOwnerBlocked indicates the account owner is blocked.
	ErrOwnerBlocked = errors.New("user is blocked")
	// ErrAccountExists indicates the owner already has a provisioned account.
	ErrAccountExists = errors.New("bank account already exists for this user")
	// ErrBalanceConflict indicates a concurrent posting won the version check.
	ErrBalanceConflict = errors.New("account modified concurrently")
	// ErrPostingFailed is the catch-all for persistence failures while posting.
	ErrPostingFailed = errors.New("transaction failed")
)
