package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/neuraread/banking-backend/internal/bank/domain"
)

const (
	defaultBankName    = "BDO"
	defaultAccountType = "Savings"
	defaultCurrency    = "PHP"
)

// ProvisionRequest opens a bank account for a user, optionally refreshing
// the profile fields the onboarding form collects. The owner is resolved by
// UserID when given, by Email otherwise.
type ProvisionRequest struct {
	UserID      int64
	Email       string
	FirstName   string
	LastName    string
	DateOfBirth string
	PhoneNo     string
	Address     string
}

// BankDetails is the owner-facing account summary.
type BankDetails struct {
	FirstName     string
	LastName      string
	AccountName   string
	BranchName    string
	AccountNumber string
	IfscCode      string
	Balance       decimal.Decimal
	CreatedAt     time.Time
}

// UserData is the minimal profile projection.
type UserData struct {
	FirstName string
	LastName  string
	Email     string
}

// AccountService provisions accounts and serves the owner-scoped reads.
type AccountService struct {
	txm      domain.TxManager
	users    domain.UserRepository
	accounts domain.AccountRepository
	now      func() time.Time
	intN     func(n int) int
}

func NewAccountService(txm domain.TxManager, users domain.UserRepository, accounts domain.AccountRepository) *AccountService {
	return &AccountService{
		txm:      txm,
		users:    users,
		accounts: accounts,
		now:      time.Now,
		intN:     rand.IntN,
	}
}

// Provision opens a zero-balance account for the owner. Provisioning is
// keyed on the owner: a second call for the same user fails with
// ErrAccountExists instead of minting another account.
func (s *AccountService) Provision(ctx context.Context, req ProvisionRequest) (*domain.Account, error) {
	var account *domain.Account
	err := s.txm.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.findOwner(ctx, req.UserID, req.Email)
		if err != nil {
			return err
		}
		if user.IsBlocked {
			return domain.ErrOwnerBlocked
		}
		if user.IsBankAccountCreated {
			return domain.ErrAccountExists
		}
		if _, err := s.accounts.FindByUser(ctx, user.ID); err == nil {
			return domain.ErrAccountExists
		} else if !errors.Is(err, domain.ErrAccountNotFound) {
			return err
		}

		branch := branchName(user.FirstName, user.LastName)
		account = &domain.Account{
			UserID:        user.ID,
			BankName:      defaultBankName,
			BranchName:    branch,
			AccountNumber: s.generateAccountNumber(),
			AccountName:   user.FirstName + " " + user.LastName,
			AccountType:   defaultAccountType,
			Currency:      defaultCurrency,
			IfscCode:      s.ifscCode(branch),
			Balance:       decimal.Zero,
			Status:        domain.AccountActive,
		}
		if err := s.accounts.Create(ctx, account); err != nil {
			return err
		}

		if req.FirstName != "" {
			user.FirstName = req.FirstName
		}
		if req.LastName != "" {
			user.LastName = req.LastName
		}
		if req.DateOfBirth != "" {
			user.DateOfBirth = req.DateOfBirth
		}
		if req.PhoneNo != "" {
			user.PhoneNo = req.PhoneNo
		}
		if req.Address != "" {
			user.Address = req.Address
		}
		user.IsBankAccountCreated = true
		return s.users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// BankDetails returns the owner's account summary for the dashboard.
func (s *AccountService) BankDetails(ctx context.Context, userID int64) (*BankDetails, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, domain.ErrOwnerBlocked
	}
	account, err := s.accounts.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &BankDetails{
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		AccountName:   account.AccountName,
		BranchName:    account.BranchName,
		AccountNumber: account.AccountNumber,
		IfscCode:      account.IfscCode,
		Balance:       account.Balance,
		CreatedAt:     account.CreatedAt,
	}, nil
}

// UserData returns the profile fields the admin header shows.
func (s *AccountService) UserData(ctx context.Context, userID int64) (*UserData, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		return nil, domain.ErrOwnerBlocked
	}
	return &UserData{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	}, nil
}

// CreationStatus reports whether the owner already has a provisioned account.
func (s *AccountService) CreationStatus(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsBankAccountCreated, nil
}

func (s *AccountService) findOwner(ctx context.Context, userID int64, email string) (*domain.User, error) {
	if userID != 0 {
		return s.users.FindByID(ctx, userID)
	}
	return s.users.FindByEmail(ctx, email)
}

// generateAccountNumber builds a 12-digit number: the trailing six digits of
// the current unix-ms clock plus a six-digit random suffix.
func (s *AccountService) generateAccountNumber() string {
	ms := strconv.FormatInt(s.now().UnixMilli(), 10)
	prefix := ms[len(ms)-6:]
	suffix := 100000 + s.intN(900000)
	return prefix + strconv.Itoa(suffix)
}

func (s *AccountService) ifscCode(branch string) string {
	code := 10000 + s.intN(90000)
	if len(branch) > 3 {
		branch = branch[:3]
	}
	return defaultBankName + strconv.Itoa(code) + branch
}

// branchName derives the branch label from the owner's name fragments, the
// same derivation the legacy onboarding used.
func branchName(firstName, lastName string) string {
	firstPart := firstName
	if len(firstName) > 2 {
		firstPart = firstName[1:3]
	}
	lastPart := lastName
	if len(lastName) > 2 {
		lastPart = lastName[2:]
	}
	return firstPart + lastPart
}
