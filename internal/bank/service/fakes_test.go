package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/neuraread/banking-backend/internal/bank/domain"
)

// fakeTxManager runs the callback on the caller's context. Rollback is not
// modeled; tests assert on the error surfaced to the caller.
type fakeTxManager struct{}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAccountRepo struct {
	accounts  []*domain.Account
	addErr    map[int64]error
	createErr error
}

func newFakeAccountRepo(accounts ...*domain.Account) *fakeAccountRepo {
	return &fakeAccountRepo{accounts: accounts, addErr: map[int64]error{}}
}

func (r *fakeAccountRepo) FindByNumber(_ context.Context, accountNumber string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.AccountNumber == accountNumber {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindByUser(_ context.Context, userID int64) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	if r.createErr != nil {
		return r.createErr
	}
	if account.ID == 0 {
		account.ID = int64(len(r.accounts) + 1)
	}
	cp := *account
	r.accounts = append(r.accounts, &cp)
	return nil
}

func (r *fakeAccountRepo) AddToBalance(_ context.Context, accountID int64, delta decimal.Decimal, version int64) error {
	if err := r.addErr[accountID]; err != nil {
		return err
	}
	for _, a := range r.accounts {
		if a.ID == accountID {
			if a.Version != version {
				return domain.ErrBalanceConflict
			}
			a.Balance = a.Balance.Add(delta)
			a.Version++
			return nil
		}
	}
	return fmt.Errorf("no account with id %d", accountID)
}

// balanceOf is a test helper over the stored state.
func (r *fakeAccountRepo) balanceOf(accountNumber string) decimal.Decimal {
	for _, a := range r.accounts {
		if a.AccountNumber == accountNumber {
			return a.Balance
		}
	}
	return decimal.Zero
}

type fakePostingRepo struct {
	created   []*domain.Posting
	createErr error
	failAfter int // fail the Nth create (1-based); 0 disables
	list      []domain.Posting
	listErr   error
}

func (r *fakePostingRepo) Create(_ context.Context, posting *domain.Posting) error {
	if r.failAfter > 0 && len(r.created)+1 >= r.failAfter {
		return r.createErr
	}
	if r.createErr != nil && r.failAfter == 0 {
		return r.createErr
	}
	cp := *posting
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakePostingRepo) ListBySourceAccounts(_ context.Context, _ []int64) ([]domain.Posting, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.list, nil
}

type fakeUserRepo struct {
	users     []*domain.User
	updateErr error
	updated   []*domain.User
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrOwnerNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrOwnerNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *user
	r.updated = append(r.updated, &cp)
	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = &cp
		}
	}
	return nil
}
