package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neuraread/banking-backend/internal/bank/domain"
)

type txKey struct{}

// GormTxManager implements domain.TxManager on a gorm transaction. The open
// transaction rides in the context so repositories stay gorm-free at the
// interface level.
type GormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or the root connection.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db
}

// ---------------------------------------------------------

type PostgresAccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *PostgresAccountRepo {
	return &PostgresAccountRepo{db: db}
}

func (r *PostgresAccountRepo) FindByNumber(ctx context.Context, accountNumber string) (*domain.Account, error) {
	var account domain.Account
	err := conn(ctx, r.db).WithContext(ctx).
		Where("account_number = ?", accountNumber).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account by number: %w", err)
	}
	return &account, nil
}

func (r *PostgresAccountRepo) FindByUser(ctx context.Context, userID int64) (*domain.Account, error) {
	var account domain.Account
	err := conn(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account by user: %w", err)
	}
	return &account, nil
}

func (r *PostgresAccountRepo) Create(ctx context.Context, account *domain.Account) error {
	if err := conn(ctx, r.db).WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// AddToBalance applies the delta with an optimistic lock:
// UPDATE accounts SET balance = balance + ?, version = version + 1
// WHERE id = ? AND version = ?
// Zero rows affected means a concurrent posting bumped the version first.
func (r *PostgresAccountRepo) AddToBalance(ctx context.Context, accountID int64, delta decimal.Decimal, version int64) error {
	result := conn(ctx, r.db).WithContext(ctx).Model(&domain.Account{}).
		Where("id = ? AND version = ?", accountID, version).
		Updates(map[string]interface{}{
			"balance": gorm.Expr("balance + ?", delta),
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrBalanceConflict
	}
	return nil
}

// ---------------------------------------------------------

type PostgresPostingRepo struct {
	db *gorm.DB
}

func NewPostingRepo(db *gorm.DB) *PostgresPostingRepo {
	return &PostgresPostingRepo{db: db}
}

func (r *PostgresPostingRepo) Create(ctx context.Context, posting *domain.Posting) error {
	if err := conn(ctx, r.db).WithContext(ctx).Create(posting).Error; err != nil {
		return fmt.Errorf("create posting: %w", err)
	}
	return nil
}

func (r *PostgresPostingRepo) ListBySourceAccounts(ctx context.Context, accountIDs []int64) ([]domain.Posting, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}
	var postings []domain.Posting
	err := conn(ctx, r.db).WithContext(ctx).
		Preload("SourceAccount").
		Preload("DestinationAccount").
		Where("source_account_id IN ?", accountIDs).
		Order("posted_at DESC, id DESC").
		Find(&postings).Error
	if err != nil {
		return nil, fmt.Errorf("list postings: %w", err)
	}
	return postings, nil
}

// ---------------------------------------------------------

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := conn(ctx, r.db).WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOwnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := conn(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOwnerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *PostgresUserRepo) Update(ctx context.Context, user *domain.User) error {
	if err := conn(ctx, r.db).WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
