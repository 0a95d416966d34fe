package postgres

import (
	"context"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/errors"
	"accounts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates the PostgreSQL-backed account repository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var record model.AccountModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&record), nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var record model.AccountModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&record), nil
}

func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	record := fromAccountDomain(account)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(errors.Wrap(err, "failed to create account"), "insert into accounts")
	}

	account.CreatedAt = record.CreatedAt
	account.UpdatedAt = record.UpdatedAt

	return nil
}

func (r *accountRepository) Replace(ctx context.Context, account *entity.Account) error {
	record := fromAccountDomain(account)
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(errors.Wrap(err, "failed to replace account"), "save accounts row")
	}

	account.UpdatedAt = record.UpdatedAt

	return nil
}

func (r *accountRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	// Deleting an absent row is a no-op, which keeps the operation idempotent.
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AccountModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(errors.Wrap(err, "failed to delete account"), "delete from accounts")
	}

	return nil
}

func toAccountDomain(record *model.AccountModel) *entity.Account {
	return &entity.Account{
		ID:             record.ID,
		Username:       record.Username,
		Email:          record.Email,
		PasswordDigest: record.PasswordDigest,
		Salt:           record.Salt,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
}

func fromAccountDomain(account *entity.Account) *model.AccountModel {
	return &model.AccountModel{
		ID:             account.ID,
		Username:       account.Username,
		Email:          account.Email,
		PasswordDigest: account.PasswordDigest,
		Salt:           account.Salt,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.UpdatedAt,
	}
}
