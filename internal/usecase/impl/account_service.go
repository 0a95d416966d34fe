// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/constants"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/domain/validation"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo           repository.AccountRepository
	hasher                service.PasswordHasher
	tokenIssuer           service.TokenIssuer
	publisher             service.EventPublisher
	legacyEmailValidation bool
	logger                *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	TokenIssuer service.TokenIssuer
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	legacyEmailValidation := false
	if params.Config != nil && params.Config.Compat != nil {
		legacyEmailValidation = params.Config.Compat.LegacyEmailValidation
	}

	return &accountService{
		accountRepo:           params.AccountRepo,
		hasher:                params.Hasher,
		tokenIssuer:           params.TokenIssuer,
		publisher:             params.Publisher,
		legacyEmailValidation: legacyEmailValidation,
		logger:                params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAccount orchestrates the complete account creation process: the
// duplicate pre-check, input validation, credential derivation, persistence
// and the best-effort lifecycle event.
func (srv *accountService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*usecase.AccountOutput, error) {
	srv.log(ctx).Info("Starting account creation", slog.String("email", input.Email))

	// Optimistic fast path. Two concurrent creates can both pass this check;
	// the unique index in storage is the authoritative duplicate guard and
	// reports the same duplicate-email error.
	if _, err := srv.accountRepo.FindByEmail(ctx, input.Email); err == nil {
		srv.log(ctx).Warn("Account creation rejected, email already registered", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrDuplicateEmail, "account creation failed")
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to check email uniqueness")
	}

	if !validation.IsValidEmail(input.Email) {
		return nil, errors.Wrap(domainerrors.ErrInvalidEmail, "account creation failed")
	}

	if err := validatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during account creation", slog.String("email", input.Email))

		return nil, err
	}

	salt, err := srv.hasher.CreateSalt()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	account := &entity.Account{
		ID:             uuid.New(),
		Username:       input.Username,
		Email:          input.Email,
		PasswordDigest: srv.hasher.Hash(input.Password, salt),
		Salt:           salt,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.publishAccountCreated(ctx, account)

	srv.log(ctx).Debug("Account created", slog.Any("accountID", account.ID))

	return usecase.NewAccountOutput(account), nil
}

// publishAccountCreated notifies downstream services about the new account.
// Publishing is best effort: the create is already durable and a broker
// failure does not roll it back.
func (srv *accountService) publishAccountCreated(ctx context.Context, account *entity.Account) {
	event := &service.AccountCreatedEvent{
		ID:       account.ID,
		Email:    account.Email,
		Username: account.Username,
	}

	err := srv.publisher.Publish(ctx, constants.ExchangeAccounts, constants.QueueEmailService, constants.EventAccountCreated, event)
	if err != nil {
		srv.log(ctx).Error("Failed to publish account created event",
			slog.Any("accountID", account.ID),
			slog.Any("error", err),
		)
	}
}

// Login authenticates an account by email and password and attaches a fresh
// bearer token to the returned view.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AccountOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed, unknown email", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrCredentialsNotFound, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	// Argon2id verification is CPU-bound and runs outside any storage call.
	if !srv.hasher.Verify(input.Password, account.Salt, account.PasswordDigest) {
		srv.log(ctx).Warn("Login failed, password mismatch", slog.Any("accountID", account.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenIssuer.Generate(account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}
	account.Token = token

	srv.log(ctx).Debug("Login succeeded", slog.Any("accountID", account.ID))

	return usecase.NewAccountOutput(account), nil
}

// GetAccount returns the credential-stripped view of a single account.
func (srv *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*usecase.AccountOutput, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "get account failed")
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return usecase.NewAccountOutput(account), nil
}

// UpdateAccount changes the email on an existing account and returns the
// persisted result.
func (srv *accountService) UpdateAccount(ctx context.Context, id uuid.UUID, input *usecase.UpdateAccountInput) (*usecase.AccountOutput, error) {
	srv.log(ctx).Info("Updating account", slog.Any("accountID", id))

	if err := srv.checkUpdatedEmail(input.Email); err != nil {
		return nil, err
	}

	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account update failed")
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	account.Email = input.Email

	if err := srv.accountRepo.Replace(ctx, account); err != nil {
		return nil, errors.Wrap(err, "failed to replace account")
	}

	return usecase.NewAccountOutput(account), nil
}

// checkUpdatedEmail applies the acceptance rule for new email addresses.
func (srv *accountService) checkUpdatedEmail(email string) error {
	valid := validation.IsValidEmail(email)

	if srv.legacyEmailValidation {
		// Compat rule: a well-formed address is rejected and a malformed one
		// accepted. Kept behind a flag until the remaining clients migrate.
		if valid {
			return errors.Wrap(domainerrors.ErrInvalidEmail, "email update rejected by compat rule")
		}

		return nil
	}

	if !valid {
		return errors.Wrap(domainerrors.ErrInvalidEmail, "account update failed")
	}

	return nil
}

// UpdatePassword rotates the stored credentials after verifying the current
// password. A new password that fails the strength rules leaves the stored
// credentials untouched while the call still succeeds.
func (srv *accountService) UpdatePassword(ctx context.Context, id uuid.UUID, input *usecase.UpdatePasswordInput) (*usecase.AccountOutput, error) {
	srv.log(ctx).Info("Updating password", slog.Any("accountID", id))

	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "password update failed")
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	if !srv.hasher.Verify(input.OldPassword, account.Salt, account.PasswordDigest) {
		srv.log(ctx).Warn("Password update failed, current password mismatch", slog.Any("accountID", id))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password update failed")
	}

	if valid, validErr := validation.IsValidPassword(input.NewPassword); validErr == nil && valid {
		salt, saltErr := srv.hasher.CreateSalt()
		if saltErr != nil {
			return nil, errors.Wrap(saltErr, "failed to generate salt")
		}

		account.Salt = salt
		account.PasswordDigest = srv.hasher.Hash(input.NewPassword, salt)
	} else {
		// The account is still re-persisted with its old credentials and the
		// caller sees a successful call.
		srv.log(ctx).Warn("New password failed strength rules, keeping existing credentials", slog.Any("accountID", id))
	}

	if err := srv.accountRepo.Replace(ctx, account); err != nil {
		return nil, errors.Wrap(err, "failed to replace account")
	}

	updated, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to re-read account after password update")
	}

	return usecase.NewAccountOutput(updated), nil
}

// DeleteAccount removes an account. Deleting an id that does not exist is a
// no-op; the call always succeeds from the caller's point of view.
func (srv *accountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting account", slog.Any("accountID", id))

	if err := srv.accountRepo.DeleteByID(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete account")
	}

	return nil
}

// validatePasswordStrength maps validation outcomes onto the domain error
// taxonomy used by account creation.
func validatePasswordStrength(password string) error {
	valid, err := validation.IsValidPassword(password)
	if err != nil {
		return errors.Wrap(domainerrors.ErrInvalidPassword, err.Error())
	}
	if !valid {
		return errors.Wrap(domainerrors.ErrInvalidPassword, "account creation failed")
	}

	return nil
}
