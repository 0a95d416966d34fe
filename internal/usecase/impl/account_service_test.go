package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"accounts/config"
	"accounts/internal/domain/constants"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	mockRepo "accounts/internal/mocks/repository"
	mockSvc "accounts/internal/mocks/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service     usecase.AccountUsecase
	accountRepo *mockRepo.MockAccountRepository
	hasher      *mockSvc.MockPasswordHasher
	tokenIssuer *mockSvc.MockTokenIssuer
	publisher   *mockSvc.MockEventPublisher
}

func createTestAccountService(t *testing.T, legacyEmailValidation bool) accountServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenIssuer := mockSvc.NewMockTokenIssuer(t)
	publisher := mockSvc.NewMockEventPublisher(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		Compat: &config.CompatConfig{LegacyEmailValidation: legacyEmailValidation},
	}

	service := NewAccountService(AccountServiceParams{
		AccountRepo: accountRepo,
		Hasher:      hasher,
		TokenIssuer: tokenIssuer,
		Publisher:   publisher,
		Config:      cfg,
		Logger:      logger,
	})

	return accountServiceFixtures{
		service:     service,
		accountRepo: accountRepo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		publisher:   publisher,
	}
}

func testAccount() *entity.Account {
	return &entity.Account{
		ID:             uuid.New(),
		Username:       "tester",
		Email:          "tester@example.com",
		PasswordDigest: []byte("stored-digest"),
		Salt:           []byte("stored-salt"),
	}
}

func TestAccountService_CreateAccount_Success(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	input := &usecase.CreateAccountInput{
		Username: "tester",
		Email:    "tester@example.com",
		Password: "Password123!",
	}
	salt := []byte("fresh-salt")
	digest := []byte("fresh-digest")

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrAccountNotFound)

	fx.hasher.EXPECT().CreateSalt().Return(salt, nil)
	fx.hasher.EXPECT().Hash(input.Password, salt).Return(digest)

	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, account *entity.Account) {
			assert.NotEqual(t, uuid.Nil, account.ID)
			assert.Equal(t, digest, account.PasswordDigest)
			assert.Equal(t, salt, account.Salt)
		}).
		Return(nil)

	fx.publisher.EXPECT().
		Publish(ctx, constants.ExchangeAccounts, constants.QueueEmailService, constants.EventAccountCreated, mock.AnythingOfType("*service.AccountCreatedEvent")).
		Return(nil)

	output, err := fx.service.CreateAccount(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, input.Email, output.Email)
	assert.Equal(t, input.Username, output.Username)
	assert.Empty(t, output.Token)
}

func TestAccountService_CreateAccount_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	input := &usecase.CreateAccountInput{
		Username: "tester",
		Email:    "tester@example.com",
		Password: "Password123!",
	}

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(testAccount(), nil)

	output, err := fx.service.CreateAccount(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))
}

func TestAccountService_CreateAccount_InvalidEmail(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	input := &usecase.CreateAccountInput{
		Username: "tester",
		Email:    "not-an-email",
		Password: "Password123!",
	}

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.CreateAccount(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidEmail))
}

func TestAccountService_CreateAccount_WeakPassword(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	input := &usecase.CreateAccountInput{
		Username: "tester",
		Email:    "tester@example.com",
		Password: "weak",
	}

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.CreateAccount(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidPassword))
}

func TestAccountService_CreateAccount_PublishFailureDoesNotRollBack(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	input := &usecase.CreateAccountInput{
		Username: "tester",
		Email:    "tester@example.com",
		Password: "Password123!",
	}
	salt := []byte("fresh-salt")

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrAccountNotFound)

	fx.hasher.EXPECT().CreateSalt().Return(salt, nil)
	fx.hasher.EXPECT().Hash(input.Password, salt).Return([]byte("fresh-digest"))

	fx.accountRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Account")).
		Return(nil)

	fx.publisher.EXPECT().
		Publish(ctx, constants.ExchangeAccounts, constants.QueueEmailService, constants.EventAccountCreated, mock.AnythingOfType("*service.AccountCreatedEvent")).
		Return(errors.New("broker unavailable"))

	output, err := fx.service.CreateAccount(ctx, input)

	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	account := testAccount()
	input := &usecase.LoginInput{
		Email:    account.Email,
		Password: "Password123!",
	}

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(account, nil)

	fx.hasher.EXPECT().
		Verify(input.Password, account.Salt, account.PasswordDigest).
		Return(true)

	fx.tokenIssuer.EXPECT().Generate(account.ID).Return("signed-token", nil)

	output, err := fx.service.Login(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, account.ID, output.ID)
	assert.Equal(t, "signed-token", output.Token)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	input := &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "Password123!",
	}

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrCredentialsNotFound))
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	account := testAccount()
	input := &usecase.LoginInput{
		Email:    account.Email,
		Password: "WrongPassword1!",
	}

	fx.accountRepo.EXPECT().
		FindByEmail(ctx, input.Email).
		Return(account, nil)

	fx.hasher.EXPECT().
		Verify(input.Password, account.Salt, account.PasswordDigest).
		Return(false)

	output, err := fx.service.Login(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_GetAccount_Success(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	account := testAccount()

	fx.accountRepo.EXPECT().
		FindByID(ctx, account.ID).
		Return(account, nil)

	output, err := fx.service.GetAccount(ctx, account.ID)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, account.ID, output.ID)
	assert.Equal(t, account.Email, output.Email)
	assert.Empty(t, output.Token)
}

func TestAccountService_GetAccount_NotFound(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	id := uuid.New()

	fx.accountRepo.EXPECT().
		FindByID(ctx, id).
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.GetAccount(ctx, id)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_UpdateAccount_Success(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	account := testAccount()
	input := &usecase.UpdateAccountInput{Email: "renamed@example.com"}

	fx.accountRepo.EXPECT().
		FindByID(ctx, account.ID).
		Return(account, nil)

	fx.accountRepo.EXPECT().
		Replace(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, updated *entity.Account) {
			assert.Equal(t, input.Email, updated.Email)
		}).
		Return(nil)

	output, err := fx.service.UpdateAccount(ctx, account.ID, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, input.Email, output.Email)
}

func TestAccountService_UpdateAccount_InvalidEmail(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	input := &usecase.UpdateAccountInput{Email: "not-an-email"}

	output, err := fx.service.UpdateAccount(ctx, uuid.New(), input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidEmail))
}

func TestAccountService_UpdateAccount_LegacyRuleInvertsAcceptance(t *testing.T) {
	fx := createTestAccountService(t, true)

	ctx := context.Background()
	account := testAccount()

	// Under the compat rule a well-formed address is rejected.
	output, err := fx.service.UpdateAccount(ctx, account.ID, &usecase.UpdateAccountInput{Email: "valid@example.com"})
	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidEmail))

	// And a malformed one passes through to storage.
	fx.accountRepo.EXPECT().
		FindByID(ctx, account.ID).
		Return(account, nil)
	fx.accountRepo.EXPECT().
		Replace(ctx, mock.AnythingOfType("*entity.Account")).
		Return(nil)

	output, err = fx.service.UpdateAccount(ctx, account.ID, &usecase.UpdateAccountInput{Email: "not-an-email"})
	require.NoError(t, err)
	assert.Equal(t, "not-an-email", output.Email)
}

func TestAccountService_UpdateAccount_NotFound(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	id := uuid.New()

	fx.accountRepo.EXPECT().
		FindByID(ctx, id).
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.UpdateAccount(ctx, id, &usecase.UpdateAccountInput{Email: "renamed@example.com"})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_UpdatePassword_Success(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	account := testAccount()
	input := &usecase.UpdatePasswordInput{
		OldPassword: "Password123!",
		NewPassword: "NewPassword456!",
	}
	newSalt := []byte("rotated-salt")
	newDigest := []byte("rotated-digest")

	fx.accountRepo.EXPECT().
		FindByID(ctx, account.ID).
		Return(account, nil).
		Once()

	fx.hasher.EXPECT().
		Verify(input.OldPassword, []byte("stored-salt"), []byte("stored-digest")).
		Return(true)

	fx.hasher.EXPECT().CreateSalt().Return(newSalt, nil)
	fx.hasher.EXPECT().Hash(input.NewPassword, newSalt).Return(newDigest)

	fx.accountRepo.EXPECT().
		Replace(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, updated *entity.Account) {
			assert.Equal(t, newSalt, updated.Salt)
			assert.Equal(t, newDigest, updated.PasswordDigest)
		}).
		Return(nil)

	fx.accountRepo.EXPECT().
		FindByID(ctx, account.ID).
		Return(account, nil).
		Once()

	output, err := fx.service.UpdatePassword(ctx, account.ID, input)

	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestAccountService_UpdatePassword_WeakNewPasswordKeepsCredentials(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	account := testAccount()
	input := &usecase.UpdatePasswordInput{
		OldPassword: "Password123!",
		NewPassword: "weak",
	}

	fx.accountRepo.EXPECT().
		FindByID(ctx, account.ID).
		Return(account, nil).
		Times(2)

	fx.hasher.EXPECT().
		Verify(input.OldPassword, []byte("stored-salt"), []byte("stored-digest")).
		Return(true)

	// No CreateSalt or Hash expectations: the stored credentials survive.
	fx.accountRepo.EXPECT().
		Replace(ctx, mock.AnythingOfType("*entity.Account")).
		Run(func(ctx context.Context, updated *entity.Account) {
			assert.Equal(t, []byte("stored-salt"), updated.Salt)
			assert.Equal(t, []byte("stored-digest"), updated.PasswordDigest)
		}).
		Return(nil)

	output, err := fx.service.UpdatePassword(ctx, account.ID, input)

	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestAccountService_UpdatePassword_WrongOldPassword(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	account := testAccount()
	input := &usecase.UpdatePasswordInput{
		OldPassword: "WrongPassword1!",
		NewPassword: "NewPassword456!",
	}

	fx.accountRepo.EXPECT().
		FindByID(ctx, account.ID).
		Return(account, nil)

	fx.hasher.EXPECT().
		Verify(input.OldPassword, account.Salt, account.PasswordDigest).
		Return(false)

	output, err := fx.service.UpdatePassword(ctx, account.ID, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_DeleteAccount_Success(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	id := uuid.New()

	fx.accountRepo.EXPECT().DeleteByID(ctx, id).Return(nil)

	err := fx.service.DeleteAccount(ctx, id)

	require.NoError(t, err)
}

func TestAccountService_DeleteAccount_AbsentIDStillSucceeds(t *testing.T) {
	fx := createTestAccountService(t, false)

	ctx := context.Background()
	id := uuid.New()

	// The repository treats a missing row as a successful no-op.
	fx.accountRepo.EXPECT().DeleteByID(ctx, id).Return(nil)

	require.NoError(t, fx.service.DeleteAccount(ctx, id))
}
