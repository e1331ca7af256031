package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	mockRepo "marketplace/internal/mocks/repository"
	mockSvc "marketplace/internal/mocks/service"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service     usecase.AccountUsecase
	txManager   *mockRepo.MockTransactionManager
	accountRepo *mockRepo.MockAccountRepository
	hasher      *mockSvc.MockPasswordHasher
	tokenSvc    *mockSvc.MockTokenService
	codeGen     *mockSvc.MockCodeGenerator
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenSvc := mockSvc.NewMockTokenService(t)
	codeGen := mockSvc.NewMockCodeGenerator(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAccountService(AccountServiceParams{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		Hasher:      hasher,
		TokenSvc:    tokenSvc,
		CodeGen:     codeGen,
		Logger:      logger,
	})

	return accountServiceFixtures{
		service:     service,
		txManager:   txManager,
		accountRepo: accountRepo,
		hasher:      hasher,
		tokenSvc:    tokenSvc,
		codeGen:     codeGen,
	}
}

func TestAccountService_Register_CustomerSuccess(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:     "customer@example.com",
		Password:  "Password123!",
		FirstName: "Casey",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(nil, repository.ErrAccountNotFound)

			fx.codeGen.EXPECT().Next(ctx, entity.RoleCustomer).Return("CUS001", nil)

			mockAccountRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Account")).
				Run(func(ctx context.Context, account *entity.Account) {
					assert.Equal(t, entity.RoleCustomer, account.Role)
					assert.Equal(t, entity.StatusActive, account.Status)
					assert.Equal(t, "CUS001", account.CustomerCode)
					assert.Empty(t, account.SellerCode)
					assert.Equal(t, "hashed_password", account.PasswordHash)
					account.ID = 1
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "User registered successfully", output.Message)
}

func TestAccountService_Register_SellerPendingWithLegacyAlias(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:     "seller@example.com",
		Password:  "Password123!",
		Role:      "SALES",
		StoreName: "Corner Pharmacy",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(nil, repository.ErrAccountNotFound)

			fx.codeGen.EXPECT().Next(ctx, entity.RoleSeller).Return("SEL001", nil)

			mockAccountRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.Account")).
				Run(func(ctx context.Context, account *entity.Account) {
					assert.Equal(t, entity.RoleSeller, account.Role)
					assert.Equal(t, entity.StatusPending, account.Status)
					assert.Equal(t, "SEL001", account.SellerCode)
					assert.Empty(t, account.CustomerCode)
					account.ID = 2
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, "Seller registered successfully. Pending admin approval.", output.Message)
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Email:    "taken@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByEmail(ctx, input.Email).
				Return(&entity.Account{ID: 9, Email: input.Email}, nil)

			return fn(mockFactory)
		})

	output, err := fx.service.Register(ctx, input)

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))
}

func TestAccountService_Register_MissingFields(t *testing.T) {
	fx := createTestAccountService(t)

	output, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Email:    "   ",
		Password: "Password123!",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAccountService_Login_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:           5,
		Email:        "customer@example.com",
		PasswordHash: "hashed_password",
		Role:         entity.RoleCustomer,
		Status:       entity.StatusActive,
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, account.Email).Return(account, nil)
	fx.hasher.EXPECT().Check("Password123!", "hashed_password").Return(true)
	fx.tokenSvc.EXPECT().Generate(account).Return("signed_token", nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "customer@example.com",
		Password: "Password123!",
	})

	require.NoError(t, err)
	assert.Equal(t, "Login successful", output.Message)
	assert.Equal(t, "signed_token", output.Token)
	assert.Equal(t, "CUSTOMER", output.Role)
}

func TestAccountService_Login_UnknownEmail(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	fx.accountRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:           5,
		Email:        "customer@example.com",
		PasswordHash: "hashed_password",
		Role:         entity.RoleCustomer,
		Status:       entity.StatusActive,
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, account.Email).Return(account, nil)
	fx.hasher.EXPECT().Check("wrong", "hashed_password").Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "customer@example.com",
		Password: "wrong",
	})

	assert.Nil(t, output)
	// Wrong password and unknown email produce the same error.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_Login_PendingSellerRejectedBeforePasswordCheck(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:           7,
		Email:        "seller@example.com",
		PasswordHash: "hashed_password",
		Role:         entity.RoleSeller,
		Status:       entity.StatusPending,
	}

	// No Check expectation: the approval gate fires before the password
	// comparison, so the hasher must never be consulted.
	fx.accountRepo.EXPECT().FindByEmail(ctx, account.Email).Return(account, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "seller@example.com",
		Password: "Password123!",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPendingApproval))
}

func TestAccountService_Login_SuspendedSellerRejected(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:           8,
		Email:        "rejected@example.com",
		PasswordHash: "hashed_password",
		Role:         entity.RoleSeller,
		Status:       entity.StatusSuspended,
	}

	fx.accountRepo.EXPECT().FindByEmail(ctx, account.Email).Return(account, nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "rejected@example.com",
		Password: "Password123!",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPendingApproval))
}

func TestAccountService_ChangePassword_Success(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:           3,
		Email:        "customer@example.com",
		PasswordHash: "old_hash",
		Role:         entity.RoleCustomer,
		Status:       entity.StatusActive,
	}

	fx.accountRepo.EXPECT().FindByID(ctx, int64(3)).Return(account, nil)
	fx.hasher.EXPECT().Check("OldPass123!", "old_hash").Return(true)
	fx.hasher.EXPECT().Hash("NewPass123!").Return("new_hash", nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().FindByID(ctx, int64(3)).Return(account, nil)
			mockAccountRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Account")).
				Run(func(ctx context.Context, updated *entity.Account) {
					assert.Equal(t, "new_hash", updated.PasswordHash)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.ChangePassword(ctx, 3, &usecase.ChangePasswordInput{
		Email:       "customer@example.com",
		Password:    "OldPass123!",
		NewPassword: "NewPass123!",
	})

	require.NoError(t, err)
}

func TestAccountService_ChangePassword_EmailMismatch(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:           3,
		Email:        "customer@example.com",
		PasswordHash: "old_hash",
	}

	fx.accountRepo.EXPECT().FindByID(ctx, int64(3)).Return(account, nil)

	err := fx.service.ChangePassword(ctx, 3, &usecase.ChangePasswordInput{
		Email:       "someone-else@example.com",
		Password:    "OldPass123!",
		NewPassword: "NewPass123!",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrEmailMismatch))
}

func TestAccountService_ChangePassword_WrongCurrentPassword(t *testing.T) {
	fx := createTestAccountService(t)

	ctx := context.Background()
	account := &entity.Account{
		ID:           3,
		Email:        "customer@example.com",
		PasswordHash: "old_hash",
	}

	fx.accountRepo.EXPECT().FindByID(ctx, int64(3)).Return(account, nil)
	fx.hasher.EXPECT().Check("wrong", "old_hash").Return(false)

	err := fx.service.ChangePassword(ctx, 3, &usecase.ChangePasswordInput{
		Password:    "wrong",
		NewPassword: "NewPass123!",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestAccountService_ChangePassword_MissingFields(t *testing.T) {
	fx := createTestAccountService(t)

	err := fx.service.ChangePassword(context.Background(), 3, &usecase.ChangePasswordInput{
		Password:    "",
		NewPassword: "NewPass123!",
	})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
