// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Role-dependent registration confirmation messages; part of the API contract.
const (
	msgCustomerRegistered = "User registered successfully"
	msgSellerRegistered   = "Seller registered successfully. Pending admin approval."
	msgLoginSuccessful    = "Login successful"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	tokenSvc    service.TokenService
	codeGen     service.CodeGenerator
	logger      *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	TokenSvc    service.TokenService
	CodeGen     service.CodeGenerator
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all
// dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		tokenSvc:    params.TokenSvc,
		codeGen:     params.CodeGen,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to
// the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account. The role hint resolves to CUSTOMER or
// SELLER (the legacy SALES alias included); sellers start PENDING and
// receive a SEL code, everyone else starts ACTIVE with a CUS code.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("email and password are required")
	}

	role := entity.ParseRegistrationRole(input.Role)
	srv.log(ctx).Info("Starting registration", slog.Any("role", role), slog.String("email", email))

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	account := buildNewAccount(input, email, role)
	account.PasswordHash = hashedPassword

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		_, findErr := accountRepo.FindByEmail(ctx, email)
		if findErr == nil {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check for existing account")
		}

		// The code counter is atomic in the store, so concurrent
		// registrations of the same role can never collide.
		code, codeErr := srv.codeGen.Next(ctx, role)
		if codeErr != nil {
			return errors.Wrap(codeErr, "failed to allocate account code")
		}
		if role == entity.RoleSeller {
			account.SellerCode = code
		} else {
			account.CustomerCode = code
		}

		return accountRepo.Create(ctx, account)
	})

	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("role", role), slog.Int64("accountID", account.ID))

	message := msgCustomerRegistered
	if role == entity.RoleSeller {
		message = msgSellerRegistered
	}

	return &usecase.RegisterOutput{Message: message}, nil
}

func buildNewAccount(input *usecase.RegisterInput, email string, role entity.Role) *entity.Account {
	account := &entity.Account{
		Email:        email,
		Role:         role,
		Status:       entity.InitialStatus(role),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		StoreName:    input.StoreName,
		BusinessType: input.BusinessType,
		StoreLogoURL: input.StoreLogoURL,
		Onboarding: entity.SellerOnboarding{
			PharmacyLicense:   input.PharmacyLicense,
			LicenseDocURL:     input.LicenseDocURL,
			TaxID:             input.TaxID,
			BusinessAddress:   input.BusinessAddress,
			OwnerIDProofURL:   input.OwnerIDProofURL,
			ProofOfAddressURL: input.ProofOfAddressURL,
			MedicalCertURL:    input.MedicalCertURL,
			BankName:          input.BankName,
			AccountHolder:     input.AccountHolder,
			AccountNumber:     input.AccountNumber,
		},
	}

	if addr := strings.TrimSpace(input.Address); addr != "" {
		account.SetAddress(entity.ParseLegacyAddress(addr))
	}

	return account
}

// Login verifies credentials and issues a session token.
//
// The pending-approval check deliberately runs before the password
// comparison, matching the established client behavior: a legitimate seller
// learns their application is still under review without re-proving the
// password. Unknown email and wrong password share one generic error.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := strings.TrimSpace(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	account, err := srv.loadLoginAccount(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	if !account.CanLogin() {
		srv.log(ctx).Warn("Login rejected for unapproved seller", slog.Int64("accountID", account.ID))

		return nil, domainerrors.ErrPendingApproval.WrapMessage("seller not approved yet")
	}

	// Check password outside the transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	token, err := srv.tokenSvc.Generate(account)
	if err != nil {
		srv.log(ctx).Error("Failed to generate session token", slog.Int64("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate session token")
	}

	srv.log(ctx).Debug("Login successful", slog.Int64("accountID", account.ID))

	return &usecase.LoginOutput{
		Message: msgLoginSuccessful,
		Token:   token,
		Role:    account.Role.String(),
	}, nil
}

func (srv *accountService) loadLoginAccount(ctx context.Context, email string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("no account for email")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	return account, nil
}

// ChangePassword re-authenticates with the current password and persists a
// new hash. Existing sessions stay valid until natural expiry.
func (srv *accountService) ChangePassword(ctx context.Context, accountID int64, input *usecase.ChangePasswordInput) error {
	if input.Password == "" || input.NewPassword == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("current and new password are required")
	}

	srv.log(ctx).Info("Changing password", slog.Int64("accountID", accountID))

	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("account vanished after token issuance")
		}

		return errors.Wrap(err, "failed to load account for password change")
	}

	if input.Email != "" && input.Email != account.Email {
		return domainerrors.ErrEmailMismatch.WrapMessage("supplied email does not match account")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		return domainerrors.ErrInvalidCredentials.WrapMessage("current password mismatch")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		current, findErr := accountRepo.FindByID(ctx, accountID)
		if findErr != nil {
			return errors.Wrap(findErr, "failed to reload account for password change")
		}
		current.PasswordHash = newHash

		return accountRepo.Update(ctx, current)
	})

	if err != nil {
		srv.log(ctx).Error("Failed to persist new password", slog.Int64("accountID", accountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password change transaction")
	}

	srv.log(ctx).Info("Password changed", slog.Int64("accountID", accountID))

	return nil
}
