// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Directory paging bounds.
const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
)

const (
	msgSellerApproved = "Seller approved"
	msgSellerRejected = "Seller rejected"
	msgUserUpdated    = "User updated"
)

// adminService implements the AdminUsecase interface: the seller approval
// workflow and the paginated user directory.
type adminService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	logger      *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Logger      *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		logger:      params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Overview returns the dashboard aggregate. User and pending-seller counts
// are exact; order metrics report zero until the order subsystem exists.
func (srv *adminService) Overview(ctx context.Context) (*usecase.OverviewOutput, error) {
	usersCount, err := srv.accountRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count accounts")
	}

	sellersPending, err := srv.accountRepo.CountSellersByStatus(ctx, entity.StatusPending)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count pending sellers")
	}

	return &usecase.OverviewOutput{
		UsersCount:     usersCount,
		SellersPending: sellersPending,
		OrdersCount:    0,
		RevenueTotal:   0,
	}, nil
}

// ListUsers returns one directory page. Page defaults to 1, pageSize to 20
// clamped to [1,100]; the search term matches case-insensitively against
// email, names and the human-readable codes.
func (srv *adminService) ListUsers(ctx context.Context, input *usecase.ListUsersInput) (*usecase.ListUsersOutput, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}

	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	query := repository.DirectoryQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(input.Search),
	}

	accounts, total, err := srv.accountRepo.List(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	rows := make([]*usecase.DirectoryRow, 0, len(accounts))
	for _, account := range accounts {
		rows = append(rows, &usecase.DirectoryRow{
			ID:         account.ID,
			Email:      account.Email,
			Role:       account.Role.String(),
			Status:     account.Status.String(),
			CustomerID: account.CustomerCode,
			SellerID:   account.SellerCode,
			FirstName:  account.FirstName,
			LastName:   account.LastName,
			CreatedAt:  account.CreatedAt,
		})
	}

	return &usecase.ListUsersOutput{
		Total:    total,
		Rows:     rows,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// PatchUser updates role and/or status of an account. Only supplied fields
// change, and both must be valid enum members (the legacy SALES alias is
// accepted for role and normalized on write).
func (srv *adminService) PatchUser(ctx context.Context, accountID int64, input *usecase.PatchUserInput) error {
	var newRole entity.Role
	if input.Role != nil {
		role, ok := entity.ParseRole(*input.Role)
		if !ok {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown role: " + *input.Role)
		}
		newRole = role
	}

	var newStatus entity.Status
	if input.Status != nil {
		status, ok := entity.ParseStatus(*input.Status)
		if !ok {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown status: " + *input.Status)
		}
		newStatus = status
	}

	srv.log(ctx).Info("Patching user", slog.Int64("accountID", accountID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, findErr := accountRepo.FindByID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account not found for patch")
			}

			return errors.Wrap(findErr, "failed to load account for patch")
		}

		if input.Role != nil {
			account.Role = newRole
		}
		if input.Status != nil {
			account.Status = newStatus
		}

		return accountRepo.Update(ctx, account)
	})

	if err != nil {
		srv.log(ctx).Warn("User patch failed", slog.Int64("accountID", accountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute user patch transaction")
	}

	return nil
}

// ListSellers returns the seller accounts in the given status (default
// PENDING), newest first, projected to approval-queue rows.
func (srv *adminService) ListSellers(ctx context.Context, statusFilter string) ([]*usecase.SellerRow, error) {
	status := entity.StatusPending
	if statusFilter != "" {
		parsed, ok := entity.ParseStatus(statusFilter)
		if !ok {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown status filter: " + statusFilter)
		}
		status = parsed
	}

	sellers, err := srv.accountRepo.ListSellers(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sellers")
	}

	rows := make([]*usecase.SellerRow, 0, len(sellers))
	for _, seller := range sellers {
		rows = append(rows, &usecase.SellerRow{
			ID:           seller.ID,
			Email:        seller.Email,
			Status:       seller.Status.String(),
			StoreName:    seller.StoreName,
			BusinessType: seller.BusinessType,
			SellerID:     seller.SellerCode,
			CreatedAt:    seller.CreatedAt,
		})
	}

	return rows, nil
}

// DecideSeller applies an admin decision to a seller application:
// "approve" activates the seller, "reject" suspends it, anything else is
// invalid input. Re-approving an already active seller is a no-op success.
func (srv *adminService) DecideSeller(ctx context.Context, accountID int64, action string) (string, error) {
	var target entity.Status
	var message string

	switch action {
	case usecase.SellerActionApprove:
		target = entity.StatusActive
		message = msgSellerApproved
	case usecase.SellerActionReject:
		target = entity.StatusSuspended
		message = msgSellerRejected
	default:
		return "", domainerrors.ErrValidationFailed.WrapMessage("unknown seller action: " + action)
	}

	srv.log(ctx).Info("Deciding seller application", slog.Int64("accountID", accountID), slog.String("action", action))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, findErr := accountRepo.FindByID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("seller not found for decision")
			}

			return errors.Wrap(findErr, "failed to load seller for decision")
		}

		if !account.IsSeller() {
			return domainerrors.ErrAccountNotFound.WrapMessage("account is not a seller")
		}

		if account.Status == target {
			// Idempotent: deciding the same outcome twice succeeds quietly.
			return nil
		}
		account.Status = target

		return accountRepo.Update(ctx, account)
	})

	if err != nil {
		srv.log(ctx).Warn("Seller decision failed", slog.Int64("accountID", accountID), slog.Any("error", err))

		return "", errors.Wrap(err, "failed to execute seller decision transaction")
	}

	return message, nil
}
