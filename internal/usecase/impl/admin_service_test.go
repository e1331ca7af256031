package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	mockRepo "marketplace/internal/mocks/repository"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// adminServiceFixtures holds all test dependencies for admin service tests.
type adminServiceFixtures struct {
	service     usecase.AdminUsecase
	txManager   *mockRepo.MockTransactionManager
	accountRepo *mockRepo.MockAccountRepository
}

func createTestAdminService(t *testing.T) adminServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	accountRepo := mockRepo.NewMockAccountRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAdminService(AdminServiceParams{
		TxManager:   txManager,
		AccountRepo: accountRepo,
		Logger:      logger,
	})

	return adminServiceFixtures{
		service:     service,
		txManager:   txManager,
		accountRepo: accountRepo,
	}
}

func TestAdminService_Overview(t *testing.T) {
	fx := createTestAdminService(t)

	ctx := context.Background()
	fx.accountRepo.EXPECT().Count(ctx).Return(int64(12), nil)
	fx.accountRepo.EXPECT().CountSellersByStatus(ctx, entity.StatusPending).Return(int64(3), nil)

	output, err := fx.service.Overview(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(12), output.UsersCount)
	assert.Equal(t, int64(3), output.SellersPending)
	assert.Zero(t, output.OrdersCount)
	assert.Zero(t, output.RevenueTotal)
}

func TestAdminService_ListUsers_DefaultsAndClamping(t *testing.T) {
	testCases := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"zero values get defaults", 0, 0, 1, 20},
		{"negative page resets to first", -4, 10, 1, 10},
		{"oversized pageSize clamps", 2, 500, 2, 100},
		{"in-range values pass through", 3, 50, 3, 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := createTestAdminService(t)

			ctx := context.Background()
			fx.accountRepo.EXPECT().
				List(ctx, repository.DirectoryQuery{Page: tc.wantPage, PageSize: tc.wantPageSize}).
				Return(nil, int64(0), nil)

			output, err := fx.service.ListUsers(ctx, &usecase.ListUsersInput{
				Page:     tc.page,
				PageSize: tc.pageSize,
			})

			require.NoError(t, err)
			assert.Equal(t, tc.wantPage, output.Page)
			assert.Equal(t, tc.wantPageSize, output.PageSize)
		})
	}
}

func TestAdminService_ListUsers_TrimsSearchAndMapsRows(t *testing.T) {
	fx := createTestAdminService(t)

	ctx := context.Background()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	fx.accountRepo.EXPECT().
		List(ctx, repository.DirectoryQuery{Page: 1, PageSize: 20, Search: "casey"}).
		Return([]*entity.Account{
			{
				ID:           4,
				Email:        "casey@example.com",
				Role:         entity.RoleCustomer,
				Status:       entity.StatusActive,
				CustomerCode: "CUS004",
				FirstName:    "Casey",
				CreatedAt:    created,
			},
		}, int64(1), nil)

	output, err := fx.service.ListUsers(ctx, &usecase.ListUsersInput{Search: "  casey  "})

	require.NoError(t, err)
	assert.Equal(t, int64(1), output.Total)
	require.Len(t, output.Rows, 1)
	assert.Equal(t, "casey@example.com", output.Rows[0].Email)
	assert.Equal(t, "CUSTOMER", output.Rows[0].Role)
	assert.Equal(t, "CUS004", output.Rows[0].CustomerID)
	assert.Equal(t, created, output.Rows[0].CreatedAt)
}

func TestAdminService_PatchUser_Success(t *testing.T) {
	fx := createTestAdminService(t)

	ctx := context.Background()
	role := "SALES"
	status := "SUSPENDED"

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			mockAccountRepo.EXPECT().
				FindByID(ctx, int64(6)).
				Return(&entity.Account{ID: 6, Role: entity.RoleCustomer, Status: entity.StatusActive}, nil)

			mockAccountRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Account")).
				Run(func(ctx context.Context, account *entity.Account) {
					// The legacy alias is normalized before it reaches the store.
					assert.Equal(t, entity.RoleSeller, account.Role)
					assert.Equal(t, entity.StatusSuspended, account.Status)
				}).
				Return(nil)

			return fn(mockFactory)
		})

	err := fx.service.PatchUser(ctx, 6, &usecase.PatchUserInput{Role: &role, Status: &status})

	require.NoError(t, err)
}

func TestAdminService_PatchUser_InvalidEnum(t *testing.T) {
	fx := createTestAdminService(t)

	badRole := "WIZARD"
	err := fx.service.PatchUser(context.Background(), 6, &usecase.PatchUserInput{Role: &badRole})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	badStatus := "FROZEN"
	err = fx.service.PatchUser(context.Background(), 6, &usecase.PatchUserInput{Status: &badStatus})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAdminService_PatchUser_NotFound(t *testing.T) {
	fx := createTestAdminService(t)

	ctx := context.Background()
	status := "ACTIVE"

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)
			mockAccountRepo.EXPECT().FindByID(ctx, int64(99)).Return(nil, repository.ErrAccountNotFound)

			return fn(mockFactory)
		})

	err := fx.service.PatchUser(ctx, 99, &usecase.PatchUserInput{Status: &status})

	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAdminService_ListSellers_DefaultsToPending(t *testing.T) {
	fx := createTestAdminService(t)

	ctx := context.Background()
	fx.accountRepo.EXPECT().
		ListSellers(ctx, entity.StatusPending).
		Return([]*entity.Account{
			{ID: 2, Email: "seller@example.com", Role: entity.RoleSeller, Status: entity.StatusPending, SellerCode: "SEL002", StoreName: "Corner Pharmacy"},
		}, nil)

	rows, err := fx.service.ListSellers(ctx, "")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SEL002", rows[0].SellerID)
	assert.Equal(t, "PENDING", rows[0].Status)
	assert.Equal(t, "Corner Pharmacy", rows[0].StoreName)
}

func TestAdminService_ListSellers_InvalidStatusFilter(t *testing.T) {
	fx := createTestAdminService(t)

	rows, err := fx.service.ListSellers(context.Background(), "FROZEN")

	assert.Nil(t, rows)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAdminService_DecideSeller_Transitions(t *testing.T) {
	testCases := []struct {
		name        string
		action      string
		wantStatus  entity.Status
		wantMessage string
	}{
		{"approve activates", "approve", entity.StatusActive, "Seller approved"},
		{"reject suspends", "reject", entity.StatusSuspended, "Seller rejected"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fx := createTestAdminService(t)

			ctx := context.Background()
			fx.txManager.EXPECT().
				Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
				RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
					mockFactory := mockRepo.NewMockRepositoryFactory(t)
					mockAccountRepo := mockRepo.NewMockAccountRepository(t)

					mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

					mockAccountRepo.EXPECT().
						FindByID(ctx, int64(2)).
						Return(&entity.Account{ID: 2, Role: entity.RoleSeller, Status: entity.StatusPending}, nil)

					mockAccountRepo.EXPECT().
						Update(ctx, mock.AnythingOfType("*entity.Account")).
						Run(func(ctx context.Context, account *entity.Account) {
							assert.Equal(t, tc.wantStatus, account.Status)
						}).
						Return(nil)

					return fn(mockFactory)
				})

			message, err := fx.service.DecideSeller(ctx, 2, tc.action)

			require.NoError(t, err)
			assert.Equal(t, tc.wantMessage, message)
		})
	}
}

func TestAdminService_DecideSeller_IdempotentSameStatus(t *testing.T) {
	fx := createTestAdminService(t)

	ctx := context.Background()
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)

			// No Update expectation: re-approving an active seller is a no-op.
			mockAccountRepo.EXPECT().
				FindByID(ctx, int64(2)).
				Return(&entity.Account{ID: 2, Role: entity.RoleSeller, Status: entity.StatusActive}, nil)

			return fn(mockFactory)
		})

	message, err := fx.service.DecideSeller(ctx, 2, "approve")

	require.NoError(t, err)
	assert.Equal(t, "Seller approved", message)
}

func TestAdminService_DecideSeller_InvalidAction(t *testing.T) {
	fx := createTestAdminService(t)

	message, err := fx.service.DecideSeller(context.Background(), 2, "promote")

	assert.Empty(t, message)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAdminService_DecideSeller_NonSeller(t *testing.T) {
	fx := createTestAdminService(t)

	ctx := context.Background()
	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockAccountRepo := mockRepo.NewMockAccountRepository(t)

			mockFactory.EXPECT().AccountRepo().Return(mockAccountRepo)
			mockAccountRepo.EXPECT().
				FindByID(ctx, int64(4)).
				Return(&entity.Account{ID: 4, Role: entity.RoleCustomer, Status: entity.StatusActive}, nil)

			return fn(mockFactory)
		})

	message, err := fx.service.DecideSeller(ctx, 4, "approve")

	assert.Empty(t, message)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}
