// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	deliverycontext "marketplace/internal/delivery/context"
	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	blobStore   service.BlobStore
	logger      *slog.Logger
	now         func() time.Time
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	BlobStore   service.BlobStore
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		blobStore:   params.BlobStore,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the role-shaped view of the caller's own account.
func (srv *profileService) GetProfile(ctx context.Context, accountID int64) (*usecase.ProfileOutput, error) {
	srv.log(ctx).Debug("Getting profile", slog.Int64("accountID", accountID))

	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("account not found for profile read")
		}

		return nil, errors.Wrap(err, "failed to load account for profile")
	}

	return toProfileOutput(account), nil
}

// UpdateProfile applies the patch to the caller's account. Only supplied
// fields change; an address patch rewrites both stored address forms in
// the same transaction.
func (srv *profileService) UpdateProfile(ctx context.Context, accountID int64, input *usecase.UpdateProfileInput) (*usecase.ProfileOutput, error) {
	srv.log(ctx).Info("Updating profile", slog.Int64("accountID", accountID))

	var updated *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, findErr := accountRepo.FindByID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account not found for profile update")
			}

			return errors.Wrap(findErr, "failed to load account for profile update")
		}

		applyProfilePatch(account, input)

		if updateErr := accountRepo.Update(ctx, account); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist profile update")
		}
		updated = account

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Int64("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	return toProfileOutput(updated), nil
}

func applyProfilePatch(account *entity.Account, input *usecase.UpdateProfileInput) {
	if input.FirstName != nil {
		account.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		account.LastName = *input.LastName
	}
	if input.Phone != nil {
		account.Phone = *input.Phone
	}
	if input.StoreName != nil {
		account.StoreName = *input.StoreName
	}
	if input.BusinessType != nil {
		account.BusinessType = *input.BusinessType
	}
	if input.StoreLogoURL != nil {
		account.StoreLogoURL = *input.StoreLogoURL
	}
	if input.Address != nil {
		// Overlay the partial patch on the current effective address so
		// omitted subfields survive, then dual-write both forms.
		merged := account.EffectiveAddress().Merge(
			input.Address.Line1,
			input.Address.Line2,
			input.Address.City,
			input.Address.Zip,
			input.Address.Country,
		)
		account.SetAddress(merged)
	}
}

// UploadAvatar stores the image blob and persists the returned URL on the
// account. The key is derived from the account ID and upload time so
// concurrent uploads never collide.
func (srv *profileService) UploadAvatar(ctx context.Context, accountID int64, upload *usecase.AvatarUpload) (string, error) {
	if upload == nil || upload.Content == nil {
		return "", domainerrors.ErrNoFile.WrapMessage("no avatar blob supplied")
	}

	srv.log(ctx).Info("Uploading avatar", slog.Int64("accountID", accountID))

	key := fmt.Sprintf("avatars/%d_%d%s", accountID, srv.now().Unix(), path.Ext(upload.Filename))

	url, err := srv.blobStore.Save(ctx, key, upload.ContentType, upload.Content)
	if err != nil {
		srv.log(ctx).Error("Failed to store avatar blob", slog.Int64("accountID", accountID), slog.Any("error", err))

		return "", errors.Wrap(err, "failed to store avatar blob")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, findErr := accountRepo.FindByID(ctx, accountID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account not found for avatar update")
			}

			return errors.Wrap(findErr, "failed to load account for avatar update")
		}
		account.AvatarURL = url

		return accountRepo.Update(ctx, account)
	})

	if err != nil {
		return "", errors.Wrap(err, "failed to persist avatar url")
	}

	return url, nil
}

// toProfileOutput projects an account to its external view. The role is
// always reported in the canonical vocabulary, and the address is resolved
// structured-first with the legacy string as fallback.
func toProfileOutput(account *entity.Account) *usecase.ProfileOutput {
	addr := account.EffectiveAddress()

	return &usecase.ProfileOutput{
		Role: account.Role.String(),
		Profile: &usecase.ProfileView{
			ID:         account.ID,
			Email:      account.Email,
			Status:     account.Status.String(),
			CustomerID: account.CustomerCode,
			SellerID:   account.SellerCode,
			FirstName:  account.FirstName,
			LastName:   account.LastName,
			Phone:      account.Phone,
			AvatarURL:  account.AvatarURL,
			Address: usecase.AddressView{
				Line1:   addr.Line1,
				Line2:   addr.Line2,
				City:    addr.City,
				Zip:     addr.Zip,
				Country: addr.Country,
			},
			StoreName:    account.StoreName,
			BusinessType: account.BusinessType,
			StoreLogoURL: account.StoreLogoURL,
			CreatedAt:    account.CreatedAt,
		},
	}
}
