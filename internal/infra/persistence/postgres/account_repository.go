// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"strings"

	"marketplace/internal/domain/entity"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/domain/repository"
	"marketplace/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// sellerRoleLabels are the stored spellings that identify a seller row. The
// historical SALES label survives in rows written before the rename.
var sellerRoleLabels = []string{"SELLER", "SALES"}

// directorySearchCondition matches a lowered term against email, names and
// the human-readable codes. The code columns are nullable, hence COALESCE.
const directorySearchCondition = "LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(COALESCE(customer_id, '')) LIKE ? OR LOWER(COALESCE(seller_id, '')) LIKE ?"

// directorySearchPattern lowers the term so a search for "CUS001" still
// finds the code cus001.
func directorySearchPattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}

// directoryOffset translates a one-based page into the row offset.
func directoryOffset(query repository.DirectoryQuery) int {
	return (query.Page - 1) * query.PageSize
}

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its numeric primary key.
func (repo *accountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).First(&accountM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account entity.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Propagate the generated ID and timestamps back to the entity.
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Update modifies an existing account entity in the database.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Save(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}

	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// List returns one directory page ordered by creation time descending plus
// the total match count. The search term matches case-insensitively against
// email, names and the human-readable codes.
func (repo *accountRepository) List(ctx context.Context, query repository.DirectoryQuery) ([]*entity.Account, int64, error) {
	tx := repo.directoryQuery(ctx, query.Search)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count directory matches")
	}

	var accountMs []*model.AccountModel
	err := tx.
		Order("created_at DESC").
		Offset(directoryOffset(query)).
		Limit(query.PageSize).
		Find(&accountMs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountMs))
	for _, accountM := range accountMs {
		accounts = append(accounts, toAccountDomain(accountM))
	}

	return accounts, total, nil
}

// directoryQuery builds the filtered base query shared by the count and the
// page fetch.
func (repo *accountRepository) directoryQuery(ctx context.Context, search string) *gorm.DB {
	tx := repo.db.WithContext(ctx).Model(&model.AccountModel{})
	if search != "" {
		pattern := directorySearchPattern(search)
		tx = tx.Where(directorySearchCondition, pattern, pattern, pattern, pattern, pattern)
	}

	return tx
}

// ListSellers returns all seller accounts with the given status, newest first.
func (repo *accountRepository) ListSellers(ctx context.Context, status entity.Status) ([]*entity.Account, error) {
	var accountMs []*model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("role IN ? AND status = ?", sellerRoleLabels, status.String()).
		Order("created_at DESC").
		Find(&accountMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sellers")
	}

	sellers := make([]*entity.Account, 0, len(accountMs))
	for _, accountM := range accountMs {
		sellers = append(sellers, toAccountDomain(accountM))
	}

	return sellers, nil
}

// Count returns the total number of accounts.
func (repo *accountRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.AccountModel{}).Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count accounts")
	}

	return total, nil
}

// CountSellersByStatus returns the number of sellers in the given status.
func (repo *accountRepository) CountSellersByStatus(ctx context.Context, status entity.Status) (int64, error) {
	var total int64
	err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("role IN ? AND status = ?", sellerRoleLabels, status.String()).
		Count(&total).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count sellers by status")
	}

	return total, nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
// Stored role labels are normalized, so the legacy SALES spelling never
// escapes the persistence layer.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	account := &entity.Account{
		ID:            data.ID,
		Email:         data.Email,
		PasswordHash:  data.PasswordHash,
		Role:          entity.NormalizeRole(data.Role),
		Status:        entity.Status(data.Status),
		CustomerCode:  derefString(data.CustomerID),
		SellerCode:    derefString(data.SellerID),
		FirstName:     data.FirstName,
		LastName:      data.LastName,
		Phone:         data.Phone,
		AvatarURL:     data.AvatarURL,
		LegacyAddress: data.Address,
		StoreName:     data.StoreName,
		BusinessType:  data.BusinessType,
		StoreLogoURL:  data.StoreLogoURL,
		Onboarding: entity.SellerOnboarding{
			PharmacyLicense:   data.PharmacyLicense,
			LicenseDocURL:     data.LicenseDocURL,
			TaxID:             data.TaxID,
			BusinessAddress:   data.BusinessAddress,
			OwnerIDProofURL:   data.OwnerIDProofURL,
			ProofOfAddressURL: data.ProofOfAddressURL,
			MedicalCertURL:    data.MedicalCertURL,
			BankName:          data.BankName,
			AccountHolder:     data.AccountHolder,
			AccountNumber:     data.AccountNumber,
		},
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}

	// All-empty structured columns mean the row predates the address split;
	// the entity then falls back to the legacy string.
	structured := entity.Address{
		Line1:   data.AddressLine1,
		Line2:   data.AddressLine2,
		City:    data.AddressCity,
		Zip:     data.AddressZip,
		Country: data.AddressCountry,
	}
	if !structured.IsZero() {
		account.Address = &structured
	}

	return account
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	accountM := &model.AccountModel{
		ID:           data.ID,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         data.Role.String(),
		Status:       data.Status.String(),
		CustomerID:   nilIfEmpty(data.CustomerCode),
		SellerID:     nilIfEmpty(data.SellerCode),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Phone:        data.Phone,
		AvatarURL:    data.AvatarURL,
		Address:      data.LegacyAddress,
		StoreName:    data.StoreName,
		BusinessType: data.BusinessType,
		StoreLogoURL: data.StoreLogoURL,

		PharmacyLicense:   data.Onboarding.PharmacyLicense,
		LicenseDocURL:     data.Onboarding.LicenseDocURL,
		TaxID:             data.Onboarding.TaxID,
		BusinessAddress:   data.Onboarding.BusinessAddress,
		OwnerIDProofURL:   data.Onboarding.OwnerIDProofURL,
		ProofOfAddressURL: data.Onboarding.ProofOfAddressURL,
		MedicalCertURL:    data.Onboarding.MedicalCertURL,
		BankName:          data.Onboarding.BankName,
		AccountHolder:     data.Onboarding.AccountHolder,
		AccountNumber:     data.Onboarding.AccountNumber,

		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}

	if data.Address != nil {
		accountM.AddressLine1 = data.Address.Line1
		accountM.AddressLine2 = data.Address.Line2
		accountM.AddressCity = data.Address.City
		accountM.AddressZip = data.Address.Zip
		accountM.AddressCountry = data.Address.Country
	}

	return accountM
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
