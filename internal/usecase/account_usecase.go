// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "context"

// --- Input DTOs ---

// RegisterInput defines the data accepted when registering a new account.
// Everything beyond email and password is passed through to the store
// unvalidated; seller onboarding fields are only meaningful when the role
// hint resolves to SELLER.
type RegisterInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"` // CUSTOMER, SELLER or the legacy SALES alias; default CUSTOMER

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"` // legacy single-string form accepted at registration

	StoreName         string `json:"storeName"`
	BusinessType      string `json:"businessType"`
	PharmacyLicense   string `json:"pharmacyLicense"`
	LicenseDocURL     string `json:"licenseDocUrl"`
	TaxID             string `json:"taxId"`
	StoreLogoURL      string `json:"storeLogoUrl"`
	BusinessAddress   string `json:"businessAddress"`
	OwnerIDProofURL   string `json:"ownerIdProofUrl"`
	ProofOfAddressURL string `json:"proofOfAddressUrl"`
	MedicalCertURL    string `json:"medicalCertUrl"`
	BankName          string `json:"bankName"`
	AccountHolder     string `json:"accountHolder"`
	AccountNumber     string `json:"accountNumber"`
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput defines the data required to change a password under
// re-authentication. Email is optional; when supplied it must match the
// authenticated account.
type ChangePasswordInput struct {
	Email       string `json:"email"`
	Password    string `json:"password" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the role-dependent confirmation message.
type RegisterOutput struct {
	Message string `json:"message"`
}

// LoginOutput returns the session token and the caller's role.
type LoginOutput struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    string `json:"role"`
}

// AccountUsecase defines the account lifecycle operations: registration,
// credential verification with session issuance, and password change.
// This is the contract the delivery layer depends on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	ChangePassword(ctx context.Context, accountID int64, input *ChangePasswordInput) error
}
