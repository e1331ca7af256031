// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"io"
	"time"
)

// AddressInput is a partial structured address: only non-nil fields are
// applied; omitted fields keep their prior value.
type AddressInput struct {
	Line1   *string `json:"line1"`
	Line2   *string `json:"line2"`
	City    *string `json:"city"`
	Zip     *string `json:"zip"`
	Country *string `json:"country"`
}

// UpdateProfileInput defines the patch an account owner may apply to their
// own profile. Unset fields are left unchanged, never nulled.
type UpdateProfileInput struct {
	FirstName    *string       `json:"firstName"`
	LastName     *string       `json:"lastName"`
	Phone        *string       `json:"phone"`
	Address      *AddressInput `json:"address"`
	StoreName    *string       `json:"storeName"`
	BusinessType *string       `json:"businessType"`
	StoreLogoURL *string       `json:"storeLogoUrl"`
}

// AvatarUpload carries one uploaded avatar image.
type AvatarUpload struct {
	Filename    string
	ContentType string
	Content     io.Reader
}

// AddressView is the structured address as presented to callers. Every
// field is always present, defaulting to the empty string.
type AddressView struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// ProfileView is the role-shaped projection of an account returned to its
// owner. Role always uses the external vocabulary (SELLER, never SALES).
type ProfileView struct {
	ID           int64       `json:"id"`
	Email        string      `json:"email"`
	Status       string      `json:"status"`
	CustomerID   string      `json:"customerId"`
	SellerID     string      `json:"sellerId"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Phone        string      `json:"phone"`
	AvatarURL    string      `json:"avatarUrl"`
	Address      AddressView `json:"address"`
	StoreName    string      `json:"storeName"`
	BusinessType string      `json:"businessType"`
	StoreLogoURL string      `json:"storeLogoUrl"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// ProfileOutput pairs the caller's role with their profile view.
type ProfileOutput struct {
	Role    string       `json:"role"`
	Profile *ProfileView `json:"profile"`
}

// ProfileUsecase defines the self-service profile operations available to
// an authenticated account owner.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, accountID int64) (*ProfileOutput, error)
	UpdateProfile(ctx context.Context, accountID int64, input *UpdateProfileInput) (*ProfileOutput, error)
	UploadAvatar(ctx context.Context, accountID int64, upload *AvatarUpload) (string, error)
}
