// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Account is the central entity of the platform: one stored user record
// with identity, credential, role and lifecycle status.
type Account struct {
	ID           int64  // Numeric primary key, assigned by the store.
	Email        string // Unique login identifier, trimmed before any lookup or write.
	PasswordHash string // One-way bcrypt hash; the plaintext never leaves the lifecycle service.

	Role   Role   // CUSTOMER, SELLER or ADMIN (canonical vocabulary).
	Status Status // PENDING, ACTIVE or SUSPENDED.

	// Human-readable codes, assigned once at registration and immutable.
	// At most one of the two is set, matching the account's role.
	CustomerCode string // e.g. "CUS001" for customers.
	SellerCode   string // e.g. "SEL001" for sellers.

	// Self-service profile fields, all optional.
	FirstName string
	LastName  string
	Phone     string
	AvatarURL string

	// Address holds the structured form; nil when the account never wrote
	// one. LegacyAddress mirrors it as the historical single-string form
	// and is regenerated on every address write.
	Address       *Address
	LegacyAddress string

	// Seller storefront fields; meaningless for customers and admins.
	StoreName    string
	BusinessType string
	StoreLogoURL string

	// Onboarding carries the document and banking details captured at
	// seller registration. The core passes them through unvalidated.
	Onboarding SellerOnboarding

	CreatedAt time.Time // Immutable; directory listings order by it descending.
	UpdatedAt time.Time
}

// SellerOnboarding groups the attributes a seller submits when applying to
// join the marketplace. They are stored verbatim for the admin review flow.
type SellerOnboarding struct {
	PharmacyLicense   string
	LicenseDocURL     string
	TaxID             string
	BusinessAddress   string
	OwnerIDProofURL   string
	ProofOfAddressURL string
	MedicalCertURL    string
	BankName          string
	AccountHolder     string
	AccountNumber     string
}

// EffectiveAddress resolves the address the account should present:
// the structured form when present, otherwise the parsed legacy string,
// otherwise an all-empty address.
func (a *Account) EffectiveAddress() Address {
	if a.Address != nil {
		return *a.Address
	}
	if a.LegacyAddress != "" {
		return ParseLegacyAddress(a.LegacyAddress)
	}

	return Address{}
}

// SetAddress writes both address representations in one step so they can
// never drift apart.
func (a *Account) SetAddress(addr Address) {
	a.Address = &addr
	a.LegacyAddress = addr.Legacy()
}

// IsSeller reports whether the account participates in the marketplace as
// a seller.
func (a *Account) IsSeller() bool {
	return a.Role == RoleSeller
}

// CanLogin reports whether the account may authenticate. Sellers must be
// approved first; customers and admins are never gated by status here.
func (a *Account) CanLogin() bool {
	if a.IsSeller() {
		return a.Status == StatusActive
	}

	return true
}
