// Package model holds the GORM persistence models mirroring the database tables.
package model

import (
	"time"
)

// AccountModel mirrors the 'accounts' table. The primary key is a plain
// bigserial; the human-readable codes live in their own nullable unique
// columns so customers and sellers number independently.
//
// The role column still contains the historical SALES spelling for rows
// written before the rename; reads normalize it, writes always use SELLER.
type AccountModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Email        string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string  `gorm:"type:varchar(255);not null"`
	Role         string  `gorm:"type:varchar(20);not null;index"`
	Status       string  `gorm:"type:varchar(20);not null;index"`
	CustomerID   *string `gorm:"type:varchar(20);uniqueIndex"`
	SellerID     *string `gorm:"type:varchar(20);uniqueIndex"`

	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Phone     string `gorm:"type:varchar(50)"`
	AvatarURL string `gorm:"type:varchar(500)"`

	// Structured address columns, with the historical single-string form
	// kept alongside for rows predating the split.
	AddressLine1   string `gorm:"type:varchar(255)"`
	AddressLine2   string `gorm:"type:varchar(255)"`
	AddressCity    string `gorm:"type:varchar(100)"`
	AddressZip     string `gorm:"type:varchar(20)"`
	AddressCountry string `gorm:"type:varchar(100)"`
	Address        string `gorm:"type:text"`

	StoreName    string `gorm:"type:varchar(150)"`
	BusinessType string `gorm:"type:varchar(100)"`
	StoreLogoURL string `gorm:"type:varchar(500)"`

	PharmacyLicense   string `gorm:"type:varchar(100)"`
	LicenseDocURL     string `gorm:"type:varchar(500)"`
	TaxID             string `gorm:"type:varchar(100)"`
	BusinessAddress   string `gorm:"type:text"`
	OwnerIDProofURL   string `gorm:"type:varchar(500)"`
	ProofOfAddressURL string `gorm:"type:varchar(500)"`
	MedicalCertURL    string `gorm:"type:varchar(500)"`
	BankName          string `gorm:"type:varchar(150)"`
	AccountHolder     string `gorm:"type:varchar(150)"`
	AccountNumber     string `gorm:"type:varchar(50)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// AccountCodeModel mirrors the 'account_codes' table: one row per role
// holding the last issued sequence number for that role's code series.
type AccountCodeModel struct {
	Role string `gorm:"type:varchar(20);primaryKey"`
	Seq  int64  `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (AccountCodeModel) TableName() string {
	return "account_codes"
}
