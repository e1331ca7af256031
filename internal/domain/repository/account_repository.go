// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"marketplace/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when no account
// matches the lookup.
var ErrAccountNotFound = errors.New("account not found")

// DirectoryQuery describes one page of the admin directory listing.
// Values are assumed to be normalized by the caller (page >= 1, pageSize
// within bounds, search already trimmed).
type DirectoryQuery struct {
	Page     int
	PageSize int
	Search   string // matched case-insensitively against email, names and codes
}

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete store.
type AccountRepository interface {
	// FindByID retrieves a single account by its numeric primary key.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// FindByEmail retrieves a single account by its trimmed email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account. The write is all-or-nothing.
	Update(ctx context.Context, account *entity.Account) error

	// List returns one page of accounts ordered by creation time
	// descending, along with the total match count independent of paging.
	List(ctx context.Context, query DirectoryQuery) ([]*entity.Account, int64, error)

	// ListSellers returns all seller accounts with the given status,
	// ordered by creation time descending.
	ListSellers(ctx context.Context, status entity.Status) ([]*entity.Account, error)

	// Count returns the total number of accounts.
	Count(ctx context.Context) (int64, error)

	// CountSellersByStatus returns the number of sellers in the given status.
	CountSellersByStatus(ctx context.Context, status entity.Status) (int64, error)
}
