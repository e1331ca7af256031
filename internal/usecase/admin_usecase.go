// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"time"
)

// --- Input DTOs ---

// ListUsersInput describes a directory page request before normalization.
type ListUsersInput struct {
	Page     int
	PageSize int
	Search   string
}

// PatchUserInput is the admin patch applied to an account; only supplied
// fields are updated. Role accepts the legacy SALES alias.
type PatchUserInput struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

// Seller decision actions. Anything else is rejected as invalid input.
const (
	SellerActionApprove = "approve"
	SellerActionReject  = "reject"
)

// --- Output DTOs ---

// DirectoryRow is one account in the admin directory listing.
type DirectoryRow struct {
	ID         int64     `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	CustomerID string    `json:"customerId"`
	SellerID   string    `json:"sellerId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListUsersOutput is one directory page plus the total match count
// independent of pagination.
type ListUsersOutput struct {
	Total    int64           `json:"total"`
	Rows     []*DirectoryRow `json:"rows"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
}

// SellerRow is one seller in the approval queue listing.
type SellerRow struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	StoreName    string    `json:"storeName"`
	BusinessType string    `json:"businessType"`
	SellerID     string    `json:"sellerId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OverviewOutput is the admin dashboard aggregate. Order metrics report
// zero until the order subsystem exists.
type OverviewOutput struct {
	UsersCount     int64   `json:"usersCount"`
	SellersPending int64   `json:"sellersPending"`
	OrdersCount    int64   `json:"ordersCount"`
	RevenueTotal   float64 `json:"revenueTotal"`
}

// AdminUsecase defines the admin-only operations: the seller approval
// workflow and the user directory query.
type AdminUsecase interface {
	Overview(ctx context.Context) (*OverviewOutput, error)
	ListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error)
	PatchUser(ctx context.Context, accountID int64, input *PatchUserInput) error
	ListSellers(ctx context.Context, statusFilter string) ([]*SellerRow, error)
	DecideSeller(ctx context.Context, accountID int64, action string) (string, error)
}
