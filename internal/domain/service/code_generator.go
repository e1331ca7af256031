package service

import (
	"context"

	"marketplace/internal/domain/entity"
)

// CodeGenerator assigns the sequential human-readable codes given to new
// accounts at registration ("CUS001" for customers, "SEL001" for sellers).
//
// Allocation must be atomic in the store so two concurrent registrations of
// the same role can never receive the same code.
type CodeGenerator interface {
	// Next allocates and returns the next code for the given role.
	Next(ctx context.Context, role entity.Role) (string, error)
}
