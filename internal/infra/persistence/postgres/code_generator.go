package postgres

import (
	"context"
	"fmt"

	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/service"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// codePrefixes maps a role to its code series prefix.
var codePrefixes = map[entity.Role]string{
	entity.RoleCustomer: "CUS",
	entity.RoleSeller:   "SEL",
}

// accountCodeGenerator implements the CodeGenerator interface on top of the
// account_codes counter table.
type accountCodeGenerator struct {
	db *gorm.DB
}

// NewAccountCodeGenerator is the constructor for accountCodeGenerator.
func NewAccountCodeGenerator(db *gorm.DB) service.CodeGenerator {
	return &accountCodeGenerator{db: db}
}

// Next allocates the next code for the role. The upsert bumps the per-role
// counter and returns the new value in one statement, so concurrent
// registrations serialize on the row and never observe the same sequence.
func (g *accountCodeGenerator) Next(ctx context.Context, role entity.Role) (string, error) {
	prefix, ok := codePrefixes[role]
	if !ok {
		return "", errors.Errorf("no code series for role %s", role)
	}

	var seq int64
	err := g.db.WithContext(ctx).Raw(
		`INSERT INTO account_codes (role, seq) VALUES (?, 1)
		 ON CONFLICT (role) DO UPDATE SET seq = account_codes.seq + 1
		 RETURNING seq`,
		role.String(),
	).Scan(&seq).Error
	if err != nil {
		return "", errors.Wrap(err, "failed to advance account code counter")
	}

	return FormatCode(prefix, seq), nil
}

// FormatCode renders a code series value, zero-padded to three digits
// ("CUS001"). Sequences past 999 simply grow wider.
func FormatCode(prefix string, seq int64) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}
