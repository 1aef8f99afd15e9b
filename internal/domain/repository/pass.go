package repository

import (
	"context"

	"github.com/polkiloo/passmint/internal/domain/model"
)

// PassRepository persists the membership registry and the identifier
// counter. Identifiers are allocated monotonically from 0 and never
// reused.
type PassRepository interface {
	// Issue allocates the next identifier and writes the record in one
	// transaction, returning the allocated identifier.
	Issue(ctx context.Context, owner string, tier model.Tier, expiresAt uint64) (uint64, error)
	// Lookup returns the record for an identifier or ErrPassNotFound.
	Lookup(ctx context.Context, id uint64) (*model.PassRecord, error)
	// IssuedCount returns how many passes have been issued so far,
	// which is also the next identifier to be allocated.
	IssuedCount(ctx context.Context) (uint64, error)
}
