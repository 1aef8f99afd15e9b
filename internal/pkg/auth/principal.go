package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrNotAuthorized = errors.New("not the privileged principal")

// PrincipalGuard verifies that a presented key belongs to the single
// privileged principal. The key is bcrypt-hashed at construction so the
// plaintext does not stay resident for the process lifetime.
type PrincipalGuard struct {
	hash []byte
}

// NewPrincipalGuard builds a guard for the given admin key.
func NewPrincipalGuard(key string) (*PrincipalGuard, error) {
	if key == "" {
		return nil, errors.New("admin key must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &PrincipalGuard{hash: hash}, nil
}

// Verify checks a presented key against the principal's.
func (g *PrincipalGuard) Verify(presented string) error {
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(presented)); err != nil {
		return ErrNotAuthorized
	}
	return nil
}
