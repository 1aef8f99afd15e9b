package model

import "time"

// PassRecord describes one issued membership pass. Records are written
// exactly once at issuance and never mutated or deleted; expiry is
// evaluated by comparing ExpiresAt against current time.
type PassRecord struct {
	ID        uint64
	Owner     string
	Tier      Tier
	ExpiresAt uint64 // seconds since epoch, strictly positive for every stored record
	IssuedAt  time.Time
}

// Expired reports whether the pass validity window has ended at now.
func (r *PassRecord) Expired(now time.Time) bool {
	return uint64(now.Unix()) >= r.ExpiresAt
}
