package test

import (
	"context"
	"time"

	domainErrors "github.com/polkiloo/passmint/internal/domain/errors"
	"github.com/polkiloo/passmint/internal/domain/model"
)

// PassRepositoryStub keeps issued passes in memory with a monotonic
// counter, mirroring the registry contract.
type PassRepositoryStub struct {
	Records map[uint64]*model.PassRecord
	Next    uint64
	Err     error
}

// NewPassRepositoryStub constructs stub repository with initialized map.
func NewPassRepositoryStub() *PassRepositoryStub {
	return &PassRepositoryStub{Records: make(map[uint64]*model.PassRecord)}
}

// Issue allocates the next identifier and stores the record.
func (s *PassRepositoryStub) Issue(ctx context.Context, owner string, tier model.Tier, expiresAt uint64) (uint64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	if s.Records == nil {
		s.Records = make(map[uint64]*model.PassRecord)
	}
	id := s.Next
	if _, exists := s.Records[id]; exists {
		return 0, domainErrors.ErrPassAlreadyExists
	}
	s.Records[id] = &model.PassRecord{
		ID:        id,
		Owner:     owner,
		Tier:      tier,
		ExpiresAt: expiresAt,
		IssuedAt:  time.Now(),
	}
	s.Next++
	return id, nil
}

// Lookup returns the stored record or not found.
func (s *PassRepositoryStub) Lookup(ctx context.Context, id uint64) (*model.PassRecord, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if rec, ok := s.Records[id]; ok {
		return rec, nil
	}
	return nil, domainErrors.ErrPassNotFound
}

// IssuedCount returns the current counter value.
func (s *PassRepositoryStub) IssuedCount(ctx context.Context) (uint64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.Next, nil
}
