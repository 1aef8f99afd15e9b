package handlers

import (
	"context"
	"math/big"

	"github.com/polkiloo/passmint/internal/domain/model"
)

// PricingFacade exposes quoting to HTTP handlers.
type PricingFacade interface {
	Quote(ctx context.Context, tier model.Tier) (*model.Quote, error)
}

// PassFacade exposes issuance and registry reads.
type PassFacade interface {
	Purchase(ctx context.Context, buyer, recipient string, tier model.Tier, attached *big.Int) (*model.PassRecord, error)
	Grant(ctx context.Context, recipient string, tier model.Tier) (*model.PassRecord, error)
	Pass(ctx context.Context, id uint64) (*model.PassRecord, error)
	Descriptor(ctx context.Context, id uint64) (string, error)
	IssuedCount(ctx context.Context) (uint64, error)
	FeeCollector() string
}

// AdminFacade exposes the privileged administrative surface.
type AdminFacade interface {
	VerifyPrincipal(key string) error
	ReplaceOracle(asset, address string) error
	SetFeeCollector(account string)
}

// PassmintFacade aggregates the full set of operations used across handlers.
type PassmintFacade interface {
	PricingFacade
	PassFacade
	AdminFacade
}
