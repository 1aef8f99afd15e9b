package test

import (
	"context"
	"math/big"
	"time"

	"github.com/polkiloo/passmint/internal/domain/model"
)

// PricingFacadeStub provides controllable behaviour for quote endpoints.
type PricingFacadeStub struct {
	QuoteFn func(context.Context, model.Tier) (*model.Quote, error)
}

// Quote delegates to the provided function or returns a fixed quote.
func (s PricingFacadeStub) Quote(ctx context.Context, tier model.Tier) (*model.Quote, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(ctx, tier)
	}
	unit, _ := new(big.Int).SetString("15000000000000000000", 10)
	return &model.Quote{
		MtopAmount:    new(big.Int).Set(unit),
		PaymentAmount: new(big.Int).Set(unit),
		ReferenceUSD:  new(big.Int).Mul(unit, big.NewInt(2)),
	}, nil
}

// PassFacadeStub simulates issuance and registry reads.
type PassFacadeStub struct {
	PurchaseFn     func(context.Context, string, string, model.Tier, *big.Int) (*model.PassRecord, error)
	GrantFn        func(context.Context, string, model.Tier) (*model.PassRecord, error)
	PassFn         func(context.Context, uint64) (*model.PassRecord, error)
	DescriptorFn   func(context.Context, uint64) (string, error)
	IssuedCountFn  func(context.Context) (uint64, error)
	FeeCollectorFn func() string
}

// Purchase executes the configured purchase handler or issues pass 0.
func (s PassFacadeStub) Purchase(ctx context.Context, buyer, recipient string, tier model.Tier, attached *big.Int) (*model.PassRecord, error) {
	if s.PurchaseFn != nil {
		return s.PurchaseFn(ctx, buyer, recipient, tier, attached)
	}
	return &model.PassRecord{Owner: recipient, Tier: tier, ExpiresAt: 1, IssuedAt: time.Unix(0, 0).UTC()}, nil
}

// Grant executes the configured grant handler or issues pass 0.
func (s PassFacadeStub) Grant(ctx context.Context, recipient string, tier model.Tier) (*model.PassRecord, error) {
	if s.GrantFn != nil {
		return s.GrantFn(ctx, recipient, tier)
	}
	return &model.PassRecord{Owner: recipient, Tier: tier, ExpiresAt: 1, IssuedAt: time.Unix(0, 0).UTC()}, nil
}

// Pass returns the configured record.
func (s PassFacadeStub) Pass(ctx context.Context, id uint64) (*model.PassRecord, error) {
	if s.PassFn != nil {
		return s.PassFn(ctx, id)
	}
	return &model.PassRecord{ID: id, Owner: "owner", Tier: model.TierShort, ExpiresAt: 1}, nil
}

// Descriptor returns the configured metadata URI.
func (s PassFacadeStub) Descriptor(ctx context.Context, id uint64) (string, error) {
	if s.DescriptorFn != nil {
		return s.DescriptorFn(ctx, id)
	}
	return "https://passes.example.com/meta/short", nil
}

// IssuedCount reports the configured counter value.
func (s PassFacadeStub) IssuedCount(ctx context.Context) (uint64, error) {
	if s.IssuedCountFn != nil {
		return s.IssuedCountFn(ctx)
	}
	return 0, nil
}

// FeeCollector reports the configured collector account.
func (s PassFacadeStub) FeeCollector() string {
	if s.FeeCollectorFn != nil {
		return s.FeeCollectorFn()
	}
	return "fees"
}

// AdminFacadeStub simulates the privileged surface.
type AdminFacadeStub struct {
	VerifyFn        func(string) error
	ReplaceOracleFn func(string, string) error

	SetCalls []string
}

// VerifyPrincipal executes the configured verifier, accepting by default.
func (s *AdminFacadeStub) VerifyPrincipal(key string) error {
	if s.VerifyFn != nil {
		return s.VerifyFn(key)
	}
	return nil
}

// ReplaceOracle executes the configured handler, accepting by default.
func (s *AdminFacadeStub) ReplaceOracle(asset, address string) error {
	if s.ReplaceOracleFn != nil {
		return s.ReplaceOracleFn(asset, address)
	}
	return nil
}

// SetFeeCollector records the requested collector account.
func (s *AdminFacadeStub) SetFeeCollector(account string) {
	s.SetCalls = append(s.SetCalls, account)
}

// PassmintFacadeStub aggregates the three facade stubs for router tests.
type PassmintFacadeStub struct {
	PricingFacadeStub
	PassFacadeStub
	*AdminFacadeStub
}

// NewPassmintFacadeStub builds an aggregate stub with default behaviour.
func NewPassmintFacadeStub() *PassmintFacadeStub {
	return &PassmintFacadeStub{AdminFacadeStub: &AdminFacadeStub{}}
}
