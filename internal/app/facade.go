package app

import (
	"context"
	"log/slog"
	"math/big"
	"strings"

	"github.com/polkiloo/passmint/internal/adapter/oracle"
	"github.com/polkiloo/passmint/internal/catalog"
	"github.com/polkiloo/passmint/internal/domain/model"
	pkgAuth "github.com/polkiloo/passmint/internal/pkg/auth"
	"github.com/polkiloo/passmint/internal/usecase"
)

// OracleAdmin is the source-replacement surface of the oracle gateway.
type OracleAdmin interface {
	CurrentPrice(ctx context.Context, asset oracle.Asset) (*big.Int, error)
	Replace(asset oracle.Asset, src oracle.Source) error
}

// PassmintFacade aggregates use cases behind the HTTP surface.
type PassmintFacade struct {
	pricing    *usecase.PricingUseCase
	membership *usecase.MembershipUseCase
	oracles    OracleAdmin
	guard      *pkgAuth.PrincipalGuard
	logger     *slog.Logger

	descriptorBase string
}

// NewPassmintFacade constructs PassmintFacade.
func NewPassmintFacade(
	pricing *usecase.PricingUseCase,
	membership *usecase.MembershipUseCase,
	oracles OracleAdmin,
	guard *pkgAuth.PrincipalGuard,
	logger *slog.Logger,
	descriptorBase string,
) *PassmintFacade {
	return &PassmintFacade{
		pricing:        pricing,
		membership:     membership,
		oracles:        oracles,
		guard:          guard,
		logger:         logger,
		descriptorBase: descriptorBase,
	}
}

func (f *PassmintFacade) Quote(ctx context.Context, tier model.Tier) (*model.Quote, error) {
	return f.pricing.Quote(ctx, tier)
}

func (f *PassmintFacade) Purchase(ctx context.Context, buyer, recipient string, tier model.Tier, attached *big.Int) (*model.PassRecord, error) {
	return f.membership.Purchase(ctx, buyer, recipient, tier, attached)
}

func (f *PassmintFacade) Grant(ctx context.Context, recipient string, tier model.Tier) (*model.PassRecord, error) {
	return f.membership.Grant(ctx, recipient, tier)
}

func (f *PassmintFacade) Pass(ctx context.Context, id uint64) (*model.PassRecord, error) {
	return f.membership.Lookup(ctx, id)
}

// Descriptor resolves the metadata URI of an issued pass.
func (f *PassmintFacade) Descriptor(ctx context.Context, id uint64) (string, error) {
	rec, err := f.membership.Lookup(ctx, id)
	if err != nil {
		return "", err
	}
	suffix, err := catalog.DescriptorSuffix(rec.Tier)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(f.descriptorBase, "/") + "/" + suffix, nil
}

func (f *PassmintFacade) IssuedCount(ctx context.Context) (uint64, error) {
	return f.membership.IssuedCount(ctx)
}

func (f *PassmintFacade) FeeCollector() string {
	return f.membership.FeeCollector()
}

func (f *PassmintFacade) SetFeeCollector(account string) {
	f.membership.SetFeeCollector(account)
}

func (f *PassmintFacade) VerifyPrincipal(key string) error {
	return f.guard.Verify(key)
}

// ReplaceOracle swaps one price feed for a new HTTP source.
func (f *PassmintFacade) ReplaceOracle(asset, address string) error {
	parsed, ok := oracle.ParseAsset(asset)
	if !ok {
		return oracle.ErrUnknownAsset
	}
	src, err := oracle.NewHTTPSource(address, f.logger)
	if err != nil {
		return err
	}
	return f.oracles.Replace(parsed, src)
}

// SamplePrice reads one current price, for the background sampler.
func (f *PassmintFacade) SamplePrice(ctx context.Context, asset oracle.Asset) (*big.Int, error) {
	return f.oracles.CurrentPrice(ctx, asset)
}
