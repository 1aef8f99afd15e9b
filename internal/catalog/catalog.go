package catalog

import (
	"math/big"

	domainErrors "github.com/polkiloo/passmint/internal/domain/errors"
	"github.com/polkiloo/passmint/internal/domain/model"
)

// USDDecimals is the precision of every catalog reference price. It
// matches the payment currency's native precision.
const USDDecimals = 18

// Params holds the immutable pricing parameters of one tier.
type Params struct {
	USDPrice     *big.Int // 18 decimals; zero for the gift-only tier
	ValidityDays uint32
	Purchasable  bool
}

func usd(units int64) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	return new(big.Int).Mul(big.NewInt(units), scale)
}

var tiers = map[model.Tier]Params{
	model.TierShort:      {USDPrice: usd(15), ValidityDays: 30, Purchasable: true},
	model.TierMedium:     {USDPrice: usd(35), ValidityDays: 90, Purchasable: true},
	model.TierLong:       {USDPrice: usd(125), ValidityDays: 360, Purchasable: true},
	model.TierPrivileged: {USDPrice: new(big.Int), ValidityDays: 360, Purchasable: false},
}

var suffixes = map[model.Tier]string{
	model.TierShort:      "short",
	model.TierMedium:     "medium",
	model.TierLong:       "long",
	model.TierPrivileged: "privileged",
}

// Lookup returns the parameters for a tier. The USD price is copied so
// callers cannot corrupt the table.
func Lookup(tier model.Tier) (Params, error) {
	p, ok := tiers[tier]
	if !ok {
		return Params{}, domainErrors.ErrUnknownTier
	}
	return Params{
		USDPrice:     new(big.Int).Set(p.USDPrice),
		ValidityDays: p.ValidityDays,
		Purchasable:  p.Purchasable,
	}, nil
}

// DescriptorSuffix maps a tier to the descriptor path suffix used by
// the metadata accessor.
func DescriptorSuffix(tier model.Tier) (string, error) {
	s, ok := suffixes[tier]
	if !ok {
		return "", domainErrors.ErrUnknownTier
	}
	return s, nil
}
