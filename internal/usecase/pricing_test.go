package usecase

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/polkiloo/passmint/internal/adapter/oracle"
	"github.com/polkiloo/passmint/internal/catalog"
	domainErrors "github.com/polkiloo/passmint/internal/domain/errors"
	"github.com/polkiloo/passmint/internal/domain/model"
	"github.com/polkiloo/passmint/internal/pkg/fixedpoint"
	testhelpers "github.com/polkiloo/passmint/internal/test"
)

func oneUSD() *big.Int { return big.NewInt(100_000_000) } // 1.00000000 at 8 decimals

func usd18(units int64) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	return new(big.Int).Mul(big.NewInt(units), scale)
}

func gatewayWith(mtop, native *big.Int) *testhelpers.PriceGatewayStub {
	return &testhelpers.PriceGatewayStub{Prices: map[oracle.Asset]*big.Int{
		oracle.AssetMtop:   mtop,
		oracle.AssetNative: native,
	}}
}

func TestQuoteShortAtParPrices(t *testing.T) {
	uc := NewPricingUseCase(gatewayWith(oneUSD(), oneUSD()), 18)

	quote, err := uc.Quote(context.Background(), model.TierShort)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.MtopAmount.Cmp(usd18(15)) != 0 {
		t.Fatalf("expected 15e18 mtop units, got %s", quote.MtopAmount)
	}
	if quote.PaymentAmount.Cmp(usd18(15)) != 0 {
		t.Fatalf("expected 15e18 payment units, got %s", quote.PaymentAmount)
	}
	if quote.ReferenceUSD.Cmp(usd18(30)) != 0 {
		t.Fatalf("expected doubled reference 30e18, got %s", quote.ReferenceUSD)
	}
}

func TestQuoteReferenceIsAlwaysDoubledCatalogPrice(t *testing.T) {
	uc := NewPricingUseCase(gatewayWith(oneUSD(), oneUSD()), 18)

	for _, tier := range model.Tiers() {
		params, err := catalog.Lookup(tier)
		if err != nil {
			t.Fatalf("catalog lookup %s: %v", tier, err)
		}
		quote, err := uc.Quote(context.Background(), tier)
		if err != nil {
			t.Fatalf("quote %s: %v", tier, err)
		}
		want := new(big.Int).Mul(params.USDPrice, big.NewInt(2))
		if quote.ReferenceUSD.Cmp(want) != 0 {
			t.Fatalf("%s: expected reference %s, got %s", tier, want, quote.ReferenceUSD)
		}
	}
}

func TestQuoteAmountsScaleInverselyWithPrice(t *testing.T) {
	base := NewPricingUseCase(gatewayWith(oneUSD(), oneUSD()), 18)
	doubled := NewPricingUseCase(gatewayWith(
		new(big.Int).Mul(oneUSD(), big.NewInt(2)),
		new(big.Int).Mul(oneUSD(), big.NewInt(2)),
	), 18)

	for _, tier := range []model.Tier{model.TierShort, model.TierMedium, model.TierLong} {
		q1, err := base.Quote(context.Background(), tier)
		if err != nil {
			t.Fatalf("quote %s: %v", tier, err)
		}
		q2, err := doubled.Quote(context.Background(), tier)
		if err != nil {
			t.Fatalf("quote %s at doubled price: %v", tier, err)
		}

		halved := new(big.Int).Quo(q1.MtopAmount, big.NewInt(2))
		if q2.MtopAmount.Cmp(halved) != 0 {
			t.Fatalf("%s: doubling the price must halve the mtop amount: %s vs %s", tier, q2.MtopAmount, halved)
		}
		halved = new(big.Int).Quo(q1.PaymentAmount, big.NewInt(2))
		if q2.PaymentAmount.Cmp(halved) != 0 {
			t.Fatalf("%s: doubling the price must halve the payment amount: %s vs %s", tier, q2.PaymentAmount, halved)
		}
	}
}

func TestQuotePrivilegedIsZero(t *testing.T) {
	// oracle state must not matter for the gift-only tier
	uc := NewPricingUseCase(&testhelpers.PriceGatewayStub{Err: errors.New("oracle down")}, 18)

	quote, err := uc.Quote(context.Background(), model.TierPrivileged)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.MtopAmount.Sign() != 0 || quote.PaymentAmount.Sign() != 0 || quote.ReferenceUSD.Sign() != 0 {
		t.Fatalf("expected all-zero quote, got %+v", quote)
	}
}

func TestQuoteRescalesToTokenDecimals(t *testing.T) {
	uc := NewPricingUseCase(gatewayWith(oneUSD(), oneUSD()), 6)

	quote, err := uc.Quote(context.Background(), model.TierShort)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.MtopAmount.Cmp(big.NewInt(15_000_000)) != 0 {
		t.Fatalf("expected 15e6 at 6 decimals, got %s", quote.MtopAmount)
	}
	// payment currency stays at 18 decimals regardless of token decimals
	if quote.PaymentAmount.Cmp(usd18(15)) != 0 {
		t.Fatalf("expected 15e18 payment units, got %s", quote.PaymentAmount)
	}
}

func TestQuoteTruncatesIntermediate(t *testing.T) {
	// 15 USD at 7.00000000 per unit: 15/7 truncated at 12 decimals is
	// 2.142857142857, upscaled to 18 decimals afterwards.
	uc := NewPricingUseCase(gatewayWith(big.NewInt(700_000_000), big.NewInt(700_000_000)), 18)

	quote, err := uc.Quote(context.Background(), model.TierShort)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want, _ := new(big.Int).SetString("2142857142857000000", 10)
	if quote.PaymentAmount.Cmp(want) != 0 {
		t.Fatalf("expected %s, got %s", want, quote.PaymentAmount)
	}
}

func TestQuoteZeroOraclePriceAborts(t *testing.T) {
	uc := NewPricingUseCase(gatewayWith(new(big.Int), oneUSD()), 18)

	if _, err := uc.Quote(context.Background(), model.TierShort); !errors.Is(err, fixedpoint.ErrDivideByZero) {
		t.Fatalf("expected ErrDivideByZero, got %v", err)
	}
}

func TestQuoteOracleFailurePropagates(t *testing.T) {
	oracleErr := errors.New("oracle down")
	uc := NewPricingUseCase(&testhelpers.PriceGatewayStub{Err: oracleErr}, 18)

	if _, err := uc.Quote(context.Background(), model.TierShort); !errors.Is(err, oracleErr) {
		t.Fatalf("expected oracle error, got %v", err)
	}
}

func TestQuoteUnknownTier(t *testing.T) {
	uc := NewPricingUseCase(gatewayWith(oneUSD(), oneUSD()), 18)

	if _, err := uc.Quote(context.Background(), model.Tier("WEEKLY")); !errors.Is(err, domainErrors.ErrUnknownTier) {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}
}
