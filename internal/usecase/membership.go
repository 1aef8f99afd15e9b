package usecase

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/polkiloo/passmint/internal/adapter/ledger"
	"github.com/polkiloo/passmint/internal/catalog"
	domainErrors "github.com/polkiloo/passmint/internal/domain/errors"
	"github.com/polkiloo/passmint/internal/domain/model"
	"github.com/polkiloo/passmint/internal/domain/repository"
)

const secondsPerDay = 86400

// Quoter is the pricing dependency of the issuance flow.
type Quoter interface {
	Quote(ctx context.Context, tier model.Tier) (*model.Quote, error)
}

// MembershipUseCase orchestrates purchases and administrative grants.
// Issuance calls are serialized; registry and counter mutate only after
// every fallible step has succeeded, so a failed call leaves no state.
type MembershipUseCase struct {
	mu sync.Mutex

	passes  repository.PassRepository
	pricing Quoter
	funds   ledger.Client

	feeCollector string
	custody      string
	now          func() time.Time
}

// NewMembershipUseCase constructs MembershipUseCase.
func NewMembershipUseCase(passes repository.PassRepository, pricing Quoter, funds ledger.Client, feeCollector, custody string) *MembershipUseCase {
	return &MembershipUseCase{
		passes:       passes,
		pricing:      pricing,
		funds:        funds,
		feeCollector: feeCollector,
		custody:      custody,
		now:          time.Now,
	}
}

// WithClock overrides the issuance clock, for tests.
func (u *MembershipUseCase) WithClock(now func() time.Time) *MembershipUseCase {
	u.now = now
	return u
}

// Grant issues a pass of any tier to recipient without payment. Caller
// authorization is enforced at the HTTP boundary.
func (u *MembershipUseCase) Grant(ctx context.Context, recipient string, tier model.Tier) (*model.PassRecord, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, err := catalog.Lookup(tier); err != nil {
		return nil, err
	}
	return u.issue(ctx, recipient, tier)
}

// Purchase issues a pass of a purchasable tier to recipient against an
// exact attached payment. The attached amount must equal the quoted
// payment amount to the unit; over- and underpayment both reject.
func (u *MembershipUseCase) Purchase(ctx context.Context, buyer, recipient string, tier model.Tier, attached *big.Int) (*model.PassRecord, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	params, err := catalog.Lookup(tier)
	if err != nil {
		return nil, err
	}
	if !params.Purchasable {
		return nil, domainErrors.ErrTierNotPurchasable
	}

	quote, err := u.pricing.Quote(ctx, tier)
	if err != nil {
		return nil, err
	}
	if attached == nil || attached.Cmp(quote.PaymentAmount) != 0 {
		return nil, domainErrors.ErrPaymentMismatch
	}

	if err := u.funds.TransferFrom(ctx, ledger.AssetMtop, buyer, u.feeCollector, quote.MtopAmount); err != nil {
		return nil, err
	}
	if err := u.funds.TransferFrom(ctx, ledger.AssetNative, buyer, u.feeCollector, quote.PaymentAmount); err != nil {
		return nil, err
	}

	// sweep whatever native balance sits in custody back to the buyer.
	// The exact-match check above makes this a no-op except for stray
	// prior deposits; the whole residual goes back regardless of its
	// origin.
	residual, err := u.funds.Balance(ctx, ledger.AssetNative, u.custody)
	if err != nil {
		return nil, err
	}
	if residual.Sign() > 0 {
		if err := u.funds.Transfer(ctx, ledger.AssetNative, buyer, residual); err != nil {
			return nil, err
		}
	}

	return u.issue(ctx, recipient, tier)
}

// Lookup returns the record for an issued pass.
func (u *MembershipUseCase) Lookup(ctx context.Context, id uint64) (*model.PassRecord, error) {
	return u.passes.Lookup(ctx, id)
}

// IssuedCount returns the number of issued passes.
func (u *MembershipUseCase) IssuedCount(ctx context.Context) (uint64, error) {
	return u.passes.IssuedCount(ctx)
}

// FeeCollector returns the current fee collector account.
func (u *MembershipUseCase) FeeCollector() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.feeCollector
}

// SetFeeCollector replaces the fee collector account. Restricted to the
// privileged principal at the HTTP boundary.
func (u *MembershipUseCase) SetFeeCollector(account string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.feeCollector = account
}

// issue allocates the next identifier and writes the registry record.
// Runs strictly after payment settlement on the purchase path.
func (u *MembershipUseCase) issue(ctx context.Context, recipient string, tier model.Tier) (*model.PassRecord, error) {
	params, err := catalog.Lookup(tier)
	if err != nil {
		return nil, err
	}

	issuedAt := u.now()
	expiresAt := uint64(issuedAt.Unix()) + uint64(params.ValidityDays)*secondsPerDay

	id, err := u.passes.Issue(ctx, recipient, tier, expiresAt)
	if err != nil {
		return nil, err
	}

	return &model.PassRecord{
		ID:        id,
		Owner:     recipient,
		Tier:      tier,
		ExpiresAt: expiresAt,
		IssuedAt:  issuedAt,
	}, nil
}
