package model

// Tier names a membership class. The set is closed; tiers are never
// added or redefined at runtime.
type Tier string

const (
	TierShort      Tier = "SHORT"
	TierMedium     Tier = "MEDIUM"
	TierLong       Tier = "LONG"
	TierPrivileged Tier = "PRIVILEGED"
)

// Tiers lists every defined tier in catalog order.
func Tiers() []Tier {
	return []Tier{TierShort, TierMedium, TierLong, TierPrivileged}
}

// ParseTier maps a wire string onto a defined tier.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierShort, TierMedium, TierLong, TierPrivileged:
		return Tier(s), true
	}
	return "", false
}
