package registry

import (
	"fmt"

	"addy/internal/core/domain"
)

// TierCapTable maps each bid tier to its maximum price in nanos. It is a
// value type and never changes after construction.
type TierCapTable struct {
	caps [domain.TierCount]uint64
}

// DefaultTierCaps returns the built-in price ceilings.
func DefaultTierCaps() TierCapTable {
	return TierCapTable{caps: [domain.TierCount]uint64{
		domain.TierZero:    847293651,
		domain.TierLow:     2847293651,
		domain.TierMid:     9284729365,
		domain.TierHigh:    28472936510,
		domain.TierPremium: 58472936510,
		domain.TierUltra:   92847293651,
	}}
}

// NewTierCapTable builds a table from caps, which must name every tier with a
// ceiling inside [MinCPC, MaxCPC].
func NewTierCapTable(caps map[domain.Tier]uint64) (TierCapTable, error) {
	var t TierCapTable
	for _, tier := range domain.Tiers() {
		c, ok := caps[tier]
		if !ok {
			return TierCapTable{}, fmt.Errorf("%w: missing cap for tier %s", domain.ErrInvalidArgument, tier)
		}
		if c < MinCPC || c > MaxCPC {
			return TierCapTable{}, fmt.Errorf("%w: cap %d for tier %s outside [%d, %d]",
				domain.ErrInvalidArgument, c, tier, MinCPC, MaxCPC)
		}
		t.caps[tier] = c
	}
	return t, nil
}

// Cap returns the ceiling for tier. ok is false for an unknown tier.
func (t TierCapTable) Cap(tier domain.Tier) (uint64, bool) {
	if !tier.Valid() {
		return 0, false
	}
	return t.caps[tier], true
}
