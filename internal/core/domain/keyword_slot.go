package domain

import (
	"fmt"
	"strings"
	"time"
)

// Tier is a bid-price bracket with its own price ceiling.
type Tier uint8

const (
	TierZero Tier = iota
	TierLow
	TierMid
	TierHigh
	TierPremium
	TierUltra
)

// TierCount is the number of bid tiers.
const TierCount = 6

var tierNames = [TierCount]string{"zero", "low", "mid", "high", "premium", "ultra"}

// Tiers lists every tier in ascending order.
func Tiers() []Tier {
	return []Tier{TierZero, TierLow, TierMid, TierHigh, TierPremium, TierUltra}
}

func (t Tier) Valid() bool { return int(t) < TierCount }

func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("tier(%d)", uint8(t))
	}
	return tierNames[t]
}

// ParseTier accepts the lower-case names produced by String.
func ParseTier(s string) (Tier, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range tierNames {
		if name == s {
			return Tier(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown tier %q", ErrInvalidArgument, s)
}

// KeywordSlot is a keyword bid attached to a campaign. Everything except
// Active is fixed at allocation.
type KeywordSlot struct {
	ID          uint64
	KeywordHash string // 64 hex chars
	CampaignID  uint64
	Tier        Tier
	PriceNanos  uint64
	CreatedAt   time.Time
	Active      bool
}
