package domain

import (
	"fmt"
	"strings"
	"time"
)

// Phase is a campaign lifecycle state. Archived is terminal.
type Phase uint8

const (
	PhaseDraft Phase = iota
	PhasePendingReview
	PhaseLive
	PhasePaused
	PhaseArchived
)

var phaseNames = [...]string{"draft", "pending_review", "live", "paused", "archived"}

// Phases lists every phase in declaration order.
func Phases() []Phase {
	return []Phase{PhaseDraft, PhasePendingReview, PhaseLive, PhasePaused, PhaseArchived}
}

func (p Phase) Valid() bool { return int(p) < len(phaseNames) }

func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
	return phaseNames[p]
}

// ParsePhase accepts the lower-case names produced by String.
func ParsePhase(s string) (Phase, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown phase %q", ErrInvalidArgument, s)
}

// Zone is a rate-limiting partition a campaign is assigned to at creation.
type Zone uint8

const (
	ZoneAlpha Zone = iota
	ZoneBeta
	ZoneGamma
	ZoneDelta
)

// ZoneCount is the number of throttle zones.
const ZoneCount = 4

var zoneNames = [ZoneCount]string{"alpha", "beta", "gamma", "delta"}

// Zones lists every zone in declaration order.
func Zones() []Zone {
	return []Zone{ZoneAlpha, ZoneBeta, ZoneGamma, ZoneDelta}
}

func (z Zone) Valid() bool { return int(z) < ZoneCount }

func (z Zone) String() string {
	if !z.Valid() {
		return fmt.Sprintf("zone(%d)", uint8(z))
	}
	return zoneNames[z]
}

// ParseZone accepts the lower-case names produced by String.
func ParseZone(s string) (Zone, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range zoneNames {
		if name == s {
			return Zone(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown zone %q", ErrInvalidArgument, s)
}

// Campaign represents an advertising campaign owning keyword slots.
// Spend is stored in nanocurrency units.
type Campaign struct {
	ID           uint64
	Owner        string
	Phase        Phase
	Zone         Zone
	CreatedAt    time.Time
	KeywordCount int
	TotalSpend   uint64
	// LastAllocationAt is zero until the first slot is allocated.
	LastAllocationAt time.Time
}
