package port

import (
	"context"
	"time"

	"addy/internal/core/domain"
)

// RegistryUseCase defines the operations exposed by the keyword registry. It
// is the primary port into the application domain; the HTTP adapter depends
// on it rather than on the registry directly.
type RegistryUseCase interface {
	// CreateCampaign registers a Draft campaign for owner in zone and returns
	// its id. It fails with domain.ErrThrottleExceeded when the zone's
	// window is full.
	CreateCampaign(ctx context.Context, owner string, zone domain.Zone) (uint64, error)

	// TransitionCampaignPhase moves a campaign to a new phase. Archived
	// campaigns reject every transition with domain.ErrInvalidState.
	TransitionCampaignPhase(ctx context.Context, campaignID uint64, to domain.Phase) error

	// AllocateKeywordSlot attaches a keyword to a campaign and returns the
	// slot id.
	AllocateKeywordSlot(ctx context.Context, req SlotRequest) (uint64, error)

	// DeactivateKeywordSlot clears a slot's active flag.
	DeactivateKeywordSlot(ctx context.Context, slotID uint64) error

	// ZoneStatus reports whether zone currently admits campaign creation
	// together with its window counters.
	ZoneStatus(ctx context.Context, zone domain.Zone) (*ZoneStatus, error)

	GetCampaign(ctx context.Context, campaignID uint64) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	GetSlot(ctx context.Context, slotID uint64) (*domain.KeywordSlot, error)
	ListCampaignSlots(ctx context.Context, campaignID uint64) ([]domain.KeywordSlot, error)

	// RecentAudit returns up to limit of the newest audit entries, oldest
	// first. A non-positive limit returns every retained entry.
	RecentAudit(ctx context.Context, limit int) ([]domain.AuditEntry, error)

	// Stats returns registry counters and configured limits.
	Stats(ctx context.Context) (*StatsResp, error)
}

// SlotRequest carries the inputs of a keyword slot allocation.
type SlotRequest struct {
	Keyword    string
	CampaignID uint64
	Tier       domain.Tier
	PriceNanos uint64
}

// ZoneStatus is a snapshot of a zone's throttle.
type ZoneStatus struct {
	Zone            domain.Zone
	CanPerform      bool
	ActionsInWindow int
	LastReset       time.Time
}

// StatsResp summarises registry counters. It is a DTO used by the HTTP layer.
type StatsResp struct {
	InstanceID        string
	Campaigns         uint64
	Slots             uint64
	Activations       uint64
	AuditRetained     int
	AuditTotal        uint64
	AuditDropped      uint64
	MaxKeywords       int
	BidFloorNanos     uint64
	TierCaps          map[domain.Tier]uint64
	ThrottleCapacity  int
	ThrottleWindow    time.Duration
	BidCooldown       time.Duration
	OracleAddress     string
	ControllerAddress string
	TreasuryAddress   string
}
