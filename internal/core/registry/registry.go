// Package registry is the in-process campaign and keyword-slot registry. A
// Registry owns all of its state; separate instances never share anything.
package registry

import (
	"fmt"
	"strings"
	"time"

	"addy/internal/core/domain"
	"addy/internal/core/keyhash"
)

// Registry is the entry point for campaign and keyword-slot operations. It is
// safe for concurrent use.
type Registry struct {
	oracle     string
	controller string
	treasury   string

	policy    SlotPolicy
	throttle  *ThrottleRegistry
	audit     *AuditLog
	campaigns *CampaignStore
	slots     *KeywordSlotStore
}

type options struct {
	clock         func() time.Time
	hasher        keyhash.Func
	auditCapacity int
	auditHook     func(domain.AuditEntry)
	caps          *TierCapTable
}

// Option customises a Registry.
type Option func(*options)

// WithClock replaces time.Now as the registry's time source.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// WithKeywordHasher replaces the keyword hashing function.
func WithKeywordHasher(fn keyhash.Func) Option {
	return func(o *options) { o.hasher = fn }
}

// WithAuditCapacity sets the audit ring size. Non-positive values keep
// AuditLogEntries.
func WithAuditCapacity(n int) Option {
	return func(o *options) { o.auditCapacity = n }
}

// WithAuditHook registers fn to observe every audit entry as it is appended.
// fn runs under the audit log's lock and must not block.
func WithAuditHook(fn func(domain.AuditEntry)) Option {
	return func(o *options) { o.auditHook = fn }
}

// WithTierCaps replaces the default tier ceilings.
func WithTierCaps(caps TierCapTable) Option {
	return func(o *options) { o.caps = &caps }
}

// New validates the construction parameters and returns an empty registry.
// Each address must be at least MinAddressLength characters once trimmed,
// maxKeywords must lie in (0, MaxKeywordsLimit] and bidFloorNanos in
// [MinCPC, MaxCPC].
func New(oracle, controller, treasury string, maxKeywords int, bidFloorNanos uint64, opts ...Option) (*Registry, error) {
	for _, a := range []struct{ name, value string }{
		{"oracle", oracle},
		{"controller", controller},
		{"treasury", treasury},
	} {
		if len(strings.TrimSpace(a.value)) < MinAddressLength {
			return nil, fmt.Errorf("%w: %s address must be at least %d characters",
				domain.ErrInvalidArgument, a.name, MinAddressLength)
		}
	}
	if maxKeywords <= 0 || maxKeywords > MaxKeywordsLimit {
		return nil, fmt.Errorf("%w: max keywords per campaign %d outside (0, %d]",
			domain.ErrInvalidArgument, maxKeywords, MaxKeywordsLimit)
	}
	if bidFloorNanos < MinCPC || bidFloorNanos > MaxCPC {
		return nil, fmt.Errorf("%w: bid floor %d outside [%d, %d]",
			domain.ErrInvalidArgument, bidFloorNanos, MinCPC, MaxCPC)
	}

	o := options{clock: time.Now, hasher: keyhash.SHA256, auditCapacity: AuditLogEntries}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	caps := DefaultTierCaps()
	if o.caps != nil {
		caps = *o.caps
	}

	r := &Registry{
		oracle:     strings.TrimSpace(oracle),
		controller: strings.TrimSpace(controller),
		treasury:   strings.TrimSpace(treasury),
		policy: SlotPolicy{
			MaxKeywordsPerCampaign: maxKeywords,
			BidFloorNanos:          bidFloorNanos,
			Cooldown:               BidCooldown,
			Caps:                   caps,
		},
		throttle: NewThrottleRegistry(ThrottleWindow, CohortBatchSize, o.clock),
		audit:    NewAuditLog(o.auditCapacity, o.auditHook),
	}
	r.campaigns = NewCampaignStore(r.throttle, r.audit, o.clock)
	r.slots = NewKeywordSlotStore(r.campaigns, r.audit, r.policy, o.hasher, o.clock)
	return r, nil
}

// NewDefault returns a registry built from the Default* constants.
func NewDefault(opts ...Option) *Registry {
	r, err := New(DefaultOracleAddress, DefaultControllerAddress, DefaultTreasuryAddress,
		DefaultMaxKeywords, DefaultBidFloor, opts...)
	if err != nil {
		panic(fmt.Sprintf("registry: invalid defaults: %v", err))
	}
	return r
}

// CreateCampaign registers a Draft campaign owned by owner in zone.
func (r *Registry) CreateCampaign(owner string, zone domain.Zone) (uint64, error) {
	return r.campaigns.Create(owner, zone)
}

// TransitionCampaignPhase moves a campaign to phase to.
func (r *Registry) TransitionCampaignPhase(campaignID uint64, to domain.Phase) error {
	return r.campaigns.Transition(campaignID, to)
}

// AllocateKeywordSlot attaches keyword to a campaign and returns the slot id.
func (r *Registry) AllocateKeywordSlot(keyword string, campaignID uint64, tier domain.Tier, priceNanos uint64) (uint64, error) {
	return r.slots.Allocate(keyword, campaignID, tier, priceNanos)
}

// DeactivateKeywordSlot clears a slot's active flag.
func (r *Registry) DeactivateKeywordSlot(slotID uint64) error {
	return r.slots.Deactivate(slotID)
}

// CanPerformInZone reports whether zone's throttle currently has room.
func (r *Registry) CanPerformInZone(zone domain.Zone) bool {
	return r.throttle.CanPerform(zone)
}

// ThrottleState returns a snapshot of zone's throttle window.
func (r *Registry) ThrottleState(zone domain.Zone) (ThrottleState, error) {
	return r.throttle.State(zone)
}

// Campaign returns a snapshot of one campaign.
func (r *Registry) Campaign(id uint64) (domain.Campaign, error) {
	return r.campaigns.Get(id)
}

// Campaigns returns snapshots of every campaign ordered by id.
func (r *Registry) Campaigns() []domain.Campaign {
	return r.campaigns.List()
}

// Slot returns a snapshot of one keyword slot.
func (r *Registry) Slot(id uint64) (domain.KeywordSlot, error) {
	return r.slots.Get(id)
}

// CampaignSlots returns a campaign's slots ordered by id.
func (r *Registry) CampaignSlots(campaignID uint64) ([]domain.KeywordSlot, error) {
	return r.slots.ListByCampaign(campaignID)
}

// KeywordRegistered reports whether keyword is held by any slot.
func (r *Registry) KeywordRegistered(keyword string) bool {
	return r.slots.Registered(keyword)
}

// AuditEntries returns up to n of the newest audit entries, oldest first.
// n <= 0 returns everything retained.
func (r *Registry) AuditEntries(n int) []domain.AuditEntry {
	return r.audit.Recent(n)
}

func (r *Registry) OracleAddress() string       { return r.oracle }
func (r *Registry) ControllerAddress() string   { return r.controller }
func (r *Registry) TreasuryAddress() string     { return r.treasury }
func (r *Registry) MaxKeywordsPerCampaign() int { return r.policy.MaxKeywordsPerCampaign }
func (r *Registry) BidFloorNanos() uint64       { return r.policy.BidFloorNanos }

// TierCap returns the price ceiling for tier.
func (r *Registry) TierCap(tier domain.Tier) (uint64, bool) {
	return r.policy.Caps.Cap(tier)
}

// ActivationCount returns how many transitions into Live were accepted.
func (r *Registry) ActivationCount() uint64 { return r.campaigns.Activations() }

// Stats is a point-in-time summary of registry counters.
type Stats struct {
	Campaigns        uint64
	Slots            uint64
	Activations      uint64
	AuditRetained    int
	AuditTotal       uint64
	AuditCapacity    int
	MaxKeywords      int
	BidFloorNanos    uint64
	ThrottleCapacity int
	ThrottleWindow   time.Duration
	BidCooldown      time.Duration
}

// Stats returns the current counters and limits.
func (r *Registry) Stats() Stats {
	return Stats{
		Campaigns:        r.campaigns.Count(),
		Slots:            r.slots.Count(),
		Activations:      r.campaigns.Activations(),
		AuditRetained:    r.audit.Len(),
		AuditTotal:       r.audit.Total(),
		AuditCapacity:    r.audit.Capacity(),
		MaxKeywords:      r.policy.MaxKeywordsPerCampaign,
		BidFloorNanos:    r.policy.BidFloorNanos,
		ThrottleCapacity: r.throttle.Capacity(),
		ThrottleWindow:   r.throttle.Window(),
		BidCooldown:      r.policy.Cooldown,
	}
}
