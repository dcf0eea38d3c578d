package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"addy/internal/core/domain"
	"addy/internal/core/port"
	"addy/internal/core/registry"
	"addy/internal/metrics"
)

var errMissingRegistry = errors.New("registry is required")

// Operation names used in logs and metrics.
const (
	opCreateCampaign  = "create_campaign"
	opTransitionPhase = "transition_phase"
	opAllocateSlot    = "allocate_slot"
	opDeactivateSlot  = "deactivate_slot"
)

// Config wires a RegistryUseCase. Only Registry is required.
type Config struct {
	Registry   *registry.Registry
	Logger     *slog.Logger
	Metrics    *metrics.Collector
	Exporter   *AuditExporter
	InstanceID uuid.UUID
}

// RegistryUseCase implements port.RegistryUseCase on top of an in-process
// registry. It adds logging and metrics around every mutating call; the
// registry itself enforces all invariants.
type RegistryUseCase struct {
	reg        *registry.Registry
	logger     *slog.Logger
	metrics    *metrics.Collector
	exporter   *AuditExporter
	instanceID uuid.UUID
}

var _ port.RegistryUseCase = (*RegistryUseCase)(nil)

// NewRegistryUseCase creates a use case from cfg. A missing logger discards
// output and a nil instance id is replaced by a random one.
func NewRegistryUseCase(cfg Config) (*RegistryUseCase, error) {
	if cfg.Registry == nil {
		return nil, errMissingRegistry
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	id := cfg.InstanceID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &RegistryUseCase{
		reg:        cfg.Registry,
		logger:     logger,
		metrics:    cfg.Metrics,
		exporter:   cfg.Exporter,
		instanceID: id,
	}, nil
}

// CreateCampaign registers a Draft campaign for owner in zone.
func (u *RegistryUseCase) CreateCampaign(ctx context.Context, owner string, zone domain.Zone) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	id, err := u.reg.CreateCampaign(owner, zone)
	u.observe(ctx, opCreateCampaign, err,
		slog.Uint64("campaign_id", id),
		slog.String("zone", zone.String()))
	return id, err
}

// TransitionCampaignPhase moves a campaign to phase to.
func (u *RegistryUseCase) TransitionCampaignPhase(ctx context.Context, campaignID uint64, to domain.Phase) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := u.reg.TransitionCampaignPhase(campaignID, to)
	u.observe(ctx, opTransitionPhase, err,
		slog.Uint64("campaign_id", campaignID),
		slog.String("phase", to.String()))
	return err
}

// AllocateKeywordSlot attaches a keyword to a campaign. The keyword text is
// never logged.
func (u *RegistryUseCase) AllocateKeywordSlot(ctx context.Context, req port.SlotRequest) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	id, err := u.reg.AllocateKeywordSlot(req.Keyword, req.CampaignID, req.Tier, req.PriceNanos)
	u.observe(ctx, opAllocateSlot, err,
		slog.Uint64("slot_id", id),
		slog.Uint64("campaign_id", req.CampaignID),
		slog.String("tier", req.Tier.String()),
		slog.Uint64("price_nanos", req.PriceNanos))
	return id, err
}

// DeactivateKeywordSlot clears a slot's active flag.
func (u *RegistryUseCase) DeactivateKeywordSlot(ctx context.Context, slotID uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := u.reg.DeactivateKeywordSlot(slotID)
	u.observe(ctx, opDeactivateSlot, err, slog.Uint64("slot_id", slotID))
	return err
}

// ZoneStatus returns zone's throttle snapshot.
func (u *RegistryUseCase) ZoneStatus(_ context.Context, zone domain.Zone) (*port.ZoneStatus, error) {
	st, err := u.reg.ThrottleState(zone)
	if err != nil {
		return nil, err
	}
	return &port.ZoneStatus{
		Zone:            zone,
		CanPerform:      u.reg.CanPerformInZone(zone),
		ActionsInWindow: st.ActionsInWindow,
		LastReset:       st.LastReset,
	}, nil
}

func (u *RegistryUseCase) GetCampaign(_ context.Context, campaignID uint64) (*domain.Campaign, error) {
	c, err := u.reg.Campaign(campaignID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (u *RegistryUseCase) ListCampaigns(context.Context) ([]domain.Campaign, error) {
	return u.reg.Campaigns(), nil
}

func (u *RegistryUseCase) GetSlot(_ context.Context, slotID uint64) (*domain.KeywordSlot, error) {
	s, err := u.reg.Slot(slotID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (u *RegistryUseCase) ListCampaignSlots(_ context.Context, campaignID uint64) ([]domain.KeywordSlot, error) {
	return u.reg.CampaignSlots(campaignID)
}

// RecentAudit returns up to limit of the newest audit entries.
func (u *RegistryUseCase) RecentAudit(_ context.Context, limit int) ([]domain.AuditEntry, error) {
	return u.reg.AuditEntries(limit), nil
}

// Stats returns registry counters and limits.
func (u *RegistryUseCase) Stats(context.Context) (*port.StatsResp, error) {
	st := u.reg.Stats()
	caps := make(map[domain.Tier]uint64, domain.TierCount)
	for _, tier := range domain.Tiers() {
		caps[tier], _ = u.reg.TierCap(tier)
	}
	resp := &port.StatsResp{
		InstanceID:        u.instanceID.String(),
		Campaigns:         st.Campaigns,
		Slots:             st.Slots,
		Activations:       st.Activations,
		AuditRetained:     st.AuditRetained,
		AuditTotal:        st.AuditTotal,
		MaxKeywords:       st.MaxKeywords,
		BidFloorNanos:     st.BidFloorNanos,
		TierCaps:          caps,
		ThrottleCapacity:  st.ThrottleCapacity,
		ThrottleWindow:    st.ThrottleWindow,
		BidCooldown:       st.BidCooldown,
		OracleAddress:     u.reg.OracleAddress(),
		ControllerAddress: u.reg.ControllerAddress(),
		TreasuryAddress:   u.reg.TreasuryAddress(),
	}
	if u.exporter != nil {
		resp.AuditDropped = u.exporter.Dropped()
	}
	return resp, nil
}

// InstanceID identifies this registry process in exported audit rows.
func (u *RegistryUseCase) InstanceID() uuid.UUID { return u.instanceID }

func (u *RegistryUseCase) observe(ctx context.Context, op string, err error, attrs ...slog.Attr) {
	u.metrics.ObserveOperation(op, err)
	attrs = append(attrs, slog.String("op", op))
	if err != nil {
		attrs = append(attrs,
			slog.String("kind", string(domain.KindOf(err))),
			slog.Any("error", err))
		u.logger.LogAttrs(ctx, slog.LevelWarn, "registry operation rejected", attrs...)
		return
	}
	u.logger.LogAttrs(ctx, slog.LevelDebug, "registry operation applied", attrs...)
}
