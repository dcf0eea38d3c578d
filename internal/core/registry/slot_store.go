package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"addy/internal/core/domain"
	"addy/internal/core/keyhash"
)

type slotEntry struct {
	rec    domain.KeywordSlot // Active is tracked by active
	active atomic.Bool
}

func (e *slotEntry) snapshot() domain.KeywordSlot {
	rec := e.rec
	rec.Active = e.active.Load()
	return rec
}

// SlotPolicy holds the limits a KeywordSlotStore enforces.
type SlotPolicy struct {
	MaxKeywordsPerCampaign int
	BidFloorNanos          uint64
	Cooldown               time.Duration
	Caps                   TierCapTable
}

// KeywordSlotStore owns keyword slots and the registry-wide set of keyword
// hashes. Allocation is serialized per campaign through the campaign's lock;
// hash uniqueness is enforced by an atomic load-or-store across all campaigns.
type KeywordSlotStore struct {
	ids       Sequencer
	slots     *xsync.Map[uint64, *slotEntry]
	hashes    *xsync.Map[string, uint64]
	campaigns *CampaignStore
	audit     *AuditLog
	hasher    keyhash.Func
	now       func() time.Time
	policy    SlotPolicy
}

// NewKeywordSlotStore creates an empty store attached to campaigns.
func NewKeywordSlotStore(campaigns *CampaignStore, audit *AuditLog, policy SlotPolicy, hasher keyhash.Func, now func() time.Time) *KeywordSlotStore {
	if hasher == nil {
		hasher = keyhash.SHA256
	}
	if now == nil {
		now = time.Now
	}
	return &KeywordSlotStore{
		slots:     xsync.NewMap[uint64, *slotEntry](),
		hashes:    xsync.NewMap[string, uint64](),
		campaigns: campaigns,
		audit:     audit,
		hasher:    hasher,
		now:       now,
		policy:    policy,
	}
}

// Allocate attaches keyword to a campaign at the given tier and price and
// returns the new slot id. Checks run in a fixed order: keyword, campaign,
// capacity, price, cooldown, uniqueness.
func (s *KeywordSlotStore) Allocate(keyword string, campaignID uint64, tier domain.Tier, priceNanos uint64) (uint64, error) {
	if strings.TrimSpace(keyword) == "" {
		return 0, fmt.Errorf("%w: keyword is required", domain.ErrInvalidArgument)
	}

	var slot domain.KeywordSlot
	err := s.campaigns.update(campaignID, func(c *domain.Campaign) error {
		if c.Phase == domain.PhaseArchived {
			return fmt.Errorf("%w: campaign %d is archived", domain.ErrInvalidState, c.ID)
		}
		if c.KeywordCount >= s.policy.MaxKeywordsPerCampaign {
			return fmt.Errorf("%w: campaign %d holds %d keywords",
				domain.ErrCapacityExceeded, c.ID, c.KeywordCount)
		}
		if err := s.checkPrice(tier, priceNanos); err != nil {
			return err
		}
		now := s.now()
		if !c.LastAllocationAt.IsZero() {
			if since := now.Sub(c.LastAllocationAt); since < s.policy.Cooldown {
				return fmt.Errorf("%w: campaign %d allocated %s ago, wait %s",
					domain.ErrCooldown, c.ID, since, s.policy.Cooldown-since)
			}
		}

		hash := s.hasher(keyhash.Domain, keyword)
		id, loaded := s.hashes.LoadOrCompute(hash, func() (uint64, bool) {
			return s.ids.Next(), false
		})
		if loaded {
			return fmt.Errorf("%w: keyword already held by slot %d", domain.ErrDuplicate, id)
		}

		slot = domain.KeywordSlot{
			ID:          id,
			KeywordHash: hash,
			CampaignID:  c.ID,
			Tier:        tier,
			PriceNanos:  priceNanos,
			CreatedAt:   now,
			Active:      true,
		}
		e := &slotEntry{rec: slot}
		e.active.Store(true)
		s.slots.Store(id, e)

		c.KeywordCount++
		c.TotalSpend += priceNanos
		c.LastAllocationAt = now
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.audit.Append(domain.AuditEntry{
		Timestamp: slot.CreatedAt,
		Action:    domain.ActionSlotAllocate,
		SubjectID: slot.ID,
		Detail:    fmt.Sprintf("campaign=%d tier=%s price=%d", slot.CampaignID, slot.Tier, slot.PriceNanos),
	})
	return slot.ID, nil
}

func (s *KeywordSlotStore) checkPrice(tier domain.Tier, price uint64) error {
	limit, ok := s.policy.Caps.Cap(tier)
	if !ok {
		return fmt.Errorf("%w: unknown tier %d", domain.ErrInvalidArgument, uint8(tier))
	}
	if price < s.policy.BidFloorNanos || price > MaxCPC {
		return fmt.Errorf("%w: price %d outside [%d, %d]",
			domain.ErrInvalidArgument, price, s.policy.BidFloorNanos, MaxCPC)
	}
	if price > limit {
		return fmt.Errorf("%w: price %d exceeds %s tier cap %d",
			domain.ErrInvalidArgument, price, tier, limit)
	}
	return nil
}

// Deactivate clears a slot's active flag. The keyword stays registered and
// the campaign's keyword count is unchanged.
func (s *KeywordSlotStore) Deactivate(slotID uint64) error {
	e, ok := s.slots.Load(slotID)
	if !ok {
		return fmt.Errorf("%w: slot %d", domain.ErrNotFound, slotID)
	}
	if !e.active.CompareAndSwap(true, false) {
		return fmt.Errorf("%w: slot %d already inactive", domain.ErrInvalidState, slotID)
	}
	s.audit.Append(domain.AuditEntry{
		Timestamp: s.now(),
		Action:    domain.ActionSlotDeactivate,
		SubjectID: slotID,
		Detail:    fmt.Sprintf("campaign=%d", e.rec.CampaignID),
	})
	return nil
}

// Get returns a snapshot of the slot.
func (s *KeywordSlotStore) Get(slotID uint64) (domain.KeywordSlot, error) {
	e, ok := s.slots.Load(slotID)
	if !ok {
		return domain.KeywordSlot{}, fmt.Errorf("%w: slot %d", domain.ErrNotFound, slotID)
	}
	return e.snapshot(), nil
}

// ListByCampaign returns the campaign's slots ordered by id.
func (s *KeywordSlotStore) ListByCampaign(campaignID uint64) ([]domain.KeywordSlot, error) {
	if _, err := s.campaigns.Get(campaignID); err != nil {
		return nil, err
	}
	var out []domain.KeywordSlot
	s.slots.Range(func(_ uint64, e *slotEntry) bool {
		if e.rec.CampaignID == campaignID {
			out = append(out, e.snapshot())
		}
		return true
	})
	slices.SortFunc(out, func(a, b domain.KeywordSlot) int {
		return cmpUint64(a.ID, b.ID)
	})
	return out, nil
}

// Registered reports whether keyword's hash is already held by some slot.
func (s *KeywordSlotStore) Registered(keyword string) bool {
	_, ok := s.hashes.Load(s.hasher(keyhash.Domain, keyword))
	return ok
}

// Count returns the number of slots allocated.
func (s *KeywordSlotStore) Count() uint64 { return s.ids.Current() }
