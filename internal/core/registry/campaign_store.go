package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"addy/internal/core/domain"
)

type campaignEntry struct {
	mu  sync.Mutex
	rec domain.Campaign
}

// CampaignStore owns campaign records and their phase transitions. Each
// campaign carries its own lock; every read-modify-write on a campaign,
// including slot allocation, runs under it.
type CampaignStore struct {
	ids         Sequencer
	campaigns   *xsync.Map[uint64, *campaignEntry]
	throttle    *ThrottleRegistry
	audit       *AuditLog
	now         func() time.Time
	activations atomic.Uint64
}

// NewCampaignStore creates an empty store gated by throttle and recording to
// audit.
func NewCampaignStore(throttle *ThrottleRegistry, audit *AuditLog, now func() time.Time) *CampaignStore {
	if now == nil {
		now = time.Now
	}
	return &CampaignStore{
		campaigns: xsync.NewMap[uint64, *campaignEntry](),
		throttle:  throttle,
		audit:     audit,
		now:       now,
	}
}

// Create registers a Draft campaign for owner in zone and returns its id.
// The zone's throttle is checked and consumed together with the insert.
func (s *CampaignStore) Create(owner string, zone domain.Zone) (uint64, error) {
	if strings.TrimSpace(owner) == "" {
		return 0, fmt.Errorf("%w: owner is required", domain.ErrInvalidArgument)
	}
	if !zone.Valid() {
		return 0, fmt.Errorf("%w: unknown zone %d", domain.ErrInvalidArgument, uint8(zone))
	}

	var rec domain.Campaign
	err := s.throttle.Do(zone, func() error {
		rec = domain.Campaign{
			ID:        s.ids.Next(),
			Owner:     owner,
			Phase:     domain.PhaseDraft,
			Zone:      zone,
			CreatedAt: s.now(),
		}
		s.campaigns.Store(rec.ID, &campaignEntry{rec: rec})
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.audit.Append(domain.AuditEntry{
		Timestamp: rec.CreatedAt,
		Action:    domain.ActionCampaignCreate,
		SubjectID: rec.ID,
		Detail:    fmt.Sprintf("owner=%s zone=%s", owner, zone),
	})
	return rec.ID, nil
}

// Transition moves a campaign to phase to. Archived campaigns are frozen;
// every other transition, including a self-transition, is accepted.
func (s *CampaignStore) Transition(id uint64, to domain.Phase) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown phase %d", domain.ErrInvalidArgument, uint8(to))
	}

	var from domain.Phase
	err := s.update(id, func(c *domain.Campaign) error {
		if c.Phase == domain.PhaseArchived {
			return fmt.Errorf("%w: campaign %d is archived", domain.ErrInvalidState, id)
		}
		from = c.Phase
		c.Phase = to
		return nil
	})
	if err != nil {
		return err
	}

	if to == domain.PhaseLive {
		s.activations.Add(1)
	}
	s.audit.Append(domain.AuditEntry{
		Timestamp: s.now(),
		Action:    domain.ActionCampaignPhase,
		SubjectID: id,
		Detail:    fmt.Sprintf("%s->%s", from, to),
	})
	return nil
}

// update runs fn on the campaign under its lock. fn must leave the record
// untouched when it returns an error.
func (s *CampaignStore) update(id uint64, fn func(c *domain.Campaign) error) error {
	e, ok := s.campaigns.Load(id)
	if !ok {
		return fmt.Errorf("%w: campaign %d", domain.ErrNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(&e.rec)
}

// Get returns a snapshot of the campaign.
func (s *CampaignStore) Get(id uint64) (domain.Campaign, error) {
	e, ok := s.campaigns.Load(id)
	if !ok {
		return domain.Campaign{}, fmt.Errorf("%w: campaign %d", domain.ErrNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rec, nil
}

// List returns snapshots of every campaign ordered by id.
func (s *CampaignStore) List() []domain.Campaign {
	out := make([]domain.Campaign, 0, s.campaigns.Size())
	s.campaigns.Range(func(_ uint64, e *campaignEntry) bool {
		e.mu.Lock()
		out = append(out, e.rec)
		e.mu.Unlock()
		return true
	})
	slices.SortFunc(out, func(a, b domain.Campaign) int {
		return cmpUint64(a.ID, b.ID)
	})
	return out
}

// Count returns the number of campaigns created.
func (s *CampaignStore) Count() uint64 { return s.ids.Current() }

// Activations returns how many transitions into Live have been accepted.
func (s *CampaignStore) Activations() uint64 { return s.activations.Load() }

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
