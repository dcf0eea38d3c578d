package registry

import (
	"fmt"
	"sync"
	"time"

	"addy/internal/core/domain"
)

// ThrottleState is a snapshot of one zone's window.
type ThrottleState struct {
	LastReset       time.Time
	ActionsInWindow int
}

type zoneThrottle struct {
	mu    sync.Mutex
	state ThrottleState
}

// ThrottleRegistry keeps one window limiter per zone. Writers go through
// TryConsume or Do, which check and consume under the zone's lock so two
// callers can never both take the last slot of a window.
type ThrottleRegistry struct {
	window   time.Duration
	capacity int
	now      func() time.Time
	zones    [domain.ZoneCount]zoneThrottle
}

// NewThrottleRegistry creates a registry allowing capacity actions per window
// in every zone.
func NewThrottleRegistry(window time.Duration, capacity int, now func() time.Time) *ThrottleRegistry {
	if now == nil {
		now = time.Now
	}
	return &ThrottleRegistry{window: window, capacity: capacity, now: now}
}

func (t *ThrottleRegistry) zone(z domain.Zone) (*zoneThrottle, error) {
	if !z.Valid() {
		return nil, fmt.Errorf("%w: unknown zone %d", domain.ErrInvalidArgument, uint8(z))
	}
	return &t.zones[z], nil
}

func (t *ThrottleRegistry) stale(s ThrottleState, now time.Time) bool {
	return now.Sub(s.LastReset) >= t.window
}

// CanPerform reports whether an action in zone would currently be admitted.
// It does not consume; use it for inspection only. Unknown zones report false.
func (t *ThrottleRegistry) CanPerform(z domain.Zone) bool {
	zt, err := t.zone(z)
	if err != nil {
		return false
	}
	zt.mu.Lock()
	defer zt.mu.Unlock()
	if t.stale(zt.state, t.now()) {
		return true
	}
	return zt.state.ActionsInWindow < t.capacity
}

// TryConsume admits and records one action in zone, or reports false when the
// window is full.
func (t *ThrottleRegistry) TryConsume(z domain.Zone) bool {
	return t.Do(z, func() error { return nil }) == nil
}

// Do runs fn while holding the zone's lock, after checking that the window has
// room. The action is recorded only when fn succeeds, so a failed fn leaves
// the window untouched. It returns ErrThrottleExceeded when the window is full.
func (t *ThrottleRegistry) Do(z domain.Zone, fn func() error) error {
	zt, err := t.zone(z)
	if err != nil {
		return err
	}
	zt.mu.Lock()
	defer zt.mu.Unlock()

	now := t.now()
	stale := t.stale(zt.state, now)
	if !stale && zt.state.ActionsInWindow >= t.capacity {
		return fmt.Errorf("%w: zone %s allows %d actions per %s",
			domain.ErrThrottleExceeded, z, t.capacity, t.window)
	}
	if err = fn(); err != nil {
		return err
	}
	if stale {
		zt.state = ThrottleState{LastReset: now}
	}
	zt.state.ActionsInWindow++
	return nil
}

// State returns a snapshot of zone's window.
func (t *ThrottleRegistry) State(z domain.Zone) (ThrottleState, error) {
	zt, err := t.zone(z)
	if err != nil {
		return ThrottleState{}, err
	}
	zt.mu.Lock()
	defer zt.mu.Unlock()
	return zt.state, nil
}

// Window returns the configured window length.
func (t *ThrottleRegistry) Window() time.Duration { return t.window }

// Capacity returns the number of actions admitted per window.
func (t *ThrottleRegistry) Capacity() int { return t.capacity }
