package registry

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// steppingClock moves forward by step on every read.
func steppingClock(step time.Duration) func() time.Time {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var n atomic.Int64
	return func() time.Time {
		return base.Add(time.Duration(n.Add(1)) * step)
	}
}

func newTestRegistry(t *testing.T, clock func() time.Time, opts ...Option) *Registry {
	t.Helper()
	opts = append([]Option{WithClock(clock)}, opts...)
	r, err := New(DefaultOracleAddress, DefaultControllerAddress, DefaultTreasuryAddress, 4, MinCPC, opts...)
	require.NoError(t, err)
	return r
}

func mustCampaign(t *testing.T, r *Registry) uint64 {
	t.Helper()
	id, err := r.CreateCampaign("owner-1", 0)
	require.NoError(t, err)
	return id
}
