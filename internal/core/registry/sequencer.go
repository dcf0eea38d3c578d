package registry

import "sync/atomic"

// Sequencer issues strictly increasing identifiers starting at 1. It is safe
// for concurrent use; no two callers ever receive the same value.
type Sequencer struct {
	last atomic.Uint64
}

// Next returns a fresh identifier.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Current returns the last identifier issued, or 0 if none.
func (s *Sequencer) Current() uint64 {
	return s.last.Load()
}
