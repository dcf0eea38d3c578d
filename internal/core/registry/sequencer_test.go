package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequencerStartsAtOne(t *testing.T) {
	var s Sequencer
	require.Equal(t, uint64(0), s.Current())
	require.Equal(t, uint64(1), s.Next())
	require.Equal(t, uint64(2), s.Next())
	require.Equal(t, uint64(2), s.Current())
}

func TestSequencerConcurrentUnique(t *testing.T) {
	var s Sequencer
	const workers, perWorker = 16, 500

	results := make(chan uint64, workers*perWorker)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				results <- s.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[uint64]struct{}, workers*perWorker)
	for id := range results {
		_, dup := seen[id]
		require.False(t, dup, "id %d issued twice", id)
		seen[id] = struct{}{}
	}
	for id := uint64(1); id <= workers*perWorker; id++ {
		require.Contains(t, seen, id)
	}
}
