package sync

import (
	gosync "sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatNilSafety(t *testing.T) {
	var s *Stat
	s.MarkChanged()
	s.MarkInserted()
	s.MarkSkipped()
	assert.Zero(t, s.Changes())
	assert.Zero(t, s.Inserts())
	assert.Zero(t, s.Skipped())
}

// Concurrent batches share one Stat; increments must not under-count.
func TestStatConcurrentIncrements(t *testing.T) {
	const workers = 16
	const perWorker = 1000

	s := NewStat()
	var wg gosync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				s.MarkChanged()
				s.MarkInserted()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers*perWorker), s.Changes())
	assert.Equal(t, int64(workers*perWorker), s.Inserts())
}
