package sync

import "sync/atomic"

// Stat accumulates counters for one engine run.
//
// Batches may be processed concurrently against the same Stat, so every
// counter uses atomic increments. All methods are safe on a nil receiver so
// the reconciliation path never has to branch on whether statistics were
// requested.
type Stat struct {
	changes atomic.Int64
	inserts atomic.Int64
	skipped atomic.Int64
}

// NewStat creates a zeroed run accumulator.
func NewStat() *Stat {
	return &Stat{}
}

// MarkChanged records one successful update of an existing record.
func (s *Stat) MarkChanged() {
	if s == nil {
		return
	}
	s.changes.Add(1)
}

// MarkInserted records one successful insert of a new record.
func (s *Stat) MarkInserted() {
	if s == nil {
		return
	}
	s.inserts.Add(1)
}

// MarkSkipped records one row dropped by the error policy.
func (s *Stat) MarkSkipped() {
	if s == nil {
		return
	}
	s.skipped.Add(1)
}

// Changes returns the number of updates performed so far.
func (s *Stat) Changes() int64 {
	if s == nil {
		return 0
	}
	return s.changes.Load()
}

// Inserts returns the number of inserts performed so far.
func (s *Stat) Inserts() int64 {
	if s == nil {
		return 0
	}
	return s.inserts.Load()
}

// Skipped returns the number of rows dropped by the error policy so far.
func (s *Stat) Skipped() int64 {
	if s == nil {
		return 0
	}
	return s.skipped.Load()
}
