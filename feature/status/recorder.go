package status

import (
	gosync "sync"

	"record-sync/core/sync"
)

// Recorder keeps the most recent run reports in memory, newest first.
type Recorder struct {
	mu      gosync.Mutex
	max     int
	reports []sync.Report
}

// NewRecorder creates a recorder holding at most max reports.
func NewRecorder(max int) *Recorder {
	if max <= 0 {
		max = 20
	}
	return &Recorder{max: max}
}

// Record stores a finished run report.
func (r *Recorder) Record(rep sync.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports = append([]sync.Report{rep}, r.reports...)
	if len(r.reports) > r.max {
		r.reports = r.reports[:r.max]
	}
}

// Reports returns a copy of the recorded reports, newest first.
func (r *Recorder) Reports() []sync.Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]sync.Report, len(r.reports))
	copy(out, r.reports)
	return out
}
