package sync

import "time"

// Report aggregates one engine run.
type Report struct {
	// RunID uniquely identifies the run in logs and the status API.
	RunID string `json:"run_id"`

	// Batches is the number of batches processed to completion.
	Batches int `json:"batches"`

	// Rows is the total number of rows successfully persisted.
	Rows int `json:"rows"`

	// Inserts counts rows written as new records.
	Inserts int64 `json:"inserts"`

	// Changes counts rows written as updates to existing records.
	Changes int64 `json:"changes"`

	// Skipped counts rows dropped by the error policy.
	Skipped int64 `json:"skipped"`

	// FetchTime is the total time spent waiting on the extraction pipeline.
	FetchTime time.Duration `json:"fetch_time"`

	// SyncTime is the total time spent reconciling and persisting.
	SyncTime time.Duration `json:"sync_time"`

	// InsertOnly reports whether the run took the insert-only fast path.
	InsertOnly bool `json:"insert_only"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
