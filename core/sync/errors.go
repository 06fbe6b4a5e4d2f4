package sync

import "errors"

// Configuration errors. All of them are fatal at Start: a run never begins
// with an incomplete target description.
var (
	// ErrNoStore means no target store was supplied.
	ErrNoStore = errors.New("sync: no target store configured")
	// ErrNoTargetConnection means a cross-connection sync was configured
	// without naming the target connection.
	ErrNoTargetConnection = errors.New("sync: target connection is required")
	// ErrNoTargetTable means a cross-connection sync was configured without
	// naming the target table.
	ErrNoTargetTable = errors.New("sync: target table is required")
	// ErrNotStarted means ProcessBatch was called before Start.
	ErrNotStarted = errors.New("sync: engine not started")
	// ErrAlreadyStarted means Start was called twice for one run.
	ErrAlreadyStarted = errors.New("sync: engine already started")
)
