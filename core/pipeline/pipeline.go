package pipeline

import (
	"context"
	"errors"

	"record-sync/core/record"
)

// Done is returned by Source.Next when the pipeline is exhausted.
var Done = errors.New("pipeline: no more batches")

// Settings carries per-batch extraction settings. The engine treats it as
// opaque: it is forwarded to the error hook and the completion event.
type Settings struct {
	// Origin names where the batch came from (table name, object key).
	Origin string
	// Index is the batch ordinal within the run, starting at zero.
	Index int
}

// Batch is one bounded group of source records extracted together.
type Batch struct {
	Records  []record.Map
	Settings Settings
}

// Source produces ordered batches of source records.
type Source interface {
	// Next returns the next batch, or Done when no batches remain.
	Next(ctx context.Context) (Batch, error)
}

// SliceSource serves pre-built batches from memory. It backs tests and
// embedding callers that already hold their rows.
type SliceSource struct {
	origin  string
	batches [][]record.Map
	pos     int
}

// NewSliceSource builds a source that yields the given batches in order.
func NewSliceSource(origin string, batches ...[]record.Map) *SliceSource {
	return &SliceSource{origin: origin, batches: batches}
}

func (s *SliceSource) Next(ctx context.Context) (Batch, error) {
	if err := ctx.Err(); err != nil {
		return Batch{}, err
	}
	if s.pos >= len(s.batches) {
		return Batch{}, Done
	}
	b := Batch{
		Records:  s.batches[s.pos],
		Settings: Settings{Origin: s.origin, Index: s.pos},
	}
	s.pos++
	return b, nil
}
