package store

import (
	"context"

	"record-sync/core/record"
)

// Store is a handle to one target collection of records.
//
// Implementations must hand out independent transactions per Begin call so
// that concurrently processed batches never share transaction state.
type Store interface {
	// Count returns the number of records in the collection.
	Count(ctx context.Context) (int64, error)
	// FindByKey returns the record carrying the given unique-key value, or
	// (nil, nil) when no such record exists.
	FindByKey(ctx context.Context, key any) (record.MutableRecord, error)
	// NewRecord returns a fresh, unpersisted record shaped for this
	// collection (all known fields present, values unset).
	NewRecord() record.MutableRecord
	// Insert persists a new record.
	Insert(ctx context.Context, rec record.Record) error
	// Update persists changed fields of the record identified by key.
	Update(ctx context.Context, key any, rec record.Record) error
	// KeyColumn returns the name of the unique-key field.
	KeyColumn() string
	// Table returns the name of the underlying collection.
	Table() string
	// Begin opens a transaction scoped to this collection.
	Begin(ctx context.Context) (Tx, error)
}

// Tx is a Store bound to one open transaction.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}
