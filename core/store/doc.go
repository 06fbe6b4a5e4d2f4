// Package store abstracts the target collection a sync run writes into.
//
// The Store interface covers exactly what reconciliation needs: a row count
// (for the empty-target fast path), key lookup, fresh-record construction,
// insert, update, and per-batch transactions. The GORM implementation
// addresses tables dynamically by name, so one binary can sync arbitrary
// tables without model structs.
//
// Scope and RunOn route store calls at a named connection and table from the
// database registry; the cross-connection engine variant uses them to aim a
// whole batch at a target location other than the default.
package store
