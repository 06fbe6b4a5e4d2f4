// Package sync implements the record synchronization engine.
//
// Given batches of generic source records from an extraction pipeline, the
// engine reconciles each record against a target store: it locates an
// existing counterpart by unique key, creates one if absent, copies
// same-named fields, and persists the result. Each batch runs under a single
// transaction; individual row failures are routed through an error policy
// that either skips the row or aborts (and rolls back) the batch. No partial
// batch is ever visible.
//
// # Components
//
// Reconciler is the unit algorithm (lookup-or-create, field copy, save).
// BatchSyncer wraps it in the per-batch transaction and error loop. Engine
// orchestrates a run: startup validation, the empty-target insert-only
// probe, fetch/sync phase timing, and completion reporting through Stat and
// Report.
//
// # Variants
//
// Three constructors cover the supported topologies:
//
//   - New: source and target share entity type, store, and location.
//   - NewCrossType: differing entity types in one store; key field names may
//     differ and a Transform maps fields the default copy cannot.
//   - NewCrossTable: same type synchronized into a different connection
//     and/or table, with every store call routed at the configured target
//     location.
//
// # Concurrency
//
// Distinct batches may be processed concurrently against the same store and
// Stat. Transactions are per batch and independent; statistics use atomic
// increments. There is no mid-batch cancellation: a begun transaction always
// reaches commit or rollback.
package sync
