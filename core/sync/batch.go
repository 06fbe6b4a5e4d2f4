package sync

import (
	"context"

	"record-sync/core/pipeline"
	"record-sync/core/record"
	"record-sync/core/store"

	"go.uber.org/zap"
)

// ErrorHook decides the fate of one failing row. It receives the record, the
// batch's extraction settings, and the error. Returning nil suppresses the
// failure: the row is skipped and the batch continues. Returning a non-nil
// error (possibly transformed) aborts the batch, which is then rolled back.
type ErrorHook func(rec record.Record, settings pipeline.Settings, err error) error

// BatchSyncer reconciles one batch of records inside a single transaction.
//
// Row failures are routed through OnError; everything the hook does not
// suppress, plus any failure of begin or commit, rolls back the whole batch.
// With no hook installed every row failure aborts.
type BatchSyncer struct {
	Store      store.Store
	Reconciler *Reconciler

	// InsertOnly skips the lookup and treats every row as a new insert.
	InsertOnly bool
	// FreshTarget forces a newly built target even under InsertOnly. Without
	// it the source record itself is reused in place as the insert target,
	// which is only sound when source and target share a type.
	FreshTarget bool

	OnError ErrorHook
	Log     *zap.Logger
}

// SyncBatch reconciles records in order under one transaction and returns
// the number of rows successfully persisted. On abort the count is zero and
// no writes from the batch remain visible.
func (b *BatchSyncer) SyncBatch(ctx context.Context, records []record.Map, settings pipeline.Settings) (int, error) {
	if b.Store == nil {
		return 0, ErrNoStore
	}
	log := b.Log
	if log == nil {
		log = zap.NewNop()
	}

	tx, err := b.Store.Begin(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, src := range records {
		if err := b.syncOne(ctx, tx, src); err != nil {
			if b.OnError != nil {
				err = b.OnError(src, settings, err)
			}
			if err != nil {
				if rbErr := tx.Rollback(); rbErr != nil {
					log.Error("rollback failed after row error", zap.Error(rbErr))
				}
				return 0, err
			}
			// Suppressed: skip the row, keep the batch going.
			b.Reconciler.stat.MarkSkipped()
			log.Debug("row skipped by error policy",
				zap.String("origin", settings.Origin),
				zap.Int("batch", settings.Index))
			continue
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback failed after commit error", zap.Error(rbErr))
		}
		return 0, err
	}
	return count, nil
}

func (b *BatchSyncer) syncOne(ctx context.Context, tx store.Tx, src record.Map) error {
	target, isNew, err := b.resolve(ctx, tx, src)
	if err != nil {
		return err
	}
	if err := b.Reconciler.SyncFields(src, target, isNew); err != nil {
		return err
	}
	return b.Reconciler.SaveItem(ctx, tx, target, isNew)
}

// resolve picks the target record and the insert-vs-update decision for one
// source row.
func (b *BatchSyncer) resolve(ctx context.Context, tx store.Tx, src record.Map) (record.MutableRecord, bool, error) {
	if !b.InsertOnly {
		return b.Reconciler.GetOrCreate(ctx, tx, src)
	}
	if b.FreshTarget {
		target, err := b.Reconciler.NewTarget(tx, src)
		return target, true, err
	}
	// Same-type insert-only: the source row is the insert target.
	return src, true, nil
}
