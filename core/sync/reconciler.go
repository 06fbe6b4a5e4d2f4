package sync

import (
	"context"
	"fmt"

	"record-sync/core/record"
	"record-sync/core/store"
)

// Transform adjusts a target record after the default same-name field copy.
// It is the override point for cross-type mappings and derived values; isNew
// tells the transform whether the record is about to be inserted or updated.
type Transform func(src record.Record, target record.MutableRecord, isNew bool) error

// Reconciler performs the unit algorithm: for one source record, locate or
// create its target counterpart, copy fields, persist.
//
// SourceKey names the field on source records that carries the unique key;
// TargetKey names the corresponding column on the target store. They differ
// only in cross-type syncs.
type Reconciler struct {
	SourceKey string
	TargetKey string
	Transform Transform

	stat *Stat
}

// NewReconciler builds a reconciler correlating sourceKey values with the
// targetKey column. Stat may be nil when no statistics are wanted.
func NewReconciler(sourceKey, targetKey string, stat *Stat) *Reconciler {
	return &Reconciler{SourceKey: sourceKey, TargetKey: targetKey, stat: stat}
}

// GetOrCreate looks up the target counterpart of src by unique key. When no
// counterpart exists it returns a fresh record with the key already set and
// isNew true. Store errors propagate unmodified.
func (r *Reconciler) GetOrCreate(ctx context.Context, s store.Store, src record.Record) (record.MutableRecord, bool, error) {
	key, err := r.keyOf(src)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.FindByKey(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	return r.newTarget(s, key), true, nil
}

// NewTarget builds a fresh target for src without consulting the store. The
// insert-only path of cross-type syncs uses this to skip the lookup while
// still producing a properly shaped record.
func (r *Reconciler) NewTarget(s store.Store, src record.Record) (record.MutableRecord, error) {
	key, err := r.keyOf(src)
	if err != nil {
		return nil, err
	}
	return r.newTarget(s, key), nil
}

// SyncFields copies every same-named field from src onto target, always
// overwriting, then applies the optional Transform. The target is only
// mutated in memory; persistence is SaveItem's job.
func (r *Reconciler) SyncFields(src record.Record, target record.MutableRecord, isNew bool) error {
	record.CopyFields(src, target)
	if r.Transform != nil {
		if err := r.Transform(src, target, isNew); err != nil {
			return fmt.Errorf("transform failed: %w", err)
		}
	}
	return nil
}

// SaveItem persists the target: insert when new, update otherwise. Updates
// count toward the run's change statistic.
func (r *Reconciler) SaveItem(ctx context.Context, s store.Store, target record.Record, isNew bool) error {
	if isNew {
		if err := s.Insert(ctx, target); err != nil {
			return err
		}
		r.stat.MarkInserted()
		return nil
	}

	key, ok := target.Get(r.TargetKey)
	if !ok {
		return fmt.Errorf("target record has no %s field", r.TargetKey)
	}
	if err := s.Update(ctx, key, target); err != nil {
		return err
	}
	r.stat.MarkChanged()
	return nil
}

func (r *Reconciler) keyOf(src record.Record) (any, error) {
	key, ok := src.Get(r.SourceKey)
	if !ok {
		return nil, fmt.Errorf("source record has no %s field", r.SourceKey)
	}
	return key, nil
}

func (r *Reconciler) newTarget(s store.Store, key any) record.MutableRecord {
	target := s.NewRecord()
	target.Set(r.TargetKey, key)
	return target
}
