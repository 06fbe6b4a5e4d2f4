package sync

import (
	"context"
	"errors"
	"fmt"
	gosync "sync"
	"time"

	"record-sync/core/database"
	"record-sync/core/pipeline"
	"record-sync/core/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FinishedFunc receives the per-batch completion event: the batch (with its
// extraction settings), the successful-row count, and the fetch and sync
// durations. It is the reporting boundary toward progress collaborators.
type FinishedFunc func(batch pipeline.Batch, synced int, fetchDur, syncDur time.Duration)

// Options carries the optional knobs shared by all engine variants.
type Options struct {
	// InsertOnly forces the insert-only decision. Left nil, the engine
	// probes the target at Start and enables the fast path when the target
	// is empty.
	InsertOnly *bool
	// OnError is the per-row error policy; see ErrorHook. Nil escalates
	// every row failure.
	OnError ErrorHook
	// OnFinished is invoked after every successfully committed batch.
	OnFinished FinishedFunc
	// Stat is the shared run accumulator. Allocated internally when nil.
	Stat *Stat
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
}

// Engine orchestrates a sync run: startup validation, the insert-only probe,
// batch processing with fetch/sync timing, and completion reporting.
//
// A run moves through Created, Started, per-batch processing, Finished; Start
// runs exactly once. Distinct batches may be processed concurrently once the
// engine has started.
type Engine struct {
	store      store.Store
	registry   *database.Registry
	targetConn string
	targetTab  string
	cross      bool

	rec         *Reconciler
	freshTarget bool

	explicit   *bool
	insertOnly bool

	onError    ErrorHook
	onFinished FinishedFunc
	stat       *Stat
	log        *zap.Logger

	mu      gosync.Mutex
	started bool
	report  Report
}

// New builds the generic engine: source and target share entity type, store,
// and location. keyField is both the source's unique-key field and the
// target's key column.
func New(s store.Store, keyField string, opts Options) *Engine {
	e := newEngine(opts)
	e.store = s
	e.rec = NewReconciler(keyField, keyField, e.stat)
	return e
}

// NewCrossType builds the cross-entity-type variant: the source key field and
// target key column may differ in name, the transform maps fields the default
// copy cannot, and insert-only rows always get a freshly built target.
func NewCrossType(s store.Store, sourceKey, targetKey string, transform Transform, opts Options) *Engine {
	e := newEngine(opts)
	e.store = s
	e.rec = NewReconciler(sourceKey, targetKey, e.stat)
	e.rec.Transform = transform
	e.freshTarget = true
	return e
}

// NewCrossTable builds the same-type variant targeting a different
// connection and table. Both must be named; Start fails otherwise. Every
// store call of the run is routed at that location through the registry.
func NewCrossTable(reg *database.Registry, keyField, targetConnection, targetTable string, opts Options) *Engine {
	e := newEngine(opts)
	e.registry = reg
	e.targetConn = targetConnection
	e.targetTab = targetTable
	e.cross = true
	e.rec = NewReconciler(keyField, keyField, e.stat)
	return e
}

func newEngine(opts Options) *Engine {
	stat := opts.Stat
	if stat == nil {
		stat = NewStat()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		explicit:   opts.InsertOnly,
		onError:    opts.OnError,
		onFinished: opts.OnFinished,
		stat:       stat,
		log:        log,
	}
}

// Start validates the configuration and decides the insert-only mode. It
// must be called exactly once per run, before any batch.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return ErrAlreadyStarted
	}
	if err := e.validate(); err != nil {
		return err
	}

	if e.explicit != nil {
		e.insertOnly = *e.explicit
	} else {
		// Empty-target fast path: with zero rows present, every row must be
		// an insert, so the per-row lookup can be skipped. Best effort only;
		// a concurrent writer appearing after the probe degrades correctness
		// of the optimization, not of the sync itself.
		n, err := e.countTarget(ctx)
		if err != nil {
			return fmt.Errorf("failed to probe target: %w", err)
		}
		e.insertOnly = n == 0
	}

	e.report = Report{
		RunID:      uuid.NewString(),
		InsertOnly: e.insertOnly,
		StartedAt:  time.Now(),
	}
	e.started = true

	e.log.Info("sync run started",
		zap.String("run_id", e.report.RunID),
		zap.Bool("insert_only", e.insertOnly),
		zap.String("target", e.targetName()))
	return nil
}

func (e *Engine) validate() error {
	if e.cross {
		if e.registry == nil {
			return ErrNoStore
		}
		if e.targetConn == "" {
			return ErrNoTargetConnection
		}
		if e.targetTab == "" {
			return ErrNoTargetTable
		}
		return nil
	}
	if e.store == nil {
		return ErrNoStore
	}
	return nil
}

func (e *Engine) countTarget(ctx context.Context) (int64, error) {
	if !e.cross {
		return e.store.Count(ctx)
	}
	var n int64
	err := store.RunOn(e.registry, e.targetConn, e.targetTab, e.rec.TargetKey, func(s store.Store) error {
		var cErr error
		n, cErr = s.Count(ctx)
		return cErr
	})
	return n, err
}

// ProcessBatch synchronizes one batch, timing the sync phase. fetchDur is
// the already-measured time spent obtaining the batch from the pipeline. The
// completion event fires only for committed batches.
func (e *Engine) ProcessBatch(ctx context.Context, batch pipeline.Batch, fetchDur time.Duration) (int, error) {
	e.mu.Lock()
	started := e.started
	e.mu.Unlock()
	if !started {
		return 0, ErrNotStarted
	}

	syncStart := time.Now()
	synced, err := e.syncBatch(ctx, batch)
	syncDur := time.Since(syncStart)

	if err != nil {
		e.log.Error("batch failed",
			zap.String("run_id", e.report.RunID),
			zap.String("origin", batch.Settings.Origin),
			zap.Int("batch", batch.Settings.Index),
			zap.Error(err))
		return 0, err
	}

	e.mu.Lock()
	e.report.Batches++
	e.report.Rows += synced
	e.report.FetchTime += fetchDur
	e.report.SyncTime += syncDur
	e.mu.Unlock()

	e.log.Info("batch synchronized",
		zap.String("run_id", e.report.RunID),
		zap.String("origin", batch.Settings.Origin),
		zap.Int("batch", batch.Settings.Index),
		zap.Int("rows", synced),
		zap.Duration("fetch", fetchDur),
		zap.Duration("sync", syncDur))

	if e.onFinished != nil {
		e.onFinished(batch, synced, fetchDur, syncDur)
	}
	return synced, nil
}

func (e *Engine) syncBatch(ctx context.Context, batch pipeline.Batch) (int, error) {
	if !e.cross {
		return e.newSyncer(e.store).SyncBatch(ctx, batch.Records, batch.Settings)
	}
	var synced int
	err := store.RunOn(e.registry, e.targetConn, e.targetTab, e.rec.TargetKey, func(s store.Store) error {
		var sErr error
		synced, sErr = e.newSyncer(s).SyncBatch(ctx, batch.Records, batch.Settings)
		return sErr
	})
	return synced, err
}

func (e *Engine) newSyncer(s store.Store) *BatchSyncer {
	return &BatchSyncer{
		Store:       s,
		Reconciler:  e.rec,
		InsertOnly:  e.insertOnly,
		FreshTarget: e.freshTarget,
		OnError:     e.onError,
		Log:         e.log,
	}
}

// Run drives a complete run: Start, then fetch and process batches until the
// source is exhausted, then the final report.
func (e *Engine) Run(ctx context.Context, src pipeline.Source) (*Report, error) {
	if err := e.Start(ctx); err != nil {
		return nil, err
	}

	for {
		fetchStart := time.Now()
		batch, err := src.Next(ctx)
		fetchDur := time.Since(fetchStart)

		if errors.Is(err, pipeline.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch batch: %w", err)
		}

		if _, err := e.ProcessBatch(ctx, batch, fetchDur); err != nil {
			return nil, err
		}
	}

	report := e.finish()
	return &report, nil
}

func (e *Engine) finish() Report {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.report.Inserts = e.stat.Inserts()
	e.report.Changes = e.stat.Changes()
	e.report.Skipped = e.stat.Skipped()
	e.report.FinishedAt = time.Now()

	e.log.Info("sync run finished",
		zap.String("run_id", e.report.RunID),
		zap.Int("batches", e.report.Batches),
		zap.Int("rows", e.report.Rows),
		zap.Int64("inserts", e.report.Inserts),
		zap.Int64("changes", e.report.Changes),
		zap.Int64("skipped", e.report.Skipped),
		zap.Duration("fetch_time", e.report.FetchTime),
		zap.Duration("sync_time", e.report.SyncTime))
	return e.report
}

// InsertOnly reports the decision made at Start.
func (e *Engine) InsertOnly() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.insertOnly
}

// Stat exposes the run accumulator shared with the reconciliation path.
func (e *Engine) Stat() *Stat {
	return e.stat
}

// Report returns a snapshot of the aggregate run report.
func (e *Engine) Report() Report {
	e.mu.Lock()
	defer e.mu.Unlock()
	r := e.report
	r.Inserts = e.stat.Inserts()
	r.Changes = e.stat.Changes()
	r.Skipped = e.stat.Skipped()
	return r
}

func (e *Engine) targetName() string {
	if e.cross {
		return e.targetConn + "/" + e.targetTab
	}
	if e.store != nil {
		return e.store.Table()
	}
	return ""
}
