package cmd

import (
	"fmt"

	"record-sync/core/config"
	"record-sync/core/database"
	"record-sync/core/pipeline"
	"record-sync/core/storage"
	"record-sync/core/store"
	"record-sync/core/sync"
)

// buildJob assembles the engine variant and extraction source described by
// the sync section of the configuration.
//
// The variant is picked from the job shape: a named target connection selects
// the cross-connection engine, differing key names select the cross-type
// engine, anything else the generic one.
func buildJob(cfg *config.Config, opts sync.Options) (*sync.Engine, pipeline.Source, error) {
	job := cfg.Sync
	if job.TargetTable == "" {
		return nil, nil, fmt.Errorf("sync target table is not configured")
	}
	// Cross-connection sync moves records of one type between locations, so
	// a key rename cannot be honored there.
	if job.TargetConnection != "" && job.SourceKey != job.TargetKey {
		return nil, nil, fmt.Errorf("cross-connection sync requires matching keys: source_key %q vs target_key %q", job.SourceKey, job.TargetKey)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var engine *sync.Engine
	if job.TargetConnection != "" {
		target, err := database.Connect(cfg.Target)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to target database: %w", err)
		}
		registry := database.NewRegistry()
		registry.Register(job.TargetConnection, target)
		engine = sync.NewCrossTable(registry, job.TargetKey, job.TargetConnection, job.TargetTable, opts)
	} else {
		st, err := store.NewGorm(db, job.TargetTable, job.TargetKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open target store: %w", err)
		}
		if job.SourceKey != job.TargetKey {
			engine = sync.NewCrossType(st, job.SourceKey, job.TargetKey, nil, opts)
		} else {
			engine = sync.New(st, job.TargetKey, opts)
		}
	}

	var src pipeline.Source
	switch job.Source {
	case "objects":
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		src = pipeline.NewObjectSource(client, cfg.Storage.Bucket, cfg.Storage.Prefix, ".ndjson")
	default:
		if job.SourceTable == "" {
			return nil, nil, fmt.Errorf("sync source table is not configured")
		}
		src = pipeline.NewTablePager(db, job.SourceTable, job.SourceKey, job.BatchSize)
	}

	return engine, src, nil
}
