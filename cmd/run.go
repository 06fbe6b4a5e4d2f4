package cmd

import (
	"context"
	"fmt"

	"record-sync/core/config"
	"record-sync/core/logger"
	"record-sync/core/pipeline"
	"record-sync/core/record"
	"record-sync/core/sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the run command
	skipErrors     bool
	forceInsert    bool
	forceReconcile bool
)

// runCmd executes the configured sync job once and reports the result.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the configured sync job once",
	Long: `Run the configured sync job: extract record batches from the source,
reconcile each record against the target table by its unique key, and commit
batch by batch.

Examples:
  # Run with the configured insert-only mode
  record-sync run

  # Skip failing rows instead of aborting the batch
  record-sync run --skip-errors

  # Force the insert-only fast path (skip per-row lookups)
  record-sync run --insert-only`,
	RunE: runSync,
}

func init() {
	runCmd.Flags().BoolVar(&skipErrors, "skip-errors", false, "Skip failing rows instead of aborting the batch")
	runCmd.Flags().BoolVar(&forceInsert, "insert-only", false, "Force insert-only mode (skip per-row lookups)")
	runCmd.Flags().BoolVar(&forceReconcile, "reconcile", false, "Force full reconciliation even against an empty target")

	RootCmd.AddCommand(runCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	opts := sync.Options{
		InsertOnly: insertOnlyFlag(cfg),
		Logger:     l,
	}
	if skipErrors {
		opts.OnError = func(rec record.Record, settings pipeline.Settings, err error) error {
			l.Warn("skipping failed row",
				zap.Error(err),
				zap.String("origin", settings.Origin),
				zap.Int("batch", settings.Index))
			return nil
		}
	}

	engine, src, err := buildJob(cfg, opts)
	if err != nil {
		return err
	}

	l.Info("Starting sync run",
		zap.String("source", cfg.Sync.Source),
		zap.String("target_table", cfg.Sync.TargetTable))

	report, err := engine.Run(ctx, src)
	if err != nil {
		return fmt.Errorf("sync run failed: %w", err)
	}

	l.Info("Sync run finished",
		zap.String("run_id", report.RunID),
		zap.Int("batches", report.Batches),
		zap.Int("rows", report.Rows),
		zap.Int64("inserts", report.Inserts),
		zap.Int64("changes", report.Changes),
		zap.Int64("skipped", report.Skipped),
		zap.Bool("insert_only", report.InsertOnly),
		zap.Duration("fetch_time", report.FetchTime),
		zap.Duration("sync_time", report.SyncTime))

	return nil
}

// insertOnlyFlag folds the command-line overrides into the configured mode.
// Flags win over configuration; --reconcile wins over --insert-only.
func insertOnlyFlag(cfg *config.Config) *bool {
	if forceReconcile {
		v := false
		return &v
	}
	if forceInsert {
		v := true
		return &v
	}
	return cfg.Sync.InsertOnlyFlag()
}
