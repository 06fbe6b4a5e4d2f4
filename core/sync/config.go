package sync

import "strings"

// Config describes one sync job as loaded from configuration.
type Config struct {
	// Source selects the extraction pipeline: "table" pages a database
	// table, "objects" streams NDJSON objects from the configured bucket.
	Source string `mapstructure:"source" default:"table"`
	// SourceTable is the table the table source reads from.
	SourceTable string `mapstructure:"source_table" default:""`
	// SourceKey is the unique-key field on source records.
	SourceKey string `mapstructure:"source_key" default:"id"`
	// TargetTable is the table records are synchronized into.
	TargetTable string `mapstructure:"target_table" default:""`
	// TargetKey is the unique-key column on the target table.
	TargetKey string `mapstructure:"target_key" default:"id"`
	// TargetConnection names a registry connection for cross-connection
	// sync. Empty means the default connection.
	TargetConnection string `mapstructure:"target_connection" default:""`
	// InsertOnly controls the lookup-skip fast path: "auto" probes the
	// target for emptiness at startup, "on" and "off" force the decision.
	InsertOnly string `mapstructure:"insert_only" default:"auto"`
	// BatchSize is the page size of the table source.
	BatchSize int `mapstructure:"batch_size" default:"500"`
}

// InsertOnlyFlag translates the configured mode into the engine's tri-state:
// nil for auto-detection, otherwise the forced value.
func (c Config) InsertOnlyFlag() *bool {
	switch strings.ToLower(c.InsertOnly) {
	case "on", "true", "1", "always":
		v := true
		return &v
	case "off", "false", "0", "never":
		v := false
		return &v
	default:
		return nil
	}
}
