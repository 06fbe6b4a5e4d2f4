// Package config loads application configuration from the environment.
//
// Configuration is assembled from partial configs owned by the packages they
// configure (database, logger, storage, server, sync). Defaults come from
// `default` struct tags; values are overridden by environment variables
// (nested keys joined with underscores, e.g. SYNC_TARGET_TABLE) and an
// optional .env file.
package config
