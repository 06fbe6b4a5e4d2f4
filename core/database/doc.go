// Package database provides GORM connection management for the sync engine.
//
// Connect opens a single connection from configuration (mysql for networked
// targets, sqlite for local and in-memory databases). Registry tracks named
// connections so a sync job can address a target table on a different
// connection than its source. GetTableColumns inspects a table's column set,
// which the store layer uses to shape the generic records it hands out.
package database
