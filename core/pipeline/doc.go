// Package pipeline provides the extraction sources that feed the sync
// engine.
//
// A Source hands out ordered batches of generic records together with the
// extraction settings that produced them. The engine times each fetch, syncs
// the batch under one transaction, and asks for the next batch until the
// source reports Done.
//
// Three sources ship with the engine: TablePager reads a database table in
// key-ordered pages (database-to-database sync), ObjectSource streams NDJSON
// batch objects from a bucket, and SliceSource serves in-memory rows.
package pipeline
