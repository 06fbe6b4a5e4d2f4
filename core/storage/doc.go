// Package storage provides the object-storage client used by the NDJSON
// extraction source.
//
// The Client interface is intentionally narrow (bucket check, list, get):
// the sync engine only ever reads batch objects that some upstream export
// wrote. Mocks for the interface live in storage/mocks.
package storage
