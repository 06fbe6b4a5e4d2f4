package sync

import (
	"context"
	"testing"

	"record-sync/core/database"
	"record-sync/core/record"
	"record-sync/core/store"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testStore is an in-memory items table plus its backing connection, so
// tests can both drive the store and snapshot raw table state.
type testStore struct {
	*store.Gorm
	db *gorm.DB
}

func newTestStore(t *testing.T, seed ...record.Map) *testStore {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT, qty INTEGER)").Error)

	s, err := store.NewGorm(db, "items", "id")
	require.NoError(t, err)

	ts := &testStore{Gorm: s, db: db}
	for _, rec := range seed {
		require.NoError(t, s.Insert(context.Background(), rec))
	}
	return ts
}

// snapshot returns all rows keyed by id for before/after comparisons.
func (ts *testStore) snapshot(t *testing.T) map[int64]record.Map {
	t.Helper()

	var rows []map[string]any
	require.NoError(t, ts.db.Table("items").Order("id").Find(&rows).Error)

	out := make(map[int64]record.Map, len(rows))
	for _, row := range rows {
		id, ok := row["id"].(int64)
		require.True(t, ok, "id column must scan as int64")
		out[id] = record.Map(row)
	}
	return out
}

// countingStore wraps a Store and counts key lookups, so tests can prove the
// insert-only fast path skips them entirely.
type countingStore struct {
	store.Store
	lookups int
}

func (c *countingStore) FindByKey(ctx context.Context, key any) (record.MutableRecord, error) {
	c.lookups++
	return c.Store.FindByKey(ctx, key)
}

func (c *countingStore) Begin(ctx context.Context) (store.Tx, error) {
	tx, err := c.Store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &countingTx{Tx: tx, parent: c}, nil
}

type countingTx struct {
	store.Tx
	parent *countingStore
}

func (c *countingTx) FindByKey(ctx context.Context, key any) (record.MutableRecord, error) {
	c.parent.lookups++
	return c.Tx.FindByKey(ctx, key)
}
