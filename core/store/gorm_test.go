package store

import (
	"context"
	"testing"

	"record-sync/core/database"
	"record-sync/core/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Gorm {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT, qty INTEGER)").Error
	require.NoError(t, err)

	s, err := NewGorm(db, "items", "id")
	require.NoError(t, err)
	return s
}

func TestNewGormValidation(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	_, err = NewGorm(db, "", "id")
	assert.Error(t, err)

	_, err = NewGorm(db, "items", "")
	assert.Error(t, err)

	// Missing table yields an empty column set
	_, err = NewGorm(db, "nope", "id")
	assert.Error(t, err)

	err = db.Exec("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT)").Error
	require.NoError(t, err)

	_, err = NewGorm(db, "items", "wrong_column")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no column")
}

func TestGormCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, err := s.Count(ctx)
	assert.NoError(t, err)
	assert.Zero(t, n)

	// Absent key is not an error
	rec, err := s.FindByKey(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, rec)

	err = s.Insert(ctx, record.Map{"id": 1, "name": "chair", "qty": 3})
	assert.NoError(t, err)

	rec, err = s.FindByKey(ctx, 1)
	assert.NoError(t, err)
	require.NotNil(t, rec)
	name, _ := rec.Get("name")
	assert.Equal(t, "chair", name)

	err = s.Update(ctx, 1, record.Map{"name": "stool"})
	assert.NoError(t, err)

	rec, err = s.FindByKey(ctx, 1)
	assert.NoError(t, err)
	name, _ = rec.Get("name")
	assert.Equal(t, "stool", name)

	n, err = s.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGormNewRecordShape(t *testing.T) {
	s := newTestStore(t)

	rec := s.NewRecord()
	assert.ElementsMatch(t, []string{"id", "name", "qty"}, rec.Fields())

	// Columns exist on the shape but carry no value yet
	v, ok := rec.Get("name")
	assert.True(t, ok)
	assert.Equal(t, record.Unset, v)
}

func TestGormNullValues(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Unassigned columns stay out of the insert, so defaults apply
	rec := s.NewRecord()
	rec.Set("id", 1)
	rec.Set("name", "desk")
	require.NoError(t, s.Insert(ctx, rec))

	loaded, err := s.FindByKey(ctx, 1)
	require.NoError(t, err)
	qty, _ := loaded.Get("qty")
	assert.Nil(t, qty)

	// An explicit nil is a value: it nulls out a populated column
	require.NoError(t, s.Update(ctx, 1, record.Map{"name": nil, "qty": 4}))

	loaded, err = s.FindByKey(ctx, 1)
	require.NoError(t, err)
	name, _ := loaded.Get("name")
	assert.Nil(t, name)
	qty, _ = loaded.Get("qty")
	assert.Equal(t, int64(4), qty)

	// Same on insert
	require.NoError(t, s.Insert(ctx, record.Map{"id": 2, "name": nil, "qty": 9}))
	loaded, err = s.FindByKey(ctx, 2)
	require.NoError(t, err)
	name, _ = loaded.Get("name")
	assert.Nil(t, name)
}

func TestGormWriteProjection(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Fields the table doesn't have are dropped, not an error. This is what
	// lets a source row with extra fields be reused as an insert target.
	err := s.Insert(ctx, record.Map{"id": 7, "name": "lamp", "not_a_column": true})
	assert.NoError(t, err)

	// The key column is never part of an update set
	err = s.Update(ctx, 7, record.Map{"id": 99, "name": "lantern"})
	assert.NoError(t, err)

	rec, err := s.FindByKey(ctx, 7)
	assert.NoError(t, err)
	require.NotNil(t, rec)

	rec, err = s.FindByKey(ctx, 99)
	assert.NoError(t, err)
	assert.Nil(t, rec)

	// Update set empty after projection is a no-op
	err = s.Update(ctx, 7, record.Map{"id": 7})
	assert.NoError(t, err)
}

func TestGormTransactionVisibility(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	err = tx.Insert(ctx, record.Map{"id": 1, "name": "draft"})
	assert.NoError(t, err)

	// Visible inside the transaction
	rec, err := tx.FindByKey(ctx, 1)
	assert.NoError(t, err)
	assert.NotNil(t, rec)

	require.NoError(t, tx.Rollback())

	// Gone after rollback
	rec, err = s.FindByKey(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, rec)

	tx, err = s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Insert(ctx, record.Map{"id": 2, "name": "kept"}))
	require.NoError(t, tx.Commit())

	rec, err = s.FindByKey(ctx, 2)
	assert.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestScopeAndRunOn(t *testing.T) {
	ctx := context.Background()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE remote_items (id INTEGER PRIMARY KEY, name TEXT)").Error)

	reg := database.NewRegistry()
	reg.Register("archive", db)

	_, err = Scope(reg, "missing", "remote_items", "id")
	assert.Error(t, err)

	err = RunOn(reg, "archive", "remote_items", "id", func(s Store) error {
		assert.Equal(t, "remote_items", s.Table())
		return s.Insert(ctx, record.Map{"id": 1, "name": "routed"})
	})
	assert.NoError(t, err)

	scoped, err := Scope(reg, "archive", "remote_items", "id")
	require.NoError(t, err)
	n, err := scoped.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
