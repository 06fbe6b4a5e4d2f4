package store

import (
	"context"
	"errors"
	"fmt"

	"record-sync/core/database"
	"record-sync/core/record"
	"record-sync/core/utils"

	"gorm.io/gorm"
)

// Gorm is a Store over one table of a GORM connection.
//
// Records are record.Map values keyed by column name. The table's column set
// is inspected once at construction: NewRecord seeds fresh records with it,
// and writes are restricted to it so records carrying extra fields (e.g.
// source rows reused as insert targets) never produce unknown-column errors.
type Gorm struct {
	db      *gorm.DB
	table   string
	keyCol  string
	columns map[string]struct{}
}

// NewGorm builds a store for the given table and unique-key column.
func NewGorm(db *gorm.DB, table, keyColumn string) (*Gorm, error) {
	if table == "" {
		return nil, fmt.Errorf("store: table name is required")
	}
	if keyColumn == "" {
		return nil, fmt.Errorf("store: key column is required")
	}

	cols, err := database.GetTableColumns(db, table)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("store: table %s has no columns (does it exist?)", table)
	}

	columns := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		columns[col.Field] = struct{}{}
	}
	if _, ok := columns[keyColumn]; !ok {
		return nil, fmt.Errorf("store: table %s has no column %s", table, keyColumn)
	}

	return &Gorm{db: db, table: table, keyCol: keyColumn, columns: columns}, nil
}

func (g *Gorm) KeyColumn() string { return g.keyCol }

func (g *Gorm) Table() string { return g.table }

func (g *Gorm) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := g.db.WithContext(ctx).Table(g.table).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", g.table, err)
	}
	return n, nil
}

func (g *Gorm) FindByKey(ctx context.Context, key any) (record.MutableRecord, error) {
	// Keys arrive as float64 from JSON sources and int64 or []byte from
	// database drivers; normalization keeps the same logical key matching
	// regardless of where the record came from.
	row := map[string]any{}
	err := g.db.WithContext(ctx).
		Table(g.table).
		Where(g.keyCol+" = ?", utils.NormalizeKey(key)).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s by %s: %w", g.table, g.keyCol, err)
	}
	return record.Map(row), nil
}

// NewRecord returns a fresh record shaped like the table: every column is
// present but carries record.Unset until assigned.
func (g *Gorm) NewRecord() record.MutableRecord {
	rec := make(record.Map, len(g.columns))
	for col := range g.columns {
		rec[col] = record.Unset
	}
	return rec
}

func (g *Gorm) Insert(ctx context.Context, rec record.Record) error {
	row := g.rowFor(rec, true)
	if err := g.db.WithContext(ctx).Table(g.table).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert into %s: %w", g.table, err)
	}
	return nil
}

func (g *Gorm) Update(ctx context.Context, key any, rec record.Record) error {
	row := g.rowFor(rec, false)
	if len(row) == 0 {
		return nil
	}
	result := g.db.WithContext(ctx).
		Table(g.table).
		Where(g.keyCol+" = ?", utils.NormalizeKey(key)).
		Updates(row)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", g.table, result.Error)
	}
	return nil
}

// Begin opens a transaction and returns a store bound to it. Each call
// produces an independent transaction context.
func (g *Gorm) Begin(ctx context.Context) (Tx, error) {
	tx := g.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction on %s: %w", g.table, tx.Error)
	}
	return &gormTx{Gorm: Gorm{db: tx, table: g.table, keyCol: g.keyCol, columns: g.columns}}, nil
}

// rowFor projects a record onto the table's column set. The key column is
// excluded from update sets so the correlation key is never rewritten.
// Columns still carrying record.Unset are never written, which keeps
// auto-increment and defaulted columns out of insert statements; an explicit
// nil is a real value and is written as SQL NULL.
func (g *Gorm) rowFor(rec record.Record, includeKey bool) map[string]any {
	row := make(map[string]any)
	for _, name := range rec.Fields() {
		if _, ok := g.columns[name]; !ok {
			continue
		}
		if !includeKey && name == g.keyCol {
			continue
		}
		v, _ := rec.Get(name)
		if v == record.Unset {
			continue
		}
		row[name] = v
	}
	return row
}

type gormTx struct {
	Gorm
}

func (t *gormTx) Commit() error {
	if err := t.db.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction on %s: %w", t.table, err)
	}
	return nil
}

func (t *gormTx) Rollback() error {
	if err := t.db.Rollback().Error; err != nil {
		return fmt.Errorf("failed to roll back transaction on %s: %w", t.table, err)
	}
	return nil
}
