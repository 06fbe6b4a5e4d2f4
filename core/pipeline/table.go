package pipeline

import (
	"context"
	"fmt"

	"record-sync/core/record"

	"gorm.io/gorm"
)

// TablePager extracts a database table in key-ordered pages of fixed size.
// Each page becomes one batch, so the transaction boundary downstream matches
// the extraction boundary.
type TablePager struct {
	db        *gorm.DB
	table     string
	keyColumn string
	batchSize int
	offset    int
	index     int
	done      bool
}

// NewTablePager builds a pager over the given table. Pages are ordered by
// keyColumn so repeated runs see rows in the same order.
func NewTablePager(db *gorm.DB, table, keyColumn string, batchSize int) *TablePager {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &TablePager{db: db, table: table, keyColumn: keyColumn, batchSize: batchSize}
}

func (p *TablePager) Next(ctx context.Context) (Batch, error) {
	if p.done {
		return Batch{}, Done
	}

	var rows []map[string]any
	err := p.db.WithContext(ctx).
		Table(p.table).
		Order(p.keyColumn).
		Limit(p.batchSize).
		Offset(p.offset).
		Find(&rows).Error
	if err != nil {
		return Batch{}, fmt.Errorf("failed to page %s: %w", p.table, err)
	}

	if len(rows) == 0 {
		p.done = true
		return Batch{}, Done
	}

	records := make([]record.Map, len(rows))
	for i, row := range rows {
		records[i] = record.Map(row)
	}

	batch := Batch{
		Records:  records,
		Settings: Settings{Origin: p.table, Index: p.index},
	}
	p.offset += len(rows)
	p.index++

	// A short page means the table is exhausted; skip the trailing empty fetch.
	if len(rows) < p.batchSize {
		p.done = true
	}
	return batch, nil
}
