package schema

import (
	"context"
	"database/sql"
	"fmt"

	"db-fieldgen/internal/database"
	"db-fieldgen/internal/dialect"
)

// fakeDB answers the dialect's metadata queries from in-memory rows.
type fakeDB struct {
	d       dialect.Dialect
	tables  []string
	columns map[string][][]any
	fks     map[string][][]any
	err     error

	fkCalls  map[string]int
	lastArgs []any
}

func newFakeDB(d dialect.Dialect) *fakeDB {
	return &fakeDB{
		d:       d,
		columns: make(map[string][][]any),
		fks:     make(map[string][][]any),
		fkCalls: make(map[string]int),
	}
}

func (f *fakeDB) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastArgs = args

	switch query {
	case f.d.TablesQuery():
		rows := make([][]any, 0, len(f.tables))
		for _, t := range f.tables {
			rows = append(rows, []any{t})
		}
		return &fakeRows{data: rows}, nil
	case f.d.ColumnsQuery():
		return &fakeRows{data: f.columns[args[1].(string)]}, nil
	case f.d.ForeignKeysQuery():
		table := args[1].(string)
		f.fkCalls[table]++
		return &fakeRows{data: f.fks[table]}, nil
	}
	return nil, fmt.Errorf("unexpected query: %s", query)
}

type fakeRows struct {
	data [][]any
	pos  int
	cur  []any
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.data) {
		return false
	}
	r.cur = r.data[r.pos]
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) != len(r.cur) {
		return fmt.Errorf("expected %d destinations, got %d", len(r.cur), len(dest))
	}
	for i, d := range dest {
		s, ok := d.(sql.Scanner)
		if !ok {
			return fmt.Errorf("destination %d is not a sql.Scanner", i)
		}
		if err := s.Scan(r.cur[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *fakeRows) Close() error { return nil }
func (r *fakeRows) Err() error   { return nil }

// col builds a columns-query row: name, default, nullable, data type,
// length, column type, comment. nil stands for NULL.
func col(name string, def any, nullable, dataType string, length any, columnType string, comment any) []any {
	return []any{name, def, nullable, dataType, length, columnType, comment}
}

func fk(name, column, refTable, refColumn string, onDelete, onUpdate any) []any {
	return []any{name, column, refTable, refColumn, onDelete, onUpdate}
}
