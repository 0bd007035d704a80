package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"db-fieldgen/internal/database"
	"db-fieldgen/internal/dialect"
	"db-fieldgen/internal/errs"
)

const defaultRule = "no action"

type tableKey struct {
	schema string
	table  string
}

// ConstraintExtractor reads foreign keys per table and caches them for its
// own lifetime. It is not safe for concurrent use.
type ConstraintExtractor struct {
	q     database.Querier
	d     dialect.Dialect
	cache map[tableKey][]ForeignConstraint
}

func NewConstraintExtractor(q database.Querier, d dialect.Dialect) *ConstraintExtractor {
	return &ConstraintExtractor{
		q:     q,
		d:     d,
		cache: make(map[tableKey][]ForeignConstraint),
	}
}

// Constraints returns the foreign keys of schemaName.table, querying the
// database only on the first call for that table. Failures are not cached.
func (e *ConstraintExtractor) Constraints(ctx context.Context, schemaName, table string) ([]ForeignConstraint, error) {
	key := tableKey{schema: schemaName, table: table}
	if cs, ok := e.cache[key]; ok {
		return cs, nil
	}

	cs, err := e.fetch(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	e.cache[key] = cs
	return cs, nil
}

// Lookup returns the first foreign key whose source column is column, or nil.
func (e *ConstraintExtractor) Lookup(ctx context.Context, schemaName, table, column string) (*ForeignConstraint, error) {
	cs, err := e.Constraints(ctx, schemaName, table)
	if err != nil {
		return nil, err
	}
	for _, c := range cs {
		if strings.EqualFold(c.Column, column) {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (e *ConstraintExtractor) fetch(ctx context.Context, schemaName, table string) ([]ForeignConstraint, error) {
	rows, err := e.q.Query(ctx, e.d.ForeignKeysQuery(), schemaName, table)
	if err != nil {
		return nil, errs.Wrap(errs.KindQueryFailed, fmt.Sprintf("failed to query foreign keys of %s.%s", schemaName, table), err)
	}
	defer rows.Close()

	var cs []ForeignConstraint
	for rows.Next() {
		var cName, cCol, rTable, rCol, onDelete, onUpdate sql.NullString
		if err := rows.Scan(&cName, &cCol, &rTable, &rCol, &onDelete, &onUpdate); err != nil {
			return nil, errs.Wrap(errs.KindQueryFailed, fmt.Sprintf("failed to scan foreign key (table: %s)", table), err)
		}

		if !cCol.Valid || !rTable.Valid || !rCol.Valid {
			return nil, errs.New(errs.KindMalformedConstraint,
				fmt.Sprintf("foreign key %q on %s.%s is missing its column or reference", cName.String, schemaName, table))
		}

		cs = append(cs, ForeignConstraint{
			Name:      strings.ToLower(cName.String),
			Column:    strings.ToLower(cCol.String),
			RefTable:  strings.ToLower(rTable.String),
			RefColumn: strings.ToLower(rCol.String),
			OnDelete:  ruleOrDefault(onDelete),
			OnUpdate:  ruleOrDefault(onUpdate),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindQueryFailed, fmt.Sprintf("error iterating foreign keys of %s.%s", schemaName, table), err)
	}
	return cs, nil
}

func ruleOrDefault(v sql.NullString) string {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return defaultRule
	}
	return strings.ToLower(v.String)
}
