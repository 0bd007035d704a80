package schema

import (
	"context"
	"database/sql"
	"fmt"

	"db-fieldgen/internal/database"
	"db-fieldgen/internal/dialect"
	"db-fieldgen/internal/errs"
)

// Columns returns the columns of schemaName.table in ordinal order.
// A table without columns (or a missing table) yields an empty slice; a row
// without a column name is an error.
func Columns(ctx context.Context, q database.Querier, d dialect.Dialect, schemaName, table string) ([]ColumnMetadata, error) {
	rows, err := q.Query(ctx, d.ColumnsQuery(), schemaName, table)
	if err != nil {
		return nil, errs.Wrap(errs.KindQueryFailed, fmt.Sprintf("failed to query columns of %s.%s", schemaName, table), err)
	}
	defer rows.Close()

	var cols []ColumnMetadata
	for rows.Next() {
		var cName, cDefault, isNull, dType, cLen, cType, comment sql.NullString
		if err := rows.Scan(&cName, &cDefault, &isNull, &dType, &cLen, &cType, &comment); err != nil {
			return nil, errs.Wrap(errs.KindQueryFailed, fmt.Sprintf("failed to scan column (table: %s)", table), err)
		}
		if !cName.Valid {
			return nil, errs.New(errs.KindQueryFailed,
				fmt.Sprintf("column row without a name in %s.%s", schemaName, table))
		}

		col := ColumnMetadata{
			Name:       cName.String,
			Nullable:   isNull.String,
			DataType:   dType.String,
			Length:     parseLength(cLen),
			ColumnType: cType.String,
			Comment:    comment.String,
		}
		if cDefault.Valid {
			v := cDefault.String
			col.Default = &v
		}
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindQueryFailed, fmt.Sprintf("error iterating columns of %s.%s", schemaName, table), err)
	}
	return cols, nil
}

// ListTables returns the base tables of schemaName.
func ListTables(ctx context.Context, q database.Querier, d dialect.Dialect, schemaName string) ([]string, error) {
	rows, err := q.Query(ctx, d.TablesQuery(), schemaName)
	if err != nil {
		return nil, errs.Wrap(errs.KindQueryFailed, "failed to query tables", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, errs.Wrap(errs.KindQueryFailed, "failed to scan table name", err)
		}
		if name.Valid {
			tables = append(tables, name.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Wrap(errs.KindQueryFailed, "error iterating tables", err)
	}
	return tables, nil
}

// parseLength reads a length column that drivers report as int, float or text.
func parseLength(v sql.NullString) int {
	if !v.Valid || v.String == "" {
		return 0
	}
	var length int
	if _, err := fmt.Sscanf(v.String, "%d", &length); err == nil {
		return length
	}
	var fLength float64
	if _, err := fmt.Sscanf(v.String, "%f", &fLength); err == nil {
		return int(fLength)
	}
	return 0
}
