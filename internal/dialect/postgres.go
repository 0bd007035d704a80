package dialect

import (
	"fmt"
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string {
	return "postgres"
}

func (d *PostgresDialect) TablesQuery() string {
	return bindSchema(`SELECT table_name FROM information_schema.tables WHERE table_schema = %[1]s AND table_type = 'BASE TABLE' ORDER BY table_name`, d.Placeholder)
}

// ColumnsQuery reports enum columns as data type "enum" with an
// enum('a','b') column type built from pg_enum, and numeric columns with
// their declared (precision,scale).
func (d *PostgresDialect) ColumnsQuery() string {
	return bindSchemaTable(`SELECT
    c.column_name,
    c.column_default,
    c.is_nullable,
    CASE
        WHEN t.typtype = 'e' THEN 'enum'
        WHEN c.data_type = 'USER-DEFINED' THEN c.udt_name
        ELSE LOWER(c.data_type)
    END AS data_type,
    c.character_maximum_length,
    CASE
        WHEN t.typtype = 'e' THEN 'enum(' || (
            SELECT string_agg(quote_literal(e.enumlabel), ',' ORDER BY e.enumsortorder)
            FROM pg_catalog.pg_enum e
            WHERE e.enumtypid = t.oid) || ')'
        WHEN c.data_type IN ('numeric', 'decimal') AND c.numeric_precision IS NOT NULL
            THEN LOWER(c.data_type) || '(' || c.numeric_precision || ',' || COALESCE(c.numeric_scale, 0) || ')'
        ELSE LOWER(c.data_type)
    END AS column_type,
    pg_catalog.col_description(
        (quote_ident(c.table_schema) || '.' || quote_ident(c.table_name))::regclass::oid,
        c.ordinal_position) AS column_comment
FROM information_schema.columns c
LEFT JOIN pg_catalog.pg_namespace n ON n.nspname = c.udt_schema
LEFT JOIN pg_catalog.pg_type t ON t.typname = c.udt_name AND t.typnamespace = n.oid
WHERE c.table_schema = %[1]s AND c.table_name = %[2]s
ORDER BY c.ordinal_position`, d.Placeholder)
}

func (d *PostgresDialect) ForeignKeysQuery() string {
	return bindSchemaTable(`SELECT
    tc.constraint_name,
    kcu.column_name,
    ccu.table_name,
    ccu.column_name,
    rc.delete_rule,
    rc.update_rule
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
    ON tc.constraint_name = kcu.constraint_name AND tc.constraint_schema = kcu.constraint_schema
JOIN information_schema.constraint_column_usage ccu
    ON ccu.constraint_name = tc.constraint_name AND ccu.constraint_schema = tc.constraint_schema
JOIN information_schema.referential_constraints rc
    ON rc.constraint_name = tc.constraint_name AND rc.constraint_schema = tc.constraint_schema
WHERE tc.constraint_type = 'FOREIGN KEY'
  AND tc.table_schema = %[1]s AND tc.table_name = %[2]s
ORDER BY tc.constraint_name, kcu.ordinal_position`, d.Placeholder)
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) NullableSentinel() string {
	return "YES"
}

// AutoIncrementMarker is the prefix of serial/identity-by-sequence defaults.
func (d *PostgresDialect) AutoIncrementMarker() string {
	return "nextval("
}

func (d *PostgresDialect) IsBoolean(dataType, columnType string) bool {
	t := strings.ToLower(dataType)
	return t == "boolean" || t == "bool"
}

func (d *PostgresDialect) NormalizeType(sqlType string) string {
	t := DefaultNormalizeType(sqlType)
	switch t {
	case "int4", "int":
		return "integer"
	case "int2":
		return "smallint"
	case "int8":
		return "bigint"
	case "float4":
		return "real"
	case "float8", "double precision":
		return "double"
	case "bpchar", "character":
		return "char"
	case "character varying":
		return "varchar"
	case "timestamp without time zone":
		return "timestamp"
	case "timestamp with time zone":
		return "timestamptz"
	case "time without time zone":
		return "time"
	case "time with time zone":
		return "timetz"
	default:
		return t
	}
}

func (d *PostgresDialect) SchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}

func (d *PostgresDialect) Policy() Policy {
	return Policy{
		PrimaryMatch:      PrimaryExact,
		AutoIncrement:     AutoIncrementByMarker,
		PrecisionFallback: PrecisionDefaultPair,
	}
}
