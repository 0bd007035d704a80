package dialect

import (
	"fmt"
	"strings"
)

type OracleDialect struct{}

func (d *OracleDialect) Name() string {
	return "oracle"
}

// Oracle keeps unquoted identifiers upper case, so owner and table name are
// upper-cased in the queries.

func (d *OracleDialect) TablesQuery() string {
	return bindSchema(`SELECT TABLE_NAME FROM ALL_TABLES WHERE OWNER = UPPER(%[1]s) ORDER BY TABLE_NAME`, d.Placeholder)
}

func (d *OracleDialect) ColumnsQuery() string {
	return bindSchemaTable(`
SELECT
    t.COLUMN_NAME,
    CASE WHEN t.IDENTITY_COLUMN = 'YES' THEN 'identity' END,
    t.NULLABLE,
    LOWER(CASE
        WHEN t.DATA_TYPE = 'NUMBER' AND COALESCE(t.DATA_SCALE, 0) > 0 THEN 'DECIMAL'
        WHEN t.DATA_TYPE = 'NUMBER' THEN 'INTEGER'
        ELSE t.DATA_TYPE
    END),
    t.CHAR_LENGTH,
    LOWER(CASE
        WHEN t.DATA_TYPE = 'NUMBER' AND t.DATA_PRECISION IS NOT NULL
            THEN 'NUMBER(' || t.DATA_PRECISION || ',' || COALESCE(t.DATA_SCALE, 0) || ')'
        ELSE t.DATA_TYPE
    END),
    c.COMMENTS
FROM ALL_TAB_COLUMNS t
LEFT JOIN ALL_COL_COMMENTS c
    ON c.OWNER = t.OWNER AND c.TABLE_NAME = t.TABLE_NAME AND c.COLUMN_NAME = t.COLUMN_NAME
WHERE t.OWNER = UPPER(%[1]s) AND t.TABLE_NAME = UPPER(%[2]s)
ORDER BY t.COLUMN_ID`, d.Placeholder)
}

// ForeignKeysQuery returns NULL as the update rule; Oracle has none.
func (d *OracleDialect) ForeignKeysQuery() string {
	return bindSchemaTable(`
SELECT
    c.CONSTRAINT_NAME,
    cc.COLUMN_NAME,
    r.TABLE_NAME,
    rcc.COLUMN_NAME,
    c.DELETE_RULE,
    NULL
FROM ALL_CONSTRAINTS c
JOIN ALL_CONS_COLUMNS cc
    ON c.CONSTRAINT_NAME = cc.CONSTRAINT_NAME
    AND c.OWNER = cc.OWNER
JOIN ALL_CONSTRAINTS r
    ON c.R_CONSTRAINT_NAME = r.CONSTRAINT_NAME
    AND c.R_OWNER = r.OWNER
JOIN ALL_CONS_COLUMNS rcc
    ON r.CONSTRAINT_NAME = rcc.CONSTRAINT_NAME
    AND r.OWNER = rcc.OWNER
    AND cc.POSITION = rcc.POSITION
WHERE c.CONSTRAINT_TYPE = 'R'
AND c.OWNER = UPPER(%[1]s) AND c.TABLE_NAME = UPPER(%[2]s)
ORDER BY c.CONSTRAINT_NAME, cc.POSITION`, d.Placeholder)
}

func (d *OracleDialect) Placeholder(index int) string {
	// Oracle uses :1, :2, etc. (1-based index)
	return fmt.Sprintf(":%d", index+1)
}

func (d *OracleDialect) NullableSentinel() string {
	return "Y"
}

func (d *OracleDialect) AutoIncrementMarker() string {
	return "identity"
}

// IsBoolean treats NUMBER(1,0) as the conventional Oracle flag column.
func (d *OracleDialect) IsBoolean(dataType, columnType string) bool {
	return strings.EqualFold(strings.ReplaceAll(columnType, " ", ""), "number(1,0)")
}

func (d *OracleDialect) NormalizeType(sqlType string) string {
	s := DefaultNormalizeType(sqlType)
	switch {
	case s == "varchar2" || s == "nvarchar2":
		return "varchar"
	case s == "nchar":
		return "char"
	case s == "clob" || s == "nclob" || s == "long":
		return "longtext"
	case s == "raw":
		return "varbinary"
	case s == "binary_float":
		return "float"
	case s == "binary_double":
		return "double"
	case strings.HasPrefix(s, "timestamp") && strings.Contains(s, "time zone"):
		return "timestamptz"
	case strings.HasPrefix(s, "timestamp"):
		return "timestamp"
	}
	return s
}

func (d *OracleDialect) SchemaName(input string) string {
	return strings.ToUpper(input)
}

func (d *OracleDialect) Policy() Policy {
	return Policy{
		PrimaryMatch:      PrimaryFold,
		AutoIncrement:     AutoIncrementByMarker,
		PrecisionFallback: PrecisionNone,
	}
}
