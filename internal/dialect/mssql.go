package dialect

import (
	"fmt"
	"strings"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Name() string {
	return "sqlserver"
}

// go-mssqldb binds @p1, @p2 positionally.

func (d *MSSQLDialect) TablesQuery() string {
	return bindSchema(`SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = %[1]s AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`, d.Placeholder)
}

// ColumnsQuery reports identity columns with the default "identity" so the
// marker policy can see them, and reads comments from MS_Description.
func (d *MSSQLDialect) ColumnsQuery() string {
	return bindSchemaTable(`
		SELECT
			c.COLUMN_NAME,
			CASE
				WHEN COLUMNPROPERTY(OBJECT_ID(QUOTENAME(c.TABLE_SCHEMA) + '.' + QUOTENAME(c.TABLE_NAME)), c.COLUMN_NAME, 'IsIdentity') = 1 THEN 'identity'
				ELSE c.COLUMN_DEFAULT
			END AS COLUMN_DEFAULT,
			c.IS_NULLABLE,
			LOWER(c.DATA_TYPE),
			c.CHARACTER_MAXIMUM_LENGTH,
			CASE
				WHEN c.DATA_TYPE IN ('decimal', 'numeric')
					THEN LOWER(c.DATA_TYPE) + '(' + CAST(c.NUMERIC_PRECISION AS VARCHAR(10)) + ',' + CAST(c.NUMERIC_SCALE AS VARCHAR(10)) + ')'
				ELSE LOWER(c.DATA_TYPE)
			END AS COLUMN_TYPE,
			CAST(ep.value AS NVARCHAR(MAX)) AS COLUMN_COMMENT
		FROM INFORMATION_SCHEMA.COLUMNS c
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = OBJECT_ID(QUOTENAME(c.TABLE_SCHEMA) + '.' + QUOTENAME(c.TABLE_NAME))
			AND ep.minor_id = COLUMNPROPERTY(OBJECT_ID(QUOTENAME(c.TABLE_SCHEMA) + '.' + QUOTENAME(c.TABLE_NAME)), c.COLUMN_NAME, 'ColumnId')
			AND ep.name = 'MS_Description'
		WHERE c.TABLE_SCHEMA = %[1]s AND c.TABLE_NAME = %[2]s
		ORDER BY c.ORDINAL_POSITION
	`, d.Placeholder)
}

func (d *MSSQLDialect) ForeignKeysQuery() string {
	return bindSchemaTable(`SELECT RC.CONSTRAINT_NAME, KCU1.COLUMN_NAME, KCU2.TABLE_NAME, KCU2.COLUMN_NAME, RC.DELETE_RULE, RC.UPDATE_RULE FROM INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS RC JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU1 ON RC.CONSTRAINT_SCHEMA = KCU1.CONSTRAINT_SCHEMA AND RC.CONSTRAINT_NAME = KCU1.CONSTRAINT_NAME JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE KCU2 ON RC.UNIQUE_CONSTRAINT_SCHEMA = KCU2.CONSTRAINT_SCHEMA AND RC.UNIQUE_CONSTRAINT_NAME = KCU2.CONSTRAINT_NAME AND KCU1.ORDINAL_POSITION = KCU2.ORDINAL_POSITION WHERE KCU1.TABLE_SCHEMA = %[1]s AND KCU1.TABLE_NAME = %[2]s ORDER BY RC.CONSTRAINT_NAME, KCU1.ORDINAL_POSITION`, d.Placeholder)
}

func (d *MSSQLDialect) Placeholder(index int) string {
	return fmt.Sprintf("@p%d", index+1)
}

func (d *MSSQLDialect) NullableSentinel() string {
	return "YES"
}

func (d *MSSQLDialect) AutoIncrementMarker() string {
	return "identity"
}

func (d *MSSQLDialect) IsBoolean(dataType, columnType string) bool {
	return strings.EqualFold(dataType, "bit")
}

func (d *MSSQLDialect) NormalizeType(sqlType string) string {
	t := DefaultNormalizeType(sqlType)
	switch t {
	case "nvarchar":
		return "varchar"
	case "nchar":
		return "char"
	case "ntext":
		return "text"
	case "datetime2", "smalldatetime":
		return "datetime"
	case "datetimeoffset":
		return "datetimetz"
	case "money", "smallmoney":
		return "decimal"
	case "image":
		return "blob"
	case "uniqueidentifier":
		return "uuid"
	default:
		return t
	}
}

func (d *MSSQLDialect) SchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}

func (d *MSSQLDialect) Policy() Policy {
	return Policy{
		PrimaryMatch:      PrimaryFold,
		AutoIncrement:     AutoIncrementByMarker,
		PrecisionFallback: PrecisionNone,
	}
}
