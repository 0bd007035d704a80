package dialect

import "strings"

type MysqlDialect struct{}

func (d *MysqlDialect) Name() string {
	return "mysql"
}

func (d *MysqlDialect) TablesQuery() string {
	return bindSchema(`SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = %[1]s AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`, d.Placeholder)
}

func (d *MysqlDialect) ColumnsQuery() string {
	return bindSchemaTable(`SELECT COLUMN_NAME, COLUMN_DEFAULT, IS_NULLABLE, LOWER(DATA_TYPE), CHARACTER_MAXIMUM_LENGTH, COLUMN_TYPE, COLUMN_COMMENT FROM information_schema.COLUMNS WHERE TABLE_SCHEMA = %[1]s AND TABLE_NAME = %[2]s ORDER BY ORDINAL_POSITION`, d.Placeholder)
}

func (d *MysqlDialect) ForeignKeysQuery() string {
	return bindSchemaTable(`SELECT kcu.CONSTRAINT_NAME, kcu.COLUMN_NAME, kcu.REFERENCED_TABLE_NAME, kcu.REFERENCED_COLUMN_NAME, rc.DELETE_RULE, rc.UPDATE_RULE FROM information_schema.KEY_COLUMN_USAGE kcu JOIN information_schema.REFERENTIAL_CONSTRAINTS rc ON rc.CONSTRAINT_SCHEMA = kcu.CONSTRAINT_SCHEMA AND rc.CONSTRAINT_NAME = kcu.CONSTRAINT_NAME WHERE kcu.TABLE_SCHEMA = %[1]s AND kcu.TABLE_NAME = %[2]s AND kcu.REFERENCED_TABLE_NAME IS NOT NULL ORDER BY kcu.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`, d.Placeholder)
}

func (d *MysqlDialect) Placeholder(index int) string {
	return "?"
}

func (d *MysqlDialect) NullableSentinel() string {
	return "YES"
}

// AutoIncrementMarker is empty: MySQL reports auto_increment in EXTRA, never
// in COLUMN_DEFAULT, so detection goes by name.
func (d *MysqlDialect) AutoIncrementMarker() string {
	return ""
}

func (d *MysqlDialect) IsBoolean(dataType, columnType string) bool {
	switch strings.ToLower(dataType) {
	case "bool", "boolean":
		return true
	case "tinyint":
		return isSingleBit(columnType, "tinyint")
	case "bit":
		return isSingleBit(columnType, "bit")
	}
	return false
}

func (d *MysqlDialect) NormalizeType(sqlType string) string {
	return DefaultNormalizeType(sqlType)
}

func (d *MysqlDialect) SchemaName(input string) string {
	return DefaultSchemaName(input)
}

func (d *MysqlDialect) Policy() Policy {
	return Policy{
		PrimaryMatch:      PrimaryFold,
		AutoIncrement:     AutoIncrementByName,
		PrecisionFallback: PrecisionNone,
	}
}
