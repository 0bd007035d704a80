package cmd

// defaultTypeMap maps normalized native types to Laravel migration column
// methods. generator.type_map entries override or extend it.
var defaultTypeMap = map[string]string{
	// strings
	"char":     "char",
	"varchar":  "string",
	"nchar":    "char",
	"varchar2": "string",
	"string":   "string",
	"uuid":     "uuid",
	"citext":   "string",
	"inet":     "ipAddress",
	"macaddr":  "macAddress",

	// text
	"tinytext":   "text",
	"text":       "text",
	"mediumtext": "mediumText",
	"longtext":   "longText",
	"ntext":      "text",
	"clob":       "longText",
	"nclob":      "longText",
	"xml":        "text",

	// integers
	"tinyint":   "tinyInteger",
	"smallint":  "smallInteger",
	"mediumint": "mediumInteger",
	"int":       "integer",
	"integer":   "integer",
	"bigint":    "bigInteger",
	"serial":    "increments",
	"bigserial": "bigIncrements",

	// decimals
	"decimal": "decimal",
	"numeric": "decimal",
	"number":  "decimal",
	"money":   "decimal",
	"double":  "double",
	"float":   "float",
	"real":    "float",

	// booleans
	"bool":    "boolean",
	"boolean": "boolean",
	"bit":     "boolean",

	// dates
	"date":           "date",
	"time":           "time",
	"timetz":         "timeTz",
	"datetime":       "dateTime",
	"datetime2":      "dateTime",
	"smalldatetime":  "dateTime",
	"datetimeoffset": "dateTimeTz",
	"datetimetz":     "dateTimeTz",
	"timestamp":      "timestamp",
	"timestamptz":    "timestampTz",
	"year":           "year",

	// binary
	"binary":     "binary",
	"varbinary":  "binary",
	"tinyblob":   "binary",
	"blob":       "binary",
	"mediumblob": "binary",
	"longblob":   "binary",
	"bytea":      "binary",
	"raw":        "binary",

	// structured
	"enum":  "enum",
	"set":   "set",
	"json":  "json",
	"jsonb": "jsonb",
}
