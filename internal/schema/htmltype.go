package schema

// HTML input hints understood by the templates.
const (
	HTMLText     = "text"
	HTMLTextarea = "textarea"
	HTMLNumber   = "number"
	HTMLSelect   = "select"
	HTMLCheckbox = "checkbox"
	HTMLDate     = "date"
	HTMLTime     = "time"
	HTMLDatetime = "datetime"
	HTMLFile     = "file"
	HTMLEmail    = "email"
	HTMLPassword = "password"
	HTMLTel      = "tel"
	HTMLURL      = "url"
)

// htmlType picks the input widget for a normalized data type.
func htmlType(dataType string, isBoolean, isEnum bool, meaning string) string {
	if isBoolean {
		return HTMLCheckbox
	}
	if isEnum {
		return HTMLSelect
	}

	switch dataType {
	case "bool", "boolean", "bit":
		return HTMLCheckbox
	case "tinytext", "text", "mediumtext", "longtext", "json", "jsonb", "xml":
		return HTMLTextarea
	case "tinyint", "smallint", "mediumint", "int", "integer", "bigint",
		"decimal", "numeric", "float", "double", "real", "money":
		return HTMLNumber
	case "date":
		return HTMLDate
	case "time", "timetz":
		return HTMLTime
	case "datetime", "datetimetz", "timestamp", "timestamptz":
		return HTMLDatetime
	case "binary", "varbinary", "tinyblob", "blob", "mediumblob", "longblob", "bytea":
		return HTMLFile
	}

	switch meaning {
	case "email":
		return HTMLEmail
	case "password":
		return HTMLPassword
	case "phone":
		return HTMLTel
	case "url":
		return HTMLURL
	}
	return HTMLText
}
