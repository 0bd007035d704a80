package dialect

import (
	"fmt"
	"strings"
)

// bindSchemaTable fills the %[1]s / %[2]s slots of query with the dialect's
// first and second placeholders.
func bindSchemaTable(query string, placeholder func(int) string) string {
	return fmt.Sprintf(query, placeholder(0), placeholder(1))
}

// bindSchema fills the %[1]s slot of query with the first placeholder.
func bindSchema(query string, placeholder func(int) string) string {
	return fmt.Sprintf(query, placeholder(0))
}

// DefaultNormalizeType lower-cases and trims a type name.
func DefaultNormalizeType(sqlType string) string {
	return strings.ToLower(strings.TrimSpace(sqlType))
}

// DefaultSchemaName returns input unchanged.
func DefaultSchemaName(input string) string {
	return input
}

// isSingleBit reports whether columnType is exactly typ(1), e.g. tinyint(1) or bit(1).
func isSingleBit(columnType, typ string) bool {
	return strings.EqualFold(strings.ReplaceAll(columnType, " ", ""), typ+"(1)")
}
