package schema

import (
	"regexp"
	"strconv"
	"strings"

	"db-fieldgen/internal/dialect"
)

var precisionPattern = regexp.MustCompile(`\(\s*(\d+)\s*,\s*(\d+)\s*\)`)

var decimalFamily = map[string]bool{
	"decimal":          true,
	"numeric":          true,
	"double":           true,
	"double precision": true,
	"float":            true,
	"real":             true,
}

// ResolvePrecision returns the type parameters of a column:
//   - decimal family: [precision, scale] from columnType, else per fallback
//     ([30,10] or nil for "no parameters")
//   - positive length: [length]
//   - otherwise an empty, non-nil slice
func ResolvePrecision(length int, dataType, columnType string, fallback dialect.PrecisionFallback) []int {
	if decimalFamily[strings.ToLower(dataType)] {
		if m := precisionPattern.FindStringSubmatch(columnType); m != nil {
			precision, _ := strconv.Atoi(m[1])
			scale, _ := strconv.Atoi(m[2])
			return []int{precision, scale}
		}
		if fallback == dialect.PrecisionDefaultPair {
			return []int{dialect.DefaultPrecision, dialect.DefaultScale}
		}
		return nil
	}

	if length > 0 {
		return []int{length}
	}
	return []int{}
}
