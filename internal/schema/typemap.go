package schema

import (
	"strings"

	"db-fieldgen/internal/errs"
)

// TypeMapper translates native type names into the ORM's column method names.
type TypeMapper struct {
	types map[string]string
}

// NewTypeMapper copies m, lower-casing and trimming its keys.
func NewTypeMapper(m map[string]string) *TypeMapper {
	types := make(map[string]string, len(m))
	for k, v := range m {
		types[normalizeKey(k)] = v
	}
	return &TypeMapper{types: types}
}

// Map returns the mapped type, or an *errs.UnmappedTypeError carrying raw.
func (m *TypeMapper) Map(raw string) (string, error) {
	if v, ok := m.types[normalizeKey(raw)]; ok {
		return v, nil
	}
	return "", &errs.UnmappedTypeError{Type: raw}
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
