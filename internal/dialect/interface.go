package dialect

// Dialect abstracts the engine-specific side of schema introspection.
//
// ColumnsQuery and ForeignKeysQuery are bound with (schema, table) in that
// order. ColumnsQuery must yield, per row: column name, default, nullable
// sentinel, data type, character length, full column type, comment.
// ForeignKeysQuery must yield: constraint name, source column, referenced
// table, referenced column, delete rule, update rule.
type Dialect interface {
	Name() string

	// Metadata queries
	TablesQuery() string
	ColumnsQuery() string
	ForeignKeysQuery() string
	Placeholder(index int) string

	// Value interpretation
	NullableSentinel() string
	AutoIncrementMarker() string
	IsBoolean(dataType, columnType string) bool
	NormalizeType(sqlType string) string
	SchemaName(input string) string

	// Policy returns the behaviour constants this engine defaults to.
	Policy() Policy
}

// PrimaryMatch decides how a column name is compared with the primary key name.
type PrimaryMatch string

const (
	PrimaryExact PrimaryMatch = "exact"
	PrimaryFold  PrimaryMatch = "fold"
)

// AutoIncrement decides how auto-increment columns are detected.
type AutoIncrement string

const (
	// AutoIncrementByMarker flags columns whose default starts with the dialect marker.
	AutoIncrementByMarker AutoIncrement = "marker"
	// AutoIncrementByName flags the column named like the primary key.
	AutoIncrementByName AutoIncrement = "name"
)

// PrecisionFallback decides the params of a decimal-family column whose
// column type carries no "(p,s)".
type PrecisionFallback string

const (
	PrecisionDefaultPair PrecisionFallback = "default-pair"
	PrecisionNone        PrecisionFallback = "none"
)

// DefaultPrecision and DefaultScale are used by PrecisionDefaultPair.
const (
	DefaultPrecision = 30
	DefaultScale     = 10
)

// PrimaryKeyName is the column name the target ORM treats as the primary key.
const PrimaryKeyName = "id"

// Policy groups the behaviour that differed between engines.
type Policy struct {
	PrimaryMatch      PrimaryMatch      `mapstructure:"primary_match"`
	AutoIncrement     AutoIncrement     `mapstructure:"auto_increment"`
	PrecisionFallback PrecisionFallback `mapstructure:"precision_fallback"`
}

// Merge returns p with every non-empty field of override applied.
func (p Policy) Merge(override Policy) Policy {
	if override.PrimaryMatch != "" {
		p.PrimaryMatch = override.PrimaryMatch
	}
	if override.AutoIncrement != "" {
		p.AutoIncrement = override.AutoIncrement
	}
	if override.PrecisionFallback != "" {
		p.PrecisionFallback = override.PrecisionFallback
	}
	return p
}

// Validate rejects unknown policy values.
func (p Policy) Validate() error {
	switch p.PrimaryMatch {
	case PrimaryExact, PrimaryFold:
	default:
		return &PolicyError{Field: "primary_match", Value: string(p.PrimaryMatch)}
	}
	switch p.AutoIncrement {
	case AutoIncrementByMarker, AutoIncrementByName:
	default:
		return &PolicyError{Field: "auto_increment", Value: string(p.AutoIncrement)}
	}
	switch p.PrecisionFallback {
	case PrecisionDefaultPair, PrecisionNone:
	default:
		return &PolicyError{Field: "precision_fallback", Value: string(p.PrecisionFallback)}
	}
	return nil
}

// PolicyError reports an unknown policy value.
type PolicyError struct {
	Field string
	Value string
}

func (e *PolicyError) Error() string {
	return "unknown " + e.Field + " policy " + `"` + e.Value + `"`
}
