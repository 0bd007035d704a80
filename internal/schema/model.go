package schema

// ColumnMetadata is one row of the dialect's columns query, as read.
type ColumnMetadata struct {
	Name       string
	Default    *string // nil when the column has no default
	Nullable   string  // raw sentinel, e.g. "YES" or "Y"
	DataType   string
	Length     int
	ColumnType string // full type, e.g. "decimal(10,2)" or "enum('a','b')"
	Comment    string
}

// ForeignConstraint is a lower-cased foreign key of one column. The keys follow
// the migration call foreign(field)->references(references)->on(on).
type ForeignConstraint struct {
	Name      string `json:"name" yaml:"name"`
	Column    string `json:"field" yaml:"field"`
	RefTable  string `json:"on" yaml:"on"`
	RefColumn string `json:"references" yaml:"references"`
	OnDelete  string `json:"on-delete" yaml:"on-delete"`
	OnUpdate  string `json:"on-update" yaml:"on-update"`
}

// Option is one entry of a select/checkbox choice set.
// Labels is keyed by language and only set when languages are configured.
type Option struct {
	Value  string            `json:"value" yaml:"value" mapstructure:"value"`
	Label  string            `json:"label" yaml:"label" mapstructure:"label"`
	Labels map[string]string `json:"labels,omitempty" yaml:"labels,omitempty" mapstructure:"-"`
}

// FieldDescriptor describes one column for the code generator. Every key is
// always emitted; templates rely on their presence.
type FieldDescriptor struct {
	Name           string            `json:"name" yaml:"name"`
	Label          string            `json:"label" yaml:"label"`
	Labels         map[string]string `json:"labels" yaml:"labels"`
	LocaleGroup    string            `json:"locale-group" yaml:"locale-group"`
	IsNullable     bool              `json:"is-nullable" yaml:"is-nullable"`
	DataValue      *string           `json:"data-value" yaml:"data-value"`
	DataType       string            `json:"data-type" yaml:"data-type"`
	DataTypeParams []int             `json:"data-type-params" yaml:"data-type-params"`

	IsPrimary       bool `json:"is-primary" yaml:"is-primary"`
	IsUnique        bool `json:"is-unique" yaml:"is-unique"`
	IsAutoIncrement bool `json:"is-auto-increment" yaml:"is-auto-increment"`
	IsIndex         bool `json:"is-index" yaml:"is-index"`
	IsOnIndex       bool `json:"is-on-index" yaml:"is-on-index"` // false for large objects

	Comment    *string  `json:"comment" yaml:"comment"`
	Options    []Option `json:"options" yaml:"options"`
	IsUnsigned bool     `json:"is-unsigned" yaml:"is-unsigned"`
	HTMLType   string   `json:"html-type" yaml:"html-type"`

	// IsForeignRelation is false when the column is excluded from foreign
	// key resolution; ForeignConstraint is then always nil.
	IsForeignRelation bool               `json:"is-foreign-relation" yaml:"is-foreign-relation"`
	ForeignConstraint *ForeignConstraint `json:"foreign-constraint" yaml:"foreign-constraint"`
}

// TableDeps is a table and the tables its foreign keys reference.
type TableDeps struct {
	Name         string
	Dependencies []string
}
