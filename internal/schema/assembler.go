package schema

import (
	"context"
	"errors"
	"strings"

	"db-fieldgen/internal/database"
	"db-fieldgen/internal/dialect"
	"db-fieldgen/internal/errs"
	"db-fieldgen/internal/logger"
)

// DefaultLargeObjectThreshold is the declared length above which a column is
// kept out of automatic indexing.
const DefaultLargeObjectThreshold = 255

// DefaultLargeObjectTypes are never indexed automatically.
var DefaultLargeObjectTypes = []string{
	"varbinary",
	"tinyblob", "blob", "mediumblob", "longblob",
	"tinytext", "text", "mediumtext", "longtext",
}

// DefaultBooleanOptions labels the two values of a boolean column.
var DefaultBooleanOptions = []Option{
	{Value: "0", Label: "No"},
	{Value: "1", Label: "Yes"},
}

// Options is the explicit configuration of an Assembler.
type Options struct {
	// TypeMap maps normalized native types to ORM column methods.
	TypeMap map[string]string
	// IgnoreForeignConstraints lists, per table, columns never resolved to a foreign key.
	IgnoreForeignConstraints map[string][]string
	Languages                []string
	BooleanOptions           []Option
	LargeObjectThreshold     int
	LargeObjectTypes         []string
	// CollectUnmapped keeps going past unmapped types and reports all of them.
	CollectUnmapped bool
	// Policy overrides the dialect defaults; empty fields keep them.
	Policy dialect.Policy
}

// DefaultOptions returns Options with everything but TypeMap filled in.
func DefaultOptions() Options {
	return Options{
		BooleanOptions:       DefaultBooleanOptions,
		LargeObjectThreshold: DefaultLargeObjectThreshold,
		LargeObjectTypes:     DefaultLargeObjectTypes,
	}
}

// Assembler builds field descriptors for tables of one database.
// Its constraint cache lives as long as the Assembler; it is not safe for
// concurrent use.
type Assembler struct {
	q           database.Querier
	d           dialect.Dialect
	opts        Options
	policy      dialect.Policy
	types       *TypeMapper
	constraints *ConstraintExtractor
	lobTypes    map[string]bool
}

func NewAssembler(q database.Querier, d dialect.Dialect, opts Options) (*Assembler, error) {
	policy := d.Policy().Merge(opts.Policy)
	if err := policy.Validate(); err != nil {
		return nil, errs.Wrap(errs.KindInvalidInput, "invalid generator policy", err)
	}

	if opts.BooleanOptions == nil {
		opts.BooleanOptions = DefaultBooleanOptions
	}
	if opts.LargeObjectThreshold <= 0 {
		opts.LargeObjectThreshold = DefaultLargeObjectThreshold
	}
	if opts.LargeObjectTypes == nil {
		opts.LargeObjectTypes = DefaultLargeObjectTypes
	}

	lob := make(map[string]bool, len(opts.LargeObjectTypes))
	for _, t := range opts.LargeObjectTypes {
		lob[normalizeKey(t)] = true
	}

	return &Assembler{
		q:           q,
		d:           d,
		opts:        opts,
		policy:      policy,
		types:       NewTypeMapper(opts.TypeMap),
		constraints: NewConstraintExtractor(q, d),
		lobTypes:    lob,
	}, nil
}

// Policy returns the effective policy after configuration overrides.
func (a *Assembler) Policy() dialect.Policy {
	return a.policy
}

// Fields returns one descriptor per column of schemaName.table, in column order.
func (a *Assembler) Fields(ctx context.Context, schemaName, table string) ([]FieldDescriptor, error) {
	if table == "" {
		return nil, errs.New(errs.KindInvalidInput, "table name is required")
	}
	schemaName = a.d.SchemaName(schemaName)
	log := logger.FromContext(ctx).With().Str("schema", schemaName).Str("table", table).Logger()

	cols, err := Columns(ctx, a.q, a.d, schemaName, table)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		log.Warnf("no columns found for %s.%s", schemaName, table)
		return []FieldDescriptor{}, nil
	}

	ignored := a.ignoredColumns(table)
	fields := make([]FieldDescriptor, 0, len(cols))
	var unmapped []*errs.UnmappedTypeError

	for _, col := range cols {
		f, err := a.field(ctx, schemaName, table, col, ignored)
		if err != nil {
			var u *errs.UnmappedTypeError
			if a.opts.CollectUnmapped && errors.As(err, &u) {
				unmapped = append(unmapped, u)
				continue
			}
			return nil, err
		}
		fields = append(fields, f)
	}

	if len(unmapped) > 0 {
		return nil, &errs.UnmappedTypesError{Errors: unmapped}
	}

	log.Debugf("assembled %d fields", len(fields))
	return fields, nil
}

// TableConstraints exposes the cached foreign keys of a table.
func (a *Assembler) TableConstraints(ctx context.Context, schemaName, table string) ([]ForeignConstraint, error) {
	return a.constraints.Constraints(ctx, a.d.SchemaName(schemaName), table)
}

func (a *Assembler) field(ctx context.Context, schemaName, table string, col ColumnMetadata, ignored map[string]bool) (FieldDescriptor, error) {
	dataType := a.d.NormalizeType(col.DataType)

	mapped, err := a.types.Map(dataType)
	if err != nil {
		var u *errs.UnmappedTypeError
		if errors.As(err, &u) {
			u.Table, u.Column = table, col.Name
		}
		return FieldDescriptor{}, err
	}

	isPrimary := a.isPrimary(col.Name)
	isBoolean := a.d.IsBoolean(dataType, col.ColumnType)

	options := []Option{}
	isEnum := false
	if isBoolean {
		options = localizeOptions(a.opts.BooleanOptions, a.opts.Languages)
	} else if values, ok := EnumValues(col.ColumnType); ok {
		options = enumOptions(values, a.opts.Languages)
		isEnum = true
	}

	label := Label(col.Name)
	f := FieldDescriptor{
		Name:            col.Name,
		Label:           label,
		Labels:          a.labels(label),
		LocaleGroup:     LocaleGroup(table),
		IsNullable:      strings.EqualFold(col.Nullable, a.d.NullableSentinel()),
		DataValue:       col.Default,
		DataType:        mapped,
		DataTypeParams:  ResolvePrecision(col.Length, dataType, col.ColumnType, a.policy.PrecisionFallback),
		IsPrimary:       isPrimary,
		IsUnique:        isPrimary,
		IsAutoIncrement: a.isAutoIncrement(col, isPrimary),
		IsOnIndex:       !a.isLargeObject(col.Length, dataType),
		Options:         options,
		IsUnsigned:      strings.Contains(strings.ToLower(col.ColumnType), "unsigned"),
		HTMLType:        htmlType(dataType, isBoolean, isEnum, Meaning(col.Name, col.Comment)),
	}
	if col.Comment != "" {
		comment := col.Comment
		f.Comment = &comment
	}

	if ignored[col.Name] {
		return f, nil
	}
	f.IsForeignRelation = true
	fc, err := a.constraints.Lookup(ctx, schemaName, table, col.Name)
	if err != nil {
		return FieldDescriptor{}, err
	}
	f.ForeignConstraint = fc
	return f, nil
}

func (a *Assembler) isPrimary(name string) bool {
	if a.policy.PrimaryMatch == dialect.PrimaryFold {
		return strings.EqualFold(name, dialect.PrimaryKeyName)
	}
	return name == dialect.PrimaryKeyName
}

func (a *Assembler) isAutoIncrement(col ColumnMetadata, isPrimary bool) bool {
	if a.policy.AutoIncrement == dialect.AutoIncrementByName {
		return isPrimary
	}
	marker := a.d.AutoIncrementMarker()
	if marker == "" || col.Default == nil {
		return false
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(*col.Default)), strings.ToLower(marker))
}

func (a *Assembler) isLargeObject(length int, dataType string) bool {
	return length > a.opts.LargeObjectThreshold || a.lobTypes[dataType]
}

func (a *Assembler) labels(label string) map[string]string {
	labels := make(map[string]string, len(a.opts.Languages))
	for _, lang := range a.opts.Languages {
		labels[lang] = label
	}
	return labels
}

// ignoredColumns matches column names exactly, as configured. Table keys
// are also tried lower-cased since viper lower-cases map keys.
func (a *Assembler) ignoredColumns(table string) map[string]bool {
	cols, ok := a.opts.IgnoreForeignConstraints[table]
	if !ok {
		cols = a.opts.IgnoreForeignConstraints[strings.ToLower(table)]
	}
	ignored := make(map[string]bool, len(cols))
	for _, c := range cols {
		ignored[c] = true
	}
	return ignored
}
