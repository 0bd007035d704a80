package schema

import (
	"context"
	"errors"
	"testing"

	"db-fieldgen/internal/dialect"
	"db-fieldgen/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTypeMap = map[string]string{
	"integer": "integer",
	"int":     "integer",
	"bigint":  "bigInteger",
	"numeric": "decimal",
	"decimal": "decimal",
	"double":  "double",
	"enum":    "enum",
	"text":    "text",
	"varchar": "string",
	"tinyint": "tinyInteger",
}

func ordersDB() *fakeDB {
	db := newFakeDB(dialect.GetDialect("postgres"))
	db.columns["orders"] = [][]any{
		col("id", "nextval('orders_id_seq'::regclass)", "NO", "integer", nil, "integer", nil),
		col("customer_id", nil, "NO", "bigint", nil, "bigint", nil),
		col("total", nil, "YES", "numeric", nil, "numeric(10,2)", "Order total"),
		col("status", "'new'::order_status", "NO", "enum", nil, "enum('new','paid','shipped')", nil),
		col("notes", nil, "YES", "text", nil, "text", nil),
		col("email", nil, "yes", "character varying", int64(255), "character varying(255)", nil),
	}
	db.fks["orders"] = [][]any{
		fk("fk_orders_customer", "customer_id", "customers", "id", "CASCADE", nil),
	}
	return db
}

func newTestAssembler(t *testing.T, db *fakeDB, opts Options) *Assembler {
	t.Helper()
	if opts.TypeMap == nil {
		opts.TypeMap = testTypeMap
	}
	a, err := NewAssembler(db, db.d, opts)
	require.NoError(t, err)
	return a
}

func byName(fields []FieldDescriptor) map[string]FieldDescriptor {
	out := make(map[string]FieldDescriptor, len(fields))
	for _, f := range fields {
		out[f.Name] = f
	}
	return out
}

func TestFieldsPostgresOrders(t *testing.T) {
	db := ordersDB()
	a := newTestAssembler(t, db, DefaultOptions())

	fields, err := a.Fields(context.Background(), "", "orders")
	require.NoError(t, err)
	require.Len(t, fields, 6)
	assert.Equal(t, []any{"public", "orders"}, db.lastArgs)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		assert.Equal(t, "orders", f.LocaleGroup)
		assert.Equal(t, f.IsPrimary, f.IsUnique)
	}
	assert.Equal(t, []string{"id", "customer_id", "total", "status", "notes", "email"}, names)

	got := byName(fields)

	id := got["id"]
	assert.True(t, id.IsPrimary)
	assert.True(t, id.IsAutoIncrement)
	assert.Equal(t, "integer", id.DataType)
	assert.Equal(t, []int{}, id.DataTypeParams)
	assert.Equal(t, "ID", id.Label)
	assert.False(t, id.IsNullable)
	assert.True(t, id.IsForeignRelation)
	assert.Nil(t, id.ForeignConstraint)

	customer := got["customer_id"]
	assert.False(t, customer.IsPrimary)
	assert.False(t, customer.IsAutoIncrement)
	assert.Equal(t, "bigInteger", customer.DataType)
	require.NotNil(t, customer.ForeignConstraint)
	assert.Equal(t, ForeignConstraint{
		Name:      "fk_orders_customer",
		Column:    "customer_id",
		RefTable:  "customers",
		RefColumn: "id",
		OnDelete:  "cascade",
		OnUpdate:  "no action",
	}, *customer.ForeignConstraint)

	total := got["total"]
	assert.Equal(t, "decimal", total.DataType)
	assert.Equal(t, []int{10, 2}, total.DataTypeParams)
	assert.True(t, total.IsNullable)
	require.NotNil(t, total.Comment)
	assert.Equal(t, "Order total", *total.Comment)
	assert.Equal(t, HTMLNumber, total.HTMLType)

	status := got["status"]
	assert.Equal(t, "enum", status.DataType)
	assert.Equal(t, HTMLSelect, status.HTMLType)
	assert.Equal(t, []Option{
		{Value: "new", Label: "new"},
		{Value: "paid", Label: "paid"},
		{Value: "shipped", Label: "shipped"},
	}, status.Options)
	require.NotNil(t, status.DataValue)
	assert.Equal(t, "'new'::order_status", *status.DataValue)
	assert.Nil(t, status.Comment)

	notes := got["notes"]
	assert.False(t, notes.IsOnIndex)
	assert.Equal(t, HTMLTextarea, notes.HTMLType)
	assert.Nil(t, notes.DataValue)

	email := got["email"]
	assert.Equal(t, "string", email.DataType)
	assert.Equal(t, []int{255}, email.DataTypeParams)
	assert.True(t, email.IsNullable)
	assert.True(t, email.IsOnIndex)
	assert.Equal(t, HTMLEmail, email.HTMLType)

	// one foreign key query for the whole table
	assert.Equal(t, 1, db.fkCalls["orders"])
}

func TestFieldsMySQLDefaults(t *testing.T) {
	db := newFakeDB(dialect.GetDialect("mysql"))
	db.columns["users"] = [][]any{
		col("ID", nil, "NO", "int", nil, "int(10) unsigned", nil),
		col("active", "1", "NO", "tinyint", nil, "tinyint(1)", nil),
		col("score", nil, "YES", "double", nil, "double", nil),
		col("bio", nil, "YES", "varchar", "1000", "varchar(1000)", nil),
	}
	a := newTestAssembler(t, db, Options{Languages: []string{"en", "ko"}})

	fields, err := a.Fields(context.Background(), "shop", "users")
	require.NoError(t, err)
	got := byName(fields)

	id := got["ID"]
	assert.True(t, id.IsPrimary)
	assert.True(t, id.IsAutoIncrement)
	assert.True(t, id.IsUnsigned)
	assert.Equal(t, map[string]string{"en": "ID", "ko": "ID"}, id.Labels)

	active := got["active"]
	assert.Equal(t, HTMLCheckbox, active.HTMLType)
	require.Len(t, active.Options, 2)
	assert.Equal(t, "1", active.Options[1].Value)
	assert.Equal(t, map[string]string{"en": "Yes", "ko": "Yes"}, active.Options[1].Labels)
	assert.False(t, active.IsAutoIncrement)

	assert.Nil(t, got["score"].DataTypeParams)
	assert.False(t, got["bio"].IsOnIndex)
	assert.Equal(t, []int{1000}, got["bio"].DataTypeParams)
}

func TestFieldsIgnoredForeignConstraint(t *testing.T) {
	db := ordersDB()
	a := newTestAssembler(t, db, Options{
		IgnoreForeignConstraints: map[string][]string{"orders": {"customer_id"}},
	})

	fields, err := a.Fields(context.Background(), "public", "orders")
	require.NoError(t, err)
	customer := byName(fields)["customer_id"]
	assert.False(t, customer.IsForeignRelation)
	assert.Nil(t, customer.ForeignConstraint)
	assert.True(t, byName(fields)["total"].IsForeignRelation)
}

func TestFieldsUnmappedType(t *testing.T) {
	typeMap := map[string]string{
		"integer": "integer", "bigint": "bigInteger", "numeric": "decimal", "varchar": "string",
	}

	t.Run("fail fast", func(t *testing.T) {
		a := newTestAssembler(t, ordersDB(), Options{TypeMap: typeMap})
		_, err := a.Fields(context.Background(), "public", "orders")

		var u *errs.UnmappedTypeError
		require.True(t, errors.As(err, &u))
		assert.Equal(t, "enum", u.Type)
		assert.Equal(t, "orders", u.Table)
		assert.Equal(t, "status", u.Column)
	})

	t.Run("collect", func(t *testing.T) {
		a := newTestAssembler(t, ordersDB(), Options{TypeMap: typeMap, CollectUnmapped: true})
		fields, err := a.Fields(context.Background(), "public", "orders")
		assert.Nil(t, fields)

		var all *errs.UnmappedTypesError
		require.True(t, errors.As(err, &all))
		assert.Equal(t, []string{"enum", "text"}, all.Types())
	})
}

func TestFieldsEdgeCases(t *testing.T) {
	db := ordersDB()
	a := newTestAssembler(t, db, Options{})

	_, err := a.Fields(context.Background(), "public", "")
	assert.True(t, errs.IsInvalidInput(err))

	fields, err := a.Fields(context.Background(), "public", "missing")
	require.NoError(t, err)
	assert.NotNil(t, fields)
	assert.Empty(t, fields)

	db.err = assert.AnError
	_, err = a.Fields(context.Background(), "public", "orders")
	assert.True(t, errs.IsDataAccess(err))
}

func TestPolicyOverride(t *testing.T) {
	db := newFakeDB(dialect.GetDialect("postgres"))
	db.columns["items"] = [][]any{
		col("ID", nil, "NO", "integer", nil, "integer", nil),
		col("price", nil, "NO", "numeric", nil, "numeric", nil),
	}

	a := newTestAssembler(t, db, Options{})
	fields, err := a.Fields(context.Background(), "public", "items")
	require.NoError(t, err)
	assert.False(t, fields[0].IsPrimary)
	assert.Equal(t, []int{30, 10}, fields[1].DataTypeParams)

	a = newTestAssembler(t, db, Options{Policy: dialect.Policy{
		PrimaryMatch:      dialect.PrimaryFold,
		AutoIncrement:     dialect.AutoIncrementByName,
		PrecisionFallback: dialect.PrecisionNone,
	}})
	fields, err = a.Fields(context.Background(), "public", "items")
	require.NoError(t, err)
	assert.True(t, fields[0].IsPrimary)
	assert.True(t, fields[0].IsAutoIncrement)
	assert.Nil(t, fields[1].DataTypeParams)

	_, err = NewAssembler(db, db.d, Options{Policy: dialect.Policy{PrimaryMatch: "loose"}})
	assert.True(t, errs.IsInvalidInput(err))
}
