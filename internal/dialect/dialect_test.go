package dialect_test

import (
	"strings"
	"testing"

	"db-fieldgen/internal/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDialect(t *testing.T) {
	tests := []struct {
		driver string
		name   string
	}{
		{"postgres", "postgres"},
		{"pgx", "postgres"},
		{"PostgreSQL", "postgres"},
		{"mysql", "mysql"},
		{"sqlserver", "sqlserver"},
		{"mssql", "sqlserver"},
		{"oracle", "oracle"},
		{"", "mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			assert.Equal(t, tt.name, dialect.GetDialect(tt.driver).Name())
		})
	}
}

func TestQueriesBindPlaceholders(t *testing.T) {
	tests := []struct {
		driver string
		first  string
		second string
	}{
		{"postgres", "$1", "$2"},
		{"sqlserver", "@p1", "@p2"},
		{"oracle", ":1", ":2"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d := dialect.GetDialect(tt.driver)
			for _, q := range []string{d.ColumnsQuery(), d.ForeignKeysQuery()} {
				assert.Contains(t, q, tt.first)
				assert.Contains(t, q, tt.second)
				assert.NotContains(t, q, "%!")
			}
			assert.Contains(t, d.TablesQuery(), tt.first)
			assert.NotContains(t, d.TablesQuery(), "%!")
		})
	}

	my := dialect.GetDialect("mysql")
	assert.Equal(t, 2, strings.Count(my.ColumnsQuery(), "?"))
	assert.Equal(t, 2, strings.Count(my.ForeignKeysQuery(), "?"))
	assert.Equal(t, 1, strings.Count(my.TablesQuery(), "?"))
}

func TestColumnsQueryOrdersByPosition(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlserver", "oracle"} {
		q := strings.ToUpper(dialect.GetDialect(driver).ColumnsQuery())
		assert.True(t, strings.Contains(q, "ORDINAL_POSITION") || strings.Contains(q, "COLUMN_ID"), driver)
	}
}

func TestIsBoolean(t *testing.T) {
	tests := []struct {
		driver     string
		dataType   string
		columnType string
		want       bool
	}{
		{"mysql", "tinyint", "tinyint(1)", true},
		{"mysql", "tinyint", "tinyint(4)", false},
		{"mysql", "bit", "bit(1)", true},
		{"mysql", "bit", "bit(8)", false},
		{"postgres", "boolean", "boolean", true},
		{"postgres", "smallint", "smallint", false},
		{"sqlserver", "bit", "bit", true},
		{"oracle", "integer", "number(1,0)", true},
		{"oracle", "integer", "number(10,0)", false},
	}

	for _, tt := range tests {
		t.Run(tt.driver+"/"+tt.columnType, func(t *testing.T) {
			assert.Equal(t, tt.want, dialect.GetDialect(tt.driver).IsBoolean(tt.dataType, tt.columnType))
		})
	}
}

func TestNormalizeType(t *testing.T) {
	pg := dialect.GetDialect("postgres")
	assert.Equal(t, "varchar", pg.NormalizeType("character varying"))
	assert.Equal(t, "timestamptz", pg.NormalizeType("timestamp with time zone"))
	assert.Equal(t, "double", pg.NormalizeType("double precision"))
	assert.Equal(t, "numeric", pg.NormalizeType(" NUMERIC "))

	ms := dialect.GetDialect("sqlserver")
	assert.Equal(t, "varchar", ms.NormalizeType("nvarchar"))
	assert.Equal(t, "bit", ms.NormalizeType("bit"))

	ora := dialect.GetDialect("oracle")
	assert.Equal(t, "varchar", ora.NormalizeType("VARCHAR2"))
	assert.Equal(t, "timestamp", ora.NormalizeType("timestamp(6)"))
	assert.Equal(t, "timestamptz", ora.NormalizeType("timestamp(6) with time zone"))
}

func TestSchemaName(t *testing.T) {
	assert.Equal(t, "public", dialect.GetDialect("postgres").SchemaName(""))
	assert.Equal(t, "dbo", dialect.GetDialect("sqlserver").SchemaName(""))
	assert.Equal(t, "HR", dialect.GetDialect("oracle").SchemaName("hr"))
	assert.Equal(t, "shop", dialect.GetDialect("mysql").SchemaName("shop"))
}

func TestPolicyDefaultsAreValid(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlserver", "oracle"} {
		require.NoError(t, dialect.GetDialect(driver).Policy().Validate(), driver)
	}

	pg := dialect.GetDialect("postgres").Policy()
	assert.Equal(t, dialect.PrimaryExact, pg.PrimaryMatch)
	assert.Equal(t, dialect.AutoIncrementByMarker, pg.AutoIncrement)
	assert.Equal(t, dialect.PrecisionDefaultPair, pg.PrecisionFallback)

	my := dialect.GetDialect("mysql").Policy()
	assert.Equal(t, dialect.AutoIncrementByName, my.AutoIncrement)
	assert.Equal(t, dialect.PrecisionNone, my.PrecisionFallback)
}

func TestPolicyMerge(t *testing.T) {
	base := dialect.GetDialect("postgres").Policy()
	merged := base.Merge(dialect.Policy{AutoIncrement: dialect.AutoIncrementByName})

	assert.Equal(t, dialect.AutoIncrementByName, merged.AutoIncrement)
	assert.Equal(t, base.PrimaryMatch, merged.PrimaryMatch)
	assert.Equal(t, base.PrecisionFallback, merged.PrecisionFallback)
}

func TestPolicyValidate(t *testing.T) {
	p := dialect.GetDialect("mysql").Policy()
	p.PrecisionFallback = "guess"

	var perr *dialect.PolicyError
	require.ErrorAs(t, p.Validate(), &perr)
	assert.Equal(t, "precision_fallback", perr.Field)
}
