package schema

import (
	"context"
	"testing"

	"db-fieldgen/internal/dialect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(tables []TableDeps) []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = t.Name
	}
	return out
}

func TestOrderByDependencies_Simple(t *testing.T) {
	// users <- orders <- order_items
	tables := []TableDeps{
		{Name: "order_items", Dependencies: []string{"orders"}},
		{Name: "orders", Dependencies: []string{"users"}},
		{Name: "users", Dependencies: []string{}},
	}

	sorted, broken := OrderByDependencies(tables)

	assert.Equal(t, []string{"users", "orders", "order_items"}, names(sorted))
	assert.Empty(t, broken)
}

func TestOrderByDependencies_ComplexCircular(t *testing.T) {
	// a -> b -> c -> d -> e -> a (cycle), f -> e, g independent
	tables := []TableDeps{
		{Name: "a", Dependencies: []string{"b"}},
		{Name: "b", Dependencies: []string{"c"}},
		{Name: "c", Dependencies: []string{"d"}},
		{Name: "d", Dependencies: []string{"e"}},
		{Name: "e", Dependencies: []string{"a"}},
		{Name: "f", Dependencies: []string{"e"}},
		{Name: "g", Dependencies: []string{}},
	}

	sorted, broken := OrderByDependencies(tables)

	require.Len(t, sorted, len(tables))
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e", "f", "g"}, names(sorted))
	assert.Equal(t, "g", sorted[0].Name)
	assert.Len(t, broken, 1, "one break resolves a single cycle")

	pos := make(map[string]int)
	for i, n := range names(sorted) {
		pos[n] = i
	}
	assert.Less(t, pos["e"], pos["f"])
}

func TestOrderByDependencies_MutualReference(t *testing.T) {
	// employees <-> departments, projects -> departments
	tables := []TableDeps{
		{Name: "projects", Dependencies: []string{"departments"}},
		{Name: "employees", Dependencies: []string{"departments"}},
		{Name: "departments", Dependencies: []string{"employees"}},
	}

	sorted, broken := OrderByDependencies(tables)

	assert.Equal(t, []string{"departments"}, broken)
	assert.Equal(t, []string{"departments", "projects", "employees"}, names(sorted))
}

func TestTableDependencies(t *testing.T) {
	db := newFakeDB(dialect.GetDialect("mysql"))
	db.fks["Orders"] = [][]any{
		fk("fk_customer", "customer_id", "Customers", "id", nil, nil),
		fk("fk_customer_alt", "billing_customer_id", "customers", "id", nil, nil),
		fk("fk_parent", "parent_id", "orders", "id", nil, nil),
		fk("fk_external", "region_id", "regions", "id", nil, nil),
	}
	a := newTestAssembler(t, db, Options{})

	deps, err := a.TableDependencies(context.Background(), "shop", []string{"Customers", "Orders"})
	require.NoError(t, err)

	assert.Equal(t, []TableDeps{
		{Name: "Customers", Dependencies: []string{}},
		{Name: "Orders", Dependencies: []string{"Customers"}},
	}, deps)

	// cached for later Fields calls
	_, err = a.TableConstraints(context.Background(), "shop", "Orders")
	require.NoError(t, err)
	assert.Equal(t, 1, db.fkCalls["Orders"])
}

func TestOrderByDependencies_DuplicateNames(t *testing.T) {
	tables := []TableDeps{
		{Name: "orders", Dependencies: []string{"customers"}},
		{Name: "customers", Dependencies: []string{}},
		{Name: "orders", Dependencies: []string{"customers"}},
	}

	var sorted []TableDeps
	var broken []string
	require.NotPanics(t, func() {
		sorted, broken = OrderByDependencies(tables)
	})

	assert.Equal(t, "customers", sorted[0].Name)
	assert.Contains(t, names(sorted), "orders")
	assert.Empty(t, broken)
}
