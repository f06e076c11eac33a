package ddl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlcompiler/pkg/compiler"
	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/ddl"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

func fk(name string, from *core.Table, col string, to *core.Table) *core.ForeignKeyConstraint {
	c := core.NewForeignKey(name, []*core.Column{from.C(col)}, []*core.Column{to.C("id")})
	from.AddConstraint(c)
	return c
}

func table(name string, cols ...string) *core.Table {
	all := []*core.Column{core.NewColumn("id", sqltypes.Integer{}, core.PrimaryKey())}
	for _, c := range cols {
		all = append(all, core.NewColumn(c, sqltypes.Integer{}))
	}
	return core.NewTable(name, all...)
}

func names(tables []*core.Table) []string {
	out := make([]string, len(tables))
	for i, t := range tables {
		out[i] = t.Name
	}
	return out
}

func TestAnalyzeOrdersByForeignKeys(t *testing.T) {
	items := table("items", "order_id", "product_id")
	orders := table("orders", "customer_id")
	customers := table("customers")
	products := table("products")
	fk("fk_items_order", items, "order_id", orders)
	fk("fk_items_product", items, "product_id", products)
	fk("fk_orders_customer", orders, "customer_id", customers)

	plan, err := ddl.Analyze(items, orders, customers, products)
	require.NoError(t, err)
	assert.Equal(t, []string{"customers", "orders", "products", "items"}, names(plan.Tables))
	assert.Empty(t, plan.External)
}

func TestAnalyzeIgnoresOutsideAndSelfReferences(t *testing.T) {
	employees := table("employees", "manager_id", "dept_id")
	depts := table("depts")
	fk("fk_manager", employees, "manager_id", employees)
	fk("fk_dept", employees, "dept_id", depts)

	plan, err := ddl.Analyze(employees)
	require.NoError(t, err)
	assert.Equal(t, []string{"employees"}, names(plan.Tables))
	assert.Empty(t, plan.External)
}

func TestAnalyzeBreaksCycles(t *testing.T) {
	a := table("a", "b_id")
	b := table("b", "a_id")
	c := table("c", "a_id")
	ab := fk("fk_a_b", a, "b_id", b)
	ba := fk("fk_b_a", b, "a_id", a)
	fk("fk_c_a", c, "a_id", a)

	plan, err := ddl.Analyze(c, a, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, names(plan.Tables))
	assert.ElementsMatch(t, []*core.ForeignKeyConstraint{ab, ba}, plan.External)
}

func TestAnalyzeDuplicateNames(t *testing.T) {
	_, err := ddl.Analyze(table("t"), table("t"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate table name "t"`)

	same := table("t")
	plan, err := ddl.Analyze(same, same)
	require.NoError(t, err)
	assert.Len(t, plan.Tables, 1)
}

func TestCreateAll(t *testing.T) {
	parents := table("parents", "child_id")
	children := table("children", "parent_id")
	fk("fk_children_parent", children, "parent_id", parents)
	late := fk("fk_parents_child", parents, "child_id", children)
	late.UseAlter = true
	children.AddIndex(core.NewIndex("ix_children_parent", children.C("parent_id")))

	batch, err := ddl.CreateAllWith(ddl.Options{IfNotExists: true}, children, parents)
	require.NoError(t, err)

	out, err := compiler.New(postgres.Postgres, compiler.Options{}).CompileBatch(batch)
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS parents (\n\tid INTEGER NOT NULL,\n\tchild_id INTEGER,\n\tPRIMARY KEY (id)\n)", out[0].SQL)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS children (\n\tid INTEGER NOT NULL,\n\tparent_id INTEGER,\n\tPRIMARY KEY (id),\n\t"+
		"CONSTRAINT fk_children_parent FOREIGN KEY (parent_id) REFERENCES parents (id)\n)", out[1].SQL)
	assert.Equal(t, "CREATE INDEX IF NOT EXISTS ix_children_parent ON children (parent_id)", out[2].SQL)
	assert.Equal(t, "ALTER TABLE parents ADD CONSTRAINT fk_parents_child FOREIGN KEY (child_id) REFERENCES children (id)", out[3].SQL)
}

func TestDropAll(t *testing.T) {
	a := table("a", "b_id")
	b := table("b", "a_id")
	fk("fk_a_b", a, "b_id", b)
	fk("fk_b_a", b, "a_id", a)

	batch, err := ddl.DropAllWith(ddl.Options{IfExists: true}, a, b)
	require.NoError(t, err)

	out, err := compiler.New(postgres.Postgres, compiler.Options{}).CompileBatch(batch)
	require.NoError(t, err)
	var sql []string
	for _, c := range out {
		sql = append(sql, c.SQL)
	}
	assert.Equal(t, []string{
		"ALTER TABLE a DROP CONSTRAINT fk_a_b",
		"ALTER TABLE b DROP CONSTRAINT fk_b_a",
		"DROP TABLE IF EXISTS b",
		"DROP TABLE IF EXISTS a",
	}, sql)
}

func TestDropAllRequiresNamedExternalKeys(t *testing.T) {
	a := table("a", "b_id")
	b := table("b", "a_id")
	fk("", a, "b_id", b)
	fk("fk_b_a", b, "a_id", a)

	_, err := ddl.DropAll(a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be named")
}
