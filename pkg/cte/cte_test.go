package cte

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

func names(p *Plan) []string {
	out := make([]string, len(p.CTEs))
	for i, c := range p.CTEs {
		out[i] = c.Name
	}
	return out
}

func TestResolve_NoCTEs(t *testing.T) {
	tbl := core.NewTable("t", core.NewColumn("id", sqltypes.Integer{}))
	p, err := Resolve(core.NewSelect(tbl.C("id")))
	require.NoError(t, err)
	assert.True(t, p.Empty())
	assert.False(t, p.Recursive)
}

func TestResolve_ConflictingNames(t *testing.T) {
	c1 := core.NewSelect(core.Literal(1)).CTE("cte1")
	c2 := core.NewSelect(core.Literal(1)).CTE("cte1")
	stmt := core.NewSelect(c1.C("anon_1"), c2.C("anon_1"))

	_, err := Resolve(stmt)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "cte1", cerr.Name)
	assert.Contains(t, err.Error(), "cte1")
}

func TestResolve_DependencyOrder(t *testing.T) {
	orders := core.NewTable("orders",
		core.NewColumn("id", sqltypes.Integer{}),
		core.NewColumn("region", sqltypes.Text{}),
	)
	a := core.NewSelect(orders.C("id"), orders.C("region")).CTE("a")
	b := core.NewSelect(a.C("region")).CTE("b")

	// b is attached first; a must still be emitted before it.
	stmt := core.NewSelect(b.C("region"))
	stmt.CTEs = []*core.CTE{b}

	p, err := Resolve(stmt)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names(p))
}

func TestResolve_AttachedFirst(t *testing.T) {
	x := core.NewSelect(core.Literal(1)).CTE("x")
	y := core.NewSelect(core.Literal(2)).CTE("y")

	stmt := core.NewSelect(x.C("anon_1"))
	stmt.CTEs = []*core.CTE{y}

	p, err := Resolve(stmt)
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, names(p))
}

func TestResolve_ReferencedOnce(t *testing.T) {
	tbl := core.NewTable("t", core.NewColumn("id", sqltypes.Integer{}))
	c := core.NewSelect(tbl.C("id")).CTE("c")
	a1 := c.Alias("c1")
	a2 := c.Alias("c2")

	stmt := core.NewSelect(a1.C("id"), a2.C("id"))
	stmt.Where = core.Eq(a1.C("id"), a2.C("id"))

	p, err := Resolve(stmt)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, names(p))
}

func TestResolve_Recursive(t *testing.T) {
	nodes := core.NewTable("nodes",
		core.NewColumn("id", sqltypes.Integer{}),
		core.NewColumn("parent_id", sqltypes.Integer{}),
	)
	anchor := core.NewRecursiveCTE(
		&core.Select{Columns: []core.Expr{nodes.C("id")}, Where: core.Eq(nodes.C("parent_id"), nil)},
		"tree",
	)
	step := core.NewSelect(nodes.C("id"))
	step.Where = core.Eq(nodes.C("parent_id"), anchor.C("id"))
	tree := anchor.UnionAll(step)

	p, err := Resolve(core.NewSelect(tree.C("id")))
	require.NoError(t, err)
	require.Len(t, p.CTEs, 1)
	assert.Same(t, tree, p.CTEs[0], "the restating CTE replaces its anchor")
	assert.True(t, p.Recursive)
}

func TestResolve_NestedCTEHoisted(t *testing.T) {
	inner := core.NewSelect(core.Literal(1)).CTE("inner_cte")
	sub := core.NewSelect(inner.C("anon_1"))
	sub.CTEs = []*core.CTE{inner}
	alias := sub.Subquery("s")

	p, err := Resolve(core.NewSelect(alias.C("anon_1")))
	require.NoError(t, err)
	assert.Equal(t, []string{"inner_cte"}, names(p))
}

func TestResolve_DML(t *testing.T) {
	users := core.NewTable("users", core.NewColumn("id", sqltypes.Integer{}))
	stale := core.NewSelect(users.C("id")).CTE("stale")

	del := &core.Delete{
		Table: users,
		Where: &core.In{Expr: users.C("id"), Query: core.NewSelect(stale.C("id"))},
	}

	p, err := Resolve(del)
	require.NoError(t, err)
	assert.Equal(t, []string{"stale"}, names(p))
}

func TestResolve_Cycle(t *testing.T) {
	// Two CTEs that reference each other can only be built by patching
	// the second body after the fact.
	a := core.NewSelect(core.Literal(1)).CTE("a")
	b := core.NewSelect(a.C("anon_1")).CTE("b")
	a.Query.(*core.Select).Where = core.Eq(b.C("anon_1"), 1)

	_, err := Resolve(core.NewSelect(b.C("anon_1")))
	var cerr *CycleError
	require.True(t, errors.As(err, &cerr), "expected CycleError, got %v", err)
	assert.Contains(t, cerr.Names, "a")
	assert.Contains(t, cerr.Names, "b")
}
