package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
	"github.com/leapstack-labs/sqlcompiler/pkg/token"
)

func usersTable() *Table {
	return NewTable("users",
		NewColumn("id", sqltypes.Integer{}, PrimaryKey()),
		NewColumn("name", sqltypes.String{Length: 50}),
	)
}

func TestNewTableOwnsColumns(t *testing.T) {
	users := usersTable()
	require.NotNil(t, users.C("id"))
	assert.Same(t, users, users.C("id").Table)
	assert.Nil(t, users.C("missing"))
	assert.Equal(t, []*Column{users.C("id")}, users.PrimaryKeyColumns())

	users.Schema = "app"
	assert.Equal(t, "app.users", users.FullName())
}

func TestSelectLabels(t *testing.T) {
	a := NewTable("a", NewColumn("id", sqltypes.Integer{}))
	b := NewTable("b", NewColumn("id", sqltypes.Integer{}))

	tests := []struct {
		name      string
		cols      []Expr
		useLabels bool
		want      []string
	}{
		{
			name:      "table qualified with use labels",
			cols:      []Expr{a.C("id"), b.C("id")},
			useLabels: true,
			want:      []string{"a_id", "b_id"},
		},
		{
			name: "bare names de-duplicated",
			cols: []Expr{a.C("id"), b.C("id")},
			want: []string{"id", "id_1"},
		},
		{
			name: "explicit label claims its name first",
			cols: []Expr{a.C("id"), As(b.C("id"), "id")},
			want: []string{"id_1", "id"},
		},
		{
			name: "functions and anonymous labels",
			cols: []Expr{Count(nil), Count(a.C("id")), As(Literal(1), "")},
			want: []string{"count_1", "count_2", "anon_1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Select{Columns: tt.cols, UseLabels: tt.useLabels}
			var got []string
			for _, l := range s.Labels() {
				got = append(got, l.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSameTableAliasedTwiceGetsSuffix(t *testing.T) {
	users := usersTable()
	first := NewAlias(users, "u")
	second := NewAlias(users, "u")

	s := &Select{Columns: []Expr{first.C("id"), second.C("id")}, UseLabels: true}
	labels := s.Labels()
	assert.Equal(t, "u_id", labels[0].Name)
	assert.Equal(t, "u_id_1", labels[1].Name)
}

func TestAliasProxiesKeepIdentity(t *testing.T) {
	users := usersTable()
	sub := NewSelect(users.C("id"), As(users.C("name"), "username")).Subquery("s")

	id := sub.C("id")
	require.NotNil(t, id)
	assert.Same(t, sub, id.Table)
	assert.Same(t, users.C("id"), id.Origin())
	assert.Same(t, users.C("name"), sub.C("username").Origin())
	assert.True(t, id.SharesLineage(users.C("id")))

	// Proxies are built once.
	assert.Same(t, id, sub.C("id"))
}

func TestExportedConcurrent(t *testing.T) {
	users := usersTable()
	alias := NewAlias(users, "u")

	var wg sync.WaitGroup
	got := make([]*Column, 50)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = alias.C("name")
		}(i)
	}
	wg.Wait()
	for _, c := range got {
		assert.Same(t, got[0], c)
	}
}

func TestCTEUnionAllRestates(t *testing.T) {
	nodes := NewTable("nodes",
		NewColumn("id", sqltypes.Integer{}),
		NewColumn("parent_id", sqltypes.Integer{}),
	)
	anchor := NewRecursiveCTE(NewSelect(nodes.C("id")), "tree")
	step := &Select{
		Columns: []Expr{nodes.C("id")},
		From:    []Selectable{NewJoin(nodes, anchor, Eq(nodes.C("parent_id"), anchor.C("id")))},
	}
	tree := anchor.UnionAll(step)

	assert.Equal(t, "tree", tree.Name)
	assert.True(t, tree.Recursive)
	assert.Same(t, anchor, tree.Restates)
	assert.Same(t, anchor, tree.Root())
	assert.True(t, tree.SameDefinition(anchor))
	assert.False(t, tree.SameDefinition(NewCTE(NewSelect(nodes.C("id")), "tree")))
	assert.Same(t, nodes.C("id"), tree.C("id").Origin())
}

func TestJoinColumns(t *testing.T) {
	a := NewTable("a", NewColumn("id", sqltypes.Integer{}))
	b := NewTable("b", NewColumn("id", sqltypes.Integer{}), NewColumn("a_id", sqltypes.Integer{}))
	j := NewJoin(a, b, Eq(a.C("id"), b.C("a_id")))

	assert.Len(t, j.Exported(), 3)
	assert.Same(t, b.C("id"), j.C("b_id"))
	assert.Same(t, a.C("id"), j.C("id"))
	assert.True(t, Covers(j, b))
	assert.False(t, Covers(j, NewAlias(b, "bb")))
	assert.Equal(t, []Selectable{a, b}, FromLeaves(j))
}

func TestCompareHelpers(t *testing.T) {
	users := usersTable()

	eq := Eq(users.C("id"), 5).(*BinaryExpr)
	bind := eq.Right.(*BindParam)
	assert.Equal(t, "id", bind.Key)
	assert.True(t, bind.Unique)
	assert.Equal(t, sqltypes.Integer{}, bind.Type)
	assert.Equal(t, token.EQ, eq.Op)

	isNull := Eq(users.C("name"), nil)
	assert.Equal(t, &IsNull{Expr: users.C("name")}, isNull)

	in := InValues(users.C("id"), 1, 2)
	assert.Len(t, in.Values, 2)

	assert.True(t, And().Empty())
	assert.True(t, And(Or(), And()).Empty())
	assert.False(t, And(Eq(users.C("id"), 1)).Empty())
}

func TestExprType(t *testing.T) {
	users := usersTable()
	assert.Equal(t, sqltypes.Integer{}, ExprType(users.C("id")))
	assert.Equal(t, sqltypes.Boolean{}, ExprType(Eq(users.C("id"), 1)))
	assert.Equal(t, sqltypes.Integer{}, ExprType(Count(nil)))
	assert.Equal(t, sqltypes.NullType{}, ExprType(Func("coalesce", users.C("id"))))
	assert.Equal(t, sqltypes.Integer{}, ExprType(&ScalarSubquery{Query: NewSelect(users.C("id"))}))
}

func TestTextParse(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []TextPart
	}{
		{
			name: "named binds",
			sql:  "select * from t where a = :a and b = :b_2",
			want: []TextPart{
				{SQL: "select * from t where a = "},
				{Bind: "a"},
				{SQL: " and b = "},
				{Bind: "b_2"},
			},
		},
		{
			name: "cast is not a bind",
			sql:  "select x::int, :y",
			want: []TextPart{{SQL: "select x::int, "}, {Bind: "y"}},
		},
		{
			name: "escaped colon",
			sql:  `select '\:literal'`,
			want: []TextPart{{SQL: "select ':literal'"}},
		},
		{
			name: "colon after word",
			sql:  "select a:b",
			want: []TextPart{{SQL: "select a:b"}},
		},
		{
			name: "name followed by colon",
			sql:  "select :a:",
			want: []TextPart{{SQL: "select :a:"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.sql).Parts())
		})
	}
}

func TestTextBindFor(t *testing.T) {
	txt := Text("select :a, :b", Bind("a", 1))
	assert.Equal(t, 1, txt.BindFor("a").Value)
	assert.True(t, txt.BindFor("b").Required)
}

func TestReplaceColumns(t *testing.T) {
	a := NewTable("a", NewColumn("id", sqltypes.Integer{}))
	b := NewTable("b", NewColumn("a_id", sqltypes.Integer{}))
	sub := NewAlias(b, "s")

	on := And(Eq(a.C("id"), b.C("a_id")), Gt(a.C("id"), 3))
	m := map[*Column]*Column{b.C("a_id"): sub.C("a_id")}

	got := ReplaceColumns(on, m).(*BooleanClause)
	first := got.Clauses[0].(*BinaryExpr)
	assert.Same(t, sub.C("a_id"), first.Right)
	assert.Same(t, a.C("id"), first.Left)
	// The untouched clause is shared, the original is unchanged.
	assert.Same(t, on.Clauses[1], got.Clauses[1])
	assert.Same(t, b.C("a_id"), on.Clauses[0].(*BinaryExpr).Right)

	unchanged := Eq(a.C("id"), 1)
	assert.Same(t, unchanged, ReplaceColumns(unchanged, m))
}

func TestColumnOwners(t *testing.T) {
	a := NewTable("a", NewColumn("id", sqltypes.Integer{}))
	b := NewTable("b", NewColumn("id", sqltypes.Integer{}))
	sub := NewSelect(b.C("id"))

	owners := ColumnOwners(
		Eq(a.C("id"), 1),
		&Exists{Query: sub},
		a.C("id"),
	)
	assert.Equal(t, []Selectable{a}, owners)
}

func TestWalkFindsCTEThroughColumns(t *testing.T) {
	users := usersTable()
	cte := NewSelect(users.C("id")).CTE("ids")
	stmt := NewSelect(cte.C("id"))

	var found []*CTE
	Walk(stmt, func(n Node) bool {
		if c, ok := n.(*CTE); ok {
			found = append(found, c)
			return false
		}
		return true
	})
	assert.Equal(t, []*CTE{cte}, found)
}

func TestParamStyleText(t *testing.T) {
	var p ParamStyle
	require.NoError(t, p.UnmarshalText([]byte("Dollar")))
	assert.Equal(t, ParamDollar, p)
	assert.True(t, p.Positional())
	assert.False(t, ParamNamed.Positional())
	assert.Error(t, p.UnmarshalText([]byte("bogus")))

	var n NormalizationStrategy
	require.NoError(t, n.UnmarshalText([]byte("uppercase")))
	assert.Equal(t, NormUppercase, n)
	assert.Equal(t, "uppercase", n.String())
}
