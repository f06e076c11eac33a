package compiler_test

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/sqlcompiler/pkg/compiler"
	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/cte"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialects/oracle"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialects/sqlite"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

func TestLiteralBinds(t *testing.T) {
	s := newSchema()
	flags := core.NewTable("flags", core.NewColumn("active", sqltypes.Boolean{}))

	tests := []struct {
		name string
		c    *compiler.Compiler
		stmt core.Stmt
		want string
	}{
		{
			name: "quote doubling",
			c:    compiler.New(postgres.Postgres, compiler.Options{LiteralBinds: true}),
			stmt: &core.Select{Columns: []core.Expr{s.users.C("id")}, Where: core.Eq(s.users.C("name"), "O'Brien")},
			want: "SELECT users.id FROM users WHERE users.name = 'O''Brien'",
		},
		{
			name: "backslash escapes",
			c:    compiler.New(mysql.MySQL, compiler.Options{LiteralBinds: true}),
			stmt: &core.Select{Columns: []core.Expr{s.users.C("id")}, Where: core.Eq(s.users.C("name"), `a\b`)},
			want: `SELECT users.id FROM users WHERE users.name = 'a\\b'`,
		},
		{
			name: "boolean without native type",
			c:    compiler.New(sqlite.SQLite, compiler.Options{LiteralBinds: true}),
			stmt: &core.Select{Columns: []core.Expr{flags.C("active")}, Where: core.Eq(flags.C("active"), true)},
			want: "SELECT flags.active FROM flags WHERE flags.active = 1",
		},
		{
			name: "nil value",
			c:    compiler.New(postgres.Postgres, compiler.Options{LiteralBinds: true}),
			stmt: &core.Update{Table: s.users, Set: []core.Assignment{{Column: s.users.C("name"), Value: core.Bind("name", nil)}}},
			want: "UPDATE users SET name = NULL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.c.Compile(tt.stmt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.SQL)
			assert.Empty(t, c.Params)
		})
	}

	t.Run("required bind", func(t *testing.T) {
		stmt := &core.Select{
			Columns: []core.Expr{s.users.C("id")},
			Where:   core.Eq(s.users.C("name"), core.Placeholder("n", sqltypes.String{})),
		}
		_, err := compiler.New(postgres.Postgres, compiler.Options{LiteralBinds: true}).Compile(stmt)
		require.Error(t, err)
	})
}

func TestNumericBindProcessor(t *testing.T) {
	s := newSchema()
	stmt := &core.Select{Columns: []core.Expr{s.orders.C("id")}, Where: core.Gt(s.orders.C("amount"), "12.50")}

	c := compile(t, postgres.Postgres, stmt)
	args, err := c.Args(nil)
	require.NoError(t, err)
	require.Len(t, args, 1)
	assert.Equal(t, decimal.RequireFromString("12.50"), args[0])
}

func TestIdentifierTruncation(t *testing.T) {
	long := core.NewTable("customer_account_balance_history_records",
		core.NewColumn("id", sqltypes.Integer{}))
	stmt := &core.Select{Columns: []core.Expr{long.C("id")}}

	c := compile(t, oracle.Oracle, stmt)
	m := regexp.MustCompile(`^SELECT (\S+)\.id FROM (\S+)$`).FindStringSubmatch(c.SQL)
	require.Len(t, m, 3, c.SQL)
	assert.Equal(t, m[1], m[2])
	assert.LessOrEqual(t, len(m[1]), 30)
	assert.NotEqual(t, long.Name, m[1])

	again := compile(t, oracle.Oracle, stmt)
	assert.Equal(t, c.SQL, again.SQL)

	c = compile(t, postgres.Postgres, stmt)
	assert.Equal(t, "SELECT customer_account_balance_history_records.id FROM customer_account_balance_history_records", c.SQL)
}

func TestConcurrentCompileIsDeterministic(t *testing.T) {
	s := newSchema()
	sub := (&core.Select{
		Columns: []core.Expr{s.orders.C("user_id"), core.As(core.Count(nil), "n")},
		GroupBy: []core.Expr{s.orders.C("user_id")},
	}).Subquery("")
	stmt := &core.Select{
		Columns: []core.Expr{s.users.C("name"), sub.C("n")},
		From:    []core.Selectable{core.NewOuterJoin(s.users, sub, core.Eq(s.users.C("id"), sub.C("user_id")))},
		Where:   core.And(core.Gt(s.users.C("id"), 1), core.Like(s.users.C("name"), "a%")),
		OrderBy: []core.Expr{core.Desc(core.Ref("n"))},
		Limit:   core.IntPtr(5),
	}

	c := compiler.New(sqlite.SQLite, compiler.Options{})
	first, err := c.Compile(stmt)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT users.name, anon_1.n FROM users LEFT OUTER JOIN "+
			"(SELECT orders.user_id, count(*) AS n FROM orders GROUP BY orders.user_id) AS anon_1 "+
			"ON users.id = anon_1.user_id WHERE users.id > ? AND users.name LIKE ? ORDER BY n DESC LIMIT 5",
		first.SQL)

	results := make([]string, 32)
	var g errgroup.Group
	for i := range results {
		g.Go(func() error {
			out, err := c.Compile(stmt)
			if err != nil {
				return err
			}
			results[i] = out.SQL
			return nil
		})
	}
	require.NoError(t, g.Wait())
	for _, sql := range results {
		assert.Equal(t, first.SQL, sql)
	}
}

func TestCTEs(t *testing.T) {
	s := newSchema()

	t.Run("hoisted", func(t *testing.T) {
		active := (&core.Select{
			Columns: []core.Expr{s.users.C("id"), s.users.C("name")},
			Where:   core.Eq(s.users.C("name"), "x"),
		}).CTE("active")
		stmt := &core.Select{Columns: []core.Expr{active.C("name")}}

		c := compile(t, postgres.Postgres, stmt)
		assert.Equal(t,
			"WITH active AS (SELECT users.id, users.name FROM users WHERE users.name = $1) SELECT active.name FROM active",
			c.SQL)
	})

	t.Run("recursive", func(t *testing.T) {
		nodes := core.NewTable("nodes",
			core.NewColumn("id", sqltypes.Integer{}),
			core.NewColumn("parent_id", sqltypes.Integer{}))
		anchor := &core.Select{
			Columns: []core.Expr{nodes.C("id"), nodes.C("parent_id")},
			Where:   core.Eq(nodes.C("parent_id"), nil),
		}
		tree := core.NewRecursiveCTE(anchor, "tree")
		n := nodes.Alias("n")
		step := &core.Select{
			Columns: []core.Expr{n.C("id"), n.C("parent_id")},
			From:    []core.Selectable{core.NewJoin(n, tree, core.Eq(n.C("parent_id"), tree.C("id")))},
		}
		full := tree.UnionAll(step)
		stmt := &core.Select{Columns: []core.Expr{full.C("id")}}

		c := compile(t, postgres.Postgres, stmt)
		assert.Equal(t,
			"WITH RECURSIVE tree(id, parent_id) AS ("+
				"SELECT nodes.id, nodes.parent_id FROM nodes WHERE nodes.parent_id IS NULL "+
				"UNION ALL SELECT n.id, n.parent_id FROM nodes AS n JOIN tree ON n.parent_id = tree.id) "+
				"SELECT tree.id FROM tree",
			c.SQL)
	})

	t.Run("conflicting names", func(t *testing.T) {
		c1 := (&core.Select{Columns: []core.Expr{s.users.C("id")}}).CTE("c")
		c2 := (&core.Select{Columns: []core.Expr{s.orders.C("id")}}).CTE("c")
		stmt := &core.Select{Columns: []core.Expr{c1.C("id"), c2.C("id")}}

		err := compileErr(t, postgres.Postgres, stmt)
		var ce *compiler.CompileError
		require.ErrorAs(t, err, &ce)
		var conflict *cte.ConflictError
		assert.ErrorAs(t, err, &conflict)
	})
}
