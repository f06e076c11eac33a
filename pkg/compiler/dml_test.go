package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlcompiler/pkg/compiler"
	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialects/mysql"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialects/oracle"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialects/postgres"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialects/sqlite"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

func TestInsertSingleRow(t *testing.T) {
	s := newSchema()
	stmt := &core.Insert{
		Table:   s.users,
		Columns: []*core.Column{s.users.C("id"), s.users.C("name")},
		Rows:    [][]core.Expr{core.Values(1, "ann")},
	}

	c := compile(t, postgres.Postgres, stmt)
	assert.Equal(t, "INSERT INTO users (id, name) VALUES ($1, $2)", c.SQL)
	require.Len(t, c.Params, 2)
	assert.Equal(t, compiler.Param{Name: "id", Value: 1, Type: sqltypes.Integer{}}, c.Params[0])
	assert.Equal(t, compiler.Param{Name: "name", Value: "ann", Type: sqltypes.String{Length: 50}}, c.Params[1])
}

func TestInsertMultiRow(t *testing.T) {
	s := newSchema()
	stmt := &core.Insert{
		Table: s.users,
		Rows:  [][]core.Expr{core.Values(1, "a"), core.Values(2, "b")},
	}

	c := compile(t, sqlite.SQLite, stmt)
	assert.Equal(t, "INSERT INTO users (id, name) VALUES (?, ?), (?, ?)", c.SQL)
	assert.Equal(t, []string{"id_m0", "name_m0", "id_m1", "name_m1"}, c.Positional)

	args, err := c.Args(nil)
	require.NoError(t, err)
	assert.Equal(t, []any{1, "a", 2, "b"}, args)
}

func TestInsertRowWidthMismatch(t *testing.T) {
	s := newSchema()
	stmt := &core.Insert{Table: s.users, Rows: [][]core.Expr{core.Values(1)}}

	err := compileErr(t, sqlite.SQLite, stmt)
	var ae *compiler.ArgumentError
	assert.ErrorAs(t, err, &ae)
}

func TestInsertPlaceholders(t *testing.T) {
	s := newSchema()
	stmt := &core.Insert{Table: s.users, Columns: []*core.Column{s.users.C("id"), s.users.C("name")}}

	c := compile(t, postgres.Postgres, stmt)
	assert.Equal(t, "INSERT INTO users (id, name) VALUES ($1, $2)", c.SQL)

	_, err := c.Args(nil)
	require.Error(t, err)

	args, err := c.Args(map[string]any{"id": 7, "name": "x"})
	require.NoError(t, err)
	assert.Equal(t, []any{7, "x"}, args)

	named, err := c.NamedArgs(map[string]any{"id": 7, "name": "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": 7, "name": "x"}, named)
}

func TestInsertDefaultValues(t *testing.T) {
	s := newSchema()
	stmt := &core.Insert{Table: s.users}

	assert.Equal(t, "INSERT INTO users DEFAULT VALUES", compile(t, postgres.Postgres, stmt).SQL)
	assert.Equal(t, "INSERT INTO users () VALUES ()", compile(t, mysql.MySQL, stmt).SQL)
}

func TestUpsert(t *testing.T) {
	s := newSchema()
	name := s.users.C("name")
	insert := func(oc *core.OnConflict, dup []core.Assignment) *core.Insert {
		return &core.Insert{
			Table:          s.users,
			Columns:        []*core.Column{s.users.C("id"), name},
			Rows:           [][]core.Expr{core.Values(1, "ann")},
			OnConflict:     oc,
			OnDuplicateKey: dup,
		}
	}
	update := []core.Assignment{core.Set(name, &core.Excluded{Column: name})}

	c := compile(t, postgres.Postgres, insert(&core.OnConflict{Target: []*core.Column{s.users.C("id")}, Set: update}, nil))
	assert.Equal(t, "INSERT INTO users (id, name) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET name = excluded.name", c.SQL)

	c = compile(t, sqlite.SQLite, insert(&core.OnConflict{Target: []*core.Column{s.users.C("id")}, DoNothing: true}, nil))
	assert.Equal(t, "INSERT INTO users (id, name) VALUES (?, ?) ON CONFLICT (id) DO NOTHING", c.SQL)

	c = compile(t, postgres.Postgres, insert(&core.OnConflict{Constraint: "users_pkey", Set: update}, nil))
	assert.Equal(t, "INSERT INTO users (id, name) VALUES ($1, $2) ON CONFLICT ON CONSTRAINT users_pkey DO UPDATE SET name = excluded.name", c.SQL)

	c = compile(t, mysql.MySQL, insert(nil, update))
	assert.Equal(t, "INSERT INTO users (id, name) VALUES (%s, %s) ON DUPLICATE KEY UPDATE name = VALUES(name)", c.SQL)

	t.Run("update needs a target", func(t *testing.T) {
		err := compileErr(t, postgres.Postgres, insert(&core.OnConflict{Set: update}, nil))
		assert.Contains(t, err.Error(), "conflict target")
	})
	t.Run("unsupported", func(t *testing.T) {
		compileErr(t, mysql.MySQL, insert(&core.OnConflict{DoNothing: true}, nil))
		compileErr(t, postgres.Postgres, insert(nil, update))
	})
}

func TestInsertReturning(t *testing.T) {
	s := newSchema()
	stmt := &core.Insert{
		Table:     s.users,
		Rows:      [][]core.Expr{core.Values(1, "ann")},
		Returning: []core.Expr{s.users.C("id")},
	}

	c := compile(t, postgres.Postgres, stmt)
	assert.Equal(t, "INSERT INTO users (id, name) VALUES ($1, $2) RETURNING users.id", c.SQL)
	require.Len(t, c.ResultMap, 1)
	assert.Same(t, s.users.C("id"), c.ResultMap[0].Column)

	compileErr(t, mysql.MySQL, stmt)
}

func TestInsertFromSelect(t *testing.T) {
	s := newSchema()
	big := (&core.Select{
		Columns: []core.Expr{s.users.C("id")},
		Where:   core.Gt(s.users.C("id"), 5),
	}).CTE("big")
	stmt := &core.Insert{
		Table:   s.orders,
		Columns: []*core.Column{s.orders.C("user_id")},
		Select:  &core.Select{Columns: []core.Expr{big.C("id")}},
	}

	tests := []struct {
		dialect *dialect.Dialect
		want    string
	}{
		{postgres.Postgres, "WITH big AS (SELECT users.id FROM users WHERE users.id > $1) INSERT INTO orders (user_id) SELECT big.id FROM big"},
		{mysql.MySQL, "INSERT INTO orders (user_id) WITH big AS (SELECT users.id FROM users WHERE users.id > %s) SELECT big.id FROM big"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.Name, func(t *testing.T) {
			c := compile(t, tt.dialect, stmt)
			assert.Equal(t, tt.want, c.SQL)
			assert.Empty(t, c.ResultMap)
		})
	}
}

func TestUpdate(t *testing.T) {
	s := newSchema()
	stmt := &core.Update{
		Table: s.users,
		Set:   []core.Assignment{core.Set(s.users.C("name"), "bob")},
		Where: core.Eq(s.users.C("id"), 3),
	}

	c := compile(t, postgres.Postgres, stmt)
	assert.Equal(t, "UPDATE users SET name = $1 WHERE users.id = $2", c.SQL)
	assert.Equal(t, []string{"name", "id_1"}, c.Positional)
}

func TestMultiTableUpdate(t *testing.T) {
	s := newSchema()
	stmt := &core.Update{
		Table: s.users,
		Set:   []core.Assignment{core.Set(s.users.C("name"), "vip")},
		Where: core.And(
			core.Eq(s.users.C("id"), s.orders.C("user_id")),
			core.Gt(s.orders.C("amount"), 100),
		),
	}

	tests := []struct {
		dialect *dialect.Dialect
		want    string
	}{
		{postgres.Postgres, "UPDATE users SET name = $1 FROM orders WHERE users.id = orders.user_id AND orders.amount > $2"},
		{mysql.MySQL, "UPDATE users, orders SET users.name = %s WHERE users.id = orders.user_id AND orders.amount > %s"},
	}
	for _, tt := range tests {
		t.Run(tt.dialect.Name, func(t *testing.T) {
			assert.Equal(t, tt.want, compile(t, tt.dialect, stmt).SQL)
		})
	}

	compileErr(t, oracle.Oracle, stmt)
}

func TestDelete(t *testing.T) {
	s := newSchema()

	t.Run("empty conjunction", func(t *testing.T) {
		c := compile(t, postgres.Postgres, &core.Delete{Table: s.users, Where: core.And()})
		assert.Equal(t, "DELETE FROM users", c.SQL)
	})

	multi := &core.Delete{Table: s.users, Where: core.Eq(s.users.C("id"), s.orders.C("user_id"))}
	assert.Equal(t, "DELETE FROM users USING orders WHERE users.id = orders.user_id", compile(t, postgres.Postgres, multi).SQL)
	assert.Equal(t, "DELETE FROM users USING users, orders WHERE users.id = orders.user_id", compile(t, mysql.MySQL, multi).SQL)
	compileErr(t, sqlite.SQLite, multi)

	in := &core.Delete{
		Table: s.orders,
		Where: &core.In{
			Expr:  s.orders.C("user_id"),
			Query: &core.Select{Columns: []core.Expr{s.users.C("id")}, Where: core.Eq(s.users.C("name"), "gone")},
		},
		Returning: []core.Expr{s.orders.C("id")},
	}
	c := compile(t, sqlite.SQLite, in)
	assert.Equal(t, "DELETE FROM orders WHERE orders.user_id IN (SELECT users.id FROM users WHERE users.name = ?) RETURNING orders.id", c.SQL)
}

func TestBindNameConflicts(t *testing.T) {
	s := newSchema()

	t.Run("same key different values", func(t *testing.T) {
		stmt := &core.Update{
			Table: s.users,
			Set:   []core.Assignment{core.Set(s.users.C("name"), "a")},
			Where: core.Eq(s.users.C("name"), core.Bind("name", "b")),
		}
		err := compileErr(t, postgres.Postgres, stmt)
		var ce *compiler.CompileError
		assert.ErrorAs(t, err, &ce)
	})

	t.Run("clash with generated name", func(t *testing.T) {
		stmt := &core.Select{
			Columns: []core.Expr{s.users.C("id")},
			Where:   core.And(core.Eq(s.users.C("id"), 1), core.Eq(s.users.C("id"), core.Bind("id_1", 2))),
		}
		compileErr(t, postgres.Postgres, stmt)
	})

	t.Run("shared key", func(t *testing.T) {
		uid := func() *core.BindParam { return core.Bind("uid", 7) }
		stmt := &core.Select{
			Columns: []core.Expr{s.users.C("name")},
			Where:   core.And(core.Eq(s.users.C("id"), uid()), core.Eq(s.orders.C("user_id"), uid())),
		}

		c := compile(t, postgres.Postgres, stmt)
		assert.Equal(t, "SELECT users.name FROM users, orders WHERE users.id = $1 AND orders.user_id = $1", c.SQL)
		assert.Equal(t, []string{"uid"}, c.Positional)

		c = compile(t, sqlite.SQLite, stmt)
		assert.Equal(t, "SELECT users.name FROM users, orders WHERE users.id = ? AND orders.user_id = ?", c.SQL)
		args, err := c.Args(nil)
		require.NoError(t, err)
		assert.Equal(t, []any{7, 7}, args)
	})
}
