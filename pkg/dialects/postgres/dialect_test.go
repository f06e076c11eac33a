package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

func TestBuild(t *testing.T) {
	d := Postgres

	require.NotNil(t, d)
	assert.Equal(t, "postgres", d.Name)
	assert.Equal(t, "public", d.DefaultSchema)
	assert.Equal(t, core.ParamDollar, d.ParamStyle)
	assert.Equal(t, 63, d.MaxIdentifierLength)
	assert.True(t, d.Features.Returning)
	assert.True(t, d.Features.OnConflict)
	assert.True(t, d.Features.DistinctOn)
	assert.Equal(t, core.DeleteUsing, d.Features.MultiTableDelete)
	assert.Equal(t, core.UpdateFrom, d.Features.MultiTableUpdate)
	assert.True(t, d.HasOperator(TokenIlike))
}

func TestDialectRegistration(t *testing.T) {
	d, ok := dialect.Get("postgres")
	require.True(t, ok, "postgres dialect should be registered")
	assert.Same(t, Postgres, d)
}

func TestTypeNames(t *testing.T) {
	r := Postgres.Renderer()

	tests := []struct {
		typ  sqltypes.Type
		want string
	}{
		{sqltypes.Float{}, "DOUBLE PRECISION"},
		{sqltypes.LargeBinary{}, "BYTEA"},
		{sqltypes.Numeric{Precision: 12, Scale: 4}, "NUMERIC(12, 4)"},
		{sqltypes.DateTime{Timezone: true}, "TIMESTAMP WITH TIME ZONE"},
		{sqltypes.UUID{}, "UUID"},
	}
	for _, tt := range tests {
		got, err := r.TypeName(tt.typ)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestSerial(t *testing.T) {
	r := Postgres.Renderer()

	got, ok := r.AutoincrementType(core.NewColumn("id", sqltypes.Integer{}))
	require.True(t, ok)
	assert.Equal(t, "SERIAL", got)

	got, ok = r.AutoincrementType(core.NewColumn("id", sqltypes.Integer{Big: true}))
	require.True(t, ok)
	assert.Equal(t, "BIGSERIAL", got)

	_, ok = r.AutoincrementType(core.NewColumn("id", sqltypes.UUID{}))
	assert.False(t, ok)
}

func TestIdentifierQuoting(t *testing.T) {
	assert.Equal(t, `"user"`, Postgres.QuoteIdentifier("user"))
	assert.Equal(t, `"table""name"`, Postgres.QuoteIdentifier(`table"name`))
	assert.True(t, Postgres.IsReservedWord("ORDER"))
	assert.Equal(t, "my_table", Postgres.NormalizeName("My_Table"))
}
