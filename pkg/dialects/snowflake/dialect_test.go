package snowflake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/ident"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

func TestBuild(t *testing.T) {
	d := Snowflake

	require.NotNil(t, d)

	assert.Equal(t, "snowflake", d.Name)
	assert.Equal(t, `"`, d.Identifiers.Quote)
	assert.Equal(t, "PUBLIC", d.DefaultSchema)
	assert.Equal(t, core.ParamPyformat, d.ParamStyle)
	assert.Equal(t, 255, d.MaxIdentifierLength)

	assert.False(t, d.Features.ForUpdate)
	assert.True(t, d.Features.Sequences)
	assert.False(t, d.Features.Returning)
}

func TestDialectRegistration(t *testing.T) {
	d, ok := dialect.Get("snowflake")
	require.True(t, ok, "snowflake dialect should be registered")
	require.NotNil(t, d)
	assert.Equal(t, "snowflake", d.Name)
}

func TestIdentifierRendering(t *testing.T) {
	p := ident.For(Snowflake)

	tests := []struct {
		in, want string
	}{
		{"my_table", "my_table"},
		{"MY_TABLE", `"MY_TABLE"`},
		{"My_Table", `"My_Table"`},
		{"qualify", `"qualify"`},
		{"select", `"select"`},
		{`table"name`, `"table""name"`},
		{"1st", `"1st"`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := p.Name(ident.KindColumn, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "MY_TABLE", Snowflake.NormalizeName("My_Table"))
}

func TestRenderer(t *testing.T) {
	r := Snowflake.Renderer()

	got, err := r.TypeName(sqltypes.JSON{})
	require.NoError(t, err)
	assert.Equal(t, "VARIANT", got)
	assert.Equal(t, " AUTOINCREMENT", r.AutoincrementClause(core.NewColumn("id", sqltypes.Integer{})))
	assert.Equal(t, "%(name)s", Snowflake.FormatPlaceholder("name", 1))
}
