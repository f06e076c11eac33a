package duckdb

import (
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
	"github.com/leapstack-labs/sqlcompiler/pkg/token"
)

func init() {
	dialect.Register(DuckDB)
}

// TokenIlike is the case-insensitive LIKE operator.
var TokenIlike = token.RegisterComparison("ILIKE")

var duckdbReservedWords = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc",
	"asymmetric", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "default", "deferrable", "desc", "describe",
	"distinct", "do", "else", "end", "except", "false", "fetch", "for",
	"foreign", "from", "grant", "group", "having", "in", "initially",
	"intersect", "into", "lateral", "leading", "limit", "not", "null",
	"offset", "on", "only", "or", "order", "pivot", "pivot_longer",
	"pivot_wider", "placing", "primary", "qualify", "references",
	"returning", "select", "show", "some", "summarize", "symmetric", "table",
	"then", "to", "trailing", "true", "union", "unique", "unpivot", "using",
	"variadic", "when", "where", "window", "with",
}

// DuckDB is the DuckDB dialect.
var DuckDB = dialect.New(&Config).
	WithReservedWords(duckdbReservedWords...).
	WithOperators(dialect.OperatorDef{Token: TokenIlike, Precedence: dialect.PrecedenceComparison}).
	WithRenderer(Renderer{}).
	Build()

// Renderer spells DuckDB types.
type Renderer struct {
	dialect.StandardRenderer
}

func (r Renderer) TypeName(t sqltypes.Type) (string, error) {
	switch t := t.(type) {
	case sqltypes.Float:
		return "DOUBLE", nil
	case sqltypes.Numeric:
		return dialect.WithPrecision("DECIMAL", t), nil
	case sqltypes.DateTime:
		if t.Timezone {
			return "TIMESTAMPTZ", nil
		}
	}
	return r.StandardRenderer.TypeName(t)
}
