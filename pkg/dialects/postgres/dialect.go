package postgres

import (
	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
	"github.com/leapstack-labs/sqlcompiler/pkg/token"
)

func init() {
	dialect.Register(Postgres)
}

// TokenIlike is the case-insensitive LIKE operator.
var TokenIlike = token.RegisterComparison("ILIKE")

// postgresReservedWords contains common PostgreSQL reserved words.
// This is a manually maintained list of frequently problematic identifiers.
// For a complete list, use pg_get_keywords() at runtime.
var postgresReservedWords = []string{
	"user", "order", "group", "table", "select", "from", "where", "index",
	"all", "and", "any", "array", "as", "asc", "asymmetric", "authorization",
	"between", "binary", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "cross", "current_catalog", "current_date",
	"current_role", "current_schema", "current_time", "current_timestamp",
	"current_user", "default", "deferrable", "desc", "distinct", "do", "else",
	"end", "except", "false", "fetch", "for", "foreign", "freeze", "full",
	"grant", "having", "ilike", "in", "initially", "inner", "intersect",
	"into", "is", "isnull", "join", "lateral", "leading", "left", "like",
	"limit", "localtime", "localtimestamp", "natural", "not", "notnull",
	"null", "offset", "on", "only", "or", "outer", "overlaps", "placing",
	"primary", "references", "returning", "right", "session_user", "similar",
	"some", "symmetric", "then", "to", "trailing", "true", "union", "unique",
	"using", "variadic", "verbose", "when", "window", "with",
}

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.New(&Config).
	WithReservedWords(postgresReservedWords...).
	WithOperators(dialect.OperatorDef{Token: TokenIlike, Precedence: dialect.PrecedenceComparison}).
	WithRenderer(Renderer{}).
	Build()

// Renderer spells PostgreSQL types and serial columns.
type Renderer struct {
	dialect.StandardRenderer
}

func (r Renderer) TypeName(t sqltypes.Type) (string, error) {
	switch t.(type) {
	case sqltypes.Float:
		return "DOUBLE PRECISION", nil
	case sqltypes.LargeBinary:
		return "BYTEA", nil
	}
	return r.StandardRenderer.TypeName(t)
}

// AutoincrementType renders integer autoincrement columns as SERIAL.
func (Renderer) AutoincrementType(col *core.Column) (string, bool) {
	it, ok := col.Type.(sqltypes.Integer)
	if !ok {
		return "", false
	}
	if it.Big {
		return "BIGSERIAL", true
	}
	return "SERIAL", true
}
