package snowflake

import (
	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
	"github.com/leapstack-labs/sqlcompiler/pkg/token"
)

func init() {
	dialect.Register(Snowflake)
}

// TokenIlike is the case-insensitive LIKE operator.
var TokenIlike = token.RegisterComparison("ILIKE")

var snowflakeReservedWords = []string{
	"account", "all", "alter", "and", "any", "as", "between", "by", "case",
	"cast", "check", "column", "connect", "connection", "constraint",
	"create", "cross", "current", "current_date", "current_time",
	"current_timestamp", "current_user", "database", "delete", "distinct",
	"drop", "else", "exists", "false", "following", "for", "from", "full",
	"grant", "group", "gscluster", "having", "ilike", "in", "increment",
	"inner", "insert", "intersect", "into", "is", "issue", "join", "lateral",
	"left", "like", "localtime", "localtimestamp", "minus", "natural", "not",
	"null", "of", "on", "or", "order", "organization", "qualify", "regexp",
	"revoke", "right", "rlike", "row", "rows", "sample", "schema", "select",
	"set", "some", "start", "table", "tablesample", "then", "to", "trigger",
	"true", "try_cast", "union", "unique", "update", "using", "values",
	"view", "when", "whenever", "where", "with",
}

// Snowflake is the Snowflake dialect.
var Snowflake = dialect.New(&Config).
	WithReservedWords(snowflakeReservedWords...).
	WithOperators(dialect.OperatorDef{Token: TokenIlike, Precedence: dialect.PrecedenceComparison}).
	WithRenderer(Renderer{}).
	Build()

// Renderer spells Snowflake types and identity columns.
type Renderer struct {
	dialect.StandardRenderer
}

func (r Renderer) TypeName(t sqltypes.Type) (string, error) {
	switch t := t.(type) {
	case sqltypes.JSON:
		return "VARIANT", nil
	case sqltypes.LargeBinary:
		return "BINARY", nil
	case sqltypes.DateTime:
		if t.Timezone {
			return "TIMESTAMP_TZ", nil
		}
		return "TIMESTAMP_NTZ", nil
	}
	return r.StandardRenderer.TypeName(t)
}

func (Renderer) AutoincrementClause(*core.Column) string {
	return " AUTOINCREMENT"
}
