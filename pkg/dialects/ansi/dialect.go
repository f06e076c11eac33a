package ansi

import "github.com/leapstack-labs/sqlcompiler/pkg/dialect"

func init() {
	dialect.Register(ANSI)
}

// ReservedWords are the SQL:2016 reserved words most likely to collide with
// table and column names.
var ReservedWords = []string{
	"all", "allocate", "alter", "and", "any", "are", "array", "as", "asymmetric",
	"at", "authorization", "begin", "between", "both", "by", "call", "called",
	"cascaded", "case", "cast", "check", "close", "collate", "column", "commit",
	"condition", "connect", "constraint", "create", "cross", "cube", "current",
	"current_date", "current_time", "current_timestamp", "current_user",
	"cursor", "cycle", "date", "day", "deallocate", "declare", "default",
	"delete", "describe", "distinct", "double", "drop", "each", "else", "end",
	"escape", "except", "exec", "execute", "exists", "external", "false",
	"fetch", "filter", "for", "foreign", "from", "full", "function", "get",
	"global", "grant", "group", "having", "hour", "identity", "in", "inner",
	"insert", "intersect", "interval", "into", "is", "join", "lateral",
	"leading", "left", "like", "local", "match", "merge", "minute", "month",
	"natural", "new", "no", "none", "not", "null", "of", "offset", "old", "on",
	"only", "open", "or", "order", "out", "outer", "over", "overlaps",
	"partition", "primary", "range", "references", "release", "return",
	"revoke", "right", "rollback", "row", "rows", "select", "session_user",
	"set", "similar", "some", "start", "system_user", "table", "then", "time",
	"timestamp", "to", "trailing", "trigger", "true", "union", "unique",
	"unknown", "update", "user", "using", "value", "values", "when",
	"whenever", "where", "window", "with", "within", "without", "year",
}

// ANSI is the base ANSI SQL dialect.
var ANSI = dialect.New(&Config).
	WithReservedWords(ReservedWords...).
	WithRenderer(Renderer{}).
	Build()

// Renderer uses the SQL:2008 row-limiting syntax.
type Renderer struct {
	dialect.StandardRenderer
}

func (Renderer) LimitOffset(limit, offset *int) string {
	return dialect.FetchFirst(limit, offset)
}
