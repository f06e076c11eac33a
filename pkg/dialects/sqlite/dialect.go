package sqlite

import (
	"strconv"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

func init() {
	dialect.Register(SQLite)
}

var sqliteReservedWords = []string{
	"abort", "action", "add", "after", "all", "alter", "analyze", "and", "as",
	"asc", "attach", "autoincrement", "before", "begin", "between", "by",
	"cascade", "case", "cast", "check", "collate", "column", "commit",
	"conflict", "constraint", "create", "cross", "current_date",
	"current_time", "current_timestamp", "database", "default", "deferrable",
	"deferred", "delete", "desc", "detach", "distinct", "drop", "each",
	"else", "end", "escape", "except", "exclusive", "exists", "explain",
	"fail", "for", "foreign", "from", "full", "glob", "group", "having", "if",
	"ignore", "immediate", "in", "index", "indexed", "initially", "inner",
	"insert", "instead", "intersect", "into", "is", "isnull", "join", "key",
	"left", "like", "limit", "match", "natural", "no", "not", "notnull",
	"null", "of", "offset", "on", "or", "order", "outer", "plan", "pragma",
	"primary", "query", "raise", "recursive", "references", "regexp",
	"reindex", "release", "rename", "replace", "restrict", "right",
	"rollback", "row", "savepoint", "select", "set", "table", "temp",
	"temporary", "then", "to", "transaction", "trigger", "union", "unique",
	"update", "using", "vacuum", "values", "view", "virtual", "when", "where",
	"with", "without",
}

// SQLite is the SQLite 3 dialect.
var SQLite = dialect.New(&Config).
	WithReservedWords(sqliteReservedWords...).
	WithRenderer(Renderer{}).
	RenameFunction("char_length", "length").
	RenameFunction("substring", "substr").
	Build()

// Renderer implements the SQLite spellings.
type Renderer struct {
	dialect.StandardRenderer
}

// LimitOffset needs LIMIT -1 to express an offset alone.
func (r Renderer) LimitOffset(limit, offset *int) string {
	if limit == nil && offset != nil {
		return " LIMIT -1 OFFSET " + strconv.Itoa(*offset)
	}
	return r.StandardRenderer.LimitOffset(limit, offset)
}

func (r Renderer) TypeName(t sqltypes.Type) (string, error) {
	switch t.(type) {
	case sqltypes.DateTime:
		return "DATETIME", nil
	case sqltypes.UUID:
		return "CHAR(36)", nil
	case sqltypes.Float:
		return "REAL", nil
	}
	return r.StandardRenderer.TypeName(t)
}

// AutoincrementType keeps the rowid alias: only INTEGER PRIMARY KEY
// autoincrements, BIGINT does not.
func (Renderer) AutoincrementType(col *core.Column) (string, bool) {
	if _, ok := col.Type.(sqltypes.Integer); ok {
		return "INTEGER", true
	}
	return "", false
}
