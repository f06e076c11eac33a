package mysql

import (
	"strconv"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
	"github.com/leapstack-labs/sqlcompiler/pkg/token"
)

func init() {
	dialect.Register(MySQL)
}

// TokenRegexp is the REGEXP match operator.
var TokenRegexp = token.RegisterComparison("REGEXP")

// maxRows is the LIMIT MySQL documents for "all remaining rows".
const maxRows = "18446744073709551615"

var mysqlReservedWords = []string{
	"accessible", "add", "all", "alter", "analyze", "and", "as", "asc",
	"before", "between", "bigint", "binary", "blob", "both", "by", "call",
	"cascade", "case", "change", "char", "character", "check", "collate",
	"column", "condition", "constraint", "continue", "convert", "create",
	"cross", "cube", "current_date", "current_time", "current_timestamp",
	"current_user", "cursor", "database", "databases", "day_hour", "dec",
	"decimal", "declare", "default", "delayed", "delete", "desc", "describe",
	"distinct", "div", "double", "drop", "dual", "each", "else", "elseif",
	"enclosed", "escaped", "except", "exists", "exit", "explain", "false",
	"fetch", "float", "for", "force", "foreign", "from", "fulltext",
	"function", "generated", "get", "grant", "group", "grouping", "groups",
	"having", "high_priority", "if", "ignore", "in", "index", "infile",
	"inner", "insert", "int", "integer", "intersect", "interval", "into",
	"is", "iterate", "join", "key", "keys", "kill", "lateral", "leading",
	"leave", "left", "like", "limit", "lines", "load", "localtime",
	"localtimestamp", "lock", "long", "loop", "match", "mod", "natural",
	"not", "null", "numeric", "of", "on", "optimize", "option", "or",
	"order", "out", "outer", "over", "partition", "precision", "primary",
	"procedure", "range", "rank", "read", "real", "references", "regexp",
	"release", "rename", "repeat", "replace", "require", "restrict",
	"return", "revoke", "right", "rlike", "row", "rows", "schema", "select",
	"separator", "set", "show", "smallint", "spatial", "sql", "ssl",
	"starting", "straight_join", "system", "table", "terminated", "then",
	"to", "trailing", "trigger", "true", "undo", "union", "unique", "unlock",
	"unsigned", "update", "usage", "use", "using", "values", "varchar",
	"when", "where", "while", "window", "with", "write", "xor", "zerofill",
}

// MySQL is the MySQL 8 dialect.
var MySQL = dialect.New(&Config).
	WithReservedWords(mysqlReservedWords...).
	WithJoinTypes(dialect.JoinTypesWithout(core.JoinFull)...).
	WithOperators(dialect.OperatorDef{Token: TokenRegexp, Precedence: dialect.PrecedenceComparison}).
	WithRenderer(Renderer{}).
	Build()

// Renderer implements the MySQL spellings.
type Renderer struct {
	dialect.StandardRenderer
}

// LimitOffset renders LIMIT [offset,] count. An offset alone needs a
// sentinel row count.
func (Renderer) LimitOffset(limit, offset *int) string {
	switch {
	case limit != nil && offset != nil:
		return " LIMIT " + strconv.Itoa(*offset) + ", " + strconv.Itoa(*limit)
	case limit != nil:
		return " LIMIT " + strconv.Itoa(*limit)
	case offset != nil:
		return " LIMIT " + strconv.Itoa(*offset) + ", " + maxRows
	}
	return ""
}

func (r Renderer) TypeName(t sqltypes.Type) (string, error) {
	switch t := t.(type) {
	case sqltypes.String:
		if t.Length == 0 {
			return "", &dialect.UnsupportedTypeError{Type: t, Reason: "VARCHAR requires a length on mysql"}
		}
	case sqltypes.Numeric:
		return dialect.WithPrecision("DECIMAL", t), nil
	case sqltypes.Float:
		return "DOUBLE", nil
	case sqltypes.Boolean:
		return "BOOL", nil
	case sqltypes.UUID:
		return "CHAR(36)", nil
	case sqltypes.DateTime:
		if t.Timezone {
			return "TIMESTAMP", nil
		}
		return "DATETIME", nil
	}
	return r.StandardRenderer.TypeName(t)
}

func (Renderer) AutoincrementClause(*core.Column) string {
	return " AUTO_INCREMENT"
}

func (Renderer) ExcludedColumn(name string) string {
	return "VALUES(" + name + ")"
}

func (Renderer) DefaultValuesInsert() string {
	return " () VALUES ()"
}

func (Renderer) DropIndex(index, table string, _ bool) string {
	return "DROP INDEX " + index + " ON " + table
}

func (Renderer) DropForeignKey(name string) string {
	return "DROP FOREIGN KEY " + name
}
