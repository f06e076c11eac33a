package oracle

import (
	"fmt"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/dialect"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

func init() {
	dialect.Register(Oracle)
}

var oracleReservedWords = []string{
	"access", "add", "all", "alter", "and", "any", "as", "asc", "audit",
	"between", "by", "char", "check", "cluster", "column", "comment",
	"compress", "connect", "create", "current", "date", "decimal", "default",
	"delete", "desc", "distinct", "drop", "else", "exclusive", "exists",
	"file", "float", "for", "from", "grant", "group", "having", "identified",
	"immediate", "in", "increment", "index", "initial", "insert", "integer",
	"intersect", "into", "is", "level", "like", "lock", "long", "maxextents",
	"minus", "mlslabel", "mode", "modify", "noaudit", "nocompress", "not",
	"nowait", "null", "number", "of", "offline", "on", "online", "option",
	"or", "order", "pctfree", "prior", "public", "raw", "rename", "resource",
	"revoke", "row", "rowid", "rownum", "rows", "select", "session", "set",
	"share", "size", "smallint", "start", "successful", "synonym", "sysdate",
	"table", "then", "to", "trigger", "uid", "union", "unique", "update",
	"user", "validate", "values", "varchar", "varchar2", "view", "whenever",
	"where", "with",
}

// Oracle is the Oracle Database dialect.
var Oracle = dialect.New(&Config).
	WithReservedWords(oracleReservedWords...).
	WithRenderer(Renderer{}).
	RenameFunction("char_length", "LENGTH").
	Build()

// Renderer implements the Oracle spellings.
type Renderer struct {
	dialect.StandardRenderer
}

func (Renderer) LimitOffset(limit, offset *int) string {
	return dialect.FetchFirst(limit, offset)
}

func (r Renderer) TypeName(t sqltypes.Type) (string, error) {
	switch t := t.(type) {
	case sqltypes.Integer:
		if t.Big {
			return "NUMBER(19)", nil
		}
		return "NUMBER(10)", nil
	case sqltypes.Numeric:
		return dialect.WithPrecision("NUMBER", t), nil
	case sqltypes.Float:
		return "BINARY_DOUBLE", nil
	case sqltypes.String:
		if t.Length == 0 {
			return "", &dialect.UnsupportedTypeError{Type: t, Reason: "VARCHAR2 requires a length on oracle"}
		}
		return fmt.Sprintf("VARCHAR2(%d)", t.Length), nil
	case sqltypes.Text, sqltypes.JSON:
		return "CLOB", nil
	case sqltypes.Boolean:
		return "NUMBER(1)", nil
	case sqltypes.UUID:
		return "VARCHAR2(36)", nil
	}
	return r.StandardRenderer.TypeName(t)
}

func (Renderer) AutoincrementClause(*core.Column) string {
	return " GENERATED BY DEFAULT AS IDENTITY"
}

func (Renderer) DropIndex(index, _ string, _ bool) string {
	return "DROP INDEX " + index
}

// TableAlias omits AS, which Oracle rejects for table aliases.
func (Renderer) TableAlias(element, alias string) string {
	return element + " " + alias
}

func (Renderer) FromDual() string {
	return " FROM DUAL"
}
