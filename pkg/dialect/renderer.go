package dialect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/sqlcompiler/pkg/core"
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
)

// Renderer is the set of hooks a dialect overrides. The compiler calls
// through it wherever dialects disagree on spelling; capability checks are
// driven by core.Features and happen before a hook is called.
type Renderer interface {
	// LimitOffset renders the row-limiting clause, including its leading
	// space, or "" when both are nil.
	LimitOffset(limit, offset *int) string
	// LockClause renders FOR UPDATE and friends. of holds the rendered
	// names of the OF targets.
	LockClause(lock *core.LockSpec, of []string) string
	// TypeName renders a type for DDL and CAST.
	TypeName(t sqltypes.Type) (string, error)
	// AutoincrementType replaces the DDL type of an autoincrement column,
	// e.g. SERIAL. It returns false to keep TypeName.
	AutoincrementType(col *core.Column) (string, bool)
	// AutoincrementClause is appended to an autoincrement column spec.
	AutoincrementClause(col *core.Column) string
	// ExcludedColumn references the proposed row in an upsert; name is
	// already quoted.
	ExcludedColumn(name string) string
	// DefaultValuesInsert renders the tail of an INSERT with no columns.
	DefaultValuesInsert() string
	// DropIndex renders DROP INDEX; table is the quoted owning table.
	DropIndex(index, table string, ifExists bool) string
	// DropForeignKey renders the ALTER TABLE action dropping a foreign key.
	DropForeignKey(name string) string
	// TableAlias joins a FROM element to its alias name.
	TableAlias(element, alias string) string
	// FromDual is the FROM clause of a FROM-less select on dialects that
	// need one.
	FromDual() string
}

// UnsupportedTypeError is returned by TypeName for types a dialect cannot
// render.
type UnsupportedTypeError struct {
	Type   sqltypes.Type
	Reason string
}

func (e *UnsupportedTypeError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("type %s: %s", e.Type.TypeName(), e.Reason)
	}
	return fmt.Sprintf("type %s has no DDL rendering", e.Type.TypeName())
}

// StandardRenderer implements the ANSI defaults. Dialects embed it and
// override individual hooks.
type StandardRenderer struct{}

func (StandardRenderer) LimitOffset(limit, offset *int) string {
	var b strings.Builder
	if limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(*limit))
	}
	if offset != nil {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(*offset))
	}
	return b.String()
}

func (StandardRenderer) LockClause(lock *core.LockSpec, of []string) string {
	var b strings.Builder
	if lock.Mode == core.LockShare {
		b.WriteString(" FOR SHARE")
	} else {
		b.WriteString(" FOR UPDATE")
	}
	if len(of) > 0 {
		b.WriteString(" OF ")
		b.WriteString(strings.Join(of, ", "))
	}
	if lock.NoWait {
		b.WriteString(" NOWAIT")
	}
	if lock.SkipLocked {
		b.WriteString(" SKIP LOCKED")
	}
	return b.String()
}

func (StandardRenderer) TypeName(t sqltypes.Type) (string, error) {
	switch t := t.(type) {
	case sqltypes.Integer:
		return t.TypeName(), nil
	case sqltypes.Numeric:
		return withPrecision("NUMERIC", t), nil
	case sqltypes.Float:
		return "FLOAT", nil
	case sqltypes.String:
		if t.Length > 0 {
			return fmt.Sprintf("VARCHAR(%d)", t.Length), nil
		}
		return "VARCHAR", nil
	case sqltypes.DateTime:
		if t.Timezone {
			return "TIMESTAMP WITH TIME ZONE", nil
		}
		return "TIMESTAMP", nil
	case sqltypes.NullType, nil:
		return "", &UnsupportedTypeError{Type: sqltypes.NullType{}}
	}
	return t.TypeName(), nil
}

func (StandardRenderer) AutoincrementType(*core.Column) (string, bool) {
	return "", false
}

func (StandardRenderer) AutoincrementClause(*core.Column) string {
	return ""
}

func (StandardRenderer) ExcludedColumn(name string) string {
	return "excluded." + name
}

func (StandardRenderer) DefaultValuesInsert() string {
	return " DEFAULT VALUES"
}

func (StandardRenderer) DropIndex(index, _ string, ifExists bool) string {
	if ifExists {
		return "DROP INDEX IF EXISTS " + index
	}
	return "DROP INDEX " + index
}

func (StandardRenderer) DropForeignKey(name string) string {
	return "DROP CONSTRAINT " + name
}

func (StandardRenderer) TableAlias(element, alias string) string {
	return element + " AS " + alias
}

func (StandardRenderer) FromDual() string {
	return ""
}

// FetchFirst renders OFFSET n ROWS FETCH FIRST m ROWS ONLY, the SQL:2008
// spelling used by ANSI and Oracle.
func FetchFirst(limit, offset *int) string {
	var b strings.Builder
	if offset != nil {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.Itoa(*offset))
		b.WriteString(" ROWS")
	}
	if limit != nil {
		b.WriteString(" FETCH FIRST ")
		b.WriteString(strconv.Itoa(*limit))
		b.WriteString(" ROWS ONLY")
	}
	return b.String()
}

func withPrecision(name string, t sqltypes.Numeric) string {
	switch {
	case t.Precision > 0 && t.Scale > 0:
		return fmt.Sprintf("%s(%d, %d)", name, t.Precision, t.Scale)
	case t.Precision > 0:
		return fmt.Sprintf("%s(%d)", name, t.Precision)
	default:
		return name
	}
}

// WithPrecision renders name(p, s) for a numeric type, omitting unset parts.
func WithPrecision(name string, t sqltypes.Numeric) string {
	return withPrecision(name, t)
}
