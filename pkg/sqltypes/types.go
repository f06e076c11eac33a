// Package sqltypes defines the semantic column types the compiler attaches to
// columns and bind parameters.
//
// A type may implement LiteralProcessor to be renderable inline when a
// statement is compiled in literal mode, and BindProcessor to coerce Go
// values before they are handed to a driver. Dialects map types to DDL
// spellings; this package only knows the generic names.
package sqltypes

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is a semantic SQL type.
type Type interface {
	// TypeName returns the generic SQL name, e.g. "INTEGER".
	TypeName() string
}

// LiteralContext carries the dialect traits that affect literal rendering.
type LiteralContext struct {
	// BackslashEscapes is set for dialects that treat backslash as an
	// escape character inside string literals.
	BackslashEscapes bool
	// NativeBoolean is set for dialects with TRUE/FALSE literals.
	NativeBoolean bool
}

// LiteralProcessor renders a Go value as an inline SQL literal.
type LiteralProcessor interface {
	Literal(v any, lc LiteralContext) (string, error)
}

// BindProcessor converts a Go value into the value sent to the driver.
type BindProcessor interface {
	BindValue(v any) (any, error)
}

// Integer is a 32 or 64 bit integer column.
type Integer struct {
	Big bool
}

// Numeric is an exact decimal with optional precision and scale.
type Numeric struct {
	Precision int
	Scale     int
}

// Float is an approximate floating point number.
type Float struct{}

// String is a bounded character type. Length 0 means unbounded.
type String struct {
	Length int
}

// Text is an unbounded character type.
type Text struct{}

// Boolean is a true/false value.
type Boolean struct{}

// Date is a calendar date.
type Date struct{}

// DateTime is a timestamp.
type DateTime struct {
	Timezone bool
}

// UUID is a 128-bit identifier.
type UUID struct{}

// JSON is a JSON document.
type JSON struct{}

// LargeBinary is a byte string. It has no literal form.
type LargeBinary struct{}

// NullType is the type of expressions whose type is not known.
type NullType struct{}

func (t Integer) TypeName() string {
	if t.Big {
		return "BIGINT"
	}
	return "INTEGER"
}

func (Numeric) TypeName() string     { return "NUMERIC" }
func (Float) TypeName() string       { return "FLOAT" }
func (String) TypeName() string      { return "VARCHAR" }
func (Text) TypeName() string        { return "TEXT" }
func (Boolean) TypeName() string     { return "BOOLEAN" }
func (Date) TypeName() string        { return "DATE" }
func (DateTime) TypeName() string    { return "TIMESTAMP" }
func (UUID) TypeName() string        { return "UUID" }
func (JSON) TypeName() string        { return "JSON" }
func (LargeBinary) TypeName() string { return "BLOB" }
func (NullType) TypeName() string    { return "NULL" }

// Infer returns the semantic type for a Go value.
func Infer(v any) Type {
	switch v.(type) {
	case int, int8, int16, int32, uint8, uint16, uint32:
		return Integer{}
	case int64, uint, uint64:
		return Integer{Big: true}
	case float32, float64:
		return Float{}
	case string:
		return String{}
	case bool:
		return Boolean{}
	case time.Time:
		return DateTime{}
	case decimal.Decimal:
		return Numeric{}
	case uuid.UUID:
		return UUID{}
	case []byte:
		return LargeBinary{}
	case map[string]any, []any:
		return JSON{}
	default:
		return NullType{}
	}
}

// IsNull reports whether t is nil or NullType.
func IsNull(t Type) bool {
	if t == nil {
		return true
	}
	_, ok := t.(NullType)
	return ok
}

// UnsupportedValueError is returned when a literal processor cannot render v.
type UnsupportedValueError struct {
	Type  Type
	Value any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("cannot render %T value %v as %s literal", e.Value, e.Value, e.Type.TypeName())
}
