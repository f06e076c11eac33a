// Package token defines the operator tokens that expression nodes carry
// and that the compiler renders.
//
// ANSI tokens are defined as constants (IDs 0-999) for switch performance.
// Dialect-specific operators are registered dynamically via Register().
package token

import "fmt"

// TokenType identifies an operator.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

//nolint:revive // TOKEN_* names are intentionally ALL_CAPS for SQL token conventions
const (
	ILLEGAL TokenType = iota

	// Arithmetic and string operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	DPIPE   // ||

	// Comparison operators
	EQ // =
	NE // !=
	LT // <
	GT // >
	LE // <=
	GE // >=

	// Logical and predicate keywords
	AND
	BETWEEN
	IN
	IS
	LIKE
	NOT
	OR

	// Sentinel - dynamic tokens start after this
	maxBuiltin TokenType = 999
)

// String returns the SQL spelling of the token.
func (t TokenType) String() string {
	if op, ok := lookupOperator(t); ok {
		return op.spelling
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// IsComparison reports whether the token is a comparison operator.
func (t TokenType) IsComparison() bool {
	switch t {
	case EQ, NE, LT, GT, LE, GE, LIKE, IN, IS, BETWEEN:
		return true
	}
	op, _ := lookupOperator(t)
	return op.comparison
}

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	DPIPE:   "||",
	EQ:      "=",
	NE:      "!=",
	LT:      "<",
	GT:      ">",
	LE:      "<=",
	GE:      ">=",

	AND:     "AND",
	BETWEEN: "BETWEEN",
	IN:      "IN",
	IS:      "IS",
	LIKE:    "LIKE",
	NOT:     "NOT",
	OR:      "OR",
}
