package dialect

import "github.com/leapstack-labs/sqlcompiler/pkg/token"

// Precedence levels. A child expression binding more loosely than its
// parent operator is parenthesized.
const (
	PrecedenceNone       = 0
	PrecedenceOr         = 1
	PrecedenceAnd        = 2
	PrecedenceNot        = 3
	PrecedenceComparison = 4 // =, <>, <, >, <=, >=, LIKE, ILIKE, IN, BETWEEN
	PrecedenceAddition   = 5 // +, -, ||
	PrecedenceMultiply   = 6 // *, /, %
	PrecedenceUnary      = 7 // -, +, NOT
	PrecedenceAtom       = 9 // columns, literals, function calls
)

// OperatorDef defines an infix operator with precedence.
type OperatorDef struct {
	Token      token.TokenType
	Precedence int
}

// ANSIOperators contains standard SQL operators with their precedence.
var ANSIOperators = []OperatorDef{
	// Logical operators (lowest precedence)
	{Token: token.OR, Precedence: PrecedenceOr},
	{Token: token.AND, Precedence: PrecedenceAnd},
	{Token: token.NOT, Precedence: PrecedenceNot},

	// Comparison operators
	{Token: token.EQ, Precedence: PrecedenceComparison},
	{Token: token.NE, Precedence: PrecedenceComparison},
	{Token: token.LT, Precedence: PrecedenceComparison},
	{Token: token.GT, Precedence: PrecedenceComparison},
	{Token: token.LE, Precedence: PrecedenceComparison},
	{Token: token.GE, Precedence: PrecedenceComparison},
	{Token: token.LIKE, Precedence: PrecedenceComparison},
	{Token: token.IN, Precedence: PrecedenceComparison},
	{Token: token.BETWEEN, Precedence: PrecedenceComparison},
	{Token: token.IS, Precedence: PrecedenceComparison},

	// Arithmetic operators
	{Token: token.PLUS, Precedence: PrecedenceAddition},
	{Token: token.MINUS, Precedence: PrecedenceAddition},
	{Token: token.DPIPE, Precedence: PrecedenceAddition}, // || string concatenation

	// Multiplicative operators (highest precedence for binary ops)
	{Token: token.STAR, Precedence: PrecedenceMultiply},
	{Token: token.SLASH, Precedence: PrecedenceMultiply},
	{Token: token.PERCENT, Precedence: PrecedenceMultiply},
}
