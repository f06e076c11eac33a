package core

import (
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
	"github.com/leapstack-labs/sqlcompiler/pkg/token"
)

// coerce turns a Go value on the right of a comparison into a unique bind
// named and typed after the left side.
func coerce(left Expr, right any) Expr {
	if e, ok := right.(Expr); ok {
		return e
	}
	if right == nil {
		return Null{}
	}
	key := "param"
	typ := sqltypes.Infer(right)
	if c := columnOf(left); c != nil {
		key = c.Name
		if !sqltypes.IsNull(c.Type) {
			typ = c.Type
		}
	}
	return &BindParam{Key: key, Value: right, Type: typ, Unique: true}
}

func compare(left Expr, op token.TokenType, right any) Expr {
	r := coerce(left, right)
	if _, ok := r.(Null); ok {
		switch op {
		case token.EQ:
			return &IsNull{Expr: left}
		case token.NE:
			return &IsNull{Expr: left, Not: true}
		}
	}
	return &BinaryExpr{Left: left, Op: op, Right: r}
}

// Eq is left = right. A nil right side compiles to IS NULL.
func Eq(left Expr, right any) Expr { return compare(left, token.EQ, right) }

// Ne is left != right. A nil right side compiles to IS NOT NULL.
func Ne(left Expr, right any) Expr { return compare(left, token.NE, right) }

// Lt is left < right.
func Lt(left Expr, right any) Expr { return compare(left, token.LT, right) }

// Le is left <= right.
func Le(left Expr, right any) Expr { return compare(left, token.LE, right) }

// Gt is left > right.
func Gt(left Expr, right any) Expr { return compare(left, token.GT, right) }

// Ge is left >= right.
func Ge(left Expr, right any) Expr { return compare(left, token.GE, right) }

// Like is left LIKE pattern.
func Like(left Expr, pattern any) Expr { return compare(left, token.LIKE, pattern) }

// Op applies an arbitrary binary operator.
func Op(left Expr, op token.TokenType, right any) Expr {
	return &BinaryExpr{Left: left, Op: op, Right: coerce(left, right)}
}

// InValues tests membership of e in values.
func InValues(e Expr, values ...any) *In {
	in := &In{Expr: e}
	for _, v := range values {
		in.Values = append(in.Values, coerce(e, v))
	}
	return in
}

// BetweenValues tests low <= e <= high.
func BetweenValues(e Expr, low, high any) *Between {
	return &Between{Expr: e, Low: coerce(e, low), High: coerce(e, high)}
}
