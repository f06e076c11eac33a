package core

import (
	"github.com/leapstack-labs/sqlcompiler/pkg/sqltypes"
	"github.com/leapstack-labs/sqlcompiler/pkg/token"
)

// BindParam is a named placeholder with an optional value.
type BindParam struct {
	// Key is the requested parameter name. Unique binds are renamed
	// key_N per compile; an empty key is filled in from context.
	Key   string
	Value any
	Type  sqltypes.Type

	// Unique binds never share a name with another bind.
	Unique bool
	// Required binds carry no value; one must be supplied at execution.
	Required bool
}

func (*BindParam) node()     {}
func (*BindParam) exprNode() {}

// Bind returns a named bind carrying value. Binds with the same key share
// one parameter.
func Bind(key string, value any) *BindParam {
	return &BindParam{Key: key, Value: value, Type: sqltypes.Infer(value)}
}

// Placeholder returns a named bind whose value is supplied at execution.
func Placeholder(key string, typ sqltypes.Type) *BindParam {
	return &BindParam{Key: key, Type: typ, Required: true}
}

// Literal returns an anonymous unique bind carrying value.
func Literal(value any) *BindParam {
	return &BindParam{Key: "param", Value: value, Type: sqltypes.Infer(value), Unique: true}
}

// Label renames an expression in a column list. An empty Name is anonymous.
type Label struct {
	Name string
	Expr Expr
}

func (*Label) node()     {}
func (*Label) exprNode() {}

// As labels e with name.
func As(e Expr, name string) *Label {
	return &Label{Name: name, Expr: e}
}

// BinaryExpr is an infix operation.
type BinaryExpr struct {
	Left  Expr
	Op    token.TokenType
	Right Expr
}

func (*BinaryExpr) node()     {}
func (*BinaryExpr) exprNode() {}

// BooleanClause joins clauses with AND or OR. An empty clause renders as
// nothing, and the enclosing WHERE or HAVING is omitted.
type BooleanClause struct {
	Op      token.TokenType
	Clauses []Expr
}

func (*BooleanClause) node()     {}
func (*BooleanClause) exprNode() {}

// And joins clauses with AND.
func And(clauses ...Expr) *BooleanClause {
	return &BooleanClause{Op: token.AND, Clauses: clauses}
}

// Or joins clauses with OR.
func Or(clauses ...Expr) *BooleanClause {
	return &BooleanClause{Op: token.OR, Clauses: clauses}
}

// Empty reports whether the clause has nothing to render.
func (b *BooleanClause) Empty() bool {
	for _, c := range b.Clauses {
		if nested, ok := c.(*BooleanClause); ok && nested.Empty() {
			continue
		}
		return false
	}
	return true
}

// UnaryExpr is a prefix operation: NOT or numeric negation.
type UnaryExpr struct {
	Op   token.TokenType
	Expr Expr
}

func (*UnaryExpr) node()     {}
func (*UnaryExpr) exprNode() {}

// Not negates e.
func Not(e Expr) *UnaryExpr {
	return &UnaryExpr{Op: token.NOT, Expr: e}
}

// IsNull tests an expression against NULL.
type IsNull struct {
	Expr Expr
	Not  bool
}

func (*IsNull) node()     {}
func (*IsNull) exprNode() {}

// FuncCall is a SQL function call.
type FuncCall struct {
	Name     string
	Args     []Expr
	Distinct bool
	Type     sqltypes.Type
}

func (*FuncCall) node()     {}
func (*FuncCall) exprNode() {}

// Func returns a call of name with args.
func Func(name string, args ...Expr) *FuncCall {
	return &FuncCall{Name: name, Args: args}
}

// Count returns count(e), or count(*) when e is nil.
func Count(e Expr) *FuncCall {
	if e == nil {
		e = &Star{}
	}
	return &FuncCall{Name: "count", Args: []Expr{e}, Type: sqltypes.Integer{}}
}

// Cast converts an expression to a type.
type Cast struct {
	Expr Expr
	Type sqltypes.Type
}

func (*Cast) node()     {}
func (*Cast) exprNode() {}

// When is one branch of a Case.
type When struct {
	Cond   Expr
	Result Expr
}

// Case is a CASE expression. Operand is optional.
type Case struct {
	Operand Expr
	Whens   []When
	Else    Expr
}

func (*Case) node()     {}
func (*Case) exprNode() {}

// In tests membership in a value list or a subquery.
type In struct {
	Expr   Expr
	Values []Expr
	Query  Query
	Not    bool
}

func (*In) node()     {}
func (*In) exprNode() {}

// Between is a range test.
type Between struct {
	Expr Expr
	Low  Expr
	High Expr
	Not  bool
}

func (*Between) node()     {}
func (*Between) exprNode() {}

// Exists tests whether a subquery returns rows.
type Exists struct {
	Query Query
	Not   bool
}

func (*Exists) node()     {}
func (*Exists) exprNode() {}

// ScalarSubquery uses a single-column query as a value.
type ScalarSubquery struct {
	Query Query
}

func (*ScalarSubquery) node()     {}
func (*ScalarSubquery) exprNode() {}

// NullsOrder places NULLs in an ORDER BY.
type NullsOrder int

const (
	NullsDefault NullsOrder = iota
	NullsFirst
	NullsLast
)

// Ordering is an ORDER BY item.
type Ordering struct {
	Expr  Expr
	Desc  bool
	Nulls NullsOrder
}

func (*Ordering) node()     {}
func (*Ordering) exprNode() {}

// Asc orders by e ascending.
func Asc(e Expr) *Ordering { return &Ordering{Expr: e} }

// Desc orders by e descending.
func Desc(e Expr) *Ordering { return &Ordering{Expr: e, Desc: true} }

// NameRef names a column by string in ORDER BY or GROUP BY. It is resolved
// against output labels, then FROM columns.
type NameRef struct {
	Name string
}

func (*NameRef) node()     {}
func (*NameRef) exprNode() {}

// Ref returns a NameRef.
func Ref(name string) *NameRef {
	return &NameRef{Name: name}
}

// Star is * or table.*.
type Star struct {
	Table Selectable
}

func (*Star) node()     {}
func (*Star) exprNode() {}

// Null is the NULL literal.
type Null struct{}

func (Null) node()     {}
func (Null) exprNode() {}

// Boolean is TRUE or FALSE, rendered as 1/0 on dialects without booleans.
type Boolean struct {
	Value bool
}

func (Boolean) node()     {}
func (Boolean) exprNode() {}

// Raw is a SQL fragment rendered verbatim.
type Raw struct {
	SQL  string
	Type sqltypes.Type
}

func (*Raw) node()     {}
func (*Raw) exprNode() {}

// Excluded references the row proposed for insertion in an upsert.
type Excluded struct {
	Column *Column
}

func (*Excluded) node()     {}
func (*Excluded) exprNode() {}

// ExprType returns the semantic type of an expression.
func ExprType(e Expr) sqltypes.Type {
	switch e := e.(type) {
	case *Column:
		return orNull(e.Type)
	case *Label:
		return ExprType(e.Expr)
	case *BindParam:
		return orNull(e.Type)
	case *Cast:
		return orNull(e.Type)
	case *FuncCall:
		return orNull(e.Type)
	case *Raw:
		return orNull(e.Type)
	case *ScalarSubquery:
		if cols := e.Query.Exported(); len(cols) > 0 {
			return cols[0].Type
		}
	case *BinaryExpr:
		if e.Op.IsComparison() {
			return sqltypes.Boolean{}
		}
		return ExprType(e.Left)
	case *BooleanClause, *IsNull, *In, *Between, *Exists, Boolean:
		return sqltypes.Boolean{}
	case *UnaryExpr:
		if e.Op == token.NOT {
			return sqltypes.Boolean{}
		}
		return ExprType(e.Expr)
	case *Case:
		if len(e.Whens) > 0 {
			return ExprType(e.Whens[0].Result)
		}
	case *Excluded:
		return orNull(e.Column.Type)
	}
	return sqltypes.NullType{}
}

func orNull(t sqltypes.Type) sqltypes.Type {
	if t == nil {
		return sqltypes.NullType{}
	}
	return t
}
