package core

// ReplaceColumns returns e with every column in m swapped for its
// replacement. Nodes on the path to a replaced column are copied; e itself
// is never modified, and subqueries are left as they are.
func ReplaceColumns(e Expr, m map[*Column]*Column) Expr {
	if e == nil || len(m) == 0 {
		return e
	}
	out, _ := replace(e, m)
	return out
}

func replace(e Expr, m map[*Column]*Column) (Expr, bool) {
	switch n := e.(type) {
	case *Column:
		if r, ok := m[n]; ok {
			return r, true
		}
	case *Label:
		if x, ok := replace(n.Expr, m); ok {
			return &Label{Name: n.Name, Expr: x}, true
		}
	case *BinaryExpr:
		l, lok := replace(n.Left, m)
		r, rok := replace(n.Right, m)
		if lok || rok {
			return &BinaryExpr{Left: l, Op: n.Op, Right: r}, true
		}
	case *BooleanClause:
		if cs, ok := replaceList(n.Clauses, m); ok {
			return &BooleanClause{Op: n.Op, Clauses: cs}, true
		}
	case *UnaryExpr:
		if x, ok := replace(n.Expr, m); ok {
			return &UnaryExpr{Op: n.Op, Expr: x}, true
		}
	case *IsNull:
		if x, ok := replace(n.Expr, m); ok {
			return &IsNull{Expr: x, Not: n.Not}, true
		}
	case *FuncCall:
		if args, ok := replaceList(n.Args, m); ok {
			return &FuncCall{Name: n.Name, Args: args, Distinct: n.Distinct, Type: n.Type}, true
		}
	case *Cast:
		if x, ok := replace(n.Expr, m); ok {
			return &Cast{Expr: x, Type: n.Type}, true
		}
	case *Case:
		return replaceCase(n, m)
	case *In:
		x, xok := replace(n.Expr, m)
		vals, vok := replaceList(n.Values, m)
		if xok || vok {
			return &In{Expr: x, Values: vals, Query: n.Query, Not: n.Not}, true
		}
	case *Between:
		x, xok := replace(n.Expr, m)
		lo, lok := replace(n.Low, m)
		hi, hok := replace(n.High, m)
		if xok || lok || hok {
			return &Between{Expr: x, Low: lo, High: hi, Not: n.Not}, true
		}
	case *Ordering:
		if x, ok := replace(n.Expr, m); ok {
			return &Ordering{Expr: x, Desc: n.Desc, Nulls: n.Nulls}, true
		}
	}
	return e, false
}

func replaceList(es []Expr, m map[*Column]*Column) ([]Expr, bool) {
	var out []Expr
	for i, e := range es {
		r, ok := replace(e, m)
		if ok && out == nil {
			out = make([]Expr, len(es))
			copy(out, es[:i])
		}
		if out != nil {
			out[i] = r
		}
	}
	if out == nil {
		return es, false
	}
	return out, true
}

func replaceCase(n *Case, m map[*Column]*Column) (Expr, bool) {
	changed := false
	operand := n.Operand
	if operand != nil {
		var ok bool
		operand, ok = replace(operand, m)
		changed = changed || ok
	}
	whens := make([]When, len(n.Whens))
	for i, w := range n.Whens {
		c, cok := replace(w.Cond, m)
		r, rok := replace(w.Result, m)
		whens[i] = When{Cond: c, Result: r}
		changed = changed || cok || rok
	}
	els := n.Else
	if els != nil {
		var ok bool
		els, ok = replace(els, m)
		changed = changed || ok
	}
	if !changed {
		return n, false
	}
	return &Case{Operand: operand, Whens: whens, Else: els}, true
}
