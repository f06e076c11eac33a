package core

// Walk traverses the tree rooted at n in depth-first order, calling fn for
// every node. Children are skipped when fn returns false. Walk visits the
// owner of every column, so selectables reachable only through column
// references are seen too.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	walkExprs := func(es []Expr) {
		for _, e := range es {
			Walk(e, fn)
		}
	}
	walkFroms := func(fs []Selectable) {
		for _, f := range fs {
			Walk(f, fn)
		}
	}
	walkCTEs := func(cs []*CTE) {
		for _, c := range cs {
			Walk(c, fn)
		}
	}
	walkSet := func(as []Assignment) {
		for _, a := range as {
			Walk(a.Column, fn)
			Walk(a.Value, fn)
		}
	}

	switch n := n.(type) {
	case *Select:
		walkCTEs(n.CTEs)
		walkExprs(n.Columns)
		walkFroms(n.From)
		walkOptional(n.Where, fn)
		walkExprs(n.GroupBy)
		walkOptional(n.Having, fn)
		walkExprs(n.OrderBy)
		walkExprs(n.DistinctOn)
		if n.Lock != nil {
			walkFroms(n.Lock.Of)
		}
	case *Compound:
		for _, q := range n.Selects {
			Walk(q, fn)
		}
		walkExprs(n.OrderBy)
	case *Alias:
		Walk(n.Of, fn)
	case *Join:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
		walkOptional(n.On, fn)
	case *CTE:
		Walk(n.Query, fn)
	case *Column:
		if n.Table != nil {
			Walk(n.Table, fn)
		}
	case *Label:
		Walk(n.Expr, fn)
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *BooleanClause:
		walkExprs(n.Clauses)
	case *UnaryExpr:
		Walk(n.Expr, fn)
	case *IsNull:
		Walk(n.Expr, fn)
	case *FuncCall:
		walkExprs(n.Args)
	case *Cast:
		Walk(n.Expr, fn)
	case *Case:
		walkOptional(n.Operand, fn)
		for _, w := range n.Whens {
			Walk(w.Cond, fn)
			Walk(w.Result, fn)
		}
		walkOptional(n.Else, fn)
	case *In:
		Walk(n.Expr, fn)
		walkExprs(n.Values)
		if n.Query != nil {
			Walk(n.Query, fn)
		}
	case *Between:
		Walk(n.Expr, fn)
		Walk(n.Low, fn)
		Walk(n.High, fn)
	case *Exists:
		Walk(n.Query, fn)
	case *ScalarSubquery:
		Walk(n.Query, fn)
	case *Ordering:
		Walk(n.Expr, fn)
	case *Star:
		if n.Table != nil {
			Walk(n.Table, fn)
		}
	case *Excluded:
		Walk(n.Column, fn)
	case *Insert:
		walkCTEs(n.CTEs)
		Walk(n.Table, fn)
		for _, row := range n.Rows {
			walkExprs(row)
		}
		if n.Select != nil {
			Walk(n.Select, fn)
		}
		if oc := n.OnConflict; oc != nil {
			walkOptional(oc.TargetWhere, fn)
			walkSet(oc.Set)
			walkOptional(oc.Where, fn)
		}
		walkSet(n.OnDuplicateKey)
		walkExprs(n.Returning)
	case *Update:
		walkCTEs(n.CTEs)
		Walk(n.Table, fn)
		walkSet(n.Set)
		walkOptional(n.Where, fn)
		walkFroms(n.From)
		walkExprs(n.Returning)
	case *Delete:
		walkCTEs(n.CTEs)
		Walk(n.Table, fn)
		walkOptional(n.Where, fn)
		walkFroms(n.Using)
		walkExprs(n.Returning)
	}
}

func walkOptional(e Expr, fn func(Node) bool) {
	if e != nil {
		Walk(e, fn)
	}
}

// ColumnsIn returns the columns referenced by e in first-seen order,
// without descending into subqueries.
func ColumnsIn(exprs ...Expr) []*Column {
	var cols []*Column
	seen := make(map[*Column]bool)
	for _, e := range exprs {
		if e == nil {
			continue
		}
		Walk(e, func(n Node) bool {
			switch n := n.(type) {
			case *Column:
				if !seen[n] {
					seen[n] = true
					cols = append(cols, n)
				}
				return false
			case Selectable:
				return false
			}
			return true
		})
	}
	return cols
}

// ColumnOwners returns the distinct owners of the columns referenced by
// exprs, in first-seen order.
func ColumnOwners(exprs ...Expr) []Selectable {
	var owners []Selectable
	seen := make(map[Selectable]bool)
	for _, c := range ColumnsIn(exprs...) {
		if c.Table == nil || seen[c.Table] {
			continue
		}
		seen[c.Table] = true
		owners = append(owners, c.Table)
	}
	return owners
}
