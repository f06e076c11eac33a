package core

// Node is the base interface for all tree nodes.
type Node interface {
	node()
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// Selectable is anything that can appear in a FROM clause and exposes an
// ordered collection of named columns.
type Selectable interface {
	Node
	// Exported returns the columns this selectable exposes, in order.
	Exported() []*Column
	// C returns the exported column with the given name, or nil.
	C(name string) *Column
	selectable()
}

// Query is a selectable statement: a Select or a Compound.
type Query interface {
	Selectable
	Stmt
	// Labels returns the output names of the query's column list.
	Labels() []LabeledExpr
	queryNode()
}

// LabeledExpr pairs an output name with the expression producing it.
type LabeledExpr struct {
	Name string
	Expr Expr
}

// SelectableName returns the name a selectable is referenced by, or "" for
// joins, anonymous aliases and bare queries.
func SelectableName(s Selectable) string {
	switch s := s.(type) {
	case *Table:
		return s.Name
	case *Alias:
		return s.Name
	case *CTE:
		return s.Name
	}
	return ""
}

// Covers reports whether target is rendered as part of the FROM element from.
func Covers(from, target Selectable) bool {
	if from == target {
		return true
	}
	if j, ok := from.(*Join); ok {
		return Covers(j.Left, target) || Covers(j.Right, target)
	}
	return false
}

// FromLeaves returns the tables, aliases and CTEs that make up a FROM
// element, left to right.
func FromLeaves(from Selectable) []Selectable {
	if j, ok := from.(*Join); ok {
		return append(FromLeaves(j.Left), FromLeaves(j.Right)...)
	}
	return []Selectable{from}
}

func findColumn(cols []*Column, name string) *Column {
	for _, c := range cols {
		if c.Name == name {
			return c
		}
	}
	return nil
}
