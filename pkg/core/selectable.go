package core

import "sync"

// JoinType is the kind of a join.
type JoinType string

// Standard ANSI SQL join type values.
const (
	JoinInner JoinType = "INNER"
	JoinLeft  JoinType = "LEFT"
	JoinRight JoinType = "RIGHT"
	JoinFull  JoinType = "FULL"
	JoinCross JoinType = "CROSS"
)

// Join binds two selectables with an ON predicate. Right may itself be a
// Join (a right-nested join).
type Join struct {
	Left  Selectable
	Right Selectable
	On    Expr
	Type  JoinType
}

func (*Join) node()       {}
func (*Join) selectable() {}

// NewJoin returns an inner join of left and right.
func NewJoin(left, right Selectable, on Expr) *Join {
	return &Join{Left: left, Right: right, On: on, Type: JoinInner}
}

// NewOuterJoin returns a left outer join of left and right.
func NewOuterJoin(left, right Selectable, on Expr) *Join {
	return &Join{Left: left, Right: right, On: on, Type: JoinLeft}
}

// Exported returns the columns of both sides; they are the original column
// objects, not proxies.
func (j *Join) Exported() []*Column {
	left := j.Left.Exported()
	right := j.Right.Exported()
	out := make([]*Column, 0, len(left)+len(right))
	out = append(out, left...)
	return append(out, right...)
}

// C looks a column up by its table-qualified label (table_col) first, then
// by bare name.
func (j *Join) C(name string) *Column {
	for _, c := range j.Exported() {
		if owner := SelectableName(c.Table); owner != "" && owner+"_"+c.Name == name {
			return c
		}
	}
	return findColumn(j.Exported(), name)
}

// proxySet lazily builds the exported proxies of a derived selectable.
type proxySet struct {
	once sync.Once
	cols []*Column
}

func (p *proxySet) get(build func() []*Column) []*Column {
	p.once.Do(func() { p.cols = build() })
	return p.cols
}

// Alias renames a selectable. An empty Name makes it anonymous; the
// compiler assigns anon_N names in traversal order.
type Alias struct {
	Name string
	Of   Selectable

	proxies proxySet
}

func (*Alias) node()       {}
func (*Alias) selectable() {}

// NewAlias wraps of under name. A Select or Compound wrapped this way is a
// subquery.
func NewAlias(of Selectable, name string) *Alias {
	return &Alias{Name: name, Of: of}
}

// Anonymous reports whether the alias name is allocated at compile time.
func (a *Alias) Anonymous() bool {
	return a.Name == ""
}

// Exported returns proxies of the aliased selectable's columns.
func (a *Alias) Exported() []*Column {
	return a.proxies.get(func() []*Column {
		src := a.Of.Exported()
		cols := make([]*Column, len(src))
		for i, c := range src {
			cols[i] = newProxy(c.Name, a, c)
		}
		return cols
	})
}

// C returns the named exported column, or nil.
func (a *Alias) C(name string) *Column {
	return findColumn(a.Exported(), name)
}

// CTE is a named common table expression.
type CTE struct {
	Name      string
	Query     Query
	Recursive bool

	// Restates points at the CTE this one extends with a recursive union.
	// References to it from inside Query are self-references.
	Restates *CTE

	proxies proxySet
}

func (*CTE) node()       {}
func (*CTE) selectable() {}

// NewCTE names q as a common table expression.
func NewCTE(q Query, name string) *CTE {
	return &CTE{Name: name, Query: q}
}

// NewRecursiveCTE names q as the anchor of a recursive CTE.
func NewRecursiveCTE(q Query, name string) *CTE {
	return &CTE{Name: name, Query: q, Recursive: true}
}

// UnionAll returns a CTE with the same name whose query is this CTE's query
// UNION ALL q. q may reference this CTE's columns.
func (c *CTE) UnionAll(q Query) *CTE {
	return c.union(UnionAll, q)
}

// Union is UnionAll with UNION semantics.
func (c *CTE) Union(q Query) *CTE {
	return c.union(Union, q)
}

func (c *CTE) union(op CompoundOp, q Query) *CTE {
	return &CTE{
		Name:      c.Name,
		Query:     &Compound{Op: op, Selects: []Query{c.Query, q}},
		Recursive: c.Recursive,
		Restates:  c,
	}
}

// SameDefinition reports whether c and other are the same CTE, allowing
// for one restating the other.
func (c *CTE) SameDefinition(other *CTE) bool {
	return c.restates(other) || other.restates(c)
}

func (c *CTE) restates(other *CTE) bool {
	for cur := c; cur != nil; cur = cur.Restates {
		if cur == other {
			return true
		}
	}
	return false
}

// Root returns the first CTE in the restatement chain.
func (c *CTE) Root() *CTE {
	cur := c
	for cur.Restates != nil {
		cur = cur.Restates
	}
	return cur
}

// Exported returns proxies of the query's output columns.
func (c *CTE) Exported() []*Column {
	return c.proxies.get(func() []*Column {
		src := c.Query.Exported()
		cols := make([]*Column, len(src))
		for i, col := range src {
			cols[i] = newProxy(col.Name, c, col)
		}
		return cols
	})
}

// C returns the named exported column, or nil.
func (c *CTE) C(name string) *Column {
	return findColumn(c.Exported(), name)
}

// Alias returns an alias referencing the CTE under another name.
func (c *CTE) Alias(name string) *Alias {
	return NewAlias(c, name)
}
